// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package autotranslate

import (
	"context"

	"github.com/google/uuid"

	"kulipoly/internal/i18n"
	"kulipoly/internal/models"
	"kulipoly/internal/translate"
)

// BlogWriter persists the translation cache of a blog post.
type BlogWriter interface {
	SaveTranslation(ctx context.Context, id uuid.UUID, t models.BlogTranslation) error
}

// BlogAdapter localizes blog posts.
type BlogAdapter struct {
	svc    *translate.Service
	writer BlogWriter
}

// NewBlogAdapter creates a BlogAdapter. writer may be nil to skip
// write-back.
func NewBlogAdapter(svc *translate.Service, writer BlogWriter) *BlogAdapter {
	return &BlogAdapter{svc: svc, writer: writer}
}

func (a *BlogAdapter) ID(p *models.BlogPost) string { return p.ID.String() }

func (a *BlogAdapter) HasTranslation(p *models.BlogPost) bool { return p.HasTranslation() }

func (a *BlogAdapter) Resolve(p *models.BlogPost, lang i18n.Language) models.LocalizedBlogPost {
	return i18n.ResolveBlogPost(p, lang)
}

func (a *BlogAdapter) Translate(ctx context.Context, p *models.BlogPost) (*models.BlogPost, bool) {
	t := a.svc.BlogPost(ctx, translate.BlogSource{
		Title:    p.Title,
		Subtitle: p.Subtitle,
		Content:  p.Content,
	})
	if !t.Complete {
		return p, false
	}

	cp := *p
	cp.TitleEn = &t.Title
	cp.SubtitleEn = &t.Subtitle
	cp.ContentEn = t.Content
	return &cp, true
}

func (a *BlogAdapter) WriteBack(ctx context.Context, p *models.BlogPost) error {
	if a.writer == nil {
		return nil
	}
	return a.writer.SaveTranslation(ctx, p.ID, models.BlogTranslation{
		Title:      deref(p.TitleEn),
		Subtitle:   deref(p.SubtitleEn),
		Content:    p.ContentEn,
		Translated: true,
		Complete:   true,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
