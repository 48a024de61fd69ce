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

// PortfolioWriter persists the translation cache of a portfolio case.
type PortfolioWriter interface {
	SaveTranslation(ctx context.Context, id uuid.UUID, t models.PortfolioTranslation) error
}

// PortfolioAdapter localizes portfolio cases.
type PortfolioAdapter struct {
	svc    *translate.Service
	writer PortfolioWriter
}

// NewPortfolioAdapter creates a PortfolioAdapter. writer may be nil to skip
// write-back.
func NewPortfolioAdapter(svc *translate.Service, writer PortfolioWriter) *PortfolioAdapter {
	return &PortfolioAdapter{svc: svc, writer: writer}
}

func (a *PortfolioAdapter) ID(p *models.Portfolio) string { return p.ID.String() }

func (a *PortfolioAdapter) HasTranslation(p *models.Portfolio) bool { return p.HasTranslation() }

func (a *PortfolioAdapter) Resolve(p *models.Portfolio, lang i18n.Language) models.LocalizedPortfolio {
	return i18n.ResolvePortfolio(p, lang)
}

func (a *PortfolioAdapter) Translate(ctx context.Context, p *models.Portfolio) (*models.Portfolio, bool) {
	t := a.svc.Portfolio(ctx, translate.PortfolioSource{
		Title:       p.Title,
		Description: p.Description,
		Role:        p.Role,
		Challenge:   p.Challenge,
		Solution:    p.Solution,
		Results:     p.Results,
		Testimonial: p.Testimonial,
	})
	if !t.Complete {
		return p, false
	}

	cp := *p
	cp.TitleEn = &t.Title
	cp.DescriptionEn = &t.Description
	cp.RoleEn = &t.Role
	cp.ChallengeEn = &t.Challenge
	cp.SolutionEn = &t.Solution
	cp.ResultsEn = t.Results
	cp.TestimonialEn = t.Testimonial
	return &cp, true
}

func (a *PortfolioAdapter) WriteBack(ctx context.Context, p *models.Portfolio) error {
	if a.writer == nil {
		return nil
	}
	return a.writer.SaveTranslation(ctx, p.ID, models.PortfolioTranslation{
		Title:       deref(p.TitleEn),
		Description: deref(p.DescriptionEn),
		Role:        deref(p.RoleEn),
		Challenge:   deref(p.ChallengeEn),
		Solution:    deref(p.SolutionEn),
		Results:     p.ResultsEn,
		Testimonial: p.TestimonialEn,
		Translated:  true,
		Complete:    true,
	})
}
