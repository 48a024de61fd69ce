// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"

	"github.com/google/uuid"

	"kulipoly/internal/cache"
	"kulipoly/internal/models"
	"kulipoly/internal/store"
)

// invalidator drops cached public responses after a write and records the
// event in the cache log.
type invalidator struct {
	cache ResponseCache
	log   CacheLog
}

// entity invalidates one entity under every slug it was or is reachable
// at, plus the listings of its kind.
func (v invalidator) entity(ctx context.Context, kind cache.Kind, id uuid.UUID, action string, slugs ...string) {
	seen := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		v.cache.Invalidate(ctx, kind, s)
	}
	if len(seen) == 0 {
		v.cache.Invalidate(ctx, kind, "")
	}
	if v.log != nil {
		v.log.Log(ctx, string(kind), id, action)
	}
}

// blogCacheWriter saves a blog translation and invalidates the responses
// that showed the untranslated fallback.
type blogCacheWriter struct {
	store BlogStore
	inv   invalidator
}

func (w blogCacheWriter) SaveTranslation(ctx context.Context, id uuid.UUID, t models.BlogTranslation) error {
	if err := w.store.SaveTranslation(ctx, id, t); err != nil {
		return err
	}
	var slug string
	if post, err := w.store.FindByID(ctx, id); err == nil && post != nil {
		slug = post.Slug
	}
	w.inv.entity(ctx, cache.KindBlog, id, store.ActionTranslate, slug)
	return nil
}

// portfolioCacheWriter is the portfolio counterpart of blogCacheWriter.
type portfolioCacheWriter struct {
	store PortfolioStore
	inv   invalidator
}

func (w portfolioCacheWriter) SaveTranslation(ctx context.Context, id uuid.UUID, t models.PortfolioTranslation) error {
	if err := w.store.SaveTranslation(ctx, id, t); err != nil {
		return err
	}
	var slug string
	if p, err := w.store.FindByID(ctx, id); err == nil && p != nil {
		slug = p.Slug
	}
	w.inv.entity(ctx, cache.KindPortfolio, id, store.ActionTranslate, slug)
	return nil
}
