// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"slices"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"kulipoly/internal/models"
	"kulipoly/internal/translate"
)

// writeBackTimeout bounds the persistence step after a translation.
const writeBackTimeout = 10 * time.Second

// Translate serves the on-demand translation endpoints. The endpoints are
// public, so a translation is written back only when it fills an empty
// cache of a published entity and was made from the entity's stored text.
type Translate struct {
	svc       *translate.Service
	blogs     blogCacheWriter
	portfolio portfolioCacheWriter
	flight    singleflight.Group
}

// NewTranslate creates the translate handler group. rc and log may be nil.
func NewTranslate(svc *translate.Service, blogs BlogStore, portfolios PortfolioStore, rc ResponseCache, log CacheLog) *Translate {
	inv := invalidator{cache: orNopCache(rc), log: log}
	return &Translate{
		svc:       svc,
		blogs:     blogCacheWriter{store: blogs, inv: inv},
		portfolio: portfolioCacheWriter{store: portfolios, inv: inv},
	}
}

type blogTranslateRequest struct {
	ID string `json:"id"`
	translate.BlogSource
}

type portfolioTranslateRequest struct {
	ID string `json:"id"`
	translate.PortfolioSource
}

// Blog handles POST /api/translate/blog.
func (t *Translate) Blog(w http.ResponseWriter, r *http.Request) {
	raw, ok := readBody(w, r)
	if !ok {
		return
	}
	var req blogTranslateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		slog.Warn("decode blog translate request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Translation failed")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "Blog post ID is required")
		return
	}

	v, err := t.do("blog", req.ID, raw, func() any {
		res := t.svc.BlogPost(context.WithoutCancel(r.Context()), req.BlogSource)
		if res.Complete {
			t.persist(r.Context(), "blog", req.ID, func(ctx context.Context, id uuid.UUID) error {
				return t.saveBlog(ctx, id, req.BlogSource, res)
			})
		}
		return res
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Translation failed")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// Portfolio handles POST /api/translate/portfolio.
func (t *Translate) Portfolio(w http.ResponseWriter, r *http.Request) {
	raw, ok := readBody(w, r)
	if !ok {
		return
	}
	var req portfolioTranslateRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		slog.Warn("decode portfolio translate request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Translation failed")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "Portfolio ID is required")
		return
	}

	v, err := t.do("portfolio", req.ID, raw, func() any {
		res := t.svc.Portfolio(context.WithoutCancel(r.Context()), req.PortfolioSource)
		if res.Complete {
			t.persist(r.Context(), "portfolio", req.ID, func(ctx context.Context, id uuid.UUID) error {
				return t.savePortfolio(ctx, id, req.PortfolioSource, res)
			})
		}
		return res
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Translation failed")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// do collapses identical concurrent requests and turns a panic in the
// pipeline into an error.
func (t *Translate) do(kind, id string, body []byte, fn func() any) (v any, err error) {
	h := fnv.New64a()
	h.Write(body)
	key := fmt.Sprintf("%s:%s:%x", kind, id, h.Sum64())

	v, err, _ = t.flight.Do(key, func() (res any, err error) {
		defer func() {
			if p := recover(); p != nil {
				slog.Error("translation pipeline panicked", "kind", kind, "id", id, "panic", p)
				err = fmt.Errorf("translation panicked: %v", p)
			}
		}()
		return fn(), nil
	})
	return v, err
}

// persist writes a translation back. Failures are logged, never returned:
// the caller already holds a usable translation.
func (t *Translate) persist(ctx context.Context, kind, rawID string, save func(context.Context, uuid.UUID) error) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		slog.Warn("skipping translation write-back for malformed id", "kind", kind, "id", rawID)
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeBackTimeout)
	defer cancel()
	if err := save(ctx, id); err != nil {
		slog.Error("translation write-back failed", "kind", kind, "id", id, "error", err)
	}
}

func (t *Translate) saveBlog(ctx context.Context, id uuid.UUID, src translate.BlogSource, res models.BlogTranslation) error {
	post, err := t.blogs.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	switch {
	case post == nil || !post.IsPublished:
		slog.Warn("skipping translation write-back for unknown or draft post", "id", id)
		return nil
	case post.HasTranslation():
		return nil
	case post.Title != src.Title || post.Subtitle != src.Subtitle || !sameBlocks(post.Content, src.Content):
		slog.Warn("skipping translation write-back, request text differs from stored post", "id", id)
		return nil
	}
	return t.blogs.SaveTranslation(ctx, id, res)
}

func (t *Translate) savePortfolio(ctx context.Context, id uuid.UUID, src translate.PortfolioSource, res models.PortfolioTranslation) error {
	p, err := t.portfolio.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	switch {
	case p == nil || !p.IsPublished:
		slog.Warn("skipping translation write-back for unknown or draft portfolio", "id", id)
		return nil
	case p.HasTranslation():
		return nil
	case p.Title != src.Title || p.Description != src.Description || p.Role != src.Role ||
		p.Challenge != src.Challenge || p.Solution != src.Solution ||
		!slices.Equal(p.Results, src.Results) || !reflect.DeepEqual(p.Testimonial, src.Testimonial):
		slog.Warn("skipping translation write-back, request text differs from stored portfolio", "id", id)
		return nil
	}
	return t.portfolio.SaveTranslation(ctx, id, res)
}

// sameBlocks compares stored blocks with blocks echoed back by a client.
// Rendered HTML is ignored.
func sameBlocks(stored, sent models.Blocks) bool {
	if !stored.Isomorphic(sent) {
		return false
	}
	for i := range stored {
		if !reflect.DeepEqual(withoutHTML(stored[i]), withoutHTML(sent[i])) {
			return false
		}
	}
	return true
}

func withoutHTML(b models.Block) models.Block {
	if tb, ok := b.(models.TextBlock); ok {
		tb.HTML = ""
		return tb
	}
	return b
}

// readBody reads the whole request body, answering 500 when it cannot.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxJSONBody))
	if err != nil {
		slog.Warn("read translate request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Translation failed")
		return nil, false
	}
	return bytes.TrimSpace(raw), true
}
