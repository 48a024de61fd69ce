// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"kulipoly/internal/cache"
	"kulipoly/internal/models"
	"kulipoly/internal/store"
)

// PortfolioList returns every case, drafts included.
func (a *Admin) PortfolioList(w http.ResponseWriter, r *http.Request) {
	cases, err := a.portfolios.ListAll(r.Context())
	if err != nil {
		a.storeError(w, "list portfolios", err)
		return
	}
	writeOK(w, cases)
}

// PortfolioGet returns one case by id.
func (a *Admin) PortfolioGet(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	p, ok := a.findPortfolio(w, r.Context(), id)
	if !ok {
		return
	}
	writeOK(w, p)
}

// PortfolioCreate creates a case.
func (a *Admin) PortfolioCreate(w http.ResponseWriter, r *http.Request) {
	var in models.PortfolioInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	normalizePortfolioInput(&in)
	if msg := validatePortfolioInput(&in); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	p, err := a.portfolios.Create(r.Context(), in)
	if err != nil {
		a.storeError(w, "create portfolio", err)
		return
	}
	a.inv.entity(r.Context(), cache.KindPortfolio, p.ID, store.ActionCreate, p.Slug)
	writeJSON(w, http.StatusCreated, envelope{Success: true, Data: p})
}

// PortfolioUpdate applies a partial update.
func (a *Admin) PortfolioUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var patch models.PortfolioPatch
	if err := decodeJSON(w, r, &patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	normalizePortfolioPatch(&patch)
	if msg := validatePortfolioPatch(&patch); msg != "" {
		writeError(w, http.StatusUnprocessableEntity, msg)
		return
	}

	ctx := r.Context()
	before, ok := a.findPortfolio(w, ctx, id)
	if !ok {
		return
	}
	if patch.IsPublished != nil && *patch.IsPublished {
		merged := *before
		if patch.Title != nil {
			merged.Title = *patch.Title
		}
		if patch.Description != nil {
			merged.Description = *patch.Description
		}
		if msg := publishable(&merged); msg != "" {
			writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
	}

	p, err := a.portfolios.Update(ctx, id, patch)
	if err != nil {
		a.storeError(w, "update portfolio", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Portfolio not found")
		return
	}
	a.inv.entity(ctx, cache.KindPortfolio, id, store.ActionUpdate, before.Slug, p.Slug)
	writeOK(w, p)
}

// PortfolioTogglePublished flips the published flag.
func (a *Admin) PortfolioTogglePublished(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	before, ok := a.findPortfolio(w, ctx, id)
	if !ok {
		return
	}
	if !before.IsPublished {
		if msg := publishable(before); msg != "" {
			writeError(w, http.StatusUnprocessableEntity, msg)
			return
		}
	}
	a.toggle(w, r, id, a.portfolios.TogglePublished)
}

// PortfolioTogglePremier flips the premier flag.
func (a *Admin) PortfolioTogglePremier(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	a.toggle(w, r, id, a.portfolios.TogglePremier)
}

func (a *Admin) toggle(w http.ResponseWriter, r *http.Request, id uuid.UUID, fn func(context.Context, uuid.UUID) (*models.Portfolio, error)) {
	p, err := fn(r.Context(), id)
	if err != nil {
		a.storeError(w, "toggle portfolio", err)
		return
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Portfolio not found")
		return
	}
	a.inv.entity(r.Context(), cache.KindPortfolio, id, store.ActionUpdate, p.Slug)
	writeOK(w, p)
}

// PortfolioDelete removes a case.
func (a *Admin) PortfolioDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	p, ok := a.findPortfolio(w, ctx, id)
	if !ok {
		return
	}
	deleted, err := a.portfolios.Delete(ctx, id)
	if err != nil {
		a.storeError(w, "delete portfolio", err)
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "Portfolio not found")
		return
	}
	a.inv.entity(ctx, cache.KindPortfolio, id, store.ActionDelete, p.Slug)
	writeOK(w, nil)
}

// PortfolioClearTranslation drops the cached translation of a case.
func (a *Admin) PortfolioClearTranslation(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	ctx := r.Context()
	cleared, err := a.portfolios.ClearTranslation(ctx, id)
	if err != nil {
		a.storeError(w, "clear portfolio translation", err)
		return
	}
	if !cleared {
		writeError(w, http.StatusNotFound, "Portfolio not found")
		return
	}
	var slug string
	if p, err := a.portfolios.FindByID(ctx, id); err == nil && p != nil {
		slug = p.Slug
	}
	a.inv.entity(ctx, cache.KindPortfolio, id, store.ActionUntranslate, slug)
	writeOK(w, nil)
}

// findPortfolio loads a case, answering 404 or 500 itself.
func (a *Admin) findPortfolio(w http.ResponseWriter, ctx context.Context, id uuid.UUID) (*models.Portfolio, bool) {
	p, err := a.portfolios.FindByID(ctx, id)
	if err != nil {
		a.storeError(w, "find portfolio", err)
		return nil, false
	}
	if p == nil {
		writeError(w, http.StatusNotFound, "Portfolio not found")
		return nil, false
	}
	return p, true
}
