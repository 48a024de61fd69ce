// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"kulipoly/internal/store"
)

// recentLogEntries is how many cache log entries the dashboard shows.
const recentLogEntries = 20

// Admin groups the authenticated content management handlers.
type Admin struct {
	blogs      BlogStore
	portfolios PortfolioStore
	log        CacheLog
	media      MediaStorage
	inv        invalidator
}

// NewAdmin creates a new Admin handler group. rc, log and media may be
// nil; media endpoints then answer 503.
func NewAdmin(blogs BlogStore, portfolios PortfolioStore, rc ResponseCache, log CacheLog, media MediaStorage) *Admin {
	return &Admin{
		blogs:      blogs,
		portfolios: portfolios,
		log:        log,
		media:      media,
		inv:        invalidator{cache: orNopCache(rc), log: log},
	}
}

type dashboardStats struct {
	Blog       store.Counts          `json:"blog"`
	Portfolio  store.Counts          `json:"portfolio"`
	RecentLogs []store.CacheLogEntry `json:"recent_invalidations"`
}

// Stats returns content totals and recent cache invalidations.
func (a *Admin) Stats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var stats dashboardStats
	var err error

	if stats.Blog, err = a.blogs.Counts(ctx); err != nil {
		a.storeError(w, "count blog posts", err)
		return
	}
	if stats.Portfolio, err = a.portfolios.Counts(ctx); err != nil {
		a.storeError(w, "count portfolios", err)
		return
	}
	if a.log != nil {
		if stats.RecentLogs, err = a.log.RecentEntries(ctx, recentLogEntries); err != nil {
			slog.Warn("load cache log failed", "error", err)
		}
	}
	if stats.RecentLogs == nil {
		stats.RecentLogs = []store.CacheLogEntry{}
	}
	writeOK(w, stats)
}

// storeError maps a store failure to a response.
func (a *Admin) storeError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, store.ErrSlugTaken) {
		writeError(w, http.StatusConflict, "Slug is already in use")
		return
	}
	slog.Error(op+" failed", "error", err)
	writeError(w, http.StatusInternalServerError, "Internal Server Error")
}
