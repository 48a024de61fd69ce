// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers of the kulipoly API, grouped
// by concern: public reads, translation, contact, auth and admin. Each
// group receives its dependencies as interfaces so tests can use fakes.
package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"

	"kulipoly/internal/cache"
	"kulipoly/internal/models"
	"kulipoly/internal/session"
	"kulipoly/internal/store"
)

// BlogStore is the blog persistence used by the handlers.
type BlogStore interface {
	ListPublished(ctx context.Context) ([]models.BlogPost, error)
	ListAll(ctx context.Context) ([]models.BlogPost, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	Create(ctx context.Context, in models.BlogInput) (*models.BlogPost, error)
	Update(ctx context.Context, id uuid.UUID, patch models.BlogPatch) (*models.BlogPost, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SaveTranslation(ctx context.Context, id uuid.UUID, t models.BlogTranslation) error
	ClearTranslation(ctx context.Context, id uuid.UUID) (bool, error)
	Counts(ctx context.Context) (store.Counts, error)
}

// PortfolioStore is the portfolio persistence used by the handlers.
type PortfolioStore interface {
	ListPublished(ctx context.Context, premierOnly bool) ([]models.Portfolio, error)
	ListAll(ctx context.Context) ([]models.Portfolio, error)
	ListRelated(ctx context.Context, p *models.Portfolio) ([]models.Portfolio, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Portfolio, error)
	FindPublishedBySlug(ctx context.Context, slug string) (*models.Portfolio, error)
	Create(ctx context.Context, in models.PortfolioInput) (*models.Portfolio, error)
	Update(ctx context.Context, id uuid.UUID, patch models.PortfolioPatch) (*models.Portfolio, error)
	TogglePublished(ctx context.Context, id uuid.UUID) (*models.Portfolio, error)
	TogglePremier(ctx context.Context, id uuid.UUID) (*models.Portfolio, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	SaveTranslation(ctx context.Context, id uuid.UUID, t models.PortfolioTranslation) error
	ClearTranslation(ctx context.Context, id uuid.UUID) (bool, error)
	Counts(ctx context.Context) (store.Counts, error)
}

// UserStore is the admin account persistence used by the auth handlers.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetTOTPSecret(ctx context.Context, userID uuid.UUID, secret string) error
	EnableTOTP(ctx context.Context, userID uuid.UUID) error
	CheckPassword(user *models.User, password string) bool
}

// Sessions manages admin sessions.
type Sessions interface {
	Create(ctx context.Context, w http.ResponseWriter, data *session.Data) (string, error)
	Update(ctx context.Context, r *http.Request, data *session.Data) error
	Destroy(ctx context.Context, w http.ResponseWriter, r *http.Request) error
}

// ResponseCache stores rendered public responses.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, body []byte)
	Invalidate(ctx context.Context, kind cache.Kind, slug string)
}

// CacheLog records cache invalidations.
type CacheLog interface {
	Log(ctx context.Context, entityType string, entityID uuid.UUID, action string)
	RecentEntries(ctx context.Context, limit int) ([]store.CacheLogEntry, error)
}

// MediaStorage holds uploaded admin media.
type MediaStorage interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
	KeyFromURL(rawURL string) (string, bool)
}

// nopCache is used when Valkey is not configured.
type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]byte, bool)     { return nil, false }
func (nopCache) Set(context.Context, string, []byte)            {}
func (nopCache) Invalidate(context.Context, cache.Kind, string) {}

func orNopCache(c ResponseCache) ResponseCache {
	if c == nil {
		return nopCache{}
	}
	return c
}
