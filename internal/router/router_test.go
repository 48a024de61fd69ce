// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router tests verify the HTTP routing configuration, middleware
// chains, and the health endpoint.
package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"kulipoly/internal/handlers"
	"kulipoly/internal/i18n"
	"kulipoly/internal/mail"
	"kulipoly/internal/middleware"
	"kulipoly/internal/models"
	"kulipoly/internal/session"
	"kulipoly/internal/translate"
)

// stubSessions returns a fixed session, or none.
type stubSessions struct{ data *session.Data }

func (s stubSessions) Get(context.Context, *http.Request) (*session.Data, error) { return s.data, nil }

// blogStore implements only what the routed requests reach; any other
// call panics through the nil embedded interface.
type blogStore struct {
	handlers.BlogStore
	creates int
}

func (s *blogStore) ListPublished(context.Context) ([]models.BlogPost, error) { return nil, nil }

func (s *blogStore) Create(_ context.Context, in models.BlogInput) (*models.BlogPost, error) {
	s.creates++
	return &models.BlogPost{ID: uuid.New(), Slug: in.Slug}, nil
}

type portfolioStore struct{ handlers.PortfolioStore }

type echoTranslator struct{}

func (echoTranslator) Translate(_ context.Context, text string, _, _ i18n.Language) translate.Result {
	return translate.Result{Text: text}
}

type nopSender struct{}

func (nopSender) Send(context.Context, mail.Email) (string, error) { return "id", nil }

func newTestRouter(t *testing.T, sess *session.Data, blogs *blogStore, contactLimit *middleware.RateLimiter) http.Handler {
	t.Helper()
	svc := translate.NewService(echoTranslator{})
	portfolios := portfolioStore{}
	return New(Deps{
		Sessions:       stubSessions{data: sess},
		Public:         handlers.NewPublic(blogs, portfolios, svc, nil, nil),
		Translate:      handlers.NewTranslate(svc, blogs, portfolios, nil, nil),
		Contact:        handlers.NewContact(nopSender{}, "from@example.com", []string{"to@example.com"}, "example.com"),
		Auth:           handlers.NewAuth(nil, nil),
		Admin:          handlers.NewAdmin(blogs, portfolios, nil, nil, nil),
		ContactLimiter: contactLimit,
	})
}

const blogBody = `{"slug":"x","title":"X","content":[{"kind":"text","text":"x"}]}`

func TestHealthHandler(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/health", nil)

	healthHandler(w, r)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: got %d, want 200", resp.StatusCode)
	}

	ct := resp.Header.Get("Content-Type")
	if ct != "application/json" {
		t.Errorf("content-type: got %q, want %q", ct, "application/json")
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field: got %q, want %q", body["status"], "ok")
	}
}

func TestAnonymousWriteIsUnauthorized(t *testing.T) {
	blogs := &blogStore{}
	h := newTestRouter(t, nil, blogs, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/api/blog", strings.NewReader(blogBody)))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Unauthorized") {
		t.Errorf("body = %s", rec.Body)
	}
	if blogs.creates != 0 {
		t.Errorf("store mutated %d times", blogs.creates)
	}
}

func TestPending2FASessionIsForbidden(t *testing.T) {
	h := newTestRouter(t, &session.Data{UserID: uuid.New()}, &blogStore{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestAdminWriteNeedsCSRFToken(t *testing.T) {
	blogs := &blogStore{}
	h := newTestRouter(t, &session.Data{UserID: uuid.New(), TwoFADone: true}, blogs, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/api/blog", strings.NewReader(blogBody)))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("without token: status = %d, want 403", rec.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/admin/api/blog", strings.NewReader(blogBody))
	req.AddCookie(&http.Cookie{Name: middleware.CSRFCookieName, Value: "tok"})
	req.Header.Set(middleware.CSRFHeaderName, "tok")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("with token: status = %d, body %s", rec.Code, rec.Body)
	}
	if blogs.creates != 1 {
		t.Errorf("creates = %d, want 1", blogs.creates)
	}
}

func TestPublicRoutesCarryLanguage(t *testing.T) {
	h := newTestRouter(t, nil, &blogStore{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/blog", nil)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Language"); got != "en" {
		t.Errorf("Content-Language = %q", got)
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
}

func TestContactIsRateLimited(t *testing.T) {
	rl := middleware.NewRateLimiter(1, time.Minute)
	defer rl.Stop()
	h := newTestRouter(t, nil, &blogStore{}, rl)

	body := `{"name":"Ana","email":"ana@example.com","message":"Hi"}`
	var codes []int
	for range 2 {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body)))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v, want [200 429]", codes)
	}
}

func TestTranslateRouteRequiresID(t *testing.T) {
	h := newTestRouter(t, nil, &blogStore{}, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/translate/blog", strings.NewReader(`{"title":"Halo"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
