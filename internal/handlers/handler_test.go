// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides in-memory fakes shared by the handler tests.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"kulipoly/internal/cache"
	"kulipoly/internal/i18n"
	"kulipoly/internal/middleware"
	"kulipoly/internal/models"
	"kulipoly/internal/session"
	"kulipoly/internal/store"
	"kulipoly/internal/translate"
)

var errBoom = errors.New("boom")

// --- blog store ---

type fakeBlogStore struct {
	mu    sync.Mutex
	posts map[uuid.UUID]*models.BlogPost
	saved map[uuid.UUID]models.BlogTranslation
	err   error
}

func newFakeBlogStore(posts ...*models.BlogPost) *fakeBlogStore {
	s := &fakeBlogStore{posts: map[uuid.UUID]*models.BlogPost{}, saved: map[uuid.UUID]models.BlogTranslation{}}
	for _, p := range posts {
		s.posts[p.ID] = p
	}
	return s
}

func (s *fakeBlogStore) ListPublished(context.Context) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BlogPost
	for _, p := range s.posts {
		if p.IsPublished {
			out = append(out, *p)
		}
	}
	slices.SortFunc(out, func(a, b models.BlogPost) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, s.err
}

func (s *fakeBlogStore) ListAll(context.Context) ([]models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.BlogPost
	for _, p := range s.posts {
		out = append(out, *p)
	}
	return out, s.err
}

func (s *fakeBlogStore) FindByID(_ context.Context, id uuid.UUID) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if p, ok := s.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (s *fakeBlogStore) FindPublishedBySlug(_ context.Context, slug string) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.posts {
		if p.Slug == slug && p.IsPublished {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeBlogStore) slugTaken(slug string, except uuid.UUID) bool {
	for id, p := range s.posts {
		if id != except && p.Slug == slug {
			return true
		}
	}
	return false
}

func (s *fakeBlogStore) Create(_ context.Context, in models.BlogInput) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.slugTaken(in.Slug, uuid.Nil) {
		return nil, store.ErrSlugTaken
	}
	p := &models.BlogPost{
		ID: uuid.New(), Slug: in.Slug, Title: in.Title, Subtitle: in.Subtitle, Date: in.Date,
		Category: in.Category, Thumbnail: in.Thumbnail, ReadingTime: in.ReadingTime,
		Content: in.Content, IsPublished: in.IsPublished, CreatedAt: time.Now(),
		TitleEn: in.TitleEn, SubtitleEn: in.SubtitleEn, ContentEn: in.ContentEn,
	}
	s.posts[p.ID] = p
	cp := *p
	return &cp, nil
}

func (s *fakeBlogStore) Update(_ context.Context, id uuid.UUID, patch models.BlogPatch) (*models.BlogPost, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	if patch.Slug != nil {
		if s.slugTaken(*patch.Slug, id) {
			return nil, store.ErrSlugTaken
		}
		p.Slug = *patch.Slug
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.ContentEn != nil {
		p.ContentEn = *patch.ContentEn
	}
	if patch.IsPublished != nil {
		p.IsPublished = *patch.IsPublished
	}
	cp := *p
	return &cp, nil
}

func (s *fakeBlogStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[id]; !ok {
		return false, nil
	}
	delete(s.posts, id)
	return true, nil
}

func (s *fakeBlogStore) SaveTranslation(_ context.Context, id uuid.UUID, t models.BlogTranslation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.saved[id] = t
	if p, ok := s.posts[id]; ok {
		p.TitleEn, p.SubtitleEn, p.ContentEn = &t.Title, &t.Subtitle, t.Content
	}
	return nil
}

func (s *fakeBlogStore) ClearTranslation(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return false, nil
	}
	p.TitleEn, p.SubtitleEn, p.ContentEn = nil, nil, nil
	return true, nil
}

func (s *fakeBlogStore) Counts(context.Context) (store.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var c store.Counts
	for _, p := range s.posts {
		c.Total++
		if p.IsPublished {
			c.Published++
		}
		if p.HasTranslation() {
			c.Translated++
		}
	}
	return c, s.err
}

func (s *fakeBlogStore) savedTranslation(id uuid.UUID) (models.BlogTranslation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.saved[id]
	return t, ok
}

// --- portfolio store ---

type fakePortfolioStore struct {
	mu    sync.Mutex
	cases map[uuid.UUID]*models.Portfolio
	saved map[uuid.UUID]models.PortfolioTranslation
	err   error
}

func newFakePortfolioStore(cases ...*models.Portfolio) *fakePortfolioStore {
	s := &fakePortfolioStore{cases: map[uuid.UUID]*models.Portfolio{}, saved: map[uuid.UUID]models.PortfolioTranslation{}}
	for _, p := range cases {
		s.cases[p.ID] = p
	}
	return s
}

func (s *fakePortfolioStore) ListPublished(_ context.Context, premierOnly bool) ([]models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Portfolio
	for _, p := range s.cases {
		if p.IsPublished && (!premierOnly || p.IsPremier) {
			out = append(out, *p)
		}
	}
	return out, s.err
}

func (s *fakePortfolioStore) ListAll(context.Context) ([]models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Portfolio
	for _, p := range s.cases {
		out = append(out, *p)
	}
	return out, s.err
}

func (s *fakePortfolioStore) ListRelated(_ context.Context, target *models.Portfolio) ([]models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Portfolio
	for _, p := range s.cases {
		if p.ID == target.ID || !p.IsPublished {
			continue
		}
		for _, tag := range p.Tags {
			if slices.Contains(target.Tags, tag) {
				out = append(out, *p)
				break
			}
		}
	}
	return out, nil
}

func (s *fakePortfolioStore) FindByID(_ context.Context, id uuid.UUID) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	if p, ok := s.cases[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (s *fakePortfolioStore) FindPublishedBySlug(_ context.Context, slug string) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.cases {
		if p.Slug == slug && p.IsPublished {
			cp := *p
			return &cp, nil
		}
	}
	return nil, s.err
}

func (s *fakePortfolioStore) Create(_ context.Context, in models.PortfolioInput) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.cases {
		if p.Slug == in.Slug {
			return nil, store.ErrSlugTaken
		}
	}
	p := &models.Portfolio{
		ID: uuid.New(), Slug: in.Slug, Title: in.Title, Description: in.Description,
		Tags: in.Tags, IsPublished: in.IsPublished, IsPremier: in.IsPremier,
	}
	s.cases[p.ID] = p
	cp := *p
	return &cp, nil
}

func (s *fakePortfolioStore) Update(_ context.Context, id uuid.UUID, patch models.PortfolioPatch) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.cases[id]
	if !ok {
		return nil, nil
	}
	if patch.Slug != nil {
		p.Slug = *patch.Slug
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.IsPublished != nil {
		p.IsPublished = *patch.IsPublished
	}
	cp := *p
	return &cp, nil
}

func (s *fakePortfolioStore) toggle(id uuid.UUID, flip func(*models.Portfolio)) (*models.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.cases[id]
	if !ok {
		return nil, nil
	}
	flip(p)
	cp := *p
	return &cp, nil
}

func (s *fakePortfolioStore) TogglePublished(_ context.Context, id uuid.UUID) (*models.Portfolio, error) {
	return s.toggle(id, func(p *models.Portfolio) { p.IsPublished = !p.IsPublished })
}

func (s *fakePortfolioStore) TogglePremier(_ context.Context, id uuid.UUID) (*models.Portfolio, error) {
	return s.toggle(id, func(p *models.Portfolio) { p.IsPremier = !p.IsPremier })
}

func (s *fakePortfolioStore) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cases[id]; !ok {
		return false, nil
	}
	delete(s.cases, id)
	return true, nil
}

func (s *fakePortfolioStore) SaveTranslation(_ context.Context, id uuid.UUID, t models.PortfolioTranslation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[id] = t
	if p, ok := s.cases[id]; ok {
		p.TitleEn, p.DescriptionEn = &t.Title, &t.Description
	}
	return nil
}

func (s *fakePortfolioStore) ClearTranslation(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.cases[id]
	if !ok {
		return false, nil
	}
	p.TitleEn, p.DescriptionEn = nil, nil
	return true, nil
}

func (s *fakePortfolioStore) Counts(context.Context) (store.Counts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return store.Counts{Total: len(s.cases)}, s.err
}

func (s *fakePortfolioStore) savedTranslation(id uuid.UUID) (models.PortfolioTranslation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.saved[id]
	return t, ok
}

// --- cache and cache log ---

type fakeCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	invalidated []string
}

func newFakeCache() *fakeCache { return &fakeCache{entries: map[string][]byte{}} }

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	b, ok := c.entries[key]
	return b, ok
}

func (c *fakeCache) Set(_ context.Context, key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = body
}

func (c *fakeCache) Invalidate(_ context.Context, kind cache.Kind, slug string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, string(kind)+":"+slug)
	for key := range c.entries {
		if strings.HasPrefix(key, "resp:"+string(kind)+":") {
			delete(c.entries, key)
		}
	}
}

func (c *fakeCache) has(key string) bool {
	_, ok := c.Get(context.Background(), key)
	return ok
}

func (c *fakeCache) invalidations() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.invalidated)
}

type fakeCacheLog struct {
	mu      sync.Mutex
	actions []string
}

func (l *fakeCacheLog) Log(_ context.Context, entityType string, _ uuid.UUID, action string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.actions = append(l.actions, entityType+":"+action)
}

func (l *fakeCacheLog) RecentEntries(context.Context, int) ([]store.CacheLogEntry, error) {
	return nil, nil
}

func (l *fakeCacheLog) logged() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.actions)
}

// --- translator ---

// prefixTranslator "translates" by prefixing EN: unless failing is set.
type prefixTranslator struct {
	mu      sync.Mutex
	failing bool
	calls   int
}

func (p *prefixTranslator) Translate(_ context.Context, text string, _, _ i18n.Language) translate.Result {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.failing || strings.TrimSpace(text) == "" {
		return translate.Result{Text: text}
	}
	return translate.Result{Text: "EN:" + text, WasTranslated: true}
}

func newService(tr translate.Translator) *translate.Service {
	return translate.NewService(tr)
}

// --- sessions and users ---

type fakeSessions struct {
	created   *session.Data
	updated   *session.Data
	destroyed bool
}

func (f *fakeSessions) Create(_ context.Context, _ http.ResponseWriter, d *session.Data) (string, error) {
	f.created = d
	return "sid", nil
}

func (f *fakeSessions) Update(_ context.Context, _ *http.Request, d *session.Data) error {
	f.updated = d
	return nil
}

func (f *fakeSessions) Destroy(context.Context, http.ResponseWriter, *http.Request) error {
	f.destroyed = true
	return nil
}

type fakeUsers struct {
	user     *models.User
	password string
	enabled  bool
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

func (f *fakeUsers) SetTOTPSecret(_ context.Context, _ uuid.UUID, secret string) error {
	f.user.TOTPSecret = &secret
	return nil
}

func (f *fakeUsers) EnableTOTP(context.Context, uuid.UUID) error {
	f.enabled = true
	f.user.TOTPEnabled = true
	return nil
}

func (f *fakeUsers) CheckPassword(_ *models.User, password string) bool {
	return password == f.password
}

// --- request helpers ---

func withLang(r *http.Request, lang i18n.Language) *http.Request {
	return r.WithContext(i18n.WithLanguage(r.Context(), lang))
}

func withParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		rctx = chi.NewRouteContext()
		r = r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(key, value)
	return r
}

func withSession(r *http.Request, d *session.Data) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionKey, d))
}

func jsonRequest(method, target, body string) *http.Request {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	r := httptest.NewRequest(method, target, rd)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// decodeEnvelope decodes an {success,error,data} response, unmarshalling
// data into out when non-nil.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, out any) envelope {
	t.Helper()
	var raw struct {
		Success bool            `json:"success"`
		Error   string          `json:"error"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if out != nil && len(raw.Data) > 0 {
		if err := json.Unmarshal(raw.Data, out); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return envelope{Success: raw.Success, Error: raw.Error}
}

// eventually polls cond until it holds or a second passes.
func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met within 1s")
}

func strPtr(s string) *string { return &s }

func samplePost(slug string, published bool) *models.BlogPost {
	return &models.BlogPost{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       "Judul " + slug,
		Subtitle:    "Subjudul",
		Category:    models.CategoryInsight,
		Content:     models.Blocks{models.TextBlock{ID: "b1", Text: "Halo **dunia**"}},
		IsPublished: published,
		CreatedAt:   time.Now(),
	}
}

func sampleCase(slug string, published bool, tags ...models.ProjectTag) *models.Portfolio {
	return &models.Portfolio{
		ID:          uuid.New(),
		Slug:        slug,
		Title:       "Proyek " + slug,
		Description: "Deskripsi",
		Tags:        tags,
		IsPublished: published,
	}
}
