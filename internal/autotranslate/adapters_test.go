// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package autotranslate

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"kulipoly/internal/i18n"
	"kulipoly/internal/models"
	"kulipoly/internal/translate"
)

type upperTranslator struct {
	fail   bool
	failOn string
}

func (u upperTranslator) Translate(_ context.Context, text string, _, _ i18n.Language) translate.Result {
	if strings.TrimSpace(text) == "" {
		return translate.Result{}
	}
	if u.fail || text == u.failOn {
		return translate.Result{Text: text}
	}
	return translate.Result{Text: strings.ToUpper(text), WasTranslated: true}
}

type fakeBlogWriter struct {
	mu    sync.Mutex
	saved map[uuid.UUID]models.BlogTranslation
}

func (w *fakeBlogWriter) SaveTranslation(_ context.Context, id uuid.UUID, t models.BlogTranslation) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.saved == nil {
		w.saved = map[uuid.UUID]models.BlogTranslation{}
	}
	w.saved[id] = t
	return nil
}

type fakePortfolioWriter struct {
	mu    sync.Mutex
	saved map[uuid.UUID]models.PortfolioTranslation
}

func (w *fakePortfolioWriter) SaveTranslation(_ context.Context, id uuid.UUID, t models.PortfolioTranslation) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.saved == nil {
		w.saved = map[uuid.UUID]models.PortfolioTranslation{}
	}
	w.saved[id] = t
	return nil
}

func TestBlogAdapter_MissingTranslationCache(t *testing.T) {
	post := &models.BlogPost{
		ID:      uuid.New(),
		Title:   "halo",
		Content: models.Blocks{models.TextBlock{ID: "a", Text: "isi"}},
	}
	if got := i18n.ResolveBlogPost(post, i18n.Target).Title; got != "halo" {
		t.Fatalf("before translation: got %q, want original", got)
	}

	w := &fakeBlogWriter{}
	a := NewBlogAdapter(translate.NewService(upperTranslator{}), w)
	c := New[*models.BlogPost, models.LocalizedBlogPost](a)

	c.Request(context.Background(), post, i18n.Target)
	view, status, err := c.Wait(waitCtx(t))
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	c.Flush()

	if status != StatusDone || view.Title != "HALO" {
		t.Errorf("got (%q, %q)", view.Title, status)
	}
	if view.Content[0].(models.TextBlock).Text != "ISI" {
		t.Errorf("content: got %+v", view.Content)
	}
	saved, ok := w.saved[post.ID]
	if !ok {
		t.Fatal("translation was not written back")
	}
	if saved.Title != "HALO" || len(saved.Content) != 1 {
		t.Errorf("saved: got %+v", saved)
	}
	if post.TitleEn != nil {
		t.Error("caller's entity must not be mutated")
	}
}

func TestBlogAdapter_FailureSkipsWriteBack(t *testing.T) {
	post := &models.BlogPost{ID: uuid.New(), Title: "halo"}
	w := &fakeBlogWriter{}
	a := NewBlogAdapter(translate.NewService(upperTranslator{fail: true}), w)

	view, status := Localize[*models.BlogPost, models.LocalizedBlogPost](context.Background(), a, post, i18n.Target)
	if status != StatusError || view.Title != "halo" {
		t.Errorf("got (%q, %q)", view.Title, status)
	}
	if len(w.saved) != 0 {
		t.Error("nothing should be written when translation failed")
	}
}

func TestBlogAdapter_PartialFailureIsNotCached(t *testing.T) {
	post := &models.BlogPost{
		ID:    uuid.New(),
		Title: "halo",
		Content: models.Blocks{
			models.TextBlock{ID: "a", Text: "paragraf satu"},
			models.TextBlock{ID: "b", Text: "paragraf dua"},
		},
	}
	w := &fakeBlogWriter{}
	a := NewBlogAdapter(translate.NewService(upperTranslator{failOn: "paragraf dua"}), w)
	c := New[*models.BlogPost, models.LocalizedBlogPost](a)

	c.Request(context.Background(), post, i18n.Target)
	view, status, err := c.Wait(waitCtx(t))
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	c.Flush()

	if status != StatusError || view.Title != "halo" {
		t.Errorf("got (%q, %q), want original with error status", view.Title, status)
	}
	if len(w.saved) != 0 {
		t.Errorf("partial translation was written back: %+v", w.saved)
	}
}

func TestPortfolioAdapter_PartialFailureIsNotCached(t *testing.T) {
	p := &models.Portfolio{
		ID:          uuid.New(),
		Title:       "simulasi",
		Description: "deskripsi",
		Results:     []string{"cepat", "hemat"},
	}
	w := &fakePortfolioWriter{}
	a := NewPortfolioAdapter(translate.NewService(upperTranslator{failOn: "hemat"}), w)

	_, status := Localize[*models.Portfolio, models.LocalizedPortfolio](context.Background(), a, p, i18n.Target)
	if status != StatusError {
		t.Errorf("status: got %q, want %q", status, StatusError)
	}
	if len(w.saved) != 0 {
		t.Errorf("partial translation was written back: %+v", w.saved)
	}
}

func TestPortfolioAdapter(t *testing.T) {
	p := &models.Portfolio{
		ID:          uuid.New(),
		Title:       "simulasi",
		Description: "deskripsi",
		Results:     []string{"cepat"},
		Testimonial: &models.Testimonial{Quote: "bagus", Author: "Budi", Position: "ceo"},
	}
	w := &fakePortfolioWriter{}
	a := NewPortfolioAdapter(translate.NewService(upperTranslator{}), w)
	c := New[*models.Portfolio, models.LocalizedPortfolio](a)

	c.Request(context.Background(), p, i18n.Target)
	view, status, _ := c.Wait(waitCtx(t))
	c.Flush()

	if status != StatusDone {
		t.Fatalf("status: got %q", status)
	}
	if view.Title != "SIMULASI" || view.Results[0] != "CEPAT" || view.Testimonial.Author != "Budi" {
		t.Errorf("view: got %+v", view)
	}
	saved := w.saved[p.ID]
	if saved.Testimonial == nil || saved.Testimonial.Quote != "BAGUS" {
		t.Errorf("saved testimonial: got %+v", saved.Testimonial)
	}
}

func TestPortfolioAdapter_CachedUsesStoredFields(t *testing.T) {
	en := "Simulation"
	p := &models.Portfolio{ID: uuid.New(), Title: "simulasi", TitleEn: &en}
	a := NewPortfolioAdapter(translate.NewService(upperTranslator{}), nil)

	view, status := Localize[*models.Portfolio, models.LocalizedPortfolio](context.Background(), a, p, i18n.Target)
	if status != StatusCached || view.Title != "Simulation" {
		t.Errorf("got (%q, %q)", view.Title, status)
	}
}
