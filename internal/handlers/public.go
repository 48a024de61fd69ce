// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"kulipoly/internal/autotranslate"
	"kulipoly/internal/cache"
	"kulipoly/internal/i18n"
	"kulipoly/internal/markdown"
	"kulipoly/internal/models"
	"kulipoly/internal/translate"
)

// DefaultTranslateWait bounds how long a detail request waits for an
// on-demand translation before answering with the original text.
const DefaultTranslateWait = 20 * time.Second

// Public serves the read-only API of the marketing site. Responses are
// localized to the request language and cached per language.
type Public struct {
	blogs      BlogStore
	portfolios PortfolioStore
	cache      ResponseCache
	blog       *autotranslate.BlogAdapter
	portfolio  *autotranslate.PortfolioAdapter
	wait       time.Duration
	flight     singleflight.Group
}

// NewPublic creates the public handler group. rc and log may be nil.
func NewPublic(blogs BlogStore, portfolios PortfolioStore, svc *translate.Service, rc ResponseCache, log CacheLog) *Public {
	rc = orNopCache(rc)
	inv := invalidator{cache: rc, log: log}
	return &Public{
		blogs:      blogs,
		portfolios: portfolios,
		cache:      rc,
		blog:       autotranslate.NewBlogAdapter(svc, blogCacheWriter{store: blogs, inv: inv}),
		portfolio:  autotranslate.NewPortfolioAdapter(svc, portfolioCacheWriter{store: portfolios, inv: inv}),
		wait:       DefaultTranslateWait,
	}
}

// blogSummary is a blog index card.
type blogSummary struct {
	ID          uuid.UUID           `json:"id"`
	Slug        string              `json:"slug"`
	Title       string              `json:"title"`
	Subtitle    string              `json:"subtitle"`
	Date        string              `json:"date"`
	Category    models.BlogCategory `json:"category"`
	Thumbnail   string              `json:"thumbnail"`
	ReadingTime string              `json:"reading_time"`
}

type blogListResponse struct {
	Language i18n.Language `json:"language"`
	Posts    []blogSummary `json:"posts"`
}

type blogDetailResponse struct {
	Language          i18n.Language            `json:"language"`
	TranslationStatus autotranslate.Status     `json:"translation_status"`
	Post              models.LocalizedBlogPost `json:"post"`
}

type portfolioListResponse struct {
	Language   i18n.Language               `json:"language"`
	Portfolios []models.LocalizedPortfolio `json:"portfolios"`
}

type portfolioDetailResponse struct {
	Language          i18n.Language               `json:"language"`
	TranslationStatus autotranslate.Status        `json:"translation_status"`
	Portfolio         models.LocalizedPortfolio   `json:"portfolio"`
	Related           []models.LocalizedPortfolio `json:"related"`
}

// BlogList returns published posts, newest first, in the request language.
// Listings use cached translations only.
func (p *Public) BlogList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.FromContext(ctx)
	key := cache.Key(cache.KindBlog, "", lang)
	if p.serveCached(w, r, key) {
		return
	}

	posts, err := p.blogs.ListPublished(ctx)
	if err != nil {
		slog.Error("list published blog posts failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	resp := blogListResponse{Language: lang, Posts: make([]blogSummary, 0, len(posts))}
	for i := range posts {
		v := i18n.ResolveBlogPost(&posts[i], lang)
		resp.Posts = append(resp.Posts, blogSummary{
			ID: v.ID, Slug: v.Slug, Title: v.Title, Subtitle: v.Subtitle, Date: v.Date,
			Category: v.Category, Thumbnail: v.Thumbnail, ReadingTime: v.ReadingTime,
		})
	}
	p.respond(ctx, w, key, resp, true)
}

// BlogDetail returns one published post. In the target language a missing
// translation is produced on demand and written back.
func (p *Public) BlogDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.FromContext(ctx)
	slug := chi.URLParam(r, "slug")
	key := cache.Key(cache.KindBlog, slug, lang)
	if p.serveCached(w, r, key) {
		return
	}

	post, err := p.blogs.FindPublishedBySlug(ctx, slug)
	if err != nil {
		slog.Error("find blog post failed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if post == nil {
		writeError(w, http.StatusNotFound, i18n.T(lang, "not_found"))
		return
	}

	view, status := localize(p, "blog:"+post.ID.String()+":"+lang.String(), func(ctx context.Context) (models.LocalizedBlogPost, autotranslate.Status) {
		return autotranslate.Localize(ctx, p.blog, post, lang)
	})
	view.Content = markdown.RenderBlocks(view.Content)

	w.Header().Set("X-Translation-Status", string(status))
	p.respond(ctx, w, key, blogDetailResponse{Language: lang, TranslationStatus: status, Post: view}, status != autotranslate.StatusError)
}

// PortfolioList returns published cases in the request language.
// ?premier=true restricts the list to premier cases.
func (p *Public) PortfolioList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.FromContext(ctx)
	premier := r.URL.Query().Get("premier") == "true"
	key := cache.Key(cache.KindPortfolio, "", lang)
	if premier {
		key = cache.ListKey(cache.KindPortfolio, lang, "premier")
	}
	if p.serveCached(w, r, key) {
		return
	}

	cases, err := p.portfolios.ListPublished(ctx, premier)
	if err != nil {
		slog.Error("list published portfolios failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	p.respond(ctx, w, key, portfolioListResponse{Language: lang, Portfolios: resolvePortfolios(cases, lang)}, true)
}

// PortfolioDetail returns one published case with up to three related
// cases that share a tag.
func (p *Public) PortfolioDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := i18n.FromContext(ctx)
	slug := chi.URLParam(r, "slug")
	key := cache.Key(cache.KindPortfolio, slug, lang)
	if p.serveCached(w, r, key) {
		return
	}

	pf, err := p.portfolios.FindPublishedBySlug(ctx, slug)
	if err != nil {
		slog.Error("find portfolio failed", "slug", slug, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if pf == nil {
		writeError(w, http.StatusNotFound, i18n.T(lang, "not_found"))
		return
	}

	view, status := localize(p, "portfolio:"+pf.ID.String()+":"+lang.String(), func(ctx context.Context) (models.LocalizedPortfolio, autotranslate.Status) {
		return autotranslate.Localize(ctx, p.portfolio, pf, lang)
	})

	related, err := p.portfolios.ListRelated(ctx, pf)
	if err != nil {
		slog.Warn("list related portfolios failed", "slug", slug, "error", err)
	}

	w.Header().Set("X-Translation-Status", string(status))
	p.respond(ctx, w, key, portfolioDetailResponse{
		Language:          lang,
		TranslationStatus: status,
		Portfolio:         view,
		Related:           resolvePortfolios(related, lang),
	}, status != autotranslate.StatusError)
}

// localize collapses concurrent localizations of the same entity and
// language into one run bounded by the translate wait.
func localize[V any](p *Public, key string, run func(context.Context) (V, autotranslate.Status)) (V, autotranslate.Status) {
	type result struct {
		view   V
		status autotranslate.Status
	}
	v, _, _ := p.flight.Do(key, func() (any, error) {
		ctx, cancel := context.WithTimeout(context.Background(), p.wait)
		defer cancel()
		view, status := run(ctx)
		return result{view, status}, nil
	})
	res := v.(result)
	return res.view, res.status
}

func resolvePortfolios(cases []models.Portfolio, lang i18n.Language) []models.LocalizedPortfolio {
	out := make([]models.LocalizedPortfolio, 0, len(cases))
	for i := range cases {
		out = append(out, i18n.ResolvePortfolio(&cases[i], lang))
	}
	return out
}

func (p *Public) serveCached(w http.ResponseWriter, r *http.Request, key string) bool {
	body, ok := p.cache.Get(r.Context(), key)
	if !ok {
		return false
	}
	w.Header().Set("X-Cache", "HIT")
	writeRaw(w, http.StatusOK, body)
	return true
}

// respond encodes v, stores it under key when cacheable, and writes it.
func (p *Public) respond(ctx context.Context, w http.ResponseWriter, key string, v any, cacheable bool) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("encode public response failed", "key", key, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	if cacheable {
		p.cache.Set(ctx, key, body)
	}
	w.Header().Set("X-Cache", "MISS")
	writeRaw(w, http.StatusOK, body)
}

// languageRequest is the body of SetLanguage.
type languageRequest struct {
	Language string `json:"language"`
}

// languageCookieMaxAge keeps the preference for a year.
const languageCookieMaxAge = 365 * 24 * 60 * 60

// GetLanguage reports the language resolved for this request.
func (p *Public) GetLanguage(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]i18n.Language{"language": i18n.FromContext(r.Context())})
}

// SetLanguage persists the visitor's language preference in a cookie.
func (p *Public) SetLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	lang, ok := i18n.Parse(req.Language)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unsupported language")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     i18n.CookieName,
		Value:    lang.String(),
		Path:     "/",
		MaxAge:   languageCookieMaxAge,
		SameSite: http.SameSiteLaxMode,
	})
	writeOK(w, map[string]i18n.Language{"language": lang})
}
