// Package router sets up all HTTP routes and middleware chains for the
// Kulipoly API. Routes are organized into public and admin groups with
// their own middleware stacks.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"kulipoly/internal/handlers"
	"kulipoly/internal/middleware"
)

// Deps holds everything the router wires together. The rate limiters are
// optional.
type Deps struct {
	Sessions      middleware.SessionGetter
	SecureCookies bool

	Public    *handlers.Public
	Translate *handlers.Translate
	Contact   *handlers.Contact
	Auth      *handlers.Auth
	Admin     *handlers.Admin

	ContactLimiter   *middleware.RateLimiter
	TranslateLimiter *middleware.RateLimiter
	LoginLimiter     *middleware.RateLimiter
}

// New creates and returns the configured Chi router.
func New(d Deps) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders(d.SecureCookies))
	r.Use(middleware.Language)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Get("/language", d.Public.GetLanguage)
		r.Post("/language", d.Public.SetLanguage)

		r.Get("/blog", d.Public.BlogList)
		r.Get("/blog/{slug}", d.Public.BlogDetail)
		r.Get("/portfolio", d.Public.PortfolioList)
		r.Get("/portfolio/{slug}", d.Public.PortfolioDetail)

		r.Group(func(r chi.Router) {
			r.Use(limit(d.TranslateLimiter))
			r.Post("/translate/blog", d.Translate.Blog)
			r.Post("/translate/portfolio", d.Translate.Portfolio)
		})

		r.With(limit(d.ContactLimiter)).Post("/contact", d.Contact.Submit)
	})

	r.Route("/admin/api", func(r chi.Router) {
		r.Use(middleware.LoadSession(d.Sessions))

		r.Group(func(r chi.Router) {
			r.Use(middleware.CSRF(d.SecureCookies))
			r.Get("/csrf", csrfHandler)
			r.With(limit(d.LoginLimiter)).Post("/login", d.Auth.Login)
			r.Post("/logout", d.Auth.Logout)
		})

		// Session checks run before CSRF so anonymous writes get 401.
		// 2FA: requires a session but not completed 2FA.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.CSRF(d.SecureCookies))
			r.Get("/me", d.Auth.Me)
			r.Post("/2fa/setup", d.Auth.TwoFASetup)
			r.With(limit(d.LoginLimiter)).Post("/2fa/verify", d.Auth.TwoFAVerify)
		})

		// Authenticated and 2FA-verified.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(middleware.CSRF(d.SecureCookies))
			r.Use(middleware.Require2FA)

			r.Get("/stats", d.Admin.Stats)

			r.Route("/blog", func(r chi.Router) {
				r.Get("/", d.Admin.BlogList)
				r.Post("/", d.Admin.BlogCreate)
				r.Get("/{id}", d.Admin.BlogGet)
				r.Patch("/{id}", d.Admin.BlogUpdate)
				r.Delete("/{id}", d.Admin.BlogDelete)
				r.Delete("/{id}/translation", d.Admin.BlogClearTranslation)
			})

			r.Route("/portfolio", func(r chi.Router) {
				r.Get("/", d.Admin.PortfolioList)
				r.Post("/", d.Admin.PortfolioCreate)
				r.Get("/{id}", d.Admin.PortfolioGet)
				r.Patch("/{id}", d.Admin.PortfolioUpdate)
				r.Delete("/{id}", d.Admin.PortfolioDelete)
				r.Post("/{id}/publish", d.Admin.PortfolioTogglePublished)
				r.Post("/{id}/premier", d.Admin.PortfolioTogglePremier)
				r.Delete("/{id}/translation", d.Admin.PortfolioClearTranslation)
			})

			r.Post("/media", d.Admin.MediaUpload)
			r.Delete("/media", d.Admin.MediaDelete)
		})
	})

	return r
}

// limit applies rl when configured.
func limit(rl *middleware.RateLimiter) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Middleware
}

// csrfHandler lets the admin client obtain the CSRF cookie before login.
func csrfHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"success":true}`))
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
