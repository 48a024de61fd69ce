// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"

	"kulipoly/internal/i18n"
)

// Language resolves the visitor's display language and stores it in the
// request context for handlers to read with i18n.FromContext. Responses
// vary on the inputs that select it.
func Language(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lang := i18n.FromRequest(r)
		w.Header().Add("Vary", "Accept-Language, Cookie")
		w.Header().Set("Content-Language", lang.String())
		next.ServeHTTP(w, r.WithContext(i18n.WithLanguage(r.Context(), lang)))
	})
}
