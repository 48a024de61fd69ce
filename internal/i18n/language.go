// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package i18n decides which language a visitor sees and projects content
// entities into that language. Content is authored in Indonesian (the
// original language) and cached in English (the target language).
package i18n

import (
	"context"
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// Language is a supported display language code.
type Language string

const (
	Original Language = "id"
	Target   Language = "en"
)

// CookieName holds the visitor's persisted language preference.
const CookieName = "kulipoly-language"

var (
	supported = []Language{Original, Target}
	matcher   = language.NewMatcher([]language.Tag{language.Indonesian, language.English})
)

// String returns the language code.
func (l Language) String() string { return string(l) }

// IsTarget reports whether l is the translated language.
func (l Language) IsTarget() bool { return l == Target }

// Parse maps a language code or BCP 47 tag ("en", "EN", "en-US", "id-ID")
// to a supported Language. The second result is false when s names no
// supported language.
func Parse(s string) (Language, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch Language(s) {
	case Original, Target:
		return Language(s), true
	case "":
		return Original, false
	}

	tag, err := language.Parse(s)
	if err != nil {
		return Original, false
	}
	_, idx, conf := matcher.Match(tag)
	if conf < language.High {
		return Original, false
	}
	return supported[idx], true
}

// FromAcceptLanguage picks the best supported language for an
// Accept-Language header, defaulting to Original.
func FromAcceptLanguage(header string) Language {
	if header == "" {
		return Original
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return Original
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return Original
	}
	return supported[idx]
}

// FromRequest determines the display language for a request. Precedence:
// the "lang" query parameter, the preference cookie, the Accept-Language
// header, then Original.
func FromRequest(r *http.Request) Language {
	if lang, ok := Parse(r.URL.Query().Get("lang")); ok {
		return lang
	}
	if c, err := r.Cookie(CookieName); err == nil {
		if lang, ok := Parse(c.Value); ok {
			return lang
		}
	}
	return FromAcceptLanguage(r.Header.Get("Accept-Language"))
}

type contextKey struct{}

// WithLanguage returns a copy of ctx carrying lang.
func WithLanguage(ctx context.Context, lang Language) context.Context {
	return context.WithValue(ctx, contextKey{}, lang)
}

// FromContext returns the language stored by WithLanguage, or Original.
func FromContext(ctx context.Context) Language {
	if lang, ok := ctx.Value(contextKey{}).(Language); ok {
		return lang
	}
	return Original
}
