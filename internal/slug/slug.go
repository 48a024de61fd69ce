// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug generates and validates URL-safe slugs for blog posts and
// portfolio cases.
package slug

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds slugs so they fit comfortably in a URL path segment.
const MaxLength = 120

var (
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	separators      = regexp.MustCompile(`[\s_-]+`)
	valid           = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Validation errors returned by Validate.
var (
	ErrEmpty   = errors.New("slug is required")
	ErrTooLong = errors.New("slug is too long")
	ErrInvalid = errors.New("slug may only contain lowercase letters, digits and single hyphens")
)

// Generate creates a slug from a title: "Studio Baru di Bandung!" becomes
// "studio-baru-di-bandung". Accents are folded to their base letters.
func Generate(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	result := strings.ToLower(strings.TrimSpace(folded))
	result = strings.ReplaceAll(result, "_", " ")
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = separators.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	if len(result) > MaxLength {
		result = strings.TrimRight(result[:MaxLength], "-")
	}
	return result
}

// Validate reports whether s is a well-formed slug.
func Validate(s string) error {
	switch {
	case s == "":
		return ErrEmpty
	case len(s) > MaxLength:
		return ErrTooLong
	case !valid.MatchString(s):
		return ErrInvalid
	}
	return nil
}
