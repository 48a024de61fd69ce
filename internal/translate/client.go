// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package translate machine-translates content through the public Google
// Translate "gtx" endpoint. Translation is best-effort: every failure
// degrades to the original text and no error ever reaches the caller.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"kulipoly/internal/i18n"
)

// DefaultBaseURL is the free web endpoint used by the site.
const DefaultBaseURL = "https://translate.googleapis.com/translate_a/single"

const (
	defaultRate    = 10
	defaultTimeout = 15 * time.Second
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	maxBodyBytes   = 4 << 20
)

// Result is the outcome of a single translation. WasTranslated is false
// whenever Text is the untouched input (or empty).
type Result struct {
	Text          string `json:"text"`
	WasTranslated bool   `json:"wasTranslated"`
}

// Translator translates one string. Implementations never fail; they
// return the input with WasTranslated=false instead.
type Translator interface {
	Translate(ctx context.Context, text string, source, target i18n.Language) Result
}

// Client calls the gtx endpoint. Outbound calls share one token bucket.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Client. Zero values select the defaults: the public
// endpoint, 10 requests per second, and a 15 second timeout.
func NewClient(baseURL string, qps int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if qps <= 0 {
		qps = defaultRate
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(qps), qps),
	}
}

// Translate returns text translated from source to target. Blank input
// yields an empty, untranslated result without a request.
func (c *Client) Translate(ctx context.Context, text string, source, target i18n.Language) Result {
	if strings.TrimSpace(text) == "" {
		return Result{}
	}

	translated, err := c.do(ctx, text, source, target)
	if err != nil {
		slog.Warn("translation failed, using original text",
			"source", source, "target", target, "chars", len(text), "error", err)
		return Result{Text: text}
	}
	return Result{Text: translated, WasTranslated: true}
}

func (c *Client) do(ctx context.Context, text string, source, target i18n.Language) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", source.String())
	q.Set("tl", target.String())
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("translate read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("translate API error (status %d)", resp.StatusCode)
	}

	return parseResponse(body)
}

var errShape = errors.New("unexpected response shape")

// parseResponse extracts the translation from a gtx response of the form
// [[["translated","original",...], ...], null, "id", ...]. The segments in
// the first element are concatenated.
func parseResponse(body []byte) (string, error) {
	var data []any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("translate unmarshal: %w", err)
	}
	if len(data) == 0 {
		return "", errShape
	}
	segments, ok := data[0].([]any)
	if !ok || len(segments) == 0 {
		return "", errShape
	}

	var sb strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			return "", errShape
		}
		s, ok := parts[0].(string)
		if !ok {
			return "", errShape
		}
		sb.WriteString(s)
	}
	if sb.Len() == 0 {
		return "", errShape
	}
	return sb.String(), nil
}
