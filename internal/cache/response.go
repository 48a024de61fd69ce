// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"kulipoly/internal/i18n"
)

const (
	// keyPrefix is the Valkey key prefix for cached API responses.
	keyPrefix = "resp:"

	// listSlug is the slug segment used for collection responses.
	listSlug = "_list"

	// DefaultTTL is how long a localized response stays cached.
	DefaultTTL = 5 * time.Minute
)

// Kind names the entity family a cached response belongs to.
type Kind string

const (
	KindBlog      Kind = "blog"
	KindPortfolio Kind = "portfolio"
)

// Key builds the cache key for one localized response. An empty slug
// addresses the collection listing for the kind.
func Key(kind Kind, slug string, lang i18n.Language) string {
	if slug == "" {
		slug = listSlug
	}
	return keyPrefix + string(kind) + ":" + slug + ":" + lang.String()
}

// ResponseCache stores serialized JSON responses in Valkey, one entry per
// kind, slug and language. All errors are logged and treated as misses.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

// Get returns the cached body for a key.
func (c *ResponseCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "key", key)
	return val, true
}

// Set stores a body under key with the configured TTL.
func (c *ResponseCache) Set(ctx context.Context, key string, body []byte) {
	if err := c.client.Set(ctx, key, body, c.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// embedsSiblings marks kinds whose detail responses include other entities
// of the same kind, as portfolio details do with related cases.
var embedsSiblings = map[Kind]bool{KindPortfolio: true}

// Invalidate drops every language variant of one entity plus the listings
// of its kind, since a changed entity may alter any list it appears in.
// An empty slug drops only the listings. For kinds that embed siblings
// every response of the kind is dropped.
func (c *ResponseCache) Invalidate(ctx context.Context, kind Kind, slug string) {
	if embedsSiblings[kind] {
		n := c.deleteMatching(ctx, keyPrefix+string(kind)+":*")
		slog.Debug("response cache invalidated", "kind", kind, "slug", slug, "deleted", n)
		return
	}
	keys := make([]string, 0, 4)
	for _, lang := range []i18n.Language{i18n.Original, i18n.Target} {
		keys = append(keys, Key(kind, "", lang))
		if slug != "" {
			keys = append(keys, Key(kind, slug, lang))
		}
	}
	// Listings filtered by query (premier, tag) live under the list prefix.
	c.deleteMatching(ctx, keyPrefix+string(kind)+":"+listSlug+"*")
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("response cache invalidate error", "kind", kind, "slug", slug, "error", err)
		return
	}
	slog.Debug("response cache invalidated", "kind", kind, "slug", slug)
}

// InvalidateAll removes every cached response.
func (c *ResponseCache) InvalidateAll(ctx context.Context) {
	if n := c.deleteMatching(ctx, keyPrefix+"*"); n > 0 {
		slog.Info("response cache fully cleared", "deleted", n)
	}
}

func (c *ResponseCache) deleteMatching(ctx context.Context, pattern string) int {
	var cursor uint64
	var deleted int
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "pattern", pattern, "error", err)
			return deleted
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = next
		if cursor == 0 {
			return deleted
		}
	}
}

// ListKey builds the key for a filtered listing, for example premier-only
// portfolio cases. Filters are folded into the slug segment so Invalidate
// catches them with its list pattern.
func ListKey(kind Kind, lang i18n.Language, filters ...string) string {
	slug := listSlug
	if len(filters) > 0 {
		slug += "." + strings.Join(filters, ".")
	}
	return keyPrefix + string(kind) + ":" + slug + ":" + lang.String()
}
