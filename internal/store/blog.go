// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"kulipoly/internal/models"
)

const blogColumns = `id, slug, title, subtitle, date, category, thumbnail, reading_time,
	content, is_published, created_at, updated_at, title_en, subtitle_en, content_en`

// BlogStore handles blog_posts database operations.
type BlogStore struct {
	db *sql.DB
}

// NewBlogStore creates a new BlogStore with the given database connection.
func NewBlogStore(db *sql.DB) *BlogStore {
	return &BlogStore{db: db}
}

func scanBlog(row interface{ Scan(...any) error }) (*models.BlogPost, error) {
	var r models.BlogRow
	err := row.Scan(
		&r.ID, &r.Slug, &r.Title, &r.Subtitle, &r.Date, &r.Category, &r.Thumbnail, &r.ReadingTime,
		&r.Content, &r.IsPublished, &r.CreatedAt, &r.UpdatedAt, &r.TitleEn, &r.SubtitleEn, &r.ContentEn,
	)
	if err != nil {
		return nil, err
	}
	return models.BlogPostFromRow(r), nil
}

func (s *BlogStore) list(ctx context.Context, query string, args ...any) ([]models.BlogPost, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list blog posts: %w", err)
	}
	defer rows.Close()

	posts := []models.BlogPost{}
	for rows.Next() {
		p, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("scan blog post: %w", err)
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

// ListPublished returns published posts, newest first.
func (s *BlogStore) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	return s.list(ctx, `SELECT `+blogColumns+` FROM blog_posts
		WHERE is_published = TRUE ORDER BY created_at DESC`)
}

// ListAll returns every post including drafts, newest first.
func (s *BlogStore) ListAll(ctx context.Context) ([]models.BlogPost, error) {
	return s.list(ctx, `SELECT `+blogColumns+` FROM blog_posts ORDER BY created_at DESC`)
}

// FindByID retrieves a post by id regardless of publication. Returns nil if not found.
func (s *BlogStore) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	p, err := scanBlog(s.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blog_posts WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by id: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published post for the public site.
// Returns nil if not found or unpublished.
func (s *BlogStore) FindPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	p, err := scanBlog(s.db.QueryRowContext(ctx,
		`SELECT `+blogColumns+` FROM blog_posts WHERE slug = $1 AND is_published = TRUE`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find blog post by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new post. Returns ErrSlugTaken on a duplicate slug.
func (s *BlogStore) Create(ctx context.Context, in models.BlogInput) (*models.BlogPost, error) {
	content, err := jsonArray(in.Content)
	if err != nil {
		return nil, fmt.Errorf("encode content: %w", err)
	}
	contentEn, err := jsonParam(in.ContentEn)
	if err != nil {
		return nil, fmt.Errorf("encode content_en: %w", err)
	}

	p, err := scanBlog(s.db.QueryRowContext(ctx, `
		INSERT INTO blog_posts (slug, title, subtitle, date, category, thumbnail, reading_time,
		                        content, is_published, title_en, subtitle_en, content_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9, $10, $11, $12::jsonb)
		RETURNING `+blogColumns,
		in.Slug, in.Title, in.Subtitle, in.Date, string(in.Category), in.Thumbnail, in.ReadingTime,
		content, in.IsPublished, in.TitleEn, in.SubtitleEn, contentEn,
	))
	if err != nil {
		return nil, mapWriteError("create blog post", err)
	}
	return p, nil
}

// Update applies a partial update. Translation columns are only touched
// when the patch sets them. Returns nil if the post does not exist.
func (s *BlogStore) Update(ctx context.Context, id uuid.UUID, patch models.BlogPatch) (*models.BlogPost, error) {
	var set setList
	if patch.Slug != nil {
		set.add("slug", *patch.Slug)
	}
	if patch.Title != nil {
		set.add("title", *patch.Title)
	}
	if patch.Subtitle != nil {
		set.add("subtitle", *patch.Subtitle)
	}
	if patch.Date != nil {
		set.add("date", *patch.Date)
	}
	if patch.Category != nil {
		set.add("category", string(*patch.Category))
	}
	if patch.Thumbnail != nil {
		set.add("thumbnail", *patch.Thumbnail)
	}
	if patch.ReadingTime != nil {
		set.add("reading_time", *patch.ReadingTime)
	}
	if patch.Content != nil {
		if err := set.addJSON("content", *patch.Content); err != nil {
			return nil, err
		}
	}
	if patch.IsPublished != nil {
		set.add("is_published", *patch.IsPublished)
	}
	if patch.TitleEn != nil {
		set.add("title_en", *patch.TitleEn)
	}
	if patch.SubtitleEn != nil {
		set.add("subtitle_en", *patch.SubtitleEn)
	}
	if patch.ContentEn != nil {
		if err := set.addJSON("content_en", *patch.ContentEn); err != nil {
			return nil, err
		}
	}
	if set.empty() {
		return s.FindByID(ctx, id)
	}

	query, args := set.update("blog_posts", blogColumns, id)
	p, err := scanBlog(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapWriteError("update blog post", err)
	}
	return p, nil
}

// Delete removes a post. Returns false if it did not exist.
func (s *BlogStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete blog post: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete blog post: %w", err)
	}
	return n > 0, nil
}

// SaveTranslation writes the translation cache columns only. Writing the
// same translation twice is harmless. updated_at is left alone since the
// authored content did not change.
func (s *BlogStore) SaveTranslation(ctx context.Context, id uuid.UUID, t models.BlogTranslation) error {
	content, err := jsonArray(t.Content)
	if err != nil {
		return fmt.Errorf("encode content_en: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		UPDATE blog_posts SET title_en = $1, subtitle_en = $2, content_en = $3::jsonb
		WHERE id = $4
	`, t.Title, t.Subtitle, content, id)
	if err != nil {
		return fmt.Errorf("save blog translation: %w", err)
	}
	return nil
}

// ClearTranslation resets the translation cache so the next target-language
// request translates afresh. Returns false if the post does not exist.
func (s *BlogStore) ClearTranslation(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE blog_posts SET title_en = NULL, subtitle_en = NULL, content_en = NULL
		WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("clear blog translation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("clear blog translation: %w", err)
	}
	return n > 0, nil
}

// Counts summarizes a content table for the dashboard.
type Counts struct {
	Total      int `json:"total"`
	Published  int `json:"published"`
	Translated int `json:"translated"`
}

// Counts returns totals for the dashboard.
func (s *BlogStore) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_published),
		       COUNT(*) FILTER (WHERE title_en IS NOT NULL OR subtitle_en IS NOT NULL
		                          OR (content_en IS NOT NULL AND content_en <> '[]'::jsonb))
		FROM blog_posts
	`).Scan(&c.Total, &c.Published, &c.Translated)
	if err != nil {
		return c, fmt.Errorf("count blog posts: %w", err)
	}
	return c, nil
}
