// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// BlogCategory groups posts on the blog index.
type BlogCategory string

const (
	CategoryInsight   BlogCategory = "Insight"
	CategoryCaseStudy BlogCategory = "Case Study"
	CategoryUpdate    BlogCategory = "Update"
	CategoryGuide     BlogCategory = "Guide"
)

// BlogCategories lists the accepted categories.
var BlogCategories = []BlogCategory{CategoryInsight, CategoryCaseStudy, CategoryUpdate, CategoryGuide}

// Defaults applied to blog input fields left blank by the editor.
const (
	DefaultBlogThumbnail   = "/bd1036d9ddfe2eaeb6860f51018f41bd5899f875.png"
	DefaultBlogReadingTime = "5 menit baca"
)

// BlogPost is an article authored in the original language. The *En fields
// form the translation cache; nil means "not yet translated".
type BlogPost struct {
	ID          uuid.UUID    `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Date        string       `json:"date"`
	Category    BlogCategory `json:"category"`
	Thumbnail   string       `json:"thumbnail"`
	ReadingTime string       `json:"reading_time"`
	Content     Blocks       `json:"content"`
	IsPublished bool         `json:"is_published"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	TitleEn    *string `json:"title_en"`
	SubtitleEn *string `json:"subtitle_en"`
	ContentEn  Blocks  `json:"content_en"`
}

// HasTranslation reports whether any target-language field is cached.
func (p *BlogPost) HasTranslation() bool {
	return p.TitleEn != nil || p.SubtitleEn != nil || len(p.ContentEn) > 0
}

// BlogRow is a blog_posts row as scanned from the database. JSON columns
// are kept raw so the mapper can apply lenient decoding.
type BlogRow struct {
	ID          uuid.UUID
	Slug        string
	Title       string
	Subtitle    string
	Date        string
	Category    string
	Thumbnail   string
	ReadingTime string
	Content     []byte
	IsPublished bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	TitleEn     *string
	SubtitleEn  *string
	ContentEn   []byte
}

// BlogPostFromRow maps a stored row into a BlogPost. It never fails.
func BlogPostFromRow(row BlogRow) *BlogPost {
	post := &BlogPost{
		ID:          row.ID,
		Slug:        row.Slug,
		Title:       row.Title,
		Subtitle:    row.Subtitle,
		Date:        row.Date,
		Category:    BlogCategory(row.Category),
		Thumbnail:   row.Thumbnail,
		ReadingTime: row.ReadingTime,
		Content:     ParseBlocks(row.Content),
		IsPublished: row.IsPublished,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
		TitleEn:     row.TitleEn,
		SubtitleEn:  row.SubtitleEn,
	}
	if content := ParseBlocks(row.ContentEn); len(content) > 0 {
		post.ContentEn = content
	}
	return post
}

// LocalizedBlogPost is the display projection of a BlogPost in one language.
type LocalizedBlogPost struct {
	ID          uuid.UUID    `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Date        string       `json:"date"`
	Category    BlogCategory `json:"category"`
	Thumbnail   string       `json:"thumbnail"`
	ReadingTime string       `json:"reading_time"`
	Content     Blocks       `json:"content"`
}

// BlogTranslation is the translated field set of a blog post, as returned by
// the translate endpoint and written back into the *_en columns.
type BlogTranslation struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	Content  Blocks `json:"content"`

	// Translated is true when at least one field came back translated.
	Translated bool `json:"-"`
	// Complete is true when every non-blank field came back translated.
	// Only complete translations are cached.
	Complete bool `json:"-"`
}
