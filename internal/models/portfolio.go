// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ProjectTag classifies a portfolio case.
type ProjectTag string

const (
	TagVR  ProjectTag = "VR"
	TagAR  ProjectTag = "AR"
	TagWeb ProjectTag = "Web"
	Tag3D  ProjectTag = "3D"
)

// ProjectTags lists the accepted tags.
var ProjectTags = []ProjectTag{TagVR, TagAR, TagWeb, Tag3D}

// Testimonial is a client quote. Author is a proper noun and is never
// machine-translated.
type Testimonial struct {
	Quote    string `json:"quote"`
	Author   string `json:"author"`
	Position string `json:"position"`
}

// Metric is a headline number shown on a case study.
type Metric struct {
	Label       string `json:"label"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Portfolio is a case study authored in the original language. The *En
// fields form the translation cache; nil means "not yet translated".
type Portfolio struct {
	ID           uuid.UUID    `json:"id"`
	Slug         string       `json:"slug"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Thumbnail    string       `json:"thumbnail"`
	CompanyLogo  *string      `json:"company_logo"`
	CompanyName  string       `json:"company_name"`
	Tags         []ProjectTag `json:"tags"`
	Year         string       `json:"year"`
	Duration     string       `json:"duration"`
	Role         string       `json:"role"`
	Challenge    string       `json:"challenge"`
	Solution     string       `json:"solution"`
	Results      []string     `json:"results"`
	Technologies []string     `json:"technologies"`
	Gallery      []string     `json:"gallery"`
	Testimonial  *Testimonial `json:"testimonial"`
	Metrics      []Metric     `json:"metrics"`
	IsPublished  bool         `json:"is_published"`
	IsPremier    bool         `json:"is_premier"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`

	TitleEn       *string      `json:"title_en"`
	DescriptionEn *string      `json:"description_en"`
	RoleEn        *string      `json:"role_en"`
	ChallengeEn   *string      `json:"challenge_en"`
	SolutionEn    *string      `json:"solution_en"`
	ResultsEn     []string     `json:"results_en"`
	TestimonialEn *Testimonial `json:"testimonial_en"`
}

// HasTranslation reports whether any target-language field is cached.
func (p *Portfolio) HasTranslation() bool {
	return p.TitleEn != nil || p.DescriptionEn != nil || p.RoleEn != nil ||
		p.ChallengeEn != nil || p.SolutionEn != nil || len(p.ResultsEn) > 0 ||
		p.TestimonialEn != nil
}

// PortfolioRow is a portfolios row as scanned from the database. Array and
// JSON columns arrive as raw JSON.
type PortfolioRow struct {
	ID            uuid.UUID
	Slug          string
	Title         string
	Description   string
	Thumbnail     string
	CompanyLogo   *string
	CompanyName   string
	Tags          []byte
	Year          string
	Duration      string
	Role          string
	Challenge     string
	Solution      string
	Results       []byte
	Technologies  []byte
	Gallery       []byte
	Testimonial   []byte
	Metrics       []byte
	IsPublished   bool
	IsPremier     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
	TitleEn       *string
	DescriptionEn *string
	RoleEn        *string
	ChallengeEn   *string
	SolutionEn    *string
	ResultsEn     []byte
	TestimonialEn []byte
}

// PortfolioFromRow maps a stored row into a Portfolio. It never fails;
// malformed JSON columns degrade to empty (required) or nil (optional).
func PortfolioFromRow(row PortfolioRow) *Portfolio {
	p := &Portfolio{
		ID:            row.ID,
		Slug:          row.Slug,
		Title:         row.Title,
		Description:   row.Description,
		Thumbnail:     row.Thumbnail,
		CompanyLogo:   row.CompanyLogo,
		CompanyName:   row.CompanyName,
		Year:          row.Year,
		Duration:      row.Duration,
		Role:          row.Role,
		Challenge:     row.Challenge,
		Solution:      row.Solution,
		IsPublished:   row.IsPublished,
		IsPremier:     row.IsPremier,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
		TitleEn:       row.TitleEn,
		DescriptionEn: row.DescriptionEn,
		RoleEn:        row.RoleEn,
		ChallengeEn:   row.ChallengeEn,
		SolutionEn:    row.SolutionEn,
	}

	for _, tag := range stringList(row.Tags) {
		p.Tags = append(p.Tags, ProjectTag(tag))
	}
	if p.Tags == nil {
		p.Tags = []ProjectTag{}
	}
	p.Results = nonNil(stringList(row.Results))
	p.Technologies = nonNil(stringList(row.Technologies))
	p.Gallery = nonNil(stringList(row.Gallery))
	p.Testimonial = testimonial(row.Testimonial)
	p.TestimonialEn = testimonial(row.TestimonialEn)

	if !isNullJSON(row.Metrics) {
		var metrics []Metric
		if err := json.Unmarshal(row.Metrics, &metrics); err == nil {
			p.Metrics = metrics
		}
	}
	if !isNullJSON(row.ResultsEn) {
		p.ResultsEn = stringList(row.ResultsEn)
	}
	return p
}

// stringList decodes a JSON array, keeping only its string elements.
func stringList(raw []byte) []string {
	if isNullJSON(raw) {
		return nil
	}
	var items []any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func testimonial(raw []byte) *Testimonial {
	if isNullJSON(raw) {
		return nil
	}
	var t Testimonial
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil
	}
	return &t
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func isNullJSON(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// LocalizedPortfolio is the display projection of a Portfolio in one language.
type LocalizedPortfolio struct {
	ID           uuid.UUID    `json:"id"`
	Slug         string       `json:"slug"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Thumbnail    string       `json:"thumbnail"`
	CompanyLogo  *string      `json:"company_logo"`
	CompanyName  string       `json:"company_name"`
	Tags         []ProjectTag `json:"tags"`
	Year         string       `json:"year"`
	Duration     string       `json:"duration"`
	Role         string       `json:"role"`
	Challenge    string       `json:"challenge"`
	Solution     string       `json:"solution"`
	Results      []string     `json:"results"`
	Technologies []string     `json:"technologies"`
	Gallery      []string     `json:"gallery"`
	Testimonial  *Testimonial `json:"testimonial"`
	Metrics      []Metric     `json:"metrics"`
}

// PortfolioTranslation is the translated field set of a portfolio case.
type PortfolioTranslation struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Role        string       `json:"role"`
	Challenge   string       `json:"challenge"`
	Solution    string       `json:"solution"`
	Results     []string     `json:"results"`
	Testimonial *Testimonial `json:"testimonial"`

	// Translated is true when at least one field came back translated.
	Translated bool `json:"-"`
	// Complete is true when every non-blank field came back translated.
	// Only complete translations are cached.
	Complete bool `json:"-"`
}
