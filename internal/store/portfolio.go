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

// tags is read back as JSON so it scans through database/sql without an
// array adapter.
const portfolioColumns = `id, slug, title, description, thumbnail, company_logo, company_name,
	to_jsonb(tags), year, duration, role, challenge, solution, results, technologies, gallery,
	testimonial, metrics, is_published, is_premier, created_at, updated_at,
	title_en, description_en, role_en, challenge_en, solution_en, results_en, testimonial_en`

// maxRelated caps the related cases shown under a case study.
const maxRelated = 3

// PortfolioStore handles portfolios database operations.
type PortfolioStore struct {
	db *sql.DB
}

// NewPortfolioStore creates a new PortfolioStore with the given database connection.
func NewPortfolioStore(db *sql.DB) *PortfolioStore {
	return &PortfolioStore{db: db}
}

func scanPortfolio(row interface{ Scan(...any) error }) (*models.Portfolio, error) {
	var r models.PortfolioRow
	err := row.Scan(
		&r.ID, &r.Slug, &r.Title, &r.Description, &r.Thumbnail, &r.CompanyLogo, &r.CompanyName,
		&r.Tags, &r.Year, &r.Duration, &r.Role, &r.Challenge, &r.Solution, &r.Results, &r.Technologies, &r.Gallery,
		&r.Testimonial, &r.Metrics, &r.IsPublished, &r.IsPremier, &r.CreatedAt, &r.UpdatedAt,
		&r.TitleEn, &r.DescriptionEn, &r.RoleEn, &r.ChallengeEn, &r.SolutionEn, &r.ResultsEn, &r.TestimonialEn,
	)
	if err != nil {
		return nil, err
	}
	return models.PortfolioFromRow(r), nil
}

func (s *PortfolioStore) list(ctx context.Context, query string, args ...any) ([]models.Portfolio, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list portfolios: %w", err)
	}
	defer rows.Close()

	items := []models.Portfolio{}
	for rows.Next() {
		p, err := scanPortfolio(rows)
		if err != nil {
			return nil, fmt.Errorf("scan portfolio: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// ListPublished returns published cases, newest first. With premierOnly
// set, only cases flagged for the home page are returned.
func (s *PortfolioStore) ListPublished(ctx context.Context, premierOnly bool) ([]models.Portfolio, error) {
	return s.list(ctx, `SELECT `+portfolioColumns+` FROM portfolios
		WHERE is_published = TRUE AND (NOT $1 OR is_premier = TRUE)
		ORDER BY created_at DESC`, premierOnly)
}

// ListAll returns every case including drafts, newest first.
func (s *PortfolioStore) ListAll(ctx context.Context) ([]models.Portfolio, error) {
	return s.list(ctx, `SELECT `+portfolioColumns+` FROM portfolios ORDER BY created_at DESC`)
}

// ListRelated returns up to three other published cases sharing a tag
// with p, newest first.
func (s *PortfolioStore) ListRelated(ctx context.Context, p *models.Portfolio) ([]models.Portfolio, error) {
	if len(p.Tags) == 0 {
		return []models.Portfolio{}, nil
	}
	return s.list(ctx, `SELECT `+portfolioColumns+` FROM portfolios
		WHERE is_published = TRUE AND id <> $1 AND tags && $2
		ORDER BY created_at DESC LIMIT $3`, p.ID, tagStrings(p.Tags), maxRelated)
}

// FindByID retrieves a case by id regardless of publication. Returns nil if not found.
func (s *PortfolioStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Portfolio, error) {
	p, err := scanPortfolio(s.db.QueryRowContext(ctx,
		`SELECT `+portfolioColumns+` FROM portfolios WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find portfolio by id: %w", err)
	}
	return p, nil
}

// FindPublishedBySlug retrieves a published case for the public site.
func (s *PortfolioStore) FindPublishedBySlug(ctx context.Context, slug string) (*models.Portfolio, error) {
	p, err := scanPortfolio(s.db.QueryRowContext(ctx,
		`SELECT `+portfolioColumns+` FROM portfolios WHERE slug = $1 AND is_published = TRUE`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find portfolio by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new case. Returns ErrSlugTaken on a duplicate slug.
func (s *PortfolioStore) Create(ctx context.Context, in models.PortfolioInput) (*models.Portfolio, error) {
	var (
		enc  jsonArgs
		args = []any{
			in.Slug, in.Title, in.Description, in.Thumbnail, in.CompanyLogo, in.CompanyName,
			tagStrings(in.Tags), in.Year, in.Duration, in.Role, in.Challenge, in.Solution,
			enc.array(in.Results), enc.array(in.Technologies), enc.array(in.Gallery),
			enc.value(in.Testimonial), enc.value(in.Metrics), in.IsPublished, in.IsPremier,
			in.TitleEn, in.DescriptionEn, in.RoleEn, in.ChallengeEn, in.SolutionEn,
			enc.value(in.ResultsEn), enc.value(in.TestimonialEn),
		}
	)
	if enc.err != nil {
		return nil, fmt.Errorf("encode portfolio: %w", enc.err)
	}

	p, err := scanPortfolio(s.db.QueryRowContext(ctx, `
		INSERT INTO portfolios (slug, title, description, thumbnail, company_logo, company_name,
		                        tags, year, duration, role, challenge, solution,
		                        results, technologies, gallery, testimonial, metrics,
		                        is_published, is_premier,
		                        title_en, description_en, role_en, challenge_en, solution_en,
		                        results_en, testimonial_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		        $13::jsonb, $14::jsonb, $15::jsonb, $16::jsonb, $17::jsonb,
		        $18, $19, $20, $21, $22, $23, $24, $25::jsonb, $26::jsonb)
		RETURNING `+portfolioColumns, args...))
	if err != nil {
		return nil, mapWriteError("create portfolio", err)
	}
	return p, nil
}

// Update applies a partial update. Returns nil if the case does not exist.
func (s *PortfolioStore) Update(ctx context.Context, id uuid.UUID, patch models.PortfolioPatch) (*models.Portfolio, error) {
	var set setList
	strs := []struct {
		col string
		val *string
	}{
		{"slug", patch.Slug}, {"title", patch.Title}, {"description", patch.Description},
		{"thumbnail", patch.Thumbnail}, {"company_logo", patch.CompanyLogo},
		{"company_name", patch.CompanyName}, {"year", patch.Year}, {"duration", patch.Duration},
		{"role", patch.Role}, {"challenge", patch.Challenge}, {"solution", patch.Solution},
		{"title_en", patch.TitleEn}, {"description_en", patch.DescriptionEn},
		{"role_en", patch.RoleEn}, {"challenge_en", patch.ChallengeEn}, {"solution_en", patch.SolutionEn},
	}
	for _, f := range strs {
		if f.val != nil {
			set.add(f.col, *f.val)
		}
	}
	if patch.Tags != nil {
		set.add("tags", tagStrings(*patch.Tags))
	}
	if patch.IsPublished != nil {
		set.add("is_published", *patch.IsPublished)
	}
	if patch.IsPremier != nil {
		set.add("is_premier", *patch.IsPremier)
	}

	jsons := []struct {
		col string
		set bool
		val any
	}{
		{"results", patch.Results != nil, nonNilSlice(patch.Results)},
		{"technologies", patch.Technologies != nil, nonNilSlice(patch.Technologies)},
		{"gallery", patch.Gallery != nil, nonNilSlice(patch.Gallery)},
		{"testimonial", patch.Testimonial != nil, patch.Testimonial},
		{"metrics", patch.Metrics != nil, derefMetrics(patch.Metrics)},
		{"results_en", patch.ResultsEn != nil, nonNilSlice(patch.ResultsEn)},
		{"testimonial_en", patch.TestimonialEn != nil, patch.TestimonialEn},
	}
	for _, f := range jsons {
		if !f.set {
			continue
		}
		if err := set.addJSON(f.col, f.val); err != nil {
			return nil, err
		}
	}
	if set.empty() {
		return s.FindByID(ctx, id)
	}

	query, args := set.update("portfolios", portfolioColumns, id)
	p, err := scanPortfolio(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, mapWriteError("update portfolio", err)
	}
	return p, nil
}

// TogglePublished flips is_published. Returns nil if the case does not exist.
func (s *PortfolioStore) TogglePublished(ctx context.Context, id uuid.UUID) (*models.Portfolio, error) {
	return s.toggle(ctx, id, "is_published")
}

// TogglePremier flips is_premier. Returns nil if the case does not exist.
func (s *PortfolioStore) TogglePremier(ctx context.Context, id uuid.UUID) (*models.Portfolio, error) {
	return s.toggle(ctx, id, "is_premier")
}

func (s *PortfolioStore) toggle(ctx context.Context, id uuid.UUID, col string) (*models.Portfolio, error) {
	p, err := scanPortfolio(s.db.QueryRowContext(ctx, fmt.Sprintf(`
		UPDATE portfolios SET %[1]s = NOT %[1]s, updated_at = GREATEST(NOW(), updated_at)
		WHERE id = $1 RETURNING %[2]s`, col, portfolioColumns), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("toggle %s: %w", col, err)
	}
	return p, nil
}

// Delete removes a case. Returns false if it did not exist.
func (s *PortfolioStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM portfolios WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete portfolio: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete portfolio: %w", err)
	}
	return n > 0, nil
}

// SaveTranslation writes the translation cache columns only.
func (s *PortfolioStore) SaveTranslation(ctx context.Context, id uuid.UUID, t models.PortfolioTranslation) error {
	var enc jsonArgs
	results := enc.array(t.Results)
	testimonial := enc.value(t.Testimonial)
	if enc.err != nil {
		return fmt.Errorf("encode portfolio translation: %w", enc.err)
	}
	_, err := s.db.ExecContext(ctx, `
		UPDATE portfolios
		SET title_en = $1, description_en = $2, role_en = $3, challenge_en = $4,
		    solution_en = $5, results_en = $6::jsonb, testimonial_en = $7::jsonb
		WHERE id = $8
	`, t.Title, t.Description, t.Role, t.Challenge, t.Solution, results, testimonial, id)
	if err != nil {
		return fmt.Errorf("save portfolio translation: %w", err)
	}
	return nil
}

// ClearTranslation resets the translation cache. Returns false if the case
// does not exist.
func (s *PortfolioStore) ClearTranslation(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE portfolios
		SET title_en = NULL, description_en = NULL, role_en = NULL, challenge_en = NULL,
		    solution_en = NULL, results_en = NULL, testimonial_en = NULL
		WHERE id = $1
	`, id)
	if err != nil {
		return false, fmt.Errorf("clear portfolio translation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("clear portfolio translation: %w", err)
	}
	return n > 0, nil
}

// Counts returns totals for the dashboard.
func (s *PortfolioStore) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_published),
		       COUNT(*) FILTER (WHERE title_en IS NOT NULL OR description_en IS NOT NULL
		                          OR role_en IS NOT NULL OR challenge_en IS NOT NULL
		                          OR solution_en IS NOT NULL OR (results_en IS NOT NULL AND results_en <> '[]'::jsonb)
		                          OR testimonial_en IS NOT NULL)
		FROM portfolios
	`).Scan(&c.Total, &c.Published, &c.Translated)
	if err != nil {
		return c, fmt.Errorf("count portfolios: %w", err)
	}
	return c, nil
}

// jsonArgs encodes several JSON parameters, keeping the first error.
type jsonArgs struct{ err error }

func (j *jsonArgs) array(items []string) any {
	s, err := jsonArray(items)
	if err != nil && j.err == nil {
		j.err = err
	}
	return s
}

func (j *jsonArgs) value(v any) any {
	p, err := jsonParam(v)
	if err != nil && j.err == nil {
		j.err = err
	}
	return p
}

func tagStrings(tags []models.ProjectTag) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = string(t)
	}
	return out
}

func nonNilSlice(p *[]string) []string {
	if p == nil || *p == nil {
		return []string{}
	}
	return *p
}

func derefMetrics(p *[]models.Metric) []models.Metric {
	if p == nil {
		return nil
	}
	return *p
}
