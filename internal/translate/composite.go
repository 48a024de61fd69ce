// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package translate

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"kulipoly/internal/i18n"
	"kulipoly/internal/models"
)

// maxConcurrent bounds in-flight calls per composite operation.
const maxConcurrent = 8

// Service applies a Translator from the original to the target language
// across strings, collections, and whole entities. Items are translated
// concurrently and reassembled in their input order.
type Service struct {
	tr             Translator
	source, target i18n.Language
}

// NewService wraps tr for Original -> Target translation.
func NewService(tr Translator) *Service {
	return &Service{tr: tr, source: i18n.Original, target: i18n.Target}
}

// Text translates a single string.
func (s *Service) Text(ctx context.Context, text string) Result {
	return s.tr.Translate(ctx, text, s.source, s.target)
}

// Array translates each element. Length and order are preserved; failed
// elements keep their original text.
func (s *Service) Array(ctx context.Context, texts []string) []string {
	out, _ := s.array(ctx, texts)
	return out
}

func (s *Service) array(ctx context.Context, texts []string) ([]string, coverage) {
	out := make([]string, len(texts))
	covs := make([]coverage, len(texts))

	g := newGroup()
	for i, text := range texts {
		g.Go(func() error {
			r := s.Text(ctx, text)
			out[i] = r.Text
			covs[i] = cover(r, text)
			return nil
		})
	}
	_ = g.Wait()
	return out, merge(covs...)
}

// Testimonial translates the quote and position. The author is a proper
// noun and is copied unchanged. Nil yields nil.
func (s *Service) Testimonial(ctx context.Context, t *models.Testimonial) *models.Testimonial {
	out, _ := s.testimonial(ctx, t)
	return out
}

func (s *Service) testimonial(ctx context.Context, t *models.Testimonial) (*models.Testimonial, coverage) {
	if t == nil {
		return nil, untouched
	}
	var quote, position Result

	g := newGroup()
	g.Go(func() error { quote = s.Text(ctx, t.Quote); return nil })
	g.Go(func() error { position = s.Text(ctx, t.Position); return nil })
	_ = g.Wait()

	return &models.Testimonial{
		Quote:    quote.Text,
		Author:   t.Author,
		Position: position.Text,
	}, merge(cover(quote, t.Quote), cover(position, t.Position))
}

// Blocks translates the human-readable fields of each block. IDs, kinds and
// URLs are copied unchanged, so the result has the same length and kind
// sequence as the input.
func (s *Service) Blocks(ctx context.Context, blocks models.Blocks) models.Blocks {
	out, _ := s.blocks(ctx, blocks)
	return out
}

func (s *Service) blocks(ctx context.Context, blocks models.Blocks) (models.Blocks, coverage) {
	out := make(models.Blocks, len(blocks))
	covs := make([]coverage, len(blocks))

	g := newGroup()
	for i, b := range blocks {
		g.Go(func() error {
			out[i], covs[i] = s.block(ctx, b)
			return nil
		})
	}
	_ = g.Wait()
	return out, merge(covs...)
}

func (s *Service) block(ctx context.Context, b models.Block) (models.Block, coverage) {
	switch v := b.(type) {
	case models.TextBlock:
		r := s.Text(ctx, v.Text)
		return models.TextBlock{ID: v.ID, Text: r.Text}, cover(r, v.Text)
	case models.ImageBlock:
		caption, c := s.optional(ctx, v.Caption)
		alt, a := s.optional(ctx, v.Alt)
		return models.ImageBlock{ID: v.ID, URL: v.URL, Caption: caption, Alt: alt}, merge(c, a)
	case models.VideoBlock:
		caption, c := s.optional(ctx, v.Caption)
		return models.VideoBlock{ID: v.ID, URL: v.URL, Caption: caption}, c
	case models.FileBlock:
		label := s.Text(ctx, v.Label)
		desc, d := s.optional(ctx, v.Description)
		return models.FileBlock{ID: v.ID, URL: v.URL, Label: label.Text, Description: desc}, merge(cover(label, v.Label), d)
	default:
		return b, untouched
	}
}

// optional translates a field that may be absent. Absent stays absent.
func (s *Service) optional(ctx context.Context, p *string) (*string, coverage) {
	if p == nil {
		return nil, untouched
	}
	r := s.Text(ctx, *p)
	return &r.Text, cover(r, *p)
}

// Fields translates a set of named strings, returning the same keys.
func (s *Service) Fields(ctx context.Context, fields map[string]string) map[string]string {
	keys := make([]string, 0, len(fields))
	values := make([]string, 0, len(fields))
	for k, v := range fields {
		keys = append(keys, k)
		values = append(values, v)
	}

	translated := s.Array(ctx, values)
	out := make(map[string]string, len(fields))
	for i, k := range keys {
		out[k] = translated[i]
	}
	return out
}

// BlogSource is the original-language field set of a blog post.
type BlogSource struct {
	Title    string        `json:"title"`
	Subtitle string        `json:"subtitle"`
	Content  models.Blocks `json:"content"`
}

// BlogPost translates every translatable field of a blog post at once.
func (s *Service) BlogPost(ctx context.Context, src BlogSource) models.BlogTranslation {
	var title, subtitle Result
	var content models.Blocks
	var contentCov coverage

	g := newGroup()
	g.Go(func() error { title = s.Text(ctx, src.Title); return nil })
	g.Go(func() error { subtitle = s.Text(ctx, src.Subtitle); return nil })
	g.Go(func() error { content, contentCov = s.blocks(ctx, src.Content); return nil })
	_ = g.Wait()

	cov := merge(cover(title, src.Title), cover(subtitle, src.Subtitle), contentCov)
	return models.BlogTranslation{
		Title:      title.Text,
		Subtitle:   subtitle.Text,
		Content:    content,
		Translated: cov.any,
		Complete:   cov.any && cov.all,
	}
}

// PortfolioSource is the original-language field set of a portfolio case.
type PortfolioSource struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Role        string              `json:"role"`
	Challenge   string              `json:"challenge"`
	Solution    string              `json:"solution"`
	Results     []string            `json:"results"`
	Testimonial *models.Testimonial `json:"testimonial"`
}

// Portfolio translates every translatable field of a portfolio case at once.
func (s *Service) Portfolio(ctx context.Context, src PortfolioSource) models.PortfolioTranslation {
	var title, description, role, challenge, solution Result
	var results []string
	var testimonial *models.Testimonial
	var resultsCov, testimonialCov coverage

	g := newGroup()
	g.Go(func() error { title = s.Text(ctx, src.Title); return nil })
	g.Go(func() error { description = s.Text(ctx, src.Description); return nil })
	g.Go(func() error { role = s.Text(ctx, src.Role); return nil })
	g.Go(func() error { challenge = s.Text(ctx, src.Challenge); return nil })
	g.Go(func() error { solution = s.Text(ctx, src.Solution); return nil })
	g.Go(func() error { results, resultsCov = s.array(ctx, src.Results); return nil })
	g.Go(func() error { testimonial, testimonialCov = s.testimonial(ctx, src.Testimonial); return nil })
	_ = g.Wait()

	cov := merge(
		cover(title, src.Title), cover(description, src.Description), cover(role, src.Role),
		cover(challenge, src.Challenge), cover(solution, src.Solution), resultsCov, testimonialCov,
	)
	return models.PortfolioTranslation{
		Title:       title.Text,
		Description: description.Text,
		Role:        role.Text,
		Challenge:   challenge.Text,
		Solution:    solution.Text,
		Results:     results,
		Testimonial: testimonial,
		Translated:  cov.any,
		Complete:    cov.any && cov.all,
	}
}

// coverage summarizes a set of translation calls: whether any came back
// translated and whether every non-blank input did.
type coverage struct{ any, all bool }

// untouched is the coverage of an absent field.
var untouched = coverage{all: true}

func cover(r Result, src string) coverage {
	return coverage{
		any: r.WasTranslated,
		all: r.WasTranslated || strings.TrimSpace(src) == "",
	}
}

func merge(cs ...coverage) coverage {
	out := untouched
	for _, c := range cs {
		out.any = out.any || c.any
		out.all = out.all && c.all
	}
	return out
}

func newGroup() *errgroup.Group {
	g := new(errgroup.Group)
	g.SetLimit(maxConcurrent)
	return g
}
