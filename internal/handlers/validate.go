package handlers

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"kulipoly/internal/models"
	"kulipoly/internal/slug"
)

// Validation limits for admin input.
const (
	maxTitleLen    = 300
	maxSubtitleLen = 500
	maxTextLen     = 10_000
)

// field pairs a value with the rules it must pass.
type field struct {
	value any
	rules []validation.Rule
}

func check(value any, rules ...validation.Rule) field {
	return field{value: value, rules: rules}
}

// firstError validates fields in order and returns the first failure
// message, or "" when all pass.
func firstError(fields ...field) string {
	for _, f := range fields {
		if err := validation.Validate(f.value, f.rules...); err != nil {
			return err.Error()
		}
	}
	return ""
}

// validSlug adapts slug.Validate to an ozzo rule.
var validSlug = validation.By(func(v any) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	if err := slug.Validate(s); err != nil {
		return errors.New(capitalize(err.Error()))
	}
	return nil
})

// sameLayout requires a translated block list to mirror original block for
// block. An absent translation passes.
func sameLayout(original models.Blocks) validation.Rule {
	return validation.By(func(v any) error {
		translated, _ := v.(models.Blocks)
		if translated == nil || original.Isomorphic(translated) {
			return nil
		}
		return errors.New("Translated content must have the same blocks as the content")
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func categories() []any {
	out := make([]any, len(models.BlogCategories))
	for i, c := range models.BlogCategories {
		out[i] = c
	}
	return out
}

func projectTags() []any {
	out := make([]any, len(models.ProjectTags))
	for i, t := range models.ProjectTags {
		out[i] = t
	}
	return out
}

// normalizeBlogInput trims text, sanitizes content and fills editor
// defaults. A blank slug is derived from the title.
func normalizeBlogInput(in *models.BlogInput) {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Title = strings.TrimSpace(in.Title)
	in.Subtitle = strings.TrimSpace(in.Subtitle)
	in.Date = strings.TrimSpace(in.Date)
	in.Thumbnail = orDefault(in.Thumbnail, models.DefaultBlogThumbnail)
	in.ReadingTime = orDefault(in.ReadingTime, models.DefaultBlogReadingTime)
	in.Content = models.SanitizeBlocks(in.Content)
	in.ContentEn = models.SanitizeBlocks(in.ContentEn)
	if len(in.ContentEn) == 0 {
		in.ContentEn = nil
	}
	if in.Category == "" {
		in.Category = models.CategoryInsight
	}
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Title)
	}
}

func validateBlogInput(in *models.BlogInput) string {
	return firstError(
		check(in.Slug, validation.Required.Error("Slug is required"), validSlug),
		check(in.Title,
			validation.Required.Error("Title is required"),
			validation.RuneLength(0, maxTitleLen).Error("Title is too long (max 300 characters)")),
		check(in.Subtitle, validation.RuneLength(0, maxSubtitleLen).Error("Subtitle is too long (max 500 characters)")),
		check(in.Category, validation.In(categories()...).Error("Unknown category")),
		check(in.Content, validation.Required.Error("Content is required")),
		check(in.ContentEn, sameLayout(in.Content)),
	)
}

// normalizeBlogPatch applies the create-time normalization to the fields a
// patch sets.
func normalizeBlogPatch(p *models.BlogPatch) {
	trimPtr(p.Slug)
	trimPtr(p.Title)
	trimPtr(p.Subtitle)
	trimPtr(p.Date)
	if p.Thumbnail != nil {
		*p.Thumbnail = orDefault(*p.Thumbnail, models.DefaultBlogThumbnail)
	}
	if p.ReadingTime != nil {
		*p.ReadingTime = orDefault(*p.ReadingTime, models.DefaultBlogReadingTime)
	}
	if p.Content != nil {
		*p.Content = models.SanitizeBlocks(*p.Content)
	}
	if p.ContentEn != nil {
		// An emptied override clears the column.
		if *p.ContentEn = models.SanitizeBlocks(*p.ContentEn); len(*p.ContentEn) == 0 {
			*p.ContentEn = nil
		}
	}
}

// validateBlogPatch checks the fields p sets. current is the stored post,
// used when an override has to match content the patch leaves alone.
func validateBlogPatch(p *models.BlogPatch, current *models.BlogPost) string {
	var fields []field
	if p.Slug != nil {
		fields = append(fields, check(*p.Slug, validation.Required.Error("Slug is required"), validSlug))
	}
	if p.Title != nil {
		fields = append(fields, check(*p.Title,
			validation.Required.Error("Title is required"),
			validation.RuneLength(0, maxTitleLen).Error("Title is too long (max 300 characters)")))
	}
	if p.Subtitle != nil {
		fields = append(fields, check(*p.Subtitle, validation.RuneLength(0, maxSubtitleLen).Error("Subtitle is too long (max 500 characters)")))
	}
	if p.Category != nil {
		fields = append(fields, check(*p.Category,
			validation.Required.Error("Unknown category"),
			validation.In(categories()...).Error("Unknown category")))
	}
	if p.Content != nil {
		fields = append(fields, check(*p.Content, validation.Required.Error("Content is required")))
	}
	if p.ContentEn != nil {
		original := current.Content
		if p.Content != nil {
			original = *p.Content
		}
		fields = append(fields, check(*p.ContentEn, sameLayout(original)))
	}
	return firstError(fields...)
}

// normalizePortfolioInput trims text fields and derives a blank slug from
// the title.
func normalizePortfolioInput(in *models.PortfolioInput) {
	in.Slug = strings.TrimSpace(in.Slug)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.Results = trimList(in.Results)
	in.Technologies = trimList(in.Technologies)
	in.Gallery = trimList(in.Gallery)
	if in.Slug == "" {
		in.Slug = slug.Generate(in.Title)
	}
}

func validatePortfolioInput(in *models.PortfolioInput) string {
	fields := []field{
		check(in.Slug, validation.Required.Error("Slug is required"), validSlug),
		check(in.Title,
			validation.Required.Error("Title is required"),
			validation.RuneLength(0, maxTitleLen).Error("Title is too long (max 300 characters)")),
		check(in.Description, validation.RuneLength(0, maxTextLen).Error("Description is too long")),
		check(in.Tags, validation.Each(validation.In(projectTags()...).Error("Unknown tag"))),
	}
	if in.IsPublished {
		fields = append(fields, check(in.Description, validation.Required.Error("Description is required to publish")))
	}
	return firstError(fields...)
}

func normalizePortfolioPatch(p *models.PortfolioPatch) {
	trimPtr(p.Slug)
	trimPtr(p.Title)
	trimPtr(p.Description)
	trimPtr(p.CompanyName)
	if p.Results != nil {
		*p.Results = trimList(*p.Results)
	}
	if p.Technologies != nil {
		*p.Technologies = trimList(*p.Technologies)
	}
	if p.Gallery != nil {
		*p.Gallery = trimList(*p.Gallery)
	}
}

func validatePortfolioPatch(p *models.PortfolioPatch) string {
	var fields []field
	if p.Slug != nil {
		fields = append(fields, check(*p.Slug, validation.Required.Error("Slug is required"), validSlug))
	}
	if p.Title != nil {
		fields = append(fields, check(*p.Title,
			validation.Required.Error("Title is required"),
			validation.RuneLength(0, maxTitleLen).Error("Title is too long (max 300 characters)")))
	}
	if p.Description != nil {
		fields = append(fields, check(*p.Description, validation.RuneLength(0, maxTextLen).Error("Description is too long")))
	}
	if p.Tags != nil {
		fields = append(fields, check(*p.Tags, validation.Each(validation.In(projectTags()...).Error("Unknown tag"))))
	}
	return firstError(fields...)
}

// publishable reports why a portfolio case cannot be published, or "".
func publishable(p *models.Portfolio) string {
	return firstError(
		check(p.Title, validation.Required.Error("Title is required to publish")),
		check(p.Description, validation.Required.Error("Description is required to publish")),
	)
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func trimList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
