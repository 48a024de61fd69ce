// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package i18n

import "kulipoly/internal/models"

// ResolveBlogPost projects post into lang. For the target language each
// translatable field uses its cached translation when present and falls
// back to the original otherwise. Other fields always come from the
// original. The function performs no I/O.
func ResolveBlogPost(post *models.BlogPost, lang Language) models.LocalizedBlogPost {
	view := models.LocalizedBlogPost{
		ID:          post.ID,
		Slug:        post.Slug,
		Title:       post.Title,
		Subtitle:    post.Subtitle,
		Date:        post.Date,
		Category:    post.Category,
		Thumbnail:   post.Thumbnail,
		ReadingTime: post.ReadingTime,
		Content:     post.Content,
	}
	if lang != Target {
		return view
	}

	view.Title = pick(post.TitleEn, post.Title)
	view.Subtitle = pick(post.SubtitleEn, post.Subtitle)
	// A translation left behind by a layout change is not served.
	if len(post.ContentEn) > 0 && post.Content.Isomorphic(post.ContentEn) {
		view.Content = post.ContentEn
	}
	return view
}

// ResolvePortfolio projects p into lang with the same fallback rules as
// ResolveBlogPost.
func ResolvePortfolio(p *models.Portfolio, lang Language) models.LocalizedPortfolio {
	view := models.LocalizedPortfolio{
		ID:           p.ID,
		Slug:         p.Slug,
		Title:        p.Title,
		Description:  p.Description,
		Thumbnail:    p.Thumbnail,
		CompanyLogo:  p.CompanyLogo,
		CompanyName:  p.CompanyName,
		Tags:         p.Tags,
		Year:         p.Year,
		Duration:     p.Duration,
		Role:         p.Role,
		Challenge:    p.Challenge,
		Solution:     p.Solution,
		Results:      p.Results,
		Technologies: p.Technologies,
		Gallery:      p.Gallery,
		Testimonial:  p.Testimonial,
		Metrics:      p.Metrics,
	}
	if lang != Target {
		return view
	}

	view.Title = pick(p.TitleEn, p.Title)
	view.Description = pick(p.DescriptionEn, p.Description)
	view.Role = pick(p.RoleEn, p.Role)
	view.Challenge = pick(p.ChallengeEn, p.Challenge)
	view.Solution = pick(p.SolutionEn, p.Solution)
	if len(p.ResultsEn) > 0 {
		view.Results = p.ResultsEn
	}
	if p.TestimonialEn != nil {
		view.Testimonial = p.TestimonialEn
	}
	return view
}

// pick returns the translation unless it is missing or empty.
func pick(translated *string, original string) string {
	if translated == nil || *translated == "" {
		return original
	}
	return *translated
}
