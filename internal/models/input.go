// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// BlogInput holds the fields of a new blog post. The *En fields are an
// optional manual translation override.
type BlogInput struct {
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Subtitle    string       `json:"subtitle"`
	Date        string       `json:"date"`
	Category    BlogCategory `json:"category"`
	Thumbnail   string       `json:"thumbnail"`
	ReadingTime string       `json:"reading_time"`
	Content     Blocks       `json:"content"`
	IsPublished bool         `json:"is_published"`

	TitleEn    *string `json:"title_en"`
	SubtitleEn *string `json:"subtitle_en"`
	ContentEn  Blocks  `json:"content_en"`
}

// BlogPatch is a partial update. Nil fields are left unchanged.
type BlogPatch struct {
	Slug        *string       `json:"slug"`
	Title       *string       `json:"title"`
	Subtitle    *string       `json:"subtitle"`
	Date        *string       `json:"date"`
	Category    *BlogCategory `json:"category"`
	Thumbnail   *string       `json:"thumbnail"`
	ReadingTime *string       `json:"reading_time"`
	Content     *Blocks       `json:"content"`
	IsPublished *bool         `json:"is_published"`

	TitleEn    *string `json:"title_en"`
	SubtitleEn *string `json:"subtitle_en"`
	ContentEn  *Blocks `json:"content_en"`
}

// PortfolioInput holds the fields of a new portfolio case.
type PortfolioInput struct {
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

	TitleEn       *string      `json:"title_en"`
	DescriptionEn *string      `json:"description_en"`
	RoleEn        *string      `json:"role_en"`
	ChallengeEn   *string      `json:"challenge_en"`
	SolutionEn    *string      `json:"solution_en"`
	ResultsEn     []string     `json:"results_en"`
	TestimonialEn *Testimonial `json:"testimonial_en"`
}

// PortfolioPatch is a partial update. Nil fields are left unchanged.
type PortfolioPatch struct {
	Slug         *string       `json:"slug"`
	Title        *string       `json:"title"`
	Description  *string       `json:"description"`
	Thumbnail    *string       `json:"thumbnail"`
	CompanyLogo  *string       `json:"company_logo"`
	CompanyName  *string       `json:"company_name"`
	Tags         *[]ProjectTag `json:"tags"`
	Year         *string       `json:"year"`
	Duration     *string       `json:"duration"`
	Role         *string       `json:"role"`
	Challenge    *string       `json:"challenge"`
	Solution     *string       `json:"solution"`
	Results      *[]string     `json:"results"`
	Technologies *[]string     `json:"technologies"`
	Gallery      *[]string     `json:"gallery"`
	Testimonial  *Testimonial  `json:"testimonial"`
	Metrics      *[]Metric     `json:"metrics"`
	IsPublished  *bool         `json:"is_published"`
	IsPremier    *bool         `json:"is_premier"`

	TitleEn       *string      `json:"title_en"`
	DescriptionEn *string      `json:"description_en"`
	RoleEn        *string      `json:"role_en"`
	ChallengeEn   *string      `json:"challenge_en"`
	SolutionEn    *string      `json:"solution_en"`
	ResultsEn     *[]string    `json:"results_en"`
	TestimonialEn *Testimonial `json:"testimonial_en"`
}
