// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestBlogPostFromRow(t *testing.T) {
	title := "Hello"
	row := BlogRow{
		ID:          uuid.New(),
		Slug:        "halo",
		Title:       "Halo",
		Category:    "Insight",
		ReadingTime: "3 menit baca",
		Content:     []byte(`"Hello world"`),
		TitleEn:     &title,
	}
	post := BlogPostFromRow(row)

	if post.ID != row.ID || post.Slug != "halo" || post.Category != CategoryInsight {
		t.Errorf("identity fields not copied: %+v", post)
	}
	if len(post.Content) != 1 {
		t.Fatalf("content: got %d blocks, want 1", len(post.Content))
	}
	if tb := post.Content[0].(TextBlock); tb.Text != "Hello world" {
		t.Errorf("content text: got %q", tb.Text)
	}
	if post.ContentEn != nil {
		t.Errorf("content_en: expected nil for NULL column, got %+v", post.ContentEn)
	}
	if post.SubtitleEn != nil {
		t.Error("subtitle_en: expected nil")
	}
	if !post.HasTranslation() {
		t.Error("HasTranslation: expected true when title_en is set")
	}
}

func TestBlogPostFromRow_NullContentEnStaysNil(t *testing.T) {
	post := BlogPostFromRow(BlogRow{Content: []byte(`[]`), ContentEn: []byte(`null`)})
	if post.ContentEn != nil {
		t.Error("JSON null content_en should map to nil")
	}
	if post.HasTranslation() {
		t.Error("HasTranslation: expected false")
	}
}

func TestBlogPostFromRow_EmptyContentEnIsNoTranslation(t *testing.T) {
	post := BlogPostFromRow(BlogRow{Content: []byte(`[]`), ContentEn: []byte(`[]`)})
	if post.ContentEn != nil || post.HasTranslation() {
		t.Errorf("empty content_en: got %#v, HasTranslation=%v", post.ContentEn, post.HasTranslation())
	}
}

func TestBlogInput_NullContentEnDecodesToNil(t *testing.T) {
	var in BlogInput
	if err := json.Unmarshal([]byte(`{"title":"x","content_en":null}`), &in); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if in.ContentEn != nil {
		t.Errorf("content_en: got %#v, want nil", in.ContentEn)
	}
	post := &BlogPost{ContentEn: in.ContentEn}
	if post.HasTranslation() {
		t.Error("a null override must not count as a cached translation")
	}
}

func TestPortfolioFromRow(t *testing.T) {
	row := PortfolioRow{
		ID:            uuid.New(),
		Slug:          "vr",
		Tags:          []byte(`["VR","3D"]`),
		Results:       []byte(`["a", 1, "b"]`),
		Technologies:  []byte(`not json`),
		Gallery:       nil,
		Testimonial:   []byte(`{"quote":"Bagus","author":"Budi","position":"CEO"}`),
		Metrics:       []byte(`[{"label":"L","value":"V","description":"D"}]`),
		ResultsEn:     []byte(`["x"]`),
		TestimonialEn: []byte(`{broken`),
	}
	p := PortfolioFromRow(row)

	if !reflect.DeepEqual(p.Tags, []ProjectTag{TagVR, Tag3D}) {
		t.Errorf("tags: got %v", p.Tags)
	}
	if !reflect.DeepEqual(p.Results, []string{"a", "b"}) {
		t.Errorf("results: got %v", p.Results)
	}
	if p.Technologies == nil || len(p.Technologies) != 0 {
		t.Errorf("technologies: got %v, want empty non-nil", p.Technologies)
	}
	if p.Gallery == nil {
		t.Error("gallery: want empty non-nil slice")
	}
	if p.Testimonial == nil || p.Testimonial.Author != "Budi" {
		t.Errorf("testimonial: got %+v", p.Testimonial)
	}
	if len(p.Metrics) != 1 || p.Metrics[0].Value != "V" {
		t.Errorf("metrics: got %+v", p.Metrics)
	}
	if !reflect.DeepEqual(p.ResultsEn, []string{"x"}) {
		t.Errorf("results_en: got %v", p.ResultsEn)
	}
	if p.TestimonialEn != nil {
		t.Errorf("malformed testimonial_en should degrade to nil, got %+v", p.TestimonialEn)
	}
	if !p.HasTranslation() {
		t.Error("HasTranslation: expected true with results_en set")
	}
}

func TestPortfolioFromRow_NoTranslation(t *testing.T) {
	p := PortfolioFromRow(PortfolioRow{ResultsEn: []byte("null")})
	if p.HasTranslation() {
		t.Errorf("HasTranslation: expected false, got true for %+v", p)
	}
}
