// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown renders the text of content blocks to sanitized HTML.
// Text blocks are authored as Markdown in the admin editor; the public API
// ships the rendered HTML next to the source.
package markdown

import (
	"bytes"
	"log/slog"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"kulipoly/internal/models"
)

var md = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
		highlighting.NewHighlighting(
			highlighting.WithStyle("monokai"),
			highlighting.WithFormatOptions(chromahtml.WithClasses(true)),
		),
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

// policy strips anything outside the user-generated-content allowlist.
// Raw HTML in the source survives only if the policy permits it.
var policy = func() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.RequireNoFollowOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}()

// ToHTML converts Markdown source into sanitized HTML.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return policy.SanitizeReader(&buf).String(), nil
}

// RenderBlocks returns a copy of blocks with HTML filled in on every text
// block. A block that fails to render keeps an empty HTML field and the
// client falls back to the plain text.
func RenderBlocks(blocks models.Blocks) models.Blocks {
	out := make(models.Blocks, len(blocks))
	for i, b := range blocks {
		tb, ok := b.(models.TextBlock)
		if !ok {
			out[i] = b
			continue
		}
		rendered, err := ToHTML(tb.Text)
		if err != nil {
			slog.Warn("markdown render failed", "block_id", tb.ID, "error", err)
		}
		tb.HTML = rendered
		out[i] = tb
	}
	return out
}
