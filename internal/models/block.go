// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// BlockKind identifies the variant of a content block.
type BlockKind string

const (
	BlockText  BlockKind = "text"
	BlockImage BlockKind = "image"
	BlockVideo BlockKind = "video"
	BlockFile  BlockKind = "file"
)

// DefaultFileLabel is used for file blocks stored without a label.
const DefaultFileLabel = "Download"

// Block is one unit of an ordered article body. The set of implementations
// is closed: TextBlock, ImageBlock, VideoBlock and FileBlock.
type Block interface {
	BlockID() string
	Kind() BlockKind
	isBlock()
}

// TextBlock is a paragraph of Markdown text. HTML is filled in by the read
// API and never persisted.
type TextBlock struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	HTML string `json:"html,omitempty"`
}

// ImageBlock is an image with an optional caption and alt text.
type ImageBlock struct {
	ID      string  `json:"id"`
	URL     string  `json:"url"`
	Caption *string `json:"caption,omitempty"`
	Alt     *string `json:"alt,omitempty"`
}

// VideoBlock is an embedded video with an optional caption.
type VideoBlock struct {
	ID      string  `json:"id"`
	URL     string  `json:"url"`
	Caption *string `json:"caption,omitempty"`
}

// FileBlock is a downloadable attachment.
type FileBlock struct {
	ID          string  `json:"id"`
	URL         string  `json:"url"`
	Label       string  `json:"label"`
	Description *string `json:"description,omitempty"`
}

func (b TextBlock) BlockID() string  { return b.ID }
func (b ImageBlock) BlockID() string { return b.ID }
func (b VideoBlock) BlockID() string { return b.ID }
func (b FileBlock) BlockID() string  { return b.ID }

func (TextBlock) Kind() BlockKind  { return BlockText }
func (ImageBlock) Kind() BlockKind { return BlockImage }
func (VideoBlock) Kind() BlockKind { return BlockVideo }
func (FileBlock) Kind() BlockKind  { return BlockFile }

func (TextBlock) isBlock()  {}
func (ImageBlock) isBlock() {}
func (VideoBlock) isBlock() {}
func (FileBlock) isBlock()  {}

// MarshalJSON adds the "kind" discriminator to each variant.
func (b TextBlock) MarshalJSON() ([]byte, error) {
	type plain TextBlock
	return json.Marshal(struct {
		Kind BlockKind `json:"kind"`
		plain
	}{BlockText, plain(b)})
}

func (b ImageBlock) MarshalJSON() ([]byte, error) {
	type plain ImageBlock
	return json.Marshal(struct {
		Kind BlockKind `json:"kind"`
		plain
	}{BlockImage, plain(b)})
}

func (b VideoBlock) MarshalJSON() ([]byte, error) {
	type plain VideoBlock
	return json.Marshal(struct {
		Kind BlockKind `json:"kind"`
		plain
	}{BlockVideo, plain(b)})
}

func (b FileBlock) MarshalJSON() ([]byte, error) {
	type plain FileBlock
	return json.Marshal(struct {
		Kind BlockKind `json:"kind"`
		plain
	}{BlockFile, plain(b)})
}

// Blocks is an ordered sequence of content blocks. It decodes leniently
// through ParseBlocks, so request bodies and stored rows share one parser.
type Blocks []Block

// UnmarshalJSON never fails: unreadable input yields an empty sequence and
// JSON null yields nil, so an absent translation stays absent.
func (bs *Blocks) UnmarshalJSON(data []byte) error {
	if isNullJSON(data) {
		*bs = nil
		return nil
	}
	*bs = ParseBlocks(data)
	return nil
}

// Kinds returns the kind sequence of the blocks.
func (bs Blocks) Kinds() []BlockKind {
	out := make([]BlockKind, len(bs))
	for i, b := range bs {
		out[i] = b.Kind()
	}
	return out
}

// Isomorphic reports whether other has the same length and kind sequence.
func (bs Blocks) Isomorphic(other Blocks) bool {
	if len(bs) != len(other) {
		return false
	}
	for i := range bs {
		if bs[i].Kind() != other[i].Kind() {
			return false
		}
	}
	return true
}

// ParseBlocks decodes stored content. Accepted shapes, in the order they
// appeared over the life of the column:
//   - a raw plain string (one implicit text block)
//   - a JSON string holding a JSON-encoded block array
//   - a JSON array whose elements are objects or JSON-encoded objects
//
// Unknown kinds are dropped and blocks without an id get a fresh one.
func ParseBlocks(raw []byte) Blocks {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Blocks{}
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return Blocks{TextBlock{ID: newBlockID(), Text: string(raw)}}
	}
	return ParseBlocksValue(v)
}

// ParseBlocksValue is ParseBlocks for an already-decoded JSON value.
func ParseBlocksValue(v any) Blocks {
	switch val := v.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return Blocks{}
		}
		var inner any
		if err := json.Unmarshal([]byte(val), &inner); err != nil {
			return Blocks{TextBlock{ID: newBlockID(), Text: val}}
		}
		return ParseBlocksValue(inner)
	case []any:
		out := make(Blocks, 0, len(val))
		for _, item := range val {
			if b, ok := parseBlockItem(item); ok {
				out = append(out, b)
			}
		}
		return out
	case Blocks:
		return val
	default:
		return Blocks{}
	}
}

func parseBlockItem(item any) (Block, bool) {
	switch val := item.(type) {
	case string:
		if val == "" {
			return nil, false
		}
		var inner any
		if err := json.Unmarshal([]byte(val), &inner); err != nil {
			return TextBlock{ID: newBlockID(), Text: val}, true
		}
		return parseBlockItem(inner)
	case map[string]any:
		return blockFromMap(val)
	default:
		return nil, false
	}
}

func blockFromMap(m map[string]any) (Block, bool) {
	id, _ := m["id"].(string)
	if id == "" {
		id = newBlockID()
	}
	kind, _ := m["kind"].(string)

	switch BlockKind(kind) {
	case BlockText:
		text, _ := m["text"].(string)
		return TextBlock{ID: id, Text: text}, true
	case BlockImage:
		url, _ := m["url"].(string)
		return ImageBlock{ID: id, URL: url, Caption: optString(m, "caption"), Alt: optString(m, "alt")}, true
	case BlockVideo:
		url, _ := m["url"].(string)
		return VideoBlock{ID: id, URL: url, Caption: optString(m, "caption")}, true
	case BlockFile:
		url, _ := m["url"].(string)
		label, ok := m["label"].(string)
		if !ok {
			label = DefaultFileLabel
		}
		return FileBlock{ID: id, URL: url, Label: label, Description: optString(m, "description")}, true
	default:
		return nil, false
	}
}

func optString(m map[string]any, key string) *string {
	s, ok := m[key].(string)
	if !ok {
		return nil
	}
	return &s
}

func newBlockID() string {
	return uuid.NewString()
}

// SanitizeBlocks normalizes editor input before it is stored. Text is
// trimmed and empty text blocks are removed. Media and file blocks without
// a URL are removed. Optional fields that trim to empty become absent.
func SanitizeBlocks(in Blocks) Blocks {
	out := make(Blocks, 0, len(in))
	for _, b := range in {
		switch v := b.(type) {
		case TextBlock:
			text := strings.TrimSpace(v.Text)
			if text == "" {
				continue
			}
			out = append(out, TextBlock{ID: ensureID(v.ID), Text: text})
		case ImageBlock:
			url := strings.TrimSpace(v.URL)
			if url == "" {
				continue
			}
			out = append(out, ImageBlock{ID: ensureID(v.ID), URL: url, Caption: trimOpt(v.Caption), Alt: trimOpt(v.Alt)})
		case VideoBlock:
			url := strings.TrimSpace(v.URL)
			if url == "" {
				continue
			}
			out = append(out, VideoBlock{ID: ensureID(v.ID), URL: url, Caption: trimOpt(v.Caption)})
		case FileBlock:
			url := strings.TrimSpace(v.URL)
			if url == "" {
				continue
			}
			label := strings.TrimSpace(v.Label)
			if label == "" {
				label = DefaultFileLabel
			}
			out = append(out, FileBlock{ID: ensureID(v.ID), URL: url, Label: label, Description: trimOpt(v.Description)})
		}
	}
	return out
}

func ensureID(id string) string {
	if id == "" {
		return newBlockID()
	}
	return id
}

func trimOpt(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
