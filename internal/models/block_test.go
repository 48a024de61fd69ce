// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestParseBlocks_LegacyPlainString(t *testing.T) {
	for _, raw := range []string{`Hello world`, `"Hello world"`} {
		blocks := ParseBlocks([]byte(raw))
		if len(blocks) != 1 {
			t.Fatalf("ParseBlocks(%s): got %d blocks, want 1", raw, len(blocks))
		}
		tb, ok := blocks[0].(TextBlock)
		if !ok {
			t.Fatalf("ParseBlocks(%s): got %T, want TextBlock", raw, blocks[0])
		}
		if tb.Text != "Hello world" {
			t.Errorf("text: got %q, want %q", tb.Text, "Hello world")
		}
		if tb.ID == "" {
			t.Error("legacy block should be assigned an id")
		}
	}
}

func TestParseBlocks_Array(t *testing.T) {
	raw := `[
		{"id":"a","kind":"text","text":"Halo"},
		{"id":"b","kind":"image","url":"/x.png","caption":"Gambar"},
		{"id":"c","kind":"video","url":"https://v.example/1"},
		{"id":"d","kind":"file","url":"/doc.pdf","label":"Unduh","description":"PDF"}
	]`
	blocks := ParseBlocks([]byte(raw))

	want := []BlockKind{BlockText, BlockImage, BlockVideo, BlockFile}
	if got := blocks.Kinds(); !reflect.DeepEqual(got, want) {
		t.Fatalf("kinds: got %v, want %v", got, want)
	}
	img := blocks[1].(ImageBlock)
	if img.Caption == nil || *img.Caption != "Gambar" {
		t.Errorf("image caption: got %v", img.Caption)
	}
	if img.Alt != nil {
		t.Errorf("image alt: expected absent, got %q", *img.Alt)
	}
	file := blocks[3].(FileBlock)
	if file.Label != "Unduh" || file.Description == nil || *file.Description != "PDF" {
		t.Errorf("file block: got %+v", file)
	}
}

func TestParseBlocks_DoubleEncoded(t *testing.T) {
	inner := `[{"id":"a","kind":"text","text":"Halo"}]`
	outer, _ := json.Marshal(inner)

	blocks := ParseBlocks(outer)
	if len(blocks) != 1 || blocks[0].BlockID() != "a" {
		t.Fatalf("double-encoded content: got %+v", blocks)
	}
}

func TestParseBlocks_EncodedElements(t *testing.T) {
	raw := `["{\"id\":\"a\",\"kind\":\"text\",\"text\":\"Satu\"}", "dua"]`
	blocks := ParseBlocks([]byte(raw))
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0].(TextBlock).Text != "Satu" {
		t.Errorf("first block: got %+v", blocks[0])
	}
	if blocks[1].(TextBlock).Text != "dua" {
		t.Errorf("second block: got %+v", blocks[1])
	}
}

func TestParseBlocks_DropsUnknownAndMalformed(t *testing.T) {
	raw := `[{"kind":"quote","text":"x"}, 42, null, {"kind":"text","text":"ok"}, {"text":"no kind"}]`
	blocks := ParseBlocks([]byte(raw))
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1: %+v", len(blocks), blocks)
	}
	if blocks[0].BlockID() == "" {
		t.Error("block without id should get a generated one")
	}
}

func TestParseBlocks_NonStringFieldsTolerated(t *testing.T) {
	raw := `[{"id":7,"kind":"file","url":true,"caption":1}]`
	blocks := ParseBlocks([]byte(raw))
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	fb := blocks[0].(FileBlock)
	if fb.URL != "" {
		t.Errorf("url: got %q, want empty", fb.URL)
	}
	if fb.Label != DefaultFileLabel {
		t.Errorf("label: got %q, want %q", fb.Label, DefaultFileLabel)
	}
	if fb.ID == "" {
		t.Error("non-string id should be replaced with a generated one")
	}
}

func TestParseBlocks_EmptyInputs(t *testing.T) {
	for _, raw := range []string{``, `null`, `[]`, `{}`, `""`, `12`} {
		if got := ParseBlocks([]byte(raw)); len(got) != 0 {
			t.Errorf("ParseBlocks(%q): got %d blocks, want 0", raw, len(got))
		}
	}
}

func TestBlocks_JSONRoundTripKeepsKind(t *testing.T) {
	in := Blocks{
		TextBlock{ID: "a", Text: "Halo"},
		ImageBlock{ID: "b", URL: "/x.png", Alt: strPtr("alt")},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"kind":"text"`) || !strings.Contains(string(data), `"kind":"image"`) {
		t.Errorf("marshalled blocks missing kind: %s", data)
	}
	if strings.Contains(string(data), "caption") {
		t.Errorf("absent caption should be omitted: %s", data)
	}

	var out Blocks
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Errorf("round trip: got %+v, want %+v", out, in)
	}
}

func TestSanitizeBlocks(t *testing.T) {
	in := Blocks{
		TextBlock{ID: "a", Text: "  Halo  "},
		TextBlock{ID: "b", Text: "   "},
		ImageBlock{ID: "c", URL: " ", Caption: strPtr("x")},
		ImageBlock{ID: "d", URL: "/img.png ", Caption: strPtr("  "), Alt: strPtr(" alt ")},
		VideoBlock{URL: "https://v.example/1"},
		FileBlock{ID: "f", URL: "/a.pdf", Label: " ", Description: strPtr("")},
	}
	out := SanitizeBlocks(in)

	if len(out) != 4 {
		t.Fatalf("got %d blocks, want 4: %+v", len(out), out)
	}
	if got := out[0].(TextBlock).Text; got != "Halo" {
		t.Errorf("text: got %q, want %q", got, "Halo")
	}
	img := out[1].(ImageBlock)
	if img.URL != "/img.png" || img.Caption != nil || img.Alt == nil || *img.Alt != "alt" {
		t.Errorf("image: got %+v", img)
	}
	if out[2].BlockID() == "" {
		t.Error("video without id should get one")
	}
	file := out[3].(FileBlock)
	if file.Label != DefaultFileLabel || file.Description != nil {
		t.Errorf("file: got %+v", file)
	}
}

func TestBlocksIsomorphic(t *testing.T) {
	a := Blocks{TextBlock{Text: "a"}, ImageBlock{URL: "/x"}}
	b := Blocks{TextBlock{Text: "b"}, ImageBlock{URL: "/x", Caption: strPtr("c")}}
	c := Blocks{ImageBlock{URL: "/x"}, TextBlock{Text: "a"}}

	if !a.Isomorphic(b) {
		t.Error("same kind sequence should be isomorphic")
	}
	if a.Isomorphic(c) {
		t.Error("different order should not be isomorphic")
	}
	if a.Isomorphic(a[:1]) {
		t.Error("different length should not be isomorphic")
	}
}
