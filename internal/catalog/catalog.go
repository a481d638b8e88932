/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package catalog holds the presentational configuration of the scrapbook:
// letter skins, frame sizes, fonts, color swatches, sticker glyph tables,
// songs and toolbar entries. Everything is looked up by key with a defined
// fallback so a renderer never has to handle a missing style.
package catalog

import (
	"strings"

	"scrapbook/internal/canvas"
)

// LetterStyle is the skin of a letter template.
type LetterStyle struct {
	Key        string `yaml:"key" json:"key"`
	Name       string `yaml:"name" json:"name"`
	Preview    string `yaml:"preview" json:"preview"`
	Background string `yaml:"background" json:"background"`
	Border     string `yaml:"border" json:"border"`
	Ink        string `yaml:"ink" json:"ink"`
	Pattern    string `yaml:"pattern" json:"pattern"`
}

// FrameSize is a size preset for photo frames and strips, in pixels.
type FrameSize struct {
	Key         string  `yaml:"key" json:"key"`
	Width       float64 `yaml:"width" json:"width"`
	PhotoHeight float64 `yaml:"photo_height" json:"photo_height"`
	Padding     float64 `yaml:"padding" json:"padding"`
}

// Font is a selectable text-label font.
type Font struct {
	Name     string `yaml:"name" json:"name"`
	Category string `yaml:"category" json:"category"`
}

// StickerSet is one tab of the sticker picker.
type StickerSet struct {
	Key    string   `yaml:"key" json:"key"`
	Label  string   `yaml:"label" json:"label"`
	Glyphs []string `yaml:"glyphs" json:"glyphs"`
}

// Tool describes a toolbar button.
type Tool struct {
	Kind        canvas.Kind `yaml:"kind" json:"kind"`
	Label       string      `yaml:"label" json:"label"`
	Icon        string      `yaml:"icon" json:"icon"`
	Description string      `yaml:"description" json:"description"`
}

// Catalog is the full set of presentational data.
type Catalog struct {
	Letters         []LetterStyle `yaml:"letters" json:"letters"`
	PolaroidSizes   []FrameSize   `yaml:"polaroid_sizes" json:"polaroid_sizes"`
	PhotoboothSizes []FrameSize   `yaml:"photobooth_sizes" json:"photobooth_sizes"`
	Fonts           []Font        `yaml:"fonts" json:"fonts"`
	Swatches        []string      `yaml:"swatches" json:"swatches"`
	Stickers        []StickerSet  `yaml:"stickers" json:"stickers"`
	Songs           []string      `yaml:"songs" json:"songs"`
	Tools           []Tool        `yaml:"tools" json:"tools"`
}

// Default returns the built-in catalog. Each call returns a fresh copy.
func Default() *Catalog {
	return &Catalog{
		Letters: []LetterStyle{
			{Key: "vintage", Name: "Vintage", Preview: "📜", Background: "#fffbeb", Border: "#fde68a", Ink: "#78350f", Pattern: "vintage-lines"},
			{Key: "romantic", Name: "Romantic", Preview: "💝", Background: "#fff1f2", Border: "#fecdd3", Ink: "#881337", Pattern: "romantic-hearts"},
			{Key: "classic", Name: "Classic", Preview: "📄", Background: "#f9fafb", Border: "#e5e7eb", Ink: "#111827", Pattern: "classic-simple"},
			{Key: "elegant", Name: "Elegant", Preview: "✨", Background: "#f5f3ff", Border: "#ddd6fe", Ink: "#4c1d95", Pattern: "elegant-flourish"},
		},
		PolaroidSizes: []FrameSize{
			{Key: "small", Width: 160, PhotoHeight: 140, Padding: 8},
			{Key: "medium", Width: 220, PhotoHeight: 196, Padding: 12},
			{Key: "large", Width: 280, PhotoHeight: 252, Padding: 16},
		},
		PhotoboothSizes: []FrameSize{
			{Key: "small", Width: 120, PhotoHeight: 60, Padding: 2},
			{Key: "medium", Width: 180, PhotoHeight: 80, Padding: 4},
			{Key: "large", Width: 240, PhotoHeight: 100, Padding: 6},
		},
		Fonts: []Font{
			{Name: "Arial", Category: "Formal"},
			{Name: "Georgia", Category: "Formal"},
			{Name: "Times New Roman", Category: "Formal"},
			{Name: "Helvetica", Category: "Formal"},
			{Name: "Dancing Script", Category: "Cursive"},
			{Name: "Pacifico", Category: "Cursive"},
			{Name: "Great Vibes", Category: "Cursive"},
			{Name: "Kaushan Script", Category: "Handwritten"},
			{Name: "Caveat", Category: "Handwritten"},
			{Name: "Amatic SC", Category: "Handwritten"},
			{Name: "Indie Flower", Category: "Handwritten"},
			{Name: "Playfair Display", Category: "Vintage"},
			{Name: "Crimson Text", Category: "Vintage"},
			{Name: "Old Standard TT", Category: "Vintage"},
			{Name: "UnifrakturMaguntia", Category: "Vintage"},
		},
		Swatches: []string{
			"#000000", "#333333", "#666666", "#999999",
			"#FF0000", "#FF6B6B", "#FF8E53", "#FF6B35",
			"#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7",
			"#DDA0DD", "#98D8C8", "#F7DC6F", "#BB8FCE",
		},
		Stickers: []StickerSet{
			{Key: "hearts", Label: "Hearts", Glyphs: []string{
				"❤️", "💕", "💖", "💗", "💓", "💘", "💝", "💋", "🫶", "💌",
				"🌹", "🌷", "🌺", "🌻", "🥰", "😍", "😘", "🥳", "✨", "💫",
			}},
			{Key: "text", Label: "Text", Glyphs: []string{
				"LOVE", "XOXO", "KISS", "HUG", "CUTE", "SWEET", "DEAR", "MINE",
				"FOREVER", "ALWAYS", "YOURS", "BABE", "HONEY", "ANGEL", "PERFECT",
			}},
			{Key: "misc", Label: "Misc", Glyphs: []string{
				"⭐", "🎀", "🎈", "🎊", "🎉", "🎁", "🌈", "☁️", "🦋", "🌸",
				"📮", "💍", "🎵", "🎶", "📷", "✉️", "🔖", "🍁", "🧸", "🍭",
			}},
		},
		Songs: []string{"Our Song", "First Dance", "Your Favorite Song", "That Special Song", "Anniversary Tune"},
		Tools: []Tool{
			{Kind: canvas.KindPolaroid, Label: "Polaroid", Icon: "📷", Description: "Add photo frame"},
			{Kind: canvas.KindPhotobooth, Label: "Photobooth", Icon: "📸", Description: "Add 4-photo strip"},
			{Kind: canvas.KindVinyl, Label: "Vinyl", Icon: "🎵", Description: "Add music player"},
			{Kind: canvas.KindLetter, Label: "Letter", Icon: "💌", Description: "Add letter template"},
			{Kind: canvas.KindStickers, Label: "Stickers", Icon: "✨", Description: "Add sticker collection"},
			{Kind: canvas.KindText, Label: "Text", Icon: "📝", Description: "Add custom text"},
		},
	}
}

// Letter returns the style for key, falling back to the vintage skin and then
// to the first configured skin.
func (c *Catalog) Letter(key string) LetterStyle {
	if s, ok := findLetter(c.Letters, key); ok {
		return s
	}
	if s, ok := findLetter(c.Letters, canvas.DefaultLetterTemplate); ok {
		return s
	}
	if len(c.Letters) > 0 {
		return c.Letters[0]
	}
	return Default().Letters[0]
}

func findLetter(list []LetterStyle, key string) (LetterStyle, bool) {
	key = normKey(key)
	for _, s := range list {
		if normKey(s.Key) == key {
			return s, true
		}
	}
	return LetterStyle{}, false
}

// PolaroidSize returns the polaroid preset for key with "medium" as fallback.
func (c *Catalog) PolaroidSize(key string) FrameSize {
	return pickSize(c.PolaroidSizes, Default().PolaroidSizes, key)
}

// PhotoboothSize returns the photo-strip preset for key with "medium" as fallback.
func (c *Catalog) PhotoboothSize(key string) FrameSize {
	return pickSize(c.PhotoboothSizes, Default().PhotoboothSizes, key)
}

func pickSize(list, builtin []FrameSize, key string) FrameSize {
	for _, k := range []string{key, canvas.DefaultFrameSize} {
		k = normKey(k)
		for _, s := range list {
			if normKey(s.Key) == k {
				return s
			}
		}
	}
	if len(list) > 0 {
		return list[0]
	}
	return builtin[1]
}

// Font returns the font with the given name or the default font.
func (c *Catalog) Font(name string) Font {
	for _, n := range []string{name, canvas.DefaultFont} {
		for _, f := range c.Fonts {
			if strings.EqualFold(f.Name, n) {
				return f
			}
		}
	}
	return Font{Name: canvas.DefaultFont, Category: "Formal"}
}

// FontCategories lists categories in first-seen order.
func (c *Catalog) FontCategories() []string {
	var out []string
	seen := map[string]bool{}
	for _, f := range c.Fonts {
		if !seen[f.Category] {
			seen[f.Category] = true
			out = append(out, f.Category)
		}
	}
	return out
}

// StickerSet returns the set for key, falling back to the first set.
func (c *Catalog) StickerSet(key string) StickerSet {
	key = normKey(key)
	for _, s := range c.Stickers {
		if normKey(s.Key) == key {
			return s
		}
	}
	if len(c.Stickers) > 0 {
		return c.Stickers[0]
	}
	return Default().Stickers[0]
}

// Song returns title when it is a known song, otherwise the first song.
func (c *Catalog) Song(title string) string {
	for _, s := range c.Songs {
		if s == title {
			return s
		}
	}
	if len(c.Songs) > 0 {
		return c.Songs[0]
	}
	return Default().Songs[0]
}

// Tool returns the toolbar entry for k.
func (c *Catalog) Tool(k canvas.Kind) (Tool, bool) {
	for _, t := range c.Tools {
		if t.Kind == k {
			return t, true
		}
	}
	return Tool{}, false
}

func normKey(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
