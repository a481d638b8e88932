/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package canvas

// This file defines the canvas item model: the closed set of widget kinds,
// positions in canvas-local pixel space and the per-kind payload blob.

import (
	"math"
	"strings"
)

// Kind is the widget variant of a canvas item. The set is closed.
type Kind string

const (
	KindPolaroid   Kind = "polaroid"   // photo frame
	KindPhotobooth Kind = "photobooth" // 4-photo strip
	KindVinyl      Kind = "vinyl"      // music player
	KindLetter     Kind = "letter"
	KindStickers   Kind = "stickers" // sticker collection picker
	KindSticker    Kind = "sticker"  // a single placed sticker
	KindText       Kind = "text"
)

var allKinds = []Kind{KindPolaroid, KindPhotobooth, KindVinyl, KindLetter, KindStickers, KindSticker, KindText}

// Kinds returns every known kind.
func Kinds() []Kind { return append([]Kind(nil), allKinds...) }

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	for _, v := range allKinds {
		if v == k {
			return true
		}
	}
	return false
}

// ParseKind accepts a kind name case-insensitively.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", false
	}
	return k, true
}

func (k Kind) String() string { return string(k) }

// Point is a position in canvas-local pixels with (0,0) at the top-left corner.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point { return Point{X: p.X - o.X, Y: p.Y - o.Y} }

// Payload keys shared by the built-in widget editors.
const (
	KeyTemplate = "template"
	KeyContent  = "content"
	KeyText     = "text"
	KeyFont     = "font"
	KeyColor    = "color"
	KeySize     = "size"
	KeyImage    = "image"
	KeyCaption  = "caption"
	KeyImages   = "images"
	KeySong     = "song"
	KeyPlaying  = "playing"
	KeySet      = "set" // selected tab of the sticker picker
)

// Default values applied when an item is created.
const (
	DefaultLetterTemplate = "vintage"
	DefaultText           = "Add your text here..."
	DefaultFont           = "Arial"
	DefaultColor          = "#000000"
	DefaultTextSize       = 16
	MinTextSize           = 12
	MaxTextSize           = 72
	DefaultFrameSize      = "medium"
	DefaultSticker        = "❤️"
)

// Payload is the variant-specific data of an item. Its shape is decided by the
// item's Kind; the store treats it as opaque apart from shallow merging.
type Payload map[string]any

// Clone returns a deep copy of the maps and slices inside p so snapshot
// readers cannot mutate the store through them. Other values are copied as is.
func (p Payload) Clone() Payload {
	out := make(Payload, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case []string:
		return append([]string(nil), t...)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = cloneValue(e)
		}
		return out
	case Payload:
		return t.Clone()
	}
	return v
}

// String returns the value under key as a string, or def when missing or not a string.
func (p Payload) String(key, def string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return def
}

// Float returns the value under key as a float64. Integer values are widened.
func (p Payload) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return def
		}
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	}
	return def
}

// Bool returns the value under key as a bool.
func (p Payload) Bool(key string, def bool) bool {
	if b, ok := p[key].(bool); ok {
		return b
	}
	return def
}

// DefaultPayload returns a fresh default payload for the kind.
// Kinds without editable content get an empty payload.
func DefaultPayload(k Kind) Payload {
	switch k {
	case KindLetter:
		return Payload{KeyTemplate: DefaultLetterTemplate, KeyContent: ""}
	case KindText:
		return Payload{KeyText: DefaultText, KeyFont: DefaultFont, KeyColor: DefaultColor, KeySize: DefaultTextSize}
	case KindPolaroid, KindPhotobooth:
		return Payload{KeySize: DefaultFrameSize}
	case KindSticker:
		return Payload{KeyContent: DefaultSticker}
	default:
		return Payload{}
	}
}

// Item is a widget placed on the canvas.
type Item struct {
	ID       string  `json:"id"`
	Kind     Kind    `json:"kind"`
	Position Point   `json:"position"`
	Payload  Payload `json:"payload"`
}

func (it Item) clone() Item {
	it.Payload = it.Payload.Clone()
	return it
}
