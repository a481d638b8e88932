/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"scrapbook/internal/canvas"
	"scrapbook/internal/catalog"
	"scrapbook/internal/vector"
)

// Widget chrome colors.
var (
	white    = vector.White
	black    = vector.Black
	gray50   = vector.ParseHex("#f9fafb", white)
	gray100  = vector.ParseHex("#f3f4f6", white)
	gray200  = vector.ParseHex("#e5e7eb", white)
	gray300  = vector.ParseHex("#d1d5db", white)
	gray400  = vector.ParseHex("#9ca3af", black)
	gray500  = vector.ParseHex("#6b7280", black)
	gray600  = vector.ParseHex("#4b5563", black)
	gray700  = vector.ParseHex("#374151", black)
	gray900  = vector.ParseHex("#111827", black)
	amber100 = vector.ParseHex("#fef3c7", white)
	amber600 = vector.ParseHex("#d97706", black)
	red600   = vector.ParseHex("#dc2626", black)
	pink50   = vector.ParseHex("#fdf2f8", white)
	pink200  = vector.ParseHex("#fbcfe8", white)
	pink600  = vector.ParseHex("#db2777", black)
	pink800  = vector.ParseHex("#9d174d", black)
)

// Fixed widget sizes in pixels.
const (
	letterW, letterH  = 256.0, 320.0
	pickerW, pickerH  = 280.0, 320.0
	vinylW, vinylH    = 160.0, 208.0
	discSize          = 128.0
	stickerSize       = 36.0
	pickerColumns     = 5
	pickerRows        = 4
	pickerCell        = 40.0
	pickerGap         = 8.0
	letterBodySize    = 14.0
	letterLineSpacing = 1.8
	labelLineSpacing  = 1.2
	placeholderW      = 120.0
	placeholderH      = 40.0
)

var letterPlaceholder = []string{"My dearest love,", "", "Write your heart out here...", "", "Forever yours,", "Your Love"}

// box collects the nodes and hotspots of one widget in local coordinates.
type box struct {
	w, h  float64
	nodes []vector.Node
	hot   []Hotspot
}

func (b *box) add(n ...vector.Node) { b.nodes = append(b.nodes, n...) }

// line adds a single text line whose top-left corner is (x, y).
func (b *box) line(x, y float64, s string, size float64, family string, c vector.Color) float64 {
	w := MeasureLine(s, size)
	b.add(vector.NewText(vector.R(x, y, w, LineHeight(size)), s, size, family, c))
	return w
}

// centered adds a text line horizontally centered on cx.
func (b *box) centered(cx, y float64, s string, size float64, c vector.Color) {
	w := MeasureLine(s, size)
	b.add(vector.NewText(vector.R(cx-w/2, y, w, LineHeight(size)), s, size, "", c))
}

func (b *box) hotspot(r vector.Rect, a Action, v string) {
	b.hot = append(b.hot, Hotspot{Rect: r, Action: a, Value: v})
}

func polaroid(p canvas.Payload, cat *catalog.Catalog) *box {
	fs := cat.PolaroidSize(p.String(canvas.KeySize, canvas.DefaultFrameSize))
	pad := fs.Padding
	captionH := 4 * pad
	b := &box{w: fs.Width, h: pad + fs.PhotoHeight + captionH}
	b.add(vector.NewRect(vector.R(0, 0, b.w, b.h), vector.Solid(white), vector.Line(gray200, 1)))

	photo := vector.R(pad, pad, fs.Width-2*pad, fs.PhotoHeight)
	c := photo.Center()
	if img := p.String(canvas.KeyImage, ""); img != "" {
		b.add(vector.NewRect(photo, vector.Solid(gray300), vector.Line(gray200, 1)))
		b.centered(c.X, c.Y-LineHeight(12)/2, filepath.Base(img), 12, gray600)
	} else {
		b.add(vector.NewRect(photo, vector.Solid(gray100), vector.Line(gray200, 1)))
		b.add(vector.NewEllipse(vector.R(c.X-24, c.Y-24, 48, 48), vector.Solid(amber100), vector.Stroke{}))
		b.centered(c.X, c.Y-LineHeight(24)/2, "+", 24, amber600)
	}

	caption, ink := p.String(canvas.KeyCaption, ""), gray600
	if caption == "" {
		caption, ink = "Add a caption...", gray400
	}
	b.centered(b.w/2, pad+fs.PhotoHeight+(captionH-LineHeight(14))/2, caption, 14, ink)
	return b
}

func photobooth(p canvas.Payload, cat *catalog.Catalog) *box {
	fs := cat.PhotoboothSize(p.String(canvas.KeySize, canvas.DefaultFrameSize))
	const border = 4.0
	inset := border + fs.Padding*4
	ts := 10 + fs.Padding
	lh := LineHeight(ts)
	b := &box{w: fs.Width}

	y := inset
	b.centered(b.w/2, y, "PHOTOBOOTH", ts, gray700)
	b.centered(b.w/2, y+lh, "❤️ ANNIVERSARY ❤️", ts, gray500)
	y += 2*lh + 12

	images := stringList(p[canvas.KeyImages])
	for i := range 4 {
		cell := vector.R(inset, y, b.w-2*inset, fs.PhotoHeight)
		fill, label := gray100, fmt.Sprintf("Photo %d", i+1)
		if i < len(images) && images[i] != "" {
			fill, label = gray300, filepath.Base(images[i])
		}
		b.add(vector.NewRoundedRect(cell, 4, vector.Solid(fill), vector.Line(gray300, 2)))
		c := cell.Center()
		b.centered(c.X, c.Y-LineHeight(12)/2, label, 12, gray400)
		y += fs.PhotoHeight + 8
	}
	y += 4
	b.centered(b.w/2, y, "Keep this memory forever", ts, gray500)
	b.h = y + lh + inset

	// the strip background goes below everything laid out above
	frame := vector.NewRoundedRect(vector.R(0, 0, b.w, b.h), 8, vector.Solid(white), vector.Line(gray200, border))
	b.nodes = append([]vector.Node{frame}, b.nodes...)
	return b
}

func vinyl(p canvas.Payload, cat *catalog.Catalog) *box {
	b := &box{w: vinylW, h: vinylH}
	dx := (vinylW - discSize) / 2
	disc := vector.R(dx, 0, discSize, discSize)
	b.add(vector.NewEllipse(disc, vector.Solid(gray900), vector.Stroke{}))
	for i, ring := range []vector.Color{gray700, gray600, gray500} {
		d := float64(8 * (i + 1))
		w := 1.0
		if i == 0 {
			w = 2
		}
		b.add(vector.NewEllipse(disc.Inset(d, d), vector.Fill{}, vector.Line(ring, w)))
	}
	c := disc.Center()
	b.add(vector.NewEllipse(vector.R(c.X-16, c.Y-16, 32, 32), vector.Solid(red600), vector.Stroke{}))
	b.add(vector.NewEllipse(vector.R(c.X-4, c.Y-4, 8, 8), vector.Solid(black), vector.Stroke{}))
	b.add(vector.NewRect(vector.R(dx+discSize-40, 2, 56, 4), vector.Solid(gray400), vector.Stroke{}))

	panel := vector.R(0, discSize+16, vinylW, vinylH-discSize-16)
	b.add(vector.NewRoundedRect(panel, 8, vector.Solid(white), vector.Line(gray200, 1)))
	btn := vector.R(vinylW/2-14, panel.Y+6, 28, 28)
	b.add(vector.NewEllipse(btn, vector.Solid(amber100), vector.Stroke{}))
	glyph := ">"
	if p.Bool(canvas.KeyPlaying, false) {
		glyph = "||"
	}
	b.centered(btn.Center().X, btn.Center().Y-LineHeight(14)/2, glyph, 14, amber600)
	b.hotspot(btn, ActionTogglePlay, "")

	song := p.String(canvas.KeySong, "")
	if song == "" {
		song = cat.Song("")
	}
	b.centered(vinylW/2, btn.Y+btn.H+4, song, 12, gray600)
	return b
}

func letter(p canvas.Payload, cat *catalog.Catalog) *box {
	st := cat.Letter(p.String(canvas.KeyTemplate, canvas.DefaultLetterTemplate))
	bg := vector.ParseHex(st.Background, white)
	ink := vector.ParseHex(st.Ink, black)
	b := &box{w: letterW, h: letterH}
	b.add(vector.NewRect(vector.R(0, 0, letterW, letterH), vector.Solid(bg), vector.Line(vector.ParseHex(st.Border, gray200), 2)))

	faint := vector.Mix(ink, bg, 0.1)
	switch st.Pattern {
	case "vintage-lines":
		for y := 24.0; y < letterH; y += 25 {
			b.add(vector.NewRect(vector.R(2, y, letterW-4, 1), vector.Solid(faint), vector.Stroke{}))
		}
	case "romantic-hearts":
		for y := 20.0; y < letterH-10; y += 40 {
			for x := 20.0; x < letterW-10; x += 40 {
				b.add(vector.NewEllipse(vector.R(x, y, 6, 6), vector.Solid(faint), vector.Stroke{}))
			}
		}
	case "elegant-flourish":
		b.add(vector.NewRect(vector.R(6, 6, letterW-12, letterH-12), vector.Fill{}, vector.Line(faint, 1)))
	}

	const pad = 24.0
	b.centered(letterW/2, pad, "💕 Our Love Story 💕", 18, ink)
	b.add(vector.NewRect(vector.R(pad, pad+LineHeight(18)+8, letterW-2*pad, 1), vector.Solid(vector.Mix(ink, bg, 0.3)), vector.Stroke{}))

	lines, col := letterPlaceholder, vector.Mix(ink, bg, 0.5)
	if content := p.String(canvas.KeyContent, ""); content != "" {
		lines, col = wrap(content, letterBodySize, letterW-2*pad), ink
	}
	step := letterBodySize * letterLineSpacing
	maxLines := int(192 / step)
	y := pad + LineHeight(18) + 24
	for i, ln := range lines {
		if i >= maxLines {
			break
		}
		if ln != "" {
			b.line(pad, y, ln, letterBodySize, "cursive", col)
		}
		y += step
	}

	footer := "💌"
	b.line(letterW-pad-MeasureLine(footer, 24), letterH-16-LineHeight(24), footer, 24, "", ink)
	return b
}

func stickerPicker(p canvas.Payload, cat *catalog.Catalog) *box {
	b := &box{w: pickerW, h: pickerH}
	b.add(vector.NewRoundedRect(vector.R(0, 0, pickerW, pickerH), 12, vector.Solid(white), vector.Line(pink200, 1)))
	b.centered(pickerW/2, 16, "Sticker Collection", 18, pink800)
	b.centered(pickerW/2, 16+LineHeight(18)+2, "Click to add stickers to canvas", 12, pink600)

	const pad = 16.0
	active := cat.StickerSet(p.String(canvas.KeySet, ""))
	if n := len(cat.Stickers); n > 0 {
		tabW := (pickerW - 2*pad - 4*float64(n-1)) / float64(n)
		for i, set := range cat.Stickers {
			r := vector.R(pad+float64(i)*(tabW+4), 64, tabW, 24)
			fill, ink := gray100, gray600
			if set.Key == active.Key {
				fill, ink = pink200, pink800
			}
			b.add(vector.NewRoundedRect(r, 4, vector.Solid(fill), vector.Stroke{}))
			c := r.Center()
			b.centered(c.X, c.Y-LineHeight(12)/2, set.Label, 12, ink)
			b.hotspot(r, ActionStickerTab, set.Key)
		}
	}

	gridW := pickerColumns*pickerCell + (pickerColumns-1)*pickerGap
	x0, y0 := (pickerW-gridW)/2, 100.0
	for i, g := range active.Glyphs {
		if i >= pickerColumns*pickerRows {
			break
		}
		col, row := i%pickerColumns, i/pickerColumns
		r := vector.R(x0+float64(col)*(pickerCell+pickerGap), y0+float64(row)*(pickerCell+pickerGap), pickerCell, pickerCell)
		b.add(vector.NewRoundedRect(r, 8, vector.Solid(pink50), vector.Line(pink200, 1)))
		c := r.Center()
		b.centered(c.X, c.Y-LineHeight(18)/2, g, 18, black)
		b.hotspot(r, ActionPickSticker, g)
	}

	b.centered(pickerW/2, pickerH-pad-LineHeight(12), "Drag stickers around after placing them!", 12, gray500)
	return b
}

func sticker(p canvas.Payload) *box {
	glyph := p.String(canvas.KeyContent, canvas.DefaultSticker)
	w, h := MeasureText(glyph, stickerSize)
	b := &box{w: w, h: h}
	b.line(0, 0, glyph, stickerSize, "", black)
	return b
}

// TextSize returns the clamped pixel size of a text label payload.
func TextSize(p canvas.Payload) float64 {
	return max(canvas.MinTextSize, min(canvas.MaxTextSize, p.Float(canvas.KeySize, canvas.DefaultTextSize)))
}

func textLabel(p canvas.Payload, cat *catalog.Catalog) *box {
	text := p.String(canvas.KeyText, canvas.DefaultText)
	family := cat.Font(p.String(canvas.KeyFont, canvas.DefaultFont)).Name
	col := vector.ParseHex(p.String(canvas.KeyColor, canvas.DefaultColor), black)
	size := TextSize(p)
	step := size * labelLineSpacing
	b := &box{}
	y := 0.0
	for _, ln := range strings.Split(text, "\n") {
		b.w = max(b.w, b.line(0, y, ln, size, family, col))
		y += step
	}
	b.h = max(y, LineHeight(size))
	return b
}

func placeholder(k canvas.Kind) *box {
	b := &box{w: placeholderW, h: placeholderH}
	b.add(vector.NewRect(vector.R(0, 0, placeholderW, placeholderH), vector.Solid(gray50), vector.Line(gray300, 1)))
	b.centered(placeholderW/2, (placeholderH-LineHeight(12))/2, string(k), 12, gray500)
	return b
}

// stringList accepts the list shapes a payload may carry after YAML or JSON decoding.
func stringList(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, len(t))
		for i, e := range t {
			if s, ok := e.(string); ok {
				out[i] = s
			}
		}
		return out
	}
	return nil
}
