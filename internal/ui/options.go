/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package ui is the desktop front end of the scrapbook. The Fyne window is
// only compiled with -tags fyne; other builds get a stub Run.
package ui

import (
	"strconv"

	"scrapbook/internal/canvas"
	"scrapbook/internal/catalog"
)

// Options configures the desktop window.
type Options struct {
	Catalog       *catalog.Catalog // nil means the built-in catalog
	Width, Height float64          // initial canvas size
	StickerMargin float64
	ExportDir     string // default directory of the export dialogs
}

// Control is the kind of input an editor field uses.
type Control int

const (
	ControlEntry Control = iota
	ControlMultiline
	ControlSelect
	ControlSlider
)

// Field is one row of the item editor.
type Field struct {
	Key     string
	Label   string
	Control Control
	Min     float64 // slider range
	Max     float64
	Choices func(*catalog.Catalog) []string // select options
}

// Fields lists the editor rows for items of kind k. Kinds without editable
// content have none.
func Fields(k canvas.Kind) []Field {
	switch k {
	case canvas.KindText:
		return []Field{
			{Key: canvas.KeyText, Label: "Text", Control: ControlEntry},
			{Key: canvas.KeyFont, Label: "Font", Control: ControlSelect, Choices: fontNames},
			{Key: canvas.KeyColor, Label: "Color", Control: ControlSelect, Choices: func(c *catalog.Catalog) []string { return c.Swatches }},
			{Key: canvas.KeySize, Label: "Size", Control: ControlSlider, Min: canvas.MinTextSize, Max: canvas.MaxTextSize},
		}
	case canvas.KindLetter:
		return []Field{
			{Key: canvas.KeyTemplate, Label: "Template", Control: ControlSelect, Choices: letterKeys},
			{Key: canvas.KeyContent, Label: "Letter", Control: ControlMultiline},
		}
	case canvas.KindPolaroid:
		return []Field{
			{Key: canvas.KeyCaption, Label: "Caption", Control: ControlEntry},
			{Key: canvas.KeyImage, Label: "Photo", Control: ControlEntry},
			{Key: canvas.KeySize, Label: "Size", Control: ControlSelect, Choices: func(c *catalog.Catalog) []string { return sizeKeys(c.PolaroidSizes) }},
		}
	case canvas.KindPhotobooth:
		return []Field{
			{Key: canvas.KeySize, Label: "Size", Control: ControlSelect, Choices: func(c *catalog.Catalog) []string { return sizeKeys(c.PhotoboothSizes) }},
		}
	case canvas.KindVinyl:
		return []Field{
			{Key: canvas.KeySong, Label: "Song", Control: ControlSelect, Choices: func(c *catalog.Catalog) []string { return c.Songs }},
		}
	}
	return nil
}

// Value renders the current payload value of f as editor text.
func (f Field) Value(p canvas.Payload, cat *catalog.Catalog) string {
	switch f.Control {
	case ControlSlider:
		return strconv.FormatFloat(p.Float(f.Key, f.Min), 'f', -1, 64)
	case ControlSelect:
		if v := p.String(f.Key, ""); v != "" {
			return v
		}
		if f.Choices != nil {
			if opts := f.Choices(cat); len(opts) > 0 {
				return opts[0]
			}
		}
		return ""
	}
	return p.String(f.Key, "")
}

// Patch converts editor input for f into a payload patch. Slider input is
// clamped to the field range; input that does not parse yields nil.
func (f Field) Patch(input string) canvas.Payload {
	if f.Control != ControlSlider {
		return canvas.Payload{f.Key: input}
	}
	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return nil
	}
	return canvas.Payload{f.Key: max(f.Min, min(f.Max, v))}
}

func fontNames(c *catalog.Catalog) []string {
	out := make([]string, 0, len(c.Fonts))
	for _, f := range c.Fonts {
		out = append(out, f.Name)
	}
	return out
}

func letterKeys(c *catalog.Catalog) []string {
	out := make([]string, 0, len(c.Letters))
	for _, l := range c.Letters {
		out = append(out, l.Key)
	}
	return out
}

func sizeKeys(list []catalog.FrameSize) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		out = append(out, s.Key)
	}
	return out
}
