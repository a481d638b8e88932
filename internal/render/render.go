/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package render turns a store snapshot into a backend-neutral scene of
// vector nodes. Every exporter and the desktop canvas draw from the same
// scene, so hit-testing and layout agree everywhere.
package render

import (
	"scrapbook/internal/canvas"
	"scrapbook/internal/catalog"
	"scrapbook/internal/vector"
)

// Action is what a hotspot does when tapped.
type Action int

const (
	ActionNone        Action = iota
	ActionPickSticker        // Value is the glyph to place
	ActionStickerTab         // Value is the sticker set key
	ActionTogglePlay
)

// Hotspot is a tappable region inside a widget, in canvas coordinates.
type Hotspot struct {
	Rect   vector.Rect
	Action Action
	Value  string
}

// Widget is the visual of one item. Root is translated to the item
// position; Bounds is the draggable area in canvas coordinates.
type Widget struct {
	ItemID   string
	Kind     canvas.Kind
	Bounds   vector.Rect
	Root     *vector.Group
	Hotspots []Hotspot
}

// Scene holds one widget per item in snapshot order (z-order ascending).
type Scene struct {
	Widgets []Widget
}

// Build lays out every item. A nil catalog means the built-in one.
func Build(items []canvas.Item, cat *catalog.Catalog) Scene {
	if cat == nil {
		cat = catalog.Default()
	}
	sc := Scene{Widgets: make([]Widget, 0, len(items))}
	for _, it := range items {
		sc.Widgets = append(sc.Widgets, buildWidget(it, cat))
	}
	return sc
}

func buildWidget(it canvas.Item, cat *catalog.Catalog) Widget {
	var b *box
	switch it.Kind {
	case canvas.KindPolaroid:
		b = polaroid(it.Payload, cat)
	case canvas.KindPhotobooth:
		b = photobooth(it.Payload, cat)
	case canvas.KindVinyl:
		b = vinyl(it.Payload, cat)
	case canvas.KindLetter:
		b = letter(it.Payload, cat)
	case canvas.KindStickers:
		b = stickerPicker(it.Payload, cat)
	case canvas.KindSticker:
		b = sticker(it.Payload)
	case canvas.KindText:
		b = textLabel(it.Payload, cat)
	default:
		b = placeholder(it.Kind)
	}
	x, y := it.Position.X, it.Position.Y
	root := vector.NewGroup(b.nodes...)
	root.SetTransform(vector.Translate(x, y))
	w := Widget{
		ItemID: it.ID,
		Kind:   it.Kind,
		Bounds: vector.R(x, y, b.w, b.h),
		Root:   root,
	}
	for _, h := range b.hot {
		h.Rect = h.Rect.Offset(x, y)
		w.Hotspots = append(w.Hotspots, h)
	}
	return w
}

// HitTest returns the id of the top-most widget containing p.
func (s Scene) HitTest(p vector.Pt) (string, bool) {
	if w, ok := s.widgetAt(p); ok {
		return w.ItemID, true
	}
	return "", false
}

// HotspotAt returns the hotspot under p of the top-most widget containing p.
// A hotspot hidden under another widget is not reachable.
func (s Scene) HotspotAt(p vector.Pt) (Hotspot, string, bool) {
	w, ok := s.widgetAt(p)
	if !ok {
		return Hotspot{}, "", false
	}
	for _, h := range w.Hotspots {
		if h.Rect.Contains(p) {
			return h, w.ItemID, true
		}
	}
	return Hotspot{}, w.ItemID, false
}

func (s Scene) widgetAt(p vector.Pt) (*Widget, bool) {
	for i := len(s.Widgets) - 1; i >= 0; i-- {
		if s.Widgets[i].Bounds.Contains(p) {
			return &s.Widgets[i], true
		}
	}
	return nil, false
}

// Widget returns the widget of item id.
func (s Scene) Widget(id string) (Widget, bool) {
	for _, w := range s.Widgets {
		if w.ItemID == id {
			return w, true
		}
	}
	return Widget{}, false
}

// Extent is the union of all widget bounds.
func (s Scene) Extent() vector.Rect {
	var r vector.Rect
	for _, w := range s.Widgets {
		r = r.Union(w.Bounds)
	}
	return r
}
