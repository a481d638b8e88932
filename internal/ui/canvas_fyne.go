//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"scrapbook/internal/interaction"
	"scrapbook/internal/session"
	"scrapbook/internal/vector"
)

// ScrapCanvas draws a session frame and feeds pointer input back into it.
//
// Pointer mapping: MouseDown grabs the widget under the pointer, moves
// (hover or drag) follow it, MouseUp and MouseOut release. A press that did
// not turn into a drag arrives afterwards as Tapped, which activates widget
// controls or places the armed tool on the background.
type ScrapCanvas struct {
	widget.BaseWidget
	sess  *session.Session
	hover string // item under the pointer, "" over background

	// OnSelect is called with the item a tap landed on, or "" when a tap
	// placed something or hit the background.
	OnSelect func(id string)
	// OnChange is called after any input that may have changed the items or the tool.
	OnChange func()
}

var (
	_ fyne.Tappable      = (*ScrapCanvas)(nil)
	_ fyne.Draggable     = (*ScrapCanvas)(nil)
	_ desktop.Mouseable  = (*ScrapCanvas)(nil)
	_ desktop.Hoverable  = (*ScrapCanvas)(nil)
	_ desktop.Cursorable = (*ScrapCanvas)(nil)
)

// NewScrapCanvas creates the canvas widget for s.
func NewScrapCanvas(s *session.Session) *ScrapCanvas {
	c := &ScrapCanvas{sess: s}
	c.ExtendBaseWidget(c)
	return c
}

// Resize keeps the session bounds in sync with the widget.
func (c *ScrapCanvas) Resize(size fyne.Size) {
	c.BaseWidget.Resize(size)
	c.sess.Resize(float64(size.Width), float64(size.Height))
}

func pt(p fyne.Position) (float64, float64) { return float64(p.X), float64(p.Y) }

func (c *ScrapCanvas) changed() {
	c.Refresh()
	if c.OnChange != nil {
		c.OnChange()
	}
}

// MouseDown grabs the top-most widget under the pointer.
func (c *ScrapCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	if _, ok := c.sess.Press(pt(e.Position)); ok {
		c.Refresh()
	}
}

// MouseUp closes the drag.
func (c *ScrapCanvas) MouseUp(_ *desktop.MouseEvent) {
	c.sess.Release()
	c.Refresh()
}

// Tapped is a click without drag.
func (c *ScrapCanvas) Tapped(e *fyne.PointEvent) {
	out, id := c.sess.Tap(pt(e.Position))
	if c.OnSelect != nil {
		switch out {
		case session.TapItem, session.TapHotspot, session.TapPlaced:
			c.OnSelect(id)
		default:
			c.OnSelect("")
		}
	}
	c.changed()
}

// Dragged follows the pointer while a button is held.
func (c *ScrapCanvas) Dragged(e *fyne.DragEvent) {
	c.sess.Move(pt(e.Position))
	c.Refresh()
}

// DragEnd closes the drag.
func (c *ScrapCanvas) DragEnd() {
	c.sess.Release()
	c.changed()
}

func (c *ScrapCanvas) MouseIn(e *desktop.MouseEvent) { c.MouseMoved(e) }

// MouseMoved tracks the hovered item for the cursor and moves an open drag.
func (c *ScrapCanvas) MouseMoved(e *desktop.MouseEvent) {
	x, y := pt(e.Position)
	c.hover, _ = c.sess.HitTest(x, y)
	if c.sess.View().Dragging() {
		c.sess.Move(x, y)
		c.Refresh()
	}
}

// MouseOut behaves like a release so a drag cannot get stuck.
func (c *ScrapCanvas) MouseOut() {
	c.hover = ""
	c.sess.Leave()
	c.Refresh()
}

// Cursor maps the session cursor onto the closest desktop cursor.
func (c *ScrapCanvas) Cursor() desktop.Cursor {
	name := c.sess.Cursor()
	if c.hover != "" {
		name = c.sess.ItemCursor(c.hover)
	}
	switch name {
	case interaction.CursorCrosshair:
		return desktop.CrosshairCursor
	case interaction.CursorGrab, interaction.CursorGrabbing:
		return desktop.PointerCursor
	}
	return desktop.DefaultCursor
}

func (c *ScrapCanvas) MinSize() fyne.Size { return fyne.NewSize(640, 480) }

// CreateRenderer builds the backdrop; widget objects are rebuilt per frame.
func (c *ScrapCanvas) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewLinearGradient(color.RGBA{R: 0xff, G: 0xfb, B: 0xeb, A: 255}, color.RGBA{R: 0xff, G: 0xf7, B: 0xed, A: 255}, 45)
	hintBg := canvas.NewRectangle(color.RGBA{R: 0x1f, G: 0x29, B: 0x37, A: 220})
	hintBg.CornerRadius = 12
	hint := canvas.NewText("", color.White)
	hint.TextSize = 14
	hint.Alignment = fyne.TextAlignCenter
	r := &scrapRenderer{c: c, bg: bg, hint: hint, hintBg: hintBg}
	r.Refresh()
	return r
}

type scrapRenderer struct {
	c       *ScrapCanvas
	bg      *canvas.LinearGradient
	hint    *canvas.Text
	hintBg  *canvas.Rectangle
	ring    *canvas.Rectangle
	objects []fyne.CanvasObject
}

func (r *scrapRenderer) Destroy()                     {}
func (r *scrapRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *scrapRenderer) MinSize() fyne.Size           { return r.c.MinSize() }

func (r *scrapRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	r.bg.Move(fyne.NewPos(0, 0))
	hs := fyne.MeasureText(r.hint.Text, r.hint.TextSize, r.hint.TextStyle)
	bw, bh := hs.Width+32, hs.Height+12
	r.hintBg.Resize(fyne.NewSize(bw, bh))
	r.hintBg.Move(fyne.NewPos((size.Width-bw)/2, 16))
	r.hint.Resize(fyne.NewSize(bw, bh))
	r.hint.Move(fyne.NewPos((size.Width-bw)/2, 16))
}

// Refresh rebuilds the drawable objects from a fresh frame.
func (r *scrapRenderer) Refresh() {
	f := r.c.sess.Frame()
	objs := []fyne.CanvasObject{r.bg}
	for _, w := range f.Scene.Widgets {
		vector.Walk(w.Root, vector.Identity, func(n vector.Node, xf vector.Affine2D) {
			if o := objectFor(n, xf); o != nil {
				objs = append(objs, o)
			}
		})
	}
	if f.View.Dragging() {
		if w, ok := f.Scene.Widget(f.View.Drag.ItemID); ok {
			if r.ring == nil {
				r.ring = canvas.NewRectangle(color.Transparent)
				r.ring.StrokeColor = color.RGBA{R: 0xf4, G: 0x3f, B: 0x5e, A: 255}
				r.ring.StrokeWidth = 2
				r.ring.CornerRadius = 4
			}
			b := w.Bounds.Inset(-4, -4)
			r.ring.Move(fyne.NewPos(float32(b.X), float32(b.Y)))
			r.ring.Resize(fyne.NewSize(float32(b.W), float32(b.H)))
			objs = append(objs, r.ring)
		}
	}
	r.hint.Text = f.Hint
	if f.Hint != "" {
		objs = append(objs, r.hintBg, r.hint)
	}
	r.objects = objs
	r.Layout(r.c.Size())
	canvas.Refresh(r.c)
}

func toColor(c vector.Color) color.Color { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

// objectFor converts a scene leaf into a positioned Fyne object. Fyne has no
// rotated primitives, so the transformed bounding box is used.
func objectFor(n vector.Node, xf vector.Affine2D) fyne.CanvasObject {
	r := xf.ApplyRect(vector.LocalRect(n))
	pos, size := fyne.NewPos(float32(r.X), float32(r.Y)), fyne.NewSize(float32(r.W), float32(r.H))
	fill := color.Color(color.Transparent)
	if f := n.Fill(); f.Enabled {
		fill = toColor(f.Color)
	}
	var o fyne.CanvasObject
	switch t := n.(type) {
	case *vector.TextNode:
		txt := canvas.NewText(t.Text, fill)
		txt.TextSize = float32(t.Size)
		o = txt
	case *vector.EllipseNode:
		c := canvas.NewCircle(fill)
		stroke(n, &c.StrokeColor, &c.StrokeWidth)
		o = c
	case *vector.RoundedRectNode:
		rc := canvas.NewRectangle(fill)
		rc.CornerRadius = float32(t.Radius())
		stroke(n, &rc.StrokeColor, &rc.StrokeWidth)
		o = rc
	case *vector.RectNode:
		rc := canvas.NewRectangle(fill)
		stroke(n, &rc.StrokeColor, &rc.StrokeWidth)
		o = rc
	default:
		return nil
	}
	o.Move(pos)
	o.Resize(size)
	return o
}

func stroke(n vector.Node, c *color.Color, w *float32) {
	if s := n.Stroke(); s.Enabled && s.Width > 0 {
		*c = toColor(s.Color)
		*w = float32(s.Width)
	}
}
