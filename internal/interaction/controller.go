/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package interaction turns pointer events and the selected toolbar tool into
// item store operations. It owns the single active drag session.
package interaction

import (
	"math/rand/v2"

	"scrapbook/internal/canvas"
)

// ItemStore is the subset of canvas.Store the controller drives.
type ItemStore interface {
	AddItem(k canvas.Kind, x, y float64) string
	AddSticker(glyph string, x, y float64) string
	MoveItem(id string, x, y float64)
	Item(id string) (canvas.Item, bool)
}

// DefaultStickerMargin keeps scattered stickers fully on the canvas.
const DefaultStickerMargin = 50

// Tool is a kind the next canvas click will place, or NoTool.
type Tool = canvas.Kind

// NoTool means no placement is armed.
const NoTool Tool = ""

// Placeable reports whether k can be selected from the toolbar.
// Placed stickers only come out of the sticker picker.
func Placeable(k canvas.Kind) bool {
	return k.Valid() && k != canvas.KindSticker
}

// DragSession is an open drag: the item being moved and the pointer offset
// from the item's origin captured at grab time.
type DragSession struct {
	ItemID     string
	GrabOffset canvas.Point
}

// Cursor names used by renderers.
const (
	CursorDefault   = "default"
	CursorCrosshair = "crosshair"
	CursorGrab      = "grab"
	CursorGrabbing  = "grabbing"
)

// View is the read-only interaction state a renderer needs for cursor styling.
type View struct {
	ActiveTool Tool
	Drag       *DragSession
}

// Dragging reports whether a drag session is open.
func (v View) Dragging() bool { return v.Drag != nil }

// Controller is the placement/drag state machine. Like the store it is
// single-threaded: call it only from the UI event goroutine.
type Controller struct {
	store  ItemStore
	tool   Tool
	drag   *DragSession
	width  float64
	height float64
	margin float64
	rng    *rand.Rand
}

// Option configures a Controller.
type Option func(*Controller)

// WithRand sets the random source used for sticker scatter.
func WithRand(r *rand.Rand) Option {
	return func(c *Controller) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithStickerMargin overrides DefaultStickerMargin. Negative values are ignored.
func WithStickerMargin(m float64) Option {
	return func(c *Controller) {
		if m >= 0 {
			c.margin = m
		}
	}
}

// WithBounds sets the initial canvas size.
func WithBounds(w, h float64) Option {
	return func(c *Controller) { c.SetBounds(w, h) }
}

// New returns a controller driving store.
func New(store ItemStore, opts ...Option) *Controller {
	c := &Controller{
		store:  store,
		margin: DefaultStickerMargin,
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SetBounds records the visible canvas size. Renderers call it on resize.
func (c *Controller) SetBounds(w, h float64) {
	c.width = max(w, 0)
	c.height = max(h, 0)
}

// Bounds returns the last reported canvas size.
func (c *Controller) Bounds() (w, h float64) { return c.width, c.height }

// SelectTool arms a tool. Selecting the armed tool again disarms it, as does
// NoTool. Non-placeable kinds disarm as well.
func (c *Controller) SelectTool(k Tool) {
	if k == NoTool || k == c.tool || !Placeable(k) {
		c.tool = NoTool
		return
	}
	c.tool = k
}

// ActiveTool returns the armed tool or NoTool.
func (c *Controller) ActiveTool() Tool { return c.tool }

// CanvasClick places the armed tool at (x, y) and disarms it. It does nothing
// while no tool is armed or a drag is open. The returned bool reports whether
// an item was placed.
func (c *Controller) CanvasClick(x, y float64) (string, bool) {
	if c.tool == NoTool || c.drag != nil {
		return "", false
	}
	id := c.store.AddItem(c.tool, x, y)
	c.tool = NoTool
	return id, true
}

// Grab opens a drag session on the item under the pointer. A true result
// means the pointer-down was consumed by the item and the renderer must not
// let the same gesture reach the canvas background as a click.
//
// Grabbing an unknown item, or grabbing while another drag is open, is
// ignored and returns false.
func (c *Controller) Grab(id string, px, py float64) bool {
	if c.drag != nil {
		return false
	}
	it, ok := c.store.Item(id)
	if !ok {
		return false
	}
	c.drag = &DragSession{
		ItemID:     id,
		GrabOffset: canvas.Point{X: px, Y: py}.Sub(it.Position),
	}
	return true
}

// PointerMove moves the dragged item so that it keeps its grab offset to the
// pointer. Without an open drag it does nothing.
func (c *Controller) PointerMove(px, py float64) {
	if c.drag == nil {
		return
	}
	c.store.MoveItem(c.drag.ItemID, px-c.drag.GrabOffset.X, py-c.drag.GrabOffset.Y)
}

// Release closes the drag session if one is open.
func (c *Controller) Release() { c.drag = nil }

// LeaveCanvas behaves exactly like Release so a drag cannot get stuck when
// the pointer is let go outside the canvas.
func (c *Controller) LeaveCanvas() { c.Release() }

// Drag returns a copy of the open drag session.
func (c *Controller) Drag() (DragSession, bool) {
	if c.drag == nil {
		return DragSession{}, false
	}
	return *c.drag, true
}

// View returns the current interaction state.
func (c *Controller) View() View {
	v := View{ActiveTool: c.tool}
	if c.drag != nil {
		d := *c.drag
		v.Drag = &d
	}
	return v
}

// CanvasCursor is the cursor shown over empty canvas.
func (c *Controller) CanvasCursor() string {
	if c.tool != NoTool {
		return CursorCrosshair
	}
	return CursorDefault
}

// ItemCursor is the cursor shown over the item with the given id.
func (c *Controller) ItemCursor(id string) string {
	if c.drag != nil && c.drag.ItemID == id {
		return CursorGrabbing
	}
	return CursorGrab
}

// PlaceSticker adds a sticker at a random position inside the canvas bounds,
// inset by the sticker margin. Stickers may overlap; no layout is attempted.
func (c *Controller) PlaceSticker(glyph string) string {
	x := c.scatter(c.width)
	y := c.scatter(c.height)
	return c.store.AddSticker(glyph, x, y)
}

// scatter picks a uniform coordinate in [margin, extent-margin). When the
// extent is too small to honor the margin on both sides, the midpoint is used.
func (c *Controller) scatter(extent float64) float64 {
	span := extent - 2*c.margin
	if span <= 0 {
		return extent / 2
	}
	return c.margin + c.rng.Float64()*span
}
