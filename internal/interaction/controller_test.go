/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package interaction

import (
	"math/rand/v2"
	"testing"

	"scrapbook/internal/canvas"
)

func newTestController(opts ...Option) (*canvas.Store, *Controller) {
	s := canvas.NewStore()
	opts = append([]Option{WithRand(rand.New(rand.NewPCG(1, 2))), WithBounds(800, 600)}, opts...)
	return s, New(s, opts...)
}

func TestToolToggle(t *testing.T) {
	_, c := newTestController()
	c.SelectTool(canvas.KindLetter)
	if c.ActiveTool() != canvas.KindLetter {
		t.Fatalf("ActiveTool = %q, want letter", c.ActiveTool())
	}
	c.SelectTool(canvas.KindLetter)
	if c.ActiveTool() != NoTool {
		t.Fatalf("second select should clear tool, got %q", c.ActiveTool())
	}
	c.SelectTool(canvas.KindText)
	c.SelectTool(canvas.KindVinyl)
	if c.ActiveTool() != canvas.KindVinyl {
		t.Fatalf("switching tools: got %q", c.ActiveTool())
	}
	c.SelectTool(NoTool)
	if c.ActiveTool() != NoTool {
		t.Fatalf("NoTool should clear")
	}
	c.SelectTool(canvas.KindSticker)
	if c.ActiveTool() != NoTool {
		t.Fatalf("placed sticker is not a toolbar tool")
	}
}

func TestCanvasClickPlacesAndDisarms(t *testing.T) {
	s, c := newTestController()
	if _, ok := c.CanvasClick(10, 10); ok {
		t.Fatalf("click without tool must not place")
	}
	c.SelectTool(canvas.KindPolaroid)
	id, ok := c.CanvasClick(120, 80)
	if !ok {
		t.Fatalf("click with tool should place")
	}
	it, found := s.Item(id)
	if !found || it.Kind != canvas.KindPolaroid || it.Position != (canvas.Point{X: 120, Y: 80}) {
		t.Fatalf("placed item = %+v (found=%v)", it, found)
	}
	if c.ActiveTool() != NoTool {
		t.Fatalf("tool not cleared after placement")
	}
	if _, ok := c.CanvasClick(1, 1); ok || s.Len() != 1 {
		t.Fatalf("second click placed again")
	}
}

func TestDragKeepsGrabOffset(t *testing.T) {
	s, c := newTestController()
	id := s.AddItem(canvas.KindLetter, 10, 10)
	if !c.Grab(id, 15, 12) {
		t.Fatalf("grab should be handled")
	}
	d, ok := c.Drag()
	if !ok || d.GrabOffset != (canvas.Point{X: 5, Y: 2}) {
		t.Fatalf("drag session = %+v ok=%v", d, ok)
	}
	c.PointerMove(115, 112)
	it, _ := s.Item(id)
	if it.Position != (canvas.Point{X: 110, Y: 110}) {
		t.Fatalf("position = %+v, want (110,110)", it.Position)
	}
	c.Release()
	c.PointerMove(500, 500)
	it, _ = s.Item(id)
	if it.Position != (canvas.Point{X: 110, Y: 110}) {
		t.Fatalf("moved after release: %+v", it.Position)
	}
}

func TestDragDisplacementIndependentOfGrabPoint(t *testing.T) {
	for _, grab := range []canvas.Point{{X: 10, Y: 10}, {X: 40, Y: 90}, {X: 0, Y: 0}} {
		s, c := newTestController()
		id := s.AddItem(canvas.KindVinyl, 10, 10)
		c.Grab(id, grab.X, grab.Y)
		c.PointerMove(grab.X+30, grab.Y-4)
		it, _ := s.Item(id)
		if it.Position != (canvas.Point{X: 40, Y: 6}) {
			t.Fatalf("grab at %+v: position = %+v, want (40,6)", grab, it.Position)
		}
	}
}

func TestSecondGrabIgnoredWhileDragging(t *testing.T) {
	s, c := newTestController()
	a := s.AddItem(canvas.KindText, 0, 0)
	b := s.AddItem(canvas.KindText, 100, 100)
	c.Grab(a, 1, 1)
	if c.Grab(b, 101, 101) {
		t.Fatalf("second grab must be ignored")
	}
	if d, _ := c.Drag(); d.ItemID != a {
		t.Fatalf("drag item = %q, want %q", d.ItemID, a)
	}
}

func TestGrabUnknownItem(t *testing.T) {
	_, c := newTestController()
	if c.Grab("missing", 1, 1) {
		t.Fatalf("grab on unknown id should not be handled")
	}
	if _, ok := c.Drag(); ok {
		t.Fatalf("drag opened for unknown id")
	}
}

func TestLeaveCanvasClosesDrag(t *testing.T) {
	s, c := newTestController()
	id := s.AddItem(canvas.KindStickers, 0, 0)
	c.Grab(id, 0, 0)
	c.LeaveCanvas()
	if _, ok := c.Drag(); ok {
		t.Fatalf("leave should close drag")
	}
	c.LeaveCanvas() // no-op
	c.Release()     // no-op
}

func TestClickSuppressedDuringDrag(t *testing.T) {
	s, c := newTestController()
	id := s.AddItem(canvas.KindText, 0, 0)
	c.SelectTool(canvas.KindLetter)
	c.Grab(id, 0, 0)
	if _, ok := c.CanvasClick(5, 5); ok {
		t.Fatalf("click during drag must not place")
	}
	if c.ActiveTool() != canvas.KindLetter {
		t.Fatalf("tool should stay armed after suppressed click")
	}
}

func TestDeletedItemDuringDrag(t *testing.T) {
	s, c := newTestController()
	id := s.AddItem(canvas.KindText, 0, 0)
	c.Grab(id, 0, 0)
	s.RemoveItem(id)
	c.PointerMove(10, 10) // silently ignored by the store
	if s.Len() != 0 {
		t.Fatalf("move resurrected item")
	}
	c.Release()
}

func TestPlaceStickerWithinMargin(t *testing.T) {
	s, c := newTestController()
	for i := 0; i < 200; i++ {
		id := c.PlaceSticker("💖")
		it, _ := s.Item(id)
		p := it.Position
		if p.X < 50 || p.X >= 750 || p.Y < 50 || p.Y >= 550 {
			t.Fatalf("sticker %d out of inset bounds: %+v", i, p)
		}
		if it.Payload[canvas.KeyContent] != "💖" {
			t.Fatalf("sticker content = %v", it.Payload[canvas.KeyContent])
		}
	}
	if s.Len() != 200 {
		t.Fatalf("Len = %d, want 200", s.Len())
	}
}

func TestPlaceStickerTinyCanvasUsesMidpoint(t *testing.T) {
	s, c := newTestController(WithBounds(60, 300))
	it, _ := s.Item(c.PlaceSticker("⭐"))
	if it.Position.X != 30 {
		t.Fatalf("x = %v, want midpoint 30", it.Position.X)
	}
	if it.Position.Y < 50 || it.Position.Y >= 250 {
		t.Fatalf("y = %v out of range", it.Position.Y)
	}
}

func TestCursorsAndView(t *testing.T) {
	s, c := newTestController()
	id := s.AddItem(canvas.KindText, 0, 0)
	if c.CanvasCursor() != CursorDefault {
		t.Fatalf("idle canvas cursor = %q", c.CanvasCursor())
	}
	c.SelectTool(canvas.KindText)
	if c.CanvasCursor() != CursorCrosshair {
		t.Fatalf("armed canvas cursor = %q", c.CanvasCursor())
	}
	if c.ItemCursor(id) != CursorGrab {
		t.Fatalf("item cursor = %q", c.ItemCursor(id))
	}
	c.Grab(id, 0, 0)
	if c.ItemCursor(id) != CursorGrabbing {
		t.Fatalf("dragged item cursor = %q", c.ItemCursor(id))
	}
	v := c.View()
	if !v.Dragging() || v.Drag.ItemID != id || v.ActiveTool != canvas.KindText {
		t.Fatalf("view = %+v", v)
	}
	v.Drag.ItemID = "tampered"
	if d, _ := c.Drag(); d.ItemID != id {
		t.Fatalf("view leaked internal drag state")
	}
}
