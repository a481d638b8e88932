/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package session

import (
	"bytes"
	"log/slog"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"scrapbook/internal/canvas"
	"scrapbook/internal/interaction"
)

func newTestSession(t *testing.T, opts ...Option) *Session {
	t.Helper()
	clock := time.UnixMilli(1700000000000)
	base := []Option{
		WithBounds(800, 600),
		WithClock(func() time.Time { return clock }),
		WithRand(rand.New(rand.NewPCG(7, 11))),
		WithLogger(slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))),
	}
	return New(nil, append(base, opts...)...)
}

func TestFrameHintFollowsTool(t *testing.T) {
	s := newTestSession(t)
	s.SelectTool(canvas.KindText)
	f := s.Frame()
	if f.Hint != "Click anywhere to add text" || f.Cursor != interaction.CursorCrosshair {
		t.Fatalf("frame = hint %q cursor %q", f.Hint, f.Cursor)
	}
	id, ok := s.Click(100, 100)
	if !ok || !strings.HasPrefix(id, "text-") {
		t.Fatalf("Click = %q, %v", id, ok)
	}
	f = s.Frame()
	if f.Hint != "" || len(f.Items) != 1 || len(f.Scene.Widgets) != 1 {
		t.Fatalf("frame after placement = %+v", f)
	}
}

func TestPressMoveReleaseDragsTopMostWidget(t *testing.T) {
	s := newTestSession(t)
	s.SelectTool(canvas.KindText)
	id, _ := s.Click(100, 100)

	got, ok := s.Press(110, 105)
	if !ok || got != id {
		t.Fatalf("Press = %q, %v; want %q", got, ok, id)
	}
	if s.ItemCursor(id) != interaction.CursorGrabbing {
		t.Fatalf("cursor while dragging = %q", s.ItemCursor(id))
	}
	s.Move(210, 305)
	s.Release()
	s.Move(500, 500)
	it, _ := s.Item(id)
	if it.Position != (canvas.Point{X: 200, Y: 300}) {
		t.Fatalf("position = %+v, want {200 300}", it.Position)
	}
	if _, ok := s.Press(5, 5); ok {
		t.Fatalf("press on background grabbed something")
	}
}

func TestTapOnWidgetDoesNotPlace(t *testing.T) {
	s := newTestSession(t)
	s.SelectTool(canvas.KindLetter)
	letter, _ := s.Click(0, 0)
	s.SelectTool(canvas.KindVinyl)

	out, id := s.Tap(100, 200)
	if out != TapItem || id != letter {
		t.Fatalf("Tap on letter = %v %q", out, id)
	}
	if len(s.Items()) != 1 || s.Frame().View.ActiveTool != canvas.KindVinyl {
		t.Fatalf("tap on widget placed an item or disarmed the tool")
	}
	out, id = s.Tap(600, 400)
	if out != TapPlaced || !strings.HasPrefix(id, "vinyl-") {
		t.Fatalf("Tap on background = %v %q", out, id)
	}
}

func TestTapPickerGlyphScattersSticker(t *testing.T) {
	s := newTestSession(t)
	s.SelectTool(canvas.KindStickers)
	picker, _ := s.Click(0, 0)

	out, id := s.Tap(44, 120)
	if out != TapSticker {
		t.Fatalf("Tap on glyph = %v %q", out, id)
	}
	it, ok := s.Item(id)
	if !ok || it.Kind != canvas.KindSticker || it.Payload.String(canvas.KeyContent, "") != "❤️" {
		t.Fatalf("sticker = %+v", it)
	}
	if it.Position.X < 50 || it.Position.X >= 750 || it.Position.Y < 50 || it.Position.Y >= 550 {
		t.Fatalf("sticker outside margin: %+v", it.Position)
	}
	s.Delete(id)

	// switch to the third tab and pick again
	sc := s.Frame().Scene
	w, _ := sc.Widget(picker)
	var tab string
	for _, h := range w.Hotspots {
		if h.Value == "misc" {
			out, _ = s.Tap(h.Rect.Center().X, h.Rect.Center().Y)
			tab = h.Value
		}
	}
	if tab == "" || out != TapHotspot {
		t.Fatalf("misc tab not found or not activated: %v", out)
	}
	if p, _ := s.Item(picker); p.Payload.String(canvas.KeySet, "") != "misc" {
		t.Fatalf("picker payload = %+v", p.Payload)
	}
	_, id = s.Tap(44, 120)
	if it, _ := s.Item(id); it.Payload.String(canvas.KeyContent, "") != "⭐" {
		t.Fatalf("misc glyph = %+v", it.Payload)
	}
}

func TestTapTogglesVinylPlayback(t *testing.T) {
	s := newTestSession(t)
	s.SelectTool(canvas.KindVinyl)
	id, _ := s.Click(400, 100)
	for _, want := range []bool{true, false} {
		if out, _ := s.Tap(480, 264); out != TapHotspot {
			t.Fatalf("Tap on play = %v", out)
		}
		it, _ := s.Item(id)
		if it.Payload.Bool(canvas.KeyPlaying, !want) != want {
			t.Fatalf("playing = %v, want %v", it.Payload[canvas.KeyPlaying], want)
		}
	}
}

func TestEditDeleteAndIndependence(t *testing.T) {
	a := newTestSession(t)
	b := newTestSession(t)
	a.SelectTool(canvas.KindText)
	id, _ := a.Click(1, 1)
	a.Edit(id, canvas.Payload{canvas.KeyText: "Happy anniversary", canvas.KeySize: 24})
	it, _ := a.Item(id)
	if it.Payload.String(canvas.KeyText, "") != "Happy anniversary" || it.Payload.String(canvas.KeyFont, "") != "Arial" {
		t.Fatalf("edit result = %+v", it.Payload)
	}
	if len(b.Items()) != 0 || b.Frame().View.ActiveTool != interaction.NoTool {
		t.Fatalf("sessions share state")
	}
	a.Delete(id)
	a.Delete(id)
	if len(a.Items()) != 0 {
		t.Fatalf("delete left %d items", len(a.Items()))
	}
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := newTestSession(t, WithLogger(l))
	s.SelectTool(canvas.KindPolaroid)
	s.Click(10, 10)
	out := buf.String()
	if !strings.Contains(out, `"msg":"item placed"`) || !strings.Contains(out, `"item":"polaroid-1700000000000"`) {
		t.Fatalf("log output = %s", out)
	}
}
