/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package session bundles one item store, its interaction controller and the
// catalog in use into an explicit canvas context. Renderers, the replay
// driver and editors talk to a Session only; sessions share nothing.
package session

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"scrapbook/internal/canvas"
	"scrapbook/internal/catalog"
	"scrapbook/internal/interaction"
	applog "scrapbook/internal/log"
	"scrapbook/internal/render"
	"scrapbook/internal/vector"
)

// Session is a single scrapbook canvas. Like the store it wraps, it must be
// driven from one goroutine.
type Session struct {
	store *canvas.Store
	ctl   *interaction.Controller
	cat   *catalog.Catalog
	log   *slog.Logger
}

type settings struct {
	storeOpts []canvas.Option
	ctlOpts   []interaction.Option
	log       *slog.Logger
}

// Option configures a Session.
type Option func(*settings)

// WithBounds sets the initial canvas size.
func WithBounds(w, h float64) Option {
	return func(s *settings) { s.ctlOpts = append(s.ctlOpts, interaction.WithBounds(w, h)) }
}

// WithStickerMargin overrides the sticker scatter margin.
func WithStickerMargin(m float64) Option {
	return func(s *settings) { s.ctlOpts = append(s.ctlOpts, interaction.WithStickerMargin(m)) }
}

// WithClock sets the clock used for item ids.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.storeOpts = append(s.storeOpts, canvas.WithClock(now)) }
}

// WithRand sets the random source for sticker placement.
func WithRand(r *rand.Rand) Option {
	return func(s *settings) { s.ctlOpts = append(s.ctlOpts, interaction.WithRand(r)) }
}

// WithLogger replaces the component logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.log = l }
}

// New creates an empty canvas. A nil catalog means the built-in one.
func New(cat *catalog.Catalog, opts ...Option) *Session {
	var st settings
	for _, o := range opts {
		o(&st)
	}
	if cat == nil {
		cat = catalog.Default()
	}
	if st.log == nil {
		st.log = applog.WithComponent("session")
	}
	store := canvas.NewStore(st.storeOpts...)
	return &Session{
		store: store,
		ctl:   interaction.New(store, st.ctlOpts...),
		cat:   cat,
		log:   st.log,
	}
}

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	Items  []canvas.Item
	Scene  render.Scene
	View   interaction.View
	Cursor string
	Hint   string
}

// Frame snapshots the canvas.
func (s *Session) Frame() Frame {
	items := s.store.Snapshot()
	return Frame{
		Items:  items,
		Scene:  render.Build(items, s.cat),
		View:   s.ctl.View(),
		Cursor: s.ctl.CanvasCursor(),
		Hint:   Hint(s.ctl.ActiveTool()),
	}
}

// Hint is the banner shown while a tool is armed.
func Hint(t interaction.Tool) string {
	if t == interaction.NoTool {
		return ""
	}
	return "Click anywhere to add " + string(t)
}

// Catalog returns the catalog the session renders with.
func (s *Session) Catalog() *catalog.Catalog { return s.cat }

// Items returns a snapshot of the placed items.
func (s *Session) Items() []canvas.Item { return s.store.Snapshot() }

// Item looks up a placed item.
func (s *Session) Item(id string) (canvas.Item, bool) { return s.store.Item(id) }

// Subscribe registers fn for snapshot changes; see canvas.Store.Subscribe.
func (s *Session) Subscribe(fn func([]canvas.Item)) (cancel func()) { return s.store.Subscribe(fn) }

// ItemCursor is the pointer cursor over item id.
func (s *Session) ItemCursor(id string) string { return s.ctl.ItemCursor(id) }

// Bounds is the current canvas size.
func (s *Session) Bounds() (w, h float64) { return s.ctl.Bounds() }

// View returns the interaction state.
func (s *Session) View() interaction.View { return s.ctl.View() }

// Cursor is the pointer cursor over empty canvas.
func (s *Session) Cursor() string { return s.ctl.CanvasCursor() }

// HitTest returns the top-most item whose widget covers (x, y).
func (s *Session) HitTest(x, y float64) (string, bool) {
	return render.Build(s.store.Snapshot(), s.cat).HitTest(vector.Pt{X: x, Y: y})
}

// Resize reports a new canvas size.
func (s *Session) Resize(w, h float64) {
	s.ctl.SetBounds(w, h)
	s.log.Debug("canvas resized", slog.Float64("w", w), slog.Float64("h", h))
}

// SelectTool toggles the toolbar tool.
func (s *Session) SelectTool(t interaction.Tool) {
	s.ctl.SelectTool(t)
	s.log.Debug("tool selected", slog.String("requested", string(t)), slog.String("active", string(s.ctl.ActiveTool())))
}

// Click is a click on the canvas background.
func (s *Session) Click(x, y float64) (string, bool) {
	id, ok := s.ctl.CanvasClick(x, y)
	if ok {
		s.log.Debug("item placed", slog.String("item", id), slog.Float64("x", x), slog.Float64("y", y))
	}
	return id, ok
}

// Grab starts dragging item id from pointer (x, y).
func (s *Session) Grab(id string, x, y float64) bool {
	ok := s.ctl.Grab(id, x, y)
	s.log.Debug("grab", slog.String("item", id), slog.Bool("handled", ok))
	return ok
}

// Press is a pointer-down at (x, y): the top-most widget under the pointer
// is grabbed. It reports the grabbed item.
func (s *Session) Press(x, y float64) (string, bool) {
	id, hit := s.HitTest(x, y)
	if !hit {
		return "", false
	}
	if !s.Grab(id, x, y) {
		return "", false
	}
	return id, true
}

// Move is a pointer move.
func (s *Session) Move(x, y float64) {
	if d, ok := s.ctl.Drag(); ok {
		s.ctl.PointerMove(x, y)
		s.log.Debug("drag", slog.String("item", d.ItemID), slog.Float64("x", x), slog.Float64("y", y))
	}
}

// Release is a pointer-up.
func (s *Session) Release() {
	if d, ok := s.ctl.Drag(); ok {
		s.log.Debug("drag closed", slog.String("item", d.ItemID))
	}
	s.ctl.Release()
}

// Leave is the pointer leaving the canvas.
func (s *Session) Leave() { s.Release() }

// Edit shallow-merges partial into item id's payload.
func (s *Session) Edit(id string, partial canvas.Payload) {
	s.store.UpdatePayload(id, partial)
	s.log.Debug("payload edited", slog.String("item", id), slog.Int("keys", len(partial)))
}

// Delete removes item id.
func (s *Session) Delete(id string) {
	s.store.RemoveItem(id)
	s.log.Debug("item deleted", slog.String("item", id))
}

// PickSticker places glyph at a random spot of the canvas.
func (s *Session) PickSticker(glyph string) string {
	id := s.ctl.PlaceSticker(glyph)
	s.log.Debug("sticker placed", slog.String("item", id), slog.String("glyph", glyph))
	return id
}

// TapOutcome says what a Tap did.
type TapOutcome int

const (
	TapNone    TapOutcome = iota // nothing armed, background tapped
	TapPlaced                    // the armed tool placed an item
	TapSticker                   // a picker glyph placed a sticker
	TapHotspot                   // a widget control changed its item
	TapItem                      // the tap landed on a widget body
)

// Tap is a click that was not turned into a drag. Widget controls win over
// the widget body, which wins over the background.
func (s *Session) Tap(x, y float64) (TapOutcome, string) {
	sc := render.Build(s.store.Snapshot(), s.cat)
	h, owner, ok := sc.HotspotAt(vector.Pt{X: x, Y: y})
	switch {
	case ok:
		return s.activate(owner, h)
	case owner != "":
		return TapItem, owner
	}
	if id, placed := s.Click(x, y); placed {
		return TapPlaced, id
	}
	return TapNone, ""
}

func (s *Session) activate(owner string, h render.Hotspot) (TapOutcome, string) {
	switch h.Action {
	case render.ActionPickSticker:
		return TapSticker, s.PickSticker(h.Value)
	case render.ActionStickerTab:
		s.Edit(owner, canvas.Payload{canvas.KeySet: h.Value})
	case render.ActionTogglePlay:
		it, _ := s.store.Item(owner)
		s.Edit(owner, canvas.Payload{canvas.KeyPlaying: !it.Payload.Bool(canvas.KeyPlaying, false)})
	default:
		return TapItem, owner
	}
	return TapHotspot, owner
}
