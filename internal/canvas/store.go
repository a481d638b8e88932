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

import (
	"strconv"
	"time"
)

// Store owns the ordered collection of placed items. Insertion order is the
// render order: later items draw on top.
//
// A Store is single-writer: it is mutated synchronously from the UI event
// thread and is not safe for concurrent use. Operations on unknown ids are
// silent no-ops because deletions may race harmlessly with in-flight events.
type Store struct {
	items []Item
	index map[string]int // id -> position in items

	now       func() time.Time
	seq       int
	issued    map[string]struct{} // every id ever handed out
	listeners []listener
	nextLis   int
}

type listener struct {
	id int
	fn func([]Item)
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the wall clock used for id generation.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{index: make(map[string]int), issued: make(map[string]struct{}), now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// AddItem appends a new item of kind k at (x, y) with the kind's default
// payload and returns its id.
func (s *Store) AddItem(k Kind, x, y float64) string {
	return s.add(k, x, y, DefaultPayload(k))
}

// AddSticker appends a placed sticker showing glyph. Identical glyphs are
// never deduplicated.
func (s *Store) AddSticker(glyph string, x, y float64) string {
	return s.add(KindSticker, x, y, Payload{KeyContent: glyph})
}

func (s *Store) add(k Kind, x, y float64, p Payload) string {
	id := s.newID(k)
	s.index[id] = len(s.items)
	s.items = append(s.items, Item{ID: id, Kind: k, Position: Point{X: x, Y: y}, Payload: p})
	s.notify()
	return id
}

// newID derives an id from the kind and the creation time in milliseconds.
// Ids minted within the same millisecond get a counter suffix. An id is never
// handed out twice, even after its item was removed.
func (s *Store) newID(k Kind) string {
	base := string(k) + "-" + strconv.FormatInt(s.now().UnixMilli(), 10)
	id := base
	for {
		if _, taken := s.issued[id]; !taken {
			s.issued[id] = struct{}{}
			return id
		}
		s.seq++
		id = base + "-" + strconv.Itoa(s.seq)
	}
}

// UpdatePayload shallow-merges partial into the item's payload: keys present
// in partial overwrite, all other keys are left untouched.
func (s *Store) UpdatePayload(id string, partial Payload) {
	i, ok := s.index[id]
	if !ok || len(partial) == 0 {
		return
	}
	it := &s.items[i]
	if it.Payload == nil {
		it.Payload = Payload{}
	}
	for k, v := range partial {
		it.Payload[k] = cloneValue(v)
	}
	s.notify()
}

// MoveItem sets the item's position unconditionally.
func (s *Store) MoveItem(id string, x, y float64) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.items[i].Position = Point{X: x, Y: y}
	s.notify()
}

// RemoveItem deletes the item if present. The relative order of the
// remaining items is preserved.
func (s *Store) RemoveItem(id string) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.items); j++ {
		s.index[s.items[j].ID] = j
	}
	s.notify()
}

// Item returns a copy of the item with the given id.
func (s *Store) Item(id string) (Item, bool) {
	i, ok := s.index[id]
	if !ok {
		return Item{}, false
	}
	return s.items[i].clone(), true
}

// Len returns the number of live items.
func (s *Store) Len() int { return len(s.items) }

// Snapshot returns the items in insertion order. The result is a copy;
// changing it does not affect the store.
func (s *Store) Snapshot() []Item {
	out := make([]Item, len(s.items))
	for i, it := range s.items {
		out[i] = it.clone()
	}
	return out
}

// Subscribe registers fn to receive a fresh snapshot after every effective
// mutation. Calls happen synchronously on the mutating goroutine. The returned
// func removes the subscription.
func (s *Store) Subscribe(fn func([]Item)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	id := s.nextLis
	s.nextLis++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify() {
	if len(s.listeners) == 0 {
		return
	}
	snap := s.Snapshot()
	for _, l := range s.listeners {
		l.fn(snap)
	}
}
