/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package replay

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"scrapbook/internal/interaction"
	applog "scrapbook/internal/log"
	"scrapbook/internal/session"
)

// Epoch is the first id timestamp of a replayed session.
var Epoch = time.UnixMilli(1700000000000)

// SessionOptions returns options that make a session reproducible for sc:
// its canvas size, a random source seeded from sc.Seed and a clock that
// starts at Epoch and advances one millisecond per reading.
func (sc *Script) SessionOptions() []session.Option {
	now := Epoch
	opts := []session.Option{
		session.WithRand(rand.New(rand.NewPCG(sc.Seed, sc.Seed^0x9e3779b97f4a7c15))),
		session.WithClock(func() time.Time {
			t := now
			now = now.Add(time.Millisecond)
			return t
		}),
	}
	if sc.Canvas.Width > 0 && sc.Canvas.Height > 0 {
		opts = append(opts, session.WithBounds(sc.Canvas.Width, sc.Canvas.Height))
	}
	return opts
}

// Result summarizes a replay.
type Result struct {
	Steps   int      // steps applied
	Created []string // ids created by the script, in order
}

// Run applies the steps of sc to s in order. It stops at the first failing
// step or when ctx is done; the returned Result covers the steps applied.
func Run(ctx context.Context, sc *Script, s *session.Session) (Result, error) {
	l := applog.WithOperation(applog.WithComponent("replay"), "run")
	var res Result
	if sc.Canvas.Width > 0 && sc.Canvas.Height > 0 {
		s.Resize(sc.Canvas.Width, sc.Canvas.Height)
	}
	for i, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return res, &StepError{Index: i + 1, Line: st.Line, Op: st.Op, Err: err}
		}
		if err := apply(s, st, &res); err != nil {
			return res, &StepError{Index: i + 1, Line: st.Line, Op: st.Op, Err: err}
		}
		res.Steps++
	}
	l.Info("replay finished", slog.String("script", sc.Name), slog.Int("steps", res.Steps), slog.Int("created", len(res.Created)), slog.Int("items", len(s.Items())))
	return res, nil
}

func apply(s *session.Session, st Step, res *Result) error {
	switch st.Op {
	case OpTool:
		t := interaction.NoTool
		if st.Arg != "none" {
			t = interaction.Tool(st.Arg)
		}
		s.SelectTool(t)
	case OpClick:
		if id, ok := s.Click(st.X, st.Y); ok {
			res.Created = append(res.Created, id)
		}
	case OpTap:
		if out, id := s.Tap(st.X, st.Y); out == session.TapPlaced || out == session.TapSticker {
			res.Created = append(res.Created, id)
		}
	case OpGrab:
		id, err := resolve(st.Ref, res)
		if err != nil {
			return err
		}
		s.Grab(id, st.X, st.Y)
	case OpGrabAt:
		s.Press(st.X, st.Y)
	case OpMove:
		s.Move(st.X, st.Y)
	case OpRelease:
		s.Release()
	case OpLeave:
		s.Leave()
	case OpEdit:
		id, err := resolve(st.Ref, res)
		if err != nil {
			return err
		}
		s.Edit(id, st.Fields)
	case OpDelete:
		id, err := resolve(st.Ref, res)
		if err != nil {
			return err
		}
		s.Delete(id)
	case OpSticker:
		res.Created = append(res.Created, s.PickSticker(st.Arg))
	case OpResize:
		s.Resize(st.X, st.Y)
	default:
		return fmt.Errorf("unknown op %q", st.Op)
	}
	return nil
}

// resolve maps #n to the n-th created id; anything else is a literal id.
func resolve(ref string, res *Result) (string, error) {
	if !strings.HasPrefix(ref, "#") {
		return ref, nil
	}
	n, err := strconv.Atoi(ref[1:])
	if err != nil || n < 1 {
		return "", fmt.Errorf("bad item reference %q", ref)
	}
	if n > len(res.Created) {
		return "", fmt.Errorf("item reference %s: only %d items created so far", ref, len(res.Created))
	}
	return res.Created[n-1], nil
}
