/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package replay drives a session from a YAML gesture script, headless.
//
// A script looks like:
//
//	canvas: {width: 800, height: 600}
//	seed: 7
//	steps:
//	  - tool text
//	  - click 100 120
//	  - "grab #1 110 125"
//	  - move 300 300
//	  - release
//	  - edit: "#1"
//	    fields: {text: "hello", size: 32}
//	  - sticker 💖
//
// Scalar steps are an op followed by space separated arguments. Steps that
// carry payload fields use the mapping form with the op as key. Item
// references are #n, the n-th item the script created, or a literal id;
// quote steps that contain #n since YAML reads it as a comment.
package replay

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"scrapbook/internal/canvas"
)

// Op is a script step verb.
type Op string

const (
	OpTool    Op = "tool"    // tool <kind|none>
	OpClick   Op = "click"   // click x y
	OpTap     Op = "tap"     // tap x y
	OpGrab    Op = "grab"    // grab <ref> x y
	OpGrabAt  Op = "grab-at" // grab-at x y
	OpMove    Op = "move"    // move x y
	OpRelease Op = "release" // release
	OpLeave   Op = "leave"   // leave
	OpEdit    Op = "edit"    // edit <ref> + fields
	OpDelete  Op = "delete"  // delete <ref>
	OpSticker Op = "sticker" // sticker <glyph>
	OpResize  Op = "resize"  // resize w h
)

// arity is the number of positional arguments per op.
var arity = map[Op]int{
	OpTool: 1, OpClick: 2, OpTap: 2, OpGrab: 3, OpGrabAt: 2, OpMove: 2,
	OpRelease: 0, OpLeave: 0, OpEdit: 1, OpDelete: 1, OpSticker: 1, OpResize: 2,
}

// Step is one parsed script event.
type Step struct {
	Op     Op
	Ref    string // item reference for grab, edit and delete
	Arg    string // tool kind or sticker glyph
	X, Y   float64
	Fields canvas.Payload
	Line   int // 1-based line in the source
}

// Canvas is the canvas size the script was written for.
type Canvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Script is a parsed replay file.
type Script struct {
	Name   string
	Canvas Canvas
	Seed   uint64
	Steps  []Step
}

type rawScript struct {
	Canvas Canvas      `yaml:"canvas"`
	Seed   uint64      `yaml:"seed"`
	Steps  []yaml.Node `yaml:"steps"`
}

// StepError reports a problem with one step. Index is 1-based.
type StepError struct {
	Index int
	Line  int
	Op    Op
	Err   error
}

func (e *StepError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("step %d (line %d, %s): %v", e.Index, e.Line, e.Op, e.Err)
	}
	return fmt.Sprintf("step %d (%s): %v", e.Index, e.Op, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// LoadFile reads and parses a script file.
func LoadFile(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return Parse(path, data)
}

// Parse decodes a script. name is only used in messages.
func Parse(name string, data []byte) (*Script, error) {
	var raw rawScript
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if raw.Canvas.Width < 0 || raw.Canvas.Height < 0 {
		return nil, fmt.Errorf("parse %s: negative canvas size", name)
	}
	sc := &Script{Name: name, Canvas: raw.Canvas, Seed: raw.Seed, Steps: make([]Step, 0, len(raw.Steps))}
	for i := range raw.Steps {
		st, err := parseStep(&raw.Steps[i])
		if err != nil {
			return nil, &StepError{Index: i + 1, Line: raw.Steps[i].Line, Op: st.Op, Err: err}
		}
		sc.Steps = append(sc.Steps, st)
	}
	return sc, nil
}

func parseStep(n *yaml.Node) (Step, error) {
	st := Step{Line: n.Line}
	var words []string
	switch n.Kind {
	case yaml.ScalarNode:
		words = strings.Fields(n.Value)
	case yaml.MappingNode:
		var err error
		words, st.Fields, err = mappingStep(n)
		if err != nil {
			return st, err
		}
	default:
		return st, errors.New("step must be a string or a mapping")
	}
	if len(words) == 0 {
		return st, errors.New("empty step")
	}
	st.Op = Op(strings.ToLower(words[0]))
	args := words[1:]
	want, ok := arity[st.Op]
	if !ok {
		return st, fmt.Errorf("unknown op %q", words[0])
	}
	if len(args) != want {
		return st, fmt.Errorf("want %d arguments, got %d", want, len(args))
	}
	if st.Fields != nil && st.Op != OpEdit {
		return st, errors.New("fields are only allowed on edit")
	}

	var err error
	switch st.Op {
	case OpTool:
		st.Arg = strings.ToLower(args[0])
		if _, ok := canvas.ParseKind(st.Arg); !ok && st.Arg != "none" {
			return st, fmt.Errorf("unknown tool %q", args[0])
		}
	case OpSticker:
		st.Arg = args[0]
	case OpGrab:
		st.Ref = args[0]
		st.X, st.Y, err = coords(args[1:])
	case OpEdit, OpDelete:
		st.Ref = args[0]
	case OpClick, OpTap, OpGrabAt, OpMove, OpResize:
		st.X, st.Y, err = coords(args)
	}
	return st, err
}

// mappingStep turns {<op>: "<args>", fields: {...}} into words and fields.
func mappingStep(n *yaml.Node) ([]string, canvas.Payload, error) {
	var words []string
	var fields canvas.Payload
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i].Value, n.Content[i+1]
		if key == "fields" {
			if err := val.Decode(&fields); err != nil {
				return nil, nil, fmt.Errorf("fields: %w", err)
			}
			if fields == nil {
				fields = canvas.Payload{}
			}
			continue
		}
		if words != nil {
			return nil, nil, fmt.Errorf("more than one op in step (%s)", key)
		}
		if val.Kind != yaml.ScalarNode {
			return nil, nil, fmt.Errorf("%s: arguments must be a string", key)
		}
		words = append([]string{key}, strings.Fields(val.Value)...)
	}
	return words, fields, nil
}

func coords(args []string) (x, y float64, err error) {
	if x, err = strconv.ParseFloat(args[0], 64); err != nil {
		return 0, 0, fmt.Errorf("bad x %q", args[0])
	}
	if y, err = strconv.ParseFloat(args[1], 64); err != nil {
		return 0, 0, fmt.Errorf("bad y %q", args[1])
	}
	return x, y, nil
}
