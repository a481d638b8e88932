/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes a rendered canvas frame to image and document
// formats. Exports are one-way: nothing here is read back.
package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"scrapbook/internal/canvas"
	"scrapbook/internal/render"
	"scrapbook/internal/vector"
)

// Format is an output file format.
type Format string

const (
	FormatPNG    Format = "png"
	FormatSVG    Format = "svg"
	FormatPDF    Format = "pdf"
	FormatBundle Format = "zip"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch Format(ext) {
	case FormatPNG, FormatSVG, FormatPDF, FormatBundle:
		return Format(ext), nil
	}
	return "", fmt.Errorf("unsupported export format %q", ext)
}

// Options controls the page and the rasterization.
//
// Width and Height are the canvas size in pixels; when zero, the extent of
// the scene plus Margin is used. Scale multiplies the raster size of PNG
// output only; vector formats keep canvas units (1px = 1pt in PDF).
type Options struct {
	Width, Height float64
	Margin        float64
	Scale         float64
	NoBackground  bool
}

// Page is the resolved export page size.
func (o Options) Page(sc render.Scene) (w, h float64) {
	w, h = o.Width, o.Height
	if w > 0 && h > 0 {
		return w, h
	}
	ext := sc.Extent()
	if w <= 0 {
		w = math.Max(1, ext.X+ext.W+o.Margin)
	}
	if h <= 0 {
		h = math.Max(1, ext.Y+ext.H+o.Margin)
	}
	return w, h
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// Canvas background gradient stops, top-left to bottom-right.
var backdrop = [3]vector.Color{
	vector.ParseHex("#fffbeb", vector.White),
	vector.ParseHex("#fff1f2", vector.White),
	vector.ParseHex("#fff7ed", vector.White),
}

// backdropAt samples the background gradient at t in [0,1].
func backdropAt(t float64) vector.Color {
	t = math.Max(0, math.Min(1, t))
	if t < 0.5 {
		return vector.Mix(backdrop[1], backdrop[0], t*2)
	}
	return vector.Mix(backdrop[2], backdrop[1], (t-0.5)*2)
}

// Write encodes sc in format f.
func Write(w io.Writer, f Format, sc render.Scene, opt Options) error {
	switch f {
	case FormatPNG:
		return PNG(w, sc, opt)
	case FormatSVG:
		return SVG(w, sc, opt)
	case FormatPDF:
		return PDF(w, sc, opt)
	}
	return fmt.Errorf("format %q needs the item snapshot; use Bundle", f)
}

// File writes the frame to path, picking the format from its extension and
// creating parent directories. Bundles include items.
func File(path string, items []canvas.Item, sc render.Scene, opt Options) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if f == FormatBundle {
		err = Bundle(&buf, items, sc, opt)
	} else {
		err = Write(&buf, f, sc, opt)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", f, err)
	}
	return nil
}

// leaves flattens every widget of sc into paint order.
func leaves(sc render.Scene, fn func(w render.Widget, n vector.Node, xf vector.Affine2D)) {
	for _, w := range sc.Widgets {
		vector.Walk(w.Root, vector.Identity, func(n vector.Node, xf vector.Affine2D) {
			fn(w, n, xf)
		})
	}
}
