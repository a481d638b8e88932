/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"scrapbook/internal/render"
	"scrapbook/internal/vector"
)

// PNG rasterizes sc. Shapes are filled per pixel center without
// antialiasing; text is drawn with the measurement face and scaled.
func PNG(w io.Writer, sc render.Scene, opt Options) error {
	img := Rasterize(sc, opt)
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Rasterize draws sc into a new image.
func Rasterize(sc render.Scene, opt Options) *image.RGBA {
	pw, ph := opt.Page(sc)
	k := opt.scale()
	pixW := int(math.Round(pw * k))
	pixH := int(math.Round(ph * k))
	img := image.NewRGBA(image.Rect(0, 0, pixW, pixH))

	if opt.NoBackground {
		draw.Draw(img, img.Bounds(), image.Transparent, image.Point{}, draw.Src)
	} else {
		diag := float64(pixW + pixH)
		for y := 0; y < pixH; y++ {
			for x := 0; x < pixW; x++ {
				img.SetRGBA(x, y, toRGBA(backdropAt(float64(x+y)/diag)))
			}
		}
	}

	base := vector.Scale(k, k)
	leaves(sc, func(_ render.Widget, n vector.Node, xf vector.Affine2D) {
		xf = base.Mul(xf)
		switch t := n.(type) {
		case *vector.TextNode:
			drawText(img, t, xf)
		case *vector.RectNode, *vector.EllipseNode, *vector.RoundedRectNode:
			paintShape(img, n, xf)
		}
	})
	return img
}

func toRGBA(c vector.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// paintShape fills and strokes a leaf shape. A pixel belongs to the stroke
// when it is inside the shape but outside the shape inset by the width.
func paintShape(img *image.RGBA, n vector.Node, xf vector.Affine2D) {
	fill, stroke := n.Fill(), n.Stroke()
	if !fill.Enabled && !stroke.Enabled {
		return
	}
	inv := xf.Invert()
	own := n.Transform()
	hit := func(s vector.Node, p vector.Pt) bool { return s.Hit(own.Apply(inv.Apply(p))) }

	var inner vector.Node
	if stroke.Enabled && stroke.Width > 0 {
		inner = insetShape(n, stroke.Width)
	}
	r := xf.ApplyRect(vector.LocalRect(n)).Inset(-1, -1)
	b := img.Bounds().Intersect(image.Rect(int(math.Floor(r.X)), int(math.Floor(r.Y)), int(math.Ceil(r.X+r.W)), int(math.Ceil(r.Y+r.H))))
	fc, sc := toRGBA(fill.Color), toRGBA(stroke.Color)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p := vector.Pt{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			if !hit(n, p) {
				continue
			}
			switch {
			case inner != nil && !hit(inner, p):
				img.SetRGBA(x, y, sc)
			case fill.Enabled:
				img.SetRGBA(x, y, fc)
			}
		}
	}
}

// insetShape returns the same kind of shape shrunk by d on every side.
func insetShape(n vector.Node, d float64) vector.Node {
	r := vector.LocalRect(n).Inset(d, d)
	var out vector.Node
	switch t := n.(type) {
	case *vector.EllipseNode:
		out = vector.NewEllipse(r, vector.Fill{}, vector.Stroke{})
	case *vector.RoundedRectNode:
		out = vector.NewRoundedRect(r, math.Max(0, t.Radius()-d), vector.Fill{}, vector.Stroke{})
	default:
		out = vector.NewRect(r, vector.Fill{}, vector.Stroke{})
	}
	out.SetTransform(n.Transform())
	return out
}

// drawText renders the line at the face's native size into an alpha mask
// and scales the mask onto the text box.
func drawText(img *image.RGBA, n *vector.TextNode, xf vector.Affine2D) {
	if n.Text == "" {
		return
	}
	face := render.Face
	natW := int(math.Ceil(render.MeasureLine(n.Text, render.FaceSize)))
	if natW <= 0 {
		return
	}
	mask := image.NewAlpha(image.Rect(0, 0, natW, face.Height))
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: fixed.P(0, face.Ascent)}
	d.DrawString(n.Text)

	r := xf.ApplyRect(vector.LocalRect(n))
	dr := image.Rect(int(math.Round(r.X)), int(math.Round(r.Y)), int(math.Round(r.X+r.W)), int(math.Round(r.Y+r.H)))
	if dr.Empty() {
		return
	}
	scaled := image.NewAlpha(dr)
	xdraw.ApproxBiLinear.Scale(scaled, dr, mask, mask.Bounds(), xdraw.Src, nil)
	draw.DrawMask(img, dr, image.NewUniform(toRGBA(n.Fill().Color)), image.Point{}, scaled, dr.Min, draw.Over)
}
