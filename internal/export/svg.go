/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"scrapbook/internal/render"
	"scrapbook/internal/vector"
)

// SVG writes sc as a standalone SVG document. Each widget becomes a group
// carrying the item id and kind; leaves keep their local geometry with the
// accumulated transform as a matrix.
func SVG(w io.Writer, sc render.Scene, opt Options) error {
	pw, ph := opt.Page(sc)
	k := opt.scale()

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" width=\"%dpx\" height=\"%dpx\" viewBox=\"0 0 %g %g\">\n",
		int(math.Round(pw*k)), int(math.Round(ph*k)), pw, ph)
	if !opt.NoBackground {
		wf("  <defs>\n    <linearGradient id=\"backdrop\" x1=\"0\" y1=\"0\" x2=\"1\" y2=\"1\">\n")
		for i, c := range backdrop {
			wf("      <stop offset=\"%g\" stop-color=\"%s\"/>\n", float64(i)/2, c.Hex())
		}
		wf("    </linearGradient>\n  </defs>\n")
		wf("  <rect x=\"0\" y=\"0\" width=\"%g\" height=\"%g\" fill=\"url(#backdrop)\"/>\n", pw, ph)
	}

	open := ""
	leaves(sc, func(wd render.Widget, n vector.Node, xf vector.Affine2D) {
		if wd.ItemID != open {
			if open != "" {
				wf("  </g>\n")
			}
			open = wd.ItemID
			wf("  <g id=\"%s\" data-kind=\"%s\">\n", escAttr(wd.ItemID), escAttr(string(wd.Kind)))
		}
		r := vector.LocalRect(n)
		tr := svgMatrix(xf)
		switch t := n.(type) {
		case *vector.RectNode:
			wf("    <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\"%s%s/>\n", r.X, r.Y, r.W, r.H, paint(n), tr)
		case *vector.RoundedRectNode:
			rad := t.Radius()
			wf("    <rect x=\"%g\" y=\"%g\" width=\"%g\" height=\"%g\" rx=\"%g\" ry=\"%g\"%s%s/>\n", r.X, r.Y, r.W, r.H, rad, rad, paint(n), tr)
		case *vector.EllipseNode:
			c := r.Center()
			wf("    <ellipse cx=\"%g\" cy=\"%g\" rx=\"%g\" ry=\"%g\"%s%s/>\n", c.X, c.Y, r.W/2, r.H/2, paint(n), tr)
		case *vector.TextNode:
			family := t.Family
			if family == "" {
				family = "Helvetica, Arial, sans-serif"
			}
			baseline := r.Y + float64(render.Face.Ascent)*render.Scale(t.Size)
			wf("    <text x=\"%g\" y=\"%g\" font-family=\"%s\" font-size=\"%g\" fill=\"%s\"%s>%s</text>\n",
				r.X, baseline, escAttr(family), t.Size, t.Fill().Color.Hex(), tr, escText(t.Text))
		}
	})
	if open != "" {
		wf("  </g>\n")
	}
	wf("</svg>\n")

	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func svgMatrix(m vector.Affine2D) string {
	if m == vector.Identity {
		return ""
	}
	return fmt.Sprintf(" transform=\"matrix(%g %g %g %g %g %g)\"", m.A, m.B, m.C, m.D, m.E, m.F)
}

func paint(n vector.Node) string {
	fill := "none"
	if f := n.Fill(); f.Enabled {
		fill = f.Color.Hex()
	}
	s := n.Stroke()
	if !s.Enabled || s.Width <= 0 {
		return fmt.Sprintf(" fill=\"%s\"", fill)
	}
	return fmt.Sprintf(" fill=\"%s\" stroke=\"%s\" stroke-width=\"%g\"", fill, s.Color.Hex(), s.Width)
}

func escAttr(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '"':
			out = append(out, "&quot;"...)
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '\n':
			out = append(out, ' ')
		case '\r':
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}

func escText(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch ch := s[i]; ch {
		case '&':
			out = append(out, "&amp;"...)
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		default:
			out = append(out, ch)
		}
	}
	return string(out)
}
