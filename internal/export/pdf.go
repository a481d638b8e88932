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
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"scrapbook/internal/render"
	"scrapbook/internal/vector"
)

// PDF writes sc as a single-page PDF. One canvas pixel maps to one point.
// Text uses the built-in core fonts so nothing is embedded; glyphs outside
// cp1252 come out as placeholders.
func PDF(w io.Writer, sc render.Scene, opt Options) error {
	pw, ph := opt.Page(sc)

	// Use points for 1:1 mapping from canvas to PDF
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: pw, Ht: ph},
	})
	pdf.SetTitle("Scrapbook", false)
	pdf.SetCreator("scrapbook", false)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: pw, Ht: ph})
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if !opt.NoBackground {
		a, c := backdrop[0], backdrop[2]
		pdf.LinearGradient(0, 0, pw, ph, int(a.R), int(a.G), int(a.B), int(c.R), int(c.G), int(c.B), 0, 0, 1, 1)
	}

	leaves(sc, func(_ render.Widget, n vector.Node, xf vector.Affine2D) {
		r := xf.ApplyRect(vector.LocalRect(n))
		switch t := n.(type) {
		case *vector.TextNode:
			pdf.SetFont(pdfFamily(t.Family), "", t.Size)
			c := t.Fill().Color
			pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
			baseline := r.Y + float64(render.Face.Ascent)*render.Scale(t.Size)
			pdf.Text(r.X, baseline, tr(t.Text))
		case *vector.RectNode:
			if style := setPaint(pdf, n); style != "" {
				pdf.Rect(r.X, r.Y, r.W, r.H, style)
			}
		case *vector.EllipseNode:
			if style := setPaint(pdf, n); style != "" {
				c := r.Center()
				pdf.Ellipse(c.X, c.Y, r.W/2, r.H/2, 0, style)
			}
		case *vector.RoundedRectNode:
			if style := setPaint(pdf, n); style != "" {
				roundedRect(pdf, r.X, r.Y, r.W, r.H, t.Radius(), style)
			}
		}
	})

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// setPaint applies fill and stroke and returns the gofpdf style string, or
// "" when there is nothing to paint.
func setPaint(pdf *gofpdf.Fpdf, n vector.Node) string {
	style := ""
	if f := n.Fill(); f.Enabled {
		pdf.SetFillColor(int(f.Color.R), int(f.Color.G), int(f.Color.B))
		style += "F"
	}
	if s := n.Stroke(); s.Enabled && s.Width > 0 {
		pdf.SetDrawColor(int(s.Color.R), int(s.Color.G), int(s.Color.B))
		pdf.SetLineWidth(s.Width)
		style += "D"
	}
	return style
}

// kappa places cubic Bezier control points for a quarter circle.
const kappa = 0.5523

func roundedRect(pdf *gofpdf.Fpdf, x, y, w, h, r float64, style string) {
	if r <= 0 {
		pdf.Rect(x, y, w, h, style)
		return
	}
	k := r * kappa
	pdf.MoveTo(x+r, y)
	pdf.LineTo(x+w-r, y)
	pdf.CurveBezierCubicTo(x+w-r+k, y, x+w, y+r-k, x+w, y+r)
	pdf.LineTo(x+w, y+h-r)
	pdf.CurveBezierCubicTo(x+w, y+h-r+k, x+w-r+k, y+h, x+w-r, y+h)
	pdf.LineTo(x+r, y+h)
	pdf.CurveBezierCubicTo(x+r-k, y+h, x, y+h-r+k, x, y+h-r)
	pdf.LineTo(x, y+r)
	pdf.CurveBezierCubicTo(x, y+r-k, x+r-k, y, x+r, y)
	pdf.ClosePath()
	pdf.DrawPath(style)
}

// pdfFamily maps a catalog font to one of the core PDF fonts.
func pdfFamily(name string) string {
	n := strings.ToLower(name)
	for _, serif := range []string{"times", "georgia", "playfair", "crimson", "old standard", "unifraktur"} {
		if strings.Contains(n, serif) {
			return "Times"
		}
	}
	return "Helvetica"
}
