/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package render

import (
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Text metrics come from the 7x13 bitmap face scaled linearly to the
// requested pixel size. This keeps layout deterministic across platforms;
// the desktop renderer may draw with a nicer face inside the same box.

// Face is the face all measurement is based on.
var Face = basicfont.Face7x13

// FaceSize is the native pixel height of Face.
const FaceSize = 13

// Scale returns the factor from Face pixels to a size-pixel font.
func Scale(size float64) float64 {
	if size <= 0 {
		return 1
	}
	return size / FaceSize
}

// LineHeight is the advance between two baselines at size.
func LineHeight(size float64) float64 {
	return float64(Face.Height) * Scale(size)
}

// MeasureLine returns the advance width of s at size.
func MeasureLine(s string, size float64) float64 {
	d := &font.Drawer{Face: Face}
	return float64(d.MeasureString(s).Ceil()) * Scale(size)
}

// MeasureText returns the extent of a possibly multi-line text.
func MeasureText(s string, size float64) (w, h float64) {
	lines := strings.Split(s, "\n")
	for _, ln := range lines {
		w = max(w, MeasureLine(ln, size))
	}
	return w, float64(len(lines)) * LineHeight(size)
}

// wrap breaks s into lines no wider than width at size. Explicit newlines
// are kept; a single word wider than width gets its own line.
func wrap(s string, size, width float64) []string {
	var out []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		cur := words[0]
		for _, w := range words[1:] {
			next := cur + " " + w
			if MeasureLine(next, size) > width {
				out = append(out, cur)
				cur = w
				continue
			}
			cur = next
		}
		out = append(out, cur)
	}
	return out
}
