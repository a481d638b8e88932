/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"scrapbook/internal/canvas"
	"scrapbook/internal/render"
)

func sampleItems() []canvas.Item {
	return []canvas.Item{
		{ID: "polaroid-1", Kind: canvas.KindPolaroid, Position: canvas.Point{X: 10, Y: 10}, Payload: canvas.DefaultPayload(canvas.KindPolaroid)},
		{ID: "vinyl-1", Kind: canvas.KindVinyl, Position: canvas.Point{X: 300, Y: 40}, Payload: canvas.Payload{}},
		{ID: "text-1", Kind: canvas.KindText, Position: canvas.Point{X: 40, Y: 300}, Payload: canvas.Payload{canvas.KeyText: "A & B <3", canvas.KeyColor: "#FF0000", canvas.KeySize: 20}},
		{ID: "sticker-1", Kind: canvas.KindSticker, Position: canvas.Point{X: 500, Y: 300}, Payload: canvas.Payload{canvas.KeyContent: "LOVE"}},
	}
}

func sampleScene() render.Scene { return render.Build(sampleItems(), nil) }

func TestRasterizePaintsWidgets(t *testing.T) {
	img := Rasterize(sampleScene(), Options{Width: 640, Height: 480})
	if b := img.Bounds(); b.Dx() != 640 || b.Dy() != 480 {
		t.Fatalf("image size = %v", b)
	}
	if got := img.RGBAAt(15, 15); got != (color.RGBA{255, 255, 255, 255}) {
		t.Fatalf("polaroid frame pixel = %+v, want white", got)
	}
	if got := img.RGBAAt(10, 10); got != (color.RGBA{0xe5, 0xe7, 0xeb, 255}) {
		t.Fatalf("polaroid border pixel = %+v", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0xff, 0xfb, 0xeb, 255}) {
		t.Fatalf("backdrop pixel = %+v", got)
	}
}

func TestRasterizeScaleAndExtent(t *testing.T) {
	sc := sampleScene()
	img := Rasterize(sc, Options{Scale: 2, Margin: 10})
	ext := sc.Extent()
	wantW := int((ext.X + ext.W + 10) * 2)
	if got := img.Bounds().Dx(); got < wantW-1 || got > wantW+1 {
		t.Fatalf("width = %d, want about %d", got, wantW)
	}
	empty := Rasterize(render.Scene{}, Options{NoBackground: true})
	if empty.Bounds().Dx() != 1 || empty.RGBAAt(0, 0).A != 0 {
		t.Fatalf("empty scene image = %v %+v", empty.Bounds(), empty.RGBAAt(0, 0))
	}
}

func TestSVGGroupsWidgetsAndEscapes(t *testing.T) {
	var buf bytes.Buffer
	if err := SVG(&buf, sampleScene(), Options{Width: 800, Height: 600}); err != nil {
		t.Fatalf("svg: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`viewBox="0 0 800 600"`,
		`<g id="polaroid-1" data-kind="polaroid">`,
		`<g id="vinyl-1" data-kind="vinyl">`,
		`<ellipse`,
		`A &amp; B &lt;3</text>`,
		`fill="#ff0000"`,
		`transform="matrix(1 0 0 1 300 40)"`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q", want)
		}
	}
	if strings.Count(out, "<g ") != strings.Count(out, "</g>") {
		t.Fatalf("unbalanced groups")
	}
}

func TestPDFProducesDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := PDF(&buf, sampleScene(), Options{Width: 800, Height: 600}); err != nil {
		t.Fatalf("pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("not a pdf: %q", buf.Bytes()[:min(16, buf.Len())])
	}
	if pdfFamily("Playfair Display") != "Times" || pdfFamily("Caveat") != "Helvetica" {
		t.Fatalf("pdf family mapping broken")
	}
}

func TestBundleContents(t *testing.T) {
	var buf bytes.Buffer
	items := sampleItems()
	if err := Bundle(&buf, items, render.Build(items, nil), Options{Width: 640, Height: 480}); err != nil {
		t.Fatalf("bundle: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	files := map[string][]byte{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		data, _ := io.ReadAll(rc)
		_ = rc.Close()
		files[f.Name] = data
	}
	for _, name := range []string{BundleImage, BundleVector, BundleItems, BundleManifest} {
		if len(files[name]) == 0 {
			t.Fatalf("bundle entry %s missing or empty", name)
		}
	}
	var back []canvas.Item
	if err := json.Unmarshal(files[BundleItems], &back); err != nil || len(back) != 4 || back[2].ID != "text-1" {
		t.Fatalf("items.json = %v (%v)", back, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(files[BundleManifest], &m); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	if m.App != "scrapbook" || m.ItemCount != 4 || m.Kinds["vinyl"] != 1 || m.Width != 640 {
		t.Fatalf("manifest = %+v", m)
	}
}

func TestFileAndFormatFromPath(t *testing.T) {
	dir := t.TempDir()
	if _, err := FormatFromPath("out.gif"); err == nil {
		t.Fatalf("gif accepted")
	}
	out := filepath.Join(dir, "nested", "frame.SVG")
	if err := File(out, sampleItems(), sampleScene(), Options{}); err != nil {
		t.Fatalf("File: %v", err)
	}
	if st, err := os.Stat(out); err != nil || st.Size() == 0 {
		t.Fatalf("stat %s: %v", out, err)
	}
}

func TestBatchExportPresets(t *testing.T) {
	dir := t.TempDir()
	items := sampleItems()
	sc := render.Build(items, nil)

	web, err := BatchExport(items, sc, BatchOptions{Preset: PresetWeb, OutDir: dir})
	if err != nil {
		t.Fatalf("batch export web: %v", err)
	}
	print, err := BatchExport(items, sc, BatchOptions{Preset: PresetPrint, OutDir: dir, Name: "card"})
	if err != nil {
		t.Fatalf("batch export print: %v", err)
	}
	checks := []string{
		filepath.Join(dir, "web", "scrapbook.png"),
		filepath.Join(dir, "web", "scrapbook.svg"),
		filepath.Join(dir, "web", "scrapbook.zip"),
		filepath.Join(dir, "print", "card.pdf"),
		filepath.Join(dir, "print", "card.png"),
	}
	if got := append(web, print...); len(got) != len(checks) {
		t.Fatalf("written = %v", got)
	}
	for _, p := range checks {
		st, err := os.Stat(p)
		if err != nil {
			t.Fatalf("missing %s: %v", p, err)
		}
		if st.Size() <= 0 {
			t.Fatalf("empty file: %s", p)
		}
	}
	if _, err := BatchExport(items, sc, BatchOptions{Formats: []string{"tiff"}, OutDir: dir}); err == nil {
		t.Fatalf("unknown format accepted")
	}
}

func TestBatchExportRejectsUnknownPreset(t *testing.T) {
	if _, err := BatchExport(nil, render.Scene{}, BatchOptions{Preset: "poster", OutDir: t.TempDir()}); err == nil {
		t.Fatalf("unknown preset accepted")
	}
}
