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
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"scrapbook/internal/canvas"
	"scrapbook/internal/render"
	"scrapbook/internal/version"
)

// Bundle entry names.
const (
	BundleImage    = "canvas.png"
	BundleVector   = "canvas.svg"
	BundleItems    = "items.json"
	BundleManifest = "manifest.yaml"
)

// Manifest describes a bundle.
type Manifest struct {
	App       string         `yaml:"app"`
	Version   string         `yaml:"version"`
	Width     float64        `yaml:"width"`
	Height    float64        `yaml:"height"`
	ItemCount int            `yaml:"item_count"`
	Kinds     map[string]int `yaml:"kinds"`
	Files     []string       `yaml:"files"`
}

// Bundle packages the frame as PNG and SVG together with the item snapshot
// and a manifest into one ZIP archive.
func Bundle(w io.Writer, items []canvas.Item, sc render.Scene, opt Options) error {
	zw := zip.NewWriter(w)
	pw, ph := opt.Page(sc)

	var buf bytes.Buffer
	if err := PNG(&buf, sc, opt); err != nil {
		return err
	}
	if err := addZipFile(zw, BundleImage, buf.Bytes()); err != nil {
		return fmt.Errorf("zip add image: %w", err)
	}
	buf.Reset()
	if err := SVG(&buf, sc, opt); err != nil {
		return err
	}
	if err := addZipFile(zw, BundleVector, buf.Bytes()); err != nil {
		return fmt.Errorf("zip add svg: %w", err)
	}

	if items == nil {
		items = []canvas.Item{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	if err := addZipFile(zw, BundleItems, data); err != nil {
		return fmt.Errorf("zip add items: %w", err)
	}

	m := Manifest{
		App:       "scrapbook",
		Version:   version.String(),
		Width:     pw,
		Height:    ph,
		ItemCount: len(items),
		Kinds:     map[string]int{},
		Files:     []string{BundleImage, BundleVector, BundleItems},
	}
	for _, it := range items {
		m.Kinds[string(it.Kind)]++
	}
	data, err = yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("build manifest: %w", err)
	}
	if err := addZipFile(zw, BundleManifest, data); err != nil {
		return fmt.Errorf("zip add manifest: %w", err)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

func addZipFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
