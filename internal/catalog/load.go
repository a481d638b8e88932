/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	applog "scrapbook/internal/log"
)

//go:embed catalog.schema.json
var schemaJSON []byte

// ValidationError lists every schema violation found in an override file.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("catalog %s: %d schema error(s): %s", e.Path, len(e.Issues), strings.Join(e.Issues, "; "))
}

// LoadFile reads a YAML override file and merges it over the built-in catalog.
// Entries with a key already present replace the built-in entry; new keys are
// appended. An empty path returns the defaults.
func LoadFile(path string) (*Catalog, error) {
	cat := Default()
	if strings.TrimSpace(path) == "" {
		return cat, nil
	}
	l := applog.WithOperation(applog.WithComponent("catalog"), "load").With(slog.String("path", path))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	over, err := Parse(path, data)
	if err != nil {
		l.Warn("catalog override rejected", slog.Any("err", err))
		return nil, err
	}
	cat.Merge(over)
	l.Info("catalog override applied",
		slog.Int("letters", len(over.Letters)),
		slog.Int("fonts", len(over.Fonts)),
		slog.Int("sticker_sets", len(over.Stickers)))
	return cat, nil
}

// Parse validates YAML override data against the catalog schema and decodes it.
// name is only used in error messages.
func Parse(name string, data []byte) (*Catalog, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", name, err)
	}
	if raw == nil {
		return &Catalog{}, nil
	}
	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("convert catalog %s: %w", name, err)
	}
	res, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaJSON), gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate catalog %s: %w", name, err)
	}
	if !res.Valid() {
		ve := &ValidationError{Path: name}
		for _, e := range res.Errors() {
			ve.Issues = append(ve.Issues, e.String())
		}
		return nil, ve
	}
	var over Catalog
	if err := yaml.Unmarshal(data, &over); err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", name, err)
	}
	return &over, nil
}

// Merge applies o over c.
func (c *Catalog) Merge(o *Catalog) {
	if o == nil {
		return
	}
	for _, s := range o.Letters {
		c.Letters = upsert(c.Letters, s, func(x LetterStyle) string { return normKey(x.Key) })
	}
	for _, s := range o.PolaroidSizes {
		c.PolaroidSizes = upsert(c.PolaroidSizes, s, func(x FrameSize) string { return normKey(x.Key) })
	}
	for _, s := range o.PhotoboothSizes {
		c.PhotoboothSizes = upsert(c.PhotoboothSizes, s, func(x FrameSize) string { return normKey(x.Key) })
	}
	for _, f := range o.Fonts {
		c.Fonts = upsert(c.Fonts, f, func(x Font) string { return strings.ToLower(x.Name) })
	}
	for _, s := range o.Stickers {
		c.Stickers = upsert(c.Stickers, s, func(x StickerSet) string { return normKey(x.Key) })
	}
	for _, t := range o.Tools {
		c.Tools = upsert(c.Tools, t, func(x Tool) string { return string(x.Kind) })
	}
	for _, sw := range o.Swatches {
		c.Swatches = upsert(c.Swatches, sw, strings.ToLower)
	}
	for _, s := range o.Songs {
		c.Songs = upsert(c.Songs, s, func(x string) string { return x })
	}
}

func upsert[T any](list []T, v T, key func(T) string) []T {
	k := key(v)
	for i := range list {
		if key(list[i]) == k {
			list[i] = v
			return list
		}
	}
	return append(list, v)
}
