/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"os"
	"path/filepath"
	"testing"
)

// isolate points the config path at a temp file and clears overrides.
func isolate(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv(EnvConfigPath, path)
	for _, k := range []string{EnvCanvasWidth, EnvCanvasHeight, EnvStickerMargin, EnvCatalogPath, EnvLogLevel, EnvLogFormat, EnvLogSource, EnvLogFile} {
		t.Setenv(k, "")
	}
	return path
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Defaults() {
		t.Fatalf("cfg = %+v, want defaults", cfg)
	}
}

func TestSaveThenLoad(t *testing.T) {
	isolate(t)
	cfg := Defaults()
	cfg.Canvas.Width = 1024
	cfg.Canvas.StickerMargin = 30
	cfg.Catalog.Path = "/tmp/catalog.yaml"
	cfg.Logging.Level = "debug"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip mismatch:\n got=%+v\nwant=%+v", got, cfg)
	}
}

func TestMalformedFileReportsError(t *testing.T) {
	path := isolate(t)
	if err := os.WriteFile(path, []byte("canvas: [not a map"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load()
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if cfg.Canvas.Width != Defaults().Canvas.Width {
		t.Fatalf("defaults not returned alongside error: %+v", cfg)
	}
}

func TestMergeKeepsMarginWhenFileOmitsIt(t *testing.T) {
	dst := Defaults()
	src := AppConfig{Canvas: CanvasConfig{Width: 640}}
	mergeInto(&dst, &src)
	if dst.Canvas.StickerMargin != 50 || dst.Canvas.Width != 640 || dst.Canvas.Height != 800 {
		t.Fatalf("merge result = %+v", dst.Canvas)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv(EnvCanvasWidth, "900")
	t.Setenv(EnvStickerMargin, "0")
	t.Setenv(EnvCatalogPath, "/x/cat.yaml")
	t.Setenv(EnvLogFormat, "JSON")
	t.Setenv(EnvLogSource, "on")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Canvas.Width != 900 || cfg.Canvas.StickerMargin != 0 || cfg.Catalog.Path != "/x/cat.yaml" {
		t.Fatalf("canvas/catalog overrides not applied: %+v", cfg)
	}
	if cfg.Logging.Format != "json" || !cfg.Logging.Source {
		t.Fatalf("logging overrides not applied: %+v", cfg.Logging)
	}
	if env, ok := EnvOverrideFor("canvas.width"); !ok || env != EnvCanvasWidth {
		t.Fatalf("EnvOverrideFor(canvas.width) = %q, %v", env, ok)
	}
	if _, ok := EnvOverrideFor("canvas.height"); ok {
		t.Fatalf("canvas.height is not overridden")
	}
}

func TestInvalidEnvNumberIgnored(t *testing.T) {
	isolate(t)
	t.Setenv(EnvCanvasHeight, "tall")
	cfg, _ := Load()
	if cfg.Canvas.Height != 800 {
		t.Fatalf("height = %v, want default 800", cfg.Canvas.Height)
	}
}

func TestLogOptions(t *testing.T) {
	cfg := Defaults()
	cfg.Logging.File = "/tmp/s.log"
	o := cfg.LogOptions()
	if o.Level != "info" || o.Format != "console" || o.File != "/tmp/s.log" {
		t.Fatalf("LogOptions = %+v", o)
	}
}
