/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"scrapbook/internal/canvas"
	"scrapbook/internal/catalog"
	"scrapbook/internal/config"
)

const script = `
canvas: {width: 640, height: 480}
seed: 3
steps:
  - tool polaroid
  - click 40 40
  - tool text
  - click 300 300
  - edit: "#2"
    fields: {text: "happy anniversary"}
  - sticker 🌹
`

func TestRunReplayPrintsTableAndExports(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "story.yaml")
	if err := os.WriteFile(path, []byte(script), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	png := filepath.Join(dir, "frame.png")
	out := filepath.Join(dir, "out")

	var stdout bytes.Buffer
	live := &liveSession{}
	err := runReplay(config.Defaults(), []string{path, "-png", png, "-preset", "web", "-out", out}, live, &stdout)
	if err != nil {
		t.Fatalf("runReplay: %v", err)
	}
	s := stdout.String()
	for _, want := range []string{"polaroid-1700000000000", "happy anniversary", "6 steps, 3 created, 3 on canvas", "wrote " + png} {
		if !strings.Contains(s, want) {
			t.Fatalf("output missing %q:\n%s", want, s)
		}
	}
	if len(live.Items()) != 3 {
		t.Fatalf("crash snapshot sees %d items", len(live.Items()))
	}
	for _, p := range []string{png, filepath.Join(out, "web", "story.png"), filepath.Join(out, "web", "story.zip")} {
		if st, err := os.Stat(p); err != nil || st.Size() == 0 {
			t.Fatalf("missing export %s: %v", p, err)
		}
	}
}

func TestRunReplayErrors(t *testing.T) {
	var stdout bytes.Buffer
	if err := runReplay(config.Defaults(), nil, &liveSession{}, &stdout); err == nil {
		t.Fatalf("missing script accepted")
	}
	bad := filepath.Join(t.TempDir(), "bad.yaml")
	_ = os.WriteFile(bad, []byte("steps:\n  - fly 1 2\n"), 0o644)
	err := runReplay(config.Defaults(), []string{bad}, &liveSession{}, &stdout)
	if err == nil || !strings.Contains(err.Error(), "step 1") {
		t.Fatalf("err = %v, want step 1 error", err)
	}
}

func TestPayloadString(t *testing.T) {
	got := payloadString(canvas.Payload{"text": strings.Repeat("x", 60), "size": 16, "color": "#000000"})
	if !strings.HasPrefix(got, "color=#000000 size=16 text=") || !strings.HasSuffix(got, "…") {
		t.Fatalf("payloadString = %q", got)
	}
}

func TestCatalogSummaryListsEverything(t *testing.T) {
	s := catalogSummary(catalog.Default())
	for _, want := range []string{"Tools", "vintage", "medium", "Cursive", "Our Song"} {
		if !strings.Contains(s, want) {
			t.Fatalf("catalog summary missing %q", want)
		}
	}
}

func TestConfigSummaryMarksEnv(t *testing.T) {
	t.Setenv(config.EnvCanvasWidth, "999")
	s := configSummary(config.Defaults())
	if !strings.Contains(s, "env "+config.EnvCanvasWidth) {
		t.Fatalf("env override not marked:\n%s", s)
	}
}
