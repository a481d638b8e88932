/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic into a logged error and a report file.
package crash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"scrapbook/internal/canvas"
	applog "scrapbook/internal/log"
	"scrapbook/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// reportDir is where reports land; tests point it at a temp dir.
var reportDir = os.TempDir

// Snapshotter is anything that can describe the canvas at crash time.
type Snapshotter interface {
	Items() []canvas.Item
}

// Recover captures a panic, logs an error with stacktrace, writes a crash
// report that includes the canvas items (if snap is non-nil) and exits
// with code 2.
//
// Usage: defer crash.Recover(sess)
func Recover(snap Snapshotter) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	var items []canvas.Item
	if snap != nil {
		items = safeItems(snap)
	}
	reportPath, err := writeReport(r, stack, items)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err))
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	exitFn(2)
}

// safeItems reads the snapshot without letting a second panic escape.
func safeItems(snap Snapshotter) (items []canvas.Item) {
	defer func() {
		if recover() != nil {
			items = nil
		}
	}()
	return snap.Items()
}

func writeReport(panicVal any, stack []byte, items []canvas.Item) (string, error) {
	dir := reportDir()
	_ = os.MkdirAll(dir, 0o755)
	now := time.Now()
	path := filepath.Join(dir, fmt.Sprintf("scrapbook-crash-%s.log", now.Format("20060102-150405")))

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "Scrapbook Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", now.Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(&buf, "Items: %d\n", len(items))
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))
	if len(items) > 0 {
		if data, err := json.MarshalIndent(items, "", "  "); err == nil {
			_, _ = fmt.Fprintf(&buf, "\nCanvas:\n%s\n", data)
		}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return path, err
	}
	return path, nil
}
