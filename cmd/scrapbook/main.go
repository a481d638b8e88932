/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"scrapbook/internal/canvas"
	"scrapbook/internal/catalog"
	"scrapbook/internal/config"
	"scrapbook/internal/crash"
	"scrapbook/internal/export"
	applog "scrapbook/internal/log"
	"scrapbook/internal/replay"
	"scrapbook/internal/session"
	"scrapbook/internal/ui"
	"scrapbook/internal/version"
)

func usage(w io.Writer) {
	fmt.Fprintln(w, "Scrapbook: decorate a canvas with photos, letters, records and stickers")
	fmt.Fprintf(w, "Version: %s\n", version.String())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  scrapbook version|-v|--version            Show version")
	fmt.Fprintln(w, "  scrapbook replay <script.yaml> [flags]     Play a gesture script headless and print the items")
	fmt.Fprintln(w, "      -png/-svg/-pdf/-zip <file>             Export the final frame")
	fmt.Fprintln(w, "      -preset web|print -out <dir>           Export with a preset into <dir>/<preset>/")
	fmt.Fprintln(w, "      -scale <n>                             PNG pixel multiplier")
	fmt.Fprintln(w, "  scrapbook catalog [override.yaml]          Validate and print the merged catalog")
	fmt.Fprintln(w, "  scrapbook config                           Print the effective configuration")
	fmt.Fprintln(w, "  scrapbook ui                               Launch desktop UI (build with -tags fyne)")
}

// liveSession lets the crash handler see a session created after the defer.
type liveSession struct{ s *session.Session }

func (l *liveSession) Items() []canvas.Item {
	if l.s == nil {
		return nil
	}
	return l.s.Items()
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(cfg.LogOptions())
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config not loaded, using defaults", slog.Any("err", cfgErr))
	}
	live := &liveSession{}
	defer crash.Recover(live)

	args := os.Args
	l.Debug("start", slog.Int("args", len(args)))
	if len(args) < 2 {
		usage(os.Stdout)
		return
	}
	var err error
	switch args[1] {
	case "version", "--version", "-v":
		fmt.Println("Scrapbook")
		fmt.Println(version.String())
		return
	case "replay":
		err = runReplay(cfg, args[2:], live, os.Stdout)
	case "catalog":
		path := cfg.Catalog.Path
		if len(args) >= 3 {
			path = args[2]
		}
		var cat *catalog.Catalog
		if cat, err = catalog.LoadFile(path); err == nil {
			fmt.Println(catalogSummary(cat))
		}
	case "config":
		fmt.Println(configSummary(cfg))
	case "ui":
		var cat *catalog.Catalog
		if cat, err = catalog.LoadFile(cfg.Catalog.Path); err == nil {
			err = ui.Run(ui.Options{
				Catalog:       cat,
				Width:         cfg.Canvas.Width,
				Height:        cfg.Canvas.Height,
				StickerMargin: cfg.Canvas.StickerMargin,
			})
		}
	default:
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		l.Error("command failed", slog.String("cmd", args[1]), slog.Any("err", err))
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

type replayFlags struct {
	png, svg, pdf, zip string
	preset, out        string
	scale              float64
}

func runReplay(cfg config.AppConfig, args []string, live *liveSession, stdout io.Writer) error {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	var f replayFlags
	fs.StringVar(&f.png, "png", "", "write the final frame as PNG")
	fs.StringVar(&f.svg, "svg", "", "write the final frame as SVG")
	fs.StringVar(&f.pdf, "pdf", "", "write the final frame as PDF")
	fs.StringVar(&f.zip, "zip", "", "write a bundle (PNG, SVG, items, manifest)")
	fs.StringVar(&f.preset, "preset", "", "export preset: web or print")
	fs.StringVar(&f.out, "out", "out", "output directory for -preset")
	fs.Float64Var(&f.scale, "scale", 1, "PNG pixel multiplier")
	// allow flags after the script path
	var script string
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		script, args = args[0], args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if script == "" && fs.NArg() > 0 {
		script = fs.Arg(0)
	}
	if script == "" {
		return fmt.Errorf("replay requires <script.yaml>")
	}

	sc, err := replay.LoadFile(script)
	if err != nil {
		return err
	}
	cat, err := catalog.LoadFile(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	opts := []session.Option{
		session.WithBounds(cfg.Canvas.Width, cfg.Canvas.Height),
		session.WithStickerMargin(cfg.Canvas.StickerMargin),
	}
	sess := session.New(cat, append(opts, sc.SessionOptions()...)...)
	live.s = sess

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := replay.Run(ctx, sc, sess)
	if err != nil {
		return err
	}

	fr := sess.Frame()
	fmt.Fprintln(stdout, itemsTable(fr.Items))
	fmt.Fprintf(stdout, "%d steps, %d created, %d on canvas\n", res.Steps, len(res.Created), len(fr.Items))

	w, h := sess.Bounds()
	page := export.Options{Width: w, Height: h, Scale: f.scale}
	for _, out := range []string{f.png, f.svg, f.pdf, f.zip} {
		if out == "" {
			continue
		}
		if err := export.File(out, fr.Items, fr.Scene, page); err != nil {
			return err
		}
		fmt.Fprintln(stdout, "wrote", out)
	}
	if f.preset != "" {
		name := strings.TrimSuffix(filepath.Base(script), filepath.Ext(script))
		page.Scale = 0
		written, err := export.BatchExport(fr.Items, fr.Scene, export.BatchOptions{
			Preset: export.PresetName(f.preset),
			OutDir: f.out,
			Name:   name,
			Page:   page,
		})
		for _, p := range written {
			fmt.Fprintln(stdout, "wrote", p)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
