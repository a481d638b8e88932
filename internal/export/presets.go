/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * Licensed under the Apache License, Version 2.0
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"scrapbook/internal/canvas"
	"scrapbook/internal/render"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// BatchOptions controls a multi-format export of one frame.
//
// Path semantics: files are written as <OutDir>/<preset>/<Name>.<ext>.
// An empty Name means "scrapbook".
//
//nolint:revive // keep fields explicit for clarity
type BatchOptions struct {
	Preset  PresetName
	Formats []string // allowed: png, svg, pdf, zip; empty means preset defaults
	OutDir  string
	Name    string
	Page    Options // Scale is overridden by the preset when zero
}

// BatchExport writes the frame in every requested format and returns the
// written paths in order.
func BatchExport(items []canvas.Item, sc render.Scene, opt BatchOptions) ([]string, error) {
	formats := opt.Formats
	name := opt.Name
	if name == "" {
		name = "scrapbook"
	}
	preset := opt.Preset
	switch preset {
	case "":
		preset = PresetWeb
	case PresetWeb, PresetPrint:
	default:
		return nil, fmt.Errorf("unknown preset: %s", preset)
	}
	if len(formats) == 0 {
		formats = presetDefaultFormats(preset)
	}
	page := opt.Page
	if page.Scale <= 0 {
		page.Scale = presetScale(preset)
	}
	base := filepath.Join(opt.OutDir, string(preset))

	var written []string
	for _, f := range formats {
		f = strings.ToLower(strings.TrimSpace(f))
		switch Format(f) {
		case FormatPNG, FormatSVG, FormatPDF, FormatBundle:
		default:
			return written, fmt.Errorf("unknown format: %s", f)
		}
		out := filepath.Join(base, name+"."+f)
		if err := File(out, items, sc, page); err != nil {
			return written, fmt.Errorf("%s preset: %w", preset, err)
		}
		written = append(written, out)
	}
	return written, nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetPrint:
		return []string{"pdf", "png"}
	default:
		return []string{"png", "svg", "zip"}
	}
}

// presetScale is the raster multiplier; print targets roughly 300 dpi from
// a 96 dpi canvas.
func presetScale(p PresetName) float64 {
	if p == PresetPrint {
		return 3
	}
	return 1
}
