/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"scrapbook/internal/canvas"
	"scrapbook/internal/catalog"
	"scrapbook/internal/config"
)

var (
	colorRose    = lipgloss.Color("#f43f5e")
	colorSubtext = lipgloss.Color("#6b7280")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorRose).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorRose)
	dimStyle    = lipgloss.NewStyle().Foreground(colorSubtext)
)

const maxCell = 40

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorSubtext)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

// itemsTable lists items in z-order, bottom first.
func itemsTable(items []canvas.Item) string {
	t := newTable("#", "ID", "KIND", "X", "Y", "PAYLOAD")
	for i, it := range items {
		t.Row(strconv.Itoa(i+1), it.ID, string(it.Kind), num(it.Position.X), num(it.Position.Y), payloadString(it.Payload))
	}
	return t.String()
}

func num(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

// payloadString renders a payload as sorted key=value pairs.
func payloadString(p canvas.Payload) string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v := strings.ReplaceAll(fmt.Sprint(p[k]), "\n", " ")
		if r := []rune(v); len(r) > maxCell {
			v = string(r[:maxCell-1]) + "…"
		}
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, " ")
}

// catalogSummary prints every catalog table.
func catalogSummary(c *catalog.Catalog) string {
	var b strings.Builder
	section := func(title string, t *table.Table) {
		b.WriteString(titleStyle.Render(title))
		b.WriteString("\n")
		b.WriteString(t.String())
		b.WriteString("\n")
	}

	tools := newTable("KIND", "LABEL", "ICON", "DESCRIPTION")
	for _, t := range c.Tools {
		tools.Row(string(t.Kind), t.Label, t.Icon, t.Description)
	}
	section("Tools", tools)

	letters := newTable("KEY", "NAME", "PREVIEW", "BACKGROUND", "BORDER", "INK", "PATTERN")
	for _, l := range c.Letters {
		letters.Row(l.Key, l.Name, l.Preview, l.Background, l.Border, l.Ink, l.Pattern)
	}
	section("Letter templates", letters)

	sizes := newTable("FRAME", "KEY", "WIDTH", "PHOTO HEIGHT", "PADDING")
	for _, s := range c.PolaroidSizes {
		sizes.Row("polaroid", s.Key, num(s.Width), num(s.PhotoHeight), num(s.Padding))
	}
	for _, s := range c.PhotoboothSizes {
		sizes.Row("photobooth", s.Key, num(s.Width), num(s.PhotoHeight), num(s.Padding))
	}
	section("Frame sizes", sizes)

	fonts := newTable("CATEGORY", "FONTS")
	for _, cat := range c.FontCategories() {
		var names []string
		for _, f := range c.Fonts {
			if f.Category == cat {
				names = append(names, f.Name)
			}
		}
		fonts.Row(cat, strings.Join(names, ", "))
	}
	section("Fonts", fonts)

	stickers := newTable("SET", "LABEL", "GLYPHS")
	for _, s := range c.Stickers {
		stickers.Row(s.Key, s.Label, strings.Join(s.Glyphs, " "))
	}
	section("Stickers", stickers)

	b.WriteString(dimStyle.Render("Swatches: " + strings.Join(c.Swatches, " ")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Songs: " + strings.Join(c.Songs, ", ")))
	return b.String()
}

// configSummary prints the effective configuration and marks values that
// come from the environment.
func configSummary(cfg config.AppConfig) string {
	path, err := config.ConfigPath()
	if err != nil {
		path = "(unavailable: " + err.Error() + ")"
	}
	t := newTable("KEY", "VALUE", "SOURCE")
	row := func(key, val string) {
		src := "file/default"
		if env, ok := config.EnvOverrideFor(key); ok {
			src = "env " + env
		}
		t.Row(key, val, src)
	}
	row("canvas.width", num(cfg.Canvas.Width))
	row("canvas.height", num(cfg.Canvas.Height))
	row("canvas.sticker_margin", num(cfg.Canvas.StickerMargin))
	row("catalog.path", cfg.Catalog.Path)
	row("logging.level", cfg.Logging.Level)
	row("logging.format", cfg.Logging.Format)
	row("logging.source", strconv.FormatBool(cfg.Logging.Source))
	row("logging.file", cfg.Logging.File)
	return titleStyle.Render("Config: "+path) + "\n" + t.String()
}
