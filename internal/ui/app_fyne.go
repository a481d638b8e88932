//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	model "scrapbook/internal/canvas"
	"scrapbook/internal/catalog"
	"scrapbook/internal/crash"
	"scrapbook/internal/export"
	"scrapbook/internal/interaction"
	applog "scrapbook/internal/log"
	"scrapbook/internal/session"
	"scrapbook/internal/version"
)

// Run opens the scrapbook window and blocks until it is closed.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.Default()
	}
	sopts := []session.Option{session.WithLogger(applog.WithComponent("session"))}
	if opts.Width > 0 && opts.Height > 0 {
		sopts = append(sopts, session.WithBounds(opts.Width, opts.Height))
	}
	if opts.StickerMargin > 0 {
		sopts = append(sopts, session.WithStickerMargin(opts.StickerMargin))
	}
	sess := session.New(cat, sopts...)
	defer crash.Recover(sess)

	fyneApp := app.NewWithID("scrapbook")
	w := fyneApp.NewWindow("Scrapbook")
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1280), 800)
	winH := max(prefs.IntWithFallback("window.height", 800), 600)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))
	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
	})

	status := widget.NewLabel("Ready")
	board := NewScrapCanvas(sess)

	selected := ""
	editor := container.NewVBox()
	var showEditor func(id string)

	// Toolbar: one toggle button per catalog tool.
	toolButtons := map[interaction.Tool]*widget.Button{}
	refreshToolbar := func() {
		active := sess.View().ActiveTool
		for k, b := range toolButtons {
			if k == active {
				b.Importance = widget.HighImportance
			} else {
				b.Importance = widget.MediumImportance
			}
			b.Refresh()
		}
	}
	toolbar := container.NewHBox()
	for _, t := range cat.Tools {
		if !interaction.Placeable(t.Kind) {
			continue
		}
		b := widget.NewButton(strings.TrimSpace(t.Icon+" "+t.Label), func() {
			sess.SelectTool(t.Kind)
			refreshToolbar()
			board.Refresh()
		})
		toolButtons[t.Kind] = b
		toolbar.Add(b)
	}

	// Sticker palette: one tab per set; a glyph click scatters a sticker.
	var tabs []*container.TabItem
	for _, set := range cat.Stickers {
		grid := container.NewGridWrap(fyne.NewSize(44, 44))
		for _, g := range set.Glyphs {
			grid.Add(widget.NewButton(g, func() {
				id := sess.PickSticker(g)
				board.Refresh()
				status.SetText("Placed " + id)
			}))
		}
		tabs = append(tabs, container.NewTabItem(set.Label, grid))
	}
	palette := container.NewAppTabs(tabs...)

	deleteSelected := func() {
		if selected == "" {
			return
		}
		sess.Delete(selected)
		status.SetText("Deleted " + selected)
		showEditor("")
		board.Refresh()
	}

	showEditor = func(id string) {
		selected = id
		editor.RemoveAll()
		it, ok := sess.Item(id)
		if !ok {
			selected = ""
			editor.Add(widget.NewLabel("Click a widget to edit it."))
			editor.Refresh()
			return
		}
		editor.Add(widget.NewLabelWithStyle(it.ID, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}))
		for _, f := range Fields(it.Kind) {
			editor.Add(widget.NewLabel(f.Label))
			editor.Add(fieldControl(f, it, cat, func(p model.Payload) {
				if p == nil {
					return
				}
				sess.Edit(id, p)
				board.Refresh()
			}))
		}
		editor.Add(widget.NewSeparator())
		editor.Add(widget.NewButton("Delete", deleteSelected))
		editor.Refresh()
	}
	showEditor("")

	board.OnSelect = func(id string) {
		if id != selected {
			showEditor(id)
		}
	}
	board.OnChange = func() { refreshToolbar() }
	sess.Subscribe(func(items []model.Item) {
		status.SetText(fmt.Sprintf("%d items", len(items)))
	})

	w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			deleteSelected()
		case fyne.KeyEscape:
			if t := sess.View().ActiveTool; t != interaction.NoTool {
				sess.SelectTool(t)
				refreshToolbar()
				board.Refresh()
			}
		}
	})

	exportItem := func(label string, f export.Format) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() { showExportDialog(w, sess, f, opts.ExportDir, status, l) })
	}
	fileMenu := fyne.NewMenu("File",
		exportItem("Export PNG…", export.FormatPNG),
		exportItem("Export SVG…", export.FormatSVG),
		exportItem("Export PDF…", export.FormatPDF),
		exportItem("Export Bundle…", export.FormatBundle),
	)
	helpMenu := fyne.NewMenu("Help", fyne.NewMenuItem("About", func() {
		dialog.ShowInformation("About", "Scrapbook "+version.String(), w)
	}))
	w.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))

	side := container.NewVSplit(container.NewVScroll(editor), palette)
	side.Offset = 0.55
	split := container.NewHSplit(board, side)
	split.Offset = 0.75
	w.SetContent(container.NewBorder(toolbar, status, nil, nil, split))
	w.ShowAndRun()
	l.Info("UI closed", slog.Int("items", len(sess.Items())))
	return nil
}

// fieldControl builds the input for one editor row; apply receives the payload patch.
func fieldControl(f Field, it model.Item, cat *catalog.Catalog, apply func(model.Payload)) fyne.CanvasObject {
	val := f.Value(it.Payload, cat)
	switch f.Control {
	case ControlMultiline:
		e := widget.NewMultiLineEntry()
		e.Wrapping = fyne.TextWrapWord
		e.SetText(val)
		e.OnChanged = func(s string) { apply(f.Patch(s)) }
		return e
	case ControlSelect:
		sel := widget.NewSelect(f.Choices(cat), nil)
		sel.SetSelected(val)
		sel.OnChanged = func(s string) { apply(f.Patch(s)) }
		return sel
	case ControlSlider:
		s := widget.NewSlider(f.Min, f.Max)
		s.Step = 1
		s.Value = it.Payload.Float(f.Key, f.Min)
		label := widget.NewLabel(val)
		s.OnChanged = func(v float64) {
			p := f.Patch(fmt.Sprint(v))
			label.SetText(fmt.Sprint(p[f.Key]))
			apply(p)
		}
		return container.NewBorder(nil, nil, nil, label, s)
	}
	e := widget.NewEntry()
	e.SetText(val)
	e.OnChanged = func(s string) { apply(f.Patch(s)) }
	return e
}

func showExportDialog(w fyne.Window, sess *session.Session, f export.Format, dir string, status *widget.Label, l *slog.Logger) {
	d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if uc == nil {
			return
		}
		fr := sess.Frame()
		bw, bh := sess.Bounds()
		opt := export.Options{Width: bw, Height: bh}
		if f == export.FormatBundle {
			err = export.Bundle(uc, fr.Items, fr.Scene, opt)
		} else {
			err = export.Write(uc, f, fr.Scene, opt)
		}
		if cerr := uc.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			l.Error("export failed", slog.String("format", string(f)), slog.Any("err", err))
			dialog.ShowError(err, w)
			return
		}
		l.Info("exported", slog.String("format", string(f)), slog.String("uri", uc.URI().String()))
		status.SetText("Exported " + uc.URI().Name())
	}, w)
	d.SetFileName("scrapbook." + string(f))
	if dir != "" {
		if lister, err := fstorage.ListerForURI(fstorage.NewFileURI(dir)); err == nil {
			d.SetLocation(lister)
		}
	}
	d.Show()
}
