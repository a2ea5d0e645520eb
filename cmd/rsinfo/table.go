// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package main

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

// table renders left aligned columns padded by display width.
type table struct {
	header []string
	rows   [][]string

	// style decorates a cell after padding. It may be nil.
	style func(row, col int, cell string) string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	w := make([]int, len(t.header))
	measure := func(cells []string) {
		for i, c := range cells {
			if i >= len(w) {
				break
			}
			w[i] = max(w[i], runewidth.StringWidth(c))
		}
	}
	measure(t.header)
	for _, r := range t.rows {
		measure(r)
	}
	return w
}

// render writes the header and rows. The header row has index -1.
func (t *table) render(out io.Writer) error {
	w := t.widths()
	var b strings.Builder
	line := func(row int, cells []string) {
		for i := range w {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if i < len(w)-1 {
				cell = runewidth.FillRight(cell, w[i])
			}
			if t.style != nil {
				cell = t.style(row, i, cell)
			}
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}
	line(-1, t.header)
	for i, r := range t.rows {
		line(i, r)
	}
	_, err := io.WriteString(out, b.String())
	return err
}

// truncate shortens s to width display cells.
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}
