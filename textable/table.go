// Copyright 2025 The histkit Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package textable renders small LaTeX tables, the usual final form of a
// cutflow or yield summary. A Table is assembled row by row or column by
// column and rendered as tabular source, optionally wrapped in its
// \begin{tabular} environment.
package textable

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/franaln/histkit/hist"
	"github.com/franaln/histkit/internal/errcapture"
)

// Align is a column alignment in the tabular environment header.
type Align byte

const (
	Center Align = 'c'
	Left   Align = 'l'
	Right  Align = 'r'
)

// row is either a line of rendered cells or a horizontal rule.
type row struct {
	cells []string
	rule  bool
}

// A Table accumulates rows of cells under named fields. Cells may be
// strings, fmt.Stringers, numbers, or hist.Measurement values; Measurements
// render as math-mode "$mean \pm error$" at the Measurement string
// precision. A Table is not synchronized.
type Table struct {
	fields []string
	aligns []Align
	rows   []row

	// header is dropped when the field names were fixed implicitly by the
	// first row rather than given by the caller.
	header bool
	env    bool
}

// New returns an empty table with the given field names. With no names the
// first AddRow fixes the arity and the rendered table carries no header
// line; columns added through AddColumn always name their field.
func New(fields ...string) *Table {
	t := &Table{
		fields: append([]string(nil), fields...),
		header: true,
	}
	for range t.fields {
		t.aligns = append(t.aligns, Center)
	}
	return t
}

// SetEnvironment selects whether Render wraps the rows in a
// \begin{tabular}{...} environment carrying the column alignments.
func (t *Table) SetEnvironment(wrap bool) { t.env = wrap }

// Len returns the number of content rows added so far, rules excluded.
func (t *Table) Len() int {
	n := 0
	for _, r := range t.rows {
		if !r.rule {
			n++
		}
	}
	return n
}

// AddRow appends one row of cells. The number of cells must match the
// table's fields; when the table has no fields yet, the first row defines
// their count.
func (t *Table) AddRow(cells ...any) error {
	if len(t.fields) > 0 && len(cells) != len(t.fields) {
		return fmt.Errorf("textable: row has %d values, table has %d fields", len(cells), len(t.fields))
	}
	if len(t.fields) == 0 {
		t.header = false
		for i := range cells {
			t.fields = append(t.fields, fmt.Sprintf("Field %d", i+1))
			t.aligns = append(t.aligns, Center)
		}
	}
	t.rows = append(t.rows, row{cells: renderCells(cells)})
	return nil
}

// AddColumn appends a centered column under the given field name. See
// AddColumnAlign.
func (t *Table) AddColumn(name string, cells ...any) error {
	return t.AddColumnAlign(name, Center, cells...)
}

// AddColumnAlign appends a column under the given field name with an
// explicit alignment. The number of cells must match the rows already
// present; on an empty table the column defines the rows.
func (t *Table) AddColumnAlign(name string, align Align, cells ...any) error {
	n := t.Len()
	if n != 0 && len(cells) != n {
		return fmt.Errorf("textable: column %q has %d values, table has %d rows", name, len(cells), n)
	}
	t.fields = append(t.fields, name)
	t.aligns = append(t.aligns, align)

	rendered := renderCells(cells)
	if n == 0 {
		for _, c := range rendered {
			t.rows = append(t.rows, row{cells: []string{c}})
		}
		return nil
	}
	i := 0
	for k := range t.rows {
		if t.rows[k].rule {
			continue
		}
		t.rows[k].cells = append(t.rows[k].cells, rendered[i])
		i++
	}
	return nil
}

// AddLine appends a horizontal rule.
func (t *Table) AddLine() {
	t.rows = append(t.rows, row{rule: true})
}

// Render returns the LaTeX source of the table. A table without rows
// renders as the empty string.
func (t *Table) Render() string {
	if len(t.rows) == 0 {
		return ""
	}

	var lines []string
	if t.env {
		var b strings.Builder
		for _, a := range t.aligns {
			b.WriteByte(byte(a))
		}
		lines = append(lines, `\begin{tabular}{`+b.String()+`}`)
	}
	if t.header {
		lines = append(lines,
			`\hline`,
			strings.Join(t.fields, " & ")+` \\`,
			`\hline`,
		)
	}
	for _, r := range t.rows {
		if r.rule {
			lines = append(lines, `\hline`)
			continue
		}
		lines = append(lines, strings.Join(r.cells, " & ")+` \\`)
	}
	if t.env {
		lines = append(lines, `\end{tabular}`)
	}
	return strings.Join(lines, "\n")
}

// String returns the rendered table.
func (t *Table) String() string { return t.Render() }

// WriteTo writes the rendered table and a trailing newline to w. It
// implements io.WriterTo.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.Render()+"\n")
	return int64(n), err
}

// SaveTex writes the rendered table to the given path, appending the .tex
// extension when missing.
func (t *Table) SaveTex(path string) (err error) {
	if !strings.HasSuffix(path, ".tex") {
		path += ".tex"
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("textable: save %s: %w", path, err)
	}
	defer errcapture.Do(&err, f.Close, "textable: close %s", path)

	if _, err := t.WriteTo(f); err != nil {
		return fmt.Errorf("textable: save %s: %w", path, err)
	}
	return nil
}

func renderCells(cells []any) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = renderCell(c)
	}
	return out
}

// renderCell turns one cell into its LaTeX text. Measurements become
// math-mode mean/error pairs; everything else prints the way fmt would.
func renderCell(cell any) string {
	switch c := cell.(type) {
	case string:
		return c
	case hist.Measurement:
		return `$` + strings.Replace(c.String(), "+-", `\pm`, 1) + `$`
	case fmt.Stringer:
		return c.String()
	default:
		return fmt.Sprint(c)
	}
}
