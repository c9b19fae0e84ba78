// Package overlay lays out the page text, chat panel, contact form and
// key help as a grid of character cells. Both renderers draw the same
// buffer on top of the sky.
package overlay

import "github.com/nightsky-folio/nightsky/internal/theme"

// Box-drawing runes used for panel borders.
const (
	BoxH  = '─'
	BoxV  = '│'
	BoxTL = '┌'
	BoxTR = '┐'
	BoxBL = '└'
	BoxBR = '┘'
	Block = '█' // text cursor
	Dot   = '•'
)

// Cell is a single character cell. BG None leaves the sky visible.
type Cell struct {
	Rune rune
	FG   theme.Token
	BG   theme.Token
}

var blank = Cell{Rune: ' ', FG: theme.Text, BG: theme.None}

// Buffer is a 2D grid of character cells.
type Buffer struct {
	Cols  int
	Rows  int
	Cells []Cell
}

// NewBuffer creates a buffer filled with blank, transparent cells.
func NewBuffer(cols, rows int) *Buffer {
	b := &Buffer{}
	b.Resize(cols, rows)
	return b
}

// Resize changes the grid size and clears it.
func (b *Buffer) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	b.Cols, b.Rows = cols, rows
	if cap(b.Cells) >= cols*rows {
		b.Cells = b.Cells[:cols*rows]
	} else {
		b.Cells = make([]Cell, cols*rows)
	}
	b.Clear()
}

// Set writes a single cell at (x, y). Out-of-bounds writes are ignored.
func (b *Buffer) Set(x, y int, r rune, fg, bg theme.Token) {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		b.Cells[y*b.Cols+x] = Cell{Rune: r, FG: fg, BG: bg}
	}
}

// Get reads a single cell at (x, y). Out-of-bounds reads return a blank cell.
func (b *Buffer) Get(x, y int) Cell {
	if x >= 0 && x < b.Cols && y >= 0 && y < b.Rows {
		return b.Cells[y*b.Cols+x]
	}
	return blank
}

// Clear resets all cells to transparent blanks.
func (b *Buffer) Clear() {
	for i := range b.Cells {
		b.Cells[i] = blank
	}
}

// WriteString writes s starting at (x, y), one rune per cell, and
// returns the column after the last rune written.
func (b *Buffer) WriteString(x, y int, s string, fg, bg theme.Token) int {
	for _, r := range s {
		b.Set(x, y, r, fg, bg)
		x++
	}
	return x
}

// Row returns the text of row y with trailing blanks trimmed.
func (b *Buffer) Row(y int) string {
	if y < 0 || y >= b.Rows {
		return ""
	}
	rs := make([]rune, b.Cols)
	end := 0
	for x := 0; x < b.Cols; x++ {
		rs[x] = b.Cells[y*b.Cols+x].Rune
		if rs[x] != ' ' && rs[x] != 0 {
			end = x + 1
		}
	}
	return string(rs[:end])
}

// Fill paints a w×h rectangle with r.
func (b *Buffer) Fill(x, y, w, h int, r rune, fg, bg theme.Token) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			b.Set(xx, yy, r, fg, bg)
		}
	}
}

// Box draws a bordered panel with an optional title and fills the inside
// with the panel background.
func (b *Buffer) Box(x, y, w, h int, title string) {
	if w < 2 || h < 2 {
		return
	}
	b.Fill(x+1, y+1, w-2, h-2, ' ', theme.Text, theme.Panel)
	for xx := x + 1; xx < x+w-1; xx++ {
		b.Set(xx, y, BoxH, theme.Border, theme.Panel)
		b.Set(xx, y+h-1, BoxH, theme.Border, theme.Panel)
	}
	for yy := y + 1; yy < y+h-1; yy++ {
		b.Set(x, yy, BoxV, theme.Border, theme.Panel)
		b.Set(x+w-1, yy, BoxV, theme.Border, theme.Panel)
	}
	b.Set(x, y, BoxTL, theme.Border, theme.Panel)
	b.Set(x+w-1, y, BoxTR, theme.Border, theme.Panel)
	b.Set(x, y+h-1, BoxBL, theme.Border, theme.Panel)
	b.Set(x+w-1, y+h-1, BoxBR, theme.Border, theme.Panel)
	if title != "" && w > 4 {
		t := []rune(" " + title + " ")
		if len(t) > w-2 {
			t = t[:w-2]
		}
		b.WriteString(x+1, y, string(t), theme.Heading, theme.Panel)
	}
}
