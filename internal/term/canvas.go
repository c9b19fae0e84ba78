// Package term draws a mounted view into a tcell screen and turns tcell
// events into the same controls and pointer events the window uses.
package term

import (
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/nightsky-folio/nightsky/internal/overlay"
	"github.com/nightsky-folio/nightsky/internal/theme"
)

// Each terminal cell stands in for a CellW x CellH block of scene
// pixels, so the simulation runs at the same scale as in the window.
const (
	CellW = 8
	CellH = 16
)

// Cell is one composed terminal cell.
type Cell struct {
	Rune rune
	FG   color.RGBA
	BG   color.RGBA
}

// Canvas is the frame being composed before it is flushed to a screen.
type Canvas struct {
	Cols, Rows int
	Cells      []Cell
}

// NewCanvas allocates a cols x rows canvas.
func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the canvas when the size changes.
func (c *Canvas) Resize(cols, rows int) {
	cols, rows = max(cols, 0), max(rows, 0)
	if cols == c.Cols && rows == c.Rows && c.Cells != nil {
		return
	}
	c.Cols, c.Rows = cols, rows
	c.Cells = make([]Cell, cols*rows)
}

// At returns the cell at (x, y), or nil outside the canvas.
func (c *Canvas) At(x, y int) *Cell {
	if x < 0 || y < 0 || x >= c.Cols || y >= c.Rows {
		return nil
	}
	return &c.Cells[y*c.Cols+x]
}

// Put sets the glyph at (x, y), keeping the background.
func (c *Canvas) Put(x, y int, r rune, fg color.RGBA) {
	if cell := c.At(x, y); cell != nil {
		cell.Rune, cell.FG = r, fg
	}
}

// Layer paints an overlay buffer onto the canvas. Blank cells without a
// background let the sky show through; rowOffset shifts the buffer down.
func (c *Canvas) Layer(buf *overlay.Buffer, th *theme.Theme, rowOffset int) {
	for y := 0; y < buf.Rows; y++ {
		for x := 0; x < buf.Cols; x++ {
			src := buf.Get(x, y)
			dst := c.At(x, y+rowOffset)
			if dst == nil {
				continue
			}
			if src.BG != theme.None {
				dst.BG = opaque(th.Color(src.BG))
				dst.Rune = ' '
			}
			if src.Rune != ' ' && src.Rune != 0 {
				dst.Rune = src.Rune
				dst.FG = th.Color(src.FG)
			}
		}
	}
}

// Flush copies the canvas to screen and shows it.
func (c *Canvas) Flush(screen tcell.Screen) {
	for y := 0; y < c.Rows; y++ {
		for x := 0; x < c.Cols; x++ {
			cell := c.Cells[y*c.Cols+x]
			r := cell.Rune
			if r == 0 {
				r = ' '
			}
			style := tcell.StyleDefault.Foreground(rgb(cell.FG)).Background(rgb(cell.BG))
			screen.SetContent(x, y, r, nil, style)
		}
	}
	screen.Show()
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// opaque composites a premultiplied colour over black.
func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}
