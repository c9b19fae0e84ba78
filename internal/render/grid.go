package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nightsky-folio/nightsky/internal/overlay"
	"github.com/nightsky-folio/nightsky/internal/theme"
)

// GridRenderer draws an overlay buffer to an Ebitengine screen.
type GridRenderer struct {
	Atlas *FontAtlas
	CellW float64
	CellH float64
	pixel *ebiten.Image // 1x1 white pixel for drawing backgrounds
}

// NewGridRenderer creates a renderer with the given atlas and cell dimensions.
func NewGridRenderer(atlas *FontAtlas, cellW, cellH float64) *GridRenderer {
	return &GridRenderer{
		Atlas: atlas,
		CellW: cellW,
		CellH: cellH,
		pixel: whitePixel(),
	}
}

// Draw renders buf with its top edge at offsetY pixels.
func (r *GridRenderer) Draw(screen *ebiten.Image, buf *overlay.Buffer, th *theme.Theme, offsetY float64) {
	scaleX := r.CellW / GlyphWidth
	scaleY := r.CellH / GlyphHeight

	var op ebiten.DrawImageOptions
	for y := 0; y < buf.Rows; y++ {
		py := float64(y)*r.CellH + offsetY
		for x := 0; x < buf.Cols; x++ {
			cell := buf.Cells[y*buf.Cols+x]
			px := float64(x) * r.CellW

			if cell.BG != theme.None {
				op = ebiten.DrawImageOptions{}
				op.GeoM.Scale(r.CellW, r.CellH)
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(th.Color(cell.BG))
				screen.DrawImage(r.pixel, &op)
			}

			if cell.Rune != ' ' && cell.Rune != 0 {
				op = ebiten.DrawImageOptions{}
				op.GeoM.Scale(scaleX, scaleY)
				op.GeoM.Translate(px, py)
				op.ColorScale.ScaleWithColor(th.Color(cell.FG))
				screen.DrawImage(r.Atlas.Glyph(cell.Rune), &op)
			}
		}
	}
}

func whitePixel() *ebiten.Image {
	img := ebiten.NewImage(1, 1)
	img.Fill(color.White)
	return img
}
