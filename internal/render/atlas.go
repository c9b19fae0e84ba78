package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/nightsky-folio/nightsky/internal/overlay"
)

const (
	GlyphWidth  = 8
	GlyphHeight = 16
	AtlasCols   = 16
	AtlasRows   = 8
)

// extraGlyphs are the non-ASCII runes the overlay uses, stored in the
// otherwise unused control-code slots of the atlas.
var extraGlyphs = []rune{
	overlay.BoxH, overlay.BoxV,
	overlay.BoxTL, overlay.BoxTR, overlay.BoxBL, overlay.BoxBR,
	overlay.Block, overlay.Dot,
}

// boxChars maps box-drawing runes to connection flags: {left, right, top, bottom}.
var boxChars = map[rune][4]bool{
	overlay.BoxH:  {true, true, false, false},
	overlay.BoxV:  {false, false, true, true},
	overlay.BoxTL: {false, true, false, true},
	overlay.BoxTR: {true, false, false, true},
	overlay.BoxBL: {false, true, true, false},
	overlay.BoxBR: {true, false, true, false},
}

// FontAtlas holds the glyph atlas and cached sub-images.
type FontAtlas struct {
	image  *ebiten.Image
	glyphs [AtlasCols * AtlasRows]*ebiten.Image
	index  map[rune]int
}

// NewFontAtlas rasterises the atlas. ASCII characters (32-126) are
// rendered with basicfont.Face7x13; box-drawing, block and bullet glyphs
// are drawn by hand.
func NewFontAtlas() *FontAtlas {
	img := image.NewNRGBA(image.Rect(0, 0, AtlasCols*GlyphWidth, AtlasRows*GlyphHeight))
	face := basicfont.Face7x13
	index := make(map[rune]int, 128)

	for code := 32; code <= 126; code++ {
		cx, cy := cellOrigin(code)
		drawFontGlyph(img, face, cx, cy, rune(code))
		index[rune(code)] = code
	}
	for i, r := range extraGlyphs {
		code := i + 1
		cx, cy := cellOrigin(code)
		switch {
		case r == overlay.Block:
			fillRect(img, cx, cy, GlyphWidth, GlyphHeight-2)
		case r == overlay.Dot:
			fillRect(img, cx+2, cy+6, 4, 4)
		default:
			bc := boxChars[r]
			drawBoxGlyph(img, cx, cy, bc[0], bc[1], bc[2], bc[3])
		}
		index[r] = code
	}

	eimg := ebiten.NewImageFromImage(img)
	a := &FontAtlas{image: eimg, index: index}
	for code := range a.glyphs {
		x, y := cellOrigin(code)
		a.glyphs[code] = eimg.SubImage(image.Rect(x, y, x+GlyphWidth, y+GlyphHeight)).(*ebiten.Image)
	}
	return a
}

func cellOrigin(code int) (x, y int) {
	return (code % AtlasCols) * GlyphWidth, (code / AtlasCols) * GlyphHeight
}

// Glyph returns the sub-image for r, or '?' for runes outside the atlas.
func (a *FontAtlas) Glyph(r rune) *ebiten.Image {
	code, ok := a.index[r]
	if !ok {
		code = '?'
	}
	return a.glyphs[code]
}

// drawFontGlyph renders a single ASCII character into the atlas.
// basicfont.Face7x13 glyphs are 7x13, baseline two rows above the cell bottom.
func drawFontGlyph(img *image.NRGBA, face font.Face, cellX, cellY int, r rune) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(cellX, cellY+GlyphHeight-4),
	}
	d.DrawString(string(r))
}

// drawBoxGlyph draws a single-line box-drawing character, one pixel wide
// and centered in the cell.
func drawBoxGlyph(img *image.NRGBA, cellX, cellY int, left, right, top, bottom bool) {
	w := color.NRGBA{255, 255, 255, 255}
	cx := cellX + GlyphWidth/2
	cy := cellY + GlyphHeight/2

	if left {
		for x := cellX; x <= cx; x++ {
			img.SetNRGBA(x, cy, w)
		}
	}
	if right {
		for x := cx; x < cellX+GlyphWidth; x++ {
			img.SetNRGBA(x, cy, w)
		}
	}
	if top {
		for y := cellY; y <= cy; y++ {
			img.SetNRGBA(cx, y, w)
		}
	}
	if bottom {
		for y := cy; y < cellY+GlyphHeight; y++ {
			img.SetNRGBA(cx, y, w)
		}
	}
}

func fillRect(img *image.NRGBA, x0, y0, w, h int) {
	c := color.NRGBA{255, 255, 255, 255}
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}
