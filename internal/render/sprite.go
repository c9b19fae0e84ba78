package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// monogramScale is the pixel upscale applied to basicfont glyphs so the
// sprite stays blocky once stretched over its box.
const monogramScale = 4

// newMonogram renders text in white on a transparent plate with a
// one-glyph margin.
func newMonogram(text string) *ebiten.Image {
	if text == "" {
		text = "*"
	}
	face := basicfont.Face7x13
	adv := font.MeasureString(face, text).Ceil()
	w, h := adv+4, face.Height+4

	small := image.NewNRGBA(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  small,
		Src:  image.NewUniform(color.White),
		Face: face,
		Dot:  fixed.P(2, 2+face.Ascent),
	}
	d.DrawString(text)

	big := image.NewNRGBA(image.Rect(0, 0, w*monogramScale, h*monogramScale))
	for y := 0; y < big.Rect.Dy(); y++ {
		for x := 0; x < big.Rect.Dx(); x++ {
			big.SetNRGBA(x, y, small.NRGBAAt(x/monogramScale, y/monogramScale))
		}
	}
	return ebiten.NewImageFromImage(big)
}
