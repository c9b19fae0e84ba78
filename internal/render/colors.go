package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// tint scales cs by c with an extra alpha factor in [0, 1].
func tint(cs *ebiten.ColorScale, c color.RGBA, alpha float64) {
	cs.ScaleWithColor(c)
	cs.ScaleAlpha(float32(alpha))
}

// vertexColor fills the colour of v from c and alpha, premultiplied.
func vertexColor(v *ebiten.Vertex, c color.RGBA, alpha float64) {
	a := float32(alpha)
	v.ColorR = float32(c.R) / 255 * a
	v.ColorG = float32(c.G) / 255 * a
	v.ColorB = float32(c.B) / 255 * a
	v.ColorA = a
}

// textureSize is the edge of the procedural round textures.
const textureSize = 64

// newDisc rasterises a white filled circle with a one-pixel soft edge.
func newDisc() *ebiten.Image {
	return roundTexture(func(d float64) float64 {
		return math.Max(0, math.Min(1, (1-d)*textureSize/2))
	})
}

// newGlow rasterises a white radial falloff for additive halos.
func newGlow() *ebiten.Image {
	return roundTexture(func(d float64) float64 {
		if d >= 1 {
			return 0
		}
		f := 1 - d
		return f * f
	})
}

// newSphere rasterises a lit sphere: bright toward the upper left and
// darkening to the limb.
func newSphere() *ebiten.Image {
	img := image.NewNRGBA(image.Rect(0, 0, textureSize, textureSize))
	r := float64(textureSize) / 2
	lx, ly := -0.35, -0.35
	for y := 0; y < textureSize; y++ {
		for x := 0; x < textureSize; x++ {
			nx := (float64(x) + 0.5 - r) / r
			ny := (float64(y) + 0.5 - r) / r
			d := math.Hypot(nx, ny)
			if d > 1 {
				continue
			}
			edge := math.Min(1, (1-d)*r)
			light := 1 - 0.75*math.Min(1, math.Hypot(nx-lx, ny-ly)/1.35)
			v := uint8(255 * light)
			img.SetNRGBA(x, y, color.NRGBA{v, v, v, uint8(255 * edge)})
		}
	}
	return ebiten.NewImageFromImage(img)
}

func roundTexture(alpha func(d float64) float64) *ebiten.Image {
	img := image.NewNRGBA(image.Rect(0, 0, textureSize, textureSize))
	r := float64(textureSize) / 2
	for y := 0; y < textureSize; y++ {
		for x := 0; x < textureSize; x++ {
			d := math.Hypot(float64(x)+0.5-r, float64(y)+0.5-r) / r
			a := alpha(d)
			if a <= 0 {
				continue
			}
			img.SetNRGBA(x, y, color.NRGBA{255, 255, 255, uint8(255 * a)})
		}
	}
	return ebiten.NewImageFromImage(img)
}
