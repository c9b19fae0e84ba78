package theme

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	assert.Equal(t, "day", For(true).Name)
	assert.Equal(t, "night", For(false).Name)
	assert.True(t, Day().Flat)
	assert.Zero(t, Day().StarAlpha)
	assert.Equal(t, color.RGBA{}, Night().Color(None))
	assert.Equal(t, color.RGBA{}, Night().Color(tokenCount))
}

func TestThemesAreCopies(t *testing.T) {
	a := Night()
	a.SkyTop = color.RGBA{1, 2, 3, 255}
	assert.NotEqual(t, a.SkyTop, Night().SkyTop)
}

func TestSky(t *testing.T) {
	n := Night()
	assert.Equal(t, n.SkyTop, n.Sky(0))
	assert.Equal(t, n.SkyBottom, n.Sky(1))
	assert.Equal(t, n.SkyBottom, n.Sky(7), "clamped")

	d := Day()
	assert.Equal(t, d.SkyTop, d.Sky(0.5))
}

func TestHue(t *testing.T) {
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, Hue(0, 1, 0.5))
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, Hue(120, 1, 0.5))
	assert.Equal(t, Hue(240, 1, 0.5), Hue(-120, 1, 0.5))
	assert.Equal(t, Hue(30, 1, 0.5), Hue(390, 1, 0.5))
}

func TestStar_NearerIsBrighter(t *testing.T) {
	far := Star(210, 0.3, 1)
	near := Star(210, 1, 1)
	lum := func(c color.RGBA) int { return int(c.R) + int(c.G) + int(c.B) }
	assert.Greater(t, lum(near), lum(far))
}

func TestShade(t *testing.T) {
	c := color.RGBA{100, 150, 200, 255}
	dark := Shade(c, 0.5)
	assert.Less(t, int(dark.R)+int(dark.G)+int(dark.B), 450)
	assert.Equal(t, uint8(255), dark.A)
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, Shade(color.RGBA{200, 200, 200, 255}, 10))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#040614", Hex(Night().SkyTop))
}
