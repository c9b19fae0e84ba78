// Package theme holds the day and night palettes shared by the window
// and terminal renderers.
package theme

import (
	"fmt"
	"image/color"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Token names a themed colour role.
type Token uint8

const (
	None Token = iota // transparent: the sky shows through
	Text
	Heading
	Title
	Muted
	Accent
	Panel
	Border
	User
	Bot
	Error
	Success
	Cursor
	tokenCount
)

// Theme is one palette.
type Theme struct {
	Name      string
	SkyTop    color.RGBA
	SkyBottom color.RGBA
	Flat      bool // day: a single flat background instead of a gradient
	// StarAlpha scales star and comet glow; day hides them entirely.
	StarAlpha float64
	tokens    [tokenCount]color.RGBA
}

// Color returns the colour for a token. None is fully transparent.
func (t *Theme) Color(tok Token) color.RGBA {
	if tok >= tokenCount {
		return color.RGBA{}
	}
	return t.tokens[tok]
}

var night = Theme{
	Name:      "night",
	SkyTop:    color.RGBA{4, 6, 20, 255},
	SkyBottom: color.RGBA{18, 22, 52, 255},
	StarAlpha: 1,
	tokens: [tokenCount]color.RGBA{
		None:    {},
		Text:    {203, 213, 225, 255},
		Heading: {125, 211, 252, 255},
		Title:   {255, 255, 255, 255},
		Muted:   {100, 116, 139, 255},
		Accent:  {167, 139, 250, 255},
		Panel:   {15, 23, 42, 220},
		Border:  {51, 65, 85, 255},
		User:    {56, 189, 248, 255},
		Bot:     {226, 232, 240, 255},
		Error:   {248, 113, 113, 255},
		Success: {74, 222, 128, 255},
		Cursor:  {226, 232, 240, 255},
	},
}

var day = Theme{
	Name:      "day",
	SkyTop:    color.RGBA{241, 245, 249, 255},
	SkyBottom: color.RGBA{241, 245, 249, 255},
	Flat:      true,
	StarAlpha: 0,
	tokens: [tokenCount]color.RGBA{
		None:    {},
		Text:    {30, 41, 59, 255},
		Heading: {3, 105, 161, 255},
		Title:   {15, 23, 42, 255},
		Muted:   {100, 116, 139, 255},
		Accent:  {109, 40, 217, 255},
		Panel:   {230, 230, 230, 230}, // premultiplied white
		Border:  {203, 213, 225, 255},
		User:    {2, 132, 199, 255},
		Bot:     {30, 41, 59, 255},
		Error:   {185, 28, 28, 255},
		Success: {21, 128, 61, 255},
		Cursor:  {15, 23, 42, 255},
	},
}

// Night returns the night palette.
func Night() *Theme { t := night; return &t }

// Day returns the day palette.
func Day() *Theme { t := day; return &t }

// For picks the palette for the daybreak flag.
func For(daybreak bool) *Theme {
	if daybreak {
		return Day()
	}
	return Night()
}

// Sky returns the background colour at vertical fraction t in [0, 1].
func (t *Theme) Sky(f float64) color.RGBA {
	if t.Flat {
		return t.SkyTop
	}
	return Lerp(t.SkyTop, t.SkyBottom, f)
}

// Hue converts a hue in degrees plus saturation and lightness into an
// opaque colour.
func Hue(h, s, l float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.RGBA{r, g, b, 255}
}

// Star returns a star colour for its hue, depth and twinkle. Nearer
// stars are brighter; twinkle modulates lightness.
func Star(hue, depth, twinkle float64) color.RGBA {
	l := 0.55 + 0.3*depth*(0.6+0.4*twinkle)
	return Hue(hue, 0.6, math.Min(l, 0.95))
}

// Lerp blends a into b by t in [0, 1] in Lab space.
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = math.Max(0, math.Min(1, t))
	ca, _ := colorful.MakeColor(opaque(a))
	cb, _ := colorful.MakeColor(opaque(b))
	r, g, bl := ca.BlendLab(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.RGBA{r, g, bl, uint8(math.Round(alpha))}
}

// Shade scales lightness by f (f < 1 darkens, f > 1 lightens).
func Shade(c color.RGBA, f float64) color.RGBA {
	cc, _ := colorful.MakeColor(opaque(c))
	h, s, l := cc.Hsl()
	l = math.Max(0, math.Min(1, l*f))
	r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
	return color.RGBA{r, g, b, c.A}
}

// Hex formats c as #rrggbb.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// opaque drops alpha; colorful un-premultiplies otherwise.
func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}
