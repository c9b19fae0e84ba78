package sky

import (
	"math"
	"math/rand/v2"
)

// SpriteAlpha is the opacity the background sprite is drawn with.
const SpriteAlpha = 0.08

// Sprite is the background image bouncing around the surface.
type Sprite struct {
	X, Y   float64
	VX, VY float64 // fixed speed, only the sign flips
	W, H   float64
}

func newSprite(rng *rand.Rand, w, h float64) Sprite {
	size := math.Min(w, h) * 0.35
	sp := Sprite{
		X:  rng.Float64() * math.Max(w-size, 0),
		Y:  rng.Float64() * math.Max(h-size, 0),
		VX: 0.35,
		VY: 0.25,
		W:  size,
		H:  size,
	}
	if rng.IntN(2) == 0 {
		sp.VX = -sp.VX
	}
	return sp
}

// step moves the sprite and bounces its bounding box off the edges.
func (sp *Sprite) step(f, w, h float64) {
	sp.X += sp.VX * f
	sp.Y += sp.VY * f
	maxX := math.Max(w-sp.W, 0)
	maxY := math.Max(h-sp.H, 0)
	if sp.X < 0 {
		sp.X = 0
		sp.VX = math.Abs(sp.VX)
	} else if sp.X > maxX {
		sp.X = maxX
		sp.VX = -math.Abs(sp.VX)
	}
	if sp.Y < 0 {
		sp.Y = 0
		sp.VY = math.Abs(sp.VY)
	} else if sp.Y > maxY {
		sp.Y = maxY
		sp.VY = -math.Abs(sp.VY)
	}
}

func (sp *Sprite) confine(w, h float64) {
	sp.X = clamp(sp.X, 0, math.Max(w-sp.W, 0))
	sp.Y = clamp(sp.Y, 0, math.Max(h-sp.H, 0))
}
