package sky

import (
	"math"
	"math/rand/v2"
)

// GalaxySamples is the number of particles drawn per galaxy per frame.
const GalaxySamples = 260

// Galaxy is a procedurally drawn spiral. It has no per-particle state:
// every frame the arms are re-sampled around the current rotation.
type Galaxy struct {
	X, Y     float64
	Rotation float64
	Speed    float64 // radians per nominal frame
	Arms     int
	Spread   float64 // radius of the disc
	Hue      float64
	Tilt     float64 // vertical squash of the disc, 1 = face-on
}

// Particle is one sampled galaxy point.
type Particle struct {
	X, Y  float64
	Alpha float64
	Size  float64
	Hue   float64
}

func (g *Galaxy) step(f float64) {
	g.Rotation = wrapAngle(g.Rotation + g.Speed*f)
}

func newGalaxy(rng *rand.Rand, w, h float64) Galaxy {
	return Galaxy{
		X:        w * (0.15 + rng.Float64()*0.7),
		Y:        h * (0.15 + rng.Float64()*0.7),
		Rotation: rng.Float64() * 2 * math.Pi,
		Speed:    0.0008 + rng.Float64()*0.0012,
		Arms:     2 + rng.IntN(3),
		Spread:   math.Min(w, h) * (0.08 + rng.Float64()*0.07),
		Hue:      200 + rng.Float64()*120,
		Tilt:     0.35 + rng.Float64()*0.35,
	}
}

// Sample fills buf with GalaxySamples particles along the spiral arms and
// returns it. Sample i belongs to arm i mod Arms; arms are 2π/Arms apart
// and wind logarithmically outward. Particles fade with distance from
// the arm's center line and toward the rim.
func (g Galaxy) Sample(rng *rand.Rand, buf []Particle) []Particle {
	buf = buf[:0]
	arms := g.Arms
	if arms < 1 {
		arms = 1
	}
	armStep := 2 * math.Pi / float64(arms)
	maxJitter := g.Spread * 0.16
	sinT, cosT := math.Sincos(g.Rotation)

	for i := 0; i < GalaxySamples; i++ {
		arm := i % arms
		t := rng.Float64() // 0 at the core, 1 at the rim
		r := t * g.Spread
		theta := float64(arm)*armStep + math.Log1p(t*6)*1.7

		jx := (rng.Float64()*2 - 1) * maxJitter * (0.3 + t)
		jy := (rng.Float64()*2 - 1) * maxJitter * (0.3 + t)
		armDist := math.Hypot(jx, jy) / (maxJitter * 1.3 * math.Sqrt2)

		// Disc coordinates, rotated then squashed into perspective
		dx := math.Cos(theta)*r + jx
		dy := math.Sin(theta)*r + jy
		rx := dx*cosT - dy*sinT
		ry := (dx*sinT + dy*cosT) * g.Tilt

		alpha := (1 - clamp(armDist, 0, 1)) * (1 - 0.6*t) * 0.8
		buf = append(buf, Particle{
			X:     g.X + rx,
			Y:     g.Y + ry,
			Alpha: alpha,
			Size:  0.6 + (1-t)*1.2,
			Hue:   g.Hue + (rng.Float64()-0.5)*30,
		})
	}
	return buf
}
