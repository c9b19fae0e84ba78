package sky

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// RingThreshold is the planet size from which rings are drawn.
const RingThreshold = 14.0

// Planet circles the orbit center and spins on its axis.
type Planet struct {
	OrbitRadius float64
	Angle       float64 // radians, kept in [0, 2π)
	Speed       float64 // radians per nominal frame
	Size        float64
	Color       color.RGBA
	Spin        float64
	SpinSpeed   float64
	Banded      bool
	Moons       []Moon
}

// Moon circles its parent planet.
type Moon struct {
	OrbitRadius float64
	Angle       float64
	Speed       float64
	Size        float64
}

// Position returns the planet's location around (cx, cy).
func (p Planet) Position(cx, cy float64) (x, y float64) {
	return cx + p.OrbitRadius*math.Cos(p.Angle), cy + p.OrbitRadius*math.Sin(p.Angle)
}

// Ringed reports whether the planet is large enough to carry rings.
func (p Planet) Ringed() bool { return p.Size >= RingThreshold }

// Position returns the moon's location around its parent at (px, py).
// Callers pass the parent's current position, never a cached one.
func (m Moon) Position(px, py float64) (x, y float64) {
	return px + m.OrbitRadius*math.Cos(m.Angle), py + m.OrbitRadius*math.Sin(m.Angle)
}

func (p *Planet) step(f float64) {
	p.Angle = wrapAngle(p.Angle + p.Speed*f)
	p.Spin = wrapAngle(p.Spin + p.SpinSpeed*f)
	for i := range p.Moons {
		m := &p.Moons[i]
		m.Angle = wrapAngle(m.Angle + m.Speed*f)
	}
}

var planetPalette = []color.RGBA{
	{0xe0, 0x9f, 0x6b, 0xff}, // desert
	{0x6b, 0x9b, 0xe0, 0xff}, // ocean
	{0xc9, 0x7b, 0xd6, 0xff}, // nebula violet
	{0x8f, 0xd6, 0x9b, 0xff}, // moss
	{0xe8, 0xd2, 0x8a, 0xff}, // sand giant
}

// newPlanet builds the i-th planet; orbits widen outward with i.
func newPlanet(rng *rand.Rand, i int, minDim float64) Planet {
	p := Planet{
		OrbitRadius: minDim * (0.14 + 0.085*float64(i) + rng.Float64()*0.02),
		Angle:       rng.Float64() * 2 * math.Pi,
		Speed:       (0.0025 + rng.Float64()*0.003) / (1 + 0.6*float64(i)),
		Size:        6 + rng.Float64()*14,
		Color:       planetPalette[rng.IntN(len(planetPalette))],
		SpinSpeed:   0.01 + rng.Float64()*0.02,
		Banded:      rng.IntN(2) == 0,
	}
	moons := rng.IntN(3)
	for j := 0; j < moons; j++ {
		p.Moons = append(p.Moons, Moon{
			OrbitRadius: p.Size + 6 + float64(j)*6 + rng.Float64()*3,
			Angle:       rng.Float64() * 2 * math.Pi,
			Speed:       0.02 + rng.Float64()*0.03,
			Size:        1.2 + rng.Float64()*1.6,
		})
	}
	return p
}

func wrapAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a < 0 {
		a += 2 * math.Pi
	}
	return a
}
