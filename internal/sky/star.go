package sky

import (
	"math"
)

// Position is a point on the drawing surface.
type Position struct {
	X, Y float64
}

// Velocity is expressed in surface units per nominal frame.
type Velocity struct {
	X, Y float64
}

// Glow holds a star's appearance.
type Glow struct {
	Radius       float64
	Hue          float64 // degrees
	Depth        float64 // 0.3 (far) .. 1 (near)
	TwinkleSpeed float64 // radians per nominal frame
	TwinklePhase float64
}

// Star is a read-only view of a star entity.
type Star struct {
	X, Y   float64
	VX, VY float64
	Glow
}

// Twinkle returns the current brightness modulation in [0, 1].
func (s Star) Twinkle() float64 {
	return 0.5 + 0.5*math.Sin(s.TwinklePhase)
}

// Speed returns the velocity magnitude.
func (s Star) Speed() float64 { return math.Hypot(s.VX, s.VY) }

// AddStars spawns n stars at random positions with a slow drift.
func (s *Scene) AddStars(n int) {
	if !s.Ready() {
		return
	}
	for i := 0; i < n; i++ {
		s.AddStar(Star{
			X:  s.rng.Float64() * s.w,
			Y:  s.rng.Float64() * s.h,
			VX: (s.rng.Float64() - 0.5) * 0.3,
			VY: (s.rng.Float64() - 0.5) * 0.3,
			Glow: Glow{
				Radius:       0.4 + s.rng.Float64()*1.4,
				Hue:          190 + s.rng.Float64()*80,
				Depth:        0.3 + s.rng.Float64()*0.7,
				TwinkleSpeed: 0.02 + s.rng.Float64()*0.05,
				TwinklePhase: s.rng.Float64() * 2 * math.Pi,
			},
		})
	}
}

// AddStar inserts a single star. Depth is forced into [0.3, 1].
func (s *Scene) AddStar(st Star) {
	g := st.Glow
	g.Depth = clamp(g.Depth, 0.3, 1)
	s.starMap.NewEntity(
		&Position{X: st.X, Y: st.Y},
		&Velocity{X: st.VX, Y: st.VY},
		&g,
	)
	s.nStars++
}

// StarCount returns the number of live stars.
func (s *Scene) StarCount() int { return s.nStars }

// EachStar calls fn for every star.
func (s *Scene) EachStar(fn func(Star)) {
	q := s.starFilter.Query()
	for q.Next() {
		p, v, g := q.Get()
		fn(Star{X: p.X, Y: p.Y, VX: v.X, VY: v.Y, Glow: *g})
	}
}

// Stars returns a snapshot of every star.
func (s *Scene) Stars() []Star {
	out := make([]Star, 0, s.nStars)
	s.EachStar(func(st Star) { out = append(out, st) })
	return out
}

// stepStars integrates star motion: drift, edge reflection, damping.
func (s *Scene) stepStars(f float64) {
	damp := math.Pow(s.cfg.Damping, f)
	q := s.starFilter.Query()
	for q.Next() {
		p, v, g := q.Get()

		p.X += v.X * f
		p.Y += v.Y * f

		// Reflect off the edges and keep the star on the surface
		if p.X < 0 {
			p.X = 0
			v.X = math.Abs(v.X)
		} else if p.X > s.w {
			p.X = s.w
			v.X = -math.Abs(v.X)
		}
		if p.Y < 0 {
			p.Y = 0
			v.Y = math.Abs(v.Y)
		} else if p.Y > s.h {
			p.Y = s.h
			v.Y = -math.Abs(v.Y)
		}

		v.X *= damp
		v.Y *= damp

		g.TwinklePhase = math.Mod(g.TwinklePhase+g.TwinkleSpeed*f, 2*math.Pi)
	}
}
