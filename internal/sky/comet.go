package sky

import "github.com/mlange-42/ark/ecs"

// Comet tuning, per nominal frame.
const (
	CometMargin    = 100.0 // how far past the edge a comet may travel before removal
	CometDecay     = 0.008 // life lost per frame
	cometMinSpeed  = 6.0
	cometSpeedVar  = 2.0
	cometSpawnPad  = 80.0
	cometBandRatio = 0.6 // comets cross the upper part of the sky

	burstOppositeChance = 0.70
	burstThirdChance    = 0.35
)

// Tail is the comet component: signed horizontal speed and remaining life.
type Tail struct {
	VX   float64
	Life float64 // 1 at spawn, removed at 0
}

// Comet is a read-only view of a comet entity.
type Comet struct {
	X, Y float64
	VX   float64
	Life float64
}

// Direction returns +1 for left-to-right travel and -1 otherwise.
func (c Comet) Direction() float64 {
	if c.VX < 0 {
		return -1
	}
	return 1
}

// CommitNow launches a single comet in a random direction. It does
// nothing while daybreak is active or before the surface has a size.
func (s *Scene) CommitNow() bool {
	if !s.Ready() || s.daybreak {
		return false
	}
	s.spawnComet(s.randomDir())
	return true
}

// SpawnBurst launches one to three comets: the first in a random
// direction, usually a second one heading the other way and sometimes a
// third in a random direction. Returns how many were launched.
func (s *Scene) SpawnBurst() int {
	if !s.Ready() || s.daybreak {
		return 0
	}
	dir := s.randomDir()
	s.spawnComet(dir)
	n := 1
	if s.rng.Float64() < burstOppositeChance {
		s.spawnComet(-dir)
		n++
	}
	if s.rng.Float64() < burstThirdChance {
		s.spawnComet(s.randomDir())
		n++
	}
	return n
}

// AddComet inserts a comet directly.
func (s *Scene) AddComet(c Comet) {
	s.cometMap.NewEntity(&Position{X: c.X, Y: c.Y}, &Tail{VX: c.VX, Life: c.Life})
	s.nComets++
}

func (s *Scene) spawnComet(dir float64) {
	speed := cometMinSpeed + s.rng.Float64()*cometSpeedVar
	x := -cometSpawnPad
	if dir < 0 {
		x = s.w + cometSpawnPad
	}
	s.AddComet(Comet{
		X:    x,
		Y:    s.rng.Float64() * s.h * cometBandRatio,
		VX:   dir * speed,
		Life: 1,
	})
}

func (s *Scene) randomDir() float64 {
	if s.rng.IntN(2) == 0 {
		return -1
	}
	return 1
}

// CometCount returns the number of comets in flight.
func (s *Scene) CometCount() int { return s.nComets }

// CometsRetired returns how many comets have been removed by Step.
func (s *Scene) CometsRetired() int { return s.retired }

// EachComet calls fn for every comet in flight.
func (s *Scene) EachComet(fn func(Comet)) {
	q := s.cometFilter.Query()
	for q.Next() {
		p, t := q.Get()
		fn(Comet{X: p.X, Y: p.Y, VX: t.VX, Life: t.Life})
	}
}

// Comets returns a snapshot of the comets in flight.
func (s *Scene) Comets() []Comet {
	out := make([]Comet, 0, s.nComets)
	s.EachComet(func(c Comet) { out = append(out, c) })
	return out
}

// stepComets moves comets and retires the spent or departed ones.
// Entities cannot be removed while the query holds the world, so they
// are collected first.
func (s *Scene) stepComets(f float64) {
	s.dead = s.dead[:0]
	q := s.cometFilter.Query()
	for q.Next() {
		p, t := q.Get()
		p.X += t.VX * f
		t.Life -= CometDecay * f
		if t.Life < 0 {
			t.Life = 0
		}
		if t.Life <= 0 || p.X < -CometMargin || p.X > s.w+CometMargin {
			s.dead = append(s.dead, q.Entity())
		}
	}
	s.remove(s.dead)
	s.retired += len(s.dead)
	s.dead = s.dead[:0]
}

func (s *Scene) clearComets() {
	s.dead = s.dead[:0]
	q := s.cometFilter.Query()
	for q.Next() {
		s.dead = append(s.dead, q.Entity())
	}
	s.remove(s.dead)
	s.dead = s.dead[:0]
}

func (s *Scene) remove(entities []ecs.Entity) {
	for _, e := range entities {
		s.world.RemoveEntity(e)
		s.nComets--
	}
}
