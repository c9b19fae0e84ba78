package sky

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/mlange-42/ark/ecs"
)

// Frame is the nominal frame length. Per-frame constants (velocities,
// damping, decay) are expressed per nominal frame and scaled by dt/Frame.
const Frame = time.Second / 60

// maxFrames caps a single step so a backgrounded window does not make
// everything jump on return.
const maxFrames = 2.0

// Config controls scene population.
type Config struct {
	Seed     int64
	Stars    int
	Planets  int
	Galaxies int
	Damping  float64 // star velocity multiplier per nominal frame
}

// DefaultConfig returns the population used by the site.
func DefaultConfig() Config {
	return Config{
		Seed:     1,
		Stars:    220,
		Planets:  4,
		Galaxies: 2,
		Damping:  0.994,
	}
}

// Scene is the night-sky simulation. It owns every animated entity for
// the lifetime of the mounted view. Stars and comets live in an ECS
// world; planets, galaxies and the sprite are plain slices since there
// are only a handful of them.
type Scene struct {
	cfg  Config
	w, h float64

	world       *ecs.World
	starMap     *ecs.Map3[Position, Velocity, Glow]
	cometMap    *ecs.Map2[Position, Tail]
	starFilter  *ecs.Filter3[Position, Velocity, Glow]
	cometFilter *ecs.Filter2[Position, Tail]
	nStars      int
	nComets     int
	retired     int
	dead        []ecs.Entity

	planets  []Planet
	galaxies []Galaxy
	sprite   Sprite

	daybreak  bool
	populated bool
	elapsed   time.Duration

	rng     *rand.Rand // population, comets, pointer fallbacks
	sampler *rand.Rand // galaxy re-sampling, kept apart so visuals never shift comet sequences
}

// New creates a scene for a w×h surface. A zero-sized surface is valid:
// the scene stays empty and skips frames until Resize gives it a size.
func New(cfg Config, w, h float64) *Scene {
	if cfg.Damping <= 0 || cfg.Damping > 1 {
		cfg.Damping = DefaultConfig().Damping
	}
	world := ecs.NewWorld(1024)
	s := &Scene{
		cfg:         cfg,
		world:       world,
		starMap:     ecs.NewMap3[Position, Velocity, Glow](world),
		cometMap:    ecs.NewMap2[Position, Tail](world),
		starFilter:  ecs.NewFilter3[Position, Velocity, Glow](world),
		cometFilter: ecs.NewFilter2[Position, Tail](world),
		rng:         rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed>>16|1))),
		sampler:     rand.New(rand.NewPCG(uint64(cfg.Seed), uint64(cfg.Seed>>16|5))),
	}
	s.Resize(w, h)
	return s
}

// Ready reports whether the drawing surface has a usable size.
func (s *Scene) Ready() bool { return s.w > 0 && s.h > 0 }

// Size returns the current surface size.
func (s *Scene) Size() (w, h float64) { return s.w, s.h }

// Elapsed returns the simulated time accumulated by Step.
func (s *Scene) Elapsed() time.Duration { return s.elapsed }

// Resize re-derives the drawable area. Stars and the sprite are pulled
// back inside the new bounds and galaxy centers keep their relative
// placement. The first usable size populates the scene.
func (s *Scene) Resize(w, h float64) {
	if w <= 0 || h <= 0 {
		s.w, s.h = 0, 0
		return
	}
	oldW, oldH := s.w, s.h
	s.w, s.h = w, h

	if !s.populated {
		s.populate()
		return
	}

	q := s.starFilter.Query()
	for q.Next() {
		p, _, _ := q.Get()
		p.X = clamp(p.X, 0, w)
		p.Y = clamp(p.Y, 0, h)
	}
	if oldW > 0 && oldH > 0 {
		for i := range s.galaxies {
			s.galaxies[i].X *= w / oldW
			s.galaxies[i].Y *= h / oldH
		}
	}
	s.sprite.confine(w, h)
}

func (s *Scene) populate() {
	s.populated = true
	s.AddStars(s.cfg.Stars)

	minDim := math.Min(s.w, s.h)
	for i := 0; i < s.cfg.Planets; i++ {
		s.planets = append(s.planets, newPlanet(s.rng, i, minDim))
	}
	for i := 0; i < s.cfg.Galaxies; i++ {
		s.galaxies = append(s.galaxies, newGalaxy(s.rng, s.w, s.h))
	}
	s.sprite = newSprite(s.rng, s.w, s.h)
}

// Step advances the scene by dt of real time. dt is clamped to
// [0, 2 nominal frames]. It returns false when the surface is not
// available; the caller simply tries again next frame.
func (s *Scene) Step(dt time.Duration) bool {
	if !s.Ready() {
		return false
	}
	f := frames(dt)
	if !s.daybreak {
		s.stepStars(f)
		s.stepComets(f)
	}
	for i := range s.planets {
		s.planets[i].step(f)
	}
	for i := range s.galaxies {
		s.galaxies[i].step(f)
	}
	s.sprite.step(f, s.w, s.h)
	s.elapsed += time.Duration(f * float64(Frame))
	return true
}

// frames converts dt into a clamped count of nominal frames.
func frames(dt time.Duration) float64 {
	f := float64(dt) / float64(Frame)
	return clamp(f, 0, maxFrames)
}

// Daybreak reports whether the day theme is active.
func (s *Scene) Daybreak() bool { return s.daybreak }

// SetDaybreak switches the theme. While daybreak is on, stars and comets
// are frozen and no comets are spawned; entering daybreak drops the
// comets in flight. Planets, galaxies and the sprite keep animating and
// no other state is reset.
func (s *Scene) SetDaybreak(on bool) {
	if on && !s.daybreak {
		s.clearComets()
	}
	s.daybreak = on
}

// Clear removes every star and comet.
func (s *Scene) Clear() {
	s.clearComets()
	s.dead = s.dead[:0]
	q := s.starFilter.Query()
	for q.Next() {
		s.dead = append(s.dead, q.Entity())
	}
	for _, e := range s.dead {
		s.world.RemoveEntity(e)
	}
	s.nStars = 0
	s.dead = s.dead[:0]
}

// Planets returns the planets. The slice is owned by the scene.
func (s *Scene) Planets() []Planet { return s.planets }

// Galaxies returns the galaxies. The slice is owned by the scene.
func (s *Scene) Galaxies() []Galaxy { return s.galaxies }

// Sprite returns the bouncing background sprite.
func (s *Scene) Sprite() Sprite { return s.sprite }

// SampleGalaxy re-samples galaxy i into buf for drawing.
func (s *Scene) SampleGalaxy(i int, buf []Particle) []Particle {
	return s.galaxies[i].Sample(s.sampler, buf)
}

// OrbitCenter is the point planets orbit around.
func (s *Scene) OrbitCenter() (x, y float64) { return s.w / 2, s.h / 2 }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
