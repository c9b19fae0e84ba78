package sky

import "math"

// Pointer repulsion tuning.
const (
	RepelRadius   = 140.0
	RepelStrength = 2.0
)

// Rect is the on-screen placement of the drawing surface in client
// coordinates.
type Rect struct {
	X, Y, W, H float64
}

// ToLocal converts client coordinates into surface-local coordinates for
// a w×h surface displayed at bounds. ok is false when bounds is empty.
func ToLocal(clientX, clientY float64, bounds Rect, w, h float64) (x, y float64, ok bool) {
	if bounds.W <= 0 || bounds.H <= 0 {
		return 0, 0, false
	}
	x = (clientX - bounds.X) * w / bounds.W
	y = (clientY - bounds.Y) * h / bounds.H
	return x, y, true
}

// Repel nudges every star closer than RepelRadius to (x, y) away from it. The
// impulse shrinks linearly with distance and is applied once; damping in
// Step dissipates it. A star sitting exactly on the point is pushed
// straight up. Returns how many stars were nudged.
func (s *Scene) Repel(x, y float64) int {
	if !s.Ready() || s.daybreak {
		return 0
	}
	n := 0
	q := s.starFilter.Query()
	for q.Next() {
		p, v, _ := q.Get()
		dx := p.X - x
		dy := p.Y - y
		dist := math.Hypot(dx, dy)
		if dist >= RepelRadius {
			continue
		}
		nx, ny := 0.0, -1.0
		if dist == 0 {
			dist = 1
		} else {
			nx, ny = dx/dist, dy/dist
		}
		impulse := (RepelRadius - dist) / RepelRadius * RepelStrength
		v.X += nx * impulse
		v.Y += ny * impulse
		n++
	}
	return n
}
