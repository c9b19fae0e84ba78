package sky

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepel_ZeroDistanceIsGuarded(t *testing.T) {
	s := emptyScene(800, 600)
	s.AddStar(Star{X: 100, Y: 100, Glow: Glow{Depth: 1}})

	var n int
	assert.NotPanics(t, func() { n = s.Repel(100, 100) })
	assert.Equal(t, 1, n)

	st := s.Stars()[0]
	assert.Greater(t, st.Speed(), 0.0)
	assert.False(t, math.IsNaN(st.VX))
	assert.False(t, math.IsNaN(st.VY))
}

func TestRepel_ImpulseFallsOffWithDistance(t *testing.T) {
	s := emptyScene(800, 600)
	s.AddStar(Star{X: 370, Y: 300, Glow: Glow{Depth: 1}}) // 70 to the right
	s.AddStar(Star{X: 300, Y: 300 - 35, Glow: Glow{Depth: 1}})
	s.AddStar(Star{X: 600, Y: 300, Glow: Glow{Depth: 1}}) // out of reach

	assert.Equal(t, 2, s.Repel(300, 300))

	stars := s.Stars()
	// (140-70)/140*2 = 1, pointing away (+x)
	assert.InDelta(t, 1.0, stars[0].VX, 1e-12)
	assert.InDelta(t, 0.0, stars[0].VY, 1e-12)
	// (140-35)/140*2 = 1.5, pointing away (-y)
	assert.InDelta(t, 0.0, stars[1].VX, 1e-12)
	assert.InDelta(t, -1.5, stars[1].VY, 1e-12)
	// untouched
	assert.Zero(t, stars[2].Speed())
}

func TestRepel_OneShotThenDamped(t *testing.T) {
	s := emptyScene(800, 600)
	s.AddStar(Star{X: 400, Y: 300, Glow: Glow{Depth: 1}})
	s.Repel(390, 300)
	kicked := s.Stars()[0].Speed()

	for i := 0; i < 300; i++ {
		s.Step(Frame)
	}
	assert.Less(t, s.Stars()[0].Speed(), kicked*0.2)
}

func TestRepel_AtEdgeOfRadius(t *testing.T) {
	s := emptyScene(800, 600)
	s.AddStar(Star{X: 300 + RepelRadius, Y: 300, Glow: Glow{Depth: 1}})
	s.AddStar(Star{X: 300, Y: 300 - RepelRadius, Glow: Glow{Depth: 1}})
	s.AddStar(Star{X: 300 + RepelRadius - 1, Y: 300, Glow: Glow{Depth: 1}})

	assert.Equal(t, 1, s.Repel(300, 300))
	stars := s.Stars()
	assert.Zero(t, stars[0].Speed())
	assert.Zero(t, stars[1].Speed())
	assert.InDelta(t, RepelStrength/RepelRadius, stars[2].VX, 1e-12)
}

func TestToLocal(t *testing.T) {
	// A 1600x1200 surface shown in an 800x600 box at (10, 20)
	x, y, ok := ToLocal(410, 320, Rect{X: 10, Y: 20, W: 800, H: 600}, 1600, 1200)
	assert.True(t, ok)
	assert.Equal(t, 800.0, x)
	assert.Equal(t, 600.0, y)

	_, _, ok = ToLocal(1, 1, Rect{}, 100, 100)
	assert.False(t, ok)
}
