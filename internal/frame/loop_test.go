package frame

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestStart_DeltaBetweenFrames(t *testing.T) {
	l := NewLoop()
	var dts []time.Duration
	_, err := l.Start("scene", func(_ time.Time, dt time.Duration) { dts = append(dts, dt) })
	require.NoError(t, err)

	l.Tick(epoch)
	l.Tick(epoch.Add(16 * time.Millisecond))
	l.Tick(epoch.Add(50 * time.Millisecond))

	assert.Equal(t, []time.Duration{0, 16 * time.Millisecond, 34 * time.Millisecond}, dts)
}

func TestStart_DuplicateNameRejected(t *testing.T) {
	l := NewLoop()
	h, err := l.Start("scene", func(time.Time, time.Duration) {})
	require.NoError(t, err)

	_, err = l.Start("scene", func(time.Time, time.Duration) {})
	assert.True(t, errors.Is(err, ErrRunning))

	// The name frees up once the first owner cancels.
	h.Cancel()
	_, err = l.Start("scene", func(time.Time, time.Duration) {})
	assert.NoError(t, err)
}

func TestEvery_WallClockIndependentOfFrames(t *testing.T) {
	l := NewLoop()
	fired := 0
	_, err := l.Every("comets", 2200*time.Millisecond, func(time.Time) { fired++ })
	require.NoError(t, err)

	// 60 frames per second for 5 seconds.
	for i := 0; i <= 300; i++ {
		l.Tick(epoch.Add(time.Duration(i) * time.Second / 60))
	}
	assert.Equal(t, 2, fired)

	// One long frame (backgrounded tab) fires once, not a burst.
	l.Tick(epoch.Add(30 * time.Second))
	assert.Equal(t, 3, fired)
}

func TestEvery_RejectsNonPositiveInterval(t *testing.T) {
	_, err := NewLoop().Every("x", 0, func(time.Time) {})
	assert.Error(t, err)
}

func TestAfter_RunsOnce(t *testing.T) {
	l := NewLoop()
	l.Tick(epoch)

	calls := 0
	h := l.After(600*time.Millisecond, func(time.Time) { calls++ })
	assert.True(t, h.Active())

	l.Tick(epoch.Add(300 * time.Millisecond))
	assert.Equal(t, 0, calls)
	l.Tick(epoch.Add(600 * time.Millisecond))
	assert.Equal(t, 1, calls)
	l.Tick(epoch.Add(2 * time.Second))
	assert.Equal(t, 1, calls)
	assert.False(t, h.Active())
	assert.Equal(t, 0, l.Len())
}

func TestAfter_BeforeFirstTick(t *testing.T) {
	l := NewLoop()
	calls := 0
	l.After(100*time.Millisecond, func(time.Time) { calls++ })

	l.Tick(epoch)
	assert.Equal(t, 0, calls)
	l.Tick(epoch.Add(100 * time.Millisecond))
	assert.Equal(t, 1, calls)
}

func TestCancel_StopsTask(t *testing.T) {
	l := NewLoop()
	calls := 0
	h, err := l.Start("scroll", func(time.Time, time.Duration) { calls++ })
	require.NoError(t, err)

	l.Tick(epoch)
	h.Cancel()
	h.Cancel()
	l.Tick(epoch.Add(time.Second))

	assert.Equal(t, 1, calls)
	assert.False(t, l.Running("scroll"))
}

func TestCancel_FromInsideTask(t *testing.T) {
	l := NewLoop()
	calls := 0
	var h *Handle
	h, _ = l.Start("self", func(time.Time, time.Duration) {
		calls++
		h.Cancel()
	})
	l.Tick(epoch)
	l.Tick(epoch.Add(time.Second))
	assert.Equal(t, 1, calls)
}

func TestStop_CancelsEverything(t *testing.T) {
	l := NewLoop()
	calls := 0
	_, _ = l.Start("a", func(time.Time, time.Duration) { calls++ })
	_, _ = l.Every("b", time.Millisecond, func(time.Time) { calls++ })
	l.After(time.Millisecond, func(time.Time) { calls++ })

	l.Stop()
	assert.True(t, l.Stopped())
	assert.Equal(t, 0, l.Len())

	l.Tick(epoch)
	l.Tick(epoch.Add(time.Second))
	assert.Equal(t, 0, calls)
}

func TestNilHandle(t *testing.T) {
	var h *Handle
	assert.NotPanics(t, h.Cancel)
	assert.False(t, h.Active())
}
