package scroll

import (
	"math"
	"time"
)

// Default speeds in pixels per second.
const (
	DefaultDaySpeed   = 25.0
	DefaultNightSpeed = 40.0
)

// bottomSlack absorbs rounding when deciding the document end is reached.
const bottomSlack = 0.5

// Driver scrolls the page on its own until the user first presses a
// pointer anywhere, after which only manual scrolling applies. The
// disable is a one-way latch.
type Driver struct {
	DaySpeed   float64
	NightSpeed float64

	offset  float64
	latched bool // pointer-down seen, never auto-scroll again
	paused  bool
	wraps   int
}

// New creates an enabled driver. Non-positive speeds fall back to the
// defaults.
func New(daySpeed, nightSpeed float64) *Driver {
	if daySpeed <= 0 {
		daySpeed = DefaultDaySpeed
	}
	if nightSpeed <= 0 {
		nightSpeed = DefaultNightSpeed
	}
	return &Driver{DaySpeed: daySpeed, NightSpeed: nightSpeed}
}

// Offset returns the vertical scroll offset in pixels.
func (d *Driver) Offset() float64 { return d.offset }

// Enabled reports whether the driver is still scrolling on its own.
func (d *Driver) Enabled() bool { return !d.latched && !d.paused }

// Latched reports whether a pointer-down has permanently stopped the driver.
func (d *Driver) Latched() bool { return d.latched }

// Wraps returns how many times the driver jumped back to the top.
func (d *Driver) Wraps() int { return d.wraps }

// Speed returns the speed for the given theme.
func (d *Driver) Speed(daybreak bool) float64 {
	if daybreak {
		return d.DaySpeed
	}
	return d.NightSpeed
}

// Step advances the offset by speed×dt while enabled. viewport and
// document are the visible and total heights; reaching the bottom wraps
// straight back to the top.
func (d *Driver) Step(dt time.Duration, viewport, document float64, daybreak bool) {
	if !d.Enabled() || dt <= 0 {
		return
	}
	limit := maxOffset(viewport, document)
	if limit <= 0 {
		d.offset = 0
		return
	}
	if d.offset >= limit-bottomSlack {
		d.offset = 0
		d.wraps++
		return
	}
	d.offset = math.Min(d.offset+d.Speed(daybreak)*dt.Seconds(), limit)
}

// PointerDown permanently disables auto-scrolling.
func (d *Driver) PointerDown() { d.latched = true }

// Pause stops auto-scrolling temporarily, e.g. while the chat input has
// focus. It does not touch the latch.
func (d *Driver) Pause() { d.paused = true }

// Resume restarts auto-scrolling after Pause. It cannot undo PointerDown.
func (d *Driver) Resume() { d.paused = false }

// ScrollBy applies a manual scroll, clamped to the document. Always
// allowed, latched or not.
func (d *Driver) ScrollBy(delta, viewport, document float64) {
	d.offset = clamp(d.offset+delta, 0, math.Max(maxOffset(viewport, document), 0))
}

// ScrollTo jumps to an absolute offset, clamped to the document.
func (d *Driver) ScrollTo(offset, viewport, document float64) {
	d.offset = clamp(offset, 0, math.Max(maxOffset(viewport, document), 0))
}

func maxOffset(viewport, document float64) float64 {
	return document - viewport
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
