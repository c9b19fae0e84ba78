package input

// Tracker turns polled pointer state into PointerDown, PointerMove and
// PointerUp events. Hosts that only see "is the button held" each frame
// (Ebitengine) and hosts that see raw mouse reports (tcell) share it.
type Tracker struct {
	bus     *Bus
	pressed bool
	x, y    float64
	w, h    float64
}

// NewTracker publishes to bus.
func NewTracker(bus *Bus) *Tracker { return &Tracker{bus: bus} }

// Pointer reports the pointer position and button state. Moves without
// the button held are not published.
func (t *Tracker) Pointer(x, y float64, pressed bool) {
	switch {
	case pressed && !t.pressed:
		t.bus.Publish(Event{Kind: PointerDown, X: x, Y: y})
	case pressed && (x != t.x || y != t.y):
		t.bus.Publish(Event{Kind: PointerMove, X: x, Y: y})
	case !pressed && t.pressed:
		t.bus.Publish(Event{Kind: PointerUp, X: x, Y: y})
	}
	t.pressed = pressed
	t.x, t.y = x, y
}

// Sample reports a polled pointer position, already in surface pixels.
// Ebitengine hands out cursor and touch positions in Layout units, so
// they pass through unscaled. The release is published where the
// pointer was last held.
func (t *Tracker) Sample(x, y int, pressed bool) {
	px, py := float64(x), float64(y)
	if t.pressed && !pressed {
		px, py = t.x, t.y
	}
	t.Pointer(px, py, pressed)
}

// Pressed reports whether the pointer is held.
func (t *Tracker) Pressed() bool { return t.pressed }

// Size publishes Resize when the surface size changes.
func (t *Tracker) Size(w, h float64) {
	if w == t.w && h == t.h {
		return
	}
	t.w, t.h = w, h
	t.bus.Publish(Event{Kind: Resize, W: w, H: h})
}

// Wheel publishes a non-zero scroll delta.
func (t *Tracker) Wheel(dy float64) {
	if dy != 0 {
		t.bus.Publish(Event{Kind: Wheel, DY: dy})
	}
}
