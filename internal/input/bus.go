// Package input routes pointer, wheel and resize events from a host
// window or terminal to the mounted view.
package input

// Kind classifies an event.
type Kind uint8

const (
	PointerDown Kind = iota
	PointerMove      // pointer moved while pressed
	PointerUp
	Wheel
	Resize
	kindCount
)

func (k Kind) String() string {
	switch k {
	case PointerDown:
		return "pointer-down"
	case PointerMove:
		return "pointer-move"
	case PointerUp:
		return "pointer-up"
	case Wheel:
		return "wheel"
	case Resize:
		return "resize"
	}
	return "unknown"
}

// Event carries client coordinates for pointer events, a scroll delta
// for Wheel and the new surface size for Resize.
type Event struct {
	Kind Kind
	X, Y float64
	DY   float64
	W, H float64
}

// Handler receives routed events.
type Handler func(Event)

type subscriber struct {
	id uint64
	fn Handler
}

// Bus dispatches events synchronously, in registration order, on the
// caller's goroutine.
type Bus struct {
	subs   [kindCount][]subscriber
	nextID uint64
}

// NewBus creates an empty bus.
func NewBus() *Bus { return &Bus{} }

// Subscription removes its handler from the bus.
type Subscription struct {
	bus  *Bus
	kind Kind
	id   uint64
}

// Unsubscribe is idempotent and safe on a nil subscription.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	subs := s.bus.subs[s.kind]
	for i, sub := range subs {
		if sub.id == s.id {
			s.bus.subs[s.kind] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	s.bus = nil
}

// Subscribe registers fn for events of kind k.
func (b *Bus) Subscribe(k Kind, fn Handler) *Subscription {
	b.nextID++
	b.subs[k] = append(b.subs[k], subscriber{id: b.nextID, fn: fn})
	return &Subscription{bus: b, kind: k, id: b.nextID}
}

// Publish delivers ev to every current subscriber of its kind.
func (b *Bus) Publish(ev Event) {
	if ev.Kind >= kindCount {
		return
	}
	// Handlers may unsubscribe while being called.
	for _, sub := range b.subs[ev.Kind] {
		sub.fn(ev)
	}
}

// Count returns the number of subscribers for k.
func (b *Bus) Count(k Kind) int {
	if k >= kindCount {
		return 0
	}
	return len(b.subs[k])
}
