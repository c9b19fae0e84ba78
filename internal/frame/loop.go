package frame

import (
	"errors"
	"fmt"
	"time"
)

// ErrRunning is returned when a task name is already registered on the loop.
var ErrRunning = errors.New("frame: task already running")

// Task is a per-frame callback. dt is the time since the task's previous
// frame (zero on its first frame).
type Task func(now time.Time, dt time.Duration)

type entryKind uint8

const (
	kindFrame    entryKind = iota // every tick
	kindInterval                  // every interval of wall-clock time
	kindOnce                      // once, after a delay
)

type entry struct {
	id       uint64
	name     string
	kind     entryKind
	task     Task
	interval time.Duration
	due      time.Time
	last     time.Time
	started  bool
	canceled bool
}

// Handle cancels a scheduled entry. Cancel is idempotent.
type Handle struct {
	loop *Loop
	id   uint64
}

// Cancel removes the entry from its loop. Safe to call from inside a task.
func (h *Handle) Cancel() {
	if h == nil || h.loop == nil {
		return
	}
	h.loop.cancel(h.id)
}

// Active reports whether the entry is still scheduled.
func (h *Handle) Active() bool {
	if h == nil || h.loop == nil {
		return false
	}
	e, ok := h.loop.entries[h.id]
	return ok && !e.canceled
}

// Loop is a cooperative scheduler bound to the display refresh signal.
// The host calls Tick once per refresh; the loop is not safe for
// concurrent use and expects every call to come from the host's frame
// goroutine.
type Loop struct {
	entries map[uint64]*entry
	order   []uint64
	names   map[string]uint64
	nextID  uint64
	now     time.Time
	stopped bool
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{
		entries: make(map[uint64]*entry),
		names:   make(map[string]uint64),
	}
}

// Start registers a per-frame task under a unique name. Starting a second
// task with a name that is still running returns ErrRunning.
func (l *Loop) Start(name string, task Task) (*Handle, error) {
	return l.add(&entry{name: name, kind: kindFrame, task: task})
}

// Every registers fn to run each time interval of wall-clock time has
// elapsed, independent of how many frames passed in between.
func (l *Loop) Every(name string, interval time.Duration, fn func(now time.Time)) (*Handle, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("frame: interval for %q must be positive, got %s", name, interval)
	}
	return l.add(&entry{
		name:     name,
		kind:     kindInterval,
		interval: interval,
		task:     func(now time.Time, _ time.Duration) { fn(now) },
	})
}

// After runs fn once on the first tick at or after delay has elapsed.
func (l *Loop) After(delay time.Duration, fn func(now time.Time)) *Handle {
	h, _ := l.add(&entry{
		kind:     kindOnce,
		interval: delay,
		task:     func(now time.Time, _ time.Duration) { fn(now) },
	})
	return h
}

func (l *Loop) add(e *entry) (*Handle, error) {
	if e.name != "" {
		if _, ok := l.names[e.name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrRunning, e.name)
		}
	}
	l.nextID++
	e.id = l.nextID
	if e.kind == kindOnce && !l.now.IsZero() {
		e.due = l.now.Add(e.interval)
		e.started = true
	}
	l.entries[e.id] = e
	l.order = append(l.order, e.id)
	if e.name != "" {
		l.names[e.name] = e.id
	}
	l.stopped = false
	return &Handle{loop: l, id: e.id}, nil
}

func (l *Loop) cancel(id uint64) {
	e, ok := l.entries[id]
	if !ok {
		return
	}
	e.canceled = true
	delete(l.entries, id)
	if e.name != "" && l.names[e.name] == id {
		delete(l.names, e.name)
	}
}

// Tick advances every entry to now. Entries added during a tick first run
// on the next tick.
func (l *Loop) Tick(now time.Time) {
	l.now = now
	ids := append([]uint64(nil), l.order...)
	for _, id := range ids {
		e, ok := l.entries[id]
		if !ok || e.canceled {
			continue
		}
		l.run(e, now)
	}
	l.compact()
}

func (l *Loop) run(e *entry, now time.Time) {
	switch e.kind {
	case kindFrame:
		var dt time.Duration
		if e.started {
			dt = now.Sub(e.last)
		}
		e.started = true
		e.last = now
		e.task(now, dt)

	case kindInterval:
		if !e.started {
			e.started = true
			e.last = now
			return
		}
		if now.Sub(e.last) >= e.interval {
			e.last = now
			e.task(now, e.interval)
		}

	case kindOnce:
		if !e.started {
			e.started = true
			e.due = now.Add(e.interval)
		}
		if !now.Before(e.due) {
			l.cancel(e.id)
			e.task(now, 0)
		}
	}
}

func (l *Loop) compact() {
	kept := l.order[:0]
	for _, id := range l.order {
		if _, ok := l.entries[id]; ok {
			kept = append(kept, id)
		}
	}
	l.order = kept
}

// Len returns the number of scheduled entries.
func (l *Loop) Len() int { return len(l.entries) }

// Running reports whether a named entry is scheduled.
func (l *Loop) Running(name string) bool {
	_, ok := l.names[name]
	return ok
}

// Stop cancels every entry.
func (l *Loop) Stop() {
	for id := range l.entries {
		l.cancel(id)
	}
	l.order = l.order[:0]
	l.stopped = true
}

// Stopped reports whether Stop was called with nothing scheduled since.
func (l *Loop) Stopped() bool { return l.stopped }
