// Package site mounts the portfolio page: the night-sky scene, the
// auto-scrolling document, the FAQ chat and the contact form, all driven
// by one frame loop.
package site

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nightsky-folio/nightsky/internal/contact"
	"github.com/nightsky-folio/nightsky/internal/content"
	"github.com/nightsky-folio/nightsky/internal/faq"
	"github.com/nightsky-folio/nightsky/internal/frame"
	"github.com/nightsky-folio/nightsky/internal/input"
	"github.com/nightsky-folio/nightsky/internal/page"
	"github.com/nightsky-folio/nightsky/internal/scroll"
	"github.com/nightsky-folio/nightsky/internal/sky"
)

// Loop entry names.
const (
	TaskScene   = "scene"
	TaskScroll  = "scroll"
	TaskComets  = "comets"
	TaskContact = "contact"
)

// DefaultCometInterval is the wall-clock period between comet bursts.
const DefaultCometInterval = 2200 * time.Millisecond

// ErrClosed is returned by commands on a closed view.
var ErrClosed = errors.New("site: view closed")

// Options tunes the mounted view.
type Options struct {
	Sky           sky.Config
	CometInterval time.Duration
	DaySpeed      float64
	NightSpeed    float64
	ReplyDelay    time.Duration
	Daybreak      bool
}

// Deps are the collaborators a view is mounted onto.
type Deps struct {
	Content *content.Content
	Loop    *frame.Loop
	Bus     *input.Bus
	Contact *contact.Client // nil disables the form
	Logger  *zap.Logger

	// Initial surface size. Zero is allowed; the first Resize event
	// populates the scene.
	Width, Height float64
}

// View is the mounted page. Every method must be called from the
// goroutine that ticks the loop.
type View struct {
	scene  *sky.Scene
	scroll *scroll.Driver
	chat   *faq.Chat
	doc    *page.Document
	form   contact.FormState

	content *content.Content
	loop    *frame.Loop
	client  *contact.Client
	logger  *zap.Logger

	handles []*frame.Handle
	subs    []*input.Subscription
	sending *frame.Handle
	results chan contact.Result
	ctx     context.Context
	cancel  context.CancelFunc

	bounds     sky.Rect
	viewport   float64
	lineHeight float64
	daybreak   bool
	closed     bool
}

// Mount builds the view and registers its loop entries and input
// observers. On error nothing stays registered.
func Mount(deps Deps, opts Options) (*View, error) {
	if deps.Content == nil || deps.Loop == nil || deps.Bus == nil {
		return nil, errors.New("site: content, loop and bus are required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.CometInterval <= 0 {
		opts.CometInterval = DefaultCometInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	v := &View{
		scene:      sky.New(opts.Sky, deps.Width, deps.Height),
		scroll:     scroll.New(opts.DaySpeed, opts.NightSpeed),
		doc:        page.Build(deps.Content, 0),
		content:    deps.Content,
		loop:       deps.Loop,
		client:     deps.Contact,
		logger:     logger,
		results:    make(chan contact.Result, 1),
		ctx:        ctx,
		cancel:     cancel,
		bounds:     sky.Rect{W: deps.Width, H: deps.Height},
		viewport:   deps.Height,
		lineHeight: 1,
	}
	v.chat = faq.NewChat(faq.NewResponder(deps.Content), deps.Loop, opts.ReplyDelay, logger)
	if opts.Daybreak {
		v.SetDaybreak(true)
	}

	if err := v.register(deps.Bus, opts.CometInterval); err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to mount view: %w", err)
	}
	logger.Info("view mounted",
		zap.Float64("width", deps.Width),
		zap.Float64("height", deps.Height),
		zap.Int("stars", v.scene.StarCount()),
	)
	return v, nil
}

func (v *View) register(bus *input.Bus, cometInterval time.Duration) error {
	h, err := v.loop.Start(TaskScene, func(_ time.Time, dt time.Duration) {
		v.scene.Step(dt)
	})
	if err != nil {
		return err
	}
	v.handles = append(v.handles, h)

	h, err = v.loop.Start(TaskScroll, func(_ time.Time, dt time.Duration) {
		v.scroll.Step(dt, v.viewport, v.doc.Height(v.lineHeight), v.daybreak)
	})
	if err != nil {
		return err
	}
	v.handles = append(v.handles, h)

	h, err = v.loop.Every(TaskComets, cometInterval, func(time.Time) {
		v.scene.SpawnBurst()
	})
	if err != nil {
		return err
	}
	v.handles = append(v.handles, h)

	v.subs = append(v.subs,
		bus.Subscribe(input.PointerDown, func(ev input.Event) {
			v.scroll.PointerDown()
			v.repel(ev)
		}),
		bus.Subscribe(input.PointerMove, v.repel),
		bus.Subscribe(input.Wheel, func(ev input.Event) {
			v.scroll.ScrollBy(ev.DY, v.viewport, v.doc.Height(v.lineHeight))
		}),
		bus.Subscribe(input.Resize, func(ev input.Event) {
			v.Resize(ev.W, ev.H)
		}),
	)
	return nil
}

func (v *View) repel(ev input.Event) {
	w, h := v.scene.Size()
	x, y, ok := sky.ToLocal(ev.X, ev.Y, v.bounds, w, h)
	if !ok {
		return
	}
	v.scene.Repel(x, y)
}

// Close cancels every loop entry, drops pending chat replies, abandons
// an in-flight contact request and unsubscribes from input. It is safe
// to call more than once.
func (v *View) Close() {
	if v.closed {
		return
	}
	v.closed = true
	for _, h := range v.handles {
		h.Cancel()
	}
	v.handles = nil
	v.sending.Cancel()
	v.sending = nil
	for _, s := range v.subs {
		s.Unsubscribe()
	}
	v.subs = nil
	v.chat.Close()
	v.cancel()
	v.logger.Info("view closed")
}

// Closed reports whether Close has run.
func (v *View) Closed() bool { return v.closed }

// Resize updates the surface size. The surface fills the host, so its
// client bounds match.
func (v *View) Resize(w, h float64) {
	v.scene.Resize(w, h)
	v.bounds = sky.Rect{W: w, H: h}
	v.viewport = h
}

// SetBounds places the surface inside a larger client area.
func (v *View) SetBounds(r sky.Rect) { v.bounds = r }

// Layout re-wraps the document for cols columns of lineHeight pixels.
// viewport is the visible height in the same unit.
func (v *View) Layout(cols int, lineHeight, viewport float64) {
	if cols != v.doc.Cols {
		v.doc = page.Build(v.content, cols)
	}
	if lineHeight > 0 {
		v.lineHeight = lineHeight
	}
	v.viewport = viewport
}

// Scene returns the simulation for drawing.
func (v *View) Scene() *sky.Scene { return v.scene }

// Scroll returns the auto-scroll driver.
func (v *View) Scroll() *scroll.Driver { return v.scroll }

// Document returns the laid-out page.
func (v *View) Document() *page.Document { return v.doc }

// LineHeight returns the height of one document line.
func (v *View) LineHeight() float64 { return v.lineHeight }

// Viewport returns the visible page height.
func (v *View) Viewport() float64 { return v.viewport }

// Chat returns the FAQ chat log.
func (v *View) Chat() *faq.Chat { return v.chat }

// Form returns the contact form state.
func (v *View) Form() *contact.FormState { return &v.form }

// Content returns the page content.
func (v *View) Content() *content.Content { return v.content }
