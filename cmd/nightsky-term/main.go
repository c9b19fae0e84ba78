package main

import (
	"flag"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/nightsky-folio/nightsky/internal/config"
	"github.com/nightsky-folio/nightsky/internal/contact"
	"github.com/nightsky-folio/nightsky/internal/content"
	"github.com/nightsky-folio/nightsky/internal/frame"
	"github.com/nightsky-folio/nightsky/internal/input"
	"github.com/nightsky-folio/nightsky/internal/logging"
	"github.com/nightsky-folio/nightsky/internal/overlay"
	"github.com/nightsky-folio/nightsky/internal/site"
	"github.com/nightsky-folio/nightsky/internal/term"
)

const tickInterval = 16 * time.Millisecond // ~60 FPS

// Viewer owns the terminal and the mounted view.
type Viewer struct {
	screen   tcell.Screen
	loop     *frame.Loop
	view     *site.View
	controls *overlay.Controls
	handler  *term.Handler
	renderer *term.Renderer
	logger   *zap.Logger
}

func NewViewer(cfg *config.Config, c *content.Content, logger *zap.Logger) (*Viewer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()
	cols, rows := screen.Size()

	loop := frame.NewLoop()
	bus := input.NewBus()
	client := contact.NewClient(contact.Options{
		Endpoint:      cfg.Contact.Endpoint,
		FallbackEmail: cfg.Contact.FallbackEmail,
		Timeout:       cfg.Contact.Timeout,
		PerMinute:     cfg.Contact.PerMinute,
		Burst:         cfg.Contact.Burst,
	}, logger)

	view, err := site.Mount(site.Deps{
		Content: c,
		Loop:    loop,
		Bus:     bus,
		Contact: client,
		Logger:  logger,
		Width:   float64(cols * term.CellW),
		Height:  float64(rows * term.CellH),
	}, site.Options{
		Sky:           cfg.SkyConfig(time.Now().UnixNano()),
		CometInterval: cfg.Scene.CometInterval,
		DaySpeed:      cfg.Scroll.DaySpeed,
		NightSpeed:    cfg.Scroll.NightSpeed,
		ReplyDelay:    cfg.Chat.ReplyDelay,
		Daybreak:      cfg.Window.Daybreak,
	})
	if err != nil {
		screen.Fini()
		return nil, err
	}

	v := &Viewer{
		screen:   screen,
		loop:     loop,
		view:     view,
		controls: overlay.NewControls(view),
		renderer: term.NewRenderer(),
		logger:   logger,
	}
	tracker := input.NewTracker(bus)
	tracker.Size(float64(cols*term.CellW), float64(rows*term.CellH))
	v.handler = &term.Handler{
		Controls: v.controls,
		Tracker:  tracker,
		Resized:  v.resize,
	}
	v.resize(cols, rows)
	return v, nil
}

func (v *Viewer) resize(cols, rows int) {
	v.renderer.Resize(cols, rows)
	term.Layout(v.controls, cols, rows)
	v.screen.Sync()
}

func (v *Viewer) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !v.handler.Handle(ev, time.Now()) {
				return
			}

		case now := <-ticker.C:
			v.loop.Tick(now)
			v.controls.Blink(now)
			v.renderer.Draw(v.screen, v.view, &v.controls.UI)
		}
	}
}

func (v *Viewer) Close() {
	v.view.Close()
	v.loop.Stop()
	v.screen.Fini()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to nightsky.yaml")
	logPath := flag.String("log", "nightsky-term.log", "log file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, closeLog, err := logging.ToFile(*logPath, cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer closeLog()

	c, err := loadContent(cfg.ContentPath)
	if err != nil {
		logger.Fatal("failed to load content", zap.Error(err))
	}

	viewer, err := NewViewer(cfg, c, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	defer viewer.Close()

	viewer.run()
}

func loadContent(path string) (*content.Content, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}
