package main

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"

	"github.com/nightsky-folio/nightsky/internal/config"
	"github.com/nightsky-folio/nightsky/internal/contact"
	"github.com/nightsky-folio/nightsky/internal/content"
	"github.com/nightsky-folio/nightsky/internal/frame"
	"github.com/nightsky-folio/nightsky/internal/input"
	"github.com/nightsky-folio/nightsky/internal/logging"
	"github.com/nightsky-folio/nightsky/internal/overlay"
	"github.com/nightsky-folio/nightsky/internal/render"
	"github.com/nightsky-folio/nightsky/internal/site"
	"github.com/nightsky-folio/nightsky/internal/theme"
)

// wheelLines is how many document lines one wheel notch scrolls.
const wheelLines = 3

var functionKeys = [...]ebiten.Key{
	ebiten.KeyF1, ebiten.KeyF2, ebiten.KeyF3, ebiten.KeyF4,
	ebiten.KeyF5, ebiten.KeyF6, ebiten.KeyF7,
}

// Game is the Ebitengine game struct. It owns rendering and input;
// all page state lives in the mounted view.
type Game struct {
	loop     *frame.Loop
	tracker  *input.Tracker
	view     *site.View
	controls *overlay.Controls
	logger   *zap.Logger

	sky    *render.SkyRenderer
	grid   *render.GridRenderer
	page   *overlay.Buffer
	chrome *overlay.Buffer
	chars  []rune
	touch  []ebiten.TouchID

	scale      float64
	width      int
	height     int
	cols, rows int
}

func NewGame(cfg *config.Config, c *content.Content, logger *zap.Logger) (*Game, error) {
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
	}, site.Options{
		Sky:           cfg.SkyConfig(time.Now().UnixNano()),
		CometInterval: cfg.Scene.CometInterval,
		DaySpeed:      cfg.Scroll.DaySpeed,
		NightSpeed:    cfg.Scroll.NightSpeed,
		ReplyDelay:    cfg.Chat.ReplyDelay,
		Daybreak:      cfg.Window.Daybreak,
	})
	if err != nil {
		return nil, err
	}

	atlas := render.NewFontAtlas()
	return &Game{
		loop:     loop,
		tracker:  input.NewTracker(bus),
		view:     view,
		controls: overlay.NewControls(view),
		logger:   logger,
		sky:      render.NewSkyRenderer(monogram(c.Profile.Name)),
		grid:     render.NewGridRenderer(atlas, render.GlyphWidth, render.GlyphHeight),
		page:     overlay.NewBuffer(0, 0),
		chrome:   overlay.NewBuffer(0, 0),
		scale:    1,
	}, nil
}

// monogram returns the initials of name.
func monogram(name string) string {
	var b strings.Builder
	for _, w := range strings.Fields(name) {
		b.WriteRune([]rune(w)[0])
	}
	return strings.ToUpper(b.String())
}

func (g *Game) Update() error {
	if g.width == 0 {
		return nil
	}
	g.applySize()
	if err := g.keys(); err != nil {
		return err
	}
	g.pointer()

	now := time.Now()
	g.loop.Tick(now)
	g.controls.Blink(now)
	return nil
}

// applySize forwards the size computed in Layout to the view.
func (g *Game) applySize() {
	cellW := render.GlyphWidth * g.scale
	cellH := render.GlyphHeight * g.scale
	g.grid.CellW, g.grid.CellH = cellW, cellH

	cols := max(int(float64(g.width)/cellW), 1)
	rows := max(int(float64(g.height)/cellH), 3)
	if cols != g.cols || rows != g.rows {
		g.cols, g.rows = cols, rows
		g.page.Resize(cols, rows-1)
		g.chrome.Resize(cols, rows)
	}
	g.tracker.Size(float64(g.width), float64(g.height))
	g.view.Layout(overlay.PageColumns(cols), cellH, float64(rows-2)*cellH)
}

func (g *Game) keys() error {
	c := g.controls
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !c.Escape() {
		return ebiten.Termination
	}
	for i, k := range functionKeys {
		if inpututil.IsKeyJustPressed(k) {
			c.Function(i + 1)
		}
	}

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	if len(g.chars) > 0 {
		c.Type(g.chars...)
	}
	if repeating(ebiten.KeyBackspace) {
		c.Backspace()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		c.Tab(ebiten.IsKeyPressed(ebiten.KeyShift))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		c.Enter(time.Now())
	}

	page := float64(max(g.rows-3, 1))
	switch {
	case repeating(ebiten.KeyDown):
		c.Scroll(1)
	case repeating(ebiten.KeyUp):
		c.Scroll(-1)
	case repeating(ebiten.KeyPageDown):
		c.Scroll(page)
	case repeating(ebiten.KeyPageUp):
		c.Scroll(-page)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome) && !c.Typing():
		c.Top()
	}
	return nil
}

// repeating reports a fresh press, then auto-repeat after a short hold.
func repeating(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 30 && d%4 == 0)
}

// pointer feeds mouse, touch and wheel input to the tracker. Cursor and
// touch positions are already in Layout pixels.
func (g *Game) pointer() {
	_, wy := ebiten.Wheel()
	if wy != 0 {
		g.tracker.Wheel(-wy * wheelLines * g.view.LineHeight())
	}

	g.touch = ebiten.AppendTouchIDs(g.touch[:0])
	if len(g.touch) > 0 {
		x, y := ebiten.TouchPosition(g.touch[0])
		g.tracker.Sample(x, y, true)
		return
	}
	x, y := ebiten.CursorPosition()
	g.tracker.Sample(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

func (g *Game) Draw(screen *ebiten.Image) {
	v := g.view
	th := theme.For(v.Daybreak())
	g.sky.Draw(screen, v.Scene(), th, g.scale)

	shift := overlay.Page(g.page, v.Document(), v.Scroll().Offset(), g.grid.CellH)
	g.grid.Draw(screen, g.page, th, g.grid.CellH-shift)

	overlay.Chrome(g.chrome, v, &g.controls.UI)
	g.grid.Draw(screen, g.chrome, th, 0)
}

// Layout renders at device resolution so stars and glyphs stay crisp on
// high-density displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	g.width = int(float64(outsideWidth) * g.scale)
	g.height = int(float64(outsideHeight) * g.scale)
	return g.width, g.height
}

func (g *Game) Close() {
	g.view.Close()
	g.loop.Stop()
}

func main() {
	configPath := flag.String("config", config.DefaultPath, "path to nightsky.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	c, err := loadContent(cfg.ContentPath)
	if err != nil {
		logger.Fatal("failed to load content", zap.Error(err))
	}

	game, err := NewGame(cfg, c, logger)
	if err != nil {
		logger.Fatal("failed to start", zap.Error(err))
	}
	defer game.Close()

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(game); err != nil {
		logger.Error("game exited with error", zap.Error(err))
	}
}

func loadContent(path string) (*content.Content, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}
