package term

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/nightsky-folio/nightsky/internal/overlay"
	"github.com/nightsky-folio/nightsky/internal/site"
	"github.com/nightsky-folio/nightsky/internal/sky"
	"github.com/nightsky-folio/nightsky/internal/theme"
)

// cometTail is how many frames of travel the tail covers.
const cometTail = 22.0

var moonColor = color.RGBA{200, 200, 210, 255}

// Renderer composes a view into terminal cells.
type Renderer struct {
	Canvas *Canvas
	page   *overlay.Buffer
	chrome *overlay.Buffer

	glow      []float64
	glowHue   []float64
	particles []sky.Particle
}

// NewRenderer returns a renderer with an empty canvas; Resize sizes it.
func NewRenderer() *Renderer {
	return &Renderer{
		Canvas: NewCanvas(0, 0),
		page:   overlay.NewBuffer(0, 0),
		chrome: overlay.NewBuffer(0, 0),
	}
}

// Resize sizes every layer for a cols x rows terminal.
func (r *Renderer) Resize(cols, rows int) {
	r.Canvas.Resize(cols, rows)
	r.page.Resize(cols, max(rows-2, 0))
	r.chrome.Resize(cols, rows)
	r.glow = make([]float64, cols*rows)
	r.glowHue = make([]float64, cols*rows)
}

// Draw composes v and flushes it to screen.
func (r *Renderer) Draw(screen tcell.Screen, v *site.View, ui *overlay.UI) {
	r.Compose(v, ui)
	r.Canvas.Flush(screen)
}

// Compose fills the canvas: sky, then the page between the header and
// footer rows, then the chrome.
func (r *Renderer) Compose(v *site.View, ui *overlay.UI) {
	th := theme.For(v.Daybreak())
	s := v.Scene()

	r.background(th)
	if s.Ready() {
		r.galaxies(s, th)
		r.sprite(s.Sprite(), th)
		r.planets(s)
		if th.StarAlpha > 0 {
			r.stars(s, th)
			r.comets(s, th)
		}
	}

	// Terminal rows cannot shift by a fraction, so the page snaps to
	// whole lines.
	overlay.Page(r.page, v.Document(), v.Scroll().Offset(), v.LineHeight())
	r.Canvas.Layer(r.page, th, 1)
	overlay.Chrome(r.chrome, v, ui)
	r.Canvas.Layer(r.chrome, th, 0)
}

// cellOf maps scene pixels to a cell, reporting whether it is on screen.
func (r *Renderer) cellOf(x, y float64) (int, int, bool) {
	cx, cy := int(math.Floor(x/CellW)), int(math.Floor(y/CellH))
	return cx, cy, r.Canvas.At(cx, cy) != nil
}

func (r *Renderer) background(th *theme.Theme) {
	c := r.Canvas
	for y := 0; y < c.Rows; y++ {
		bg := th.Sky(float64(y) / float64(max(c.Rows-1, 1)))
		for x := 0; x < c.Cols; x++ {
			c.Cells[y*c.Cols+x] = Cell{Rune: ' ', FG: bg, BG: bg}
		}
	}
}

// galaxies accumulate particle alpha per cell and tint the background.
func (r *Renderer) galaxies(s *sky.Scene, th *theme.Theme) {
	clear(r.glow)
	for i := range s.Galaxies() {
		r.particles = s.SampleGalaxy(i, r.particles[:0])
		for _, p := range r.particles {
			cx, cy, ok := r.cellOf(p.X, p.Y)
			if !ok {
				continue
			}
			k := cy*r.Canvas.Cols + cx
			r.glow[k] += p.Alpha * p.Size
			r.glowHue[k] = p.Hue
		}
	}
	limit := 0.45
	if th.Flat {
		limit = 0.15
	}
	for k, g := range r.glow {
		if g <= 0 {
			continue
		}
		cell := &r.Canvas.Cells[k]
		cell.BG = theme.Lerp(cell.BG, theme.Hue(r.glowHue[k], 0.55, 0.7), math.Min(g*0.3, limit))
	}
}

func (r *Renderer) sprite(sp sky.Sprite, th *theme.Theme) {
	x0, y0, _ := r.cellOf(sp.X, sp.Y)
	x1, y1, _ := r.cellOf(sp.X+sp.W, sp.Y+sp.H)
	tint := th.Color(theme.Title)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if cell := r.Canvas.At(x, y); cell != nil {
				cell.BG = theme.Lerp(cell.BG, tint, sky.SpriteAlpha)
			}
		}
	}
}

// planets shade every cell whose center falls inside the disc, darker
// away from the upper left, with band rows and a ring of dashes.
func (r *Renderer) planets(s *sky.Scene) {
	cx, cy := s.OrbitCenter()
	for _, p := range s.Planets() {
		px, py := p.Position(cx, cy)
		x0, y0, _ := r.cellOf(px-p.Size, py-p.Size)
		x1, y1, _ := r.cellOf(px+p.Size, py+p.Size)
		if p.Ringed() {
			r.ring(px, py, p, false)
		}
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				cell := r.Canvas.At(x, y)
				if cell == nil {
					continue
				}
				dx := (float64(x)+0.5)*CellW - px
				dy := (float64(y)+0.5)*CellH - py
				d := math.Hypot(dx, dy) / p.Size
				if d > 1 {
					continue
				}
				light := 1 - 0.6*math.Min(1, math.Hypot(dx/p.Size+0.35, dy/p.Size+0.35)/1.35)
				c := theme.Shade(p.Color, light)
				if p.Banded && bandAt(dx, dy, p) {
					c = theme.Shade(c, 0.7)
				}
				cell.BG, cell.FG, cell.Rune = c, c, ' '
			}
		}
		if p.Ringed() {
			r.ring(px, py, p, true)
		}
		for _, m := range p.Moons {
			mx, my := m.Position(px, py)
			if x, y, ok := r.cellOf(mx, my); ok {
				r.Canvas.Put(x, y, 'o', moonColor)
			}
		}
	}
}

// bandAt reports whether a point on the disc lies in a band; bands turn
// with the planet's spin.
func bandAt(dx, dy float64, p sky.Planet) bool {
	sin, cos := math.Sincos(p.Spin)
	across := (-dx*sin + dy*cos) / p.Size
	return math.Abs(math.Sin(across*math.Pi*2.5)) > 0.8
}

// ring draws the back (front=false) or front half of the ring ellipse.
func (r *Renderer) ring(px, py float64, p sky.Planet, front bool) {
	c := theme.Shade(p.Color, 1.25)
	rx := p.Size * 1.9
	for i := 0; i < 32; i++ {
		a := float64(i) / 32 * 2 * math.Pi
		if (math.Sin(a) > 0) != front {
			continue
		}
		x, y, ok := r.cellOf(px+rx*math.Cos(a), py+p.Size*0.55*math.Sin(a))
		if ok {
			r.Canvas.Put(x, y, '-', c)
		}
	}
}

// starRune picks a glyph by apparent brightness.
func starRune(st sky.Star) rune {
	b := st.Depth * (0.5 + 0.5*st.Twinkle())
	switch {
	case b > 0.8:
		return '+'
	case b > 0.55:
		return '*'
	}
	return '.'
}

func (r *Renderer) stars(s *sky.Scene, th *theme.Theme) {
	s.EachStar(func(st sky.Star) {
		x, y, ok := r.cellOf(st.X, st.Y)
		if !ok {
			return
		}
		cell := r.Canvas.At(x, y)
		c := theme.Star(st.Hue, st.Depth, st.Twinkle())
		cell.Rune, cell.FG = starRune(st), theme.Lerp(cell.BG, c, th.StarAlpha)
	})
}

// comets draw a head with a tail of dashes fading into the background.
func (r *Renderer) comets(s *sky.Scene, th *theme.Theme) {
	s.EachComet(func(c sky.Comet) {
		life := math.Max(c.Life, 0) * th.StarAlpha
		tail := th.Color(theme.Heading)
		n := int(math.Abs(c.VX) * cometTail / CellW)
		for i := 1; i <= n; i++ {
			x, y, ok := r.cellOf(c.X-c.VX*cometTail*float64(i)/float64(n+1), c.Y)
			if !ok {
				continue
			}
			cell := r.Canvas.At(x, y)
			cell.Rune = '-'
			cell.FG = theme.Lerp(cell.BG, tail, life*(1-float64(i)/float64(n+1)))
		}
		if x, y, ok := r.cellOf(c.X, c.Y); ok {
			cell := r.Canvas.At(x, y)
			cell.Rune, cell.FG = '*', theme.Lerp(cell.BG, color.RGBA{255, 255, 255, 255}, life)
		}
	})
}
