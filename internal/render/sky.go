package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nightsky-folio/nightsky/internal/sky"
	"github.com/nightsky-folio/nightsky/internal/theme"
)

const (
	gradientSteps  = 256
	ringSegments   = 48
	cometTailFrac  = 22.0 // tail length in frames of travel
	crosshairScale = 4.0
)

// SkyRenderer draws a scene. It caches textures and scratch buffers, so
// one renderer should be reused for every frame.
type SkyRenderer struct {
	pixel  *ebiten.Image
	disc   *ebiten.Image
	glow   *ebiten.Image
	sphere *ebiten.Image
	sprite *ebiten.Image

	gradient     *ebiten.Image
	gradientName string

	particles []sky.Particle
	vertices  []ebiten.Vertex
	indices   []uint16
}

// NewSkyRenderer builds the textures. monogram is drawn as the bouncing
// background sprite.
func NewSkyRenderer(monogram string) *SkyRenderer {
	return &SkyRenderer{
		pixel:  whitePixel(),
		disc:   newDisc(),
		glow:   newGlow(),
		sphere: newSphere(),
		sprite: newMonogram(monogram),
	}
}

// Draw paints the whole scene onto screen. scale multiplies stroke
// widths for high-density displays.
func (r *SkyRenderer) Draw(screen *ebiten.Image, s *sky.Scene, th *theme.Theme, scale float64) {
	r.background(screen, th)
	if !s.Ready() {
		return
	}
	r.galaxies(screen, s, th)
	r.drawSprite(screen, s.Sprite(), th)
	r.planets(screen, s, scale)
	if th.StarAlpha > 0 {
		r.stars(screen, s, th, scale)
		r.comets(screen, s, th, scale)
	}
}

func (r *SkyRenderer) background(screen *ebiten.Image, th *theme.Theme) {
	if r.gradientName != th.Name {
		img := image.NewNRGBA(image.Rect(0, 0, 1, gradientSteps))
		for y := 0; y < gradientSteps; y++ {
			c := th.Sky(float64(y) / (gradientSteps - 1))
			img.SetNRGBA(0, y, color.NRGBA{c.R, c.G, c.B, 255})
		}
		r.gradient = ebiten.NewImageFromImage(img)
		r.gradientName = th.Name
	}
	b := screen.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(float64(b.Dx()), float64(b.Dy())/gradientSteps)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(r.gradient, &op)
}

// stamp draws tex centered at (x, y) with the given radius.
func (r *SkyRenderer) stamp(dst, tex *ebiten.Image, x, y, radius float64, c color.RGBA, alpha float64, blend ebiten.Blend) {
	if radius <= 0 || alpha <= 0 {
		return
	}
	s := 2 * radius / textureSize
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-textureSize/2, -textureSize/2)
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	op.Blend = blend
	tint(&op.ColorScale, c, alpha)
	dst.DrawImage(tex, &op)
}

// line draws a straight stroke of the given width.
func (r *SkyRenderer) line(dst *ebiten.Image, x0, y0, x1, y1, width float64, c color.RGBA, alpha float64, blend ebiten.Blend) {
	length := math.Hypot(x1-x0, y1-y0)
	if length == 0 || alpha <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(0, -0.5)
	op.GeoM.Scale(length, width)
	op.GeoM.Rotate(math.Atan2(y1-y0, x1-x0))
	op.GeoM.Translate(x0, y0)
	op.Blend = blend
	tint(&op.ColorScale, c, alpha)
	dst.DrawImage(r.pixel, &op)
}

// galaxies are drawn beneath everything else with additive blending.
func (r *SkyRenderer) galaxies(screen *ebiten.Image, s *sky.Scene, th *theme.Theme) {
	dim := 1.0
	if th.Flat {
		dim = 0.35
	}
	for i := range s.Galaxies() {
		r.particles = s.SampleGalaxy(i, r.particles[:0])
		for _, p := range r.particles {
			c := theme.Hue(p.Hue, 0.55, 0.7)
			r.stamp(screen, r.glow, p.X, p.Y, p.Size*2.5, c, p.Alpha*dim, ebiten.BlendLighter)
		}
	}
}

func (r *SkyRenderer) drawSprite(screen *ebiten.Image, sp sky.Sprite, th *theme.Theme) {
	if sp.W <= 0 || sp.H <= 0 {
		return
	}
	b := r.sprite.Bounds()
	var op ebiten.DrawImageOptions
	op.GeoM.Scale(sp.W/float64(b.Dx()), sp.H/float64(b.Dy()))
	op.GeoM.Translate(sp.X, sp.Y)
	op.Filter = ebiten.FilterLinear
	tint(&op.ColorScale, th.Color(theme.Title), sky.SpriteAlpha)
	screen.DrawImage(r.sprite, &op)
}

func (r *SkyRenderer) planets(screen *ebiten.Image, s *sky.Scene, scale float64) {
	cx, cy := s.OrbitCenter()
	for _, p := range s.Planets() {
		px, py := p.Position(cx, cy)
		size := p.Size * scale

		if p.Ringed() {
			r.ring(screen, px, py, size, p, false)
		}
		r.stamp(screen, r.sphere, px, py, size, p.Color, 1, ebiten.BlendSourceOver)
		if p.Banded {
			r.bands(screen, px, py, size, p)
		}
		if p.Ringed() {
			r.ring(screen, px, py, size, p, true)
		}
		for _, m := range p.Moons {
			mx, my := m.Position(px, py)
			r.stamp(screen, r.disc, mx, my, m.Size*scale, color.RGBA{200, 200, 210, 255}, 0.9, ebiten.BlendSourceOver)
		}
	}
}

// bands draws chords across the planet disc, rotated with its spin.
func (r *SkyRenderer) bands(screen *ebiten.Image, px, py, size float64, p sky.Planet) {
	dark := theme.Shade(p.Color, 0.7)
	sin, cos := math.Sincos(p.Spin)
	for _, off := range []float64{-0.5, -0.15, 0.3} {
		d := off * size
		half := math.Sqrt(math.Max(size*size-d*d, 0)) * 0.95
		mx, my := px-d*sin, py+d*cos
		r.line(screen, mx-half*cos, my-half*sin, mx+half*cos, my+half*sin,
			math.Max(size*0.14, 1), dark, 0.55, ebiten.BlendSourceOver)
	}
}

// ring draws the back (front=false) or front half of a tilted ellipse.
func (r *SkyRenderer) ring(screen *ebiten.Image, px, py, size float64, p sky.Planet, front bool) {
	rx, ry := size*1.9, size*0.55
	tilt := 0.35
	sin, cos := math.Sincos(tilt)
	c := theme.Shade(p.Color, 1.25)
	prevX, prevY := 0.0, 0.0
	for i := 0; i <= ringSegments; i++ {
		a := float64(i) / ringSegments * 2 * math.Pi
		ex, ey := rx*math.Cos(a), ry*math.Sin(a)
		x := px + ex*cos - ey*sin
		y := py + ex*sin + ey*cos
		if i > 0 && (math.Sin(a) > 0) == front {
			r.line(screen, prevX, prevY, x, y, math.Max(size*0.08, 1), c, 0.7, ebiten.BlendSourceOver)
		}
		prevX, prevY = x, y
	}
}

// stars: an additive halo plus a twinkling crosshair over a solid core.
func (r *SkyRenderer) stars(screen *ebiten.Image, s *sky.Scene, th *theme.Theme, scale float64) {
	s.EachStar(func(st sky.Star) {
		tw := st.Twinkle()
		c := theme.Star(st.Hue, st.Depth, tw)
		radius := st.Radius * scale
		alpha := th.StarAlpha * (0.4 + 0.6*st.Depth)

		r.stamp(screen, r.glow, st.X, st.Y, radius*4, c, alpha*0.35, ebiten.BlendLighter)
		arm := radius * crosshairScale * tw
		if arm > radius {
			w := math.Max(0.6*scale, 0.5)
			r.line(screen, st.X-arm, st.Y, st.X+arm, st.Y, w, c, alpha*0.5*tw, ebiten.BlendLighter)
			r.line(screen, st.X, st.Y-arm, st.X, st.Y+arm, w, c, alpha*0.5*tw, ebiten.BlendLighter)
		}
		r.stamp(screen, r.disc, st.X, st.Y, math.Max(radius, 0.5), c, alpha, ebiten.BlendSourceOver)
	})
}

// comets: a tapered gradient tail trailing the head, drawn as one
// triangle batch, then a solid head.
func (r *SkyRenderer) comets(screen *ebiten.Image, s *sky.Scene, th *theme.Theme, scale float64) {
	r.vertices = r.vertices[:0]
	r.indices = r.indices[:0]
	head := color.RGBA{255, 255, 255, 255}
	tailColor := th.Color(theme.Heading)
	width := 2.2 * scale

	s.EachComet(func(c sky.Comet) {
		life := math.Max(c.Life, 0) * th.StarAlpha
		tailX := c.X - c.VX*cometTailFrac
		base := uint16(len(r.vertices))
		var v [3]ebiten.Vertex
		v[0] = ebiten.Vertex{DstX: float32(c.X), DstY: float32(c.Y - width), SrcX: 0.5, SrcY: 0.5}
		v[1] = ebiten.Vertex{DstX: float32(c.X), DstY: float32(c.Y + width), SrcX: 0.5, SrcY: 0.5}
		v[2] = ebiten.Vertex{DstX: float32(tailX), DstY: float32(c.Y), SrcX: 0.5, SrcY: 0.5}
		vertexColor(&v[0], tailColor, 0.8*life)
		vertexColor(&v[1], tailColor, 0.8*life)
		vertexColor(&v[2], tailColor, 0)
		r.vertices = append(r.vertices, v[:]...)
		r.indices = append(r.indices, base, base+1, base+2)
	})
	if len(r.vertices) > 0 {
		screen.DrawTriangles(r.vertices, r.indices, r.pixel, &ebiten.DrawTrianglesOptions{Blend: ebiten.BlendLighter})
	}
	s.EachComet(func(c sky.Comet) {
		life := math.Max(c.Life, 0) * th.StarAlpha
		r.stamp(screen, r.glow, c.X, c.Y, width*3, head, 0.6*life, ebiten.BlendLighter)
		r.stamp(screen, r.disc, c.X, c.Y, width, head, life, ebiten.BlendSourceOver)
	})
}
