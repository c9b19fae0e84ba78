package term

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/nightsky-folio/nightsky/internal/input"
	"github.com/nightsky-folio/nightsky/internal/overlay"
)

// wheelLines is how many document lines one wheel notch scrolls.
const wheelLines = 3

// Handler routes tcell events to the controls and the pointer tracker.
type Handler struct {
	Controls *overlay.Controls
	Tracker  *input.Tracker
	// Resized is called with the new terminal size in cells.
	Resized func(cols, rows int)
}

// Handle processes one event. It returns false when the viewer should
// quit.
func (h *Handler) Handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return h.key(ev, now)
	case *tcell.EventMouse:
		h.mouse(ev)
	case *tcell.EventResize:
		cols, rows := ev.Size()
		h.Tracker.Size(float64(cols*CellW), float64(rows*CellH))
		if h.Resized != nil {
			h.Resized(cols, rows)
		}
	}
	return true
}

func (h *Handler) key(ev *tcell.EventKey, now time.Time) bool {
	c := h.Controls
	switch k := ev.Key(); {
	case k == tcell.KeyCtrlC:
		return false
	case k == tcell.KeyEscape:
		return c.Escape()
	case k >= tcell.KeyF1 && k <= tcell.KeyF7:
		c.Function(int(k-tcell.KeyF1) + 1)
	case k == tcell.KeyRune:
		if !c.Typing() && ev.Rune() == 'q' {
			return false
		}
		c.Type(ev.Rune())
	case k == tcell.KeyBackspace || k == tcell.KeyBackspace2:
		c.Backspace()
	case k == tcell.KeyTab:
		c.Tab(false)
	case k == tcell.KeyBacktab:
		c.Tab(true)
	case k == tcell.KeyEnter:
		c.Enter(now)
	case k == tcell.KeyDown:
		c.Scroll(1)
	case k == tcell.KeyUp:
		c.Scroll(-1)
	case k == tcell.KeyPgDn:
		c.Scroll(h.page())
	case k == tcell.KeyPgUp:
		c.Scroll(-h.page())
	case k == tcell.KeyHome:
		c.Top()
	}
	return true
}

// page is one screen of document lines.
func (h *Handler) page() float64 {
	v := h.Controls.View
	return max(v.Viewport()/v.LineHeight()-1, 1)
}

// mouse reports cell centers in scene pixels.
func (h *Handler) mouse(ev *tcell.EventMouse) {
	cx, cy := ev.Position()
	x := (float64(cx) + 0.5) * CellW
	y := (float64(cy) + 0.5) * CellH
	buttons := ev.Buttons()
	switch {
	case buttons&tcell.WheelUp != 0:
		h.Tracker.Wheel(-wheelLines * CellH)
	case buttons&tcell.WheelDown != 0:
		h.Tracker.Wheel(wheelLines * CellH)
	}
	h.Tracker.Pointer(x, y, buttons&tcell.Button1 != 0)
}

// Layout sizes the view for a cols x rows terminal: one document line per
// row between the header and footer.
func Layout(c *overlay.Controls, cols, rows int) {
	c.View.Layout(overlay.PageColumns(cols), CellH, float64(max(rows-2, 1)*CellH))
}
