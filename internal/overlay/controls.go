package overlay

import (
	"time"

	"github.com/nightsky-folio/nightsky/internal/contact"
	"github.com/nightsky-folio/nightsky/internal/site"
)

// Panel is the floating panel currently open.
type Panel uint8

const (
	PanelNone Panel = iota
	PanelHelp
	PanelChat
	PanelContact
)

// StarsPerPress is how many stars the add-stars command adds.
const StarsPerPress = 20

// cursorBlink is the half period of the text cursor.
const cursorBlink = 530 * time.Millisecond

// UI is the keyboard-facing state around a mounted view.
type UI struct {
	Panel  Panel
	Input  string // chat input line
	Chip   int    // highlighted FAQ chip
	Cursor bool   // text cursor visible this frame
}

// Controls maps host-independent actions onto a view. Hosts translate
// their own key events into these calls.
type Controls struct {
	View *site.View
	UI   UI
}

// NewControls wraps v.
func NewControls(v *site.View) *Controls { return &Controls{View: v} }

// Blink updates cursor visibility for the given time.
func (c *Controls) Blink(now time.Time) {
	c.UI.Cursor = now.UnixMilli()/cursorBlink.Milliseconds()%2 == 0
}

// Toggle opens p, or closes it if it is already open.
func (c *Controls) Toggle(p Panel) {
	if c.UI.Panel == p {
		c.UI.Panel = PanelNone
		return
	}
	c.UI.Panel = p
}

// Escape closes the open panel. It returns false when nothing was open,
// which hosts treat as a request to quit.
func (c *Controls) Escape() bool {
	if c.UI.Panel == PanelNone {
		return false
	}
	c.UI.Panel = PanelNone
	return true
}

// Typing reports whether printable keys should go to a text field rather
// than trigger commands.
func (c *Controls) Typing() bool {
	return c.UI.Panel == PanelChat || c.UI.Panel == PanelContact
}

// Function runs the command bound to function key n (F1..F7).
func (c *Controls) Function(n int) {
	v := c.View
	switch n {
	case 1:
		c.Toggle(PanelHelp)
	case 2:
		v.ToggleDaybreak()
	case 3:
		v.AddStars(StarsPerPress)
	case 4:
		v.CommitNow()
	case 5:
		v.Clear()
	case 6:
		c.Toggle(PanelContact)
	case 7:
		c.Toggle(PanelChat)
	}
}

// Type sends runes to the focused text field, or treats digits as
// section jumps when no field has focus.
func (c *Controls) Type(rs ...rune) {
	switch c.UI.Panel {
	case PanelChat:
		c.UI.Input += string(rs)
	case PanelContact:
		c.View.Form().Type(rs...)
	default:
		for _, r := range rs {
			if r >= '1' && r <= '9' {
				c.Section(int(r - '0'))
			}
		}
	}
}

// Backspace deletes the last rune of the focused field.
func (c *Controls) Backspace() {
	switch c.UI.Panel {
	case PanelChat:
		if r := []rune(c.UI.Input); len(r) > 0 {
			c.UI.Input = string(r[:len(r)-1])
		}
	case PanelContact:
		c.View.Form().Backspace()
	}
}

// Tab moves to the next form field or FAQ chip; back reverses.
func (c *Controls) Tab(back bool) {
	switch c.UI.Panel {
	case PanelChat:
		n := min(len(c.View.Chat().Chips()), ChipCount)
		if n == 0 {
			return
		}
		if back {
			c.UI.Chip = (c.UI.Chip + n - 1) % n
		} else {
			c.UI.Chip = (c.UI.Chip + 1) % n
		}
	case PanelContact:
		if back {
			c.View.Form().Prev()
		} else {
			c.View.Form().Next()
		}
	}
}

// Enter submits the chat line, inserts the highlighted chip when the line
// is empty, or sends the contact form from its last field.
func (c *Controls) Enter(now time.Time) {
	switch c.UI.Panel {
	case PanelChat:
		if c.UI.Input == "" {
			_ = c.View.Chip(c.UI.Chip, now)
			return
		}
		if c.View.Ask(c.UI.Input, now) {
			c.UI.Input = ""
		}
	case PanelContact:
		f := c.View.Form()
		if f.Focus() != contact.FieldMessage {
			f.Next()
			return
		}
		c.View.SendContact()
	}
}

// Scroll moves the page by lines, positive downwards.
func (c *Controls) Scroll(lines float64) {
	v := c.View
	v.Scroll().ScrollBy(lines*v.LineHeight(), v.Viewport(), v.Document().Height(v.LineHeight()))
}

// Top scrolls to the start of the page.
func (c *Controls) Top() {
	v := c.View
	v.Scroll().ScrollTo(0, v.Viewport(), v.Document().Height(v.LineHeight()))
}

// Section jumps to the n-th section in page order.
func (c *Controls) Section(n int) {
	ids := c.View.Document().Sections()
	if n >= 0 && n < len(ids) {
		c.View.JumpTo(ids[n])
	}
}
