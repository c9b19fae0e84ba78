package overlay

import (
	"fmt"
	"strings"

	"github.com/nightsky-folio/nightsky/internal/contact"
	"github.com/nightsky-folio/nightsky/internal/faq"
	"github.com/nightsky-folio/nightsky/internal/page"
	"github.com/nightsky-folio/nightsky/internal/site"
	"github.com/nightsky-folio/nightsky/internal/theme"
)

// Page column limits.
const (
	MaxPageCols = 72
	pageMargin  = 2
	chatWidth   = 44
	formWidth   = 52

	// ChipCount is how many FAQ entries the chat panel offers as chips.
	ChipCount = 6
)

// KeyHelp lists the key bindings shown in the help panel.
var KeyHelp = [][2]string{
	{"F1", "this help"},
	{"F2", "daybreak (day/night)"},
	{"F3", "add stars"},
	{"F4", "commit now (comet)"},
	{"F5", "clear the sky"},
	{"F6", "contact form"},
	{"F7", "ask me (FAQ chat)"},
	{"Home, 1-9", "top, or a numbered section"},
	{"Up/Down PgUp/PgDn", "scroll"},
	{"Tab", "next field or FAQ chip"},
	{"Enter", "send"},
	{"Esc", "close panel / quit"},
}

// PageColumns returns the document width for a screen cols wide.
func PageColumns(cols int) int {
	return max(min(cols-2*pageMargin, MaxPageCols), 1)
}

func styleToken(s page.Style) theme.Token {
	switch s {
	case page.StyleTitle:
		return theme.Title
	case page.StyleHeading:
		return theme.Heading
	case page.StyleItem:
		return theme.Accent
	case page.StyleMeta:
		return theme.Muted
	}
	return theme.Text
}

// Page writes the document lines visible at offset into buf, one line per
// row, centered horizontally. It returns the sub-line shift the caller
// should apply when drawing with pixel precision.
func Page(buf *Buffer, doc *page.Document, offset, lineHeight float64) float64 {
	buf.Clear()
	lines, _, shift := doc.Visible(offset, lineHeight, buf.Rows)
	x0 := max((buf.Cols-doc.Cols)/2, 0)
	for y, l := range lines {
		if y >= buf.Rows {
			break
		}
		buf.WriteString(x0, y, l.Text, styleToken(l.Style), theme.None)
	}
	return shift
}

// Chrome writes the header, footer and the open panel into buf.
func Chrome(buf *Buffer, v *site.View, ui *UI) {
	buf.Clear()
	if buf.Rows < 3 || buf.Cols < 10 {
		return
	}
	header(buf, v)
	footer(buf, v)
	switch ui.Panel {
	case PanelChat:
		chatPanel(buf, v.Chat(), ui)
	case PanelContact:
		contactPanel(buf, v.Form(), ui)
	case PanelHelp:
		helpPanel(buf)
	}
}

func header(buf *Buffer, v *site.View) {
	x := buf.WriteString(1, 0, v.Content().Profile.Name, theme.Title, theme.None) + 2
	doc := v.Document()
	for i, id := range doc.Sections() {
		s, ok := v.Content().Section(id)
		if !ok || id == "hero" {
			continue
		}
		label := fmt.Sprintf("%d %s", i, s.Title)
		if x+len(label)+2 >= buf.Cols-8 {
			break
		}
		x = buf.WriteString(x, 0, label, theme.Muted, theme.None) + 2
	}
	mode := "[night]"
	if v.Daybreak() {
		mode = "[day]"
	}
	buf.WriteString(buf.Cols-len(mode)-1, 0, mode, theme.Accent, theme.None)
}

func footer(buf *Buffer, v *site.View) {
	y := buf.Rows - 1
	help := "F1 help  F2 day/night  F3 stars  F4 comet  F5 clear  F6 contact  F7 chat  Esc quit"
	buf.WriteString(1, y, truncate(help, buf.Cols-16), theme.Muted, theme.None)

	state := "auto-scroll"
	switch {
	case v.Scroll().Latched():
		state = "manual"
	case !v.Scroll().Enabled():
		state = "paused"
	}
	buf.WriteString(buf.Cols-len(state)-1, y, state, theme.Muted, theme.None)
}

func chatPanel(buf *Buffer, chat *faq.Chat, ui *UI) {
	w := min(chatWidth, buf.Cols-2)
	h := buf.Rows - 2
	x := buf.Cols - w - 1
	y := 1
	buf.Box(x, y, w, h, "Ask me")
	inner := w - 4
	if inner < 4 || h < 8 {
		return
	}

	chips := chat.Chips()
	chipRows := min(len(chips), ChipCount)
	inputY := y + h - 2
	chipY := inputY - 1 - chipRows
	logBottom := chipY - 2

	// Wrap messages newest-first until the log area is full.
	var texts []string
	var toks []theme.Token
	msgs := chat.Messages()
	space := logBottom - (y + 1) + 1
	for i := len(msgs) - 1; i >= 0 && len(texts) < space; i-- {
		m := msgs[i]
		prefix, tok := "you: ", theme.User
		if m.Role == faq.RoleBot {
			prefix, tok = "bot: ", theme.Bot
		}
		wrapped := page.Wrap(prefix+m.Text, inner)
		for j := len(wrapped) - 1; j >= 0 && len(texts) < space; j-- {
			texts = append(texts, wrapped[j])
			toks = append(toks, tok)
		}
	}
	for i := range texts {
		buf.WriteString(x+2, logBottom-i, texts[i], toks[i], theme.Panel)
	}
	if chat.Pending() > 0 && logBottom+1 < chipY {
		buf.WriteString(x+2, logBottom+1, "bot is typing...", theme.Muted, theme.Panel)
	}

	for i := 0; i < chipRows; i++ {
		tok := theme.Muted
		marker := "  "
		if i == ui.Chip {
			tok, marker = theme.Accent, "> "
		}
		buf.WriteString(x+2, chipY+i, truncate(marker+chips[i].Question, inner), tok, theme.Panel)
	}

	input := "> " + ui.Input
	if r := []rune(input); len(r) > inner-1 {
		input = string(r[len(r)-(inner-1):])
	}
	end := buf.WriteString(x+2, inputY, input, theme.Text, theme.Panel)
	if ui.Cursor {
		buf.Set(end, inputY, Block, theme.Cursor, theme.Panel)
	}
}

func contactPanel(buf *Buffer, form *contact.FormState, ui *UI) {
	w := min(formWidth, buf.Cols-2)
	h := min(14, buf.Rows-2)
	x := (buf.Cols - w) / 2
	y := max((buf.Rows-h)/2, 1)
	buf.Box(x, y, w, h, "Contact")
	inner := w - 4
	if inner < 8 || h < 10 {
		return
	}

	row := y + 2
	for f := contact.FieldName; f <= contact.FieldMessage; f++ {
		tok := theme.Muted
		label := "  " + f.String() + ": "
		if f == form.Focus() {
			tok = theme.Accent
			label = "> " + f.String() + ": "
		}
		end := buf.WriteString(x+2, row, label, tok, theme.Panel)
		value := form.Value(f)
		room := inner - len(label) - 1
		if r := []rune(value); len(r) > room && room > 0 {
			value = string(r[len(r)-room:])
		}
		end = buf.WriteString(end, row, value, theme.Text, theme.Panel)
		if f == form.Focus() && ui.Cursor && !form.Sending() {
			buf.Set(end, row, Block, theme.Cursor, theme.Panel)
		}
		row += 2
	}

	if msg, ok := form.Status(); msg != "" {
		tok := theme.Error
		if ok {
			tok = theme.Success
		}
		if form.Sending() {
			tok = theme.Muted
		}
		for i, l := range page.Wrap(msg, inner) {
			if row+i >= y+h-2 {
				break
			}
			buf.WriteString(x+2, row+i, l, tok, theme.Panel)
		}
	}
	buf.WriteString(x+2, y+h-2, truncate("Tab next field  Enter send  Esc close", inner), theme.Muted, theme.Panel)
}

func helpPanel(buf *Buffer) {
	w := min(46, buf.Cols-2)
	h := min(len(KeyHelp)+4, buf.Rows-2)
	x := (buf.Cols - w) / 2
	y := max((buf.Rows-h)/2, 1)
	buf.Box(x, y, w, h, "Keys")
	for i, kv := range KeyHelp {
		row := y + 2 + i
		if row >= y+h-1 {
			break
		}
		buf.WriteString(x+2, row, fmt.Sprintf("%-18s", kv[0]), theme.Accent, theme.Panel)
		buf.WriteString(x+21, row, truncate(kv[1], w-23), theme.Text, theme.Panel)
	}
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return strings.TrimRight(string(r[:n-3]), " ") + "..."
}
