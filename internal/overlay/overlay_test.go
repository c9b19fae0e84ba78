package overlay

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nightsky-folio/nightsky/internal/content"
	"github.com/nightsky-folio/nightsky/internal/frame"
	"github.com/nightsky-folio/nightsky/internal/input"
	"github.com/nightsky-folio/nightsky/internal/site"
	"github.com/nightsky-folio/nightsky/internal/sky"
	"github.com/nightsky-folio/nightsky/internal/theme"
)

const (
	cols = 100
	rows = 40
)

func mountView(t *testing.T) (*site.View, *frame.Loop) {
	t.Helper()
	c, err := content.Default()
	require.NoError(t, err)
	loop := frame.NewLoop()
	v, err := site.Mount(site.Deps{
		Content: c,
		Loop:    loop,
		Bus:     input.NewBus(),
		Logger:  zap.NewNop(),
		Width:   cols,
		Height:  rows,
	}, site.Options{Sky: sky.DefaultConfig()})
	require.NoError(t, err)
	v.Layout(PageColumns(cols), 1, rows)
	t.Cleanup(v.Close)
	return v, loop
}

func findRow(buf *Buffer, sub string) int {
	for y := 0; y < buf.Rows; y++ {
		if strings.Contains(buf.Row(y), sub) {
			return y
		}
	}
	return -1
}

func TestBuffer(t *testing.T) {
	b := NewBuffer(10, 3)
	end := b.WriteString(8, 1, "abc", theme.Text, theme.None)
	assert.Equal(t, 11, end)
	assert.Equal(t, "        ab", b.Row(1))
	assert.Equal(t, 'a', b.Get(8, 1).Rune)
	assert.Equal(t, blank, b.Get(-1, 0))
	assert.Equal(t, "", b.Row(5))

	b.Box(0, 0, 4, 3, "")
	assert.Equal(t, "┌──┐", b.Row(0))
	assert.Equal(t, theme.Panel, b.Get(1, 1).BG)
	assert.Equal(t, "└──┘", b.Row(2))

	b.Resize(2, 2)
	assert.Len(t, b.Cells, 4)
	assert.Equal(t, "", b.Row(0))
}

func TestPageColumns(t *testing.T) {
	assert.Equal(t, MaxPageCols, PageColumns(200))
	assert.Equal(t, 36, PageColumns(40))
	assert.Equal(t, 1, PageColumns(2))
}

func TestPage_CenteredAndStyled(t *testing.T) {
	v, _ := mountView(t)
	buf := NewBuffer(cols, rows+1)
	shift := Page(buf, v.Document(), 0, 1)
	assert.Zero(t, shift)

	x0 := (cols - MaxPageCols) / 2
	cell := buf.Get(x0, 0)
	assert.Equal(t, theme.Title, cell.FG)
	assert.Equal(t, theme.None, cell.BG)
	assert.Contains(t, buf.Row(0), v.Document().Lines[0].Text)

	line, ok := v.Document().Anchor("about")
	require.True(t, ok)
	Page(buf, v.Document(), float64(line), 1)
	assert.Contains(t, buf.Row(0), "== ABOUT ==")
	assert.Equal(t, theme.Heading, buf.Get(x0, 0).FG)
}

func TestChrome_HeaderFooter(t *testing.T) {
	v, _ := mountView(t)
	c := NewControls(v)
	buf := NewBuffer(cols, rows)

	Chrome(buf, v, &c.UI)
	assert.Contains(t, buf.Row(0), v.Content().Profile.Name)
	assert.Contains(t, buf.Row(0), "1 About")
	assert.True(t, strings.HasSuffix(buf.Row(0), "[night]"))
	assert.True(t, strings.HasSuffix(buf.Row(rows-1), "auto-scroll"))

	c.Function(2)
	v.Scroll().PointerDown()
	Chrome(buf, v, &c.UI)
	assert.True(t, strings.HasSuffix(buf.Row(0), "[day]"))
	assert.True(t, strings.HasSuffix(buf.Row(rows-1), "manual"))
}

func TestChrome_ChatPanel(t *testing.T) {
	v, loop := mountView(t)
	c := NewControls(v)
	now := time.Date(2025, 3, 1, 20, 0, 0, 0, time.UTC)

	c.Function(7)
	require.Equal(t, PanelChat, c.UI.Panel)
	require.Equal(t, 1, v.Chat().Len())
	c.Type([]rune("what about your experience")...)
	c.Enter(now)
	assert.Empty(t, c.UI.Input)

	buf := NewBuffer(cols, rows)
	Chrome(buf, v, &c.UI)
	assert.GreaterOrEqual(t, findRow(buf, "Ask me"), 0)
	assert.GreaterOrEqual(t, findRow(buf, "you: what about your experience"), 0)
	assert.GreaterOrEqual(t, findRow(buf, "bot is typing..."), 0)

	for at := now; at.Before(now.Add(time.Second)); at = at.Add(sky.Frame) {
		loop.Tick(at)
	}
	Chrome(buf, v, &c.UI)
	assert.GreaterOrEqual(t, findRow(buf, "bot: "), 0)
	assert.Equal(t, -1, findRow(buf, "bot is typing..."))

	// Highlighted chip is inserted on an empty Enter.
	chips := v.Chat().Chips()
	c.Tab(false)
	assert.Equal(t, 1, c.UI.Chip)
	c.Tab(true)
	c.Tab(true)
	require.Len(t, chips, 17)
	assert.Equal(t, ChipCount-1, c.UI.Chip)
	before := v.Chat().Len()
	c.Enter(now)
	assert.Equal(t, before+2, v.Chat().Len())
	assert.Equal(t, chips[ChipCount-1].Question, v.Chat().Messages()[before].Text)

	for _, q := range []string{"What does an IT specialist do?", "Monitoring tools?"} {
		assert.GreaterOrEqual(t, findRow(buf, q), 0, q)
	}
	assert.Equal(t, -1, findRow(buf, chips[ChipCount].Question))
}

func TestControls_ContactForm(t *testing.T) {
	v, _ := mountView(t)
	c := NewControls(v)
	c.Function(6)
	require.True(t, c.Typing())

	c.Type([]rune("Ada")...)
	c.Enter(time.Time{}) // advances to email
	c.Type([]rune("ada@example.com")...)
	c.Tab(false)
	c.Type([]rune("Hi!!")...)
	c.Backspace()

	f := v.Form()
	assert.Equal(t, "Ada", f.Form().Name)
	assert.Equal(t, "ada@example.com", f.Form().Email)
	assert.Equal(t, "Hi!", f.Form().Message)

	buf := NewBuffer(cols, rows)
	c.UI.Cursor = true
	Chrome(buf, v, &c.UI)
	assert.GreaterOrEqual(t, findRow(buf, "Contact"), 0)
	assert.GreaterOrEqual(t, findRow(buf, "> Message: Hi!"+string(Block)), 0)

	// No client configured: Enter on the last field does not start a send.
	c.Enter(time.Time{})
	assert.False(t, f.Sending())
}

func TestControls_PanelsAndCommands(t *testing.T) {
	v, _ := mountView(t)
	c := NewControls(v)

	assert.False(t, c.Escape())
	c.Function(1)
	assert.Equal(t, PanelHelp, c.UI.Panel)
	buf := NewBuffer(cols, rows)
	Chrome(buf, v, &c.UI)
	assert.GreaterOrEqual(t, findRow(buf, "Keys"), 0)
	assert.GreaterOrEqual(t, findRow(buf, "daybreak"), 0)
	c.Function(1)
	assert.Equal(t, PanelNone, c.UI.Panel)

	c.Function(7)
	assert.True(t, c.Escape())
	assert.Equal(t, PanelNone, c.UI.Panel)

	stars := v.Scene().StarCount()
	c.Function(3)
	assert.Equal(t, stars+StarsPerPress, v.Scene().StarCount())
	c.Function(4)
	assert.Equal(t, 1, v.Scene().CometCount())
	c.Function(5)
	assert.Zero(t, v.Scene().StarCount())
}

func TestControls_ScrollAndSections(t *testing.T) {
	v, _ := mountView(t)
	c := NewControls(v)

	c.Type('2')
	line, _ := v.Document().Anchor(v.Document().Sections()[2])
	assert.Equal(t, float64(line), v.Scroll().Offset())

	c.Scroll(3)
	assert.Equal(t, float64(line+3), v.Scroll().Offset())
	c.Top()
	assert.Zero(t, v.Scroll().Offset())
	c.Scroll(-5)
	assert.Zero(t, v.Scroll().Offset())
}

func TestBlink(t *testing.T) {
	c := &Controls{}
	c.Blink(time.UnixMilli(0))
	assert.True(t, c.UI.Cursor)
	c.Blink(time.UnixMilli(600))
	assert.False(t, c.UI.Cursor)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "hello", truncate("hello", 5))
	assert.Equal(t, "he...", truncate("hello world", 5))
	assert.Equal(t, "hel", truncate("hello", 3))
	assert.Equal(t, "", truncate("hello", 0))
}
