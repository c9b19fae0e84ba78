package site

import (
	"time"

	"go.uber.org/zap"

	"github.com/nightsky-folio/nightsky/internal/contact"
)

// Daybreak reports whether the day theme is on.
func (v *View) Daybreak() bool { return v.daybreak }

// SetDaybreak switches theme. The scene and the scroll driver both read
// the same flag.
func (v *View) SetDaybreak(on bool) {
	v.daybreak = on
	v.scene.SetDaybreak(on)
}

// ToggleDaybreak flips the theme and returns the new state.
func (v *View) ToggleDaybreak() bool {
	v.SetDaybreak(!v.daybreak)
	v.logger.Debug("daybreak toggled", zap.Bool("on", v.daybreak))
	return v.daybreak
}

// AddStars adds n stars at random positions.
func (v *View) AddStars(n int) {
	if v.closed || n <= 0 {
		return
	}
	v.scene.AddStars(n)
}

// CommitNow launches one comet right away.
func (v *View) CommitNow() bool {
	if v.closed {
		return false
	}
	return v.scene.CommitNow()
}

// Clear removes every star and comet.
func (v *View) Clear() {
	if v.closed {
		return
	}
	v.scene.Clear()
}

// Ask submits a chat question. The reply arrives through the loop.
func (v *View) Ask(text string, now time.Time) bool {
	if v.closed {
		return false
	}
	return v.chat.Submit(text, now)
}

// Chip inserts the i-th FAQ pair into the chat.
func (v *View) Chip(i int, now time.Time) error {
	if v.closed {
		return ErrClosed
	}
	return v.chat.InsertChip(i, now)
}

// JumpTo scrolls to a section heading.
func (v *View) JumpTo(section string) bool {
	line, ok := v.doc.Anchor(section)
	if !ok {
		return false
	}
	v.scroll.ScrollTo(float64(line)*v.lineHeight, v.viewport, v.doc.Height(v.lineHeight))
	return true
}

// SendContact posts the current form in the background. The result is
// applied on a later tick by a temporary loop entry, so the form is only
// ever touched from the loop goroutine. It returns false when there is
// nothing to send with, or a submission is already in flight.
func (v *View) SendContact() bool {
	if v.closed || v.client == nil || !v.form.Begin() {
		return false
	}
	h, err := v.loop.Start(TaskContact, func(time.Time, time.Duration) {
		select {
		case res := <-v.results:
			v.form.Apply(res)
			v.sending.Cancel()
			v.sending = nil
		default:
		}
	})
	if err != nil {
		v.form.Apply(contact.Result{Message: "A message is already being sent.", Err: err})
		return false
	}
	v.sending = h

	form := v.form.Form()
	ctx, client, results := v.ctx, v.client, v.results
	go func() {
		results <- client.Submit(ctx, form)
	}()
	return true
}
