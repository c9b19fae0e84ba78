package faq

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nightsky-folio/nightsky/internal/content"
	"github.com/nightsky-folio/nightsky/internal/frame"
)

// DefaultReplyDelay paces bot replies so they read like typing.
const DefaultReplyDelay = 600 * time.Millisecond

// Role identifies who wrote a chat message.
type Role uint8

const (
	RoleUser Role = iota
	RoleBot
)

func (r Role) String() string {
	if r == RoleBot {
		return "bot"
	}
	return "user"
}

// Message is a single chat entry. Messages are never changed once logged.
type Message struct {
	ID   uuid.UUID
	Role Role
	Text string
	At   time.Time
}

// Scheduler runs a callback once after a delay. *frame.Loop implements it.
type Scheduler interface {
	After(delay time.Duration, fn func(now time.Time)) *frame.Handle
}

// Chat is the widget's message log. It grows for the whole session; no
// cap is applied.
type Chat struct {
	responder *Responder
	sched     Scheduler
	delay     time.Duration
	logger    *zap.Logger

	log     []Message
	pending map[*frame.Handle]struct{}
}

// NewChat creates a chat whose log opens with the responder's greeting,
// if it has one. A non-positive delay uses DefaultReplyDelay.
func NewChat(r *Responder, sched Scheduler, delay time.Duration, logger *zap.Logger) *Chat {
	if delay <= 0 {
		delay = DefaultReplyDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &Chat{
		responder: r,
		sched:     sched,
		delay:     delay,
		logger:    logger,
		pending:   make(map[*frame.Handle]struct{}),
	}
	if g := r.Greeting(); g != "" {
		c.append(RoleBot, g, time.Now())
	}
	return c
}

// Submit logs the user's text right away and schedules exactly one bot
// reply after the pacing delay. Blank input is ignored and returns false.
func (c *Chat) Submit(text string, now time.Time) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	c.append(RoleUser, text, now)

	reply := c.responder.Respond(text)
	var h *frame.Handle
	h = c.sched.After(c.delay, func(at time.Time) {
		delete(c.pending, h)
		c.append(RoleBot, reply, at)
	})
	c.pending[h] = struct{}{}
	c.logger.Debug("chat question", zap.String("text", text), zap.Int("pending", len(c.pending)))
	return true
}

// InsertChip logs the i-th FAQ pair directly, without the responder or
// the delay.
func (c *Chat) InsertChip(i int, now time.Time) error {
	chips := c.responder.FAQ()
	if i < 0 || i >= len(chips) {
		return fmt.Errorf("chip %d out of range [0, %d)", i, len(chips))
	}
	c.append(RoleUser, chips[i].Question, now)
	c.append(RoleBot, chips[i].Answer, now)
	return nil
}

// Chips returns the quick-insert pairs.
func (c *Chat) Chips() []content.FAQ { return c.responder.FAQ() }

func (c *Chat) append(role Role, text string, at time.Time) {
	c.log = append(c.log, Message{ID: uuid.New(), Role: role, Text: text, At: at})
}

// Len returns the number of logged messages.
func (c *Chat) Len() int { return len(c.log) }

// Pending returns the number of replies not yet delivered.
func (c *Chat) Pending() int { return len(c.pending) }

// Messages returns a copy of the whole log.
func (c *Chat) Messages() []Message {
	return append([]Message(nil), c.log...)
}

// Recent returns the last n messages (or fewer if the log is shorter).
func (c *Chat) Recent(n int) []Message {
	if n > len(c.log) {
		n = len(c.log)
	}
	if n <= 0 {
		return nil
	}
	return c.log[len(c.log)-n:]
}

// Close drops replies that have not been delivered yet.
func (c *Chat) Close() {
	for h := range c.pending {
		h.Cancel()
	}
	clear(c.pending)
}
