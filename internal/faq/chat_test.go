package faq

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/nightsky-folio/nightsky/internal/content"
	"github.com/nightsky-folio/nightsky/internal/frame"
)

var t0 = time.Date(2026, 3, 1, 21, 0, 0, 0, time.UTC)

func newTestChat(t *testing.T) (*Chat, *frame.Loop) {
	t.Helper()
	r, _ := defaultResponder(t)
	loop := frame.NewLoop()
	loop.Tick(t0)
	return NewChat(r, loop, 600*time.Millisecond, zap.NewNop()), loop
}

func TestNewChat_OpensWithGreeting(t *testing.T) {
	chat, _ := newTestChat(t)

	msgs := chat.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, RoleBot, msgs[0].Role)
	assert.Equal(t, "Hi, I’m Moon Bot. Ask about Brian, IT careers, skills, tools, or type “faq”.", msgs[0].Text)
	assert.Equal(t, 0, chat.Pending())
}

func TestNewChat_NoGreeting(t *testing.T) {
	r := NewResponder(&content.Content{
		Profile: content.Profile{Name: "Ada"},
		Replies: content.Replies{Fallback: "fallback"},
	})
	chat := NewChat(r, frame.NewLoop(), 0, nil)
	assert.Equal(t, 0, chat.Len())
}

func TestSubmit_UserNowBotLater(t *testing.T) {
	chat, loop := newTestChat(t)

	require.True(t, chat.Submit("Any experience?", t0))
	require.Equal(t, 2, chat.Len())
	assert.Equal(t, RoleUser, chat.Messages()[1].Role)
	assert.Equal(t, 1, chat.Pending())

	loop.Tick(t0.Add(300 * time.Millisecond))
	assert.Equal(t, 2, chat.Len())

	loop.Tick(t0.Add(600 * time.Millisecond))
	require.Equal(t, 3, chat.Len())
	bot := chat.Messages()[2]
	assert.Equal(t, RoleBot, bot.Role)
	assert.Equal(t, chat.responder.replies.Experience, bot.Text)
	assert.Equal(t, 0, chat.Pending())

	// Exactly once
	loop.Tick(t0.Add(5 * time.Second))
	assert.Equal(t, 3, chat.Len())
}

func TestSubmit_OneReplyPerSubmission(t *testing.T) {
	chat, loop := newTestChat(t)

	for _, q := range []string{"faq", "blog", "email", "xyzzy"} {
		chat.Submit(q, t0)
	}
	assert.Equal(t, 4, chat.Pending())
	for i := 1; i <= 10; i++ {
		loop.Tick(t0.Add(time.Duration(i) * 200 * time.Millisecond))
	}

	msgs := chat.Messages()[1:]
	require.Len(t, msgs, 8)
	users, bots := 0, 0
	ids := map[uuid.UUID]bool{}
	for _, m := range msgs {
		if m.Role == RoleUser {
			users++
		} else {
			bots++
		}
		ids[m.ID] = true
	}
	assert.Equal(t, 4, users)
	assert.Equal(t, 4, bots)
	assert.Len(t, ids, 8)
}

func TestSubmit_IgnoresBlank(t *testing.T) {
	chat, _ := newTestChat(t)
	assert.False(t, chat.Submit("   ", t0))
	assert.Equal(t, 1, chat.Len())
	assert.Equal(t, 0, chat.Pending())
}

func TestInsertChip_BypassesResponder(t *testing.T) {
	chat, _ := newTestChat(t)
	chips := chat.Chips()
	require.NotEmpty(t, chips)

	require.NoError(t, chat.InsertChip(0, t0))
	msgs := chat.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, chips[0].Question, msgs[1].Text)
	assert.Equal(t, chips[0].Answer, msgs[2].Text)
	assert.Equal(t, RoleBot, msgs[2].Role)
	assert.Equal(t, 0, chat.Pending())

	assert.Error(t, chat.InsertChip(len(chips), t0))
	assert.Error(t, chat.InsertChip(-1, t0))
}

func TestMessages_AreCopies(t *testing.T) {
	chat, _ := newTestChat(t)
	require.NoError(t, chat.InsertChip(0, t0))

	msgs := chat.Messages()
	msgs[0].Text = "changed"
	assert.NotEqual(t, "changed", chat.Messages()[0].Text)
}

func TestRecent(t *testing.T) {
	chat, _ := newTestChat(t)
	assert.Nil(t, chat.Recent(0))
	assert.Len(t, chat.Recent(3), 1)
	require.NoError(t, chat.InsertChip(0, t0))
	require.NoError(t, chat.InsertChip(1, t0))

	recent := chat.Recent(3)
	require.Len(t, recent, 3)
	assert.Equal(t, chat.Messages()[4], recent[2])
	assert.Len(t, chat.Recent(50), 5)
}

func TestClose_DropsPendingReplies(t *testing.T) {
	chat, loop := newTestChat(t)
	chat.Submit("faq", t0)
	chat.Close()

	loop.Tick(t0.Add(time.Second))
	assert.Equal(t, 2, chat.Len())
	assert.Equal(t, 0, loop.Len())
}

func TestRole_String(t *testing.T) {
	assert.Equal(t, "user", RoleUser.String())
	assert.Equal(t, "bot", RoleBot.String())
}
