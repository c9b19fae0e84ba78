package contact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type received struct {
	mu    sync.Mutex
	forms []Form
	ctype string
}

// newBackend starts a fake form backend that answers with status.
func newBackend(t *testing.T, status int) (*httptest.Server, *received) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	got := &received{}
	r := gin.New()
	r.POST("/f/contact", func(c *gin.Context) {
		got.mu.Lock()
		got.forms = append(got.forms, Form{
			Name:    c.PostForm("name"),
			Email:   c.PostForm("email"),
			Message: c.PostForm("message"),
		})
		got.ctype = c.ContentType()
		got.mu.Unlock()
		c.JSON(status, gin.H{"ok": status < 300})
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, got
}

var validForm = Form{Name: "Ada", Email: "ada@example.com", Message: "Hello there"}

func TestSubmit_Success(t *testing.T) {
	srv, got := newBackend(t, http.StatusOK)
	c := NewClient(Options{Endpoint: srv.URL + "/f/contact", FallbackEmail: "me@brian.dev"}, zap.NewNop())

	res := c.Submit(context.Background(), validForm)
	require.NoError(t, res.Err)
	assert.True(t, res.OK)

	require.Len(t, got.forms, 1)
	assert.Equal(t, validForm, got.forms[0])
	assert.Equal(t, "application/x-www-form-urlencoded", got.ctype)
}

func TestSubmit_ServerErrorNamesFallback(t *testing.T) {
	srv, got := newBackend(t, http.StatusUnprocessableEntity)
	c := NewClient(Options{Endpoint: srv.URL + "/f/contact", FallbackEmail: "me@brian.dev"}, zap.NewNop())

	res := c.Submit(context.Background(), validForm)
	assert.False(t, res.OK)
	assert.Error(t, res.Err)
	assert.Contains(t, res.Message, "me@brian.dev")
	// One attempt, no retry.
	assert.Len(t, got.forms, 1)
}

func TestSubmit_Unreachable(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK)
	url := srv.URL + "/f/contact"
	srv.Close()

	c := NewClient(Options{Endpoint: url, FallbackEmail: "me@brian.dev"}, zap.NewNop())
	res := c.Submit(context.Background(), validForm)
	assert.False(t, res.OK)
	assert.Contains(t, res.Message, "me@brian.dev")
}

func TestSubmit_NoEndpoint(t *testing.T) {
	c := NewClient(Options{FallbackEmail: "me@brian.dev"}, zap.NewNop())
	res := c.Submit(context.Background(), validForm)
	assert.ErrorIs(t, res.Err, ErrNoEndpoint)
	assert.Contains(t, res.Message, "me@brian.dev")
}

func TestSubmit_Invalid(t *testing.T) {
	srv, got := newBackend(t, http.StatusOK)
	c := NewClient(Options{Endpoint: srv.URL + "/f/contact"}, zap.NewNop())

	for _, f := range []Form{
		{Email: "ada@example.com", Message: "hi"},
		{Name: "Ada", Email: "ada.example.com", Message: "hi"},
		{Name: "Ada", Email: "ada@", Message: "hi"},
		{Name: "Ada", Email: "ada@example.com", Message: "   "},
	} {
		res := c.Submit(context.Background(), f)
		assert.ErrorIs(t, res.Err, ErrIncomplete, "%+v", f)
	}
	assert.Empty(t, got.forms)
}

func TestSubmit_Throttled(t *testing.T) {
	srv, got := newBackend(t, http.StatusOK)
	c := NewClient(Options{Endpoint: srv.URL + "/f/contact", PerMinute: 1, Burst: 1, FallbackEmail: "me@brian.dev"}, zap.NewNop())

	assert.True(t, c.Submit(context.Background(), validForm).OK)
	res := c.Submit(context.Background(), validForm)
	assert.ErrorIs(t, res.Err, ErrThrottled)
	assert.Contains(t, res.Message, "me@brian.dev")
	assert.Len(t, got.forms, 1)
}

func TestSubmit_CanceledContext(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK)
	c := NewClient(Options{Endpoint: srv.URL + "/f/contact"}, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := c.Submit(ctx, validForm)
	assert.False(t, res.OK)
	assert.ErrorIs(t, res.Err, context.Canceled)
}
