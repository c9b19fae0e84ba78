package content

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Brian Patrick Bahati", c.Profile.Name)
	assert.Len(t, c.FAQ, 17)
	assert.Equal(t, "What does an IT specialist do?", c.FAQ[0].Question)
	assert.Equal(t, "Soft skills?", c.FAQ[16].Question)
	assert.NotEmpty(t, c.Replies.Fallback)
	assert.NotEmpty(t, c.Replies.Greeting)
	assert.Equal(t, "Reach Brian at bahatibrianp@gmail.com.", c.Replies.Contact)

	for _, id := range []string{"hero", "about", "projects", "blog", "education", "experience", "services", "contact"} {
		_, ok := c.Section(id)
		assert.True(t, ok, "missing section %s", id)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"no name", "replies:\n  fallback: x\n"},
		{"no fallback", "profile:\n  name: A\n"},
		{"section without id", "profile:\n  name: A\nreplies:\n  fallback: x\nsections:\n  - title: T\n"},
		{"duplicate section", "profile:\n  name: A\nreplies:\n  fallback: x\nsections:\n  - id: a\n  - id: a\n"},
		{"faq without answer", "profile:\n  name: A\nreplies:\n  fallback: x\nfaq:\n  - question: q\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("profile: [unterminated"))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrInvalid))
}

func TestParse_DerivesContactReply(t *testing.T) {
	c, err := Parse([]byte("profile:\n  name: Ada\n  email: ada@example.com\nreplies:\n  fallback: x\n"))
	require.NoError(t, err)
	assert.Equal(t, "You can reach Ada at ada@example.com.", c.Replies.Contact)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile:\n  name: Ada\nreplies:\n  fallback: hi\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Ada", c.Profile.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "Brian Patrick Bahati", c.Profile.Name)
}
