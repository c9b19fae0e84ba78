package page

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightsky-folio/nightsky/internal/content"
)

func TestWrap(t *testing.T) {
	assert.Equal(t, []string{"short"}, Wrap("short", 10))
	assert.Equal(t, []string{"the quick", "brown fox", "jumps"}, Wrap("the quick brown fox jumps", 10))
	assert.Equal(t, []string{"abcde", "fghij", "k end"}, Wrap("abcdefghijk end", 5))
	assert.Equal(t, []string{""}, Wrap("            ", 5))
	assert.Equal(t, []string{"no limit at all"}, Wrap("no limit at all", 0))
}

func TestWrap_CountsRunes(t *testing.T) {
	assert.Equal(t, []string{"résumé à"}, Wrap("résumé à", 8))

	lines := Wrap("Bahati’s résumé-and-curriculum-vitae", 8)
	assert.Equal(t, []string{"Bahati’s", "résumé-a", "nd-curri", "culum-vi", "tae"}, lines)
	for _, l := range lines {
		assert.True(t, utf8.ValidString(l), "line %q", l)
		assert.LessOrEqual(t, utf8.RuneCountInString(l), 8, "line %q", l)
	}
}

func TestBuild_Default(t *testing.T) {
	c, err := content.Default()
	require.NoError(t, err)
	d := Build(c, 40)

	assert.Equal(t, []string{"hero", "about", "projects", "blog", "education", "experience", "services", "contact"}, d.Sections())
	for _, l := range d.Lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(l.Text), 40, "line %q", l.Text)
	}

	hero, ok := d.Anchor("hero")
	require.True(t, ok)
	assert.Equal(t, 0, hero)
	assert.Equal(t, StyleTitle, d.Lines[0].Style)

	exp, ok := d.Anchor("experience")
	require.True(t, ok)
	assert.Equal(t, StyleHeading, d.Lines[exp].Style)
	assert.Equal(t, "== EXPERIENCE ==", d.Lines[exp].Text)
	assert.Equal(t, "experience", d.SectionAt(exp))

	_, ok = d.Anchor("nope")
	assert.False(t, ok)
}

func TestBuild_ItemsAndBullets(t *testing.T) {
	c := &content.Content{Sections: []content.Section{{
		ID:    "work",
		Title: "Work",
		Items: []content.Item{{
			Title:    "Engineer",
			Subtitle: "Acme",
			Period:   "2020",
			Bullets:  []string{"built a very long pipeline of things"},
		}},
	}}}
	d := Build(c, 20)

	var texts []string
	for _, l := range d.Lines {
		if l.Style != StyleBlank {
			texts = append(texts, l.Text)
		}
	}
	assert.Equal(t, []string{
		"== WORK ==",
		"Engineer",
		"Acme - 2020",
		"* built a very long",
		"  pipeline of things",
	}, texts)
}

func TestVisible(t *testing.T) {
	c, err := content.Default()
	require.NoError(t, err)
	d := Build(c, 60)
	require.Greater(t, len(d.Lines), 20)

	lines, first, shift := d.Visible(0, 16, 10)
	assert.Equal(t, 0, first)
	assert.Zero(t, shift)
	assert.Len(t, lines, 11)

	lines, first, shift = d.Visible(16*5+4, 16, 10)
	assert.Equal(t, 5, first)
	assert.Equal(t, 4.0, shift)
	assert.Equal(t, d.Lines[5], lines[0])

	lines, _, _ = d.Visible(d.Height(16)+100, 16, 10)
	assert.Empty(t, lines)

	lines, _, _ = d.Visible(0, 0, 10)
	assert.Nil(t, lines)
}

func TestHeight(t *testing.T) {
	d := &Document{Lines: make([]Line, 12)}
	assert.Equal(t, 192.0, d.Height(16))
}
