package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is returned when a content document is missing required parts.
var ErrInvalid = errors.New("invalid content")

//go:embed default.yaml
var defaultDoc []byte

// Content is everything the page shows that is not animation: the
// subject's profile, the page sections, the FAQ and the scripted replies.
type Content struct {
	Profile  Profile   `yaml:"profile"`
	Sections []Section `yaml:"sections"`
	FAQ      []FAQ     `yaml:"faq"`
	Replies  Replies   `yaml:"replies"`
}

// Profile identifies the site's subject.
type Profile struct {
	Name     string   `yaml:"name"`
	Headline string   `yaml:"headline"`
	Email    string   `yaml:"email"`
	Aliases  []string `yaml:"aliases"` // identity phrases, e.g. "who is brian"
}

// Section is one block of the page (hero, about, projects, ...).
type Section struct {
	ID    string   `yaml:"id"`
	Title string   `yaml:"title"`
	Body  []string `yaml:"body"`
	Items []Item   `yaml:"items"`
}

// Item is an entry inside a section: a project, a job, a degree.
type Item struct {
	Title    string   `yaml:"title"`
	Subtitle string   `yaml:"subtitle"`
	Period   string   `yaml:"period"`
	Bullets  []string `yaml:"bullets"`
}

// FAQ is a static question/answer pair. Also offered as a chip.
type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Replies are the fixed answers of the chat responder.
type Replies struct {
	Greeting    string `yaml:"greeting"` // first bot message of every chat
	FAQIntro    string `yaml:"faq_intro"`
	Bio         string `yaml:"bio"`
	Experience  string `yaml:"experience"`
	Credentials string `yaml:"credentials"`
	Blog        string `yaml:"blog"`
	Contact     string `yaml:"contact"`
	Fallback    string `yaml:"fallback"`
}

// Parse decodes and validates a YAML content document.
func Parse(data []byte) (*Content, error) {
	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse content: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a content document from disk. An empty path yields the
// embedded default.
func Load(path string) (*Content, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	return Parse(data)
}

// Default returns the embedded content document.
func Default() (*Content, error) {
	return Parse(defaultDoc)
}

func (c *Content) validate() error {
	if strings.TrimSpace(c.Profile.Name) == "" {
		return fmt.Errorf("%w: profile.name is required", ErrInvalid)
	}
	if strings.TrimSpace(c.Replies.Fallback) == "" {
		return fmt.Errorf("%w: replies.fallback is required", ErrInvalid)
	}
	seen := make(map[string]bool, len(c.Sections))
	for i, s := range c.Sections {
		if s.ID == "" {
			return fmt.Errorf("%w: section %d has no id", ErrInvalid, i)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: duplicate section id %q", ErrInvalid, s.ID)
		}
		seen[s.ID] = true
	}
	for i, f := range c.FAQ {
		if strings.TrimSpace(f.Question) == "" || strings.TrimSpace(f.Answer) == "" {
			return fmt.Errorf("%w: faq %d needs a question and an answer", ErrInvalid, i)
		}
	}
	if c.Replies.Contact == "" && c.Profile.Email != "" {
		c.Replies.Contact = "You can reach " + c.Profile.Name + " at " + c.Profile.Email + "."
	}
	return nil
}

// Section returns the section with the given id.
func (c *Content) Section(id string) (Section, bool) {
	for _, s := range c.Sections {
		if s.ID == id {
			return s, true
		}
	}
	return Section{}, false
}
