package faq

import (
	"regexp"
	"strings"

	"github.com/nightsky-folio/nightsky/internal/content"
)

// ListDelimiter separates questions in the "faq" reply.
const ListDelimiter = " • "

var nonWord = regexp.MustCompile(`\W+`)

// Responder maps free text to a canned reply. It has no state; the same
// input always yields the same reply.
type Responder struct {
	faq     []content.FAQ
	tokens  [][]string // lower-cased question tokens, per FAQ entry
	aliases []string
	replies content.Replies
}

// NewResponder prepares a responder over the given content.
func NewResponder(c *content.Content) *Responder {
	r := &Responder{
		faq:     c.FAQ,
		replies: c.Replies,
	}
	for _, a := range c.Profile.Aliases {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			r.aliases = append(r.aliases, a)
		}
	}
	r.tokens = make([][]string, len(c.FAQ))
	for i, f := range c.FAQ {
		r.tokens[i] = questionTokens(f.Question)
	}
	return r
}

// Respond evaluates the keyword rules top to bottom; the first match wins.
func (r *Responder) Respond(text string) string {
	q := strings.ToLower(strings.TrimSpace(text))

	switch {
	case hasToken(q, "faq") || strings.Contains(q, "faqs"):
		return r.listQuestions()
	case containsAny(q, r.aliases...):
		return r.replies.Bio
	case strings.Contains(q, "experience"):
		return r.replies.Experience
	case containsAny(q, "education", "cert"):
		return r.replies.Credentials
	case strings.Contains(q, "blog"):
		return r.replies.Blog
	case containsAny(q, "contact", "email"):
		return r.replies.Contact
	}

	for i, toks := range r.tokens {
		if containsAny(q, toks...) {
			return r.faq[i].Answer
		}
	}
	return r.replies.Fallback
}

// FAQ returns the static question/answer pairs.
func (r *Responder) FAQ() []content.FAQ { return r.faq }

// Greeting returns the bot's opening line, or "" when there is none.
func (r *Responder) Greeting() string { return r.replies.Greeting }

func (r *Responder) listQuestions() string {
	qs := make([]string, len(r.faq))
	for i, f := range r.faq {
		qs[i] = f.Question
	}
	list := strings.Join(qs, ListDelimiter)
	if r.replies.FAQIntro == "" {
		return list
	}
	return r.replies.FAQIntro + " " + list
}

func questionTokens(question string) []string {
	var out []string
	for _, tok := range nonWord.Split(strings.ToLower(question), -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func hasToken(q, want string) bool {
	for _, tok := range nonWord.Split(q, -1) {
		if tok == want {
			return true
		}
	}
	return false
}

func containsAny(q string, subs ...string) bool {
	for _, s := range subs {
		if s != "" && strings.Contains(q, s) {
			return true
		}
	}
	return false
}
