package page

import (
	"strings"

	"github.com/nightsky-folio/nightsky/internal/content"
)

// Style tells the renderer how to paint a line.
type Style uint8

const (
	StyleBlank   Style = iota
	StyleTitle         // hero headline
	StyleHeading       // section heading
	StyleBody          // paragraph text
	StyleItem          // project / job / degree title
	StyleMeta          // subtitle and period
	StyleBullet        // bullet point
)

// sectionGap is the number of blank lines between sections, so the sky
// shows through while the page scrolls.
const sectionGap = 6

// Line is one rendered row of the document.
type Line struct {
	Text    string
	Style   Style
	Section string
}

// Document is the page laid out for a fixed column width.
type Document struct {
	Lines   []Line
	Cols    int
	anchors map[string]int
	order   []string
}

// Build lays out every section of c for cols columns.
func Build(c *content.Content, cols int) *Document {
	d := &Document{Cols: cols, anchors: make(map[string]int)}
	for i, s := range c.Sections {
		if i > 0 {
			d.blank(s.ID, sectionGap)
		}
		d.anchors[s.ID] = len(d.Lines)
		d.order = append(d.order, s.ID)

		if s.ID == "hero" {
			d.add(s.ID, StyleTitle, s.Title)
			if c.Profile.Headline != "" {
				d.add(s.ID, StyleMeta, c.Profile.Headline)
			}
		} else {
			d.add(s.ID, StyleHeading, "== "+strings.ToUpper(s.Title)+" ==")
		}
		d.blank(s.ID, 1)

		for _, p := range s.Body {
			d.add(s.ID, StyleBody, p)
			d.blank(s.ID, 1)
		}
		for _, it := range s.Items {
			d.add(s.ID, StyleItem, it.Title)
			meta := it.Subtitle
			if it.Period != "" {
				if meta != "" {
					meta += " - "
				}
				meta += it.Period
			}
			if meta != "" {
				d.add(s.ID, StyleMeta, meta)
			}
			for _, b := range it.Bullets {
				d.addIndented(s.ID, StyleBullet, "* ", "  ", b)
			}
			d.blank(s.ID, 1)
		}
	}
	return d
}

func (d *Document) add(section string, style Style, text string) {
	for _, l := range Wrap(text, d.Cols) {
		d.Lines = append(d.Lines, Line{Text: l, Style: style, Section: section})
	}
}

// addIndented wraps text with a first-line marker and a hanging indent.
func (d *Document) addIndented(section string, style Style, marker, indent, text string) {
	lines := Wrap(text, d.Cols-len(marker))
	for i, l := range lines {
		prefix := indent
		if i == 0 {
			prefix = marker
		}
		d.Lines = append(d.Lines, Line{Text: prefix + l, Style: style, Section: section})
	}
}

func (d *Document) blank(section string, n int) {
	for i := 0; i < n; i++ {
		d.Lines = append(d.Lines, Line{Style: StyleBlank, Section: section})
	}
}

// Height returns the document height for the given line height.
func (d *Document) Height(lineHeight float64) float64 {
	return float64(len(d.Lines)) * lineHeight
}

// Anchor returns the first line of a section.
func (d *Document) Anchor(section string) (int, bool) {
	i, ok := d.anchors[section]
	return i, ok
}

// Sections returns section ids in page order.
func (d *Document) Sections() []string { return d.order }

// Visible returns the lines shown in a viewport of rows lines when the
// page is scrolled by offset pixels. first is the index of the top line
// and shift the sub-line pixel remainder.
func (d *Document) Visible(offset, lineHeight float64, rows int) (lines []Line, first int, shift float64) {
	if lineHeight <= 0 || rows <= 0 || len(d.Lines) == 0 {
		return nil, 0, 0
	}
	if offset < 0 {
		offset = 0
	}
	first = int(offset / lineHeight)
	shift = offset - float64(first)*lineHeight
	if first >= len(d.Lines) {
		return nil, first, shift
	}
	end := min(first+rows+1, len(d.Lines))
	return d.Lines[first:end], first, shift
}

// SectionAt returns the section of the line at index i.
func (d *Document) SectionAt(i int) string {
	if i < 0 || i >= len(d.Lines) {
		return ""
	}
	return d.Lines[i].Section
}
