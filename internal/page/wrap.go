package page

import (
	"strings"
	"unicode/utf8"
)

// Wrap splits text into lines of at most width runes. Words longer than
// width are hard-split on rune boundaries.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	if utf8.RuneCountInString(s) <= width {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}

	var result []string
	line, n := "", 0
	for _, w := range words {
		rs := []rune(w)
		for len(rs) > width {
			if line != "" {
				result = append(result, line)
				line, n = "", 0
			}
			result = append(result, string(rs[:width]))
			rs = rs[width:]
		}
		w = string(rs)
		switch {
		case line == "":
			line, n = w, len(rs)
		case n+1+len(rs) > width:
			result = append(result, line)
			line, n = w, len(rs)
		default:
			line += " " + w
			n += 1 + len(rs)
		}
	}
	if line != "" {
		result = append(result, line)
	}
	return result
}
