package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Highlight marker pair. Escaping is left to the presentation layer.
const (
	MarkOpen  = "<c>"
	MarkClose = "</c>"
)

// Highlight wraps the first case-insensitive occurrence of term in text with
// MarkOpen/MarkClose, keeping the original casing. Text that is empty, does
// not contain term, or already has term marked is returned unchanged.
func Highlight(text, term string) string {
	if term == "" || text == "" {
		return text
	}
	tags := markerSpans(text)
	for _, sp := range tags.inner {
		if end, ok := matchFoldAt(text[sp[0]:sp[1]], term); ok && end == sp[1]-sp[0] {
			return text
		}
	}

	for i := 0; i < len(text); {
		if end, ok := matchFoldAt(text[i:], term); ok && !tags.overlaps(i, i+end) {
			var b strings.Builder
			b.Grow(len(text) + len(MarkOpen) + len(MarkClose))
			b.WriteString(text[:i])
			b.WriteString(MarkOpen)
			b.WriteString(text[i : i+end])
			b.WriteString(MarkClose)
			b.WriteString(text[i+end:])
			return b.String()
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}
	return text
}

// matchFoldAt reports whether s starts with term under per-rune lower-case
// folding and returns the byte length of the match in s.
func matchFoldAt(s, term string) (int, bool) {
	i := 0
	for _, tr := range term {
		if i >= len(s) {
			return 0, false
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if unicode.ToLower(r) != unicode.ToLower(tr) {
			return 0, false
		}
		i += size
	}
	return i, true
}

type spans struct {
	tags  [][2]int // byte ranges of the marker tags themselves
	inner [][2]int // byte ranges between an open and its close tag
}

func (s spans) overlaps(start, end int) bool {
	for _, t := range s.tags {
		if start < t[1] && end > t[0] {
			return true
		}
	}
	return false
}

func markerSpans(text string) spans {
	var out spans
	for off := 0; off < len(text); {
		open := strings.Index(text[off:], MarkOpen)
		if open < 0 {
			break
		}
		open += off
		innerStart := open + len(MarkOpen)
		closeAt := strings.Index(text[innerStart:], MarkClose)
		if closeAt < 0 {
			out.tags = append(out.tags, [2]int{open, innerStart})
			break
		}
		closeAt += innerStart
		out.tags = append(out.tags,
			[2]int{open, innerStart},
			[2]int{closeAt, closeAt + len(MarkClose)})
		out.inner = append(out.inner, [2]int{innerStart, closeAt})
		off = closeAt + len(MarkClose)
	}
	return out
}
