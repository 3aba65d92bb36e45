package domain

import (
	"slices"
	"strings"
	"unicode"
)

// Tag is a hierarchical label such as @personal/tasks.
// Segments in brackets or parentheses keep their delimiters.
type Tag struct {
	Segments []string
}

// NewTag creates a tag from its path segments.
func NewTag(segments ...string) Tag {
	return Tag{Segments: segments}
}

// Equal reports whether both tags have the same segments.
func (t Tag) Equal(other Tag) bool {
	return slices.Equal(t.Segments, other.Segments)
}

// Segment returns the segment at depth, or false if the tag is shallower.
func (t Tag) Segment(depth int) (string, bool) {
	if depth < 0 || depth >= len(t.Segments) {
		return "", false
	}
	return t.Segments[depth], true
}

// String renders the tag as written in a description.
func (t Tag) String() string {
	return "@" + strings.Join(t.Segments, "/")
}

// ParseTags extracts all tags from text in order of appearance.
//
// A tag starts at '@' followed by a non-whitespace character and consists of
// '/'-separated segments. A segment is one of:
//   - a bracket span "[[...]]", balanced, kept verbatim
//   - a paren span "(...)" up to the first ')', kept verbatim
//   - a plain run stopping before '/', whitespace or '@'
//
// Plain segments cannot contain spaces: "@p/Project X" yields [p Project].
func ParseTags(text string) []Tag {
	s := &tagScanner{runes: []rune(text)}
	var tags []Tag
	for s.pos < len(s.runes) {
		c := s.next()
		if c != '@' || s.done() || unicode.IsSpace(s.peek()) {
			continue
		}
		if tag, ok := s.scanTag(); ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

type tagScanner struct {
	runes []rune
	pos   int
}

func (s *tagScanner) done() bool { return s.pos >= len(s.runes) }

func (s *tagScanner) peek() rune { return s.runes[s.pos] }

func (s *tagScanner) next() rune {
	c := s.runes[s.pos]
	s.pos++
	return c
}

// scanTag reads segments after an '@'. Empty segments are dropped.
func (s *tagScanner) scanTag() (Tag, bool) {
	var segments []string
	for {
		if seg := s.scanSegment(); seg != "" {
			segments = append(segments, seg)
		}
		if s.done() || s.peek() != '/' {
			break
		}
		s.pos++
	}
	if len(segments) == 0 {
		return Tag{}, false
	}
	return Tag{Segments: segments}, true
}

func (s *tagScanner) scanSegment() string {
	if s.done() {
		return ""
	}
	var b strings.Builder
	switch s.peek() {
	case '[':
		depth := 0
		for !s.done() {
			c := s.next()
			b.WriteRune(c)
			switch c {
			case '[':
				depth++
			case ']':
				depth--
			}
			if depth == 0 && strings.HasSuffix(b.String(), "]]") {
				break
			}
		}
	case '(':
		for !s.done() {
			c := s.next()
			b.WriteRune(c)
			if c == ')' {
				break
			}
		}
	default:
		for !s.done() {
			c := s.peek()
			if c == '/' || c == '@' || unicode.IsSpace(c) {
				break
			}
			b.WriteRune(s.next())
		}
	}
	return b.String()
}
