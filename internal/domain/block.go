package domain

import (
	"strings"
	"unicode"
)

// DefaultBlockMinutes is the duration of a block without a well-formed range.
const DefaultBlockMinutes = 30

// Block is one scheduled activity of a day plan.
// Duration and Tags are derived from Period and Description when the block
// is created and are never recomputed.
type Block struct {
	Period      string // "HH:MM - HH:MM", "HH:MM" or empty
	Origin      string // Name of the owning origin
	Description string // Free text, may contain tags
	Tags        []Tag  // Tags found in Description, in order of appearance
	Duration    int    // Minutes
}

// NewBlock creates a block and derives its duration and tags.
func NewBlock(period, origin, description string) Block {
	return Block{
		Period:      period,
		Origin:      origin,
		Description: description,
		Duration:    PeriodMinutes(period),
		Tags:        ParseTags(description),
	}
}

// ParseBlock parses one block string. It never fails: text without a
// leading period gets an empty period and the default duration, text
// without an origin override gets defaultOrigin.
//
// Grammar: [period] [ws] ["(" origin ")"] [ws] description
func ParseBlock(defaultOrigin, text string) Block {
	rest := strings.TrimLeftFunc(text, unicode.IsSpace)

	period, n := scanPeriod(rest)
	rest = strings.TrimLeftFunc(rest[n:], unicode.IsSpace)

	origin := defaultOrigin
	if o, n, ok := scanOrigin(rest); ok {
		origin = o
		rest = rest[n:]
	}

	return NewBlock(period, origin, strings.TrimSpace(rest))
}

// IsOriginalTo reports whether the block is owned by origin.
func (b Block) IsOriginalTo(origin string) bool {
	return b.Origin == origin
}

// HasTopLevelTag reports whether any tag starts with segment.
func (b Block) HasTopLevelTag(segment string) bool {
	for _, t := range b.Tags {
		if s, ok := t.Segment(0); ok && s == segment {
			return true
		}
	}
	return false
}

// Render formats the block as a line. The origin is included when
// withOrigin is set; this is how foreign blocks are written.
//
// Format: "{period} ({origin}) {description}" or "{period} {description}".
func (b Block) Render(withOrigin bool) string {
	parts := make([]string, 0, 3)
	if b.Period != "" {
		parts = append(parts, b.Period)
	}
	if withOrigin {
		parts = append(parts, "("+b.Origin+")")
	}
	if b.Description != "" {
		parts = append(parts, b.Description)
	}
	return strings.Join(parts, " ")
}

// descriptionLooksLikeOrigin reports whether the description, written
// right after the period, would be read as an origin override.
func (b Block) descriptionLooksLikeOrigin() bool {
	_, _, ok := scanOrigin(b.Description)
	return ok
}

// PeriodMinutes returns the length of a "HH:MM - HH:MM" period in minutes.
// Missing ends, malformed times and ranges ending before they start yield
// DefaultBlockMinutes. There is no overnight wraparound.
func PeriodMinutes(period string) int {
	parts := strings.Split(period, "-")
	if len(parts) != 2 {
		return DefaultBlockMinutes
	}
	start, ok := clockMinutes(strings.TrimSpace(parts[0]))
	if !ok {
		return DefaultBlockMinutes
	}
	end, ok := clockMinutes(strings.TrimSpace(parts[1]))
	if !ok || end < start {
		return DefaultBlockMinutes
	}
	return end - start
}

// clockMinutes converts "HH:MM" to minutes since midnight.
func clockMinutes(s string) (int, bool) {
	if !isClock(s) {
		return 0, false
	}
	h := int(s[0]-'0')*10 + int(s[1]-'0')
	m := int(s[3]-'0')*10 + int(s[4]-'0')
	if h >= 24 || m >= 60 {
		return 0, false
	}
	return h*60 + m, true
}

// isClock reports whether s starts with the shape DD:DD.
func isClock(s string) bool {
	return len(s) >= 5 &&
		isDigit(s[0]) && isDigit(s[1]) && s[2] == ':' && isDigit(s[3]) && isDigit(s[4])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// scanPeriod matches "HH:MM - HH:MM" or "HH:MM" at the start of s and
// returns the period text and the number of bytes consumed. Only the
// first period is taken; anything after it belongs to the description.
func scanPeriod(s string) (string, int) {
	if !isClock(s) {
		return "", 0
	}
	end := 5

	i := skipSpaces(s, end)
	if i < len(s) && s[i] == '-' {
		j := skipSpaces(s, i+1)
		if isClock(s[j:]) {
			end = j + 5
		}
	}
	return s[:end], end
}

// scanOrigin matches a leading "(...)" without nested parentheses and
// returns its trimmed content and the number of bytes consumed.
func scanOrigin(s string) (string, int, bool) {
	if !strings.HasPrefix(s, "(") {
		return "", 0, false
	}
	closing := strings.IndexByte(s, ')')
	if closing < 0 {
		return "", 0, false
	}
	inner := s[1:closing]
	if strings.ContainsRune(inner, '(') {
		return "", 0, false
	}
	origin := strings.TrimSpace(inner)
	if origin == "" {
		return "", 0, false
	}
	return origin, closing + 1, true
}

func skipSpaces(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}
