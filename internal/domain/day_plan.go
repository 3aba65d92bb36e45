package domain

import (
	"path/filepath"
	"slices"
	"strings"
)

// Source describes where a day plan was read from. It is one of
// MarkdownSource or CalendarSource and is only inspected by the
// persistence layer and for resolving the plan's day.
type Source interface {
	// Identifier names the source for grouping and reporting.
	Identifier() string
	isSource()
}

// MarkdownSource is a daily note inside an origin directory.
type MarkdownSource struct {
	AbsPath string // Absolute path of the note file
	BaseDir string // Origin directory the note belongs to
	Section string // Heading of the block list
}

// Identifier returns the note id.
func (s MarkdownSource) Identifier() string {
	return s.NoteID()
}

// NoteID returns the note path relative to the origin directory, e.g.
// "2025/2025-11-12.md". It falls back to the absolute path when the note
// is not inside BaseDir.
func (s MarkdownSource) NoteID() string {
	rel, err := filepath.Rel(s.BaseDir, s.AbsPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return s.AbsPath
	}
	return filepath.ToSlash(rel)
}

func (MarkdownSource) isSource() {}

// CalendarSource is a calendar feed. Plans from it are never persisted.
type CalendarSource struct {
	URI string
}

// Identifier returns the feed URI.
func (s CalendarSource) Identifier() string {
	return s.URI
}

func (CalendarSource) isSource() {}

// DayPlan is one origin's view of one calendar day.
// DayPlan values are never modified in place; transforms return new plans.
type DayPlan struct {
	Source Source  // Where the plan comes from and is written to
	Date   *Date   // Explicit day, e.g. from note front matter
	Origin string  // Name of the owning origin
	Blocks []Block // Blocks in parsed order
}

// NewDayPlan creates a day plan by parsing block strings for origin.
func NewDayPlan(origin string, src Source, blockStrings []string) DayPlan {
	blocks := make([]Block, 0, len(blockStrings))
	for _, s := range blockStrings {
		blocks = append(blocks, ParseBlock(origin, s))
	}
	return DayPlan{Origin: origin, Source: src, Blocks: blocks}
}

// WithDate returns a copy of the plan with an explicit day.
func (p DayPlan) WithDate(d Date) DayPlan {
	p.Date = &d
	return p
}

// Day resolves the calendar day of the plan: the explicit date if set,
// otherwise a YYYY-MM-DD found in the file name or the source identifier.
func (p DayPlan) Day() (Date, bool) {
	if p.Date != nil {
		return *p.Date, true
	}
	if p.Source == nil {
		return Date{}, false
	}
	if ms, ok := p.Source.(MarkdownSource); ok {
		if d, ok := FindDate(filepath.Base(ms.AbsPath)); ok {
			return d, true
		}
	}
	return FindDate(p.Source.Identifier())
}

// OnlyOriginalBlocks returns the blocks owned by the plan's origin in order.
func (p DayPlan) OnlyOriginalBlocks() []Block {
	var out []Block
	for _, b := range p.Blocks {
		if b.IsOriginalTo(p.Origin) {
			out = append(out, b)
		}
	}
	return out
}

// WithUpdatedBlocks returns a copy of the plan holding blocks sorted by
// period text. Blocks without a period come first; zero-padded times
// sort chronologically.
func (p DayPlan) WithUpdatedBlocks(blocks []Block) DayPlan {
	sorted := slices.Clone(blocks)
	slices.SortStableFunc(sorted, func(a, b Block) int {
		return strings.Compare(a.Period, b.Period)
	})
	p.Blocks = sorted
	return p
}

// RenderBlocks renders every block as a line, foreign blocks with their
// origin. Own blocks whose description starts like an origin override keep
// their origin too, so the line parses back to the same block.
func (p DayPlan) RenderBlocks() []string {
	lines := make([]string, 0, len(p.Blocks))
	for _, b := range p.Blocks {
		lines = append(lines, b.Render(!b.IsOriginalTo(p.Origin) || b.descriptionLooksLikeOrigin()))
	}
	return lines
}

// IsPersistent reports whether the plan is written back to a file.
func (p DayPlan) IsPersistent() bool {
	_, ok := p.Source.(MarkdownSource)
	return ok
}
