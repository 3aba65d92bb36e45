package domain

import (
	"fmt"
	"math"
	"slices"
)

// BreakTag is the top-level tag segment excluded from time spent.
const BreakTag = "break"

// TagTime is the time spent on one tag segment at one depth, with the
// breakdown of the next depth in SubTags.
type TagTime struct {
	Tag     string
	SubTags []TagTime
	Minutes int
}

// TotalTimeSpent sums the durations of all original blocks of plans,
// leaving out blocks tagged @break at the top level. @breakfast is not a break.
func TotalTimeSpent(plans []DayPlan) int {
	total := 0
	for _, p := range plans {
		for _, b := range p.OnlyOriginalBlocks() {
			if b.HasTopLevelTag(BreakTag) {
				continue
			}
			total += b.Duration
		}
	}
	return total
}

// TimePerTag groups blocks by their tag segment at depth and sums the
// durations of each group, recursing with depth+1 into the blocks of each
// group. Blocks without a segment at depth do not count at that level. A
// block counts once per distinct segment even if several of its tags share
// it. Groups are ordered by first appearance.
//
// Sub tags are not restricted to the group's tag path: a block tagged
// "@p/a @q/b" lists both "a" and "b" under "p" and under "q".
func TimePerTag(blocks []Block, depth int) []TagTime {
	var order []string
	groups := make(map[string][]Block)
	for _, b := range blocks {
		for _, key := range segmentsAt(b, depth) {
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], b)
		}
	}

	out := make([]TagTime, 0, len(order))
	for _, key := range order {
		members := groups[key]
		minutes := 0
		for _, b := range members {
			minutes += b.Duration
		}
		out = append(out, TagTime{
			Tag:     key,
			Minutes: minutes,
			SubTags: TimePerTag(members, depth+1),
		})
	}
	return out
}

// segmentsAt returns the distinct segments at depth of the block's tags.
func segmentsAt(b Block, depth int) []string {
	var keys []string
	for _, t := range b.Tags {
		seg, ok := t.Segment(depth)
		if !ok {
			continue
		}
		if !slices.Contains(keys, seg) {
			keys = append(keys, seg)
		}
	}
	return keys
}

// TotalMinutes sums the minutes of one level of tag times.
func TotalMinutes(tts []TagTime) int {
	total := 0
	for _, tt := range tts {
		total += tt.Minutes
	}
	return total
}

// Percent returns part as a rounded percentage of total, 0 if total is 0.
func Percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(total)))
}

// MinutesToHoursMinutes splits minutes into hours and remaining minutes.
func MinutesToHoursMinutes(minutes int) (int, int) {
	return minutes / 60, minutes % 60
}

// FormatMinutes renders minutes as HH:MM.
func FormatMinutes(minutes int) string {
	h, m := MinutesToHoursMinutes(minutes)
	return fmt.Sprintf("%02d:%02d", h, m)
}
