package domain

import "slices"

// SyncGroup holds the day plans of all origins that resolve to the same day.
type SyncGroup struct {
	Day   Date
	Plans []DayPlan
}

// Origins returns the number of distinct origins in the group.
func (g SyncGroup) Origins() int {
	seen := make(map[string]struct{}, len(g.Plans))
	for _, p := range g.Plans {
		seen[p.Origin] = struct{}{}
	}
	return len(seen)
}

// MergedBlocks returns the original blocks of every plan in group order.
// Foreign blocks are ignored so that synced copies are never propagated again.
func (g SyncGroup) MergedBlocks() []Block {
	return OriginalBlocksFromAll(g.Plans)
}

// Synchronize returns every plan of the group rewritten to hold the merged
// timeline, in group order.
func (g SyncGroup) Synchronize() []DayPlan {
	merged := g.MergedBlocks()
	out := make([]DayPlan, 0, len(g.Plans))
	for _, p := range g.Plans {
		out = append(out, p.WithUpdatedBlocks(merged))
	}
	return out
}

// OriginalBlocksFromAll concatenates the original blocks of plans.
func OriginalBlocksFromAll(plans []DayPlan) []Block {
	var out []Block
	for _, p := range plans {
		out = append(out, p.OnlyOriginalBlocks()...)
	}
	return out
}

// GroupByDay groups plans by their resolved day. Groups are ordered by day
// and keep the input order of their plans. Plans without a resolvable day
// are returned separately.
func GroupByDay(plans []DayPlan) ([]SyncGroup, []DayPlan) {
	index := make(map[Date]int)
	var groups []SyncGroup
	var unresolved []DayPlan
	for _, p := range plans {
		day, ok := p.Day()
		if !ok {
			unresolved = append(unresolved, p)
			continue
		}
		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, SyncGroup{Day: day})
		}
		groups[i].Plans = append(groups[i].Plans, p)
	}
	slices.SortStableFunc(groups, func(a, b SyncGroup) int {
		switch {
		case a.Day.Before(b.Day):
			return -1
		case b.Day.Before(a.Day):
			return 1
		default:
			return 0
		}
	})
	return groups, unresolved
}

// SyncResult is the outcome of synchronizing a set of day plans.
type SyncResult struct {
	Groups     []SyncGroup // Input plans grouped by day
	Plans      []DayPlan   // Rewritten plans, grouped by day in group order
	Unresolved []DayPlan   // Plans without a resolvable day, left untouched
}

// MultiOriginDays returns the number of days with more than one origin.
func (r SyncResult) MultiOriginDays() int {
	n := 0
	for _, g := range r.Groups {
		if g.Origins() > 1 {
			n++
		}
	}
	return n
}

// Synchronize merges the plans of every day. The result is a pure function
// of the original blocks, so running it again on its own output yields the
// same plans.
func Synchronize(plans []DayPlan) SyncResult {
	groups, unresolved := GroupByDay(plans)
	res := SyncResult{Groups: groups, Unresolved: unresolved}
	for _, g := range groups {
		res.Plans = append(res.Plans, g.Synchronize()...)
	}
	return res
}
