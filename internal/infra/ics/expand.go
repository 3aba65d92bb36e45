package ics

import (
	"log/slog"
	"sort"
	"time"

	"github.com/teambition/rrule-go"
)

const maxOccurrencesPerEvent = 5000

// Occurrence is one concrete instance of an event.
type Occurrence struct {
	Start   time.Time
	End     time.Time
	UID     string
	Summary string
	AllDay  bool
}

// Expand returns the occurrences of events that overlap [from, to),
// ordered by start. RRULE series are expanded with their EXDATEs removed
// and RECURRENCE-ID overrides applied. Overrides without a series in the
// feed count as single events.
func Expand(events []Event, from, to time.Time, logger *slog.Logger) []Occurrence {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	baseByUID := make(map[string][]Event)
	overridesByUID := make(map[string][]Event)
	var uids []string
	for _, ev := range events {
		if _, seen := baseByUID[ev.UID]; !seen {
			if _, seen := overridesByUID[ev.UID]; !seen {
				uids = append(uids, ev.UID)
			}
		}
		if ev.IsOverride() {
			overridesByUID[ev.UID] = append(overridesByUID[ev.UID], ev)
		} else {
			baseByUID[ev.UID] = append(baseByUID[ev.UID], ev)
		}
	}

	var out []Occurrence
	for _, uid := range uids {
		bases := baseByUID[uid]
		overrides := overridesByUID[uid]
		if len(bases) == 0 {
			for _, ov := range overrides {
				out = appendIfOverlaps(out, ov, ov.Start, ov.End, from, to)
			}
			continue
		}
		for _, ev := range bases {
			if ev.RawRRule == "" {
				out = expandSingle(out, ev, overrides, from, to)
				continue
			}
			out = expandRecurring(out, ev, overrides, from, to, logger)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start)
	})
	return out
}

func expandSingle(out []Occurrence, ev Event, overrides []Event, from, to time.Time) []Occurrence {
	if o, ok := findOverride(overrides, ev.Start); ok {
		return appendIfOverlaps(out, o, o.Start, o.End, from, to)
	}
	return appendIfOverlaps(out, ev, ev.Start, ev.End, from, to)
}

func expandRecurring(out []Occurrence, ev Event, overrides []Event, from, to time.Time, logger *slog.Logger) []Occurrence {
	opt, err := rrule.StrToROption(ev.RawRRule)
	if err != nil {
		logger.Debug("ics rrule skipped", "uid", ev.UID, "rrule", ev.RawRRule, "error", err)
		return out
	}
	opt.Dtstart = ev.Start
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		logger.Debug("ics rrule skipped", "uid", ev.UID, "rrule", ev.RawRRule, "error", err)
		return out
	}

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	dur := ev.End.Sub(ev.Start)
	loc := ev.Start.Location()
	// Widen the window by the event length so instances starting before
	// from but still running are found.
	starts := set.Between(from.In(loc).Add(-dur), to.In(loc), true)
	if len(starts) > maxOccurrencesPerEvent {
		logger.Warn("ics occurrences truncated", "uid", ev.UID, "cap", maxOccurrencesPerEvent)
		starts = starts[:maxOccurrencesPerEvent]
	}

	for _, start := range starts {
		end := start.Add(dur)
		if ev.AllDay {
			start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, loc)
			end = start.AddDate(0, 0, max(1, int(dur.Hours()/24)))
		}
		if o, ok := findOverride(overrides, start); ok {
			out = appendIfOverlaps(out, o, o.Start, o.End, from, to)
			continue
		}
		out = appendIfOverlaps(out, ev, start, end, from, to)
	}
	return out
}

// findOverride returns the override whose RECURRENCE-ID equals start.
func findOverride(overrides []Event, start time.Time) (Event, bool) {
	for _, ov := range overrides {
		if ov.Recurrence != nil && ov.Recurrence.Equal(start) {
			return ov, true
		}
	}
	return Event{}, false
}

// appendIfOverlaps adds the instance [start, end) of ev if it overlaps
// [from, to). Zero-length instances count when they start inside.
func appendIfOverlaps(out []Occurrence, ev Event, start, end, from, to time.Time) []Occurrence {
	if !start.Before(to) {
		return out
	}
	if end.After(start) && !end.After(from) {
		return out
	}
	if !end.After(start) && start.Before(from) {
		return out
	}
	return append(out, Occurrence{
		Start:   start,
		End:     end,
		UID:     ev.UID,
		Summary: ev.Summary,
		AllDay:  ev.AllDay,
	})
}
