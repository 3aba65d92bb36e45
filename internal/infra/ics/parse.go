package ics

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// Event is the normalized form of a VEVENT. Recurrences are not expanded.
type Event struct {
	Start      time.Time
	End        time.Time
	Recurrence *time.Time // RECURRENCE-ID of an overridden instance
	UID        string
	Summary    string
	RawRRule   string
	ExDates    []time.Time
	AllDay     bool
}

// IsOverride reports whether the event replaces one instance of a series.
func (e Event) IsOverride() bool {
	return e.Recurrence != nil
}

// Parse parses an iCalendar payload. Floating times, which carry neither
// TZID nor UTC marker, are read in floating. Events that cannot be read
// are logged and left out.
func Parse(body []byte, floating *time.Location, logger *slog.Logger) ([]Event, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}
	if !bytes.Contains(body, []byte("BEGIN:VCALENDAR")) {
		return nil, errors.New("not an iCalendar payload")
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if floating == nil {
		floating = time.Local
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	var events []Event
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(ve, floating)
		if err != nil {
			logger.Debug("ics vevent skipped", "error", err)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent, floating *time.Location) (Event, error) {
	var out Event

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("missing UID")
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil {
		return out, fmt.Errorf("event %s: missing DTSTART", out.UID)
	}
	out.AllDay = isDateValue(dtStart)

	start, err := ve.GetStartAt()
	if err != nil {
		return out, fmt.Errorf("event %s: DTSTART: %w", out.UID, err)
	}
	if isFloating(dtStart) {
		start = inLocation(start, floating)
	}
	out.Start = start

	end, err := ve.GetEndAt()
	switch {
	case err == nil:
		if p := ve.GetProperty(ical.ComponentPropertyDtEnd); p != nil && isFloating(p) {
			end = inLocation(end, floating)
		}
		out.End = end
	case out.AllDay:
		out.End = start.AddDate(0, 0, 1)
	default:
		// Without DTEND a timed event lasts zero minutes.
		out.End = start
	}
	if out.End.Before(out.Start) {
		return out, fmt.Errorf("event %s: DTEND before DTSTART", out.UID)
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		loc := propLocation(p, start.Location())
		for _, part := range strings.Split(p.Value, ",") {
			if t, err := parseICSTime(part, loc); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	if p := ve.GetProperty(ical.ComponentProperty("RECURRENCE-ID")); p != nil {
		if t, err := parseICSTime(p.Value, propLocation(p, start.Location())); err == nil {
			out.Recurrence = &t
		}
	}

	return out, nil
}

// isDateValue reports whether a date property holds a DATE rather than
// a DATE-TIME.
func isDateValue(p *ical.IANAProperty) bool {
	if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
		return true
	}
	return !strings.Contains(p.Value, "T")
}

// isFloating reports whether a date property is neither UTC nor bound to a TZID.
func isFloating(p *ical.IANAProperty) bool {
	if _, ok := p.ICalParameters["TZID"]; ok {
		return false
	}
	return !strings.HasSuffix(strings.TrimSpace(p.Value), "Z")
}

// inLocation keeps the wall clock of t and moves it to loc.
func inLocation(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// propLocation returns the location named by the property's TZID, or def.
func propLocation(p *ical.IANAProperty, def *time.Location) *time.Location {
	if tzs, ok := p.ICalParameters["TZID"]; ok && len(tzs) > 0 {
		if loc, err := time.LoadLocation(strings.Trim(tzs[0], `"`)); err == nil {
			return loc
		}
	}
	return def
}

// parseICSTime parses an ICS DATE or DATE-TIME value. Values without a
// trailing Z are read in loc.
func parseICSTime(v string, loc *time.Location) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, loc)
	default:
		return time.ParseInLocation("20060102", v, loc)
	}
}
