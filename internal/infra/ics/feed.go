package ics

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"
	_ "time/tzdata" // calendars name IANA zones

	"github.com/runoshun/blockary/internal/domain"
)

// Ensure Feed implements domain.CalendarFeed.
var _ domain.CalendarFeed = (*Feed)(nil)

// BodyFetcher returns the raw feed behind a URI.
type BodyFetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}

// Feed converts calendar events into day plans. Only timed events that
// start and end on the same day, in the calendar's zone, become blocks.
type Feed struct {
	fetcher BodyFetcher
	logger  *slog.Logger
	local   *time.Location // Zone of calendars without a timezone
}

// NewFeed creates a new Feed reading bodies through fetcher.
func NewFeed(fetcher BodyFetcher, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Feed{fetcher: fetcher, logger: logger, local: time.Local}
}

// WithLocation returns a copy of the feed using loc for calendars
// without a timezone.
func (f *Feed) WithLocation(loc *time.Location) *Feed {
	c := *f
	c.local = loc
	return &c
}

// DayPlans returns one plan per day in days with at least one event.
// Plans are ordered by day and carry the day explicitly.
func (f *Feed) DayPlans(ctx context.Context, cal domain.Calendar, days []domain.Date) ([]domain.DayPlan, error) {
	if len(days) == 0 {
		return nil, nil
	}

	loc := f.local
	if cal.Timezone != "" {
		l, err := time.LoadLocation(cal.Timezone)
		if err != nil {
			return nil, fmt.Errorf("calendar %s: timezone %q: %w", cal.Key, cal.Timezone, err)
		}
		loc = l
	}

	body, err := f.fetcher.Fetch(ctx, cal.URI)
	if err != nil {
		return nil, fmt.Errorf("calendar %s: %w", cal.Key, err)
	}
	events, err := Parse(body, loc, f.logger)
	if err != nil {
		return nil, fmt.Errorf("calendar %s: %w", cal.Key, err)
	}

	sorted := slices.Clone(days)
	slices.SortFunc(sorted, func(a, b domain.Date) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})
	wanted := make(map[domain.Date]bool, len(sorted))
	for _, d := range sorted {
		wanted[d] = true
	}
	from := sorted[0].In(loc)
	to := sorted[len(sorted)-1].AddDays(1).In(loc)

	blocksByDay := make(map[domain.Date][]domain.Block)
	origin := cal.OriginName()
	for _, occ := range Expand(events, from, to, f.logger) {
		if occ.AllDay {
			continue
		}
		start, end := occ.Start.In(loc), occ.End.In(loc)
		day := domain.DateOf(start)
		if day != domain.DateOf(end) || !wanted[day] {
			continue
		}
		period := fmt.Sprintf("%02d:%02d - %02d:%02d", start.Hour(), start.Minute(), end.Hour(), end.Minute())
		desc := domain.PrivateEventSummary
		if !cal.Private && occ.Summary != "" {
			desc = occ.Summary
		}
		blocksByDay[day] = append(blocksByDay[day], domain.NewBlock(period, origin, desc))
	}

	var plans []domain.DayPlan
	for _, d := range slices.Compact(sorted) {
		blocks, ok := blocksByDay[d]
		if !ok {
			continue
		}
		plan := domain.DayPlan{
			Origin: origin,
			Source: domain.CalendarSource{URI: cal.URI},
			Blocks: blocks,
		}
		plans = append(plans, plan.WithDate(d))
	}

	f.logger.Debug("calendar loaded", "calendar", cal.Key, "events", len(events), "days", len(plans))
	return plans, nil
}
