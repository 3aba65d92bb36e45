package usecase

import (
	"context"
	"log/slog"

	"github.com/runoshun/blockary/internal/domain"
)

// SpentTimeInput contains the input for the SpentTime use case.
type SpentTimeInput struct {
	Date   *domain.Date // Day to report (default: today)
	Origin string       // Only report the origin with this name (default: all)
}

// OriginTime is the time report of one origin for one day.
// Fields are ordered to minimize memory padding.
type OriginTime struct {
	Origin string           // Origin name
	Tags   []domain.TagTime // Time per tag, top level first
	Notes  int              // Notes of the day
	Total  int              // Minutes spent, breaks excluded
}

// SpentTimeOutput contains the output of the SpentTime use case.
type SpentTimeOutput struct {
	Origins []OriginTime
	Skips   []domain.Skip
	Day     domain.Date
	Today   bool // Day is the current day
}

// SpentTime reports the time each origin spent per tag on one day.
type SpentTime struct {
	configLoader domain.ConfigLoader
	notes        domain.DayPlanRepository
	clock        domain.Clock
	logger       *slog.Logger
}

// NewSpentTime creates a new SpentTime use case.
func NewSpentTime(configLoader domain.ConfigLoader, notes domain.DayPlanRepository, clock domain.Clock, logger *slog.Logger) *SpentTime {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SpentTime{
		configLoader: configLoader,
		notes:        notes,
		clock:        clock,
		logger:       logger,
	}
}

// Execute computes the time report. Only blocks an origin owns count
// toward its report.
func (uc *SpentTime) Execute(_ context.Context, in SpentTimeInput) (*SpentTimeOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, err
	}

	origins := cfg.SortedOrigins()
	if in.Origin != "" {
		o, err := cfg.FindOrigin(in.Origin)
		if err != nil {
			return nil, err
		}
		origins = []domain.Origin{o}
	}

	day, today := resolveDay(in.Date, uc.clock)
	out := &SpentTimeOutput{Day: day, Today: today}
	for _, o := range origins {
		o.Section = cfg.SectionFor(o)
		plans, _, err := uc.notes.Load(o)
		if err != nil {
			uc.logger.Warn("skip origin", "origin", o.Name, "path", o.Path, "error", err)
			out.Skips = append(out.Skips, domain.Skip{Path: o.Path, Err: err})
			continue
		}

		dayPlans := plansOfDay(plans, day)
		out.Origins = append(out.Origins, OriginTime{
			Origin: o.Name,
			Tags:   domain.TimePerTag(domain.OriginalBlocksFromAll(dayPlans), 0),
			Notes:  len(dayPlans),
			Total:  domain.TotalTimeSpent(dayPlans),
		})
	}
	return out, nil
}

// resolveDay returns the requested day, or today by clock.
func resolveDay(d *domain.Date, clock domain.Clock) (domain.Date, bool) {
	today := domain.DateOf(clock.Now())
	if d == nil {
		return today, true
	}
	return *d, *d == today
}

// plansOfDay returns the plans that resolve to day.
func plansOfDay(plans []domain.DayPlan, day domain.Date) []domain.DayPlan {
	var out []domain.DayPlan
	for _, p := range plans {
		if d, ok := p.Day(); ok && d == day {
			out = append(out, p)
		}
	}
	return out
}
