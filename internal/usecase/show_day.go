package usecase

import (
	"context"
	"log/slog"

	"github.com/runoshun/blockary/internal/domain"
)

// ShowDayInput contains the input for the ShowDay use case.
type ShowDayInput struct {
	Date *domain.Date // Day to show (default: today)
}

// ShowDayOutput contains the output of the ShowDay use case.
// Fields are ordered to minimize memory padding.
type ShowDayOutput struct {
	Blocks  []domain.Block // Merged timeline sorted by period
	Notes   []string       // Identifiers of the contributing notes
	Skips   []domain.Skip
	Day     domain.Date
	Total   int  // Minutes spent across origins, breaks excluded
	Today   bool // Day is the current day
	Origins int  // Contributing origins, calendars included
}

// ShowDay builds the merged timeline of one day without writing anything.
type ShowDay struct {
	configLoader domain.ConfigLoader
	notes        domain.DayPlanRepository
	calendars    domain.CalendarFeed
	clock        domain.Clock
	logger       *slog.Logger
}

// NewShowDay creates a new ShowDay use case.
func NewShowDay(
	configLoader domain.ConfigLoader,
	notes domain.DayPlanRepository,
	calendars domain.CalendarFeed,
	clock domain.Clock,
	logger *slog.Logger,
) *ShowDay {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ShowDay{
		configLoader: configLoader,
		notes:        notes,
		calendars:    calendars,
		clock:        clock,
		logger:       logger,
	}
}

// Execute merges the original blocks of every note and calendar of the day.
func (uc *ShowDay) Execute(ctx context.Context, in ShowDayInput) (*ShowDayOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, err
	}

	day, today := resolveDay(in.Date, uc.clock)
	out := &ShowDayOutput{Day: day, Today: today}

	plans, skips := loadNotes(cfg, uc.notes, uc.logger)
	out.Skips = append(out.Skips, skips...)
	dayPlans := plansOfDay(plans, day)
	for _, p := range dayPlans {
		out.Notes = append(out.Notes, p.Source.Identifier())
	}
	out.Total = domain.TotalTimeSpent(dayPlans)

	if uc.calendars != nil {
		for _, cal := range cfg.SortedCalendars() {
			calPlans, err := uc.calendars.DayPlans(ctx, cal, []domain.Date{day})
			if err != nil {
				uc.logger.Warn("skip calendar", "calendar", calendarLabel(cal), "error", err)
				out.Skips = append(out.Skips, domain.Skip{Path: calendarLabel(cal), Err: err})
				continue
			}
			dayPlans = append(dayPlans, plansOfDay(calPlans, day)...)
		}
	}

	group := domain.SyncGroup{Day: day, Plans: dayPlans}
	out.Origins = group.Origins()
	out.Blocks = domain.DayPlan{}.WithUpdatedBlocks(group.MergedBlocks()).Blocks
	return out, nil
}
