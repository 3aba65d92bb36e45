package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/runoshun/blockary/internal/domain"
)

// SyncDaysInput contains the input for the SyncDays use case.
type SyncDaysInput struct {
	ICSFile string // Extra calendar file merged into the run
	DryRun  bool   // Compute the merge without writing notes
}

// SyncDaysOutput contains the output of the SyncDays use case.
// Fields are ordered to minimize memory padding.
type SyncDaysOutput struct {
	Skips      []domain.Skip // Notes and calendars left out of the run
	Commits    []string      // Hashes of the commits made for origins with commit enabled
	Days       int           // Days with at least one note
	SyncedDays int           // Days with more than one origin
	Written    int           // Notes rewritten
	Unchanged  int           // Notes already up to date
	Pending    int           // Notes that would be rewritten (dry run)
	Unresolved int           // Notes without a resolvable day
}

// SyncDays merges the blocks of every origin per day and writes the merged
// timeline back to each note.
type SyncDays struct {
	configLoader domain.ConfigLoader
	notes        domain.DayPlanRepository
	calendars    domain.CalendarFeed
	committer    domain.NoteCommitter
	logger       *slog.Logger
}

// NewSyncDays creates a new SyncDays use case.
func NewSyncDays(
	configLoader domain.ConfigLoader,
	notes domain.DayPlanRepository,
	calendars domain.CalendarFeed,
	committer domain.NoteCommitter,
	logger *slog.Logger,
) *SyncDays {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SyncDays{
		configLoader: configLoader,
		notes:        notes,
		calendars:    calendars,
		committer:    committer,
		logger:       logger,
	}
}

// Execute runs one synchronization.
func (uc *SyncDays) Execute(ctx context.Context, in SyncDaysInput) (*SyncDaysOutput, error) {
	cfg, err := uc.configLoader.Load()
	if err != nil {
		return nil, err
	}

	out := &SyncDaysOutput{}
	plans, skips := loadNotes(cfg, uc.notes, uc.logger)
	out.Skips = append(out.Skips, skips...)

	groups, unresolved := domain.GroupByDay(plans)
	out.Unresolved = len(unresolved)
	for _, p := range unresolved {
		uc.logger.Debug("note has no date", "path", p.Source.Identifier(), "origin", p.Origin)
	}

	days := make([]domain.Date, 0, len(groups))
	for _, g := range groups {
		days = append(days, g.Day)
	}

	calPlans, calSkips, err := uc.loadCalendars(ctx, cfg, in.ICSFile, days)
	if err != nil {
		return nil, err
	}
	out.Skips = append(out.Skips, calSkips...)

	// Calendar plans always carry their day, so nothing new is unresolved.
	merged, _ := domain.GroupByDay(append(plans, calPlans...))
	written := make(map[string][]string)
	for _, g := range merged {
		if !hasPersistent(g) {
			continue
		}
		out.Days++
		if g.Origins() > 1 {
			out.SyncedDays++
		}
		for _, p := range g.Synchronize() {
			if !p.IsPersistent() {
				continue
			}
			if in.DryRun {
				out.Pending++
				continue
			}
			changed, err := uc.notes.Save(p)
			if err != nil {
				uc.logger.Warn("skip note", "path", p.Source.Identifier(), "origin", p.Origin, "error", err)
				out.Skips = append(out.Skips, domain.Skip{Path: p.Source.Identifier(), Err: err})
				continue
			}
			if !changed {
				out.Unchanged++
				continue
			}
			out.Written++
			if ms, ok := p.Source.(domain.MarkdownSource); ok {
				written[p.Origin] = append(written[p.Origin], ms.AbsPath)
			}
		}
	}

	out.Commits, skips = uc.commit(cfg, written)
	out.Skips = append(out.Skips, skips...)

	uc.logger.Info("sync finished",
		"days", out.Days,
		"synced", out.SyncedDays,
		"written", out.Written,
		"unchanged", out.Unchanged,
		"skipped", len(out.Skips),
	)
	return out, nil
}

// loadCalendars fetches the configured calendars plus the optional extra
// file. A failing calendar is skipped.
func (uc *SyncDays) loadCalendars(ctx context.Context, cfg *domain.Config, icsFile string, days []domain.Date) ([]domain.DayPlan, []domain.Skip, error) {
	cals := cfg.SortedCalendars()
	if icsFile != "" {
		cals = append(cals, domain.Calendar{URI: icsFile, Private: true})
	}
	if len(cals) == 0 || len(days) == 0 {
		return nil, nil, nil
	}

	var plans []domain.DayPlan
	var skips []domain.Skip
	for _, cal := range cals {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		calPlans, err := uc.calendars.DayPlans(ctx, cal, days)
		if err != nil {
			uc.logger.Warn("skip calendar", "calendar", calendarLabel(cal), "error", err)
			skips = append(skips, domain.Skip{Path: calendarLabel(cal), Err: err})
			continue
		}
		plans = append(plans, calPlans...)
	}
	return plans, skips, nil
}

// commit records the rewritten notes of every origin with commit enabled.
func (uc *SyncDays) commit(cfg *domain.Config, written map[string][]string) ([]string, []domain.Skip) {
	if uc.committer == nil {
		return nil, nil
	}
	var hashes []string
	var skips []domain.Skip
	for _, o := range cfg.SortedOrigins() {
		files := written[o.Name]
		if !o.Commit || len(files) == 0 {
			continue
		}
		msg := fmt.Sprintf("blockary: sync %d %s", len(files), plural(len(files), "note", "notes"))
		hash, err := uc.committer.Commit(o.Path, files, msg)
		if err != nil {
			uc.logger.Warn("commit failed", "origin", o.Name, "path", o.Path, "error", err)
			skips = append(skips, domain.Skip{Path: o.Path, Err: fmt.Errorf("commit: %w", err)})
			continue
		}
		if hash != "" {
			uc.logger.Debug("committed notes", "origin", o.Name, "commit", hash)
			hashes = append(hashes, hash)
		}
	}
	return hashes, skips
}

// loadNotes reads the notes of every configured origin. An origin that
// cannot be read is skipped.
func loadNotes(cfg *domain.Config, notes domain.DayPlanRepository, logger *slog.Logger) ([]domain.DayPlan, []domain.Skip) {
	var plans []domain.DayPlan
	var skips []domain.Skip
	for _, o := range cfg.SortedOrigins() {
		o.Section = cfg.SectionFor(o)
		loaded, originSkips, err := notes.Load(o)
		if err != nil {
			logger.Warn("skip origin", "origin", o.Name, "path", o.Path, "error", err)
			skips = append(skips, domain.Skip{Path: o.Path, Err: err})
			continue
		}
		for _, s := range originSkips {
			level := slog.LevelWarn
			if errors.Is(s.Err, domain.ErrSectionNotFound) {
				level = slog.LevelDebug
			}
			logger.Log(context.Background(), level, "skip note", "origin", o.Name, "path", s.Path, "error", s.Err)
		}
		plans = append(plans, loaded...)
		skips = append(skips, originSkips...)
	}
	return plans, skips
}

// hasPersistent reports whether any plan of the group is backed by a note.
func hasPersistent(g domain.SyncGroup) bool {
	for _, p := range g.Plans {
		if p.IsPersistent() {
			return true
		}
	}
	return false
}

func calendarLabel(cal domain.Calendar) string {
	if cal.Key == "" {
		return cal.URI
	}
	return "cals." + cal.Key
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
