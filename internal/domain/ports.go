package domain

import (
	"context"
	"time"
)

// DayPlanRepository reads and writes the daily notes of one origin.
type DayPlanRepository interface {
	// Load reads every note of the origin. Notes that cannot be read or
	// have no block section are reported as skips rather than errors.
	Load(origin Origin) ([]DayPlan, []Skip, error)

	// Save writes the plan's blocks back to its note. It reports whether
	// the file changed. Non-persistent plans are ignored.
	Save(plan DayPlan) (bool, error)
}

// Skip records a note that was left out of a run, with the reason.
type Skip struct {
	Err  error
	Path string
}

// CalendarFeed turns a calendar into day plans for the given days.
type CalendarFeed interface {
	// DayPlans fetches the calendar and returns one plan per day in days
	// that has at least one event.
	DayPlans(ctx context.Context, cal Calendar, days []Date) ([]DayPlan, error)
}

// NoteCommitter records rewritten notes in the repository containing them.
type NoteCommitter interface {
	// Commit stages files and commits them with message. It returns the
	// commit hash, or "" when none of the files changed.
	Commit(dir string, files []string, message string) (string, error)
}

// ConfigLoader loads configuration.
type ConfigLoader interface {
	// Load returns the configuration read from the config file.
	Load() (*Config, error)
}

// ConfigManager manages the config file.
type ConfigManager interface {
	// GetConfigInfo returns information about the config file.
	GetConfigInfo() ConfigInfo

	// InitConfig writes the default config file. Returns ErrConfigExists if present.
	InitConfig(cfg *Config) error
}

// ConfigInfo holds information about a config file.
// Fields are ordered to minimize memory padding.
type ConfigInfo struct {
	Path    string // File path
	Content string // File content (empty if not exists)
	Exists  bool   // Whether the file exists
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// RealClock is the system clock.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
