// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"time"

	"github.com/runoshun/blockary/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockDayPlanRepository is a test double for domain.DayPlanRepository.
// Plans and skips are served per origin name; saved plans are recorded.
// Fields are ordered to minimize memory padding.
type MockDayPlanRepository struct {
	Plans     map[string][]domain.DayPlan
	Skips     map[string][]domain.Skip
	LoadErr   map[string]error
	SaveErr   map[string]error // Keyed by note id
	Unchanged map[string]bool  // Note ids whose content is already current
	Loaded    []domain.Origin
	Saved     []domain.DayPlan
}

// NewMockDayPlanRepository creates a new MockDayPlanRepository with initialized maps.
func NewMockDayPlanRepository() *MockDayPlanRepository {
	return &MockDayPlanRepository{
		Plans:     make(map[string][]domain.DayPlan),
		Skips:     make(map[string][]domain.Skip),
		LoadErr:   make(map[string]error),
		SaveErr:   make(map[string]error),
		Unchanged: make(map[string]bool),
	}
}

// Ensure MockDayPlanRepository implements domain.DayPlanRepository interface.
var _ domain.DayPlanRepository = (*MockDayPlanRepository)(nil)

// Load returns the plans configured for the origin name.
func (m *MockDayPlanRepository) Load(origin domain.Origin) ([]domain.DayPlan, []domain.Skip, error) {
	m.Loaded = append(m.Loaded, origin)
	if err := m.LoadErr[origin.Name]; err != nil {
		return nil, nil, err
	}
	return m.Plans[origin.Name], m.Skips[origin.Name], nil
}

// Save records the plan and reports a change unless marked unchanged.
func (m *MockDayPlanRepository) Save(plan domain.DayPlan) (bool, error) {
	if !plan.IsPersistent() {
		return false, nil
	}
	id := plan.Source.Identifier()
	if err := m.SaveErr[id]; err != nil {
		return false, err
	}
	m.Saved = append(m.Saved, plan)
	return !m.Unchanged[id], nil
}

// MockCalendarFeed is a test double for domain.CalendarFeed.
// Fields are ordered to minimize memory padding.
type MockCalendarFeed struct {
	Plans     map[string][]domain.DayPlan // Keyed by calendar URI
	Err       map[string]error
	Requested map[string][]domain.Date
}

// NewMockCalendarFeed creates a new MockCalendarFeed with initialized maps.
func NewMockCalendarFeed() *MockCalendarFeed {
	return &MockCalendarFeed{
		Plans:     make(map[string][]domain.DayPlan),
		Err:       make(map[string]error),
		Requested: make(map[string][]domain.Date),
	}
}

// Ensure MockCalendarFeed implements domain.CalendarFeed interface.
var _ domain.CalendarFeed = (*MockCalendarFeed)(nil)

// DayPlans returns the plans configured for the calendar URI that fall on days.
func (m *MockCalendarFeed) DayPlans(_ context.Context, cal domain.Calendar, days []domain.Date) ([]domain.DayPlan, error) {
	m.Requested[cal.URI] = days
	if err := m.Err[cal.URI]; err != nil {
		return nil, err
	}
	wanted := make(map[domain.Date]bool, len(days))
	for _, d := range days {
		wanted[d] = true
	}
	var out []domain.DayPlan
	for _, p := range m.Plans[cal.URI] {
		if d, ok := p.Day(); ok && wanted[d] {
			out = append(out, p)
		}
	}
	return out, nil
}

// MockNoteCommitter is a test double for domain.NoteCommitter.
// Fields are ordered to minimize memory padding.
type MockNoteCommitter struct {
	Err     error
	Hash    string
	Commits []MockCommit
}

// MockCommit is one recorded Commit call.
type MockCommit struct {
	Dir     string
	Message string
	Files   []string
}

// Ensure MockNoteCommitter implements domain.NoteCommitter interface.
var _ domain.NoteCommitter = (*MockNoteCommitter)(nil)

// Commit records the call and returns the configured hash or error.
func (m *MockNoteCommitter) Commit(dir string, files []string, message string) (string, error) {
	m.Commits = append(m.Commits, MockCommit{Dir: dir, Files: files, Message: message})
	if m.Err != nil {
		return "", m.Err
	}
	return m.Hash, nil
}

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config  *domain.Config
	LoadErr error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitErr    error
	InitArg    *domain.Config // Config passed to the last InitConfig call
	ConfigInfo domain.ConfigInfo
	InitCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		ConfigInfo: domain.ConfigInfo{
			Path:   "/home/test/.config/blockary.toml",
			Exists: false,
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetConfigInfo returns the configured config info.
func (m *MockConfigManager) GetConfigInfo() domain.ConfigInfo {
	return m.ConfigInfo
}

// InitConfig records the call and returns configured error.
func (m *MockConfigManager) InitConfig(cfg *domain.Config) error {
	m.InitCalled = true
	m.InitArg = cfg
	return m.InitErr
}
