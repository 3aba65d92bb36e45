// Package app provides the dependency injection container for the application.
package app

import (
	"io"
	"log/slog"
	"os"

	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/infra/config"
	"github.com/runoshun/blockary/internal/infra/gitnotes"
	"github.com/runoshun/blockary/internal/infra/ics"
	"github.com/runoshun/blockary/internal/infra/logging"
	"github.com/runoshun/blockary/internal/infra/mdstore"
	"github.com/runoshun/blockary/internal/usecase"
)

// Options configures how the container is built.
type Options struct {
	Stderr     io.Writer // Log destination (default: os.Stderr)
	ConfigPath string    // Config file path (default: config.DefaultConfigPath)
	Verbose    bool      // Force debug logging
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Notes         domain.DayPlanRepository
	Calendars     domain.CalendarFeed
	Committer     domain.NoteCommitter
	Clock         domain.Clock
	ConfigLoader  domain.ConfigLoader
	ConfigManager domain.ConfigManager

	// Pointer fields
	Logger *slog.Logger
	logs   *logging.Logger

	// Config read while building the container, nil if it could not be loaded
	Config *domain.Config
	// ConfigErr is the error loading Config, if any
	ConfigErr error
}

// New creates a new Container from opts.
func New(opts Options) (*Container, error) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	configLoader := config.NewLoader(opts.ConfigPath)
	configManager := config.NewManager(configLoader.Path())

	// Load app config to set up logging and the calendar cache.
	// Commands report the error themselves when they need the config.
	appConfig, configErr := configLoader.Load()
	settings := domain.NewDefaultConfig()
	if configErr == nil {
		settings = appConfig
	}

	level := logging.ParseLevel(settings.Log.Level)
	if opts.Verbose {
		level = slog.LevelDebug
	}
	logs, err := logging.New(stderr, level, settings.Log.File)
	if err != nil {
		return nil, err
	}
	logger := logs.Slog()

	cacheDir := settings.Sync.CacheDir
	if cacheDir == "" {
		if cacheHome, err := os.UserCacheDir(); err == nil {
			cacheDir = domain.CalendarCacheDir(cacheHome)
		}
	}

	clock := domain.RealClock{}
	fetcher := ics.NewFetcher(cacheDir, logger)

	return &Container{
		Notes:         mdstore.New(logger),
		Calendars:     ics.NewFeed(fetcher, logger),
		Committer:     gitnotes.New(clock),
		Clock:         clock,
		ConfigLoader:  configLoader,
		ConfigManager: configManager,
		Logger:        logger,
		logs:          logs,
		Config:        appConfig,
		ConfigErr:     configErr,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
func NewWithDeps(
	configLoader domain.ConfigLoader,
	configManager domain.ConfigManager,
	notes domain.DayPlanRepository,
	calendars domain.CalendarFeed,
	clock domain.Clock,
	logger *slog.Logger,
) *Container {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	cfg, cfgErr := configLoader.Load()
	return &Container{
		Notes:         notes,
		Calendars:     calendars,
		Clock:         clock,
		ConfigLoader:  configLoader,
		ConfigManager: configManager,
		Logger:        logger,
		Config:        cfg,
		ConfigErr:     cfgErr,
	}
}

// Close releases the log file, if any.
func (c *Container) Close() error {
	if c.logs == nil {
		return nil
	}
	return c.logs.Close()
}

// UseCase factory methods

// SyncDaysUseCase returns a new SyncDays use case.
func (c *Container) SyncDaysUseCase() *usecase.SyncDays {
	return usecase.NewSyncDays(c.ConfigLoader, c.Notes, c.Calendars, c.Committer, c.Logger)
}

// SpentTimeUseCase returns a new SpentTime use case.
func (c *Container) SpentTimeUseCase() *usecase.SpentTime {
	return usecase.NewSpentTime(c.ConfigLoader, c.Notes, c.Clock, c.Logger)
}

// ShowDayUseCase returns a new ShowDay use case.
func (c *Container) ShowDayUseCase() *usecase.ShowDay {
	return usecase.NewShowDay(c.ConfigLoader, c.Notes, c.Calendars, c.Clock, c.Logger)
}

// ShowConfigUseCase returns a new ShowConfig use case.
func (c *Container) ShowConfigUseCase() *usecase.ShowConfig {
	return usecase.NewShowConfig(c.ConfigManager, c.ConfigLoader)
}

// ShowConfigTemplateUseCase returns a new ShowConfigTemplate use case.
func (c *Container) ShowConfigTemplateUseCase() *usecase.ShowConfigTemplate {
	return usecase.NewShowConfigTemplate()
}

// InitConfigUseCase returns a new InitConfig use case.
func (c *Container) InitConfigUseCase() *usecase.InitConfig {
	return usecase.NewInitConfig(c.ConfigManager)
}
