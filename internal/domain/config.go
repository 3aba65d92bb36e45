package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"path/filepath"
	"sort"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Origins   map[string]Origin   `toml:"dirs"` // Note directories from [dirs.<key>]
	Calendars map[string]Calendar `toml:"cals"` // Calendar feeds from [cals.<key>]
	Warnings  []string            `toml:"-"`
	Sync      SyncConfig          `toml:"sync"`
	Log       LogConfig           `toml:"log"`
}

// Origin is a directory of daily notes owned by one schedule owner.
type Origin struct {
	Key     string `toml:"-"`                 // Key of the [dirs.<key>] table
	Path    string `toml:"path"`              // Root directory of the notes
	Name    string `toml:"name"`              // Display name used as block origin
	Section string `toml:"section,omitempty"` // Heading of the block list (default: [sync].section)
	Commit  bool   `toml:"commit,omitempty"`  // Commit rewritten notes to the enclosing git repository
}

// Calendar is an iCalendar feed whose events are synced as blocks.
type Calendar struct {
	Key      string `toml:"-"`                  // Key of the [cals.<key>] table
	URI      string `toml:"uri"`                // http(s) URL, file:// URL or local path
	Name     string `toml:"name,omitempty"`     // Origin name of the blocks (default: "Calendar")
	Timezone string `toml:"timezone,omitempty"` // IANA zone events are converted to (default: local)
	Private  bool   `toml:"private"`            // Describe every event as "Busy"
}

// SyncConfig holds synchronization settings from [sync] section.
type SyncConfig struct {
	Section  string `toml:"section,omitempty"`   // Default heading of the block list
	Schedule string `toml:"schedule,omitempty"`  // Cron schedule for watch mode
	CacheDir string `toml:"cache_dir,omitempty"` // Cache directory for calendar downloads
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
	File  string `toml:"file,omitempty"`  // Optional file logs are appended to
}

// Default configuration values.
const (
	DefaultSection       = "Time Blocks"
	DefaultSchedule      = "*/15 * * * *"
	DefaultLogLevel      = "info"
	DefaultCalendarName  = "Calendar"
	PrivateEventSummary  = "Busy"
	ConfigFileName       = "blockary.toml"
	CacheDirName         = "blockary"
	calendarCacheDirName = "ics"
)

// NewDefaultConfig returns a Config with default values and no origins.
func NewDefaultConfig() *Config {
	return &Config{
		Origins:   make(map[string]Origin),
		Calendars: make(map[string]Calendar),
		Sync: SyncConfig{
			Section:  DefaultSection,
			Schedule: DefaultSchedule,
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// GlobalConfigPath returns the config path below configHome
// (typically XDG_CONFIG_HOME or ~/.config, resolved by caller).
func GlobalConfigPath(configHome string) string {
	return filepath.Join(configHome, ConfigFileName)
}

// CalendarCacheDir returns the calendar cache directory below cacheHome.
func CalendarCacheDir(cacheHome string) string {
	return filepath.Join(cacheHome, CacheDirName, calendarCacheDirName)
}

// SortedOrigins returns the origins ordered by key.
func (c *Config) SortedOrigins() []Origin {
	keys := sortedMapKeys(c.Origins)
	out := make([]Origin, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.Origins[k])
	}
	return out
}

// SortedCalendars returns the calendars ordered by key.
func (c *Config) SortedCalendars() []Calendar {
	keys := sortedMapKeys(c.Calendars)
	out := make([]Calendar, 0, len(keys))
	for _, k := range keys {
		out = append(out, c.Calendars[k])
	}
	return out
}

// FindOrigin returns the origin with the given display name.
func (c *Config) FindOrigin(name string) (Origin, error) {
	for _, o := range c.SortedOrigins() {
		if o.Name == name {
			return o, nil
		}
	}
	return Origin{}, fmt.Errorf("%w: %s", ErrUnknownOrigin, name)
}

// SectionFor returns the block list heading of origin.
func (c *Config) SectionFor(o Origin) string {
	if o.Section != "" {
		return o.Section
	}
	if c.Sync.Section != "" {
		return c.Sync.Section
	}
	return DefaultSection
}

// OriginName returns the block origin of the calendar.
func (cal Calendar) OriginName() string {
	if cal.Name != "" {
		return cal.Name
	}
	return DefaultCalendarName
}

// Validate checks the fields every run depends on.
func (c *Config) Validate() error {
	if len(c.Origins) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrNoOrigins)
	}
	names := make(map[string]string, len(c.Origins))
	for _, key := range sortedMapKeys(c.Origins) {
		o := c.Origins[key]
		if o.Path == "" {
			return fmt.Errorf("%w: [dirs.%s] is missing path", ErrInvalidConfig, key)
		}
		if o.Name == "" {
			return fmt.Errorf("%w: [dirs.%s] is missing name", ErrInvalidConfig, key)
		}
		if other, ok := names[o.Name]; ok {
			return fmt.Errorf("%w: [dirs.%s] and [dirs.%s] share the name %q", ErrInvalidConfig, other, key, o.Name)
		}
		names[o.Name] = key
	}
	for _, key := range sortedMapKeys(c.Calendars) {
		if c.Calendars[key].URI == "" {
			return fmt.Errorf("%w: [cals.%s] is missing uri", ErrInvalidConfig, key)
		}
	}
	return nil
}

// templateData holds all data for rendering the config template.
type templateData struct {
	Section  string
	Schedule string
	LogLevel string
}

// RenderConfigTemplate renders the commented config file written by config init.
func RenderConfigTemplate(cfg *Config) string {
	data := templateData{
		Section:  cfg.Sync.Section,
		Schedule: cfg.Sync.Schedule,
		LogLevel: cfg.Log.Level,
	}

	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}

	return buf.String()
}

// sortedMapKeys returns the keys of a map sorted alphabetically.
func sortedMapKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
