// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/pelletier/go-toml/v2"
	"github.com/robfig/cron/v3"
	"github.com/runoshun/blockary/internal/domain"
)

// Ensure Loader implements domain.ConfigLoader.
var _ domain.ConfigLoader = (*Loader)(nil)

// Loader loads configuration from a TOML file.
type Loader struct {
	path    string // Path to the config file
	homeDir string // Directory "~" expands to
}

// NewLoader creates a new Loader for the config file at path.
// An empty path selects DefaultConfigPath.
func NewLoader(path string) *Loader {
	if path == "" {
		path = DefaultConfigPath()
	}
	home, _ := os.UserHomeDir()
	return &Loader{path: path, homeDir: home}
}

// NewLoaderWithHome creates a new Loader with a custom home directory.
// This is useful for testing.
func NewLoaderWithHome(path, homeDir string) *Loader {
	return &Loader{path: path, homeDir: homeDir}
}

// Path returns the config file path.
func (l *Loader) Path() string {
	return l.path
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return domain.ConfigFileName
		}
		configHome = filepath.Join(home, ".config")
	}
	return domain.GlobalConfigPath(configHome)
}

// Load reads, converts and validates the config file.
func (l *Loader) Load() (*domain.Config, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrConfigNotFound, l.path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return l.parse(data)
}

// parse converts raw TOML into a validated domain config.
func (l *Loader) parse(data []byte) (*domain.Config, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	cfg, err := convertRawToDomainConfig(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	for key, o := range cfg.Origins {
		o.Path = expandHome(o.Path, l.homeDir)
		cfg.Origins[key] = o
	}
	for key, c := range cfg.Calendars {
		if !strings.Contains(c.URI, "://") {
			c.URI = expandHome(c.URI, l.homeDir)
		}
		cfg.Calendars[key] = c
	}
	cfg.Sync.CacheDir = expandHome(cfg.Sync.CacheDir, l.homeDir)
	cfg.Log.File = expandHome(cfg.Log.File, l.homeDir)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks the domain rules and the values the loader can resolve.
func validate(cfg *domain.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := cron.ParseStandard(cfg.Sync.Schedule); err != nil {
		return fmt.Errorf("%w: [sync] schedule %q: %w", domain.ErrInvalidConfig, cfg.Sync.Schedule, err)
	}
	for _, c := range cfg.SortedCalendars() {
		if c.Timezone == "" {
			continue
		}
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("%w: [cals.%s] timezone %q: %w", domain.ErrInvalidConfig, c.Key, c.Timezone, err)
		}
	}
	return nil
}

// convertRawToDomainConfig converts the raw map to domain config and collects warnings.
func convertRawToDomainConfig(raw map[string]any) (*domain.Config, error) {
	res := domain.NewDefaultConfig()
	var warnings []string

	for section, value := range raw {
		switch section {
		case "dirs":
			tables, err := tablesOf(section, value)
			if err != nil {
				return nil, err
			}
			for key, m := range tables {
				o := domain.Origin{Key: key}
				for k, v := range m {
					var err error
					switch k {
					case "path":
						o.Path, err = stringValue(section, key, k, v)
					case "name":
						o.Name, err = stringValue(section, key, k, v)
					case "section":
						o.Section, err = stringValue(section, key, k, v)
					case "commit":
						b, ok := v.(bool)
						if !ok {
							err = fmt.Errorf("[dirs.%s] commit must be a boolean", key)
						}
						o.Commit = b
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [dirs.%s]: %s", key, k))
					}
					if err != nil {
						return nil, err
					}
				}
				res.Origins[key] = o
			}
		case "cals":
			tables, err := tablesOf(section, value)
			if err != nil {
				return nil, err
			}
			for key, m := range tables {
				c := domain.Calendar{Key: key, Private: true}
				for k, v := range m {
					var err error
					switch k {
					case "uri":
						c.URI, err = stringValue(section, key, k, v)
					case "name":
						c.Name, err = stringValue(section, key, k, v)
					case "timezone":
						c.Timezone, err = stringValue(section, key, k, v)
					case "private":
						b, ok := v.(bool)
						if !ok {
							err = fmt.Errorf("[cals.%s] private must be a boolean", key)
						}
						c.Private = b
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [cals.%s]: %s", key, k))
					}
					if err != nil {
						return nil, err
					}
				}
				res.Calendars[key] = c
			}
		case "sync":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					s, ok := v.(string)
					if !ok {
						return nil, fmt.Errorf("[sync] %s must be a string", k)
					}
					switch k {
					case "section":
						res.Sync.Section = s
					case "schedule":
						res.Sync.Schedule = s
					case "cache_dir":
						res.Sync.CacheDir = s
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [sync]: %s", k))
					}
				}
			}
		case "log":
			if m, ok := value.(map[string]any); ok {
				for k, v := range m {
					s, ok := v.(string)
					if !ok {
						return nil, fmt.Errorf("[log] %s must be a string", k)
					}
					switch k {
					case "level":
						res.Log.Level = s
					case "file":
						res.Log.File = s
					default:
						warnings = append(warnings, fmt.Sprintf("unknown key in [log]: %s", k))
					}
				}
			}
		default:
			warnings = append(warnings, fmt.Sprintf("unknown section: %s", section))
		}
	}

	sort.Strings(warnings)
	res.Warnings = warnings
	return res, nil
}

// tablesOf returns the sub-tables of a [section.<key>] section.
func tablesOf(section string, value any) (map[string]map[string]any, error) {
	m, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("[%s] must be a table", section)
	}
	out := make(map[string]map[string]any, len(m))
	for key, v := range m {
		sub, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("[%s.%s] must be a table", section, key)
		}
		out[key] = sub
	}
	return out, nil
}

func stringValue(section, key, field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("[%s.%s] %s must be a string", section, key, field)
	}
	return s, nil
}

// expandHome replaces a leading "~" with home.
func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
