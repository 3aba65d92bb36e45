package config

import (
	"os"
	"path/filepath"

	"github.com/runoshun/blockary/internal/domain"
)

// Ensure Manager implements domain.ConfigManager.
var _ domain.ConfigManager = (*Manager)(nil)

// Manager manages the config file.
type Manager struct {
	path string // Path to the config file
}

// NewManager creates a new Manager for the config file at path.
// An empty path selects DefaultConfigPath.
func NewManager(path string) *Manager {
	if path == "" {
		path = DefaultConfigPath()
	}
	return &Manager{path: path}
}

// GetConfigInfo returns information about the config file.
func (m *Manager) GetConfigInfo() domain.ConfigInfo {
	content, err := os.ReadFile(m.path)
	if err != nil {
		return domain.ConfigInfo{
			Path:   m.path,
			Exists: false,
		}
	}
	return domain.ConfigInfo{
		Path:    m.path,
		Content: string(content),
		Exists:  true,
	}
}

// InitConfig creates the config file with the default template.
func (m *Manager) InitConfig(cfg *domain.Config) error {
	if _, err := os.Stat(m.path); err == nil {
		return domain.ErrConfigExists
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0700); err != nil {
		return err
	}

	content := domain.RenderConfigTemplate(cfg)

	return os.WriteFile(m.path, []byte(content), 0600)
}
