package usecase

import (
	"context"

	"github.com/runoshun/blockary/internal/domain"
)

// InitConfigInput contains the input for the InitConfig use case.
type InitConfigInput struct {
	Config *domain.Config // Defaults filled into the template (default: NewDefaultConfig)
}

// InitConfigOutput contains the output of the InitConfig use case.
type InitConfigOutput struct {
	Path string // Path to the created config file
}

// InitConfig generates a configuration file template.
type InitConfig struct {
	configManager domain.ConfigManager
}

// NewInitConfig creates a new InitConfig use case.
func NewInitConfig(configManager domain.ConfigManager) *InitConfig {
	return &InitConfig{
		configManager: configManager,
	}
}

// Execute creates a configuration file with default template.
// It returns domain.ErrConfigExists if the file is already there.
func (uc *InitConfig) Execute(_ context.Context, in InitConfigInput) (*InitConfigOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	info := uc.configManager.GetConfigInfo()
	if err := uc.configManager.InitConfig(cfg); err != nil {
		return nil, err
	}

	return &InitConfigOutput{Path: info.Path}, nil
}
