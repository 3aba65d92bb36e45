// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"errors"

	"github.com/runoshun/blockary/internal/domain"
)

// ShowConfigInput contains the input for the ShowConfig use case.
type ShowConfigInput struct{}

// ShowConfigOutput contains the output of the ShowConfig use case.
type ShowConfigOutput struct {
	Effective *domain.Config    // Loaded config, nil when the file does not exist
	File      domain.ConfigInfo // Config file info
}

// ShowConfig displays configuration file information.
type ShowConfig struct {
	configManager domain.ConfigManager
	configLoader  domain.ConfigLoader
}

// NewShowConfig creates a new ShowConfig use case.
func NewShowConfig(configManager domain.ConfigManager, configLoader domain.ConfigLoader) *ShowConfig {
	return &ShowConfig{
		configManager: configManager,
		configLoader:  configLoader,
	}
}

// Execute retrieves the config file and the effective configuration.
// A missing file is not an error; an invalid one is.
func (uc *ShowConfig) Execute(_ context.Context, _ ShowConfigInput) (*ShowConfigOutput, error) {
	out := &ShowConfigOutput{File: uc.configManager.GetConfigInfo()}
	if !out.File.Exists {
		return out, nil
	}

	cfg, err := uc.configLoader.Load()
	if err != nil {
		if errors.Is(err, domain.ErrConfigNotFound) {
			return out, nil
		}
		return out, err
	}
	out.Effective = cfg
	return out, nil
}
