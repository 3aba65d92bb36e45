package usecase

import (
	"context"

	"github.com/runoshun/blockary/internal/domain"
)

// ShowConfigTemplateInput contains the input for the ShowConfigTemplate use case.
type ShowConfigTemplateInput struct {
	Config *domain.Config // Defaults filled into the template (default: NewDefaultConfig)
}

// ShowConfigTemplateOutput contains the output of the ShowConfigTemplate use case.
type ShowConfigTemplateOutput struct {
	Template string // Configuration template content
}

// ShowConfigTemplate renders the configuration template without writing it.
type ShowConfigTemplate struct{}

// NewShowConfigTemplate creates a new ShowConfigTemplate use case.
func NewShowConfigTemplate() *ShowConfigTemplate {
	return &ShowConfigTemplate{}
}

// Execute generates and returns a configuration template.
func (uc *ShowConfigTemplate) Execute(_ context.Context, in ShowConfigTemplateInput) (*ShowConfigTemplateOutput, error) {
	cfg := in.Config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}
	return &ShowConfigTemplateOutput{Template: domain.RenderConfigTemplate(cfg)}, nil
}
