package cli

import (
	"fmt"
	"io"

	"github.com/pelletier/go-toml/v2"
	"github.com/runoshun/blockary/internal/app"
	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/usecase"
	"github.com/spf13/cobra"
)

// newConfigCommand creates the config command.
func newConfigCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration",
		Long:  `Manage the blockary configuration file.`,
		// No RunE: shows subcommand list when called without arguments
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand(c))
	cmd.AddCommand(newConfigTemplateCommand(c))
	cmd.AddCommand(newConfigInitCommand(c))

	return cmd
}

// newConfigShowCommand creates the config show subcommand.
func newConfigShowCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display effective configuration",
		Long: `Display the config file path and the effective configuration,
with defaults filled in and "~" expanded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigUseCase().Execute(cmd.Context(), usecase.ShowConfigInput{})
			w := cmd.OutOrStdout()
			if out != nil {
				_, _ = fmt.Fprintln(w, "[Loaded from]")
				if out.File.Exists {
					_, _ = fmt.Fprintf(w, "- %s\n", out.File.Path)
				} else {
					_, _ = fmt.Fprintf(w, "- %s (not found)\n", out.File.Path)
				}
			}
			if err != nil {
				return err
			}
			if out.Effective == nil {
				return nil
			}

			_, _ = fmt.Fprintln(w)
			_, _ = fmt.Fprintln(w, "[Effective Config]")
			return formatEffectiveConfig(w, out.Effective)
		},
	}
}

// formatEffectiveConfig formats the effective config in TOML format.
func formatEffectiveConfig(w io.Writer, cfg *domain.Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// newConfigTemplateCommand creates the config template subcommand.
func newConfigTemplateCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Output configuration template",
		Long: `Output the configuration file template to stdout.

It does not depend on an existing configuration file and works even if it is broken.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowConfigTemplateUseCase().Execute(cmd.Context(), usecase.ShowConfigTemplateInput{})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Template)
			return nil
		},
	}
}

// newConfigInitCommand creates the config init subcommand.
func newConfigInitCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate configuration file template",
		Long: `Generate the configuration file from the template.

The file is created at --config, or $XDG_CONFIG_HOME/blockary.toml
(~/.config/blockary.toml) by default.

Error conditions:
- Target file already exists: error`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.InitConfigUseCase().Execute(cmd.Context(), usecase.InitConfigInput{})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", out.Path)
			return nil
		},
	}
}
