// Package cli provides the command-line interface for blockary.
package cli

import (
	"fmt"
	"io"

	"github.com/runoshun/blockary/internal/app"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Command group IDs.
const (
	groupNotes = "notes"
	groupSetup = "setup"
)

// NewRootCommand creates the root command for blockary.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:   "blockary",
		Short: "Synchronize time blocks across daily notes and calendars",
		Long: `blockary keeps the time blocks of several note directories in sync.

Every configured directory is an origin. Each daily note has a list of
blocks such as "09:00 - 10:30 Review @work/code" under a "Time Blocks"
heading. blockary merges the blocks every origin owns for a day and writes
the merged timeline back into each note, marking foreign blocks with their
origin: "09:00 - 10:30 (Work) Review @work/code".`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.Config == nil {
				return nil
			}
			for _, w := range c.Config.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
	}

	// The container is built from these before cobra runs; see GlobalOptions.
	addGlobalFlags(root.PersistentFlags(), &opts)

	root.AddGroup(
		&cobra.Group{ID: groupNotes, Title: "Notes:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	syncCmd := newSyncCommand(c)
	syncCmd.GroupID = groupNotes

	watchCmd := newWatchCommand(c)
	watchCmd.GroupID = groupNotes

	spentCmd := newSpentCommand(c)
	spentCmd.GroupID = groupNotes

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupNotes

	browseCmd := newBrowseCommand(c)
	browseCmd.GroupID = groupNotes

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	root.AddCommand(
		syncCmd,
		watchCmd,
		spentCmd,
		showCmd,
		browseCmd,
		configCmd,
	)

	return root
}

// addGlobalFlags registers the flags the container is built from.
func addGlobalFlags(fs *pflag.FlagSet, opts *app.Options) {
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "Config file (default: $XDG_CONFIG_HOME/blockary.toml)")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Log debug output")
}

// GlobalOptions extracts the global flags from args ahead of command
// parsing, so the container can be built with them. Unknown flags and
// parse errors are left for cobra to report.
func GlobalOptions(args []string) app.Options {
	var opts app.Options
	fs := pflag.NewFlagSet("blockary", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)
	addGlobalFlags(fs, &opts)
	_ = fs.Parse(args)
	return opts
}
