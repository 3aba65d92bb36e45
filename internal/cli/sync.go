package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/runoshun/blockary/internal/app"
	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/usecase"
	"github.com/spf13/cobra"
)

// errConfigHint is appended to config-not-found errors.
const errConfigHint = "run 'blockary config init' to create one"

// newSyncCommand creates the sync command.
func newSyncCommand(c *app.Container) *cobra.Command {
	var opts usecase.SyncDaysInput

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Merge the time blocks of every origin into each daily note",
		Long: `Merge the time blocks of every origin into each daily note.

For every day, the blocks each origin owns are collected, sorted by period
and written to the "Time Blocks" section of every note of that day. Blocks
of other origins are written with their origin in parentheses and are
replaced on every run.

Calendar feeds from [cals.*] and --ics-file add their events as blocks.
Notes that cannot be read or written are skipped and reported.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := runSync(cmd, c, opts)
			if err != nil {
				return err
			}
			writeSyncSummary(cmd.OutOrStdout(), out, opts.DryRun)
			writeSkips(cmd.ErrOrStderr(), out.Skips)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.ICSFile, "ics-file", "", "Merge the events of an iCalendar file")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would be synced without writing")

	return cmd
}

func runSync(cmd *cobra.Command, c *app.Container, in usecase.SyncDaysInput) (*usecase.SyncDaysOutput, error) {
	out, err := c.SyncDaysUseCase().Execute(cmd.Context(), in)
	if err != nil {
		return nil, withConfigHint(err)
	}
	return out, nil
}

func writeSyncSummary(w io.Writer, out *usecase.SyncDaysOutput, dryRun bool) {
	_, _ = fmt.Fprintf(w, "%d of %d days will be synced\n", out.SyncedDays, out.Days)
	if dryRun {
		_, _ = fmt.Fprintf(w, "dry run: %d %s would be written\n", out.Pending, plural(out.Pending, "note", "notes"))
		return
	}
	_, _ = fmt.Fprintf(w, "wrote %d, unchanged %d, skipped %d\n", out.Written, out.Unchanged, len(out.Skips))
	for _, h := range out.Commits {
		_, _ = fmt.Fprintf(w, "committed %s\n", shortHash(h))
	}
}

func withConfigHint(err error) error {
	if errors.Is(err, domain.ErrConfigNotFound) {
		return fmt.Errorf("%w (%s)", err, errConfigHint)
	}
	return err
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}
