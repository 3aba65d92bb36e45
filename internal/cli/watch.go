package cli

import (
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
	"github.com/runoshun/blockary/internal/app"
	"github.com/runoshun/blockary/internal/usecase"
	"github.com/spf13/cobra"
)

// newWatchCommand creates the watch command.
func newWatchCommand(c *app.Container) *cobra.Command {
	var schedule string
	var opts usecase.SyncDaysInput

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run sync on a schedule until interrupted",
		Long: `Run sync once, then again on every tick of a cron schedule.

The schedule defaults to [sync] schedule of the config file. It uses the
standard five cron fields, e.g. "*/15 * * * *" for every quarter hour.
A run still in progress when the next tick arrives delays that tick.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if c.Config == nil {
				return withConfigHint(c.ConfigErr)
			}
			if schedule == "" {
				schedule = c.Config.Sync.Schedule
			}
			if _, err := cron.ParseStandard(schedule); err != nil {
				return fmt.Errorf("invalid schedule %q: %w", schedule, err)
			}

			w := cmd.OutOrStdout()
			run := func() {
				out, err := runSync(cmd, c, opts)
				if err != nil {
					c.Logger.Error("sync failed", "error", err)
					return
				}
				_, _ = fmt.Fprintf(w, "[%s] ", c.Clock.Now().Format("2006-01-02 15:04"))
				writeSyncSummary(w, out, opts.DryRun)
				writeSkips(cmd.ErrOrStderr(), out.Skips)
			}

			logger := cronLogger{logger: c.Logger}
			scheduler := cron.New(cron.WithChain(cron.DelayIfStillRunning(logger)), cron.WithLogger(logger))
			if _, err := scheduler.AddFunc(schedule, run); err != nil {
				return fmt.Errorf("schedule sync: %w", err)
			}

			run()
			scheduler.Start()
			c.Logger.Info("watching notes", "schedule", schedule)

			<-cmd.Context().Done()
			<-scheduler.Stop().Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron schedule (default: [sync] schedule)")
	cmd.Flags().StringVar(&opts.ICSFile, "ics-file", "", "Merge the events of an iCalendar file")
	cmd.Flags().BoolVarP(&opts.DryRun, "dry-run", "n", false, "Show what would be synced without writing")

	return cmd
}

// cronLogger adapts slog to the cron scheduler's logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
