package cli

import (
	"github.com/runoshun/blockary/internal/app"
	"github.com/runoshun/blockary/internal/usecase"
	"github.com/spf13/cobra"
)

// newSpentCommand creates the spent command.
func newSpentCommand(c *app.Container) *cobra.Command {
	var date, origin string

	cmd := &cobra.Command{
		Use:   "spent",
		Short: "Show the time each origin spent per tag",
		Long: `Show the time each origin spent per tag on one day.

Only the blocks an origin owns count toward its report. Tags are broken
down by path: @work/code and @work/review both count toward "work".
Blocks tagged @break are listed but left out of the total.

The date is YYYY-MM-DD, "today" (default) or "yesterday".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDateFlag(date, c.Clock)
			if err != nil {
				return err
			}

			out, err := c.SpentTimeUseCase().Execute(cmd.Context(), usecase.SpentTimeInput{
				Date:   day,
				Origin: origin,
			})
			if err != nil {
				return withConfigHint(err)
			}

			for _, o := range out.Origins {
				writeSpentReport(cmd.OutOrStdout(), o, out.Day, out.Today)
			}
			writeSkips(cmd.ErrOrStderr(), out.Skips)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to report (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVarP(&origin, "origin", "o", "", "Only report the origin with this name")

	return cmd
}
