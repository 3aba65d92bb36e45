package cli

import (
	"strings"

	"github.com/runoshun/blockary/internal/app"
	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/usecase"
	"github.com/spf13/cobra"
)

// newShowCommand creates the show command.
func newShowCommand(c *app.Container) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the merged timeline of a day",
		Long: `Show the merged timeline of a day across all origins and calendars.

Nothing is written. The date is YYYY-MM-DD, "today" (default) or "yesterday".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := parseDateFlag(date, c.Clock)
			if err != nil {
				return err
			}

			out, err := c.ShowDayUseCase().Execute(cmd.Context(), usecase.ShowDayInput{Date: day})
			if err != nil {
				return withConfigHint(err)
			}

			writeDayReport(cmd.OutOrStdout(), out)
			writeSkips(cmd.ErrOrStderr(), out.Skips)
			return nil
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to show (YYYY-MM-DD, today, yesterday)")

	return cmd
}

// parseDateFlag parses a --date value. Empty means today and returns nil.
func parseDateFlag(value string, clock domain.Clock) (*domain.Date, error) {
	var d domain.Date
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return nil, nil
	case "yesterday":
		d = domain.DateOf(clock.Now()).AddDays(-1)
	default:
		var err error
		if d, err = domain.ParseDate(strings.TrimSpace(value)); err != nil {
			return nil, err
		}
	}
	return &d, nil
}
