package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/blockary/internal/app"
	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/tui"
	"github.com/spf13/cobra"
)

// launchBrowseFunc starts the day browser. Replaced in tests.
var launchBrowseFunc = func(c *app.Container, day *domain.Date) error {
	p := tea.NewProgram(tui.New(c.ShowDayUseCase(), c.Clock, day), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// newBrowseCommand creates the browse command for the interactive day browser.
func newBrowseCommand(c *app.Container) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the merged timelines day by day",
		Long: `Launch an interactive browser of the merged timeline of each day.

Use ←/→ (or h/l) to move between days, t to jump back to today and
r to reload. Nothing is written.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			if c.Config == nil {
				return withConfigHint(c.ConfigErr)
			}
			day, err := parseDateFlag(date, c.Clock)
			if err != nil {
				return err
			}
			return launchBrowseFunc(c, day)
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Day to start at (YYYY-MM-DD, today, yesterday)")

	return cmd
}
