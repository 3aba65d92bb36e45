package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/usecase"
)

// tagColumns is the number of tag columns of the spent report.
const tagColumns = 3

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#636E72"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6C5CE7"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// writeSpentReport prints the per-tag table and the total of one origin.
func writeSpentReport(w io.Writer, o usecase.OriginTime, day domain.Date, today bool) {
	_, _ = fmt.Fprintf(w, "\n> %s\n", titleStyle.Render(o.Origin))

	t := newTable("Tag", "..", "..", "Time", "%")
	addTagRows(t, o.Tags, 0)
	_, _ = fmt.Fprintln(w, t.Render())

	when := "today"
	if !today {
		when = day.String()
	}
	_, _ = fmt.Fprintln(w, "--:--")
	_, _ = fmt.Fprintf(w, "%s on %s %s\n", domain.FormatMinutes(o.Total), o.Origin, when)
}

// addTagRows adds one row per tag, indenting sub tags one column per level.
// Percentages are relative to the tags of the same level.
func addTagRows(t *table.Table, tags []domain.TagTime, level int) {
	total := domain.TotalMinutes(tags)
	col := min(level, tagColumns-1)
	for _, tt := range tags {
		row := make([]string, tagColumns+2)
		row[col] = tt.Tag
		row[tagColumns] = domain.FormatMinutes(tt.Minutes)
		row[tagColumns+1] = fmt.Sprintf("%3d%%", domain.Percent(tt.Minutes, total))
		t.Row(row...)

		addTagRows(t, tt.SubTags, level+1)
		if level == 0 {
			t.Row(make([]string, tagColumns+2)...)
		}
	}
}

// writeDayReport prints the merged timeline of one day.
func writeDayReport(w io.Writer, out *usecase.ShowDayOutput) {
	title := out.Day.String()
	if out.Today {
		title += " (today)"
	}
	_, _ = fmt.Fprintln(w, titleStyle.Render(title))

	if len(out.Blocks) == 0 {
		_, _ = fmt.Fprintln(w, mutedStyle.Render("No blocks."))
		return
	}

	t := newTable("Period", "Origin", "Min", "Description")
	for _, b := range out.Blocks {
		t.Row(b.Period, b.Origin, strconv.Itoa(b.Duration), b.Description)
	}
	_, _ = fmt.Fprintln(w, t.Render())
	_, _ = fmt.Fprintf(w, "%s spent across %d %s, %d %s\n",
		domain.FormatMinutes(out.Total),
		out.Origins, plural(out.Origins, "origin", "origins"),
		len(out.Notes), plural(len(out.Notes), "note", "notes"),
	)
}

// writeSkips prints the skipped notes and calendars.
func writeSkips(w io.Writer, skips []domain.Skip) {
	for _, s := range skips {
		_, _ = fmt.Fprintf(w, "Skipped %s: %v\n", s.Path, s.Err)
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
