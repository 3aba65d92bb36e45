package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/runoshun/blockary/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(m.styles.ErrorMsg.Render("Error: " + m.err.Error()))
	case m.out == nil:
		b.WriteString(m.styles.Empty.Render("Loading..."))
	default:
		b.WriteString(m.timeline.View())
	}
	b.WriteString("\n")

	b.WriteString(m.viewFooter())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return m.styles.App.Render(b.String())
}

func (m *Model) viewHeader() string {
	title := m.day.String() + " " + m.day.In(m.clock.Now().Location()).Weekday().String()
	header := m.styles.Header.Render(title)
	if m.day == domain.DateOf(m.clock.Now()) {
		header += " " + m.styles.Today.Render("today")
	}
	return header
}

func (m *Model) viewFooter() string {
	if m.out == nil {
		return m.styles.Footer.Render(" ")
	}
	summary := fmt.Sprintf("%s spent · %d blocks · %d origins · %d notes",
		domain.FormatMinutes(m.out.Total), len(m.out.Blocks), m.out.Origins, len(m.out.Notes))
	if len(m.out.Skips) > 0 {
		summary += fmt.Sprintf(" · %d skipped", len(m.out.Skips))
	}
	return m.styles.Footer.Render(summary)
}

// timelineContent renders one line per block of the loaded day.
func (m *Model) timelineContent() string {
	if m.out == nil {
		return ""
	}
	if len(m.out.Blocks) == 0 {
		return m.styles.Empty.Render("No blocks on this day.")
	}

	lines := make([]string, 0, len(m.out.Blocks))
	for _, blk := range m.out.Blocks {
		period := blk.Period
		if period == "" {
			period = "--:--"
		}
		lines = append(lines, m.styles.Period.Render(period)+
			m.styles.Origin.Render(blk.Origin)+
			m.styles.Duration.Render(strconv.Itoa(blk.Duration)+"m")+
			m.renderDescription(blk))
	}
	return strings.Join(lines, "\n")
}

// renderDescription highlights the tags of a block description.
func (m *Model) renderDescription(blk domain.Block) string {
	words := strings.Fields(blk.Description)
	for i, w := range words {
		if len(w) > 1 && w[0] == '@' {
			words[i] = m.styles.Tag.Render(w)
			continue
		}
		words[i] = m.styles.Description.Render(w)
	}
	return strings.Join(words, " ")
}
