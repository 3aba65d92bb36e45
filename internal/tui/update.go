package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/blockary/internal/domain"
)

// chromeHeight is the number of lines around the timeline: padding,
// header and footer.
const chromeHeight = 8

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayoutSizes()
		return m, nil

	case MsgDayLoaded:
		// Responses for days navigated away from are dropped.
		if msg.Day != m.day {
			return m, nil
		}
		m.loading = false
		m.out = msg.Out
		m.err = nil
		m.timeline.SetContent(m.timelineContent())
		return m, nil

	case MsgError:
		if msg.Day != m.day {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.PrevDay):
		return m, m.showDay(m.day.AddDays(-1))
	case key.Matches(msg, m.keys.NextDay):
		return m, m.showDay(m.day.AddDays(1))
	case key.Matches(msg, m.keys.Today):
		return m, m.showDay(domain.DateOf(m.clock.Now()))
	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadDay(m.day)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateLayoutSizes()
		return m, nil
	}

	// Forward other keys to the viewport for scrolling
	var cmd tea.Cmd
	m.timeline, cmd = m.timeline.Update(msg)
	return m, cmd
}

func (m *Model) updateLayoutSizes() {
	helpHeight := 1
	if m.help.ShowAll {
		helpHeight = 3
	}
	m.timeline.Width = max(m.width-4, 0)
	m.timeline.Height = max(m.height-chromeHeight-helpHeight, 1)
	m.timeline.SetContent(m.timelineContent())
}
