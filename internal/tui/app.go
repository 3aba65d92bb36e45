// Package tui provides the interactive day browser.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/usecase"
)

// DayShower loads the merged timeline of a day.
type DayShower interface {
	Execute(ctx context.Context, in usecase.ShowDayInput) (*usecase.ShowDayOutput, error)
}

// Model is the main bubbletea model for the TUI.
type Model struct {
	// Dependencies (pointers first for alignment)
	shower DayShower
	clock  domain.Clock
	out    *usecase.ShowDayOutput
	err    error

	// Components (structs with pointers)
	keys     KeyMap
	styles   Styles
	help     help.Model
	timeline viewport.Model

	// State
	day     domain.Date
	width   int
	height  int
	loading bool
}

// New creates a new TUI Model showing day, or today if day is nil.
func New(shower DayShower, clock domain.Clock, day *domain.Date) *Model {
	m := &Model{
		shower:   shower,
		clock:    clock,
		keys:     DefaultKeyMap(),
		styles:   DefaultStyles(),
		help:     help.New(),
		timeline: viewport.New(0, 0),
		day:      domain.DateOf(clock.Now()),
	}
	if day != nil {
		m.day = *day
	}
	return m
}

// Day returns the day being shown.
func (m *Model) Day() domain.Date {
	return m.day
}

// Init initializes the model and returns the initial command.
func (m *Model) Init() tea.Cmd {
	return m.loadDay(m.day)
}

// loadDay returns a command that loads the timeline of day.
func (m *Model) loadDay(day domain.Date) tea.Cmd {
	m.loading = true
	return func() tea.Msg {
		out, err := m.shower.Execute(context.Background(), usecase.ShowDayInput{Date: &day})
		if err != nil {
			return MsgError{Day: day, Err: err}
		}
		return MsgDayLoaded{Day: day, Out: out}
	}
}

// showDay switches to day and loads it.
func (m *Model) showDay(day domain.Date) tea.Cmd {
	m.day = day
	m.out = nil
	m.err = nil
	m.timeline.GotoTop()
	return m.loadDay(day)
}
