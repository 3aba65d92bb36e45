package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/testutil"
	"github.com/runoshun/blockary/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShower struct {
	err       error
	days      map[domain.Date][]domain.Block
	requested []domain.Date
}

func (f *fakeShower) Execute(_ context.Context, in usecase.ShowDayInput) (*usecase.ShowDayOutput, error) {
	f.requested = append(f.requested, *in.Date)
	if f.err != nil {
		return nil, f.err
	}
	blocks := f.days[*in.Date]
	total := 0
	for _, b := range blocks {
		total += b.Duration
	}
	return &usecase.ShowDayOutput{
		Day:     *in.Date,
		Blocks:  blocks,
		Notes:   []string{in.Date.String()},
		Total:   total,
		Origins: 1,
	}, nil
}

var (
	nov12 = domain.Date{Year: 2024, Month: time.November, Day: 12}
	nov13 = domain.Date{Year: 2024, Month: time.November, Day: 13}
)

func newTestModel(t *testing.T, shower *fakeShower) *Model {
	t.Helper()
	clock := &testutil.MockClock{NowTime: time.Date(2024, time.November, 12, 12, 0, 0, 0, time.UTC)}
	m := New(shower, clock, nil)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m
}

// send feeds msg to the model and runs the returned command, feeding its
// message back as the command loop would.
func send(t *testing.T, m *Model, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return nil
	}
	out := cmd()
	if _, ok := out.(Msg); ok {
		m.Update(out)
	}
	return out
}

func TestModel_Init_LoadsToday(t *testing.T) {
	shower := &fakeShower{days: map[domain.Date][]domain.Block{
		nov12: {domain.NewBlock("09:00 - 10:30", "Work", "Review @work/code")},
	}}
	m := newTestModel(t, shower)

	msg := m.Init()()
	loaded, ok := msg.(MsgDayLoaded)
	require.True(t, ok)
	assert.Equal(t, nov12, loaded.Day)

	m.Update(msg)
	view := m.View()
	assert.Contains(t, view, "2024-11-12")
	assert.Contains(t, m.viewHeader(), "today")
	assert.Contains(t, view, "09:00 - 10:30")
	assert.Contains(t, view, "Review")
	assert.Contains(t, view, "@work/code")
	assert.Contains(t, view, "01:30 spent")
}

func TestModel_Navigation(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want domain.Date
	}{
		{
			name: "next day",
			keys: []tea.KeyMsg{{Type: tea.KeyRight}},
			want: nov13,
		},
		{
			name: "previous day with vim key",
			keys: []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'h'}}},
			want: nov12.AddDays(-1),
		},
		{
			name: "back to today",
			keys: []tea.KeyMsg{
				{Type: tea.KeyRight},
				{Type: tea.KeyRight},
				{Type: tea.KeyRunes, Runes: []rune{'t'}},
			},
			want: nov12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shower := &fakeShower{}
			m := newTestModel(t, shower)
			for _, k := range tt.keys {
				send(t, m, k)
			}

			assert.Equal(t, tt.want, m.Day())
			require.NotEmpty(t, shower.requested)
			assert.Equal(t, tt.want, shower.requested[len(shower.requested)-1])
		})
	}
}

func TestModel_NoBlocks(t *testing.T) {
	m := newTestModel(t, &fakeShower{})
	send(t, m, tea.KeyMsg{Type: tea.KeyRight})

	view := m.View()
	assert.Contains(t, view, "2024-11-13")
	assert.NotContains(t, m.viewHeader(), "today")
	assert.Contains(t, view, "No blocks on this day.")
}

func TestModel_StaleResponseIgnored(t *testing.T) {
	shower := &fakeShower{days: map[domain.Date][]domain.Block{
		nov12: {domain.NewBlock("09:00 - 10:00", "Work", "Standup")},
	}}
	m := newTestModel(t, shower)
	stale := m.Init()()

	send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m.Update(stale)

	assert.Equal(t, nov13, m.Day())
	assert.NotContains(t, m.View(), "Standup")
}

func TestModel_Error(t *testing.T) {
	m := newTestModel(t, &fakeShower{err: errors.New("config not found")})
	m.Update(m.Init()())

	assert.Contains(t, m.View(), "Error: config not found")
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t, &fakeShower{})

	msg := send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.IsType(t, tea.QuitMsg{}, msg)
}

func TestModel_ToggleHelp(t *testing.T) {
	m := newTestModel(t, &fakeShower{})
	assert.False(t, m.help.ShowAll)

	send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.True(t, m.help.ShowAll)
}

func TestModel_View_BeforeResize(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Now()}
	m := New(&fakeShower{}, clock, &nov13)

	assert.Equal(t, "Loading...", m.View())
	assert.Equal(t, nov13, m.Day())
}
