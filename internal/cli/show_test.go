package cli

import (
	"context"
	"testing"
	"time"

	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShowCommand(t *testing.T) {
	env := newTestEnv(t)
	c := newTestContainer(t, env.configPath)

	stdout, _, err := execute(context.Background(), c, "show", "--date", "2025-11-12")
	require.NoError(t, err)

	assert.Contains(t, stdout, "2025-11-12")
	assert.NotContains(t, stdout, "(today)")
	assert.Contains(t, stdout, "07:00 - 08:00")
	assert.Contains(t, stdout, "Gym @sport")
	assert.Contains(t, stdout, "Review @work/code")
	assert.Contains(t, stdout, "02:00 spent across 2 origins, 2 notes")
}

func TestShowCommand_EmptyDay(t *testing.T) {
	env := newTestEnv(t)
	c := newTestContainer(t, env.configPath)

	stdout, _, err := execute(context.Background(), c, "show", "--date", "2025-11-13")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No blocks.")
}

func TestParseDateFlag(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2025, time.November, 12, 8, 0, 0, 0, time.Local)}

	tests := []struct {
		want    *domain.Date
		name    string
		value   string
		wantErr bool
	}{
		{name: "empty means today", value: ""},
		{name: "today", value: "Today"},
		{
			name:  "yesterday",
			value: "yesterday",
			want:  &domain.Date{Year: 2025, Month: time.November, Day: 11},
		},
		{
			name:  "date",
			value: " 2024-02-29 ",
			want:  &domain.Date{Year: 2024, Month: time.February, Day: 29},
		},
		{name: "invalid", value: "tomorrow", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDateFlag(tt.value, clock)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
