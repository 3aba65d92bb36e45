package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpentCommand(t *testing.T) {
	env := newTestEnv(t)
	c := newTestContainer(t, env.configPath)

	stdout, _, err := execute(context.Background(), c, "spent", "--date", "2025-11-12")
	require.NoError(t, err)

	assert.Contains(t, stdout, "> Personal")
	assert.Contains(t, stdout, "> Work")
	assert.Contains(t, stdout, "sport")
	assert.Contains(t, stdout, "code")
	assert.Contains(t, stdout, "100%")
	assert.Contains(t, stdout, "01:00 on Work 2025-11-12")
	assert.Contains(t, stdout, "01:00 on Personal 2025-11-12")
}

func TestSpentCommand_Origin(t *testing.T) {
	env := newTestEnv(t)
	c := newTestContainer(t, env.configPath)

	stdout, _, err := execute(context.Background(), c, "spent", "-d", "2025-11-12", "-o", "Work")
	require.NoError(t, err)
	assert.Contains(t, stdout, "> Work")
	assert.NotContains(t, stdout, "Personal")
}

func TestSpentCommand_UnknownOrigin(t *testing.T) {
	env := newTestEnv(t)
	c := newTestContainer(t, env.configPath)

	_, _, err := execute(context.Background(), c, "spent", "--origin", "Nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Nope")
}

func TestSpentCommand_InvalidDate(t *testing.T) {
	env := newTestEnv(t)
	c := newTestContainer(t, env.configPath)

	_, _, err := execute(context.Background(), c, "spent", "--date", "12/11/2025")
	assert.Error(t, err)
}
