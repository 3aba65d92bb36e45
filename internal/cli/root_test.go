package cli

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCommand_Help(t *testing.T) {
	stdout, _, err := execute(context.Background(), nil, "--help")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Notes:")
	assert.Contains(t, stdout, "Setup Commands:")
	for _, name := range []string{"sync", "watch", "spent", "show", "browse", "config"} {
		assert.Contains(t, stdout, name)
	}
}

func TestNewRootCommand_Version(t *testing.T) {
	stdout, _, err := execute(context.Background(), nil, "--version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "test-version")
}

func TestNewRootCommand_PrintsConfigWarnings(t *testing.T) {
	env := newTestEnv(t)
	f, err := os.OpenFile(env.configPath, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("\n[extra]\nkey = 1\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	c := newTestContainer(t, env.configPath)
	_, stderr, err := execute(context.Background(), c, "show", "--date", "2025-11-12")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Warning: unknown section: extra")
}

func TestGlobalOptions(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantConfig  string
		wantVerbose bool
	}{
		{
			name: "none",
			args: []string{"sync"},
		},
		{
			name:       "long config flag",
			args:       []string{"--config", "/tmp/a.toml", "sync"},
			wantConfig: "/tmp/a.toml",
		},
		{
			name:        "short config after subcommand",
			args:        []string{"sync", "-c", "/tmp/b.toml", "--verbose"},
			wantConfig:  "/tmp/b.toml",
			wantVerbose: true,
		},
		{
			name:       "unknown flags are ignored",
			args:       []string{"spent", "--date", "2025-11-12", "--config=/tmp/c.toml"},
			wantConfig: "/tmp/c.toml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := GlobalOptions(tt.args)
			assert.Equal(t, tt.wantConfig, opts.ConfigPath)
			assert.Equal(t, tt.wantVerbose, opts.Verbose)
		})
	}
}
