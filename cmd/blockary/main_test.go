package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", dir)
	configPath := filepath.Join(dir, "blockary.toml")

	tests := []struct {
		name    string
		wantOut string
		wantErr string
		args    []string
	}{
		{
			name:    "version",
			args:    []string{"--version"},
			wantOut: "dev",
		},
		{
			name:    "missing config",
			args:    []string{"--config", configPath, "sync"},
			wantErr: "blockary config init",
		},
		{
			name:    "init config",
			args:    []string{"config", "init", "-c", configPath},
			wantOut: "Created config file: " + configPath,
		},
		{
			name:    "unknown command",
			args:    []string{"nope"},
			wantErr: "unknown command",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(tt.args, &stdout, &stderr)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Contains(t, stdout.String(), tt.wantOut)
		})
	}

	_, err := os.Stat(configPath)
	assert.NoError(t, err)
}
