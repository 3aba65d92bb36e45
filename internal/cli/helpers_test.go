package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/blockary/internal/app"
	"github.com/stretchr/testify/require"
)

// testEnv is a config file with two origins of daily notes.
type testEnv struct {
	configPath string
	workDir    string
	personal   string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(root, "cache"))

	env := &testEnv{
		configPath: filepath.Join(root, "blockary.toml"),
		workDir:    filepath.Join(root, "work"),
		personal:   filepath.Join(root, "personal"),
	}
	env.writeNote(t, env.workDir, "2025-11-12.md", "# Wed\n## Time Blocks\n- 09:00 - 10:00 Review @work/code\n")
	env.writeNote(t, env.personal, "2025-11-12.md", "## Time Blocks\n- 07:00 - 08:00 Gym @sport\n")

	config := fmt.Sprintf(`[dirs.work]
path = %q
name = "Work"

[dirs.personal]
path = %q
name = "Personal"
`, env.workDir, env.personal)
	require.NoError(t, os.WriteFile(env.configPath, []byte(config), 0o600))
	return env
}

func (e *testEnv) writeNote(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func (e *testEnv) readNote(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(content)
}

func newTestContainer(t *testing.T, configPath string) *app.Container {
	t.Helper()
	c, err := app.New(app.Options{ConfigPath: configPath, Stderr: io.Discard})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// execute runs the root command with args and returns stdout and stderr.
func execute(ctx context.Context, c *app.Container, args ...string) (string, string, error) {
	root := NewRootCommand(c, "test-version")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}
