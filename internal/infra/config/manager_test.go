package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/runoshun/blockary/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GetConfigInfo(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.ConfigFileName)
	m := NewManager(path)

	info := m.GetConfigInfo()
	assert.Equal(t, path, info.Path)
	assert.False(t, info.Exists)
	assert.Empty(t, info.Content)

	require.NoError(t, os.WriteFile(path, []byte("[log]\n"), 0644))

	info = m.GetConfigInfo()
	assert.True(t, info.Exists)
	assert.Equal(t, "[log]\n", info.Content)
}

func TestManager_InitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", domain.ConfigFileName)
	m := NewManager(path)

	require.NoError(t, m.InitConfig(domain.NewDefaultConfig()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "[dirs.work]")

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), st.Mode().Perm())
}

func TestManager_InitConfig_AlreadyExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), domain.ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte("existing"), 0644))

	err := NewManager(path).InitConfig(domain.NewDefaultConfig())
	assert.ErrorIs(t, err, domain.ErrConfigExists)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(content))
}
