package gitnotes

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/blockary/internal/domain"
	"github.com/runoshun/blockary/internal/testutil"
)

func setupTestRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()

	// Keep the user's git identity out of the commits.
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func writeNote(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCommitter_Commit(t *testing.T) {
	dir, repo := setupTestRepo(t)
	clock := &testutil.MockClock{NowTime: time.Date(2025, 11, 12, 18, 0, 0, 0, time.UTC)}
	note := filepath.Join(dir, "2025", "2025-11-12.md")
	writeNote(t, note, "## Time Blocks\n- 08:00 - 09:00 Work\n")

	hash, err := New(clock).Commit(filepath.Join(dir, "2025"), []string{note}, "blockary: sync 1 note")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	require.NoError(t, err)
	assert.Equal(t, "blockary: sync 1 note", commit.Message)
	assert.Equal(t, DefaultAuthorName, commit.Author.Name)
	assert.Equal(t, DefaultAuthorEmail, commit.Author.Email)
	assert.True(t, clock.NowTime.Equal(commit.Author.When))

	_, err = commit.File("2025/2025-11-12.md")
	assert.NoError(t, err)
}

func TestCommitter_Commit_Unchanged(t *testing.T) {
	dir, _ := setupTestRepo(t)
	note := filepath.Join(dir, "2025-11-12.md")
	writeNote(t, note, "## Time Blocks\n")

	c := New(nil)
	first, err := c.Commit(dir, []string{note}, "first")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := c.Commit(dir, []string{note}, "second")
	require.NoError(t, err)
	assert.Empty(t, second)
}

func TestCommitter_Commit_NotARepository(t *testing.T) {
	dir := t.TempDir()
	note := filepath.Join(dir, "2025-11-12.md")
	writeNote(t, note, "x\n")

	_, err := New(nil).Commit(dir, []string{note}, "msg")
	assert.ErrorIs(t, err, domain.ErrNotGitRepository)
}

func TestCommitter_Commit_OutsideRepository(t *testing.T) {
	dir, _ := setupTestRepo(t)
	other := filepath.Join(t.TempDir(), "2025-11-12.md")
	writeNote(t, other, "x\n")

	_, err := New(nil).Commit(dir, []string{other}, "msg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside the repository")
}
