// Package gitnotes commits rewritten notes to the git repository of their origin.
package gitnotes

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/runoshun/blockary/internal/domain"
)

// Default author used when git has no user configured.
const (
	DefaultAuthorName  = "blockary"
	DefaultAuthorEmail = "blockary@localhost"
)

// Ensure Committer implements domain.NoteCommitter.
var _ domain.NoteCommitter = (*Committer)(nil)

// Committer implements domain.NoteCommitter using go-git.
type Committer struct {
	clock domain.Clock
}

// New creates a Committer stamping commits with clock.
func New(clock domain.Clock) *Committer {
	if clock == nil {
		clock = domain.RealClock{}
	}
	return &Committer{clock: clock}
}

// Commit stages files (absolute paths inside the repository containing dir)
// and commits them. Only the given files are staged, but whatever else is
// already in the index is committed with them.
func (c *Committer) Commit(dir string, files []string, message string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotGitRepository, dir)
		}
		return "", fmt.Errorf("open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("open worktree: %w", err)
	}
	root := wt.Filesystem.Root()

	staged := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := repoPath(root, f)
		if err != nil {
			return "", err
		}
		if _, err := wt.Add(rel); err != nil {
			return "", fmt.Errorf("stage %s: %w", rel, err)
		}
		staged = append(staged, rel)
	}

	status, err := wt.Status()
	if err != nil {
		return "", fmt.Errorf("worktree status: %w", err)
	}
	changed := slices.ContainsFunc(staged, func(rel string) bool {
		st, ok := status[rel]
		return ok && st.Staging != git.Unmodified && st.Staging != git.Untracked
	})
	if !changed {
		return "", nil
	}

	hash, err := wt.Commit(message, &git.CommitOptions{Author: c.signature(repo)})
	if err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return hash.String(), nil
}

// signature returns the configured git user, falling back to the defaults.
func (c *Committer) signature(repo *git.Repository) *object.Signature {
	sig := &object.Signature{
		Name:  DefaultAuthorName,
		Email: DefaultAuthorEmail,
		When:  c.clock.Now(),
	}
	cfg, err := repo.ConfigScoped(gitconfig.GlobalScope)
	if err != nil {
		return sig
	}
	if cfg.User.Name != "" {
		sig.Name = cfg.User.Name
	}
	if cfg.User.Email != "" {
		sig.Email = cfg.User.Email
	}
	return sig
}

// repoPath returns file relative to the worktree root in slash form.
func repoPath(root, file string) (string, error) {
	abs, err := filepath.Abs(file)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%s is outside the repository %s", file, root)
	}
	return filepath.ToSlash(rel), nil
}
