// Package gitutil extracts git context (worktree changes, branch diffs,
// branch logs) for inclusion in the rendered prompt. All failures here are
// recoverable: callers log a warning and render without the git sections.
package gitutil

import (
	"fmt"
	"sort"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/logging"
)

// WorktreeChanges returns a summary of uncommitted changes in the
// repository containing repoPath, one "<status> <path>" line per changed
// file. Returns an empty string for a clean worktree.
func WorktreeChanges(repoPath string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrGitOperation, "cannot access worktree")
	}

	status, err := worktree.Status()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrGitOperation, "cannot read worktree status")
	}
	if status.IsClean() {
		return "", nil
	}

	paths := make([]string, 0, len(status))
	for path := range status {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, path := range paths {
		fileStatus := status[path]
		code := byte(fileStatus.Staging)
		if code == ' ' || code == '?' {
			code = byte(fileStatus.Worktree)
		}
		fmt.Fprintf(&b, "%c %s\n", code, path)
	}

	logger := logging.GetLogger("gitutil")
	logger.Debug().
		Int("changedFiles", len(paths)).
		Msg("collected worktree changes")
	return b.String(), nil
}

// DiffBranches returns the patch between the tips of two branches.
func DiffBranches(repoPath, branch1, branch2 string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}

	commit1, err := branchCommit(repo, branch1)
	if err != nil {
		return "", err
	}
	commit2, err := branchCommit(repo, branch2)
	if err != nil {
		return "", err
	}

	patch, err := commit1.Patch(commit2)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrGitOperation,
			"cannot diff %s against %s", branch1, branch2)
	}
	return patch.String(), nil
}

// LogBranches returns the commits reachable from branch2 but not from
// branch1, newest first, one "<short-hash> <subject>" line per commit.
func LogBranches(repoPath, branch1, branch2 string) (string, error) {
	repo, err := openRepo(repoPath)
	if err != nil {
		return "", err
	}

	commit1, err := branchCommit(repo, branch1)
	if err != nil {
		return "", err
	}
	commit2, err := branchCommit(repo, branch2)
	if err != nil {
		return "", err
	}

	iter, err := repo.Log(&git.LogOptions{From: commit2.Hash})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrGitOperation,
			"cannot read log of %s", branch2)
	}
	defer iter.Close()

	var b strings.Builder
	err = iter.ForEach(func(c *object.Commit) error {
		if c.Hash == commit1.Hash {
			return storer.ErrStop
		}
		subject := strings.SplitN(c.Message, "\n", 2)[0]
		fmt.Fprintf(&b, "%s %s\n", c.Hash.String()[:7], subject)
		return nil
	})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrGitOperation,
			"cannot walk log of %s", branch2)
	}
	return b.String(), nil
}

func openRepo(repoPath string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGitOpen,
			"no git repository at %s", repoPath).WithDetail("path", repoPath)
	}
	return repo, nil
}

func branchCommit(repo *git.Repository, branch string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(branch))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGitOperation,
			"cannot resolve branch %s", branch)
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrGitOperation,
			"cannot load commit for %s", branch)
	}
	return commit, nil
}
