// Test Type: Integration Test
// Description: Tests for git context extraction against a real repository

package gitutil_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpack/promptpack/pkg/errors"
	"github.com/promptpack/promptpack/pkg/gitutil"
)

func testSignature() *object.Signature {
	return &object.Signature{
		Name:  "tester",
		Email: "tester@example.com",
		When:  time.Now(),
	}
}

func commitFile(t *testing.T, repo *git.Repository, dir, name, content, message string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add(name)
	require.NoError(t, err)
	_, err = worktree.Commit(message, &git.CommitOptions{Author: testSignature()})
	require.NoError(t, err)
}

func initRepo(t *testing.T) (*git.Repository, string) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	commitFile(t, repo, dir, "base.txt", "base\n", "initial commit")
	return repo, dir
}

func TestWorktreeChanges(t *testing.T) {
	t.Run("clean_worktree_is_empty", func(t *testing.T) {
		_, dir := initRepo(t)
		changes, err := gitutil.WorktreeChanges(dir)
		require.NoError(t, err)
		assert.Empty(t, changes)
	})

	t.Run("lists_modified_and_untracked", func(t *testing.T) {
		_, dir := initRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "base.txt"), []byte("changed\n"), 0644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("new\n"), 0644))

		changes, err := gitutil.WorktreeChanges(dir)
		require.NoError(t, err)
		assert.Contains(t, changes, "M base.txt")
		assert.Contains(t, changes, "? new.txt")
	})

	t.Run("not_a_repository", func(t *testing.T) {
		_, err := gitutil.WorktreeChanges(t.TempDir())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrGitOpen))
	})
}

func TestDiffBranches(t *testing.T) {
	repo, dir := initRepo(t)

	head, err := repo.Head()
	require.NoError(t, err)
	mainName := head.Name().Short()

	// Branch off and add a file there.
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
		Create: true,
	}))
	commitFile(t, repo, dir, "feature.txt", "feature work\n", "add feature file")

	diff, err := gitutil.DiffBranches(dir, mainName, "feature")
	require.NoError(t, err)
	assert.Contains(t, diff, "feature.txt")
	assert.Contains(t, diff, "+feature work")

	t.Run("unknown_branch", func(t *testing.T) {
		_, err := gitutil.DiffBranches(dir, mainName, "nope")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrGitOperation))
	})
}

func TestLogBranches(t *testing.T) {
	repo, dir := initRepo(t)

	head, err := repo.Head()
	require.NoError(t, err)
	mainName := head.Name().Short()

	worktree, err := repo.Worktree()
	require.NoError(t, err)
	require.NoError(t, worktree.Checkout(&git.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName("feature"),
		Create: true,
	}))
	commitFile(t, repo, dir, "one.txt", "1\n", "first feature commit")
	commitFile(t, repo, dir, "two.txt", "2\n", "second feature commit")

	log, err := gitutil.LogBranches(dir, mainName, "feature")
	require.NoError(t, err)
	assert.Contains(t, log, "first feature commit")
	assert.Contains(t, log, "second feature commit")
	assert.NotContains(t, log, "initial commit")
}
