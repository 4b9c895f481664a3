// Test Type: Unit Test
// Description: Tests for the interactive selector's update logic

package tui_test

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptpack/promptpack/pkg/filter"
	"github.com/promptpack/promptpack/pkg/session"
	"github.com/promptpack/promptpack/pkg/testutil"
	"github.com/promptpack/promptpack/pkg/tui"
)

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func browsedSession(t *testing.T, files map[string]string, includes []string) *session.Session {
	t.Helper()
	root := testutil.TempTree(t, files)
	cfg := filter.NewConfig()
	cfg.IncludePatterns = includes
	sess, err := session.New(root, cfg)
	require.NoError(t, err)
	require.NoError(t, sess.Browse())
	return sess
}

func update(t *testing.T, m tea.Model, msgs ...tea.Msg) tui.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	out, ok := m.(tui.Model)
	require.True(t, ok)
	return out
}

func TestModel_ToggleSelection(t *testing.T) {
	sess := browsedSession(t, map[string]string{"a.txt": "a", "b.txt": "b"}, []string{"*.txt"})
	m := tea.Model(tui.NewModel(sess))

	// Cursor starts on the first visible node; space toggles it out.
	update(t, m, key(" "))

	visible := sess.VisibleNodes()
	first := visible[0]
	assert.False(t, sess.IsIncluded(first.Path))
	assert.False(t, first.IsSelected)
	assert.Contains(t, sess.Config().ExplicitExcludes, filepath.Base(first.Path))
}

func TestModel_ExpandLoadsChildren(t *testing.T) {
	sess := browsedSession(t, map[string]string{"dir/inner.txt": "x"}, nil)
	m := tea.Model(tui.NewModel(sess))

	update(t, m, key("enter"))

	dir := sess.Tree.Roots()[0]
	assert.True(t, dir.IsExpanded)
	assert.True(t, dir.ChildrenLoaded)
	require.Len(t, dir.Children, 1)
	assert.Equal(t, "inner.txt", dir.Children[0].Name)

	// Visible projection now includes the child.
	assert.Len(t, sess.VisibleNodes(), 2)
}

func TestModel_GenerateQuits(t *testing.T) {
	sess := browsedSession(t, map[string]string{"a.txt": "a"}, nil)

	m, cmd := tui.NewModel(sess).Update(key("g"))
	model, ok := m.(tui.Model)
	require.True(t, ok)
	assert.True(t, model.Generate())
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_SearchFiltersTree(t *testing.T) {
	sess := browsedSession(t, map[string]string{"main.go": "m", "other.md": "o"}, nil)
	m := tea.Model(tui.NewModel(sess))

	// Enter search mode and type a query.
	m = tea.Model(update(t, m, key("/"), key("main")))

	assert.Equal(t, "main", sess.SearchQuery)

	names := []string{}
	for _, node := range sess.VisibleNodes() {
		names = append(names, node.Name)
	}
	assert.Equal(t, []string{"main.go"}, names)
}
