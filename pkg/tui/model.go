package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/promptpack/promptpack/pkg/logging"
	"github.com/promptpack/promptpack/pkg/session"
	"github.com/promptpack/promptpack/pkg/tree"
)

// Model is the bubbletea model for the interactive file selector. All tree
// and filter mutation goes through the session's operations; the view only
// reads the visible-node projection.
type Model struct {
	session *session.Session

	searchInput textinput.Model
	searching   bool

	height int

	// lastErr is a transient, path-scoped condition shown in the status
	// line; it never terminates the session.
	lastErr string

	generate bool
	logger   zerolog.Logger
}

// NewModel creates a TUI model over an already-browsed session.
func NewModel(sess *session.Session) Model {
	input := textinput.New()
	input.Placeholder = "search (*, ** and plain text)"
	input.CharLimit = 200

	return Model{
		session:     sess,
		searchInput: input,
		height:      24,
		logger:      logging.GetLogger("tui"),
	}
}

// Generate reports whether the user asked to build the prompt on exit.
func (m Model) Generate() bool {
	return m.generate
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateTree(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue("")
		m.session.SearchQuery = ""
		m.clampCursor()
		return m, nil
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.session.SearchQuery = m.searchInput.Value()
	m.clampCursor()
	return m, cmd
}

func (m Model) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "g":
		m.generate = true
		return m, tea.Quit

	case "up", "k":
		if m.session.TreeCursor > 0 {
			m.session.TreeCursor--
		}
		return m, nil

	case "down", "j":
		if m.session.TreeCursor < len(m.session.VisibleNodes())-1 {
			m.session.TreeCursor++
		}
		return m, nil

	case "enter", "l", "right":
		m.toggleExpand()
		return m, nil

	case "h", "left":
		if node := m.cursorNode(); node != nil && node.IsDirectory && node.IsExpanded {
			m.session.Tree.Collapse(node.Path)
		}
		return m, nil

	case " ":
		m.toggleSelection()
		return m, nil

	case "c":
		m.session.ClearOverrides()
		m.session.RefreshSelection()
		return m, nil

	case "r":
		m.session.RefreshSelection()
		return m, nil

	case "/":
		m.searching = true
		m.searchInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

// toggleExpand expands or collapses the directory under the cursor,
// lazily loading its children on first expansion. A listing failure is
// surfaced in the status line and leaves the node retryable.
func (m *Model) toggleExpand() {
	node := m.cursorNode()
	if node == nil || !node.IsDirectory {
		return
	}

	if node.IsExpanded {
		m.session.Tree.Collapse(node.Path)
		return
	}

	m.lastErr = ""
	if err := m.session.Tree.LoadChildren(node.Path); err != nil {
		m.lastErr = err.Error()
		m.logger.Warn().Err(err).Str("path", node.Path).Msg("lazy load failed")
	}
	m.session.Tree.Expand(node.Path)
}

// toggleSelection flips the inclusion decision for the node under the
// cursor and mirrors the new decision onto the displayed selection flags.
func (m *Model) toggleSelection() {
	node := m.cursorNode()
	if node == nil {
		return
	}

	m.session.Toggle(node.Path)
	m.session.Tree.SetSelection(node.Path, m.session.IsIncluded(node.Path), node.IsDirectory)
}

func (m *Model) cursorNode() *tree.FileNode {
	visible := m.session.VisibleNodes()
	if m.session.TreeCursor < 0 || m.session.TreeCursor >= len(visible) {
		return nil
	}
	return visible[m.session.TreeCursor]
}

func (m *Model) clampCursor() {
	if n := len(m.session.VisibleNodes()); m.session.TreeCursor >= n {
		m.session.TreeCursor = n - 1
	}
	if m.session.TreeCursor < 0 {
		m.session.TreeCursor = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("promptpack — " + m.session.Root()))
	b.WriteString("\n")

	if m.searching {
		b.WriteString(" " + m.searchInput.View() + "\n")
	} else if m.session.SearchQuery != "" {
		b.WriteString(statusStyle.Render("filter: "+m.session.SearchQuery) + "\n")
	}

	visible := m.session.VisibleNodes()
	rows := m.height - 5
	if rows < 1 {
		rows = 1
	}

	offset := 0
	if m.session.TreeCursor >= rows {
		offset = m.session.TreeCursor - rows + 1
	}

	for i := offset; i < len(visible) && i < offset+rows; i++ {
		b.WriteString(m.renderNode(visible[i], i == m.session.TreeCursor))
		b.WriteString("\n")
	}
	if len(visible) == 0 {
		b.WriteString(statusStyle.Render("no matching entries") + "\n")
	}

	if m.lastErr != "" {
		b.WriteString(errorStyle.Render(m.lastErr) + "\n")
	}
	b.WriteString(helpStyle.Render("space toggle · enter expand · / search · c clear overrides · r refresh · g generate · q quit"))
	return b.String()
}

func (m Model) renderNode(node *tree.FileNode, atCursor bool) string {
	indent := strings.Repeat("  ", node.Level)

	marker := "[ ]"
	if node.IsSelected {
		marker = "[x]"
	}

	arrow := "  "
	if node.IsDirectory {
		if node.IsExpanded {
			arrow = "▾ "
		} else {
			arrow = "▸ "
		}
	}

	name := node.Name
	if node.IsDirectory {
		name = dirStyle.Render(name + "/")
	}
	if node.IsSelected {
		name = selectedStyle.Render(name)
	}

	line := fmt.Sprintf(" %s%s %s%s", indent, marker, arrow, name)
	if atCursor {
		return cursorStyle.Render(">" + line[1:])
	}
	return line
}
