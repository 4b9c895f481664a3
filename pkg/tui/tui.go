// Package tui is the interactive file selector: a tree view over the
// selection session with lazy loading, toggling and live search.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/promptpack/promptpack/pkg/session"
)

// Execute runs the interactive selector over the session and reports
// whether the user asked to generate the prompt on exit.
func Execute(sess *session.Session) (bool, error) {
	p := tea.NewProgram(NewModel(sess), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(Model)
	return ok && m.Generate(), nil
}
