package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// homeModel is the public landing view.
type homeModel struct{}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "l", "enter":
			return m, gotoCmd(RouteLogin)
		case "r":
			return m, gotoCmd(RouteRegister)
		}
	}
	return m, nil
}

func (m homeModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("todoterm"))
	b.WriteString("\n\n")
	b.WriteString("A terminal client for your todo list.")
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("l log in • r register • q quit"))
	return formBoxStyle.Render(b.String())
}
