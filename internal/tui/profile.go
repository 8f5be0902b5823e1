package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/ports"
)

// profileModel shows the authenticated user's profile, refreshed from the
// server on every entry so an edit made elsewhere is picked up.
type profileModel struct {
	users ports.UserService

	loading bool
	seq     int
	profile domain.Profile
	banner  string
}

func newProfileModel(users ports.UserService) profileModel {
	return profileModel{users: users}
}

func (m profileModel) mount() (profileModel, tea.Cmd) {
	m.loading = true
	m.banner = ""
	m.seq++

	seq := m.seq
	users := m.users
	return m, func() tea.Msg {
		profile, err := users.Get(context.Background())
		return profileLoadedMsg{seq: seq, profile: profile, err: err}
	}
}

func (m profileModel) Update(msg tea.Msg) (profileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileLoadedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.banner = errorLine(msg.err)
			return m, nil
		}
		m.profile = msg.profile
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return m, gotoCmd(RouteEditProfile)
		case "esc", "b":
			return m, gotoCmd(RouteTodos)
		}
	}

	return m, nil
}

func (m profileModel) View() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Profile"))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(mutedStyle.Render("Loading profile..."))
	case m.banner != "":
		b.WriteString(errorStyle.Render(m.banner))
	default:
		b.WriteString(mutedStyle.Render("Name   ") + m.profile.DisplayName())
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("Email  ") + m.profile.Email)
	}

	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("e edit • esc back • ctrl+l logout"))
	return formBoxStyle.Render(b.String())
}
