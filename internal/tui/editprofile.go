package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/ports"
)

// editProfileModel edits the display names. It pre-fills from the session
// copy handed over at navigation time; the email is shown but immutable.
// Only changed fields are submitted.
type editProfileModel struct {
	users ports.UserService

	current   domain.Profile
	firstName textinput.Model
	lastName  textinput.Model

	focus      int
	errors     map[string]string
	submitting bool
}

func newEditProfileModel(users ports.UserService, current domain.Profile) editProfileModel {
	first := newInput("first name")
	first.SetValue(current.FirstName)
	first.Focus()
	first.CursorEnd()

	last := newInput("last name")
	last.SetValue(current.LastName)

	return editProfileModel{
		users:     users,
		current:   current,
		firstName: first,
		lastName:  last,
		errors:    map[string]string{},
	}
}

func (m *editProfileModel) inputs() []*textinput.Model {
	return []*textinput.Model{&m.firstName, &m.lastName}
}

func (m editProfileModel) Update(msg tea.Msg) (editProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		m.submitting = false
		if msg.err != nil {
			m.errors = fieldErrors(msg.err)
			return m, nil
		}
		return m, gotoCmd(RouteProfile)

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			return m, gotoCmd(RouteProfile)
		case "tab", "down", "shift+tab", "up":
			m.focus = (m.focus + 1) % 2
			focusInput(m.inputs(), m.focus)
			return m, nil
		case "enter":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	in := m.inputs()[m.focus]
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m editProfileModel) submit() (editProfileModel, tea.Cmd) {
	first := strings.TrimSpace(m.firstName.Value())
	last := strings.TrimSpace(m.lastName.Value())

	var u domain.ProfileUpdate
	if first != m.current.FirstName {
		u.FirstName = &first
	}
	if last != m.current.LastName {
		u.LastName = &last
	}
	if u.FirstName == nil && u.LastName == nil {
		return m, gotoCmd(RouteProfile)
	}

	m.submitting = true
	m.errors = map[string]string{}
	users := m.users
	return m, func() tea.Msg {
		profile, err := users.Update(context.Background(), u)
		return profileSavedMsg{profile: profile, err: err}
	}
}

func (m editProfileModel) View() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Edit profile"))
	if msg, ok := m.errors[domain.GlobalField]; ok {
		b.WriteString("  " + errorStyle.Render(msg))
	}
	b.WriteString("\n\n")
	b.WriteString(mutedStyle.Render("Email  ") + m.current.Email)
	b.WriteString("\n\n")
	b.WriteString(renderField("First name", m.firstName, m.errors["firstName"]))
	b.WriteString("\n")
	b.WriteString(renderField("Last name", m.lastName, m.errors["lastName"]))
	b.WriteString("\n\n")
	if m.submitting {
		b.WriteString(mutedStyle.Render("Saving..."))
	} else {
		b.WriteString(helpStyle.Render("enter save • tab next field • esc cancel"))
	}
	return formBoxStyle.Render(b.String())
}
