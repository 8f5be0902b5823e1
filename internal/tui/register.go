package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wtek/todoterm/internal/ports"
)

// registerModel is the sign-up form. Like login, failures are coarse: a
// duplicate email and a rejected payload both show the same banner.
type registerModel struct {
	auth ports.AuthService

	firstName  textinput.Model
	lastName   textinput.Model
	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	banner     string
}

func newRegisterModel(auth ports.AuthService) registerModel {
	first := newInput("Ada")
	first.Focus()

	password := newInput("password")
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return registerModel{
		auth:      auth,
		firstName: first,
		lastName:  newInput("Lovelace"),
		email:     newInput("you@example.com"),
		password:  password,
	}
}

func (m registerModel) reset() registerModel {
	return newRegisterModel(m.auth)
}

func (m *registerModel) inputs() []*textinput.Model {
	return []*textinput.Model{&m.firstName, &m.lastName, &m.email, &m.password}
}

func (m registerModel) Update(msg tea.Msg) (registerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % 4
			focusInput(m.inputs(), m.focus)
			return m, nil
		case "shift+tab", "up":
			m.focus = (m.focus + 3) % 4
			focusInput(m.inputs(), m.focus)
			return m, nil
		case "enter":
			return m.submit()
		}

	case registerResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.banner = "Registration failed. The email may already be in use."
			return m, nil
		}
		return m, gotoCmd(RouteTodos)
	}

	var cmd tea.Cmd
	in := m.inputs()[m.focus]
	*in, cmd = in.Update(msg)
	return m, cmd
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	reg := ports.Registration{
		FirstName: strings.TrimSpace(m.firstName.Value()),
		LastName:  strings.TrimSpace(m.lastName.Value()),
		Email:     strings.TrimSpace(m.email.Value()),
		Password:  m.password.Value(),
	}
	if reg.Email == "" || reg.Password == "" {
		m.banner = "Email and password are required."
		return m, nil
	}

	m.submitting = true
	m.banner = ""
	auth := m.auth
	return m, func() tea.Msg {
		profile, err := auth.Register(context.Background(), reg)
		return registerResultMsg{profile: profile, err: err}
	}
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Create an account"))
	b.WriteString("\n\n")
	if m.banner != "" {
		b.WriteString(errorStyle.Render(m.banner))
		b.WriteString("\n\n")
	}
	b.WriteString(renderField("First name", m.firstName, ""))
	b.WriteString("\n")
	b.WriteString(renderField("Last name", m.lastName, ""))
	b.WriteString("\n")
	b.WriteString(renderField("Email", m.email, ""))
	b.WriteString("\n")
	b.WriteString(renderField("Password", m.password, ""))
	b.WriteString("\n\n")
	if m.submitting {
		b.WriteString(mutedStyle.Render("Creating account..."))
	} else {
		b.WriteString(helpStyle.Render("enter submit • tab next field • esc back"))
	}
	return formBoxStyle.Render(b.String())
}
