package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/wtek/todoterm/internal/ports"
)

// loginModel is the login form: email and password, a submitting flag,
// and a coarse error banner. Auth failures carry no field detail, so
// there is no per-field error map here.
type loginModel struct {
	auth ports.AuthService

	email      textinput.Model
	password   textinput.Model
	focus      int
	submitting bool
	banner     string
}

func newLoginModel(auth ports.AuthService) loginModel {
	email := newInput("you@example.com")
	email.Focus()

	password := newInput("password")
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return loginModel{
		auth:     auth,
		email:    email,
		password: password,
	}
}

// reset clears the form for re-entry, keeping a notice such as "session
// expired" visible.
func (m loginModel) reset(banner string) loginModel {
	fresh := newLoginModel(m.auth)
	fresh.banner = banner
	return fresh
}

func (m *loginModel) inputs() []*textinput.Model {
	return []*textinput.Model{&m.email, &m.password}
}

func (m loginModel) Update(msg tea.Msg) (loginModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.focus = (m.focus + 1) % 2
			focusInput(m.inputs(), m.focus)
			return m, nil
		case "shift+tab", "up":
			m.focus = (m.focus + 1) % 2
			focusInput(m.inputs(), m.focus)
			return m, nil
		case "enter":
			return m.submit()
		}

	case loginResultMsg:
		m.submitting = false
		if msg.err != nil {
			m.banner = "Login failed. Check your email and password."
			return m, nil
		}
		return m, gotoCmd(RouteTodos)
	}

	var cmd tea.Cmd
	switch m.focus {
	case 0:
		m.email, cmd = m.email.Update(msg)
	case 1:
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.email.Value())
	password := m.password.Value()
	if email == "" || password == "" {
		m.banner = "Email and password are required."
		return m, nil
	}

	m.submitting = true
	m.banner = ""
	auth := m.auth
	return m, func() tea.Msg {
		profile, err := auth.Login(context.Background(), email, password)
		return loginResultMsg{profile: profile, err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Log in"))
	b.WriteString("\n\n")
	if m.banner != "" {
		// The expiry notice is informational, not a failed attempt.
		style := errorStyle
		if m.banner == sessionExpiredNotice {
			style = noticeStyle
		}
		b.WriteString(style.Render(m.banner))
		b.WriteString("\n\n")
	}
	b.WriteString(renderField("Email", m.email, ""))
	b.WriteString("\n")
	b.WriteString(renderField("Password", m.password, ""))
	b.WriteString("\n\n")
	if m.submitting {
		b.WriteString(mutedStyle.Render("Logging in..."))
	} else {
		b.WriteString(helpStyle.Render("enter submit • tab next field • ctrl+r register • esc back"))
	}
	return formBoxStyle.Render(b.String())
}
