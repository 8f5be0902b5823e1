// Package tui implements the view layer: one Bubble Tea model per route
// (home, login, register, todos, profile, edit profile) behind a root
// router that owns navigation, the route guard, and the global reaction
// to an expired session.
//
// All state mutation happens inside the single Update loop; network calls
// run as tea.Cmd goroutines whose results re-enter the loop as messages.
// A result arriving for a view that is no longer active is dropped by the
// router, which is the liveness guard for calls that outlive their view.
package tui

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wtek/todoterm/internal/ports"
)

// healthInterval is how often the footer's downstream status refreshes.
const healthInterval = 15 * time.Second

// sessionExpiredNotice is shown on the login form after a 401 forced a
// logout.
const sessionExpiredNotice = "Your session has expired. Please log in again."

// Services bundles everything the view layer depends on.
type Services struct {
	Auth    ports.AuthService
	Todos   ports.TodoService
	Users   ports.UserService
	Session ports.SessionStore
	Health  ports.HealthRegistry
	Logger  *slog.Logger
}

// healthTickMsg schedules the next downstream status poll.
type healthTickMsg struct{}

// gotoCmd returns a command that asks the router to switch views.
func gotoCmd(to Route) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{to: to}
	}
}

// Model is the root Bubble Tea model.
type Model struct {
	svc    Services
	logger *slog.Logger

	route    Route
	home     homeModel
	login    loginModel
	register registerModel
	todos    todoListModel
	profile  profileModel
	edit     editProfileModel

	health map[string]error
	width  int
	height int
}

// New creates the root model. A persisted session routes straight to the
// todo list; otherwise the public landing view shows first.
func New(svc Services) Model {
	logger := svc.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	m := Model{
		svc:      svc,
		logger:   logger,
		route:    RouteHome,
		home:     homeModel{},
		login:    newLoginModel(svc.Auth),
		register: newRegisterModel(svc.Auth),
		todos:    newTodoListModel(svc.Todos, svc.Users),
		profile:  newProfileModel(svc.Users),
	}
	if svc.Auth.IsAuthenticated() {
		m.route = RouteTodos
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.checkHealthCmd()}
	if m.route == RouteTodos {
		var cmd tea.Cmd
		m.todos, cmd = m.todos.mount()
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.todos.help.Width = msg.Width
		return m, nil

	case healthTickMsg:
		return m, m.checkHealthCmd()

	case healthMsg:
		m.health = msg.results
		return m, m.healthTickCmd()

	case navigateMsg:
		return m.navigate(msg.to)

	case tea.KeyMsg:
		if model, cmd, handled := m.handleGlobalKey(msg); handled {
			return model, cmd
		}
	}

	// A session that died mid-flight overrides whatever the active view
	// would have done with the failure.
	if res, ok := msg.(errCarrier); ok && isSessionExpired(res.ResultErr()) {
		return m.forceLogin()
	}

	return m.dispatch(msg)
}

// handleGlobalKey handles keys that belong to the router, not the views.
func (m Model) handleGlobalKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit, true
	}

	switch m.route {
	case RouteHome:
		if key == "q" || key == "esc" {
			return m, tea.Quit, true
		}

	case RouteLogin:
		if key == "esc" {
			return m, gotoCmd(RouteHome), true
		}
		if key == "ctrl+r" {
			return m, gotoCmd(RouteRegister), true
		}

	case RouteRegister:
		if key == "esc" {
			return m, gotoCmd(RouteLogin), true
		}

	case RouteTodos:
		if m.todos.form == nil {
			if key == "q" {
				return m, tea.Quit, true
			}
			if key == "ctrl+l" {
				return m.logout()
			}
		}

	case RouteProfile, RouteEditProfile:
		if key == "ctrl+l" {
			return m.logout()
		}
	}

	return m, nil, false
}

// navigate applies the route guard and mounts the target view. Protected
// targets fall back to the login route when no session is persisted; the
// guard never makes a server round trip.
func (m Model) navigate(to Route) (Model, tea.Cmd) {
	if isProtected(to) && !m.svc.Auth.IsAuthenticated() {
		m.login = m.login.reset("")
		m.route = RouteLogin
		return m, nil
	}

	m.route = to
	switch to {
	case RouteLogin:
		m.login = m.login.reset("")
		return m, nil
	case RouteRegister:
		m.register = m.register.reset()
		return m, nil
	case RouteTodos:
		var cmd tea.Cmd
		m.todos, cmd = m.todos.mount()
		return m, cmd
	case RouteProfile:
		var cmd tea.Cmd
		m.profile, cmd = m.profile.mount()
		return m, cmd
	case RouteEditProfile:
		current, _ := m.svc.Session.Profile()
		m.edit = newEditProfileModel(m.svc.Users, current)
		return m, nil
	}
	return m, nil
}

// logout clears the session and returns to the landing view.
func (m Model) logout() (Model, tea.Cmd, bool) {
	m.svc.Auth.Logout()
	m.route = RouteHome
	return m, nil, true
}

// forceLogin reacts to a 401 that surfaced from any call: the session is
// already cleared, so no further authenticated call goes out until the
// user logs back in.
func (m Model) forceLogin() (Model, tea.Cmd) {
	m.logger.Info("session expired, returning to login")
	m.svc.Auth.Logout()
	m.login = m.login.reset(sessionExpiredNotice)
	m.route = RouteLogin
	return m, nil
}

// dispatch forwards a message to the active view only.
func (m Model) dispatch(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.route {
	case RouteHome:
		m.home, cmd = m.home.Update(msg)
	case RouteLogin:
		m.login, cmd = m.login.Update(msg)
	case RouteRegister:
		m.register, cmd = m.register.Update(msg)
	case RouteTodos:
		m.todos, cmd = m.todos.Update(msg)
	case RouteProfile:
		m.profile, cmd = m.profile.Update(msg)
	case RouteEditProfile:
		m.edit, cmd = m.edit.Update(msg)
	}
	return m, cmd
}

func isProtected(r Route) bool {
	return r == RouteTodos || r == RouteProfile || r == RouteEditProfile
}

func (m Model) checkHealthCmd() tea.Cmd {
	if m.svc.Health == nil {
		return nil
	}
	reg := m.svc.Health
	return func() tea.Msg {
		return healthMsg{results: reg.CheckAll(context.Background())}
	}
}

func (m Model) healthTickCmd() tea.Cmd {
	return tea.Tick(healthInterval, func(time.Time) tea.Msg {
		return healthTickMsg{}
	})
}

func (m Model) View() string {
	var body string
	switch m.route {
	case RouteHome:
		body = m.home.View()
	case RouteLogin:
		body = m.login.View()
	case RouteRegister:
		body = m.register.View()
	case RouteTodos:
		body = m.todos.View()
	case RouteProfile:
		body = m.profile.View()
	case RouteEditProfile:
		body = m.edit.View()
	}

	if footer := m.healthFooter(); footer != "" {
		body += "\n" + footer
	}
	return body
}

// healthFooter renders the downstream status line, e.g. "api: ok".
func (m Model) healthFooter() string {
	if len(m.health) == 0 {
		return ""
	}

	names := make([]string, 0, len(m.health))
	for name := range m.health {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		err := m.health[name]
		switch {
		case err == nil:
			parts = append(parts, name+": "+successStyle.Render("ok"))
		case strings.Contains(err.Error(), "degraded"):
			parts = append(parts, name+": "+pendingStyle.Render("degraded"))
		default:
			parts = append(parts, name+": "+errorStyle.Render("failing"))
		}
	}
	return helpStyle.Render(strings.Join(parts, "  "))
}
