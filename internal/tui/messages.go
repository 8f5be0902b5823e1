package tui

import (
	"errors"

	"github.com/wtek/todoterm/internal/domain"
)

// Route identifies a top-level view. The todos, profile, and edit-profile
// routes are protected: navigation falls back to the login route when no
// session is persisted.
type Route int

const (
	RouteHome Route = iota
	RouteLogin
	RouteRegister
	RouteTodos
	RouteProfile
	RouteEditProfile
)

// navigateMsg asks the router to switch views. Protected targets pass
// through the route guard.
type navigateMsg struct {
	to Route
}

// errCarrier is implemented by every async result message so the router
// can intercept a 401 once, centrally, before the active view sees it.
type errCarrier interface {
	ResultErr() error
}

// isSessionExpired reports whether an async result means the session died
// mid-flight. The HTTP client has already cleared the persisted token by
// the time such an error surfaces.
func isSessionExpired(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotAuthenticated)
}

// healthMsg carries the latest downstream health snapshot for the footer.
type healthMsg struct {
	results map[string]error
}

// loginResultMsg is the outcome of a login attempt.
type loginResultMsg struct {
	profile domain.Profile
	err     error
}

func (m loginResultMsg) ResultErr() error { return m.err }

// registerResultMsg is the outcome of a registration attempt.
type registerResultMsg struct {
	profile domain.Profile
	err     error
}

func (m registerResultMsg) ResultErr() error { return m.err }

// todosLoadedMsg is the outcome of the mount-time list fetch. seq ties the
// result to the fetch generation that issued it; stale results are dropped.
type todosLoadedMsg struct {
	seq   int
	todos []domain.Todo
	err   error
}

func (m todosLoadedMsg) ResultErr() error { return m.err }

// todoSavedMsg is the outcome of a create or update submission.
type todoSavedMsg struct {
	created bool
	todo    *domain.Todo
	err     error
}

func (m todoSavedMsg) ResultErr() error { return m.err }

// todoToggledMsg is the outcome of a completed-flag flip.
type todoToggledMsg struct {
	todo *domain.Todo
	err  error
}

func (m todoToggledMsg) ResultErr() error { return m.err }

// todoDeletedMsg is the outcome of a delete.
type todoDeletedMsg struct {
	id  int64
	err error
}

func (m todoDeletedMsg) ResultErr() error { return m.err }

// profileLoadedMsg is the outcome of a profile fetch.
type profileLoadedMsg struct {
	seq     int
	profile domain.Profile
	err     error
}

func (m profileLoadedMsg) ResultErr() error { return m.err }

// profileSavedMsg is the outcome of an edit-profile submission.
type profileSavedMsg struct {
	profile domain.Profile
	err     error
}

func (m profileSavedMsg) ResultErr() error { return m.err }
