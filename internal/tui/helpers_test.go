package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/ports"
)

type stubAuthService struct {
	authenticated bool
	profile       domain.Profile
	loginErr      error
	registerErr   error
	logouts       int
	lastEmail     string
}

func (s *stubAuthService) Login(_ context.Context, email, _ string) (domain.Profile, error) {
	s.lastEmail = email
	if s.loginErr != nil {
		return domain.Profile{}, s.loginErr
	}
	s.authenticated = true
	return s.profile, nil
}

func (s *stubAuthService) Register(_ context.Context, _ ports.Registration) (domain.Profile, error) {
	if s.registerErr != nil {
		return domain.Profile{}, s.registerErr
	}
	s.authenticated = true
	return s.profile, nil
}

func (s *stubAuthService) Logout() {
	s.logouts++
	s.authenticated = false
}

func (s *stubAuthService) IsAuthenticated() bool { return s.authenticated }

func (s *stubAuthService) CurrentUser(context.Context) (domain.Profile, error) {
	if !s.authenticated {
		return domain.Profile{}, domain.ErrNotAuthenticated
	}
	return s.profile, nil
}

type stubTodoService struct {
	listResult []domain.Todo
	listErr    error
	created    *domain.Todo
	createErr  error
	updated    *domain.Todo
	updateErr  error
	deleteErr  error
	deletedID  int64
}

func (s *stubTodoService) List(context.Context) ([]domain.Todo, error) {
	return s.listResult, s.listErr
}

func (s *stubTodoService) Create(_ context.Context, _ domain.Todo) (*domain.Todo, error) {
	return s.created, s.createErr
}

func (s *stubTodoService) Update(_ context.Context, _ int64, _ domain.TodoUpdate) (*domain.Todo, error) {
	return s.updated, s.updateErr
}

func (s *stubTodoService) Delete(_ context.Context, id int64) error {
	s.deletedID = id
	return s.deleteErr
}

type stubUserService struct {
	profile   domain.Profile
	getErr    error
	updateErr error
}

func (s *stubUserService) Get(context.Context) (domain.Profile, error) {
	return s.profile, s.getErr
}

func (s *stubUserService) Update(_ context.Context, _ domain.ProfileUpdate) (domain.Profile, error) {
	if s.updateErr != nil {
		return domain.Profile{}, s.updateErr
	}
	return s.profile, nil
}

type stubSessionStore struct {
	token   string
	profile domain.Profile
	has     bool
}

func (s *stubSessionStore) Save(token string, profile domain.Profile) error {
	s.token, s.profile, s.has = token, profile, true
	return nil
}

func (s *stubSessionStore) Token() (string, bool) { return s.token, s.has }

func (s *stubSessionStore) Profile() (domain.Profile, bool) { return s.profile, s.has }

func (s *stubSessionStore) UpdateProfile(profile domain.Profile) error {
	if s.has {
		s.profile = profile
	}
	return nil
}

func (s *stubSessionStore) Clear() { s.token, s.profile, s.has = "", domain.Profile{}, false }

func (s *stubSessionStore) IsAuthenticated() bool { return s.has }

type stubHealthRegistry struct {
	results map[string]error
}

func (s *stubHealthRegistry) Register(ports.HealthChecker) {}

func (s *stubHealthRegistry) CheckAll(context.Context) map[string]error { return s.results }

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testProfile() domain.Profile {
	return domain.Profile{Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}
}
