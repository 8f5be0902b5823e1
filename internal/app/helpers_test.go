package app

import (
	"context"
	"log/slog"

	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

// fakeAuthClient returns canned results per method.
type fakeAuthClient struct {
	loginResult    *ports.AuthResult
	loginErr       error
	registerResult *ports.AuthResult
	registerErr    error

	gotCredentials ports.Credentials
	gotRegistration ports.Registration
}

func (f *fakeAuthClient) Login(_ context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	f.gotCredentials = creds
	return f.loginResult, f.loginErr
}

func (f *fakeAuthClient) Register(_ context.Context, reg ports.Registration) (*ports.AuthResult, error) {
	f.gotRegistration = reg
	return f.registerResult, f.registerErr
}

// fakeUserClient returns canned results per method.
type fakeUserClient struct {
	meProfile     *domain.Profile
	meErr         error
	updateProfile *domain.Profile
	updateErr     error

	gotUpdate domain.ProfileUpdate
}

func (f *fakeUserClient) Me(context.Context) (*domain.Profile, error) {
	return f.meProfile, f.meErr
}

func (f *fakeUserClient) UpdateMe(_ context.Context, u domain.ProfileUpdate) (*domain.Profile, error) {
	f.gotUpdate = u
	return f.updateProfile, f.updateErr
}

// fakeTodoClient returns canned results and records what it was called with.
type fakeTodoClient struct {
	listResult   []domain.Todo
	listErr      error
	createResult *domain.Todo
	createErr    error
	updateResult *domain.Todo
	updateErr    error
	deleteErr    error

	createCalls int
	gotCreate   domain.Todo
	gotUpdateID int64
	gotUpdate   domain.TodoUpdate
	gotDeleteID int64
}

func (f *fakeTodoClient) List(context.Context) ([]domain.Todo, error) {
	return f.listResult, f.listErr
}

func (f *fakeTodoClient) Create(_ context.Context, t *domain.Todo) (*domain.Todo, error) {
	f.createCalls++
	f.gotCreate = *t
	return f.createResult, f.createErr
}

func (f *fakeTodoClient) Update(_ context.Context, id int64, u domain.TodoUpdate) (*domain.Todo, error) {
	f.gotUpdateID = id
	f.gotUpdate = u
	return f.updateResult, f.updateErr
}

func (f *fakeTodoClient) Delete(_ context.Context, id int64) error {
	f.gotDeleteID = id
	return f.deleteErr
}

// fakeSessionStore is an in-memory ports.SessionStore.
type fakeSessionStore struct {
	token   string
	profile domain.Profile
	has     bool

	saveErr   error
	updateErr error
	clears    int
}

func (f *fakeSessionStore) Save(token string, profile domain.Profile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.token, f.profile, f.has = token, profile, true
	return nil
}

func (f *fakeSessionStore) Token() (string, bool) {
	if !f.has {
		return "", false
	}
	return f.token, true
}

func (f *fakeSessionStore) Profile() (domain.Profile, bool) {
	if !f.has {
		return domain.Profile{}, false
	}
	return f.profile, true
}

func (f *fakeSessionStore) UpdateProfile(profile domain.Profile) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if f.has {
		f.profile = profile
	}
	return nil
}

func (f *fakeSessionStore) Clear() {
	f.token, f.profile, f.has = "", domain.Profile{}, false
	f.clears++
}

func (f *fakeSessionStore) IsAuthenticated() bool {
	return f.has
}
