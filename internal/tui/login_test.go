package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wtek/todoterm/internal/domain"
)

func enterKey() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyEnter} }

func TestLogin_RequiresBothFields(t *testing.T) {
	m := newLoginModel(&stubAuthService{})

	m, cmd := m.Update(enterKey())
	assert.Nil(t, cmd)
	assert.Equal(t, "Email and password are required.", m.banner)
}

func TestLogin_SubmitCallsService(t *testing.T) {
	auth := &stubAuthService{profile: testProfile()}
	m := newLoginModel(auth)
	m.email.SetValue("  ada@example.com  ")
	m.password.SetValue("secret")

	m, cmd := m.Update(enterKey())
	require.True(t, m.submitting)
	require.NotNil(t, cmd)

	msg, ok := cmd().(loginResultMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Equal(t, "ada@example.com", auth.lastEmail, "email is trimmed before submit")
}

func TestLogin_SuccessNavigatesToTodos(t *testing.T) {
	m := newLoginModel(&stubAuthService{})
	m.submitting = true

	m, cmd := m.Update(loginResultMsg{profile: testProfile()})
	assert.False(t, m.submitting)
	require.NotNil(t, cmd)
	assert.Equal(t, navigateMsg{to: RouteTodos}, cmd())
}

func TestLogin_FailureShowsCoarseBanner(t *testing.T) {
	m := newLoginModel(&stubAuthService{})
	m.submitting = true

	// Bad credentials and unreachable server read the same: no field
	// detail ever leaks out of the auth flow.
	m, cmd := m.Update(loginResultMsg{err: domain.ErrAuth})
	assert.Nil(t, cmd)
	assert.Equal(t, "Login failed. Check your email and password.", m.banner)
}

func TestLogin_ResetKeepsNotice(t *testing.T) {
	m := newLoginModel(&stubAuthService{})
	m.email.SetValue("ada@example.com")
	m.banner = "old"

	m = m.reset(sessionExpiredNotice)
	assert.Empty(t, m.email.Value())
	assert.Equal(t, sessionExpiredNotice, m.banner)
}

func TestRegister_SuccessNavigatesToTodos(t *testing.T) {
	m := newRegisterModel(&stubAuthService{})
	m.submitting = true

	m, cmd := m.Update(registerResultMsg{profile: testProfile()})
	assert.False(t, m.submitting)
	require.NotNil(t, cmd)
	assert.Equal(t, navigateMsg{to: RouteTodos}, cmd())
}

func TestRegister_DuplicateEmailShowsBanner(t *testing.T) {
	m := newRegisterModel(&stubAuthService{})
	m.submitting = true

	m, cmd := m.Update(registerResultMsg{err: domain.ErrAuth})
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.banner)
}
