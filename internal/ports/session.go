package ports

import "github.com/wtek/todoterm/internal/domain"

// SessionStore owns the persisted token/profile pair. It is the only
// component allowed to mutate the persisted copy; views hold read-only
// derived copies. Implementations must be safe for concurrent use: the
// HTTP client's 401 hook calls Clear from request goroutines.
type SessionStore interface {
	// Save persists the token and profile together.
	Save(token string, profile domain.Profile) error

	// Token returns the persisted token, if any.
	Token() (string, bool)

	// Profile returns the last persisted profile, if any.
	Profile() (domain.Profile, bool)

	// UpdateProfile replaces the persisted profile, keeping the token.
	// No-op when no session is persisted.
	UpdateProfile(profile domain.Profile) error

	// Clear removes the persisted token and profile together. It is
	// idempotent and never fails: a best-effort removal is all the
	// logout contract requires.
	Clear()

	// IsAuthenticated reports whether a token is currently persisted.
	// It never talks to the server; a stale token is only discovered
	// when the next API call returns 401.
	IsAuthenticated() bool
}
