package ports

import (
	"context"

	"github.com/wtek/todoterm/internal/domain"
)

// Credentials is the login request payload.
type Credentials struct {
	Email    string
	Password string
}

// Registration is the sign-up request payload.
type Registration struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

// AuthResult is what the auth endpoints return on success: the bearer
// token plus the profile echo the session store persists.
type AuthResult struct {
	Token   string
	Profile domain.Profile
}

// AuthClient defines the client port for the /auth endpoints.
// Implemented by the ACL adapter; called by the auth service.
// Both operations are opaque pass/fail: failures surface as domain.ErrAuth
// (or domain.ErrUnavailable for transport-level problems), never with
// field-level detail.
type AuthClient interface {
	// Login exchanges credentials for a token and profile.
	Login(ctx context.Context, creds Credentials) (*AuthResult, error)

	// Register creates an account and logs it in, returning the same
	// shape as Login. A duplicate email surfaces as domain.ErrAuth.
	Register(ctx context.Context, reg Registration) (*AuthResult, error)
}

// TodoClient defines the client port for the /todos resource.
// Implemented by the ACL adapter; called by the todo service.
// HTTP errors are translated into the domain error union: 400 with a
// field-keyed body becomes *domain.ValidationError, 401 becomes
// domain.ErrUnauthorized (after the session has been invalidated), 404
// becomes domain.ErrNotFound.
type TodoClient interface {
	// List returns every todo owned by the authenticated user.
	List(ctx context.Context) ([]domain.Todo, error)

	// Create persists a new todo and returns it with the server-assigned ID.
	Create(ctx context.Context, t *domain.Todo) (*domain.Todo, error)

	// Update submits a partial update and returns the server's merged
	// entity. Returns domain.ErrNotFound if the todo does not exist.
	Update(ctx context.Context, id int64, u domain.TodoUpdate) (*domain.Todo, error)

	// Delete removes a todo. Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, id int64) error
}

// UserClient defines the client port for the /users/me resource.
type UserClient interface {
	// Me returns the authenticated user's profile.
	Me(ctx context.Context) (*domain.Profile, error)

	// UpdateMe submits a partial profile edit and returns the updated profile.
	UpdateMe(ctx context.Context, u domain.ProfileUpdate) (*domain.Profile, error)
}
