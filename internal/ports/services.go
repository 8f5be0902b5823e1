package ports

import (
	"context"

	"github.com/wtek/todoterm/internal/domain"
)

// AuthService defines the service port for session management.
// Implemented by the application layer; called by the TUI.
type AuthService interface {
	// Login authenticates and, on success, persists the token and
	// profile in the session store. Fails with domain.ErrAuth on bad
	// credentials, with no field-level detail.
	Login(ctx context.Context, email, password string) (domain.Profile, error)

	// Register creates an account with the same persistence contract as
	// Login. A duplicate email fails with domain.ErrAuth.
	Register(ctx context.Context, reg Registration) (domain.Profile, error)

	// Logout clears the persisted session unconditionally. Idempotent.
	Logout()

	// IsAuthenticated reports whether a token is persisted, without any
	// server round trip.
	IsAuthenticated() bool

	// CurrentUser returns the best-effort profile: a server refresh when
	// possible, falling back to the last persisted copy when the refresh
	// fails. Returns domain.ErrNotAuthenticated only when no token is
	// present at all; a 401 during the refresh propagates (the session
	// has already been cleared by then).
	CurrentUser(ctx context.Context) (domain.Profile, error)
}

// TodoService defines the service port for todo CRUD.
// All methods surface the domain error union; no caching and no
// optimistic updates happen here, the caller reconciles its in-memory
// collection from the returned entities.
type TodoService interface {
	// List returns the current todo collection.
	List(ctx context.Context) ([]domain.Todo, error)

	// Create validates the title client-side (empty titles never reach
	// the network), forces Completed to false, and returns the created
	// entity with its server-assigned ID.
	Create(ctx context.Context, t domain.Todo) (*domain.Todo, error)

	// Update submits a partial update and returns the server's merged
	// entity, which the caller should treat as the source of truth.
	Update(ctx context.Context, id int64, u domain.TodoUpdate) (*domain.Todo, error)

	// Delete removes a todo by ID.
	Delete(ctx context.Context, id int64) error
}

// UserService defines the service port for the user's own profile.
type UserService interface {
	// Get fetches the profile from the server and mirrors it into the
	// session store on success.
	Get(ctx context.Context) (domain.Profile, error)

	// Update submits a partial edit; the session store's persisted copy
	// is updated on success only.
	Update(ctx context.Context, u domain.ProfileUpdate) (domain.Profile, error)
}
