package app

import (
	"context"
	"log/slog"

	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/ports"
)

// Compile-time check that UserService implements ports.UserService.
var _ ports.UserService = (*UserService)(nil)

// UserService implements ports.UserService. Both operations mirror the
// server's answer into the session store so the persisted profile tracks
// the server copy; the mirror happens on success only, a failed edit
// leaves the persisted profile untouched.
type UserService struct {
	client ports.UserClient
	store  ports.SessionStore
	logger *slog.Logger
}

// NewUserService creates a UserService.
func NewUserService(client ports.UserClient, store ports.SessionStore, logger *slog.Logger) *UserService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &UserService{
		client: client,
		store:  store,
		logger: logger,
	}
}

// Get fetches the profile from GET /users/me and mirrors it into the
// session store.
func (s *UserService) Get(ctx context.Context) (domain.Profile, error) {
	s.logger.InfoContext(ctx, "fetching profile")

	profile, err := s.client.Me(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch profile",
			slog.String("operation", "Get"),
			slog.Any("error", err),
		)
		return domain.Profile{}, err
	}

	s.mirror(ctx, *profile)
	return *profile, nil
}

// Update submits a partial profile edit and mirrors the server's answer
// into the session store.
func (s *UserService) Update(ctx context.Context, u domain.ProfileUpdate) (domain.Profile, error) {
	s.logger.InfoContext(ctx, "updating profile")

	profile, err := s.client.UpdateMe(ctx, u)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to update profile",
			slog.String("operation", "Update"),
			slog.Any("error", err),
		)
		return domain.Profile{}, err
	}

	s.mirror(ctx, *profile)
	return *profile, nil
}

// mirror writes the server's profile copy into the session store. A
// persistence failure is logged but does not fail the operation: the
// server already holds the truth and the next refresh tries again.
func (s *UserService) mirror(ctx context.Context, profile domain.Profile) {
	if err := s.store.UpdateProfile(profile); err != nil {
		s.logger.WarnContext(ctx, "failed to persist profile copy", slog.Any("error", err))
	}
}
