// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port
// interfaces.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/ports"
)

// Compile-time check that AuthService implements ports.AuthService.
var _ ports.AuthService = (*AuthService)(nil)

// AuthService implements ports.AuthService. Login and Register write
// through to the session store on success, so a restarted process picks
// the session back up without re-authenticating. CurrentUser prefers a
// fresh server copy of the profile but falls back to the persisted one,
// matching the "show something immediately" contract of the user menu.
type AuthService struct {
	authClient ports.AuthClient
	userClient ports.UserClient
	store      ports.SessionStore
	logger     *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(authClient ports.AuthClient, userClient ports.UserClient, store ports.SessionStore, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &AuthService{
		authClient: authClient,
		userClient: userClient,
		store:      store,
		logger:     logger,
	}
}

// Login authenticates against the API and persists the session on success.
// Failures carry domain.ErrAuth with no field-level detail.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Profile, error) {
	s.logger.InfoContext(ctx, "logging in", slog.String("email", email))

	result, err := s.authClient.Login(ctx, ports.Credentials{Email: email, Password: password})
	if err != nil {
		s.logger.WarnContext(ctx, "login failed",
			slog.String("email", email),
			slog.Any("error", err),
		)
		return domain.Profile{}, err
	}

	if err := s.store.Save(result.Token, result.Profile); err != nil {
		// Authentication succeeded but the session cannot outlive this
		// call, so surface the failure instead of a half-working login.
		s.logger.ErrorContext(ctx, "failed to persist session", slog.Any("error", err))
		return domain.Profile{}, fmt.Errorf("persisting session: %w", err)
	}

	return result.Profile, nil
}

// Register creates an account and persists the resulting session, the same
// contract as Login. A duplicate email fails with domain.ErrAuth.
func (s *AuthService) Register(ctx context.Context, reg ports.Registration) (domain.Profile, error) {
	s.logger.InfoContext(ctx, "registering", slog.String("email", reg.Email))

	result, err := s.authClient.Register(ctx, reg)
	if err != nil {
		s.logger.WarnContext(ctx, "registration failed",
			slog.String("email", reg.Email),
			slog.Any("error", err),
		)
		return domain.Profile{}, err
	}

	if err := s.store.Save(result.Token, result.Profile); err != nil {
		s.logger.ErrorContext(ctx, "failed to persist session", slog.Any("error", err))
		return domain.Profile{}, fmt.Errorf("persisting session: %w", err)
	}

	return result.Profile, nil
}

// Logout clears the persisted session. Idempotent; there is no server-side
// session to revoke, the token simply stops being sent.
func (s *AuthService) Logout() {
	s.logger.Info("logging out")
	s.store.Clear()
}

// IsAuthenticated reports whether a token is persisted. No server round
// trip happens; a stale token surfaces as a 401 on the next API call.
func (s *AuthService) IsAuthenticated() bool {
	return s.store.IsAuthenticated()
}

// CurrentUser returns the authenticated user's profile, refreshed from the
// server when possible.
//
// Returns domain.ErrNotAuthenticated when no token is persisted. A 401
// during the refresh propagates unchanged (the session is already cleared
// by then). Any other refresh failure falls back to the last persisted
// profile so the UI can still render an identity.
func (s *AuthService) CurrentUser(ctx context.Context) (domain.Profile, error) {
	if !s.store.IsAuthenticated() {
		return domain.Profile{}, domain.ErrNotAuthenticated
	}

	profile, err := s.userClient.Me(ctx)
	if err != nil {
		if cached, ok := s.store.Profile(); ok && !isAuthFailure(err) {
			s.logger.WarnContext(ctx, "profile refresh failed, using persisted copy",
				slog.Any("error", err),
			)
			return cached, nil
		}
		return domain.Profile{}, err
	}

	if err := s.store.UpdateProfile(*profile); err != nil {
		s.logger.WarnContext(ctx, "failed to persist refreshed profile", slog.Any("error", err))
	}
	return *profile, nil
}

// isAuthFailure reports whether err means the session itself is invalid,
// in which case the persisted profile must not be served as a fallback.
func isAuthFailure(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrNotAuthenticated)
}
