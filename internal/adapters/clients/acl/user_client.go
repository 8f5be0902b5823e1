package acl

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/wtek/todoterm/internal/adapters/clients/acl/user"
	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/platform/httpclient"
	"github.com/wtek/todoterm/internal/ports"
)

// Compile-time interface check.
var _ ports.UserClient = (*UserClient)(nil)

// UserClient is the outbound adapter for the /users/me resource. It
// implements [ports.UserClient]. HTTP errors are mapped to domain errors
// by [TranslateHTTPError]; a 401 surfaces as domain.ErrUnauthorized after
// the HTTP client has already invalidated the session.
type UserClient struct {
	req    *Requester
	logger *slog.Logger
}

// NewUserClient creates a UserClient that sends requests through the
// given [httpclient.Client].
func NewUserClient(client *httpclient.Client, logger *slog.Logger) *UserClient {
	return &UserClient{
		req:    NewRequester(client, logger),
		logger: logger,
	}
}

// Me fetches the authenticated user's profile from GET /users/me.
func (c *UserClient) Me(ctx context.Context) (*domain.Profile, error) {
	var dto user.ProfileDTO
	if err := c.req.Do(ctx, http.MethodGet, "/users/me", nil, &dto); err != nil {
		return nil, err
	}
	profile := user.ToDomainProfile(&dto)
	return &profile, nil
}

// UpdateMe sends a PUT /users/me carrying only the fields set in u and
// returns the updated profile.
func (c *UserClient) UpdateMe(ctx context.Context, u domain.ProfileUpdate) (*domain.Profile, error) {
	reqDTO := user.ToUpdateProfileRequest(u)

	var dto user.ProfileDTO
	if err := c.req.Do(ctx, http.MethodPut, "/users/me", reqDTO, &dto); err != nil {
		return nil, err
	}
	profile := user.ToDomainProfile(&dto)
	return &profile, nil
}
