package acl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wtek/todoterm/internal/adapters/clients/acl/user"
	"github.com/wtek/todoterm/internal/domain"
	"github.com/wtek/todoterm/internal/platform/httpclient"
	"github.com/wtek/todoterm/internal/ports"
)

// Compile-time interface check.
var _ ports.AuthClient = (*AuthClient)(nil)

// AuthClient is the outbound adapter for the /auth endpoints. It
// implements [ports.AuthClient].
//
// Auth failures are coarse: bad credentials, unknown accounts, duplicate
// registrations, and transport failures all surface as domain.ErrAuth
// with no field-level detail. Requests go out without a bearer token; the
// underlying [httpclient.Client] only injects one when a session exists.
type AuthClient struct {
	req    *Requester
	logger *slog.Logger
}

// NewAuthClient creates an AuthClient that sends requests through the
// given [httpclient.Client].
func NewAuthClient(client *httpclient.Client, logger *slog.Logger) *AuthClient {
	return &AuthClient{
		req:    NewRequester(client, logger).WithErrorTranslator(TranslateAuthError),
		logger: logger,
	}
}

// Login exchanges credentials for a token and profile echo via
// POST /auth/authenticate.
func (c *AuthClient) Login(ctx context.Context, creds ports.Credentials) (*ports.AuthResult, error) {
	reqDTO := user.LoginRequestDTO{
		Email:    creds.Email,
		Password: creds.Password,
	}

	var respDTO user.AuthResponseDTO
	if err := c.req.Do(ctx, http.MethodPost, "/auth/authenticate", reqDTO, &respDTO); err != nil {
		return nil, asAuthError(err)
	}
	return toAuthResult(&respDTO), nil
}

// Register creates an account and logs it in via POST /auth/register,
// returning the same shape as Login. A duplicate email surfaces as
// domain.ErrAuth.
func (c *AuthClient) Register(ctx context.Context, reg ports.Registration) (*ports.AuthResult, error) {
	reqDTO := user.RegisterRequestDTO{
		Firstname: reg.FirstName,
		Lastname:  reg.LastName,
		Email:     reg.Email,
		Password:  reg.Password,
	}

	var respDTO user.AuthResponseDTO
	if err := c.req.Do(ctx, http.MethodPost, "/auth/register", reqDTO, &respDTO); err != nil {
		return nil, asAuthError(err)
	}
	return toAuthResult(&respDTO), nil
}

// toAuthResult builds the port-level result from an auth response.
func toAuthResult(dto *user.AuthResponseDTO) *ports.AuthResult {
	return &ports.AuthResult{
		Token:   dto.Token,
		Profile: user.AuthProfile(dto),
	}
}

// asAuthError coerces any auth-endpoint failure into the domain.ErrAuth
// chain. HTTP errors already translated by TranslateAuthError pass
// through; transport failures (connection refused, breaker open) are
// wrapped so callers see the same coarse pass/fail contract.
func asAuthError(err error) error {
	if errors.Is(err, domain.ErrAuth) || errors.Is(err, domain.ErrUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrAuth, err)
}
