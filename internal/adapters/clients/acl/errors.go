// Package acl implements the Anti-Corruption Layer that translates between
// the todo API's wire representations and domain types. Resource-specific
// translators live in subpackages (acl/todo, acl/user); shared request
// plumbing and error mapping live here.
package acl

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/wtek/todoterm/internal/domain"
)

// maxErrorBodySize limits how much of an error response body we read.
const maxErrorBodySize = 1 << 20 // 1 MB

// TranslateHTTPError maps an HTTP error response from a resource endpoint
// (/todos, /users/me) to a domain error.
//
// Status mapping:
//   - 400 with a field-keyed body becomes *domain.ValidationError; the body
//     maps each field name to a list of messages and translation flattens
//     it with field names sorted and per-field messages kept in wire order.
//   - 401 and 403 become domain.ErrUnauthorized. By this point the HTTP
//     client has already cleared the persisted session for a 401.
//   - 404 becomes domain.ErrNotFound.
//   - 5xx becomes domain.ErrUnavailable.
func TranslateHTTPError(resp *http.Response) error {
	body := readErrorBody(resp)

	switch {
	case resp.StatusCode == http.StatusBadRequest:
		if verr := toValidationError(body); verr != nil {
			return verr
		}
		return fmt.Errorf("%s: %w", errorDetail(body, resp.StatusCode), domain.ErrValidation)

	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%s: %w", errorDetail(body, resp.StatusCode), domain.ErrUnauthorized)

	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", errorDetail(body, resp.StatusCode), domain.ErrNotFound)

	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", errorDetail(body, resp.StatusCode), domain.ErrUnavailable)

	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, errorDetail(body, resp.StatusCode))
	}
}

// TranslateAuthError maps an HTTP error response from the auth endpoints
// (/auth/authenticate, /auth/register) to a domain error. The auth
// endpoints are deliberately opaque: bad credentials, unknown accounts,
// and duplicate registrations all answer 4xx with a free-form message
// body, so every 4xx becomes domain.ErrAuth with no field-level detail.
// 5xx still becomes domain.ErrUnavailable.
func TranslateAuthError(resp *http.Response) error {
	body := readErrorBody(resp)

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%s: %w", errorDetail(body, resp.StatusCode), domain.ErrUnavailable)

	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("%s: %w", errorDetail(body, resp.StatusCode), domain.ErrAuth)

	default:
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, errorDetail(body, resp.StatusCode))
	}
}

// readErrorBody reads at most maxErrorBodySize bytes of the response body.
// Returns nil when there is no body or it cannot be read; callers fall
// back to the HTTP status text.
func readErrorBody(resp *http.Response) []byte {
	if resp.Body == nil {
		return nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return nil
	}
	return body
}

// toValidationError decodes the API's 400 body, a JSON object mapping
// field names to message lists, into a domain ValidationError. Field names
// are sorted so the result is deterministic; messages within a field keep
// their wire order. Returns nil when the body has another shape.
func toValidationError(body []byte) *domain.ValidationError {
	var fieldErrors map[string][]string
	if err := json.Unmarshal(body, &fieldErrors); err != nil || len(fieldErrors) == 0 {
		return nil
	}

	names := make([]string, 0, len(fieldErrors))
	for name := range fieldErrors {
		names = append(names, name)
	}
	sort.Strings(names)

	var fields []domain.FieldError
	for _, name := range names {
		for _, msg := range fieldErrors[name] {
			fields = append(fields, domain.FieldError{Field: name, Message: msg})
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &domain.ValidationError{Fields: fields}
}

// errorDetail extracts a human-readable message from an error body.
// The API answers errors with several shapes ({"message": ...},
// {"error": ..., "message": ...}, or the Spring-style status envelope);
// any "message" or "error" string property wins, in that order. Falls
// back to the HTTP status text.
func errorDetail(body []byte, statusCode int) string {
	var envelope struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Message != "" {
			return envelope.Message
		}
		if envelope.Error != "" {
			return envelope.Error
		}
	}
	return http.StatusText(statusCode)
}
