package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checking. Together with ValidationError
// they form the tagged error union every adapter maps raw failures into.
var (
	// ErrAuth covers bad credentials and registration conflicts. It is
	// deliberately coarse: the auth endpoints are treated as opaque
	// pass/fail and carry no field-level detail.
	ErrAuth = errors.New("authentication failed")

	// ErrUnauthorized is a 401 from any authenticated call. By the time a
	// caller sees it the HTTP client has already cleared the persisted
	// session; the view layer reacts by routing to the public entry point.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotAuthenticated means no token is persisted at all, so no call
	// was attempted.
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrUnavailable = errors.New("unavailable")
)

// FieldError is a single field-keyed validation message.
type FieldError struct {
	Field   string
	Message string
}

// GlobalField is the synthetic field name used when a failure has no
// field-level detail but the caller wants the ValidationError shape.
const GlobalField = "global"

// MsgRequired is the client-side message for required fields.
const MsgRequired = "is required"

// msgGeneric is the fallback when a failure carries no usable message.
const msgGeneric = "something went wrong"

// ValidationError provides programmatic access to field-level validation
// failures. Use errors.Is(err, ErrValidation) for simple checks, or
// errors.As(err, &verr) to read verr.Fields.
//
// Fields is an ordered flat sequence: the API's 400 body maps a field name
// to a list of messages, and translation flattens it with field names
// sorted and per-field messages kept in wire order.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ByField returns the first message recorded for the given field, or "".
func (e *ValidationError) ByField(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}

// AsValidationError coerces any error into the ValidationError shape used
// by the forms. A structured validation failure passes through unchanged;
// anything else becomes a single "global" entry carrying the best
// available message.
func AsValidationError(err error) *ValidationError {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr
	}

	msg := msgGeneric
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &ValidationError{Fields: []FieldError{{Field: GlobalField, Message: msg}}}
}
