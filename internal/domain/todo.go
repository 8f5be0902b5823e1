package domain

import (
	"strings"
	"time"
)

// Todo represents a single task item as the API returns it.
type Todo struct {
	ID          int64
	Title       string
	Description string
	Completed   bool
	DueDate     *time.Time // calendar date; nil means no due date
}

// Validate checks the client-side precondition for create and title edits:
// the trimmed title must be non-empty before a submission is attempted.
// The server remains authoritative for everything else.
// Returns a *ValidationError (wrapping ErrValidation) or nil.
func (t *Todo) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Fields: []FieldError{{Field: "title", Message: MsgRequired}}}
	}
	return nil
}

// TodoUpdate is a partial update. Nil fields are left unchanged; the API
// merges the submitted subset into the stored entity. Callers never resend
// unchanged fields.
type TodoUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *time.Time
}

// IsZero reports whether the update carries no changes at all.
func (u TodoUpdate) IsZero() bool {
	return u.Title == nil && u.Description == nil && u.Completed == nil && u.DueDate == nil
}

// Validate applies the same title precondition as Todo.Validate to updates
// that touch the title.
func (u TodoUpdate) Validate() error {
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		return &ValidationError{Fields: []FieldError{{Field: "title", Message: MsgRequired}}}
	}
	return nil
}
