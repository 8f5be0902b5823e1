package domain

import "strings"

// Profile is the minimal user identity the client keeps: the email is the
// unique identifier (immutable after registration from the client's point
// of view), the names are optional display fields.
type Profile struct {
	Email     string
	FirstName string
	LastName  string
}

// DisplayName returns "First Last" when either name is set, falling back
// to the email.
func (p Profile) DisplayName() string {
	name := strings.TrimSpace(p.FirstName + " " + p.LastName)
	if name == "" {
		return p.Email
	}
	return name
}

// ProfileUpdate is a partial profile edit. Nil fields are left unchanged.
// Email is absent: it cannot be changed from the client.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
}
