// Package user implements the Anti-Corruption Layer translators for the
// API's /auth and /users/me resources.
//
// The two resources disagree on casing: the auth endpoints speak
// lowercase ("firstname"), the profile endpoint camelCase ("firstName").
// Both shapes are pinned here so the rest of the codebase only ever sees
// domain.Profile.
package user

// LoginRequestDTO is the POST /auth/authenticate request body.
type LoginRequestDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequestDTO is the POST /auth/register request body.
type RegisterRequestDTO struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// AuthResponseDTO is the success body of both auth endpoints: the bearer
// token plus a profile echo.
type AuthResponseDTO struct {
	Token     string `json:"token"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
}

// ProfileDTO matches the GET /users/me response. The API also sends a
// "username" property; it duplicates the email and is ignored.
type ProfileDTO struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateProfileRequestDTO is the PUT /users/me request body. All fields
// are optional; nil means "do not change this field".
type UpdateProfileRequestDTO struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
}
