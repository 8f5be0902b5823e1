package user

import (
	"github.com/wtek/todoterm/internal/domain"
)

// ToDomainProfile converts a wire ProfileDTO to a domain Profile.
func ToDomainProfile(dto *ProfileDTO) domain.Profile {
	return domain.Profile{
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
	}
}

// AuthProfile extracts the profile echo from an auth response.
func AuthProfile(dto *AuthResponseDTO) domain.Profile {
	return domain.Profile{
		Email:     dto.Email,
		FirstName: dto.Firstname,
		LastName:  dto.Lastname,
	}
}

// ToUpdateProfileRequest converts a domain ProfileUpdate to the
// PUT /users/me body. Unset fields stay nil so they are omitted from the
// payload and left untouched by the API.
func ToUpdateProfileRequest(u domain.ProfileUpdate) UpdateProfileRequestDTO {
	return UpdateProfileRequestDTO{
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}
