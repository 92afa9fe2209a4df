package dto

import "github.com/nvoloshyn/scrum-api/internal/models"

// UserDTO represents a user in API responses
type UserDTO struct {
	Username string  `json:"username"`
	FullName string  `json:"fullName"`
	Email    string  `json:"email"`
	Avatar   *string `json:"avatar,omitempty"`
}

// UserPatch carries a partial update for a user profile
type UserPatch struct {
	FullName Optional[string] `json:"fullName"`
	Email    Optional[string] `json:"email"`
	Avatar   Optional[string] `json:"avatar"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		Username: user.Username,
		FullName: user.FullName,
		Email:    user.Email,
		Avatar:   user.Avatar,
	}
}

// ApplyUserPatch merges supplied fields into the user. Absent fields are
// left untouched.
func ApplyUserPatch(user *models.User, patch UserPatch) error {
	if patch.FullName.Set {
		if patch.FullName.Value == nil {
			return requiredFieldErr("fullName")
		}
		user.FullName = *patch.FullName.Value
	}
	if patch.Email.Set {
		if patch.Email.Value == nil {
			return requiredFieldErr("email")
		}
		user.Email = *patch.Email.Value
	}
	if patch.Avatar.Set {
		user.Avatar = patch.Avatar.Value
	}
	return nil
}
