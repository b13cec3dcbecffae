package dto

import "reviewhub/internal/api/models"

// AdminUserRequest creates a user record through the admin surface. Role is
// optional and defaults to "user".
type AdminUserRequest struct {
	Username  string      `json:"username" binding:"required"`
	Email     string      `json:"email" binding:"required"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role"`
}

// AdminUpdateUserRequest patches any profile field, including role.
type AdminUpdateUserRequest struct {
	Email     *string      `json:"email,omitempty"`
	FirstName *string      `json:"first_name,omitempty"`
	LastName  *string      `json:"last_name,omitempty"`
	Bio       *string      `json:"bio,omitempty"`
	Role      *models.Role `json:"role,omitempty"`
}

// UpdateSelfRequest is the subset a user may change on their own record;
// username, email and role are read-only to self.
type UpdateSelfRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

type UserResponse struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role"`
}

func FromModelToUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}
