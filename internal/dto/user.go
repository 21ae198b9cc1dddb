package dto

// UpdateProfileRequest PUT /auth/me
type UpdateProfileRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
}

// ChangePasswordRequest PUT /auth/me/password
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

// AssignRoleRequest admin role assignment
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student admin"`
}

// UserResponse public user view
type UserResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at,omitempty"`
}
