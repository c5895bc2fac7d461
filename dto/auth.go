package dto

import "time"

// ==================== AUTHENTICATION DTOs ====================

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email" example:"learner@edube.io"`
	Username string `json:"username" validate:"required,min=3,max=30,alphanum" example:"janedoe"`
	Password string `json:"password" validate:"required,min=8" example:"SecurePass123!"`
	Role     string `json:"role,omitempty" validate:"omitempty,oneof=mentor learner" example:"learner"`
}

func (r RegisterRequest) Validate() error {
	return GetValidator().Struct(r)
}

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required" example:"learner@edube.io"`
	Password        string `json:"password" validate:"required" example:"SecurePass123!"`
}

func (l LoginRequest) Validate() error {
	return GetValidator().Struct(l)
}

type LoginResponse struct {
	TokenPair
	User UserInfo `json:"user"`
}

type UserInfo struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}
