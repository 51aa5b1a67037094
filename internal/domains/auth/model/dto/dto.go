package dto

import (
	"strings"
)

type LoginRequest struct {
	UserID   string `json:"user_id"  validate:"required,max=20"`
	Password string `json:"password" validate:"required"`
}

// NormalizedUserID returns the canonical, uppercase form of the user id.
func (r LoginRequest) NormalizedUserID() string {
	return strings.ToUpper(strings.TrimSpace(r.UserID))
}

type LoginResponse struct {
	AccessToken    string `json:"access_token"`
	RefreshToken   string `json:"refresh_token"`
	TokenType      string `json:"token_type"`
	ExpiresIn      int64  `json:"expires_in"`
	UserID         string `json:"user_id"`
	UserName       string `json:"user_name"`
	UserGroup      int    `json:"user_group"`
	Idle           int    `json:"idle"`
	ChangePassword bool   `json:"change_password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required"`
}
