package auth

import (
	"github.com/reciclacred/backend/internal/users"
	"github.com/reciclacred/backend/pkg/enums"
)

// RegisterRequest captures the payload for onboarding an account of either kind.
type RegisterRequest struct {
	Email           string            `json:"email" validate:"required,email"`
	Password        string            `json:"password" validate:"required,min=8"`
	Kind            enums.AccountKind `json:"kind" validate:"required"`
	Name            string            `json:"name" validate:"required"`
	ResponsibleName *string           `json:"responsible_name,omitempty"`
	TaxID           *string           `json:"tax_id,omitempty"`
	Phone           *string           `json:"phone,omitempty"`
}

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse contains the token pair and profile produced by a successful login.
type LoginResponse struct {
	AccessToken  string            `json:"access_token"`
	RefreshToken string            `json:"refresh_token"`
	User         *users.ProfileDTO `json:"user"`
}

// RefreshRequest carries the refresh token presented for rotation.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the rotated token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// PasswordResetRequest asks for a reset token to be issued for an email.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordResetConfirm redeems a reset token for a new password.
type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}
