package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/reciclacred/backend/pkg/db/models"
	"github.com/reciclacred/backend/pkg/enums"
)

// CreateUserDTO carries the fields needed to persist a new account.
type CreateUserDTO struct {
	Email           string
	PasswordHash    string
	Kind            enums.AccountKind
	Name            string
	ResponsibleName *string
	TaxID           *string
	Phone           *string
}

// ToModel maps the DTO onto a persistable user row.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:              uuid.New(),
		Email:           d.Email,
		PasswordHash:    d.PasswordHash,
		Kind:            d.Kind,
		Name:            d.Name,
		ResponsibleName: d.ResponsibleName,
		TaxID:           d.TaxID,
		Phone:           d.Phone,
	}
}

// UpdateProfileDTO carries the mutable profile fields. Credits are absent on
// purpose; only the settlement engine touches them.
type UpdateProfileDTO struct {
	Name            *string
	ResponsibleName *string
	Phone           *string
}

// ProfileDTO is the public projection of a user account.
type ProfileDTO struct {
	ID              uuid.UUID         `json:"id"`
	Email           string            `json:"email"`
	Kind            enums.AccountKind `json:"kind"`
	Name            string            `json:"name"`
	ResponsibleName *string           `json:"responsible_name,omitempty"`
	TaxID           *string           `json:"tax_id,omitempty"`
	Phone           *string           `json:"phone,omitempty"`
	Credits         int64             `json:"credits"`
	CreatedAt       time.Time         `json:"created_at"`
}

// NewProfileDTO maps a user row to its public projection.
func NewProfileDTO(user *models.User) *ProfileDTO {
	if user == nil {
		return nil
	}
	return &ProfileDTO{
		ID:              user.ID,
		Email:           user.Email,
		Kind:            user.Kind,
		Name:            user.Name,
		ResponsibleName: user.ResponsibleName,
		TaxID:           user.TaxID,
		Phone:           user.Phone,
		Credits:         user.Credits,
		CreatedAt:       user.CreatedAt,
	}
}
