package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/reciclacred/backend/pkg/enums"
)

// User represents the canonical account entity. Credits only ever grow, and
// only through the settlement engine.
type User struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email           string            `gorm:"type:text;not null;uniqueIndex"`
	PasswordHash    string            `gorm:"column:password_hash;not null"`
	Kind            enums.AccountKind `gorm:"column:kind;type:account_kind;not null"`
	Name            string            `gorm:"column:name;not null"`
	ResponsibleName *string           `gorm:"column:responsible_name"`
	TaxID           *string           `gorm:"column:tax_id"`
	Phone           *string           `gorm:"column:phone"`
	Credits         int64             `gorm:"column:credits;not null;default:0"`
	LastLoginAt     *time.Time        `gorm:"column:last_login_at"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
