package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ResidueUnit is the only quantity unit the exchange trades in.
const ResidueUnit = "kg"

// Residue represents a waste offer listed by an organization account. The row
// is removed when the offer is collected; its data lives on denormalized in
// the credit transaction.
type Residue struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID    uuid.UUID       `gorm:"column:owner_id;type:uuid;not null;index"`
	Title      string          `gorm:"column:title;not null"`
	Category   string          `gorm:"column:category;not null"`
	QuantityKg decimal.Decimal `gorm:"column:quantity_kg;type:numeric(12,3);not null"`
	Unit       string          `gorm:"column:unit;not null;default:kg"`
	Location   string          `gorm:"column:location;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
