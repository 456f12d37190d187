package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	dbtypes "github.com/reciclacred/backend/pkg/db/types"
)

// CreditTransaction records an immutable settlement: who collected, who
// generated, and a denormalized copy of the offer at the moment it was
// retired. Rows are never updated or deleted.
type CreditTransaction struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CollectorID      uuid.UUID         `gorm:"column:collector_id;type:uuid;not null;index"`
	GeneratorID      uuid.UUID         `gorm:"column:generator_id;type:uuid;not null;index"`
	Participants     dbtypes.UUIDArray `gorm:"column:participants;type:uuid[];not null"`
	Title            string            `gorm:"column:title;not null"`
	Category         string            `gorm:"column:category;not null"`
	QuantityKg       decimal.Decimal   `gorm:"column:quantity_kg;type:numeric(12,3);not null"`
	Unit             string            `gorm:"column:unit;not null"`
	Location         string            `gorm:"column:location;not null"`
	CollectorCredits int64             `gorm:"column:collector_credits;not null"`
	GeneratorCredits int64             `gorm:"column:generator_credits;not null"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
}
