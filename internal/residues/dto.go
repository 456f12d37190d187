package residues

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reciclacred/backend/pkg/db/models"
)

// CreateOfferInput holds the validated payload to list a residue offer.
type CreateOfferInput struct {
	Title      string
	Category   string
	QuantityKg decimal.Decimal
	Location   string
}

// UpdateOfferInput holds optional mutation values for an offer.
type UpdateOfferInput struct {
	Title      *string
	Category   *string
	QuantityKg *decimal.Decimal
	Location   *string
}

// OfferDTO is the public projection of a residue offer.
type OfferDTO struct {
	ID         uuid.UUID       `json:"id"`
	OwnerID    uuid.UUID       `json:"owner_id"`
	Title      string          `json:"title"`
	Category   string          `json:"category"`
	QuantityKg decimal.Decimal `json:"quantity_kg"`
	Unit       string          `json:"unit"`
	Location   string          `json:"location"`
	CreatedAt  time.Time       `json:"created_at"`
}

// NewOfferDTO maps a residue row to its public projection.
func NewOfferDTO(residue *models.Residue) *OfferDTO {
	if residue == nil {
		return nil
	}
	return &OfferDTO{
		ID:         residue.ID,
		OwnerID:    residue.OwnerID,
		Title:      residue.Title,
		Category:   residue.Category,
		QuantityKg: residue.QuantityKg,
		Unit:       residue.Unit,
		Location:   residue.Location,
		CreatedAt:  residue.CreatedAt,
	}
}
