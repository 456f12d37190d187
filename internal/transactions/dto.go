package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/reciclacred/backend/pkg/db/models"
)

// TransactionDTO is the public projection of a settled collection.
type TransactionDTO struct {
	ID               uuid.UUID       `json:"id"`
	CollectorID      uuid.UUID       `json:"collector_id"`
	GeneratorID      uuid.UUID       `json:"generator_id"`
	Title            string          `json:"title"`
	Category         string          `json:"category"`
	QuantityKg       decimal.Decimal `json:"quantity_kg"`
	Unit             string          `json:"unit"`
	Location         string          `json:"location"`
	CollectorCredits int64           `json:"collector_credits"`
	GeneratorCredits int64           `json:"generator_credits"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewTransactionDTO maps a transaction row to its public projection.
func NewTransactionDTO(txn *models.CreditTransaction) *TransactionDTO {
	if txn == nil {
		return nil
	}
	return &TransactionDTO{
		ID:               txn.ID,
		CollectorID:      txn.CollectorID,
		GeneratorID:      txn.GeneratorID,
		Title:            txn.Title,
		Category:         txn.Category,
		QuantityKg:       txn.QuantityKg,
		Unit:             txn.Unit,
		Location:         txn.Location,
		CollectorCredits: txn.CollectorCredits,
		GeneratorCredits: txn.GeneratorCredits,
		CreatedAt:        txn.CreatedAt,
	}
}
