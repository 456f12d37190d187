package transactions

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reciclacred/backend/pkg/db/models"
)

// Repository persists and queries the immutable settlement ledger.
// Rows are append-only; there are no update or delete operations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a copy of the repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) Create(ctx context.Context, txn *models.CreditTransaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CreditTransaction, error) {
	var txn models.CreditTransaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&txn).Error
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// ListByParticipant returns every settlement the account took part in,
// on either side, newest first.
func (r *Repository) ListByParticipant(ctx context.Context, accountID uuid.UUID) ([]models.CreditTransaction, error) {
	var rows []models.CreditTransaction
	err := r.db.WithContext(ctx).
		Where("collector_id = ? OR generator_id = ?", accountID, accountID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
