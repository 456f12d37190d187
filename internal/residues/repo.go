package residues

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/reciclacred/backend/pkg/db/models"
)

// Repository gives the service access to residue rows.
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

func (r *Repository) Create(ctx context.Context, residue *models.Residue) error {
	return r.db.WithContext(ctx).Create(residue).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Residue, error) {
	var residue models.Residue
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&residue).Error
	if err != nil {
		return nil, err
	}
	return &residue, nil
}

// ListAll returns every open offer, newest first.
func (r *Repository) ListAll(ctx context.Context) ([]models.Residue, error) {
	var rows []models.Residue
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListByOwner returns the offers listed by a single generator, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Residue, error) {
	var rows []models.Residue
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Residue{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Residue{}).Error
}

// ClaimDelete removes an offer and reports whether this caller won the row.
// Losing the claim means another settlement already consumed the offer.
func (r *Repository) ClaimDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&models.Residue{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
