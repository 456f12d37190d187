package residues

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/reciclacred/backend/pkg/db/models"
	"github.com/reciclacred/backend/pkg/enums"
	pkgerrors "github.com/reciclacred/backend/pkg/errors"
)

// MinimumQuantityKg is the smallest listable (and collectible) offer size.
var MinimumQuantityKg = decimal.NewFromInt(10)

type userFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type offerStore interface {
	Create(ctx context.Context, residue *models.Residue) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Residue, error)
	ListAll(ctx context.Context) ([]models.Residue, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Residue, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type boardNotifier interface {
	OffersChanged(ctx context.Context)
}

// Service owns the residue offer lifecycle up to the point of collection.
type Service struct {
	offers   offerStore
	users    userFinder
	notifier boardNotifier
}

func NewService(offers offerStore, users userFinder) *Service {
	return &Service{offers: offers, users: users}
}

// WithNotifier makes the service signal offer board changes after writes.
func (s *Service) WithNotifier(n boardNotifier) *Service {
	s.notifier = n
	return s
}

func (s *Service) notifyBoard(ctx context.Context) {
	if s.notifier != nil {
		s.notifier.OffersChanged(ctx)
	}
}

// Create lists a new offer on behalf of an organization account.
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, in CreateOfferInput) (*OfferDTO, error) {
	owner, err := s.users.FindByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading account")
	}
	if owner.Kind != enums.AccountKindOrganization {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only organization accounts can list residue offers")
	}
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	residue := &models.Residue{
		ID:         uuid.New(),
		OwnerID:    ownerID,
		Title:      in.Title,
		Category:   in.Category,
		QuantityKg: in.QuantityKg,
		Unit:       models.ResidueUnit,
		Location:   in.Location,
	}
	if err := s.offers.Create(ctx, residue); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating residue offer")
	}
	s.notifyBoard(ctx)
	return NewOfferDTO(residue), nil
}

// Get returns a single offer by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*OfferDTO, error) {
	residue, err := s.offers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "residue offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading residue offer")
	}
	return NewOfferDTO(residue), nil
}

// List returns the offers visible to the requester: organizations see only
// their own listings, individuals see the whole board.
func (s *Service) List(ctx context.Context, requesterID uuid.UUID) ([]OfferDTO, error) {
	requester, err := s.users.FindByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading account")
	}

	var rows []models.Residue
	if requester.Kind == enums.AccountKindOrganization {
		rows, err = s.offers.ListByOwner(ctx, requesterID)
	} else {
		rows, err = s.offers.ListAll(ctx)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing residue offers")
	}

	out := make([]OfferDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewOfferDTO(&rows[i]))
	}
	return out, nil
}

// Update mutates an offer the caller owns.
func (s *Service) Update(ctx context.Context, ownerID, offerID uuid.UUID, in UpdateOfferInput) (*OfferDTO, error) {
	residue, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "residue offer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading residue offer")
	}
	if residue.OwnerID != ownerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "offer belongs to another account")
	}

	updates, err := buildUpdates(in)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return NewOfferDTO(residue), nil
	}
	if err := s.offers.Update(ctx, offerID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating residue offer")
	}

	residue, err = s.offers.FindByID(ctx, offerID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reloading residue offer")
	}
	s.notifyBoard(ctx)
	return NewOfferDTO(residue), nil
}

// Delete removes an offer the caller owns.
func (s *Service) Delete(ctx context.Context, ownerID, offerID uuid.UUID) error {
	residue, err := s.offers.FindByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "residue offer not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading residue offer")
	}
	if residue.OwnerID != ownerID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "offer belongs to another account")
	}
	if err := s.offers.Delete(ctx, offerID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting residue offer")
	}
	s.notifyBoard(ctx)
	return nil
}

func validateCreate(in CreateOfferInput) error {
	if in.Title == "" || in.Category == "" || in.Location == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "title, category and location are required")
	}
	if in.QuantityKg.LessThan(MinimumQuantityKg) {
		return pkgerrors.New(pkgerrors.CodeBelowMinimum, "quantity must be at least 10 kg")
	}
	return nil
}

func buildUpdates(in UpdateOfferInput) (map[string]any, error) {
	updates := map[string]any{}
	if in.Title != nil {
		if *in.Title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		updates["title"] = *in.Title
	}
	if in.Category != nil {
		if *in.Category == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category cannot be empty")
		}
		updates["category"] = *in.Category
	}
	if in.Location != nil {
		if *in.Location == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "location cannot be empty")
		}
		updates["location"] = *in.Location
	}
	if in.QuantityKg != nil {
		if in.QuantityKg.LessThan(MinimumQuantityKg) {
			return nil, pkgerrors.New(pkgerrors.CodeBelowMinimum, "quantity must be at least 10 kg")
		}
		updates["quantity_kg"] = *in.QuantityKg
	}
	return updates, nil
}
