package residues

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/reciclacred/backend/pkg/db/models"
	"github.com/reciclacred/backend/pkg/enums"
	pkgerrors "github.com/reciclacred/backend/pkg/errors"
)

type stubUsers struct {
	users map[uuid.UUID]*models.User
}

func (s *stubUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubOffers struct {
	rows     map[uuid.UUID]*models.Residue
	createFn func(ctx context.Context, residue *models.Residue) error
}

func (s *stubOffers) Create(ctx context.Context, residue *models.Residue) error {
	if s.createFn != nil {
		return s.createFn(ctx, residue)
	}
	s.rows[residue.ID] = residue
	return nil
}

func (s *stubOffers) FindByID(ctx context.Context, id uuid.UUID) (*models.Residue, error) {
	if r, ok := s.rows[id]; ok {
		cp := *r
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOffers) ListAll(ctx context.Context) ([]models.Residue, error) {
	out := make([]models.Residue, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, *r)
	}
	return out, nil
}

func (s *stubOffers) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Residue, error) {
	var out []models.Residue
	for _, r := range s.rows {
		if r.OwnerID == ownerID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (s *stubOffers) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	r, ok := s.rows[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["title"]; ok {
		r.Title = v.(string)
	}
	if v, ok := updates["category"]; ok {
		r.Category = v.(string)
	}
	if v, ok := updates["location"]; ok {
		r.Location = v.(string)
	}
	if v, ok := updates["quantity_kg"]; ok {
		r.QuantityKg = v.(decimal.Decimal)
	}
	return nil
}

func (s *stubOffers) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.rows, id)
	return nil
}

func newFixture() (*Service, *stubUsers, *stubOffers) {
	users := &stubUsers{users: map[uuid.UUID]*models.User{}}
	offers := &stubOffers{rows: map[uuid.UUID]*models.Residue{}}
	return NewService(offers, users), users, offers
}

func addUser(users *stubUsers, kind enums.AccountKind) uuid.UUID {
	id := uuid.New()
	users.users[id] = &models.User{ID: id, Kind: kind}
	return id
}

func validInput() CreateOfferInput {
	return CreateOfferInput{
		Title:      "Papelão limpo",
		Category:   "papel",
		QuantityKg: decimal.NewFromInt(25),
		Location:   "Galpão 3, Centro",
	}
}

func TestCreateRequiresOrganizationAccount(t *testing.T) {
	svc, users, _ := newFixture()
	collector := addUser(users, enums.AccountKindIndividual)

	_, err := svc.Create(context.Background(), collector, validInput())
	if err == nil {
		t.Fatal("expected error for individual account")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateRejectsQuantityBelowMinimum(t *testing.T) {
	svc, users, _ := newFixture()
	owner := addUser(users, enums.AccountKindOrganization)

	in := validInput()
	in.QuantityKg = decimal.RequireFromString("9.99")
	_, err := svc.Create(context.Background(), owner, in)
	if err == nil {
		t.Fatal("expected error for quantity below 10 kg")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeBelowMinimum {
		t.Fatalf("expected below-minimum error, got %v", err)
	}
}

func TestCreateRejectsEmptyFields(t *testing.T) {
	svc, users, _ := newFixture()
	owner := addUser(users, enums.AccountKindOrganization)

	in := validInput()
	in.Location = ""
	_, err := svc.Create(context.Background(), owner, in)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateStampsUnitAndOwner(t *testing.T) {
	svc, users, offers := newFixture()
	owner := addUser(users, enums.AccountKindOrganization)

	dto, err := svc.Create(context.Background(), owner, validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Unit != models.ResidueUnit {
		t.Fatalf("expected unit kg, got %q", dto.Unit)
	}
	if dto.OwnerID != owner {
		t.Fatal("owner not stamped from authenticated account")
	}
	if _, ok := offers.rows[dto.ID]; !ok {
		t.Fatal("offer not persisted")
	}
}

func TestListVisibilityByAccountKind(t *testing.T) {
	svc, users, offers := newFixture()
	ownerA := addUser(users, enums.AccountKindOrganization)
	ownerB := addUser(users, enums.AccountKindOrganization)
	collector := addUser(users, enums.AccountKindIndividual)

	for _, owner := range []uuid.UUID{ownerA, ownerA, ownerB} {
		id := uuid.New()
		offers.rows[id] = &models.Residue{ID: id, OwnerID: owner, QuantityKg: decimal.NewFromInt(12)}
	}

	own, err := svc.List(context.Background(), ownerA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(own) != 2 {
		t.Fatalf("organization should see only its own offers, got %d", len(own))
	}
	for _, o := range own {
		if o.OwnerID != ownerA {
			t.Fatal("foreign offer leaked into organization listing")
		}
	}

	all, err := svc.List(context.Background(), collector)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("individual should see the whole board, got %d", len(all))
	}
}

func TestUpdateEnforcesOwnership(t *testing.T) {
	svc, users, offers := newFixture()
	owner := addUser(users, enums.AccountKindOrganization)
	other := addUser(users, enums.AccountKindOrganization)

	id := uuid.New()
	offers.rows[id] = &models.Residue{ID: id, OwnerID: owner, Title: "Vidro", QuantityKg: decimal.NewFromInt(15)}

	title := "Vidro temperado"
	_, err := svc.Update(context.Background(), other, id, UpdateOfferInput{Title: &title})
	if err == nil {
		t.Fatal("expected forbidden for non-owner update")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	dto, err := svc.Update(context.Background(), owner, id, UpdateOfferInput{Title: &title})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Title != title {
		t.Fatalf("title not updated, got %q", dto.Title)
	}
}

func TestUpdateRejectsQuantityBelowMinimum(t *testing.T) {
	svc, users, offers := newFixture()
	owner := addUser(users, enums.AccountKindOrganization)

	id := uuid.New()
	offers.rows[id] = &models.Residue{ID: id, OwnerID: owner, QuantityKg: decimal.NewFromInt(15)}

	q := decimal.NewFromInt(5)
	_, err := svc.Update(context.Background(), owner, id, UpdateOfferInput{QuantityKg: &q})
	if err == nil {
		t.Fatal("expected below-minimum error")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeBelowMinimum {
		t.Fatalf("expected below-minimum error, got %v", err)
	}
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	svc, users, offers := newFixture()
	owner := addUser(users, enums.AccountKindOrganization)
	other := addUser(users, enums.AccountKindOrganization)

	id := uuid.New()
	offers.rows[id] = &models.Residue{ID: id, OwnerID: owner}

	if err := svc.Delete(context.Background(), other, id); err == nil {
		t.Fatal("expected forbidden for non-owner delete")
	} else if pkgerrors.As(err).Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	if err := svc.Delete(context.Background(), owner, id); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := offers.rows[id]; ok {
		t.Fatal("offer still present after delete")
	}
}

func TestGetMissingOfferIsNotFound(t *testing.T) {
	svc, _, _ := newFixture()
	_, err := svc.Get(context.Background(), uuid.New())
	if err == nil {
		t.Fatal("expected not found")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
