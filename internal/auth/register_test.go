package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/reciclacred/backend/pkg/config"
	"github.com/reciclacred/backend/pkg/db/models"
	"github.com/reciclacred/backend/pkg/enums"
	pkgerrors "github.com/reciclacred/backend/pkg/errors"
	"github.com/reciclacred/backend/pkg/security"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func setupRegisterTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	ddl := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  kind TEXT NOT NULL,
  name TEXT NOT NULL,
  responsible_name TEXT,
  tax_id TEXT,
  phone TEXT,
  credits INTEGER NOT NULL DEFAULT 0,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create users table: %v", err)
	}
	return db
}

func newRegisterService(t *testing.T, db *gorm.DB) RegisterService {
	t.Helper()
	svc, err := NewRegisterService(RegisterServiceParams{
		DB:             gormTxRunner{db: db},
		PasswordConfig: config.PasswordConfig{},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return svc
}

func strPtr(s string) *string { return &s }

func TestRegisterIndividual(t *testing.T) {
	db := setupRegisterTestDB(t)
	svc := newRegisterService(t, db)

	profile, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "Maria@Example.com",
		Password: "s3nh4-forte",
		Kind:     enums.AccountKindIndividual,
		Name:     "Maria Silva",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Email != "maria@example.com" {
		t.Fatalf("email not normalized, got %q", profile.Email)
	}
	if profile.Kind != enums.AccountKindIndividual {
		t.Fatalf("wrong kind %q", profile.Kind)
	}
	if profile.Credits != 0 {
		t.Fatalf("new accounts start with zero credits, got %d", profile.Credits)
	}

	var user models.User
	if err := db.Where("email = ?", "maria@example.com").First(&user).Error; err != nil {
		t.Fatalf("load persisted user: %v", err)
	}
	ok, err := security.VerifyPassword("s3nh4-forte", user.PasswordHash)
	if err != nil || !ok {
		t.Fatal("stored hash does not verify against the original password")
	}
}

func TestRegisterOrganizationRequiresResponsible(t *testing.T) {
	db := setupRegisterTestDB(t)
	svc := newRegisterService(t, db)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "coop@example.com",
		Password: "s3nh4-forte",
		Kind:     enums.AccountKindOrganization,
		Name:     "Cooperativa Recicla",
	})
	if err == nil {
		t.Fatal("expected validation error without responsible_name")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}

	profile, err := svc.Register(context.Background(), RegisterRequest{
		Email:           "coop@example.com",
		Password:        "s3nh4-forte",
		Kind:            enums.AccountKindOrganization,
		Name:            "Cooperativa Recicla",
		ResponsibleName: strPtr("João Pereira"),
		TaxID:           strPtr("12.345.678/0001-00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.ResponsibleName == nil || *profile.ResponsibleName != "João Pereira" {
		t.Fatal("responsible name not persisted")
	}
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	db := setupRegisterTestDB(t)
	svc := newRegisterService(t, db)

	req := RegisterRequest{
		Email:    "dup@example.com",
		Password: "s3nh4-forte",
		Kind:     enums.AccountKindIndividual,
		Name:     "Primeira Conta",
	}
	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := svc.Register(context.Background(), req)
	if err == nil {
		t.Fatal("expected conflict for duplicate email")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterInvalidKind(t *testing.T) {
	db := setupRegisterTestDB(t)
	svc := newRegisterService(t, db)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "x@example.com",
		Password: "s3nh4-forte",
		Kind:     enums.AccountKind("empresa"),
		Name:     "Conta",
	})
	if err == nil {
		t.Fatal("expected validation error for invalid kind")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
