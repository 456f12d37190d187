package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/reciclacred/backend/pkg/config"
	"github.com/reciclacred/backend/pkg/db/models"
	pkgerrors "github.com/reciclacred/backend/pkg/errors"
	"github.com/reciclacred/backend/pkg/security"
)

// PasswordResetService issues and redeems single-use reset tokens. Token
// delivery (email, SMS) is handled elsewhere; this service only manages the
// token lifecycle.
type PasswordResetService interface {
	Request(ctx context.Context, email string) (string, error)
	Confirm(ctx context.Context, req PasswordResetConfirm) error
}

type resetTokenStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	PasswordResetKey(token string) string
}

type resetUserRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
}

type resetService struct {
	users       resetUserRepository
	store       resetTokenStore
	passwordCfg config.PasswordConfig
	tokenTTL    time.Duration
}

// PasswordResetParams bundles the reset flow dependencies.
type PasswordResetParams struct {
	UserRepo       resetUserRepository
	TokenStore     resetTokenStore
	PasswordConfig config.PasswordConfig
	ResetConfig    config.PasswordResetConfig
}

func NewPasswordResetService(params PasswordResetParams) (PasswordResetService, error) {
	if params.UserRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "user repository required")
	}
	if params.TokenStore == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "token store required")
	}
	ttl := params.ResetConfig.TokenTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &resetService{
		users:       params.UserRepo,
		store:       params.TokenStore,
		passwordCfg: params.PasswordConfig,
		tokenTTL:    ttl,
	}, nil
}

// Request issues a reset token for the account behind the email. Unknown
// emails succeed with an empty token so the endpoint cannot be used to probe
// which addresses are registered.
func (s *resetService) Request(ctx context.Context, email string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	if normalized == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	user, err := s.users.FindByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	token, err := security.GenerateResetToken()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate reset token")
	}
	key := s.store.PasswordResetKey(token)
	if err := s.store.Set(ctx, key, user.ID.String(), s.tokenTTL); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store reset token")
	}
	return token, nil
}

// Confirm redeems the token and replaces the account password. The token is
// deleted first so it can only ever be used once.
func (s *resetService) Confirm(ctx context.Context, req PasswordResetConfirm) error {
	if strings.TrimSpace(req.Token) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "token is required")
	}

	key := s.store.PasswordResetKey(req.Token)
	stored, err := s.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid or expired reset token")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup reset token")
	}
	userID, err := uuid.Parse(stored)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode reset token subject")
	}

	if err := s.store.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "consume reset token")
	}

	hash, err := security.HashPassword(req.NewPassword, s.passwordCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update password")
	}
	return nil
}
