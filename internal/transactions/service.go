package transactions

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/reciclacred/backend/pkg/errors"
)

// Service reads the settlement ledger on behalf of an account.
type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// History returns every settlement the account participated in, newest first.
func (s *Service) History(ctx context.Context, accountID uuid.UUID) ([]TransactionDTO, error) {
	rows, err := s.repo.ListByParticipant(ctx, accountID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing transactions")
	}
	out := make([]TransactionDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *NewTransactionDTO(&rows[i]))
	}
	return out, nil
}
