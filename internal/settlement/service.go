package settlement

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/reciclacred/backend/internal/residues"
	"github.com/reciclacred/backend/internal/transactions"
	"github.com/reciclacred/backend/internal/users"
	"github.com/reciclacred/backend/pkg/db/models"
	dbtypes "github.com/reciclacred/backend/pkg/db/types"
	"github.com/reciclacred/backend/pkg/enums"
	pkgerrors "github.com/reciclacred/backend/pkg/errors"
	"github.com/reciclacred/backend/pkg/logger"
	"github.com/reciclacred/backend/pkg/metrics"
)

// Credit rates per settled 10 kg block.
const (
	CollectorCreditsPerBlock = 3
	GeneratorCreditsPerBlock = 1
)

var creditBlockKg = decimal.NewFromInt(10)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Notifier is told about completed settlements so live views can refresh.
// Implementations must not block the settlement path.
type Notifier interface {
	SettlementCompleted(ctx context.Context, collectorID, generatorID uuid.UUID)
}

// Service settles collections: it retires the offer, credits both parties
// and appends the ledger row in one database transaction.
type Service struct {
	db       txRunner
	users    *users.Repository
	offers   *residues.Repository
	ledger   *transactions.Repository
	metrics  *metrics.SettlementMetrics
	notifier Notifier
	log      *logger.Logger
}

type ServiceParams struct {
	DB       txRunner
	Users    *users.Repository
	Offers   *residues.Repository
	Ledger   *transactions.Repository
	Metrics  *metrics.SettlementMetrics
	Notifier Notifier
	Log      *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil || params.Users == nil || params.Offers == nil || params.Ledger == nil {
		return nil, errors.New("settlement: missing required dependencies")
	}
	return &Service{
		db:       params.DB,
		users:    params.Users,
		offers:   params.Offers,
		ledger:   params.Ledger,
		metrics:  params.Metrics,
		notifier: params.Notifier,
		log:      params.Log,
	}, nil
}

// CreditsFor returns the collector and generator awards for a quantity.
// Only whole 10 kg blocks earn credits; the remainder is discarded.
func CreditsFor(quantityKg decimal.Decimal) (collector, generator int64) {
	blocks := quantityKg.Div(creditBlockKg).Floor().IntPart()
	return blocks * CollectorCreditsPerBlock, blocks * GeneratorCreditsPerBlock
}

// Collect settles an offer on behalf of an individual collector. On success
// the offer row is gone, both balances are updated and the returned
// transaction is durably recorded. On any error nothing has changed.
func (s *Service) Collect(ctx context.Context, collectorID, offerID uuid.UUID) (*transactions.TransactionDTO, error) {
	start := time.Now()
	dto, err := s.collect(ctx, collectorID, offerID)
	s.observe(start, dto, err)
	if err != nil {
		return nil, err
	}
	if s.log != nil {
		lctx := s.log.WithFields(ctx, map[string]any{
			"transaction_id": dto.ID.String(),
			"collector_id":   dto.CollectorID.String(),
			"generator_id":   dto.GeneratorID.String(),
			"quantity_kg":    dto.QuantityKg.String(),
		})
		s.log.Info(lctx, "settlement completed")
	}
	if s.notifier != nil {
		s.notifier.SettlementCompleted(ctx, dto.CollectorID, dto.GeneratorID)
	}
	return dto, nil
}

func (s *Service) collect(ctx context.Context, collectorID, offerID uuid.UUID) (*transactions.TransactionDTO, error) {
	collector, err := s.users.FindByID(ctx, collectorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading collector account")
	}
	if collector.Kind != enums.AccountKindIndividual {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only individual accounts can collect offers")
	}

	var txn *models.CreditTransaction
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		offers := s.offers.WithTx(tx)
		accounts := s.users.WithTx(tx)
		ledger := s.ledger.WithTx(tx)

		offer, err := offers.FindByID(ctx, offerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "residue offer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading residue offer")
		}
		if offer.OwnerID == collectorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "cannot collect your own offer")
		}
		if offer.QuantityKg.LessThan(residues.MinimumQuantityKg) {
			return pkgerrors.New(pkgerrors.CodeBelowMinimum, "offer quantity is below the collectible minimum")
		}

		// The delete is the claim: whoever removes the row settles it,
		// every concurrent attempt sees zero rows affected and aborts.
		claimed, err := offers.ClaimDelete(ctx, offerID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "claiming residue offer")
		}
		if !claimed {
			return pkgerrors.New(pkgerrors.CodeNotFound, "residue offer not found")
		}

		collectorCredits, generatorCredits := CreditsFor(offer.QuantityKg)
		if err := accounts.AddCredits(ctx, collectorID, collectorCredits); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "crediting collector")
		}
		if err := accounts.AddCredits(ctx, offer.OwnerID, generatorCredits); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "crediting generator")
		}

		txn = &models.CreditTransaction{
			ID:               uuid.New(),
			CollectorID:      collectorID,
			GeneratorID:      offer.OwnerID,
			Participants:     dbtypes.UUIDArray{collectorID, offer.OwnerID},
			Title:            offer.Title,
			Category:         offer.Category,
			QuantityKg:       offer.QuantityKg,
			Unit:             offer.Unit,
			Location:         offer.Location,
			CollectorCredits: collectorCredits,
			GeneratorCredits: generatorCredits,
		}
		if err := ledger.Create(ctx, txn); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "recording settlement")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return transactions.NewTransactionDTO(txn), nil
}

func (s *Service) observe(start time.Time, dto *transactions.TransactionDTO, err error) {
	if s.metrics == nil {
		return
	}
	if err != nil {
		code := string(pkgerrors.As(err).Code())
		s.metrics.ObserveDuration("failure", time.Since(start))
		s.metrics.IncFailure(code)
		return
	}
	s.metrics.ObserveDuration("success", time.Since(start))
	s.metrics.IncSettled()
	s.metrics.AddCredits("collector", dto.CollectorCredits)
	s.metrics.AddCredits("generator", dto.GeneratorCredits)
}
