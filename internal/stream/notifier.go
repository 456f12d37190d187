package stream

import (
	"context"

	"github.com/google/uuid"

	"github.com/reciclacred/backend/pkg/logger"
)

// Topics carried over the pub/sub invalidation channels. Subscribers re-query
// on every message; the payload itself carries no state.
const (
	TopicOffers  = "offers"
	TopicAccount = "account"

	// offersBoardID is the single shared id for the public offer board.
	offersBoardID = "board"

	invalidationPayload = "updated"
)

type publisher interface {
	Publish(ctx context.Context, channel string, payload any) error
	StreamChannel(topic, id string) string
}

// Notifier fans out invalidation signals after state changes. Publishing is
// best effort: a lost signal only delays a refresh until the next heartbeat.
type Notifier struct {
	pub publisher
	log *logger.Logger
}

func NewNotifier(pub publisher, log *logger.Logger) *Notifier {
	return &Notifier{pub: pub, log: log}
}

// OffersChanged signals that the public offer board needs a refresh.
func (n *Notifier) OffersChanged(ctx context.Context) {
	n.publish(ctx, n.pub.StreamChannel(TopicOffers, offersBoardID))
}

// AccountChanged signals that a single account's balance or history changed.
func (n *Notifier) AccountChanged(ctx context.Context, accountID uuid.UUID) {
	n.publish(ctx, n.pub.StreamChannel(TopicAccount, accountID.String()))
}

// SettlementCompleted refreshes the board and both participants.
func (n *Notifier) SettlementCompleted(ctx context.Context, collectorID, generatorID uuid.UUID) {
	n.OffersChanged(ctx)
	n.AccountChanged(ctx, collectorID)
	n.AccountChanged(ctx, generatorID)
}

func (n *Notifier) publish(ctx context.Context, channel string) {
	if err := n.pub.Publish(ctx, channel, invalidationPayload); err != nil && n.log != nil {
		n.log.Warn(n.log.WithField(ctx, "channel", channel), "stream publish failed")
	}
}

// OffersChannel returns the pub/sub channel name for the shared offer board.
func OffersChannel(keyer interface{ StreamChannel(topic, id string) string }) string {
	return keyer.StreamChannel(TopicOffers, offersBoardID)
}

// AccountChannel returns the pub/sub channel name for one account.
func AccountChannel(keyer interface{ StreamChannel(topic, id string) string }, accountID uuid.UUID) string {
	return keyer.StreamChannel(TopicAccount, accountID.String())
}
