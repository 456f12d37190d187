package stream

import (
	"context"
	"sync"

	redisclient "github.com/reciclacred/backend/pkg/redis"
)

// Source delivers raw invalidation messages for a set of channels. The
// returned closer must stop delivery and release the subscription.
type Source interface {
	Subscribe(ctx context.Context, channels ...string) (<-chan string, func() error, error)
}

// RedisSource adapts the redis client's pub/sub to the Source interface.
type RedisSource struct {
	client *redisclient.Client
}

func NewRedisSource(client *redisclient.Client) *RedisSource {
	return &RedisSource{client: client}
}

func (s *RedisSource) Subscribe(ctx context.Context, channels ...string) (<-chan string, func() error, error) {
	pubsub := s.client.Subscribe(ctx, channels...)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, nil, err
	}

	out := make(chan string)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- msg.Payload:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, pubsub.Close, nil
}

// Watcher turns pub/sub messages into coalesced refresh ticks. Consumers
// re-query their snapshot on every tick.
type Watcher struct {
	source Source
}

func NewWatcher(source Source) *Watcher {
	return &Watcher{source: source}
}

// Watch subscribes to the channels and returns a live subscription. The
// subscription ends when ctx is cancelled or Close is called.
func (w *Watcher) Watch(ctx context.Context, channels ...string) (*Subscription, error) {
	msgs, closer, err := w.source.Subscribe(ctx, channels...)
	if err != nil {
		return nil, err
	}

	sub := &Subscription{
		ticks:  make(chan struct{}, 1),
		closer: closer,
		done:   make(chan struct{}),
	}

	go func() {
		defer close(sub.ticks)
		for {
			select {
			case _, ok := <-msgs:
				if !ok {
					return
				}
				// coalesce bursts into a single pending tick
				select {
				case sub.ticks <- struct{}{}:
				default:
				}
			case <-ctx.Done():
				return
			case <-sub.done:
				return
			}
		}
	}()
	return sub, nil
}

// Subscription is a cancellable stream of refresh ticks.
type Subscription struct {
	ticks     chan struct{}
	closer    func() error
	done      chan struct{}
	closeOnce sync.Once
}

// Updates delivers one tick per pending invalidation. The channel closes
// when the subscription ends.
func (s *Subscription) Updates() <-chan struct{} {
	return s.ticks
}

// Close stops delivery and releases the underlying subscription. Safe to
// call more than once.
func (s *Subscription) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		if s.closer != nil {
			err = s.closer()
		}
	})
	return err
}
