package stream

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type fakeSource struct {
	msgs     chan string
	closed   bool
	channels []string
}

func (f *fakeSource) Subscribe(ctx context.Context, channels ...string) (<-chan string, func() error, error) {
	f.channels = channels
	return f.msgs, func() error {
		f.closed = true
		return nil
	}, nil
}

func waitTick(t *testing.T, sub *Subscription) {
	t.Helper()
	select {
	case _, ok := <-sub.Updates():
		if !ok {
			t.Fatal("subscription closed unexpectedly")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for tick")
	}
}

func TestWatchDeliversTicks(t *testing.T) {
	source := &fakeSource{msgs: make(chan string, 4)}
	watcher := NewWatcher(source)

	sub, err := watcher.Watch(context.Background(), "rc:stream:offers:board")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sub.Close()

	source.msgs <- "updated"
	waitTick(t, sub)

	source.msgs <- "updated"
	waitTick(t, sub)
}

func TestWatchCoalescesBursts(t *testing.T) {
	source := &fakeSource{msgs: make(chan string, 8)}
	watcher := NewWatcher(source)

	sub, err := watcher.Watch(context.Background(), "rc:stream:offers:board")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sub.Close()

	for i := 0; i < 5; i++ {
		source.msgs <- "updated"
	}
	waitTick(t, sub)

	// after draining, at most one more pending tick remains from the burst
	select {
	case <-sub.Updates():
	case <-time.After(100 * time.Millisecond):
	}
	select {
	case _, ok := <-sub.Updates():
		if ok {
			t.Fatal("burst was not coalesced")
		}
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCloseReleasesSource(t *testing.T) {
	source := &fakeSource{msgs: make(chan string)}
	watcher := NewWatcher(source)

	sub, err := watcher.Watch(context.Background(), "rc:stream:account:"+uuid.NewString())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := sub.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !source.closed {
		t.Fatal("underlying subscription not released")
	}
	if err := sub.Close(); err != nil {
		t.Fatalf("second close must be a no-op: %v", err)
	}

	select {
	case _, ok := <-sub.Updates():
		if ok {
			t.Fatal("expected closed updates channel")
		}
	case <-time.After(time.Second):
		t.Fatal("updates channel not closed")
	}
}

func TestContextCancelEndsSubscription(t *testing.T) {
	source := &fakeSource{msgs: make(chan string)}
	watcher := NewWatcher(source)

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := watcher.Watch(ctx, "rc:stream:offers:board")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()

	select {
	case _, ok := <-sub.Updates():
		if ok {
			t.Fatal("expected closed updates channel")
		}
	case <-time.After(time.Second):
		t.Fatal("updates channel not closed after cancel")
	}
}
