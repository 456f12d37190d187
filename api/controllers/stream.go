package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/reciclacred/backend/api/middleware"
	"github.com/reciclacred/backend/api/responses"
	"github.com/reciclacred/backend/api/validators"
	"github.com/reciclacred/backend/internal/residues"
	"github.com/reciclacred/backend/internal/stream"
	"github.com/reciclacred/backend/internal/transactions"
	"github.com/reciclacred/backend/internal/users"
	"github.com/reciclacred/backend/pkg/config"
	pkgerrors "github.com/reciclacred/backend/pkg/errors"
	"github.com/reciclacred/backend/pkg/logger"
)

type streamKeyer interface {
	StreamChannel(topic, id string) string
}

// OffersStream pushes the caller's visible offer board over SSE. A fresh
// snapshot goes out on connect, after every invalidation, and stays alive
// through periodic heartbeats until the client disconnects.
func OffersStream(svc *residues.Service, watcher *stream.Watcher, keyer streamKeyer, cfg config.StreamConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requesterID, err := validators.UserIDFromString(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot := func(ctx context.Context) (any, error) {
			return svc.List(ctx, requesterID)
		}
		serveSSE(w, r, watcher, cfg, logg, snapshot, stream.OffersChannel(keyer))
	}
}

type accountSnapshot struct {
	Profile      *users.ProfileDTO             `json:"profile"`
	Transactions []transactions.TransactionDTO `json:"transactions"`
}

// AccountStream pushes the caller's balance and settlement history over SSE.
func AccountStream(usersSvc *users.Service, txnsSvc *transactions.Service, watcher *stream.Watcher, keyer streamKeyer, cfg config.StreamConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accountID, err := validators.UserIDFromString(middleware.UserIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snapshot := func(ctx context.Context) (any, error) {
			profile, err := usersSvc.GetProfile(ctx, accountID)
			if err != nil {
				return nil, err
			}
			history, err := txnsSvc.History(ctx, accountID)
			if err != nil {
				return nil, err
			}
			return accountSnapshot{Profile: profile, Transactions: history}, nil
		}
		serveSSE(w, r, watcher, cfg, logg, snapshot, stream.AccountChannel(keyer, accountID))
	}
}

func serveSSE(
	w http.ResponseWriter,
	r *http.Request,
	watcher *stream.Watcher,
	cfg config.StreamConfig,
	logg *logger.Logger,
	snapshot func(context.Context) (any, error),
	channels ...string,
) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "streaming unsupported"))
		return
	}
	if watcher == nil {
		responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stream watcher unavailable"))
		return
	}

	ctx := r.Context()
	sub, err := watcher.Watch(ctx, channels...)
	if err != nil {
		responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "subscribe stream"))
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if !writeSnapshot(ctx, w, flusher, logg, snapshot) {
		return
	}

	heartbeat := cfg.HeartbeatInterval
	if heartbeat <= 0 {
		heartbeat = 25 * time.Second
	}
	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, open := <-sub.Updates():
			if !open {
				return
			}
			if !writeSnapshot(ctx, w, flusher, logg, snapshot) {
				return
			}
		case <-ticker.C:
			if _, err := w.Write([]byte(": ping\n\n")); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}

func writeSnapshot(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, logg *logger.Logger, snapshot func(context.Context) (any, error)) bool {
	data, err := snapshot(ctx)
	if err != nil {
		if logg != nil {
			logg.Error(ctx, "stream.snapshot", err)
		}
		return false
	}
	payload, err := json.Marshal(data)
	if err != nil {
		if logg != nil {
			logg.Error(ctx, "stream.encode", err)
		}
		return false
	}
	if _, err := w.Write([]byte("event: snapshot\ndata: ")); err != nil {
		return false
	}
	if _, err := w.Write(payload); err != nil {
		return false
	}
	if _, err := w.Write([]byte("\n\n")); err != nil {
		return false
	}
	flusher.Flush()
	return true
}
