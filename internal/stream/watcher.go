// Package stream keeps the pool's TVL snapshot warm between requests by
// subscribing to the ledger gateway's pool-update feed. Strategy listings
// consult the watcher when it has a fresh value and fall back to a direct
// provider read otherwise.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
	"nhooyr.io/websocket"
)

type subscribeRequest struct {
	Type   string `json:"type"`
	PoolID string `json:"pool_id"`
}

type poolUpdate struct {
	EventType string `json:"event_type"`
	PoolID    string `json:"pool_id"`
	TvlUsd    string `json:"tvlUsd"`
	Timestamp string `json:"timestamp"`
}

type TVLWatcher struct {
	URL    string
	PoolID string
	Logger *zap.Logger

	// MaxAge bounds how stale a streamed value may be before readers ignore it.
	MaxAge time.Duration

	mu        sync.RWMutex
	tvlUsd    uint64
	updatedAt time.Time
}

// TvlUsd returns the latest streamed raw TVL and whether it is fresh enough
// to use.
func (w *TVLWatcher) TvlUsd() (uint64, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.updatedAt.IsZero() {
		return 0, false
	}
	maxAge := w.MaxAge
	if maxAge <= 0 {
		maxAge = time.Minute
	}
	if time.Since(w.updatedAt) > maxAge {
		return 0, false
	}
	return w.tvlUsd, true
}

// Run dials, subscribes, and consumes updates until ctx is done, reconnecting
// with backoff on stream failures.
func (w *TVLWatcher) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		err := w.consume(ctx)
		if err == nil || errors.Is(err, context.Canceled) {
			return err
		}
		if w.Logger != nil {
			w.Logger.Warn("tvl stream disconnected", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}
	}
}

func (w *TVLWatcher) consume(ctx context.Context) error {
	conn, _, err := websocket.Dial(ctx, w.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	payload, err := json.Marshal(subscribeRequest{Type: "pool", PoolID: w.PoolID})
	if err != nil {
		return err
	}
	if err := conn.Write(ctx, websocket.MessageText, payload); err != nil {
		return err
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return err
		}
		var update poolUpdate
		if err := json.Unmarshal(data, &update); err != nil {
			continue
		}
		if update.EventType != "pool_update" || update.PoolID != w.PoolID {
			continue
		}
		tvl, err := strconv.ParseUint(update.TvlUsd, 10, 64)
		if err != nil {
			continue
		}
		w.mu.Lock()
		w.tvlUsd = tvl
		w.updatedAt = time.Now()
		w.mu.Unlock()
	}
}
