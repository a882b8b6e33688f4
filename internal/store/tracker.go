package store

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"cargo-tracker/internal/logger"
	"cargo-tracker/internal/shipment/model"
)

// DefaultPollInterval matches the tracking view's refresh cadence.
const DefaultPollInterval = 30 * time.Second

// Tracker re-fetches the current shipment on a fixed interval while it is in
// transit, keeping the tracking view fresh. It is the only recurring
// background operation in the system.
type Tracker struct {
	store    *Store
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewTracker builds a tracker polling at the given interval; zero or negative
// means DefaultPollInterval.
func NewTracker(store *Store, interval time.Duration) *Tracker {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Tracker{store: store, interval: interval}
}

// Follow polls shipment id until ctx is cancelled or the shipment leaves the
// In Transit status. A failed refresh is logged and the last known state is
// kept; polling continues.
func (t *Tracker) Follow(ctx context.Context, id string) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			current := t.store.Current()
			if current == nil || current.ID != id || current.Status != model.StatusInTransit {
				return
			}
			if _, err := t.store.Get(ctx, id); err != nil {
				logger.Warn("failed to refresh shipment data",
					zap.String("shipment_id", id),
					zap.Error(err),
				)
			}
		}
	}
}

// Watch starts following id in the background. At most one follow runs at a
// time: looking up a new shipment cancels the previous poll, the way the
// tracking view resets its refresh timer.
func (t *Tracker) Watch(id string) {
	t.mu.Lock()
	if t.cancel != nil {
		t.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.cancel = cancel
	t.mu.Unlock()

	go t.Follow(ctx, id)
}

// Stop cancels the active follow, if any. Called on shutdown.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}
