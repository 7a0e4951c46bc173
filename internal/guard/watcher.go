package guard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultInterval is how often stored sessions are re-verified.
const DefaultInterval = 15 * time.Minute

// ErrWatcherRunning is returned by Start on a running watcher.
var ErrWatcherRunning = errors.New("session watcher already running")

// Watcher re-verifies every stored session on a fixed interval and clears
// the ones the server no longer accepts.
type Watcher struct {
	guard    *Guard
	interval time.Duration
	logger   *zap.Logger

	mu   sync.Mutex
	cron *cron.Cron
}

// NewWatcher constructs a Watcher.
func NewWatcher(g *Guard, interval time.Duration, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Watcher{guard: g, interval: interval, logger: logger}
}

// Start runs one sweep immediately and schedules the rest.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cron != nil {
		return ErrWatcherRunning
	}
	c := cron.New()
	if _, err := c.AddFunc(fmt.Sprintf("@every %s", w.interval), func() { w.Sweep(ctx) }); err != nil {
		return fmt.Errorf("schedule session watcher: %w", err)
	}
	w.Sweep(ctx)
	c.Start()
	w.cron = c
	w.logger.Info("session watcher started", zap.Duration("interval", w.interval))
	return nil
}

// Stop halts the schedule and waits for a running sweep.
func (w *Watcher) Stop() {
	w.mu.Lock()
	c := w.cron
	w.cron = nil
	w.mu.Unlock()
	if c != nil {
		<-c.Stop().Done()
	}
}

// Sweep verifies every stored session once and returns how many were
// checked and how many cleared. Sessions that could not be verified stay.
func (w *Watcher) Sweep(ctx context.Context) (checked, cleared int) {
	ids, err := w.guard.sessions.IDs(ctx)
	if err != nil {
		w.logger.Warn("session sweep skipped", zap.Error(err))
		return 0, 0
	}
	skipped := 0
	for _, sid := range ids {
		if ctx.Err() != nil {
			break
		}
		checked++
		switch w.guard.Verify(ctx, sid) {
		case ReasonExpired, ReasonRejected:
			cleared++
		case ReasonUnreachable:
			skipped++
		}
	}
	if skipped > 0 {
		w.logger.Warn("sessions left for the next sweep, API unreachable", zap.Int("skipped", skipped))
	}
	if cleared > 0 {
		w.logger.Info("expired sessions cleared", zap.Int("checked", checked), zap.Int("cleared", cleared))
	}
	return checked, cleared
}
