package guard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// watchAccountScreen arms the single-fire account screen watcher. At most
// one watcher runs per process; arming while one is active is a no-op.
// The caller has already established that the account screen is on top.
func (g *Guard) watchAccountScreen(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.watching {
		return nil
	}
	if g.tasks == nil {
		return fmt.Errorf("no activity monitor available")
	}
	events, cancel, err := g.tasks.SubscribeStackChanges()
	if err != nil {
		return fmt.Errorf("subscribing to stack changes: %w", err)
	}
	g.watching = true

	token := uuid.NewString()
	g.logger.Info("Watching account screen until the stack changes.",
		zap.String("watcher", token))
	go g.runWatcher(token, true, events, cancel)
	return nil
}

// runWatcher consumes exactly one stack-change notification, compares the
// account screen state against the captured snapshot and kills the process
// when it changed. The process restarts clean, without the stale identity.
func (g *Guard) runWatcher(token string, was bool, events <-chan struct{}, cancel func()) {
	logger := g.logger.With(zap.String("watcher", token))
	defer cancel()
	defer g.disarm()

	_, ok := <-events
	if !ok {
		logger.Debug("Activity monitor closed, watcher disarmed.")
		return
	}

	now := g.accountScreenOnTop(context.Background())
	if now == was {
		logger.Debug("Account screen unchanged after stack change, watcher disarmed.")
		return
	}

	logger.Info("Account screen left the foreground, restarting process.")
	g.killOnce.Do(g.proc.Kill)
}

func (g *Guard) disarm() {
	g.mu.Lock()
	g.watching = false
	g.mu.Unlock()
}
