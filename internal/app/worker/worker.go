package worker

import (
	"context"
	"huddle/pkg/logging"
	"log/slog"
	"time"
)

// ClusterPresence lists users online across every instance, pruning entries
// whose owner stopped refreshing them.
type ClusterPresence interface {
	Cluster(ctx context.Context) ([]string, error)
}

// PresenceSweeper periodically prunes stale shared presence entries left by
// instances that died without marking their users offline.
type PresenceSweeper struct {
	log      *slog.Logger
	presence ClusterPresence
	interval time.Duration
}

func NewPresenceSweeper(log *slog.Logger, presence ClusterPresence, interval time.Duration) *PresenceSweeper {
	return &PresenceSweeper{
		log:      log,
		presence: presence,
		interval: interval,
	}
}

// Run sweeps every interval until ctx is cancelled.
func (w *PresenceSweeper) Run(ctx context.Context) error {
	if w.interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	w.log.InfoContext(ctx, "worker - presence sweeper - started", "interval", w.interval)
	for {
		select {
		case <-ctx.Done():
			w.log.InfoContext(ctx, "worker - presence sweeper - stopped")
			return ctx.Err()
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

func (w *PresenceSweeper) Sweep(ctx context.Context) {
	users, err := w.presence.Cluster(ctx)
	if err != nil {
		w.log.WarnContext(ctx, "worker - presence sweeper - sweep failed", logging.Err(err))
		return
	}
	w.log.DebugContext(ctx, "worker - presence sweeper - sweep success", "online", len(users))
}
