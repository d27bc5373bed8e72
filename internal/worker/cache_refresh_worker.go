package worker

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Rebuilder reloads a cache from storage.
type Rebuilder interface {
	Rebuild(ctx context.Context) error
}

// CacheRefreshWorker periodically rebuilds the staff cache so rows written
// outside this process become visible.
type CacheRefreshWorker struct {
	cache    Rebuilder
	interval time.Duration
	logger   *zap.Logger
	done     chan struct{}
}

// NewCacheRefreshWorker returns nil when interval is not positive.
func NewCacheRefreshWorker(cache Rebuilder, interval time.Duration, logger *zap.Logger) *CacheRefreshWorker {
	if cache == nil || interval <= 0 {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheRefreshWorker{cache: cache, interval: interval, logger: logger, done: make(chan struct{})}
}

// Start runs the refresh loop until ctx is cancelled.
func (w *CacheRefreshWorker) Start(ctx context.Context) {
	if w == nil {
		return
	}
	go w.run(ctx)
}

// Done is closed once the loop has exited.
func (w *CacheRefreshWorker) Done() <-chan struct{} {
	return w.done
}

func (w *CacheRefreshWorker) run(ctx context.Context) {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("staff cache refresh started", zap.Duration("interval", w.interval))
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("staff cache refresh stopped")
			return
		case <-ticker.C:
			if err := w.cache.Rebuild(ctx); err != nil {
				w.logger.Warn("periodic staff cache rebuild failed", zap.Error(err))
			}
		}
	}
}
