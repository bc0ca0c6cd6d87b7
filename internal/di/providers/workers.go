package providers

import (
	"context"

	"github.com/samber/do/v2"

	"github.com/animesense/animesense-server/internal/config"
	"github.com/animesense/animesense-server/internal/logger"
	"github.com/animesense/animesense-server/internal/watcher"
)

// ArtifactWatcherHandle wraps the artifact watcher with shutdown capability.
type ArtifactWatcherHandle struct {
	*watcher.Watcher
	cancel context.CancelFunc
}

// Shutdown implements do.Shutdownable.
func (h *ArtifactWatcherHandle) Shutdown() error {
	if h.Watcher == nil {
		return nil
	}
	h.cancel()
	return h.Watcher.Stop()
}

// ProvideArtifactWatcher provides the data directory watcher. Disabled via
// configuration it yields an inert handle.
func ProvideArtifactWatcher(i do.Injector) (*ArtifactWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.Data.Watch {
		log.Info("artifact watcher disabled by configuration")
		return &ArtifactWatcherHandle{}, nil
	}

	w, err := watcher.New(cfg.Data.Dir, log.Logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		if err := w.Start(ctx); err != nil && err != context.Canceled {
			log.Error("artifact watcher error", "error", err)
		}
	}()

	// Events are logged by the watcher itself; drain here so a full buffer
	// never stalls the watch loop.
	go func() {
		for {
			select {
			case <-w.Events():
			case <-ctx.Done():
				return
			}
		}
	}()

	return &ArtifactWatcherHandle{
		Watcher: w,
		cancel:  cancel,
	}, nil
}
