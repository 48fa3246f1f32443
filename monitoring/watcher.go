package monitoring

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// ReloadFunc loads a fresh artifact set and swaps it into the engine.
type ReloadFunc func() error

// ArtifactWatcher watches the models directory and hot-reloads the prediction
// engine when any of the artifact files is rewritten. Rapid successive writes
// (a trainer saving three files) are debounced into one reload.
type ArtifactWatcher struct {
	watcher     *fsnotify.Watcher
	dir         string
	reload      ReloadFunc
	hub         *Hub
	logger      *zap.Logger
	debounceDur time.Duration

	mu      sync.Mutex
	pending *time.Timer
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewArtifactWatcher(dir string, reload ReloadFunc, hub *Hub, logger *zap.Logger) (*ArtifactWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArtifactWatcher{
		watcher:     watcher,
		dir:         dir,
		reload:      reload,
		hub:         hub,
		logger:      logger,
		debounceDur: 500 * time.Millisecond,
		stopCh:      make(chan struct{}),
		doneCh:      make(chan struct{}),
	}, nil
}

func (aw *ArtifactWatcher) Start() error {
	if err := aw.watcher.Add(aw.dir); err != nil {
		return err
	}
	go aw.loop()
	aw.logger.Info("artifact watcher started", zap.String("dir", aw.dir))
	return nil
}

func (aw *ArtifactWatcher) Stop() {
	close(aw.stopCh)
	aw.watcher.Close()
	<-aw.doneCh
}

func (aw *ArtifactWatcher) loop() {
	defer close(aw.doneCh)

	for {
		select {
		case event, ok := <-aw.watcher.Events:
			if !ok {
				return
			}
			if !aw.isArtifact(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			aw.scheduleReload(event.Name)

		case err, ok := <-aw.watcher.Errors:
			if !ok {
				return
			}
			aw.logger.Warn("artifact watcher error", zap.Error(err))

		case <-aw.stopCh:
			aw.mu.Lock()
			if aw.pending != nil {
				aw.pending.Stop()
			}
			aw.mu.Unlock()
			return
		}
	}
}

func (aw *ArtifactWatcher) isArtifact(path string) bool {
	return filepath.Ext(path) == ".json"
}

func (aw *ArtifactWatcher) scheduleReload(path string) {
	aw.mu.Lock()
	defer aw.mu.Unlock()

	if aw.pending != nil {
		aw.pending.Stop()
	}
	aw.pending = time.AfterFunc(aw.debounceDur, func() {
		if err := aw.reload(); err != nil {
			// Keep serving the previous artifacts on a bad reload.
			aw.logger.Error("artifact reload failed", zap.String("trigger", path), zap.Error(err))
			return
		}
		aw.logger.Info("artifacts reloaded", zap.String("trigger", path))
		if aw.hub != nil {
			aw.hub.Publish(ReloadEvent, map[string]string{"trigger": filepath.Base(path)})
		}
	})
}
