package worker

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher observes the audio folder and triggers a pipeline run when new
// .mp3 files appear. Events are debounced: a run fires only after the folder
// has been quiet for the configured delay, so an episode still being copied
// is not processed half-written.
type Watcher struct {
	folder   string
	debounce time.Duration
	trigger  func()
	logger   *slog.Logger
	watcher  *fsnotify.Watcher
}

// NewWatcher creates a folder watcher. trigger is invoked (on the watcher's
// goroutine) each time the debounce window closes after new audio arrived.
func NewWatcher(folder string, debounce time.Duration, trigger func(), logger *slog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(folder); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch folder %s: %w", folder, err)
	}

	return &Watcher{
		folder:   folder,
		debounce: debounce,
		trigger:  trigger,
		logger:   logger,
		watcher:  fsw,
	}, nil
}

// Start runs the watch loop until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.logger.Info("folder watcher started",
		slog.String("folder", w.folder),
		slog.Duration("debounce", w.debounce))

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			w.logger.Info("folder watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			if !isAudioFile(event.Name) {
				continue
			}

			w.logger.Info("new audio detected",
				slog.String("file", filepath.Base(event.Name)))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			w.trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error("watcher error", slog.Any("error", err))
		}
	}
}

// Stop closes the underlying filesystem watcher.
func (w *Watcher) Stop() error {
	return w.watcher.Close()
}

func isAudioFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".mp3")
}
