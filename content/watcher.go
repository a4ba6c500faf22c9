package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultDebounce = 500 * time.Millisecond

// Watcher invalidates a Repository when files under the content root change.
// Bursts of events collapse into one invalidation.
type Watcher struct {
	root     string
	onChange func()
	debounce time.Duration
	watcher  *fsnotify.Watcher
	logger   zerolog.Logger

	mu       sync.Mutex
	stopChan chan struct{}
	stopped  bool
	trigger  chan struct{}
}

// NewWatcher watches root and calls onChange after each settled burst of events.
func NewWatcher(root string, onChange func(), debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to resolve content path: %w", err)
	}
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &Watcher{
		root:     absRoot,
		onChange: onChange,
		debounce: debounce,
		watcher:  fw,
		logger:   log.With().Str("component", "contentWatcher").Logger(),
		stopChan: make(chan struct{}),
		trigger:  make(chan struct{}, 1),
	}, nil
}

// Start registers the directory tree and begins watching until ctx is done or
// Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.addTree(w.root); err != nil {
		return err
	}
	w.logger.Info().Str("root", w.root).Msg("watching content")

	go w.watchLoop(ctx)
	go w.debounceLoop(ctx)
	return nil
}

func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)
	return w.watcher.Close()
}

// fsnotify is not recursive, so every directory is added on its own.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(p); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	})
}

func (w *Watcher) watchLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopChan:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						w.logger.Warn().Err(err).Str("dir", event.Name).Msg("could not watch new directory")
					}
				}
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			w.logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("content change detected")
			w.signal()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error().Err(err).Msg("content watcher error")
		}
	}
}

func (w *Watcher) signal() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-w.stopChan:
			stop()
			return
		case <-w.trigger:
			stop()
			timer = time.AfterFunc(w.debounce, w.onChange)
		}
	}
}
