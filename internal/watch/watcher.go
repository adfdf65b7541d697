// Package watch reloads the phrase spreadsheet when it changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is used when no positive debounce is configured.
const DefaultDebounce = 300 * time.Millisecond

// ReloadFunc loads the file at path again.
type ReloadFunc func(ctx context.Context, path string) error

// Event records one reload triggered by the watcher.
type Event struct {
	Time   time.Time `json:"time"`
	Path   string    `json:"path"`
	Status string    `json:"status"` // "reloaded" or "error"
	Error  string    `json:"error,omitempty"`
}

// Watcher observes a single spreadsheet. Its directory is watched rather
// than the file itself, because spreadsheet editors save by replacing the
// file.
type Watcher struct {
	Path     string
	Debounce time.Duration
	Reload   ReloadFunc

	logger  *zap.Logger
	watcher *fsnotify.Watcher

	mu     sync.Mutex
	timer  *time.Timer
	events []Event

	inflight sync.WaitGroup // reloads started by the debounce timer
}

// New creates a watcher for path. It does not start watching until Start.
func New(path string, debounce time.Duration, reload ReloadFunc, logger *zap.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create file watcher: %w", err)
	}

	return &Watcher{
		Path:     abs,
		Debounce: debounce,
		Reload:   reload,
		logger:   logger.With(zap.String("component", "watch")),
		watcher:  fsw,
	}, nil
}

// Start watches until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.Path)
	if err := w.watcher.Add(dir); err != nil {
		w.watcher.Close()
		return fmt.Errorf("could not watch %s: %w", dir, err)
	}
	w.logger.Debug("watching spreadsheet", zap.String("path", w.Path))

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			w.inflight.Wait()
			w.logger.Debug("stopping watcher")
			return w.watcher.Close()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ctx, event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// Close releases the watcher without starting it.
func (w *Watcher) Close() error {
	w.stopTimer()
	w.inflight.Wait()
	return w.watcher.Close()
}

func (w *Watcher) handleEvent(ctx context.Context, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}
	if !w.matches(event.Name) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil && w.timer.Stop() {
		w.inflight.Done()
	}
	w.inflight.Add(1)
	w.timer = time.AfterFunc(w.Debounce, func() {
		defer w.inflight.Done()
		w.reload(ctx)
	})
}

func (w *Watcher) matches(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return false
	}
	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return abs == w.Path
}

func (w *Watcher) reload(ctx context.Context) {
	if ctx.Err() != nil || w.Reload == nil {
		return
	}

	evt := Event{Time: time.Now(), Path: w.Path, Status: "reloaded"}
	if err := w.Reload(ctx, w.Path); err != nil {
		evt.Status = "error"
		evt.Error = err.Error()
		w.logger.Warn("reload failed", zap.String("path", w.Path), zap.Error(err))
	} else {
		w.logger.Info("spreadsheet changed, reloaded", zap.String("path", w.Path))
	}

	w.mu.Lock()
	w.events = append(w.events, evt)
	w.mu.Unlock()
}

// stopTimer cancels a pending reload. A reload that already started keeps
// running and is waited for through inflight.
func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil && w.timer.Stop() {
		w.inflight.Done()
	}
	w.timer = nil
}

// Events returns the reloads performed so far.
func (w *Watcher) Events() []Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := make([]Event, len(w.events))
	copy(events, w.events)
	return events
}
