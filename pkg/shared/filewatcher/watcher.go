// Package filewatcher reports debounced changes of a single file, used to hot reload the
// console configuration.
package filewatcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEvent represents a file change event
type ChangeEvent struct {
	Path      string
	Timestamp time.Time
	Error     error // set when fsnotify reported an error instead of a change
}

// ChangeListener receives file change notifications
type ChangeListener interface {
	OnFileChange(event ChangeEvent)
}

// ListenerFunc adapts a function to ChangeListener.
type ListenerFunc func(event ChangeEvent)

// OnFileChange calls f(event).
func (f ListenerFunc) OnFileChange(event ChangeEvent) { f(event) }

// Watcher monitors one file and notifies listeners after a quiet period.
type Watcher struct {
	watcher       *fsnotify.Watcher
	filePath      string
	debounceDelay time.Duration

	mu        sync.RWMutex
	listeners []ChangeListener
}

// NewWatcher creates a watcher for filePath.
func NewWatcher(filePath string, debounceDelay time.Duration) (*Watcher, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatcher.Add(absPath); err != nil {
		_ = fsWatcher.Close()
		return nil, fmt.Errorf("failed to add file to watcher: %w", err)
	}

	return &Watcher{
		watcher:       fsWatcher,
		filePath:      absPath,
		debounceDelay: debounceDelay,
	}, nil
}

// AddListener registers a listener.
func (w *Watcher) AddListener(listener ChangeListener) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.listeners = append(w.listeners, listener)
}

// Start blocks until ctx is done, forwarding Write/Create events for the watched file.
// Editors often write a file several times in a row; only the last write within the
// debounce delay is reported.
func (w *Watcher) Start(ctx context.Context) error {
	var (
		timer   *time.Timer
		timerMu sync.Mutex
	)
	defer func() {
		timerMu.Lock()
		if timer != nil {
			timer.Stop()
		}
		timerMu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errors.New("watcher events channel closed")
			}
			eventPath, err := filepath.Abs(event.Name)
			if err != nil || eventPath != w.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			timerMu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounceDelay, func() {
				w.notify(ChangeEvent{Path: w.filePath, Timestamp: time.Now()})
			})
			timerMu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errors.New("watcher errors channel closed")
			}
			w.notify(ChangeEvent{Path: w.filePath, Timestamp: time.Now(), Error: err})
		}
	}
}

// Close stops the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

func (w *Watcher) notify(event ChangeEvent) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	for _, listener := range w.listeners {
		go listener.OnFileChange(event)
	}
}
