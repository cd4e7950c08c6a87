package config

import (
	"context"
	"time"

	"github.com/brazucaphish/console/pkg/shared/filewatcher"
	"github.com/brazucaphish/console/pkg/shared/logging"
)

// Reloader reloads the configuration file whenever it changes on disk and hands the
// validated result to a callback. Invalid files are logged and ignored so a typo never
// takes down a running server.
type Reloader struct {
	// Override, when set, adjusts every reloaded configuration before it is validated.
	Override func(*Config)

	loader   *FileLoader
	watcher  *filewatcher.Watcher
	onReload func(*Config)
	logger   logging.Logger
}

// NewReloader watches path with the given debounce delay.
func NewReloader(path string, debounce time.Duration, onReload func(*Config), logger logging.Logger) (*Reloader, error) {
	w, err := filewatcher.NewWatcher(path, debounce)
	if err != nil {
		return nil, err
	}

	r := &Reloader{
		loader:   NewFileLoader(path),
		watcher:  w,
		onReload: onReload,
		logger:   logger.WithModule("config"),
	}
	w.AddListener(filewatcher.ListenerFunc(r.handle))
	return r, nil
}

// Run blocks until ctx is cancelled.
func (r *Reloader) Run(ctx context.Context) error {
	defer r.watcher.Close()
	return r.watcher.Start(ctx)
}

func (r *Reloader) handle(event filewatcher.ChangeEvent) {
	if event.Error != nil {
		r.logger.Warn("Config watcher error", "path", event.Path, "error", event.Error)
		return
	}

	cfg, err := r.loader.Read()
	if err == nil {
		if r.Override != nil {
			r.Override(cfg)
		}
		err = cfg.Validate()
	}
	if err != nil {
		r.logger.Error("Failed to reload configuration, keeping previous", "path", event.Path, "error", err)
		return
	}

	r.logger.Info("Configuration reloaded", "path", event.Path)
	if r.onReload != nil {
		r.onReload(cfg)
	}
}
