package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/BrandonKowalski/osk/pkg/osk/constants"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/atomic"
)

// Watcher reloads a config file when it changes on disk. Reloaded configs are
// delivered on Updates; a host drains it on its own event loop. Only the most
// recent config is kept when the host falls behind.
type Watcher struct {
	path    string
	delay   time.Duration
	watcher *fsnotify.Watcher
	updates chan *Config
	errs    chan error
	closed  *atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *slog.Logger
}

// Watch starts watching path. The directory is watched so that editors which
// replace the file are still noticed.
func Watch(path string, logger *slog.Logger) (*Watcher, error) {
	return WatchWithDelay(path, constants.DefaultConfigReloadDelay, logger)
}

func WatchWithDelay(path string, delay time.Duration, logger *slog.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:    path,
		delay:   delay,
		watcher: fw,
		updates: make(chan *Config, 1),
		errs:    make(chan error, 1),
		closed:  atomic.NewBool(false),
		ctx:     ctx,
		cancel:  cancel,
		logger:  logger,
	}
	go w.loop()
	return w, nil
}

// Updates delivers each successfully reloaded config.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Errors delivers reload failures. The previous config stays in effect.
func (w *Watcher) Errors() <-chan error {
	return w.errs
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}
	w.cancel()
	return w.watcher.Close()
}

func (w *Watcher) loop() {
	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(w.delay, w.reload)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		}
	}
}

func (w *Watcher) reload() {
	if w.closed.Load() {
		return
	}
	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Warn("Config reload failed", "path", w.path, "error", err)
		w.sendErr(fmt.Errorf("reload config: %w", err))
		return
	}
	w.logger.Debug("Config reloaded", "path", w.path)

	// Replace an undelivered config with the newer one.
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	default:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.errs <- err:
	default:
	}
}
