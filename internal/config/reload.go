package config

import (
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// debounceWindow is how long to wait after one write event before another
// reload is allowed, absorbing editors that emit several writes per save.
const debounceWindow = 500 * time.Millisecond

// Manager watches a config file for changes and hot-swaps the snapshot
// returned by Current. Readers never block on a reload; they read an
// atomically-stored pointer.
type Manager struct {
	path    string
	watcher *fsnotify.Watcher
	current atomic.Pointer[Config]
}

// Watch loads path once and starts watching it for writes. Call Close when
// done to stop the underlying watcher goroutine.
func Watch(path string) (*Manager, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, err
	}

	m := &Manager{path: path, watcher: watcher}
	m.current.Store(cfg)

	go m.watch()
	return m, nil
}

// Static wraps an already-loaded Config with no file watcher, for tests and
// for callers that want an explicit one-shot snapshot with no hot reload.
func Static(cfg *Config) *Manager {
	m := &Manager{}
	m.current.Store(cfg)
	return m
}

// Current returns the most recently loaded snapshot.
func (m *Manager) Current() *Config {
	return m.current.Load()
}

// Close stops the watcher goroutine, if one was started.
func (m *Manager) Close() error {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.Close()
}

func (m *Manager) watch() {
	var lastReload time.Time
	for {
		select {
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) {
				continue
			}
			if now := time.Now(); now.Sub(lastReload) < debounceWindow {
				continue
			} else {
				lastReload = now
			}

			cfg, err := Load(m.path)
			if err != nil {
				logrus.WithError(err).WithField("path", m.path).Warn("config reload failed, keeping previous snapshot")
				continue
			}
			m.current.Store(cfg)
			logrus.WithField("path", m.path).Info("config reloaded")

		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			logrus.WithError(err).Warn("config watcher error")
		}
	}
}
