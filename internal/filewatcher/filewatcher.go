// Package filewatcher batches fsnotify events for a small, explicit set of
// configuration files (the workspace settings file, the lint options file
// and the active import map) into debounced change notifications for the
// scheduler to consume.
//
// Unlike a workspace-wide source watcher, this package never walks
// directory trees or tracks Go-style build files: tsdiagd only ever cares
// about those few files changing underneath it, so the watcher is handed their
// paths directly and reports back by path, not by recursively-discovered
// URI.
package filewatcher

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrClosed is used when trying to operate on a closed Watcher.
var ErrClosed = errors.New("file watcher: watcher already closed")

// ChangeType distinguishes why a watched file was reported.
type ChangeType int

const (
	Changed ChangeType = iota
	Removed
)

func (t ChangeType) String() string {
	if t == Removed {
		return "removed"
	}
	return "changed"
}

// Event reports that one watched path changed.
type Event struct {
	Path string
	Type ChangeType
}

// Watcher collects fsnotify events for a fixed set of paths and delivers
// them to a handler in debounced batches, so that e.g. an editor rewriting
// a config file via a temp-file-and-rename doesn't fire the handler twice.
type Watcher struct {
	logger *slog.Logger

	stop chan struct{}
	wg   sync.WaitGroup

	watcher *fsnotify.Watcher

	mu  sync.Mutex
	out map[string]ChangeType // path -> latest change, flushed on timer
}

// New creates a watcher for the given paths and starts its event loop. Paths
// that don't exist yet are watched via their parent directory, so that a
// later create (e.g. `deno.json` being added) is still observed; the handler
// is only ever called for paths in the original set. Close must be called to
// release resources.
//
// The handler is called sequentially with a batch of events no more often
// than once per delay; it must not block.
func New(paths []string, delay time.Duration, logger *slog.Logger, handler func([]Event), errHandler func(error)) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		logger:  logger,
		watcher: fsw,
		stop:    make(chan struct{}),
		out:     make(map[string]ChangeType),
	}

	watched := make(map[string]bool, len(paths))
	for _, p := range paths {
		clean := filepath.Clean(p)
		watched[clean] = true
		if err := fsw.Add(clean); err != nil {
			// The file (or its directory) may not exist yet; watch the
			// parent directory instead so a later create is still seen.
			dir := filepath.Dir(clean)
			if err := fsw.Add(dir); err != nil && logger != nil {
				logger.Warn("failed to watch config file", "path", clean, "err", err)
			}
		}
	}

	w.wg.Add(1)
	go w.run(watched, delay, handler, errHandler)

	return w, nil
}

func (w *Watcher) run(watched map[string]bool, delay time.Duration, handler func([]Event), errHandler func(error)) {
	defer w.wg.Done()

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-w.stop:
			return

		case <-timer.C:
			w.mu.Lock()
			out := w.out
			w.out = make(map[string]ChangeType)
			w.mu.Unlock()

			if len(out) > 0 {
				events := make([]Event, 0, len(out))
				for path, typ := range out {
					events = append(events, Event{Path: path, Type: typ})
				}
				handler(events)
			}
			timer.Reset(delay)

		case event, ok := <-w.watcher.Events:
			if !ok {
				continue
			}
			name := filepath.Clean(event.Name)
			if !watched[name] {
				continue
			}

			var typ ChangeType
			switch {
			case event.Op.Has(fsnotify.Remove), event.Op.Has(fsnotify.Rename):
				typ = Removed
			case event.Op.Has(fsnotify.Create), event.Op.Has(fsnotify.Write):
				typ = Changed
			default:
				continue
			}

			timer.Reset(delay)

			w.mu.Lock()
			w.out[name] = typ
			w.mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				continue
			}
			errHandler(err)
		}
	}
}

// Close shuts down the watcher and waits for its goroutine to terminate.
func (w *Watcher) Close() error {
	err := w.watcher.Close()
	close(w.stop)
	w.wg.Wait()
	return err
}
