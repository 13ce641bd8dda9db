// Package watch reports changes to card files made outside the shell.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/vcardshell/internal/logging"
	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change reported for a card file.
type Op int

const (
	// Changed means the file was created or written.
	Changed Op = iota + 1
	// Removed means the file was deleted or renamed away.
	Removed
)

func (o Op) String() string {
	switch o {
	case Changed:
		return "changed"
	case Removed:
		return "removed"
	}
	return "unknown"
}

// Event names a card file (base name, not path) and what happened to it.
type Event struct {
	Name string
	Op   Op
}

// DefaultDebounce is how long a file must stay quiet before its event is
// delivered. Editors often write a file in several steps.
const DefaultDebounce = 200 * time.Millisecond

type pending struct {
	op   Op
	seen time.Time
}

// Watcher watches one directory for files with a given suffix and calls
// notify with debounced events from its own goroutine.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	suffix   string
	notify   func(Event)
	log      logging.Logger
	debounce time.Duration
	pending  map[string]pending
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

// New creates a watcher for files ending in suffix inside dir.
func New(dir, suffix string, notify func(Event), log logging.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	return &Watcher{
		watcher:  fw,
		dir:      dir,
		suffix:   suffix,
		notify:   notify,
		log:      log,
		debounce: DefaultDebounce,
		pending:  make(map[string]pending),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start adds the directory and begins delivering events. It does not block.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}

	if err := w.watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.running = true

	go w.run(ctx)
	w.log.Debug(ctx, "watching cards", "dir", w.dir)
	return nil
}

// Stop ends the event loop, waits for it and closes the watcher. Events
// still inside the debounce window are dropped.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}
	if err := w.watcher.Close(); err != nil {
		w.log.Warn(context.Background(), "closing watcher", "error", err)
	}
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.log.Warn(ctx, "watcher error", "error", err)

		case now := <-ticker.C:
			for _, e := range w.due(now) {
				w.log.Debug(ctx, "card file event", "file", e.Name, "op", e.Op)
				w.notify(e)
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if !strings.HasSuffix(name, w.suffix) {
		return
	}

	var op Op
	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		op = Removed
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		op = Changed
	default:
		return
	}

	w.pending[name] = pending{op: op, seen: time.Now()}
}

// due removes and returns the events that have been quiet for the debounce
// window, in name order.
func (w *Watcher) due(now time.Time) []Event {
	var out []Event
	for name, p := range w.pending {
		if now.Sub(p.seen) < w.debounce {
			continue
		}
		out = append(out, Event{Name: name, Op: p.op})
		delete(w.pending, name)
	}
	slices.SortFunc(out, func(a, b Event) int { return strings.Compare(a.Name, b.Name) })
	return out
}
