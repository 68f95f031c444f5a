// Package watch monitors one directory tree recursively and publishes
// classified events to a single bounded channel.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// DefaultQueueSize is the capacity of the event channel.
const DefaultQueueSize = 16

// Overflow selects what a publisher does when the event channel is full.
type Overflow int

const (
	// Block parks the detached publisher until the consumer drains a slot.
	Block Overflow = iota
	// DropOldest evicts the head of the queue to admit the new event.
	DropOldest
	// DropNewest discards the new event and keeps the queue as is.
	DropNewest
)

func (o Overflow) String() string {
	switch o {
	case Block:
		return "block"
	case DropOldest:
		return "drop-oldest"
	case DropNewest:
		return "drop-newest"
	default:
		return fmt.Sprintf("overflow(%d)", int(o))
	}
}

// ParseOverflow maps a configuration string to a policy.
func ParseOverflow(s string) (Overflow, error) {
	switch strings.TrimSpace(s) {
	case "", "block":
		return Block, nil
	case "drop-oldest":
		return DropOldest, nil
	case "drop-newest":
		return DropNewest, nil
	default:
		return Block, fmt.Errorf("invalid overflow policy %q (expected: block|drop-oldest|drop-newest)", s)
	}
}

type Options struct {
	QueueSize int
	Overflow  Overflow
}

// Watcher owns a recursive fsnotify subscription over one root. Raw
// notifications are classified on the dispatch goroutine and handed to
// detached publishers; the dispatch loop itself never blocks on the queue.
// Delivery order between two racing publishers is not guaranteed beyond
// the order the OS reported the underlying notifications.
type Watcher struct {
	rootAbs  string
	opts     Options
	events   chan Event
	counters Counters

	watcher   *fsnotify.Watcher
	closeOnce sync.Once
	closed    chan struct{}
}

func New(root string, opts Options) (*Watcher, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root is required")
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	rootAbs = filepath.Clean(rootAbs)

	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		rootAbs: rootAbs,
		opts:    opts,
		events:  make(chan Event, opts.QueueSize),
		watcher: fsw,
		closed:  make(chan struct{}),
	}

	if err := w.addExistingDirs(); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return w, nil
}

// Events returns the bounded event channel. It is never closed; the stream
// ends only with the process (or Close during shutdown, after which no new
// events are published).
func (w *Watcher) Events() <-chan Event {
	if w == nil {
		return nil
	}
	return w.events
}

func (w *Watcher) Counters() *Counters {
	if w == nil {
		return nil
	}
	return &w.counters
}

func (w *Watcher) Root() string {
	if w == nil {
		return ""
	}
	return w.rootAbs
}

// Close tears the subscription down. A launcher session never stops its
// watch; this exists for daemon shutdown and tests.
func (w *Watcher) Close() error {
	if w == nil {
		return nil
	}

	w.closeOnce.Do(func() { close(w.closed) })

	if w.watcher == nil {
		return nil
	}
	return w.watcher.Close()
}

// Run pumps raw notifications until the context ends, Close is called, or
// the OS watch fails. Classification happens inline; the possibly blocking
// channel send does not, so each raw notification is handled quickly.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.watcher == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.closed:
			return nil
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}

func (w *Watcher) addExistingDirs() error {
	return filepath.WalkDir(w.rootAbs, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(p)
	})
}

func (w *Watcher) addDirRecursive(absDir string) error {
	absDir = filepath.Clean(absDir)

	return filepath.WalkDir(absDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return w.watcher.Add(p)
	})
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if ev.Op&(fsnotify.Create|fsnotify.Rename) != 0 {
		// A new directory (created or renamed in) starts a subtree that
		// must report too. A rename-out stats as gone and skips this.
		if st, err := os.Stat(ev.Name); err == nil && st.IsDir() {
			_ = w.addDirRecursive(ev.Name)
		}
	}

	out, ok := classify(ev.Op, ev.Name)
	if !ok {
		return
	}
	go w.publish(out)
}

// classify maps one raw notification to at most one event. Creations and
// rename-ins surface as Created, removals and rename-outs as Removed, and
// content or attribute changes as a path-less Modified. Anything else is
// dropped.
func classify(op fsnotify.Op, path string) (Event, bool) {
	switch {
	case op&fsnotify.Create != 0:
		return Created{Path: path}, true
	case op&fsnotify.Remove != 0:
		return Removed{Path: path}, true
	case op&fsnotify.Rename != 0:
		return Removed{Path: path}, true
	case op&fsnotify.Write != 0:
		return Modified{}, true
	case op&fsnotify.Chmod != 0:
		return Modified{}, true
	}
	return nil, false
}

// publish runs on its own goroutine, applying the overflow policy when the
// queue is full. Under Block this is where backpressure parks publishers.
func (w *Watcher) publish(ev Event) {
	switch w.opts.Overflow {
	case DropNewest:
		select {
		case w.events <- ev:
			w.counters.countPublished(ev)
		default:
			w.counters.droppedNew.Add(1)
		}
	case DropOldest:
		for {
			select {
			case w.events <- ev:
				w.counters.countPublished(ev)
				return
			default:
			}
			select {
			case <-w.events:
				w.counters.droppedOld.Add(1)
			default:
			}
		}
	default: // Block
		select {
		case w.events <- ev:
			w.counters.countPublished(ev)
		default:
			w.counters.stalls.Add(1)
			w.events <- ev
			w.counters.countPublished(ev)
		}
	}
}
