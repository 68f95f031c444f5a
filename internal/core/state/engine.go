// Package state owns the ordered entry list that mirrors the monitored
// folder.
package state

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"folderdock/internal/core/icon"
	"folderdock/internal/core/watch"
	"folderdock/internal/model"
)

type Options struct {
	// OnUpdate receives a copied snapshot after the initial scan and after
	// every mutating event. It is called from the engine's goroutine.
	OnUpdate func([]model.Entry)
}

// Engine owns the folder state. All mutation happens on the goroutine that
// calls Scan and Run; with a single writer the entry slice needs no lock.
// Other goroutines observe state only through OnUpdate snapshots.
type Engine struct {
	rootAbs  string
	resolver icon.Resolver
	opts     Options

	entries []model.Entry
}

func New(root string, r icon.Resolver, opts Options) (*Engine, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root is required")
	}
	if r == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	return &Engine{
		rootAbs:  filepath.Clean(rootAbs),
		resolver: r,
		opts:     opts,
	}, nil
}

func (e *Engine) Root() string {
	if e == nil {
		return ""
	}
	return e.rootAbs
}

// Scan builds the initial state: create the folder if absent, list its
// immediate children once, resolve an icon per child. One child failing
// becomes a ReadError in that child's position and the scan continues; an
// unlistable root makes the state exactly one ReadError and the scan stops.
func (e *Engine) Scan() {
	if err := os.MkdirAll(e.rootAbs, 0o755); err != nil {
		e.entries = []model.Entry{model.ReadError{Message: err.Error()}}
		e.notify()
		return
	}

	children, err := os.ReadDir(e.rootAbs)
	if err != nil {
		e.entries = []model.Entry{model.ReadError{Message: err.Error()}}
		e.notify()
		return
	}

	entries := make([]model.Entry, 0, len(children))
	for _, child := range children {
		entries = append(entries, e.entryFor(filepath.Join(e.rootAbs, child.Name())))
	}
	e.entries = entries
	e.notify()
}

// Fail replaces the whole state with a single read error. Folder setup can
// fail before the first scan; the failure then stands in for the listing.
func (e *Engine) Fail(message string) {
	e.entries = []model.Entry{model.ReadError{Message: message}}
	e.notify()
}

// Apply performs one state transition. It is not safe concurrently with a
// running Run loop; it exists for that loop and for single-threaded callers.
func (e *Engine) Apply(ev watch.Event) {
	switch ev := ev.(type) {
	case watch.Created:
		// No existence check: a second Created for the same path appends
		// a second entry.
		e.entries = append(e.entries, e.entryFor(ev.Path))
		e.notify()
	case watch.Removed:
		e.removePath(ev.Path)
	case watch.Modified:
		// Deliberate no-op. Content changes do not refresh icons.
	}
}

// Run is the single consumer: events apply one at a time, strictly in the
// order drained, until the context ends or the channel closes.
func (e *Engine) Run(ctx context.Context, events <-chan watch.Event) error {
	if e == nil {
		return fmt.Errorf("engine is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			e.Apply(ev)
		}
	}
}

// Snapshot copies the current state. Safe only before Run starts or on the
// goroutine running it; concurrent observers subscribe via OnUpdate.
func (e *Engine) Snapshot() []model.Entry {
	if e == nil {
		return nil
	}
	return model.CloneEntries(e.entries)
}

func (e *Engine) entryFor(path string) model.Entry {
	b, err := e.resolver.Resolve(path)
	if err != nil {
		return model.ReadError{Message: err.Error()}
	}
	return model.Item{Path: path, Icon: b}
}

// removePath drops every Item whose path matches exactly. ReadError entries
// carry no path and always survive. Removing an absent path changes nothing
// and publishes nothing.
func (e *Engine) removePath(path string) {
	changed := false
	kept := make([]model.Entry, 0, len(e.entries))
	for _, en := range e.entries {
		if it, ok := en.(model.Item); ok && it.Path == path {
			changed = true
			continue
		}
		kept = append(kept, en)
	}
	if !changed {
		return
	}
	e.entries = kept
	e.notify()
}

func (e *Engine) notify() {
	if e.opts.OnUpdate == nil {
		return
	}
	e.opts.OnUpdate(model.CloneEntries(e.entries))
}
