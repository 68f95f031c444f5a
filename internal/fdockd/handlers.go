package fdockd

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"folderdock/internal/core/watch"
	"folderdock/internal/launch"
	"folderdock/internal/model"
)

// Handlers answers control requests from a cached copy of the launcher
// state. The engine pushes fresh snapshots through SetEntries, so request
// handling never touches the engine itself.
type Handlers struct {
	folderName string
	root       string
	instanceID string
	startedAt  time.Time

	counters func() watch.CounterSnapshot
	opener   func(string) error

	mu      sync.RWMutex
	entries []model.Entry
}

func NewHandlers(folderName, root string, counters func() watch.CounterSnapshot) *Handlers {
	return &Handlers{
		folderName: folderName,
		root:       root,
		instanceID: uuid.NewString(),
		startedAt:  time.Now(),
		counters:   counters,
		opener:     launch.Open,
	}
}

// SetEntries replaces the cached state. Wire it as the engine's update
// callback.
func (h *Handlers) SetEntries(entries []model.Entry) {
	if h == nil {
		return
	}
	h.mu.Lock()
	h.entries = entries
	h.mu.Unlock()
}

func (h *Handlers) FolderInfo() (FolderInfoResult, error) {
	if h == nil {
		return FolderInfoResult{}, fmt.Errorf("handlers is nil")
	}

	h.mu.RLock()
	n := len(h.entries)
	h.mu.RUnlock()

	return FolderInfoResult{
		Name:       h.folderName,
		Root:       h.root,
		InstanceID: h.instanceID,
		StartedAt:  h.startedAt.Format(time.RFC3339),
		Entries:    n,
	}, nil
}

func (h *Handlers) StateList() ([]EntryInfo, error) {
	if h == nil {
		return nil, fmt.Errorf("handlers is nil")
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	return EntryInfos(h.entries), nil
}

// EntryCount reports the cached state size without copying it.
func (h *Handlers) EntryCount() int {
	if h == nil {
		return 0
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

func (h *Handlers) CountersGet() (watch.CounterSnapshot, error) {
	if h == nil {
		return watch.CounterSnapshot{}, fmt.Errorf("handlers is nil")
	}
	if h.counters == nil {
		return watch.CounterSnapshot{}, nil
	}
	return h.counters(), nil
}

// EntryOpen launches the given path, provided it is currently an item in
// the cached state. Paths outside the state are refused so the socket
// cannot be used to open arbitrary files.
func (h *Handlers) EntryOpen(p EntryOpenParams) (bool, error) {
	if h == nil {
		return false, fmt.Errorf("handlers is nil")
	}

	path := strings.TrimSpace(p.Path)

	h.mu.RLock()
	found := false
	for _, e := range h.entries {
		if it, ok := e.(model.Item); ok && it.Path == path {
			found = true
			break
		}
	}
	h.mu.RUnlock()

	if !found {
		return false, fmt.Errorf("no entry with path %q", path)
	}
	if err := h.opener(path); err != nil {
		return false, err
	}
	return true, nil
}
