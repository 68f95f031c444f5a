package watch

import "sync/atomic"

// Counters tracks the publish side of a watcher. A full queue under the
// blocking policy stalls detached publishers with no user-visible signal,
// so the stall and drop totals exist to make that observable.
type Counters struct {
	published  atomic.Uint64
	created    atomic.Uint64
	removed    atomic.Uint64
	modified   atomic.Uint64
	stalls     atomic.Uint64
	droppedOld atomic.Uint64
	droppedNew atomic.Uint64
}

// CounterSnapshot is a point-in-time copy of a watcher's counters.
type CounterSnapshot struct {
	Published     uint64 `json:"published"`
	Created       uint64 `json:"created"`
	Removed       uint64 `json:"removed"`
	Modified      uint64 `json:"modified"`
	Stalls        uint64 `json:"stalls"`
	DroppedOldest uint64 `json:"dropped_oldest"`
	DroppedNewest uint64 `json:"dropped_newest"`
}

func (c *Counters) Snapshot() CounterSnapshot {
	if c == nil {
		return CounterSnapshot{}
	}
	return CounterSnapshot{
		Published:     c.published.Load(),
		Created:       c.created.Load(),
		Removed:       c.removed.Load(),
		Modified:      c.modified.Load(),
		Stalls:        c.stalls.Load(),
		DroppedOldest: c.droppedOld.Load(),
		DroppedNewest: c.droppedNew.Load(),
	}
}

func (c *Counters) countPublished(ev Event) {
	c.published.Add(1)
	switch ev.(type) {
	case Created:
		c.created.Add(1)
	case Removed:
		c.removed.Add(1)
	case Modified:
		c.modified.Add(1)
	}
}
