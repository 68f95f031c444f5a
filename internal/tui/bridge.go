// Package tui renders the launcher folder as a full screen grid.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"folderdock/internal/model"
)

// StateMsg carries a fresh entry snapshot into the program loop.
type StateMsg struct {
	Entries []model.Entry
}

// Bridge adapts engine snapshots to bubble tea messages. A snapshot
// supersedes every earlier one, so a full channel evicts the stalest
// message rather than blocking the engine.
type Bridge struct {
	ch chan tea.Msg
}

func NewBridge() *Bridge {
	return &Bridge{ch: make(chan tea.Msg, 4)}
}

// Publish hands a snapshot to the UI without blocking the caller.
func (b *Bridge) Publish(entries []model.Entry) {
	if b == nil {
		return
	}
	msg := StateMsg{Entries: entries}
	for {
		select {
		case b.ch <- msg:
			return
		default:
		}
		select {
		case <-b.ch:
		default:
		}
	}
}

// ListenCmd blocks until the next snapshot arrives. Re-issue it after every
// StateMsg to keep the subscription alive.
func (b *Bridge) ListenCmd() tea.Cmd {
	if b == nil {
		return nil
	}
	return func() tea.Msg {
		return <-b.ch
	}
}
