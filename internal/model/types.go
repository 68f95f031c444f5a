// Package model holds the folder-state entry types shared by the sync
// engine, the control socket, and the views.
package model

import "folderdock/internal/core/icon"

// Entry is one row of folder state: a launchable item or a captured read
// failure. The implementation set is closed; consumers switch exhaustively
// on the concrete type.
type Entry interface {
	isEntry()
}

// Item is a launchable file or folder with its resolved icon.
type Item struct {
	Path string
	Icon icon.Bitmap
}

// ReadError captures a directory or icon read failure in place of the entry
// that failed. It carries no path and is never matched by removals.
type ReadError struct {
	Message string
}

func (Item) isEntry()      {}
func (ReadError) isEntry() {}

// CloneEntries copies a published snapshot. Entries are treated as
// immutable once appended, so copying the slice header layer is enough.
func CloneEntries(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
