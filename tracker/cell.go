package tracker

import (
	"sync"

	"komp/chord"
)

// Cell is the shared current-chord cell (C8): a mutex-protected single
// slot carrying the most recently detected chord. Writers: the input
// activity (via Tracker.Apply). Readers: the scheduler activity, once per
// slice. There is no FIFO or queueing semantics — a reader always sees the
// latest write.
type Cell struct {
	mu    sync.Mutex
	value chord.Chord
	set   bool
}

// Set replaces the cell's contents.
func (c *Cell) Set(ch chord.Chord) {
	c.mu.Lock()
	c.value = ch
	c.set = true
	c.mu.Unlock()
}

// Get returns the cell's contents and whether it has ever been set. When
// unset, the scheduler falls back to a default root per spec.md §7.
func (c *Cell) Get() (chord.Chord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.set
}
