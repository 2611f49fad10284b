package slots

import (
	"strings"
	"sync"
)

// cell is one output slot. Its mutex covers only the text field; it is
// locked for the duration of a single read or write and nothing else.
type cell struct {
	mu   sync.Mutex
	text string
}

// Board holds one output cell per producer in a bar group, addressable by
// the producer's position in the configured module list, plus the group's
// change event.
//
// Board is safe for concurrent use by one writer per cell and any number
// of readers. A cell that has never been written reads as the empty
// string.
type Board struct {
	cells   []cell
	changed chan struct{}
}

// NewBoard creates a [Board] with n empty cells.
//
// The change event channel has capacity one: notifications from producers
// that arrive while the aggregator is busy coalesce into a single pending
// wake. This is intentional — every wake triggers a full rebuild of the
// group, so collapsed notifications lose nothing.
func NewBoard(n int) *Board {
	return &Board{
		cells:   make([]cell, n),
		changed: make(chan struct{}, 1),
	}
}

// Len returns the number of cells on the board.
func (b *Board) Len() int {
	return len(b.cells)
}

// Write stores text in the cell at index i without signalling the change
// event. The write is atomic with respect to [Board.Read]: a reader
// observes either the previous value or the new one, never a partial
// string.
//
// Most callers want [Board.Publish]. Write exists for the startup path,
// where cells are seeded before the aggregator loop is running.
func (b *Board) Write(i int, text string) {
	c := &b.cells[i]
	c.mu.Lock()
	c.text = text
	c.mu.Unlock()
}

// Read returns the current content of the cell at index i.
func (b *Board) Read(i int) string {
	c := &b.cells[i]
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

// Publish stores text in the cell at index i and then signals the group's
// change event. The cell lock is released before the notification is
// sent, so a publisher never holds a lock the waking aggregator needs.
func (b *Board) Publish(i int, text string) {
	b.Write(i, text)
	b.Notify()
}

// Notify signals the group's change event without blocking. If a wake is
// already pending the notification is dropped; the aggregator reads every
// cell on each wake, so a coalesced notification is never a missed
// update.
func (b *Board) Notify() {
	select {
	case b.changed <- struct{}{}:
	default:
	}
}

// Changed returns the channel the group's aggregator waits on. Exactly
// one consumer should receive from it.
func (b *Board) Changed() <-chan struct{} {
	return b.changed
}

// Join reads every cell in index order and joins the contents with delim.
//
// The cells are read one at a time under their own locks, not as a single
// consistent snapshot: a producer writing while Join runs may be
// reflected in some cells and not others. That staleness window is bounded
// by the next change notification, which triggers another full rebuild.
func (b *Board) Join(delim string) string {
	parts := make([]string, len(b.cells))
	for i := range b.cells {
		parts[i] = b.Read(i)
	}
	return strings.Join(parts, delim)
}
