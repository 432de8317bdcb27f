package hashing

import (
	"sync/atomic"

	"github.com/lgbarn/localchess-go/internal/chess"
)

type tableKey struct {
	hash  uint64
	depth int
}

// Table memoizes perft subtree counts keyed by position hash and remaining
// depth. It is not safe for concurrent use; see ThreadSafeTable.
type Table struct {
	entries     map[tableKey]uint64
	maxCapacity int // 0 means unlimited
	hits        atomic.Uint64
	misses      atomic.Uint64
}

// NewTable creates a table holding at most maxCapacity entries.
// maxCapacity of 0 means unlimited capacity.
func NewTable(maxCapacity int) *Table {
	if maxCapacity < 0 {
		maxCapacity = 0
	}
	return &Table{
		entries:     make(map[tableKey]uint64),
		maxCapacity: maxCapacity,
	}
}

// Lookup returns the stored count for board at depth.
func (t *Table) Lookup(board *chess.Board, depth int) (uint64, bool) {
	return t.lookup(Hash(board), depth)
}

func (t *Table) lookup(hash uint64, depth int) (uint64, bool) {
	n, ok := t.entries[tableKey{hash, depth}]
	if ok {
		t.hits.Add(1)
	} else {
		t.misses.Add(1)
	}
	return n, ok
}

// Store records the count for board at depth. Once the table is full new
// positions are dropped; existing ones are still updated.
func (t *Table) Store(board *chess.Board, depth int, nodes uint64) {
	t.store(Hash(board), depth, nodes)
}

func (t *Table) store(hash uint64, depth int, nodes uint64) {
	key := tableKey{hash, depth}
	if _, ok := t.entries[key]; !ok && t.IsFull() {
		return
	}
	t.entries[key] = nodes
}

// Len returns the number of stored entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Hits returns the number of successful lookups.
func (t *Table) Hits() uint64 {
	return t.hits.Load()
}

// Misses returns the number of failed lookups.
func (t *Table) Misses() uint64 {
	return t.misses.Load()
}

// IsFull reports whether the capacity limit has been reached.
// Always returns false for unlimited capacity.
func (t *Table) IsFull() bool {
	return t.maxCapacity > 0 && len(t.entries) >= t.maxCapacity
}

// Reset clears the table and its statistics.
func (t *Table) Reset() {
	t.entries = make(map[tableKey]uint64)
	t.hits.Store(0)
	t.misses.Store(0)
}
