package hashing

import (
	"sync"

	"github.com/lgbarn/localchess-go/internal/chess"
)

// ThreadSafeTable wraps Table with mutex protection for concurrent access.
// It satisfies engine.NodeCache.
type ThreadSafeTable struct {
	table *Table
	mu    sync.RWMutex
}

// NewThreadSafeTable creates a new thread-safe table.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafeTable(maxCapacity int) *ThreadSafeTable {
	return &ThreadSafeTable{table: NewTable(maxCapacity)}
}

// Lookup returns the stored count for board at depth.
func (t *ThreadSafeTable) Lookup(board *chess.Board, depth int) (uint64, bool) {
	h := Hash(board)
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.lookup(h, depth)
}

// Store records the count for board at depth.
func (t *ThreadSafeTable) Store(board *chess.Board, depth int, nodes uint64) {
	h := Hash(board)
	t.mu.Lock()
	defer t.mu.Unlock()
	t.table.store(h, depth, nodes)
}

// Len returns the number of stored entries.
func (t *ThreadSafeTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Len()
}

// Hits returns the number of successful lookups.
func (t *ThreadSafeTable) Hits() uint64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.Hits()
}

// IsFull reports whether the capacity limit has been reached.
func (t *ThreadSafeTable) IsFull() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.table.IsFull()
}

// LoadFromTable copies entries from an existing table. Call before
// concurrent use.
func (t *ThreadSafeTable) LoadFromTable(other *Table) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, n := range other.entries {
		t.table.entries[k] = n
	}
}
