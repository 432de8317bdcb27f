// Package worker provides a worker pool that counts perft subtrees in
// parallel, one root move per work item.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/lgbarn/localchess-go/internal/chess"
)

// WorkItem is one root move to expand. Board is a private copy owned by the
// item, so workers never share a position.
type WorkItem struct {
	Index int // position of the move in the root move list
	Board chess.Board
	Move  chess.Move
	Depth int // remaining depth below Board, including Move
}

// ProcessResult is the leaf count below one root move.
type ProcessResult struct {
	Index int
	Move  chess.Move
	Nodes uint64
	Err   error
}

// ProcessFunc expands a single work item.
type ProcessFunc func(item WorkItem) ProcessResult

// Pool runs a fixed number of workers over a buffered work channel.
type Pool struct {
	numWorkers  int
	bufferSize  int
	workChan    chan WorkItem
	resultChan  chan ProcessResult
	processFunc ProcessFunc
	wg          sync.WaitGroup
	stopped     atomic.Bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithWorkers sets the number of worker goroutines.
func WithWorkers(n int) PoolOption {
	return func(p *Pool) {
		if n >= 1 {
			p.numWorkers = n
		}
	}
}

// WithBufferSize sets the channel buffer size.
func WithBufferSize(size int) PoolOption {
	return func(p *Pool) {
		if size >= 1 {
			p.bufferSize = size
		}
	}
}

// NewPool creates a pool. processFunc is required; by default there is one
// worker and a buffer of 10 items.
func NewPool(processFunc ProcessFunc, opts ...PoolOption) *Pool {
	p := &Pool{
		numWorkers:  1,
		bufferSize:  10,
		processFunc: processFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.workChan = make(chan WorkItem, p.bufferSize)
	p.resultChan = make(chan ProcessResult, p.bufferSize)
	return p
}

// Start launches the workers. Once ctx is done the pool behaves as if Stop
// had been called.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(ctx)
	}
}

// worker processes items until the work channel is closed. Items received
// after a stop are drained without being processed.
func (p *Pool) worker(ctx context.Context) {
	defer p.wg.Done()

	for item := range p.workChan {
		if ctx.Err() != nil {
			p.Stop()
		}
		if p.IsStopped() {
			continue
		}
		p.resultChan <- p.processFunc(item)
	}
}

// Submit queues a work item, blocking while the buffer is full.
func (p *Pool) Submit(item WorkItem) {
	p.workChan <- item
}

// TrySubmit queues a work item without blocking. It returns false if the
// buffer is full or the pool is stopped.
func (p *Pool) TrySubmit(item WorkItem) bool {
	if p.IsStopped() {
		return false
	}
	select {
	case p.workChan <- item:
		return true
	default:
		return false
	}
}

// Stop makes workers skip every item not yet started.
func (p *Pool) Stop() {
	p.stopped.Store(true)
}

// IsStopped reports whether Stop has been called.
func (p *Pool) IsStopped() bool {
	return p.stopped.Load()
}

// Close closes the work channel, waits for the workers and then closes the
// result channel.
func (p *Pool) Close() {
	close(p.workChan)
	p.wg.Wait()
	close(p.resultChan)
}

// Results returns the result channel.
func (p *Pool) Results() <-chan ProcessResult {
	return p.resultChan
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}
