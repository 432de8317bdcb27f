// Package perft counts legal move tree leaves in parallel. Each root move is
// one job for the worker pool; the recursion below it runs on the worker's
// own board copy.
package perft

import (
	"context"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/engine"
	"github.com/lgbarn/localchess-go/internal/errors"
	"github.com/lgbarn/localchess-go/internal/worker"
)

// Entry is the count below one root move.
type Entry struct {
	Move  chess.Move
	Nodes uint64
}

// Result is the outcome of a Run.
type Result struct {
	Depth   int
	Nodes   uint64
	Divide  []Entry // sorted by move; only with WithDivide
	Elapsed time.Duration
}

type options struct {
	workers  int
	divide   bool
	strategy engine.Strategy
	cache    engine.NodeCache
}

// Option configures Run.
type Option func(*options)

// WithWorkers sets the number of workers. Values below 1 select one worker
// per CPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.workers = n
		}
	}
}

// WithDivide records the count below every root move.
func WithDivide() Option {
	return func(o *options) { o.divide = true }
}

// WithStrategy selects the move generator.
func WithStrategy(s engine.Strategy) Option {
	return func(o *options) {
		if s != nil {
			o.strategy = s
		}
	}
}

// WithCache shares a subtree count cache between all workers.
func WithCache(c engine.NodeCache) Option {
	return func(o *options) { o.cache = c }
}

// Run counts the leaves of the legal move tree of depth below board. board
// is not modified. Once ctx is done no further root moves are started and
// Run returns ctx's error along with the partial count.
func Run(ctx context.Context, board *chess.Board, depth int, opts ...Option) (Result, error) {
	o := options{workers: runtime.NumCPU(), strategy: engine.Mailbox{}}
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	res := Result{Depth: depth}
	if depth <= 0 {
		res.Nodes = 1
		res.Elapsed = time.Since(start)
		return res, nil
	}

	moves := engine.AllMovesWith(o.strategy, board)
	var total atomic.Uint64

	process := func(item worker.WorkItem) worker.ProcessResult {
		nodes, ok := engine.PerftMove(o.strategy, &item.Board, item.Move, item.Depth, o.cache)
		r := worker.ProcessResult{Index: item.Index, Move: item.Move, Nodes: nodes}
		if !ok {
			r.Err = errors.Wrapf(errors.ErrIllegalMove, "root move %s", moveText(item.Move))
			return r
		}
		total.Add(nodes)
		return r
	}

	bufferSize := len(moves)
	if bufferSize < 1 {
		bufferSize = 1
	}
	pool := worker.NewPool(process, worker.WithWorkers(o.workers), worker.WithBufferSize(bufferSize))
	pool.Start(ctx)

	go func() {
		defer pool.Close()
		for i, m := range moves {
			if ctx.Err() != nil {
				pool.Stop()
				return
			}
			pool.Submit(worker.WorkItem{Index: i, Board: *board, Move: m, Depth: depth})
		}
	}()

	var firstErr error
	for r := range pool.Results() {
		if r.Err != nil && firstErr == nil {
			firstErr = r.Err
			pool.Stop()
		}
		if o.divide && r.Err == nil {
			res.Divide = append(res.Divide, Entry{Move: r.Move, Nodes: r.Nodes})
		}
	}

	res.Nodes = total.Load()
	res.Elapsed = time.Since(start)
	sort.Slice(res.Divide, func(i, j int) bool {
		return moveText(res.Divide[i].Move) < moveText(res.Divide[j].Move)
	})

	if firstErr != nil {
		return res, firstErr
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	return res, nil
}

// moveText is the coordinate form of a root move, with the promotion piece
// for promotions.
func moveText(m chess.Move) string {
	s := m.From.String() + m.To.String()
	if m.Promotion != chess.NoPiece {
		s += strings.ToLower(string(m.Promotion.Letter()))
	}
	return s
}
