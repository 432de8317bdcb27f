package engine

import "github.com/lgbarn/localchess-go/internal/chess"

// Perft counts the leaf nodes of the legal move tree of the given depth.
func Perft(board *chess.Board, depth int) uint64 {
	return PerftWith(Mailbox{}, board, depth)
}

// PerftWith is Perft using a specific generation strategy.
// The count runs on a private copy of board.
func PerftWith(s Strategy, board *chess.Board, depth int) uint64 {
	return PerftCached(s, board, depth, nil)
}

// NodeCache memoizes subtree counts by position and remaining depth.
// Implementations must be safe for concurrent use.
type NodeCache interface {
	Lookup(board *chess.Board, depth int) (uint64, bool)
	Store(board *chess.Board, depth int, nodes uint64)
}

// PerftCached is PerftWith consulting cache for every interior node.
// A nil cache disables memoization.
func PerftCached(s Strategy, board *chess.Board, depth int, cache NodeCache) uint64 {
	if depth <= 0 {
		return 1
	}
	scratch := *board
	return perft(s, &scratch, depth, cache)
}

// perft walks the tree on one working board, undoing each move by its
// recorded diff.
func perft(s Strategy, b *chess.Board, depth int, cache NodeCache) uint64 {
	if cache != nil && depth > 1 {
		if n, ok := cache.Lookup(b, depth); ok {
			return n
		}
	}
	var nodes uint64
	var undo chess.Undo
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		p := b.Squares[sq]
		if p.IsEmpty() || p.Colour != b.ToMove {
			continue
		}
		set := s.LegalMoves(b, sq, chess.DefaultPromotion)
		set.Each(func(_ chess.Square, edit chess.Edit) {
			variants := 1
			if edit.Kind.IsPromotion() {
				variants = len(chess.PromotionTypes)
			}
			if depth == 1 {
				nodes += uint64(variants)
				return
			}
			for i := 0; i < variants; i++ {
				if edit.Kind.IsPromotion() {
					edit.Promote = chess.PromotionTypes[i]
				}
				undo.Begin(b)
				commit(b, &edit, &undo)
				nodes += perft(s, b, depth-1, cache)
				undo.Revert(b)
			}
		})
	}
	if cache != nil && depth > 1 {
		cache.Store(b, depth, nodes)
	}
	return nodes
}

// PerftMove counts the leaves below one root move. It is the unit of work
// handed to parallel callers; board is not modified. cache may be nil.
func PerftMove(s Strategy, board *chess.Board, move chess.Move, depth int, cache NodeCache) (uint64, bool) {
	scratch := *board
	if !PerformWith(s, &scratch, &move) {
		return 0, false
	}
	return PerftCached(s, &scratch, depth-1, cache), true
}
