// Package bitboard provides a move generation strategy backed by the
// dragontoothmg bitboard generator. It registers itself with the engine
// under the name "bitboard"; import it for its side effect to make the name
// available to configuration.
//
// Results agree exactly with the mailbox strategy. The package exists to
// cross-check it and to serve callers that prefer a magic-bitboard
// generator for bulk work such as perft.
package bitboard

import (
	"sync"

	"github.com/dylhunn/dragontoothmg"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/engine"
)

// Name is the configuration name of the strategy.
const Name = "bitboard"

func init() {
	engine.RegisterStrategy(New())
}

// Strategy generates legal moves through dragontoothmg. The position is
// handed over as FEN, so the last generated move list is kept and reused
// while consecutive calls ask about the same board.
type Strategy struct {
	mu     sync.Mutex
	cached chess.Board
	valid  bool
	moves  []dragontoothmg.Move
}

// New returns a ready Strategy.
func New() *Strategy {
	return &Strategy{}
}

// Name implements engine.Strategy.
func (s *Strategy) Name() string { return Name }

// LegalMoves implements engine.Strategy. Pieces of the side not to move are
// generated as though it were their turn, with no en passant target.
func (s *Strategy) LegalMoves(board *chess.Board, from chess.Square, promotion chess.PieceType) engine.MoveSet {
	var set engine.MoveSet
	p := board.At(from)
	if p.IsEmpty() {
		return set
	}

	view := *board
	if view.ToMove != p.Colour {
		view.ToMove = p.Colour
		view.EnPassant = chess.NoSquare
	}

	origin := toIndex(from)
	for _, m := range s.generate(&view) {
		if m.From() != origin {
			continue
		}
		if promo := m.Promote(); promo != 0 && promo != dragontoothmg.Queen {
			continue
		}
		to := fromIndex(m.To())
		// A move onto a king only arises in positions where the side not
		// to move is in check; the mailbox generator reports those as
		// check, never as moves.
		if board.At(to).Type == chess.King {
			continue
		}
		set.Add(to, engine.ResolveEdit(board, from, to, promotion))
	}
	return set
}

// generate returns the legal moves of view, reusing the previous result when
// view has not changed.
func (s *Strategy) generate(view *chess.Board) []dragontoothmg.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.valid && s.cached == *view {
		return s.moves
	}
	b := dragontoothmg.ParseFen(engine.BoardToFEN(view))
	s.moves = b.GenerateLegalMoves()
	s.cached = *view
	s.valid = true
	return s.moves
}

// toIndex converts a square to dragontoothmg's little-endian rank-file index,
// where a1 is 0 and h8 is 63.
func toIndex(sq chess.Square) uint8 {
	return uint8((chess.BoardSize-1-sq.Row())*chess.BoardSize + sq.Col())
}

func fromIndex(idx uint8) chess.Square {
	return chess.SquareAt(int(idx)%chess.BoardSize, chess.BoardSize-1-int(idx)/chess.BoardSize)
}
