package engine

import (
	"math/bits"

	"github.com/lgbarn/localchess-go/internal/chess"
)

// LegalMoves returns the legal destinations of the piece on from, including
// castling, en passant and promotion, together with the check flags of the
// position as given. Pawn moves to the last rank promote to promotion.
//
// Each candidate is tried on a private scratch board; board itself is never
// modified.
func LegalMoves(board *chess.Board, from chess.Square, promotion chess.PieceType) (MoveSet, chess.Flags) {
	return legalMoves(board, from, promotion), CheckFlags(board)
}

func legalMoves(board *chess.Board, from chess.Square, promotion chess.PieceType) MoveSet {
	piece := board.At(from)
	if piece.IsEmpty() {
		return MoveSet{}
	}
	set, _ := PseudoLegalMoves(board, from)
	addSpecialMoves(board, from, promotion, &set)
	filterLegal(board, piece.Colour, &set)
	return set
}

// filterLegal drops every destination that leaves mover's king attacked.
// One scratch board is reused for all candidates and restored from the
// recorded diff after each.
func filterLegal(board *chess.Board, mover chess.Colour, set *MoveSet) {
	scratch := *board
	var undo chess.Undo
	for m := set.mask; m != 0; m &= m - 1 {
		to := chess.Square(bits.TrailingZeros64(m))
		edit := set.edits[to]
		undo.Begin(&scratch)
		applyEdit(&scratch, &edit, &undo)
		if InCheck(&scratch, mover) {
			set.Remove(to)
		}
		undo.Revert(&scratch)
	}
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func HasLegalMoves(board *chess.Board, colour chess.Colour) bool {
	return hasLegalMovesWith(Mailbox{}, board, colour)
}

func hasLegalMovesWith(s Strategy, board *chess.Board, colour chess.Colour) bool {
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		p := board.Squares[sq]
		if p.IsEmpty() || p.Colour != colour {
			continue
		}
		if set := s.LegalMoves(board, sq, chess.DefaultPromotion); !set.Empty() {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if colour is in check and none of its pieces has
// a legal move.
func IsCheckmate(board *chess.Board, colour chess.Colour) bool {
	return InCheck(board, colour) && !HasLegalMoves(board, colour)
}

// IsStalemate returns true if colour is not in check but has no legal move.
func IsStalemate(board *chess.Board, colour chess.Colour) bool {
	return IsStalemateWith(Mailbox{}, board, colour)
}

// IsStalemateWith is IsStalemate using a specific generation strategy.
func IsStalemateWith(s Strategy, board *chess.Board, colour chess.Colour) bool {
	return !InCheck(board, colour) && !hasLegalMovesWith(s, board, colour)
}

// Status returns the check flags of the position plus a checkmate flag for
// each colour that is in check without a legal reply.
func Status(board *chess.Board) chess.Flags {
	return StatusWith(Mailbox{}, board)
}

// StatusWith is Status using a specific generation strategy.
func StatusWith(s Strategy, board *chess.Board) chess.Flags {
	flags := CheckFlags(board)
	for _, c := range [...]chess.Colour{chess.White, chess.Black} {
		if flags.InCheck(c) && !hasLegalMovesWith(s, board, c) {
			flags = flags.With(chess.CheckmateFlag(c))
		}
	}
	return flags
}

// AllMoves returns every legal move of the side to move. A promotion is
// listed once per promotion piece.
func AllMoves(board *chess.Board) []chess.Move {
	return AllMovesWith(Mailbox{}, board)
}

// AllMovesWith is AllMoves using a specific generation strategy.
func AllMovesWith(s Strategy, board *chess.Board) []chess.Move {
	var moves []chess.Move
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		p := board.Squares[sq]
		if p.IsEmpty() || p.Colour != board.ToMove {
			continue
		}
		set := s.LegalMoves(board, sq, chess.DefaultPromotion)
		set.Each(func(to chess.Square, edit chess.Edit) {
			if !edit.Kind.IsPromotion() {
				moves = append(moves, chess.NewMove(sq, to))
				return
			}
			for _, promo := range chess.PromotionTypes {
				m := chess.NewMove(sq, to)
				m.Promotion = promo
				moves = append(moves, m)
			}
		})
	}
	return moves
}
