package engine

import (
	"math/bits"

	"github.com/lgbarn/localchess-go/internal/chess"
)

// castleSide describes one castling direction.
type castleSide struct {
	dir      int // +1 towards the h-file, -1 towards the a-file
	rookDist int // files between the king and its rook
}

var castleSides = [...]castleSide{
	{dir: 1, rookDist: 3},
	{dir: -1, rookDist: 4},
}

// addSpecialMoves extends a pseudo-legal set with castling, en passant and
// promotion. A special move whose preconditions fail is simply left out.
func addSpecialMoves(board *chess.Board, from chess.Square, promotion chess.PieceType, set *MoveSet) {
	p := board.At(from)
	switch p.Type {
	case chess.Pawn:
		addEnPassant(board, from, p, set)
		markPromotions(p.Colour, promotion, set)
	case chess.King:
		addCastling(board, from, p, set)
	}
}

// NormalizePromotion maps an unusable promotion choice to the default.
func NormalizePromotion(t chess.PieceType) chess.PieceType {
	if t.Promotable() {
		return t
	}
	return chess.DefaultPromotion
}

func markPromotions(c chess.Colour, promotion chess.PieceType, set *MoveSet) {
	promotion = NormalizePromotion(promotion)
	lastRow := c.LastRow()
	for m := set.mask; m != 0; m &= m - 1 {
		to := chess.Square(bits.TrailingZeros64(m))
		if to.Row() != lastRow {
			continue
		}
		edit := &set.edits[to]
		if edit.Kind == chess.Capture {
			edit.Kind = chess.PromotionCapture
		} else {
			edit.Kind = chess.Promotion
		}
		edit.Promote = promotion
	}
}

// addEnPassant adds the capture onto the board's en passant target. Only the
// side to move may use it, on the ply right after the double push.
func addEnPassant(board *chess.Board, from chess.Square, p chess.Piece, set *MoveSet) {
	ep := board.EnPassant
	if !ep.Valid() || p.Colour != board.ToMove {
		return
	}
	if ep.Row() != from.Row()+p.Colour.Forward() || abs(ep.Col()-from.Col()) != 1 {
		return
	}
	victim := chess.SquareAt(ep.Col(), from.Row())
	if !board.At(victim).Is(p.Colour.Opposite(), chess.Pawn) || !board.At(ep).IsEmpty() {
		return
	}
	set.Add(ep, enPassantEdit(from, ep, victim))
}

func enPassantEdit(from, to, victim chess.Square) chess.Edit {
	edit := chess.SimpleEdit(chess.EnPassantCapture, from, to)
	edit.Victim = victim
	return edit
}

// addCastling adds castling destinations for an unmoved king on its home
// square. The rook squares it checks are then the home corners.
func addCastling(board *chess.Board, from chess.Square, king chess.Piece, set *MoveSet) {
	if king.MoveCount != 0 || from != kingHome(king.Colour) {
		return
	}
	enemy := king.Colour.Opposite()

	for _, side := range castleSides {
		rookSq := from.Offset(side.dir*side.rookDist, 0)
		rook := board.At(rookSq)
		if !rook.Is(king.Colour, chess.Rook) || rook.MoveCount != 0 {
			continue
		}
		if !pathEmpty(board, from, side) {
			continue
		}
		if !kingPathSafe(board, from, side.dir, enemy) {
			continue
		}
		dest := from.Offset(2*side.dir, 0)
		set.Add(dest, castleEdit(from, dest, rookSq, from.Offset(side.dir, 0)))
	}
}

// pathEmpty reports whether every square strictly between king and rook is empty.
func pathEmpty(board *chess.Board, from chess.Square, side castleSide) bool {
	for i := 1; i < side.rookDist; i++ {
		if !board.At(from.Offset(side.dir*i, 0)).IsEmpty() {
			return false
		}
	}
	return true
}

// kingPathSafe reports whether the king's origin, the square it crosses and
// the square it lands on are all free of attack.
func kingPathSafe(board *chess.Board, from chess.Square, dir int, enemy chess.Colour) bool {
	for i := 0; i <= 2; i++ {
		if Attacked(board, from.Offset(dir*i, 0), enemy) {
			return false
		}
	}
	return true
}

func castleEdit(kingFrom, kingTo, rookFrom, rookTo chess.Square) chess.Edit {
	return chess.Edit{
		Kind: chess.Castle,
		Transfers: [2]chess.Transfer{
			{From: kingFrom, To: kingTo},
			{From: rookFrom, To: rookTo},
		},
		NumTransfers: 2,
		Victim:       chess.NoSquare,
	}
}

// ResolveEdit builds the edit for a move already known to be legal, from board
// geometry alone. Strategies that find legal moves by other means use it to
// describe their results in the common form.
func ResolveEdit(board *chess.Board, from, to chess.Square, promotion chess.PieceType) chess.Edit {
	p := board.At(from)
	target := board.At(to)
	dc := to.Col() - from.Col()

	var edit chess.Edit
	switch {
	case p.Type == chess.King && abs(dc) == 2:
		dir := sign(dc)
		dist := castleSides[0].rookDist
		if dir < 0 {
			dist = castleSides[1].rookDist
		}
		return castleEdit(from, to, from.Offset(dir*dist, 0), from.Offset(dir, 0))
	case p.Type == chess.Pawn && dc != 0 && target.IsEmpty():
		return enPassantEdit(from, to, chess.SquareAt(to.Col(), from.Row()))
	case p.Type == chess.Pawn && abs(to.Row()-from.Row()) == 2:
		edit = chess.SimpleEdit(chess.DoublePush, from, to)
	case !target.IsEmpty():
		edit = chess.SimpleEdit(chess.Capture, from, to)
	default:
		edit = chess.SimpleEdit(chess.Quiet, from, to)
	}

	if p.Type == chess.Pawn && to.Row() == p.Colour.LastRow() {
		if edit.Kind == chess.Capture {
			edit.Kind = chess.PromotionCapture
		} else {
			edit.Kind = chess.Promotion
		}
		edit.Promote = NormalizePromotion(promotion)
	}
	return edit
}
