package engine

import "github.com/lgbarn/localchess-go/internal/chess"

// Perform validates move against the legal moves of its origin and, if it is
// legal, commits it to board. It returns false and leaves the board unchanged
// for a malformed or illegal move. On a promotion, move.Promotion is set to
// the piece placed and move.WasPromoted to true.
func Perform(board *chess.Board, move *chess.Move) bool {
	return PerformWith(Mailbox{}, board, move)
}

// PerformWith is Perform using a specific generation strategy.
func PerformWith(s Strategy, board *chess.Board, move *chess.Move) bool {
	edit, ok := validate(s, board, move)
	if !ok {
		return false
	}
	commit(board, &edit, nil)
	if edit.Kind.IsPromotion() {
		move.Promotion = edit.Promote
		move.WasPromoted = true
	}
	return true
}

// IsLegal reports whether move could be performed on board.
func IsLegal(board *chess.Board, move chess.Move) bool {
	_, ok := validate(Mailbox{}, board, &move)
	return ok
}

func validate(s Strategy, board *chess.Board, move *chess.Move) (chess.Edit, bool) {
	if !move.WellFormed() {
		return chess.Edit{}, false
	}
	p := board.At(move.From)
	if p.IsEmpty() || p.Colour != board.ToMove {
		return chess.Edit{}, false
	}
	set := s.LegalMoves(board, move.From, move.Promotion)
	return set.Edit(move.To)
}

// applyEdit carries out the square changes of edit, incrementing the move
// count of every relocated piece. Touched squares are recorded in undo
// when it is not nil.
func applyEdit(board *chess.Board, edit *chess.Edit, undo *chess.Undo) {
	if edit.Victim.Valid() {
		if undo != nil {
			undo.Record(board, edit.Victim)
		}
		board.Squares[edit.Victim] = chess.Piece{}
	}
	for _, tr := range edit.Steps() {
		if undo != nil {
			undo.Record(board, tr.From)
			undo.Record(board, tr.To)
		}
		p := board.Squares[tr.From]
		p.MoveCount++
		board.Squares[tr.From] = chess.Piece{}
		board.Squares[tr.To] = p
	}
	if edit.Kind.IsPromotion() {
		board.Squares[edit.Transfers[0].To].Type = edit.Promote
	}
}

// commit applies edit and advances the clocks, en passant target and side
// to move.
func commit(board *chess.Board, edit *chess.Edit, undo *chess.Undo) {
	from := edit.Transfers[0].From
	mover := board.Squares[from]
	captured := edit.Kind == chess.EnPassantCapture || !board.Squares[edit.Transfers[0].To].IsEmpty()

	applyEdit(board, edit, undo)

	if mover.Type == chess.Pawn || captured {
		board.HalfmoveClock = 0
	} else {
		board.HalfmoveClock++
	}

	board.EnPassant = chess.NoSquare
	if edit.Kind == chess.DoublePush {
		board.EnPassant = from.Offset(0, mover.Colour.Forward())
	}

	if mover.Colour == chess.Black {
		board.MoveNumber++
	}
	board.ToMove = mover.Colour.Opposite()
}
