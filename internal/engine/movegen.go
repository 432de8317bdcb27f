package engine

import "github.com/lgbarn/localchess-go/internal/chess"

// direction is a (file, row) step.
type direction struct {
	dc, dr int
}

var (
	straightDirs = []direction{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	diagonalDirs = []direction{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	royalDirs    = []direction{{0, -1}, {0, 1}, {-1, 0}, {1, 0}, {-1, -1}, {1, -1}, {-1, 1}, {1, 1}}
	knightJumps  = []direction{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// maxSlide bounds how far a sliding piece travels.
const maxSlide = chess.BoardSize - 1

// genMode selects what the generator records.
type genMode uint8

const (
	// modeMoves builds move entries and records king hits.
	modeMoves genMode = iota
	// modeCheckOnly records king hits only.
	modeCheckOnly
)

// captureMode says how a landing square may be occupied.
type captureMode uint8

const (
	// captureNone requires an empty square (pawn pushes).
	captureNone captureMode = iota
	// captureAllowed accepts an empty square or an enemy piece.
	captureAllowed
	// captureOnly requires an enemy piece (pawn diagonals).
	captureOnly
)

// generator enumerates pseudo-legal moves for one piece.
type generator struct {
	board *chess.Board
	from  chess.Square
	piece chess.Piece
	mode  genMode
	moves *MoveSet
	flags chess.Flags
}

// PseudoLegalMoves returns the moves of the piece on from that follow its
// movement pattern, without regard to the mover's own king. Landing on an
// enemy king is reported as a check flag instead of a move.
// Castling, en passant and promotion are not included.
func PseudoLegalMoves(board *chess.Board, from chess.Square) (MoveSet, chess.Flags) {
	var set MoveSet
	flags := generate(board, from, modeMoves, &set)
	return set, flags
}

// attackFlags runs the generator in check-only mode.
func attackFlags(board *chess.Board, from chess.Square) chess.Flags {
	return generate(board, from, modeCheckOnly, nil)
}

func generate(board *chess.Board, from chess.Square, mode genMode, set *MoveSet) chess.Flags {
	piece := board.At(from)
	if piece.IsEmpty() {
		return 0
	}
	g := generator{board: board, from: from, piece: piece, mode: mode, moves: set}

	switch piece.Type {
	case chess.Pawn:
		g.pawn()
	case chess.Knight:
		g.jumps(knightJumps)
	case chess.Bishop:
		g.slide(diagonalDirs, maxSlide)
	case chess.Rook:
		g.slide(straightDirs, maxSlide)
	case chess.Queen:
		g.slide(royalDirs, maxSlide)
	case chess.King:
		g.slide(royalDirs, 1)
	}
	return g.flags
}

// visit considers landing on sq and reports whether a ray may continue past it.
func (g *generator) visit(sq chess.Square, capture captureMode, kind chess.EditKind) bool {
	if !sq.Valid() {
		return false
	}
	occupant := g.board.Squares[sq]
	if occupant.IsEmpty() {
		if capture != captureOnly && g.mode == modeMoves {
			g.moves.Add(sq, chess.SimpleEdit(kind, g.from, sq))
		}
		return true
	}
	if occupant.Colour == g.piece.Colour || capture == captureNone {
		return false
	}
	if occupant.Type == chess.King {
		g.flags = g.flags.With(chess.CheckFlag(occupant.Colour))
		return false
	}
	if g.mode == modeMoves {
		g.moves.Add(sq, chess.SimpleEdit(chess.Capture, g.from, sq))
	}
	return false
}

// slide casts rays in every direction at once, one step per round. A bit in
// active is cleared as soon as its ray is resolved.
func (g *generator) slide(dirs []direction, maxDist int) {
	active := uint8(1<<len(dirs) - 1)
	for dist := 1; dist <= maxDist && active != 0; dist++ {
		for i, d := range dirs {
			if active&(1<<i) == 0 {
				continue
			}
			to := g.from.Offset(d.dc*dist, d.dr*dist)
			if !g.visit(to, captureAllowed, chess.Quiet) {
				active &^= 1 << i
			}
		}
	}
}

func (g *generator) jumps(offsets []direction) {
	for _, d := range offsets {
		g.visit(g.from.Offset(d.dc, d.dr), captureAllowed, chess.Quiet)
	}
}

func (g *generator) pawn() {
	fwd := g.piece.Colour.Forward()

	if g.mode == modeMoves {
		one := g.from.Offset(0, fwd)
		if g.visit(one, captureNone, chess.Quiet) && g.from.Row() == g.piece.Colour.PawnRow() {
			g.visit(g.from.Offset(0, 2*fwd), captureNone, chess.DoublePush)
		}
	}

	g.visit(g.from.Offset(-1, fwd), captureOnly, chess.Capture)
	g.visit(g.from.Offset(1, fwd), captureOnly, chess.Capture)
}
