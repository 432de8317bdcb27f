package engine

import "github.com/lgbarn/localchess-go/internal/chess"

// CheckFlags reports which kings are attacked on the board.
// Every occupied square is visited so that all attackers are considered.
func CheckFlags(board *chess.Board) chess.Flags {
	return checkFlags(board, true, true)
}

// InCheck returns true if the given colour's king is attacked.
func InCheck(board *chess.Board, colour chess.Colour) bool {
	return checkFlags(board, colour == chess.White, colour == chess.Black).InCheck(colour)
}

// checkFlags scans the board for attacks on the selected kings.
func checkFlags(board *chess.Board, white, black bool) chess.Flags {
	var kings [2]chess.Square
	kings[chess.White], kings[chess.Black] = chess.NoSquare, chess.NoSquare
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		if p := board.Squares[sq]; p.Type == chess.King {
			kings[p.Colour] = sq
		}
	}
	if !white {
		kings[chess.White] = chess.NoSquare
	}
	if !black {
		kings[chess.Black] = chess.NoSquare
	}

	var flags chess.Flags
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		p := board.Squares[sq]
		if p.IsEmpty() {
			continue
		}
		target := kings[p.Colour.Opposite()]
		if target == chess.NoSquare || !mayAttack(p, sq, target) {
			continue
		}
		flags |= attackFlags(board, sq)
	}
	return flags
}

// mayAttack reports whether a piece on from could reach target given only
// their relative position. It never rejects a real attack.
func mayAttack(p chess.Piece, from, target chess.Square) bool {
	dc := target.Col() - from.Col()
	dr := target.Row() - from.Row()
	adc, adr := abs(dc), abs(dr)

	switch p.Type {
	case chess.Pawn:
		return dr == p.Colour.Forward() && adc == 1
	case chess.Knight:
		return adc*adr == 2
	case chess.Bishop:
		return adc == adr
	case chess.Rook:
		return dc == 0 || dr == 0
	case chess.Queen:
		return adc == adr || dc == 0 || dr == 0
	case chess.King:
		return adc <= 1 && adr <= 1
	}
	return false
}

// Attacked reports whether sq is attacked by colour by. The square is tested
// as if the defending king stood on it, so pieces the king would shield are
// not counted.
func Attacked(board *chess.Board, sq chess.Square, by chess.Colour) bool {
	if !sq.Valid() {
		return false
	}
	scratch := *board
	defender := by.Opposite()
	if k := scratch.FindKing(defender); k != chess.NoSquare {
		scratch.Clear(k)
	}
	scratch.Set(sq, chess.NewPiece(defender, chess.King))
	return InCheck(&scratch, defender)
}
