package chess

import (
	"fmt"

	"github.com/lgbarn/localchess-go/internal/errors"
)

// BoardSize is the number of files and ranks.
const BoardSize = 8

// NumSquares is the number of squares on the board.
const NumSquares = BoardSize * BoardSize

// Square is a board index, 8*row + col, with row 0 being black's back rank.
// a8 is 0 and h1 is 63.
type Square int8

// NoSquare is returned for any coordinate that falls off the board.
const NoSquare Square = -1

// SquareAt returns the square for a column and row, or NoSquare when either
// is out of range.
func SquareAt(col, row int) Square {
	if col < 0 || col >= BoardSize || row < 0 || row >= BoardSize {
		return NoSquare
	}
	return Square(row*BoardSize + col)
}

// Valid reports whether the square is on the board.
func (s Square) Valid() bool {
	return s >= 0 && s < NumSquares
}

// Col returns the file index, 0 for the a-file.
func (s Square) Col() int {
	return int(s) % BoardSize
}

// Row returns the row index, 0 for the eighth rank.
func (s Square) Row() int {
	return int(s) / BoardSize
}

// Offset returns the square dc files and dr rows away, or NoSquare.
func (s Square) Offset(dc, dr int) Square {
	if !s.Valid() {
		return NoSquare
	}
	return SquareAt(s.Col()+dc, s.Row()+dr)
}

// File returns the file letter.
func (s Square) File() byte {
	return byte('a' + s.Col())
}

// Rank returns the rank digit.
func (s Square) Rank() byte {
	return byte('8' - s.Row())
}

// String returns the algebraic name, e.g. "e4", or "-" for NoSquare.
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{s.File(), s.Rank()})
}

// ParseSquare converts an algebraic name such as "e4" into a Square.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return NoSquare, fmt.Errorf("%q: %w", name, errors.ErrInvalidSquare)
	}
	f, r := name[0], name[1]
	if f < 'a' || f > 'h' || r < '1' || r > '8' {
		return NoSquare, fmt.Errorf("%q: %w", name, errors.ErrInvalidSquare)
	}
	return SquareAt(int(f-'a'), int('8'-r)), nil
}

// MustSquare is like ParseSquare but panics on a bad name.
// It is intended for constants and tests.
func MustSquare(name string) Square {
	sq, err := ParseSquare(name)
	if err != nil {
		panic(err)
	}
	return sq
}
