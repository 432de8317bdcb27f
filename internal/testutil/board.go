package testutil

import (
	"sort"
	"testing"

	"github.com/lgbarn/localchess-go/internal/chess"
)

// Squares converts algebraic names into squares. It panics on a bad name.
func Squares(names ...string) []chess.Square {
	out := make([]chess.Square, len(names))
	for i, n := range names {
		out[i] = chess.MustSquare(n)
	}
	return out
}

// SquareNames returns the sorted algebraic names of squares.
func SquareNames(squares []chess.Square) []string {
	out := make([]string, len(squares))
	for i, sq := range squares {
		out[i] = sq.String()
	}
	sort.Strings(out)
	return out
}

// AssertSquares compares a set of squares with the expected names,
// ignoring order.
func AssertSquares(t testing.TB, got []chess.Square, want ...string) {
	t.Helper()
	w := make([]string, len(want))
	copy(w, want)
	sort.Strings(w)
	AssertEqual(t, SquareNames(got), w)
}
