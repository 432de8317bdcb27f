package engine

import (
	"math/bits"

	"github.com/lgbarn/localchess-go/internal/chess"
)

// MoveSet maps destination squares to the edit that reaches them.
// It is indexed by square, with a presence mask marking which entries hold
// a move. The zero value is an empty set.
type MoveSet struct {
	mask  uint64
	edits [chess.NumSquares]chess.Edit
}

// Add records the edit reaching to, replacing any earlier entry.
func (s *MoveSet) Add(to chess.Square, edit chess.Edit) {
	if !to.Valid() {
		return
	}
	s.edits[to] = edit
	s.mask |= 1 << uint(to)
}

// Remove deletes the entry for to.
func (s *MoveSet) Remove(to chess.Square) {
	if to.Valid() {
		s.mask &^= 1 << uint(to)
	}
}

// Contains reports whether to is a destination in the set.
func (s *MoveSet) Contains(to chess.Square) bool {
	return to.Valid() && s.mask&(1<<uint(to)) != 0
}

// Edit returns the edit reaching to.
func (s *MoveSet) Edit(to chess.Square) (chess.Edit, bool) {
	if !s.Contains(to) {
		return chess.Edit{}, false
	}
	return s.edits[to], true
}

// Len returns the number of destinations.
func (s *MoveSet) Len() int {
	return bits.OnesCount64(s.mask)
}

// Empty reports whether the set has no destinations.
func (s *MoveSet) Empty() bool {
	return s.mask == 0
}

// Mask returns the presence mask, bit i set for square i.
func (s *MoveSet) Mask() uint64 {
	return s.mask
}

// Destinations returns the destination squares in ascending order.
func (s *MoveSet) Destinations() []chess.Square {
	out := make([]chess.Square, 0, s.Len())
	for m := s.mask; m != 0; m &= m - 1 {
		out = append(out, chess.Square(bits.TrailingZeros64(m)))
	}
	return out
}

// Each calls fn for every destination in ascending order.
func (s *MoveSet) Each(fn func(to chess.Square, edit chess.Edit)) {
	for m := s.mask; m != 0; m &= m - 1 {
		to := chess.Square(bits.TrailingZeros64(m))
		fn(to, s.edits[to])
	}
}
