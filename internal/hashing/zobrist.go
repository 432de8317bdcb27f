// Package hashing provides Zobrist position hashing and a transposition
// table for perft subtree counts.
package hashing

import (
	"math/rand/v2"

	"github.com/lgbarn/localchess-go/internal/chess"
)

// Fixed seeds keep hashes stable across runs.
const (
	seedHi = 0x6c6f63616c636865
	seedLo = 0x7373207a6f627269
)

var (
	pieceKeys   [2][chess.King + 1][chess.NumSquares]uint64
	unmovedKeys [chess.NumSquares]uint64
	epKeys      [chess.NumSquares]uint64
	blackToMove uint64
)

func init() {
	rng := rand.New(rand.NewPCG(seedHi, seedLo))
	for c := range pieceKeys {
		for t := range pieceKeys[c] {
			for sq := range pieceKeys[c][t] {
				pieceKeys[c][t][sq] = rng.Uint64()
			}
		}
	}
	for sq := range unmovedKeys {
		unmovedKeys[sq] = rng.Uint64()
		epKeys[sq] = rng.Uint64()
	}
	blackToMove = rng.Uint64()
}

// Hash returns the Zobrist hash of board. Two boards with the same hash have
// the same legal moves for every piece: the key covers piece placement, the
// side to move, the en passant target and which kings and rooks have never
// moved. Clocks are not part of the key.
func Hash(board *chess.Board) uint64 {
	var h uint64
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		p := board.Squares[sq]
		if p.IsEmpty() {
			continue
		}
		h ^= pieceKeys[p.Colour][p.Type][sq]
		if p.MoveCount == 0 && (p.Type == chess.King || p.Type == chess.Rook) {
			h ^= unmovedKeys[sq]
		}
	}
	if board.EnPassant.Valid() {
		h ^= epKeys[board.EnPassant]
	}
	if board.ToMove == chess.Black {
		h ^= blackToMove
	}
	return h
}
