// Package engine provides chess move generation, validation and board
// manipulation.
package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// minFENFields is the number of fields a FEN string must have.
const minFENFields = 4

// castleRight ties a FEN castling letter to the rook it depends on.
type castleRight struct {
	letter byte
	colour chess.Colour
	rookSq chess.Square
}

// castleRights lists the rights in FEN order.
var castleRights = [...]castleRight{
	{'K', chess.White, chess.SquareAt(7, 7)},
	{'Q', chess.White, chess.SquareAt(0, 7)},
	{'k', chess.Black, chess.SquareAt(7, 0)},
	{'q', chess.Black, chess.SquareAt(0, 0)},
}

// kingHome is the e-file square a colour's king castles from.
func kingHome(c chess.Colour) chess.Square {
	return chess.SquareAt(4, c.HomeRow())
}

// NewBoardFromFEN creates a board from a FEN string. At least the placement,
// side to move, castling and en passant fields are required; missing clocks
// default to 0 and 1.
//
// Castling rights are carried by move counts: a right that is absent marks
// its rook as having moved, and a colour with no rights at all has its king
// marked as moved too.
func NewBoardFromFEN(fen string) (*chess.Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < minFENFields {
		return nil, &errors.ParseError{
			Err:   errors.ErrInvalidFEN,
			Input: fen,
			Field: fmt.Sprintf("expected at least %d fields, got %d", minFENFields, len(parts)),
		}
	}

	board := chess.NewBoard()

	if err := parsePiecePositions(board, parts[0]); err != nil {
		return nil, err
	}
	if err := parseSideToMove(board, parts[1]); err != nil {
		return nil, err
	}
	if err := parseCastlingRights(board, parts[2]); err != nil {
		return nil, err
	}
	if err := parseEnPassant(board, parts[3]); err != nil {
		return nil, err
	}
	if err := parseClocks(board, parts[4:]); err != nil {
		return nil, err
	}

	return board, nil
}

func fieldError(field, got string) error {
	return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: field, Got: got}
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(board *chess.Board, positions string) error {
	ranks := strings.Split(positions, "/")
	if len(ranks) != chess.BoardSize {
		return fieldError("piece placement", positions)
	}

	for row, rank := range ranks {
		col := 0
		for i := 0; i < len(rank); i++ {
			c := rank[i]
			if c >= '1' && c <= '8' {
				col += int(c - '0')
				continue
			}
			t := chess.PieceTypeFromLetter(c)
			if t == chess.NoPiece {
				return fieldError("piece placement", string(c))
			}
			sq := chess.SquareAt(col, row)
			if sq == chess.NoSquare {
				return fieldError("piece placement", rank)
			}
			colour := chess.White
			if c >= 'a' {
				colour = chess.Black
			}
			board.Set(sq, chess.NewPiece(colour, t))
			col++
		}
		if col != chess.BoardSize {
			return fieldError("piece placement", rank)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(board *chess.Board, field string) error {
	switch field {
	case "w":
		board.ToMove = chess.White
	case "b":
		board.ToMove = chess.Black
	default:
		return fieldError("side to move", field)
	}
	return nil
}

// parseCastlingRights parses the castling availability field and marks the
// pieces whose rights are missing as moved.
func parseCastlingRights(board *chess.Board, field string) error {
	var present [len(castleRights)]bool
	if field != "-" {
		for i := 0; i < len(field); i++ {
			idx := strings.IndexByte("KQkq", field[i])
			if idx < 0 {
				return fieldError("castling rights", field)
			}
			present[idx] = true
		}
	}

	for i, right := range castleRights {
		if present[i] {
			continue
		}
		markMoved(board, right.rookSq, right.colour, chess.Rook)
	}
	for _, c := range [...]chess.Colour{chess.White, chess.Black} {
		base := 0
		if c == chess.Black {
			base = 2
		}
		if !present[base] && !present[base+1] {
			if k := board.FindKing(c); k != chess.NoSquare {
				markMoved(board, k, c, chess.King)
			}
		}
	}
	return nil
}

func markMoved(board *chess.Board, sq chess.Square, c chess.Colour, t chess.PieceType) {
	if p := board.At(sq); p.Is(c, t) && p.MoveCount == 0 {
		p.MoveCount = 1
		board.Set(sq, p)
	}
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(board *chess.Board, field string) error {
	board.EnPassant = chess.NoSquare
	if field == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(field)
	if err != nil {
		return &errors.ParseError{Err: errors.ErrInvalidFEN, Field: "en passant", Got: field}
	}
	if sq.Row() != 2 && sq.Row() != 5 {
		return fieldError("en passant", field)
	}
	board.EnPassant = sq
	return nil
}

// parseClocks parses the optional halfmove clock and fullmove number fields.
func parseClocks(board *chess.Board, fields []string) error {
	if len(fields) >= 1 {
		n, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return fieldError("halfmove clock", fields[0])
		}
		board.HalfmoveClock = uint(n)
	}
	if len(fields) >= 2 {
		n, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil || n == 0 {
			return fieldError("fullmove number", fields[1])
		}
		board.MoveNumber = uint(n)
	}
	return nil
}

// BoardToFEN converts a board to a FEN string.
func BoardToFEN(board *chess.Board) string {
	var sb strings.Builder

	writePiecePositions(&sb, board)
	sb.WriteByte(' ')
	writeSideToMove(&sb, board)
	sb.WriteByte(' ')
	writeCastlingRights(&sb, board)
	sb.WriteByte(' ')
	sb.WriteString(board.EnPassant.String())
	fmt.Fprintf(&sb, " %d %d", board.HalfmoveClock, board.MoveNumber)

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, board *chess.Board) {
	for row := 0; row < chess.BoardSize; row++ {
		emptyCount := 0
		for col := 0; col < chess.BoardSize; col++ {
			piece := board.At(chess.SquareAt(col, row))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.FENLetter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if row < chess.BoardSize-1 {
			sb.WriteByte('/')
		}
	}
}

// writeSideToMove writes the side to move to the builder.
func writeSideToMove(sb *strings.Builder, board *chess.Board) {
	if board.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
}

// writeCastlingRights derives the castling field from unmoved kings and
// rooks on their home squares.
func writeCastlingRights(sb *strings.Builder, board *chess.Board) {
	hasCastling := false
	for _, right := range castleRights {
		king := board.At(kingHome(right.colour))
		rook := board.At(right.rookSq)
		if king.Is(right.colour, chess.King) && king.MoveCount == 0 &&
			rook.Is(right.colour, chess.Rook) && rook.MoveCount == 0 {
			sb.WriteByte(right.letter)
			hasCastling = true
		}
	}
	if !hasCastling {
		sb.WriteByte('-')
	}
}

// NewInitialBoard creates a board with the standard starting position.
func NewInitialBoard() *chess.Board {
	board := chess.NewBoard()
	board.SetupInitialPosition()
	return board
}
