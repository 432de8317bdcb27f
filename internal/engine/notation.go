package engine

import (
	"fmt"
	"strings"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/errors"
)

// sanMove is the parsed shape of a SAN move before it is matched against the
// legal moves of the position.
type sanMove struct {
	piece     chess.PieceType
	fromCol   int // -1 when not given
	fromRow   int // -1 when not given
	to        chess.Square
	promotion chess.PieceType
	castle    int // +1 kingside, -1 queenside, 0 otherwise
}

// ParseMove resolves move text for the side to move on board. It accepts
// coordinate notation ("e2e4", "e7e8q") and a SAN subset ("Nf3", "exd5",
// "Rad1", "e8=Q", "O-O", "O-O-O"). Check and annotation suffixes are ignored.
// promotion is used when the text names none.
//
// The text must match exactly one legal move; otherwise the error wraps
// ErrInvalidMoveText, ErrUnresolvedMove or ErrAmbiguousMove.
func ParseMove(board *chess.Board, text string, promotion chess.PieceType) (chess.Move, error) {
	return ParseMoveWith(Mailbox{}, board, text, promotion)
}

// ParseMoveWith is ParseMove using a specific generation strategy.
func ParseMoveWith(s Strategy, board *chess.Board, text string, promotion chess.PieceType) (chess.Move, error) {
	clean := strings.TrimRight(strings.TrimSpace(text), "+#!?")
	if clean == "" {
		return chess.Move{}, &errors.MoveError{Err: errors.ErrInvalidMoveText, Text: text}
	}

	if m, ok := parseUCI(clean); ok {
		if m.Promotion == chess.NoPiece {
			m.Promotion = promotion
		}
		if _, legal := validate(s, board, &m); !legal {
			return chess.Move{}, &errors.MoveError{
				Err: errors.ErrUnresolvedMove, Text: text, From: m.From.String(), To: m.To.String(),
			}
		}
		return m, nil
	}

	san, err := parseSAN(clean)
	if err != nil {
		return chess.Move{}, &errors.MoveError{Err: err, Text: text}
	}
	if san.promotion == chess.NoPiece {
		san.promotion = promotion
	}
	m, err := resolveSAN(s, board, san)
	if err != nil {
		return chess.Move{}, &errors.MoveError{Err: err, Text: text}
	}
	return m, nil
}

// parseUCI recognises 4 or 5 character coordinate notation.
func parseUCI(text string) (chess.Move, bool) {
	if len(text) != 4 && len(text) != 5 {
		return chess.Move{}, false
	}
	from, err := chess.ParseSquare(text[0:2])
	if err != nil {
		return chess.Move{}, false
	}
	to, err := chess.ParseSquare(text[2:4])
	if err != nil {
		return chess.Move{}, false
	}
	m := chess.NewMove(from, to)
	if len(text) == 5 {
		promo := chess.PieceTypeFromLetter(text[4])
		if !promo.Promotable() {
			return chess.Move{}, false
		}
		m.Promotion = promo
	}
	return m, true
}

// parseSAN splits SAN text into its parts without consulting the board.
func parseSAN(text string) (sanMove, error) {
	san := sanMove{fromCol: -1, fromRow: -1, to: chess.NoSquare}

	switch text {
	case "O-O", "0-0":
		san.piece, san.castle = chess.King, 1
		return san, nil
	case "O-O-O", "0-0-0":
		san.piece, san.castle = chess.King, -1
		return san, nil
	}

	s := text
	san.piece = chess.Pawn
	if t := chess.PieceTypeFromLetter(s[0]); t != chess.NoPiece && s[0] >= 'A' && s[0] <= 'Z' {
		san.piece = t
		s = s[1:]
	}

	// Promotion suffix: "=Q" or a trailing piece letter.
	if n := len(s); n >= 2 && san.piece == chess.Pawn {
		last := s[n-1]
		if t := chess.PieceTypeFromLetter(last); t != chess.NoPiece && last >= 'A' && last <= 'Z' {
			if !t.Promotable() {
				return san, fmt.Errorf("promotion to %v: %w", t, errors.ErrInvalidMoveText)
			}
			san.promotion = t
			s = strings.TrimSuffix(s[:n-1], "=")
		}
	}

	if len(s) < 2 {
		return san, errors.ErrInvalidMoveText
	}
	to, err := chess.ParseSquare(s[len(s)-2:])
	if err != nil {
		return san, errors.ErrInvalidMoveText
	}
	san.to = to

	prefix := strings.Replace(s[:len(s)-2], "x", "", 1)
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		switch {
		case c >= 'a' && c <= 'h' && san.fromCol < 0:
			san.fromCol = int(c - 'a')
		case c >= '1' && c <= '8' && san.fromRow < 0:
			san.fromRow = int('8' - c)
		default:
			return san, errors.ErrInvalidMoveText
		}
	}
	// A pawn named without a file pushes along its own file.
	if san.piece == chess.Pawn && san.fromCol < 0 {
		san.fromCol = san.to.Col()
	}
	return san, nil
}

// resolveSAN finds the single legal move matching san.
func resolveSAN(s Strategy, board *chess.Board, san sanMove) (chess.Move, error) {
	if san.castle != 0 {
		from := board.FindKing(board.ToMove)
		m := chess.NewMove(from, from.Offset(2*san.castle, 0))
		if _, ok := validate(s, board, &m); !ok {
			return chess.Move{}, errors.ErrUnresolvedMove
		}
		return m, nil
	}

	var found []chess.Move
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		p := board.Squares[sq]
		if !p.Is(board.ToMove, san.piece) {
			continue
		}
		if san.fromCol >= 0 && sq.Col() != san.fromCol {
			continue
		}
		if san.fromRow >= 0 && sq.Row() != san.fromRow {
			continue
		}
		set := s.LegalMoves(board, sq, san.promotion)
		if set.Contains(san.to) {
			m := chess.NewMove(sq, san.to)
			m.Promotion = san.promotion
			found = append(found, m)
		}
	}

	switch len(found) {
	case 0:
		return chess.Move{}, errors.ErrUnresolvedMove
	case 1:
		return found[0], nil
	}
	names := make([]string, len(found))
	for i, m := range found {
		names[i] = m.From.String()
	}
	return chess.Move{}, fmt.Errorf("candidates %s: %w", strings.Join(names, ", "), errors.ErrAmbiguousMove)
}

// FormatSAN renders a legal move in SAN for the position before it is played,
// with the minimal disambiguation and a "+" or "#" suffix.
func FormatSAN(board *chess.Board, move chess.Move) string {
	p := board.At(move.From)
	set := legalMoves(board, move.From, move.Promotion)
	edit, ok := set.Edit(move.To)
	if !ok {
		return move.UCI()
	}

	var sb strings.Builder
	switch {
	case edit.Kind == chess.Castle && move.To.Col() > move.From.Col():
		sb.WriteString("O-O")
	case edit.Kind == chess.Castle:
		sb.WriteString("O-O-O")
	case p.Type == chess.Pawn:
		if edit.Kind.IsCapture() {
			sb.WriteByte(move.From.File())
			sb.WriteByte('x')
		}
		sb.WriteString(move.To.String())
		if edit.Kind.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte(edit.Promote.Letter())
		}
	default:
		sb.WriteByte(p.Type.Letter())
		sb.WriteString(disambiguator(board, move, p))
		if edit.Kind.IsCapture() {
			sb.WriteByte('x')
		}
		sb.WriteString(move.To.String())
	}

	after := *board
	commit(&after, &edit, nil)
	if InCheck(&after, after.ToMove) {
		if HasLegalMoves(&after, after.ToMove) {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}
	return sb.String()
}

// disambiguator returns the file, rank or square needed to tell move apart
// from other pieces of the same type that can reach the same square.
func disambiguator(board *chess.Board, move chess.Move, p chess.Piece) string {
	sameCol, sameRow, others := false, false, false
	for sq := chess.Square(0); sq < chess.NumSquares; sq++ {
		if sq == move.From || !board.Squares[sq].Is(p.Colour, p.Type) {
			continue
		}
		set := legalMoves(board, sq, chess.DefaultPromotion)
		if !set.Contains(move.To) {
			continue
		}
		others = true
		if sq.Col() == move.From.Col() {
			sameCol = true
		}
		if sq.Row() == move.From.Row() {
			sameRow = true
		}
	}
	switch {
	case !others:
		return ""
	case !sameCol:
		return string(move.From.File())
	case !sameRow:
		return string(move.From.Rank())
	}
	return move.From.String()
}
