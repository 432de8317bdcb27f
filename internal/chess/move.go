package chess

import "strings"

// Move is a user-visible move from one square to another.
type Move struct {
	From Square
	To   Square
	// Promotion is the piece a pawn becomes on the last rank.
	// NoPiece means the default promotion.
	Promotion PieceType
	// WasPromoted is set once the move has been committed as a promotion.
	WasPromoted bool
}

// NewMove creates a move between two squares.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// WellFormed reports whether both squares are on the board and differ.
// A well-formed move is not necessarily legal.
func (m Move) WellFormed() bool {
	return m.From.Valid() && m.To.Valid() && m.From != m.To
}

// UCI returns the coordinate notation of the move, e.g. "e7e8q".
// The promotion suffix is only written once the move was promoted.
func (m Move) UCI() string {
	var sb strings.Builder
	sb.WriteString(m.From.String())
	sb.WriteString(m.To.String())
	if m.WasPromoted {
		sb.WriteByte(m.Promotion.Letter() + ('a' - 'A'))
	}
	return sb.String()
}

// String returns the UCI form of the move.
func (m Move) String() string {
	return m.UCI()
}

// EditKind classifies a compound edit.
type EditKind uint8

const (
	Quiet EditKind = iota
	Capture
	DoublePush
	EnPassantCapture
	Castle
	Promotion
	PromotionCapture
)

// String returns the string representation of an edit kind.
func (k EditKind) String() string {
	names := [...]string{"Quiet", "Capture", "DoublePush", "EnPassant", "Castle", "Promotion", "PromotionCapture"}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// IsPromotion reports whether the edit turns a pawn into another piece.
func (k EditKind) IsPromotion() bool {
	return k == Promotion || k == PromotionCapture
}

// IsCapture reports whether the edit removes an enemy piece.
func (k EditKind) IsCapture() bool {
	return k == Capture || k == EnPassantCapture || k == PromotionCapture
}

// Transfer relocates whatever stands on From to To.
type Transfer struct {
	From Square
	To   Square
}

// Edit is the ordered set of board changes realizing one move.
//
// A plain move has one transfer. Castling moves the king and then the rook.
// En passant moves the pawn and clears the Victim square. Promotion moves the
// pawn and replaces it with Promote on arrival.
type Edit struct {
	Kind      EditKind
	Transfers [2]Transfer
	// NumTransfers is 1 or 2.
	NumTransfers uint8
	// Victim is the square cleared by an en passant capture, or NoSquare.
	Victim Square
	// Promote is the piece type placed on arrival by a promotion.
	Promote PieceType
}

// SimpleEdit creates a one-transfer edit.
func SimpleEdit(kind EditKind, from, to Square) Edit {
	return Edit{
		Kind:         kind,
		Transfers:    [2]Transfer{{From: from, To: to}},
		NumTransfers: 1,
		Victim:       NoSquare,
	}
}

// Steps returns the transfers in order.
func (e *Edit) Steps() []Transfer {
	return e.Transfers[:e.NumTransfers]
}

// Flag is a single check or checkmate observation.
type Flag uint8

// Flags is a set of Flag values.
type Flags uint8

const (
	WhiteInCheck Flag = 1 << iota
	BlackInCheck
	WhiteInCheckmate
	BlackInCheckmate
)

// String returns the name of a single flag.
func (f Flag) String() string {
	switch f {
	case WhiteInCheck:
		return "WhiteInCheck"
	case BlackInCheck:
		return "BlackInCheck"
	case WhiteInCheckmate:
		return "WhiteInCheckmate"
	case BlackInCheckmate:
		return "BlackInCheckmate"
	}
	return "Unknown"
}

// CheckFlag returns the in-check flag for a colour.
func CheckFlag(c Colour) Flag {
	if c == White {
		return WhiteInCheck
	}
	return BlackInCheck
}

// CheckmateFlag returns the checkmate flag for a colour.
func CheckmateFlag(c Colour) Flag {
	if c == White {
		return WhiteInCheckmate
	}
	return BlackInCheckmate
}

// Has reports whether f is in the set.
func (fs Flags) Has(f Flag) bool {
	return fs&Flags(f) != 0
}

// With returns the set with f added.
func (fs Flags) With(f Flag) Flags {
	return fs | Flags(f)
}

// Without returns the set with f removed.
func (fs Flags) Without(f Flag) Flags {
	return fs &^ Flags(f)
}

// InCheck reports whether the colour is flagged as in check.
func (fs Flags) InCheck(c Colour) bool {
	return fs.Has(CheckFlag(c))
}

// InCheckmate reports whether the colour is flagged as checkmated.
func (fs Flags) InCheckmate(c Colour) bool {
	return fs.Has(CheckmateFlag(c))
}

// List returns the flags in the set in a fixed order.
func (fs Flags) List() []Flag {
	var out []Flag
	for _, f := range [...]Flag{WhiteInCheck, BlackInCheck, WhiteInCheckmate, BlackInCheckmate} {
		if fs.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// String returns the flags joined by "|", or "None".
func (fs Flags) String() string {
	list := fs.List()
	if len(list) == 0 {
		return "None"
	}
	names := make([]string, len(list))
	for i, f := range list {
		names[i] = f.String()
	}
	return strings.Join(names, "|")
}
