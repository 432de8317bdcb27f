// Package chess provides core chess types and operations.
package chess

// Colour represents the colour of a piece or player.
type Colour uint8

const (
	White Colour = iota
	Black
)

// String returns the string representation of a colour.
func (c Colour) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opposite returns the opposite colour.
func (c Colour) Opposite() Colour {
	if c == White {
		return Black
	}
	return White
}

// Forward returns the row delta a pawn of this colour advances by.
// Row 0 is black's back rank, so white pawns move towards lower rows.
func (c Colour) Forward() int {
	if c == White {
		return -1
	}
	return 1
}

// HomeRow returns the back-rank row of the colour.
func (c Colour) HomeRow() int {
	if c == White {
		return 7
	}
	return 0
}

// PawnRow returns the row the colour's pawns start on.
func (c Colour) PawnRow() int {
	if c == White {
		return 6
	}
	return 1
}

// LastRow returns the promotion row for the colour's pawns.
func (c Colour) LastRow() int {
	return c.Opposite().HomeRow()
}

// PieceType represents a chess piece type.
type PieceType uint8

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var pieceNames = [...]string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

// String returns the string representation of a piece type.
func (p PieceType) String() string {
	if int(p) < len(pieceNames) {
		return pieceNames[p]
	}
	return "Unknown"
}

// Letter returns the single letter representation of a piece type (uppercase).
func (p PieceType) Letter() byte {
	letters := [...]byte{' ', 'P', 'N', 'B', 'R', 'Q', 'K'}
	if int(p) < len(letters) {
		return letters[p]
	}
	return '?'
}

// PieceTypeFromLetter maps a piece letter in either case to its type.
func PieceTypeFromLetter(c byte) PieceType {
	switch c {
	case 'P', 'p':
		return Pawn
	case 'N', 'n':
		return Knight
	case 'B', 'b':
		return Bishop
	case 'R', 'r':
		return Rook
	case 'Q', 'q':
		return Queen
	case 'K', 'k':
		return King
	}
	return NoPiece
}

// Promotable reports whether a pawn may turn into this piece type.
func (p PieceType) Promotable() bool {
	return p == Knight || p == Bishop || p == Rook || p == Queen
}

// PromotionTypes lists the piece types a pawn can promote to.
var PromotionTypes = [...]PieceType{Queen, Rook, Bishop, Knight}

// DefaultPromotion is used when a caller does not name a promotion piece.
const DefaultPromotion = Queen

// Piece is a coloured piece on a square together with its move history.
// The zero value is an empty square.
type Piece struct {
	Type   PieceType
	Colour Colour
	// MoveCount is the number of times the piece has been relocated.
	// Zero is the only signal used for castling eligibility.
	MoveCount uint16
}

// NewPiece creates an unmoved piece.
func NewPiece(c Colour, t PieceType) Piece {
	return Piece{Type: t, Colour: c}
}

// W creates an unmoved white piece.
func W(t PieceType) Piece {
	return NewPiece(White, t)
}

// B creates an unmoved black piece.
func B(t PieceType) Piece {
	return NewPiece(Black, t)
}

// IsEmpty reports whether the square holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

// Is reports whether the piece has the given colour and type.
func (p Piece) Is(c Colour, t PieceType) bool {
	return p.Type == t && p.Colour == c
}

// FENLetter returns the FEN letter of the piece: uppercase for white.
func (p Piece) FENLetter() byte {
	l := p.Type.Letter()
	if p.Colour == Black {
		return l + ('a' - 'A')
	}
	return l
}

// String returns e.g. "White Knight", or "Empty".
func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Colour.String() + " " + p.Type.String()
}
