package chess

// Board represents a chess board with all state needed for the game.
//
// Board is a plain value: assigning or copying it duplicates every square, so a
// copy can be mutated freely without touching the original.
type Board struct {
	// The board squares indexed by Square.
	Squares [NumSquares]Piece

	// Who has the next move.
	ToMove Colour

	// The square a pawn skipped over on the previous ply, or NoSquare.
	EnPassant Square

	// The half-move clock since the last pawn move or capture.
	HalfmoveClock uint

	// The current full-move number, starting at 1.
	MoveNumber uint
}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{
		ToMove:     White,
		EnPassant:  NoSquare,
		MoveNumber: 1,
	}
}

// SetupInitialPosition sets up the standard chess starting position.
func (b *Board) SetupInitialPosition() {
	b.Squares = [NumSquares]Piece{}

	backRank := [...]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
	for col := 0; col < BoardSize; col++ {
		b.Squares[SquareAt(col, Black.HomeRow())] = B(backRank[col])
		b.Squares[SquareAt(col, Black.PawnRow())] = B(Pawn)
		b.Squares[SquareAt(col, White.PawnRow())] = W(Pawn)
		b.Squares[SquareAt(col, White.HomeRow())] = W(backRank[col])
	}

	b.ToMove = White
	b.EnPassant = NoSquare
	b.HalfmoveClock = 0
	b.MoveNumber = 1
}

// At returns the piece on a square. Off-board squares read as empty.
func (b *Board) At(sq Square) Piece {
	if !sq.Valid() {
		return Piece{}
	}
	return b.Squares[sq]
}

// Set places a piece on a square. Off-board squares are ignored.
func (b *Board) Set(sq Square, p Piece) {
	if sq.Valid() {
		b.Squares[sq] = p
	}
}

// Clear empties a square.
func (b *Board) Clear(sq Square) {
	b.Set(sq, Piece{})
}

// FindKing returns the square of the colour's king, or NoSquare.
func (b *Board) FindKing(c Colour) Square {
	for sq := Square(0); sq < NumSquares; sq++ {
		if b.Squares[sq].Is(c, King) {
			return sq
		}
	}
	return NoSquare
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// Equal reports whether two boards hold identical state.
func (b *Board) Equal(other *Board) bool {
	return *b == *other
}

// BoardState captures the scalar board state that a move can change.
// Together with the squares recorded by an Undo it restores a board exactly.
type BoardState struct {
	ToMove        Colour
	EnPassant     Square
	HalfmoveClock uint
	MoveNumber    uint
}

// SaveState captures the current scalar state for later restoration.
func (b *Board) SaveState() BoardState {
	return BoardState{
		ToMove:        b.ToMove,
		EnPassant:     b.EnPassant,
		HalfmoveClock: b.HalfmoveClock,
		MoveNumber:    b.MoveNumber,
	}
}

// RestoreState restores the scalar state saved earlier.
func (b *Board) RestoreState(s BoardState) {
	b.ToMove = s.ToMove
	b.EnPassant = s.EnPassant
	b.HalfmoveClock = s.HalfmoveClock
	b.MoveNumber = s.MoveNumber
}

// maxTouched is the most squares a single edit can change (castling: 4).
const maxTouched = 4

// Undo is a recorded diff of the squares an edit touched.
// Reverting it is much cheaper than cloning the whole board.
type Undo struct {
	state   BoardState
	squares [maxTouched]Square
	pieces  [maxTouched]Piece
	n       int
}

// Record remembers the current content of sq, once per square.
func (u *Undo) Record(b *Board, sq Square) {
	for i := 0; i < u.n; i++ {
		if u.squares[i] == sq {
			return
		}
	}
	u.squares[u.n] = sq
	u.pieces[u.n] = b.Squares[sq]
	u.n++
}

// Begin resets the undo and saves the board's scalar state.
func (u *Undo) Begin(b *Board) {
	u.n = 0
	u.state = b.SaveState()
}

// Revert restores every recorded square and the saved scalar state.
func (u *Undo) Revert(b *Board) {
	for i := u.n - 1; i >= 0; i-- {
		b.Squares[u.squares[i]] = u.pieces[i]
	}
	b.RestoreState(u.state)
	u.n = 0
}
