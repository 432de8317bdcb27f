package chess

import (
	"errors"
	"testing"

	chesserrors "github.com/lgbarn/localchess-go/internal/errors"
)

func TestNewBoard(t *testing.T) {
	b := NewBoard()

	t.Run("initial state", func(t *testing.T) {
		if b.ToMove != White {
			t.Errorf("ToMove = %v; want White", b.ToMove)
		}
		if b.MoveNumber != 1 {
			t.Errorf("MoveNumber = %d; want 1", b.MoveNumber)
		}
		if b.EnPassant != NoSquare {
			t.Errorf("EnPassant = %v; want NoSquare", b.EnPassant)
		}
		if b.HalfmoveClock != 0 {
			t.Errorf("HalfmoveClock = %d; want 0", b.HalfmoveClock)
		}
	})

	t.Run("all squares empty", func(t *testing.T) {
		for sq := Square(0); sq < NumSquares; sq++ {
			if got := b.At(sq); !got.IsEmpty() {
				t.Errorf("At(%v) = %v; want Empty", sq, got)
			}
		}
	})
}

func TestSetupInitialPosition(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()

	tests := []struct {
		square string
		piece  Piece
	}{
		{"a1", W(Rook)},
		{"b1", W(Knight)},
		{"c1", W(Bishop)},
		{"d1", W(Queen)},
		{"e1", W(King)},
		{"h1", W(Rook)},
		{"a2", W(Pawn)},
		{"h2", W(Pawn)},
		{"a7", B(Pawn)},
		{"e7", B(Pawn)},
		{"a8", B(Rook)},
		{"d8", B(Queen)},
		{"e8", B(King)},
		{"e4", Piece{}},
	}

	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			if got := b.At(MustSquare(tt.square)); got != tt.piece {
				t.Errorf("At(%s) = %v; want %v", tt.square, got, tt.piece)
			}
		})
	}

	if got := b.FindKing(White); got.String() != "e1" {
		t.Errorf("FindKing(White) = %v; want e1", got)
	}
	if got := b.FindKing(Black); got.String() != "e8" {
		t.Errorf("FindKing(Black) = %v; want e8", got)
	}
}

func TestSquareCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		col, row int
		want     Square
	}{
		{"a8 is zero", 0, 0, 0},
		{"h1 is last", 7, 7, 63},
		{"e4", 4, 4, 36},
		{"col below range", -1, 3, NoSquare},
		{"col above range", 8, 3, NoSquare},
		{"row below range", 3, -1, NoSquare},
		{"row above range", 3, 8, NoSquare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquareAt(tt.col, tt.row)
			if got != tt.want {
				t.Fatalf("SquareAt(%d, %d) = %d; want %d", tt.col, tt.row, got, tt.want)
			}
			if got.Valid() && (got.Col() != tt.col || got.Row() != tt.row) {
				t.Errorf("round trip = (%d, %d); want (%d, %d)", got.Col(), got.Row(), tt.col, tt.row)
			}
		})
	}

	for sq := Square(0); sq < NumSquares; sq++ {
		if back := SquareAt(sq.Col(), sq.Row()); back != sq {
			t.Errorf("SquareAt(Col, Row) of %d = %d", sq, back)
		}
	}
}

func TestSquareOffsetDoesNotWrap(t *testing.T) {
	h4 := MustSquare("h4")
	if got := h4.Offset(1, 0); got != NoSquare {
		t.Errorf("h4.Offset(1, 0) = %v; want NoSquare", got)
	}
	a4 := MustSquare("a4")
	if got := a4.Offset(-1, 0); got != NoSquare {
		t.Errorf("a4.Offset(-1, 0) = %v; want NoSquare", got)
	}
	if got := a4.Offset(1, -1); got.String() != "b5" {
		t.Errorf("a4.Offset(1, -1) = %v; want b5", got)
	}
	if got := NoSquare.Offset(0, 0); got != NoSquare {
		t.Errorf("NoSquare.Offset = %v; want NoSquare", got)
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		name    string
		want    string
		wantErr bool
	}{
		{"e4", "e4", false},
		{"a8", "a8", false},
		{"h1", "h1", false},
		{"i1", "", true},
		{"a9", "", true},
		{"a0", "", true},
		{"e", "", true},
		{"e44", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sq, err := ParseSquare(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSquare(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil {
				if !errors.Is(err, chesserrors.ErrInvalidSquare) {
					t.Errorf("error = %v; want ErrInvalidSquare", err)
				}
				if sq != NoSquare {
					t.Errorf("ParseSquare(%q) = %v; want NoSquare", tt.name, sq)
				}
				return
			}
			if sq.String() != tt.want {
				t.Errorf("ParseSquare(%q) = %v; want %s", tt.name, sq, tt.want)
			}
		})
	}
}

func TestCopyIsIndependent(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()

	c := b.Copy()
	c.Clear(MustSquare("e2"))
	c.Set(MustSquare("e4"), W(Pawn))
	c.ToMove = Black

	if b.At(MustSquare("e2")) != W(Pawn) {
		t.Error("mutating the copy changed the original e2")
	}
	if !b.At(MustSquare("e4")).IsEmpty() {
		t.Error("mutating the copy changed the original e4")
	}
	if b.ToMove != White {
		t.Error("mutating the copy changed the original side to move")
	}
	if b.Equal(c) {
		t.Error("Equal() = true after divergence")
	}
}

func TestUndoRevert(t *testing.T) {
	b := NewBoard()
	b.SetupInitialPosition()
	orig := *b

	var u Undo
	u.Begin(b)
	e2, e4 := MustSquare("e2"), MustSquare("e4")
	u.Record(b, e2)
	u.Record(b, e4)
	u.Record(b, e2)
	b.Set(e4, b.At(e2))
	b.Clear(e2)
	b.ToMove = Black
	b.EnPassant = MustSquare("e3")

	u.Revert(b)
	if *b != orig {
		t.Error("Revert() did not restore the board exactly")
	}
}

func TestFlags(t *testing.T) {
	var fs Flags
	if fs.String() != "None" {
		t.Errorf("empty Flags.String() = %q; want None", fs.String())
	}

	fs = fs.With(BlackInCheck).With(BlackInCheckmate)
	if !fs.InCheck(Black) || !fs.InCheckmate(Black) {
		t.Errorf("flags %v should report black in check and checkmate", fs)
	}
	if fs.InCheck(White) {
		t.Errorf("flags %v should not report white in check", fs)
	}
	if got := fs.String(); got != "BlackInCheck|BlackInCheckmate" {
		t.Errorf("String() = %q", got)
	}
	if fs.Without(BlackInCheckmate).InCheckmate(Black) {
		t.Error("Without() did not remove the flag")
	}
}

func TestMoveUCI(t *testing.T) {
	m := NewMove(MustSquare("e7"), MustSquare("e8"))
	m.Promotion = Knight
	if got := m.UCI(); got != "e7e8" {
		t.Errorf("UCI() before promotion = %q; want e7e8", got)
	}
	m.WasPromoted = true
	if got := m.UCI(); got != "e7e8n" {
		t.Errorf("UCI() after promotion = %q; want e7e8n", got)
	}
}

func TestMoveWellFormed(t *testing.T) {
	e2, e4 := MustSquare("e2"), MustSquare("e4")
	tests := []struct {
		name string
		move Move
		want bool
	}{
		{"ordinary", NewMove(e2, e4), true},
		{"same square", NewMove(e2, e2), false},
		{"off board origin", NewMove(NoSquare, e4), false},
		{"off board destination", NewMove(e2, Square(64)), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.move.WellFormed(); got != tt.want {
				t.Errorf("WellFormed() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestPieceFENLetter(t *testing.T) {
	if got := B(Knight).FENLetter(); got != 'n' {
		t.Errorf("B(Knight).FENLetter() = %c; want n", got)
	}
	if got := W(Queen).FENLetter(); got != 'Q' {
		t.Errorf("W(Queen).FENLetter() = %c; want Q", got)
	}
	if got := PieceTypeFromLetter('r'); got != Rook {
		t.Errorf("PieceTypeFromLetter('r') = %v; want Rook", got)
	}
}
