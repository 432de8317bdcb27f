package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSentinelErrors_Are(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"ErrInvalidFEN", fmt.Errorf("field 2: %w", ErrInvalidFEN), ErrInvalidFEN},
		{"ErrInvalidSquare", fmt.Errorf("%q: %w", "i9", ErrInvalidSquare), ErrInvalidSquare},
		{"ErrInvalidMoveText", ErrInvalidMoveText, ErrInvalidMoveText},
		{"ErrIllegalMove", ErrIllegalMove, ErrIllegalMove},
		{"ErrUnresolvedMove", ErrUnresolvedMove, ErrUnresolvedMove},
		{"ErrAmbiguousMove", ErrAmbiguousMove, ErrAmbiguousMove},
		{"ErrInvalidConfig", ErrInvalidConfig, ErrInvalidConfig},
		{"ErrNotFound", ErrNotFound, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false, want true", tt.err, tt.sentinel)
			}
		})
	}
}

func TestSentinelErrors_Distinct(t *testing.T) {
	if errors.Is(ErrAmbiguousMove, ErrUnresolvedMove) {
		t.Error("ErrAmbiguousMove should not match ErrUnresolvedMove")
	}
}

func TestMoveError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *MoveError
		contains []string
	}{
		{
			name: "full context",
			err: &MoveError{
				Err:  ErrIllegalMove,
				Text: "Nxe5",
				From: "c6",
				To:   "e5",
				Ply:  12,
			},
			contains: []string{"ply 12", "Nxe5", "c6 -> e5", "illegal move"},
		},
		{
			name:     "error only",
			err:      &MoveError{Err: ErrAmbiguousMove},
			contains: []string{"ambiguous move"},
		},
		{
			name:     "no error",
			err:      &MoveError{Text: "e4"},
			contains: []string{`"e4"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			for _, s := range tt.contains {
				if !containsIgnoreCase(msg, s) {
					t.Errorf("MoveError.Error() = %q, should contain %q", msg, s)
				}
			}
		})
	}
}

func TestMoveError_As(t *testing.T) {
	moveErr := &MoveError{
		Err:  ErrUnresolvedMove,
		Text: "O-O-O",
		Ply:  24,
	}

	wrapped := fmt.Errorf("play failed: %w", moveErr)

	var extracted *MoveError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As() could not extract MoveError")
	}
	if extracted.Ply != 24 {
		t.Errorf("extracted.Ply = %d, want 24", extracted.Ply)
	}
	if !errors.Is(wrapped, ErrUnresolvedMove) {
		t.Error("errors.Is(wrapped, ErrUnresolvedMove) = false, want true")
	}
}

func TestParseError_Error(t *testing.T) {
	err := &ParseError{
		Err:   ErrInvalidFEN,
		Input: "8/8/8 w",
		Field: "side to move",
		Got:   "x",
	}

	msg := err.Error()
	for _, s := range []string{"side to move", `"x"`, "8/8/8 w", "invalid FEN"} {
		if !containsIgnoreCase(msg, s) {
			t.Errorf("ParseError.Error() = %q, should contain %q", msg, s)
		}
	}
	if !errors.Is(err, ErrInvalidFEN) {
		t.Error("errors.Is(parseErr, ErrInvalidFEN) = false, want true")
	}
}

func TestParseError_Empty(t *testing.T) {
	if got := (&ParseError{}).Error(); got != "parse error" {
		t.Errorf("ParseError{}.Error() = %q, want %q", got, "parse error")
	}
}

func TestWrap(t *testing.T) {
	wrapped := Wrap(ErrInvalidFEN, "loading position")

	if !errors.Is(wrapped, ErrInvalidFEN) {
		t.Error("Wrap should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "loading position") {
		t.Errorf("Wrap should include context, got %q", wrapped.Error())
	}
	if Wrap(nil, "ignored") != nil {
		t.Error("Wrap(nil) should return nil")
	}
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrIllegalMove, "ply %d by %s", 15, "White")

	if !errors.Is(wrapped, ErrIllegalMove) {
		t.Error("Wrapf should preserve the underlying error")
	}
	if !containsIgnoreCase(wrapped.Error(), "ply 15 by white") {
		t.Errorf("Wrapf should include formatted context, got %q", wrapped.Error())
	}
}

// containsIgnoreCase checks if s contains substr (case-insensitive).
func containsIgnoreCase(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
