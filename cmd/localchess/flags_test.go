package main

import (
	"bytes"
	"testing"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/errors"
	"github.com/lgbarn/localchess-go/internal/testutil"
)

// saveRestoreString sets a string flag for the duration of a test.
// Usage: defer saveRestoreString(engineName, "bitboard")()
func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func TestParsePromotion(t *testing.T) {
	tests := []struct {
		in      string
		want    chess.PieceType
		wantErr bool
	}{
		{"q", chess.Queen, false},
		{"N", chess.Knight, false},
		{"r", chess.Rook, false},
		{"b", chess.Bishop, false},
		{"k", chess.NoPiece, true},
		{"p", chess.NoPiece, true},
		{"", chess.NoPiece, true},
		{"qq", chess.NoPiece, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parsePromotion(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePromotion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("parsePromotion(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var out bytes.Buffer
		cfg, err := applyFlags(nil, &out)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, cfg.Engine.Promotion, chess.Queen)
		testutil.AssertTrue(t, cfg.OutputFile == &out, "output writer not applied")
		testutil.AssertFalse(t, cfg.Store.Enabled(), "store should be off")
	})

	t.Run("engine and perft", func(t *testing.T) {
		defer saveRestoreString(engineName, "bitboard")()
		defer saveRestoreString(promoteTo, "n")()
		defer saveRestoreInt(perftWorkers, 4)()
		defer saveRestoreBool(perftCache, true)()
		defer saveRestoreString(logLevel, "DEBUG")()

		cfg, err := applyFlags(nil, nil)
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, cfg.Engine.Name, "bitboard")
		testutil.AssertEqual(t, cfg.Engine.Promotion, chess.Knight)
		testutil.AssertEqual(t, cfg.Perft.Workers, 4)
		testutil.AssertTrue(t, cfg.Perft.Cache, "cache flag not applied")
		testutil.AssertEqual(t, cfg.Log.Level, "debug")
	})

	t.Run("game id without store dir", func(t *testing.T) {
		defer saveRestoreString(gameID, "casual")()
		cfg, err := applyFlags(nil, nil)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, cfg.Store.InMemory, "game id should enable the in-memory store")
	})

	t.Run("invalid values", func(t *testing.T) {
		tests := []struct {
			name string
			set  func() func()
		}{
			{"engine", func() func() { return saveRestoreString(engineName, "quantum") }},
			{"promotion", func() func() { return saveRestoreString(promoteTo, "k") }},
			{"workers", func() func() { return saveRestoreInt(perftWorkers, -2) }},
			{"log level", func() func() { return saveRestoreString(logLevel, "chatty") }},
		}
		for _, tt := range tests {
			restore := tt.set()
			_, err := applyFlags(nil, nil)
			restore()
			testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig, tt.name)
		}
	})
}

func TestBuildRequest(t *testing.T) {
	defer saveRestoreString(playMoves, "  e4 e5\tNf3 ")()
	defer saveRestoreInt(perftDepth, 3)()

	req := buildRequest()
	testutil.AssertEqual(t, req.Moves, []string{"e4", "e5", "Nf3"})
	testutil.AssertEqual(t, req.PerftDepth, 3)
}
