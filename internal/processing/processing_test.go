package processing

import (
	"testing"

	"github.com/lgbarn/localchess-go/internal/bitboard"
	"github.com/lgbarn/localchess-go/internal/engine"
	"github.com/lgbarn/localchess-go/internal/errors"
	"github.com/lgbarn/localchess-go/internal/store"
	"github.com/lgbarn/localchess-go/internal/testutil"
)

func record(fen string, moves ...string) *store.Record {
	return &store.Record{StartFEN: fen, Moves: moves}
}

// TestAnalyzeRecord verifies game analysis functionality
func TestAnalyzeRecord(t *testing.T) {
	rec := record(engine.InitialFEN, "e2e4", "e7e5", "g1f3", "b8c6", "f1b5", "a7a6")
	analysis, err := AnalyzeRecord(nil, rec)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, analysis.Plies, 6)
	testutil.AssertEqual(t, len(analysis.Positions), 7)
	testutil.AssertEqual(t, engine.BoardToFEN(analysis.FinalBoard),
		"r1bqkbnr/1ppp1ppp/p1n5/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 0 4")
	testutil.AssertFalse(t, analysis.RepetitionDetected(), "no repetition expected")
	testutil.AssertFalse(t, analysis.Checkmate || analysis.Stalemate, "game is in progress")
}

// TestAnalyzeRecord_Repetition verifies repetition detection
func TestAnalyzeRecord_Repetition(t *testing.T) {
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	var moves []string
	for i := 0; i < 2; i++ {
		moves = append(moves, shuffle...)
	}

	analysis, err := AnalyzeRecord(nil, record(engine.InitialFEN, moves...))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, analysis.RepetitionDetected(), "threefold repetition not detected")
	testutil.AssertFalse(t, analysis.Has5FoldRepetition, "only three occurrences")

	for i := 0; i < 2; i++ {
		moves = append(moves, shuffle...)
	}
	analysis, err = AnalyzeRecord(bitboard.New(), record(engine.InitialFEN, moves...))
	testutil.AssertNoError(t, err)
	testutil.AssertTrue(t, analysis.Has5FoldRepetition, "fivefold repetition not detected")
}

func TestAnalyzeRecord_StalemateWithStrategy(t *testing.T) {
	rec := record("7k/8/6Q1/8/8/8/8/K7 w - - 0 1", "g6f7")
	for _, s := range []engine.Strategy{engine.Mailbox{}, bitboard.New()} {
		analysis, err := AnalyzeRecord(s, rec)
		testutil.AssertNoError(t, err)
		testutil.AssertTrue(t, analysis.Stalemate, "%s: stalemate not detected", s.Name())
		testutil.AssertFalse(t, analysis.Checkmate, "%s: stalemate reported as checkmate", s.Name())
	}
}

func TestAnalyzeRecord_Features(t *testing.T) {
	tests := []struct {
		name  string
		rec   *store.Record
		check func(*GameAnalysis) bool
	}{
		{
			"underpromotion",
			record("4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8n"),
			func(a *GameAnalysis) bool { return a.UnderpromotionFound() },
		},
		{
			"queen promotion is not under",
			record("4k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8"),
			func(a *GameAnalysis) bool { return !a.UnderpromotionFound() },
		},
		{
			"fifty moves",
			record("4k3/8/8/8/8/8/8/R3K3 w - - 99 60", "a1a2"),
			func(a *GameAnalysis) bool { return a.FiftyMoveTriggered() && !a.Has75MoveRule },
		},
		{
			"seventy-five moves",
			record("4k3/8/8/8/8/8/8/R3K3 w - - 149 80", "a1a2"),
			func(a *GameAnalysis) bool { return a.Has75MoveRule },
		},
		{
			"checkmate",
			record(engine.InitialFEN, "f2f3", "e7e5", "g2g4", "d8h4"),
			func(a *GameAnalysis) bool { return a.Checkmate && !a.Stalemate },
		},
		{
			"stalemate",
			record("7k/8/6Q1/8/8/8/8/K7 w - - 0 1", "g6f7"),
			func(a *GameAnalysis) bool { return a.Stalemate && !a.Checkmate },
		},
		{
			"bare kings",
			record("4k3/8/8/8/8/8/3q4/4K3 w - - 0 1", "e1d2"),
			func(a *GameAnalysis) bool { return a.HasInsufficientMaterial },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis, err := AnalyzeRecord(engine.Mailbox{}, tt.rec)
			testutil.AssertNoError(t, err)
			if !tt.check(analysis) {
				t.Errorf("AnalyzeRecord() = %+v", analysis)
			}
		})
	}
}

func TestAnalyzeRecord_BadMove(t *testing.T) {
	analysis, err := AnalyzeRecord(nil, record(engine.InitialFEN, "e2e4", "e2e4"))
	testutil.AssertErrorIs(t, err, errors.ErrUnresolvedMove)
	testutil.AssertEqual(t, analysis.Plies, 1)

	_, err = AnalyzeRecord(nil, record("garbage"))
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name      string
		rec       *store.Record
		wantValid bool
		wantPly   int
	}{
		{"legal", record(engine.InitialFEN, "e2e4", "c7c5"), true, 0},
		{"illegal second move", record(engine.InitialFEN, "e2e4", "e2e4"), false, 2},
		{"bad fen", record("8/8 w"), false, 0},
		{
			"stale final position",
			&store.Record{StartFEN: engine.InitialFEN, Moves: []string{"e2e4"}, FEN: engine.InitialFEN},
			false, 0,
		},
		{
			"matching final position",
			&store.Record{
				StartFEN: engine.InitialFEN,
				Moves:    []string{"e2e4"},
				FEN:      "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
			},
			true, 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateRecord(tt.rec)
			if got.Valid != tt.wantValid || got.ErrorPly != tt.wantPly {
				t.Errorf("ValidateRecord() = %+v, want valid=%v ply=%d", got, tt.wantValid, tt.wantPly)
			}
			if !got.Valid && got.ErrorMsg == "" {
				t.Error("invalid record without a message")
			}
		})
	}
}

func TestReplayRecord(t *testing.T) {
	board, err := ReplayRecord(record(engine.InitialFEN, "d2d4"))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, engine.BoardToFEN(board), "rnbqkbnr/pppppppp/8/8/3P4/8/PPP1PPPP/RNBQKBNR b KQkq d3 0 1")
}

func TestHasInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/4KB2 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/4KN2 w - - 0 1", true},
		{"5b2/4k3/8/8/8/8/8/2B1K3 w - - 0 1", true},
		{"2b5/4k3/8/8/8/8/8/2B1K3 w - - 0 1", false},
		{"4k3/8/8/8/8/8/8/3NKN2 w - - 0 1", false},
		{"4k3/8/8/8/8/8/8/R3K3 w - - 0 1", false},
		{"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
	}
	for _, tt := range tests {
		t.Run(tt.fen, func(t *testing.T) {
			board, err := engine.NewBoardFromFEN(tt.fen)
			testutil.AssertNoError(t, err)
			if got := HasInsufficientMaterial(board); got != tt.want {
				t.Errorf("HasInsufficientMaterial() = %v, want %v", got, tt.want)
			}
		})
	}
}
