package engine

import (
	"sort"
	"testing"

	nchess "github.com/notnil/chess"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/testutil"
)

// oracleMoves lists the legal moves of fen according to notnil/chess.
func oracleMoves(t *testing.T, fen string) []string {
	t.Helper()
	opt, err := nchess.FEN(fen)
	if err != nil {
		t.Fatalf("notnil FEN(%q) error = %v", fen, err)
	}
	game := nchess.NewGame(opt)
	moves := []string{}
	for _, m := range game.ValidMoves() {
		moves = append(moves, m.String())
	}
	sort.Strings(moves)
	return moves
}

func moveTexts(moves []chess.Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		s := m.From.String() + m.To.String()
		if m.Promotion != chess.NoPiece {
			s += string(m.Promotion.Letter() + ('a' - 'A'))
		}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

func TestAllMoves_MatchesOracle(t *testing.T) {
	fens := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
		"rnbqkbnr/pppp1ppp/8/4pP2/8/8/PPPPP1PP/RNBQKBNR w KQkq e6 0 3",
		"4k3/8/8/8/8/8/8/r3K3 w - - 0 1",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			got := moveTexts(AllMoves(mustBoard(t, fen)))
			testutil.AssertEqual(t, got, oracleMoves(t, fen))
		})
	}
}

// TestAllMoves_OracleWalk plays a deterministic line through busy positions
// and compares the move list at every ply.
func TestAllMoves_OracleWalk(t *testing.T) {
	starts := []string{
		InitialFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	const plies = 40
	for _, start := range starts {
		board := mustBoard(t, start)
		for ply := 0; ply < plies; ply++ {
			fen := BoardToFEN(board)
			moves := AllMoves(board)
			testutil.AssertEqual(t, moveTexts(moves), oracleMoves(t, fen), fen)
			if len(moves) == 0 {
				break
			}
			m := moves[(ply*7+3)%len(moves)]
			if !Perform(board, &m) {
				t.Fatalf("%s: Perform(%v) = false", fen, m)
			}
		}
	}
}
