// Package processing provides game analysis and validation of stored game
// records.
package processing

import (
	"fmt"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/engine"
	"github.com/lgbarn/localchess-go/internal/hashing"
	"github.com/lgbarn/localchess-go/internal/store"
)

// GameAnalysis holds analysis results from replaying a game.
type GameAnalysis struct {
	FinalBoard        *chess.Board
	Plies             int
	HasFiftyMoveRule  bool
	HasRepetition     bool
	HasUnderpromotion bool
	Positions         []uint64 // Zobrist hashes for repetition detection

	// Extended draw rule detection
	Has75MoveRule           bool
	Has5FoldRepetition      bool
	HasInsufficientMaterial bool

	// Final position status for the side to move
	Checkmate bool
	Stalemate bool
}

// FiftyMoveTriggered returns true if the game triggered the fifty-move rule.
func (ga *GameAnalysis) FiftyMoveTriggered() bool {
	return ga.HasFiftyMoveRule
}

// RepetitionDetected returns true if the game has a threefold repetition.
func (ga *GameAnalysis) RepetitionDetected() bool {
	return ga.HasRepetition
}

// UnderpromotionFound returns true if any pawn promoted to non-queen.
func (ga *GameAnalysis) UnderpromotionFound() bool {
	return ga.HasUnderpromotion
}

// ValidationResult holds the result of game validation.
type ValidationResult struct {
	Valid    bool
	ErrorPly int
	ErrorMsg string
	Err      error
}

// replay plays the moves of rec and calls fn after each one. It stops at the
// first move that does not resolve or is illegal and returns its ply.
func replay(s engine.Strategy, rec *store.Record, fn func(board *chess.Board, move chess.Move)) (*chess.Board, int, error) {
	board, err := engine.NewBoardFromFEN(rec.StartFEN)
	if err != nil {
		return nil, 0, err
	}
	for i, text := range rec.Moves {
		m, err := engine.ParseMoveWith(s, board, text, chess.DefaultPromotion)
		if err != nil {
			return board, i + 1, err
		}
		if !engine.PerformWith(s, board, &m) {
			return board, i + 1, fmt.Errorf("move %q rejected", text)
		}
		if fn != nil {
			fn(board, m)
		}
	}
	return board, 0, nil
}

// AnalyzeRecord replays a record and analyzes it for draw conditions and
// underpromotion. Replay stops at the first bad move; the error reports it.
func AnalyzeRecord(s engine.Strategy, rec *store.Record) (*GameAnalysis, error) {
	if s == nil {
		s = engine.Mailbox{}
	}
	analysis := &GameAnalysis{}
	positionCount := make(map[uint64]int)
	record := func(board *chess.Board) {
		h := hashing.Hash(board)
		analysis.Positions = append(analysis.Positions, h)
		positionCount[h]++

		// 3-fold repetition
		if positionCount[h] >= 3 {
			analysis.HasRepetition = true
		}
		// 5-fold repetition (automatic draw)
		if positionCount[h] >= 5 {
			analysis.Has5FoldRepetition = true
		}
	}

	if start, err := engine.NewBoardFromFEN(rec.StartFEN); err == nil {
		record(start)
	}

	board, _, err := replay(s, rec, func(board *chess.Board, move chess.Move) {
		analysis.Plies++

		// 50-move rule (100 half-moves)
		if board.HalfmoveClock >= 100 {
			analysis.HasFiftyMoveRule = true
		}
		// 75-move rule (150 half-moves - automatic draw)
		if board.HalfmoveClock >= 150 {
			analysis.Has75MoveRule = true
		}
		if move.WasPromoted && move.Promotion != chess.Queen {
			analysis.HasUnderpromotion = true
		}
		record(board)
	})
	if board == nil {
		return nil, err
	}

	analysis.HasInsufficientMaterial = HasInsufficientMaterial(board)
	c := board.ToMove
	analysis.Checkmate = engine.StatusWith(s, board).InCheckmate(c)
	analysis.Stalemate = !analysis.Checkmate && engine.IsStalemateWith(s, board, c)
	analysis.FinalBoard = board
	return analysis, err
}

// ReplayRecord replays a record and returns the final board state.
func ReplayRecord(rec *store.Record) (*chess.Board, error) {
	board, _, err := replay(engine.Mailbox{}, rec, nil)
	return board, err
}

// ValidateRecord checks that every move of rec is legal and that the stored
// final position matches the replay.
func ValidateRecord(rec *store.Record) *ValidationResult {
	result := &ValidationResult{Valid: true}

	board, ply, err := replay(engine.Mailbox{}, rec, nil)
	switch {
	case board == nil:
		result.Valid = false
		result.Err = err
		result.ErrorMsg = fmt.Sprintf("invalid FEN: %s", rec.StartFEN)
	case err != nil:
		result.Valid = false
		result.Err = err
		result.ErrorPly = ply
		result.ErrorMsg = fmt.Sprintf("illegal move at ply %d: %s", ply, rec.Moves[ply-1])
	case rec.FEN != "" && engine.BoardToFEN(board) != rec.FEN:
		result.Valid = false
		result.ErrorMsg = fmt.Sprintf("final position %s does not match stored %s", engine.BoardToFEN(board), rec.FEN)
	}
	return result
}

// HasInsufficientMaterial reports whether neither side can mate: no pawns,
// rooks or queens, and either at most one minor piece or only bishops all on
// squares of one colour.
func HasInsufficientMaterial(board *chess.Board) bool {
	minors, knights := 0, 0
	var bishopShades [2]bool
	for i, p := range board.Squares {
		switch p.Type {
		case chess.Pawn, chess.Rook, chess.Queen:
			return false
		case chess.Knight:
			minors++
			knights++
		case chess.Bishop:
			minors++
			sq := chess.Square(i)
			bishopShades[(sq.Col()+sq.Row())%2] = true
		}
	}
	if minors <= 1 {
		return true
	}
	return knights == 0 && !(bishopShades[0] && bishopShades[1])
}
