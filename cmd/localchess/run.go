// run.go - Position setup, move playing, and perft for one invocation
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/config"
	"github.com/lgbarn/localchess-go/internal/engine"
	"github.com/lgbarn/localchess-go/internal/errors"
	"github.com/lgbarn/localchess-go/internal/game"
	"github.com/lgbarn/localchess-go/internal/hashing"
	"github.com/lgbarn/localchess-go/internal/output"
	"github.com/lgbarn/localchess-go/internal/perft"
	"github.com/lgbarn/localchess-go/internal/processing"
	"github.com/lgbarn/localchess-go/internal/store"
)

// run carries out req with the settings in cfg and writes everything to
// cfg.OutputFile.
func run(ctx context.Context, cfg *config.Config, req request) error {
	logger := cfg.Logger()
	strategy, err := cfg.Engine.Strategy()
	if err != nil {
		return err
	}

	var st *store.Store
	if cfg.Store.Enabled() {
		st, err = store.Open(cfg.Store.Path(), store.WithLogger(logger))
		if err != nil {
			return err
		}
		defer st.Close()
	}

	opts := []game.Option{
		game.WithStrategy(strategy),
		game.WithPromotion(cfg.Engine.Promotion),
		game.WithLogger(logger),
	}
	g, err := openGame(st, req, logger, opts)
	if err != nil {
		return err
	}

	for _, text := range req.Moves {
		if _, err := g.PerformText(text); err != nil {
			return err
		}
	}

	out := cfg.OutputFile
	board := g.Board()
	var marks []chess.Square
	from := chess.NoSquare
	if req.MovesFrom != "" {
		if from, err = chess.ParseSquare(req.MovesFrom); err != nil {
			return err
		}
		marks = g.LegalMoves(from)
	}

	if err := renderBoard(out, &board, cfg.Colour, marks); err != nil {
		return err
	}
	if err := writeStatus(out, g); err != nil {
		return err
	}
	if from != chess.NoSquare {
		if _, err := fmt.Fprintf(out, "moves from %s: %s\n", from, squareList(marks)); err != nil {
			return err
		}
	}
	if st != nil && req.GameID == "" {
		ids, err := st.List()
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(out, "stored games: %s\n", strings.Join(ids, " ")); err != nil {
			return err
		}
	}

	if req.Analyze {
		if err := writeAnalysis(out, strategy, store.NewRecord(req.GameID, g)); err != nil {
			return err
		}
	}

	if cfg.Export != config.ExportNone {
		if err := exportGame(cfg, st, req.GameID, g); err != nil {
			return err
		}
	}

	if req.PerftDepth > 0 {
		return runPerft(ctx, cfg, strategy, &board, req)
	}
	return nil
}

// exportGame writes g in the configured format. A tracked game is exported
// from its stored record.
func exportGame(cfg *config.Config, st *store.Store, id string, g *game.Game) error {
	var rec *store.Record
	if st != nil && id != "" {
		var err error
		if rec, err = st.Load(id); err != nil {
			return err
		}
	} else {
		rec = store.NewRecord(id, g)
		rec.Updated = time.Now().UTC()
	}

	w, err := output.NewGameWriter(cfg.Export, cfg.OutputFile, cfg.LineLength)
	if err != nil {
		return err
	}
	if err := w.WriteGame(rec); err != nil {
		return err
	}
	return w.Close()
}

// openGame starts a fresh game, or with a store and a game id resumes the
// stored game and keeps recording it.
func openGame(st *store.Store, req request, logger log.Interface, opts []game.Option) (*game.Game, error) {
	fresh := func() (*game.Game, error) {
		return game.New(append([]game.Option{game.WithFEN(req.FEN)}, opts...)...)
	}
	if st == nil || req.GameID == "" {
		return fresh()
	}

	var g *game.Game
	rec, err := st.Load(req.GameID)
	switch {
	case stderrors.Is(err, errors.ErrNotFound):
		g, err = fresh()
	case err != nil:
		return nil, err
	default:
		logger.WithFields(log.Fields{
			"game":  req.GameID,
			"moves": len(rec.Moves),
		}).Info("resuming game")
		g, err = store.Replay(rec, opts...)
	}
	if err != nil {
		return nil, err
	}
	if err := st.Track(req.GameID, g); err != nil {
		return nil, err
	}
	return g, nil
}

func writeStatus(w io.Writer, g *game.Game) error {
	if _, err := fmt.Fprintf(w, "fen: %s\n", g.CurrentFEN()); err != nil {
		return err
	}
	status := "to move: " + g.ToMove().String()
	switch mate, stale := g.Status(); {
	case mate:
		status += " (checkmate)"
	case stale:
		status += " (stalemate)"
	case g.Flags().InCheck(g.ToMove()):
		status += " (check)"
	}
	if history := g.History(); len(history) > 0 {
		san := make([]string, len(history))
		for i, ev := range history {
			san[i] = ev.SAN
		}
		if _, err := fmt.Fprintf(w, "moves: %s\n", strings.Join(san, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, status)
	return err
}

func writeAnalysis(w io.Writer, s engine.Strategy, rec *store.Record) error {
	a, err := processing.AnalyzeRecord(s, rec)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "analysis: plies=%d repetition=%t fivefold=%t fifty-move=%t seventy-five-move=%t underpromotion=%t insufficient=%t\n",
		a.Plies, a.HasRepetition, a.Has5FoldRepetition, a.HasFiftyMoveRule, a.Has75MoveRule,
		a.HasUnderpromotion, a.HasInsufficientMaterial)
	return err
}

func runPerft(ctx context.Context, cfg *config.Config, s engine.Strategy, board *chess.Board, req request) error {
	opts := []perft.Option{
		perft.WithStrategy(s),
		perft.WithWorkers(cfg.Perft.Workers),
	}
	if req.Divide {
		opts = append(opts, perft.WithDivide())
	}
	if cfg.Perft.Cache {
		opts = append(opts, perft.WithCache(hashing.NewThreadSafeTable(cfg.Perft.CacheSize)))
	}
	res, err := perft.Run(ctx, board, req.PerftDepth, opts...)
	if err != nil {
		return err
	}
	return perft.WriteReport(cfg.OutputFile, res)
}

func squareList(squares []chess.Square) string {
	if len(squares) == 0 {
		return "none"
	}
	names := make([]string, len(squares))
	for i, sq := range squares {
		names[i] = sq.String()
	}
	return strings.Join(names, " ")
}
