// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/config"
	"github.com/lgbarn/localchess-go/internal/engine"
	"github.com/lgbarn/localchess-go/internal/errors"
)

var (
	// Position and moves
	fenFlag   = flag.String("fen", engine.InitialFEN, "Starting position in FEN")
	playMoves = flag.String("play", "", "Space-separated moves to play, SAN or UCI (e.g. 'e4 e5 Nf3')")
	movesFrom = flag.String("moves", "", "List the legal destinations of the piece on this square")
	analyze   = flag.Bool("analyze", false, "Report repetitions, move-rule draws and underpromotions")
	promoteTo = flag.String("promote", "q", "Default promotion piece: q, r, b or n")

	// Engine
	engineName = flag.String("engine", engine.MailboxName, "Move generator: mailbox or bitboard")

	// Perft
	perftDepth   = flag.Int("perft", 0, "Count leaf nodes to this depth")
	perftDivide  = flag.Bool("divide", false, "Print perft counts per root move")
	perftWorkers = flag.Int("workers", 0, "Perft worker goroutines (0 = one per CPU)")
	perftCache   = flag.Bool("cache", false, "Share a transposition table between perft workers")
	cacheSize    = flag.Int("cache-size", 1<<22, "Maximum transposition table entries (0 = unlimited)")

	// Storage
	storeDir = flag.String("store", "", "Directory of the game database")
	gameID   = flag.String("game", "", "Game id to resume and record moves under")

	// Logging and output
	logLevel   = flag.String("log-level", "warn", "Log level: debug, info, warn, error, fatal or off")
	logFile    = flag.String("log-file", "", "Write log output to this file (default: stderr)")
	outputFile = flag.String("o", "", "Output file (default: stdout)")
	exportFmt  = flag.String("export", "", "Write the game after play: pgn or json")
	lineLength = flag.Int("w", 80, "Maximum PGN line length")
	colour     = flag.Bool("color", true, "Colour the board with ANSI escapes")

	// Misc
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// request is the work the command line asks for, separate from the
// configuration that says how to do it.
type request struct {
	FEN        string
	Moves      []string
	MovesFrom  string
	PerftDepth int
	Divide     bool
	GameID     string
	Analyze    bool
}

// parsePromotion maps a piece letter to a promotable piece type.
func parsePromotion(s string) (chess.PieceType, error) {
	if len(s) == 1 {
		if t := chess.PieceTypeFromLetter(s[0]); t.Promotable() {
			return t, nil
		}
	}
	return chess.NoPiece, fmt.Errorf("promotion piece %q: %w", s, errors.ErrInvalidConfig)
}

// applyFlags builds a Config from the parsed flags. Log and output files are
// opened by the caller and passed in.
func applyFlags(logW, out io.Writer) (*config.Config, error) {
	promotion, err := parsePromotion(*promoteTo)
	if err != nil {
		return nil, err
	}
	b := config.NewConfigBuilder().
		WithEngine(*engineName).
		WithPromotion(promotion).
		WithPerftWorkers(*perftWorkers).
		WithPerftCache(*perftCache, *cacheSize).
		WithLogLevel(strings.ToLower(*logLevel)).
		WithStoreDir(*storeDir).
		WithExport(config.ExportFormat(strings.ToLower(*exportFmt))).
		WithLineLength(*lineLength).
		WithColour(*colour)
	if logW != nil {
		b.WithLogFile(logW)
	}
	if out != nil {
		b.WithOutput(out)
	}
	// A game id without a directory still gets a record for the session.
	if *gameID != "" && *storeDir == "" {
		b.WithInMemoryStore(true)
	}

	cfg := b.Build()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRequest collects the positional work from the parsed flags.
func buildRequest() request {
	return request{
		FEN:        *fenFlag,
		Moves:      strings.Fields(*playMoves),
		MovesFrom:  *movesFrom,
		PerftDepth: *perftDepth,
		Divide:     *perftDivide,
		GameID:     *gameID,
		Analyze:    *analyze,
	}
}
