// localchess plays and inspects chess positions: it applies moves in SAN or
// UCI, lists legal moves, counts perft nodes, and records games on disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	_ "github.com/lgbarn/localchess-go/internal/bitboard" // registers the bitboard engine
	"github.com/lgbarn/localchess-go/internal/engine"
	"github.com/lgbarn/localchess-go/internal/errors"
)

const programVersion = "0.1.0"

func main() {
	log.SetHandler(cli.New(os.Stderr))

	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("localchess version %s\n", programVersion)
		os.Exit(0)
	}

	if err := execute(); err != nil {
		log.WithError(err).Fatal("localchess")
	}
}

// execute runs one invocation with the parsed flags. Files opened for -log-file
// and -o are closed before it returns.
func execute() (err error) {
	logW, closeLog, err := openLogFile()
	if err != nil {
		return err
	}
	defer closeLog()

	out, closeOut, err := openOutputFile()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeOut(); err == nil {
			err = cerr
		}
	}()

	cfg, err := applyFlags(logW, out)
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, cfg, buildRequest())
}

func noClose() error { return nil }

// openLogFile opens the -log-file target, or returns a nil writer for the
// default.
func openLogFile() (io.Writer, func() error, error) {
	if *logFile == "" {
		return nil, noClose, nil
	}
	file, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log file %s", *logFile)
	}
	return file, file.Close, nil
}

// openOutputFile creates the -o target, or returns a nil writer for stdout.
func openOutputFile() (io.Writer, func() error, error) {
	if *outputFile == "" {
		return nil, noClose, nil
	}
	file, err := os.Create(*outputFile) //nolint:gosec // G304: user-specified output path
	if err != nil {
		return nil, nil, errors.Wrapf(err, "create output file %s", *outputFile)
	}
	return file, file.Close, nil
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: localchess [options]\n\n")
	fmt.Fprintf(os.Stderr, "Plays moves on a chess position, lists legal moves and runs perft.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEngines: %v\n", engine.StrategyNames())
	fmt.Fprintf(os.Stderr, "\nExamples:\n")
	fmt.Fprintf(os.Stderr, "  localchess -play 'e4 e5 Nf3' -moves f1\n")
	fmt.Fprintf(os.Stderr, "  localchess -perft 5 -divide -cache\n")
	fmt.Fprintf(os.Stderr, "  localchess -store ~/.localchess -game casual -play 'd4'\n")
}
