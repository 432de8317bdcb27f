// Package config provides configuration for localchess.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"

	"github.com/lgbarn/localchess-go/internal/errors"
)

// Config holds all program configuration.
type Config struct {
	Engine EngineConfig
	Perft  PerftConfig
	Log    LogConfig
	Store  StoreConfig

	// Export writes the game as PGN or JSON after the moves are played.
	Export ExportFormat

	// LineLength wraps PGN movetext.
	LineLength int

	// Colour enables ANSI colours in board output.
	Colour bool

	// OutputFile receives boards, move lists and perft reports.
	OutputFile io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Engine:     NewEngineConfig(),
		Perft:      NewPerftConfig(),
		Log:        NewLogConfig(),
		Store:      NewStoreConfig(),
		LineLength: 80,
		Colour:     true,
		OutputFile: os.Stdout,
	}
}

// Validate checks every section and returns the first problem found,
// wrapping ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.OutputFile == nil {
		return errors.Wrap(errors.ErrInvalidConfig, "output file is nil")
	}
	if c.LineLength < 0 {
		return fmt.Errorf("line length %d: %w", c.LineLength, errors.ErrInvalidConfig)
	}
	for _, v := range []interface{ Validate() error }{&c.Engine, &c.Perft, &c.Log, &c.Store, c.Export} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Logger builds the logger described by the Log section.
func (c *Config) Logger() log.Interface {
	return c.Log.Logger()
}
