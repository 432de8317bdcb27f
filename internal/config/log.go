package config

import (
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/text"

	"github.com/lgbarn/localchess-go/internal/errors"
)

// LevelOff disables logging.
const LevelOff = "off"

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is an apex/log level name ("debug", "info", "warn", "error",
	// "fatal") or "off".
	Level string

	// File receives log output.
	File io.Writer
}

// NewLogConfig returns the default logging settings.
func NewLogConfig() LogConfig {
	return LogConfig{
		Level: "warn",
		File:  os.Stderr,
	}
}

// Validate checks the level name.
func (c *LogConfig) Validate() error {
	if c.Level == LevelOff {
		return nil
	}
	if _, err := log.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("log level %q: %w", c.Level, errors.ErrInvalidConfig)
	}
	if c.File == nil {
		return errors.Wrap(errors.ErrInvalidConfig, "log file is nil")
	}
	return nil
}

// Logger builds a text logger writing to File, or one that discards
// everything when logging is off or the settings are unusable.
func (c *LogConfig) Logger() log.Interface {
	lvl, err := log.ParseLevel(c.Level)
	if c.Level == LevelOff || err != nil || c.File == nil {
		return &log.Logger{Handler: discard.New(), Level: log.FatalLevel}
	}
	return &log.Logger{Handler: text.New(c.File), Level: lvl}
}
