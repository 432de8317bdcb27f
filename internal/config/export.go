package config

import (
	"fmt"

	"github.com/lgbarn/localchess-go/internal/errors"
)

// ExportFormat selects how the finished game is written out.
type ExportFormat string

const (
	ExportNone ExportFormat = ""
	ExportPGN  ExportFormat = "pgn"
	ExportJSON ExportFormat = "json"
)

// Validate rejects unknown formats.
func (f ExportFormat) Validate() error {
	switch f {
	case ExportNone, ExportPGN, ExportJSON:
		return nil
	}
	return fmt.Errorf("export format %q: %w", string(f), errors.ErrInvalidConfig)
}
