package config

import (
	"fmt"

	"github.com/lgbarn/localchess-go/internal/errors"
)

// PerftConfig holds settings for perft runs.
type PerftConfig struct {
	// Workers is the number of worker goroutines; 0 means one per CPU.
	Workers int

	// Cache enables the shared transposition table.
	Cache bool

	// CacheSize caps the number of table entries; 0 means unlimited.
	CacheSize int
}

// NewPerftConfig returns the default perft settings.
func NewPerftConfig() PerftConfig {
	return PerftConfig{CacheSize: 1 << 22}
}

// Validate rejects negative counts.
func (c *PerftConfig) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("perft workers %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("perft cache size %d: %w", c.CacheSize, errors.ErrInvalidConfig)
	}
	return nil
}
