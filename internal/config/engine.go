package config

import (
	"fmt"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/engine"
	"github.com/lgbarn/localchess-go/internal/errors"
)

// EngineConfig selects how moves are generated.
type EngineConfig struct {
	// Name is a registered strategy name, "mailbox" or "bitboard".
	// The bitboard strategy is only registered once its package is imported.
	Name string

	// Promotion is the piece a pawn becomes when move text names none.
	Promotion chess.PieceType
}

// NewEngineConfig returns the default engine settings.
func NewEngineConfig() EngineConfig {
	return EngineConfig{
		Name:      engine.MailboxName,
		Promotion: chess.DefaultPromotion,
	}
}

// Validate checks that the strategy exists and the promotion piece is usable.
func (c *EngineConfig) Validate() error {
	if _, err := engine.StrategyByName(c.Name); err != nil {
		return err
	}
	if !c.Promotion.Promotable() {
		return fmt.Errorf("promotion to %v: %w", c.Promotion, errors.ErrInvalidConfig)
	}
	return nil
}

// Strategy returns the configured strategy.
func (c *EngineConfig) Strategy() (engine.Strategy, error) {
	return engine.StrategyByName(c.Name)
}
