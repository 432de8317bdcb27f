package engine

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/errors"
)

// Strategy produces the legal moves of one piece. Implementations must agree
// exactly; they differ only in how the moves are found.
type Strategy interface {
	// Name identifies the strategy in configuration.
	Name() string
	// LegalMoves returns the legal destinations of the piece on from.
	// It must not modify board.
	LegalMoves(board *chess.Board, from chess.Square, promotion chess.PieceType) MoveSet
}

// Mailbox is the canonical strategy: square-by-square generation followed by
// the legality filter.
type Mailbox struct{}

// MailboxName is the configuration name of the Mailbox strategy.
const MailboxName = "mailbox"

// Name returns "mailbox".
func (Mailbox) Name() string { return MailboxName }

// LegalMoves implements Strategy.
func (Mailbox) LegalMoves(board *chess.Board, from chess.Square, promotion chess.PieceType) MoveSet {
	return legalMoves(board, from, promotion)
}

var (
	strategiesMu sync.RWMutex
	strategies   = map[string]Strategy{MailboxName: Mailbox{}}
)

// RegisterStrategy makes a strategy available to StrategyByName.
// Registering a name twice replaces the earlier strategy.
func RegisterStrategy(s Strategy) {
	strategiesMu.Lock()
	defer strategiesMu.Unlock()
	strategies[s.Name()] = s
}

// StrategyByName looks up a registered strategy.
func StrategyByName(name string) (Strategy, error) {
	strategiesMu.RLock()
	defer strategiesMu.RUnlock()
	if name == "" {
		return Mailbox{}, nil
	}
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q: %w", name, errors.ErrInvalidConfig)
	}
	return s, nil
}

// StrategyNames lists the registered strategy names in order.
func StrategyNames() []string {
	strategiesMu.RLock()
	defer strategiesMu.RUnlock()
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
