// Package game holds the authoritative board of one game. A Game serializes
// moves with a mutex so that several callers, such as a local player and a
// network peer, never interleave, and notifies subscribers after each
// committed move.
package game

import (
	"sync"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/engine"
	"github.com/lgbarn/localchess-go/internal/errors"
)

// Event describes one committed move.
type Event struct {
	Move   chess.Move
	Flags  chess.Flags  // status after the move, including checkmate
	FEN    string       // position after the move
	SAN    string       // the move in SAN, for the position before it
	Ply    int          // 1 for the first move of the game
	Colour chess.Colour // side that moved
}

// Listener receives events in commit order, after the game lock is released.
// It usually runs on the goroutine that performed the move; a move committed
// while listeners are already running is delivered by that goroutine instead.
type Listener func(Event)

// Game is safe for concurrent use.
type Game struct {
	mu        sync.Mutex
	board     chess.Board
	startFEN  string
	strategy  engine.Strategy
	promotion chess.PieceType
	logger    log.Interface
	listeners []Listener
	history   []Event
	pending   []Event // committed, not yet delivered
	draining  bool
}

// Option configures a Game.
type Option func(*Game) error

// WithFEN starts the game from fen instead of the initial position.
func WithFEN(fen string) Option {
	return func(g *Game) error {
		b, err := engine.NewBoardFromFEN(fen)
		if err != nil {
			return err
		}
		g.board = *b
		return nil
	}
}

// WithStrategy selects the move generator.
func WithStrategy(s engine.Strategy) Option {
	return func(g *Game) error {
		if s != nil {
			g.strategy = s
		}
		return nil
	}
}

// WithPromotion sets the piece used when move text names none.
func WithPromotion(t chess.PieceType) Option {
	return func(g *Game) error {
		g.promotion = engine.NormalizePromotion(t)
		return nil
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l log.Interface) Option {
	return func(g *Game) error {
		if l != nil {
			g.logger = l
		}
		return nil
	}
}

// New creates a game at the initial position unless WithFEN says otherwise.
func New(opts ...Option) (*Game, error) {
	g := &Game{
		board:     *engine.NewInitialBoard(),
		strategy:  engine.Mailbox{},
		promotion: chess.DefaultPromotion,
		logger:    &log.Logger{Handler: discard.New(), Level: log.FatalLevel},
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	g.startFEN = engine.BoardToFEN(&g.board)
	return g, nil
}

// Board returns a copy of the current position.
func (g *Game) Board() chess.Board {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board
}

// LegalMoves returns the squares the piece on sq may move to.
func (g *Game) LegalMoves(sq chess.Square) []chess.Square {
	g.mu.Lock()
	defer g.mu.Unlock()
	set := g.strategy.LegalMoves(&g.board, sq, g.promotion)
	return set.Destinations()
}

// Flags returns the check and checkmate state of the current position.
func (g *Game) Flags() chess.Flags {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.StatusWith(g.strategy, &g.board)
}

// CurrentFEN returns the FEN of the current position.
func (g *Game) CurrentFEN() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return engine.BoardToFEN(&g.board)
}

// StartFEN returns the FEN the game started from.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// ToMove returns the side to move.
func (g *Game) ToMove() chess.Colour {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.board.ToMove
}

// Perform plays move if it is legal for the side to move. An unset
// promotion uses the game's default. It reports whether the move was made.
func (g *Game) Perform(move chess.Move) bool {
	_, ok := g.perform(move, "")
	return ok
}

// PerformText resolves move text (SAN or UCI) and plays it.
func (g *Game) PerformText(text string) (Event, error) {
	g.mu.Lock()
	m, err := engine.ParseMoveWith(g.strategy, &g.board, text, g.promotion)
	if err != nil {
		g.mu.Unlock()
		g.logger.WithError(err).WithField("text", text).Warn("unresolved move")
		return Event{}, err
	}
	ev, ok := g.performLocked(m, text)
	if !ok {
		return Event{}, &errors.MoveError{
			Err: errors.ErrIllegalMove, Text: text, From: m.From.String(), To: m.To.String(),
		}
	}
	g.notify()
	return ev, nil
}

func (g *Game) perform(move chess.Move, text string) (Event, bool) {
	g.mu.Lock()
	ev, ok := g.performLocked(move, text)
	if ok {
		g.notify()
	}
	return ev, ok
}

// performLocked runs with g.mu held and always releases it.
func (g *Game) performLocked(move chess.Move, text string) (Event, bool) {
	if move.Promotion == chess.NoPiece {
		move.Promotion = g.promotion
	}
	before := g.board
	from, to := before.At(move.From), before.At(move.To)

	if !engine.PerformWith(g.strategy, &g.board, &move) {
		g.mu.Unlock()
		g.logger.WithFields(log.Fields{
			"from":  move.From.String(),
			"to":    move.To.String(),
			"piece": from.Type.String(),
			"text":  text,
		}).Warnf("illegal move %s (%s) -> %s (%s)", move.From, from.Type, move.To, to.Type)
		return Event{}, false
	}

	ev := Event{
		Move:   move,
		Flags:  engine.StatusWith(g.strategy, &g.board),
		FEN:    engine.BoardToFEN(&g.board),
		SAN:    engine.FormatSAN(&before, move),
		Ply:    len(g.history) + 1,
		Colour: before.ToMove,
	}
	g.history = append(g.history, ev)
	g.pending = append(g.pending, ev)
	g.mu.Unlock()

	ctx := g.logger.WithFields(log.Fields{
		"ply":  ev.Ply,
		"move": ev.Move.UCI(),
		"san":  ev.SAN,
	})
	ctx.Debug("move committed")
	if ev.Flags.InCheckmate(ev.Colour.Opposite()) {
		ctx.WithField("winner", ev.Colour.String()).Info("checkmate")
	}
	return ev, true
}

// notify delivers pending events to the listeners. Only one goroutine drains
// the queue at a time, so events arrive in ply order.
func (g *Game) notify() {
	g.mu.Lock()
	if g.draining {
		g.mu.Unlock()
		return
	}
	g.draining = true
	for len(g.pending) > 0 {
		ev := g.pending[0]
		g.pending = g.pending[1:]
		listeners := append([]Listener(nil), g.listeners...)
		g.mu.Unlock()
		for _, fn := range listeners {
			fn(ev)
		}
		g.mu.Lock()
	}
	g.draining = false
	g.mu.Unlock()
}

// Subscribe registers fn for every later committed move.
func (g *Game) Subscribe(fn Listener) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}

// History returns the committed moves in order.
func (g *Game) History() []Event {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Event(nil), g.history...)
}

// Status reports whether the side to move has been checkmated or
// stalemated. Both are false while the game is in progress.
func (g *Game) Status() (checkmate, stalemate bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c := g.board.ToMove
	if engine.StatusWith(g.strategy, &g.board).InCheckmate(c) {
		return true, false
	}
	return false, engine.IsStalemateWith(g.strategy, &g.board, c)
}
