// Package store persists game records in BadgerDB. A record holds the
// starting position, the moves played in coordinate and SAN form, and the
// latest position and status, keyed by a caller-chosen game id.
package store

import (
	"encoding/json"
	stderrors "errors"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/errors"
	"github.com/lgbarn/localchess-go/internal/game"
)

const keyPrefix = "game/"

// Record is the stored form of one game.
type Record struct {
	ID       string      `json:"id"`
	StartFEN string      `json:"start_fen"`
	FEN      string      `json:"fen"`
	Moves    []string    `json:"moves"` // coordinate notation
	SAN      []string    `json:"san"`
	Flags    chess.Flags `json:"flags"`
	Updated  time.Time   `json:"updated"`
}

// Store wraps a Badger database.
type Store struct {
	db     *badger.DB
	logger log.Interface
	mu     sync.Mutex // serializes read-modify-write of records
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for failures inside event listeners.
func WithLogger(l log.Interface) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// Open opens or creates the database in dir. An empty dir opens a
// memory-only database that is lost on Close.
func Open(dir string, opts ...Option) (*Store, error) {
	bopts := badger.DefaultOptions(dir)
	if dir == "" {
		bopts = bopts.WithInMemory(true)
	}
	bopts.Logger = nil

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, errors.Wrapf(err, "open store %q", dir)
	}
	s := &Store{
		db:     db,
		logger: &log.Logger{Handler: discard.New(), Level: log.FatalLevel},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func key(id string) []byte {
	return []byte(keyPrefix + id)
}

// Save writes rec, replacing any record with the same id.
func (s *Store) Save(rec *Record) error {
	rec.Updated = time.Now().UTC()
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(rec.ID), data)
	})
}

// Load reads the record with id. A missing record yields ErrNotFound.
func (s *Store) Load(id string) (*Record, error) {
	rec := &Record{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(id))
		if stderrors.Is(err, badger.ErrKeyNotFound) {
			return errors.Wrapf(errors.ErrNotFound, "game %q", id)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete removes the record with id. Deleting a missing record is not an
// error.
func (s *Store) Delete(id string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key(id))
	})
}

// List returns the ids of all stored games in key order.
func (s *Store) List() ([]string, error) {
	var ids []string
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			k := it.Item().KeyCopy(nil)
			ids = append(ids, string(k[len(prefix):]))
		}
		return nil
	})
	return ids, err
}

// append adds one committed move to the record with id.
// append adds ev to the stored record. A ply already stored is ignored and a
// ply that would leave a gap is rejected.
func (s *Store) append(id string, ev game.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.Load(id)
	if err != nil {
		return err
	}
	switch n := len(rec.Moves); {
	case ev.Ply <= n:
		return nil
	case ev.Ply > n+1:
		return errors.Wrapf(errors.ErrOutOfOrder, "game %q: ply %d after %d", id, ev.Ply, n)
	}
	rec.Moves = append(rec.Moves, ev.Move.UCI())
	rec.SAN = append(rec.SAN, ev.SAN)
	rec.FEN = ev.FEN
	rec.Flags = ev.Flags
	return s.Save(rec)
}

// NewRecord snapshots g under id.
func NewRecord(id string, g *game.Game) *Record {
	rec := &Record{
		ID:       id,
		StartFEN: g.StartFEN(),
		FEN:      g.CurrentFEN(),
		Flags:    g.Flags(),
		Moves:    []string{},
		SAN:      []string{},
	}
	for _, ev := range g.History() {
		rec.Moves = append(rec.Moves, ev.Move.UCI())
		rec.SAN = append(rec.SAN, ev.SAN)
	}
	return rec
}

// Track saves the current state of g under id and keeps the record up to
// date as moves are committed. Moves already in g's history are included.
func (s *Store) Track(id string, g *game.Game) error {
	if err := s.Save(NewRecord(id, g)); err != nil {
		return err
	}

	g.Subscribe(func(ev game.Event) {
		if err := s.append(id, ev); err != nil {
			s.logger.WithError(err).WithField("game", id).Error("record move")
		}
	})
	return nil
}

// Replay rebuilds a game from rec by playing its moves from the starting
// position.
func Replay(rec *Record, opts ...game.Option) (*game.Game, error) {
	opts = append([]game.Option{game.WithFEN(rec.StartFEN)}, opts...)
	g, err := game.New(opts...)
	if err != nil {
		return nil, err
	}
	for _, text := range rec.Moves {
		if _, err := g.PerformText(text); err != nil {
			return nil, errors.Wrapf(err, "replay game %q", rec.ID)
		}
	}
	return g, nil
}
