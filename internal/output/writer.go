package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lgbarn/localchess-go/internal/config"
	"github.com/lgbarn/localchess-go/internal/errors"
	"github.com/lgbarn/localchess-go/internal/store"
)

// GameWriter is the interface for writing games to output.
// Different implementations handle different output formats (PGN, JSON).
type GameWriter interface {
	// WriteGame writes a single game to the output.
	WriteGame(rec *store.Record) error

	// Flush flushes any buffered data to the underlying writer.
	Flush() error

	// Close closes the writer and releases any resources.
	// For batch writers (like JSON), this also writes any pending output.
	Close() error
}

// NewGameWriter returns the writer for format.
func NewGameWriter(format config.ExportFormat, w io.Writer, lineLength int) (GameWriter, error) {
	switch format {
	case config.ExportPGN:
		return NewPGNWriter(w, lineLength), nil
	case config.ExportJSON:
		return NewJSONWriter(w), nil
	}
	return nil, fmt.Errorf("export format %q: %w", string(format), errors.ErrInvalidConfig)
}

// PGNWriter writes games in PGN format.
type PGNWriter struct {
	w          io.Writer
	lineLength int
}

// NewPGNWriter creates a new PGN writer.
func NewPGNWriter(w io.Writer, lineLength int) *PGNWriter {
	return &PGNWriter{
		w:          w,
		lineLength: lineLength,
	}
}

// WriteGame writes a game in PGN format.
func (pw *PGNWriter) WriteGame(rec *store.Record) error {
	return OutputGame(pw.w, rec, pw.lineLength)
}

// Flush flushes the PGN writer (no-op for PGN as it writes immediately).
func (pw *PGNWriter) Flush() error {
	return nil
}

// Close closes the PGN writer.
func (pw *PGNWriter) Close() error {
	return nil
}

// JSONWriter writes games in JSON format.
// It buffers games and writes them as a JSON array on Close or Flush.
type JSONWriter struct {
	w      io.Writer
	games  []*store.Record
	single bool // If true, write each game immediately instead of batching
}

// NewJSONWriter creates a new JSON writer.
// By default, it batches games and writes them as an array on Close().
func NewJSONWriter(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:     w,
		games: make([]*store.Record, 0),
	}
}

// NewJSONWriterSingle creates a JSON writer that writes each game immediately.
func NewJSONWriterSingle(w io.Writer) *JSONWriter {
	return &JSONWriter{
		w:      w,
		single: true,
	}
}

// WriteGame buffers a game for JSON output (or writes immediately in single mode).
func (jw *JSONWriter) WriteGame(rec *store.Record) error {
	if jw.single {
		enc := json.NewEncoder(jw.w)
		enc.SetIndent("", "  ")
		return enc.Encode(GameToJSON(rec))
	}

	jw.games = append(jw.games, rec)
	return nil
}

// Flush writes all buffered games as a JSON array.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.games) == 0 {
		return nil
	}

	out := &JSONOutput{
		Games: make([]*JSONGame, 0, len(jw.games)),
	}
	for _, rec := range jw.games {
		out.Games = append(out.Games, GameToJSON(rec))
	}

	enc := json.NewEncoder(jw.w)
	enc.SetIndent("", "  ")
	err := enc.Encode(out)

	// Clear buffer after writing
	jw.games = jw.games[:0]

	return err
}

// Close flushes and closes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
