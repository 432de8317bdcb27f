package config

import (
	"io"

	"github.com/lgbarn/localchess-go/internal/chess"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithEngine selects the move generation strategy by name.
func (b *ConfigBuilder) WithEngine(name string) *ConfigBuilder {
	b.cfg.Engine.Name = name
	return b
}

// WithPromotion sets the default promotion piece.
func (b *ConfigBuilder) WithPromotion(t chess.PieceType) *ConfigBuilder {
	b.cfg.Engine.Promotion = t
	return b
}

// WithPerftWorkers sets the number of perft workers.
func (b *ConfigBuilder) WithPerftWorkers(n int) *ConfigBuilder {
	b.cfg.Perft.Workers = n
	return b
}

// WithPerftCache enables the perft transposition table.
func (b *ConfigBuilder) WithPerftCache(enabled bool, size int) *ConfigBuilder {
	b.cfg.Perft.Cache = enabled
	b.cfg.Perft.CacheSize = size
	return b
}

// WithLogLevel sets the log level name.
func (b *ConfigBuilder) WithLogLevel(level string) *ConfigBuilder {
	b.cfg.Log.Level = level
	return b
}

// WithLogFile sets the log writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.Log.File = w
	return b
}

// WithStoreDir persists games in dir.
func (b *ConfigBuilder) WithStoreDir(dir string) *ConfigBuilder {
	b.cfg.Store.Dir = dir
	return b
}

// WithInMemoryStore keeps games in an in-memory database.
func (b *ConfigBuilder) WithInMemoryStore(enabled bool) *ConfigBuilder {
	b.cfg.Store.InMemory = enabled
	return b
}

// WithColour controls ANSI colours in board output.
func (b *ConfigBuilder) WithColour(enabled bool) *ConfigBuilder {
	b.cfg.Colour = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithExport writes the game in format once play is done.
func (b *ConfigBuilder) WithExport(format ExportFormat) *ConfigBuilder {
	b.cfg.Export = format
	return b
}

// WithLineLength sets the PGN movetext width.
func (b *ConfigBuilder) WithLineLength(n int) *ConfigBuilder {
	b.cfg.LineLength = n
	return b
}
