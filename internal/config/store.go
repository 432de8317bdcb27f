package config

import "github.com/lgbarn/localchess-go/internal/errors"

// StoreConfig locates the game database.
type StoreConfig struct {
	// Dir is the Badger directory. Empty disables persistence unless
	// InMemory is set.
	Dir string

	// InMemory keeps the database in memory only.
	InMemory bool
}

// NewStoreConfig returns the default store settings.
func NewStoreConfig() StoreConfig {
	return StoreConfig{}
}

// Enabled reports whether games should be stored at all.
func (c *StoreConfig) Enabled() bool {
	return c.Dir != "" || c.InMemory
}

// Path is the directory to open; empty for an in-memory database.
func (c *StoreConfig) Path() string {
	if c.InMemory {
		return ""
	}
	return c.Dir
}

// Validate rejects a directory combined with in-memory mode.
func (c *StoreConfig) Validate() error {
	if c.InMemory && c.Dir != "" {
		return errors.Wrap(errors.ErrInvalidConfig, "store directory set with in-memory store")
	}
	return nil
}
