package config

import (
	"bytes"
	"testing"

	"github.com/apex/log"

	"github.com/lgbarn/localchess-go/internal/chess"
	"github.com/lgbarn/localchess-go/internal/engine"
	"github.com/lgbarn/localchess-go/internal/errors"
	"github.com/lgbarn/localchess-go/internal/testutil"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	if cfg.Engine.Name != engine.MailboxName {
		t.Errorf("Engine.Name = %q, want %q", cfg.Engine.Name, engine.MailboxName)
	}
	if cfg.Engine.Promotion != chess.Queen {
		t.Errorf("Engine.Promotion = %v, want Queen", cfg.Engine.Promotion)
	}
	if cfg.Perft.Workers != 0 {
		t.Errorf("Perft.Workers = %d, want 0", cfg.Perft.Workers)
	}
	if cfg.Perft.Cache {
		t.Error("Perft.Cache should be false by default")
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Store.Enabled() {
		t.Error("Store should be disabled by default")
	}
	if !cfg.Colour {
		t.Error("Colour should be true by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unknown engine", func(c *Config) { c.Engine.Name = "quantum" }, true},
		{"empty engine means mailbox", func(c *Config) { c.Engine.Name = "" }, false},
		{"king promotion", func(c *Config) { c.Engine.Promotion = chess.King }, true},
		{"knight promotion", func(c *Config) { c.Engine.Promotion = chess.Knight }, false},
		{"negative workers", func(c *Config) { c.Perft.Workers = -1 }, true},
		{"negative cache size", func(c *Config) { c.Perft.CacheSize = -1 }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"log off", func(c *Config) { c.Log.Level = LevelOff; c.Log.File = nil }, false},
		{"nil log file", func(c *Config) { c.Log.File = nil }, true},
		{"nil output", func(c *Config) { c.OutputFile = nil }, true},
		{"pgn export", func(c *Config) { c.Export = ExportPGN }, false},
		{"unknown export", func(c *Config) { c.Export = "epd" }, true},
		{"negative line length", func(c *Config) { c.LineLength = -1 }, true},
		{"dir and memory", func(c *Config) { c.Store.Dir = "/tmp/x"; c.Store.InMemory = true }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
			}
		})
	}
}

func TestConfigBuilder(t *testing.T) {
	var out, logs bytes.Buffer
	cfg := NewConfigBuilder().
		WithEngine(engine.MailboxName).
		WithPromotion(chess.Rook).
		WithPerftWorkers(3).
		WithPerftCache(true, 1024).
		WithLogLevel("debug").
		WithLogFile(&logs).
		WithInMemoryStore(true).
		WithColour(false).
		WithOutput(&out).
		WithExport(ExportJSON).
		WithLineLength(60).
		Build()

	if cfg.Engine.Promotion != chess.Rook {
		t.Errorf("Promotion = %v, want Rook", cfg.Engine.Promotion)
	}
	if cfg.Perft.Workers != 3 || !cfg.Perft.Cache || cfg.Perft.CacheSize != 1024 {
		t.Errorf("Perft = %+v", cfg.Perft)
	}
	if !cfg.Store.Enabled() || cfg.Store.Path() != "" {
		t.Errorf("Store = %+v, want in-memory", cfg.Store)
	}
	if cfg.Colour {
		t.Error("Colour should be false")
	}
	if cfg.Export != ExportJSON || cfg.LineLength != 60 {
		t.Errorf("Export/LineLength = %q/%d", cfg.Export, cfg.LineLength)
	}
	if cfg.OutputFile != &out {
		t.Error("OutputFile not set")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
	s, err := cfg.Engine.Strategy()
	if err != nil || s.Name() != engine.MailboxName {
		t.Errorf("Strategy() = %v, %v", s, err)
	}
}

func TestStoreConfig_Path(t *testing.T) {
	c := StoreConfig{Dir: "/var/lib/chess"}
	if !c.Enabled() || c.Path() != "/var/lib/chess" {
		t.Errorf("Enabled/Path = %v/%q", c.Enabled(), c.Path())
	}
}

func TestLogConfig_Logger(t *testing.T) {
	var buf bytes.Buffer
	c := LogConfig{Level: "info", File: &buf}
	l := c.Logger()
	l.Debug("hidden")
	l.WithField("square", "e4").Info("shown")

	out := buf.String()
	if !bytes.Contains([]byte(out), []byte("shown")) || !bytes.Contains([]byte(out), []byte("square")) {
		t.Errorf("log output = %q, want the info entry with its field", out)
	}
	if bytes.Contains([]byte(out), []byte("hidden")) {
		t.Errorf("log output = %q, debug entry should be filtered", out)
	}

	buf.Reset()
	off := LogConfig{Level: LevelOff, File: &buf}
	off.Logger().Error("nothing")
	if buf.Len() != 0 {
		t.Errorf("log output with level off = %q", buf.String())
	}

	if _, ok := off.Logger().(*log.Logger); !ok {
		t.Error("Logger() should return *log.Logger")
	}
}
