package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// validConfig leaves StockfishPath empty so tests don't depend on an engine
// binary being installed.
func validConfig() Config {
	return Config{
		Addr:                 ":8080",
		DBPath:               "file:test.db",
		StockfishPath:        "",
		StockfishDepth:       12,
		EnginePoolSize:       1,
		LogLevel:             "INFO",
		GameAnalysisLimit:    10,
		ArchiveLimit:         5,
		MaxConcurrentArchive: 10,
		SaveWorkerCount:      1,
		SaveQueueSize:        32,
	}
}

func TestValidateOK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }, "ADDR cannot be empty"},
		{"empty db path", func(c *Config) { c.DBPath = "" }, "DB_PATH cannot be empty"},
		{"depth too low", func(c *Config) { c.StockfishDepth = 0 }, "STOCKFISH_DEPTH"},
		{"depth too high", func(c *Config) { c.StockfishDepth = 31 }, "STOCKFISH_DEPTH"},
		{"zero pool", func(c *Config) { c.EnginePoolSize = 0 }, "ENGINE_POOL_SIZE"},
		{"bad log level", func(c *Config) { c.LogLevel = "LOUD" }, "LOG_LEVEL"},
		{"negative game limit", func(c *Config) { c.GameAnalysisLimit = -1 }, "GAME_ANALYSIS_LIMIT"},
		{"negative archive limit", func(c *Config) { c.ArchiveLimit = -1 }, "ARCHIVE_LIMIT"},
		{"zero concurrency", func(c *Config) { c.MaxConcurrentArchive = 0 }, "MAX_CONCURRENT_ARCHIVE"},
		{"zero save workers", func(c *Config) { c.SaveWorkerCount = 0 }, "SAVE_WORKER_COUNT"},
		{"zero save queue", func(c *Config) { c.SaveQueueSize = 0 }, "SAVE_QUEUE_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""
	cfg.StockfishDepth = 0

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR")
	assert.Contains(t, err.Error(), "STOCKFISH_DEPTH")
}
