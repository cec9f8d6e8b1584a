package config

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                 string
	DBPath               string
	StockfishPath        string
	StockfishDepth       int
	EnginePoolSize       int
	LogLevel             string
	GameAnalysisLimit    int
	ArchiveLimit         int
	MaxConcurrentArchive int
	SaveWorkerCount      int
	SaveQueueSize        int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                 envOr("ADDR", ":8080"),
		DBPath:               envOr("DB_PATH", "file:chessprofile.db"),
		StockfishPath:        envOr("STOCKFISH_PATH", "stockfish"),
		StockfishDepth:       envIntOr("STOCKFISH_DEPTH", 12),
		EnginePoolSize:       envIntOr("ENGINE_POOL_SIZE", 1),
		LogLevel:             envOr("LOG_LEVEL", "INFO"),
		GameAnalysisLimit:    envIntOr("GAME_ANALYSIS_LIMIT", 10),
		ArchiveLimit:         envIntOr("ARCHIVE_LIMIT", 5),
		MaxConcurrentArchive: envIntOr("MAX_CONCURRENT_ARCHIVE", 10),
		SaveWorkerCount:      envIntOr("SAVE_WORKER_COUNT", 1),
		SaveQueueSize:        envIntOr("SAVE_QUEUE_SIZE", 32),
	}
}

// Validate checks the configuration for obvious misconfiguration, collecting
// every problem into a single error.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.StockfishDepth < 1 || c.StockfishDepth > 30 {
		problems = append(problems, fmt.Sprintf("STOCKFISH_DEPTH must be between 1 and 30, got %d", c.StockfishDepth))
	}
	if c.EnginePoolSize < 1 {
		problems = append(problems, fmt.Sprintf("ENGINE_POOL_SIZE must be at least 1, got %d", c.EnginePoolSize))
	}
	if c.StockfishPath != "" {
		if _, err := exec.LookPath(c.StockfishPath); err != nil {
			problems = append(problems, fmt.Sprintf("STOCKFISH_PATH %q not found in PATH", c.StockfishPath))
		}
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.GameAnalysisLimit < 0 {
		problems = append(problems, fmt.Sprintf("GAME_ANALYSIS_LIMIT cannot be negative, got %d", c.GameAnalysisLimit))
	}
	if c.ArchiveLimit < 0 {
		problems = append(problems, fmt.Sprintf("ARCHIVE_LIMIT cannot be negative, got %d", c.ArchiveLimit))
	}
	if c.MaxConcurrentArchive < 1 {
		problems = append(problems, fmt.Sprintf("MAX_CONCURRENT_ARCHIVE must be at least 1, got %d", c.MaxConcurrentArchive))
	}
	if c.SaveWorkerCount < 1 {
		problems = append(problems, fmt.Sprintf("SAVE_WORKER_COUNT must be at least 1, got %d", c.SaveWorkerCount))
	}
	if c.SaveQueueSize < 1 {
		problems = append(problems, fmt.Sprintf("SAVE_QUEUE_SIZE must be at least 1, got %d", c.SaveQueueSize))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
