package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerAddr string

	StorageBackend string
	DataDir        string
	DatabasePath   string
	CatalogPath    string

	GenerationDelay  time.Duration
	AutosaveInterval time.Duration

	OpenBrowser bool

	WindowWidth  int
	WindowHeight int
}

// Desktop window limits
const (
	DefaultWindowWidth  = 1200
	DefaultWindowHeight = 860
	MinWindowWidth      = 720
	MinWindowHeight     = 560
)

// Load reads an optional .env file and returns the populated Config.
// Variables already present in the environment win over the file.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[CONFIG] No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv builds a Config from the current environment only
func FromEnv() *Config {
	cfg := &Config{
		ServerAddr: getEnv("SERVER_ADDR", "127.0.0.1:8080"),

		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", BackendJSON)),
		DataDir:        getEnv("DATA_DIR", ""),
		DatabasePath:   getEnv("DATABASE_PATH", ""),
		CatalogPath:    getEnv("CATALOG_PATH", ""),

		GenerationDelay:  getEnvDuration("GENERATION_DELAY", 2*time.Second),
		AutosaveInterval: getEnvDuration("AUTOSAVE_INTERVAL", 30*time.Second),

		OpenBrowser: getEnvBool("OPEN_BROWSER", true),

		WindowWidth:  getEnvInt("WINDOW_WIDTH", DefaultWindowWidth),
		WindowHeight: getEnvInt("WINDOW_HEIGHT", DefaultWindowHeight),
	}

	if cfg.StorageBackend != BackendJSON && cfg.StorageBackend != BackendSQLite {
		log.Printf("[CONFIG] Unknown STORAGE_BACKEND=%q, using %s", cfg.StorageBackend, BackendJSON)
		cfg.StorageBackend = BackendJSON
	}
	if cfg.GenerationDelay < 0 {
		cfg.GenerationDelay = 0
	}
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = 30 * time.Second
	}
	cfg.WindowWidth = max(cfg.WindowWidth, MinWindowWidth)
	cfg.WindowHeight = max(cfg.WindowHeight, MinWindowHeight)
	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
		log.Printf("[CONFIG] Invalid %s=%q, using %d", key, val, fallback)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	// Bare integers are milliseconds
	if ms, err := strconv.Atoi(val); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	log.Printf("[CONFIG] Invalid %s=%q, using %s", key, val, fallback)
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
