package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Snapshot persistence
	SnapshotDir string

	// Translation gateway
	DeepLAPIKey    string
	DeepLHost      string
	SourceLanguage string
	TargetLanguage string

	// OCR
	OCRLanguage string
	OCRUpscale  int

	// Upload limits
	MaxUploadBytes int64

	// PDF row grouping
	RowTolerance float64

	// Server timeouts
	ShutdownTimeout time.Duration
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8070"),

		APIKey: os.Getenv("FOLIO_API_KEY"),

		SnapshotDir: envOr("FOLIO_SNAPSHOT_DIR", "snapshots"),

		DeepLAPIKey:    os.Getenv("DEEPL_API_KEY"),
		DeepLHost:      envOr("DEEPL_API_HOST", "deep-translate1.p.rapidapi.com"),
		SourceLanguage: envOr("FOLIO_SOURCE_LANG", "AUTO"),
		TargetLanguage: envOr("FOLIO_TARGET_LANG", "KO"),

		OCRLanguage: envOr("FOLIO_OCR_LANG", "eng"),
		OCRUpscale:  envInt("FOLIO_OCR_UPSCALE", 2),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		RowTolerance: envFloat("FOLIO_ROW_TOLERANCE", 3.0),

		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if cfg.OCRUpscale <= 0 {
		cfg.OCRUpscale = 1
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.RowTolerance <= 0 {
		cfg.RowTolerance = 3.0
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}

	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
