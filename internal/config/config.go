package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr           string
	LogLevel           slog.Level
	OllamaBaseURL      string
	LLMModel           string
	LLMFormat          string
	LLMTimeout         time.Duration
	CORSAllowedOrigins []string
}

// Defaults returns the configuration used when no environment is set.
func Defaults() Config {
	return Config{
		HTTPAddr:           ":8080",
		LogLevel:           slog.LevelInfo,
		OllamaBaseURL:      "http://localhost:11434",
		LLMModel:           "mistral",
		LLMTimeout:         120 * time.Second,
		CORSAllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first; variables already set in the environment win.
func Load() (Config, error) {
	return LoadFile(".env")
}

// LoadFile is Load with an explicit dotenv path. A missing file is not an error.
func LoadFile(dotenv string) (Config, error) {
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}

	c := Defaults()
	c.HTTPAddr = envOr("HTTP_ADDR", c.HTTPAddr)
	c.OllamaBaseURL = envOr("OLLAMA_BASE_URL", c.OllamaBaseURL)
	c.LLMModel = envOr("LLM_MODEL", c.LLMModel)
	c.LLMFormat = os.Getenv("LLM_FORMAT")
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		c.CORSAllowedOrigins = parseList(v)
	}

	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("invalid LLM_TIMEOUT %q: must be positive", v)
		}
		c.LLMTimeout = d
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		level, err := ParseLogLevel(v)
		if err != nil {
			return Config{}, err
		}
		c.LogLevel = level
	}

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// ParseLogLevel accepts debug, info, warn or error in any case.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
