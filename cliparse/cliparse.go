// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultOrigins are allowed when CLIENT_ORIGIN is unset.
var DefaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:8080",
	"http://localhost:8081",
	"https://lovable.dev",
}

type Config struct {
	Port           int
	ScannerDB      string
	ReviewedDB     string
	BasePath       string
	AllowedOrigins []string
	LogLevel       string
	LogFormat      string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var origins, envFile string

	fs := flag.NewFlagSet("canvass", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.ScannerDB, "scanner", "", "Scanner source (sqlite path or postgres URL)")
	fs.StringVar(&cfg.ReviewedDB, "reviewed", "", "Reviewed source (sqlite path or postgres URL)")
	fs.StringVar(&cfg.BasePath, "base", "", "Base directory for default source paths")
	fs.StringVar(&origins, "origins", "", "Comma-separated allowed CORS origins")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", "", "Log format (text or json)")
	fs.StringVar(&envFile, "env", ".env", "Optional dotenv file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Values already in the environment win over the dotenv file
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4000
		}
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port out of range: %d", cfg.Port)
	}

	if cfg.ScannerDB == "" {
		cfg.ScannerDB = os.Getenv("SCANNER_DB")
	}
	if cfg.ReviewedDB == "" {
		cfg.ReviewedDB = os.Getenv("REVIEWED_DB")
	}
	if cfg.BasePath == "" {
		cfg.BasePath = os.Getenv("DB_BASE_PATH")
	}

	if origins == "" {
		origins = os.Getenv("CLIENT_ORIGIN")
	}
	if origins == "" {
		cfg.AllowedOrigins = append([]string(nil), DefaultOrigins...)
	} else {
		cfg.AllowedOrigins = splitOrigins(origins)
	}

	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = os.Getenv("LOG_FORMAT")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	return cfg, nil
}

func splitOrigins(raw string) []string {
	var out []string
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
