// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4000)
  - ScannerDB: Scanner source override (sqlite path or postgres URL)
  - ReviewedDB: Reviewed source override (sqlite path or postgres URL)
  - BasePath: Directory used to resolve default source paths (default: cwd)
  - AllowedOrigins: CORS allow-list
  - LogLevel, LogFormat: slog handler settings (default: info, text)

# CLI Flags

	-p           Server port
	-scanner     Scanner source
	-reviewed    Reviewed source
	-base        Base directory
	-origins     Comma-separated allowed origins
	-log-level   debug, info, warn, error
	-log-format  text or json
	-env         Dotenv file (default: .env, missing file is ignored)

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	SCANNER_DB    → -scanner
	REVIEWED_DB   → -reviewed
	DB_BASE_PATH  → -base
	CLIENT_ORIGIN → -origins
	LOG_LEVEL     → -log-level
	LOG_FORMAT    → -log-format

CLI flags take precedence over environment variables. The dotenv file only
fills variables that are not already set.
*/
package cliparse
