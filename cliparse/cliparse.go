// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DatabasePostgres = "postgres"
	DatabaseSQLite   = "sqlite"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
}

type ClientConfig struct {
	ServerURL string
	Timeout   time.Duration
	Debug     bool
}

// loadDotEnv reads .env if present. Variables already set win.
func loadDotEnv() {
	_ = godotenv.Load()
}

// ParseFlags validates server flags and fills gaps from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	loadDotEnv()

	fs := flag.NewFlagSet("estatehub", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.DurationVar(&cfg.TokenTTL, "token-ttl", 0, "Access token lifetime")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "Token signing secret (prefer env)")
	fs.StringVar(&cfg.AdminUsername, "admin-user", "", "Bootstrap admin username")
	fs.StringVar(&cfg.AdminPassword, "admin-password", "", "Bootstrap admin password (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "estatehub.db"
	}

	if cfg.TokenTTL == 0 {
		if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
			d, err := time.ParseDuration(ttl)
			if err != nil {
				return Config{}, errors.New("invalid TOKEN_TTL env variable")
			}
			cfg.TokenTTL = d
		} else {
			cfg.TokenTTL = 24 * time.Hour
		}
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if cfg.AdminUsername == "" {
		cfg.AdminUsername = os.Getenv("ADMIN_USERNAME")
	}
	if cfg.AdminPassword == "" {
		cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	}
	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		return Config{}, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

// ParseClientFlags parses estatectl flags
func ParseClientFlags(args []string) (ClientConfig, error) {
	var cfg ClientConfig

	loadDotEnv()

	fs := flag.NewFlagSet("estatectl", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerURL, "server", "", "API base URL (e.g. http://localhost:3318)")
	fs.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "Per-request timeout")
	fs.BoolVar(&cfg.Debug, "debug", false, "Verbose logging")

	if err := fs.Parse(args); err != nil {
		return ClientConfig{}, err
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = os.Getenv("ESTATEHUB_SERVER")
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = "http://localhost:3318"
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")

	if cfg.Timeout <= 0 {
		return ClientConfig{}, errors.New("timeout must be positive")
	}

	return cfg, nil
}
