// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/estatehub/auth"
	"github.com/danielhkuo/estatehub/cliparse"
	"github.com/danielhkuo/estatehub/models"
)

// Open connects to the configured database and verifies the connection.
func Open(cfg cliparse.Config) (*sqlx.DB, error) {
	conn, err := sqlx.Connect(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.DatabaseType, err)
	}
	if cfg.DatabaseType == cliparse.DatabaseSQLite {
		// SQLite allows a single writer.
		conn.SetMaxOpenConns(1)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sqlx.DB) error {
	idColumn := "BIGSERIAL PRIMARY KEY"
	if db.DriverName() == cliparse.DatabaseSQLite {
		idColumn = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}

	_, err := db.Exec(fmt.Sprintf(schema, idColumn, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SeedAdmin creates the bootstrap admin account unless the username exists.
func SeedAdmin(ctx context.Context, db *sqlx.DB, username, password string) error {
	if username == "" {
		return nil
	}

	var existing int64
	err := db.GetContext(ctx, &existing, db.Rebind(`SELECT id FROM users WHERE username = ?`), username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to look up admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, db.Rebind(`
		INSERT INTO users (role, name, username, password_hash)
		VALUES (?, ?, ?, ?)
	`), models.RoleAdmin, "Administrator", username, hash)
	if err != nil {
		return fmt.Errorf("failed to seed admin: %w", err)
	}

	slog.Info("admin account created", "username", username)
	return nil
}

const schema = `
-- Users
CREATE TABLE IF NOT EXISTS users (
    id %s,
    role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('admin', 'user')),
    name TEXT NOT NULL,
    username TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL
);

-- Properties
CREATE TABLE IF NOT EXISTS properties (
    id %s,
    address TEXT NOT NULL,
    city TEXT NOT NULL,
    price DOUBLE PRECISION NOT NULL DEFAULT 0,
    rent_price DOUBLE PRECISION,
    bedrooms INTEGER NOT NULL DEFAULT 0,
    bathrooms INTEGER NOT NULL DEFAULT 0,
    sqft INTEGER NOT NULL DEFAULT 0,
    description TEXT NOT NULL DEFAULT '',
    image_urls TEXT NOT NULL DEFAULT '[]',
    image_url_360 TEXT,
    type TEXT NOT NULL,
    listing_type TEXT NOT NULL CHECK (listing_type IN ('sale', 'rent')),
    status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'booked')),
    booked_by_user_id BIGINT REFERENCES users(id),
    CHECK (status <> 'booked' OR booked_by_user_id IS NOT NULL)
);

CREATE INDEX IF NOT EXISTS idx_properties_status ON properties(status);
CREATE INDEX IF NOT EXISTS idx_properties_booked_by ON properties(booked_by_user_id);

-- Feedback
CREATE TABLE IF NOT EXISTS feedback (
    id TEXT PRIMARY KEY,
    message TEXT NOT NULL,
    user_id BIGINT,
    user_name TEXT,
    created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_feedback_created_at ON feedback(created_at);
`
