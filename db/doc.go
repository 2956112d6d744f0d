// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the database and manages the schema.

# Drivers

Two drivers are registered: lib/pq ("postgres") and modernc.org/sqlite
("sqlite", pure Go, the default). Open picks one from the config:

	conn, err := db.Open(cfg)

Queries across the code base are written with ? placeholders and passed
through sqlx.DB.Rebind, which rewrites them to $N for postgres.

# Schema

CreateSchema creates three tables and is idempotent:

  - users: id, role (admin|user), name, username (unique), password_hash
  - properties: listing fields, image_urls (JSON text), status
    (pending|approved|booked), booked_by_user_id
  - feedback: id (uuid text), message, user_id, user_name, created_at (RFC 3339)

Only the auto-increment id column differs between dialects. A CHECK
constraint keeps booked properties tied to a user.

# Seeding

SeedAdmin creates the bootstrap admin account when it does not exist yet:

	err := db.SeedAdmin(ctx, conn, cfg.AdminUsername, cfg.AdminPassword)
*/
package db
