// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the EstateHub API server.

EstateHub is a property-listing marketplace: users browse and filter
approved listings, submit their own for moderation and book them; admins
moderate submissions, manage accounts and read feedback.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	JWT_SECRET=change-me go run main.go

Or with flags:

	go run main.go -p 3318 -t postgres -d "postgres://..." --jwt-secret change-me

# Configuration

Required settings:

  - JWT_SECRET (--jwt-secret): token signing secret
  - DATABASE_URL (-d): required for PostgreSQL only

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite (default) or postgres
  - TOKEN_TTL (--token-ttl): token lifetime (default: 24h)
  - ADMIN_USERNAME / ADMIN_PASSWORD: bootstrap admin account

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, properties, users, feedback, stats)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, bearer auth, JSON helpers
  - models: Domain and request/response types
  - auth: Password hashing and token issuing
  - db: Connection, schema creation and admin seeding
  - cliparse: Configuration parsing

The client side lives in:

  - listing: the pure listing filter engine
  - api: the HTTP client for this server
  - session: the session controller (auth stage, view state machine, loads)
  - cmd/estatectl: a terminal client driving the session controller

See package documentation for each component.
*/
package main
