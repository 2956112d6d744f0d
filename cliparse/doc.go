// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration for
the API server and the estatectl client.

# Server Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

Fields:

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: connection string (required for postgres, defaults to
    estatehub.db for sqlite)
  - JWTSecret: token signing secret (required)
  - TokenTTL: access token lifetime (default: 24h)
  - AdminUsername, AdminPassword: optional bootstrap admin account

# CLI Flags

	-p               Server port
	-d               Database URL
	-t               Database type
	--jwt-secret     Token signing secret
	--token-ttl      Token lifetime
	--admin-user     Bootstrap admin username
	--admin-password Bootstrap admin password

# Environment Variables

Flags fall back to environment variables, and a .env file in the working
directory is loaded first (existing variables are never overwritten):

	PORT           → -p
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	JWT_SECRET     → --jwt-secret
	TOKEN_TTL      → --token-ttl
	ADMIN_USERNAME → --admin-user
	ADMIN_PASSWORD → --admin-password

CLI flags take precedence over environment variables.

# Client Configuration

ParseClientFlags serves estatectl:

	-server  API base URL (ESTATEHUB_SERVER, default http://localhost:3318)
	-timeout per-request timeout (default 10s)
	-debug   debug logging
*/
package cliparse
