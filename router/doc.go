// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the EstateHub API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

Every route except /health is wrapped with middleware.WithLogging.

# Endpoints

Health:

	GET /health

Accounts (public):

	POST /auth/register - Create a user account
	POST /auth/login    - Exchange credentials for a bearer token

Properties:

	GET    /properties?status=    - List properties (public)
	POST   /properties            - Submit a property (token)
	PATCH  /properties/{id}       - Edit (admin) or book (user)
	DELETE /properties/{id}       - Remove (admin)
	GET    /users/{id}/properties - Bookings of a user (self or admin)

Users (admin):

	GET    /users
	PATCH  /users/{id}
	DELETE /users/{id}

Dashboard (admin):

	GET /admin/stats

Feedback:

	POST   /feedback      - Leave feedback (token)
	GET    /feedback      - Read feedback (admin)
	DELETE /feedback/{id} - Remove feedback (admin)

# Access Levels

Routes marked token go through middleware.RequireAuth and routes marked
admin through middleware.RequireAdmin, both configured with cfg.JWTSecret
and handlers.UserRoles, so a demoted or deleted account loses access
immediately.
*/
package router
