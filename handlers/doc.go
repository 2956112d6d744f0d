// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the EstateHub API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: registration and login
  - PropertyHandler: listing, submission, moderation and booking
  - UserHandler: account administration
  - FeedbackHandler: feedback submission and moderation
  - AdminHandler: dashboard statistics

Handlers are created via constructor functions that accept *sqlx.DB and Config:

	propertyHandler := handlers.NewPropertyHandler(db, cfg)

Queries are written with ? placeholders and passed through Rebind, so the
same handler runs against PostgreSQL and SQLite.

# Authentication

Login returns a bearer token. Handlers that need the caller read the token
claims stored by middleware.RequireAuth:

	claims := middleware.ClaimsFromContext(r.Context())

# Property Lifecycle

Properties move between three states: pending → approved → booked

	POST   /properties      → CreateProperty (non-admins always start pending)
	PATCH  /properties/{id} → UpdateProperty (admin: any field)
	PATCH  /properties/{id} → UpdateProperty (user: book an approved property)
	DELETE /properties/{id} → DeleteProperty (reject or remove)

A booked property always names the booking user; leaving booked clears it.
Bookings are a conditional UPDATE, so concurrent bookings of one property
produce a single winner and 409 Conflict for the rest.

# Users

	GET    /users       → ListUsers
	PATCH  /users/{id}  → UpdateUser (role, name, username)
	DELETE /users/{id}  → DeleteUser (releases the user's bookings)

# Feedback

	POST   /feedback      → SubmitFeedback (author taken from the token)
	GET    /feedback      → ListFeedback (newest first)
	DELETE /feedback/{id} → DeleteFeedback
*/
package handlers
