// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs one line per request with method, path, status, client IP and
duration_ms. 5xx responses are logged at Error level.

# Authentication

RequireAuth checks the bearer token, replaces the token's role with the
current one from a RoleLookup and stores the claims in the request context;
RequireAdmin additionally demands the admin role:

	roles := handlers.UserRoles(db)
	mux.HandleFunc("GET /users", middleware.RequireAdmin(secret, roles, h.ListUsers))

	claims := middleware.ClaimsFromContext(r.Context())

Missing or invalid tokens and deleted accounts get 401, a non-admin role
gets 403.

# CORS Middleware

Enable cross-origin requests for frontend access:

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, PATCH, DELETE, OPTIONS with headers
Content-Type and Authorization. Credentials are not allowed; the API only
reads bearer tokens.

# JSON Helpers

Write JSON responses:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (at most MaxBodyBytes are read):

	var req models.Registration
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
