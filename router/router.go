// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/estatehub/cliparse"
	"github.com/danielhkuo/estatehub/handlers"
	"github.com/danielhkuo/estatehub/middleware"
)

func NewRouter(db *sqlx.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	propertyHandler := handlers.NewPropertyHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db, cfg)
	feedbackHandler := handlers.NewFeedbackHandler(db, cfg)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	roles := handlers.UserRoles(db)
	authed := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAuth(cfg.JWTSecret, roles, h))
	}
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.JWTSecret, roles, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts (public)
	mux.HandleFunc("POST /auth/register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(authHandler.Login))

	// Properties
	mux.HandleFunc("GET /properties", middleware.WithLogging(propertyHandler.ListProperties))
	mux.HandleFunc("POST /properties", authed(propertyHandler.CreateProperty))
	mux.HandleFunc("PATCH /properties/{id}", authed(propertyHandler.UpdateProperty))
	mux.HandleFunc("DELETE /properties/{id}", admin(propertyHandler.DeleteProperty))
	mux.HandleFunc("GET /users/{id}/properties", authed(propertyHandler.ListBookedByUser))

	// User administration
	mux.HandleFunc("GET /users", admin(userHandler.ListUsers))
	mux.HandleFunc("PATCH /users/{id}", admin(userHandler.UpdateUser))
	mux.HandleFunc("DELETE /users/{id}", admin(userHandler.DeleteUser))

	// Dashboard
	mux.HandleFunc("GET /admin/stats", admin(adminHandler.GetStats))

	// Feedback
	mux.HandleFunc("GET /feedback", admin(feedbackHandler.ListFeedback))
	mux.HandleFunc("POST /feedback", authed(feedbackHandler.SubmitFeedback))
	mux.HandleFunc("DELETE /feedback/{id}", admin(feedbackHandler.DeleteFeedback))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("estatehub API v1"))
	})

	return mux
}
