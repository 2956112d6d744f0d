// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/estatehub/cliparse"
	"github.com/danielhkuo/estatehub/middleware"
	"github.com/danielhkuo/estatehub/models"
)

type UserHandler struct {
	db  *sqlx.DB
	cfg cliparse.Config
}

func NewUserHandler(db *sqlx.DB, cfg cliparse.Config) *UserHandler {
	return &UserHandler{db: db, cfg: cfg}
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users := []models.User{}
	err := h.db.SelectContext(r.Context(), &users, `SELECT id, role, name, username FROM users ORDER BY id`)
	if err != nil {
		slog.Error("failed to query users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// UpdateUser handles PATCH /users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var patch models.UserPatch
	if err := middleware.ParseJSONBody(r, &patch); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx := r.Context()

	var user models.User
	err := h.db.GetContext(ctx, &user, h.db.Rebind(`SELECT id, role, name, username FROM users WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		slog.Error("failed to query user", "error", err, "user_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if patch.Role != nil {
		if !models.IsValidRole(*patch.Role) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "role must be admin or user")
			return
		}
		user.Role = *patch.Role
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
			return
		}
		user.Name = name
	}
	if patch.Username != nil {
		username := strings.TrimSpace(*patch.Username)
		if len(username) < 3 || len(username) > 50 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 3-50 characters")
			return
		}
		taken, err := usernameTaken(ctx, h.db, username, id)
		if err != nil {
			slog.Error("failed to check username", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if taken {
			middleware.ErrorResponse(w, http.StatusConflict, "Username already taken")
			return
		}
		user.Username = username
	}

	_, err = h.db.ExecContext(ctx, h.db.Rebind(`
		UPDATE users SET role = ?, name = ?, username = ? WHERE id = ?
	`), user.Role, user.Name, user.Username, id)
	if err != nil {
		slog.Error("failed to update user", "error", err, "user_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update user")
		return
	}

	slog.Info("user updated", "user_id", id, "role", user.Role)

	middleware.JSONResponse(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /users/{id}
// Properties booked by the user go back to approved in the same transaction
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	ctx := r.Context()

	tx, err := h.db.BeginTxx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	released, err := tx.ExecContext(ctx, tx.Rebind(`
		UPDATE properties SET status = ?, booked_by_user_id = NULL WHERE booked_by_user_id = ?
	`), models.StatusApproved, id)
	if err != nil {
		slog.Error("failed to release bookings", "error", err, "user_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		slog.Error("failed to delete user", "error", err, "user_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete user")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	n, _ := released.RowsAffected()
	slog.Info("user deleted", "user_id", id, "released_bookings", n)

	w.WriteHeader(http.StatusNoContent)
}
