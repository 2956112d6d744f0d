// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/estatehub/auth"
	"github.com/danielhkuo/estatehub/cliparse"
	"github.com/danielhkuo/estatehub/middleware"
	"github.com/danielhkuo/estatehub/models"
)

// maxFeedbackLength caps a single message
const maxFeedbackLength = 2000

type FeedbackHandler struct {
	db  *sqlx.DB
	cfg cliparse.Config
}

func NewFeedbackHandler(db *sqlx.DB, cfg cliparse.Config) *FeedbackHandler {
	return &FeedbackHandler{db: db, cfg: cfg}
}

// ListFeedback handles GET /feedback, newest first
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	feedback := []models.Feedback{}
	err := h.db.SelectContext(r.Context(), &feedback, `
		SELECT id, message, user_id, user_name, created_at
		FROM feedback
		ORDER BY created_at DESC, id
	`)
	if err != nil {
		slog.Error("failed to query feedback", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, feedback)
}

// SubmitFeedback handles POST /feedback
// The author is taken from the token, never from the body
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req models.FeedbackRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "message is required")
		return
	}
	if len(message) > maxFeedbackLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "message is too long")
		return
	}

	ctx := r.Context()
	claims := middleware.ClaimsFromContext(ctx)

	fb := models.Feedback{
		ID:        auth.GenerateID(),
		Message:   message,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	var name string
	err := h.db.GetContext(ctx, &name, h.db.Rebind(`SELECT name FROM users WHERE id = ?`), claims.UserID)
	if err == nil {
		uid := claims.UserID
		fb.UserID = &uid
		fb.UserName = &name
	} else {
		// Account deleted after the token was issued; keep the message anonymous
		slog.Warn("feedback author not found", "user_id", claims.UserID, "error", err)
	}

	_, err = h.db.ExecContext(ctx, h.db.Rebind(`
		INSERT INTO feedback (id, message, user_id, user_name, created_at)
		VALUES (?, ?, ?, ?, ?)
	`), fb.ID, fb.Message, fb.UserID, fb.UserName, fb.CreatedAt)
	if err != nil {
		slog.Error("failed to insert feedback", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit feedback")
		return
	}

	slog.Info("feedback submitted", "feedback_id", fb.ID, "user_id", claims.UserID)

	middleware.JSONResponse(w, http.StatusCreated, fb)
}

// DeleteFeedback handles DELETE /feedback/{id}
func (h *FeedbackHandler) DeleteFeedback(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid feedback id")
		return
	}

	res, err := h.db.ExecContext(r.Context(), h.db.Rebind(`DELETE FROM feedback WHERE id = ?`), id)
	if err != nil {
		slog.Error("failed to delete feedback", "error", err, "feedback_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete feedback")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Feedback not found")
		return
	}

	slog.Info("feedback deleted", "feedback_id", id)

	w.WriteHeader(http.StatusNoContent)
}
