// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/estatehub/cliparse"
	"github.com/danielhkuo/estatehub/middleware"
	"github.com/danielhkuo/estatehub/models"
)

type AdminHandler struct {
	db  *sqlx.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sqlx.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// GetStats handles GET /admin/stats
// totalValue is the sum of sale prices over approved properties
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var row struct {
		TotalValue    float64 `db:"total_value"`
		ApprovedCount int     `db:"approved_count"`
		PendingCount  int     `db:"pending_count"`
	}
	err := h.db.GetContext(ctx, &row, h.db.Rebind(`
		SELECT
			COALESCE(SUM(CASE WHEN status = ? THEN price ELSE 0 END), 0) AS total_value,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS approved_count,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS pending_count
		FROM properties
	`), models.StatusApproved, models.StatusApproved, models.StatusPending)
	if err != nil {
		slog.Error("failed to compute property stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var userCount int
	if err := h.db.GetContext(ctx, &userCount, `SELECT COUNT(*) FROM users`); err != nil {
		slog.Error("failed to count users", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.AdminStats{
		TotalValue:    row.TotalValue,
		ApprovedCount: row.ApprovedCount,
		PendingCount:  row.PendingCount,
		UserCount:     userCount,
	})
}
