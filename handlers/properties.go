// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/estatehub/cliparse"
	"github.com/danielhkuo/estatehub/middleware"
	"github.com/danielhkuo/estatehub/models"
)

type PropertyHandler struct {
	db  *sqlx.DB
	cfg cliparse.Config
}

func NewPropertyHandler(db *sqlx.DB, cfg cliparse.Config) *PropertyHandler {
	return &PropertyHandler{db: db, cfg: cfg}
}

// ListProperties handles GET /properties?status=
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	query := `SELECT ` + propertyColumns + ` FROM properties`
	args := []interface{}{}
	if status != "" {
		if !models.IsValidStatus(status) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Unknown status")
			return
		}
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY id`

	properties := []models.Property{}
	if err := h.db.SelectContext(r.Context(), &properties, h.db.Rebind(query), args...); err != nil {
		slog.Error("failed to query properties", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, properties)
}

// ListBookedByUser handles GET /users/{id}/properties
// Users may only see their own bookings; admins see anyone's
func (h *PropertyHandler) ListBookedByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	if claims.Role != models.RoleAdmin && claims.UserID != userID {
		middleware.ErrorResponse(w, http.StatusForbidden, "Cannot view another user's bookings")
		return
	}

	properties := []models.Property{}
	err := h.db.SelectContext(r.Context(), &properties, h.db.Rebind(`
		SELECT `+propertyColumns+` FROM properties
		WHERE booked_by_user_id = ? AND status = ?
		ORDER BY id
	`), userID, models.StatusBooked)
	if err != nil {
		slog.Error("failed to query bookings", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, properties)
}

// CreateProperty handles POST /properties
// Submissions from non-admins always start pending
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePropertyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	claims := middleware.ClaimsFromContext(r.Context())
	status := models.StatusPending
	if claims.Role == models.RoleAdmin {
		status = models.StatusApproved
		if req.Status == models.StatusPending {
			status = models.StatusPending
		}
	}

	property := models.NewProperty(req.PropertyInput, status)
	if property.ImageURLs == nil {
		property.ImageURLs = models.StringList{}
	}
	if err := property.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	err := h.db.QueryRowxContext(r.Context(), h.db.Rebind(`
		INSERT INTO properties
			(address, city, price, rent_price, bedrooms, bathrooms, sqft, description,
			 image_urls, image_url_360, type, listing_type, status, booked_by_user_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), property.Address, property.City, property.Price, property.RentPrice,
		property.Bedrooms, property.Bathrooms, property.Sqft, property.Description,
		property.ImageURLs, property.ImageURL360, property.Type, property.ListingType,
		property.Status, property.BookedByUserID).Scan(&property.ID)
	if err != nil {
		slog.Error("failed to insert property", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create property")
		return
	}

	slog.Info("property created", "property_id", property.ID, "status", property.Status, "by", claims.UserID)

	middleware.JSONResponse(w, http.StatusCreated, property)
}

// UpdateProperty handles PATCH /properties/{id}
// Admins may change anything. Users may only book an approved property for themselves.
func (h *PropertyHandler) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	var patch models.PropertyPatch
	if err := middleware.ParseJSONBody(r, &patch); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx := r.Context()
	claims := middleware.ClaimsFromContext(ctx)

	property, err := getProperty(ctx, h.db, id)
	if errors.Is(err, sql.ErrNoRows) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Property not found")
		return
	}
	if err != nil {
		slog.Error("failed to query property", "error", err, "property_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if claims.Role != models.RoleAdmin {
		if !patch.OnlyBooking() || *patch.BookedByUserID != claims.UserID {
			middleware.ErrorResponse(w, http.StatusForbidden, "Only bookings for yourself are allowed")
			return
		}
		h.bookProperty(w, r, id, claims.UserID)
		return
	}

	if err := patch.CheckClear(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if patch.BookedByUserID != nil {
		exists, err := userExists(ctx, h.db, *patch.BookedByUserID)
		if err != nil {
			slog.Error("failed to query user", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if !exists {
			middleware.ErrorResponse(w, http.StatusBadRequest, "bookedByUserId does not match a user")
			return
		}
	}

	patch.Apply(&property)
	if err := property.Validate(); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err = h.db.ExecContext(ctx, h.db.Rebind(`
		UPDATE properties SET
			address = ?, city = ?, price = ?, rent_price = ?, bedrooms = ?, bathrooms = ?,
			sqft = ?, description = ?, image_urls = ?, image_url_360 = ?, type = ?,
			listing_type = ?, status = ?, booked_by_user_id = ?
		WHERE id = ?
	`), property.Address, property.City, property.Price, property.RentPrice,
		property.Bedrooms, property.Bathrooms, property.Sqft, property.Description,
		property.ImageURLs, property.ImageURL360, property.Type, property.ListingType,
		property.Status, property.BookedByUserID, property.ID)
	if err != nil {
		slog.Error("failed to update property", "error", err, "property_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to update property")
		return
	}

	slog.Info("property updated", "property_id", id, "status", property.Status, "by", claims.UserID)

	middleware.JSONResponse(w, http.StatusOK, property)
}

// DeleteProperty handles DELETE /properties/{id}
func (h *PropertyHandler) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid property id")
		return
	}

	res, err := h.db.ExecContext(r.Context(), h.db.Rebind(`DELETE FROM properties WHERE id = ?`), id)
	if err != nil {
		slog.Error("failed to delete property", "error", err, "property_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete property")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Property not found")
		return
	}

	slog.Info("property deleted", "property_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// bookProperty books an approved property for userID. The status check is part
// of the UPDATE so two concurrent bookings cannot both win.
func (h *PropertyHandler) bookProperty(w http.ResponseWriter, r *http.Request, id, userID int64) {
	ctx := r.Context()

	res, err := h.db.ExecContext(ctx, h.db.Rebind(`
		UPDATE properties SET status = ?, booked_by_user_id = ?
		WHERE id = ? AND status = ?
	`), models.StatusBooked, userID, id, models.StatusApproved)
	if err != nil {
		slog.Error("failed to book property", "error", err, "property_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to book property")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusConflict, "Property is not available for booking")
		return
	}

	property, err := getProperty(ctx, h.db, id)
	if err != nil {
		slog.Error("failed to query property", "error", err, "property_id", id)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("property booked", "property_id", id, "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, property)
}
