// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/estatehub/middleware"
	"github.com/danielhkuo/estatehub/models"
)

const propertyColumns = `id, address, city, price, rent_price, bedrooms, bathrooms, sqft,
	description, image_urls, image_url_360, type, listing_type, status, booked_by_user_id`

// pathID parses a numeric path parameter
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func getProperty(ctx context.Context, q sqlx.ExtContext, id int64) (models.Property, error) {
	var p models.Property
	err := sqlx.GetContext(ctx, q, &p, q.Rebind(`SELECT `+propertyColumns+` FROM properties WHERE id = ?`), id)
	return p, err
}

func userExists(ctx context.Context, q sqlx.ExtContext, id int64) (bool, error) {
	var count int
	if err := sqlx.GetContext(ctx, q, &count, q.Rebind(`SELECT COUNT(1) FROM users WHERE id = ?`), id); err != nil {
		return false, err
	}
	return count > 0, nil
}

// usernameTaken ignores the row with id exceptID so renames to the same name pass
func usernameTaken(ctx context.Context, q sqlx.ExtContext, username string, exceptID int64) (bool, error) {
	var count int
	err := sqlx.GetContext(ctx, q, &count, q.Rebind(`SELECT COUNT(1) FROM users WHERE username = ? AND id <> ?`), username, exceptID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// UserRoles reads roles from the users table for middleware.RequireAuth
func UserRoles(db *sqlx.DB) middleware.RoleLookup {
	return func(ctx context.Context, userID int64) (string, error) {
		var role string
		err := db.GetContext(ctx, &role, db.Rebind(`SELECT role FROM users WHERE id = ?`), userID)
		if errors.Is(err, sql.ErrNoRows) {
			return "", middleware.ErrUnknownUser
		}
		return role, err
	}
}
