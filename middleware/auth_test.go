// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/estatehub/auth"
)

const testSecret = "middleware-secret"

// staticRoles serves roles from a map; absent users are unknown
func staticRoles(roles map[int64]string) RoleLookup {
	return func(ctx context.Context, userID int64) (string, error) {
		role, ok := roles[userID]
		if !ok {
			return "", ErrUnknownUser
		}
		return role, nil
	}
}

func TestRequireAuth(t *testing.T) {
	userToken, _ := auth.IssueToken(5, "user", testSecret, time.Hour)
	foreignToken, _ := auth.IssueToken(5, "user", "other-secret", time.Hour)
	deletedToken, _ := auth.IssueToken(6, "user", testSecret, time.Hour)
	roles := staticRoles(map[int64]string{5: "user"})

	testCases := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"valid token", "Bearer " + userToken, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + userToken, http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"foreign signature", "Bearer " + foreignToken, http.StatusUnauthorized},
		{"deleted account", "Bearer " + deletedToken, http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var gotUserID int64
			handler := RequireAuth(testSecret, roles, func(w http.ResponseWriter, r *http.Request) {
				gotUserID = ClaimsFromContext(r.Context()).UserID
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest("GET", "/properties", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, w.Code)
			}
			if tc.expectedStatus == http.StatusOK && gotUserID != 5 {
				t.Errorf("Expected claims for user 5, got %d", gotUserID)
			}
		})
	}
}

func TestRequireAuthUsesCurrentRole(t *testing.T) {
	// Token minted while user 3 was an admin
	token, _ := auth.IssueToken(3, "admin", testSecret, time.Hour)

	var gotRole string
	handler := RequireAuth(testSecret, staticRoles(map[int64]string{3: "user"}), func(w http.ResponseWriter, r *http.Request) {
		gotRole = ClaimsFromContext(r.Context()).Role
	})

	req := httptest.NewRequest("POST", "/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler(httptest.NewRecorder(), req)

	if gotRole != "user" {
		t.Errorf("Expected role from lookup 'user', got %q", gotRole)
	}
}

func TestRequireAuthLookupFailure(t *testing.T) {
	token, _ := auth.IssueToken(3, "user", testSecret, time.Hour)
	broken := func(ctx context.Context, userID int64) (string, error) {
		return "", errors.New("database is locked")
	}

	called := false
	handler := RequireAuth(testSecret, broken, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest("GET", "/users/3/properties", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler(w, req)

	if called || w.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500 without calling the handler, got %d (called=%v)", w.Code, called)
	}
}

func TestRequireAdmin(t *testing.T) {
	adminToken, _ := auth.IssueToken(1, "admin", testSecret, time.Hour)
	userToken, _ := auth.IssueToken(2, "user", testSecret, time.Hour)
	demotedToken, _ := auth.IssueToken(3, "admin", testSecret, time.Hour)
	deletedToken, _ := auth.IssueToken(4, "admin", testSecret, time.Hour)
	roles := staticRoles(map[int64]string{1: "admin", 2: "user", 3: "user"})

	handler := RequireAdmin(testSecret, roles, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	testCases := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{"admin allowed", adminToken, http.StatusNoContent},
		{"user forbidden", userToken, http.StatusForbidden},
		{"demoted admin forbidden", demotedToken, http.StatusForbidden},
		{"deleted admin unauthorized", deletedToken, http.StatusUnauthorized},
		{"anonymous unauthorized", "", http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/users", nil)
			if tc.token != "" {
				req.Header.Set("Authorization", "Bearer "+tc.token)
			}
			w := httptest.NewRecorder()

			handler(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, w.Code)
			}
		})
	}
}

func TestClaimsFromContextEmpty(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	if ClaimsFromContext(req.Context()) != nil {
		t.Error("Expected nil claims without RequireAuth")
	}
}
