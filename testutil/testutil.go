// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/estatehub/auth"
	"github.com/danielhkuo/estatehub/cliparse"
	"github.com/danielhkuo/estatehub/db"
	"github.com/danielhkuo/estatehub/models"
)

// TestJWTSecret signs tokens in tests
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB creates a fresh in-memory SQLite database with the full schema.
// Each call returns an isolated database.
func SetupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	conn, err := sqlx.Connect(cliparse.DatabaseSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Every connection to :memory: is a separate database
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		JWTSecret:    TestJWTSecret,
		TokenTTL:     time.Hour,
	}
}

// CreateTestUser inserts a user with password "password" and returns it
// with a signed token.
func CreateTestUser(t *testing.T, conn *sqlx.DB, username, role string) (models.User, string) {
	t.Helper()

	hash, err := auth.HashPassword("password")
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}

	user := models.User{Role: role, Name: "Test " + username, Username: username}
	err = conn.QueryRowx(conn.Rebind(`
		INSERT INTO users (role, name, username, password_hash)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`), user.Role, user.Name, user.Username, hash).Scan(&user.ID)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	token, err := auth.IssueToken(user.ID, user.Role, TestJWTSecret, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	return user, token
}

// CreateTestProperty inserts a property with the given status and returns its ID.
// Booked properties need bookedBy.
func CreateTestProperty(t *testing.T, conn *sqlx.DB, city, status string, price float64, bookedBy *int64) int64 {
	t.Helper()

	var id int64
	err := conn.QueryRowx(conn.Rebind(`
		INSERT INTO properties (address, city, price, type, listing_type, status, booked_by_user_id, image_urls)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`), "1 Test Street", city, price, "House", models.ListingSale, status, bookedBy, models.StringList{"https://img.example/1.jpg"}).Scan(&id)
	if err != nil {
		t.Fatalf("Failed to create test property: %v", err)
	}

	return id
}

// CreateTestFeedback inserts a feedback row and returns its ID
func CreateTestFeedback(t *testing.T, conn *sqlx.DB, message string) string {
	t.Helper()

	id := auth.GenerateID()
	_, err := conn.Exec(conn.Rebind(`
		INSERT INTO feedback (id, message, created_at) VALUES (?, ?, ?)
	`), id, message, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		t.Fatalf("Failed to create test feedback: %v", err)
	}

	return id
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// Bearer builds the Authorization header for MakeRequest
func Bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
