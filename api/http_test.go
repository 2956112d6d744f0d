// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/estatehub/middleware"
	"github.com/danielhkuo/estatehub/models"
	"github.com/danielhkuo/estatehub/router"
	"github.com/danielhkuo/estatehub/testutil"
)

// newTestServer serves the real router over a fresh in-memory database
func newTestServer(t *testing.T) (*HTTPClient, *httptest.Server) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	srv := httptest.NewServer(middleware.CORS(router.NewRouter(db, testutil.GetTestConfig())))
	t.Cleanup(func() {
		srv.Close()
		db.Close()
	})

	testutil.CreateTestUser(t, db, "admin", models.RoleAdmin)

	return NewHTTPClient(srv.URL+"/", 5*time.Second), srv
}

func TestRegisterAndLogin(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	user, err := c.Register(ctx, models.Registration{Name: "Ana", Username: "ana", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.Role != models.RoleUser {
		t.Errorf("Expected role user, got %s", user.Role)
	}

	_, err = c.Register(ctx, models.Registration{Name: "Ana", Username: "ana", Password: "secret1"})
	if !errors.Is(err, ErrDuplicateUser) {
		t.Errorf("Expected ErrDuplicateUser, got %v", err)
	}

	_, err = c.Register(ctx, models.Registration{Name: "Bo", Username: "bo", Password: "1"})
	if !errors.Is(err, ErrValidation) {
		t.Errorf("Expected ErrValidation, got %v", err)
	}

	_, err = c.Login(ctx, models.Credentials{Username: "ana", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}

	got, err := c.Login(ctx, models.Credentials{Username: "ana", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("Expected user %d, got %d", user.ID, got.ID)
	}
}

func TestTokenIsSentAndDropped(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	if _, err := c.GetAdminStats(ctx); !errors.Is(err, ErrAuthorization) {
		t.Fatalf("Expected ErrAuthorization before login, got %v", err)
	}

	if _, err := c.Login(ctx, models.Credentials{Username: "admin", Password: "password"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	stats, err := c.GetAdminStats(ctx)
	if err != nil {
		t.Fatalf("GetAdminStats failed: %v", err)
	}
	if stats.UserCount != 1 {
		t.Errorf("Expected 1 user, got %d", stats.UserCount)
	}

	c.Logout()
	if _, err := c.GetUsers(ctx); !errors.Is(err, ErrAuthorization) {
		t.Errorf("Expected ErrAuthorization after logout, got %v", err)
	}
}

func TestPropertyLifecycle(t *testing.T) {
	c, _ := newTestServer(t)
	ctx := context.Background()

	if _, err := c.Login(ctx, models.Credentials{Username: "admin", Password: "password"}); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	in := models.PropertyInput{
		Address:     "1 Cliff Walk",
		City:        "Sintra",
		Price:       750000,
		Type:        "Manor",
		ListingType: models.ListingSale,
		ImageURLs:   models.StringList{"https://img.example/m.jpg"},
	}
	created, err := c.AddProperty(ctx, in, models.StatusPending)
	if err != nil {
		t.Fatalf("AddProperty failed: %v", err)
	}
	if created.Status != models.StatusPending {
		t.Errorf("Expected pending, got %s", created.Status)
	}

	pending, err := c.GetProperties(ctx, models.StatusPending)
	if err != nil || len(pending) != 1 {
		t.Fatalf("Expected 1 pending property, got %d (%v)", len(pending), err)
	}

	approved := models.StatusApproved
	updated, err := c.UpdateProperty(ctx, created.ID, models.PropertyPatch{Status: &approved})
	if err != nil {
		t.Fatalf("UpdateProperty failed: %v", err)
	}
	if updated.Status != models.StatusApproved || updated.City != "Sintra" {
		t.Errorf("Unexpected property after approve: %+v", updated)
	}

	if err := c.DeleteProperty(ctx, created.ID); err != nil {
		t.Fatalf("DeleteProperty failed: %v", err)
	}
	if err := c.DeleteProperty(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on second delete, got %v", err)
	}

	all, err := c.GetProperties(ctx, "")
	if err != nil || len(all) != 0 {
		t.Errorf("Expected no properties, got %d (%v)", len(all), err)
	}
}

func TestFeedbackRequiresAuthor(t *testing.T) {
	c, _ := newTestServer(t)

	_, err := c.SubmitFeedback(context.Background(), "hello", nil)
	if !errors.Is(err, ErrAuthorization) {
		t.Errorf("Expected ErrAuthorization, got %v", err)
	}
}

func TestErrorMapping(t *testing.T) {
	testCases := []struct {
		name     string
		status   int
		call     call
		expected error
	}{
		{"login 401", http.StatusUnauthorized, callLogin, ErrInvalidCredentials},
		{"data 401", http.StatusUnauthorized, callData, ErrAuthorization},
		{"403", http.StatusForbidden, callData, ErrAuthorization},
		{"404", http.StatusNotFound, callData, ErrNotFound},
		{"register 409", http.StatusConflict, callRegister, ErrDuplicateUser},
		{"data 409", http.StatusConflict, callData, ErrConflict},
		{"400", http.StatusBadRequest, callRegister, ErrValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				middleware.ErrorResponse(w, tc.status, "boom")
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL, time.Second)
			err := c.do(context.Background(), http.MethodGet, "/x", nil, nil, tc.call)

			if !errors.Is(err, tc.expected) {
				t.Errorf("Expected %v, got %v", tc.expected, err)
			}
			var apiErr *Error
			if !errors.As(err, &apiErr) || apiErr.Status != tc.status || apiErr.Message != "boom" {
				t.Errorf("Expected *Error{%d, boom}, got %#v", tc.status, err)
			}
		})
	}
}

func TestServerErrorHasNoSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, time.Second)
	_, err := c.GetUsers(context.Background())

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("Expected *Error with 500, got %v", err)
	}
	if apiErr.Message != "exploded" {
		t.Errorf("Expected plain-text message, got %q", apiErr.Message)
	}
	for _, sentinel := range []error{ErrNotFound, ErrAuthorization, ErrValidation} {
		if errors.Is(err, sentinel) {
			t.Errorf("500 must not match %v", sentinel)
		}
	}
}
