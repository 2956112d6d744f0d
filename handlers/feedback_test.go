// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/estatehub/middleware"
	"github.com/danielhkuo/estatehub/models"
	"github.com/danielhkuo/estatehub/testutil"
)

func TestSubmitFeedback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	cfg := testutil.GetTestConfig()
	handler := middleware.RequireAuth(cfg.JWTSecret, UserRoles(db), NewFeedbackHandler(db, cfg).SubmitFeedback)
	user, token := testutil.CreateTestUser(t, db, "writer", models.RoleUser)

	tests := []struct {
		name           string
		message        string
		expectedStatus int
	}{
		{"valid message", "Love the villas", http.StatusCreated},
		{"blank message", "   ", http.StatusBadRequest},
		{"too long", strings.Repeat("x", maxFeedbackLength+1), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/feedback", models.FeedbackRequest{Message: tt.message}, testutil.Bearer(token))
			w := httptest.NewRecorder()

			handler(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if w.Code != http.StatusCreated {
				return
			}

			var fb models.Feedback
			testutil.AssertJSON(t, w, &fb)
			if fb.ID == "" || fb.CreatedAt == "" {
				t.Errorf("Expected id and createdAt, got %+v", fb)
			}
			if fb.UserID == nil || *fb.UserID != user.ID {
				t.Errorf("Expected author %d, got %v", user.ID, fb.UserID)
			}
			if fb.UserName == nil || *fb.UserName != user.Name {
				t.Errorf("Expected author name %q, got %v", user.Name, fb.UserName)
			}
		})
	}
}

func TestListAndDeleteFeedback(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer db.Close()

	handler := NewFeedbackHandler(db, testutil.GetTestConfig())
	id := testutil.CreateTestFeedback(t, db, "first")
	testutil.CreateTestFeedback(t, db, "second")

	w := httptest.NewRecorder()
	handler.ListFeedback(w, httptest.NewRequest("GET", "/feedback", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var list []models.Feedback
	testutil.AssertJSON(t, w, &list)
	if len(list) != 2 {
		t.Fatalf("Expected 2 feedback entries, got %d", len(list))
	}

	req := httptest.NewRequest("DELETE", "/feedback/"+id, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	handler.DeleteFeedback(w, req)
	testutil.AssertStatus(t, w, http.StatusNoContent)

	req = httptest.NewRequest("DELETE", "/feedback/"+id, nil)
	req.SetPathValue("id", id)
	w = httptest.NewRecorder()
	handler.DeleteFeedback(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}
