// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/danielhkuo/estatehub/api"
	"github.com/danielhkuo/estatehub/middleware"
	"github.com/danielhkuo/estatehub/models"
	"github.com/danielhkuo/estatehub/router"
	"github.com/danielhkuo/estatehub/session"
	"github.com/danielhkuo/estatehub/testutil"
)

func newTestApp(t *testing.T, input string) (*app, *bytes.Buffer, *sqlx.DB) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { db.Close() })

	srv := httptest.NewServer(middleware.CORS(router.NewRouter(db, testutil.GetTestConfig())))
	t.Cleanup(srv.Close)

	testutil.CreateTestUser(t, db, "admin", models.RoleAdmin)

	in := bufio.NewScanner(strings.NewReader(input))
	out := &bytes.Buffer{}
	client := api.NewHTTPClient(srv.URL, 5*time.Second)
	ctl := session.NewController(client, client, &linePrompter{in: in, out: out})

	return &app{ctl: ctl, in: in, out: out}, out, db
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   ", nil},
		{"view 3", []string{"view", "3"}},
		{"  login  ana\tsecret ", []string{"login", "ana", "secret"}},
		{`register "Ana Lima" ana pw`, []string{"register", "Ana Lima", "ana", "pw"}},
		{`save address="4 Lake Drive" city=Austin`, []string{"save", "address=4 Lake Drive", "city=Austin"}},
		{`filter search=""`, []string{"filter", "search="}},
	}

	for _, tt := range tests {
		got := tokenize(tt.line)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("tokenize(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestParseFilter(t *testing.T) {
	f, err := parseFilter(models.DefaultFilter(), []string{"search=austin", "min=100", "type=Villa", "listing=rent"})
	if err != nil {
		t.Fatalf("parseFilter failed: %v", err)
	}
	want := models.Filter{SearchTerm: "austin", MinPrice: "100", Type: "Villa", ListingType: "rent"}
	if f != want {
		t.Errorf("Expected %+v, got %+v", want, f)
	}

	// Empty type resets to all
	f, err = parseFilter(f, []string{"type="})
	if err != nil || f.Type != models.FilterAll {
		t.Errorf("Expected type reset to all, got %q (err=%v)", f.Type, err)
	}

	for _, args := range [][]string{{"type=Castle"}, {"listing=lease"}, {"color=red"}, {"search"}} {
		if _, err := parseFilter(models.DefaultFilter(), args); !errors.Is(err, errUsage) {
			t.Errorf("parseFilter(%q): expected usage error, got %v", args, err)
		}
	}
}

func TestParsePropertyInput(t *testing.T) {
	in, err := parsePropertyInput(nil, []string{
		"address=4 Lake Drive", "city=Austin", "price=500000", "rent=2500",
		"beds=4", "baths=3", "sqft=2800", "type=Villa", "listing=sale",
		"images=https://a.example/1.jpg,https://a.example/2.jpg", "tour=https://a.example/360",
	})
	if err != nil {
		t.Fatalf("parsePropertyInput failed: %v", err)
	}
	if in.Price != 500000 || in.RentPrice == nil || *in.RentPrice != 2500 || in.Bedrooms != 4 || in.Sqft != 2800 {
		t.Errorf("Numbers not parsed: %+v", in)
	}
	if len(in.ImageURLs) != 2 || in.ImageURL360 == nil {
		t.Errorf("Images not parsed: %+v", in)
	}

	t.Run("empty optional fields clear", func(t *testing.T) {
		rent, tour := 1500.0, "https://a.example/360"
		base := &models.Property{ID: 7, Address: "1 Elm", City: "Reno", RentPrice: &rent, ImageURL360: &tour, Type: "Cottage", ListingType: models.ListingRent}
		in, err := parsePropertyInput(base, []string{"listing=sale", "rent=", "tour="})
		if err != nil {
			t.Fatalf("parsePropertyInput failed: %v", err)
		}
		if in.RentPrice != nil || in.ImageURL360 != nil {
			t.Errorf("Expected rent and tour cleared, got %+v", in)
		}
	})

	t.Run("edit keeps unset fields", func(t *testing.T) {
		base := &models.Property{ID: 7, Address: "1 Elm", City: "Reno", Price: 90000, Type: "Cottage", ListingType: models.ListingSale}
		in, err := parsePropertyInput(base, []string{"price=95000"})
		if err != nil {
			t.Fatalf("parsePropertyInput failed: %v", err)
		}
		if in.Address != "1 Elm" || in.City != "Reno" || in.Price != 95000 {
			t.Errorf("Unexpected edit input: %+v", in)
		}
	})

	t.Run("errors", func(t *testing.T) {
		for _, args := range [][]string{
			{"city=Austin", "type=Villa", "listing=sale"},
			{"address=x", "city=y", "type=Villa", "listing=sale", "price=lots"},
			{"address=x", "city=y", "type=Villa", "listing=sale", "garage=2"},
		} {
			if _, err := parsePropertyInput(nil, args); !errors.Is(err, errUsage) {
				t.Errorf("parsePropertyInput(%q): expected usage error, got %v", args, err)
			}
		}
	})
}

func TestRenderList(t *testing.T) {
	rent := 1800.0
	st := session.NewState()
	st.User = &models.User{ID: 1, Name: "Root", Role: models.RoleAdmin}
	st.Data.Stats.PendingCount = 2
	st.Data.Properties = []models.Property{
		{ID: 1, Address: "4 Lake Drive", City: "Austin", Price: 1250000, Type: "Villa", ListingType: models.ListingSale, Status: models.StatusApproved},
		{ID: 2, Address: "9 Pine St", City: "Denver", RentPrice: &rent, Type: "Apartment", ListingType: models.ListingRent, Status: models.StatusApproved},
		{ID: 3, Address: "1 Hidden Rd", City: "Austin", Price: 10, Type: "Lodge", ListingType: models.ListingSale, Status: models.StatusPending},
	}
	st.Filter.SearchTerm = "austin"

	var out bytes.Buffer
	render(&out, st)
	got := out.String()

	for _, want := range []string{
		"Welcome, Root",
		"2 listing(s) awaiting approval",
		"$1,250,000",
		"$1,800/mo",
		"Listings (1 of 2)",
		`search="austin"`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Hidden Rd") {
		t.Error("Pending property rendered on the public list")
	}
}

func TestRenderAdminFeedback(t *testing.T) {
	name := "Ana"
	st := session.NewState()
	st.User = &models.User{ID: 1, Name: "Root", Role: models.RoleAdmin}
	st.View = session.ViewAdmin
	st.Data.Stats = models.AdminStats{TotalValue: 2500000, ApprovedCount: 3, PendingCount: 1, UserCount: 12}
	st.Data.Feedback = []models.Feedback{
		{ID: "f1", Message: "Great", UserName: &name, CreatedAt: time.Now().Add(-2 * time.Hour).Format(time.RFC3339)},
		{ID: "f2", Message: "Anon", CreatedAt: "not-a-time"},
	}

	var out bytes.Buffer
	render(&out, st)
	got := out.String()

	for _, want := range []string{"total value $2,500,000", "users 12", "from Ana", "2 hours ago", "not-a-time from anonymous"} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestExecRequiresLogin(t *testing.T) {
	a, _, _ := newTestApp(t, "")
	ctx := context.Background()

	if err := a.exec(ctx, "view 1"); err == nil {
		t.Error("Expected logged-out command to fail")
	}
	if err := a.exec(ctx, "login ana"); !errors.Is(err, errUsage) {
		t.Errorf("Expected usage error, got %v", err)
	}
	if err := a.exec(ctx, "login ana wrong"); !errors.Is(err, api.ErrInvalidCredentials) {
		t.Errorf("Expected invalid credentials, got %v", err)
	}
	if err := a.exec(ctx, "quit"); !errors.Is(err, errQuit) {
		t.Errorf("Expected quit, got %v", err)
	}
}

func TestRegistrationBannerShownOnce(t *testing.T) {
	script := strings.Join([]string{
		`register "Ana Lima" ana secret1`,
		`login ana wrong1`,
		`login ana wrong2`,
		`quit`,
	}, "\n")

	a, out, _ := newTestApp(t, script)
	if err := a.run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	got := out.String()
	if n := strings.Count(got, "Registration successful"); n != 1 {
		t.Errorf("Expected the registration banner once, got %d times:\n%s", n, got)
	}
	if !strings.Contains(got, "Log in: login <username> <password>") {
		t.Error("Expected to stay on the login screen")
	}
	if a.ctl.State().RegistrationBanner {
		t.Error("Expected banner cleared after it was shown")
	}
}

// TestRunWorkflow scripts a whole session through the command loop:
// 1. Ana registers, logs in and submits a listing
// 2. The admin approves it
// 3. Ana books it after confirming the payment
func TestRunWorkflow(t *testing.T) {
	script := strings.Join([]string{
		`register "Ana Lima" ana secret1`,
		`login ana secret1`,
		`new`,
		`save address="4 Lake Drive" city=Austin price=500000 type=Villa listing=sale`,
		`logout`,
		`login admin password`,
		`admin`,
		`approve 1`,
		`logout`,
		`login ana secret1`,
		`view 1`,
		`book`,
		`y`,
		`quit`,
	}, "\n")

	a, out, db := newTestApp(t, script)
	if err := a.run(context.Background()); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got := out.String()

	if strings.Contains(got, "error:") {
		t.Fatalf("Command failed during run:\n%s", got)
	}
	for _, want := range []string{
		"Registration successful",
		"1 listing(s) awaiting approval",
		"total value $500,000",
		"My bookings",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}

	var p struct {
		Status   string `db:"status"`
		BookedBy *int64 `db:"booked_by_user_id"`
	}
	if err := db.Get(&p, "SELECT status, booked_by_user_id FROM properties WHERE id = 1"); err != nil {
		t.Fatalf("Failed to read property: %v", err)
	}
	if p.Status != models.StatusBooked || p.BookedBy == nil || *p.BookedBy != 2 {
		t.Errorf("Expected property booked by user 2, got %s / %v", p.Status, p.BookedBy)
	}
}
