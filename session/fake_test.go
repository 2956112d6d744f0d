// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"sync"

	"github.com/danielhkuo/estatehub/api"
	"github.com/danielhkuo/estatehub/models"
)

var errBoom = errors.New("boom")

// fakeClient is an in-memory api.Client and api.Authenticator. failOn names
// a method that returns errBoom.
type fakeClient struct {
	mu sync.Mutex

	users    map[string]models.User
	props    []models.Property
	feedback []models.Feedback
	failOn   map[string]bool
	calls    []string

	// gate, when set, blocks GetProperties(ctx, "") until it is closed or
	// receives a value
	gate    chan struct{}
	entered chan struct{}

	loggedOut bool
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		users: map[string]models.User{
			"admin": testAdmin,
			"user":  testUser,
		},
		props: []models.Property{
			{ID: 1, City: "Austin", Type: "Villa", ListingType: models.ListingSale, Status: models.StatusApproved, Price: 500000},
			{ID: 2, City: "Dallas", Type: "House", ListingType: models.ListingSale, Status: models.StatusPending, Price: 200000},
			{ID: 3, City: "Houston", Type: "Lodge", ListingType: models.ListingRent, Status: models.StatusBooked, BookedByUserID: &testUser.ID},
		},
		feedback: []models.Feedback{{ID: "f1", Message: "hello"}},
		failOn:   map[string]bool{},
	}
}

func (f *fakeClient) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if f.failOn[name] {
		return errBoom
	}
	return nil
}

func (f *fakeClient) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeClient) fail(name string, on bool) {
	f.mu.Lock()
	f.failOn[name] = on
	f.mu.Unlock()
}

func (f *fakeClient) snapshot(status string) []models.Property {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Property
	for _, p := range f.props {
		if status == "" || p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeClient) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	if err := f.record("Login"); err != nil {
		return models.User{}, err
	}
	f.mu.Lock()
	u, ok := f.users[creds.Username]
	f.mu.Unlock()
	if !ok || creds.Password != "password" {
		return models.User{}, api.ErrInvalidCredentials
	}
	return u, nil
}

func (f *fakeClient) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	if err := f.record("Register"); err != nil {
		return models.User{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[reg.Username]; ok {
		return models.User{}, api.ErrDuplicateUser
	}
	u := models.User{ID: int64(len(f.users) + 1), Role: models.RoleUser, Name: reg.Name, Username: reg.Username}
	f.users[reg.Username] = u
	return u, nil
}

func (f *fakeClient) Logout() {
	f.mu.Lock()
	f.loggedOut = true
	f.mu.Unlock()
}

func (f *fakeClient) GetProperties(ctx context.Context, status string) ([]models.Property, error) {
	if status == "" {
		f.mu.Lock()
		gate, entered := f.gate, f.entered
		f.gate, f.entered = nil, nil
		f.mu.Unlock()
		if gate != nil {
			close(entered)
			<-gate
		}
	}
	if err := f.record("GetProperties:" + status); err != nil {
		return nil, err
	}
	return f.snapshot(status), nil
}

func (f *fakeClient) GetPropertiesByUserID(ctx context.Context, userID int64) ([]models.Property, error) {
	if err := f.record("GetPropertiesByUserID"); err != nil {
		return nil, err
	}
	var out []models.Property
	for _, p := range f.snapshot(models.StatusBooked) {
		if p.BookedByUserID != nil && *p.BookedByUserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeClient) GetAdminStats(ctx context.Context) (models.AdminStats, error) {
	if err := f.record("GetAdminStats"); err != nil {
		return models.AdminStats{}, err
	}
	return models.AdminStats{ApprovedCount: len(f.snapshot(models.StatusApproved)), UserCount: 2}, nil
}

func (f *fakeClient) GetUsers(ctx context.Context) ([]models.User, error) {
	if err := f.record("GetUsers"); err != nil {
		return nil, err
	}
	return []models.User{testAdmin, testUser}, nil
}

func (f *fakeClient) GetFeedback(ctx context.Context) ([]models.Feedback, error) {
	if err := f.record("GetFeedback"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Feedback(nil), f.feedback...), nil
}

func (f *fakeClient) AddProperty(ctx context.Context, in models.PropertyInput, status string) (models.Property, error) {
	if err := f.record("AddProperty"); err != nil {
		return models.Property{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p := models.NewProperty(in, status)
	p.ID = int64(len(f.props) + 100)
	f.props = append(f.props, p)
	return p, nil
}

func (f *fakeClient) UpdateProperty(ctx context.Context, id int64, patch models.PropertyPatch) (models.Property, error) {
	if err := f.record("UpdateProperty"); err != nil {
		return models.Property{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.props {
		if f.props[i].ID == id {
			patch.Apply(&f.props[i])
			return f.props[i], nil
		}
	}
	return models.Property{}, api.ErrNotFound
}

func (f *fakeClient) DeleteProperty(ctx context.Context, id int64) error {
	if err := f.record("DeleteProperty"); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.props {
		if f.props[i].ID == id {
			f.props = append(f.props[:i:i], f.props[i+1:]...)
			return nil
		}
	}
	return api.ErrNotFound
}

func (f *fakeClient) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	if err := f.record("UpdateUser"); err != nil {
		return models.User{}, err
	}
	return models.User{ID: id}, nil
}

func (f *fakeClient) DeleteUser(ctx context.Context, id int64) error {
	return f.record("DeleteUser")
}

func (f *fakeClient) SubmitFeedback(ctx context.Context, message string, author *models.User) (models.Feedback, error) {
	if err := f.record("SubmitFeedback"); err != nil {
		return models.Feedback{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	fb := models.Feedback{ID: "new", Message: message, UserID: &author.ID, UserName: &author.Name}
	f.feedback = append(f.feedback, fb)
	return fb, nil
}

func (f *fakeClient) DeleteFeedback(ctx context.Context, id string) error {
	return f.record("DeleteFeedback")
}

// fakePrompter answers every confirmation with answer and records alerts
type fakePrompter struct {
	mu       sync.Mutex
	answer   bool
	confirms []string
	alerts   []string
}

func (p *fakePrompter) Confirm(message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirms = append(p.confirms, message)
	return p.answer
}

func (p *fakePrompter) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}
