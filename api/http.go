// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/estatehub/models"
)

// HTTPClient talks JSON to the EstateHub server. It implements both Client
// and Authenticator and keeps the bearer token returned by Login.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

var (
	_ Client        = (*HTTPClient)(nil)
	_ Authenticator = (*HTTPClient)(nil)
)

// NewHTTPClient returns a client for the server at baseURL. timeout bounds
// every request; zero means no limit.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (models.User, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", creds, &resp, callLogin); err != nil {
		return models.User{}, err
	}

	c.mu.Lock()
	c.token = resp.Token
	c.mu.Unlock()

	return resp.User, nil
}

func (c *HTTPClient) Register(ctx context.Context, reg models.Registration) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPost, "/auth/register", reg, &user, callRegister)
	return user, err
}

// Logout forgets the bearer token.
func (c *HTTPClient) Logout() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

func (c *HTTPClient) GetProperties(ctx context.Context, status string) ([]models.Property, error) {
	path := "/properties"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var props []models.Property
	err := c.do(ctx, http.MethodGet, path, nil, &props, callData)
	return props, err
}

func (c *HTTPClient) GetPropertiesByUserID(ctx context.Context, userID int64) ([]models.Property, error) {
	var props []models.Property
	err := c.do(ctx, http.MethodGet, "/users/"+strconv.FormatInt(userID, 10)+"/properties", nil, &props, callData)
	return props, err
}

func (c *HTTPClient) GetAdminStats(ctx context.Context) (models.AdminStats, error) {
	var stats models.AdminStats
	err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &stats, callData)
	return stats, err
}

func (c *HTTPClient) GetUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := c.do(ctx, http.MethodGet, "/users", nil, &users, callData)
	return users, err
}

func (c *HTTPClient) GetFeedback(ctx context.Context) ([]models.Feedback, error) {
	var feedback []models.Feedback
	err := c.do(ctx, http.MethodGet, "/feedback", nil, &feedback, callData)
	return feedback, err
}

func (c *HTTPClient) AddProperty(ctx context.Context, in models.PropertyInput, status string) (models.Property, error) {
	var prop models.Property
	req := models.CreatePropertyRequest{PropertyInput: in, Status: status}
	err := c.do(ctx, http.MethodPost, "/properties", req, &prop, callData)
	return prop, err
}

func (c *HTTPClient) UpdateProperty(ctx context.Context, id int64, patch models.PropertyPatch) (models.Property, error) {
	var prop models.Property
	err := c.do(ctx, http.MethodPatch, "/properties/"+strconv.FormatInt(id, 10), patch, &prop, callData)
	return prop, err
}

func (c *HTTPClient) DeleteProperty(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/properties/"+strconv.FormatInt(id, 10), nil, nil, callData)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPatch, "/users/"+strconv.FormatInt(id, 10), patch, &user, callData)
	return user, err
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, "/users/"+strconv.FormatInt(id, 10), nil, nil, callData)
}

// SubmitFeedback posts message. The server attributes it to the token's
// user; author only guards against submitting while logged out.
func (c *HTTPClient) SubmitFeedback(ctx context.Context, message string, author *models.User) (models.Feedback, error) {
	if author == nil {
		return models.Feedback{}, ErrAuthorization
	}
	var fb models.Feedback
	err := c.do(ctx, http.MethodPost, "/feedback", models.FeedbackRequest{Message: message}, &fb, callData)
	return fb, err
}

func (c *HTTPClient) DeleteFeedback(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/feedback/"+url.PathEscape(id), nil, nil, callData)
}

// do sends one request. body is JSON-encoded when non-nil and the response
// is decoded into out when non-nil.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out interface{}, kind call) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	slog.Debug("api call", "method", method, "path", path, "status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(raw, &errResp) != nil || errResp.Message == "" {
			errResp.Message = strings.TrimSpace(string(raw))
		}
		return newError(resp.StatusCode, errResp.Message, kind)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
