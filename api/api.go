// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielhkuo/estatehub/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrDuplicateUser      = errors.New("username already taken")
	ErrValidation         = errors.New("request rejected as invalid")
	ErrAuthorization      = errors.New("not authorized")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
)

// Client is the data collaborator used by the session controller.
type Client interface {
	GetProperties(ctx context.Context, status string) ([]models.Property, error)
	GetPropertiesByUserID(ctx context.Context, userID int64) ([]models.Property, error)
	GetAdminStats(ctx context.Context) (models.AdminStats, error)
	GetUsers(ctx context.Context) ([]models.User, error)
	GetFeedback(ctx context.Context) ([]models.Feedback, error)

	AddProperty(ctx context.Context, in models.PropertyInput, status string) (models.Property, error)
	UpdateProperty(ctx context.Context, id int64, patch models.PropertyPatch) (models.Property, error)
	DeleteProperty(ctx context.Context, id int64) error

	UpdateUser(ctx context.Context, id int64, patch models.UserPatch) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error

	SubmitFeedback(ctx context.Context, message string, author *models.User) (models.Feedback, error)
	DeleteFeedback(ctx context.Context, id string) error
}

// Authenticator establishes and drops the session identity.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (models.User, error)
	Register(ctx context.Context, reg models.Registration) (models.User, error)
	Logout()
}

// Error is a non-2xx response. It unwraps to one of the package sentinels
// so callers can use errors.Is.
type Error struct {
	Status  int
	Message string
	kind    error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

func (e *Error) Unwrap() error {
	return e.kind
}

type call int

const (
	callData call = iota
	callLogin
	callRegister
)

// newError classifies a status code. A 401 on login means bad credentials and
// a 409 on register means the username is taken; elsewhere they mean a
// rejected token and a state conflict.
func newError(status int, message string, c call) *Error {
	e := &Error{Status: status, Message: message}
	switch status {
	case http.StatusUnauthorized:
		if c == callLogin {
			e.kind = ErrInvalidCredentials
		} else {
			e.kind = ErrAuthorization
		}
	case http.StatusForbidden:
		e.kind = ErrAuthorization
	case http.StatusNotFound:
		e.kind = ErrNotFound
	case http.StatusConflict:
		if c == callRegister {
			e.kind = ErrDuplicateUser
		} else {
			e.kind = ErrConflict
		}
	case http.StatusBadRequest:
		e.kind = ErrValidation
	}
	return e
}
