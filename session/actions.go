// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "github.com/danielhkuo/estatehub/models"

// Action is a user intent or a completion fed to Reduce.
type Action interface {
	action()
}

// Pre-login navigation
type (
	ShowLogin               struct{}
	ShowRegister            struct{}
	ClearRegistrationBanner struct{}
)

// View navigation
type (
	ViewDetails        struct{ Property models.Property }
	ViewPendingDetails struct{ Property models.Property }
	Back               struct{}
	Navigate           struct{ To View }

	// OpenForm opens the submit form, or the edit form when Property is set.
	OpenForm  struct{ Property *models.Property }
	CloseForm struct{}

	OpenPayment   struct{}
	ClosePayment  struct{}
	OpenFeedback  struct{}
	CloseFeedback struct{}

	SetFilter struct{ Filter models.Filter }

	Logout struct{}
)

// Mutations
type (
	SaveProperty   struct{ Input models.PropertyInput }
	DeleteProperty struct{ ID int64 }
	Approve        struct{ ID int64 }
	Reject         struct{ ID int64 }
	ConfirmBooking struct{ PropertyID int64 }
	UpdateUser     struct {
		ID    int64
		Patch models.UserPatch
	}
	DeleteUser     struct{ ID int64 }
	SubmitFeedback struct{ Message string }
	DeleteFeedback struct{ ID string }
)

// Completions produced by the controller
type (
	loggedIn    struct{ user models.User }
	registered  struct{}
	loadStarted struct{}
	loadDone    struct {
		generation uint64
		data       Data
		err        error
	}
	bookingDone struct{}
)

func (ShowLogin) action()               {}
func (ShowRegister) action()            {}
func (ClearRegistrationBanner) action() {}
func (ViewDetails) action()             {}
func (ViewPendingDetails) action()      {}
func (Back) action()                    {}
func (Navigate) action()                {}
func (OpenForm) action()                {}
func (CloseForm) action()               {}
func (OpenPayment) action()             {}
func (ClosePayment) action()            {}
func (OpenFeedback) action()            {}
func (CloseFeedback) action()           {}
func (SetFilter) action()               {}
func (Logout) action()                  {}
func (SaveProperty) action()            {}
func (DeleteProperty) action()          {}
func (Approve) action()                 {}
func (Reject) action()                  {}
func (ConfirmBooking) action()          {}
func (UpdateUser) action()              {}
func (DeleteUser) action()              {}
func (SubmitFeedback) action()          {}
func (DeleteFeedback) action()          {}
func (loggedIn) action()                {}
func (registered) action()              {}
func (loadStarted) action()             {}
func (loadDone) action()                {}
func (bookingDone) action()             {}
