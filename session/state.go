// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"github.com/danielhkuo/estatehub/listing"
	"github.com/danielhkuo/estatehub/models"
)

// AuthStage is the pre-login screen shown while no user is present.
type AuthStage string

const (
	StageIntro    AuthStage = "intro"
	StageLogin    AuthStage = "login"
	StageRegister AuthStage = "register"
)

// View is the active screen of an authenticated session.
type View string

const (
	ViewList          View = "list"
	ViewDetail        View = "detail"
	ViewAdmin         View = "admin"
	ViewSubmitForm    View = "submitForm"
	ViewEditForm      View = "editForm"
	ViewAdminDetail   View = "adminDetail"
	ViewUserDashboard View = "userDashboard"
)

func (v View) isForm() bool {
	return v == ViewSubmitForm || v == ViewEditForm
}

// Screen is what a renderer should draw for a state.
type Screen string

const (
	ScreenIntro         Screen = "intro"
	ScreenLogin         Screen = "login"
	ScreenRegister      Screen = "register"
	ScreenLoading       Screen = "loading"
	ScreenError         Screen = "error"
	ScreenEmpty         Screen = "empty"
	ScreenList          Screen = Screen(ViewList)
	ScreenDetail        Screen = Screen(ViewDetail)
	ScreenAdmin         Screen = Screen(ViewAdmin)
	ScreenSubmitForm    Screen = Screen(ViewSubmitForm)
	ScreenEditForm      Screen = Screen(ViewEditForm)
	ScreenAdminDetail   Screen = Screen(ViewAdminDetail)
	ScreenUserDashboard Screen = Screen(ViewUserDashboard)
)

// Data holds the session-scoped collections filled by a load.
type Data struct {
	// Properties is every property except booked ones.
	Properties []models.Property

	// Admin only
	Stats    models.AdminStats
	Pending  []models.Property
	Approved []models.Property
	Users    []models.User
	Feedback []models.Feedback

	// User only
	Bookings []models.Property
}

// State is an immutable snapshot of the session. Reduce never modifies the
// slices it receives; it builds new ones.
type State struct {
	User  *models.User
	Stage AuthStage

	// RegistrationBanner is raised by a successful registration and shown
	// once on the login screen.
	RegistrationBanner bool

	View         View
	Selected     *models.Property
	FormOpen     bool
	PaymentOpen  bool
	FeedbackOpen bool
	Filter       models.Filter

	Data Data

	Loading bool
	Err     error

	// Generation identifies the latest load. Completions carrying an older
	// generation are dropped.
	Generation uint64
}

// NewState returns the state of a fresh, logged-out session.
func NewState() State {
	return State{
		Stage:  StageIntro,
		View:   ViewList,
		Filter: models.DefaultFilter(),
	}
}

func (s State) IsAdmin() bool {
	return s.User.IsAdmin()
}

// Screen derives what to show.
func (s State) Screen() Screen {
	if s.User == nil {
		switch s.Stage {
		case StageLogin:
			return ScreenLogin
		case StageRegister:
			return ScreenRegister
		default:
			return ScreenIntro
		}
	}
	if s.Loading {
		return ScreenLoading
	}
	if s.Err != nil {
		return ScreenError
	}
	switch s.View {
	case ViewDetail, ViewAdminDetail, ViewEditForm:
		if s.Selected == nil {
			return ScreenEmpty
		}
	}
	return Screen(s.View)
}

// ApprovedListings is the public listing before filtering.
func (s State) ApprovedListings() []models.Property {
	return listing.Approved(s.Data.Properties)
}

// Listings is the public listing after the current filter.
func (s State) Listings() []models.Property {
	return listing.Apply(s.ApprovedListings(), s.Filter)
}

// Featured ignores the filter.
func (s State) Featured() []models.Property {
	return listing.Featured(s.ApprovedListings())
}
