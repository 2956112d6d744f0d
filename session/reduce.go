// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danielhkuo/estatehub/models"
)

var (
	ErrNotAllowed       = errors.New("action not allowed")
	ErrNotAuthenticated = errors.New("not logged in")
	ErrNoSelection      = errors.New("no property selected")
	ErrEmptyMessage     = errors.New("feedback message is empty")
	ErrMutationFailed   = errors.New("mutation failed")
)

// Reduce returns the state after a and the effects the controller must run.
// On error s is returned unchanged with no effects.
func Reduce(s State, a Action) (State, []Effect, error) {
	switch a := a.(type) {
	case ShowLogin, ShowRegister, ClearRegistrationBanner, loggedIn, registered:
		if s.User != nil {
			return s, nil, fmt.Errorf("%w: already logged in", ErrNotAllowed)
		}
		return reduceStage(s, a)
	case Logout:
		return logout(s)
	case loadDone:
		return finishLoad(s, a), nil, nil
	}

	if s.User == nil {
		return s, nil, ErrNotAuthenticated
	}

	switch a := a.(type) {
	case loadStarted:
		return startLoad(s)

	case ViewDetails:
		p := a.Property
		s = leave(s)
		s.View, s.Selected = ViewDetail, &p
		return s, nil, nil

	case ViewPendingDetails:
		if !s.IsAdmin() {
			return s, nil, fmt.Errorf("%w: admin only", ErrNotAllowed)
		}
		p := a.Property
		s = leave(s)
		s.View, s.Selected = ViewAdminDetail, &p
		return s, nil, nil

	case Back:
		return back(s), nil, nil

	case Navigate:
		return navigate(s, a.To)

	case OpenForm:
		if s.View.isForm() {
			return s, nil, fmt.Errorf("%w: form already open", ErrNotAllowed)
		}
		if a.Property != nil && !s.IsAdmin() {
			return s, nil, fmt.Errorf("%w: only admins edit listings", ErrNotAllowed)
		}
		s.PaymentOpen = false
		s.FormOpen = true
		if a.Property == nil {
			s.View, s.Selected = ViewSubmitForm, nil
			return s, nil, nil
		}
		p := *a.Property
		s.View, s.Selected = ViewEditForm, &p
		return s, nil, nil

	case CloseForm:
		return closeForm(s), nil, nil

	case OpenPayment:
		if s.View != ViewDetail {
			return s, nil, fmt.Errorf("%w: payment starts from a property", ErrNotAllowed)
		}
		if s.Selected == nil {
			return s, nil, ErrNoSelection
		}
		s.PaymentOpen = true
		return s, nil, nil

	case ClosePayment:
		s.PaymentOpen = false
		return s, nil, nil

	case OpenFeedback:
		s.FeedbackOpen = true
		return s, nil, nil

	case CloseFeedback:
		s.FeedbackOpen = false
		return s, nil, nil

	case SetFilter:
		s.Filter = a.Filter
		return s, nil, nil

	case bookingDone:
		s = leave(s)
		s.View, s.Selected = ViewUserDashboard, nil
		return s, nil, nil
	}

	return mutate(s, a)
}

func reduceStage(s State, a Action) (State, []Effect, error) {
	switch a := a.(type) {
	case ShowLogin:
		s.Stage = StageLogin
	case ShowRegister:
		s.Stage = StageRegister
	case ClearRegistrationBanner:
		s.RegistrationBanner = false
	case registered:
		s.Stage = StageLogin
		s.RegistrationBanner = true
	case loggedIn:
		u := a.user
		s.User = &u
		s.View = ViewList
		s.RegistrationBanner = false
		return startLoad(s)
	}
	return s, nil, nil
}

// startLoad marks the session busy and issues a load for a new generation.
func startLoad(s State) (State, []Effect, error) {
	s.Generation++
	s.Loading = true
	s.Err = nil
	return s, []Effect{{Kind: EffectLoad, Generation: s.Generation, User: *s.User}}, nil
}

// finishLoad commits a load result unless a newer load or a logout has
// happened since it started.
func finishLoad(s State, a loadDone) State {
	if a.generation != s.Generation || s.User == nil {
		return s
	}
	s.Loading = false
	if a.err != nil {
		s.Err = a.err
		return s
	}
	s.Err = nil
	s.Data = a.data
	return s
}

func logout(s State) (State, []Effect, error) {
	if s.User == nil {
		return s, nil, nil
	}
	next := NewState()
	next.Generation = s.Generation + 1
	return next, []Effect{{Kind: EffectDropToken}}, nil
}

// leave closes anything tied to the current view. Leaving a form behaves
// like closing it.
func leave(s State) State {
	if s.View.isForm() {
		s.FormOpen = false
		s.Selected = nil
	}
	s.PaymentOpen = false
	return s
}

func back(s State) State {
	switch s.View {
	case ViewDetail, ViewUserDashboard, ViewAdmin:
		s = leave(s)
		s.View, s.Selected = ViewList, nil
	case ViewAdminDetail:
		s = leave(s)
		s.View, s.Selected = ViewAdmin, nil
	case ViewSubmitForm, ViewEditForm:
		s = closeForm(s)
	}
	return s
}

func closeForm(s State) State {
	s.FormOpen = false
	s.Selected = nil
	if s.IsAdmin() {
		s.View = ViewAdmin
	} else {
		s.View = ViewList
	}
	return s
}

func navigate(s State, to View) (State, []Effect, error) {
	switch to {
	case ViewAdmin:
		if !s.IsAdmin() {
			return s, nil, fmt.Errorf("%w: admin only", ErrNotAllowed)
		}
	case ViewList, ViewUserDashboard:
	default:
		return s, nil, fmt.Errorf("%w: cannot navigate to %s", ErrNotAllowed, to)
	}
	s = leave(s)
	s.View, s.Selected = to, nil
	return s, nil, nil
}

// mutate turns a mutation action into its effect. State is left alone; the
// view changes only once the call succeeds.
func mutate(s State, a Action) (State, []Effect, error) {
	var eff Effect

	switch a := a.(type) {
	case SaveProperty:
		switch {
		case s.View == ViewEditForm:
			if s.Selected == nil {
				return s, nil, ErrNoSelection
			}
			eff = Effect{
				Kind:          EffectUpdateProperty,
				PropertyID:    s.Selected.ID,
				PropertyPatch: models.PatchFromInput(a.Input),
			}
		case s.View == ViewSubmitForm:
			status := models.StatusPending
			if s.IsAdmin() {
				status = models.StatusApproved
			}
			eff = Effect{Kind: EffectAddProperty, Input: a.Input, Status: status}
		default:
			return s, nil, fmt.Errorf("%w: no form open", ErrNotAllowed)
		}
		eff.Failure = "Could not save the property."
		eff.Then = CloseForm{}

	case ConfirmBooking:
		if !s.PaymentOpen {
			return s, nil, fmt.Errorf("%w: payment not started", ErrNotAllowed)
		}
		status, uid := models.StatusBooked, s.User.ID
		eff = Effect{
			Kind:          EffectUpdateProperty,
			PropertyID:    a.PropertyID,
			PropertyPatch: models.PropertyPatch{Status: &status, BookedByUserID: &uid},
			Failure:       "Could not confirm the booking.",
			Then:          bookingDone{},
		}

	case SubmitFeedback:
		msg := strings.TrimSpace(a.Message)
		if msg == "" {
			return s, nil, ErrEmptyMessage
		}
		eff = Effect{
			Kind:    EffectSubmitFeedback,
			Message: msg,
			User:    *s.User,
			Failure: "Could not submit feedback.",
			Then:    CloseFeedback{},
		}

	case DeleteProperty, Approve, Reject, UpdateUser, DeleteUser, DeleteFeedback:
		if !s.IsAdmin() {
			return s, nil, fmt.Errorf("%w: admin only", ErrNotAllowed)
		}
		eff = adminEffect(a)

	default:
		return s, nil, fmt.Errorf("%w: unknown action %T", ErrNotAllowed, a)
	}

	return s, []Effect{eff}, nil
}

func adminEffect(a Action) Effect {
	switch a := a.(type) {
	case DeleteProperty:
		return Effect{
			Kind:       EffectDeleteProperty,
			PropertyID: a.ID,
			Confirm:    "Are you sure you want to delete this property?",
			Failure:    "Could not delete the property.",
		}
	case Approve:
		status := models.StatusApproved
		return Effect{
			Kind:          EffectUpdateProperty,
			PropertyID:    a.ID,
			PropertyPatch: models.PropertyPatch{Status: &status},
			Failure:       "Could not approve the property.",
		}
	case Reject:
		return Effect{
			Kind:       EffectDeleteProperty,
			PropertyID: a.ID,
			Failure:    "Could not reject the property.",
		}
	case UpdateUser:
		return Effect{
			Kind:      EffectUpdateUser,
			UserID:    a.ID,
			UserPatch: a.Patch,
			Confirm:   "Are you sure you want to update this user?",
			Failure:   "Could not update the user.",
		}
	case DeleteUser:
		return Effect{
			Kind:    EffectDeleteUser,
			UserID:  a.ID,
			Confirm: "Are you sure you want to delete this user? This action cannot be undone.",
			Failure: "Could not delete the user.",
		}
	case DeleteFeedback:
		return Effect{
			Kind:       EffectDeleteFeedback,
			FeedbackID: a.ID,
			Failure:    "Could not delete feedback.",
		}
	}
	panic(fmt.Sprintf("session: no admin effect for %T", a))
}
