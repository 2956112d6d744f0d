// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import "github.com/danielhkuo/estatehub/models"

type EffectKind int

const (
	EffectLoad EffectKind = iota
	EffectDropToken
	EffectAddProperty
	EffectUpdateProperty
	EffectDeleteProperty
	EffectUpdateUser
	EffectDeleteUser
	EffectSubmitFeedback
	EffectDeleteFeedback
)

func (k EffectKind) String() string {
	switch k {
	case EffectLoad:
		return "load"
	case EffectDropToken:
		return "drop-token"
	case EffectAddProperty:
		return "add-property"
	case EffectUpdateProperty:
		return "update-property"
	case EffectDeleteProperty:
		return "delete-property"
	case EffectUpdateUser:
		return "update-user"
	case EffectDeleteUser:
		return "delete-user"
	case EffectSubmitFeedback:
		return "submit-feedback"
	case EffectDeleteFeedback:
		return "delete-feedback"
	default:
		return "unknown"
	}
}

// Effect describes a call the controller must make. Only the fields the
// kind needs are set.
type Effect struct {
	Kind EffectKind

	// Load
	Generation uint64
	User       models.User

	// Mutations
	PropertyID    int64
	Input         models.PropertyInput
	Status        string
	PropertyPatch models.PropertyPatch
	UserID        int64
	UserPatch     models.UserPatch
	FeedbackID    string
	Message       string

	// Confirm, when set, must be accepted by the Prompter before the call.
	Confirm string
	// Failure is the alert text shown when the call fails.
	Failure string
	// Then is applied after the call succeeds and before the reload.
	Then Action
}

func (e Effect) isMutation() bool {
	return e.Kind >= EffectAddProperty
}
