// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types shared by the
backend, the API client and the session controller.

# Domain Types

  - Property: a listing with sale price, optional rent price, type,
    listing type (sale/rent) and moderation status
  - User: account with a role (admin/user)
  - Feedback: message left by a user, read by admins
  - AdminStats: aggregate figures for the moderation dashboard
  - Filter: transient listing criteria typed by the user

# Request Types

  - Credentials, Registration: login and sign-up payloads
  - PropertyInput: every editable listing field
  - CreatePropertyRequest: PropertyInput plus the requested status
  - PropertyPatch: partial property update (nil fields untouched, Clear
    resets rentPrice / imageUrl360 to null)
  - UserPatch: partial user update (role, name, username)
  - FeedbackRequest: message

# Response Types

  - LoginResponse: token, user
  - ErrorResponse: error, message

# Invariants

Property.Validate enforces the stored-property rules. A booked property
always carries BookedByUserID:

	p.Status = models.StatusBooked
	err := p.Validate() // ErrBookingWithoutUser when BookedByUserID is nil

PropertyPatch.Apply drops the booking reference whenever the resulting
status is not booked.

# Storage Helpers

StringList stores image URL lists as a JSON array in a text column and
implements sql.Scanner and driver.Valuer.
*/
package models
