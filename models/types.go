// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Property status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusBooked   = "booked"
)

// Listing type constants
const (
	ListingSale = "sale"
	ListingRent = "rent"
)

// Role constants
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// FilterAll matches every property type / listing type.
const FilterAll = "all"

// PropertyTypes is the closed set of property categories.
var PropertyTypes = []string{
	"Villa",
	"Penthouse",
	"Lodge",
	"Manor",
	"Oasis",
	"Cottage",
	"Apartment",
	"House",
}

func IsValidPropertyType(t string) bool {
	for _, pt := range PropertyTypes {
		if pt == t {
			return true
		}
	}
	return false
}

func IsValidListingType(lt string) bool {
	return lt == ListingSale || lt == ListingRent
}

func IsValidStatus(s string) bool {
	return s == StatusPending || s == StatusApproved || s == StatusBooked
}

func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// Domain types

type Property struct {
	ID             int64      `json:"id" db:"id"`
	Address        string     `json:"address" db:"address"`
	City           string     `json:"city" db:"city"`
	Price          float64    `json:"price" db:"price"`
	RentPrice      *float64   `json:"rentPrice,omitempty" db:"rent_price"`
	Bedrooms       int        `json:"bedrooms" db:"bedrooms"`
	Bathrooms      int        `json:"bathrooms" db:"bathrooms"`
	Sqft           int        `json:"sqft" db:"sqft"`
	Description    string     `json:"description" db:"description"`
	ImageURLs      StringList `json:"imageUrls" db:"image_urls"`
	ImageURL360    *string    `json:"imageUrl360,omitempty" db:"image_url_360"`
	Type           string     `json:"type" db:"type"`
	ListingType    string     `json:"listingType" db:"listing_type"`
	Status         string     `json:"status" db:"status"`
	BookedByUserID *int64     `json:"bookedByUserId" db:"booked_by_user_id"`
}

type User struct {
	ID       int64  `json:"id" db:"id"`
	Role     string `json:"role" db:"role"`
	Name     string `json:"name" db:"name"`
	Username string `json:"username" db:"username"`
	Password string `json:"-" db:"-"` // Never expose in JSON
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

type Feedback struct {
	ID        string  `json:"id" db:"id"`
	Message   string  `json:"message" db:"message"`
	UserID    *int64  `json:"userId,omitempty" db:"user_id"`
	UserName  *string `json:"userName,omitempty" db:"user_name"`
	CreatedAt string  `json:"createdAt" db:"created_at"` // RFC 3339
}

type AdminStats struct {
	TotalValue    float64 `json:"totalValue"`
	ApprovedCount int     `json:"approvedCount"`
	PendingCount  int     `json:"pendingCount"`
	UserCount     int     `json:"userCount"`
}

// Filter holds the listing criteria typed by the user. Prices are kept as
// entered; an empty bound is unset.
type Filter struct {
	SearchTerm  string `json:"searchTerm"`
	MinPrice    string `json:"minPrice"`
	MaxPrice    string `json:"maxPrice"`
	Type        string `json:"type"`
	ListingType string `json:"listingType"`
}

func DefaultFilter() Filter {
	return Filter{Type: FilterAll, ListingType: FilterAll}
}

// Request types

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// PropertyInput carries every field a listing form edits.
type PropertyInput struct {
	Address     string     `json:"address"`
	City        string     `json:"city"`
	Price       float64    `json:"price"`
	RentPrice   *float64   `json:"rentPrice,omitempty"`
	Bedrooms    int        `json:"bedrooms"`
	Bathrooms   int        `json:"bathrooms"`
	Sqft        int        `json:"sqft"`
	Description string     `json:"description"`
	ImageURLs   StringList `json:"imageUrls"`
	ImageURL360 *string    `json:"imageUrl360,omitempty"`
	Type        string     `json:"type"`
	ListingType string     `json:"listingType"`
}

type CreatePropertyRequest struct {
	PropertyInput
	Status string `json:"status"`
}

// Optional property fields a patch can reset to null
const (
	FieldRentPrice   = "rentPrice"
	FieldImageURL360 = "imageUrl360"
)

// PropertyPatch is a partial update; nil fields are left alone. Clear names
// optional fields to reset to null.
type PropertyPatch struct {
	Address        *string     `json:"address,omitempty"`
	City           *string     `json:"city,omitempty"`
	Price          *float64    `json:"price,omitempty"`
	RentPrice      *float64    `json:"rentPrice,omitempty"`
	Bedrooms       *int        `json:"bedrooms,omitempty"`
	Bathrooms      *int        `json:"bathrooms,omitempty"`
	Sqft           *int        `json:"sqft,omitempty"`
	Description    *string     `json:"description,omitempty"`
	ImageURLs      *StringList `json:"imageUrls,omitempty"`
	ImageURL360    *string     `json:"imageUrl360,omitempty"`
	Type           *string     `json:"type,omitempty"`
	ListingType    *string     `json:"listingType,omitempty"`
	Status         *string     `json:"status,omitempty"`
	BookedByUserID *int64      `json:"bookedByUserId,omitempty"`
	Clear          []string    `json:"clear,omitempty"`
}

// PatchFromInput turns a full form submission into a patch touching every
// editable field. Optional fields left empty on the form are cleared.
func PatchFromInput(in PropertyInput) PropertyPatch {
	urls := in.ImageURLs
	var clear []string
	if in.RentPrice == nil {
		clear = append(clear, FieldRentPrice)
	}
	if in.ImageURL360 == nil {
		clear = append(clear, FieldImageURL360)
	}
	return PropertyPatch{
		Address:     &in.Address,
		City:        &in.City,
		Price:       &in.Price,
		RentPrice:   in.RentPrice,
		Bedrooms:    &in.Bedrooms,
		Bathrooms:   &in.Bathrooms,
		Sqft:        &in.Sqft,
		Description: &in.Description,
		ImageURLs:   &urls,
		ImageURL360: in.ImageURL360,
		Type:        &in.Type,
		ListingType: &in.ListingType,
		Clear:       clear,
	}
}

// CheckClear rejects unknown clear names and fields both set and cleared.
func (p PropertyPatch) CheckClear() error {
	for _, field := range p.Clear {
		switch field {
		case FieldRentPrice:
			if p.RentPrice != nil {
				return fmt.Errorf("%w: %s", ErrClearConflict, field)
			}
		case FieldImageURL360:
			if p.ImageURL360 != nil {
				return fmt.Errorf("%w: %s", ErrClearConflict, field)
			}
		default:
			return fmt.Errorf("%w: %q", ErrInvalidClear, field)
		}
	}
	return nil
}

// OnlyBooking reports whether the patch does nothing but book the property.
func (p PropertyPatch) OnlyBooking() bool {
	return p.Status != nil && *p.Status == StatusBooked && p.BookedByUserID != nil &&
		p.Address == nil && p.City == nil && p.Price == nil && p.RentPrice == nil &&
		p.Bedrooms == nil && p.Bathrooms == nil && p.Sqft == nil && p.Description == nil &&
		p.ImageURLs == nil && p.ImageURL360 == nil && p.Type == nil && p.ListingType == nil &&
		len(p.Clear) == 0
}

// Apply writes the patch onto prop, then resets the cleared fields. Leaving
// the booked status drops the booking reference.
func (p PropertyPatch) Apply(prop *Property) {
	if p.Address != nil {
		prop.Address = *p.Address
	}
	if p.City != nil {
		prop.City = *p.City
	}
	if p.Price != nil {
		prop.Price = *p.Price
	}
	if p.RentPrice != nil {
		v := *p.RentPrice
		prop.RentPrice = &v
	}
	if p.Bedrooms != nil {
		prop.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		prop.Bathrooms = *p.Bathrooms
	}
	if p.Sqft != nil {
		prop.Sqft = *p.Sqft
	}
	if p.Description != nil {
		prop.Description = *p.Description
	}
	if p.ImageURLs != nil {
		prop.ImageURLs = append(StringList(nil), (*p.ImageURLs)...)
	}
	if p.ImageURL360 != nil {
		v := *p.ImageURL360
		prop.ImageURL360 = &v
	}
	if p.Type != nil {
		prop.Type = *p.Type
	}
	if p.ListingType != nil {
		prop.ListingType = *p.ListingType
	}
	if p.Status != nil {
		prop.Status = *p.Status
	}
	if p.BookedByUserID != nil {
		v := *p.BookedByUserID
		prop.BookedByUserID = &v
	}
	for _, field := range p.Clear {
		switch field {
		case FieldRentPrice:
			prop.RentPrice = nil
		case FieldImageURL360:
			prop.ImageURL360 = nil
		}
	}
	if prop.Status != StatusBooked {
		prop.BookedByUserID = nil
	}
}

type UserPatch struct {
	Role     *string `json:"role,omitempty"`
	Name     *string `json:"name,omitempty"`
	Username *string `json:"username,omitempty"`
}

type FeedbackRequest struct {
	Message string `json:"message"`
}

// Response types

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Validation

var (
	ErrMissingAddress     = errors.New("address is required")
	ErrMissingCity        = errors.New("city is required")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrInvalidType        = errors.New("unknown property type")
	ErrInvalidListingType = errors.New("listingType must be sale or rent")
	ErrInvalidStatus      = errors.New("status must be pending, approved or booked")
	ErrBookingWithoutUser = errors.New("booked properties need bookedByUserId")
	ErrInvalidClear       = errors.New("clear only accepts rentPrice and imageUrl360")
	ErrClearConflict      = errors.New("field is both set and cleared")
)

// Validate checks the invariants every stored property must hold.
func (p *Property) Validate() error {
	if p.Address == "" {
		return ErrMissingAddress
	}
	if p.City == "" {
		return ErrMissingCity
	}
	if p.Price < 0 || (p.RentPrice != nil && *p.RentPrice < 0) {
		return ErrInvalidPrice
	}
	if !IsValidPropertyType(p.Type) {
		return ErrInvalidType
	}
	if !IsValidListingType(p.ListingType) {
		return ErrInvalidListingType
	}
	if !IsValidStatus(p.Status) {
		return ErrInvalidStatus
	}
	if p.Status == StatusBooked && p.BookedByUserID == nil {
		return ErrBookingWithoutUser
	}
	return nil
}

// NewProperty builds an unsaved property from form input.
func NewProperty(in PropertyInput, status string) Property {
	return Property{
		Address:     in.Address,
		City:        in.City,
		Price:       in.Price,
		RentPrice:   in.RentPrice,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Sqft:        in.Sqft,
		Description: in.Description,
		ImageURLs:   in.ImageURLs,
		ImageURL360: in.ImageURL360,
		Type:        in.Type,
		ListingType: in.ListingType,
		Status:      status,
	}
}

// StringList is stored as a JSON array in a text column.
type StringList []string

func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = StringList{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("StringList: unsupported source type %T", src)
	}
	if len(raw) == 0 {
		*s = StringList{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("StringList: %w", err)
	}
	*s = out
	return nil
}
