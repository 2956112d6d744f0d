// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package listing

import (
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/estatehub/models"
)

// FeaturedCount is the size of the featured carousel.
const FeaturedCount = 6

// EffectivePrice returns the rent price for rent listings (0 when unset) and
// the sale price otherwise.
func EffectivePrice(p models.Property) float64 {
	if p.ListingType == models.ListingRent {
		if p.RentPrice == nil {
			return 0
		}
		return *p.RentPrice
	}
	return p.Price
}

// Approved keeps the properties visible to the public.
func Approved(props []models.Property) []models.Property {
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if p.Status == models.StatusApproved {
			out = append(out, p)
		}
	}
	return out
}

// Available drops booked properties.
func Available(props []models.Property) []models.Property {
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if p.Status != models.StatusBooked {
			out = append(out, p)
		}
	}
	return out
}

// Featured returns the first FeaturedCount approved properties. Filters never
// apply here.
func Featured(approved []models.Property) []models.Property {
	if len(approved) > FeaturedCount {
		approved = approved[:FeaturedCount]
	}
	return append([]models.Property(nil), approved...)
}

// Apply returns the properties matching every criterion of f, in input order.
func Apply(props []models.Property, f models.Filter) []models.Property {
	m := newMatcher(f)
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if m.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether a single property passes f.
func Matches(p models.Property, f models.Filter) bool {
	return newMatcher(f).match(p)
}

type matcher struct {
	term        string
	min, max    float64
	hasMin      bool
	hasMax      bool
	propType    string
	listingType string
}

func newMatcher(f models.Filter) matcher {
	m := matcher{
		term:        strings.ToLower(f.SearchTerm),
		propType:    f.Type,
		listingType: f.ListingType,
	}
	m.min, m.hasMin = parseBound(f.MinPrice)
	m.max, m.hasMax = parseBound(f.MaxPrice)
	return m
}

// parseBound treats empty input as unset and whitespace-only input as 0.
// Anything else that does not parse becomes NaN, which no price satisfies.
func parseBound(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN(), true
	}
	return v, true
}

func (m matcher) match(p models.Property) bool {
	if m.term != "" &&
		!strings.Contains(strings.ToLower(p.Address), m.term) &&
		!strings.Contains(strings.ToLower(p.City), m.term) {
		return false
	}

	price := EffectivePrice(p)
	if m.hasMin && !(price >= m.min) {
		return false
	}
	if m.hasMax && !(price <= m.max) {
		return false
	}

	if m.propType != "" && m.propType != models.FilterAll && p.Type != m.propType {
		return false
	}
	if m.listingType != "" && m.listingType != models.FilterAll && p.ListingType != m.listingType {
		return false
	}
	return true
}
