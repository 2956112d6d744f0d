// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package listing derives the visible property set from the full collection and
the user's filter.

# Filtering

Apply keeps input order and never re-sorts:

	visible := listing.Apply(listing.Approved(all), filter)

A property passes when the search term (case-insensitive) occurs in its
address or city, its effective price lies within the optional bounds, and its
type and listing type match the selectors ("all" matches everything).

# Effective Price

Rent listings compare on RentPrice, with a missing rent price counted as 0.
Sale listings compare on Price.

# Featured

Featured takes the first six approved properties and ignores the filter.
*/
package listing
