// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/estatehub/listing"
	"github.com/danielhkuo/estatehub/models"
	"github.com/danielhkuo/estatehub/session"
)

// render prints the screen derived from st.
func render(w io.Writer, st session.State) {
	fmt.Fprintln(w)
	switch st.Screen() {
	case session.ScreenIntro:
		fmt.Fprintln(w, "EstateHub: find your next home.")
		fmt.Fprintln(w, "login | register")
	case session.ScreenLogin:
		if st.RegistrationBanner {
			fmt.Fprintln(w, "Registration successful. Please log in.")
		}
		fmt.Fprintln(w, "Log in: login <username> <password>")
	case session.ScreenRegister:
		fmt.Fprintln(w, "Register: register <name> <username> <password>")
	case session.ScreenLoading:
		fmt.Fprintln(w, "Loading...")
	case session.ScreenError:
		fmt.Fprintf(w, "Could not load data: %v\n", st.Err)
		fmt.Fprintln(w, "retry | logout")
	case session.ScreenEmpty:
		fmt.Fprintln(w, "Nothing selected.")
		fmt.Fprintln(w, "back")
	case session.ScreenList:
		renderList(w, st)
	case session.ScreenDetail, session.ScreenAdminDetail:
		renderDetail(w, st)
	case session.ScreenSubmitForm:
		fmt.Fprintln(w, "New listing: save address=... city=... price=... type=... listing=sale|rent [field=value...]")
		fmt.Fprintln(w, "cancel")
	case session.ScreenEditForm:
		fmt.Fprintf(w, "Editing #%d %s\n", st.Selected.ID, st.Selected.Address)
		fmt.Fprintln(w, "save [field=value...] | cancel")
	case session.ScreenAdmin:
		renderAdmin(w, st)
	case session.ScreenUserDashboard:
		renderDashboard(w, st)
	}
	if st.FeedbackOpen {
		fmt.Fprintln(w, "Feedback: feedback <message>")
	}
}

func renderList(w io.Writer, st session.State) {
	fmt.Fprintf(w, "Welcome, %s\n", st.User.Name)

	if st.IsAdmin() {
		if n := st.Data.Stats.PendingCount; n > 0 {
			fmt.Fprintf(w, "! %s listing(s) awaiting approval (admin)\n", humanize.Comma(int64(n)))
		}
	}

	fmt.Fprintln(w, "Featured:")
	for _, p := range st.Featured() {
		fmt.Fprintf(w, "  %s\n", propertyLine(p))
	}

	listings := st.Listings()
	fmt.Fprintf(w, "Listings (%s of %s) %s:\n",
		humanize.Comma(int64(len(listings))),
		humanize.Comma(int64(len(st.ApprovedListings()))),
		filterLine(st.Filter))
	for _, p := range listings {
		fmt.Fprintf(w, "  %s\n", propertyLine(p))
	}
	if len(listings) == 0 {
		fmt.Fprintln(w, "  no listings match")
	}
}

func renderDetail(w io.Writer, st session.State) {
	p := *st.Selected
	fmt.Fprintf(w, "#%d %s, %s\n", p.ID, p.Address, p.City)
	fmt.Fprintf(w, "  %s for %s  %s\n", p.Type, p.ListingType, formatPrice(p))
	fmt.Fprintf(w, "  %d bd / %d ba / %s sqft  [%s]\n", p.Bedrooms, p.Bathrooms, humanize.Comma(int64(p.Sqft)), p.Status)
	if p.Description != "" {
		fmt.Fprintf(w, "  %s\n", p.Description)
	}
	for _, u := range p.ImageURLs {
		fmt.Fprintf(w, "  image: %s\n", u)
	}
	if p.ImageURL360 != nil && *p.ImageURL360 != "" {
		fmt.Fprintf(w, "  360 tour: %s\n", *p.ImageURL360)
	}

	if st.View == session.ViewAdminDetail {
		fmt.Fprintf(w, "approve %d | reject %d | back\n", p.ID, p.ID)
		return
	}
	fmt.Fprintln(w, "book | back")
}

func renderAdmin(w io.Writer, st session.State) {
	d := st.Data
	fmt.Fprintln(w, "Admin dashboard")
	fmt.Fprintf(w, "  total value %s  approved %s  pending %s  users %s\n",
		"$"+humanize.Commaf(d.Stats.TotalValue),
		humanize.Comma(int64(d.Stats.ApprovedCount)),
		humanize.Comma(int64(d.Stats.PendingCount)),
		humanize.Comma(int64(d.Stats.UserCount)))

	fmt.Fprintln(w, "Pending:")
	for _, p := range d.Pending {
		fmt.Fprintf(w, "  %s\n", propertyLine(p))
	}
	fmt.Fprintln(w, "Approved:")
	for _, p := range d.Approved {
		fmt.Fprintf(w, "  %s\n", propertyLine(p))
	}
	fmt.Fprintln(w, "Users:")
	for _, u := range d.Users {
		fmt.Fprintf(w, "  #%d %s (@%s) %s\n", u.ID, u.Name, u.Username, u.Role)
	}
	fmt.Fprintln(w, "Feedback:")
	for _, f := range d.Feedback {
		fmt.Fprintf(w, "  %s %s from %s: %s\n", f.ID, feedbackAge(f.CreatedAt), feedbackAuthor(f), f.Message)
	}
}

func renderDashboard(w io.Writer, st session.State) {
	fmt.Fprintln(w, "My bookings")
	for _, p := range st.Data.Bookings {
		fmt.Fprintf(w, "  %s\n", propertyLine(p))
	}
	if len(st.Data.Bookings) == 0 {
		fmt.Fprintln(w, "  no bookings yet")
	}
}

func propertyLine(p models.Property) string {
	return fmt.Sprintf("#%d %-10s %s, %s  %s", p.ID, p.Type, p.Address, p.City, formatPrice(p))
}

func formatPrice(p models.Property) string {
	price := "$" + humanize.Commaf(listing.EffectivePrice(p))
	if p.ListingType == models.ListingRent {
		price += "/mo"
	}
	return price
}

func filterLine(f models.Filter) string {
	var parts []string
	if f.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("search=%q", f.SearchTerm))
	}
	if f.MinPrice != "" {
		parts = append(parts, "min="+f.MinPrice)
	}
	if f.MaxPrice != "" {
		parts = append(parts, "max="+f.MaxPrice)
	}
	if f.Type != models.FilterAll {
		parts = append(parts, "type="+f.Type)
	}
	if f.ListingType != models.FilterAll {
		parts = append(parts, "listing="+f.ListingType)
	}
	if len(parts) == 0 {
		return "[no filter]"
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func feedbackAuthor(f models.Feedback) string {
	if f.UserName == nil || *f.UserName == "" {
		return "anonymous"
	}
	return *f.UserName
}

func feedbackAge(createdAt string) string {
	t, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return createdAt
	}
	return humanize.Time(t)
}

func helpText(st session.State) string {
	var b strings.Builder
	switch {
	case st.User == nil:
		b.WriteString("login [<username> <password>]\nregister [<name> <username> <password>]\n")
	default:
		switch st.View {
		case session.ViewList:
			b.WriteString("filter search=.. min=.. max=.. type=.. listing=..\nreset\nview <id>\nnew\ndashboard\nfeedback [message]\n")
			if st.IsAdmin() {
				b.WriteString("edit <id>\ndelete <id>\nadmin\n")
			}
		case session.ViewDetail:
			b.WriteString("book\nback\n")
		case session.ViewAdminDetail:
			b.WriteString("approve <id>\nreject <id>\nback\n")
		case session.ViewAdmin:
			b.WriteString("pending <id>\napprove <id>\nreject <id>\nedit <id>\ndelete <id>\nrole <user-id> admin|user\ndeluser <id>\ndelfeedback <id>\nlist\n")
		case session.ViewSubmitForm, session.ViewEditForm:
			b.WriteString("save address=.. city=.. price=.. rent=.. beds=.. baths=.. sqft=.. type=.. listing=.. desc=.. images=a,b tour=..\ncancel\n")
		case session.ViewUserDashboard:
			b.WriteString("back\nlist\n")
		}
		b.WriteString("retry\nlogout\n")
	}
	b.WriteString("help\nquit\n")
	return b.String()
}
