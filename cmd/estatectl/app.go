// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/danielhkuo/estatehub/models"
	"github.com/danielhkuo/estatehub/session"
)

var (
	errUsage = errors.New("usage")
	errQuit  = errors.New("quit")
)

type app struct {
	ctl *session.Controller
	in  *bufio.Scanner
	out io.Writer
}

// run renders the current screen, reads a command and executes it until
// input ends or the user quits.
func (a *app) run(ctx context.Context) error {
	for {
		st := a.ctl.State()
		render(a.out, st)
		if st.Screen() == session.ScreenLogin && st.RegistrationBanner {
			if err := a.ctl.Dispatch(ctx, session.ClearRegistrationBanner{}); err != nil {
				return err
			}
		}
		fmt.Fprint(a.out, "> ")

		if !a.in.Scan() {
			return a.in.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		err := a.exec(ctx, a.in.Text())
		switch {
		case errors.Is(err, errQuit):
			return nil
		case err != nil:
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

// exec runs one command line against the controller.
func (a *app) exec(ctx context.Context, line string) error {
	args := tokenize(line)
	if len(args) == 0 {
		return nil
	}
	cmd, args := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "quit", "exit":
		return errQuit
	case "help":
		fmt.Fprint(a.out, helpText(a.ctl.State()))
		return nil
	}

	st := a.ctl.State()
	if st.User == nil {
		return a.execLoggedOut(ctx, cmd, args)
	}
	return a.execSession(ctx, st, cmd, args)
}

func (a *app) execLoggedOut(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		if len(args) == 0 {
			return a.ctl.Dispatch(ctx, session.ShowLogin{})
		}
		if len(args) != 2 {
			return fmt.Errorf("%w: login <username> <password>", errUsage)
		}
		if a.ctl.State().Stage != session.StageLogin {
			if err := a.ctl.Dispatch(ctx, session.ShowLogin{}); err != nil {
				return err
			}
		}
		return a.ctl.Login(ctx, models.Credentials{Username: args[0], Password: args[1]})

	case "register":
		if len(args) == 0 {
			return a.ctl.Dispatch(ctx, session.ShowRegister{})
		}
		if len(args) != 3 {
			return fmt.Errorf("%w: register <name> <username> <password>", errUsage)
		}
		if a.ctl.State().Stage != session.StageRegister {
			if err := a.ctl.Dispatch(ctx, session.ShowRegister{}); err != nil {
				return err
			}
		}
		return a.ctl.Register(ctx, models.Registration{Name: args[0], Username: args[1], Password: args[2]})
	}
	return fmt.Errorf("unknown command %q, try help", cmd)
}

func (a *app) execSession(ctx context.Context, st session.State, cmd string, args []string) error {
	switch cmd {
	case "logout":
		return a.ctl.Dispatch(ctx, session.Logout{})
	case "retry", "reload":
		return a.ctl.Reload(ctx)
	case "back":
		return a.ctl.Dispatch(ctx, session.Back{})
	case "list", "home":
		return a.ctl.Dispatch(ctx, session.Navigate{To: session.ViewList})
	case "admin":
		return a.ctl.Dispatch(ctx, session.Navigate{To: session.ViewAdmin})
	case "dashboard", "bookings":
		return a.ctl.Dispatch(ctx, session.Navigate{To: session.ViewUserDashboard})

	case "filter":
		f, err := parseFilter(st.Filter, args)
		if err != nil {
			return err
		}
		return a.ctl.Dispatch(ctx, session.SetFilter{Filter: f})
	case "reset":
		return a.ctl.Dispatch(ctx, session.SetFilter{Filter: models.DefaultFilter()})

	case "view":
		p, err := findProperty(st, args)
		if err != nil {
			return err
		}
		return a.ctl.Dispatch(ctx, session.ViewDetails{Property: p})
	case "pending":
		p, err := findProperty(st, args)
		if err != nil {
			return err
		}
		return a.ctl.Dispatch(ctx, session.ViewPendingDetails{Property: p})

	case "new":
		return a.ctl.Dispatch(ctx, session.OpenForm{})
	case "edit":
		p, err := findProperty(st, args)
		if err != nil {
			return err
		}
		return a.ctl.Dispatch(ctx, session.OpenForm{Property: &p})
	case "cancel":
		return a.ctl.Dispatch(ctx, session.CloseForm{})
	case "save":
		in, err := parsePropertyInput(st.Selected, args)
		if err != nil {
			return err
		}
		return a.ctl.Dispatch(ctx, session.SaveProperty{Input: in})

	case "book":
		if st.Selected == nil {
			return session.ErrNoSelection
		}
		if err := a.ctl.Dispatch(ctx, session.OpenPayment{}); err != nil {
			return err
		}
		if !a.confirmPayment(*st.Selected) {
			return a.ctl.Dispatch(ctx, session.ClosePayment{})
		}
		return a.ctl.Dispatch(ctx, session.ConfirmBooking{PropertyID: st.Selected.ID})

	case "approve", "reject", "delete", "deluser":
		id, err := oneID(args)
		if err != nil {
			return err
		}
		actions := map[string]session.Action{
			"approve": session.Approve{ID: id},
			"reject":  session.Reject{ID: id},
			"delete":  session.DeleteProperty{ID: id},
			"deluser": session.DeleteUser{ID: id},
		}
		return a.ctl.Dispatch(ctx, actions[cmd])

	case "role":
		if len(args) != 2 {
			return fmt.Errorf("%w: role <user-id> admin|user", errUsage)
		}
		id, err := oneID(args[:1])
		if err != nil {
			return err
		}
		role := args[1]
		if !models.IsValidRole(role) {
			return fmt.Errorf("%w: role must be admin or user", errUsage)
		}
		return a.ctl.Dispatch(ctx, session.UpdateUser{ID: id, Patch: models.UserPatch{Role: &role}})

	case "feedback":
		if len(args) == 0 {
			return a.ctl.Dispatch(ctx, session.OpenFeedback{})
		}
		return a.ctl.Dispatch(ctx, session.SubmitFeedback{Message: strings.Join(args, " ")})
	case "delfeedback":
		if len(args) != 1 {
			return fmt.Errorf("%w: delfeedback <id>", errUsage)
		}
		return a.ctl.Dispatch(ctx, session.DeleteFeedback{ID: args[0]})
	}

	return fmt.Errorf("unknown command %q, try help", cmd)
}

func (a *app) confirmPayment(p models.Property) bool {
	fmt.Fprintf(a.out, "Book %s, %s for %s? [y/N] ", p.Address, p.City, formatPrice(p))
	if !a.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(a.in.Text()))
	return answer == "y" || answer == "yes"
}

// findProperty resolves an id against every collection the session holds.
func findProperty(st session.State, args []string) (models.Property, error) {
	id, err := oneID(args)
	if err != nil {
		return models.Property{}, err
	}
	d := st.Data
	for _, list := range [][]models.Property{d.Properties, d.Pending, d.Approved, d.Bookings} {
		for _, p := range list {
			if p.ID == id {
				return p, nil
			}
		}
	}
	return models.Property{}, fmt.Errorf("no property %d in this session", id)
}

func oneID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected one id", errUsage)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an id", errUsage, args[0])
	}
	return id, nil
}

// tokenize splits on whitespace, keeping double-quoted runs together.
func tokenize(line string) []string {
	var out []string
	var cur strings.Builder
	inQuote, started := false, false

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
			started = true
		case !inQuote && (r == ' ' || r == '\t'):
			if started {
				out = append(out, cur.String())
				cur.Reset()
				started = false
			}
		default:
			cur.WriteRune(r)
			started = true
		}
	}
	if started {
		out = append(out, cur.String())
	}
	return out
}

// splitKV parses key=value arguments.
func splitKV(args []string) (map[string]string, error) {
	kv := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", errUsage, arg)
		}
		kv[strings.ToLower(k)] = v
	}
	return kv, nil
}

// parseFilter updates f with key=value arguments. Price bounds are kept as
// typed; the listing engine decides what they mean.
func parseFilter(f models.Filter, args []string) (models.Filter, error) {
	kv, err := splitKV(args)
	if err != nil {
		return f, err
	}
	for k, v := range kv {
		switch k {
		case "search", "q":
			f.SearchTerm = v
		case "min":
			f.MinPrice = v
		case "max":
			f.MaxPrice = v
		case "type":
			if v == "" {
				v = models.FilterAll
			}
			if v != models.FilterAll && !models.IsValidPropertyType(v) {
				return f, fmt.Errorf("%w: type must be all or one of %s", errUsage, strings.Join(models.PropertyTypes, ", "))
			}
			f.Type = v
		case "listing":
			if v == "" {
				v = models.FilterAll
			}
			if v != models.FilterAll && !models.IsValidListingType(v) {
				return f, fmt.Errorf("%w: listing must be all, sale or rent", errUsage)
			}
			f.ListingType = v
		default:
			return f, fmt.Errorf("%w: unknown filter %q", errUsage, k)
		}
	}
	return f, nil
}

// parsePropertyInput builds form input from key=value arguments, starting
// from base when editing.
func parsePropertyInput(base *models.Property, args []string) (models.PropertyInput, error) {
	var in models.PropertyInput
	if base != nil {
		in = models.PropertyInput{
			Address:     base.Address,
			City:        base.City,
			Price:       base.Price,
			RentPrice:   base.RentPrice,
			Bedrooms:    base.Bedrooms,
			Bathrooms:   base.Bathrooms,
			Sqft:        base.Sqft,
			Description: base.Description,
			ImageURLs:   base.ImageURLs,
			ImageURL360: base.ImageURL360,
			Type:        base.Type,
			ListingType: base.ListingType,
		}
	}

	kv, err := splitKV(args)
	if err != nil {
		return in, err
	}

	for k, v := range kv {
		var err error
		switch k {
		case "address":
			in.Address = v
		case "city":
			in.City = v
		case "price":
			in.Price, err = strconv.ParseFloat(v, 64)
		case "rent":
			if v == "" {
				in.RentPrice = nil
				continue
			}
			var rent float64
			rent, err = strconv.ParseFloat(v, 64)
			in.RentPrice = &rent
		case "beds":
			in.Bedrooms, err = strconv.Atoi(v)
		case "baths":
			in.Bathrooms, err = strconv.Atoi(v)
		case "sqft":
			in.Sqft, err = strconv.Atoi(v)
		case "desc":
			in.Description = v
		case "images":
			in.ImageURLs = models.StringList(strings.Split(v, ","))
		case "tour":
			if v == "" {
				in.ImageURL360 = nil
				continue
			}
			tour := v
			in.ImageURL360 = &tour
		case "type":
			in.Type = v
		case "listing":
			in.ListingType = v
		default:
			return in, fmt.Errorf("%w: unknown field %q", errUsage, k)
		}
		if err != nil {
			return in, fmt.Errorf("%w: %s: %v", errUsage, k, err)
		}
	}

	if in.Address == "" || in.City == "" || in.Type == "" || in.ListingType == "" {
		return in, fmt.Errorf("%w: address, city, type and listing are required", errUsage)
	}
	return in, nil
}
