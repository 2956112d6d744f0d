// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session is the client-side session controller: who is logged in,
which screen is shown, and the data behind it.

# State and Reduce

State is an immutable snapshot. Reduce is a pure transition function:

	next, effects, err := session.Reduce(state, session.ViewDetails{Property: p})

Effects describe API calls (loads and mutations) without making them. A
guard failure (ErrNotAllowed, ErrNotAuthenticated, ErrNoSelection,
ErrEmptyMessage) returns the input state unchanged.

Pre-login stages run intro → login ⇄ register. Once a user is present the
view machine takes over:

	list ──ViewDetails──▶ detail ──OpenPayment/ConfirmBooking──▶ userDashboard
	list ──Navigate(admin)──▶ admin ──ViewPendingDetails──▶ adminDetail
	any  ──OpenForm──▶ submitForm / editForm ──CloseForm/SaveProperty──▶ list or admin

Non-admins never reach admin or adminDetail, and closing a form always clears
the selection.

# Controller

Controller holds the state behind a mutex and runs effects with the lock
released:

	c := session.NewController(client, client, prompter)
	err := c.Login(ctx, creds)
	err = c.Dispatch(ctx, session.Approve{ID: 7})

Every load fetches the collections for the user's role in one errgroup and
commits nothing unless all calls succeed. Each load has a generation number;
a completion from an older generation (or from before a logout) is dropped,
so the most recently started load wins.

Every successful mutation triggers a full reload. A failed mutation is
logged, shown through Prompter.Alert and returned wrapped in
ErrMutationFailed. Deleting a property or user, and updating a user, ask
Prompter.Confirm first.

# Screens

State.Screen says what to draw: the auth stage while logged out, then
loading, error (retry with Controller.Reload), or the active view.
*/
package session
