// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/danielhkuo/estatehub/api"
	"github.com/danielhkuo/estatehub/models"
)

// Prompter asks the user to confirm destructive actions and shows alerts.
type Prompter interface {
	Confirm(message string) bool
	Alert(message string)
}

// Controller owns the session state and runs the effects Reduce asks for.
// It is safe for concurrent use; API calls run without holding the lock.
type Controller struct {
	client api.Client
	auth   api.Authenticator
	prompt Prompter

	mu    sync.Mutex
	state State
}

func NewController(client api.Client, auth api.Authenticator, prompt Prompter) *Controller {
	return &Controller{
		client: client,
		auth:   auth,
		prompt: prompt,
		state:  NewState(),
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// apply reduces a against the current state and stores the result.
func (c *Controller) apply(a Action) ([]Effect, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, effects, err := Reduce(c.state, a)
	if err != nil {
		return nil, err
	}
	c.state = next
	return effects, nil
}

// Dispatch applies a and runs its effects. Guard errors from Reduce and
// mutation failures are returned; load failures end up in State.Err.
func (c *Controller) Dispatch(ctx context.Context, a Action) error {
	effects, err := c.apply(a)
	if err != nil {
		return err
	}
	return c.run(ctx, effects)
}

// Login authenticates and starts the first load. A failure leaves the state
// untouched.
func (c *Controller) Login(ctx context.Context, creds models.Credentials) error {
	if st := c.State(); st.User != nil || st.Stage != StageLogin {
		return fmt.Errorf("%w: not on the login screen", ErrNotAllowed)
	}

	user, err := c.auth.Login(ctx, creds)
	if err != nil {
		slog.Info("login failed", "username", creds.Username, "error", err)
		return err
	}
	slog.Info("logged in", "user_id", user.ID, "role", user.Role)

	return c.Dispatch(ctx, loggedIn{user: user})
}

// Register creates an account and moves to the login screen with the
// success banner raised.
func (c *Controller) Register(ctx context.Context, reg models.Registration) error {
	if st := c.State(); st.User != nil || st.Stage != StageRegister {
		return fmt.Errorf("%w: not on the register screen", ErrNotAllowed)
	}

	user, err := c.auth.Register(ctx, reg)
	if err != nil {
		slog.Info("registration failed", "username", reg.Username, "error", err)
		return err
	}
	slog.Info("registered", "user_id", user.ID)

	_, err = c.apply(registered{})
	return err
}

// Reload re-runs the load for the current user, which is the retry action
// of the error screen. It returns the load error, if any.
func (c *Controller) Reload(ctx context.Context) error {
	effects, err := c.apply(loadStarted{})
	if err != nil {
		return err
	}
	for _, eff := range effects {
		if err := c.load(ctx, eff); err != nil {
			return err
		}
	}
	return nil
}

func (c *Controller) run(ctx context.Context, effects []Effect) error {
	for _, eff := range effects {
		switch {
		case eff.Kind == EffectLoad:
			// Load failures are reported through State.Err
			c.load(ctx, eff)
		case eff.Kind == EffectDropToken:
			c.auth.Logout()
		case eff.isMutation():
			if err := c.mutate(ctx, eff); err != nil {
				return err
			}
		}
	}
	return nil
}

// mutate runs one write. A declined confirmation does nothing. Success
// applies eff.Then and reloads everything.
func (c *Controller) mutate(ctx context.Context, eff Effect) error {
	if eff.Confirm != "" && !c.prompt.Confirm(eff.Confirm) {
		slog.Debug("mutation declined", "kind", eff.Kind)
		return nil
	}

	if err := c.call(ctx, eff); err != nil {
		slog.Error("mutation failed", "kind", eff.Kind, "error", err)
		c.prompt.Alert("Error: " + eff.Failure)
		return fmt.Errorf("%w: %s: %w", ErrMutationFailed, eff.Kind, err)
	}
	slog.Info("mutation done", "kind", eff.Kind)

	if eff.Then != nil {
		if _, err := c.apply(eff.Then); err != nil {
			// Logged out while the call was in flight
			slog.Debug("follow-up skipped", "kind", eff.Kind, "error", err)
			return nil
		}
	}

	effects, err := c.apply(loadStarted{})
	if err != nil {
		return nil
	}
	return c.run(ctx, effects)
}

func (c *Controller) call(ctx context.Context, eff Effect) error {
	var err error
	switch eff.Kind {
	case EffectAddProperty:
		_, err = c.client.AddProperty(ctx, eff.Input, eff.Status)
	case EffectUpdateProperty:
		_, err = c.client.UpdateProperty(ctx, eff.PropertyID, eff.PropertyPatch)
	case EffectDeleteProperty:
		err = c.client.DeleteProperty(ctx, eff.PropertyID)
	case EffectUpdateUser:
		_, err = c.client.UpdateUser(ctx, eff.UserID, eff.UserPatch)
	case EffectDeleteUser:
		err = c.client.DeleteUser(ctx, eff.UserID)
	case EffectSubmitFeedback:
		author := eff.User
		_, err = c.client.SubmitFeedback(ctx, eff.Message, &author)
	case EffectDeleteFeedback:
		err = c.client.DeleteFeedback(ctx, eff.FeedbackID)
	default:
		err = fmt.Errorf("unexpected effect %s", eff.Kind)
	}
	return err
}
