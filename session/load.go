// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/estatehub/listing"
	"github.com/danielhkuo/estatehub/models"
)

// load fetches the collections for eff.User and commits them if eff is still
// the latest load.
func (c *Controller) load(ctx context.Context, eff Effect) error {
	start := time.Now()
	data, err := c.fetch(ctx, eff.User)

	if err != nil {
		slog.Error("load failed", "generation", eff.Generation, "user_id", eff.User.ID, "error", err)
	} else {
		slog.Debug("load done", "generation", eff.Generation, "user_id", eff.User.ID,
			"duration_ms", time.Since(start).Milliseconds())
	}

	c.apply(loadDone{generation: eff.Generation, data: data, err: err})
	return err
}

// fetch runs every call for the user's role concurrently. The first failure
// cancels the rest and nothing is returned.
func (c *Controller) fetch(ctx context.Context, user models.User) (Data, error) {
	g, ctx := errgroup.WithContext(ctx)
	var d Data

	g.Go(func() error {
		all, err := c.client.GetProperties(ctx, "")
		if err != nil {
			return fmt.Errorf("properties: %w", err)
		}
		d.Properties = listing.Available(all)
		return nil
	})

	if user.IsAdmin() {
		g.Go(func() error {
			stats, err := c.client.GetAdminStats(ctx)
			if err != nil {
				return fmt.Errorf("stats: %w", err)
			}
			d.Stats = stats
			return nil
		})
		g.Go(func() error {
			pending, err := c.client.GetProperties(ctx, models.StatusPending)
			if err != nil {
				return fmt.Errorf("pending properties: %w", err)
			}
			d.Pending = pending
			return nil
		})
		g.Go(func() error {
			approved, err := c.client.GetProperties(ctx, models.StatusApproved)
			if err != nil {
				return fmt.Errorf("approved properties: %w", err)
			}
			d.Approved = approved
			return nil
		})
		g.Go(func() error {
			users, err := c.client.GetUsers(ctx)
			if err != nil {
				return fmt.Errorf("users: %w", err)
			}
			d.Users = users
			return nil
		})
		g.Go(func() error {
			feedback, err := c.client.GetFeedback(ctx)
			if err != nil {
				return fmt.Errorf("feedback: %w", err)
			}
			d.Feedback = feedback
			return nil
		})
	} else {
		g.Go(func() error {
			bookings, err := c.client.GetPropertiesByUserID(ctx, user.ID)
			if err != nil {
				return fmt.Errorf("bookings: %w", err)
			}
			d.Bookings = bookings
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Data{}, err
	}
	return d, nil
}
