// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command estatectl is a line-oriented terminal client for EstateHub.
//
//	estatectl -server http://localhost:3318
//
// Type "help" at any prompt for the commands available on the current screen.
package main

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielhkuo/estatehub/api"
	"github.com/danielhkuo/estatehub/cliparse"
	"github.com/danielhkuo/estatehub/session"
)

func main() {
	cfg, err := cliparse.ParseClientFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(2)
	}

	level := slog.LevelWarn
	if cfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	in := bufio.NewScanner(os.Stdin)
	prompt := &linePrompter{in: in, out: os.Stdout}

	client := api.NewHTTPClient(cfg.ServerURL, cfg.Timeout)
	ctl := session.NewController(client, client, prompt)

	slog.Debug("estatectl started", "server", cfg.ServerURL, "timeout", cfg.Timeout)

	a := &app{ctl: ctl, in: in, out: os.Stdout}
	if err := a.run(ctx); err != nil {
		slog.Error("estatectl stopped", "error", err)
		os.Exit(1)
	}
}
