// Package main is the entry point for the todoweb CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"todoweb/internal/cli"
	"todoweb/internal/commands"
	"todoweb/internal/config"
	"todoweb/internal/store"

	// Import all command packages to register them via init()
	_ "todoweb/internal/commands"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	// Every serve gets a fresh, empty list; nothing survives a restart.
	factory := func(ctx context.Context, cfg *config.Config) (store.Store, error) {
		return store.NewMemory(), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
