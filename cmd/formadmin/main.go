package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nberthel/formadmin/internal/client/api"
	"github.com/nberthel/formadmin/internal/client/auth"
	"github.com/nberthel/formadmin/internal/client/cli"
	"github.com/nberthel/formadmin/internal/client/config"
	"github.com/nberthel/formadmin/internal/client/iocli"
	"github.com/nberthel/formadmin/internal/client/storage/boltdb"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", cfg.ServerURL, "API base URL")
	dbPath := flag.String("db", cfg.DBPath, "Path to local database")

	flag.Parse()

	if *showVersion {
		printVersion()
		return 0
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	stdio := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.New(stdio, nil, api.NewResources(nil), nil, nil).PrintUsage()
		return 1
	}
	command := args[0]

	ctx := context.Background()

	if err := os.MkdirAll(filepath.Dir(*dbPath), 0o700); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to prepare database directory: %v\n", err)
		return 1
	}
	store, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	broadcaster := auth.NewBroadcaster()
	apiClient := api.NewClient(*serverURL, cfg.Timeout, store, broadcaster)
	resources := api.NewResources(apiClient)
	controller := auth.NewController(apiClient, store, broadcaster)

	// restore the persisted session before any command runs; login and
	// register work from a cold start, everything else needs the session
	if err := controller.Restore(ctx); err != nil {
		slog.Debug("session restore failed", "error", err)
	}
	session := controller.Current()
	if !session.IsAuthenticated() && requiresSession(command) {
		fmt.Fprintln(os.Stderr, "Not signed in. Run 'formadmin login' first.")
		return 1
	}

	app := cli.New(stdio, apiClient, resources, controller, store)
	if err := app.Run(ctx, command, args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// requiresSession lists the commands that only work signed in.
func requiresSession(command string) bool {
	switch command {
	case "login", "register", "status", "theme":
		return false
	default:
		return true
	}
}

func printVersion() {
	fmt.Printf("formadmin\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
