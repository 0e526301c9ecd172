package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/vincewoo/splitwiser/internal/client/api"
	"github.com/vincewoo/splitwiser/internal/client/auth"
	"github.com/vincewoo/splitwiser/internal/client/cli"
	"github.com/vincewoo/splitwiser/internal/client/data"
	"github.com/vincewoo/splitwiser/internal/client/iocli"
	"github.com/vincewoo/splitwiser/internal/client/storage/boltdb"
	"github.com/vincewoo/splitwiser/internal/client/syncer"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", "http://localhost:8080", "Server URL")
	dbPath := flag.String("db", "splitwiser-client.db", "Path to local database")
	offline := flag.Bool("offline", false, "Work offline, queue all mutations")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	stdio := iocli.NewStdio()

	args := flag.Args()
	if len(args) == 0 {
		cli.New(stdio, nil, nil, nil).PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// Открываем локальное хранилище
	store, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	apiClient := api.NewClient(*serverURL)
	authService := auth.NewService(apiClient, store)

	// Движок синхронизации: восстановление зависших операций и
	// начального состояния происходит в Start
	syncService := syncer.NewService(apiClient, store, authService, logger)
	if err := syncService.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start sync engine: %v\n", err)
		os.Exit(1)
	}
	syncService.SetOnline(!*offline)

	dataService := data.NewService(apiClient, store, syncService, authService)

	app := cli.New(stdio, authService, dataService, syncService)
	runErr := app.Run(ctx, command, args[1:])

	// Дожидаемся фоновых отправок перед закрытием базы
	syncService.Wait()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Splitwiser Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
