package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/taskwire/taskwire/internal/client/api"
	"github.com/taskwire/taskwire/internal/client/auth"
	"github.com/taskwire/taskwire/internal/client/cli"
	"github.com/taskwire/taskwire/internal/client/storage/boltdb"
	"github.com/taskwire/taskwire/internal/client/sync"
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
	serverURL := flag.String("server", "http://localhost:8080", "Cloud sync server URL")
	relayURL := flag.String("relay", "ws://localhost:8081/ws", "Collaboration relay URL")
	dbPath := flag.String("db", "taskwire-client.db", "Path to local database")

	flag.Parse()

	// Show version and exit if requested
	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage()
		os.Exit(1)
	}

	command := args[0]

	// Создаем контекст
	ctx := context.Background()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// Открываем BoltDB storage
	boltStorage, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := boltStorage.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	// Собираем сервисы
	apiClient := api.NewClient(*serverURL)
	authService := auth.NewService(boltStorage, logger)
	syncService := sync.NewService(apiClient, boltStorage, logger)

	// Выполняем команду
	c := cli.New(apiClient, authService, syncService, boltStorage, *relayURL, logger)
	c.Run(ctx, command, args[1:])
}

func printVersion() {
	fmt.Printf("Taskwire Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
