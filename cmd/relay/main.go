package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/taskwire/taskwire/internal/relay"
	"github.com/taskwire/taskwire/internal/relay/middleware"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", ":8081", "Listen address")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	r := relay.New(logger)

	mux := http.NewServeMux()
	mux.Handle("/ws", r)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":  "ok",
			"version": Version,
		})
	})

	handler := middleware.RecoveryMiddleware(logger)(
		middleware.LoggingMiddleware(logger)(mux),
	)

	logger.Info("relay starting", "addr", *addr)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		logger.Error("relay stopped", "error", err)
		os.Exit(1)
	}
}

func printVersion() {
	fmt.Printf("Taskwire Relay\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
