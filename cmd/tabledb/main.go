package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v5/osfs"

	"github.com/leengari/tabledb/internal/config"
	"github.com/leengari/tabledb/internal/engine"
	"github.com/leengari/tabledb/internal/infrastructure/logging"
	"github.com/leengari/tabledb/internal/repl"
	"github.com/leengari/tabledb/internal/storage/manager"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, closeFn := logging.SetupLogger(logging.Options{
		Level:  cfg.LogLevel,
		Output: os.Stderr,
		SeqURL: cfg.SeqURL,
	})
	defer closeFn()

	slog.SetDefault(logger)

	// Ensure database directory exists
	if err := os.MkdirAll(cfg.BasePath, 0755); err != nil {
		slog.Error("failed to create databases directory", "error", err)
		closeFn()
		os.Exit(1)
	}

	registry := manager.NewRegistry(
		osfs.New(cfg.BasePath),
		logger,
		engine.WithObserver(engine.NewLoggingObserver(logger)),
	)

	slog.Info("Application ready!", "base_path", cfg.BasePath)

	repl.Start(registry, os.Stdin, os.Stdout)
}
