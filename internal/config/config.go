package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Environment variables read before flags are parsed.
// Flags given on the command line take precedence.
const (
	EnvBasePath = "TABLEDB_BASE_PATH"
	EnvLogLevel = "TABLEDB_LOG_LEVEL"
	EnvSeqURL   = "TABLEDB_SEQ_URL"
)

// Config holds process-level settings for the tabledb CLI
type Config struct {
	BasePath string     // directory holding one subdirectory per database
	LogLevel slog.Level // minimum level for console and Seq output
	SeqURL   string     // Seq ingestion endpoint; empty disables the Seq sink
}

// Default returns the configuration used when nothing is set
func Default() Config {
	return Config{
		BasePath: "databases",
		LogLevel: slog.LevelInfo,
	}
}

// Load builds a Config from the environment and then the given arguments
// (typically os.Args[1:])
func Load(args []string) (Config, error) {
	return load(args, os.LookupEnv)
}

func load(args []string, lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()
	level := cfg.LogLevel.String()

	if v, ok := lookup(EnvBasePath); ok && v != "" {
		cfg.BasePath = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		level = v
	}
	if v, ok := lookup(EnvSeqURL); ok {
		cfg.SeqURL = v
	}

	fs := flag.NewFlagSet("tabledb", flag.ContinueOnError)
	fs.StringVar(&cfg.BasePath, "base", cfg.BasePath, "Directory holding the databases")
	fs.StringVar(&level, "log-level", level, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.SeqURL, "seq-url", cfg.SeqURL, "Seq server URL for structured logs (empty to disable)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if cfg.BasePath == "" {
		return Config{}, fmt.Errorf("base path must not be empty")
	}

	return cfg, nil
}
