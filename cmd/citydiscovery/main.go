package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"

	"github.com/mekedron/city-discovery/internal/cli"
	"github.com/mekedron/city-discovery/internal/config"
	locationgateway "github.com/mekedron/city-discovery/internal/gateway/location"
	"github.com/mekedron/city-discovery/internal/service/profile"
)

var version = "dev"

const (
	dotenvPath  = ".env"
	logLevelEnv = "CITYDISCOVERY_LOG_LEVEL"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	args := os.Args[1:]
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: resolveLogLevel(args)}))

	store, err := config.NewStore()
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	settings, err := store.Resolve(ctx, dotenvPath)
	if err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	deps := cli.Dependencies{
		Settings: settings,
		Profiles: profile.NewResolver(store),
		Location: locationgateway.NewClient(),
		Config:   store,
		Logger:   logger,
		Version:  version,
	}

	exitCode := cli.Execute(ctx, args, deps, os.Stdout, os.Stderr)
	stop()
	os.Exit(exitCode)
}

// resolveLogLevel keeps library logs quiet unless --verbose or the env asks for more.
func resolveLogLevel(args []string) slog.Level {
	if raw := strings.TrimSpace(os.Getenv(logLevelEnv)); raw != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(raw)); err == nil {
			return level
		}
	}
	if slices.Contains(args, "--verbose") {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
