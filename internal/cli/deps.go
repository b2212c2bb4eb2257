package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"

	"github.com/mekedron/city-discovery/internal/config"
	"github.com/mekedron/city-discovery/internal/di"
	"github.com/mekedron/city-discovery/internal/domain"
)

var unknownCommandPattern = regexp.MustCompile(`unknown command "([^"]+)"`)

// ProfileResolver resolves profile selections.
type ProfileResolver interface {
	Find(ctx context.Context, profileName string) (domain.Profile, error)
}

// LocationResolver resolves addresses to coordinates.
type LocationResolver interface {
	Get(ctx context.Context, address string) (domain.Location, error)
}

// ConfigManager stores the config file.
type ConfigManager interface {
	Path() string
	Load(ctx context.Context) (config.Config, error)
	Save(ctx context.Context, cfg config.Config) error
}

// ContainerFactory builds the repository graph for one command run.
type ContainerFactory func(ctx context.Context, opts di.Options) (*di.Container, error)

// Dependencies wires runtime services.
type Dependencies struct {
	// Settings is the resolved configuration: file, .env and environment.
	Settings   config.Config
	Containers ContainerFactory
	Profiles   ProfileResolver
	Location   LocationResolver
	Config     ConfigManager
	Logger     *slog.Logger
	Version    string
}

func (d Dependencies) containers() ContainerFactory {
	if d.Containers != nil {
		return d.Containers
	}
	return di.New
}

func (d Dependencies) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

var errVersionShown = fmt.Errorf("version shown")

// Execute runs the CLI with injected dependencies.
func Execute(ctx context.Context, args []string, deps Dependencies, stdout io.Writer, stderr io.Writer) int {
	cmd := NewRootCommand(deps)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil || errors.Is(err, errVersionShown) {
		return 0
	}
	var controlled *exitError
	if errors.As(err, &controlled) {
		return controlled.code
	}

	if matches := unknownCommandPattern.FindStringSubmatch(err.Error()); len(matches) > 1 {
		_, _ = fmt.Fprintf(stderr, "No such command '%s'\n", matches[1])
		return 2
	}

	if msg := err.Error(); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}
	return 1
}
