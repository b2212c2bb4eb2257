package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mekedron/city-discovery/internal/config"
	"github.com/mekedron/city-discovery/internal/di"
	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/result"
	"github.com/mekedron/city-discovery/internal/service/output"
	"github.com/mekedron/city-discovery/internal/service/profile"
	"github.com/mekedron/city-discovery/internal/viewmodel"
)

type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return ""
}

type globalFlags struct {
	Format  string
	Profile string
	Backend string
	Output  string
	Verbose bool
}

const sharedGlobalFlagAnnotation = "citydiscovery_shared_global"

const (
	codeInvalidArgument = "CD_INVALID_ARGUMENT"
	codeLocation        = "CD_LOCATION_RESOLVE_ERROR"
	codeProfile         = "CD_PROFILE_ERROR"
	codeAuthRequired    = "CD_AUTH_REQUIRED"
	codeValidation      = "CD_VALIDATION_ERROR"
	codeNotFound        = "CD_NOT_FOUND"
	codeNetwork         = "CD_NETWORK_ERROR"
	codeUpstream        = "CD_UPSTREAM_ERROR"
)

func addGlobalFlags(cmd *cobra.Command, flags *globalFlags) {
	addSharedGlobalFlag(cmd, "format", func() {
		cmd.Flags().StringVar(&flags.Format, "format", "table", "Output format: table, json, or yaml.")
	})
	addSharedGlobalFlag(cmd, "profile", func() {
		cmd.Flags().StringVar(&flags.Profile, "profile", "", "Saved location profile to browse from.")
	})
	addSharedGlobalFlag(cmd, "backend", func() {
		cmd.Flags().StringVar(&flags.Backend, "backend", "", "Data source for this command: mock or live. Defaults to the configured backend.")
	})
	addSharedGlobalFlag(cmd, "output", func() {
		cmd.Flags().StringVar(&flags.Output, "output", "", "Also write the rendered output to this file.")
	})
	addSharedGlobalFlag(cmd, "verbose", func() {
		cmd.Flags().BoolVar(&flags.Verbose, "verbose", false, "Enable verbose output (prints API request trace for the live backend).")
	})
}

func addSharedGlobalFlag(cmd *cobra.Command, name string, register func()) {
	if cmd.Flags().Lookup(name) != nil {
		return
	}
	register()
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		return
	}
	if flag.Annotations == nil {
		flag.Annotations = map[string][]string{}
	}
	flag.Annotations[sharedGlobalFlagAnnotation] = []string{"true"}
}

func resolveProfileLabel(profileName string) string {
	profile := strings.TrimSpace(profileName)
	if profile == "" {
		return "default"
	}
	return profile
}

// commandEnv carries what every command needs after flags are parsed.
type commandEnv struct {
	cmd      *cobra.Command
	deps     Dependencies
	flags    globalFlags
	format   output.Format
	backend  config.Backend
	profile  string
	warnings []string
	app      *di.Container
}

// newCommandEnv validates the shared flags without building the container.
func newCommandEnv(cmd *cobra.Command, deps Dependencies, flags globalFlags) (*commandEnv, error) {
	format, err := output.ParseFormat(flags.Format)
	if err != nil {
		return nil, err
	}
	backend := deps.Settings.Backend
	if strings.TrimSpace(flags.Backend) != "" {
		backend, err = config.ParseBackend(flags.Backend)
		if err != nil {
			return nil, err
		}
	}
	if backend == "" {
		backend = config.BackendMock
	}
	return &commandEnv{
		cmd:      cmd,
		deps:     deps,
		flags:    flags,
		format:   format,
		backend:  backend,
		profile:  resolveProfileLabel(flags.Profile),
		warnings: []string{},
	}, nil
}

// openCommandEnv builds the container and rotates a nearly expired session.
func openCommandEnv(cmd *cobra.Command, deps Dependencies, flags globalFlags) (*commandEnv, error) {
	env, err := newCommandEnv(cmd, deps, flags)
	if err != nil {
		return nil, err
	}
	cfg := deps.Settings
	cfg.Backend = env.backend
	app, err := deps.containers()(cmd.Context(), di.Options{Config: cfg, Logger: deps.logger()})
	if err != nil {
		return nil, err
	}
	env.app = app
	attachVerboseHTTPTrace(cmd, app)

	refreshed, err := app.EnsureFreshSession(cmd.Context())
	switch {
	case err != nil:
		env.warnings = append(env.warnings, "automatic token refresh failed before request")
	case refreshed:
		env.warnings = append(env.warnings, "access token refreshed automatically")
	}
	return env, nil
}

func (e *commandEnv) ctx() context.Context {
	return e.cmd.Context()
}

func (e *commandEnv) close() {
	if e.app == nil {
		return
	}
	if err := e.app.Close(); err != nil {
		e.deps.logger().Warn("container close failed", "error", err)
	}
}

func (e *commandEnv) warn(message string) {
	e.warnings = append(e.warnings, message)
}

// emit writes the table rendering or the machine envelope around data.
func (e *commandEnv) emit(data any, table func() string) error {
	if e.format == output.FormatTable {
		text := table()
		for _, w := range e.warnings {
			text += "\nwarning: " + w
		}
		return output.WriteOutput(e.cmd.OutOrStdout(), text, e.flags.Output)
	}
	env := output.BuildEnvelope(e.profile, string(e.backend), data, e.warnings, nil)
	return writeMachinePayload(e.cmd, env, e.format, e.flags.Output)
}

func (e *commandEnv) fail(code, message string) error {
	return emitError(e.cmd, e.format, e.profile, string(e.backend), e.flags.Output, code, message)
}

// failResult reports a repository failure with a code derived from its kind.
func (e *commandEnv) failResult(err *result.AppError) error {
	if err == nil {
		return e.fail(codeUpstream, "unknown error")
	}
	message := err.Message
	if e.flags.Verbose && err.Unwrap() != nil {
		message = fmt.Sprintf("%s (%v)", message, err.Unwrap())
	}
	return e.fail(codeForKind(err.Kind), message)
}

func codeForKind(kind result.Kind) string {
	switch kind {
	case result.AuthFailure:
		return codeAuthRequired
	case result.ValidationFailure:
		return codeValidation
	case result.NotFoundFailure:
		return codeNotFound
	case result.NetworkFailure:
		return codeNetwork
	default:
		return codeUpstream
	}
}

func writeMachinePayload(cmd *cobra.Command, env output.Envelope, format output.Format, outputPath string) error {
	rendered, err := output.RenderPayload(env, format)
	if err != nil {
		return err
	}
	return output.WriteOutput(cmd.OutOrStdout(), rendered, outputPath)
}

func emitError(
	cmd *cobra.Command,
	format output.Format,
	profile string,
	backend string,
	outputPath string,
	code string,
	message string,
) error {
	if format == output.FormatTable {
		if err := output.WriteOutput(cmd.OutOrStdout(), message, outputPath); err != nil {
			return err
		}
		return &exitError{code: 1}
	}
	env := output.BuildEnvelope(profile, backend, nil, []string{}, map[string]any{
		"code":    code,
		"message": message,
	})
	if err := writeMachinePayload(cmd, env, format, outputPath); err != nil {
		return err
	}
	return &exitError{code: 1}
}

// resolveLocation picks coordinates from --address, --lat/--lng, the selected
// profile, or the default map region, in that order.
func (e *commandEnv) resolveLocation(lat, lng *float64, address string) (domain.Location, error) {
	resolvedAddress := strings.TrimSpace(address)
	if resolvedAddress != "" {
		if lat != nil || lng != nil {
			return domain.Location{}, e.fail(codeInvalidArgument, "Do not combine --address with --lat/--lng. Use either --address or both --lat and --lng.")
		}
		return e.geocode(resolvedAddress)
	}

	if lat != nil || lng != nil {
		if lat == nil || lng == nil {
			return domain.Location{}, e.fail(codeInvalidArgument, "Both --lat and --lng must be provided together, or omit both to use the profile location.")
		}
		return domain.Location{Lat: *lat, Lng: *lng}, nil
	}

	if e.deps.Profiles == nil {
		e.warn("no profile resolver; using the default map center")
		return viewmodel.InitialRegion.Center(), nil
	}
	p, err := e.deps.Profiles.Find(e.ctx(), e.flags.Profile)
	if err != nil {
		if errors.Is(err, profile.ErrDefaultProfileNotFound) && strings.TrimSpace(e.flags.Profile) == "" {
			e.warn("no default profile configured; using the default map center")
			return viewmodel.InitialRegion.Center(), nil
		}
		return domain.Location{}, e.fail(codeProfile, err.Error())
	}
	e.profile = p.Name
	if p.Location == (domain.Location{}) && strings.TrimSpace(p.Address) != "" {
		return e.geocode(p.Address)
	}
	return p.Location, nil
}

func (e *commandEnv) geocode(address string) (domain.Location, error) {
	if e.deps.Location == nil {
		return domain.Location{}, e.fail(codeLocation, "Location resolver is not available.")
	}
	loc, err := e.deps.Location.Get(e.ctx(), address)
	if err != nil {
		return domain.Location{}, e.fail(codeLocation, err.Error())
	}
	return loc, nil
}

func optionalFloat(cmd *cobra.Command, name string, value float64) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}

func boolToYesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func requiredArg(name string) string {
	return fmt.Sprintf("%s is required", name)
}
