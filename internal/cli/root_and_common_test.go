package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/mekedron/city-discovery/internal/config"
	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/result"
	"github.com/mekedron/city-discovery/internal/service/output"
	"github.com/mekedron/city-discovery/internal/service/profile"
	"github.com/mekedron/city-discovery/internal/viewmodel"
)

type testProfiles struct {
	profile domain.Profile
	err     error
}

func (p *testProfiles) Find(context.Context, string) (domain.Profile, error) {
	if p.err != nil {
		return domain.Profile{}, p.err
	}
	return p.profile, nil
}

type testLocation struct {
	seen     string
	location domain.Location
	err      error
}

func (l *testLocation) Get(_ context.Context, address string) (domain.Location, error) {
	l.seen = address
	if l.err != nil {
		return domain.Location{}, l.err
	}
	return l.location, nil
}

func findCommand(root *cobra.Command, path ...string) (*cobra.Command, bool) {
	cmd, _, err := root.Find(path)
	if err != nil || cmd == root {
		return nil, false
	}
	return cmd, true
}

func newTestEnv(t *testing.T, deps Dependencies, format string) (*commandEnv, *bytes.Buffer) {
	t.Helper()
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetContext(context.Background())
	env, err := newCommandEnv(cmd, deps, globalFlags{Format: format})
	if err != nil {
		t.Fatalf("newCommandEnv: %v", err)
	}
	return env, buf
}

func TestCommandOptionsHideSharedGlobals(t *testing.T) {
	root := NewRootCommand(Dependencies{Version: "test"})

	show, found := findCommand(root, "venue", "show")
	if !found {
		t.Fatal("venue show command not found")
	}
	for _, option := range commandOptions(show) {
		if option.name == "format" || option.name == "backend" || option.name == "verbose" {
			t.Fatalf("shared option leaked into command-specific options: %s", option.name)
		}
	}

	configure, found := findCommand(root, "configure")
	if !found {
		t.Fatal("configure command not found")
	}
	var ownBackend bool
	for _, option := range commandOptions(configure) {
		if option.name == "format" {
			t.Fatal("expected configure to leave --format to the shared section")
		}
		if option.name == "backend" {
			ownBackend = true
		}
	}
	if !ownBackend {
		t.Fatal("expected configure to document its own --backend flag")
	}
}

func TestRenderRootHelpShowsSetupAndGroups(t *testing.T) {
	settings := config.Config{
		Backend: config.BackendLive,
		API:     config.APIConfig{BaseURL: "http://127.0.0.1:5001/api"},
		Session: config.SessionConfig{Store: config.SessionFile},
		Profiles: []domain.Profile{
			{Name: "Home"},
			{Name: "Work", IsDefault: true},
		},
	}
	root := NewRootCommand(Dependencies{Version: "test", Settings: settings})
	buf := &bytes.Buffer{}
	renderRootHelp(buf, root, settings)
	out := buf.String()
	for _, want := range []string{
		"backend: live",
		"session store: file",
		"api: http://127.0.0.1:5001/api",
		"default profile: Work",
		"options accepted by every command",
		"--version/-v",
		"--format",
		"explore:",
		"your lists:",
		"account:",
		"setup:",
		"serve-mock",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in help output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "sign-ins last one command") {
		t.Fatal("memory session note shown for a file session store")
	}
	explore := strings.Index(out, "explore:")
	lists := strings.Index(out, "your lists:")
	discover := strings.Index(out, "  discover ")
	favorites := strings.Index(out, "  favorites ")
	if !(explore < discover && discover < lists && lists < favorites) {
		t.Fatalf("expected discover under explore and favorites under your lists:\n%s", out)
	}
}

func TestRenderRootHelpDefaultsToMockAndMemory(t *testing.T) {
	root := NewRootCommand(Dependencies{Version: "test"})
	buf := &bytes.Buffer{}
	renderRootHelp(buf, root, config.Config{})
	out := buf.String()
	for _, want := range []string{"backend: mock", "session store: memory", "sign-ins last one command"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in help output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "api: ") {
		t.Fatalf("api line shown for the mock backend:\n%s", out)
	}
}

func TestSearchVenuesQueryIsRequired(t *testing.T) {
	root := NewRootCommand(Dependencies{Version: "test"})
	search, found := findCommand(root, "search", "venues")
	if !found {
		t.Fatal("search venues command not found")
	}
	var required bool
	for _, option := range commandOptions(search) {
		if option.name == "query" {
			required = option.required
		}
	}
	if !required {
		t.Fatal("expected --query to be marked required")
	}
}

type testVerboseTraceSetter struct {
	output io.Writer
}

func (s *testVerboseTraceSetter) SetVerboseOutput(out io.Writer) {
	s.output = out
}

func TestAttachVerboseHTTPTrace(t *testing.T) {
	cmd := &cobra.Command{}
	stderr := &bytes.Buffer{}
	cmd.SetErr(stderr)
	cmd.Flags().Bool("verbose", false, "test verbose")

	setter := &testVerboseTraceSetter{}
	attachVerboseHTTPTrace(cmd, setter)
	if setter.output != nil {
		t.Fatal("expected verbose trace sink to stay disabled when --verbose is false")
	}

	if err := cmd.Flags().Set("verbose", "true"); err != nil {
		t.Fatalf("set verbose flag: %v", err)
	}
	attachVerboseHTTPTrace(cmd, setter)
	if setter.output == nil {
		t.Fatal("expected verbose trace sink to be enabled")
	}
	if !strings.Contains(stderr.String(), "http trace enabled") {
		t.Fatalf("expected trace activation message, got %q", stderr.String())
	}
}

func TestFailResultMapsKindToCode(t *testing.T) {
	env, buf := newTestEnv(t, Dependencies{}, "json")

	err := env.failResult(result.NewError(result.NotFoundFailure, "Venue not found"))
	var exitErr *exitError
	if !errors.As(err, &exitErr) || exitErr.code != 1 {
		t.Fatalf("expected controlled exit error, got %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(buf.Bytes(), &payload); err != nil {
		t.Fatalf("decode payload: %v\n%s", err, buf.String())
	}
	errPayload, _ := payload["error"].(map[string]any)
	if errPayload["code"] != codeNotFound || errPayload["message"] != "Venue not found" {
		t.Fatalf("unexpected error payload: %v", errPayload)
	}
	meta, _ := payload["meta"].(map[string]any)
	if meta["backend"] != "mock" {
		t.Fatalf("expected mock backend in meta, got %v", meta["backend"])
	}
}

func TestCodeForKind(t *testing.T) {
	cases := map[result.Kind]string{
		result.AuthFailure:       codeAuthRequired,
		result.ValidationFailure: codeValidation,
		result.NotFoundFailure:   codeNotFound,
		result.NetworkFailure:    codeNetwork,
		result.UnknownFailure:    codeUpstream,
	}
	for kind, want := range cases {
		if got := codeForKind(kind); got != want {
			t.Fatalf("codeForKind(%s) = %s, want %s", kind, got, want)
		}
	}
}

func TestEmitTableAppendsWarnings(t *testing.T) {
	env, buf := newTestEnv(t, Dependencies{}, "table")
	env.warn("access token refreshed automatically")
	if err := env.emit(nil, func() string { return "body" }); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if got := buf.String(); !strings.Contains(got, "body") || !strings.Contains(got, "warning: access token refreshed automatically") {
		t.Fatalf("unexpected table output %q", got)
	}
}

func TestResolveLocationValidation(t *testing.T) {
	locations := &testLocation{location: domain.Location{Lat: 41.0, Lng: 29.0}}
	deps := Dependencies{
		Profiles: &testProfiles{profile: domain.Profile{Name: "home", Location: domain.Location{Lat: 40.99, Lng: 29.03}}},
		Location: locations,
	}
	env, _ := newTestEnv(t, deps, "table")

	lng := 29.0
	if _, err := env.resolveLocation(nil, &lng, ""); err == nil {
		t.Fatal("expected resolveLocation to fail when only lng is provided")
	}

	lat := 41.0
	if _, err := env.resolveLocation(&lat, &lng, "Moda, Kadıköy"); err == nil {
		t.Fatal("expected resolveLocation to fail when --address and --lat/--lng are combined")
	}

	loc, err := env.resolveLocation(nil, nil, "Moda, Kadıköy")
	if err != nil {
		t.Fatalf("expected --address to resolve, got %v", err)
	}
	if loc.Lat != 41.0 || locations.seen != "Moda, Kadıköy" {
		t.Fatalf("unexpected geocode result %+v (seen %q)", loc, locations.seen)
	}

	loc, err = env.resolveLocation(nil, nil, "")
	if err != nil {
		t.Fatalf("expected profile location, got %v", err)
	}
	if loc.Lat != 40.99 || env.profile != "home" {
		t.Fatalf("expected profile home location, got %+v profile %q", loc, env.profile)
	}
}

func TestResolveLocationFallsBackToInitialRegion(t *testing.T) {
	deps := Dependencies{Profiles: &testProfiles{err: profile.ErrDefaultProfileNotFound}}
	env, _ := newTestEnv(t, deps, "table")

	loc, err := env.resolveLocation(nil, nil, "")
	if err != nil {
		t.Fatalf("expected fallback, got %v", err)
	}
	if loc != viewmodel.InitialRegion.Center() {
		t.Fatalf("expected initial region centre, got %+v", loc)
	}
	if len(env.warnings) != 1 {
		t.Fatalf("expected a fallback warning, got %v", env.warnings)
	}
}

func TestResolveLocationNamedProfileMissing(t *testing.T) {
	deps := Dependencies{Profiles: &testProfiles{err: profile.ErrProfileNotFound}}
	cmd := &cobra.Command{}
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetContext(context.Background())
	env, err := newCommandEnv(cmd, deps, globalFlags{Profile: "work", Format: string(output.FormatTable)})
	if err != nil {
		t.Fatalf("newCommandEnv: %v", err)
	}
	if _, err := env.resolveLocation(nil, nil, ""); err == nil {
		t.Fatal("expected a named missing profile to fail")
	}
	if !strings.Contains(buf.String(), "profile not found") {
		t.Fatalf("expected profile error message, got %q", buf.String())
	}
}

func TestNewCommandEnvRejectsUnknownBackend(t *testing.T) {
	cmd := &cobra.Command{}
	if _, err := newCommandEnv(cmd, Dependencies{}, globalFlags{Backend: "staging"}); err == nil {
		t.Fatal("expected unknown backend to fail")
	}
}
