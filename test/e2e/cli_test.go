package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mekedron/city-discovery/internal/cli"
	"github.com/mekedron/city-discovery/internal/config"
	"github.com/mekedron/city-discovery/internal/di"
	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/service/profile"
)

type staticPlaces struct{}

func (staticPlaces) Reverse(context.Context, domain.Location) (domain.Place, error) {
	return domain.Place{City: "İstanbul", District: "Kadıköy"}, nil
}

type recordingLocation struct {
	seenAddress string
	location    domain.Location
}

func (r *recordingLocation) Get(_ context.Context, address string) (domain.Location, error) {
	r.seenAddress = address
	return r.location, nil
}

func withStaticPlaces(ctx context.Context, opts di.Options) (*di.Container, error) {
	opts.Places = staticPlaces{}
	return di.New(ctx, opts)
}

// mockDeps runs the in-memory backend without latency or injected failures.
// Sessions go to a file so consecutive commands share a login.
func mockDeps(t *testing.T) cli.Dependencies {
	t.Helper()
	dir := t.TempDir()
	store := config.NewStoreAt(filepath.Join(dir, "config.yaml"))
	settings := config.Defaults()
	settings.Mock.Latency = 0
	settings.Mock.FailureRate = 0
	settings.Session.Store = config.SessionFile
	settings.Session.Path = filepath.Join(dir, "session.yaml")
	return cli.Dependencies{
		Settings:   settings,
		Containers: withStaticPlaces,
		Profiles:   profile.NewResolver(store),
		Location:   &recordingLocation{location: domain.Location{Lat: 40.9848, Lng: 29.0244}},
		Config:     store,
		Version:    "1.0.0",
	}
}

func runCLIWithDeps(t *testing.T, deps cli.Dependencies, args ...string) (int, string) {
	t.Helper()
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	exitCode := cli.Execute(context.Background(), args, deps, &stdout, &stderr)
	return exitCode, stdout.String() + stderr.String()
}

func mustJSON(t *testing.T, raw string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("failed to parse JSON output: %v\noutput: %s", err, raw)
	}
	return payload
}

func asMapPayload(t *testing.T, value any) map[string]any {
	t.Helper()
	payload, ok := value.(map[string]any)
	if !ok {
		t.Fatalf("expected map payload, got %T", value)
	}
	return payload
}

func asSlicePayload(t *testing.T, value any) []any {
	t.Helper()
	payload, ok := value.([]any)
	if !ok {
		t.Fatalf("expected slice payload, got %T", value)
	}
	return payload
}

func TestVersionFlag(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "--version")
	if exitCode != 0 || strings.TrimSpace(out) != "citydiscovery 1.0.0" {
		t.Fatalf("unexpected version output (exit %d): %q", exitCode, out)
	}
}

func TestUnknownCommand(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "checkout")
	if exitCode != 2 || !strings.Contains(out, "No such command 'checkout'") {
		t.Fatalf("unexpected unknown command handling (exit %d): %s", exitCode, out)
	}
}

func TestDiscoverJSON(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "discover", "--lat", "40.98", "--lng", "29.02", "--format", "json")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	payload := mustJSON(t, out)
	meta := asMapPayload(t, payload["meta"])
	if meta["backend"] != "mock" {
		t.Fatalf("expected mock backend, got %v", meta["backend"])
	}
	data := asMapPayload(t, payload["data"])
	if venues := asSlicePayload(t, data["venues"]); len(venues) != 10 {
		t.Fatalf("expected a full first page, got %d", len(venues))
	}
	if data["has_more"] != true {
		t.Fatalf("expected more pages after a full page, got %v", data["has_more"])
	}
	place := asMapPayload(t, data["place"])
	if place["district"] != "Kadıköy" {
		t.Fatalf("unexpected place %v", place)
	}
}

func TestDiscoverPagesUntilShortPage(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "discover", "--lat", "40.98", "--lng", "29.02", "--pages", "3", "--format", "json")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	data := asMapPayload(t, mustJSON(t, out)["data"])
	if venues := asSlicePayload(t, data["venues"]); len(venues) != 10 {
		t.Fatalf("expected the ten seeded venues, got %d", len(venues))
	}
	if data["has_more"] != false {
		t.Fatalf("expected has_more=false after an empty page, got %v", data["has_more"])
	}
}

func TestDiscoverWithoutProfileWarns(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "discover", "--category", "Kahve", "--format", "json")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	payload := mustJSON(t, out)
	if warnings := asSlicePayload(t, payload["warnings"]); len(warnings) == 0 {
		t.Fatal("expected a default location warning")
	}
	data := asMapPayload(t, payload["data"])
	for _, raw := range asSlicePayload(t, data["venues"]) {
		categories := asSlicePayload(t, asMapPayload(t, raw)["categories"])
		found := false
		for _, c := range categories {
			if c == "Kahve" {
				found = true
			}
		}
		if !found {
			t.Fatalf("venue outside the selected category: %v", raw)
		}
	}
}

func TestDiscoverTable(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "discover", "--lat", "40.98", "--lng", "29.02", "--sort", "name")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	for _, want := range []string{"Venues near Kadıköy, İstanbul", "Baklava House", "Espresso Lab - Moda"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Index(out, "Baklava House") > strings.Index(out, "Espresso Lab - Moda") {
		t.Fatalf("expected name sort:\n%s", out)
	}
}

func TestSearchVenues(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "search", "venues", "--query", "burger", "--format", "json")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	data := asMapPayload(t, mustJSON(t, out)["data"])
	venues := asSlicePayload(t, data["venues"])
	if len(venues) == 0 || asMapPayload(t, venues[0])["name"] != "Burger House" {
		t.Fatalf("unexpected search result %v", venues)
	}
}

func TestVenueShowNotFound(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "venue", "show", "999", "--format", "json")
	if exitCode != 1 {
		t.Fatalf("expected exit 1, got %d\noutput:\n%s", exitCode, out)
	}
	errPayload := asMapPayload(t, mustJSON(t, out)["error"])
	if errPayload["code"] != "CD_NOT_FOUND" || errPayload["message"] != "Venue not found" {
		t.Fatalf("unexpected error payload %v", errPayload)
	}
}

func TestVenueShowTable(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "venue", "show", "1")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	for _, want := range []string{"Espresso Lab - Moda", "Caferağa Mahallesi", "Espresso Lab - Moda - Kadıköy, İstanbul"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestVenueReviewsSortedByRating(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "venue", "reviews", "1", "--sort", "rating", "--format", "json")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	reviews := asSlicePayload(t, asMapPayload(t, mustJSON(t, out)["data"])["reviews"])
	prev := 6.0
	for _, raw := range reviews {
		rating, _ := asMapPayload(t, raw)["rating"].(float64)
		if rating > prev {
			t.Fatalf("reviews not sorted by rating: %v", reviews)
		}
		prev = rating
	}
}

func TestVenueSuggestRequiresFields(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "venue", "suggest", "--name", "Yeni Kafe", "--format", "json")
	if exitCode != 1 {
		t.Fatalf("expected exit 1, got %d\noutput:\n%s", exitCode, out)
	}
	if code := asMapPayload(t, mustJSON(t, out)["error"])["code"]; code != "CD_VALIDATION_ERROR" {
		t.Fatalf("unexpected error code %v", code)
	}
}

func TestAuthLoginStatusLogout(t *testing.T) {
	deps := mockDeps(t)

	exitCode, out := runCLIWithDeps(t, deps, "auth", "status", "--format", "json")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	if asMapPayload(t, mustJSON(t, out)["data"])["authenticated"] != false {
		t.Fatalf("expected signed out status: %s", out)
	}

	exitCode, out = runCLIWithDeps(t, deps, "auth", "login", "--email", "test@example.com", "--password", "secret1")
	if exitCode != 0 || !strings.Contains(out, "Signed in as") {
		t.Fatalf("unexpected login output (exit %d): %s", exitCode, out)
	}

	exitCode, out = runCLIWithDeps(t, deps, "auth", "status", "--format", "json")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	data := asMapPayload(t, mustJSON(t, out)["data"])
	if data["authenticated"] != true || data["user_id"] != "user1" {
		t.Fatalf("unexpected status after login: %v", data)
	}

	exitCode, out = runCLIWithDeps(t, deps, "auth", "logout")
	if exitCode != 0 || !strings.Contains(out, "Signed out.") {
		t.Fatalf("unexpected logout output (exit %d): %s", exitCode, out)
	}
	exitCode, out = runCLIWithDeps(t, deps, "auth", "status")
	if exitCode != 0 || !strings.Contains(out, "Not signed in.") {
		t.Fatalf("expected signed out after logout (exit %d): %s", exitCode, out)
	}
}

func TestAuthLoginValidation(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "auth", "login", "--email", "not-an-email", "--password", "x", "--format", "json")
	if exitCode != 1 {
		t.Fatalf("expected exit 1, got %d\noutput:\n%s", exitCode, out)
	}
	if code := asMapPayload(t, mustJSON(t, out)["error"])["code"]; code != "CD_AUTH_REQUIRED" {
		t.Fatalf("unexpected error code %v", code)
	}
}

func TestConfigureWritesProfile(t *testing.T) {
	deps := mockDeps(t)
	location := deps.Location.(*recordingLocation)

	exitCode, out := runCLIWithDeps(t, deps, "configure", "--profile-name", "Home", "--address", "Moda, Kadıköy", "--format", "json")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	if location.seenAddress != "Moda, Kadıköy" {
		t.Fatalf("expected address lookup, got %q", location.seenAddress)
	}
	saved := asMapPayload(t, asMapPayload(t, mustJSON(t, out)["data"])["profile"])
	if saved["name"] != "Home" || saved["is_default"] != true {
		t.Fatalf("expected first profile to become default, got %v", saved)
	}

	raw, err := os.ReadFile(deps.Config.Path())
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if !strings.Contains(string(raw), "name: Home") {
		t.Fatalf("expected profile in config file:\n%s", raw)
	}

	exitCode, out = runCLIWithDeps(t, deps, "configure", "--backend", "live", "--base-url", "http://127.0.0.1:5001/api")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	cfg, err := deps.Config.Load(context.Background())
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Backend != config.BackendLive || len(cfg.Profiles) != 1 {
		t.Fatalf("unexpected config after settings update: %+v", cfg)
	}
}

func TestConfigureNothingToDo(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "configure")
	if exitCode != 1 || !strings.Contains(out, "Nothing to configure") {
		t.Fatalf("unexpected configure output (exit %d): %s", exitCode, out)
	}
}

func TestDiscoverUsesDefaultProfile(t *testing.T) {
	deps := mockDeps(t)
	if code, out := runCLIWithDeps(t, deps, "configure", "--profile-name", "work", "--lat", "41.0", "--lng", "29.0"); code != 0 {
		t.Fatalf("configure failed (exit %d): %s", code, out)
	}

	exitCode, out := runCLIWithDeps(t, deps, "discover", "--format", "json")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	payload := mustJSON(t, out)
	if profileName := asMapPayload(t, payload["meta"])["profile"]; profileName != "work" {
		t.Fatalf("expected work profile in meta, got %v", profileName)
	}
	loc := asMapPayload(t, asMapPayload(t, payload["data"])["location"])
	if loc["lat"] != 41.0 {
		t.Fatalf("expected profile location, got %v", loc)
	}
}

func TestMapSearchRecentres(t *testing.T) {
	exitCode, out := runCLIWithDeps(t, mockDeps(t), "map", "--query", "sushi", "--format", "json")
	if exitCode != 0 {
		t.Fatalf("expected exit 0, got %d\noutput:\n%s", exitCode, out)
	}
	data := asMapPayload(t, mustJSON(t, out)["data"])
	venues := asSlicePayload(t, data["venues"])
	if len(venues) == 0 {
		t.Fatal("expected sushi results")
	}
	first := asMapPayload(t, venues[0])
	region := asMapPayload(t, data["region"])
	if region["latitude"] != first["lat"] {
		t.Fatalf("expected region centred on first result, got %v vs %v", region, first["lat"])
	}
}
