package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultDirName  = ".citydiscovery"
	defaultFileName = "config.yaml"

	EnvConfigPath    = "CITYDISCOVERY_CONFIG_PATH"
	EnvBaseURL       = "CITYDISCOVERY_API_BASE_URL"
	EnvLegacyBaseURL = "EXPO_PUBLIC_API_BASE_URL"
	EnvTimeout       = "CITYDISCOVERY_API_TIMEOUT"
	EnvBackend       = "CITYDISCOVERY_BACKEND"
)

var (
	// ErrConfigNotFound is returned when config file does not exist.
	ErrConfigNotFound = errors.New("config file not found")
	// ErrInvalidConfig is returned when config payload is malformed.
	ErrInvalidConfig = errors.New("config file is invalid")
)

// Store loads and writes the yaml configuration file.
type Store struct {
	path string
}

// NewStore creates a store using env overrides or defaults.
func NewStore() (*Store, error) {
	if cfg := os.Getenv(EnvConfigPath); cfg != "" {
		return &Store{path: cfg}, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return &Store{path: filepath.Join(home, defaultDirName, defaultFileName)}, nil
}

// NewStoreAt creates a store for an explicit path.
func NewStoreAt(path string) *Store {
	return &Store{path: path}
}

// Path returns current config path.
func (s *Store) Path() string {
	return s.path
}

// Dir returns the directory holding the config file. Session files default to it.
func (s *Store) Dir() string {
	return filepath.Dir(s.path)
}

// Load reads the file on top of Defaults.
func (s *Store) Load(_ context.Context) (Config, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, ErrConfigNotFound
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(payload, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes a configuration payload.
func (s *Store) Save(_ context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	payload, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Resolve builds the effective configuration: defaults, then the file when present,
// then variables from dotenvPath, then the process environment.
func (s *Store) Resolve(ctx context.Context, dotenvPath string) (Config, error) {
	cfg, err := s.Load(ctx)
	switch {
	case errors.Is(err, ErrConfigNotFound):
		cfg = Defaults()
	case err != nil:
		return Config{}, err
	}

	env, err := readEnvironment(dotenvPath)
	if err != nil {
		return Config{}, err
	}
	if err := applyEnv(&cfg, env); err != nil {
		return Config{}, err
	}
	if cfg.Session.Store == SessionFile && strings.TrimSpace(cfg.Session.Path) == "" {
		cfg.Session.Path = filepath.Join(s.Dir(), defaultSessionFileName)
	}
	return cfg, cfg.Validate()
}

type lookupFunc func(name string) (string, bool)

// readEnvironment layers the process environment over the optional .env file.
func readEnvironment(dotenvPath string) (lookupFunc, error) {
	fileValues := map[string]string{}
	if dotenvPath != "" {
		values, err := godotenv.Read(dotenvPath)
		switch {
		case err == nil:
			fileValues = values
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read %s: %w", dotenvPath, err)
		}
	}
	return func(name string) (string, bool) {
		if v, ok := os.LookupEnv(name); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true
		}
		v, ok := fileValues[name]
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}, nil
}

func applyEnv(cfg *Config, lookup lookupFunc) error {
	if v, ok := lookup(EnvBaseURL); ok {
		cfg.API.BaseURL = v
	} else if v, ok := lookup(EnvLegacyBaseURL); ok {
		cfg.API.BaseURL = v
	}
	if v, ok := lookup(EnvTimeout); ok {
		timeout, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvTimeout, err)
		}
		cfg.API.Timeout = timeout
	}
	if v, ok := lookup(EnvBackend); ok {
		backend, err := ParseBackend(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvBackend, err)
		}
		cfg.Backend = backend
	}
	return nil
}

// parseTimeout accepts Go durations or a bare number of milliseconds.
func parseTimeout(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		if ms < 0 {
			return 0, fmt.Errorf("negative timeout %d", ms)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}
