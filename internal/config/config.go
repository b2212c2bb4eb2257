package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mekedron/city-discovery/internal/domain"
)

// Backend selects which repository strategy the composition root builds.
type Backend string

const (
	BackendMock Backend = "mock"
	BackendLive Backend = "live"
)

// ParseBackend validates backend names. Empty means mock.
func ParseBackend(v string) (Backend, error) {
	switch Backend(strings.ToLower(strings.TrimSpace(v))) {
	case "", BackendMock:
		return BackendMock, nil
	case BackendLive:
		return BackendLive, nil
	default:
		return "", fmt.Errorf("unsupported backend %q (want mock or live)", v)
	}
}

// SessionStoreKind selects where session tokens persist.
type SessionStoreKind string

const (
	SessionMemory SessionStoreKind = "memory"
	SessionFile   SessionStoreKind = "file"
	SessionRedis  SessionStoreKind = "redis"
)

const (
	DefaultBaseURL         = "http://192.168.1.46:5001/api"
	DefaultTimeout         = 30 * time.Second
	DefaultMockLatency     = 500 * time.Millisecond
	DefaultMockFailureRate = 0.1
	defaultSessionFileName = "session.yaml"
	defaultRedisAddr       = "localhost:6379"
)

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type MockConfig struct {
	Latency     time.Duration `yaml:"latency"`
	FailureRate float64       `yaml:"failure_rate"`
}

type SessionConfig struct {
	Store     SessionStoreKind `yaml:"store"`
	Path      string           `yaml:"path,omitempty"`
	RedisAddr string           `yaml:"redis_addr,omitempty"`
	RedisKey  string           `yaml:"redis_key,omitempty"`
}

// Config is the full application configuration.
type Config struct {
	API      APIConfig        `yaml:"api"`
	Backend  Backend          `yaml:"backend"`
	Mock     MockConfig       `yaml:"mock"`
	Session  SessionConfig    `yaml:"session"`
	Profiles []domain.Profile `yaml:"profiles,omitempty"`
}

// Defaults returns the configuration used when no file or env overrides exist.
func Defaults() Config {
	return Config{
		API:     APIConfig{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout},
		Backend: BackendMock,
		Mock:    MockConfig{Latency: DefaultMockLatency, FailureRate: DefaultMockFailureRate},
		Session: SessionConfig{Store: SessionMemory},
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if _, err := ParseBackend(string(c.Backend)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("%w: api.base_url is empty", ErrInvalidConfig)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("%w: api.timeout is negative", ErrInvalidConfig)
	}
	if c.Mock.FailureRate < 0 || c.Mock.FailureRate > 1 {
		return fmt.Errorf("%w: mock.failure_rate must be within [0, 1]", ErrInvalidConfig)
	}
	switch c.Session.Store {
	case "", SessionMemory, SessionFile, SessionRedis:
	default:
		return fmt.Errorf("%w: unsupported session.store %q", ErrInvalidConfig, c.Session.Store)
	}
	defaults := 0
	for _, p := range c.Profiles {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("%w: profile without name", ErrInvalidConfig)
		}
		if p.IsDefault {
			defaults++
		}
	}
	if defaults > 1 {
		return fmt.Errorf("%w: more than one default profile", ErrInvalidConfig)
	}
	return nil
}

// RedisAddress returns the configured redis address or localhost.
func (s SessionConfig) RedisAddress() string {
	if strings.TrimSpace(s.RedisAddr) == "" {
		return defaultRedisAddr
	}
	return s.RedisAddr
}
