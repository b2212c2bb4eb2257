package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mekedron/city-discovery/internal/config"
	"github.com/mekedron/city-discovery/internal/domain"
)

var (
	// ErrDefaultProfileNotFound indicates config has no default profile.
	ErrDefaultProfileNotFound = errors.New("no default profile found")
	// ErrProfileNotFound indicates requested profile does not exist.
	ErrProfileNotFound = errors.New("profile not found")
)

// Loader provides config payloads.
type Loader interface {
	Load(ctx context.Context) (config.Config, error)
}

// Saver persists config payloads.
type Saver interface {
	Loader
	Save(ctx context.Context, cfg config.Config) error
}

// Resolver resolves profile names.
type Resolver struct {
	loader Loader
}

// NewResolver creates a profile resolver.
func NewResolver(loader Loader) *Resolver {
	return &Resolver{loader: loader}
}

// Find resolves explicit profile names or defaults.
func (r *Resolver) Find(ctx context.Context, profileName string) (domain.Profile, error) {
	cfg, err := r.loader.Load(ctx)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) && strings.TrimSpace(profileName) == "" {
			return domain.Profile{}, ErrDefaultProfileNotFound
		}
		return domain.Profile{}, err
	}
	if strings.TrimSpace(profileName) == "" {
		for _, profile := range cfg.Profiles {
			if profile.IsDefault {
				return profile, nil
			}
		}
		if len(cfg.Profiles) == 1 {
			return cfg.Profiles[0], nil
		}
		return domain.Profile{}, ErrDefaultProfileNotFound
	}

	index := indexOf(cfg.Profiles, profileName)
	if index >= 0 {
		return cfg.Profiles[index], nil
	}
	available := make([]string, 0, len(cfg.Profiles))
	for _, profile := range cfg.Profiles {
		available = append(available, profile.Name)
	}
	return domain.Profile{}, fmt.Errorf("%w: %s (available: %s)", ErrProfileNotFound, strings.ToLower(strings.TrimSpace(profileName)), strings.Join(available, ", "))
}

// Upsert stores p, replacing a profile with the same name. A default profile
// clears the flag on every other profile. The first profile saved becomes the default.
func Upsert(ctx context.Context, store Saver, p domain.Profile) (config.Config, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return config.Config{}, fmt.Errorf("profile name is required")
	}
	cfg, err := store.Load(ctx)
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		cfg = config.Defaults()
	case err != nil:
		return config.Config{}, err
	}

	if len(cfg.Profiles) == 0 {
		p.IsDefault = true
	}
	if p.IsDefault {
		for i := range cfg.Profiles {
			cfg.Profiles[i].IsDefault = false
		}
	}
	if index := indexOf(cfg.Profiles, p.Name); index >= 0 {
		if !p.IsDefault && cfg.Profiles[index].IsDefault {
			p.IsDefault = true
		}
		cfg.Profiles[index] = p
	} else {
		cfg.Profiles = append(cfg.Profiles, p)
	}
	if err := store.Save(ctx, cfg); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func indexOf(profiles []domain.Profile, name string) int {
	want := strings.TrimSpace(name)
	for i, profile := range profiles {
		if strings.EqualFold(strings.TrimSpace(profile.Name), want) {
			return i
		}
	}
	return -1
}

// NewFileResolver constructs a resolver from local config file.
func NewFileResolver() (*Resolver, error) {
	store, err := config.NewStore()
	if err != nil {
		return nil, err
	}
	return NewResolver(store), nil
}
