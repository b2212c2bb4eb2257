// Package di is the composition root. It picks the live or mock repository
// strategy once and hands out use-cases and view-models built on it.
package di

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mekedron/city-discovery/internal/config"
	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/gateway/api"
	"github.com/mekedron/city-discovery/internal/gateway/location"
	"github.com/mekedron/city-discovery/internal/mock"
	"github.com/mekedron/city-discovery/internal/repository"
	"github.com/mekedron/city-discovery/internal/session"
	"github.com/mekedron/city-discovery/internal/usecase"
	"github.com/mekedron/city-discovery/internal/viewmodel"
)

// refreshSkew is how close to expiry an access token may get before EnsureFreshSession rotates it.
const refreshSkew = 30 * time.Second

// Options tune how the container is built. Only Config is required.
type Options struct {
	Config config.Config
	Logger *slog.Logger
	// Registry receives transport metrics. Nil uses a private registry.
	Registry prometheus.Registerer
	// HTTPClient replaces the transport's default client.
	HTTPClient api.HTTPClient
	// Verbose receives the HTTP trace of the live transport.
	Verbose io.Writer
	// TokenStore overrides the store selected by Config.Session.
	TokenStore session.TokenStore
	// Places overrides the reverse geocoder used by Home.
	Places viewmodel.PlaceResolver
	// MockOptions are appended to the options derived from Config.Mock.
	MockOptions []mock.Option
}

// Container holds the wired graph. Build one per process.
type Container struct {
	Config   config.Config
	Backend  config.Backend
	Logger   *slog.Logger
	Session  *session.Session
	API      *api.Client
	Mock     *mock.Backend
	Location *location.Client

	Auth      repository.AuthRepository
	Venues    repository.VenueRepository
	Reviews   repository.ReviewRepository
	Favorites repository.FavoriteRepository

	UseCases UseCases

	places  viewmodel.PlaceResolver
	closers []func() error
}

// UseCases groups every use-case over the selected repositories.
type UseCases struct {
	GetNearbyVenues    *usecase.GetNearbyVenues
	SearchVenues       *usecase.SearchVenues
	GetVenueDetail     *usecase.GetVenueDetail
	AddVenueSuggestion *usecase.AddVenueSuggestion
	ClaimVenue         *usecase.ClaimVenue
	UpdateVenueProfile *usecase.UpdateVenueProfile
	UploadVenuePhoto   *usecase.UploadVenuePhoto

	ToggleFavorite *usecase.ToggleFavorite
	ToggleSave     *usecase.ToggleSave
	GetFavorites   *usecase.GetFavorites
	GetSavedVenues *usecase.GetSavedVenues

	GetReviews *usecase.GetReviews
	AddReview  *usecase.AddReview

	Login          *usecase.Login
	Register       *usecase.Register
	Logout         *usecase.Logout
	GetMe          *usecase.GetMe
	GetUserStats   *usecase.GetUserStats
	RefreshSession *usecase.RefreshSession
	UpdateProfile  *usecase.UpdateProfile
}

// New wires the container and restores any persisted session.
func New(ctx context.Context, opts Options) (*Container, error) {
	cfg := opts.Config
	backend, err := config.ParseBackend(string(cfg.Backend))
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:   cfg,
		Backend:  backend,
		Logger:   logger,
		Location: location.NewClient(),
		places:   opts.Places,
	}
	if c.places == nil {
		c.places = c.Location
	}

	store := opts.TokenStore
	if store == nil {
		store, err = c.tokenStore(cfg.Session)
		if err != nil {
			return nil, err
		}
	}
	c.Session = session.New(store)
	if err := c.Session.Restore(ctx); err != nil {
		logger.Warn("session not restored", "store", cfg.Session.Store, "error", err)
	}

	switch backend {
	case config.BackendLive:
		if err := c.wireLive(opts); err != nil {
			_ = c.Close()
			return nil, err
		}
	default:
		c.wireMock(opts)
	}
	c.UseCases = newUseCases(c.Auth, c.Venues, c.Reviews, c.Favorites)

	logger.Info("repositories wired",
		"backend", backend,
		"session_store", cfg.Session.Store,
		"signed_in", !c.Session.Tokens().Empty(),
	)
	return c, nil
}

func (c *Container) tokenStore(cfg config.SessionConfig) (session.TokenStore, error) {
	switch cfg.Store {
	case "", config.SessionMemory:
		return session.NewMemoryStore(), nil
	case config.SessionFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("session.path is required for the file store")
		}
		return session.NewFileStore(cfg.Path), nil
	case config.SessionRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddress()})
		c.closers = append(c.closers, client.Close)
		return session.NewRedisStore(client, cfg.RedisKey, 0), nil
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Store)
	}
}

func (c *Container) wireLive(opts Options) error {
	registry := opts.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics, err := api.NewMetrics(registry)
	if err != nil {
		return fmt.Errorf("register transport metrics: %w", err)
	}

	clientOpts := []api.Option{
		api.WithBaseURL(c.Config.API.BaseURL),
		api.WithTimeout(c.Config.API.Timeout),
		api.WithTokenSource(c.Session),
		api.WithMetrics(metrics),
	}
	if opts.HTTPClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(opts.HTTPClient))
	}
	if opts.Verbose != nil {
		clientOpts = append(clientOpts, api.WithVerboseOutput(opts.Verbose))
	}
	c.API = api.NewClient(clientOpts...)

	c.Auth = repository.NewLiveAuthRepository(c.API, c.Session, c.Logger)
	c.Venues = repository.NewLiveVenueRepository(c.API, c.Logger)
	c.Reviews = repository.NewLiveReviewRepository(c.API, c.Logger)
	c.Favorites = repository.NewLiveFavoriteRepository(c.API, c.Logger)
	return nil
}

func (c *Container) wireMock(opts Options) {
	mockOpts := []mock.Option{
		mock.WithLatency(c.Config.Mock.Latency),
		mock.WithFailureRate(c.Config.Mock.FailureRate),
		mock.WithLogger(c.Logger),
	}
	c.Mock = mock.NewBackend(append(mockOpts, opts.MockOptions...)...)

	c.Auth = repository.NewMockAuthRepository(c.Mock, c.Session, c.Logger)
	c.Venues = repository.NewMockVenueRepository(c.Mock, c.Logger)
	c.Reviews = repository.NewMockReviewRepository(c.Mock, c.Logger)
	c.Favorites = repository.NewMockFavoriteRepository(c.Mock, c.Logger)
}

func newUseCases(
	auth repository.AuthRepository,
	venues repository.VenueRepository,
	reviews repository.ReviewRepository,
	favorites repository.FavoriteRepository,
) UseCases {
	return UseCases{
		GetNearbyVenues:    usecase.NewGetNearbyVenues(venues),
		SearchVenues:       usecase.NewSearchVenues(venues),
		GetVenueDetail:     usecase.NewGetVenueDetail(venues),
		AddVenueSuggestion: usecase.NewAddVenueSuggestion(venues),
		ClaimVenue:         usecase.NewClaimVenue(venues),
		UpdateVenueProfile: usecase.NewUpdateVenueProfile(venues),
		UploadVenuePhoto:   usecase.NewUploadVenuePhoto(venues),

		ToggleFavorite: usecase.NewToggleFavorite(favorites),
		ToggleSave:     usecase.NewToggleSave(favorites),
		GetFavorites:   usecase.NewGetFavorites(favorites),
		GetSavedVenues: usecase.NewGetSavedVenues(favorites),

		GetReviews: usecase.NewGetReviews(reviews),
		AddReview:  usecase.NewAddReview(reviews),

		Login:          usecase.NewLogin(auth),
		Register:       usecase.NewRegister(auth),
		Logout:         usecase.NewLogout(auth),
		GetMe:          usecase.NewGetMe(auth),
		GetUserStats:   usecase.NewGetUserStats(auth),
		RefreshSession: usecase.NewRefreshSession(auth),
		UpdateProfile:  usecase.NewUpdateProfile(auth),
	}
}

// EnsureFreshSession rotates the access token when it is about to expire.
// It reports whether a refresh happened.
func (c *Container) EnsureFreshSession(ctx context.Context) (bool, error) {
	if !c.Session.NeedsRefresh(time.Now(), refreshSkew) {
		return false, nil
	}
	res := c.UseCases.RefreshSession.Execute(ctx)
	if res.IsFailure() {
		return false, res.Err()
	}
	c.Logger.Debug("access token refreshed", "user_id", res.Value().UserID)
	return true, nil
}

// SetVerboseOutput turns on the HTTP trace after construction. The mock backend has none.
func (c *Container) SetVerboseOutput(out io.Writer) {
	if c.API != nil {
		c.API.SetVerboseOutput(out)
	}
}

// Close releases the redis connection when one was opened.
func (c *Container) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

// NewHome builds the home screen view-model.
func (c *Container) NewHome() *viewmodel.Home {
	return viewmodel.NewHome(viewmodel.HomeDeps{
		Nearby:         c.UseCases.GetNearbyVenues,
		Search:         c.UseCases.SearchVenues,
		ToggleFavorite: c.UseCases.ToggleFavorite,
		ToggleSave:     c.UseCases.ToggleSave,
		Places:         c.places,
		Logger:         c.Logger,
	})
}

func (c *Container) NewFavorites() *viewmodel.Favorites {
	return viewmodel.NewFavorites(viewmodel.FavoritesDeps{
		Favorites:      c.UseCases.GetFavorites,
		ToggleFavorite: c.UseCases.ToggleFavorite,
	})
}

func (c *Container) NewMap() *viewmodel.Map {
	return viewmodel.NewMap(viewmodel.MapDeps{
		Nearby: c.UseCases.GetNearbyVenues,
		Search: c.UseCases.SearchVenues,
	})
}

func (c *Container) NewLogin() *viewmodel.Login {
	return viewmodel.NewLogin(c.UseCases.Login)
}

func (c *Container) NewRegister() *viewmodel.Register {
	return viewmodel.NewRegister(c.UseCases.Register)
}

func (c *Container) NewProfile() *viewmodel.Profile {
	return viewmodel.NewProfile(viewmodel.ProfileDeps{
		Me:    c.UseCases.GetMe,
		Stats: c.UseCases.GetUserStats,
		Saved: c.UseCases.GetSavedVenues,
	})
}

func (c *Container) NewVenueDetail() *viewmodel.VenueDetail {
	return viewmodel.NewVenueDetail(viewmodel.VenueDetailDeps{
		Detail:         c.UseCases.GetVenueDetail,
		ToggleFavorite: c.UseCases.ToggleFavorite,
		ToggleSave:     c.UseCases.ToggleSave,
	})
}

func (c *Container) NewAddVenue() *viewmodel.AddVenue {
	return viewmodel.NewAddVenue(c.UseCases.AddVenueSuggestion)
}

// Geocode resolves an address through the location gateway.
func (c *Container) Geocode(ctx context.Context, address string) (domain.Location, error) {
	return c.Location.Get(ctx, address)
}
