// Package mock is a seeded in-memory stand-in for the City Discovery backend.
package mock

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mekedron/city-discovery/internal/domain"
)

const (
	defaultLatency     = 500 * time.Millisecond
	defaultFailureRate = 0.1
)

type account struct {
	user         domain.User
	passwordHash []byte
}

// Backend serves venues, users and reviews from memory. It is safe for concurrent use.
type Backend struct {
	mu          sync.Mutex
	venues      []domain.Venue
	suggestions map[string]domain.Venue
	claims      map[string]string
	reviews     map[string][]domain.Review
	accounts    map[string]account
	seedUser    domain.User
	currentUser *domain.User
	seededAt    time.Time

	latency       time.Duration
	toggleLatency time.Duration
	uploadLatency time.Duration
	failureRate   float64
	rngMu         sync.Mutex
	rng           *rand.Rand
	now           func() time.Time
	logger        *slog.Logger
}

// Option applies Backend options.
type Option func(*Backend)

// WithLatency sets the simulated round trip. Toggles take 60% and uploads twice as long.
func WithLatency(d time.Duration) Option {
	return func(b *Backend) {
		if d < 0 {
			d = 0
		}
		b.latency = d
		b.toggleLatency = d * 3 / 5
		b.uploadLatency = d * 2
	}
}

// WithFailureRate sets the probability of an injected failure on login, register, nearby and search.
func WithFailureRate(p float64) Option {
	return func(b *Backend) {
		switch {
		case p < 0:
			p = 0
		case p > 1:
			p = 1
		}
		b.failureRate = p
	}
}

// WithRand makes failure injection deterministic.
func WithRand(rng *rand.Rand) Option {
	return func(b *Backend) {
		b.rng = rng
	}
}

// WithClock replaces time.Now for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Backend) {
		b.now = now
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(b *Backend) {
		b.logger = logger
	}
}

// NewBackend returns a backend with its own copy of the seed data.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		venues:      seedVenues(),
		suggestions: map[string]domain.Venue{},
		claims:      map[string]string{},
		reviews:     map[string][]domain.Review{},
		accounts:    map[string]account{},
		seedUser:    seedUser(),
		failureRate: defaultFailureRate,
		now:         time.Now,
		logger:      slog.Default(),
	}
	WithLatency(defaultLatency)(b)
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(b.now().UnixNano()))
	}
	b.seededAt = b.now()
	return b
}

func (b *Backend) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (b *Backend) shouldFail(op string) bool {
	if b.failureRate <= 0 {
		return false
	}
	b.rngMu.Lock()
	roll := b.rng.Float64()
	b.rngMu.Unlock()
	if roll < b.failureRate {
		b.logger.Debug("mock backend injected failure", "op", op)
		return true
	}
	return false
}

// Login signs in. Registered accounts are checked against their password; any
// other email resolves to the seeded user.
func (b *Backend) Login(ctx context.Context, params domain.LoginParams) (domain.User, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return domain.User{}, err
	}
	if b.shouldFail("login") {
		return domain.User{}, errLoginNetwork
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	email := normalizeEmail(params.Email)
	if acc, ok := b.accounts[email]; ok {
		if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(params.Password)); err != nil {
			return domain.User{}, errBadLogin
		}
		user := acc.user.Clone()
		b.currentUser = &user
		return user.Clone(), nil
	}
	user := b.seedUser.Clone()
	b.currentUser = &user
	return user.Clone(), nil
}

// Register creates an account with a bcrypt-hashed password and signs it in.
func (b *Backend) Register(ctx context.Context, params domain.RegisterParams) (domain.User, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return domain.User{}, err
	}
	if b.shouldFail("register") {
		return domain.User{}, errEmailTaken
	}

	email := normalizeEmail(params.Email)
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if _, exists := b.accounts[email]; exists || email == normalizeEmail(b.seedUser.Email) {
		return domain.User{}, errEmailTaken
	}
	user := b.seedUser.Clone()
	user.ID = uuid.NewString()
	user.Email = strings.TrimSpace(params.Email)
	user.Name = strings.TrimSpace(params.Name)
	b.accounts[email] = account{user: user, passwordHash: hash}
	current := user.Clone()
	b.currentUser = &current
	return user.Clone(), nil
}

func (b *Backend) Logout(ctx context.Context) error {
	if err := b.wait(ctx, b.latency); err != nil {
		return err
	}
	b.mu.Lock()
	b.currentUser = nil
	b.mu.Unlock()
	return nil
}

// Me returns the signed-in user, or the seeded user when nobody signed in.
func (b *Backend) Me(ctx context.Context) (domain.User, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return domain.User{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.currentUser != nil {
		return b.currentUser.Clone(), nil
	}
	return b.seedUser.Clone(), nil
}

// User looks up any known account by id.
func (b *Backend) User(ctx context.Context, userID string) (domain.User, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return domain.User{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	user, ok := b.userByIDLocked(userID)
	if !ok {
		return domain.User{}, errUserNotFound
	}
	return user.Clone(), nil
}

func (b *Backend) userByIDLocked(userID string) (domain.User, bool) {
	if userID == b.seedUser.ID {
		return b.seedUser, true
	}
	for _, acc := range b.accounts {
		if acc.user.ID == userID {
			return acc.user, true
		}
	}
	return domain.User{}, false
}

// UpdateProfile patches the given user's profile.
func (b *Backend) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (domain.User, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return domain.User{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	user, ok := b.userByIDLocked(userID)
	if !ok {
		return domain.User{}, errUserNotFound
	}
	user = user.Clone()
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Username != nil {
		user.Username = strPtr(*update.Username)
	}
	if update.Bio != nil {
		user.Bio = strPtr(*update.Bio)
	}
	if update.Hashtags != nil {
		user.Hashtags = append([]string(nil), update.Hashtags...)
	}
	if user.ID == b.seedUser.ID {
		b.seedUser = user
	} else {
		email := normalizeEmail(user.Email)
		acc := b.accounts[email]
		acc.user = user
		b.accounts[email] = acc
	}
	if b.currentUser != nil && b.currentUser.ID == user.ID {
		current := user.Clone()
		b.currentUser = &current
	}
	return user.Clone(), nil
}

// Stats returns profile counters. Only the seeded user has activity.
func (b *Backend) Stats(ctx context.Context, userID string) (domain.UserStats, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return domain.UserStats{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.userByIDLocked(userID); !ok {
		return domain.UserStats{}, errUserNotFound
	}
	if userID == SeedUserID {
		return seedStats(), nil
	}
	return domain.UserStats{}, nil
}

// CurrentUserID returns the signed-in user id, falling back to the seeded user.
func (b *Backend) CurrentUserID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.currentUser != nil {
		return b.currentUser.ID
	}
	return b.seedUser.ID
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
