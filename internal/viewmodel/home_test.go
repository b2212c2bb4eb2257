package viewmodel

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/mock"
	"github.com/mekedron/city-discovery/internal/repository"
	"github.com/mekedron/city-discovery/internal/result"
	"github.com/mekedron/city-discovery/internal/usecase"
)

var moda = domain.Location{Lat: 40.9848, Lng: 29.0244}

func venuesNamed(prefix string, n int) []domain.Venue {
	out := make([]domain.Venue, n)
	for i := range out {
		out[i] = domain.Venue{ID: fmt.Sprintf("%s%d", prefix, i), Name: fmt.Sprintf("%s %d", prefix, i)}
	}
	return out
}

type recorder[P any] struct {
	mu    sync.Mutex
	calls []P
}

func (r *recorder[P]) add(p P) {
	r.mu.Lock()
	r.calls = append(r.calls, p)
	r.mu.Unlock()
}

func (r *recorder[P]) snapshot() []P {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]P(nil), r.calls...)
}

func staticNearby(rec *recorder[domain.NearbyParams], venues []domain.Venue) Query[domain.NearbyParams, []domain.Venue] {
	return QueryFunc[domain.NearbyParams, []domain.Venue](func(_ context.Context, p domain.NearbyParams) result.Result[[]domain.Venue] {
		rec.add(p)
		return result.Success(domain.CloneVenues(venues))
	})
}

func TestHomeDebouncedSearchRunsOnlyLastQuery(t *testing.T) {
	var searches recorder[domain.SearchParams]
	home := NewHome(HomeDeps{
		Nearby: staticNearby(&recorder[domain.NearbyParams]{}, venuesNamed("n", 2)),
		Search: QueryFunc[domain.SearchParams, []domain.Venue](func(_ context.Context, p domain.SearchParams) result.Result[[]domain.Venue] {
			searches.add(p)
			return result.Success(venuesNamed("s", 1))
		}),
		SearchDelay: 30 * time.Millisecond,
	})
	defer home.Close()
	ctx := context.Background()
	home.SetUserLocation(ctx, moda)

	home.SetSearchQuery(ctx, "a")
	home.SetSearchQuery(ctx, "ab")
	home.SetSearchQuery(ctx, "abc")

	require.Eventually(t, func() bool { return len(searches.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	calls := searches.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "abc", calls[0].Query)
	assert.Equal(t, 1, calls[0].Page)
	assert.Equal(t, HomePageSize, calls[0].PageSize)
	assert.Eventually(t, func() bool {
		st := home.State()
		return len(st.Venues) == 1 && st.Venues[0].ID == "s0"
	}, time.Second, 5*time.Millisecond)
}

func TestHomeClearingQueryReloadsNearbyImmediately(t *testing.T) {
	var nearby recorder[domain.NearbyParams]
	home := NewHome(HomeDeps{Nearby: staticNearby(&nearby, venuesNamed("n", 3))})
	defer home.Close()
	ctx := context.Background()
	home.SetUserLocation(ctx, moda)
	require.Len(t, nearby.snapshot(), 1)

	home.SetSearchQuery(ctx, "  ")

	assert.Len(t, nearby.snapshot(), 2)
	assert.Len(t, home.State().Venues, 3)
}

func TestHomeMockNearbyFirstPage(t *testing.T) {
	backend := mock.NewBackend(mock.WithLatency(0), mock.WithFailureRate(0))
	venues := repository.NewMockVenueRepository(backend, nil)
	home := NewHome(HomeDeps{
		Nearby: usecase.NewGetNearbyVenues(venues),
		Search: usecase.NewSearchVenues(venues),
	})
	defer home.Close()

	ctx := context.Background()
	home.SetUserLocation(ctx, moda)

	st := home.State()
	require.Nil(t, st.Error)
	assert.Len(t, st.Venues, 10)
	assert.False(t, st.Empty)
	assert.Equal(t, 1, st.CurrentPage)
	assert.False(t, st.Loading)

	// A full page only suggests more; the empty second page settles it.
	home.LoadMore(ctx)
	st = home.State()
	assert.Len(t, st.Venues, 10)
	assert.False(t, st.HasMore)
	assert.Equal(t, 2, st.CurrentPage)
}

func TestHomeWithoutLocationFails(t *testing.T) {
	var nearby recorder[domain.NearbyParams]
	home := NewHome(HomeDeps{Nearby: staticNearby(&nearby, nil)})
	defer home.Close()

	home.LoadNearby(context.Background(), 1, false)

	st := home.State()
	require.NotNil(t, st.Error)
	assert.Equal(t, result.ValidationFailure, st.Error.Kind)
	assert.Equal(t, "Location not available", st.Error.Message)
	assert.Empty(t, nearby.snapshot())
}

func TestHomeLoadMoreAppendsUntilShortPage(t *testing.T) {
	var nearby recorder[domain.NearbyParams]
	home := NewHome(HomeDeps{
		Nearby: QueryFunc[domain.NearbyParams, []domain.Venue](func(_ context.Context, p domain.NearbyParams) result.Result[[]domain.Venue] {
			nearby.add(p)
			if p.Page == 1 {
				return result.Success(venuesNamed("p1-", HomePageSize))
			}
			return result.Success(venuesNamed("p2-", 3))
		}),
	})
	defer home.Close()
	ctx := context.Background()

	home.SetUserLocation(ctx, moda)
	assert.True(t, home.State().HasMore)

	home.LoadMore(ctx)
	st := home.State()
	assert.Len(t, st.Venues, HomePageSize+3)
	assert.Equal(t, 2, st.CurrentPage)
	assert.False(t, st.HasMore)

	home.LoadMore(ctx)
	assert.Len(t, nearby.snapshot(), 2)
}

func TestHomeDiscardsSupersededResponse(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls int
	var mu sync.Mutex
	home := NewHome(HomeDeps{
		Nearby: QueryFunc[domain.NearbyParams, []domain.Venue](func(_ context.Context, p domain.NearbyParams) result.Result[[]domain.Venue] {
			mu.Lock()
			calls++
			n := calls
			mu.Unlock()
			if n == 1 {
				close(started)
				<-release
				return result.Success([]domain.Venue{{ID: "stale"}})
			}
			return result.Success([]domain.Venue{{ID: "fresh"}})
		}),
	})
	defer home.Close()
	ctx := context.Background()
	home.SetPlace(domain.Place{City: "İstanbul", District: "Kadıköy"})
	home.state.update(func(s *HomeState) { s.UserLocation = &moda })

	done := make(chan struct{})
	go func() {
		home.LoadNearby(ctx, 1, false)
		close(done)
	}()
	<-started
	home.LoadNearby(ctx, 1, false)
	close(release)
	<-done

	st := home.State()
	require.Len(t, st.Venues, 1)
	assert.Equal(t, "fresh", st.Venues[0].ID)
}

func TestHomeSelectCategorySendsFilter(t *testing.T) {
	var nearby recorder[domain.NearbyParams]
	home := NewHome(HomeDeps{Nearby: staticNearby(&nearby, venuesNamed("n", 1))})
	defer home.Close()
	ctx := context.Background()
	home.SetUserLocation(ctx, moda)

	home.SelectCategory(ctx, "Kahve")

	calls := nearby.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"Kahve"}, calls[1].Filters.Categories)
	assert.Equal(t, "Kahve", home.State().SelectedCategory)
}

func TestHomeToggleStoresReturnedFlag(t *testing.T) {
	home := NewHome(HomeDeps{
		Nearby: staticNearby(&recorder[domain.NearbyParams]{}, []domain.Venue{{ID: "1"}, {ID: "2", IsFavorite: true}}),
		ToggleFavorite: QueryFunc[string, bool](func(context.Context, string) result.Result[bool] {
			return result.Success(false)
		}),
		ToggleSave: QueryFunc[string, bool](func(context.Context, string) result.Result[bool] {
			return result.Success(true)
		}),
	})
	defer home.Close()
	ctx := context.Background()
	home.SetUserLocation(ctx, moda)

	require.True(t, home.ToggleFavorite(ctx, "2").IsSuccess())
	require.True(t, home.ToggleSave(ctx, "1").IsSuccess())

	st := home.State()
	assert.False(t, st.Venues[1].IsFavorite)
	assert.True(t, st.Venues[0].IsSaved)
}

func TestHomeRetryRepeatsLastLoad(t *testing.T) {
	var nearby recorder[domain.NearbyParams]
	fail := true
	home := NewHome(HomeDeps{
		Nearby: QueryFunc[domain.NearbyParams, []domain.Venue](func(_ context.Context, p domain.NearbyParams) result.Result[[]domain.Venue] {
			nearby.add(p)
			if fail {
				return result.Fail[[]domain.Venue](result.NetworkFailure, "Network timeout")
			}
			return result.Success(venuesNamed("n", 2))
		}),
	})
	defer home.Close()
	ctx := context.Background()
	assert.False(t, home.Retry(ctx))

	home.SetUserLocation(ctx, moda)
	st := home.State()
	require.NotNil(t, st.Error)
	assert.True(t, st.Empty)
	assert.False(t, st.Loading)

	fail = false
	require.True(t, home.Retry(ctx))
	st = home.State()
	assert.Nil(t, st.Error)
	assert.Len(t, st.Venues, 2)
	assert.Len(t, nearby.snapshot(), 2)
}

type placeFunc func(context.Context, domain.Location) (domain.Place, error)

func (f placeFunc) Reverse(ctx context.Context, loc domain.Location) (domain.Place, error) {
	return f(ctx, loc)
}

func TestHomeResolvesPlace(t *testing.T) {
	home := NewHome(HomeDeps{
		Nearby: staticNearby(&recorder[domain.NearbyParams]{}, nil),
		Places: placeFunc(func(context.Context, domain.Location) (domain.Place, error) {
			return domain.Place{City: "İstanbul", District: "Kadıköy"}, nil
		}),
	})
	defer home.Close()

	home.SetUserLocation(context.Background(), moda)
	require.True(t, home.WaitPlace(context.Background()))

	st := home.State()
	require.NotNil(t, st.Place)
	assert.Equal(t, "Kadıköy", st.Place.District)
	assert.True(t, st.Empty)
}

func TestListenersMayReadStateWithoutDeadlock(t *testing.T) {
	home := NewHome(HomeDeps{Nearby: staticNearby(&recorder[domain.NearbyParams]{}, venuesNamed("n", 1))})
	defer home.Close()
	var seen []bool
	home.OnChange(func(s HomeState) {
		_ = home.State()
		seen = append(seen, s.Loading)
	})

	home.SetUserLocation(context.Background(), moda)

	require.NotEmpty(t, seen)
	assert.Contains(t, seen, true)
	assert.False(t, seen[len(seen)-1])
}

func TestHomeLoadMoreWaitsForFirstPage(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var nearby recorder[domain.NearbyParams]
	home := NewHome(HomeDeps{
		Nearby: QueryFunc[domain.NearbyParams, []domain.Venue](func(_ context.Context, p domain.NearbyParams) result.Result[[]domain.Venue] {
			nearby.add(p)
			if p.Page == 1 {
				close(started)
				<-release
				return result.Success(venuesNamed("p1-", HomePageSize))
			}
			return result.Success(venuesNamed("p2-", HomePageSize))
		}),
	})
	defer home.Close()
	ctx := context.Background()

	done := make(chan struct{})
	go func() {
		home.SetUserLocation(ctx, moda)
		close(done)
	}()
	<-started
	require.True(t, home.State().Loading)

	home.LoadMore(ctx)
	close(release)
	<-done

	st := home.State()
	require.Len(t, st.Venues, HomePageSize)
	assert.Equal(t, "p1-0", st.Venues[0].ID)
	assert.Equal(t, 1, st.CurrentPage)
	assert.Len(t, nearby.snapshot(), 1)
}

func TestHomeBlankQueryPagesNearby(t *testing.T) {
	var nearby recorder[domain.NearbyParams]
	var searches recorder[domain.SearchParams]
	home := NewHome(HomeDeps{
		Nearby: staticNearby(&nearby, venuesNamed("n", HomePageSize)),
		Search: QueryFunc[domain.SearchParams, []domain.Venue](func(_ context.Context, p domain.SearchParams) result.Result[[]domain.Venue] {
			searches.add(p)
			return result.Success(venuesNamed("s", 1))
		}),
		SearchDelay: 10 * time.Millisecond,
	})
	defer home.Close()
	ctx := context.Background()
	home.SetUserLocation(ctx, moda)

	home.SetSearchQuery(ctx, " ")
	home.LoadMore(ctx)
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, searches.snapshot())
	calls := nearby.snapshot()
	require.Len(t, calls, 3)
	assert.Equal(t, 2, calls[2].Page)
	st := home.State()
	assert.Len(t, st.Venues, 2*HomePageSize)
	assert.Equal(t, 2, st.CurrentPage)
}

func TestHomeLoadsBeforeSlowPlaceLookup(t *testing.T) {
	release := make(chan struct{})
	var nearby recorder[domain.NearbyParams]
	home := NewHome(HomeDeps{
		Nearby: staticNearby(&nearby, venuesNamed("n", 2)),
		Places: placeFunc(func(ctx context.Context, _ domain.Location) (domain.Place, error) {
			select {
			case <-release:
				return domain.Place{City: "İstanbul", District: "Moda"}, nil
			case <-ctx.Done():
				return domain.Place{}, ctx.Err()
			}
		}),
	})
	defer home.Close()
	ctx := context.Background()

	home.SetUserLocation(ctx, moda)

	assert.Len(t, nearby.snapshot(), 1)
	st := home.State()
	assert.Len(t, st.Venues, 2)
	assert.Nil(t, st.Place)

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	assert.False(t, home.WaitPlace(short))

	close(release)
	require.True(t, home.WaitPlace(ctx))
	require.NotNil(t, home.State().Place)
	assert.Equal(t, "Moda", home.State().Place.District)
}
