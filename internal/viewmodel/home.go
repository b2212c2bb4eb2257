package viewmodel

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/result"
)

const (
	HomePageSize       = 10
	DefaultSearchDelay = 300 * time.Millisecond
	msgLocationMissing = "Location not available"
)

// PlaceResolver turns coordinates into the city and district shown in the header.
type PlaceResolver interface {
	Reverse(ctx context.Context, loc domain.Location) (domain.Place, error)
}

type HomeState struct {
	Venues            []domain.Venue
	Loading           bool
	PaginationLoading bool
	Refreshing        bool
	Error             *result.AppError
	Empty             bool
	HasMore           bool
	CurrentPage       int
	SelectedCategory  string
	SearchQuery       string
	Place             *domain.Place
	UserLocation      *domain.Location
}

func (s HomeState) clone() HomeState {
	s.Venues = domain.CloneVenues(s.Venues)
	if s.Place != nil {
		place := *s.Place
		s.Place = &place
	}
	if s.UserLocation != nil {
		loc := *s.UserLocation
		s.UserLocation = &loc
	}
	return s
}

type HomeDeps struct {
	Nearby         Query[domain.NearbyParams, []domain.Venue]
	Search         Query[domain.SearchParams, []domain.Venue]
	ToggleFavorite Query[string, bool]
	ToggleSave     Query[string, bool]
	// Places is optional. Without it the header place stays unset.
	Places      PlaceResolver
	SearchDelay time.Duration
	Logger      *slog.Logger
}

// Home drives the nearby list, category chips and the debounced search box.
type Home struct {
	deps     HomeDeps
	logger   *slog.Logger
	state    *observable[HomeState]
	list     requestSlot
	debounce *debouncer
	retry    retrier
	lookups  sync.WaitGroup

	base      context.Context
	closeBase context.CancelFunc
}

func NewHome(deps HomeDeps) *Home {
	delay := deps.SearchDelay
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	base, cancel := context.WithCancel(context.Background())
	return &Home{
		deps:      deps,
		logger:    logger,
		state:     newObservable(HomeState{HasMore: true, CurrentPage: 1}, HomeState.clone),
		debounce:  newDebouncer(delay),
		base:      base,
		closeBase: cancel,
	}
}

func (h *Home) State() HomeState {
	return h.state.get()
}

func (h *Home) OnChange(fn func(HomeState)) {
	h.state.subscribe(fn)
}

// Close stops a pending search and cancels the in-flight request.
func (h *Home) Close() {
	h.debounce.cancel()
	h.list.stop()
	h.closeBase()
}

func (h *Home) SetPlace(place domain.Place) {
	h.state.update(func(s *HomeState) {
		s.Place = &place
	})
}

// SetUserLocation records the device position. The first page loads when the
// list is empty and no search is active. The header place is resolved in the
// background; WaitPlace blocks until that lookup finishes.
func (h *Home) SetUserLocation(ctx context.Context, loc domain.Location) {
	var needsLoad bool
	h.state.update(func(s *HomeState) {
		s.UserLocation = &loc
		needsLoad = activeQuery(*s) == "" && len(s.Venues) == 0
	})

	if h.deps.Places != nil {
		h.lookups.Add(1)
		go h.resolvePlace(loc)
	}

	if needsLoad {
		h.LoadNearby(ctx, 1, false)
	}
}

func (h *Home) resolvePlace(loc domain.Location) {
	defer h.lookups.Done()
	place, err := h.deps.Places.Reverse(h.base, loc)
	if err != nil {
		h.logger.Warn("place lookup failed", "error", err)
		return
	}
	h.state.update(func(s *HomeState) {
		if s.UserLocation != nil && *s.UserLocation == loc {
			s.Place = &place
		}
	})
}

// WaitPlace waits for pending place lookups. It reports false when ctx ends first.
func (h *Home) WaitPlace(ctx context.Context) bool {
	done := make(chan struct{})
	go func() {
		h.lookups.Wait()
		close(done)
	}()
	select {
	case <-done:
		return true
	case <-ctx.Done():
		return false
	}
}

// activeQuery is the search text that drives the list; blank input means nearby.
func activeQuery(s HomeState) string {
	return strings.TrimSpace(s.SearchQuery)
}

func (h *Home) LoadNearby(ctx context.Context, page int, appendPage bool) {
	h.retry.remember(func(ctx context.Context) { h.LoadNearby(ctx, page, appendPage) })

	loc, filters, ok := h.begin(appendPage)
	if !ok {
		return
	}
	reqCtx, seq := h.list.begin(ctx)
	defer h.list.end(seq)

	res := h.deps.Nearby.Execute(reqCtx, domain.NearbyParams{
		Lat:      loc.Lat,
		Lng:      loc.Lng,
		Filters:  filters,
		Page:     page,
		PageSize: HomePageSize,
	})
	h.apply(seq, res, page, appendPage)
}

// Search runs a query right away, dropping any pending debounced search.
func (h *Home) Search(ctx context.Context, query string) {
	h.debounce.cancel()
	h.state.update(func(s *HomeState) {
		s.SearchQuery = query
	})
	h.runSearch(ctx, query, 1, false)
}

func (h *Home) runSearch(ctx context.Context, query string, page int, appendPage bool) {
	h.retry.remember(func(ctx context.Context) { h.runSearch(ctx, query, page, appendPage) })

	if !appendPage {
		h.state.update(func(s *HomeState) {
			s.CurrentPage = 1
			s.Venues = nil
		})
	}
	_, filters, ok := h.begin(appendPage)
	if !ok {
		return
	}
	reqCtx, seq := h.list.begin(ctx)
	defer h.list.end(seq)

	res := h.deps.Search.Execute(reqCtx, domain.SearchParams{
		Query:    query,
		Filters:  filters,
		Page:     page,
		PageSize: HomePageSize,
	})
	h.apply(seq, res, page, appendPage)
}

// begin sets the loading flags, or records the missing-location failure.
func (h *Home) begin(appendPage bool) (domain.Location, domain.VenueFilters, bool) {
	var (
		loc     domain.Location
		filters domain.VenueFilters
		ok      bool
	)
	h.state.update(func(s *HomeState) {
		if s.UserLocation == nil {
			s.Error = result.NewError(result.ValidationFailure, msgLocationMissing)
			s.Loading = false
			s.PaginationLoading = false
			return
		}
		ok = true
		loc = *s.UserLocation
		if s.SelectedCategory != "" {
			filters.Categories = []string{s.SelectedCategory}
		}
		s.Error = nil
		if appendPage {
			s.PaginationLoading = true
		} else if !s.Refreshing {
			s.Loading = true
		}
	})
	return loc, filters, ok
}

func (h *Home) apply(seq uint64, res result.Result[[]domain.Venue], page int, appendPage bool) {
	h.state.updateIf(func() bool { return h.list.current(seq) }, func(s *HomeState) {
		s.Loading = false
		s.PaginationLoading = false
		venues, err := res.Unpack()
		if err != nil {
			s.Error = err
			s.Empty = !appendPage
			return
		}
		if appendPage {
			s.Venues = append(s.Venues, venues...)
		} else {
			s.Venues = venues
		}
		s.CurrentPage = page
		s.HasMore = len(venues) == HomePageSize
		s.Empty = len(s.Venues) == 0
	})
}

// LoadMore fetches the next page unless a load is in flight or the last page was short.
func (h *Home) LoadMore(ctx context.Context) {
	st := h.state.get()
	if st.Loading || st.Refreshing || st.PaginationLoading || !st.HasMore {
		return
	}
	if query := activeQuery(st); query != "" {
		h.runSearch(ctx, query, st.CurrentPage+1, true)
		return
	}
	h.LoadNearby(ctx, st.CurrentPage+1, true)
}

// Refresh reloads page 1 keeping the category and query.
func (h *Home) Refresh(ctx context.Context) {
	var query string
	h.state.update(func(s *HomeState) {
		s.Refreshing = true
		s.CurrentPage = 1
		query = activeQuery(*s)
	})
	if query != "" {
		h.runSearch(ctx, query, 1, false)
	} else {
		h.LoadNearby(ctx, 1, false)
	}
	h.state.update(func(s *HomeState) {
		s.Refreshing = false
	})
}

// SelectCategory resets pagination and re-issues the active search or the nearby load.
// An empty category clears the filter.
func (h *Home) SelectCategory(ctx context.Context, category string) {
	var query string
	h.state.update(func(s *HomeState) {
		s.SelectedCategory = category
		s.CurrentPage = 1
		s.Venues = nil
		query = activeQuery(*s)
	})
	if query != "" {
		h.debounce.cancel()
		h.runSearch(ctx, query, 1, false)
		return
	}
	h.LoadNearby(ctx, 1, false)
}

// SetSearchQuery debounces typing. Clearing the query reloads nearby immediately.
func (h *Home) SetSearchQuery(ctx context.Context, query string) {
	h.state.update(func(s *HomeState) {
		s.SearchQuery = query
	})
	if trimmed := strings.TrimSpace(query); trimmed != "" {
		h.debounce.schedule(func() {
			h.runSearch(h.base, trimmed, 1, false)
		})
		return
	}
	h.debounce.cancel()
	h.state.update(func(s *HomeState) {
		s.Venues = nil
		s.CurrentPage = 1
	})
	h.LoadNearby(ctx, 1, false)
}

// ToggleFavorite stores the flag returned by the backend on the matching venue.
func (h *Home) ToggleFavorite(ctx context.Context, venueID string) result.Result[bool] {
	res := h.deps.ToggleFavorite.Execute(ctx, venueID)
	h.applyToggle(res, venueID, func(v *domain.Venue, on bool) { v.IsFavorite = on })
	return res
}

// ToggleSave stores the flag returned by the backend on the matching venue.
func (h *Home) ToggleSave(ctx context.Context, venueID string) result.Result[bool] {
	res := h.deps.ToggleSave.Execute(ctx, venueID)
	h.applyToggle(res, venueID, func(v *domain.Venue, on bool) { v.IsSaved = on })
	return res
}

func (h *Home) applyToggle(res result.Result[bool], venueID string, set func(*domain.Venue, bool)) {
	h.state.update(func(s *HomeState) {
		on, err := res.Unpack()
		if err != nil {
			s.Error = err
			return
		}
		for i := range s.Venues {
			if s.Venues[i].ID == venueID {
				set(&s.Venues[i], on)
			}
		}
	})
}

// Retry re-runs the last load or search.
func (h *Home) Retry(ctx context.Context) bool {
	return h.retry.retry(ctx)
}
