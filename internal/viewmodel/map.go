package viewmodel

import (
	"context"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/result"
)

const MapPageSize = 50

// InitialRegion is centred on Moda, Kadıköy.
var InitialRegion = domain.Region{
	Latitude:       40.9848,
	Longitude:      29.0244,
	LatitudeDelta:  0.02,
	LongitudeDelta: 0.02,
}

type MapState struct {
	Venues      []domain.Venue
	Loading     bool
	Error       *result.AppError
	SearchQuery string
	Region      domain.Region
}

func (s MapState) clone() MapState {
	s.Venues = domain.CloneVenues(s.Venues)
	return s
}

type MapDeps struct {
	Nearby Query[domain.NearbyParams, []domain.Venue]
	Search Query[domain.SearchParams, []domain.Venue]
}

type Map struct {
	deps  MapDeps
	state *observable[MapState]
	list  requestSlot
	retry retrier
}

func NewMap(deps MapDeps) *Map {
	return &Map{
		deps:  deps,
		state: newObservable(MapState{Region: InitialRegion}, MapState.clone),
	}
}

func (m *Map) State() MapState {
	return m.state.get()
}

func (m *Map) OnChange(fn func(MapState)) {
	m.state.subscribe(fn)
}

// LoadVenues fetches venues around the region centre. The region itself is not changed.
func (m *Map) LoadVenues(ctx context.Context, region domain.Region) {
	m.retry.remember(func(ctx context.Context) { m.LoadVenues(ctx, region) })
	m.state.update(func(s *MapState) {
		s.Loading = true
		s.Error = nil
	})

	reqCtx, seq := m.list.begin(ctx)
	defer m.list.end(seq)
	center := region.Center()
	res := m.deps.Nearby.Execute(reqCtx, domain.NearbyParams{
		Lat:      center.Lat,
		Lng:      center.Lng,
		Page:     1,
		PageSize: MapPageSize,
	})

	m.state.updateIf(func() bool { return m.list.current(seq) }, func(s *MapState) {
		s.Loading = false
		venues, err := res.Unpack()
		if err != nil {
			s.Error = err
			return
		}
		s.Venues = venues
	})
}

// Search replaces the pins and re-centres on the first result that has coordinates.
func (m *Map) Search(ctx context.Context, query string) {
	m.retry.remember(func(ctx context.Context) { m.Search(ctx, query) })
	m.state.update(func(s *MapState) {
		s.SearchQuery = query
		s.Loading = true
		s.Error = nil
	})

	reqCtx, seq := m.list.begin(ctx)
	defer m.list.end(seq)
	res := m.deps.Search.Execute(reqCtx, domain.SearchParams{
		Query:    query,
		Page:     1,
		PageSize: MapPageSize,
	})

	m.state.updateIf(func() bool { return m.list.current(seq) }, func(s *MapState) {
		s.Loading = false
		venues, err := res.Unpack()
		if err != nil {
			s.Error = err
			return
		}
		s.Venues = venues
		for _, v := range venues {
			if loc, ok := v.Coordinates(); ok {
				s.Region.Latitude = loc.Lat
				s.Region.Longitude = loc.Lng
				break
			}
		}
	})
}

// OnRegionChange records the viewport without fetching.
func (m *Map) OnRegionChange(region domain.Region) {
	m.state.update(func(s *MapState) {
		s.Region = region
	})
}

func (m *Map) Retry(ctx context.Context) bool {
	return m.retry.retry(ctx)
}
