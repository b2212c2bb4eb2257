package viewmodel

import (
	"context"
	"slices"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/result"
)

type FavoritesState struct {
	Venues           []domain.Venue
	Loading          bool
	Refreshing       bool
	Error            *result.AppError
	SelectedListType domain.FavoriteListType
}

func (s FavoritesState) clone() FavoritesState {
	s.Venues = domain.CloneVenues(s.Venues)
	return s
}

type FavoritesDeps struct {
	Favorites      Query[domain.FavoriteListType, []domain.Venue]
	ToggleFavorite Query[string, bool]
}

type Favorites struct {
	deps  FavoritesDeps
	state *observable[FavoritesState]
	list  requestSlot
	retry retrier
}

func NewFavorites(deps FavoritesDeps) *Favorites {
	return &Favorites{
		deps:  deps,
		state: newObservable(FavoritesState{SelectedListType: domain.FavoriteListFavorite}, FavoritesState.clone),
	}
}

func (f *Favorites) State() FavoritesState {
	return f.state.get()
}

func (f *Favorites) OnChange(fn func(FavoritesState)) {
	f.state.subscribe(fn)
}

// Load fetches one list. The selected list type changes only when the load succeeds.
func (f *Favorites) Load(ctx context.Context, listType domain.FavoriteListType) {
	if listType == "" {
		listType = domain.FavoriteListFavorite
	}
	f.retry.remember(func(ctx context.Context) { f.Load(ctx, listType) })
	f.state.update(func(s *FavoritesState) {
		s.Loading = true
		s.Error = nil
	})

	reqCtx, seq := f.list.begin(ctx)
	defer f.list.end(seq)
	res := f.deps.Favorites.Execute(reqCtx, listType)

	f.state.updateIf(func() bool { return f.list.current(seq) }, func(s *FavoritesState) {
		s.Loading = false
		venues, err := res.Unpack()
		if err != nil {
			s.Error = err
			return
		}
		s.Venues = venues
		s.SelectedListType = listType
	})
}

// Refresh reloads the selected list.
func (f *Favorites) Refresh(ctx context.Context) {
	var listType domain.FavoriteListType
	f.state.update(func(s *FavoritesState) {
		s.Refreshing = true
		s.Error = nil
		listType = s.SelectedListType
	})

	reqCtx, seq := f.list.begin(ctx)
	defer f.list.end(seq)
	res := f.deps.Favorites.Execute(reqCtx, listType)

	f.state.updateIf(func() bool { return f.list.current(seq) }, func(s *FavoritesState) {
		s.Refreshing = false
		venues, err := res.Unpack()
		if err != nil {
			s.Error = err
			return
		}
		s.Venues = venues
	})
}

// ToggleFavorite removes the venue from the visible list once the backend accepts the toggle.
func (f *Favorites) ToggleFavorite(ctx context.Context, venueID string) result.Result[bool] {
	res := f.deps.ToggleFavorite.Execute(ctx, venueID)
	f.state.update(func(s *FavoritesState) {
		if res.IsFailure() {
			s.Error = res.Err()
			return
		}
		s.Venues = slices.DeleteFunc(s.Venues, func(v domain.Venue) bool { return v.ID == venueID })
	})
	return res
}

func (f *Favorites) Retry(ctx context.Context) bool {
	return f.retry.retry(ctx)
}
