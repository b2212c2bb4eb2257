package viewmodel

import (
	"context"
	"fmt"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/result"
)

type VenueDetailState struct {
	Venue   *domain.Venue
	Loading bool
	Error   *result.AppError
}

func (s VenueDetailState) clone() VenueDetailState {
	if s.Venue != nil {
		v := s.Venue.Clone()
		s.Venue = &v
	}
	return s
}

type VenueDetailDeps struct {
	Detail         Query[string, domain.Venue]
	ToggleFavorite Query[string, bool]
	ToggleSave     Query[string, bool]
}

type VenueDetail struct {
	deps   VenueDetailDeps
	state  *observable[VenueDetailState]
	detail requestSlot
	retry  retrier
}

func NewVenueDetail(deps VenueDetailDeps) *VenueDetail {
	return &VenueDetail{deps: deps, state: newObservable(VenueDetailState{}, VenueDetailState.clone)}
}

func (d *VenueDetail) State() VenueDetailState {
	return d.state.get()
}

func (d *VenueDetail) OnChange(fn func(VenueDetailState)) {
	d.state.subscribe(fn)
}

func (d *VenueDetail) Load(ctx context.Context, venueID string) {
	d.retry.remember(func(ctx context.Context) { d.Load(ctx, venueID) })
	d.state.update(func(s *VenueDetailState) {
		s.Loading = true
		s.Error = nil
	})

	reqCtx, seq := d.detail.begin(ctx)
	defer d.detail.end(seq)
	res := d.deps.Detail.Execute(reqCtx, venueID)

	d.state.updateIf(func() bool { return d.detail.current(seq) }, func(s *VenueDetailState) {
		s.Loading = false
		venue, err := res.Unpack()
		if err != nil {
			s.Error = err
			s.Venue = nil
			return
		}
		s.Venue = &venue
	})
}

// ToggleFavorite flips the favorite flag of the loaded venue.
func (d *VenueDetail) ToggleFavorite(ctx context.Context) result.Result[bool] {
	return d.toggle(ctx, d.deps.ToggleFavorite, func(v *domain.Venue, on bool) { v.IsFavorite = on })
}

// ToggleSave flips the saved flag of the loaded venue.
func (d *VenueDetail) ToggleSave(ctx context.Context) result.Result[bool] {
	return d.toggle(ctx, d.deps.ToggleSave, func(v *domain.Venue, on bool) { v.IsSaved = on })
}

func (d *VenueDetail) toggle(ctx context.Context, q Query[string, bool], set func(*domain.Venue, bool)) result.Result[bool] {
	st := d.state.get()
	if st.Venue == nil {
		return result.Fail[bool](result.ValidationFailure, "venue is not loaded")
	}
	venueID := st.Venue.ID
	res := q.Execute(ctx, venueID)
	d.state.update(func(s *VenueDetailState) {
		on, err := res.Unpack()
		if err != nil {
			s.Error = err
			return
		}
		if s.Venue != nil && s.Venue.ID == venueID {
			set(s.Venue, on)
		}
	})
	return res
}

// ShareText is the message shared for the loaded venue.
func (d *VenueDetail) ShareText() string {
	st := d.state.get()
	if st.Venue == nil {
		return ""
	}
	return fmt.Sprintf("%s - %s, %s", st.Venue.Name, st.Venue.District, st.Venue.City)
}

func (d *VenueDetail) Retry(ctx context.Context) bool {
	return d.retry.retry(ctx)
}
