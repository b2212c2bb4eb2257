package viewmodel

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/mekedron/city-discovery/internal/domain"
)

const msgProfileLoad = "Profil yüklenemedi"

type ProfileTab string

const (
	ProfileTabSaved ProfileTab = "saved"
	ProfileTabGrid  ProfileTab = "grid"
)

type ProfileState struct {
	User             *domain.User
	Stats            *domain.UserStats
	Venues           []domain.Venue
	SelectedTab      ProfileTab
	SelectedCategory string
	Loading          bool
	Error            string
}

func (s ProfileState) clone() ProfileState {
	if s.User != nil {
		user := s.User.Clone()
		s.User = &user
	}
	if s.Stats != nil {
		stats := *s.Stats
		s.Stats = &stats
	}
	s.Venues = domain.CloneVenues(s.Venues)
	return s
}

// FilteredVenues returns the venues in the selected category, or all of them.
func (s ProfileState) FilteredVenues() []domain.Venue {
	if s.SelectedCategory == "" {
		return domain.CloneVenues(s.Venues)
	}
	out := make([]domain.Venue, 0, len(s.Venues))
	for _, v := range s.Venues {
		if v.HasCategory(s.SelectedCategory) {
			out = append(out, v.Clone())
		}
	}
	return out
}

type ProfileDeps struct {
	Me    Loader[domain.User]
	Stats Loader[domain.UserStats]
	Saved Loader[[]domain.Venue]
}

type Profile struct {
	deps  ProfileDeps
	state *observable[ProfileState]
	load  requestSlot
	retry retrier
}

func NewProfile(deps ProfileDeps) *Profile {
	return &Profile{
		deps:  deps,
		state: newObservable(ProfileState{SelectedTab: ProfileTabSaved}, ProfileState.clone),
	}
}

func (p *Profile) State() ProfileState {
	return p.state.get()
}

func (p *Profile) OnChange(fn func(ProfileState)) {
	p.state.subscribe(fn)
}

func (p *Profile) FilteredVenues() []domain.Venue {
	return p.state.get().FilteredVenues()
}

// Load fetches the user, stats and saved venues concurrently. Any failure is
// reported as a single profile error.
func (p *Profile) Load(ctx context.Context) {
	p.retry.remember(p.Load)
	p.state.update(func(s *ProfileState) {
		s.Loading = true
		s.Error = ""
	})

	reqCtx, seq := p.load.begin(ctx)
	defer p.load.end(seq)

	var (
		user   domain.User
		stats  domain.UserStats
		venues []domain.Venue
	)
	g, gctx := errgroup.WithContext(reqCtx)
	g.Go(func() error {
		var err error
		user, err = unwrap(p.deps.Me.Execute(gctx))
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = unwrap(p.deps.Stats.Execute(gctx))
		return err
	})
	g.Go(func() error {
		var err error
		venues, err = unwrap(p.deps.Saved.Execute(gctx))
		return err
	})
	err := g.Wait()

	p.state.updateIf(func() bool { return p.load.current(seq) }, func(s *ProfileState) {
		s.Loading = false
		if err != nil {
			s.Error = msgProfileLoad
			return
		}
		s.User = &user
		s.Stats = &stats
		if s.SelectedTab == ProfileTabSaved {
			s.Venues = venues
		}
	})
}

// SetSelectedTab empties the list for the grid tab and reloads saved venues for the saved tab.
func (p *Profile) SetSelectedTab(ctx context.Context, tab ProfileTab) {
	p.state.update(func(s *ProfileState) {
		s.SelectedTab = tab
		if tab == ProfileTabGrid {
			s.Venues = nil
		}
	})
	if tab != ProfileTabSaved {
		return
	}
	res := p.deps.Saved.Execute(ctx)
	p.state.update(func(s *ProfileState) {
		if s.SelectedTab != ProfileTabSaved {
			return
		}
		venues, err := res.Unpack()
		if err != nil {
			s.Error = msgProfileLoad
			return
		}
		s.Venues = venues
	})
}

func (p *Profile) SetSelectedCategory(category string) {
	p.state.update(func(s *ProfileState) {
		s.SelectedCategory = category
	})
}

func (p *Profile) Retry(ctx context.Context) bool {
	return p.retry.retry(ctx)
}
