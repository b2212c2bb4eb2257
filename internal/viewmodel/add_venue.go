package viewmodel

import (
	"context"
	"strings"

	"github.com/mekedron/city-discovery/internal/domain"
)

const msgRequiredFields = "Lütfen tüm zorunlu alanları doldurun"

type AddVenueState struct {
	Name        string
	Address     string
	City        string
	District    string
	Description string
	Loading     bool
	Error       string
	Created     *domain.Venue
}

func (s AddVenueState) clone() AddVenueState {
	if s.Created != nil {
		v := s.Created.Clone()
		s.Created = &v
	}
	return s
}

type AddVenue struct {
	suggest Query[domain.VenueSuggestion, domain.Venue]
	state   *observable[AddVenueState]
}

func NewAddVenue(suggest Query[domain.VenueSuggestion, domain.Venue]) *AddVenue {
	return &AddVenue{suggest: suggest, state: newObservable(AddVenueState{}, AddVenueState.clone)}
}

func (a *AddVenue) State() AddVenueState {
	return a.state.get()
}

func (a *AddVenue) OnChange(fn func(AddVenueState)) {
	a.state.subscribe(fn)
}

// SetFields replaces the form values and clears the error.
func (a *AddVenue) SetFields(name, address, city, district, description string) {
	a.state.update(func(s *AddVenueState) {
		s.Name = name
		s.Address = address
		s.City = city
		s.District = district
		s.Description = description
		s.Error = ""
	})
}

func (a *AddVenue) Submit(ctx context.Context) (domain.Venue, bool) {
	st := a.state.get()
	suggestion := domain.VenueSuggestion{
		Name:        strings.TrimSpace(st.Name),
		Address:     strings.TrimSpace(st.Address),
		City:        strings.TrimSpace(st.City),
		District:    strings.TrimSpace(st.District),
		Description: strings.TrimSpace(st.Description),
	}
	if suggestion.Name == "" || suggestion.Address == "" || suggestion.City == "" || suggestion.District == "" {
		a.state.update(func(s *AddVenueState) { s.Error = msgRequiredFields })
		return domain.Venue{}, false
	}

	a.state.update(func(s *AddVenueState) {
		s.Loading = true
		s.Error = ""
	})
	venue, err := a.suggest.Execute(ctx, suggestion).Unpack()
	a.state.update(func(s *AddVenueState) {
		s.Loading = false
		if err != nil {
			s.Error = err.Message
			return
		}
		s.Created = &venue
	})
	return venue, err == nil
}
