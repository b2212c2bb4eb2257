package mock

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/mekedron/city-discovery/internal/domain"
)

// Nearby filters the catalogue and returns one page. Distance ordering is the seed order.
func (b *Backend) Nearby(ctx context.Context, params domain.NearbyParams) ([]domain.Venue, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return nil, err
	}
	if b.shouldFail("nearby") {
		return nil, errNearbyTimeout
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	filtered := applyFilters(b.venues, params.Filters)
	return paginate(filtered, params.Page, params.PageSize), nil
}

// Search matches the query case-insensitively against name, categories and short description.
func (b *Backend) Search(ctx context.Context, params domain.SearchParams) ([]domain.Venue, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return nil, err
	}
	if b.shouldFail("search") {
		return nil, errSearchFailed
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	query := strings.ToLower(params.Query)
	matched := make([]domain.Venue, 0, len(b.venues))
	for _, v := range b.venues {
		if matchesQuery(v, query) {
			matched = append(matched, v)
		}
	}
	filtered := applyFilters(matched, params.Filters)
	return paginate(filtered, params.Page, params.PageSize), nil
}

func matchesQuery(v domain.Venue, query string) bool {
	if strings.Contains(strings.ToLower(v.Name), query) {
		return true
	}
	for _, category := range v.Categories {
		if strings.Contains(strings.ToLower(category), query) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(v.ShortDescription), query)
}

func applyFilters(venues []domain.Venue, filters domain.VenueFilters) []domain.Venue {
	out := make([]domain.Venue, 0, len(venues))
	for _, v := range venues {
		if len(filters.Categories) > 0 && !slices.ContainsFunc(v.Categories, func(c string) bool {
			return slices.Contains(filters.Categories, c)
		}) {
			continue
		}
		if len(filters.PriceLevels) > 0 && !slices.Contains(filters.PriceLevels, v.PriceLevel) {
			continue
		}
		if filters.IsOpen != nil && v.IsOpen != *filters.IsOpen {
			continue
		}
		out = append(out, v)
	}
	return out
}

// paginate returns deep copies of the requested page. Pages start at 1.
func paginate(venues []domain.Venue, page, pageSize int) []domain.Venue {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		return []domain.Venue{}
	}
	start := (page - 1) * pageSize
	if start >= len(venues) {
		return []domain.Venue{}
	}
	end := min(start+pageSize, len(venues))
	return domain.CloneVenues(venues[start:end])
}

// VenueDetail returns the venue and whether it exists.
func (b *Backend) VenueDetail(ctx context.Context, venueID string) (domain.Venue, bool, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return domain.Venue{}, false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if idx := b.indexLocked(venueID); idx >= 0 {
		return b.venues[idx].Clone(), true, nil
	}
	if v, ok := b.suggestions[venueID]; ok {
		return v.Clone(), true, nil
	}
	return domain.Venue{}, false, nil
}

func (b *Backend) indexLocked(venueID string) int {
	return slices.IndexFunc(b.venues, func(v domain.Venue) bool { return v.ID == venueID })
}

// AddVenueSuggestion records a pending venue. Suggestions are reachable by id but
// stay out of listings until approved.
func (b *Backend) AddVenueSuggestion(ctx context.Context, s domain.VenueSuggestion) (domain.Venue, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return domain.Venue{}, err
	}
	v := domain.Venue{
		ID:               "new-" + uuid.NewString(),
		Name:             s.Name,
		City:             s.City,
		District:         s.District,
		Country:          "Türkiye",
		CoverPhotoURL:    suggestionCoverPhotoURL,
		IsOpen:           true,
		Categories:       []string{},
		PriceLevel:       domain.DefaultPriceLevel(),
		ShortDescription: s.Description,
		Lat:              s.Lat,
		Lng:              s.Lng,
	}
	if strings.TrimSpace(s.Address) != "" {
		v.Address = strPtr(s.Address)
	}
	b.mu.Lock()
	b.suggestions[v.ID] = v.Clone()
	b.mu.Unlock()
	return v, nil
}

// ClaimVenue records an ownership claim by the signed-in user.
func (b *Backend) ClaimVenue(ctx context.Context, venueID string) error {
	if err := b.wait(ctx, b.latency); err != nil {
		return err
	}
	userID := b.CurrentUserID()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.indexLocked(venueID) < 0 {
		if _, ok := b.suggestions[venueID]; !ok {
			return errVenueNotFound
		}
	}
	b.claims[venueID] = userID
	return nil
}

// ClaimedBy reports who claimed a venue.
func (b *Backend) ClaimedBy(venueID string) (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	userID, ok := b.claims[venueID]
	return userID, ok
}

// UpdateVenueProfile merges the update into the stored venue.
func (b *Backend) UpdateVenueProfile(ctx context.Context, venueID string, update domain.VenueProfileUpdate) (domain.Venue, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return domain.Venue{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.indexLocked(venueID)
	if idx < 0 {
		return domain.Venue{}, errVenueNotFound
	}
	v := b.venues[idx].Clone()
	if update.Name != nil {
		v.Name = *update.Name
	}
	if update.Description != nil {
		v.Description = strPtr(*update.Description)
	}
	if update.Categories != nil {
		v.Categories = append([]string(nil), update.Categories...)
	}
	if update.PriceLevel != nil {
		v.PriceLevel = *update.PriceLevel
	}
	b.venues[idx] = v
	return v.Clone(), nil
}

// UploadVenuePhoto stores nothing but the generated URL.
func (b *Backend) UploadVenuePhoto(ctx context.Context, venueID string) (string, error) {
	if err := b.wait(ctx, b.uploadLatency); err != nil {
		return "", err
	}
	photoURL := fmt.Sprintf("https://example.com/photos/%s/%d.jpg", venueID, b.now().UnixMilli())
	b.mu.Lock()
	if idx := b.indexLocked(venueID); idx >= 0 {
		b.venues[idx].Photos = append(b.venues[idx].Photos, photoURL)
	}
	b.mu.Unlock()
	return photoURL, nil
}

// ToggleFavorite flips the flag and returns the new value. Unknown ids return false.
func (b *Backend) ToggleFavorite(ctx context.Context, venueID string) (bool, error) {
	if err := b.wait(ctx, b.toggleLatency); err != nil {
		return false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.indexLocked(venueID)
	if idx < 0 {
		return false, nil
	}
	b.venues[idx].IsFavorite = !b.venues[idx].IsFavorite
	return b.venues[idx].IsFavorite, nil
}

// ToggleSave flips the saved flag and returns the new value. Unknown ids return false.
func (b *Backend) ToggleSave(ctx context.Context, venueID string) (bool, error) {
	if err := b.wait(ctx, b.toggleLatency); err != nil {
		return false, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := b.indexLocked(venueID)
	if idx < 0 {
		return false, nil
	}
	b.venues[idx].IsSaved = !b.venues[idx].IsSaved
	return b.venues[idx].IsSaved, nil
}

// Favorites returns every favorite venue. All list types share one list.
func (b *Backend) Favorites(ctx context.Context, _ domain.FavoriteListType) ([]domain.Venue, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []domain.Venue{}
	for _, v := range b.venues {
		if v.IsFavorite {
			out = append(out, v.Clone())
		}
	}
	return out, nil
}

func (b *Backend) SavedVenues(ctx context.Context) ([]domain.Venue, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []domain.Venue{}
	for _, v := range b.venues {
		if v.IsSaved {
			out = append(out, v.Clone())
		}
	}
	return out, nil
}
