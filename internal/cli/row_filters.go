package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mekedron/city-discovery/internal/domain"
)

type venueRowSort string

const (
	venueRowSortRecommended venueRowSort = "recommended"
	venueRowSortRating      venueRowSort = "rating"
	venueRowSortDistance    venueRowSort = "distance"
	venueRowSortName        venueRowSort = "name"
)

type venueRowFilters struct {
	MinRatingSet bool
	MinRating    float64
	OpenOnly     bool
	PriceLevels  []domain.PriceLevel
}

func (f venueRowFilters) active() bool {
	return f.MinRatingSet || f.OpenOnly || len(f.PriceLevels) > 0
}

func applyVenueRowFilters(venues []domain.Venue, filters venueRowFilters) []domain.Venue {
	if len(venues) == 0 || !filters.active() {
		return venues
	}
	filtered := make([]domain.Venue, 0, len(venues))
	for _, v := range venues {
		if filters.MinRatingSet && v.RatingAverage < filters.MinRating {
			continue
		}
		if filters.OpenOnly && !v.IsOpen {
			continue
		}
		if len(filters.PriceLevels) > 0 && !slices.Contains(filters.PriceLevels, v.PriceLevel) {
			continue
		}
		filtered = append(filtered, v)
	}
	return filtered
}

func parsePriceLevels(raw []string) ([]domain.PriceLevel, error) {
	levels := make([]domain.PriceLevel, 0, len(raw))
	for _, value := range raw {
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			level, err := domain.ParsePriceLevel(part)
			if err != nil {
				return nil, fmt.Errorf("invalid --price value %q; expected one of: $, $$, $$$, $$$$", part)
			}
			levels = append(levels, level)
		}
	}
	return levels, nil
}

func parseVenueRowSort(raw string) (venueRowSort, error) {
	value := venueRowSort(strings.ToLower(strings.TrimSpace(raw)))
	if value == "" {
		return venueRowSortRecommended, nil
	}
	switch value {
	case venueRowSortRecommended, venueRowSortRating, venueRowSortDistance, venueRowSortName:
		return value, nil
	default:
		return "", fmt.Errorf("invalid --sort value %q; expected one of: recommended, rating, distance, name", raw)
	}
}

// sortVenueRows keeps backend order for recommended.
func sortVenueRows(venues []domain.Venue, sortMode venueRowSort) {
	if len(venues) == 0 || sortMode == venueRowSortRecommended {
		return
	}
	slices.SortStableFunc(venues, func(a, b domain.Venue) int {
		switch sortMode {
		case venueRowSortRating:
			return compareFloatDesc(a.RatingAverage, b.RatingAverage)
		case venueRowSortDistance:
			return compareFloatAsc(a.DistanceMeters, b.DistanceMeters)
		case venueRowSortName:
			return strings.Compare(strings.ToLower(strings.TrimSpace(a.Name)), strings.ToLower(strings.TrimSpace(b.Name)))
		default:
			return 0
		}
	})
}

func compareFloatAsc(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloatDesc(a, b float64) int {
	return compareFloatAsc(b, a)
}
