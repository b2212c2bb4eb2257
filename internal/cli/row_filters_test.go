package cli

import (
	"testing"

	"github.com/mekedron/city-discovery/internal/domain"
)

func sampleRows() []domain.Venue {
	return []domain.Venue{
		{ID: "1", Name: "moda sahil", RatingAverage: 4.2, IsOpen: true, PriceLevel: domain.PriceLevelMedium, DistanceMeters: 900},
		{ID: "2", Name: "Arka Oda", RatingAverage: 4.8, IsOpen: false, PriceLevel: domain.PriceLevelHigh, DistanceMeters: 300},
		{ID: "3", Name: "Kronotrop", RatingAverage: 3.9, IsOpen: true, PriceLevel: domain.PriceLevelLow, DistanceMeters: 1200},
	}
}

func rowIDs(venues []domain.Venue) string {
	out := ""
	for _, v := range venues {
		out += v.ID
	}
	return out
}

func TestApplyVenueRowFilters(t *testing.T) {
	rows := sampleRows()

	if got := rowIDs(applyVenueRowFilters(rows, venueRowFilters{})); got != "123" {
		t.Fatalf("expected no filtering without options, got %s", got)
	}
	if got := rowIDs(applyVenueRowFilters(rows, venueRowFilters{MinRatingSet: true, MinRating: 4.0})); got != "12" {
		t.Fatalf("unexpected min rating rows %s", got)
	}
	if got := rowIDs(applyVenueRowFilters(rows, venueRowFilters{OpenOnly: true})); got != "13" {
		t.Fatalf("unexpected open rows %s", got)
	}
	filters := venueRowFilters{PriceLevels: []domain.PriceLevel{domain.PriceLevelLow, domain.PriceLevelHigh}}
	if got := rowIDs(applyVenueRowFilters(rows, filters)); got != "23" {
		t.Fatalf("unexpected price rows %s", got)
	}
}

func TestSortVenueRows(t *testing.T) {
	cases := []struct {
		mode venueRowSort
		want string
	}{
		{venueRowSortRecommended, "123"},
		{venueRowSortRating, "213"},
		{venueRowSortDistance, "213"},
		{venueRowSortName, "231"},
	}
	for _, tc := range cases {
		rows := sampleRows()
		sortVenueRows(rows, tc.mode)
		if got := rowIDs(rows); got != tc.want {
			t.Fatalf("sort %s: expected %s, got %s", tc.mode, tc.want, got)
		}
	}
}

func TestParseVenueRowSort(t *testing.T) {
	got, err := parseVenueRowSort(" Rating ")
	if err != nil || got != venueRowSortRating {
		t.Fatalf("expected rating sort, got %q (%v)", got, err)
	}
	if got, _ := parseVenueRowSort(""); got != venueRowSortRecommended {
		t.Fatalf("expected recommended default, got %q", got)
	}
	if _, err := parseVenueRowSort("price"); err == nil {
		t.Fatal("expected unknown sort to fail")
	}
}

func TestParsePriceLevels(t *testing.T) {
	levels, err := parsePriceLevels([]string{"$,$$", " $$$$ "})
	if err != nil {
		t.Fatalf("parsePriceLevels: %v", err)
	}
	if len(levels) != 3 || levels[2] != domain.PriceLevelPremium {
		t.Fatalf("unexpected levels %v", levels)
	}
	if _, err := parsePriceLevels([]string{"cheap"}); err == nil {
		t.Fatal("expected invalid price level to fail")
	}
}
