package domain

import (
	"fmt"
	"strings"
)

// PriceLevel is the venue price bracket shown as dollar signs.
type PriceLevel string

const (
	PriceLevelLow      PriceLevel = "$"
	PriceLevelMedium   PriceLevel = "$$"
	PriceLevelHigh     PriceLevel = "$$$"
	PriceLevelPremium  PriceLevel = "$$$$"
	defaultPriceLevel             = PriceLevelMedium
)

// Valid reports whether p is one of the four known levels.
func (p PriceLevel) Valid() bool {
	switch p {
	case PriceLevelLow, PriceLevelMedium, PriceLevelHigh, PriceLevelPremium:
		return true
	default:
		return false
	}
}

// ParsePriceLevel validates price level values.
func ParsePriceLevel(value string) (PriceLevel, error) {
	level := PriceLevel(strings.TrimSpace(value))
	if !level.Valid() {
		return "", fmt.Errorf("invalid price level %q", value)
	}
	return level, nil
}

// DefaultPriceLevel is used for venues created without an explicit level.
func DefaultPriceLevel() PriceLevel {
	return defaultPriceLevel
}

// Venue is the UI-stable venue shape.
type Venue struct {
	ID               string     `json:"id" yaml:"id"`
	Name             string     `json:"name" yaml:"name"`
	City             string     `json:"city" yaml:"city"`
	District         string     `json:"district" yaml:"district"`
	Country          string     `json:"country" yaml:"country"`
	CoverPhotoURL    string     `json:"cover_photo_url" yaml:"cover_photo_url"`
	RatingAverage    float64    `json:"rating_average" yaml:"rating_average"`
	RatingCount      int        `json:"rating_count" yaml:"rating_count"`
	IsOpen           bool       `json:"is_open" yaml:"is_open"`
	Categories       []string   `json:"categories" yaml:"categories"`
	PriceLevel       PriceLevel `json:"price_level" yaml:"price_level"`
	DistanceMeters   float64    `json:"distance_meters" yaml:"distance_meters"`
	ShortDescription string     `json:"short_description" yaml:"short_description"`
	IsFavorite       bool       `json:"is_favorite" yaml:"is_favorite"`
	IsSaved          bool       `json:"is_saved" yaml:"is_saved"`
	Lat              *float64   `json:"lat,omitempty" yaml:"lat,omitempty"`
	Lng              *float64   `json:"lng,omitempty" yaml:"lng,omitempty"`

	// Detail-only fields.
	Photos       []string `json:"photos,omitempty" yaml:"photos,omitempty"`
	OpeningHours *string  `json:"opening_hours,omitempty" yaml:"opening_hours,omitempty"`
	PhoneNumber  *string  `json:"phone_number,omitempty" yaml:"phone_number,omitempty"`
	Address      *string  `json:"address,omitempty" yaml:"address,omitempty"`
	Description  *string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Clone returns a deep copy so callers can hand out venues without sharing slices.
func (v Venue) Clone() Venue {
	out := v
	out.Categories = cloneStrings(v.Categories)
	out.Photos = cloneStrings(v.Photos)
	out.Lat = cloneFloat(v.Lat)
	out.Lng = cloneFloat(v.Lng)
	out.OpeningHours = cloneString(v.OpeningHours)
	out.PhoneNumber = cloneString(v.PhoneNumber)
	out.Address = cloneString(v.Address)
	out.Description = cloneString(v.Description)
	return out
}

// HasCategory reports exact category membership.
func (v Venue) HasCategory(category string) bool {
	for _, c := range v.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Coordinates returns the venue location when both coordinates are known.
func (v Venue) Coordinates() (Location, bool) {
	if v.Lat == nil || v.Lng == nil {
		return Location{}, false
	}
	return Location{Lat: *v.Lat, Lng: *v.Lng}, true
}

// CloneVenues deep-copies a venue slice.
func CloneVenues(venues []Venue) []Venue {
	if venues == nil {
		return nil
	}
	out := make([]Venue, len(venues))
	for i, v := range venues {
		out[i] = v.Clone()
	}
	return out
}

// VenueFilters narrows nearby and search listings.
type VenueFilters struct {
	Categories  []string     `json:"categories,omitempty"`
	PriceLevels []PriceLevel `json:"price_levels,omitempty"`
	IsOpen      *bool        `json:"is_open,omitempty"`
}

// NearbyParams requests one page of venues around a point.
type NearbyParams struct {
	Lat      float64
	Lng      float64
	Filters  VenueFilters
	Page     int
	PageSize int
}

// SearchParams requests one page of venues matching a query.
type SearchParams struct {
	Query    string
	Filters  VenueFilters
	Page     int
	PageSize int
}

// VenueSuggestion is a user-submitted new venue.
type VenueSuggestion struct {
	Name        string   `validate:"required"`
	Address     string   `validate:"required"`
	City        string   `validate:"required"`
	District    string   `validate:"required"`
	Description string
	Lat         *float64 `validate:"omitempty,latitude"`
	Lng         *float64 `validate:"omitempty,longitude"`
}

// VenueProfileUpdate patches owner-editable venue fields. Nil fields are left unchanged.
type VenueProfileUpdate struct {
	Name        *string     `validate:"omitempty,min=1"`
	Description *string
	Categories  []string    `validate:"omitempty,dive,required"`
	PriceLevel  *PriceLevel `validate:"omitempty,pricelevel"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneFloat(in *float64) *float64 {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}

func cloneString(in *string) *string {
	if in == nil {
		return nil
	}
	v := *in
	return &v
}
