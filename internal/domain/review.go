package domain

import (
	"fmt"
	"strings"
	"time"
)

// Review is a user's rating of a venue.
type Review struct {
	ID            string    `json:"id" yaml:"id"`
	VenueID       string    `json:"venue_id" yaml:"venue_id"`
	UserID        string    `json:"user_id" yaml:"user_id"`
	UserName      string    `json:"user_name" yaml:"user_name"`
	UserAvatarURL *string   `json:"user_avatar_url,omitempty" yaml:"user_avatar_url,omitempty"`
	Rating        int       `json:"rating" yaml:"rating"`
	Text          string    `json:"text" yaml:"text"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// ReviewSort orders review listings.
type ReviewSort string

const (
	ReviewSortDate   ReviewSort = "date"
	ReviewSortRating ReviewSort = "rating"
)

// ParseReviewSort validates sort values; empty means date.
func ParseReviewSort(value string) (ReviewSort, error) {
	switch ReviewSort(strings.ToLower(strings.TrimSpace(value))) {
	case "", ReviewSortDate:
		return ReviewSortDate, nil
	case ReviewSortRating:
		return ReviewSortRating, nil
	default:
		return "", fmt.Errorf("invalid review sort %q", value)
	}
}

// AddReviewParams submit a review.
type AddReviewParams struct {
	VenueID string `validate:"required"`
	Rating  int    `validate:"min=1,max=5"`
	Text    string `validate:"required"`
}
