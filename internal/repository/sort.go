package repository

import (
	"cmp"
	"slices"

	"github.com/mekedron/city-discovery/internal/domain"
)

// sortReviews orders by rating descending for ReviewSortRating, otherwise newest first.
// Ties keep their original order.
func sortReviews(reviews []domain.Review, sort domain.ReviewSort) []domain.Review {
	if sort == domain.ReviewSortRating {
		slices.SortStableFunc(reviews, func(a, b domain.Review) int {
			return cmp.Compare(b.Rating, a.Rating)
		})
		return reviews
	}
	slices.SortStableFunc(reviews, func(a, b domain.Review) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return reviews
}
