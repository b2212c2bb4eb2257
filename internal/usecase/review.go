package usecase

import (
	"context"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/repository"
	"github.com/mekedron/city-discovery/internal/result"
)

type GetReviewsParams struct {
	VenueID string
	Sort    domain.ReviewSort
}

type GetReviews struct {
	reviews repository.ReviewRepository
}

func NewGetReviews(reviews repository.ReviewRepository) *GetReviews {
	return &GetReviews{reviews: reviews}
}

func (u *GetReviews) Execute(ctx context.Context, params GetReviewsParams) result.Result[[]domain.Review] {
	return u.reviews.GetReviews(ctx, params.VenueID, params.Sort)
}

type AddReview struct {
	reviews repository.ReviewRepository
}

func NewAddReview(reviews repository.ReviewRepository) *AddReview {
	return &AddReview{reviews: reviews}
}

func (u *AddReview) Execute(ctx context.Context, params domain.AddReviewParams) result.Result[domain.Review] {
	return u.reviews.AddReview(ctx, params)
}
