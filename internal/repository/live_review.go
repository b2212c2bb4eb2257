package repository

import (
	"context"
	"log/slog"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/gateway/api"
	"github.com/mekedron/city-discovery/internal/mapper"
	"github.com/mekedron/city-discovery/internal/result"
)

type LiveReviewRepository struct {
	api    api.API
	logger *slog.Logger
}

func NewLiveReviewRepository(client api.API, logger *slog.Logger) *LiveReviewRepository {
	return &LiveReviewRepository{api: client, logger: orDefault(logger)}
}

// GetReviews sorts client-side regardless of what the server did with the sort hint.
func (r *LiveReviewRepository) GetReviews(ctx context.Context, venueID string, sort domain.ReviewSort) result.Result[[]domain.Review] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[[]domain.Review](result.FromError(err, msgReviewsFailed))
	}
	return run(ctx, r.logger, "review.list", msgReviewsFailed, func(ctx context.Context) ([]domain.Review, error) {
		res, err := r.api.Reviews(ctx, venueID, string(sort))
		if err != nil {
			return nil, err
		}
		return sortReviews(mapper.ReviewsFromDTOs(res.Reviews), sort), nil
	})
}

func (r *LiveReviewRepository) AddReview(ctx context.Context, params domain.AddReviewParams) result.Result[domain.Review] {
	if err := validateParams(params); err != nil {
		return result.Failure[domain.Review](result.FromError(err, msgAddReviewFailed))
	}
	return run(ctx, r.logger, "review.add", msgAddReviewFailed, func(ctx context.Context) (domain.Review, error) {
		dto, err := r.api.AddReview(ctx, api.AddReviewRequest{
			VenueID: params.VenueID,
			Rating:  params.Rating,
			Text:    params.Text,
		})
		if err != nil {
			return domain.Review{}, err
		}
		return mapper.ReviewFromDTO(dto), nil
	})
}
