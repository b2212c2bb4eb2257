package repository

import (
	"context"
	"log/slog"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/gateway/api"
	"github.com/mekedron/city-discovery/internal/mapper"
	"github.com/mekedron/city-discovery/internal/result"
)

type LiveFavoriteRepository struct {
	api    api.API
	logger *slog.Logger
}

func NewLiveFavoriteRepository(client api.API, logger *slog.Logger) *LiveFavoriteRepository {
	return &LiveFavoriteRepository{api: client, logger: orDefault(logger)}
}

func (r *LiveFavoriteRepository) ToggleFavorite(ctx context.Context, venueID string) result.Result[bool] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[bool](result.FromError(err, msgToggleFailed))
	}
	return run(ctx, r.logger, "favorite.toggle", msgToggleFailed, func(ctx context.Context) (bool, error) {
		res, err := r.api.ToggleFavorite(ctx, venueID)
		if err != nil {
			return false, err
		}
		return res.IsFavorite, nil
	})
}

func (r *LiveFavoriteRepository) GetFavorites(ctx context.Context, listType domain.FavoriteListType) result.Result[[]domain.Venue] {
	return run(ctx, r.logger, "favorite.list", msgFavoritesFailed, func(ctx context.Context) ([]domain.Venue, error) {
		res, err := r.api.Favorites(ctx, string(listType))
		if err != nil {
			return nil, err
		}
		return mapper.VenuesFromDTOs(res.Venues), nil
	})
}

func (r *LiveFavoriteRepository) ToggleSave(ctx context.Context, venueID string) result.Result[bool] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[bool](result.FromError(err, msgToggleSaveFailed))
	}
	return run(ctx, r.logger, "favorite.toggle_save", msgToggleSaveFailed, func(ctx context.Context) (bool, error) {
		res, err := r.api.ToggleSave(ctx, venueID)
		if err != nil {
			return false, err
		}
		return res.IsSaved, nil
	})
}

func (r *LiveFavoriteRepository) GetSavedVenues(ctx context.Context) result.Result[[]domain.Venue] {
	return run(ctx, r.logger, "favorite.saved", msgSavedFailed, func(ctx context.Context) ([]domain.Venue, error) {
		res, err := r.api.SavedVenues(ctx)
		if err != nil {
			return nil, err
		}
		return mapper.VenuesFromDTOs(res.Venues), nil
	})
}
