package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/gateway/api"
	"github.com/mekedron/city-discovery/internal/mapper"
	"github.com/mekedron/city-discovery/internal/result"
)

type LiveVenueRepository struct {
	api    api.API
	logger *slog.Logger
}

func NewLiveVenueRepository(client api.API, logger *slog.Logger) *LiveVenueRepository {
	return &LiveVenueRepository{api: client, logger: orDefault(logger)}
}

func filterQuery(filters domain.VenueFilters) api.VenueFilterQuery {
	levels := make([]string, 0, len(filters.PriceLevels))
	for _, level := range filters.PriceLevels {
		levels = append(levels, string(level))
	}
	return api.VenueFilterQuery{
		Categories:  filters.Categories,
		PriceLevels: levels,
		IsOpen:      filters.IsOpen,
	}
}

func (r *LiveVenueRepository) GetNearby(ctx context.Context, params domain.NearbyParams) result.Result[[]domain.Venue] {
	return run(ctx, r.logger, "venue.nearby", msgNearbyFailed, func(ctx context.Context) ([]domain.Venue, error) {
		res, err := r.api.NearbyVenues(ctx, api.NearbyRequest{
			Lat:      params.Lat,
			Lng:      params.Lng,
			Filters:  filterQuery(params.Filters),
			Page:     params.Page,
			PageSize: params.PageSize,
		})
		if err != nil {
			return nil, err
		}
		return mapper.VenuesFromDTOs(res.Venues), nil
	})
}

func (r *LiveVenueRepository) SearchVenues(ctx context.Context, params domain.SearchParams) result.Result[[]domain.Venue] {
	return run(ctx, r.logger, "venue.search", msgSearchFailed, func(ctx context.Context) ([]domain.Venue, error) {
		res, err := r.api.SearchVenues(ctx, api.SearchRequest{
			Query:    params.Query,
			Filters:  filterQuery(params.Filters),
			Page:     params.Page,
			PageSize: params.PageSize,
		})
		if err != nil {
			return nil, err
		}
		return mapper.VenuesFromDTOs(res.Venues), nil
	})
}

// GetVenueDetail reports a missing venue as NotFoundFailure "Venue not found".
func (r *LiveVenueRepository) GetVenueDetail(ctx context.Context, venueID string) result.Result[domain.Venue] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[domain.Venue](result.FromError(err, msgDetailFailed))
	}
	return run(ctx, r.logger, "venue.detail", msgDetailFailed, func(ctx context.Context) (domain.Venue, error) {
		dto, err := r.api.VenueByID(ctx, venueID)
		if err != nil {
			var upstreamErr *api.UpstreamRequestError
			if errors.As(err, &upstreamErr) && upstreamErr.Kind() == result.NotFoundFailure {
				return domain.Venue{}, result.NewError(result.NotFoundFailure, msgVenueNotFound)
			}
			return domain.Venue{}, err
		}
		return mapper.VenueFromDTO(dto), nil
	})
}

func (r *LiveVenueRepository) AddVenueSuggestion(ctx context.Context, s domain.VenueSuggestion) result.Result[domain.Venue] {
	if err := validateParams(s); err != nil {
		return result.Failure[domain.Venue](result.FromError(err, msgSuggestionFailed))
	}
	return run(ctx, r.logger, "venue.suggest", msgSuggestionFailed, func(ctx context.Context) (domain.Venue, error) {
		dto, err := r.api.AddVenueSuggestion(ctx, api.VenueSuggestionRequest{
			Name:        s.Name,
			Address:     s.Address,
			City:        s.City,
			District:    s.District,
			Description: s.Description,
			Lat:         s.Lat,
			Lng:         s.Lng,
		})
		if err != nil {
			return domain.Venue{}, err
		}
		return mapper.VenueFromDTO(dto), nil
	})
}

func (r *LiveVenueRepository) ClaimVenue(ctx context.Context, venueID string) result.Result[Unit] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[Unit](result.FromError(err, msgClaimFailed))
	}
	return run(ctx, r.logger, "venue.claim", msgClaimFailed, func(ctx context.Context) (Unit, error) {
		return Unit{}, r.api.ClaimVenue(ctx, venueID)
	})
}

func (r *LiveVenueRepository) UpdateVenueProfile(ctx context.Context, venueID string, update domain.VenueProfileUpdate) result.Result[domain.Venue] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[domain.Venue](result.FromError(err, msgUpdateFailed))
	}
	if err := validateParams(update); err != nil {
		return result.Failure[domain.Venue](result.FromError(err, msgUpdateFailed))
	}
	return run(ctx, r.logger, "venue.update", msgUpdateFailed, func(ctx context.Context) (domain.Venue, error) {
		req := api.UpdateVenueRequest{
			Name:        update.Name,
			Description: update.Description,
			Categories:  update.Categories,
		}
		if update.PriceLevel != nil {
			level := string(*update.PriceLevel)
			req.PriceLevel = &level
		}
		dto, err := r.api.UpdateVenue(ctx, venueID, req)
		if err != nil {
			return domain.Venue{}, err
		}
		return mapper.VenueFromDTO(dto), nil
	})
}

func (r *LiveVenueRepository) UploadVenuePhoto(ctx context.Context, venueID string, photo Photo) result.Result[string] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[string](result.FromError(err, msgUploadFailed))
	}
	if photo.Content == nil {
		return result.Fail[string](result.ValidationFailure, "photo is required")
	}
	return run(ctx, r.logger, "venue.upload_photo", msgUploadFailed, func(ctx context.Context) (string, error) {
		res, err := r.api.UploadVenuePhoto(ctx, venueID, photo.FileName, photo.Content)
		if err != nil {
			return "", err
		}
		return res.PhotoURL, nil
	})
}
