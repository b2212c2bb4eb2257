// Package usecase holds one type per user-facing operation. Each delegates to a
// single repository method so view-models depend on intent, not on storage.
package usecase

import (
	"context"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/repository"
	"github.com/mekedron/city-discovery/internal/result"
)

type GetNearbyVenues struct {
	venues repository.VenueRepository
}

func NewGetNearbyVenues(venues repository.VenueRepository) *GetNearbyVenues {
	return &GetNearbyVenues{venues: venues}
}

func (u *GetNearbyVenues) Execute(ctx context.Context, params domain.NearbyParams) result.Result[[]domain.Venue] {
	return u.venues.GetNearby(ctx, params)
}

type SearchVenues struct {
	venues repository.VenueRepository
}

func NewSearchVenues(venues repository.VenueRepository) *SearchVenues {
	return &SearchVenues{venues: venues}
}

func (u *SearchVenues) Execute(ctx context.Context, params domain.SearchParams) result.Result[[]domain.Venue] {
	return u.venues.SearchVenues(ctx, params)
}

type GetVenueDetail struct {
	venues repository.VenueRepository
}

func NewGetVenueDetail(venues repository.VenueRepository) *GetVenueDetail {
	return &GetVenueDetail{venues: venues}
}

func (u *GetVenueDetail) Execute(ctx context.Context, venueID string) result.Result[domain.Venue] {
	return u.venues.GetVenueDetail(ctx, venueID)
}

type AddVenueSuggestion struct {
	venues repository.VenueRepository
}

func NewAddVenueSuggestion(venues repository.VenueRepository) *AddVenueSuggestion {
	return &AddVenueSuggestion{venues: venues}
}

func (u *AddVenueSuggestion) Execute(ctx context.Context, suggestion domain.VenueSuggestion) result.Result[domain.Venue] {
	return u.venues.AddVenueSuggestion(ctx, suggestion)
}

type ClaimVenue struct {
	venues repository.VenueRepository
}

func NewClaimVenue(venues repository.VenueRepository) *ClaimVenue {
	return &ClaimVenue{venues: venues}
}

func (u *ClaimVenue) Execute(ctx context.Context, venueID string) result.Result[repository.Unit] {
	return u.venues.ClaimVenue(ctx, venueID)
}

// UpdateVenueProfileParams pairs a venue with the fields to change.
type UpdateVenueProfileParams struct {
	VenueID string
	Update  domain.VenueProfileUpdate
}

type UpdateVenueProfile struct {
	venues repository.VenueRepository
}

func NewUpdateVenueProfile(venues repository.VenueRepository) *UpdateVenueProfile {
	return &UpdateVenueProfile{venues: venues}
}

func (u *UpdateVenueProfile) Execute(ctx context.Context, params UpdateVenueProfileParams) result.Result[domain.Venue] {
	return u.venues.UpdateVenueProfile(ctx, params.VenueID, params.Update)
}

// UploadVenuePhotoParams pairs a venue with the image to attach.
type UploadVenuePhotoParams struct {
	VenueID string
	Photo   repository.Photo
}

type UploadVenuePhoto struct {
	venues repository.VenueRepository
}

func NewUploadVenuePhoto(venues repository.VenueRepository) *UploadVenuePhoto {
	return &UploadVenuePhoto{venues: venues}
}

// Execute returns the URL of the stored photo.
func (u *UploadVenuePhoto) Execute(ctx context.Context, params UploadVenuePhotoParams) result.Result[string] {
	return u.venues.UploadVenuePhoto(ctx, params.VenueID, params.Photo)
}
