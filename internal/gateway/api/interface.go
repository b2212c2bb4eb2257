package api

import (
	"context"
	"io"
)

// API describes all backend operations used by the repositories.
type API interface {
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (AuthResponse, error)
	Logout(ctx context.Context) error
	UserByID(ctx context.Context, userID string) (UserDTO, error)
	UpdateUserProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserDTO, error)
	UserStats(ctx context.Context, userID string) (UserStatsDTO, error)

	NearbyVenues(ctx context.Context, req NearbyRequest) (VenuesResponse, error)
	SearchVenues(ctx context.Context, req SearchRequest) (VenuesResponse, error)
	VenueByID(ctx context.Context, venueID string) (VenueDTO, error)
	AddVenueSuggestion(ctx context.Context, req VenueSuggestionRequest) (VenueDTO, error)
	ClaimVenue(ctx context.Context, venueID string) error
	UpdateVenue(ctx context.Context, venueID string, req UpdateVenueRequest) (VenueDTO, error)
	UploadVenuePhoto(ctx context.Context, venueID, fileName string, content io.Reader) (PhotoUploadResponse, error)

	ToggleFavorite(ctx context.Context, venueID string) (ToggleFavoriteResponse, error)
	ToggleSave(ctx context.Context, venueID string) (ToggleSaveResponse, error)
	Favorites(ctx context.Context, listType string) (FavoritesResponse, error)
	SavedVenues(ctx context.Context) (FavoritesResponse, error)

	Reviews(ctx context.Context, venueID, sort string) (ReviewsResponse, error)
	AddReview(ctx context.Context, req AddReviewRequest) (ReviewDTO, error)
}

var _ API = (*Client)(nil)
