package repository

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/mekedron/city-discovery/internal/gateway/api"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Login(ctx context.Context, req api.LoginRequest) (api.AuthResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(api.AuthResponse), args.Error(1)
}

func (m *MockAPI) Register(ctx context.Context, req api.RegisterRequest) (api.AuthResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(api.AuthResponse), args.Error(1)
}

func (m *MockAPI) RefreshToken(ctx context.Context, refreshToken string) (api.AuthResponse, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(api.AuthResponse), args.Error(1)
}

func (m *MockAPI) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAPI) UserByID(ctx context.Context, userID string) (api.UserDTO, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(api.UserDTO), args.Error(1)
}

func (m *MockAPI) UpdateUserProfile(ctx context.Context, userID string, req api.UpdateProfileRequest) (api.UserDTO, error) {
	args := m.Called(ctx, userID, req)
	return args.Get(0).(api.UserDTO), args.Error(1)
}

func (m *MockAPI) UserStats(ctx context.Context, userID string) (api.UserStatsDTO, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(api.UserStatsDTO), args.Error(1)
}

func (m *MockAPI) NearbyVenues(ctx context.Context, req api.NearbyRequest) (api.VenuesResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(api.VenuesResponse), args.Error(1)
}

func (m *MockAPI) SearchVenues(ctx context.Context, req api.SearchRequest) (api.VenuesResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(api.VenuesResponse), args.Error(1)
}

func (m *MockAPI) VenueByID(ctx context.Context, venueID string) (api.VenueDTO, error) {
	args := m.Called(ctx, venueID)
	return args.Get(0).(api.VenueDTO), args.Error(1)
}

func (m *MockAPI) AddVenueSuggestion(ctx context.Context, req api.VenueSuggestionRequest) (api.VenueDTO, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(api.VenueDTO), args.Error(1)
}

func (m *MockAPI) ClaimVenue(ctx context.Context, venueID string) error {
	return m.Called(ctx, venueID).Error(0)
}

func (m *MockAPI) UpdateVenue(ctx context.Context, venueID string, req api.UpdateVenueRequest) (api.VenueDTO, error) {
	args := m.Called(ctx, venueID, req)
	return args.Get(0).(api.VenueDTO), args.Error(1)
}

func (m *MockAPI) UploadVenuePhoto(ctx context.Context, venueID, fileName string, content io.Reader) (api.PhotoUploadResponse, error) {
	args := m.Called(ctx, venueID, fileName, content)
	return args.Get(0).(api.PhotoUploadResponse), args.Error(1)
}

func (m *MockAPI) ToggleFavorite(ctx context.Context, venueID string) (api.ToggleFavoriteResponse, error) {
	args := m.Called(ctx, venueID)
	return args.Get(0).(api.ToggleFavoriteResponse), args.Error(1)
}

func (m *MockAPI) ToggleSave(ctx context.Context, venueID string) (api.ToggleSaveResponse, error) {
	args := m.Called(ctx, venueID)
	return args.Get(0).(api.ToggleSaveResponse), args.Error(1)
}

func (m *MockAPI) Favorites(ctx context.Context, listType string) (api.FavoritesResponse, error) {
	args := m.Called(ctx, listType)
	return args.Get(0).(api.FavoritesResponse), args.Error(1)
}

func (m *MockAPI) SavedVenues(ctx context.Context) (api.FavoritesResponse, error) {
	args := m.Called(ctx)
	return args.Get(0).(api.FavoritesResponse), args.Error(1)
}

func (m *MockAPI) Reviews(ctx context.Context, venueID, sort string) (api.ReviewsResponse, error) {
	args := m.Called(ctx, venueID, sort)
	return args.Get(0).(api.ReviewsResponse), args.Error(1)
}

func (m *MockAPI) AddReview(ctx context.Context, req api.AddReviewRequest) (api.ReviewDTO, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(api.ReviewDTO), args.Error(1)
}

var _ api.API = (*MockAPI)(nil)
