package repository

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/gateway/api"
	"github.com/mekedron/city-discovery/internal/result"
	"github.com/mekedron/city-discovery/internal/session"
)

func TestLiveLoginStoresTokensThenFetchesUser(t *testing.T) {
	m := new(MockAPI)
	s := session.New(nil)
	repo := NewLiveAuthRepository(m, s, nil)

	m.On("Login", mock.Anything, api.LoginRequest{Email: "elif@example.com", Password: "secret"}).
		Return(api.AuthResponse{UserID: "user1", Token: "access", RefreshToken: "refresh"}, nil)
	m.On("UserByID", mock.Anything, "user1").
		Return(api.UserDTO{ID: "user1", Email: "elif@example.com", Name: "Elif Yılmaz"}, nil)

	res := repo.Login(context.Background(), domain.LoginParams{Email: " elif@example.com ", Password: "secret"})

	require.True(t, res.IsSuccess())
	assert.Equal(t, "Elif Yılmaz", res.Value().Name)
	assert.Equal(t, "access", s.AccessToken())
	assert.Equal(t, "refresh", s.RefreshToken())
	assert.Equal(t, "user1", s.UserID())
	m.AssertExpectations(t)
}

func TestLiveLoginFailureKeepsUpstreamKind(t *testing.T) {
	m := new(MockAPI)
	repo := NewLiveAuthRepository(m, session.New(nil), nil)
	m.On("Login", mock.Anything, mock.Anything).
		Return(api.AuthResponse{}, &api.UpstreamRequestError{StatusCode: 401, Message: "Geçersiz e-posta veya şifre"})

	res := repo.Login(context.Background(), domain.LoginParams{Email: "a@b.co", Password: "x"})

	require.True(t, res.IsFailure())
	assert.Equal(t, result.AuthFailure, res.Err().Kind)
	assert.Equal(t, "Geçersiz e-posta veya şifre", res.Err().Message)
	m.AssertNotCalled(t, "UserByID", mock.Anything, mock.Anything)
}

func TestLiveGetMeWithoutSession(t *testing.T) {
	m := new(MockAPI)
	repo := NewLiveAuthRepository(m, session.New(nil), nil)

	res := repo.GetMe(context.Background())

	require.True(t, res.IsFailure())
	assert.Equal(t, result.AuthFailure, res.Err().Kind)
	assert.Equal(t, "Kullanıcı oturumu bulunamadı", res.Err().Message)
	m.AssertNotCalled(t, "UserByID", mock.Anything, mock.Anything)
}

func TestLiveLogoutClearsSessionEvenOnFailure(t *testing.T) {
	m := new(MockAPI)
	s := session.New(nil)
	require.NoError(t, s.Set(context.Background(), session.Tokens{UserID: "user1", AccessToken: "a"}))
	repo := NewLiveAuthRepository(m, s, nil)
	m.On("Logout", mock.Anything).Return(&api.UpstreamRequestError{StatusCode: 500})

	res := repo.Logout(context.Background())

	require.True(t, res.IsFailure())
	assert.Equal(t, result.NetworkFailure, res.Err().Kind)
	assert.True(t, s.Tokens().Empty())
}

func TestLiveRefreshTokenRotatesSession(t *testing.T) {
	m := new(MockAPI)
	s := session.New(nil)
	require.NoError(t, s.Set(context.Background(), session.Tokens{UserID: "user1", AccessToken: "old", RefreshToken: "r1"}))
	repo := NewLiveAuthRepository(m, s, nil)
	m.On("RefreshToken", mock.Anything, "r1").Return(api.AuthResponse{Token: "new", RefreshToken: "r2"}, nil)

	res := repo.RefreshToken(context.Background())

	require.True(t, res.IsSuccess())
	assert.Equal(t, "user1", res.Value().UserID)
	assert.Equal(t, "new", s.AccessToken())
	assert.Equal(t, "r2", s.RefreshToken())
}

func TestLiveStatsUseSessionUser(t *testing.T) {
	m := new(MockAPI)
	s := session.New(nil)
	require.NoError(t, s.Set(context.Background(), session.Tokens{UserID: "user1", AccessToken: "a"}))
	repo := NewLiveAuthRepository(m, s, nil)
	m.On("UserStats", mock.Anything, "user1").Return(api.UserStatsDTO{FavoritesCount: 45, ReviewsCount: 12, FollowersCount: 152}, nil)

	res := repo.GetUserStats(context.Background())

	require.True(t, res.IsSuccess())
	assert.Equal(t, 152, res.Value().FollowersCount)
}

func TestLiveVenueDetailNotFound(t *testing.T) {
	m := new(MockAPI)
	repo := NewLiveVenueRepository(m, nil)
	m.On("VenueByID", mock.Anything, "999").Return(api.VenueDTO{}, &api.UpstreamRequestError{StatusCode: 404})

	res := repo.GetVenueDetail(context.Background(), "999")

	require.True(t, res.IsFailure())
	assert.Equal(t, result.NotFoundFailure, res.Err().Kind)
	assert.Equal(t, "Venue not found", res.Err().Message)
}

func TestLiveNearbyMapsFiltersAndVenues(t *testing.T) {
	m := new(MockAPI)
	repo := NewLiveVenueRepository(m, nil)
	open := true
	m.On("NearbyVenues", mock.Anything, mock.MatchedBy(func(req api.NearbyRequest) bool {
		return req.Page == 1 && req.PageSize == 10 &&
			len(req.Filters.PriceLevels) == 1 && req.Filters.PriceLevels[0] == "$$" &&
			req.Filters.IsOpen != nil && *req.Filters.IsOpen
	})).Return(api.VenuesResponse{Venues: []api.VenueDTO{{ID: "1", VenueName: "Espresso Lab - Moda", PriceLevel: "$$"}}}, nil)

	res := repo.GetNearby(context.Background(), domain.NearbyParams{
		Lat: 40.98, Lng: 29.02, Page: 1, PageSize: 10,
		Filters: domain.VenueFilters{PriceLevels: []domain.PriceLevel{domain.PriceLevelMedium}, IsOpen: &open},
	})

	require.True(t, res.IsSuccess())
	require.Len(t, res.Value(), 1)
	assert.Equal(t, "Espresso Lab - Moda", res.Value()[0].Name)
	m.AssertExpectations(t)
}

func TestLiveNearbyUntypedErrorUsesFallbackKind(t *testing.T) {
	m := new(MockAPI)
	repo := NewLiveVenueRepository(m, nil)
	m.On("NearbyVenues", mock.Anything, mock.Anything).Return(api.VenuesResponse{}, errors.New("boom"))

	res := repo.GetNearby(context.Background(), domain.NearbyParams{Page: 1, PageSize: 10})

	require.True(t, res.IsFailure())
	assert.Equal(t, result.UnknownFailure, res.Err().Kind)
}

func TestValidationBlocksNetworkCalls(t *testing.T) {
	m := new(MockAPI)
	reviews := NewLiveReviewRepository(m, nil)
	venues := NewLiveVenueRepository(m, nil)
	ctx := context.Background()

	bad := reviews.AddReview(ctx, domain.AddReviewParams{VenueID: "1", Rating: 6, Text: "Güzel"})
	require.True(t, bad.IsFailure())
	assert.Equal(t, result.ValidationFailure, bad.Err().Kind)
	assert.Contains(t, bad.Err().Message, "rating")

	empty := reviews.AddReview(ctx, domain.AddReviewParams{VenueID: "1", Rating: 4})
	assert.Equal(t, result.ValidationFailure, empty.Err().Kind)

	suggestion := venues.AddVenueSuggestion(ctx, domain.VenueSuggestion{Name: "X", City: "İstanbul", District: "Kadıköy"})
	assert.Equal(t, result.ValidationFailure, suggestion.Err().Kind)
	assert.Equal(t, "address is required", suggestion.Err().Message)

	level := domain.PriceLevel("$$$$$")
	update := venues.UpdateVenueProfile(ctx, "1", domain.VenueProfileUpdate{PriceLevel: &level})
	assert.Equal(t, result.ValidationFailure, update.Err().Kind)

	m.AssertNotCalled(t, "AddReview", mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "AddVenueSuggestion", mock.Anything, mock.Anything)
	m.AssertNotCalled(t, "UpdateVenue", mock.Anything, mock.Anything, mock.Anything)
}

func TestLiveReviewsSortedClientSide(t *testing.T) {
	m := new(MockAPI)
	repo := NewLiveReviewRepository(m, nil)
	m.On("Reviews", mock.Anything, "1", mock.Anything).Return(api.ReviewsResponse{Reviews: []api.ReviewDTO{
		{ID: "a", Rating: 3, CreatedAt: "2024-01-03T00:00:00Z"},
		{ID: "b", Rating: 5, CreatedAt: "2024-01-01T00:00:00Z"},
		{ID: "c", Rating: 4, CreatedAt: "2024-01-02T00:00:00Z"},
	}}, nil)

	byRating := repo.GetReviews(context.Background(), "1", domain.ReviewSortRating)
	require.True(t, byRating.IsSuccess())
	assert.Equal(t, []string{"b", "c", "a"}, reviewIDs(byRating.Value()))

	byDate := repo.GetReviews(context.Background(), "1", domain.ReviewSortDate)
	assert.Equal(t, []string{"a", "c", "b"}, reviewIDs(byDate.Value()))
}

func reviewIDs(reviews []domain.Review) []string {
	ids := make([]string, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestLiveToggleFavoriteReturnsServerFlag(t *testing.T) {
	m := new(MockAPI)
	repo := NewLiveFavoriteRepository(m, nil)
	m.On("ToggleFavorite", mock.Anything, "2").Return(api.ToggleFavoriteResponse{IsFavorite: false}, nil)
	m.On("Favorites", mock.Anything, "WantToGo").Return(api.FavoritesResponse{Venues: []api.VenueDTO{{ID: "4"}}}, nil)

	toggled := repo.ToggleFavorite(context.Background(), "2")
	require.True(t, toggled.IsSuccess())
	assert.False(t, toggled.Value())

	list := repo.GetFavorites(context.Background(), domain.FavoriteListWantToGo)
	require.True(t, list.IsSuccess())
	assert.Len(t, list.Value(), 1)
}

type panickingAPI struct {
	MockAPI
}

func (p *panickingAPI) SavedVenues(context.Context) (api.FavoritesResponse, error) {
	panic("nil map write")
}

func TestPanicBecomesUnknownFailure(t *testing.T) {
	repo := NewLiveFavoriteRepository(&panickingAPI{}, nil)

	res := repo.GetSavedVenues(context.Background())

	require.True(t, res.IsFailure())
	assert.Equal(t, result.UnknownFailure, res.Err().Kind)
	assert.True(t, strings.HasPrefix(res.Err().Message, "Failed to get saved"))
}
