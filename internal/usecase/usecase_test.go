package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mekedron/city-discovery/internal/domain"
	backend "github.com/mekedron/city-discovery/internal/mock"
	"github.com/mekedron/city-discovery/internal/repository"
	"github.com/mekedron/city-discovery/internal/result"
)

type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) GetNearby(ctx context.Context, params domain.NearbyParams) result.Result[[]domain.Venue] {
	return m.Called(ctx, params).Get(0).(result.Result[[]domain.Venue])
}

func (m *MockVenueRepository) SearchVenues(ctx context.Context, params domain.SearchParams) result.Result[[]domain.Venue] {
	return m.Called(ctx, params).Get(0).(result.Result[[]domain.Venue])
}

func (m *MockVenueRepository) GetVenueDetail(ctx context.Context, venueID string) result.Result[domain.Venue] {
	return m.Called(ctx, venueID).Get(0).(result.Result[domain.Venue])
}

func (m *MockVenueRepository) AddVenueSuggestion(ctx context.Context, s domain.VenueSuggestion) result.Result[domain.Venue] {
	return m.Called(ctx, s).Get(0).(result.Result[domain.Venue])
}

func (m *MockVenueRepository) ClaimVenue(ctx context.Context, venueID string) result.Result[repository.Unit] {
	return m.Called(ctx, venueID).Get(0).(result.Result[repository.Unit])
}

func (m *MockVenueRepository) UpdateVenueProfile(ctx context.Context, venueID string, update domain.VenueProfileUpdate) result.Result[domain.Venue] {
	return m.Called(ctx, venueID, update).Get(0).(result.Result[domain.Venue])
}

func (m *MockVenueRepository) UploadVenuePhoto(ctx context.Context, venueID string, photo repository.Photo) result.Result[string] {
	return m.Called(ctx, venueID, photo).Get(0).(result.Result[string])
}

func TestGetNearbyVenuesDelegatesOnce(t *testing.T) {
	repo := new(MockVenueRepository)
	params := domain.NearbyParams{Lat: 40.98, Lng: 29.02, Page: 1, PageSize: 10}
	repo.On("GetNearby", mock.Anything, params).
		Return(result.Success([]domain.Venue{{ID: "1"}})).Once()

	res := NewGetNearbyVenues(repo).Execute(context.Background(), params)

	require.True(t, res.IsSuccess())
	assert.Len(t, res.Value(), 1)
	repo.AssertExpectations(t)
}

func TestFailuresPassThroughUnchanged(t *testing.T) {
	repo := new(MockVenueRepository)
	repo.On("GetVenueDetail", mock.Anything, "999").
		Return(result.Fail[domain.Venue](result.NotFoundFailure, "Venue not found"))

	res := NewGetVenueDetail(repo).Execute(context.Background(), "999")

	require.True(t, res.IsFailure())
	assert.Equal(t, result.NotFoundFailure, res.Err().Kind)
	assert.Equal(t, "Venue not found", res.Err().Message)
}

func TestUpdateVenueProfileForwardsParams(t *testing.T) {
	repo := new(MockVenueRepository)
	name := "Moda Sahil"
	update := domain.VenueProfileUpdate{Name: &name}
	repo.On("UpdateVenueProfile", mock.Anything, "3", update).
		Return(result.Success(domain.Venue{ID: "3", Name: name}))

	res := NewUpdateVenueProfile(repo).Execute(context.Background(), UpdateVenueProfileParams{VenueID: "3", Update: update})

	require.True(t, res.IsSuccess())
	assert.Equal(t, name, res.Value().Name)
}

func TestUseCasesOverMockBackend(t *testing.T) {
	b := backend.NewBackend(backend.WithLatency(0), backend.WithFailureRate(0))
	favorites := repository.NewMockFavoriteRepository(b, nil)
	reviews := repository.NewMockReviewRepository(b, nil)
	auth := repository.NewMockAuthRepository(b, nil, nil)
	ctx := context.Background()

	toggled := NewToggleSave(favorites).Execute(ctx, "1")
	require.True(t, toggled.IsSuccess())
	assert.False(t, toggled.Value())

	saved := NewGetSavedVenues(favorites).Execute(ctx)
	require.True(t, saved.IsSuccess())
	assert.Len(t, saved.Value(), 3)

	list := NewGetReviews(reviews).Execute(ctx, GetReviewsParams{VenueID: "1", Sort: domain.ReviewSortRating})
	require.True(t, list.IsSuccess())
	assert.NotEmpty(t, list.Value())

	me := NewGetMe(auth).Execute(ctx)
	require.True(t, me.IsSuccess())
	assert.Equal(t, backend.SeedUserID, me.Value().ID)
}
