package repository

import (
	"context"
	"log/slog"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/mock"
	"github.com/mekedron/city-discovery/internal/result"
)

// MockAuthRepository serves auth from the in-memory backend. It mirrors the
// signed-in user into the session so status checks behave like the live path.
type MockAuthRepository struct {
	backend *mock.Backend
	session Session
	logger  *slog.Logger
}

func NewMockAuthRepository(backend *mock.Backend, session Session, logger *slog.Logger) *MockAuthRepository {
	return &MockAuthRepository{backend: backend, session: session, logger: orDefault(logger)}
}

func (r *MockAuthRepository) remember(ctx context.Context, user domain.User) {
	if r.session == nil {
		return
	}
	if err := storeTokens(ctx, r.session, user.ID, "mock-token-"+user.ID, ""); err != nil {
		r.logger.Warn("session not persisted", "error", err)
	}
}

func (r *MockAuthRepository) Register(ctx context.Context, params domain.RegisterParams) result.Result[domain.User] {
	return run(ctx, r.logger, "auth.register", msgRegisterFailed, func(ctx context.Context) (domain.User, error) {
		user, err := r.backend.Register(ctx, params)
		if err != nil {
			return domain.User{}, err
		}
		r.remember(ctx, user)
		return user, nil
	})
}

func (r *MockAuthRepository) Login(ctx context.Context, params domain.LoginParams) result.Result[domain.User] {
	return run(ctx, r.logger, "auth.login", msgLoginFailed, func(ctx context.Context) (domain.User, error) {
		user, err := r.backend.Login(ctx, params)
		if err != nil {
			return domain.User{}, err
		}
		r.remember(ctx, user)
		return user, nil
	})
}

func (r *MockAuthRepository) Logout(ctx context.Context) result.Result[Unit] {
	return run(ctx, r.logger, "auth.logout", msgLogoutFailed, func(ctx context.Context) (Unit, error) {
		err := r.backend.Logout(ctx)
		if r.session != nil {
			if clearErr := r.session.Clear(ctx); clearErr != nil {
				r.logger.Warn("session not cleared", "error", clearErr)
			}
		}
		return Unit{}, err
	})
}

func (r *MockAuthRepository) GetMe(ctx context.Context) result.Result[domain.User] {
	return run(ctx, r.logger, "auth.me", msgMeFailed, r.backend.Me)
}

func (r *MockAuthRepository) RefreshToken(ctx context.Context) result.Result[domain.AuthTokens] {
	return run(ctx, r.logger, "auth.refresh", msgRefreshFailed, func(ctx context.Context) (domain.AuthTokens, error) {
		userID := r.backend.CurrentUserID()
		return domain.AuthTokens{UserID: userID, AccessToken: "mock-token-" + userID}, nil
	})
}

func (r *MockAuthRepository) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) result.Result[domain.User] {
	return run(ctx, r.logger, "auth.update_profile", msgProfileFailed, func(ctx context.Context) (domain.User, error) {
		return r.backend.UpdateProfile(ctx, r.backend.CurrentUserID(), update)
	})
}

func (r *MockAuthRepository) GetUserStats(ctx context.Context) result.Result[domain.UserStats] {
	return run(ctx, r.logger, "auth.stats", msgStatsFailed, func(ctx context.Context) (domain.UserStats, error) {
		return r.backend.Stats(ctx, r.backend.CurrentUserID())
	})
}

type MockVenueRepository struct {
	backend *mock.Backend
	logger  *slog.Logger
}

func NewMockVenueRepository(backend *mock.Backend, logger *slog.Logger) *MockVenueRepository {
	return &MockVenueRepository{backend: backend, logger: orDefault(logger)}
}

func (r *MockVenueRepository) GetNearby(ctx context.Context, params domain.NearbyParams) result.Result[[]domain.Venue] {
	return run(ctx, r.logger, "venue.nearby", msgNearbyFailed, func(ctx context.Context) ([]domain.Venue, error) {
		return r.backend.Nearby(ctx, params)
	})
}

func (r *MockVenueRepository) SearchVenues(ctx context.Context, params domain.SearchParams) result.Result[[]domain.Venue] {
	return run(ctx, r.logger, "venue.search", msgSearchFailed, func(ctx context.Context) ([]domain.Venue, error) {
		return r.backend.Search(ctx, params)
	})
}

func (r *MockVenueRepository) GetVenueDetail(ctx context.Context, venueID string) result.Result[domain.Venue] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[domain.Venue](result.FromError(err, msgDetailFailed))
	}
	return run(ctx, r.logger, "venue.detail", msgDetailFailed, func(ctx context.Context) (domain.Venue, error) {
		venue, found, err := r.backend.VenueDetail(ctx, venueID)
		if err != nil {
			return domain.Venue{}, err
		}
		if !found {
			return domain.Venue{}, result.NewError(result.NotFoundFailure, msgVenueNotFound)
		}
		return venue, nil
	})
}

func (r *MockVenueRepository) AddVenueSuggestion(ctx context.Context, s domain.VenueSuggestion) result.Result[domain.Venue] {
	if err := validateParams(s); err != nil {
		return result.Failure[domain.Venue](result.FromError(err, msgSuggestionFailed))
	}
	return run(ctx, r.logger, "venue.suggest", msgSuggestionFailed, func(ctx context.Context) (domain.Venue, error) {
		return r.backend.AddVenueSuggestion(ctx, s)
	})
}

func (r *MockVenueRepository) ClaimVenue(ctx context.Context, venueID string) result.Result[Unit] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[Unit](result.FromError(err, msgClaimFailed))
	}
	return run(ctx, r.logger, "venue.claim", msgClaimFailed, func(ctx context.Context) (Unit, error) {
		return Unit{}, r.backend.ClaimVenue(ctx, venueID)
	})
}

func (r *MockVenueRepository) UpdateVenueProfile(ctx context.Context, venueID string, update domain.VenueProfileUpdate) result.Result[domain.Venue] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[domain.Venue](result.FromError(err, msgUpdateFailed))
	}
	if err := validateParams(update); err != nil {
		return result.Failure[domain.Venue](result.FromError(err, msgUpdateFailed))
	}
	return run(ctx, r.logger, "venue.update", msgUpdateFailed, func(ctx context.Context) (domain.Venue, error) {
		return r.backend.UpdateVenueProfile(ctx, venueID, update)
	})
}

func (r *MockVenueRepository) UploadVenuePhoto(ctx context.Context, venueID string, photo Photo) result.Result[string] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[string](result.FromError(err, msgUploadFailed))
	}
	if photo.Content == nil {
		return result.Fail[string](result.ValidationFailure, "photo is required")
	}
	return run(ctx, r.logger, "venue.upload_photo", msgUploadFailed, func(ctx context.Context) (string, error) {
		return r.backend.UploadVenuePhoto(ctx, venueID)
	})
}

type MockReviewRepository struct {
	backend *mock.Backend
	logger  *slog.Logger
}

func NewMockReviewRepository(backend *mock.Backend, logger *slog.Logger) *MockReviewRepository {
	return &MockReviewRepository{backend: backend, logger: orDefault(logger)}
}

func (r *MockReviewRepository) GetReviews(ctx context.Context, venueID string, sort domain.ReviewSort) result.Result[[]domain.Review] {
	if err := requireVenueID(venueID); err != nil {
		return result.Failure[[]domain.Review](result.FromError(err, msgReviewsFailed))
	}
	return run(ctx, r.logger, "review.list", msgReviewsFailed, func(ctx context.Context) ([]domain.Review, error) {
		reviews, err := r.backend.Reviews(ctx, venueID)
		if err != nil {
			return nil, err
		}
		return sortReviews(reviews, sort), nil
	})
}

func (r *MockReviewRepository) AddReview(ctx context.Context, params domain.AddReviewParams) result.Result[domain.Review] {
	if err := validateParams(params); err != nil {
		return result.Failure[domain.Review](result.FromError(err, msgAddReviewFailed))
	}
	return run(ctx, r.logger, "review.add", msgAddReviewFailed, func(ctx context.Context) (domain.Review, error) {
		return r.backend.AddReview(ctx, params)
	})
}

type MockFavoriteRepository struct {
	backend *mock.Backend
	logger  *slog.Logger
}

func NewMockFavoriteRepository(backend *mock.Backend, logger *slog.Logger) *MockFavoriteRepository {
	return &MockFavoriteRepository{backend: backend, logger: orDefault(logger)}
}

func (r *MockFavoriteRepository) ToggleFavorite(ctx context.Context, venueID string) result.Result[bool] {
	return run(ctx, r.logger, "favorite.toggle", msgToggleFailed, func(ctx context.Context) (bool, error) {
		return r.backend.ToggleFavorite(ctx, venueID)
	})
}

func (r *MockFavoriteRepository) GetFavorites(ctx context.Context, listType domain.FavoriteListType) result.Result[[]domain.Venue] {
	return run(ctx, r.logger, "favorite.list", msgFavoritesFailed, func(ctx context.Context) ([]domain.Venue, error) {
		return r.backend.Favorites(ctx, listType)
	})
}

func (r *MockFavoriteRepository) ToggleSave(ctx context.Context, venueID string) result.Result[bool] {
	return run(ctx, r.logger, "favorite.toggle_save", msgToggleSaveFailed, func(ctx context.Context) (bool, error) {
		return r.backend.ToggleSave(ctx, venueID)
	})
}

func (r *MockFavoriteRepository) GetSavedVenues(ctx context.Context) result.Result[[]domain.Venue] {
	return run(ctx, r.logger, "favorite.saved", msgSavedFailed, r.backend.SavedVenues)
}

var (
	_ AuthRepository     = (*LiveAuthRepository)(nil)
	_ AuthRepository     = (*MockAuthRepository)(nil)
	_ VenueRepository    = (*LiveVenueRepository)(nil)
	_ VenueRepository    = (*MockVenueRepository)(nil)
	_ ReviewRepository   = (*LiveReviewRepository)(nil)
	_ ReviewRepository   = (*MockReviewRepository)(nil)
	_ FavoriteRepository = (*LiveFavoriteRepository)(nil)
	_ FavoriteRepository = (*MockFavoriteRepository)(nil)
)
