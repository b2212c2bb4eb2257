// Package repository exposes the data operations used by use-cases. Each interface has
// a Live implementation backed by the HTTP API and a Mock implementation backed by the
// in-memory backend; the composition root picks one.
package repository

import (
	"context"
	"io"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/result"
)

// Unit is the success value of operations that return nothing.
type Unit = struct{}

type AuthRepository interface {
	Register(ctx context.Context, params domain.RegisterParams) result.Result[domain.User]
	Login(ctx context.Context, params domain.LoginParams) result.Result[domain.User]
	Logout(ctx context.Context) result.Result[Unit]
	GetMe(ctx context.Context) result.Result[domain.User]
	RefreshToken(ctx context.Context) result.Result[domain.AuthTokens]
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) result.Result[domain.User]
	GetUserStats(ctx context.Context) result.Result[domain.UserStats]
}

type VenueRepository interface {
	GetNearby(ctx context.Context, params domain.NearbyParams) result.Result[[]domain.Venue]
	SearchVenues(ctx context.Context, params domain.SearchParams) result.Result[[]domain.Venue]
	GetVenueDetail(ctx context.Context, venueID string) result.Result[domain.Venue]
	AddVenueSuggestion(ctx context.Context, suggestion domain.VenueSuggestion) result.Result[domain.Venue]
	ClaimVenue(ctx context.Context, venueID string) result.Result[Unit]
	UpdateVenueProfile(ctx context.Context, venueID string, update domain.VenueProfileUpdate) result.Result[domain.Venue]
	UploadVenuePhoto(ctx context.Context, venueID string, photo Photo) result.Result[string]
}

type ReviewRepository interface {
	GetReviews(ctx context.Context, venueID string, sort domain.ReviewSort) result.Result[[]domain.Review]
	AddReview(ctx context.Context, params domain.AddReviewParams) result.Result[domain.Review]
}

type FavoriteRepository interface {
	ToggleFavorite(ctx context.Context, venueID string) result.Result[bool]
	GetFavorites(ctx context.Context, listType domain.FavoriteListType) result.Result[[]domain.Venue]
	ToggleSave(ctx context.Context, venueID string) result.Result[bool]
	GetSavedVenues(ctx context.Context) result.Result[[]domain.Venue]
}

// Photo is an image to upload.
type Photo struct {
	FileName string
	Content  io.Reader
}

// Session is the token holder the live auth repository writes to.
type Session interface {
	UserID() string
	RefreshToken() string
	Set(ctx context.Context, tokens SessionTokens) error
	Clear(ctx context.Context) error
}

// Fallback messages used when a failure carries no text of its own.
const (
	msgNearbyFailed     = "Failed to fetch nearby venues"
	msgSearchFailed     = "Failed to search venues"
	msgDetailFailed     = "Failed to get venue detail"
	msgSuggestionFailed = "Failed to add venue suggestion"
	msgClaimFailed      = "Failed to claim venue"
	msgUpdateFailed     = "Failed to update venue profile"
	msgUploadFailed     = "Failed to upload photo"
	msgToggleFailed     = "Failed to toggle favorite"
	msgToggleSaveFailed = "Failed to toggle save"
	msgFavoritesFailed  = "Failed to get favorites"
	msgSavedFailed      = "Failed to get saved venues"
	msgReviewsFailed    = "Failed to get reviews"
	msgAddReviewFailed  = "Failed to add review"
	msgRegisterFailed   = "Kayıt başarısız"
	msgLoginFailed      = "Giriş başarısız"
	msgLogoutFailed     = "Çıkış başarısız"
	msgMeFailed         = "Kullanıcı bilgileri alınamadı"
	msgNoSession        = "Kullanıcı oturumu bulunamadı"
	msgRefreshFailed    = "Oturum yenilenemedi"
	msgProfileFailed    = "Profil güncellenemedi"
	msgStatsFailed      = "İstatistikler alınamadı"
	msgVenueNotFound    = "Venue not found"
)
