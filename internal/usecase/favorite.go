package usecase

import (
	"context"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/repository"
	"github.com/mekedron/city-discovery/internal/result"
)

// ToggleFavorite flips the favorite flag and returns the new value.
type ToggleFavorite struct {
	favorites repository.FavoriteRepository
}

func NewToggleFavorite(favorites repository.FavoriteRepository) *ToggleFavorite {
	return &ToggleFavorite{favorites: favorites}
}

func (u *ToggleFavorite) Execute(ctx context.Context, venueID string) result.Result[bool] {
	return u.favorites.ToggleFavorite(ctx, venueID)
}

// ToggleSave flips the saved flag and returns the new value.
type ToggleSave struct {
	favorites repository.FavoriteRepository
}

func NewToggleSave(favorites repository.FavoriteRepository) *ToggleSave {
	return &ToggleSave{favorites: favorites}
}

func (u *ToggleSave) Execute(ctx context.Context, venueID string) result.Result[bool] {
	return u.favorites.ToggleSave(ctx, venueID)
}

type GetFavorites struct {
	favorites repository.FavoriteRepository
}

func NewGetFavorites(favorites repository.FavoriteRepository) *GetFavorites {
	return &GetFavorites{favorites: favorites}
}

func (u *GetFavorites) Execute(ctx context.Context, listType domain.FavoriteListType) result.Result[[]domain.Venue] {
	return u.favorites.GetFavorites(ctx, listType)
}

type GetSavedVenues struct {
	favorites repository.FavoriteRepository
}

func NewGetSavedVenues(favorites repository.FavoriteRepository) *GetSavedVenues {
	return &GetSavedVenues{favorites: favorites}
}

func (u *GetSavedVenues) Execute(ctx context.Context) result.Result[[]domain.Venue] {
	return u.favorites.GetSavedVenues(ctx)
}
