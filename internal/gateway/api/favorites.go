package api

import (
	"context"
	"net/url"
	"strings"
)

// ToggleFavorite flips the favorite flag of a venue.
func (c *Client) ToggleFavorite(ctx context.Context, venueID string) (ToggleFavoriteResponse, error) {
	var out ToggleFavoriteResponse
	if _, err := c.Post(ctx, venuePath(venueID, "favorite"), nil, &out); err != nil {
		return ToggleFavoriteResponse{}, err
	}
	return out, nil
}

// ToggleSave flips the saved flag of a venue.
func (c *Client) ToggleSave(ctx context.Context, venueID string) (ToggleSaveResponse, error) {
	var out ToggleSaveResponse
	if _, err := c.Post(ctx, venuePath(venueID, "save"), nil, &out); err != nil {
		return ToggleSaveResponse{}, err
	}
	return out, nil
}

// Favorites lists venues in one of the user's lists.
func (c *Client) Favorites(ctx context.Context, listType string) (FavoritesResponse, error) {
	params := url.Values{}
	params.Set("list_type", strings.ToLower(strings.TrimSpace(listType)))
	var out FavoritesResponse
	if _, err := c.Get(ctx, "/favorites", params, &out); err != nil {
		return FavoritesResponse{}, err
	}
	return out, nil
}

// SavedVenues lists venues the user saved.
func (c *Client) SavedVenues(ctx context.Context) (FavoritesResponse, error) {
	var out FavoritesResponse
	if _, err := c.Get(ctx, "/venues/saved", nil, &out); err != nil {
		return FavoritesResponse{}, err
	}
	return out, nil
}
