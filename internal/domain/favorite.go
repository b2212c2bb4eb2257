package domain

import (
	"fmt"
	"strings"
)

// FavoriteListType selects one of the user's venue lists.
type FavoriteListType string

const (
	FavoriteListFavorite FavoriteListType = "Favorite"
	FavoriteListWantToGo FavoriteListType = "WantToGo"
	FavoriteListVisited  FavoriteListType = "Visited"
)

// ParseFavoriteListType accepts list names case-insensitively; empty means Favorite.
func ParseFavoriteListType(value string) (FavoriteListType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "favorite":
		return FavoriteListFavorite, nil
	case "wanttogo", "want-to-go", "want_to_go":
		return FavoriteListWantToGo, nil
	case "visited":
		return FavoriteListVisited, nil
	default:
		return "", fmt.Errorf("invalid favorite list %q", value)
	}
}
