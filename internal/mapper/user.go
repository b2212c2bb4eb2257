package mapper

import (
	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/gateway/api"
)

func UserFromDTO(dto api.UserDTO) domain.User {
	return domain.User{
		ID:        dto.ID,
		Email:     dto.Email,
		Name:      dto.Name,
		AvatarURL: copyString(dto.AvatarURL),
		Username:  copyString(dto.Username),
		Bio:       copyString(dto.Bio),
		Hashtags:  copyStrings(dto.Hashtags),
	}
}

func UserToDTO(u domain.User) api.UserDTO {
	return api.UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: copyString(u.AvatarURL),
		Username:  copyString(u.Username),
		Bio:       copyString(u.Bio),
		Hashtags:  copyStrings(u.Hashtags),
	}
}

func StatsFromDTO(dto api.UserStatsDTO) domain.UserStats {
	return domain.UserStats{
		FavoritesCount: nonNegative(dto.FavoritesCount),
		ReviewsCount:   nonNegative(dto.ReviewsCount),
		FollowersCount: nonNegative(dto.FollowersCount),
	}
}

func StatsToDTO(s domain.UserStats) api.UserStatsDTO {
	return api.UserStatsDTO{
		FavoritesCount: s.FavoritesCount,
		ReviewsCount:   s.ReviewsCount,
		FollowersCount: s.FollowersCount,
	}
}

func nonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
