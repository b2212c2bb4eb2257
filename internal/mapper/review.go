package mapper

import (
	"time"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/gateway/api"
)

// ReviewFromDTO maps a wire review. An unparsable created_at becomes the zero time.
func ReviewFromDTO(dto api.ReviewDTO) domain.Review {
	return domain.Review{
		ID:            dto.ID,
		VenueID:       dto.VenueID,
		UserID:        dto.UserID,
		UserName:      dto.UserName,
		UserAvatarURL: copyString(dto.UserAvatarURL),
		Rating:        dto.Rating,
		Text:          dto.Text,
		CreatedAt:     parseTimestamp(dto.CreatedAt),
	}
}

func ReviewsFromDTOs(dtos []api.ReviewDTO) []domain.Review {
	out := make([]domain.Review, 0, len(dtos))
	for _, dto := range dtos {
		out = append(out, ReviewFromDTO(dto))
	}
	return out
}

func ReviewToDTO(r domain.Review) api.ReviewDTO {
	createdAt := ""
	if !r.CreatedAt.IsZero() {
		createdAt = r.CreatedAt.UTC().Format(time.RFC3339Nano)
	}
	return api.ReviewDTO{
		ID:            r.ID,
		VenueID:       r.VenueID,
		UserID:        r.UserID,
		UserName:      r.UserName,
		UserAvatarURL: copyString(r.UserAvatarURL),
		Rating:        r.Rating,
		Text:          r.Text,
		CreatedAt:     createdAt,
	}
}

func ReviewsToDTOs(reviews []domain.Review) []api.ReviewDTO {
	out := make([]api.ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewToDTO(r))
	}
	return out
}

func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
