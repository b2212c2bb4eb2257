package mock

import (
	"context"

	"github.com/google/uuid"

	"github.com/mekedron/city-discovery/internal/domain"
)

const (
	anonymousReviewerID   = "u1"
	anonymousReviewerName = "Test User"
)

// Reviews returns the seeded review followed by reviews added at runtime.
func (b *Backend) Reviews(ctx context.Context, venueID string) ([]domain.Review, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	out := []domain.Review{{
		ID:        "r1",
		VenueID:   venueID,
		UserID:    anonymousReviewerID,
		UserName:  "John Doe",
		Rating:    5,
		Text:      "Harika bir yer!",
		CreatedAt: b.seededAt,
	}}
	out = append(out, b.reviews[venueID]...)
	return out, nil
}

// AddReview stores a review authored by the signed-in user.
func (b *Backend) AddReview(ctx context.Context, params domain.AddReviewParams) (domain.Review, error) {
	if err := b.wait(ctx, b.latency); err != nil {
		return domain.Review{}, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	review := domain.Review{
		ID:        "r-" + uuid.NewString(),
		VenueID:   params.VenueID,
		UserID:    anonymousReviewerID,
		UserName:  anonymousReviewerName,
		Rating:    params.Rating,
		Text:      params.Text,
		CreatedAt: b.now(),
	}
	if b.currentUser != nil {
		review.UserID = b.currentUser.ID
		review.UserName = b.currentUser.Name
		review.UserAvatarURL = b.currentUser.AvatarURL
		if review.UserAvatarURL != nil {
			avatar := *review.UserAvatarURL
			review.UserAvatarURL = &avatar
		}
	}
	b.reviews[params.VenueID] = append(b.reviews[params.VenueID], review)
	return review, nil
}
