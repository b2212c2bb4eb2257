package repository

import (
	"context"

	"github.com/mekedron/city-discovery/internal/session"
)

// SessionTokens is what the live auth repository persists.
type SessionTokens = session.Tokens

var _ Session = (*session.Session)(nil)

func storeTokens(ctx context.Context, s Session, userID, access, refresh string) error {
	return s.Set(ctx, SessionTokens{UserID: userID, AccessToken: access, RefreshToken: refresh})
}
