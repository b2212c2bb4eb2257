package repository

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/gateway/api"
	"github.com/mekedron/city-discovery/internal/mapper"
	"github.com/mekedron/city-discovery/internal/result"
)

// LiveAuthRepository signs in against the backend and keeps tokens in the session.
type LiveAuthRepository struct {
	api     api.API
	session Session
	logger  *slog.Logger
}

func NewLiveAuthRepository(client api.API, session Session, logger *slog.Logger) *LiveAuthRepository {
	return &LiveAuthRepository{api: client, session: session, logger: orDefault(logger)}
}

func (r *LiveAuthRepository) Register(ctx context.Context, params domain.RegisterParams) result.Result[domain.User] {
	return run(ctx, r.logger, "auth.register", msgRegisterFailed, func(ctx context.Context) (domain.User, error) {
		res, err := r.api.Register(ctx, api.RegisterRequest{
			Email:    strings.TrimSpace(params.Email),
			Password: params.Password,
			Name:     strings.TrimSpace(params.Name),
		})
		if err != nil {
			return domain.User{}, err
		}
		return r.establish(ctx, res)
	})
}

func (r *LiveAuthRepository) Login(ctx context.Context, params domain.LoginParams) result.Result[domain.User] {
	return run(ctx, r.logger, "auth.login", msgLoginFailed, func(ctx context.Context) (domain.User, error) {
		res, err := r.api.Login(ctx, api.LoginRequest{
			Email:    strings.TrimSpace(params.Email),
			Password: params.Password,
		})
		if err != nil {
			return domain.User{}, err
		}
		return r.establish(ctx, res)
	})
}

// establish stores the tokens first so the user lookup is authenticated.
func (r *LiveAuthRepository) establish(ctx context.Context, res api.AuthResponse) (domain.User, error) {
	if err := storeTokens(ctx, r.session, res.UserID, res.Token, res.RefreshToken); err != nil {
		r.logger.Warn("session not persisted", "error", err)
	}
	dto, err := r.api.UserByID(ctx, res.UserID)
	if err != nil {
		return domain.User{}, err
	}
	return mapper.UserFromDTO(dto), nil
}

// Logout always clears the local session; a server failure is still reported.
func (r *LiveAuthRepository) Logout(ctx context.Context) result.Result[Unit] {
	return run(ctx, r.logger, "auth.logout", msgLogoutFailed, func(ctx context.Context) (Unit, error) {
		apiErr := r.api.Logout(ctx)
		if err := r.session.Clear(ctx); err != nil {
			r.logger.Warn("session not cleared", "error", err)
		}
		return Unit{}, apiErr
	})
}

func (r *LiveAuthRepository) GetMe(ctx context.Context) result.Result[domain.User] {
	userID := r.session.UserID()
	if strings.TrimSpace(userID) == "" {
		return result.Fail[domain.User](result.AuthFailure, msgNoSession)
	}
	return run(ctx, r.logger, "auth.me", msgMeFailed, func(ctx context.Context) (domain.User, error) {
		dto, err := r.api.UserByID(ctx, userID)
		if err != nil {
			return domain.User{}, err
		}
		return mapper.UserFromDTO(dto), nil
	})
}

// RefreshToken rotates the access token using the stored refresh token.
func (r *LiveAuthRepository) RefreshToken(ctx context.Context) result.Result[domain.AuthTokens] {
	refresh := r.session.RefreshToken()
	if strings.TrimSpace(refresh) == "" {
		return result.Fail[domain.AuthTokens](result.AuthFailure, msgNoSession)
	}
	return run(ctx, r.logger, "auth.refresh", msgRefreshFailed, func(ctx context.Context) (domain.AuthTokens, error) {
		res, err := r.api.RefreshToken(ctx, refresh)
		if err != nil {
			return domain.AuthTokens{}, err
		}
		userID := res.UserID
		if userID == "" {
			userID = r.session.UserID()
		}
		if err := storeTokens(ctx, r.session, userID, res.Token, res.RefreshToken); err != nil {
			r.logger.Warn("session not persisted", "error", err)
		}
		return domain.AuthTokens{UserID: userID, AccessToken: res.Token, RefreshToken: res.RefreshToken}, nil
	})
}

func (r *LiveAuthRepository) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) result.Result[domain.User] {
	userID := r.session.UserID()
	if strings.TrimSpace(userID) == "" {
		return result.Fail[domain.User](result.AuthFailure, msgNoSession)
	}
	return run(ctx, r.logger, "auth.update_profile", msgProfileFailed, func(ctx context.Context) (domain.User, error) {
		dto, err := r.api.UpdateUserProfile(ctx, userID, api.UpdateProfileRequest{
			Name:     update.Name,
			Username: update.Username,
			Bio:      update.Bio,
			Hashtags: update.Hashtags,
		})
		if err != nil {
			return domain.User{}, err
		}
		return mapper.UserFromDTO(dto), nil
	})
}

func (r *LiveAuthRepository) GetUserStats(ctx context.Context) result.Result[domain.UserStats] {
	userID := r.session.UserID()
	if strings.TrimSpace(userID) == "" {
		return result.Fail[domain.UserStats](result.AuthFailure, msgNoSession)
	}
	return run(ctx, r.logger, "auth.stats", msgStatsFailed, func(ctx context.Context) (domain.UserStats, error) {
		dto, err := r.api.UserStats(ctx, userID)
		if err != nil {
			return domain.UserStats{}, err
		}
		return mapper.StatsFromDTO(dto), nil
	})
}
