package usecase

import (
	"context"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/repository"
	"github.com/mekedron/city-discovery/internal/result"
)

type Login struct {
	auth repository.AuthRepository
}

func NewLogin(auth repository.AuthRepository) *Login {
	return &Login{auth: auth}
}

func (u *Login) Execute(ctx context.Context, params domain.LoginParams) result.Result[domain.User] {
	return u.auth.Login(ctx, params)
}

type Register struct {
	auth repository.AuthRepository
}

func NewRegister(auth repository.AuthRepository) *Register {
	return &Register{auth: auth}
}

func (u *Register) Execute(ctx context.Context, params domain.RegisterParams) result.Result[domain.User] {
	return u.auth.Register(ctx, params)
}

type Logout struct {
	auth repository.AuthRepository
}

func NewLogout(auth repository.AuthRepository) *Logout {
	return &Logout{auth: auth}
}

func (u *Logout) Execute(ctx context.Context) result.Result[repository.Unit] {
	return u.auth.Logout(ctx)
}

// GetMe loads the signed-in user.
type GetMe struct {
	auth repository.AuthRepository
}

func NewGetMe(auth repository.AuthRepository) *GetMe {
	return &GetMe{auth: auth}
}

func (u *GetMe) Execute(ctx context.Context) result.Result[domain.User] {
	return u.auth.GetMe(ctx)
}

type GetUserStats struct {
	auth repository.AuthRepository
}

func NewGetUserStats(auth repository.AuthRepository) *GetUserStats {
	return &GetUserStats{auth: auth}
}

func (u *GetUserStats) Execute(ctx context.Context) result.Result[domain.UserStats] {
	return u.auth.GetUserStats(ctx)
}

type RefreshSession struct {
	auth repository.AuthRepository
}

func NewRefreshSession(auth repository.AuthRepository) *RefreshSession {
	return &RefreshSession{auth: auth}
}

func (u *RefreshSession) Execute(ctx context.Context) result.Result[domain.AuthTokens] {
	return u.auth.RefreshToken(ctx)
}

type UpdateProfile struct {
	auth repository.AuthRepository
}

func NewUpdateProfile(auth repository.AuthRepository) *UpdateProfile {
	return &UpdateProfile{auth: auth}
}

func (u *UpdateProfile) Execute(ctx context.Context, update domain.ProfileUpdate) result.Result[domain.User] {
	return u.auth.UpdateProfile(ctx, update)
}
