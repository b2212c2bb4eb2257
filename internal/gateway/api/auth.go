package api

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Login exchanges credentials for tokens.
func (c *Client) Login(ctx context.Context, req LoginRequest) (AuthResponse, error) {
	var out AuthResponse
	if _, err := c.Post(ctx, "/Auth/login", req, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

// Register creates an account and returns its tokens.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	var out AuthResponse
	if _, err := c.Post(ctx, "/Auth/register", req, &out); err != nil {
		return AuthResponse{}, err
	}
	return out, nil
}

// RefreshToken rotates the access token.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (AuthResponse, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return AuthResponse{}, fmt.Errorf("refresh token is required")
	}
	var out AuthResponse
	if _, err := c.Post(ctx, "/Auth/refresh-token", RefreshTokenRequest{RefreshToken: refreshToken}, &out); err != nil {
		return AuthResponse{}, err
	}
	if strings.TrimSpace(out.RefreshToken) == "" {
		out.RefreshToken = refreshToken
	}
	return out, nil
}

// Logout invalidates the current session server-side.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.Post(ctx, "/Auth/logout", nil, nil)
	return err
}

func userPath(userID string, suffix ...string) string {
	path := "/Users/" + url.PathEscape(strings.TrimSpace(userID))
	for _, part := range suffix {
		path += "/" + part
	}
	return path
}
