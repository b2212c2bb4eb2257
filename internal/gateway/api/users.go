package api

import "context"

// UserByID fetches one user.
func (c *Client) UserByID(ctx context.Context, userID string) (UserDTO, error) {
	var out UserDTO
	if _, err := c.Get(ctx, userPath(userID), nil, &out); err != nil {
		return UserDTO{}, err
	}
	return out, nil
}

// UpdateUserProfile patches the public profile of userID.
func (c *Client) UpdateUserProfile(ctx context.Context, userID string, req UpdateProfileRequest) (UserDTO, error) {
	var out UserDTO
	if _, err := c.Put(ctx, userPath(userID, "profile"), req, &out); err != nil {
		return UserDTO{}, err
	}
	return out, nil
}

// UserStats fetches profile counters.
func (c *Client) UserStats(ctx context.Context, userID string) (UserStatsDTO, error) {
	var out UserStatsDTO
	if _, err := c.Get(ctx, userPath(userID, "stats"), nil, &out); err != nil {
		return UserStatsDTO{}, err
	}
	return out, nil
}
