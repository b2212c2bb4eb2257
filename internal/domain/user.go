package domain

// User is the signed-in account.
type User struct {
	ID        string   `json:"id" yaml:"id"`
	Email     string   `json:"email" yaml:"email"`
	Name      string   `json:"name" yaml:"name"`
	AvatarURL *string  `json:"avatar_url,omitempty" yaml:"avatar_url,omitempty"`
	Username  *string  `json:"username,omitempty" yaml:"username,omitempty"`
	Bio       *string  `json:"bio,omitempty" yaml:"bio,omitempty"`
	Hashtags  []string `json:"hashtags,omitempty" yaml:"hashtags,omitempty"`
}

// Clone returns a deep copy.
func (u User) Clone() User {
	out := u
	out.AvatarURL = cloneString(u.AvatarURL)
	out.Username = cloneString(u.Username)
	out.Bio = cloneString(u.Bio)
	out.Hashtags = cloneStrings(u.Hashtags)
	return out
}

// UserStats holds profile counters.
type UserStats struct {
	FavoritesCount int `json:"favorites_count" yaml:"favorites_count"`
	ReviewsCount   int `json:"reviews_count" yaml:"reviews_count"`
	FollowersCount int `json:"followers_count" yaml:"followers_count"`
}

// LoginParams are the login form credentials.
type LoginParams struct {
	Email    string
	Password string
}

// RegisterParams create a new account.
type RegisterParams struct {
	Email    string
	Password string
	Name     string
}

// ProfileUpdate patches the user's public profile. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name     *string
	Username *string
	Bio      *string
	Hashtags []string
}

// AuthTokens is what the identity service hands back after login or refresh.
type AuthTokens struct {
	UserID       string
	AccessToken  string
	RefreshToken string
}
