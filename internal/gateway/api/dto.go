package api

import (
	"net/url"
	"strconv"
	"strings"
)

// VenueDTO is the wire shape of a venue.
type VenueDTO struct {
	ID               string   `json:"id"`
	VenueName        string   `json:"venue_name"`
	City             string   `json:"city"`
	District         string   `json:"district"`
	Country          string   `json:"country"`
	CoverPhotoURL    string   `json:"cover_photo_url"`
	RatingAverage    float64  `json:"rating_average"`
	RatingCount      int      `json:"rating_count"`
	IsOpen           bool     `json:"is_open"`
	Categories       []string `json:"categories"`
	PriceLevel       string   `json:"price_level"`
	DistanceMeters   float64  `json:"distance_meters"`
	ShortDescription string   `json:"short_description"`
	IsFavorite       bool     `json:"is_favorite"`
	IsSaved          bool     `json:"is_saved,omitempty"`
	Lat              *float64 `json:"lat,omitempty"`
	Lng              *float64 `json:"lng,omitempty"`
	Photos           []string `json:"photos,omitempty"`
	OpeningHours     *string  `json:"opening_hours,omitempty"`
	PhoneNumber      *string  `json:"phone_number,omitempty"`
	Address          *string  `json:"address,omitempty"`
	Description      *string  `json:"description,omitempty"`
}

// VenuesResponse is one page of venues.
type VenuesResponse struct {
	Venues   []VenueDTO `json:"venues"`
	Total    int        `json:"total"`
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
}

// UserDTO is the wire shape of a user.
type UserDTO struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	Name      string   `json:"name"`
	AvatarURL *string  `json:"avatar_url,omitempty"`
	Username  *string  `json:"username,omitempty"`
	Bio       *string  `json:"bio,omitempty"`
	Hashtags  []string `json:"hashtags,omitempty"`
}

// UserStatsDTO holds profile counters.
type UserStatsDTO struct {
	FavoritesCount int `json:"favorites_count"`
	ReviewsCount   int `json:"reviews_count"`
	FollowersCount int `json:"followers_count"`
}

// ReviewDTO is the wire shape of a review.
type ReviewDTO struct {
	ID            string  `json:"id"`
	VenueID       string  `json:"venue_id"`
	UserID        string  `json:"user_id"`
	UserName      string  `json:"user_name"`
	UserAvatarURL *string `json:"user_avatar_url,omitempty"`
	Rating        int     `json:"rating"`
	Text          string  `json:"text"`
	CreatedAt     string  `json:"created_at"`
}

// ReviewsResponse lists reviews of one venue.
type ReviewsResponse struct {
	Reviews []ReviewDTO `json:"reviews"`
}

// FavoritesResponse lists venues of one favorite list.
type FavoritesResponse struct {
	Venues []VenueDTO `json:"venues"`
}

// ToggleFavoriteResponse reports the new favorite flag.
type ToggleFavoriteResponse struct {
	IsFavorite bool `json:"is_favorite"`
}

// ToggleSaveResponse reports the new saved flag.
type ToggleSaveResponse struct {
	IsSaved bool `json:"is_saved"`
}

// PhotoUploadResponse carries the stored photo location.
type PhotoUploadResponse struct {
	PhotoURL string `json:"photo_url"`
}

// LoginRequest is the login body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the registration body.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// RefreshTokenRequest exchanges a refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by login, register and refresh.
type AuthResponse struct {
	UserID       string `json:"userId"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// UpdateProfileRequest patches a user profile.
type UpdateProfileRequest struct {
	Name     *string  `json:"name,omitempty"`
	Username *string  `json:"username,omitempty"`
	Bio      *string  `json:"bio,omitempty"`
	Hashtags []string `json:"hashtags,omitempty"`
}

// VenueFilterQuery holds the optional listing filters.
type VenueFilterQuery struct {
	Categories  []string
	PriceLevels []string
	IsOpen      *bool
}

func (f VenueFilterQuery) apply(params url.Values) {
	for _, category := range f.Categories {
		params.Add("categories", category)
	}
	for _, level := range f.PriceLevels {
		params.Add("price_levels", level)
	}
	if f.IsOpen != nil {
		params.Set("is_open", strconv.FormatBool(*f.IsOpen))
	}
}

// NearbyRequest selects venues around a point.
type NearbyRequest struct {
	Lat      float64
	Lng      float64
	Filters  VenueFilterQuery
	Page     int
	PageSize int
}

// Values encodes the request with repeated keys for list filters.
func (r NearbyRequest) Values() url.Values {
	params := url.Values{}
	params.Set("lat", formatFloat(r.Lat))
	params.Set("lng", formatFloat(r.Lng))
	r.Filters.apply(params)
	params.Set("page", strconv.Itoa(r.Page))
	params.Set("page_size", strconv.Itoa(r.PageSize))
	return params
}

// SearchRequest selects venues matching free text.
type SearchRequest struct {
	Query    string
	Filters  VenueFilterQuery
	Page     int
	PageSize int
}

// Values encodes the request with repeated keys for list filters.
func (r SearchRequest) Values() url.Values {
	params := url.Values{}
	params.Set("query", r.Query)
	r.Filters.apply(params)
	params.Set("page", strconv.Itoa(r.Page))
	params.Set("page_size", strconv.Itoa(r.PageSize))
	return params
}

// VenueSuggestionRequest proposes a new venue.
type VenueSuggestionRequest struct {
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	City        string   `json:"city"`
	District    string   `json:"district"`
	Description string   `json:"description,omitempty"`
	Lat         *float64 `json:"lat,omitempty"`
	Lng         *float64 `json:"lng,omitempty"`
}

// UpdateVenueRequest patches owner-editable venue fields.
type UpdateVenueRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	PriceLevel  *string  `json:"price_level,omitempty"`
}

// AddReviewRequest submits a review.
type AddReviewRequest struct {
	VenueID string `json:"venue_id"`
	Rating  int    `json:"rating"`
	Text    string `json:"text"`
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func venuePath(venueID string, suffix ...string) string {
	path := "/venues/" + url.PathEscape(strings.TrimSpace(venueID))
	for _, part := range suffix {
		path += "/" + part
	}
	return path
}
