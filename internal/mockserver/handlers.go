package mockserver

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mekedron/city-discovery/internal/domain"
	"github.com/mekedron/city-discovery/internal/gateway/api"
	"github.com/mekedron/city-discovery/internal/mapper"
	"github.com/mekedron/city-discovery/internal/result"
)

const (
	defaultPage       = 1
	defaultPageSize   = 10
	maxUploadBytes    = 10 << 20
	photoField        = "photo"
	msgVenueNotFound  = "Venue not found"
	msgPhotoMissing   = "photo is required"
	msgForbidden      = "Access forbidden."
	msgRefreshInvalid = "Invalid refresh token"
)

func (s *Server) issueFor(w http.ResponseWriter, status int, user domain.User) {
	access, refresh, err := s.tokens.pair(user.ID)
	if err != nil {
		s.logger.Error("token signing failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Server error. Please try again later.")
		return
	}
	writeJSON(w, status, api.AuthResponse{UserID: user.ID, Token: access, RefreshToken: refresh})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, err := s.backend.Login(r.Context(), domain.LoginParams{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(w, err)
		return
	}
	s.issueFor(w, http.StatusOK, user)
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		writeMessage(w, http.StatusUnprocessableEntity, "email and password are required")
		return
	}
	user, err := s.backend.Register(r.Context(), domain.RegisterParams{Email: req.Email, Password: req.Password, Name: req.Name})
	if err != nil {
		writeError(w, err)
		return
	}
	s.issueFor(w, http.StatusCreated, user)
}

func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshTokenRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	userID, err := s.tokens.verify(req.RefreshToken, tokenRefresh)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, msgRefreshInvalid)
		return
	}
	s.issueFor(w, http.StatusOK, domain.User{ID: userID})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.Logout(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) user(w http.ResponseWriter, r *http.Request) {
	user, err := s.backend.User(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.UserToDTO(user))
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id != callerID(r) {
		writeMessage(w, http.StatusForbidden, msgForbidden)
		return
	}
	var req api.UpdateProfileRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	user, err := s.backend.UpdateProfile(r.Context(), id, domain.ProfileUpdate{
		Name:     req.Name,
		Username: req.Username,
		Bio:      req.Bio,
		Hashtags: req.Hashtags,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.UserToDTO(user))
}

func (s *Server) userStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.backend.Stats(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.StatsToDTO(stats))
}

type listing struct {
	filters  domain.VenueFilters
	page     int
	pageSize int
}

func parseListing(r *http.Request) (listing, error) {
	q := r.URL.Query()
	out := listing{page: defaultPage, pageSize: defaultPageSize}
	var err error
	if out.page, err = intParam(q.Get("page"), defaultPage); err != nil {
		return listing{}, result.NewError(result.ValidationFailure, "invalid page")
	}
	if out.pageSize, err = intParam(q.Get("page_size"), defaultPageSize); err != nil {
		return listing{}, result.NewError(result.ValidationFailure, "invalid page_size")
	}
	out.filters.Categories = q["categories"]
	for _, raw := range q["price_levels"] {
		level, err := domain.ParsePriceLevel(raw)
		if err != nil {
			return listing{}, result.NewError(result.ValidationFailure, err.Error())
		}
		out.filters.PriceLevels = append(out.filters.PriceLevels, level)
	}
	if raw := q.Get("is_open"); raw != "" {
		open, err := strconv.ParseBool(raw)
		if err != nil {
			return listing{}, result.NewError(result.ValidationFailure, "invalid is_open")
		}
		out.filters.IsOpen = &open
	}
	return out, nil
}

func intParam(raw string, fallback int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}

func floatParam(raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return strconv.ParseFloat(raw, 64)
}

func (s *Server) nearby(w http.ResponseWriter, r *http.Request) {
	l, err := parseListing(r)
	if err != nil {
		writeError(w, err)
		return
	}
	lat, latErr := floatParam(r.URL.Query().Get("lat"))
	lng, lngErr := floatParam(r.URL.Query().Get("lng"))
	if latErr != nil || lngErr != nil {
		writeMessage(w, http.StatusUnprocessableEntity, "invalid coordinates")
		return
	}
	venues, err := s.backend.Nearby(r.Context(), domain.NearbyParams{
		Lat: lat, Lng: lng, Filters: l.filters, Page: l.page, PageSize: l.pageSize,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.VenuesResponse{Venues: mapper.VenuesToDTOs(venues), Page: l.page, PageSize: l.pageSize})
}

func (s *Server) search(w http.ResponseWriter, r *http.Request) {
	l, err := parseListing(r)
	if err != nil {
		writeError(w, err)
		return
	}
	venues, err := s.backend.Search(r.Context(), domain.SearchParams{
		Query: r.URL.Query().Get("query"), Filters: l.filters, Page: l.page, PageSize: l.pageSize,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.VenuesResponse{Venues: mapper.VenuesToDTOs(venues), Page: l.page, PageSize: l.pageSize})
}

func (s *Server) venue(w http.ResponseWriter, r *http.Request) {
	venue, found, err := s.backend.VenueDetail(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeMessage(w, http.StatusNotFound, msgVenueNotFound)
		return
	}
	writeJSON(w, http.StatusOK, mapper.VenueToDTO(venue))
}

func (s *Server) addSuggestion(w http.ResponseWriter, r *http.Request) {
	var req api.VenueSuggestionRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	suggestion := domain.VenueSuggestion{
		Name:        strings.TrimSpace(req.Name),
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		District:    strings.TrimSpace(req.District),
		Description: req.Description,
		Lat:         req.Lat,
		Lng:         req.Lng,
	}
	if suggestion.Name == "" || suggestion.Address == "" || suggestion.City == "" || suggestion.District == "" {
		writeMessage(w, http.StatusUnprocessableEntity, "name, address, city and district are required")
		return
	}
	venue, err := s.backend.AddVenueSuggestion(r.Context(), suggestion)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapper.VenueToDTO(venue))
}

func (s *Server) claimVenue(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.ClaimVenue(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) updateVenue(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateVenueRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	update := domain.VenueProfileUpdate{
		Name:        req.Name,
		Description: req.Description,
		Categories:  req.Categories,
	}
	if req.PriceLevel != nil {
		level, err := domain.ParsePriceLevel(*req.PriceLevel)
		if err != nil {
			writeMessage(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		update.PriceLevel = &level
	}
	venue, err := s.backend.UpdateVenueProfile(r.Context(), mux.Vars(r)["id"], update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapper.VenueToDTO(venue))
}

func (s *Server) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, msgPhotoMissing)
		return
	}
	file, _, err := r.FormFile(photoField)
	if err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, msgPhotoMissing)
		return
	}
	_ = file.Close()

	url, err := s.backend.UploadVenuePhoto(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, api.PhotoUploadResponse{PhotoURL: url})
}

func (s *Server) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	on, err := s.backend.ToggleFavorite(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ToggleFavoriteResponse{IsFavorite: on})
}

func (s *Server) toggleSave(w http.ResponseWriter, r *http.Request) {
	on, err := s.backend.ToggleSave(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ToggleSaveResponse{IsSaved: on})
}

func (s *Server) favorites(w http.ResponseWriter, r *http.Request) {
	listType, err := domain.ParseFavoriteListType(r.URL.Query().Get("list_type"))
	if err != nil {
		writeMessage(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	venues, err := s.backend.Favorites(r.Context(), listType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.FavoritesResponse{Venues: mapper.VenuesToDTOs(venues)})
}

func (s *Server) savedVenues(w http.ResponseWriter, r *http.Request) {
	venues, err := s.backend.SavedVenues(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.FavoritesResponse{Venues: mapper.VenuesToDTOs(venues)})
}

func (s *Server) reviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.backend.Reviews(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.ReviewsResponse{Reviews: mapper.ReviewsToDTOs(reviews)})
}

func (s *Server) addReview(w http.ResponseWriter, r *http.Request) {
	var req api.AddReviewRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.Rating < 1 || req.Rating > 5 || strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.VenueID) == "" {
		writeMessage(w, http.StatusUnprocessableEntity, "venue_id, rating 1-5 and text are required")
		return
	}
	review, err := s.backend.AddReview(r.Context(), domain.AddReviewParams{VenueID: req.VenueID, Rating: req.Rating, Text: req.Text})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, mapper.ReviewToDTO(review))
}
