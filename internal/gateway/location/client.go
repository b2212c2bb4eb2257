package location

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mekedron/city-discovery/internal/domain"
)

const (
	defaultNominatimURL = "https://nominatim.openstreetmap.org"
	userAgent           = "citydiscovery-go/1.0"
)

var (
	// ErrLocationLookup is returned when forward geocoding fails.
	ErrLocationLookup = errors.New("error when trying to get location")
	// ErrPlaceLookup is returned when reverse geocoding yields no usable place.
	ErrPlaceLookup = errors.New("error when trying to resolve place")
)

// Client resolves addresses to coordinates and coordinates to a city and district.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

type Option func(*Client)

// WithBaseURL points the client at another Nominatim instance.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

type coordinate float64

func (c *coordinate) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return fmt.Errorf("parse coordinate %q: %w", text, err)
		}
		*c = coordinate(value)
		return nil
	}

	var value float64
	if err := json.Unmarshal(data, &value); err == nil {
		*c = coordinate(value)
		return nil
	}

	return fmt.Errorf("coordinate must be a string or number")
}

type searchResult struct {
	Lat coordinate `json:"lat"`
	Lon coordinate `json:"lon"`
}

type reverseResult struct {
	Error   string         `json:"error"`
	Address reverseAddress `json:"address"`
}

// reverseAddress lists the Nominatim keys that can carry a city or district.
// Turkish addresses put the district in "town" or "suburb" depending on the area.
type reverseAddress struct {
	City          string `json:"city"`
	Town          string `json:"town"`
	Province      string `json:"province"`
	State         string `json:"state"`
	Suburb        string `json:"suburb"`
	CityDistrict  string `json:"city_district"`
	Quarter       string `json:"quarter"`
	Neighbourhood string `json:"neighbourhood"`
}

func (a reverseAddress) place() domain.Place {
	return domain.Place{
		City:     firstNonEmpty(a.City, a.Province, a.State, a.Town),
		District: firstNonEmpty(a.Town, a.CityDistrict, a.Suburb, a.Quarter, a.Neighbourhood),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// NewClient creates a location client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    defaultNominatimURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get resolves an address using OSM Nominatim.
func (c *Client) Get(ctx context.Context, address string) (domain.Location, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")

	var payload []searchResult
	if err := c.fetch(ctx, "/search", query, &payload); err != nil {
		return domain.Location{}, fmt.Errorf("%w: %v", ErrLocationLookup, err)
	}
	if len(payload) == 0 {
		return domain.Location{}, ErrLocationLookup
	}
	return domain.Location{
		Lat: float64(payload[0].Lat),
		Lng: float64(payload[0].Lon),
	}, nil
}

// Reverse resolves coordinates to a city and district.
func (c *Client) Reverse(ctx context.Context, loc domain.Location) (domain.Place, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(loc.Lng, 'f', -1, 64))
	query.Set("format", "json")
	query.Set("zoom", "14")

	var payload reverseResult
	if err := c.fetch(ctx, "/reverse", query, &payload); err != nil {
		return domain.Place{}, fmt.Errorf("%w: %v", ErrPlaceLookup, err)
	}
	if payload.Error != "" {
		return domain.Place{}, fmt.Errorf("%w: %s", ErrPlaceLookup, payload.Error)
	}
	place := payload.Address.place()
	if place.City == "" && place.District == "" {
		return domain.Place{}, ErrPlaceLookup
	}
	return place, nil
}

func (c *Client) fetch(ctx context.Context, path string, query url.Values, out any) error {
	uri := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
