package api

import (
	"context"
	"io"
)

// NearbyVenues returns one page of venues around a point.
func (c *Client) NearbyVenues(ctx context.Context, req NearbyRequest) (VenuesResponse, error) {
	var out VenuesResponse
	if _, err := c.Get(ctx, "/venues/nearby", req.Values(), &out); err != nil {
		return VenuesResponse{}, err
	}
	return out, nil
}

// SearchVenues returns one page of venues matching a query.
func (c *Client) SearchVenues(ctx context.Context, req SearchRequest) (VenuesResponse, error) {
	var out VenuesResponse
	if _, err := c.Get(ctx, "/venues/search", req.Values(), &out); err != nil {
		return VenuesResponse{}, err
	}
	return out, nil
}

// VenueByID returns the venue detail.
func (c *Client) VenueByID(ctx context.Context, venueID string) (VenueDTO, error) {
	var out VenueDTO
	if _, err := c.Get(ctx, venuePath(venueID), nil, &out); err != nil {
		return VenueDTO{}, err
	}
	return out, nil
}

// AddVenueSuggestion proposes a new venue.
func (c *Client) AddVenueSuggestion(ctx context.Context, req VenueSuggestionRequest) (VenueDTO, error) {
	var out VenueDTO
	if _, err := c.Post(ctx, "/venues/suggestions", req, &out); err != nil {
		return VenueDTO{}, err
	}
	return out, nil
}

// ClaimVenue requests ownership of a venue.
func (c *Client) ClaimVenue(ctx context.Context, venueID string) error {
	_, err := c.Post(ctx, venuePath(venueID, "claim"), nil, nil)
	return err
}

// UpdateVenue patches the venue profile.
func (c *Client) UpdateVenue(ctx context.Context, venueID string, req UpdateVenueRequest) (VenueDTO, error) {
	var out VenueDTO
	if _, err := c.Patch(ctx, venuePath(venueID), req, &out); err != nil {
		return VenueDTO{}, err
	}
	return out, nil
}

// UploadVenuePhoto sends one photo as the "photo" form part.
func (c *Client) UploadVenuePhoto(ctx context.Context, venueID, fileName string, content io.Reader) (PhotoUploadResponse, error) {
	if fileName == "" {
		fileName = "photo.jpg"
	}
	var out PhotoUploadResponse
	if _, err := c.PostMultipart(ctx, venuePath(venueID, "photos"), "photo", fileName, content, &out); err != nil {
		return PhotoUploadResponse{}, err
	}
	return out, nil
}
