package api

import (
	"context"
	"net/url"
)

// Reviews lists the reviews of a venue.
func (c *Client) Reviews(ctx context.Context, venueID, sort string) (ReviewsResponse, error) {
	params := url.Values{}
	if sort != "" {
		params.Set("sort", sort)
	}
	var out ReviewsResponse
	if _, err := c.Get(ctx, venuePath(venueID, "reviews"), params, &out); err != nil {
		return ReviewsResponse{}, err
	}
	return out, nil
}

// AddReview submits a review.
func (c *Client) AddReview(ctx context.Context, req AddReviewRequest) (ReviewDTO, error) {
	var out ReviewDTO
	if _, err := c.Post(ctx, "/reviews", req, &out); err != nil {
		return ReviewDTO{}, err
	}
	return out, nil
}
