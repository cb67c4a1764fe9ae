package gateway

import (
	"context"
	"fmt"
)

func (c *Client) GetMostBorrowed(ctx context.Context, limit int) ([]Recommendation, error) {
	var recs []Recommendation
	if err := c.get(ctx, fmt.Sprintf("/api/recommendations/most-borrowed?limit=%d", limit), &recs); err != nil {
		return nil, err
	}
	return recs, nil
}

func (c *Client) GetRecommendationsForUser(ctx context.Context, userID int64) ([]Recommendation, error) {
	var recs []Recommendation
	if err := c.get(ctx, fmt.Sprintf("/api/recommendations/user/%d", userID), &recs); err != nil {
		return nil, err
	}
	return recs, nil
}
