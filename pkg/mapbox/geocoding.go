package mapbox

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

const geocodingPathPrefix = "/geocoding/v5/mapbox.places/"

// DefaultGeocodeLimit is the number of results returned when no limit is given.
const DefaultGeocodeLimit = 5

// ForwardGeocode searches for places matching the query string.
func (c *Client) ForwardGeocode(ctx context.Context, req *ForwardGeocodeRequest) ([]GeocodeResult, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("query is required")
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultGeocodeLimit
	}

	query := url.Values{}
	query.Set("limit", strconv.Itoa(limit))
	if req.Country != "" {
		query.Set("country", req.Country)
	}

	path := geocodingPathPrefix + url.PathEscape(req.Query) + ".json"

	var result geocodeResponse
	if err := c.get(ctx, path, query, &result); err != nil {
		return nil, err
	}

	return result.Features, nil
}

// ReverseGeocode looks up the places at a coordinate.
func (c *Client) ReverseGeocode(ctx context.Context, req *ReverseGeocodeRequest) ([]GeocodeResult, error) {
	if err := req.Coordinate.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	if req.Types != "" {
		query.Set("types", req.Types)
	}

	path := geocodingPathPrefix + req.Coordinate.String() + ".json"

	var result geocodeResponse
	if err := c.get(ctx, path, query, &result); err != nil {
		return nil, err
	}

	return result.Features, nil
}
