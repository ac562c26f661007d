package mapbox

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const matrixPathPrefix = "/directions-matrix/v1/mapbox/"

// Matrix limits imposed by the Matrix API.
const (
	MinMatrixCoordinates = 2
	MaxMatrixCoordinates = 25
)

// DefaultMatrixAnnotations is requested when the caller does not choose.
const DefaultMatrixAnnotations = "duration,distance"

// Matrix fetches travel times and distances between coordinate pairs.
func (c *Client) Matrix(ctx context.Context, req *MatrixRequest) (*MatrixResponse, error) {
	if len(req.Coordinates) < MinMatrixCoordinates || len(req.Coordinates) > MaxMatrixCoordinates {
		return nil, fmt.Errorf("coordinates must have between %d and %d entries, got %d",
			MinMatrixCoordinates, MaxMatrixCoordinates, len(req.Coordinates))
	}

	profile := req.Profile
	if profile == "" {
		profile = ProfileDriving
	}
	annotations := req.Annotations
	if annotations == "" {
		annotations = DefaultMatrixAnnotations
	}

	query := url.Values{}
	query.Set("annotations", annotations)
	if len(req.Sources) > 0 {
		query.Set("sources", joinIndexes(req.Sources))
	}
	if len(req.Destinations) > 0 {
		query.Set("destinations", joinIndexes(req.Destinations))
	}

	path := matrixPathPrefix + profile + "/" + joinCoordinates(req.Coordinates)

	var result MatrixResponse
	if err := c.get(ctx, path, query, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func joinIndexes(indexes []int) string {
	parts := make([]string, len(indexes))
	for i, idx := range indexes {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ";")
}
