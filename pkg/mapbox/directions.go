package mapbox

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/mapassist/mapassist/pkg/geo"
)

const directionsPathPrefix = "/directions/v5/mapbox/"

// Geometry encodings accepted by the Directions API.
const (
	GeometryGeoJSON   = "geojson"
	GeometryPolyline  = "polyline"
	GeometryPolyline6 = "polyline6"
)

// ValidGeometries reports whether geometries names a supported encoding.
func ValidGeometries(geometries string) bool {
	switch geometries {
	case GeometryGeoJSON, GeometryPolyline, GeometryPolyline6:
		return true
	}
	return false
}

// Directions fetches a route in the requested geometry encoding. A second
// polyline-encoded fetch runs in parallel so the response always carries a
// geometry suitable for static map overlays, whatever encoding the caller
// asked for.
func (c *Client) Directions(ctx context.Context, req *DirectionsRequest) (*DirectionsResponse, error) {
	if len(req.Coordinates) < 2 {
		return nil, fmt.Errorf("at least 2 coordinates are required")
	}

	profile := req.Profile
	if profile == "" {
		profile = ProfileDriving
	}
	geometries := req.Geometries
	if geometries == "" {
		geometries = GeometryGeoJSON
	}
	overview := req.Overview
	if overview == "" {
		overview = "full"
	}

	path := directionsPathPrefix + profile + "/" + joinCoordinates(req.Coordinates)

	primaryQuery := url.Values{}
	primaryQuery.Set("geometries", geometries)
	primaryQuery.Set("steps", strconv.FormatBool(req.Steps))
	primaryQuery.Set("alternatives", strconv.FormatBool(req.Alternatives))
	primaryQuery.Set("overview", overview)

	// The overlay fetch always wants the full geometry, whatever overview
	// the caller asked for.
	polylineQuery := url.Values{}
	polylineQuery.Set("geometries", GeometryPolyline)
	polylineQuery.Set("overview", "full")

	var primary directionsUpstream
	var secondary routeOverview

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.get(ctx, path, primaryQuery, &primary)
	})
	g.Go(func() error {
		return c.get(ctx, path, polylineQuery, &secondary)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	polyline := ""
	if len(secondary.Routes) > 0 {
		polyline = secondary.Routes[0].Geometry
	}

	return &DirectionsResponse{
		Routes:    primary.Routes,
		Waypoints: primary.Waypoints,
		Code:      primary.Code,
		Polyline:  polyline,
	}, nil
}

// joinCoordinates renders coordinates as the semicolon-separated path
// segment the routing APIs expect.
func joinCoordinates(coords []geo.Coordinate) string {
	parts := make([]string, len(coords))
	for i, c := range coords {
		parts[i] = c.String()
	}
	return strings.Join(parts, ";")
}
