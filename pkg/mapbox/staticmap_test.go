package mapbox

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapassist/mapassist/pkg/geo"
)

func TestStaticImageURL(t *testing.T) {
	client := NewClient(WithAccessToken("test-token"))

	t.Run("center and zoom", func(t *testing.T) {
		imageURL, err := client.StaticImageURL(&StaticImageRequest{
			Center: &geo.Coordinate{Longitude: -73.985, Latitude: 40.758},
			Zoom:   14,
		})
		require.NoError(t, err)
		assert.Equal(t,
			"https://api.mapbox.com/styles/v1/mapbox/streets-v12/static/-73.985,40.758,14/600x400?access_token=test-token",
			imageURL)
	})

	t.Run("custom style and size", func(t *testing.T) {
		imageURL, err := client.StaticImageURL(&StaticImageRequest{
			Center: &geo.Coordinate{Longitude: 2.3522, Latitude: 48.8566},
			Zoom:   10.5,
			Width:  800,
			Height: 600,
			Style:  "dark-v11",
		})
		require.NoError(t, err)
		assert.Contains(t, imageURL, "/styles/v1/mapbox/dark-v11/static/2.3522,48.8566,10.5/800x600")
	})

	t.Run("bbox viewport wins over center", func(t *testing.T) {
		imageURL, err := client.StaticImageURL(&StaticImageRequest{
			Center: &geo.Coordinate{Longitude: 0, Latitude: 0},
			BBox:   &geo.BoundingBox{MinLon: -74.1, MinLat: 39.9, MaxLon: -72.9, MaxLat: 41.1},
		})
		require.NoError(t, err)
		assert.Contains(t, imageURL, "/static/[-74.1,39.9,-72.9,41.1]/600x400")
	})

	t.Run("no viewport segment without center or bbox", func(t *testing.T) {
		imageURL, err := client.StaticImageURL(&StaticImageRequest{
			Width:  500,
			Height: 300,
		})
		require.NoError(t, err)
		assert.Contains(t, imageURL, "/styles/v1/mapbox/streets-v12/static/500x300?access_token=")
	})

	t.Run("markers", func(t *testing.T) {
		imageURL, err := client.StaticImageURL(&StaticImageRequest{
			Center: &geo.Coordinate{Longitude: -73.985, Latitude: 40.758},
			Zoom:   14,
			Markers: []Marker{
				{Longitude: -73.985, Latitude: 40.758},
				{Longitude: -73.99, Latitude: 40.75, Color: "0080ff", Size: "large", Label: "a"},
			},
		})
		require.NoError(t, err)
		assert.Contains(t, imageURL,
			"/static/pin-small+red(-73.985,40.758),pin-large-a+0080ff(-73.99,40.75)/-73.985,40.758,14/")
	})

	t.Run("markers without viewport", func(t *testing.T) {
		imageURL, err := client.StaticImageURL(&StaticImageRequest{
			Markers: []Marker{{Longitude: -73.985, Latitude: 40.758}},
		})
		require.NoError(t, err)
		assert.Contains(t, imageURL, "/static/pin-small+red(-73.985,40.758)/600x400?access_token=")
	})

	t.Run("clamps zoom and dimensions", func(t *testing.T) {
		imageURL, err := client.StaticImageURL(&StaticImageRequest{
			Center: &geo.Coordinate{Longitude: 0, Latitude: 0},
			Zoom:   25,
			Width:  5000,
			Height: -10,
		})
		require.NoError(t, err)
		assert.Contains(t, imageURL, "/0,0,22/1280x1?access_token=")
	})

	t.Run("escapes access token", func(t *testing.T) {
		tokenClient := NewClient(WithAccessToken("pk.abc+def"))
		imageURL, err := tokenClient.StaticImageURL(&StaticImageRequest{
			Center: &geo.Coordinate{Longitude: 0, Latitude: 0},
			Zoom:   1,
		})
		require.NoError(t, err)
		assert.Contains(t, imageURL, "access_token=pk.abc%2Bdef")
	})

	t.Run("rejects invalid center", func(t *testing.T) {
		_, err := client.StaticImageURL(&StaticImageRequest{
			Center: &geo.Coordinate{Longitude: 0, Latitude: 95},
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "latitude must be between -90 and 90")
	})
}

func TestRouteMapURL(t *testing.T) {
	client := NewClient(WithAccessToken("test-token"))

	routeMap, err := client.RouteMapURL(&RouteMapRequest{
		Coordinates: []geo.Coordinate{
			{Longitude: -74, Latitude: 40},
			{Longitude: -73, Latitude: 41},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 800, routeMap.Width)
	assert.Equal(t, 600, routeMap.Height)
	assert.Equal(t, geo.Coordinate{Longitude: -74, Latitude: 40}, routeMap.Start)
	assert.Equal(t, geo.Coordinate{Longitude: -73, Latitude: 41}, routeMap.End)

	assert.Contains(t, routeMap.ImageURL, "pin-s+00b300(-74,40)")
	assert.Contains(t, routeMap.ImageURL, "pin-s+e60000(-73,41)")
	assert.NotContains(t, routeMap.ImageURL, "path-")

	// The waypoint box [-74,40,-73,41] widens by 10% of each span per side.
	require.NotNil(t, routeMap.Box)
	assert.InDelta(t, -74.1, routeMap.Box.MinLon, 1e-9)
	assert.InDelta(t, 39.9, routeMap.Box.MinLat, 1e-9)
	assert.InDelta(t, -72.9, routeMap.Box.MaxLon, 1e-9)
	assert.InDelta(t, 41.1, routeMap.Box.MaxLat, 1e-9)

	viewport := extractViewport(t, routeMap.ImageURL)
	assert.Equal(t, [4]float64{-74.1, 39.9, -72.9, 41.1}, viewport)
}

func TestRouteMapURLWithPolyline(t *testing.T) {
	client := NewClient(WithAccessToken("test-token"))

	polyline := geo.EncodePolyline([]geo.Coordinate{
		{Longitude: -120.2, Latitude: 38.5},
		{Longitude: -120.95, Latitude: 40.7},
	})

	routeMap, err := client.RouteMapURL(&RouteMapRequest{
		Coordinates: []geo.Coordinate{
			{Longitude: -120.2, Latitude: 38.5},
			{Longitude: -120.95, Latitude: 40.7},
		},
		RoutePolyline: polyline,
	})
	require.NoError(t, err)

	assert.Contains(t, routeMap.ImageURL, "path-5+0080ff-0.75(")
	assert.Contains(t, routeMap.ImageURL, "pin-s+00b300(-120.2,38.5)")
}

func TestRouteMapURLRejectsGarbagePolyline(t *testing.T) {
	client := NewClient(WithAccessToken("test-token"))

	// Encodes a point far outside WGS-84 bounds.
	garbage := geo.EncodePolyline([]geo.Coordinate{{Longitude: 500, Latitude: 300}})

	_, err := client.RouteMapURL(&RouteMapRequest{
		Coordinates: []geo.Coordinate{
			{Longitude: -74, Latitude: 40},
			{Longitude: -73, Latitude: 41},
		},
		RoutePolyline: garbage,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid encoded polyline")
}

func TestRouteMapURLCoincidingWaypoints(t *testing.T) {
	client := NewClient(WithAccessToken("test-token"))

	routeMap, err := client.RouteMapURL(&RouteMapRequest{
		Coordinates: []geo.Coordinate{
			{Longitude: -122.4194, Latitude: 37.7749},
			{Longitude: -122.4194, Latitude: 37.7749},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, routeMap.ImageURL, "/-122.4194,37.7749,14/")
	assert.Nil(t, routeMap.Box)
}

func TestRouteMapURLCustomSize(t *testing.T) {
	client := NewClient(WithAccessToken("test-token"))

	routeMap, err := client.RouteMapURL(&RouteMapRequest{
		Coordinates: []geo.Coordinate{
			{Longitude: -74, Latitude: 40},
			{Longitude: -73, Latitude: 41},
		},
		Width:  2000,
		Height: 300,
		Style:  "outdoors-v12",
	})
	require.NoError(t, err)

	assert.Equal(t, 1280, routeMap.Width)
	assert.Equal(t, 300, routeMap.Height)
	assert.Contains(t, routeMap.ImageURL, "/styles/v1/mapbox/outdoors-v12/static/")
	assert.Contains(t, routeMap.ImageURL, "/1280x300?access_token=")
}

func TestRouteMapURLTooFewCoordinates(t *testing.T) {
	client := NewClient(WithAccessToken("test-token"))

	_, err := client.RouteMapURL(&RouteMapRequest{
		Coordinates: []geo.Coordinate{{Longitude: -74, Latitude: 40}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2 coordinates are required")
}

// extractViewport pulls the [minLon,minLat,maxLon,maxLat] segment out of a
// static map URL.
func extractViewport(t *testing.T, imageURL string) [4]float64 {
	t.Helper()

	_, rest, found := strings.Cut(imageURL, "/static/")
	require.True(t, found)

	segments := strings.Split(rest, "/")
	require.GreaterOrEqual(t, len(segments), 3)

	raw := strings.Trim(segments[1], "[]")
	parts := strings.Split(raw, ",")
	require.Len(t, parts, 4)

	var viewport [4]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		require.NoError(t, err)
		viewport[i] = v
	}
	return viewport
}
