package mapbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mapassist/mapassist/pkg/geo"
)

const matrixFixture = `{
	"durations": [[0, 573], [577, 0]],
	"distances": [[0, 5210], [5320, 0]],
	"sources": [{"name": "Mission Street"}, {"name": "Broadway"}],
	"destinations": [{"name": "Mission Street"}, {"name": "Broadway"}],
	"code": "Ok"
}`

func TestMatrix(t *testing.T) {
	var gotPath, gotAnnotations string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAnnotations = r.URL.Query().Get("annotations")
		w.Write([]byte(matrixFixture))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	resp, err := client.Matrix(context.Background(), &MatrixRequest{
		Coordinates: routeCoordinates,
	})
	require.NoError(t, err)

	assert.Equal(t, "/directions-matrix/v1/mapbox/driving/-122.4194,37.7749;-122.2711,37.8044", gotPath)
	assert.Equal(t, "duration,distance", gotAnnotations)

	assert.Equal(t, "Ok", resp.Code)
	assert.JSONEq(t, `[[0, 573], [577, 0]]`, string(resp.Durations))
	assert.JSONEq(t, `[[0, 5210], [5320, 0]]`, string(resp.Distances))
	assert.Contains(t, string(resp.Sources), "Mission Street")
}

func TestMatrixSourcesAndDestinations(t *testing.T) {
	var gotSources, gotDestinations string
	var hasSources bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasSources = r.URL.Query()["sources"]
		gotSources = r.URL.Query().Get("sources")
		gotDestinations = r.URL.Query().Get("destinations")
		w.Write([]byte(matrixFixture))
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	_, err := client.Matrix(context.Background(), &MatrixRequest{
		Coordinates:  routeCoordinates,
		Sources:      []int{0},
		Destinations: []int{0, 1},
		Annotations:  "duration",
	})
	require.NoError(t, err)
	assert.Equal(t, "0", gotSources)
	assert.Equal(t, "0;1", gotDestinations)

	_, err = client.Matrix(context.Background(), &MatrixRequest{
		Coordinates: routeCoordinates,
	})
	require.NoError(t, err)
	assert.False(t, hasSources, "sources should be omitted when not set")
}

func TestMatrixCoordinateLimits(t *testing.T) {
	client := NewClient(WithAccessToken("test-token"))

	_, err := client.Matrix(context.Background(), &MatrixRequest{
		Coordinates: routeCoordinates[:1],
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 2 and 25 entries")

	tooMany := make([]geo.Coordinate, 26)
	_, err = client.Matrix(context.Background(), &MatrixRequest{Coordinates: tooMany})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 2 and 25 entries")
}
