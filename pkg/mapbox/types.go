package mapbox

import (
	"encoding/json"

	"github.com/mapassist/mapassist/pkg/geo"
)

// Routing profiles accepted by the Directions and Matrix APIs.
const (
	ProfileDrivingTraffic = "driving-traffic"
	ProfileDriving        = "driving"
	ProfileWalking        = "walking"
	ProfileCycling        = "cycling"
)

// ValidProfile reports whether profile names a supported routing profile.
func ValidProfile(profile string) bool {
	switch profile {
	case ProfileDrivingTraffic, ProfileDriving, ProfileWalking, ProfileCycling:
		return true
	}
	return false
}

// GeocodeResult is a single geocoding feature, keeping the Mapbox field
// names callers already know.
type GeocodeResult struct {
	PlaceName  string          `json:"place_name"`
	Center     geo.Coordinate  `json:"center"`
	PlaceType  []string        `json:"place_type"`
	Relevance  float64         `json:"relevance"`
	Properties json.RawMessage `json:"properties,omitempty"`
	Context    json.RawMessage `json:"context,omitempty"`
}

// geocodeResponse is the upstream feature collection shape
type geocodeResponse struct {
	Features []GeocodeResult `json:"features"`
}

// ForwardGeocodeRequest searches for places matching a free-form query.
type ForwardGeocodeRequest struct {
	Query   string
	Limit   int
	Country string
}

// ReverseGeocodeRequest looks up places at a coordinate.
type ReverseGeocodeRequest struct {
	Coordinate geo.Coordinate
	Types      string
}

// DirectionsRequest describes a route lookup between two or more points.
// Steps is passed through as resolved by the caller. Overview is passed
// through to the primary call untouched, defaulting to full.
type DirectionsRequest struct {
	Coordinates  []geo.Coordinate
	Profile      string
	Alternatives bool
	Geometries   string
	Steps        bool
	Overview     string
}

// DirectionsResponse carries the upstream route data untouched, plus the
// polyline-encoded geometry of the first route fetched alongside it.
type DirectionsResponse struct {
	Routes    json.RawMessage `json:"routes"`
	Waypoints json.RawMessage `json:"waypoints"`
	Code      string          `json:"code"`
	Polyline  string          `json:"polyline"`
}

// directionsUpstream is the upstream response shape for the primary call
type directionsUpstream struct {
	Routes    json.RawMessage `json:"routes"`
	Waypoints json.RawMessage `json:"waypoints"`
	Code      string          `json:"code"`
}

// routeOverview is the decoded subset of the polyline-only directions
// call
type routeOverview struct {
	Routes []struct {
		Geometry string `json:"geometry"`
	} `json:"routes"`
}

// MatrixRequest describes a travel-time matrix lookup.
type MatrixRequest struct {
	Coordinates  []geo.Coordinate
	Profile      string
	Sources      []int
	Destinations []int
	Annotations  string
}

// MatrixResponse carries the upstream matrix data untouched.
type MatrixResponse struct {
	Durations    json.RawMessage `json:"durations"`
	Distances    json.RawMessage `json:"distances"`
	Sources      json.RawMessage `json:"sources"`
	Destinations json.RawMessage `json:"destinations"`
	Code         string          `json:"code"`
}

// Marker is a pin overlay on a static map image.
type Marker struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Color     string  `json:"color,omitempty"`
	Size      string  `json:"size,omitempty"`
	Label     string  `json:"label,omitempty"`
}

// StaticImageRequest describes a static map image. The viewport is
// taken from BBox when set, else from Center and Zoom; with neither the
// URL carries no viewport and the upstream default applies.
type StaticImageRequest struct {
	Center  *geo.Coordinate
	Zoom    float64
	BBox    *geo.BoundingBox
	Width   int
	Height  int
	Style   string
	Markers []Marker
}

// RouteMapRequest describes a static map image of a route between
// waypoints. RoutePolyline, when set, is drawn as a path overlay.
type RouteMapRequest struct {
	Coordinates   []geo.Coordinate
	RoutePolyline string
	Width         int
	Height        int
	Style         string
}

// RouteMap is a rendered route image URL. Box is the padded viewport of
// the waypoints, nil when they coincide and the map fell back to a
// centered view.
type RouteMap struct {
	ImageURL string
	Width    int
	Height   int
	Start    geo.Coordinate
	End      geo.Coordinate
	Box      *geo.BoundingBox
}
