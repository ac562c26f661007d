package mapbox

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/mapassist/mapassist/pkg/geo"
)

// Static Images API defaults and limits.
const (
	DefaultStyle       = "streets-v12"
	DefaultZoom        = 14.0
	DefaultImageWidth  = 600
	DefaultImageHeight = 400
	DefaultRouteWidth  = 800
	DefaultRouteHeight = 600

	MinZoom      = 0.0
	MaxZoom      = 22.0
	MinDimension = 1
	MaxDimension = 1280
)

// Route overlay styling: a blue path with green start and red end pins.
const (
	routePathToken  = "path-5+0080ff-0.75"
	routeStartColor = "00b300"
	routeEndColor   = "e60000"
)

// Fraction of the waypoint bounding box span added on each side of the
// viewport.
const viewportPadding = 0.1

// StaticImageURL builds a Static Images API URL. The viewport comes from
// BBox when set, else from Center and Zoom; with neither, the viewport
// segment is omitted and the upstream default applies. No request is
// made; the returned URL embeds the access token.
func (c *Client) StaticImageURL(req *StaticImageRequest) (string, error) {
	if req.Center != nil {
		if err := req.Center.Validate(); err != nil {
			return "", err
		}
	}

	style := req.Style
	if style == "" {
		style = DefaultStyle
	}
	width, height := imageSize(req.Width, req.Height, DefaultImageWidth, DefaultImageHeight)

	segments := make([]string, 0, 2)

	if len(req.Markers) > 0 {
		tokens := make([]string, len(req.Markers))
		for i, m := range req.Markers {
			tokens[i] = markerToken(m)
		}
		segments = append(segments, strings.Join(tokens, ","))
	}

	switch {
	case req.BBox != nil:
		segments = append(segments, req.BBox.String())
	case req.Center != nil:
		zoom := clampFloat(req.Zoom, MinZoom, MaxZoom)
		segments = append(segments, req.Center.String()+","+geo.FormatFloat(zoom))
	}

	segments = append(segments, fmt.Sprintf("%dx%d", width, height))

	return fmt.Sprintf("%s/styles/v1/mapbox/%s/static/%s?access_token=%s",
		c.config.BaseURL, style, strings.Join(segments, "/"),
		url.QueryEscape(c.config.AccessToken)), nil
}

// RouteMapURL builds a Static Images API URL framing the given
// waypoints, with green start and red end pins and, when a polyline is
// supplied, the route geometry drawn between them. No request is made.
func (c *Client) RouteMapURL(req *RouteMapRequest) (*RouteMap, error) {
	if len(req.Coordinates) < 2 {
		return nil, fmt.Errorf("at least 2 coordinates are required")
	}

	style := req.Style
	if style == "" {
		style = DefaultStyle
	}
	width, height := imageSize(req.Width, req.Height, DefaultRouteWidth, DefaultRouteHeight)

	start := req.Coordinates[0]
	end := req.Coordinates[len(req.Coordinates)-1]

	overlays := make([]string, 0, 3)
	if req.RoutePolyline != "" {
		for _, p := range geo.DecodePolyline(req.RoutePolyline) {
			if err := p.Validate(); err != nil {
				return nil, fmt.Errorf("route_polyline is not a valid encoded polyline")
			}
		}
		overlays = append(overlays, routePathToken+"("+url.QueryEscape(req.RoutePolyline)+")")
	}
	overlays = append(overlays,
		"pin-s+"+routeStartColor+"("+start.String()+")",
		"pin-s+"+routeEndColor+"("+end.String()+")",
	)

	viewport, box := waypointViewport(req.Coordinates)

	imageURL := fmt.Sprintf("%s/styles/v1/mapbox/%s/static/%s/%s/%dx%d?access_token=%s",
		c.config.BaseURL, style, strings.Join(overlays, ","), viewport, width, height,
		url.QueryEscape(c.config.AccessToken))

	return &RouteMap{
		ImageURL: imageURL,
		Width:    width,
		Height:   height,
		Start:    start,
		End:      end,
		Box:      box,
	}, nil
}

// waypointViewport frames the waypoints' bounding box, padded on every
// side. When all waypoints coincide the box degenerates and the view
// falls back to a fixed zoom on the first point.
func waypointViewport(coordinates []geo.Coordinate) (string, *geo.BoundingBox) {
	bb := geo.NewBoundingBox()
	for _, c := range coordinates {
		bb.ExtendWithPoint(c)
	}
	if bb.IsPoint() {
		return coordinates[0].String() + "," + geo.FormatFloat(DefaultZoom), nil
	}

	bb.Pad(viewportPadding)
	return bb.String(), bb
}

// markerToken renders a pin overlay token such as pin-small+red(-73.985,40.758).
func markerToken(m Marker) string {
	size := m.Size
	if size == "" {
		size = "small"
	}
	color := m.Color
	if color == "" {
		color = "red"
	}

	token := "pin-" + size
	if m.Label != "" {
		token += "-" + m.Label
	}

	coord := geo.Coordinate{Longitude: m.Longitude, Latitude: m.Latitude}
	return token + "+" + color + "(" + coord.String() + ")"
}

// imageSize resolves zero dimensions to defaults and clamps to API limits.
func imageSize(width, height, defaultWidth, defaultHeight int) (int, int) {
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}
	return clampInt(width, MinDimension, MaxDimension), clampInt(height, MinDimension, MaxDimension)
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
