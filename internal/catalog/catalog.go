// Package catalog defines the gateway's tool descriptors: the name,
// description, and argument schema for every tool the gateway exposes.
// The bridge republishes these to the model unchanged.
package catalog

import (
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
)

// Tool describes one gateway tool.
type Tool struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

// Tool names exposed by the gateway.
const (
	ToolGeocodeForward = "geocode_forward"
	ToolGeocodeReverse = "geocode_reverse"
	ToolGetDirections  = "get_directions"
	ToolGetStaticImage = "get_static_image"
	ToolGetRouteMap    = "get_route_map"
	ToolGetMatrix      = "get_matrix"
)

// Tools returns the descriptors for every gateway tool, in a stable order.
func Tools() []Tool {
	return tools
}

var tools = []Tool{
	{
		Name:        ToolGeocodeForward,
		Description: "Convert an address or place name into geographic coordinates using the Mapbox Geocoding API. Returns matching places with their longitude/latitude centers, ranked by relevance.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"query": {
					Type:        "string",
					Description: "The address or place name to search for, e.g. '1600 Pennsylvania Avenue' or 'Eiffel Tower'",
				},
				"limit": {
					Type:        "integer",
					Description: "Maximum number of results to return",
					Minimum:     ptr(1.0),
					Maximum:     ptr(10.0),
					Default:     json.RawMessage(`5`),
				},
				"country": {
					Type:        "string",
					Description: "Comma-separated ISO 3166 alpha-2 country codes to limit results, e.g. 'us,ca'",
				},
			},
			Required: []string{"query"},
		},
	},
	{
		Name:        ToolGeocodeReverse,
		Description: "Convert geographic coordinates into the addresses and places at that location using the Mapbox Geocoding API.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"longitude": {
					Type:        "number",
					Description: "Longitude of the location",
					Minimum:     ptr(-180.0),
					Maximum:     ptr(180.0),
				},
				"latitude": {
					Type:        "number",
					Description: "Latitude of the location",
					Minimum:     ptr(-90.0),
					Maximum:     ptr(90.0),
				},
				"types": {
					Type:        "string",
					Description: "Comma-separated place types to filter by, e.g. 'address,poi'",
				},
			},
			Required: []string{"longitude", "latitude"},
		},
	},
	{
		Name:        ToolGetDirections,
		Description: "Get turn-by-turn directions between two or more points using the Mapbox Directions API. Returns routes with distance, duration, and step instructions, plus a polyline-encoded geometry.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"coordinates": coordinatePairs(2, 0, "Ordered waypoints of the route as [longitude, latitude] pairs"),
				"profile":     profileSchema(),
				"alternatives": {
					Type:        "boolean",
					Description: "Whether to return alternative routes",
				},
				"geometries": {
					Type:        "string",
					Description: "Geometry encoding of the returned routes",
					Enum:        []any{"geojson", "polyline", "polyline6"},
					Default:     json.RawMessage(`"geojson"`),
				},
				"steps": {
					Type:        "boolean",
					Description: "Whether to include turn-by-turn step instructions",
					Default:     json.RawMessage(`true`),
				},
				"overview": {
					Type:        "string",
					Description: "Detail level of the returned route geometry",
					Enum:        []any{"full", "simplified", "false"},
					Default:     json.RawMessage(`"full"`),
				},
			},
			Required: []string{"coordinates"},
		},
	},
	{
		Name:        ToolGetStaticImage,
		Description: "Build a Mapbox Static Images API URL, optionally with marker pins. The viewport comes from bbox, or center plus zoom; with neither the map frames itself. No image is fetched; the URL renders the map when opened.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"center": {
					Type:        "array",
					Description: "Map center as a [longitude, latitude] pair",
					Items:       &jsonschema.Schema{Type: "number"},
					MinItems:    ptr(2),
					MaxItems:    ptr(2),
				},
				"bbox": {
					Type:        "array",
					Description: "Viewport as [minLon, minLat, maxLon, maxLat]; takes precedence over center and zoom",
					Items:       &jsonschema.Schema{Type: "number"},
					MinItems:    ptr(4),
					MaxItems:    ptr(4),
				},
				"zoom": {
					Type:        "number",
					Description: "Zoom level of the map",
					Minimum:     ptr(0.0),
					Maximum:     ptr(22.0),
					Default:     json.RawMessage(`14`),
				},
				"width": {
					Type:        "integer",
					Description: "Image width in pixels",
					Minimum:     ptr(1.0),
					Maximum:     ptr(1280.0),
					Default:     json.RawMessage(`600`),
				},
				"height": {
					Type:        "integer",
					Description: "Image height in pixels",
					Minimum:     ptr(1.0),
					Maximum:     ptr(1280.0),
					Default:     json.RawMessage(`400`),
				},
				"style": {
					Type:        "string",
					Description: "Mapbox style id, e.g. 'streets-v12', 'satellite-v9', 'dark-v11'",
					Default:     json.RawMessage(`"streets-v12"`),
				},
				"markers": {
					Type:        "array",
					Description: "Marker pins to draw on the map",
					Items: &jsonschema.Schema{
						Type: "object",
						Properties: map[string]*jsonschema.Schema{
							"longitude": {Type: "number"},
							"latitude":  {Type: "number"},
							"color":     {Type: "string", Description: "Pin color name or hex code without '#'"},
							"size":      {Type: "string", Description: "Pin size, e.g. 'small' or 'large'"},
							"label":     {Type: "string", Description: "Single character or short label shown on the pin"},
						},
						Required: []string{"longitude", "latitude"},
					},
				},
			},
		},
	},
	{
		Name:        ToolGetRouteMap,
		Description: "Build a Mapbox Static Images API URL showing a route: start and end pins, an optional route path, framed around the waypoints. Pass the polyline geometry from get_directions to draw the path. No image is fetched; the URL renders the map when opened.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"coordinates": coordinatePairs(2, 0, "Ordered waypoints of the route as [longitude, latitude] pairs"),
				"route_polyline": {
					Type:        "string",
					Description: "Polyline-encoded route geometry to draw, as returned by get_directions with geometries=polyline",
				},
				"width": {
					Type:        "integer",
					Description: "Image width in pixels",
					Minimum:     ptr(1.0),
					Maximum:     ptr(1280.0),
					Default:     json.RawMessage(`800`),
				},
				"height": {
					Type:        "integer",
					Description: "Image height in pixels",
					Minimum:     ptr(1.0),
					Maximum:     ptr(1280.0),
					Default:     json.RawMessage(`600`),
				},
				"style": {
					Type:        "string",
					Description: "Mapbox style id",
					Default:     json.RawMessage(`"streets-v12"`),
				},
			},
			Required: []string{"coordinates"},
		},
	},
	{
		Name:        ToolGetMatrix,
		Description: "Get travel times and distances between coordinate pairs using the Mapbox Matrix API. Returns duration and distance matrices between all sources and destinations.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"coordinates": coordinatePairs(2, 25, "Coordinates of the matrix as [longitude, latitude] pairs"),
				"profile":     profileSchema(),
				"sources": {
					Type:        "array",
					Description: "Indexes into coordinates to use as origins; all by default",
					Items:       &jsonschema.Schema{Type: "integer"},
				},
				"destinations": {
					Type:        "array",
					Description: "Indexes into coordinates to use as destinations; all by default",
					Items:       &jsonschema.Schema{Type: "integer"},
				},
				"annotations": {
					Type:        "string",
					Description: "Comma-separated metrics to return",
					Default:     json.RawMessage(`"duration,distance"`),
				},
			},
			Required: []string{"coordinates"},
		},
	},
}

// coordinatePairs builds the schema for an array of [longitude, latitude]
// pairs. maxItems 0 leaves the upper bound open.
func coordinatePairs(minItems, maxItems int, description string) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:        "array",
		Description: description,
		MinItems:    ptr(minItems),
		Items: &jsonschema.Schema{
			Type:     "array",
			Items:    &jsonschema.Schema{Type: "number"},
			MinItems: ptr(2),
			MaxItems: ptr(2),
		},
	}
	if maxItems > 0 {
		schema.MaxItems = ptr(maxItems)
	}
	return schema
}

func profileSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: "Routing profile to use",
		Enum:        []any{"driving-traffic", "driving", "walking", "cycling"},
		Default:     json.RawMessage(`"driving"`),
	}
}

func ptr[T any](v T) *T {
	return &v
}
