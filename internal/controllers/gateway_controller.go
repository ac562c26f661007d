// Package controllers holds the fiber request handlers for both
// services.
package controllers

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"

	"github.com/mapassist/mapassist/internal/catalog"
	"github.com/mapassist/mapassist/pkg/geo"
	"github.com/mapassist/mapassist/pkg/mapbox"
)

// GatewayController exposes the Mapbox tools over HTTP.
type GatewayController struct {
	mapbox *mapbox.Client
}

type GatewayControllerDependencies struct {
	MapboxClient *mapbox.Client
}

func NewGatewayController(deps GatewayControllerDependencies) *GatewayController {
	return &GatewayController{
		mapbox: deps.MapboxClient,
	}
}

// ListTools returns the static tool catalog.
func (c *GatewayController) ListTools(ctx fiber.Ctx) error {
	return ctx.JSON(fiber.Map{
		"tools": catalog.Tools(),
	})
}

// GeocodeForward converts a place name into coordinates.
func (c *GatewayController) GeocodeForward(ctx fiber.Ctx) error {
	var req struct {
		Query   string `json:"query"`
		Limit   int    `json:"limit"`
		Country string `json:"country"`
	}
	if err := bindArguments(ctx, &req); err != nil {
		return err
	}

	if req.Query == "" {
		return fiber.NewError(fiber.StatusBadRequest, "query is required")
	}

	results, err := c.mapbox.ForwardGeocode(ctx.RequestCtx(), &mapbox.ForwardGeocodeRequest{
		Query:   req.Query,
		Limit:   req.Limit,
		Country: req.Country,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"results": results,
		"total":   len(results),
	})
}

// GeocodeReverse converts coordinates into the places at that location.
func (c *GatewayController) GeocodeReverse(ctx fiber.Ctx) error {
	var req struct {
		Longitude *float64 `json:"longitude"`
		Latitude  *float64 `json:"latitude"`
		Types     string   `json:"types"`
	}
	if err := bindArguments(ctx, &req); err != nil {
		return err
	}

	if req.Longitude == nil || req.Latitude == nil {
		return fiber.NewError(fiber.StatusBadRequest, "longitude and latitude are required")
	}

	coordinate := geo.Coordinate{Longitude: *req.Longitude, Latitude: *req.Latitude}
	if err := coordinate.Validate(); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	results, err := c.mapbox.ReverseGeocode(ctx.RequestCtx(), &mapbox.ReverseGeocodeRequest{
		Coordinate: coordinate,
		Types:      req.Types,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"results": results,
		"total":   len(results),
	})
}

// GetDirections fetches a route between two or more coordinates.
func (c *GatewayController) GetDirections(ctx fiber.Ctx) error {
	var req struct {
		Coordinates  []geo.Coordinate `json:"coordinates"`
		Profile      string           `json:"profile"`
		Alternatives bool             `json:"alternatives"`
		Geometries   string           `json:"geometries"`
		Steps        *bool            `json:"steps"`
		Overview     string           `json:"overview"`
	}
	if err := bindArguments(ctx, &req); err != nil {
		return err
	}

	if err := validateCoordinates(req.Coordinates, 2, 0); err != nil {
		return err
	}
	if err := validateProfile(req.Profile); err != nil {
		return err
	}
	if req.Geometries != "" && !mapbox.ValidGeometries(req.Geometries) {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("geometries must be one of geojson, polyline, polyline6, got %q", req.Geometries))
	}

	steps := true
	if req.Steps != nil {
		steps = *req.Steps
	}

	directions, err := c.mapbox.Directions(ctx.RequestCtx(), &mapbox.DirectionsRequest{
		Coordinates:  req.Coordinates,
		Profile:      req.Profile,
		Alternatives: req.Alternatives,
		Geometries:   req.Geometries,
		Steps:        steps,
		Overview:     req.Overview,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success":   true,
		"routes":    directions.Routes,
		"waypoints": directions.Waypoints,
		"code":      directions.Code,
		"polyline":  directions.Polyline,
	})
}

// GetStaticImage builds a static map URL. The viewport comes from bbox
// when given, else center and zoom; with neither the URL carries no
// viewport. No image is fetched.
func (c *GatewayController) GetStaticImage(ctx fiber.Ctx) error {
	var req struct {
		Center  *geo.Coordinate `json:"center"`
		Zoom    *float64        `json:"zoom"`
		BBox    []float64       `json:"bbox"`
		Width   int             `json:"width"`
		Height  int             `json:"height"`
		Style   string          `json:"style"`
		Markers []mapbox.Marker `json:"markers"`
	}
	if err := bindArguments(ctx, &req); err != nil {
		return err
	}

	if req.Center != nil {
		if err := req.Center.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}

	box, err := parseBBox(req.BBox)
	if err != nil {
		return err
	}

	zoom := mapbox.DefaultZoom
	if req.Zoom != nil {
		zoom = *req.Zoom
	}

	imageURL, err := c.mapbox.StaticImageURL(&mapbox.StaticImageRequest{
		Center:  req.Center,
		Zoom:    zoom,
		BBox:    box,
		Width:   req.Width,
		Height:  req.Height,
		Style:   req.Style,
		Markers: req.Markers,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	width, height := imageDimensions(req.Width, req.Height, mapbox.DefaultImageWidth, mapbox.DefaultImageHeight)

	return ctx.JSON(fiber.Map{
		"success":   true,
		"image_url": imageURL,
		"width":     width,
		"height":    height,
	})
}

// GetRouteMap builds a static map URL framed around the waypoints, with
// start and end pins and an optional route path overlay. No upstream
// call is made.
func (c *GatewayController) GetRouteMap(ctx fiber.Ctx) error {
	var req struct {
		Coordinates   []geo.Coordinate `json:"coordinates"`
		RoutePolyline string           `json:"route_polyline"`
		Width         int              `json:"width"`
		Height        int              `json:"height"`
		Style         string           `json:"style"`
	}
	if err := bindArguments(ctx, &req); err != nil {
		return err
	}

	if err := validateCoordinates(req.Coordinates, 2, 0); err != nil {
		return err
	}

	routeMap, err := c.mapbox.RouteMapURL(&mapbox.RouteMapRequest{
		Coordinates:   req.Coordinates,
		RoutePolyline: req.RoutePolyline,
		Width:         req.Width,
		Height:        req.Height,
		Style:         req.Style,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return ctx.JSON(fiber.Map{
		"success":           true,
		"image_url":         routeMap.ImageURL,
		"width":             routeMap.Width,
		"height":            routeMap.Height,
		"start_coordinates": routeMap.Start,
		"end_coordinates":   routeMap.End,
		"bounding_box":      routeMap.Box,
	})
}

// parseBBox turns a [minLon, minLat, maxLon, maxLat] argument into a
// bounding box. nil input means no bbox was given.
func parseBBox(values []float64) (*geo.BoundingBox, error) {
	if values == nil {
		return nil, nil
	}
	if len(values) != 4 {
		return nil, fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("bbox must have exactly 4 values [minLon, minLat, maxLon, maxLat], got %d", len(values)))
	}

	corners := []geo.Coordinate{
		{Longitude: values[0], Latitude: values[1]},
		{Longitude: values[2], Latitude: values[3]},
	}
	for _, corner := range corners {
		if err := corner.Validate(); err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("bbox: %v", err))
		}
	}
	if values[0] > values[2] || values[1] > values[3] {
		return nil, fiber.NewError(fiber.StatusBadRequest, "bbox minimums must not exceed maximums")
	}

	return &geo.BoundingBox{
		MinLon: values[0],
		MinLat: values[1],
		MaxLon: values[2],
		MaxLat: values[3],
	}, nil
}

// GetMatrix fetches travel times and distances between coordinate pairs.
func (c *GatewayController) GetMatrix(ctx fiber.Ctx) error {
	var req struct {
		Coordinates  []geo.Coordinate `json:"coordinates"`
		Profile      string           `json:"profile"`
		Sources      []int            `json:"sources"`
		Destinations []int            `json:"destinations"`
		Annotations  string           `json:"annotations"`
	}
	if err := bindArguments(ctx, &req); err != nil {
		return err
	}

	if err := validateCoordinates(req.Coordinates, mapbox.MinMatrixCoordinates, mapbox.MaxMatrixCoordinates); err != nil {
		return err
	}
	if err := validateProfile(req.Profile); err != nil {
		return err
	}

	matrix, err := c.mapbox.Matrix(ctx.RequestCtx(), &mapbox.MatrixRequest{
		Coordinates:  req.Coordinates,
		Profile:      req.Profile,
		Sources:      req.Sources,
		Destinations: req.Destinations,
		Annotations:  req.Annotations,
	})
	if err != nil {
		return err
	}

	return ctx.JSON(fiber.Map{
		"success":      true,
		"durations":    matrix.Durations,
		"distances":    matrix.Distances,
		"sources":      matrix.Sources,
		"destinations": matrix.Destinations,
		"code":         matrix.Code,
	})
}

// bindArguments decodes a tool request body. Arguments may be sent at the
// top level or nested under "arguments"; nested values are applied second
// so they override top-level ones field by field.
func bindArguments(ctx fiber.Ctx, out any) error {
	body := ctx.Body()
	if len(body) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		log.Debug().Err(err).Msg("failed to decode request body")
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	var envelope struct {
		Arguments json.RawMessage `json:"arguments"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Arguments) == 0 {
		return nil
	}

	if err := json.Unmarshal(envelope.Arguments, out); err != nil {
		log.Debug().Err(err).Msg("failed to decode request arguments")
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	return nil
}

// validateCoordinates checks the coordinate list bounds and every pair.
// maxCount 0 leaves the upper bound open.
func validateCoordinates(coordinates []geo.Coordinate, minCount, maxCount int) error {
	if len(coordinates) < minCount {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("coordinates must have at least %d entries, got %d", minCount, len(coordinates)))
	}
	if maxCount > 0 && len(coordinates) > maxCount {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("coordinates must have at most %d entries, got %d", maxCount, len(coordinates)))
	}

	for i, coordinate := range coordinates {
		if err := coordinate.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("coordinates[%d]: %v", i, err))
		}
	}

	return nil
}

func validateProfile(profile string) error {
	if profile == "" || mapbox.ValidProfile(profile) {
		return nil
	}
	return fiber.NewError(fiber.StatusBadRequest,
		fmt.Sprintf("profile must be one of driving-traffic, driving, walking, cycling, got %q", profile))
}

// imageDimensions mirrors the client's size resolution so the response
// reports the dimensions actually baked into the URL.
func imageDimensions(width, height, defaultWidth, defaultHeight int) (int, int) {
	if width == 0 {
		width = defaultWidth
	}
	if height == 0 {
		height = defaultHeight
	}
	return clamp(width), clamp(height)
}

func clamp(v int) int {
	if v < mapbox.MinDimension {
		return mapbox.MinDimension
	}
	if v > mapbox.MaxDimension {
		return mapbox.MaxDimension
	}
	return v
}
