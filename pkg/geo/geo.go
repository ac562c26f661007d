// Package geo provides the geographic primitives shared by the gateway:
// coordinate validation and formatting, bounding boxes, and the polyline
// codec used for route geometries.
package geo

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Coordinate is a longitude/latitude pair. On the wire it is the
// two-element [longitude, latitude] array used by the Mapbox APIs.
type Coordinate struct {
	Longitude float64
	Latitude  float64
}

// Validate checks that the coordinate is within WGS-84 bounds.
func (c Coordinate) Validate() error {
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %s", FormatFloat(c.Longitude))
	}
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %s", FormatFloat(c.Latitude))
	}
	return nil
}

// String formats the coordinate as "lon,lat" without rounding, the form
// Mapbox expects in URL paths and overlay tokens.
func (c Coordinate) String() string {
	return FormatFloat(c.Longitude) + "," + FormatFloat(c.Latitude)
}

// MarshalJSON encodes the coordinate as [longitude, latitude].
func (c Coordinate) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{c.Longitude, c.Latitude})
}

// UnmarshalJSON decodes a [longitude, latitude] array.
func (c *Coordinate) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("coordinate must be a [longitude, latitude] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate must have exactly 2 elements, got %d", len(pair))
	}
	c.Longitude = pair[0]
	c.Latitude = pair[1]
	return nil
}

// FormatFloat renders a coordinate component in its shortest decimal form
// that round-trips exactly, so -73.985 stays "-73.985" and 40 stays "40".
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BoundingBox is an axis-aligned box over longitude and latitude.
type BoundingBox struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// NewBoundingBox returns an empty box with inverted bounds so that any
// point extends it correctly.
func NewBoundingBox() *BoundingBox {
	return &BoundingBox{
		MinLon: 180.0,
		MinLat: 90.0,
		MaxLon: -180.0,
		MaxLat: -90.0,
	}
}

// ExtendWithPoint grows the box to include the coordinate.
func (bb *BoundingBox) ExtendWithPoint(c Coordinate) {
	if c.Longitude < bb.MinLon {
		bb.MinLon = c.Longitude
	}
	if c.Longitude > bb.MaxLon {
		bb.MaxLon = c.Longitude
	}
	if c.Latitude < bb.MinLat {
		bb.MinLat = c.Latitude
	}
	if c.Latitude > bb.MaxLat {
		bb.MaxLat = c.Latitude
	}
}

// Pad widens each axis by fraction of its span on both sides. A box
// spanning one degree padded with 0.1 gains 0.1 degrees per edge.
func (bb *BoundingBox) Pad(fraction float64) {
	lonPad := (bb.MaxLon - bb.MinLon) * fraction
	latPad := (bb.MaxLat - bb.MinLat) * fraction
	bb.MinLon -= lonPad
	bb.MaxLon += lonPad
	bb.MinLat -= latPad
	bb.MaxLat += latPad
}

// IsPoint reports whether the box has zero span on both axes.
func (bb *BoundingBox) IsPoint() bool {
	return bb.MinLon == bb.MaxLon && bb.MinLat == bb.MaxLat
}

// String renders the box as the [minLon,minLat,maxLon,maxLat] viewport
// segment used by the Static Images API.
func (bb *BoundingBox) String() string {
	return "[" + FormatFloat(bb.MinLon) + "," + FormatFloat(bb.MinLat) + "," +
		FormatFloat(bb.MaxLon) + "," + FormatFloat(bb.MaxLat) + "]"
}

// MarshalJSON encodes the box as [minLon, minLat, maxLon, maxLat].
func (bb BoundingBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64{bb.MinLon, bb.MinLat, bb.MaxLon, bb.MaxLat})
}
