package geo

import "math"

// DecodePolyline decodes a Google Polyline Algorithm (polyline5) string
// into coordinates. Route geometries from the Directions API use five
// decimal places of precision.
// See https://developers.google.com/maps/documentation/utilities/polylinealgorithm
func DecodePolyline(encoded string) []Coordinate {
	if len(encoded) == 0 {
		return []Coordinate{}
	}

	points := make([]Coordinate, 0, len(encoded)/4+1)

	var lat, lon int
	index := 0
	for index < len(encoded) {
		delta, next := decodeSigned(encoded, index)
		lat += delta
		delta, next = decodeSigned(encoded, next)
		lon += delta
		index = next

		points = append(points, Coordinate{
			Longitude: float64(lon) * 1e-5,
			Latitude:  float64(lat) * 1e-5,
		})
	}

	return points
}

// EncodePolyline encodes coordinates into a polyline5 string.
func EncodePolyline(points []Coordinate) string {
	if len(points) == 0 {
		return ""
	}

	result := make([]byte, 0, len(points)*6)

	var prevLat, prevLon int
	for _, p := range points {
		lat := int(math.Round(p.Latitude * 1e5))
		lon := int(math.Round(p.Longitude * 1e5))

		result = appendSigned(result, lat-prevLat)
		result = appendSigned(result, lon-prevLon)

		prevLat = lat
		prevLon = lon
	}

	return string(result)
}

// decodeSigned reads one zigzag-encoded value starting at index and
// returns it with the index of the next value.
func decodeSigned(encoded string, index int) (int, int) {
	result := 0
	shift := 0
	for index < len(encoded) {
		b := int(encoded[index]) - 63
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	return (result >> 1) ^ (-(result & 1)), index
}

// appendSigned appends one value in zigzag encoding.
func appendSigned(buf []byte, value int) []byte {
	s := value << 1
	if value < 0 {
		s = ^s
	}
	for s >= 0x20 {
		buf = append(buf, byte((0x20|(s&0x1f))+63))
		s >>= 5
	}
	return append(buf, byte(s+63))
}
