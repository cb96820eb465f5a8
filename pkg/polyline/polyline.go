// Package polyline implements the delta-encoded polyline format Strava embeds
// in activity summaries (Google's encoded polyline algorithm at 1e-5 precision).
package polyline

import (
	"errors"
	"math"

	"lejog-map/internal/domain"
)

const precision = 1e5

// ErrTruncated is returned when an encoded polyline ends in the middle of a
// value chunk. Callers treat it as "no geometry available" rather than a
// fatal condition.
var ErrTruncated = errors.New("polyline: truncated input")

// Decode converts an encoded polyline into geographic points. An empty input
// decodes to an empty sequence without error.
func Decode(encoded string) ([]domain.GeoPoint, error) {
	if encoded == "" {
		return []domain.GeoPoint{}, nil
	}

	points := make([]domain.GeoPoint, 0, len(encoded)/4)
	var lat, lng int64

	for i := 0; i < len(encoded); {
		dlat, n, err := decodeValue(encoded[i:])
		if err != nil {
			return nil, err
		}
		i += n
		lat += dlat

		dlng, n, err := decodeValue(encoded[i:])
		if err != nil {
			return nil, err
		}
		i += n
		lng += dlng

		points = append(points, domain.GeoPoint{
			float64(lat) / precision,
			float64(lng) / precision,
		})
	}

	return points, nil
}

// Encode is the inverse of Decode.
func Encode(points []domain.GeoPoint) string {
	var buf []byte
	var prevLat, prevLng int64

	for _, p := range points {
		lat := int64(math.Round(p.Lat() * precision))
		lng := int64(math.Round(p.Lng() * precision))
		buf = encodeValue(buf, lat-prevLat)
		buf = encodeValue(buf, lng-prevLng)
		prevLat, prevLng = lat, lng
	}

	return string(buf)
}

// decodeValue reads one zig-zag encoded delta from the head of s, returning
// the delta and the number of bytes consumed.
func decodeValue(s string) (int64, int, error) {
	var result int64
	var shift uint

	for i := 0; i < len(s); i++ {
		b := int64(s[i]) - 63
		result |= (b & 0x1f) << shift
		if b < 0x20 {
			if result&1 != 0 {
				return ^(result >> 1), i + 1, nil
			}
			return result >> 1, i + 1, nil
		}
		shift += 5
	}

	return 0, 0, ErrTruncated
}

func encodeValue(buf []byte, v int64) []byte {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		buf = append(buf, byte(0x20|(u&0x1f))+63)
		u >>= 5
	}
	return append(buf, byte(u)+63)
}
