package domain

// GeoPoint is an ordered (latitude, longitude) pair in signed decimal degrees.
// It marshals to a two-element JSON array, which is the shape the map frontend
// consumes for route coordinates.
type GeoPoint [2]float64

// Lat returns the latitude component
func (p GeoPoint) Lat() float64 {
	return p[0]
}

// Lng returns the longitude component
func (p GeoPoint) Lng() float64 {
	return p[1]
}

// MappedActivity is the map-ready representation of a ride, independent of
// Strava's field names. An activity only becomes a MappedActivity once it has
// a non-empty route; StartPoint and EndPoint are always the first and last
// route points when present.
type MappedActivity struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Date          string     `json:"date"`
	Distance      float64    `json:"distance"` // kilometres
	MovingTime    int        `json:"movingTime"`
	ElevationGain float64    `json:"elevationGain"`
	StartPoint    *GeoPoint  `json:"startPoint"`
	EndPoint      *GeoPoint  `json:"endPoint"`
	Route         []GeoPoint `json:"route"`
}
