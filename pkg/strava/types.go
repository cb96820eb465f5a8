package strava

import "time"

// LatLng is a [latitude, longitude] pair as Strava serializes coordinates.
type LatLng [2]float64

// PolylineMap carries the encoded route geometry embedded in an activity.
type PolylineMap struct {
	ID              string `json:"id"`
	Polyline        string `json:"polyline"`
	SummaryPolyline string `json:"summary_polyline"`
}

// SummaryActivity is one entry from GET /athlete/activities. Fields Strava
// returns but this app never reads are omitted.
type SummaryActivity struct {
	ID                 int64       `json:"id"`
	Name               string      `json:"name"`
	Distance           float64     `json:"distance"` // metres
	MovingTime         int         `json:"moving_time"`
	ElapsedTime        int         `json:"elapsed_time"`
	TotalElevationGain float64     `json:"total_elevation_gain"`
	Type               string      `json:"type"`
	SportType          string      `json:"sport_type"`
	StartDate          time.Time   `json:"start_date"`
	StartLatLng        LatLng      `json:"start_latlng"`
	EndLatLng          LatLng      `json:"end_latlng"`
	Map                PolylineMap `json:"map"`
}

// DetailedActivity is the response of GET /activities/{id}.
type DetailedActivity struct {
	SummaryActivity
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	DeviceName  string  `json:"device_name"`
}

// Athlete is the authenticated athlete's profile from GET /athlete.
type Athlete struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	City      string `json:"city"`
	Country   string `json:"country"`
	Profile   string `json:"profile"`
}

// Stream is a single keyed stream from GET /activities/{id}/streams with
// key_by_type=true.
type Stream struct {
	Data         []LatLng `json:"data"`
	SeriesType   string   `json:"series_type"`
	OriginalSize int      `json:"original_size"`
	Resolution   string   `json:"resolution"`
}

// StreamSet is the key_by_type=true response shape. Only the latlng stream is
// requested.
type StreamSet struct {
	LatLng *Stream `json:"latlng"`
}
