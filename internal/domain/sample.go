package domain

// SampleActivities returns the built-in fallback dataset served whenever Strava
// is unreachable or the app has not been authorized yet. The coordinates trace
// the first two LEJOG stages so the map always has something to draw.
func SampleActivities() []MappedActivity {
	day1Route := []GeoPoint{
		{50.0657, -5.7147},
		{50.1269, -5.5284},
		{50.2660, -5.0527},
		{50.3429, -4.8731},
		{50.4722, -4.7235},
	}
	day2Route := []GeoPoint{
		{50.4722, -4.7235},
		{50.5060, -4.4672},
		{50.5846, -4.1444},
		{50.6546, -3.8963},
		{50.7236, -3.5275},
	}

	return []MappedActivity{
		{
			ID:         1,
			Name:       "Day 1: Land's End to Bodmin",
			Date:       "2024-09-02",
			Distance:   83.7,
			StartPoint: &day1Route[0],
			EndPoint:   &day1Route[len(day1Route)-1],
			Route:      day1Route,
		},
		{
			ID:         2,
			Name:       "Day 2: Bodmin to Exeter",
			Date:       "2024-09-03",
			Distance:   132.5,
			StartPoint: &day2Route[0],
			EndPoint:   &day2Route[len(day2Route)-1],
			Route:      day2Route,
		},
	}
}
