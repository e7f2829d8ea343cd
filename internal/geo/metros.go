package geo

import "math"

// Metro is a major metropolitan center used as a density reference point.
type Metro struct {
	Name string
	Lat  float64
	Lon  float64
}

// metros covers the principal cities of the largest CBSAs in the states
// the provider extract spans, plus the national top metros so state-level
// keys classify sensibly.
var metros = []Metro{
	{"New York", 40.7128, -74.0060},
	{"Los Angeles", 34.0522, -118.2437},
	{"Chicago", 41.8781, -87.6298},
	{"Houston", 29.7604, -95.3698},
	{"Dallas", 32.7767, -96.7970},
	{"Phoenix", 33.4484, -112.0740},
	{"Philadelphia", 39.9526, -75.1652},
	{"San Francisco", 37.7749, -122.4194},
	{"San Diego", 32.7157, -117.1611},
	{"Sacramento", 38.5816, -121.4944},
	{"Miami", 25.7617, -80.1918},
	{"Tampa", 27.9506, -82.4572},
	{"Orlando", 28.5384, -81.3789},
	{"Jacksonville", 30.3322, -81.6557},
	{"Atlanta", 33.7490, -84.3880},
	{"Boston", 42.3601, -71.0589},
	{"Seattle", 47.6062, -122.3321},
	{"Denver", 39.7392, -104.9903},
	{"Detroit", 42.3314, -83.0458},
	{"Minneapolis", 44.9778, -93.2650},
	{"San Antonio", 29.4241, -98.4936},
	{"Austin", 30.2672, -97.7431},
	{"Columbus", 39.9612, -82.9988},
	{"Cleveland", 41.4993, -81.6944},
	{"Charlotte", 35.2271, -80.8431},
	{"Portland", 45.5152, -122.6784},
	{"Pittsburgh", 40.4406, -79.9959},
	{"St. Louis", 38.6270, -90.1994},
	{"Baltimore", 39.2904, -76.6122},
	{"Washington", 38.9072, -77.0369},
}

const earthRadiusKM = 6371.0

// NearestMetro returns the closest metro center and its distance in
// kilometers.
func NearestMetro(lat, lon float64) (Metro, float64) {
	best := metros[0]
	bestKM := Haversine(lat, lon, best.Lat, best.Lon)
	for _, m := range metros[1:] {
		if km := Haversine(lat, lon, m.Lat, m.Lon); km < bestKM {
			best, bestKM = m, km
		}
	}
	return best, bestKM
}

// Haversine returns the great-circle distance between two points in
// kilometers.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLon := radians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(a))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
