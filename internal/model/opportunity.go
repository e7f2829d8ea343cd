package model

// Opportunity levels.
const (
	OpportunityPremium = "PREMIUM"
	OpportunityHigh    = "HIGH"
	OpportunityMedium  = "MEDIUM"
)

// OpportunityAssessment is the market-entry attractiveness score for one
// geographic key.
type OpportunityAssessment struct {
	Key      string  `json:"key"`
	State    string  `json:"state"`
	Score    float64 `json:"score"`
	Level    string  `json:"level"`
	Eligible bool    `json:"eligible"`
	Total    int     `json:"total"`
}

// GeoContext is the spatial enrichment for one geographic key.
type GeoContext struct {
	Key string `json:"key"`

	// Centroid of the key's geocoded records, WKT POINT(lon lat) for map
	// consumers.
	CentroidWKT string  `json:"centroid_wkt"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`

	NearestMetro string  `json:"nearest_metro"`
	MetroKM      float64 `json:"metro_km"`
	Class        string  `json:"class"`
}
