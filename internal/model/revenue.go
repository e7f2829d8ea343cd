package model

// SizeTier is one bucket of a facility-size distribution.
type SizeTier struct {
	Label string  `json:"label" yaml:"label"`
	Value float64 `json:"value" yaml:"value"` // residents or clients per facility
	Share float64 `json:"share" yaml:"share"` // population share, shares sum to 1.0
}

// ScenarioConfig holds the assumptions for one named revenue scenario.
// All fields are required; there are no implicit defaults.
type ScenarioConfig struct {
	Name         string                      `json:"name" yaml:"name"`
	PricePerUnit float64                     `json:"price_per_unit" yaml:"price_per_unit"` // per resident/client per month
	Sizes        map[ProviderType][]SizeTier `json:"sizes" yaml:"sizes"`
	AdoptionRate []float64                   `json:"adoption_rate" yaml:"adoption_rate"` // one rate per projection year
}

// TypeProjection is the per-type revenue figure for one year.
type TypeProjection struct {
	AdoptedFacilities int     `json:"adopted_facilities"`
	WeightedAvgSize   float64 `json:"weighted_avg_size"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	AnnualRevenue     float64 `json:"annual_revenue"`
}

// YearProjection is one projection year across provider types.
type YearProjection struct {
	Year         int                             `json:"year"` // 1-based
	AdoptionRate float64                         `json:"adoption_rate"`
	ByType       map[ProviderType]TypeProjection `json:"by_type"`
	Monthly      float64                         `json:"monthly_revenue"`
	Annual       float64                         `json:"annual_revenue"`
}

// ScenarioResult is the computed output of one scenario.
type ScenarioResult struct {
	Name     string           `json:"name"`
	Years    []YearProjection `json:"years"`
	Warnings []string         `json:"warnings,omitempty"`
}
