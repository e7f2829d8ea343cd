package model

// GeoAggregate is the per-key rollup produced by the aggregator. It is
// recomputed on every run and never persisted on its own.
type GeoAggregate struct {
	Key   string `json:"key"`
	State string `json:"state"` // equals Key at state granularity

	Total      int                  `json:"total"`
	TypeCounts map[ProviderType]int `json:"type_counts"`

	// Percentages in [0, 100]; sum to 100 when Total > 0.
	TypePcts map[ProviderType]float64 `json:"type_pcts"`

	// Enrollment rollups; Known counts records that carried a flag.
	MedicareKnown    int `json:"medicare_known,omitempty"`
	MedicareEnrolled int `json:"medicare_enrolled,omitempty"`
	MedicaidKnown    int `json:"medicaid_known,omitempty"`
	MedicaidEnrolled int `json:"medicaid_enrolled,omitempty"`
}

// Count returns the count for one provider type.
func (a GeoAggregate) Count(t ProviderType) int {
	return a.TypeCounts[t]
}

// Pct returns the percentage for one provider type.
func (a GeoAggregate) Pct(t ProviderType) float64 {
	return a.TypePcts[t]
}

// MedicaidRate returns the fraction of flagged records enrolled in Medicaid,
// or 0 when the extract carried no enrollment data.
func (a GeoAggregate) MedicaidRate() float64 {
	if a.MedicaidKnown == 0 {
		return 0
	}
	return float64(a.MedicaidEnrolled) / float64(a.MedicaidKnown)
}

// MedicareRate returns the fraction of flagged records enrolled in Medicare.
func (a GeoAggregate) MedicareRate() float64 {
	if a.MedicareKnown == 0 {
		return 0
	}
	return float64(a.MedicareEnrolled) / float64(a.MedicareKnown)
}
