package model

import "time"

// RunStatus tracks a stored analysis run.
type RunStatus string

const (
	RunStatusQueued   RunStatus = "queued"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusFailed   RunStatus = "failed"
)

// Run is a persisted analysis run.
type Run struct {
	ID          string          `json:"id"`
	Source      string          `json:"source"` // input file path or label
	Granularity Granularity     `json:"granularity"`
	Status      RunStatus       `json:"status"`
	Result      *AnalysisResult `json:"result,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AnalysisResult is the full output of one pipeline run. Every map is keyed
// by geographic key (ZIP or state) except Scenarios, keyed by scenario name.
type AnalysisResult struct {
	Granularity Granularity `json:"granularity"`

	Loaded   int `json:"loaded"`   // input rows read from the extract
	Excluded int `json:"excluded"` // malformed rows dropped at load/aggregation

	Aggregates  []GeoAggregate            `json:"aggregates"`
	Assessments map[string]RiskAssessment `json:"assessments"`
	Scenarios   map[string]ScenarioResult `json:"scenarios"`

	// Supplementary outputs: opportunity ranking (highest score first) and
	// spatial context for keys with geocoded records.
	Opportunities []OpportunityAssessment `json:"opportunities,omitempty"`
	Geo           map[string]GeoContext   `json:"geo,omitempty"`

	// Keys that failed scoring and scenarios that failed projection. The
	// run completes regardless; these are surfaced as warnings.
	SkippedKeys     int      `json:"skipped_keys"`
	FailedScenarios []string `json:"failed_scenarios,omitempty"`
}

// TypeCounts returns total provider counts by type across all aggregates.
func (r *AnalysisResult) TypeCounts() map[ProviderType]int {
	counts := make(map[ProviderType]int)
	for _, agg := range r.Aggregates {
		for t, n := range agg.TypeCounts {
			counts[t] += n
		}
	}
	return counts
}
