package model

// RiskTier is the ordinal Medicaid-dependency classification of a key.
// Ordering: TierModerate < TierHigh < TierCritical.
type RiskTier int

const (
	TierModerate RiskTier = iota
	TierHigh
	TierCritical
)

// String returns the report label for the tier.
func (t RiskTier) String() string {
	switch t {
	case TierCritical:
		return "CRITICAL"
	case TierHigh:
		return "HIGH"
	default:
		return "MODERATE"
	}
}

// RiskFlag marks an independent vulnerability signal; a key may carry several.
type RiskFlag string

const (
	FlagHCBSDominant RiskFlag = "HCBS_DOMINANT"
	FlagHighDensity  RiskFlag = "HIGH_DENSITY"
	FlagALFHeavy     RiskFlag = "ALF_HEAVY"
)

// RiskAssessment is the scored output for one geographic key.
type RiskAssessment struct {
	Key   string `json:"key"`
	State string `json:"state"`

	Score float64    `json:"score"`
	Tier  RiskTier   `json:"tier"`
	Flags []RiskFlag `json:"flags,omitempty"`

	// Inputs echoed for report rows.
	Total   int     `json:"total"`
	HCBSPct float64 `json:"hcbs_pct"`
	ALFPct  float64 `json:"alf_pct"`
}

// HasFlag reports whether the assessment carries the given flag.
func (a RiskAssessment) HasFlag(f RiskFlag) bool {
	for _, have := range a.Flags {
		if have == f {
			return true
		}
	}
	return false
}
