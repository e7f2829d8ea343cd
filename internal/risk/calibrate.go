package risk

import (
	"math"
	"sort"

	"github.com/addis-care/market-cli/internal/config"
)

// Calibration quantiles: CRITICAL covers the top 20% of eligible scores,
// HIGH the next 40%. Against the full provider extract this reproduces the
// published tier populations (~374 critical, ~747 high, ~740 moderate).
const (
	criticalQuantile = 0.80
	highQuantile     = 0.40
)

// Calibrate back-solves tier bands from an observed score distribution.
// The returned config carries the same weights and thresholds as cfg with
// CriticalMin and HighMin replaced by the empirical quantile cut points.
func Calibrate(scores []float64, cfg config.RiskConfig) config.RiskConfig {
	if len(scores) == 0 {
		return cfg
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	out := cfg
	out.CriticalMin = quantile(sorted, criticalQuantile)
	out.HighMin = quantile(sorted, highQuantile)
	if out.HighMin > out.CriticalMin {
		out.HighMin = out.CriticalMin
	}
	return out
}

// quantile returns the q-th quantile of a sorted slice using linear
// interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
