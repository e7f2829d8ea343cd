package risk

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/addis-care/market-cli/internal/config"
	"github.com/addis-care/market-cli/internal/model"
)

// ErrInvalidAggregate marks an aggregate with out-of-range values reaching
// the scorer. Scoring aborts for that one key only.
var ErrInvalidAggregate = eris.New("risk: invalid aggregate")

// Score computes the weighted risk score and tier for one aggregate.
// The score is monotonically non-decreasing in HCBS percentage, total
// provider count, and ALF percentage.
func Score(agg model.GeoAggregate, cfg config.RiskConfig) (model.RiskAssessment, error) {
	if err := validateAggregate(agg); err != nil {
		return model.RiskAssessment{}, err
	}

	hcbsPct := agg.Pct(model.ProviderHCBS)
	alfPct := agg.Pct(model.ProviderALF)

	score := hcbsPct*cfg.HCBSPctWeight +
		float64(agg.Total)*cfg.DensityWeight +
		alfPct*cfg.ALFPctWeight

	var flags []model.RiskFlag
	if hcbsPct > cfg.HCBSDominantPct {
		flags = append(flags, model.FlagHCBSDominant)
	}
	if agg.Total > cfg.HighDensityMin {
		flags = append(flags, model.FlagHighDensity)
	}
	if alfPct > cfg.ALFHeavyPct {
		flags = append(flags, model.FlagALFHeavy)
	}

	return model.RiskAssessment{
		Key:     agg.Key,
		State:   agg.State,
		Score:   score,
		Tier:    TierFor(score, cfg),
		Flags:   flags,
		Total:   agg.Total,
		HCBSPct: hcbsPct,
		ALFPct:  alfPct,
	}, nil
}

// TierFor maps a score onto the configured bands. Same score, same tier,
// always.
func TierFor(score float64, cfg config.RiskConfig) model.RiskTier {
	switch {
	case score >= cfg.CriticalMin:
		return model.TierCritical
	case score >= cfg.HighMin:
		return model.TierHigh
	default:
		return model.TierModerate
	}
}

// Eligible reports whether a key enters the risk set: a minimum market size
// plus at least one risk flag.
func Eligible(agg model.GeoAggregate, cfg config.RiskConfig) bool {
	if agg.Total < cfg.MinProviders {
		return false
	}
	return agg.Pct(model.ProviderHCBS) > cfg.HCBSDominantPct ||
		agg.Total > cfg.HighDensityMin ||
		agg.Pct(model.ProviderALF) > cfg.ALFHeavyPct
}

// Assess scores every aggregate and keeps the eligible ones. Invalid
// aggregates are skipped and counted regardless of eligibility, so the run
// summary accounts for every bad key; the run never aborts on one.
func Assess(aggs []model.GeoAggregate, cfg config.RiskConfig) (map[string]model.RiskAssessment, int) {
	out := make(map[string]model.RiskAssessment)
	var skipped int

	for _, agg := range aggs {
		assessment, err := Score(agg, cfg)
		if err != nil {
			skipped++
			zap.L().Warn("risk: aggregate skipped",
				zap.String("key", agg.Key),
				zap.Error(err),
			)
			continue
		}
		if !Eligible(agg, cfg) {
			continue
		}
		out[agg.Key] = assessment
	}

	return out, skipped
}

// validateAggregate rejects aggregates the upstream guard should have
// filtered: zero or negative totals, negative counts, percentages outside
// [0, 100].
func validateAggregate(agg model.GeoAggregate) error {
	if agg.Total <= 0 {
		return eris.Wrapf(ErrInvalidAggregate, "key %s: total must be positive (got %d)", agg.Key, agg.Total)
	}
	for t, n := range agg.TypeCounts {
		if n < 0 {
			return eris.Wrapf(ErrInvalidAggregate, "key %s: negative count for %s", agg.Key, t)
		}
	}
	for t, pct := range agg.TypePcts {
		if pct < 0 || pct > 100 {
			return eris.Wrapf(ErrInvalidAggregate, "key %s: %s percentage %.2f outside [0, 100]", agg.Key, t, pct)
		}
	}
	return nil
}
