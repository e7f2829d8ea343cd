// Package opportunity ranks geographic keys by market-entry attractiveness.
// Higher provider density means easier penetration, the inverse lens of the
// risk scorer.
package opportunity

import (
	"sort"

	"github.com/addis-care/market-cli/internal/config"
	"github.com/addis-care/market-cli/internal/model"
)

// DefaultConfig returns the published opportunity constants: ALF facilities
// weighted double as the primary target, HCBS agencies single, plus a
// half-weight density bonus.
func DefaultConfig() config.OpportunityConfig {
	return config.OpportunityConfig{
		ALFWeight:     2,
		HCBSWeight:    1,
		DensityWeight: 0.5,

		PremiumMin:      200,
		HighMin:         100,
		StatePremiumMin: 10000,
		StateHighMin:    5000,

		MinProviders: 10,
		MinALF:       5,
		MinHCBS:      20,
	}
}

// Score computes the opportunity assessment for one aggregate. The level
// bands differ by granularity: a state aggregates far more providers than
// any single ZIP.
func Score(agg model.GeoAggregate, cfg config.OpportunityConfig, g model.Granularity) model.OpportunityAssessment {
	alf := agg.Count(model.ProviderALF)
	hcbs := agg.Count(model.ProviderHCBS)

	score := float64(alf)*cfg.ALFWeight +
		float64(hcbs)*cfg.HCBSWeight +
		float64(agg.Total)*cfg.DensityWeight

	// Levels band on raw provider count, not the weighted score; a market
	// can rank high on score while its level stays MEDIUM.
	premiumMin, highMin := cfg.PremiumMin, cfg.HighMin
	if g == model.GranularityState {
		premiumMin, highMin = cfg.StatePremiumMin, cfg.StateHighMin
	}
	level := model.OpportunityMedium
	switch {
	case agg.Total >= premiumMin:
		level = model.OpportunityPremium
	case agg.Total >= highMin:
		level = model.OpportunityHigh
	}

	eligible := agg.Total >= cfg.MinProviders &&
		(alf >= cfg.MinALF || hcbs >= cfg.MinHCBS)

	return model.OpportunityAssessment{
		Key:      agg.Key,
		State:    agg.State,
		Score:    score,
		Level:    level,
		Eligible: eligible,
		Total:    agg.Total,
	}
}

// Rank scores every aggregate and returns the eligible ones, highest score
// first.
func Rank(aggs []model.GeoAggregate, cfg config.OpportunityConfig, g model.Granularity) []model.OpportunityAssessment {
	var out []model.OpportunityAssessment
	for _, agg := range aggs {
		a := Score(agg, cfg, g)
		if a.Eligible {
			out = append(out, a)
		}
	}
	// Score descending, key ascending on ties, so ranked reports are
	// reproducible.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Key < out[j].Key
	})
	return out
}
