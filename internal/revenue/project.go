// Package revenue projects adoption-driven revenue from provider counts
// under named scenario assumptions.
package revenue

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/addis-care/market-cli/internal/model"
)

// ErrInvalidScenario marks a malformed scenario configuration. Projection
// aborts for that scenario only.
var ErrInvalidScenario = eris.New("revenue: invalid scenario")

const (
	shareTolerance = 1e-6
	monthsPerYear  = 12
)

// Project computes the per-year, per-type revenue projection for one
// scenario. It is a pure function: the same counts and config always
// produce the same result, and nothing is shared between scenarios.
func Project(counts map[model.ProviderType]int, cfg model.ScenarioConfig) (model.ScenarioResult, error) {
	if err := validateScenario(cfg); err != nil {
		return model.ScenarioResult{}, err
	}
	// A type that exists in the market but has no size distribution would
	// silently project zero revenue; reject the scenario instead.
	for _, t := range model.AllProviderTypes() {
		if counts[t] > 0 {
			if _, ok := cfg.Sizes[t]; !ok {
				return model.ScenarioResult{}, eris.Wrapf(ErrInvalidScenario,
					"%s: no size distribution for %s (%d providers)", cfg.Name, t, counts[t])
			}
		}
	}

	result := model.ScenarioResult{Name: cfg.Name}

	// A later year adopting at a lower rate than an earlier one is almost
	// certainly an input error; flag it but keep going.
	for i := 1; i < len(cfg.AdoptionRate); i++ {
		if cfg.AdoptionRate[i] < cfg.AdoptionRate[i-1] {
			warning := fmt.Sprintf("adoption rate decreases from year %d (%.3f) to year %d (%.3f)",
				i, cfg.AdoptionRate[i-1], i+1, cfg.AdoptionRate[i])
			result.Warnings = append(result.Warnings, warning)
			zap.L().Warn("revenue: suspicious adoption sequence",
				zap.String("scenario", cfg.Name),
				zap.String("detail", warning),
			)
		}
	}

	for year, rate := range cfg.AdoptionRate {
		yp := model.YearProjection{
			Year:         year + 1,
			AdoptionRate: rate,
			ByType:       make(map[model.ProviderType]model.TypeProjection),
		}

		for _, t := range sortedTypes(cfg.Sizes) {
			avgSize := WeightedAvgSize(cfg.Sizes[t])
			adopted := int(math.Round(float64(counts[t]) * rate))
			monthly := float64(adopted) * avgSize * cfg.PricePerUnit

			yp.ByType[t] = model.TypeProjection{
				AdoptedFacilities: adopted,
				WeightedAvgSize:   avgSize,
				MonthlyRevenue:    monthly,
				AnnualRevenue:     monthly * monthsPerYear,
			}
			yp.Monthly += monthly
		}
		yp.Annual = yp.Monthly * monthsPerYear
		result.Years = append(result.Years, yp)
	}

	return result, nil
}

// ProjectAll runs every scenario against the same provider counts.
// Scenarios are independent pure computations, so they run concurrently;
// a failed scenario is reported and does not abort the others.
func ProjectAll(ctx context.Context, counts map[model.ProviderType]int, scenarios []model.ScenarioConfig) (map[string]model.ScenarioResult, []string) {
	var mu sync.Mutex
	results := make(map[string]model.ScenarioResult, len(scenarios))
	var failed []string

	g, _ := errgroup.WithContext(ctx)
	for _, sc := range scenarios {
		g.Go(func() error {
			res, err := Project(counts, sc)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed = append(failed, sc.Name)
				zap.L().Error("revenue: scenario failed",
					zap.String("scenario", sc.Name),
					zap.Error(err),
				)
				return nil
			}
			results[sc.Name] = res
			return nil
		})
	}
	_ = g.Wait()

	sort.Strings(failed)
	return results, failed
}

// WeightedAvgSize returns the expected residents/clients per facility for
// a size distribution.
func WeightedAvgSize(tiers []model.SizeTier) float64 {
	var avg float64
	for _, tier := range tiers {
		avg += tier.Value * tier.Share
	}
	return avg
}

// TotalMarketPotential computes the annual revenue at full adoption, i.e.
// the figure a 100%-adoption scenario year converges to.
func TotalMarketPotential(counts map[model.ProviderType]int, cfg model.ScenarioConfig) float64 {
	var total float64
	for t, tiers := range cfg.Sizes {
		total += float64(counts[t]) * WeightedAvgSize(tiers) * cfg.PricePerUnit * monthsPerYear
	}
	return total
}

// validateScenario checks required fields, adoption ranges, and size-share
// sums.
func validateScenario(cfg model.ScenarioConfig) error {
	if cfg.Name == "" {
		return eris.Wrap(ErrInvalidScenario, "scenario name is required")
	}
	if cfg.PricePerUnit <= 0 {
		return eris.Wrapf(ErrInvalidScenario, "%s: price_per_unit must be positive", cfg.Name)
	}
	if len(cfg.AdoptionRate) == 0 {
		return eris.Wrapf(ErrInvalidScenario, "%s: at least one adoption rate is required", cfg.Name)
	}
	for i, rate := range cfg.AdoptionRate {
		if rate < 0 || rate > 1 {
			return eris.Wrapf(ErrInvalidScenario, "%s: year %d adoption rate %.3f outside [0, 1]", cfg.Name, i+1, rate)
		}
	}
	if len(cfg.Sizes) == 0 {
		return eris.Wrapf(ErrInvalidScenario, "%s: size distributions are required", cfg.Name)
	}
	for t, tiers := range cfg.Sizes {
		if len(tiers) == 0 {
			return eris.Wrapf(ErrInvalidScenario, "%s: empty size distribution for %s", cfg.Name, t)
		}
		var sum float64
		for _, tier := range tiers {
			if tier.Value < 0 || tier.Share < 0 {
				return eris.Wrapf(ErrInvalidScenario, "%s: negative size tier for %s", cfg.Name, t)
			}
			sum += tier.Share
		}
		if math.Abs(sum-1.0) > shareTolerance {
			return eris.Wrapf(ErrInvalidScenario, "%s: %s size shares sum to %.6f, want 1.0", cfg.Name, t, sum)
		}
	}
	return nil
}

// sortedTypes returns the scenario's provider types in stable order so
// per-year totals accumulate deterministically.
func sortedTypes(sizes map[model.ProviderType][]model.SizeTier) []model.ProviderType {
	types := make([]model.ProviderType, 0, len(sizes))
	for t := range sizes {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
