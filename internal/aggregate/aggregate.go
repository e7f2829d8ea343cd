// Package aggregate groups provider records by geographic key and computes
// per-type counts and percentages.
package aggregate

import (
	"sort"

	"go.uber.org/zap"

	"github.com/addis-care/market-cli/internal/model"
)

// Result is the aggregator output: one GeoAggregate per distinct key,
// sorted ascending by key, plus the count of records excluded for a
// missing geographic key.
type Result struct {
	Aggregates []model.GeoAggregate
	Excluded   int
}

// Build partitions records by the selected granularity. It is a pure
// function of its input; a key with zero usable records never appears.
func Build(records []model.ProviderRecord, g model.Granularity) Result {
	byKey := make(map[string]*model.GeoAggregate)
	var excluded int

	for _, rec := range records {
		key := rec.Key(g)
		if key == "" {
			excluded++
			continue
		}

		agg, ok := byKey[key]
		if !ok {
			agg = &model.GeoAggregate{
				Key:        key,
				State:      rec.State,
				TypeCounts: make(map[model.ProviderType]int),
				TypePcts:   make(map[model.ProviderType]float64),
			}
			byKey[key] = agg
		}

		agg.Total++
		agg.TypeCounts[rec.Type]++

		if rec.MedicareEnrolled != nil {
			agg.MedicareKnown++
			if *rec.MedicareEnrolled {
				agg.MedicareEnrolled++
			}
		}
		if rec.MedicaidEnrolled != nil {
			agg.MedicaidKnown++
			if *rec.MedicaidEnrolled {
				agg.MedicaidEnrolled++
			}
		}
	}

	keys := make([]string, 0, len(byKey))
	for key := range byKey {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]model.GeoAggregate, 0, len(keys))
	for _, key := range keys {
		agg := byKey[key]
		for _, t := range model.AllProviderTypes() {
			agg.TypePcts[t] = float64(agg.TypeCounts[t]) / float64(agg.Total) * 100
		}
		out = append(out, *agg)
	}

	if excluded > 0 {
		zap.L().Warn("aggregate: records excluded for missing geographic key",
			zap.Int("excluded", excluded),
			zap.String("granularity", string(g)),
		)
	}

	return Result{Aggregates: out, Excluded: excluded}
}

// CountsByType sums per-type provider counts across aggregates. The revenue
// projector consumes these totals.
func CountsByType(aggs []model.GeoAggregate) map[model.ProviderType]int {
	counts := make(map[model.ProviderType]int)
	for _, agg := range aggs {
		for t, n := range agg.TypeCounts {
			counts[t] += n
		}
	}
	return counts
}
