// Package pipeline wires the analysis stages: aggregate provider records,
// score geographic keys for Medicaid-dependency risk, rank market
// opportunity, and project scenario revenue. One synchronous pass; each
// stage consumes the prior stage's full output.
package pipeline

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/addis-care/market-cli/internal/aggregate"
	"github.com/addis-care/market-cli/internal/config"
	"github.com/addis-care/market-cli/internal/geo"
	"github.com/addis-care/market-cli/internal/model"
	"github.com/addis-care/market-cli/internal/opportunity"
	"github.com/addis-care/market-cli/internal/revenue"
	"github.com/addis-care/market-cli/internal/risk"
)

// Options configures one analysis run.
type Options struct {
	Granularity model.Granularity
	Risk        config.RiskConfig
	Opportunity config.OpportunityConfig
	Scenarios   []model.ScenarioConfig

	// EnrichGeo adds centroid/metro context for keys with coordinates.
	EnrichGeo bool

	// CalibrateTiers re-derives the tier bands from this run's score
	// distribution instead of using the configured cut points.
	CalibrateTiers bool
}

// DefaultOptions returns a run over ZIP granularity with the published
// constants and scenarios.
func DefaultOptions() Options {
	return Options{
		Granularity: model.GranularityZIP,
		Risk:        risk.DefaultConfig(),
		Opportunity: opportunity.DefaultConfig(),
		Scenarios:   revenue.DefaultScenarios(),
		EnrichGeo:   true,
	}
}

// Run executes the full pipeline over already-loaded records. Errors are
// local to a key or scenario; the run always completes and reports skipped
// inputs in the result.
func Run(ctx context.Context, records []model.ProviderRecord, opts Options) (*model.AnalysisResult, error) {
	if err := risk.ValidateConfig(opts.Risk); err != nil {
		return nil, err
	}
	if len(opts.Scenarios) == 0 {
		return nil, eris.New("pipeline: at least one scenario is required")
	}

	log := zap.L().With(zap.String("component", "pipeline"))

	// Stage 1: aggregate.
	aggRes := aggregate.Build(records, opts.Granularity)

	// Stage 2: risk scoring, optionally with bands calibrated against this
	// run's own eligible-score distribution.
	riskCfg := opts.Risk
	if opts.CalibrateTiers {
		riskCfg = risk.Calibrate(eligibleScores(aggRes.Aggregates, opts.Risk), opts.Risk)
		log.Info("tier bands calibrated",
			zap.Float64("critical_min", riskCfg.CriticalMin),
			zap.Float64("high_min", riskCfg.HighMin),
		)
	}
	assessments, skipped := risk.Assess(aggRes.Aggregates, riskCfg)

	// Stage 3: opportunity ranking.
	opportunities := opportunity.Rank(aggRes.Aggregates, opts.Opportunity, opts.Granularity)

	// Stage 4: revenue projection over the full provider counts.
	counts := aggregate.CountsByType(aggRes.Aggregates)
	scenarios, failedScenarios := revenue.ProjectAll(ctx, counts, opts.Scenarios)

	result := &model.AnalysisResult{
		Granularity:     opts.Granularity,
		Loaded:          len(records),
		Excluded:        aggRes.Excluded,
		Aggregates:      aggRes.Aggregates,
		Assessments:     assessments,
		Scenarios:       scenarios,
		Opportunities:   opportunities,
		SkippedKeys:     skipped,
		FailedScenarios: failedScenarios,
	}

	if opts.EnrichGeo {
		result.Geo = geo.Enrich(records, opts.Granularity)
	}

	log.Info("analysis complete",
		zap.String("granularity", string(opts.Granularity)),
		zap.Int("records", len(records)),
		zap.Int("excluded", aggRes.Excluded),
		zap.Int("keys", len(aggRes.Aggregates)),
		zap.Int("risk_flagged", len(assessments)),
		zap.Int("skipped_keys", skipped),
		zap.Int("scenarios", len(scenarios)),
		zap.Strings("failed_scenarios", failedScenarios),
	)

	return result, nil
}

// eligibleScores computes the raw scores of the risk-eligible aggregates,
// the population Calibrate derives cut points from.
func eligibleScores(aggs []model.GeoAggregate, cfg config.RiskConfig) []float64 {
	var scores []float64
	for _, agg := range aggs {
		if !risk.Eligible(agg, cfg) {
			continue
		}
		assessment, err := risk.Score(agg, cfg)
		if err != nil {
			continue
		}
		scores = append(scores, assessment.Score)
	}
	return scores
}
