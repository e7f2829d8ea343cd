package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/addis-care/market-cli/internal/aggregate"
	"github.com/addis-care/market-cli/internal/model"
	"github.com/addis-care/market-cli/internal/report"
	"github.com/addis-care/market-cli/internal/risk"
)

var (
	scoreGranularity string
	scoreCalibrate   bool
	scoreCSV         bool
	scoreTop         int
)

var scoreCmd = &cobra.Command{
	Use:   "score <extract>",
	Short: "Score geographic keys for Medicaid-dependency risk",
	Long:  "Aggregates the extract and prints the flagged keys with score, tier, and flags. Skips the revenue and opportunity stages.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		granularity, err := model.ParseGranularity(scoreGranularity)
		if err != nil {
			return err
		}

		loaded, err := loadRecords(args[0])
		if err != nil {
			return err
		}

		aggRes := aggregate.Build(loaded.Records, granularity)

		riskCfg := cfg.Risk
		if scoreCalibrate {
			var scores []float64
			for _, agg := range aggRes.Aggregates {
				if !risk.Eligible(agg, riskCfg) {
					continue
				}
				if a, err := risk.Score(agg, riskCfg); err == nil {
					scores = append(scores, a.Score)
				}
			}
			riskCfg = risk.Calibrate(scores, riskCfg)
		}

		assessments, _ := risk.Assess(aggRes.Aggregates, riskCfg)

		if scoreCSV {
			result := &model.AnalysisResult{Aggregates: aggRes.Aggregates, Assessments: assessments}
			return report.WriteRiskCSV(os.Stdout, result)
		}

		printScoreTable(assessments, scoreTop)
		return nil
	},
}

func printScoreTable(assessments map[string]model.RiskAssessment, top int) {
	sorted := make([]model.RiskAssessment, 0, len(assessments))
	for _, a := range assessments {
		sorted = append(sorted, a)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].Key < sorted[j].Key
	})
	if top > 0 && len(sorted) > top {
		sorted = sorted[:top]
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tSTATE\tPROVIDERS\tSCORE\tTIER\tFLAGS")
	for _, a := range sorted {
		flags := make([]string, len(a.Flags))
		for i, f := range a.Flags {
			flags[i] = string(f)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%.3f\t%s\t%s\n",
			a.Key, a.State, a.Total, a.Score, a.Tier, strings.Join(flags, ","))
	}
	w.Flush() //nolint:errcheck
}

func init() {
	scoreCmd.Flags().StringVarP(&scoreGranularity, "granularity", "g", "zip", "grouping key: zip or state")
	scoreCmd.Flags().BoolVar(&scoreCalibrate, "calibrate", false, "re-derive tier bands from this extract's score distribution")
	scoreCmd.Flags().BoolVar(&scoreCSV, "csv", false, "emit the full risk table as CSV on stdout")
	scoreCmd.Flags().IntVar(&scoreTop, "top", 25, "limit the table to the top N keys (0 for all)")
	rootCmd.AddCommand(scoreCmd)
}
