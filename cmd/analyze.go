package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/addis-care/market-cli/internal/model"
	"github.com/addis-care/market-cli/internal/pipeline"
	"github.com/addis-care/market-cli/internal/report"
)

var (
	analyzeGranularity    string
	analyzeScenarioFile   string
	analyzeCalibrate      bool
	analyzeSkipGeo        bool
	analyzeSave           bool
	analyzeRiskCSV        string
	analyzeRevenueCSV     string
	analyzeOpportunityCSV string
	analyzeXLSX           string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <extract>",
	Short: "Run the full market analysis over a provider extract",
	Long:  "Aggregates the extract by geography, scores risk, ranks opportunity, projects scenario revenue, and prints a markdown summary. CSV and XLSX exports are optional.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		source := args[0]

		granularity, err := model.ParseGranularity(analyzeGranularity)
		if err != nil {
			return err
		}
		scenarios, err := loadScenarios(analyzeScenarioFile)
		if err != nil {
			return err
		}

		loaded, err := loadRecords(source)
		if err != nil {
			return err
		}

		opts := pipeline.DefaultOptions()
		opts.Granularity = granularity
		opts.Scenarios = scenarios
		opts.Risk = cfg.Risk
		opts.Opportunity = cfg.Opportunity
		opts.EnrichGeo = cfg.Analysis.EnrichGeo && !analyzeSkipGeo
		opts.CalibrateTiers = analyzeCalibrate

		result, err := pipeline.Run(ctx, loaded.Records, opts)
		if err != nil {
			return err
		}
		// Fold rows the loader dropped into the run totals so the summary
		// accounts for every input row.
		result.Loaded += loaded.Excluded
		result.Excluded += loaded.Excluded

		if analyzeSave {
			if err := persistRun(cmd, source, result); err != nil {
				return err
			}
		}

		if err := exportResults(result); err != nil {
			return err
		}

		fmt.Fprint(os.Stdout, report.MarkdownSummary(result))
		return nil
	},
}

func persistRun(cmd *cobra.Command, source string, result *model.AnalysisResult) error {
	ctx := cmd.Context()

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck
	if err := st.Migrate(ctx); err != nil {
		return err
	}

	run, err := st.CreateRun(ctx, source, result.Granularity)
	if err != nil {
		return err
	}
	if err := st.UpdateRunResult(ctx, run.ID, result); err != nil {
		return err
	}

	zap.L().Info("run saved", zap.String("run_id", run.ID))
	fmt.Fprintf(os.Stderr, "Saved run %s\n", run.ID)
	return nil
}

func exportResults(result *model.AnalysisResult) error {
	writers := []struct {
		path  string
		write func(*os.File) error
	}{
		{analyzeRiskCSV, func(f *os.File) error { return report.WriteRiskCSV(f, result) }},
		{analyzeRevenueCSV, func(f *os.File) error { return report.WriteRevenueCSV(f, result) }},
		{analyzeOpportunityCSV, func(f *os.File) error { return report.WriteOpportunityCSV(f, result) }},
	}

	for _, w := range writers {
		if w.path == "" {
			continue
		}
		f, err := os.Create(w.path)
		if err != nil {
			return eris.Wrapf(err, "create %s", w.path)
		}
		if err := w.write(f); err != nil {
			f.Close() //nolint:errcheck
			return err
		}
		if err := f.Close(); err != nil {
			return eris.Wrapf(err, "close %s", w.path)
		}
	}

	if analyzeXLSX != "" {
		if err := report.WriteXLSX(analyzeXLSX, result); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeGranularity, "granularity", "g", "zip", "grouping key: zip or state")
	analyzeCmd.Flags().StringVar(&analyzeScenarioFile, "scenarios", "", "YAML scenario definitions (default: built-in conservative and high-risk)")
	analyzeCmd.Flags().BoolVar(&analyzeCalibrate, "calibrate", false, "re-derive tier bands from this extract's score distribution")
	analyzeCmd.Flags().BoolVar(&analyzeSkipGeo, "skip-geo", false, "skip centroid/metro enrichment")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the run to the configured store")
	analyzeCmd.Flags().StringVar(&analyzeRiskCSV, "risk-csv", "", "write the risk table to this CSV file")
	analyzeCmd.Flags().StringVar(&analyzeRevenueCSV, "revenue-csv", "", "write the revenue table to this CSV file")
	analyzeCmd.Flags().StringVar(&analyzeOpportunityCSV, "opportunity-csv", "", "write the opportunity ranking to this CSV file")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "write all tables to this XLSX workbook")
	rootCmd.AddCommand(analyzeCmd)
}
