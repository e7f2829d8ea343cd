package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/addis-care/market-cli/internal/aggregate"
	"github.com/addis-care/market-cli/internal/model"
	"github.com/addis-care/market-cli/internal/report"
	"github.com/addis-care/market-cli/internal/revenue"
)

var (
	projectScenarioFile string
	projectALFCount     int
	projectHCBSCount    int
	projectCSV          bool
)

var projectCmd = &cobra.Command{
	Use:   "project [extract]",
	Short: "Project scenario revenue from provider counts",
	Long:  "Runs the revenue scenarios against provider counts taken from an extract, or from --alf/--hcbs when no extract is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		counts := map[model.ProviderType]int{
			model.ProviderALF:  projectALFCount,
			model.ProviderHCBS: projectHCBSCount,
		}
		if len(args) == 1 {
			loaded, err := loadRecords(args[0])
			if err != nil {
				return err
			}
			aggRes := aggregate.Build(loaded.Records, model.GranularityZIP)
			counts = aggregate.CountsByType(aggRes.Aggregates)
		}

		scenarios, err := loadScenarios(projectScenarioFile)
		if err != nil {
			return err
		}

		results, failed := revenue.ProjectAll(ctx, counts, scenarios)
		for _, name := range failed {
			fmt.Fprintf(os.Stderr, "scenario %q failed validation\n", name)
		}

		if projectCSV {
			result := &model.AnalysisResult{Scenarios: results}
			return report.WriteRevenueCSV(os.Stdout, result)
		}

		printProjectionTable(counts, results)
		return nil
	},
}

func printProjectionTable(counts map[model.ProviderType]int, results map[string]model.ScenarioResult) {
	fmt.Printf("Market: %d ALF, %d HCBS\n\n",
		counts[model.ProviderALF], counts[model.ProviderHCBS])

	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range names {
		sc := results[name]
		fmt.Fprintf(w, "%s\n", sc.Name)
		fmt.Fprintln(w, "  YEAR\tADOPTION\tALF\tHCBS\tMONTHLY\tANNUAL")
		for _, yp := range sc.Years {
			alf := yp.ByType[model.ProviderALF]
			hcbs := yp.ByType[model.ProviderHCBS]
			fmt.Fprintf(w, "  %d\t%.1f%%\t%d\t%d\t%s\t%s\n",
				yp.Year, yp.AdoptionRate*100,
				alf.AdoptedFacilities, hcbs.AdoptedFacilities,
				report.FormatDollars(yp.Monthly), report.FormatDollars(yp.Annual))
		}
		for _, warning := range sc.Warnings {
			fmt.Fprintf(w, "  ! %s\n", warning)
		}
		fmt.Fprintln(w)
	}
	w.Flush() //nolint:errcheck
}

func init() {
	projectCmd.Flags().StringVar(&projectScenarioFile, "scenarios", "", "YAML scenario definitions (default: built-in conservative and high-risk)")
	projectCmd.Flags().IntVar(&projectALFCount, "alf", 0, "ALF facility count when no extract is given")
	projectCmd.Flags().IntVar(&projectHCBSCount, "hcbs", 0, "HCBS agency count when no extract is given")
	projectCmd.Flags().BoolVar(&projectCSV, "csv", false, "emit the revenue table as CSV on stdout")
	rootCmd.AddCommand(projectCmd)
}
