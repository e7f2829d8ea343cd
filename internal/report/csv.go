// Package report serializes analysis results as tabular rows and summary
// documents for downstream dashboard and spreadsheet consumers.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/addis-care/market-cli/internal/model"
)

// RiskHeader is the column set of the risk table, one row per geographic
// key.
var RiskHeader = []string{
	"key", "state", "total_providers", "alf_count", "hcbs_count",
	"alf_pct", "hcbs_pct", "score", "tier", "flags",
}

// RiskRows flattens the assessments into sorted rows (ascending by key).
func RiskRows(result *model.AnalysisResult) [][]string {
	keys := make([]string, 0, len(result.Assessments))
	for key := range result.Assessments {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	counts := countsByKey(result.Aggregates)

	rows := make([][]string, 0, len(keys))
	for _, key := range keys {
		a := result.Assessments[key]
		flags := make([]string, len(a.Flags))
		for i, f := range a.Flags {
			flags[i] = string(f)
		}
		rows = append(rows, []string{
			a.Key,
			a.State,
			strconv.Itoa(a.Total),
			strconv.Itoa(counts[key][model.ProviderALF]),
			strconv.Itoa(counts[key][model.ProviderHCBS]),
			fmt.Sprintf("%.1f", a.ALFPct),
			fmt.Sprintf("%.1f", a.HCBSPct),
			fmt.Sprintf("%.3f", a.Score),
			a.Tier.String(),
			strings.Join(flags, "|"),
		})
	}
	return rows
}

// RevenueHeader is the column set of the revenue table, one row per year
// per scenario.
var RevenueHeader = []string{
	"scenario", "year", "adoption_rate",
	"alf_adopted", "hcbs_adopted",
	"alf_annual_revenue", "hcbs_annual_revenue",
	"monthly_revenue", "annual_revenue",
}

// RevenueRows flattens the scenario projections into rows, scenarios
// sorted by name, years in order.
func RevenueRows(result *model.AnalysisResult) [][]string {
	names := make([]string, 0, len(result.Scenarios))
	for name := range result.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	var rows [][]string
	for _, name := range names {
		sc := result.Scenarios[name]
		for _, yp := range sc.Years {
			alf := yp.ByType[model.ProviderALF]
			hcbs := yp.ByType[model.ProviderHCBS]
			rows = append(rows, []string{
				sc.Name,
				strconv.Itoa(yp.Year),
				fmt.Sprintf("%.3f", yp.AdoptionRate),
				strconv.Itoa(alf.AdoptedFacilities),
				strconv.Itoa(hcbs.AdoptedFacilities),
				fmt.Sprintf("%.2f", alf.AnnualRevenue),
				fmt.Sprintf("%.2f", hcbs.AnnualRevenue),
				fmt.Sprintf("%.2f", yp.Monthly),
				fmt.Sprintf("%.2f", yp.Annual),
			})
		}
	}
	return rows
}

// OpportunityHeader is the column set of the opportunity ranking table.
var OpportunityHeader = []string{"key", "state", "total_providers", "score", "level"}

// OpportunityRows flattens the opportunity ranking, preserving rank order.
func OpportunityRows(result *model.AnalysisResult) [][]string {
	rows := make([][]string, 0, len(result.Opportunities))
	for _, o := range result.Opportunities {
		rows = append(rows, []string{
			o.Key,
			o.State,
			strconv.Itoa(o.Total),
			fmt.Sprintf("%.1f", o.Score),
			o.Level,
		})
	}
	return rows
}

// WriteRiskCSV writes the risk table to w.
func WriteRiskCSV(w io.Writer, result *model.AnalysisResult) error {
	return writeCSV(w, RiskHeader, RiskRows(result))
}

// WriteRevenueCSV writes the revenue table to w.
func WriteRevenueCSV(w io.Writer, result *model.AnalysisResult) error {
	return writeCSV(w, RevenueHeader, RevenueRows(result))
}

// WriteOpportunityCSV writes the opportunity ranking to w.
func WriteOpportunityCSV(w io.Writer, result *model.AnalysisResult) error {
	return writeCSV(w, OpportunityHeader, OpportunityRows(result))
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "report: write csv header")
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return eris.Wrap(err, "report: write csv row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "report: flush csv")
}

// countsByKey indexes per-type counts for row assembly.
func countsByKey(aggs []model.GeoAggregate) map[string]map[model.ProviderType]int {
	out := make(map[string]map[model.ProviderType]int, len(aggs))
	for _, agg := range aggs {
		out[agg.Key] = agg.TypeCounts
	}
	return out
}
