package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/addis-care/market-cli/internal/model"
)

// printer formats dollar figures with thousands separators.
var printer = message.NewPrinter(language.AmericanEnglish)

// FormatDollars renders a revenue figure as a whole-dollar string with
// separators ($6,225,000).
func FormatDollars(amount float64) string {
	return printer.Sprintf("$%.0f", amount)
}

// MarkdownSummary renders the run as a markdown report: market landscape,
// tier distribution, top risk keys, and scenario projections.
func MarkdownSummary(result *model.AnalysisResult) string {
	var sb strings.Builder

	sb.WriteString("# Provider Market Analysis\n\n")

	counts := result.TypeCounts()
	printer.Fprintf(&sb, "Providers analyzed: %d (%d ALF, %d HCBS) across %d %s keys; %d records excluded.\n\n",
		result.Loaded-result.Excluded,
		counts[model.ProviderALF],
		counts[model.ProviderHCBS],
		len(result.Aggregates),
		result.Granularity,
		result.Excluded,
	)

	writeTierSection(&sb, result)
	writeTopRiskSection(&sb, result)
	writeScenarioSection(&sb, result)

	if result.SkippedKeys > 0 || len(result.FailedScenarios) > 0 {
		sb.WriteString("## Warnings\n\n")
		if result.SkippedKeys > 0 {
			fmt.Fprintf(&sb, "- %d keys skipped due to invalid aggregates\n", result.SkippedKeys)
		}
		for _, name := range result.FailedScenarios {
			fmt.Fprintf(&sb, "- scenario %q failed validation\n", name)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeTierSection(sb *strings.Builder, result *model.AnalysisResult) {
	tiers := make(map[model.RiskTier]int)
	for _, a := range result.Assessments {
		tiers[a.Tier]++
	}

	sb.WriteString("## Risk Tier Distribution\n\n")
	fmt.Fprintf(sb, "| Tier | Keys |\n|---|---|\n")
	for _, tier := range []model.RiskTier{model.TierCritical, model.TierHigh, model.TierModerate} {
		fmt.Fprintf(sb, "| %s | %d |\n", tier, tiers[tier])
	}
	sb.WriteString("\n")
}

func writeTopRiskSection(sb *strings.Builder, result *model.AnalysisResult) {
	assessments := make([]model.RiskAssessment, 0, len(result.Assessments))
	for _, a := range result.Assessments {
		assessments = append(assessments, a)
	}
	sort.Slice(assessments, func(i, j int) bool {
		if assessments[i].Score != assessments[j].Score {
			return assessments[i].Score > assessments[j].Score
		}
		return assessments[i].Key < assessments[j].Key
	})

	limit := 20
	if len(assessments) < limit {
		limit = len(assessments)
	}

	sb.WriteString("## Top Risk Areas\n\n")
	fmt.Fprintf(sb, "| Key | State | Providers | Score | Tier | Flags |\n|---|---|---|---|---|---|\n")
	for _, a := range assessments[:limit] {
		flags := make([]string, len(a.Flags))
		for i, f := range a.Flags {
			flags[i] = string(f)
		}
		fmt.Fprintf(sb, "| %s | %s | %d | %.3f | %s | %s |\n",
			a.Key, a.State, a.Total, a.Score, a.Tier, strings.Join(flags, ", "))
	}
	sb.WriteString("\n")
}

func writeScenarioSection(sb *strings.Builder, result *model.AnalysisResult) {
	names := make([]string, 0, len(result.Scenarios))
	for name := range result.Scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	sb.WriteString("## Revenue Projections\n\n")
	for _, name := range names {
		sc := result.Scenarios[name]
		fmt.Fprintf(sb, "### %s\n\n", sc.Name)
		fmt.Fprintf(sb, "| Year | Adoption | ALF Adopted | HCBS Adopted | Annual Revenue |\n|---|---|---|---|---|\n")
		for _, yp := range sc.Years {
			alf := yp.ByType[model.ProviderALF]
			hcbs := yp.ByType[model.ProviderHCBS]
			fmt.Fprintf(sb, "| %d | %.1f%% | %d | %d | %s |\n",
				yp.Year, yp.AdoptionRate*100,
				alf.AdoptedFacilities, hcbs.AdoptedFacilities,
				FormatDollars(yp.Annual))
		}
		for _, warning := range sc.Warnings {
			fmt.Fprintf(sb, "\n> %s\n", warning)
		}
		sb.WriteString("\n")
	}
}
