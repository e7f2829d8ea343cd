package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addis-care/market-cli/internal/model"
)

func boolPtr(v bool) *bool { return &v }

func TestBuild_GroupsByZIP(t *testing.T) {
	records := []model.ProviderRecord{
		{State: "CA", ZIP: "94110", Type: model.ProviderHCBS},
		{State: "CA", ZIP: "94110", Type: model.ProviderHCBS},
		{State: "CA", ZIP: "94110", Type: model.ProviderALF},
		{State: "CA", ZIP: "90001", Type: model.ProviderALF},
	}

	res := Build(records, model.GranularityZIP)
	require.Len(t, res.Aggregates, 2)
	assert.Zero(t, res.Excluded)

	// Keys come back sorted ascending.
	assert.Equal(t, "90001", res.Aggregates[0].Key)
	assert.Equal(t, "94110", res.Aggregates[1].Key)

	sf := res.Aggregates[1]
	assert.Equal(t, 3, sf.Total)
	assert.Equal(t, 2, sf.Count(model.ProviderHCBS))
	assert.Equal(t, 1, sf.Count(model.ProviderALF))
	assert.InDelta(t, 66.666, sf.Pct(model.ProviderHCBS), 0.001)
	assert.InDelta(t, 33.333, sf.Pct(model.ProviderALF), 0.001)
}

func TestBuild_GroupsByState(t *testing.T) {
	records := []model.ProviderRecord{
		{State: "CA", ZIP: "94110", Type: model.ProviderHCBS},
		{State: "CA", ZIP: "90001", Type: model.ProviderALF},
		{State: "TX", ZIP: "73301", Type: model.ProviderHCBS},
	}

	res := Build(records, model.GranularityState)
	require.Len(t, res.Aggregates, 2)
	assert.Equal(t, "CA", res.Aggregates[0].Key)
	assert.Equal(t, 2, res.Aggregates[0].Total)
	assert.Equal(t, "TX", res.Aggregates[1].Key)
}

func TestBuild_PercentagesSumTo100(t *testing.T) {
	records := []model.ProviderRecord{
		{ZIP: "10001", Type: model.ProviderHCBS},
		{ZIP: "10001", Type: model.ProviderHCBS},
		{ZIP: "10001", Type: model.ProviderALF},
		{ZIP: "10001", Type: model.ProviderALF},
		{ZIP: "10001", Type: model.ProviderALF},
		{ZIP: "10001", Type: model.ProviderALF},
		{ZIP: "10001", Type: model.ProviderALF},
	}

	res := Build(records, model.GranularityZIP)
	require.Len(t, res.Aggregates, 1)

	var sum float64
	for _, typ := range model.AllProviderTypes() {
		sum += res.Aggregates[0].Pct(typ)
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestBuild_ExcludesMissingKey(t *testing.T) {
	records := []model.ProviderRecord{
		{State: "CA", ZIP: "94110", Type: model.ProviderHCBS},
		{State: "CA", ZIP: "", Type: model.ProviderALF}, // no ZIP at zip granularity
		{State: "", ZIP: "", Type: model.ProviderHCBS},
	}

	res := Build(records, model.GranularityZIP)
	require.Len(t, res.Aggregates, 1)
	assert.Equal(t, 2, res.Excluded)
	assert.Equal(t, 1, res.Aggregates[0].Total)
}

func TestBuild_Empty(t *testing.T) {
	res := Build(nil, model.GranularityZIP)
	assert.Empty(t, res.Aggregates)
	assert.Zero(t, res.Excluded)
}

func TestBuild_EnrollmentRollup(t *testing.T) {
	records := []model.ProviderRecord{
		{ZIP: "10001", Type: model.ProviderHCBS, MedicaidEnrolled: boolPtr(true), MedicareEnrolled: boolPtr(false)},
		{ZIP: "10001", Type: model.ProviderHCBS, MedicaidEnrolled: boolPtr(true)},
		{ZIP: "10001", Type: model.ProviderALF, MedicaidEnrolled: boolPtr(false)},
		{ZIP: "10001", Type: model.ProviderALF}, // no enrollment data
	}

	res := Build(records, model.GranularityZIP)
	require.Len(t, res.Aggregates, 1)

	agg := res.Aggregates[0]
	assert.Equal(t, 3, agg.MedicaidKnown)
	assert.Equal(t, 2, agg.MedicaidEnrolled)
	assert.Equal(t, 1, agg.MedicareKnown)
	assert.Equal(t, 0, agg.MedicareEnrolled)
	assert.InDelta(t, 2.0/3.0, agg.MedicaidRate(), 1e-9)
}

func TestBuild_Deterministic(t *testing.T) {
	records := []model.ProviderRecord{
		{ZIP: "30301", Type: model.ProviderALF},
		{ZIP: "10001", Type: model.ProviderHCBS},
		{ZIP: "20001", Type: model.ProviderHCBS},
	}

	first := Build(records, model.GranularityZIP)
	second := Build(records, model.GranularityZIP)
	assert.Equal(t, first, second)
}

func TestCountsByType(t *testing.T) {
	aggs := []model.GeoAggregate{
		{TypeCounts: map[model.ProviderType]int{model.ProviderALF: 3, model.ProviderHCBS: 5}},
		{TypeCounts: map[model.ProviderType]int{model.ProviderALF: 2}},
	}

	counts := CountsByType(aggs)
	assert.Equal(t, 5, counts[model.ProviderALF])
	assert.Equal(t, 5, counts[model.ProviderHCBS])
}
