package revenue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addis-care/market-cli/internal/model"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenarios(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - name: pilot
    price_per_unit: 125
    adoption_rate: [0.01, 0.05]
    sizes:
      ALF:
        - {label: small, value: 25, share: 0.5}
        - {label: large, value: 100, share: 0.5}
      HCBS:
        - {label: typical, value: 35, share: 1.0}
`)

	scenarios, err := LoadScenarios(path)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)

	sc := scenarios[0]
	assert.Equal(t, "pilot", sc.Name)
	assert.InDelta(t, 125.0, sc.PricePerUnit, 1e-9)
	assert.Equal(t, []float64{0.01, 0.05}, sc.AdoptionRate)
	require.Len(t, sc.Sizes[model.ProviderALF], 2)
	assert.InDelta(t, 62.5, WeightedAvgSize(sc.Sizes[model.ProviderALF]), 1e-9)
}

func TestLoadScenarios_MissingFile(t *testing.T) {
	_, err := LoadScenarios(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario file")
}

func TestLoadScenarios_BadYAML(t *testing.T) {
	path := writeScenarioFile(t, "scenarios: [not: {valid")
	_, err := LoadScenarios(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scenario file")
}

func TestLoadScenarios_Empty(t *testing.T) {
	path := writeScenarioFile(t, "scenarios: []")
	_, err := LoadScenarios(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defines no scenarios")
}

func TestLoadScenarios_InvalidScenarioRejectedEagerly(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - name: broken
    price_per_unit: 125
    adoption_rate: [1.5]
    sizes:
      ALF:
        - {label: all, value: 50, share: 1.0}
`)
	_, err := LoadScenarios(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [0, 1]")
}

func TestLoadScenarios_DuplicateName(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - name: twin
    price_per_unit: 125
    adoption_rate: [0.1]
    sizes:
      ALF:
        - {label: all, value: 50, share: 1.0}
  - name: twin
    price_per_unit: 200
    adoption_rate: [0.2]
    sizes:
      ALF:
        - {label: all, value: 50, share: 1.0}
`)
	_, err := LoadScenarios(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate scenario name")
}

func TestDefaultScenarios_Valid(t *testing.T) {
	scenarios := DefaultScenarios()
	require.Len(t, scenarios, 2)

	for _, sc := range scenarios {
		assert.NoError(t, validateScenario(sc))
		assert.Len(t, sc.AdoptionRate, 3)
		assert.InDelta(t, 125.0, sc.PricePerUnit, 1e-9)
	}

	assert.Equal(t, "conservative", scenarios[0].Name)
	assert.Equal(t, []float64{0.005, 0.02, 0.10}, scenarios[0].AdoptionRate)
	assert.Equal(t, "high-risk", scenarios[1].Name)
	assert.Equal(t, []float64{0.01, 0.05, 0.20}, scenarios[1].AdoptionRate)
}
