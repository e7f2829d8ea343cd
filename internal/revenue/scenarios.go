package revenue

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/addis-care/market-cli/internal/model"
)

// scenarioFile is the YAML shape of a scenario definitions file.
type scenarioFile struct {
	Scenarios []model.ScenarioConfig `yaml:"scenarios"`
}

// LoadScenarios reads scenario definitions from a YAML file. Each scenario
// is validated eagerly so a bad file fails before any projection starts.
func LoadScenarios(path string) ([]model.ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "revenue: read scenario file %s", path)
	}

	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, eris.Wrapf(err, "revenue: parse scenario file %s", path)
	}
	if len(f.Scenarios) == 0 {
		return nil, eris.Errorf("revenue: scenario file %s defines no scenarios", path)
	}

	seen := make(map[string]bool, len(f.Scenarios))
	for _, sc := range f.Scenarios {
		if err := validateScenario(sc); err != nil {
			return nil, err
		}
		if seen[sc.Name] {
			return nil, eris.Errorf("revenue: duplicate scenario name %q in %s", sc.Name, path)
		}
		seen[sc.Name] = true
	}

	return f.Scenarios, nil
}

// DefaultScenarios returns the two scenarios from the published analysis:
// the general-market conservative ramp and the steeper high-risk-area ramp.
func DefaultScenarios() []model.ScenarioConfig {
	return []model.ScenarioConfig{
		{
			Name:         "conservative",
			PricePerUnit: 125,
			Sizes:        defaultSizes(),
			AdoptionRate: []float64{0.005, 0.02, 0.10},
		},
		{
			Name:         "high-risk",
			PricePerUnit: 125,
			Sizes:        defaultSizes(),
			AdoptionRate: []float64{0.01, 0.05, 0.20},
		},
	}
}

// defaultSizes is the facility-size distribution from the published
// assumptions: ALF facilities of 25/50/100 residents at 30/50/20% and HCBS
// agencies of 15/35/75 clients at 40/45/15%.
func defaultSizes() map[model.ProviderType][]model.SizeTier {
	return map[model.ProviderType][]model.SizeTier{
		model.ProviderALF: {
			{Label: "small", Value: 25, Share: 0.30},
			{Label: "medium", Value: 50, Share: 0.50},
			{Label: "large", Value: 100, Share: 0.20},
		},
		model.ProviderHCBS: {
			{Label: "small", Value: 15, Share: 0.40},
			{Label: "medium", Value: 35, Share: 0.45},
			{Label: "large", Value: 75, Share: 0.15},
		},
	}
}
