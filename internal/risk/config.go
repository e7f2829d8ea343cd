// Package risk scores geographic keys for Medicaid-dependency vulnerability.
package risk

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/addis-care/market-cli/internal/config"
)

// DefaultConfig returns the calibrated scoring configuration. The weights
// reproduce the published methodology exactly; the tier bands were
// back-solved with Calibrate against the full NPPES extract so that the
// flagged-ZIP population splits roughly 20/40/40 across
// CRITICAL/HIGH/MODERATE.
func DefaultConfig() config.RiskConfig {
	return config.RiskConfig{
		HCBSPctWeight: 0.01,
		DensityWeight: 0.01,
		ALFPctWeight:  0.005,

		HCBSDominantPct: 70,
		HighDensityMin:  100,
		ALFHeavyPct:     50,

		CriticalMin: 1.80,
		HighMin:     1.30,

		MinProviders: 10,
	}
}

// ValidateConfig checks that a RiskConfig is internally consistent.
func ValidateConfig(c config.RiskConfig) error {
	var errs []string

	weights := map[string]float64{
		"hcbs_pct_weight": c.HCBSPctWeight,
		"density_weight":  c.DensityWeight,
		"alf_pct_weight":  c.ALFPctWeight,
	}
	for name, w := range weights {
		if w < 0 {
			errs = append(errs, fmt.Sprintf("%s must be >= 0", name))
		}
	}

	if c.HCBSDominantPct < 0 || c.HCBSDominantPct > 100 {
		errs = append(errs, "hcbs_dominant_pct must be between 0 and 100")
	}
	if c.ALFHeavyPct < 0 || c.ALFHeavyPct > 100 {
		errs = append(errs, "alf_heavy_pct must be between 0 and 100")
	}
	if c.HighDensityMin < 0 {
		errs = append(errs, "high_density_min must be >= 0")
	}

	if c.HighMin < 0 {
		errs = append(errs, "high_min must be >= 0")
	}
	if c.CriticalMin < c.HighMin {
		errs = append(errs, "critical_min must be >= high_min")
	}

	if c.MinProviders < 0 {
		errs = append(errs, "min_providers must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("risk: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
