package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "market.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "zip", cfg.Analysis.Granularity)
	assert.True(t, cfg.Analysis.EnrichGeo)

	assert.InDelta(t, 0.01, cfg.Risk.HCBSPctWeight, 1e-9)
	assert.InDelta(t, 0.01, cfg.Risk.DensityWeight, 1e-9)
	assert.InDelta(t, 0.005, cfg.Risk.ALFPctWeight, 1e-9)
	assert.InDelta(t, 70.0, cfg.Risk.HCBSDominantPct, 1e-9)
	assert.Equal(t, 100, cfg.Risk.HighDensityMin)
	assert.InDelta(t, 50.0, cfg.Risk.ALFHeavyPct, 1e-9)
	assert.InDelta(t, 1.80, cfg.Risk.CriticalMin, 1e-9)
	assert.InDelta(t, 1.30, cfg.Risk.HighMin, 1e-9)
	assert.Equal(t, 10, cfg.Risk.MinProviders)

	assert.InDelta(t, 2.0, cfg.Opportunity.ALFWeight, 1e-9)
	assert.Equal(t, 200, cfg.Opportunity.PremiumMin)
	assert.Equal(t, 10000, cfg.Opportunity.StatePremiumMin)
	assert.Equal(t, 5000, cfg.Opportunity.StateHighMin)
	assert.Equal(t, 20, cfg.Opportunity.MinHCBS)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MARKET_STORE_DRIVER", "postgres")
	t.Setenv("MARKET_SERVER_PORT", "9090")
	t.Setenv("MARKET_RISK_CRITICAL_MIN", "2.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.InDelta(t, 2.5, cfg.Risk.CriticalMin, 1e-9)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	content := `
store:
  driver: postgres
  database_url: postgres://localhost/market
risk:
  high_density_min: 250
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost/market", cfg.Store.DatabaseURL)
	assert.Equal(t, 250, cfg.Risk.HighDensityMin)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Unset keys keep their defaults.
	assert.InDelta(t, 1.80, cfg.Risk.CriticalMin, 1e-9)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "nope", Format: "json"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse log level")
}

// chdirTemp runs the test from an empty directory so a developer's local
// config.yaml never leaks into assertions.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}
