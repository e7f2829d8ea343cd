package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store       StoreConfig       `yaml:"store" mapstructure:"store"`
	Analysis    AnalysisConfig    `yaml:"analysis" mapstructure:"analysis"`
	Risk        RiskConfig        `yaml:"risk" mapstructure:"risk"`
	Opportunity OpportunityConfig `yaml:"opportunity" mapstructure:"opportunity"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the run-persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"` // sqlite or postgres
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// AnalysisConfig configures the pipeline run.
type AnalysisConfig struct {
	Granularity  string `yaml:"granularity" mapstructure:"granularity"`
	ScenarioFile string `yaml:"scenario_file" mapstructure:"scenario_file"`
	EnrichGeo    bool   `yaml:"enrich_geo" mapstructure:"enrich_geo"`
}

// RiskConfig holds the risk-scoring weights, flag thresholds, and tier
// bands. The constants are business heuristics, kept as configuration so
// they can be recalibrated without a code change.
type RiskConfig struct {
	// Score weights.
	HCBSPctWeight float64 `yaml:"hcbs_pct_weight" mapstructure:"hcbs_pct_weight"`
	DensityWeight float64 `yaml:"density_weight" mapstructure:"density_weight"`
	ALFPctWeight  float64 `yaml:"alf_pct_weight" mapstructure:"alf_pct_weight"`

	// Flag thresholds (strict greater-than).
	HCBSDominantPct float64 `yaml:"hcbs_dominant_pct" mapstructure:"hcbs_dominant_pct"`
	HighDensityMin  int     `yaml:"high_density_min" mapstructure:"high_density_min"`
	ALFHeavyPct     float64 `yaml:"alf_heavy_pct" mapstructure:"alf_heavy_pct"`

	// Tier bands: score >= CriticalMin is CRITICAL, >= HighMin is HIGH,
	// below is MODERATE.
	CriticalMin float64 `yaml:"critical_min" mapstructure:"critical_min"`
	HighMin     float64 `yaml:"high_min" mapstructure:"high_min"`

	// Minimum market size for a key to enter the risk set.
	MinProviders int `yaml:"min_providers" mapstructure:"min_providers"`
}

// OpportunityConfig holds the market-opportunity scoring constants.
type OpportunityConfig struct {
	ALFWeight     float64 `yaml:"alf_weight" mapstructure:"alf_weight"`
	HCBSWeight    float64 `yaml:"hcbs_weight" mapstructure:"hcbs_weight"`
	DensityWeight float64 `yaml:"density_weight" mapstructure:"density_weight"`

	// Level cut points on raw provider count. State-level markets are two
	// orders of magnitude larger than ZIP-level ones, so each granularity
	// carries its own bands.
	PremiumMin      int `yaml:"premium_min" mapstructure:"premium_min"`
	HighMin         int `yaml:"high_min" mapstructure:"high_min"`
	StatePremiumMin int `yaml:"state_premium_min" mapstructure:"state_premium_min"`
	StateHighMin    int `yaml:"state_high_min" mapstructure:"state_high_min"`

	MinProviders int `yaml:"min_providers" mapstructure:"min_providers"`
	MinALF       int `yaml:"min_alf" mapstructure:"min_alf"`
	MinHCBS      int `yaml:"min_hcbs" mapstructure:"min_hcbs"`
}

// ServerConfig configures the results API server.
type ServerConfig struct {
	Port          int     `yaml:"port" mapstructure:"port"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MARKET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "market.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_second", 20.0)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("analysis.granularity", "zip")
	v.SetDefault("analysis.enrich_geo", true)

	v.SetDefault("risk.hcbs_pct_weight", 0.01)
	v.SetDefault("risk.density_weight", 0.01)
	v.SetDefault("risk.alf_pct_weight", 0.005)
	v.SetDefault("risk.hcbs_dominant_pct", 70.0)
	v.SetDefault("risk.high_density_min", 100)
	v.SetDefault("risk.alf_heavy_pct", 50.0)
	v.SetDefault("risk.critical_min", 1.80)
	v.SetDefault("risk.high_min", 1.30)
	v.SetDefault("risk.min_providers", 10)

	v.SetDefault("opportunity.alf_weight", 2.0)
	v.SetDefault("opportunity.hcbs_weight", 1.0)
	v.SetDefault("opportunity.density_weight", 0.5)
	v.SetDefault("opportunity.premium_min", 200)
	v.SetDefault("opportunity.high_min", 100)
	v.SetDefault("opportunity.state_premium_min", 10000)
	v.SetDefault("opportunity.state_high_min", 5000)
	v.SetDefault("opportunity.min_providers", 10)
	v.SetDefault("opportunity.min_alf", 5)
	v.SetDefault("opportunity.min_hcbs", 20)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
