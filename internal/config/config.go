// Package config loads application configuration from config.yaml, BERLIN_*
// environment variables, and defaults, and initializes the global logger.
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
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	Area        AreaConfig        `yaml:"area" mapstructure:"area"`
	Scoring     ScoringConfig     `yaml:"scoring" mapstructure:"scoring"`
	Mobility    MobilityConfig    `yaml:"mobility" mapstructure:"mobility"`
	Parks       ParksConfig       `yaml:"parks" mapstructure:"parks"`
	Playgrounds PlaygroundsConfig `yaml:"playgrounds" mapstructure:"playgrounds"`
	Venues      VenuesConfig      `yaml:"venues" mapstructure:"venues"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// PathsConfig holds input/output locations. Individual files default to the
// standard names under RawDir.
type PathsConfig struct {
	RawDir        string `yaml:"raw_dir" mapstructure:"raw_dir"`
	OutDir        string `yaml:"out_dir" mapstructure:"out_dir"`
	Neighborhoods string `yaml:"neighborhoods" mapstructure:"neighborhoods"`
	UBahnStops    string `yaml:"ubahn_stops" mapstructure:"ubahn_stops"`
	BusTramStops  string `yaml:"bus_tram_stops" mapstructure:"bus_tram_stops"`
	Parks         string `yaml:"parks" mapstructure:"parks"`
	Playgrounds   string `yaml:"playgrounds" mapstructure:"playgrounds"`
	Venues        string `yaml:"venues" mapstructure:"venues"`
	DistrictStats string `yaml:"district_stats" mapstructure:"district_stats"`
	Encoding      string `yaml:"encoding" mapstructure:"encoding"`
}

// AreaConfig calibrates area derivation.
type AreaConfig struct {
	// FloorKm2 is the minimum effective area used as a density denominator.
	FloorKm2 float64 `yaml:"floor_km2" mapstructure:"floor_km2"`
}

// ScoringConfig calibrates the percentile rescaling caps.
type ScoringConfig struct {
	PercentileLo float64 `yaml:"percentile_lo" mapstructure:"percentile_lo"`
	PercentileHi float64 `yaml:"percentile_hi" mapstructure:"percentile_hi"`
}

// MobilityConfig weights stop types in the connectivity density. Heavy rail
// matters more per stop than surface transit.
type MobilityConfig struct {
	RailWeight    float64 `yaml:"rail_weight" mapstructure:"rail_weight"`
	SurfaceWeight float64 `yaml:"surface_weight" mapstructure:"surface_weight"`
}

// ParksConfig calibrates the green share band label.
type ParksConfig struct {
	BandHalfWidth float64 `yaml:"band_half_width" mapstructure:"band_half_width"`
}

// PlaygroundsConfig calibrates playground filtering and labeling.
type PlaygroundsConfig struct {
	// Keyword is the case-insensitive substring identifying playground rows
	// in the green-space category field.
	Keyword       string  `yaml:"keyword" mapstructure:"keyword"`
	BandHalfWidth float64 `yaml:"band_half_width" mapstructure:"band_half_width"`
}

// VenuesConfig calibrates the vibrancy index and eligibility thresholds.
type VenuesConfig struct {
	DensityWeight float64 `yaml:"density_weight" mapstructure:"density_weight"`
	VarietyWeight float64 `yaml:"variety_weight" mapstructure:"variety_weight"`
	MinVenues     int     `yaml:"min_venues" mapstructure:"min_venues"`
	MinDensity    float64 `yaml:"min_density" mapstructure:"min_density"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BERLIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("paths.raw_dir", "data")
	v.SetDefault("paths.out_dir", "outputs")
	v.SetDefault("paths.encoding", "utf-8")
	v.SetDefault("area.floor_km2", 0.20)
	v.SetDefault("scoring.percentile_lo", 10.0)
	v.SetDefault("scoring.percentile_hi", 90.0)
	v.SetDefault("mobility.rail_weight", 0.7)
	v.SetDefault("mobility.surface_weight", 0.3)
	v.SetDefault("parks.band_half_width", 0.03)
	v.SetDefault("playgrounds.keyword", "spielplatz")
	v.SetDefault("playgrounds.band_half_width", 0.30)
	v.SetDefault("venues.density_weight", 0.65)
	v.SetDefault("venues.variety_weight", 0.35)
	v.SetDefault("venues.min_venues", 10)
	v.SetDefault("venues.min_density", 2.0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

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
