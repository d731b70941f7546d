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
	Store      StoreConfig     `yaml:"store" mapstructure:"store"`
	Server     ServerConfig    `yaml:"server" mapstructure:"server"`
	Log        LogConfig       `yaml:"log" mapstructure:"log"`
	Dataset    DatasetConfig   `yaml:"dataset" mapstructure:"dataset"`
	Thresholds ThresholdConfig `yaml:"thresholds" mapstructure:"thresholds"`
	Guards     GuardConfig     `yaml:"guards" mapstructure:"guards"`
	Batch      BatchConfig     `yaml:"batch" mapstructure:"batch"`
}

// StoreConfig configures the analysis persistence backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// DatasetConfig points at optional dataset override files. When empty the
// embedded reference data is used.
type DatasetConfig struct {
	Path      string `yaml:"path" mapstructure:"path"`
	ModalPath string `yaml:"modal_path" mapstructure:"modal_path"`
}

// ThresholdConfig holds the policy thresholds for quality grading and
// traffic-impact screening. Immutable for the process lifetime.
type ThresholdConfig struct {
	RSquaredGood         float64 `yaml:"r_squared_good" mapstructure:"r_squared_good"`
	RSquaredFair         float64 `yaml:"r_squared_fair" mapstructure:"r_squared_fair"`
	RSquaredPoor         float64 `yaml:"r_squared_poor" mapstructure:"r_squared_poor"`
	SampleSizeWarning    int     `yaml:"sample_size_warning" mapstructure:"sample_size_warning"`
	SampleSizeUnreliable int     `yaml:"sample_size_unreliable" mapstructure:"sample_size_unreliable"`
	PeakHourWarning      int     `yaml:"peak_hour_warning" mapstructure:"peak_hour_warning"`
	DailyWarning         int     `yaml:"daily_warning" mapstructure:"daily_warning"`
	TIARequired          int     `yaml:"tia_required" mapstructure:"tia_required"`
	VDOTThreshold        int     `yaml:"vdot_threshold" mapstructure:"vdot_threshold"`
}

// GuardConfig holds the extrapolation-guard multipliers used when deciding
// between the fitted curve and the average rate. The defaults match the
// published heuristics; they are policy choices, not invariants, so they
// stay configurable.
type GuardConfig struct {
	CurveHighRatio float64 `yaml:"curve_high_ratio" mapstructure:"curve_high_ratio"`
	CurveLowRatio  float64 `yaml:"curve_low_ratio" mapstructure:"curve_low_ratio"`
	RangeMinFactor float64 `yaml:"range_min_factor" mapstructure:"range_min_factor"`
	RangeMaxFactor float64 `yaml:"range_max_factor" mapstructure:"range_max_factor"`
}

// BatchConfig configures batch calculation.
type BatchConfig struct {
	MaxConcurrent int `yaml:"max_concurrent" mapstructure:"max_concurrent"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("TRIPGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.database_url", "tripgen.db")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("batch.max_concurrent", 4)
	v.SetDefault("thresholds.r_squared_good", 0.75)
	v.SetDefault("thresholds.r_squared_fair", 0.5)
	v.SetDefault("thresholds.r_squared_poor", 0.25)
	v.SetDefault("thresholds.sample_size_warning", 10)
	v.SetDefault("thresholds.sample_size_unreliable", 5)
	v.SetDefault("thresholds.peak_hour_warning", 100)
	v.SetDefault("thresholds.daily_warning", 1000)
	v.SetDefault("thresholds.tia_required", 4000)
	v.SetDefault("thresholds.vdot_threshold", 5000)
	v.SetDefault("guards.curve_high_ratio", 2.5)
	v.SetDefault("guards.curve_low_ratio", 0.4)
	v.SetDefault("guards.range_min_factor", 0.5)
	v.SetDefault("guards.range_max_factor", 2.0)

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
