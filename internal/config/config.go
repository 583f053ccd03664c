package config

import (
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Input  InputConfig  `yaml:"input" mapstructure:"input"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	HTTP   HTTPConfig   `yaml:"http" mapstructure:"http"`
	Pacing PacingConfig `yaml:"pacing" mapstructure:"pacing"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// InputConfig describes the source table.
type InputConfig struct {
	Path             string   `yaml:"path" mapstructure:"path"`
	PropertyIDColumn string   `yaml:"property_id_column" mapstructure:"property_id_column"`
	MapURLColumn     string   `yaml:"map_url_column" mapstructure:"map_url_column"`
	Sheet            string   `yaml:"sheet" mapstructure:"sheet"`
	NullValues       []string `yaml:"null_values" mapstructure:"null_values"`
}

// OutputConfig describes the augmented table.
type OutputConfig struct {
	Path            string `yaml:"path" mapstructure:"path"`
	LatitudeColumn  string `yaml:"latitude_column" mapstructure:"latitude_column"`
	LongitudeColumn string `yaml:"longitude_column" mapstructure:"longitude_column"`
}

// HTTPConfig configures short URL resolution.
type HTTPConfig struct {
	UserAgent    string `yaml:"user_agent" mapstructure:"user_agent"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxRedirects int    `yaml:"max_redirects" mapstructure:"max_redirects"`
}

// Timeout returns the request timeout. Zero means no timeout.
func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSecs) * time.Second
}

// PacingConfig configures the pause after each successful resolution.
type PacingConfig struct {
	Mode    string `yaml:"mode" mapstructure:"mode"`
	DelayMs int    `yaml:"delay_ms" mapstructure:"delay_ms"`
}

// Delay returns the configured pause.
func (p PacingConfig) Delay() time.Duration {
	return time.Duration(p.DelayMs) * time.Millisecond
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
	Output string `yaml:"output" mapstructure:"output"`
}

// DefaultNullValues are the cell values treated as a missing map location.
var DefaultNullValues = []string{
	"#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("MAPLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("input.path", "locations.csv")
	v.SetDefault("input.property_id_column", "Property ID")
	v.SetDefault("input.map_url_column", "Map Location")
	v.SetDefault("input.sheet", "")
	v.SetDefault("input.null_values", DefaultNullValues)
	v.SetDefault("output.path", "coordinates.csv")
	v.SetDefault("output.latitude_column", "Latitude")
	v.SetDefault("output.longitude_column", "Longitude")
	v.SetDefault("http.user_agent", "maplink/1.0")
	v.SetDefault("http.timeout_secs", 30)
	v.SetDefault("http.max_redirects", 10)
	v.SetDefault("pacing.mode", "fixed")
	v.SetDefault("pacing.delay_ms", 1000)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

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

// Validate checks the values a run cannot proceed without.
func (c *Config) Validate() error {
	var problems []string

	if c.Input.Path == "" {
		problems = append(problems, "input.path is required")
	}
	if c.Output.Path == "" {
		problems = append(problems, "output.path is required")
	}
	if c.Input.PropertyIDColumn == "" {
		problems = append(problems, "input.property_id_column is required")
	}
	if c.Input.MapURLColumn == "" {
		problems = append(problems, "input.map_url_column is required")
	}
	if c.Output.LatitudeColumn == "" || c.Output.LongitudeColumn == "" {
		problems = append(problems, "output.latitude_column and output.longitude_column are required")
	}
	if c.HTTP.TimeoutSecs < 0 {
		problems = append(problems, "http.timeout_secs must not be negative")
	}
	switch c.Pacing.Mode {
	case "fixed", "rate":
	default:
		problems = append(problems, "pacing.mode must be fixed or rate")
	}
	if c.Pacing.DelayMs < 0 {
		problems = append(problems, "pacing.delay_ms must not be negative")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	if cfg.Output != "" {
		zapCfg.OutputPaths = []string{cfg.Output}
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
