// Package config loads the function settings from defaults, an optional SSM
// parameter holding a JSON document, and environment variables, in increasing
// order of precedence.
package config

import (
	"context"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/prognoshealth/vnlookup/lottery"
	"github.com/prognoshealth/vnlookup/weather"
)

const (
	EnvDev     = "dev"
	EnvStaging = "staging"
	EnvProd    = "prod"
)

const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Info route variants. Both deployments of the service exposed the API
// description, one as /home and one as /docs.
const (
	InfoRouteHome = "home"
	InfoRouteDocs = "docs"
)

var mountPattern = regexp.MustCompile(`^(/[^/\s]+)*/?$`)

// Config holds every setting of the function.
type Config struct {
	Environment    string        `mapstructure:"environment"`
	LogLevel       string        `mapstructure:"log_level"`
	Addr           string        `mapstructure:"addr"`
	MountPath      string        `mapstructure:"mount_path"`
	InfoRoute      string        `mapstructure:"info_route"`
	HTTPTimeout    time.Duration `mapstructure:"http_timeout"`
	LotteryBaseURL string        `mapstructure:"lottery_base_url"`
	WeatherBaseURL string        `mapstructure:"weather_base_url"`
	SSMParameter   string        `mapstructure:"config_ssm_parameter"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", EnvDev)
	v.SetDefault("log_level", LogLevelInfo)
	v.SetDefault("addr", ":8080")
	v.SetDefault("mount_path", "")
	v.SetDefault("info_route", InfoRouteHome)
	v.SetDefault("http_timeout", "10s")
	v.SetDefault("lottery_base_url", lottery.DefaultBaseURL)
	v.SetDefault("weather_base_url", weather.DefaultBaseURL)
	v.SetDefault("config_ssm_parameter", "")
}

// Load reads the configuration using a default Loader.
func Load(ctx context.Context) (*Config, error) {
	return (&Loader{}).Load(ctx)
}

// Load builds and validates the configuration.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if name := v.GetString("config_ssm_parameter"); name != "" {
		doc, err := l.parameter(ctx, name)
		if err != nil {
			return nil, err
		}

		v.SetConfigType("json")
		if err := v.MergeConfig(strings.NewReader(doc)); err != nil {
			return nil, errors.Wrapf(err, "failed parsing ssm parameter %s", name)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed unmarshalling config")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Environment,
			validation.Required,
			validation.In(EnvDev, EnvStaging, EnvProd),
		),
		validation.Field(&c.LogLevel,
			validation.Required,
			validation.In(LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError),
		),
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.MountPath, validation.Match(mountPattern)),
		validation.Field(&c.InfoRoute,
			validation.Required,
			validation.In(InfoRouteHome, InfoRouteDocs),
		),
		validation.Field(&c.HTTPTimeout,
			validation.Required,
			validation.Min(time.Millisecond),
		),
		validation.Field(&c.LotteryBaseURL, validation.Required, is.URL),
		validation.Field(&c.WeatherBaseURL, validation.Required, is.URL),
	)
}

// Mount returns the mount path without a trailing slash.
func (c *Config) Mount() string {
	return strings.TrimRight(c.MountPath, "/")
}
