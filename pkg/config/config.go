// Package config loads the key-figures settings from defaults, an optional YAML file
// and KEYFIGURES_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/eticeo/key-figures/pkg/counter"
)

// Config holds all settings.
type Config struct {
	Counter CounterConfig
	HTTP    HTTPConfig
	Logger  LoggerConfig
}

// CounterConfig drives the animation.
type CounterConfig struct {
	Delay            time.Duration
	ContainerClasses []string
	NumberClasses    []string
}

// HTTPConfig drives page downloads.
type HTTPConfig struct {
	Timeout time.Duration
	Retries int
}

// LoggerConfig selects the console log level and encoding.
type LoggerConfig struct {
	Level    string // none, debug, normal
	Encoding string // console, json
}

// Load reads configuration. When path is empty, key-figures.yaml is searched in ./config,
// the working directory and /etc/key-figures/; a missing file is not an error. When path is
// set the file must exist.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("key-figures")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/key-figures/")
	}

	v.SetEnvPrefix("KEYFIGURES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}

	cfg.Counter.Delay = v.GetDuration("counter.delay")
	cfg.Counter.ContainerClasses = v.GetStringSlice("counter.container_classes")
	cfg.Counter.NumberClasses = v.GetStringSlice("counter.number_classes")

	cfg.HTTP.Timeout = v.GetDuration("http.timeout")
	cfg.HTTP.Retries = v.GetInt("http.retries")

	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Encoding = v.GetString("logger.encoding")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("counter.delay", counter.DefaultDelay)
	v.SetDefault("counter.container_classes", counter.DefaultContainerClasses)
	v.SetDefault("counter.number_classes", counter.DefaultNumberClasses)

	v.SetDefault("http.timeout", 30*time.Second)
	v.SetDefault("http.retries", 3)

	v.SetDefault("logger.level", "normal")
	v.SetDefault("logger.encoding", "console")
}

func (c *Config) validate() error {
	if c.Counter.Delay <= 0 {
		return fmt.Errorf("counter.delay must be positive, got %s", c.Counter.Delay)
	}
	if len(c.Counter.ContainerClasses) == 0 || len(c.Counter.NumberClasses) == 0 {
		return errors.New("counter.container_classes and counter.number_classes must not be empty")
	}
	if c.HTTP.Retries < 1 {
		return fmt.Errorf("http.retries must be at least 1, got %d", c.HTTP.Retries)
	}
	switch c.Logger.Level {
	case "none", "debug", "normal":
	default:
		return fmt.Errorf("invalid logger.level %q (must be none, debug or normal)", c.Logger.Level)
	}
	switch c.Logger.Encoding {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logger.encoding %q (must be console or json)", c.Logger.Encoding)
	}
	return nil
}
