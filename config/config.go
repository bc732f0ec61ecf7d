package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"

	"github.com/jwalitptl/hospital-records/pkg/validator"
)

type DatabaseConfig struct {
	Driver    string `mapstructure:"driver" envconfig:"DB_DRIVER" validate:"required"`
	Name      string `mapstructure:"name" envconfig:"DB_NAME" validate:"required"`
	Server    string `mapstructure:"server" envconfig:"DB_SERVER" validate:"required"`
	Port      int    `mapstructure:"port" envconfig:"DB_PORT" validate:"gt=0"`
	User      string `mapstructure:"user" envconfig:"DB_USER"`
	Password  string `mapstructure:"password" envconfig:"DB_PASSWORD"`
	AdminName string `mapstructure:"admin_name" envconfig:"DB_ADMIN_NAME" validate:"required"`
	// Encrypt is "yes" or "no" and maps onto the postgres sslmode.
	Encrypt    string        `mapstructure:"encrypt" envconfig:"ENCRYPT" validate:"oneof=yes no"`
	MaxRetries int           `mapstructure:"max_retries" envconfig:"DB_MAX_RETRIES" validate:"gt=0"`
	RetryDelay time.Duration `mapstructure:"retry_delay" envconfig:"DB_RETRY_DELAY" validate:"min=0"`
}

type LogConfig struct {
	Level string `mapstructure:"level" envconfig:"LOG_LEVEL"`
	JSON  bool   `mapstructure:"json" envconfig:"LOG_JSON"`
}

type MetricsConfig struct {
	Enabled   bool    `mapstructure:"enabled" envconfig:"METRICS_ENABLED"`
	Addr      string  `mapstructure:"addr" envconfig:"METRICS_ADDR" validate:"required_if=Enabled true"`
	RateLimit float64 `mapstructure:"rate_limit" envconfig:"METRICS_RATE_LIMIT" validate:"min=0"`
	Burst     int     `mapstructure:"burst" envconfig:"METRICS_BURST" validate:"min=0"`
}

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

var defaults = map[string]interface{}{
	"database.driver":      "postgres",
	"database.name":        "HospitalDB",
	"database.server":      "localhost",
	"database.port":        5432,
	"database.user":        "postgres",
	"database.password":    "",
	"database.admin_name":  "postgres",
	"database.encrypt":     "no",
	"database.max_retries": 3,
	"database.retry_delay": "1s",
	"log.level":            "info",
	"log.json":             false,
	"metrics.enabled":      false,
	"metrics.addr":         ":9090",
	"metrics.rate_limit":   10.0,
	"metrics.burst":        20,
}

// LoadConfig reads configuration in three layers: built-in defaults, an
// optional YAML file, then the named environment variables. path selects
// the file explicitly; when empty, config.yaml is looked up in . and ./config
// and its absence is not an error.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Override with environment variables if present
	for _, section := range []interface{}{&config.Database, &config.Log, &config.Metrics} {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	config.Database.Encrypt = strings.ToLower(strings.TrimSpace(config.Database.Encrypt))

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Validate() error {
	v := validator.New()
	for _, section := range []interface{}{&c.Database, &c.Log, &c.Metrics} {
		if err := v.Validate(section); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
	}
	return nil
}

// SSLMode maps the encryption toggle onto a lib/pq sslmode.
func (c DatabaseConfig) SSLMode() string {
	if c.Encrypt == "yes" {
		return "require"
	}
	return "disable"
}

// DSN builds a lib/pq connection string for the named database.
func (c DatabaseConfig) DSN(database string) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		quoteDSN(c.Server),
		c.Port,
		quoteDSN(c.User),
		quoteDSN(c.Password),
		quoteDSN(database),
		c.SSLMode(),
	)
}

func quoteDSN(value string) string {
	if value != "" && !strings.ContainsAny(value, ` '\`) {
		return value
	}
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `'`, `\'`)
	return "'" + value + "'"
}
