// Package config loads application configuration from config.yaml and
// environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration, read once at startup.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Departure  DepartureConfig  `mapstructure:"departure"`
	Route      RouteConfig      `mapstructure:"route_preferences"`
	Fuel       FuelConfig       `mapstructure:"fuel"`
	APIKeys    APIKeysConfig    `mapstructure:"api_keys"`
	Email      EmailConfig      `mapstructure:"email"`
	Catalog    CatalogConfig    `mapstructure:"catalog"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Telemetry  TelemetryConfig  `mapstructure:"telemetry"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DepartureConfig holds the default departure point for new sessions.
type DepartureConfig struct {
	Address string `mapstructure:"address"`
}

// RouteConfig holds route preference flags passed to the directions provider.
type RouteConfig struct {
	AvoidTolls    bool   `mapstructure:"avoid_tolls"`
	AvoidHighways bool   `mapstructure:"avoid_highways"`
	TrafficModel  string `mapstructure:"traffic_model"`
	OptimizeFor   string `mapstructure:"optimize_for"`
}

// FuelConfig holds the fuel cost model constants.
type FuelConfig struct {
	ConsumptionPer100KM float64 `mapstructure:"consumption_per_100km"`
	PricePerLiter       float64 `mapstructure:"price_per_liter"`
}

// APIKeysConfig holds external service credentials.
type APIKeysConfig struct {
	GoogleMaps string `mapstructure:"google_maps"`
}

// EmailConfig holds SMTP delivery configuration.
type EmailConfig struct {
	Recipient      string `mapstructure:"recipient"`
	SenderEmail    string `mapstructure:"sender_email"`
	SenderPassword string `mapstructure:"sender_password"`
	SMTPServer     string `mapstructure:"smtp_server"`
	SMTPPort       int    `mapstructure:"smtp_port"`
}

// CatalogConfig holds store catalog source configuration.
// DatabaseURL, when set, selects the Postgres-backed catalog over the CSV file.
type CatalogConfig struct {
	CSVPath     string `mapstructure:"csv_path"`
	DatabaseURL string `mapstructure:"database_url"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// TelemetryConfig holds OpenTelemetry configuration.
type TelemetryConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	Environment  string `mapstructure:"environment"`
}

// Load reads configuration from the given file (or config.yaml in the working
// directory when empty), with environment variable overrides.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("STOREROUTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnvVars(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults plus env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("route_preferences.avoid_tolls", false)
	v.SetDefault("route_preferences.avoid_highways", false)
	v.SetDefault("route_preferences.traffic_model", "best_guess")
	v.SetDefault("route_preferences.optimize_for", "time")

	v.SetDefault("fuel.consumption_per_100km", 8.0)
	v.SetDefault("fuel.price_per_liter", 1.60)

	v.SetDefault("catalog.csv_path", "inputs/store_list.csv")

	v.SetDefault("logging.level", "info")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "localhost:4317")
	v.SetDefault("telemetry.environment", "development")
}

// bindEnvVars binds nested keys so they resolve without a config file present.
func bindEnvVars(v *viper.Viper) {
	keys := []string{
		"server.host",
		"server.port",
		"departure.address",
		"route_preferences.avoid_tolls",
		"route_preferences.avoid_highways",
		"route_preferences.traffic_model",
		"route_preferences.optimize_for",
		"fuel.consumption_per_100km",
		"fuel.price_per_liter",
		"api_keys.google_maps",
		"email.recipient",
		"email.sender_email",
		"email.sender_password",
		"email.smtp_server",
		"email.smtp_port",
		"catalog.csv_path",
		"catalog.database_url",
		"logging.level",
		"telemetry.enabled",
		"telemetry.otlp_endpoint",
		"telemetry.environment",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

func (c *Config) validate() error {
	if c.Route.OptimizeFor != "time" && c.Route.OptimizeFor != "distance" {
		return fmt.Errorf("route_preferences.optimize_for must be %q or %q, got %q",
			"time", "distance", c.Route.OptimizeFor)
	}
	if c.Fuel.ConsumptionPer100KM <= 0 {
		return fmt.Errorf("fuel.consumption_per_100km must be positive")
	}
	if c.Fuel.PricePerLiter <= 0 {
		return fmt.Errorf("fuel.price_per_liter must be positive")
	}
	return nil
}
