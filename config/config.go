package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Bins       BinsConfig       `yaml:"bins"`
	Simulation SimulationConfig `yaml:"simulation"`
	Routing    RoutingConfig    `yaml:"routing"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int      `yaml:"port"`
	RateLimitPerSec float64  `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int      `yaml:"rate_limit_burst"`
	CacheTTLSeconds int      `yaml:"cache_ttl_seconds"`
	AllowedOrigins  []string `yaml:"allowed_origins"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "sqlite" or "postgres"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
}

// BinsConfig holds the fill-level policy shared by all bin operations.
type BinsConfig struct {
	DefaultCapacity     int `yaml:"default_capacity"`
	CriticalPercent     int `yaml:"critical_percent"`
	WarningPercent      int `yaml:"warning_percent"`
	CollectionThreshold int `yaml:"collection_threshold"`
}

// SimulationConfig controls the simulated fill-level dynamics.
// When Enabled is true, GET /api/bins perturbs fill levels before responding
// and the store is seeded with simulated bins on first start.
type SimulationConfig struct {
	Enabled            bool    `yaml:"enabled"`
	PerturbProbability float64 `yaml:"perturb_probability"`
	MinFillLevel       int     `yaml:"min_fill_level"`
	Seed               int64   `yaml:"seed"` // 0 means time-seeded
}

// RoutingConfig points at the external OSRM-compatible routing provider.
type RoutingConfig struct {
	BaseURL        string        `yaml:"base_url"`
	Profile        string        `yaml:"profile"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	Timeout        time.Duration `yaml:"-"` // Ignored by YAML parser
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with every default applied, used when no
// config file is present.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 20
	}

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "smartwaste.db"
	}
	if cfg.Database.MaxOpenConns <= 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns <= 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetimeMinutes <= 0 {
		cfg.Database.ConnMaxLifetimeMinutes = 30
	}

	if cfg.Bins.DefaultCapacity <= 0 {
		cfg.Bins.DefaultCapacity = 100
	}
	if cfg.Bins.CriticalPercent <= 0 {
		cfg.Bins.CriticalPercent = 90
	}
	if cfg.Bins.WarningPercent <= 0 {
		cfg.Bins.WarningPercent = 70
	}
	if cfg.Bins.CollectionThreshold <= 0 {
		cfg.Bins.CollectionThreshold = 80
	}

	if cfg.Simulation.PerturbProbability <= 0 {
		cfg.Simulation.PerturbProbability = 0.3
	}
	if cfg.Simulation.MinFillLevel <= 0 {
		cfg.Simulation.MinFillLevel = 10
	}

	if cfg.Routing.BaseURL == "" {
		cfg.Routing.BaseURL = "http://router.project-osrm.org"
	}
	if cfg.Routing.Profile == "" {
		cfg.Routing.Profile = "driving"
	}
	// The route endpoint must answer promptly even when the provider hangs,
	// so the timeout is capped at 10 seconds.
	if cfg.Routing.TimeoutSeconds <= 0 || cfg.Routing.TimeoutSeconds > 10 {
		cfg.Routing.TimeoutSeconds = 10
	}
	cfg.Routing.Timeout = time.Duration(cfg.Routing.TimeoutSeconds) * time.Second
}
