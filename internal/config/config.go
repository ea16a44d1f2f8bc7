package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendSupabase = "supabase"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

// SearchDefaults apply when a nearby search omits the center or radius.
type SearchDefaults struct {
	Latitude    float64 `yaml:"latitude"`
	Longitude   float64 `yaml:"longitude"`
	RadiusMiles float64 `yaml:"radius_miles"`
}

// ImportDefaults fill in fields missing from imported records.
type ImportDefaults struct {
	City   string `yaml:"default_city"`
	State  string `yaml:"default_state"`
	Source string `yaml:"default_source"`
}

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	StoreBackend    string
	SupabaseURL     string
	SupabaseAnonKey string
	MongoDBURI      string
	MongoDBPassword string
	MongoDBName     string

	KafkaBrokers     []string
	KafkaEventsTopic string

	CORSOrigins     []string
	ShutdownTimeout time.Duration

	SearchConfigFile string
	Search           SearchDefaults
	Import           ImportDefaults
}

// fileConfig is the optional YAML overrides file.
type fileConfig struct {
	Search *SearchDefaults `yaml:"search"`
	Import *ImportDefaults `yaml:"import"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnvWithDefault("PORT", "8080"),
		Environment:      getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:         getEnvWithDefault("LOG_LEVEL", "info"),
		StoreBackend:     strings.ToLower(getEnvWithDefault("STORE_BACKEND", BackendSupabase)),
		SupabaseURL:      os.Getenv("SUPABASE_URL"),
		SupabaseAnonKey:  os.Getenv("SUPABASE_URL_ANON_KEY"),
		MongoDBURI:       os.Getenv("MONGODB_URI"),
		MongoDBPassword:  os.Getenv("MONGODB_PASSWORD"),
		MongoDBName:      getEnvWithDefault("MONGODB_DATABASE", "vendorwize"),
		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaEventsTopic: getEnvWithDefault("KAFKA_EVENTS_TOPIC", "vendorwize.events"),
		CORSOrigins:      splitList(getEnvWithDefault("CORS_ORIGINS", "*")),
		SearchConfigFile: os.Getenv("SEARCH_CONFIG_FILE"),
		Search: SearchDefaults{
			Latitude:    35.7796,
			Longitude:   -78.6382,
			RadiusMiles: 50,
		},
		Import: ImportDefaults{
			City:   "Unknown",
			State:  "NC",
			Source: "api_import",
		},
	}

	shutdown, err := time.ParseDuration(getEnvWithDefault("SHUTDOWN_TIMEOUT", "30s"))
	if err != nil || shutdown <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}
	cfg.ShutdownTimeout = shutdown

	if cfg.SearchConfigFile != "" {
		if err := cfg.loadFile(cfg.SearchConfigFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read SEARCH_CONFIG_FILE: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse SEARCH_CONFIG_FILE: %w", err)
	}

	if fc.Search != nil {
		if fc.Search.Latitude != 0 || fc.Search.Longitude != 0 {
			c.Search.Latitude = fc.Search.Latitude
			c.Search.Longitude = fc.Search.Longitude
		}
		if fc.Search.RadiusMiles != 0 {
			c.Search.RadiusMiles = fc.Search.RadiusMiles
		}
	}
	if fc.Import != nil {
		if fc.Import.City != "" {
			c.Import.City = fc.Import.City
		}
		if fc.Import.State != "" {
			c.Import.State = fc.Import.State
		}
		if fc.Import.Source != "" {
			c.Import.Source = fc.Import.Source
		}
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	for _, f := range []struct {
		key string
		dst *float64
	}{
		{"DEFAULT_SEARCH_LAT", &c.Search.Latitude},
		{"DEFAULT_SEARCH_LNG", &c.Search.Longitude},
		{"DEFAULT_SEARCH_RADIUS_MILES", &c.Search.RadiusMiles},
	} {
		s := os.Getenv(f.key)
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("invalid %s", f.key)
		}
		*f.dst = v
	}

	c.Import.City = getEnvWithDefault("IMPORT_DEFAULT_CITY", c.Import.City)
	c.Import.State = getEnvWithDefault("IMPORT_DEFAULT_STATE", c.Import.State)
	c.Import.Source = getEnvWithDefault("IMPORT_DEFAULT_SOURCE", c.Import.Source)
	return nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendSupabase:
		if c.SupabaseURL == "" {
			return fmt.Errorf("SUPABASE_URL is required")
		}
		if c.SupabaseAnonKey == "" {
			return fmt.Errorf("SUPABASE_URL_ANON_KEY is required")
		}
	case BackendMongo:
		if c.MongoDBURI == "" {
			return fmt.Errorf("MONGODB_URI is required")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q (expected supabase, mongo or memory)", c.StoreBackend)
	}

	if math.Abs(c.Search.Latitude) > 90 || math.Abs(c.Search.Longitude) > 180 {
		return errors.New("default search center is out of range")
	}
	if c.Search.RadiusMiles < 0 {
		return errors.New("default search radius must not be negative")
	}
	if c.Import.City == "" || c.Import.State == "" {
		return errors.New("import default city and state must not be empty")
	}
	return nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// KafkaEnabled reports whether the change feed has brokers to write to.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// SlogLevel maps LOG_LEVEL to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
