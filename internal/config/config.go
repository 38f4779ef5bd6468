package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Storage drivers
const (
	DriverMongo  = "mongodb"
	DriverMemory = "memory"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string        `yaml:"port" env:"PORT,SERVER_PORT"`
		Mode            string        `yaml:"mode" env:"APP_ENV,SERVER_MODE"`
		ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Driver           string        `yaml:"driver" env:"DB_DRIVER"`
		URI              string        `yaml:"uri" env:"MONGO_URI"`
		Name             string        `yaml:"name" env:"DB_NAME"`
		ConnectTimeout   time.Duration `yaml:"connect_timeout" env:"DB_CONNECT_TIMEOUT"`
		OperationTimeout time.Duration `yaml:"operation_timeout" env:"DB_OPERATION_TIMEOUT"`
		MaxPoolSize      uint64        `yaml:"max_pool_size" env:"DB_MAX_POOL_SIZE"`
		Seed             bool          `yaml:"seed" env:"DB_SEED"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS"`
	} `yaml:"cors"`

	Tracing struct {
		Enabled     bool    `yaml:"enabled" env:"OTEL_ENABLED"`
		ServiceName string  `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
		SampleRatio float64 `yaml:"sample_ratio" env:"OTEL_SAMPLER_RATIO"`
	} `yaml:"tracing"`

	Metrics struct {
		Enabled bool `yaml:"enabled" env:"METRICS_ENABLED"`
	} `yaml:"metrics"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "5000"
	config.Server.Mode = "development"
	config.Server.ReadTimeout = 10 * time.Second
	config.Server.WriteTimeout = 10 * time.Second
	config.Server.ShutdownTimeout = 10 * time.Second

	config.Database.Driver = DriverMongo
	config.Database.URI = "mongodb://localhost:27017"
	config.Database.Name = "devcamper"
	config.Database.ConnectTimeout = 10 * time.Second
	config.Database.OperationTimeout = 5 * time.Second
	config.Database.MaxPoolSize = 20

	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.CORS.AllowedOrigins = []string{"http://localhost:3000"}

	config.Tracing.ServiceName = "devcamper-api"
	config.Tracing.SampleRatio = 0.1

	config.Metrics.Enabled = true
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if strings.TrimSpace(config.Server.Port) == "" {
		return fmt.Errorf("server port is required")
	}

	switch config.Database.Driver {
	case DriverMongo:
		if strings.TrimSpace(config.Database.URI) == "" {
			return fmt.Errorf("database uri is required for the %s driver", DriverMongo)
		}
		if strings.TrimSpace(config.Database.Name) == "" {
			return fmt.Errorf("database name is required for the %s driver", DriverMongo)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unsupported database driver %q", config.Database.Driver)
	}

	if config.Database.OperationTimeout <= 0 {
		return fmt.Errorf("database operation timeout must be positive")
	}

	if config.Tracing.SampleRatio < 0 || config.Tracing.SampleRatio > 1 {
		return fmt.Errorf("tracing sample ratio must be between 0 and 1")
	}

	return nil
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}
