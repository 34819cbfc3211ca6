package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Storage drivers.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// ErrUnknownDriver is returned by Validate for an unsupported storage driver.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, storage backends,
// event publishing, error reporting and graceful shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	Log struct {
		// Level overrides the environment's default log level (debug, info, warn, error)
		Level string `env:"LOG_LEVEL" yaml:"level"`
	} `yaml:"log"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8000" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxBodyBytes caps request bodies
		MaxBodyBytes int64 `env:"HTTP_MAX_BODY_BYTES" env-default:"1048576" yaml:"maxBodyBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// PprofEnabled mounts net/http/pprof under /debug/pprof/
		PprofEnabled bool `env:"HTTP_PPROF_ENABLED" env-default:"false" yaml:"pprofEnabled"`
		// CORSOrigins lists the allowed origins; "*" or an empty list allows any
		CORSOrigins []string `env:"HTTP_CORS_ORIGINS" env-default:"*" env-separator:"," yaml:"corsOrigins"`
	} `yaml:"http"`

	Storage struct {
		// Driver selects the document store: postgres, mongo or memory
		Driver string `env:"STORAGE_DRIVER" env-default:"mongo" yaml:"driver"`
	} `yaml:"storage"`

	// Database contains all PostgreSQL connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"smartsite" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`

	Mongo struct {
		// URI is the MongoDB connection string
		URI string `env:"DATABASE_URL" yaml:"uri"`
		// Name is the database documents are written to
		Name string `env:"MONGO_DATABASE_NAME" env-default:"smartsite" yaml:"name"`
		// MaxPoolSize caps the connections per server, 0 keeps the driver default
		MaxPoolSize uint64 `env:"MONGO_MAX_POOL_SIZE" env-default:"0" yaml:"maxPoolSize"`
		// ConnectTimeout bounds establishing a connection
		ConnectTimeout time.Duration `env:"MONGO_CONNECT_TIMEOUT" env-default:"10s" yaml:"connectTimeout"`
	} `yaml:"mongo"`

	Kafka struct {
		// Brokers enables event publishing when set
		Brokers []string `env:"KAFKA_BROKERS" env-separator:"," yaml:"brokers"`
		// Topic receives lead and demo request events
		Topic string `env:"KAFKA_TOPIC" env-default:"smartsite.leads" yaml:"topic"`
	} `yaml:"kafka"`

	Sentry struct {
		// DSN enables error reporting when set
		DSN string `env:"SENTRY_DSN" yaml:"dsn"`
		// TracesSampleRate is the share of requests traced, between 0 and 1
		TracesSampleRate float64 `env:"SENTRY_TRACES_SAMPLE_RATE" env-default:"0.2" yaml:"tracesSampleRate"`
	} `yaml:"sentry"`

	Diagnostics struct {
		// ProbeTimeout bounds each database probe of the diagnostic endpoint
		ProbeTimeout time.Duration `env:"DIAGNOSTICS_PROBE_TIMEOUT" env-default:"2s" yaml:"probeTimeout"`
	} `yaml:"diagnostics"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// Variables from a .env file in the working directory are exported first. When
// the yaml file does not exist only the environment is read.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load .env: %w", err)
	}

	var cfg Config
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read environment: %w", err)
		}
	} else if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings that have no usable default.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverMongo, DriverMemory:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver)
	}

	if c.Sentry.TracesSampleRate < 0 || c.Sentry.TracesSampleRate > 1 {
		return fmt.Errorf("sentry traces sample rate must be between 0 and 1, got %v", c.Sentry.TracesSampleRate)
	}

	return nil
}
