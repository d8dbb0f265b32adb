package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendJSON     = "json"
	BackendPostgres = "postgres"
)

type Config struct {
	Env        string           `yaml:"env"`        // Env is the current environment: local, development, production.
	HTTP       HTTPConfig       `yaml:"http"`       // HTTP holds the API server configuration.
	Monitoring MonitoringConfig `yaml:"monitoring"` // Monitoring holds the health and metrics server configuration.
	Storage    StorageConfig    `yaml:"storage"`    // Storage selects the backing store of the collection.
	Postgres   PostgresConfig   `yaml:"postgres"`   // Postgres holds the database configuration
}

// HTTPConfig struct holds the configuration of the employees API server.
type HTTPConfig struct {
	Address         string        `yaml:"address"`          // Address is the listen address, e.g. `:8000`.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"` // ShutdownTimeout bounds graceful shutdown.
}

// MonitoringConfig struct holds the configuration of the monitoring server.
type MonitoringConfig struct {
	Port int `yaml:"port"` // Port serves /healthz and /metrics.
}

// StorageConfig struct selects the backing store.
type StorageConfig struct {
	Backend string `yaml:"backend"` // Backend is either `json` or `postgres`.
	Path    string `yaml:"path"`    // Path is the JSON document location for the json backend.
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string `yaml:"host"`     // Host is the database server address.
	Port     string `yaml:"port"`     // Port is the database server port.
	User     string `yaml:"user"`     // User is the database user.
	Password string `yaml:"password"` // Password is the database user's password.
	Dbname   string `yaml:"db_name"`  // Dbname is the name of the database.
}

// DSN builds the connection URL of the database.
func (p PostgresConfig) DSN() string {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(p.User, p.Password),
		Host:     net.JoinHostPort(p.Host, p.Port),
		Path:     p.Dbname,
		RawQuery: "sslmode=disable",
	}

	return dsn.String()
}

var envBindings = map[string]string{
	"env":                   "HESTIA_ENV",
	"http.address":          "HESTIA_HTTP_ADDRESS",
	"http.shutdown_timeout": "HESTIA_SHUTDOWN_TIMEOUT",
	"monitoring.port":       "HESTIA_MONITORING_PORT",
	"storage.backend":       "HESTIA_STORAGE_BACKEND",
	"storage.path":          "HESTIA_DATA_FILE",
	"postgres.host":         "DB_HOST",
	"postgres.port":         "DB_PORT",
	"postgres.user":         "DB_USERNAME",
	"postgres.password":     "DB_PASSWORD",
	"postgres.db_name":      "DB_NAME",
}

// MustLoad loads the configuration and panics if it cannot be built.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("config error: " + err.Error())
	}

	return cfg
}

// Load reads the configuration from the environment, an optional `.env` file
// and an optional YAML file pointed to by CONFIG_PATH.
func Load() (*Config, error) {
	// .env is optional, the process environment always wins over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	vpr := viper.New()

	defShutdownTimeout := 10
	defMonitoringPort := 8080

	vpr.SetDefault("env", "local")
	vpr.SetDefault("http.address", ":8000")
	vpr.SetDefault("http.shutdown_timeout", time.Duration(defShutdownTimeout)*time.Second)
	vpr.SetDefault("monitoring.port", defMonitoringPort)
	vpr.SetDefault("storage.backend", BackendJSON)
	vpr.SetDefault("storage.path", "employees.json")
	vpr.SetDefault("postgres.port", "5432")

	for key, env := range envBindings {
		if err := vpr.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("config file does not exist: %s", configPath)
		}

		vpr.SetConfigFile(configPath)
		if err := vpr.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	shutdownTimeout, err := time.ParseDuration(vpr.GetString("http.shutdown_timeout"))
	if err != nil {
		return nil, errors.New("failed to parse shutdown timeout from configuration")
	}

	monitoringPort := vpr.GetInt("monitoring.port")
	if monitoringPort <= 0 {
		return nil, errors.New("failed to parse monitoring port from configuration")
	}

	cfg := &Config{
		Env: vpr.GetString("env"),
		HTTP: HTTPConfig{
			Address:         vpr.GetString("http.address"),
			ShutdownTimeout: shutdownTimeout,
		},
		Monitoring: MonitoringConfig{
			Port: monitoringPort,
		},
		Storage: StorageConfig{
			Backend: vpr.GetString("storage.backend"),
			Path:    vpr.GetString("storage.path"),
		},
		Postgres: PostgresConfig{
			Host:     vpr.GetString("postgres.host"),
			Port:     vpr.GetString("postgres.port"),
			User:     vpr.GetString("postgres.user"),
			Password: vpr.GetString("postgres.password"),
			Dbname:   vpr.GetString("postgres.db_name"),
		},
	}

	switch cfg.Storage.Backend {
	case BackendJSON:
		if cfg.Storage.Path == "" {
			return nil, errors.New("storage path must be set for the json backend")
		}
	case BackendPostgres:
		if cfg.Postgres.Host == "" || cfg.Postgres.Dbname == "" {
			return nil, errors.New("postgres host and db_name must be set for the postgres backend")
		}
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}

	return cfg, nil
}
