package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port        string `yaml:"port" env:"SERVER_PORT"`
		Mode        string `yaml:"mode" env:"SERVER_MODE"`
		StoragePath string `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		BaseURL     string `yaml:"base_url" env:"SERVER_BASE_URL"`
	} `yaml:"server"`

	Database struct {
		Driver          string `yaml:"driver" env:"DB_DRIVER"`
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	} `yaml:"database"`

	JWT struct {
		Secret                 string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration  string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		RefreshTokenExpiration string `yaml:"refresh_token_expiration" env:"JWT_REFRESH_TOKEN_EXPIRATION"`
		Issuer                 string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Import struct {
		CredentialsFile string        `yaml:"credentials_file" env:"IMPORT_CREDENTIALS_FILE"`
		APIKey          string        `yaml:"api_key" env:"IMPORT_API_KEY"`
		Endpoint        string        `yaml:"endpoint" env:"IMPORT_ENDPOINT"`
		Timeout         time.Duration `yaml:"timeout" env:"IMPORT_TIMEOUT"`
	} `yaml:"import"`

	Notification struct {
		SMTPHost     string        `yaml:"smtp_host" env:"SMTP_HOST"`
		SMTPPort     int           `yaml:"smtp_port" env:"SMTP_PORT"`
		SMTPUsername string        `yaml:"smtp_username" env:"SMTP_USERNAME"`
		SMTPPassword string        `yaml:"smtp_password" env:"SMTP_PASSWORD"`
		FromName     string        `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail    string        `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS       bool          `yaml:"use_tls" env:"SMTP_USE_TLS"`
		Timeout      time.Duration `yaml:"timeout" env:"SMTP_TIMEOUT"`
		AdminEmails  []string      `yaml:"admin_emails" env:"NOTIFY_ADMIN_EMAILS"` // Comma separated in env
	} `yaml:"notification"`

	Redis struct {
		Enabled   bool          `yaml:"enabled" env:"REDIS_ENABLED"`
		Addr      string        `yaml:"addr" env:"REDIS_ADDR"`
		Password  string        `yaml:"password" env:"REDIS_PASSWORD"`
		DB        int           `yaml:"db" env:"REDIS_DB"`
		CourseTTL time.Duration `yaml:"course_ttl" env:"REDIS_COURSE_TTL"`
	} `yaml:"redis"`

	Telemetry struct {
		Enabled     bool    `yaml:"enabled" env:"OTEL_ENABLED"`
		Exporter    string  `yaml:"exporter" env:"OTEL_EXPORTER"` // stdout or otlp
		Endpoint    string  `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
		Insecure    bool    `yaml:"insecure" env:"OTEL_EXPORTER_OTLP_INSECURE"`
		ServiceName string  `yaml:"service_name" env:"OTEL_SERVICE_NAME"`
		SampleRatio float64 `yaml:"sample_ratio" env:"OTEL_SAMPLER_RATIO"`
	} `yaml:"telemetry"`

	Workflow struct {
		CompareAndSwap         bool `yaml:"compare_and_swap" env:"WORKFLOW_COMPARE_AND_SWAP"`
		ClearAssigneeOnPublish bool `yaml:"clear_assignee_on_publish" env:"WORKFLOW_CLEAR_ASSIGNEE_ON_PUBLISH"`
	} `yaml:"workflow"`

	Seed struct {
		OperatorEmail    string `yaml:"operator_email" env:"SEED_OPERATOR_EMAIL"`
		OperatorPassword string `yaml:"operator_password" env:"SEED_OPERATOR_PASSWORD"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// The file is optional, defaults and env vars are enough to boot
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := loadFromEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "uploads"

	// Database defaults
	config.Database.Driver = "postgres"
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "scholars"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 5
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"

	// JWT defaults
	config.JWT.AccessTokenExpiration = "1h"
	config.JWT.RefreshTokenExpiration = "720h"
	config.JWT.Issuer = "scholars.app"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	// Import defaults
	config.Import.Timeout = 30 * time.Second

	// Notification defaults
	config.Notification.SMTPPort = 587
	config.Notification.FromName = "Scholars"
	config.Notification.Timeout = 10 * time.Second

	// Redis defaults
	config.Redis.Addr = "localhost:6379"
	config.Redis.CourseTTL = time.Hour

	// Telemetry defaults
	config.Telemetry.Exporter = "stdout"
	config.Telemetry.ServiceName = "scholars"
	config.Telemetry.SampleRatio = 0.1
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) error {
	return processStructFields(config)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Driver == "" {
		return fmt.Errorf("database driver is required")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.JWT.Secret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if _, err := time.ParseDuration(config.JWT.AccessTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT access token expiration format: %w", err)
	}

	if _, err := time.ParseDuration(config.JWT.RefreshTokenExpiration); err != nil {
		return fmt.Errorf("invalid JWT refresh token expiration format: %w", err)
	}

	if config.Import.Timeout <= 0 {
		return fmt.Errorf("import timeout must be positive")
	}

	if config.Notification.Timeout <= 0 {
		return fmt.Errorf("notification timeout must be positive")
	}

	switch strings.ToLower(config.Telemetry.Exporter) {
	case "stdout", "otlp":
	default:
		return fmt.Errorf("unsupported telemetry exporter %q", config.Telemetry.Exporter)
	}

	if config.Telemetry.SampleRatio < 0 || config.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("telemetry sample ratio must be between 0 and 1")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// PublicBaseURL returns the externally visible base URL of the API
func (c *Config) PublicBaseURL() string {
	if c.Server.BaseURL != "" {
		return strings.TrimRight(c.Server.BaseURL, "/")
	}
	return "http://localhost:" + c.Server.Port
}

// AdminEmails returns the operator notification recipients
func (c *Config) AdminEmails() []string {
	var out []string
	for _, addr := range c.Notification.AdminEmails {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
