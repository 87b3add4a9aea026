package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultJWTExpiry = 24 * time.Hour

type Config struct {
	// Database
	DBDriver   string `mapstructure:"db_driver"`
	DBHost     string `mapstructure:"db_host"`
	DBPort     string `mapstructure:"db_port"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBSSLMode  string `mapstructure:"db_sslmode"`
	DBPath     string `mapstructure:"db_path"`

	// JWT
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTExpiry time.Duration `mapstructure:"jwt_expiry"`

	// Seed user, created on start when missing
	SeedUsername    string `mapstructure:"seed_username"`
	SeedPassword    string `mapstructure:"seed_password"`
	SeedFirstname   string `mapstructure:"seed_firstname"`
	SeedLastname    string `mapstructure:"seed_lastname"`
	SeedAccessLevel int    `mapstructure:"seed_access_level"`

	// Server
	Port          string `mapstructure:"port"`
	CORSOrigins   string `mapstructure:"cors_origins"`
	AuthRateLimit int    `mapstructure:"auth_rate_limit"`

	// Observability
	LogRetentionDays int    `mapstructure:"log_retention_days"`
	SentryDSN        string `mapstructure:"sentry_dsn"`
	AppEnv           string `mapstructure:"app_env"`
}

var defaults = map[string]any{
	"db_driver":   "postgres",
	"db_host":     "localhost",
	"db_port":     "5432",
	"db_user":     "postgres",
	"db_password": "",
	"db_name":     "northwind",
	"db_sslmode":  "disable",
	"db_path":     "northwind.db",

	"jwt_secret": "",
	"jwt_expiry": "24h",

	"seed_username":     "",
	"seed_password":     "",
	"seed_firstname":    "",
	"seed_lastname":     "",
	"seed_access_level": 1,

	"port":            "8080",
	"cors_origins":    "*",
	"auth_rate_limit": 0,

	"log_retention_days": 30,
	"sentry_dsn":         "",
	"app_env":            "development",
}

// Load reads configuration from the environment, an optional .env file and an
// optional YAML file named by CONFIG_FILE. Environment wins over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.JWTExpiry <= 0 {
		cfg.JWTExpiry = DefaultJWTExpiry
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}
	switch c.DBDriver {
	case "postgres", "mysql":
		if c.DBPassword == "" {
			return errors.New("DB_PASSWORD environment variable is required")
		}
	case "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func (c *Config) DSN() string {
	switch c.DBDriver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
	case "sqlite":
		return c.DBPath
	default:
		return "host=" + c.DBHost +
			" user=" + c.DBUser +
			" password=" + c.DBPassword +
			" dbname=" + c.DBName +
			" port=" + c.DBPort +
			" sslmode=" + c.DBSSLMode +
			" TimeZone=UTC"
	}
}
