package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
	DriverRedis    = "redis"
)

// Config is read from the environment. Keys match the variable names.
type Config struct {
	HTTPPort   string `mapstructure:"HTTP_PORT"`
	DBHost     string `mapstructure:"DB_HOST"`
	DBPort     string `mapstructure:"DB_PORT"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBSslMode  string `mapstructure:"DB_SSLMODE"`

	StorageDriver   string `mapstructure:"STORAGE_DRIVER"`
	NumberingDriver string `mapstructure:"NUMBERING_DRIVER"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	AMQPURL       string `mapstructure:"AMQP_URL"`
	AuditExchange string `mapstructure:"AUDIT_EXCHANGE"`

	BusinessTimezone     string `mapstructure:"BUSINESS_TIMEZONE"`
	JWTSecret            string `mapstructure:"JWT_SECRET"`
	CounterRetentionDays int    `mapstructure:"COUNTER_RETENTION_DAYS"`
	CounterPruneSchedule string `mapstructure:"COUNTER_PRUNE_SCHEDULE"`

	// MenuSeedFile is a JSON price list loaded into the in-memory menu.
	MenuSeedFile string `mapstructure:"MENU_SEED_FILE"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
}

func defaults() map[string]any {
	return map[string]any{
		"HTTP_PORT":              "8080",
		"DB_HOST":                "localhost",
		"DB_PORT":                "5432",
		"DB_USER":                "",
		"DB_PASSWORD":            "",
		"DB_NAME":                "restaurant",
		"DB_SSLMODE":             "disable",
		"STORAGE_DRIVER":         DriverPostgres,
		"NUMBERING_DRIVER":       DriverPostgres,
		"REDIS_ADDR":             "",
		"REDIS_PASSWORD":         "",
		"REDIS_DB":               0,
		"AMQP_URL":               "",
		"AUDIT_EXCHANGE":         "restaurant.audit",
		"BUSINESS_TIMEZONE":      "Asia/Taipei",
		"JWT_SECRET":             "",
		"COUNTER_RETENTION_DAYS": 30,
		"COUNTER_PRUNE_SCHEDULE": "0 30 3 * * *",
		"MENU_SEED_FILE":         "",
		"LOG_LEVEL":              "info",
	}
}

// LoadConfig reads envFile into the process environment when it exists, then
// resolves every key from the environment with defaults, and validates.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range defaults() {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []error

	if c.HTTPPort == "" {
		problems = append(problems, errors.New("HTTP_PORT is required"))
	}
	if c.JWTSecret == "" {
		problems = append(problems, errors.New("JWT_SECRET is required"))
	}

	switch c.StorageDriver {
	case DriverPostgres, DriverMemory:
	default:
		problems = append(problems, fmt.Errorf("STORAGE_DRIVER %q is not one of postgres, memory", c.StorageDriver))
	}

	switch c.NumberingDriver {
	case DriverPostgres, DriverMemory:
	case DriverRedis:
		if c.RedisAddr == "" {
			problems = append(problems, errors.New("REDIS_ADDR is required when NUMBERING_DRIVER is redis"))
		}
	default:
		problems = append(problems, fmt.Errorf("NUMBERING_DRIVER %q is not one of postgres, redis, memory", c.NumberingDriver))
	}

	if c.StorageDriver == DriverPostgres && c.NumberingDriver == DriverMemory {
		problems = append(problems, errors.New(
			"NUMBERING_DRIVER memory restarts at 0001 on every boot; use postgres or redis with postgres storage"))
	}

	if c.NeedsDatabase() && (c.DBHost == "" || c.DBUser == "" || c.DBName == "") {
		problems = append(problems, errors.New("DB_HOST, DB_USER and DB_NAME are required for the postgres driver"))
	}

	if _, err := time.LoadLocation(c.BusinessTimezone); err != nil {
		problems = append(problems, fmt.Errorf("BUSINESS_TIMEZONE: %w", err))
	}

	if c.CounterRetentionDays < 1 {
		problems = append(problems, fmt.Errorf("COUNTER_RETENTION_DAYS must be at least 1, got %d", c.CounterRetentionDays))
	}
	if _, err := cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	).Parse(c.CounterPruneSchedule); err != nil {
		problems = append(problems, fmt.Errorf("COUNTER_PRUNE_SCHEDULE: %w", err))
	}

	return errors.Join(problems...)
}

// NeedsDatabase reports whether any driver is backed by Postgres.
func (c Config) NeedsDatabase() bool {
	return c.StorageDriver == DriverPostgres || c.NumberingDriver == DriverPostgres
}

// DSN is the Postgres connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Location returns the business time zone. Validate has already checked it.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.BusinessTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
