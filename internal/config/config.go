package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Payroll  PayrollConfig
	CORS     CORSConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Name     string
	Version  string
	Port     int
	Env      string
	LogLevel string
}

// PayrollConfig holds the fallback rates used when no settings row is stored.
// Rates are fractions: 0.05 is 5%.
type PayrollConfig struct {
	EmploymentInsuranceRate decimal.NullDecimal
	IncomeTaxRate           decimal.NullDecimal
	OvertimePayPerMinute    decimal.NullDecimal
	RosterConcurrency       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	config := &Config{
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			MinConns: v.GetInt32("DB_MIN_CONNS"),
		},
		App: AppConfig{
			Name:     v.GetString("APP_NAME"),
			Version:  v.GetString("APP_VERSION"),
			Port:     v.GetInt("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
	}

	payroll := PayrollConfig{RosterConcurrency: v.GetInt("PAYROLL_ROSTER_CONCURRENCY")}
	var err error
	if payroll.EmploymentInsuranceRate, err = parseRate(v, "EMPLOYMENT_INSURANCE_RATE"); err != nil {
		return nil, err
	}
	if payroll.IncomeTaxRate, err = parseRate(v, "INCOME_TAX_RATE"); err != nil {
		return nil, err
	}
	if payroll.OvertimePayPerMinute, err = parseRate(v, "OVERTIME_PAY_PER_MINUTE"); err != nil {
		return nil, err
	}
	config.Payroll = payroll

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "hris_payroll")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 25)
	v.SetDefault("DB_MIN_CONNS", 5)

	v.SetDefault("APP_NAME", "hris-payroll")
	v.SetDefault("APP_VERSION", "v1.0.0")
	v.SetDefault("APP_PORT", 8080)
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("EMPLOYMENT_INSURANCE_RATE", "0.003")
	v.SetDefault("INCOME_TAX_RATE", "0.05")
	v.SetDefault("PAYROLL_ROSTER_CONCURRENCY", 4)
}

// parseRate returns an invalid NullDecimal when the key is blank.
func parseRate(v *viper.Viper, key string) (decimal.NullDecimal, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("DB_PORT must be positive")
	}
	if c.App.Port <= 0 {
		return fmt.Errorf("APP_PORT must be positive")
	}
	if c.Payroll.RosterConcurrency <= 0 {
		return fmt.Errorf("PAYROLL_ROSTER_CONCURRENCY must be positive")
	}
	for key, rate := range map[string]decimal.NullDecimal{
		"EMPLOYMENT_INSURANCE_RATE": c.Payroll.EmploymentInsuranceRate,
		"INCOME_TAX_RATE":           c.Payroll.IncomeTaxRate,
		"OVERTIME_PAY_PER_MINUTE":   c.Payroll.OvertimePayPerMinute,
	} {
		if rate.Valid && rate.Decimal.IsNegative() {
			return fmt.Errorf("%s must be non-negative", key)
		}
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func splitList(value string) []string {
	if value == "" {
		return []string{}
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
