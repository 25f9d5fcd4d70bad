package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// PayrollConfig holds every tunable the payroll engine needs. It is injected
// into the engine at construction so nothing in the computation path reads
// package-level state.
type PayrollConfig struct {
	// Timezone is the IANA zone all payroll wall-clock arithmetic is anchored
	// to. Lunch windows and shift boundaries are civil times in this zone.
	Timezone string

	// Lunch window, local time-of-day ("HH:mm").
	LunchStart string
	LunchEnd   string

	// Class sessions run SessionMinutes, padded by SessionBufferMinutes of
	// paid time on each side.
	SessionMinutes       int
	SessionBufferMinutes int

	// Residual overtime below this many minutes is noise, not a request.
	OvertimeThresholdMinutes int

	// RolePriority decides which role wins a contested minute. Unknown roles
	// get priority 0.
	RolePriority map[string]int

	// DefaultRoleKey is used for shift schedules with no explicit role and as
	// the rate fallback for blocks whose role has no configured rate.
	DefaultRoleKey string
}

func Load() (*Config, error) {
	// A missing .env is fine; real environment variables take precedence.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "center-backend"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	sessionMinutes, err := strconv.Atoi(getEnv("PAYROLL_SESSION_MINUTES", "90"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_SESSION_MINUTES: %w", err)
	}
	bufferMinutes, err := strconv.Atoi(getEnv("PAYROLL_SESSION_BUFFER_MINUTES", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_SESSION_BUFFER_MINUTES: %w", err)
	}
	otThreshold, err := strconv.Atoi(getEnv("PAYROLL_OT_THRESHOLD_MINUTES", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_OT_THRESHOLD_MINUTES: %w", err)
	}

	config.Payroll = PayrollConfig{
		Timezone:                 getEnv("PAYROLL_TIMEZONE", "Asia/Ho_Chi_Minh"),
		LunchStart:               getEnv("PAYROLL_LUNCH_START", "11:45"),
		LunchEnd:                 getEnv("PAYROLL_LUNCH_END", "13:15"),
		SessionMinutes:           sessionMinutes,
		SessionBufferMinutes:     bufferMinutes,
		OvertimeThresholdMinutes: otThreshold,
		RolePriority: map[string]int{
			"teacher":            3,
			"teaching-assistant": 2,
			"part-time":          1,
		},
		DefaultRoleKey: "part-time",
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if _, err := time.LoadLocation(c.Payroll.Timezone); err != nil {
		return fmt.Errorf("invalid PAYROLL_TIMEZONE: %w", err)
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
