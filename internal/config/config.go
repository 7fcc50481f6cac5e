package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/campushr/attendance-backend-go/internal/pkg/geo"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Storage    StorageConfig
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

// JWTConfig holds token verification configuration. Tokens are issued by
// the institution's identity service; we only verify and read labels.
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	// Timezone is the institution-local zone that defines the calendar
	// day for attendance records, e.g. "Asia/Manila".
	Timezone string
}

// AttendanceConfig carries the injected attendance policy: the campus
// anchor, the geofence radius and the expected-arrival threshold. None of
// these are hardcoded anywhere else.
type AttendanceConfig struct {
	Anchor          geo.Coordinate
	RadiusKm        float64
	ExpectedArrival string // HH:MM, institution-local
	LocationTimeout time.Duration
}

type StorageConfig struct {
	BasePath  string
	BaseURL   string
	ExportDir string
}

func Load() (*Config, error) {
	// Missing .env is fine in deployed environments; env vars win anyway.
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "campus-attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(dbMaxConns),
		MinConns: int32(dbMinConns),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Timezone: getEnv("APP_TIMEZONE", "Asia/Manila"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	anchorLat, err := strconv.ParseFloat(getEnv("ANCHOR_LATITUDE", "14.5995"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ANCHOR_LATITUDE: %w", err)
	}
	anchorLng, err := strconv.ParseFloat(getEnv("ANCHOR_LONGITUDE", "120.9842"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ANCHOR_LONGITUDE: %w", err)
	}
	radiusKm, err := strconv.ParseFloat(getEnv("GEOFENCE_RADIUS_KM", "0.1"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid GEOFENCE_RADIUS_KM: %w", err)
	}
	locationTimeout, err := time.ParseDuration(getEnv("LOCATION_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOCATION_TIMEOUT: %w", err)
	}

	config.Attendance = AttendanceConfig{
		Anchor:          geo.Coordinate{Latitude: anchorLat, Longitude: anchorLng},
		RadiusKm:        radiusKm,
		ExpectedArrival: getEnv("EXPECTED_ARRIVAL", "09:00"),
		LocationTimeout: locationTimeout,
	}

	config.Storage = StorageConfig{
		BasePath:  getEnv("STORAGE_BASE_PATH", "./uploads"),
		BaseURL:   getEnv("STORAGE_BASE_URL", "http://localhost:8080/uploads"),
		ExportDir: getEnv("REPORT_EXPORT_DIR", "exports"),
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
	if c.Database.MaxConns < c.Database.MinConns {
		return fmt.Errorf("DB_MAX_CONNS must be at least DB_MIN_CONNS")
	}
	if !c.Attendance.Anchor.Valid() {
		return fmt.Errorf("campus anchor coordinate is out of range")
	}
	if c.Attendance.RadiusKm <= 0 {
		return fmt.Errorf("GEOFENCE_RADIUS_KM must be positive")
	}
	if _, err := time.Parse("15:04", c.Attendance.ExpectedArrival); err != nil {
		return fmt.Errorf("EXPECTED_ARRIVAL must be in HH:MM format: %w", err)
	}
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
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

// Location resolves the institution-local timezone.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
