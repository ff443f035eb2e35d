package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server      ServerConfig
	Postgres    PostgresConfig
	Redis       RedisConfig
	RateLimiter RateLimiterConfig
	Bulkhead    BulkheadConfig
	Depot       DepotConfig
	Planner     PlannerConfig
	Bin         BinConfig
	Sensor      SensorConfig
	Alerts      AlertsConfig
}

type ServerConfig struct {
	Port            int
	ShutdownTimeout time.Duration
}

type PostgresConfig struct {
	URL      string // DATABASE_URL takes precedence if set
	Host     string
	Port     int
	User     string
	Password string
	DB       string
	SSLMode  string
}

type RedisConfig struct {
	URL      string // REDIS_URL takes precedence if set
	Host     string
	Port     int
	Password string
	DB       int
}

type RateLimiterConfig struct {
	MaxRequests   int
	WindowSeconds int
}

type BulkheadConfig struct {
	ReadingPool  int
	MutationPool int
}

// DepotConfig is the collection depot every route starts from.
type DepotConfig struct {
	Lat float64
	Lng float64
}

type PlannerConfig struct {
	MaxLinkDistanceKM float64
	StaffPerRoute     int
}

type BinConfig struct {
	StatusCacheTTLSec int
	IdempotencyTTLSec int
}

type SensorConfig struct {
	SimulationEnabled bool
	IntervalSeconds   int
	MinIncrement      float64
	MaxIncrement      float64
}

type AlertsConfig struct {
	Channel string
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getenvFloat(key string, fallback float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return v
}

func getenvBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:            getenvInt("PORT", getenvInt("SERVER_PORT", 8080)),
			ShutdownTimeout: time.Duration(getenvInt("SHUTDOWN_TIMEOUT_SECONDS", 5)) * time.Second,
		},
		Postgres: PostgresConfig{
			URL:      getenv("DATABASE_URL", ""),
			Host:     getenv("POSTGRES_HOST", "localhost"),
			Port:     getenvInt("POSTGRES_PORT", 5432),
			User:     getenv("POSTGRES_USER", "waste_admin"),
			Password: getenv("POSTGRES_PASSWORD", "secure_password"),
			DB:       getenv("POSTGRES_DB", "smart_waste"),
			SSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getenv("REDIS_URL", ""),
			Host:     getenv("REDIS_HOST", "localhost"),
			Port:     getenvInt("REDIS_PORT", 6379),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getenvInt("REDIS_DB", 0),
		},
		RateLimiter: RateLimiterConfig{
			MaxRequests:   getenvInt("RATE_LIMIT_MAX_REQUESTS", 100),
			WindowSeconds: getenvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		Bulkhead: BulkheadConfig{
			ReadingPool:  getenvInt("BULKHEAD_READING_POOL", 100),
			MutationPool: getenvInt("BULKHEAD_MUTATION_POOL", 50),
		},
		Depot: DepotConfig{
			Lat: getenvFloat("DEPOT_LAT", 40.7128),
			Lng: getenvFloat("DEPOT_LNG", -74.0060),
		},
		Planner: PlannerConfig{
			MaxLinkDistanceKM: getenvFloat("PLANNER_MAX_LINK_DISTANCE_KM", 3.0),
			StaffPerRoute:     getenvInt("PLANNER_STAFF_PER_ROUTE", 2),
		},
		Bin: BinConfig{
			StatusCacheTTLSec: getenvInt("BIN_STATUS_CACHE_TTL_SECONDS", 60),
			IdempotencyTTLSec: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		},
		Sensor: SensorConfig{
			SimulationEnabled: getenvBool("SENSOR_SIMULATION_ENABLED", false),
			IntervalSeconds:   getenvInt("SENSOR_SIMULATION_INTERVAL_SECONDS", 300),
			MinIncrement:      getenvFloat("SENSOR_SIMULATION_MIN_INCREMENT", 0.5),
			MaxIncrement:      getenvFloat("SENSOR_SIMULATION_MAX_INCREMENT", 3.0),
		},
		Alerts: AlertsConfig{
			Channel: getenv("ALERTS_CHANNEL", "alerts:raised"),
		},
	}

	return cfg, nil
}

func (p PostgresConfig) DSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.DB, p.SSLMode)
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
