package config

import (
	"os"
	"strconv"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Store    StoreConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Demo     DemoConfig
	Report   ReportConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
}

type LoggerConfig struct {
	Level    string
	Encoding string
}

// StoreConfig selects the record-store and flag-store backends at startup.
type StoreConfig struct {
	Backend     string // "memory" or "postgres"
	FlagBackend string // "memory" or "redis"
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DemoConfig struct {
	Enabled bool
}

type ReportConfig struct {
	Enabled           bool
	Schedule          string
	LowStockThreshold int
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "development"),
			HTTPPort: getEnv("HTTP_PORT", ":8080"),
		},
		Logger: LoggerConfig{
			Level:    getEnv("LOGGER_LEVEL", "debug"),
			Encoding: getEnv("LOGGER_ENCODING", "console"),
		},
		Store: StoreConfig{
			Backend:     getEnv("STORE_BACKEND", "memory"),
			FlagBackend: getEnv("FLAG_BACKEND", "memory"),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "salestracker"),
			Password:        getEnv("POSTGRES_PASSWORD", "salestracker"),
			DBName:          getEnv("POSTGRES_DB", "salestracker"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Demo: DemoConfig{
			Enabled: getEnvBool("DEMO_DATA_ENABLED", false),
		},
		Report: ReportConfig{
			Enabled:           getEnvBool("INVENTORY_REPORT_ENABLED", true),
			Schedule:          getEnv("INVENTORY_REPORT_SCHEDULE", "0 8 * * *"),
			LowStockThreshold: getEnvInt("INVENTORY_REPORT_LOW_STOCK_THRESHOLD", 10),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}
