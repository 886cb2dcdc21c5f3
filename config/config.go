package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yeremiapane/food-catalog/utils"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	Auth      AuthConfig
	Dashboard DashboardConfig
}

type ServerConfig struct {
	Port      string
	GinMode   string
	LogLevel  string
	SeedFile  string
	RateLimit int // requests per second per client IP, 0 disables
}

type DBConfig struct {
	Driver string // sqlite, mysql or postgres
	DSN    string
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type DashboardConfig struct {
	APIURL   string
	APIToken string
	Timeout  time.Duration
	LogFile  string
}

// Load reads .env (if present) and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Debugf(".env not loaded: %v", err)
	}

	rateLimit, err := strconv.Atoi(getEnv("RATE_LIMIT", "50"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	tokenTTL, err := time.ParseDuration(getEnv("JWT_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_TTL: %w", err)
	}
	timeout, err := time.ParseDuration(getEnv("FOODS_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid FOODS_API_TIMEOUT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:      getEnv("PORT", "8080"),
			GinMode:   getEnv("GIN_MODE", "debug"),
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			SeedFile:  os.Getenv("SEED_FILE"),
			RateLimit: rateLimit,
		},
		DB: DBConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DB_DSN", "foods.db"),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
			TokenTTL:  tokenTTL,
		},
		Dashboard: DashboardConfig{
			APIURL:   getEnv("FOODS_API_URL", "http://localhost:8080"),
			APIToken: os.Getenv("FOODS_API_TOKEN"),
			Timeout:  timeout,
			LogFile:  getEnv("DASHBOARD_LOG_FILE", "dashboard.log"),
		},
	}
	return cfg, nil
}

// InitDB opens the configured database.
func InitDB(cfg DBConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	case "mysql":
		dialector = mysql.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	return db, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
