package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Engine   EngineConfig
}

type ServerConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
	Issuer        string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// EngineConfig carries the matching engine's tunables. Defaults mirror the
// product behavior: 20 free likes a day, 100-candidate batches cut to 20
// results, 30-day activity window, 30-minute boosts.
type EngineConfig struct {
	FreeDailyLikes     int
	CandidateBatchSize int
	ResultSize         int
	RecencyWindowDays  int
	MinAge             int

	BoostDurationMinutes int
	BoostCooldownDays    int
	// EnforceBoostCooldown decides whether the rolling cooldown blocks
	// activation or is only logged (advisory).
	EnforceBoostCooldown bool

	NotifyTimeout time.Duration
	RateLimit     int
	RateWindow    time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnvDefault("PORT", "8080"),
			Env:          getEnvDefault("APP_ENV", "development"),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			DSN:             getEnvDefault("MYSQL_DSN", "root:root@tcp(localhost:3306)/wedate?charset=utf8mb4&parseTime=True&loc=Local"),
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: time.Hour,
		},
		JWT: JWTConfig{
			AccessSecret:  getEnvDefault("JWT_ACCESS_SECRET", "change-me-in-production"),
			RefreshSecret: getEnvDefault("JWT_REFRESH_SECRET", "change-me-refresh"),
			AccessExpiry:  15 * time.Minute,
			RefreshExpiry: 168 * time.Hour,
			Issuer:        "we-date",
		},
		Redis: RedisConfig{
			Addr:     getEnvDefault("REDIS_ADDR", "localhost:6379"),
			Password: getEnvDefault("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Engine: EngineConfig{
			FreeDailyLikes:       getEnvInt("ENGINE_FREE_DAILY_LIKES", 20),
			CandidateBatchSize:   getEnvInt("ENGINE_CANDIDATE_BATCH", 100),
			ResultSize:           getEnvInt("ENGINE_RESULT_SIZE", 20),
			RecencyWindowDays:    getEnvInt("ENGINE_RECENCY_WINDOW_DAYS", 30),
			MinAge:               18,
			BoostDurationMinutes: getEnvInt("ENGINE_BOOST_DURATION_MIN", 30),
			BoostCooldownDays:    getEnvInt("ENGINE_BOOST_COOLDOWN_DAYS", 30),
			EnforceBoostCooldown: isTruthy(os.Getenv("ENGINE_ENFORCE_BOOST_COOLDOWN")),
			NotifyTimeout:        2 * time.Second,
			RateLimit:            getEnvInt("RATE_LIMIT", 100),
			RateWindow:           time.Minute,
		},
	}
}

func getEnvDefault(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
