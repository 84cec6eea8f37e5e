package config

import (
	"os"
	"strconv"
	"time"
)

// Config 应用配置
type Config struct {
	Port            string
	GinMode         string
	ShutdownTimeout time.Duration

	Log   LogConfig
	DB    DBConfig
	Redis RedisConfig

	RateLimitPerMinute int
	SeedDemoData       bool
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string
	Format string
}

// DBConfig holds the tracking journal location. An empty Path disables the journal.
type DBConfig struct {
	Path string
}

// RedisConfig holds the location cache connection. An empty Addr disables the cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load 加载配置
func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", ":3000"),
		GinMode:         getEnv("GIN_MODE", "release"),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		DB: DBConfig{
			Path: os.Getenv("DB_PATH"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0),
		},
		RateLimitPerMinute: getInt("RATE_LIMIT_PER_MINUTE", 600),
		SeedDemoData:       getBool("SEED_DEMO_DATA", true),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
