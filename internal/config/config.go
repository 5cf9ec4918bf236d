package config

import (
	"os"
	"strconv"
	"time"

	"github.com/hetulpatel/betsizer/internal/sizing"
)

// Config carries the env-driven settings shared by the sizing binaries.
type Config struct {
	Bankroll       float64
	KellyFraction  float64
	MinBet         float64
	MaxBet         float64
	MaxProbImpact  float64
	MinConfidence  float64
	MinProbDiff    float64
	DefaultSubsidy float64

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration
	RedisPrefix   string

	SQLitePath string

	WorkerGroup string
	WorkerCount int
}

// Load reads the configuration from the environment, falling back to the
// defaults used in development.
func Load() Config {
	bankroll := EnvFloat("SIZING_BANKROLL", 1000)
	return Config{
		Bankroll:       bankroll,
		KellyFraction:  EnvFloat("SIZING_KELLY_FRACTION", 0.25),
		MinBet:         EnvFloat("SIZING_MIN_BET", 1),
		MaxBet:         EnvFloat("SIZING_MAX_BET", bankroll),
		MaxProbImpact:  EnvFloat("SIZING_MAX_PROB_IMPACT", 0.05),
		MinConfidence:  EnvFloat("SIZING_MIN_CONFIDENCE", 0.6),
		MinProbDiff:    EnvFloat("SIZING_MIN_PROB_DIFF", 0.05),
		DefaultSubsidy: EnvFloat("SIZING_DEFAULT_SUBSIDY", 100),

		RedisAddr:     EnvString("REDIS_ADDR", "redis:6379"),
		RedisPassword: EnvString("REDIS_PASSWORD", ""),
		RedisDB:       EnvInt("REDIS_DB", 0),
		RedisTTL:      time.Duration(EnvInt("REDIS_TTL_HOURS", 24)) * time.Hour,
		RedisPrefix:   EnvString("REDIS_REC_PREFIX", "sizing_rec"),

		SQLitePath: EnvString("SQLITE_PATH", "data/betsizer.db"),

		WorkerGroup: EnvString("SIZING_WORKER_GROUP", "sizing-worker"),
		WorkerCount: EnvInt("SIZING_WORKER_CONCURRENCY", 1),
	}
}

// SizingConfig assembles the sizing parameters into the engine's config.
// Per-market subsidies override DefaultSubsidy at processing time.
func (c Config) SizingConfig() sizing.Config {
	return sizing.Config{
		KellyFraction: c.KellyFraction,
		MinBet:        c.MinBet,
		MaxBet:        c.MaxBet,
		MaxProbImpact: c.MaxProbImpact,
		Bankroll:      c.Bankroll,
		MarketSubsidy: c.DefaultSubsidy,
		MinConfidence: c.MinConfidence,
		MinProbDiff:   c.MinProbDiff,
	}
}

func EnvString(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func EnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return def
}

func EnvFloat(key string, def float64) float64 {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseFloat(val, 64); err == nil {
			return parsed
		}
	}
	return def
}

func EnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return def
}
