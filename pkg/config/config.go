// Package config loads and validates service configuration.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	Dataset   DatasetConfig
	Generator GeneratorConfig
	Scoring   ScoringConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RedisConfig struct {
	Enabled  bool
	URL      string
	Password string
	DB       int
	TTL      time.Duration
}

// DatasetConfig controls the global synthetic transaction pool. The seed and
// size are fixed defaults so every process derives the same pool.
type DatasetConfig struct {
	Seed uint32
	Size int
}

// GeneratorConfig holds the heuristic constants of the mock transaction
// generator. The incoming/outgoing split and the value bounds are tunable
// parameters, not hard invariants.
type GeneratorConfig struct {
	BaseHeight          int64
	HeightStep          int64
	TimeWindow          time.Duration
	IncomingProbability float64
	MinValue            float64
	MaxValue            float64
	DustProbability     float64
	MemoProbability     float64
	TagProbability      float64
}

// ScoringConfig holds the privacy scoring thresholds. Scores run 0-95 where
// higher means a better privacy posture; transactions scoring below
// FlagBelow are reported as high risk.
type ScoringConfig struct {
	BaseScore          int
	DustValue          float64
	LongMemoLength     int
	HighValue          float64
	BurstWindow        time.Duration
	BurstCount         int
	ConcentrationRatio float64
	FlagBelow          int
}

// DefaultDataset returns the fixed construction parameters of the global
// dataset: seed 1337, 500 records.
func DefaultDataset() DatasetConfig {
	return DatasetConfig{
		Seed: 1337,
		Size: 500,
	}
}

func DefaultGenerator() GeneratorConfig {
	return GeneratorConfig{
		BaseHeight:          2_400_000,
		HeightStep:          5,
		TimeWindow:          90 * 24 * time.Hour,
		IncomingProbability: 0.57,
		MinValue:            0.05,
		MaxValue:            25.0,
		DustProbability:     0.03,
		MemoProbability:     0.35,
		TagProbability:      0.08,
	}
}

func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		BaseScore:          85,
		DustValue:          0.01,
		LongMemoLength:     120,
		HighValue:          10.0,
		BurstWindow:        1 * time.Hour,
		BurstCount:         3,
		ConcentrationRatio: 0.30,
		FlagBelow:          40,
	}
}

func Load() *Config {
	gen := DefaultGenerator()
	scoring := DefaultScoring()
	ds := DefaultDataset()

	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		Redis: RedisConfig{
			Enabled:  getBoolEnv("REDIS_ENABLED", false),
			URL:      normalizeRedisURL(getEnv("REDIS_URL", "localhost:6379")),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			TTL:      getDurationEnv("REDIS_TTL", 5*time.Minute),
		},
		Dataset: DatasetConfig{
			Seed: uint32(getIntEnv("DATASET_SEED", int(ds.Seed))),
			Size: getIntEnv("DATASET_SIZE", ds.Size),
		},
		Generator: GeneratorConfig{
			BaseHeight:          int64(getIntEnv("GEN_BASE_HEIGHT", int(gen.BaseHeight))),
			HeightStep:          int64(getIntEnv("GEN_HEIGHT_STEP", int(gen.HeightStep))),
			TimeWindow:          getDurationEnv("GEN_TIME_WINDOW", gen.TimeWindow),
			IncomingProbability: getFloatEnv("GEN_INCOMING_PROBABILITY", gen.IncomingProbability),
			MinValue:            getFloatEnv("GEN_MIN_VALUE", gen.MinValue),
			MaxValue:            getFloatEnv("GEN_MAX_VALUE", gen.MaxValue),
			DustProbability:     getFloatEnv("GEN_DUST_PROBABILITY", gen.DustProbability),
			MemoProbability:     getFloatEnv("GEN_MEMO_PROBABILITY", gen.MemoProbability),
			TagProbability:      getFloatEnv("GEN_TAG_PROBABILITY", gen.TagProbability),
		},
		Scoring: ScoringConfig{
			BaseScore:          getIntEnv("SCORE_BASE", scoring.BaseScore),
			DustValue:          getFloatEnv("SCORE_DUST_VALUE", scoring.DustValue),
			LongMemoLength:     getIntEnv("SCORE_LONG_MEMO_LENGTH", scoring.LongMemoLength),
			HighValue:          getFloatEnv("SCORE_HIGH_VALUE", scoring.HighValue),
			BurstWindow:        getDurationEnv("SCORE_BURST_WINDOW", scoring.BurstWindow),
			BurstCount:         getIntEnv("SCORE_BURST_COUNT", scoring.BurstCount),
			ConcentrationRatio: getFloatEnv("SCORE_CONCENTRATION_RATIO", scoring.ConcentrationRatio),
			FlagBelow:          getIntEnv("SCORE_FLAG_BELOW", scoring.FlagBelow),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func normalizeRedisURL(url string) string {
	// Strip redis:// or redis+tls:// scheme if present
	if strings.HasPrefix(url, "redis+tls://") {
		return url[len("redis+tls://"):]
	}
	if strings.HasPrefix(url, "redis://") {
		return url[len("redis://"):]
	}
	return url
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultValue
}
