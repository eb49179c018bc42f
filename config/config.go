package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/yoockh/orbitmatch/internal/matching"
)

const (
	defaultPort         = "8080"
	defaultMongoDB      = "orbitmatch"
	defaultModelVersion = "v1.0"
	defaultFeatureVer   = "v1"
	defaultCacheTTL     = 15 * time.Minute
	defaultRateLimit    = 5.0
	defaultRateBurst    = 10
	defaultEventWorkers = 5
	defaultFeatureFan   = 8
)

// Config is the process configuration read from the environment.
type Config struct {
	Port    string
	MongoDB string

	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	// AuditSealKey enables sealing of audit details when set (hex or base64, 32 bytes).
	AuditSealKey string

	Weights        matching.Weights
	ModelVersion   string
	FeatureVersion string
	CacheTTL       time.Duration

	// RateLimit is match requests per second per company; 0 disables it.
	RateLimit float64
	RateBurst int

	EventWorkers       int
	FeatureConcurrency int
}

// LoadDotEnv loads .env when present. A missing file is not an error.
func LoadDotEnv() {
	_ = godotenv.Load()
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:           getenv("PORT", defaultPort),
		MongoDB:        MongoDBName(),
		JWTSecret:      os.Getenv("SUPABASE_JWT_SECRET"),
		JWTIssuer:      os.Getenv("SUPABASE_JWT_ISSUER"),
		JWTAudience:    os.Getenv("SUPABASE_JWT_AUDIENCE"),
		AuditSealKey:   os.Getenv("AUDIT_SEAL_KEY"),
		Weights:        matching.DefaultWeights(),
		ModelVersion:   getenv("MODEL_VERSION", defaultModelVersion),
		FeatureVersion: getenv("FEATURE_VERSION", defaultFeatureVer),
		CacheTTL:       defaultCacheTTL,
		RateLimit:      defaultRateLimit,
		RateBurst:      defaultRateBurst,
		EventWorkers:   defaultEventWorkers,

		FeatureConcurrency: defaultFeatureFan,
	}

	if raw := os.Getenv("MATCH_WEIGHTS"); raw != "" {
		var w matching.Weights
		if err := json.Unmarshal([]byte(raw), &w); err != nil {
			return nil, fmt.Errorf("MATCH_WEIGHTS: %w", err)
		}
		cfg.Weights = w
	}
	if err := cfg.Weights.Validate(); err != nil {
		return nil, fmt.Errorf("MATCH_WEIGHTS: %w", err)
	}

	if raw := os.Getenv("MATCH_CACHE_TTL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("MATCH_CACHE_TTL: invalid duration %q", raw)
		}
		cfg.CacheTTL = d
	}

	var err error
	if cfg.RateLimit, err = floatEnv("RATE_LIMIT_RPS", cfg.RateLimit); err != nil {
		return nil, err
	}
	if cfg.RateBurst, err = intEnv("RATE_LIMIT_BURST", cfg.RateBurst); err != nil {
		return nil, err
	}
	if cfg.EventWorkers, err = intEnv("EVENT_WORKERS", cfg.EventWorkers); err != nil {
		return nil, err
	}
	if cfg.FeatureConcurrency, err = intEnv("FEATURE_CONCURRENCY", cfg.FeatureConcurrency); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MongoDBName reads MONGO_DB with the service default.
func MongoDBName() string {
	return getenv("MONGO_DB", defaultMongoDB)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s: expected a non-negative integer, got %q", key, raw)
	}
	return n, nil
}

func floatEnv(key string, def float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%s: expected a non-negative number, got %q", key, raw)
	}
	return f, nil
}
