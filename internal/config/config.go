package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const prodString = "prod"

// defaultStartingCredits is in the smallest currency unit.
const defaultStartingCredits = 100000

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string

	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// AMQPURL enables the message-queue notification publisher when set.
	AMQPURL      string
	AMQPExchange string

	// RedisAddr enables the court read cache when set.
	RedisAddr     string
	RedisPassword string
	CourtCacheTTL time.Duration

	// StartingCredits is granted to every new profile, in the smallest
	// currency unit.
	StartingCredits int64

	// SweepInterval controls how often elapsed active bookings are
	// advanced to completed.
	SweepInterval time.Duration

	// BookingRate / BookingBurst bound mutating booking calls per user.
	BookingRate  float64
	BookingBurst int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.IsProduction = getEnv("APP_ENV", "dev") == prodString
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	ttl, err := time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "15m"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg.AMQPURL = getEnv("AMQP_URL", "")
	cfg.AMQPExchange = getEnv("AMQP_EXCHANGE", "courtside.events")

	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.CourtCacheTTL, err = time.ParseDuration(getEnv("COURT_CACHE_TTL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid COURT_CACHE_TTL: %w", err)
	}

	// New profiles start with enough credit for a first booking; set the
	// env var to 0 to disable the grant.
	starting, err := getEnvAsInt("STARTING_CREDITS", defaultStartingCredits)
	if err != nil {
		return nil, fmt.Errorf("invalid STARTING_CREDITS: %w", err)
	}
	cfg.StartingCredits = int64(starting)

	cfg.SweepInterval, err = time.ParseDuration(getEnv("COMPLETE_SWEEP_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMPLETE_SWEEP_INTERVAL: %w", err)
	}

	rateStr := getEnv("BOOKING_RATE", "1")
	cfg.BookingRate, err = strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_RATE: %w", err)
	}
	cfg.BookingBurst, err = getEnvAsInt("BOOKING_BURST", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKING_BURST: %w", err)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer, returning the
// default when unset and an error when set but not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}
	return val, nil
}
