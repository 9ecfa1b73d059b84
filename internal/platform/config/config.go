package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Storage driver names accepted for STORAGE_DRIVER.
const (
	StorageDriverPgsql  = "pgsql"
	StorageDriverMemory = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	StorageDriver string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Seeding
	SeedOnEmpty bool
	SeedRNG     int64

	// Dashboard policy knobs. These encode business rules that were hardcoded
	// in earlier versions; they are configurable so intent can be revisited
	// without a deploy.
	SmallCreditThreshold   decimal.Decimal
	ExcludedLowestAccounts int
	FloorCashAtZero        bool
	DefaultBranchName      string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("STORAGE_DRIVER", StorageDriverPgsql)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "cashflow-mgmt-app")
	viper.SetDefault("SEED_ON_EMPTY", false)
	viper.SetDefault("SEED_RNG", 42)
	viper.SetDefault("SMALL_CREDIT_THRESHOLD", "5000000")
	viper.SetDefault("EXCLUDED_LOWEST_ACCOUNTS", 2)
	viper.SetDefault("FLOOR_CASH_AT_ZERO", true)
	viper.SetDefault("DEFAULT_BRANCH_NAME", "Văn phòng không xác định")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.StorageDriver = viper.GetString("STORAGE_DRIVER")
	if cfg.StorageDriver != StorageDriverPgsql && cfg.StorageDriver != StorageDriverMemory {
		log.Printf("Warning: Unknown STORAGE_DRIVER %q. Defaulting to %s.\n", cfg.StorageDriver, StorageDriverPgsql)
		cfg.StorageDriver = StorageDriverPgsql
	}
	if cfg.StorageDriver == StorageDriverPgsql && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.SeedOnEmpty = viper.GetBool("SEED_ON_EMPTY")
	cfg.SeedRNG = viper.GetInt64("SEED_RNG")

	thresholdStr := viper.GetString("SMALL_CREDIT_THRESHOLD")
	threshold, err := decimal.NewFromString(thresholdStr)
	if err != nil {
		threshold = decimal.NewFromInt(5_000_000)
		log.Printf("Warning: Invalid value for SMALL_CREDIT_THRESHOLD (%q). Defaulting to %s.\n", thresholdStr, threshold)
	}
	cfg.SmallCreditThreshold = threshold

	cfg.ExcludedLowestAccounts = viper.GetInt("EXCLUDED_LOWEST_ACCOUNTS")
	if cfg.ExcludedLowestAccounts < 0 {
		cfg.ExcludedLowestAccounts = 0
	}
	cfg.FloorCashAtZero = viper.GetBool("FLOOR_CASH_AT_ZERO")
	cfg.DefaultBranchName = viper.GetString("DEFAULT_BRANCH_NAME")

	return cfg, nil
}
