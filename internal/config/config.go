package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vbonduro/pantry/internal/domain"
)

type Config struct {
	LogLevel    string
	LogFile     string
	PriceMerge  string
	SeedSamples bool
	DateLayout  string
}

// LoadEnvFile reads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not
// an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func Load() *Config {
	return &Config{
		LogLevel:    getEnv("LOG_LEVEL", "warn"),
		LogFile:     getEnv("LOG_FILE", ""),
		PriceMerge:  getEnv("PANTRY_PRICE_POLICY", "mean"),
		SeedSamples: getEnv("PANTRY_SEED", "1") != "0",
		DateLayout:  getEnv("PANTRY_DATE_LAYOUT", time.DateOnly),
	}
}

// PricePolicy maps PriceMerge onto the inventory's merge policy.
func (c *Config) PricePolicy() (domain.PricePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(c.PriceMerge)) {
	case "", "mean":
		return domain.PriceMean, nil
	case "weighted":
		return domain.PriceWeighted, nil
	default:
		return domain.PriceMean, fmt.Errorf("unknown price policy %q (want mean or weighted)", c.PriceMerge)
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
