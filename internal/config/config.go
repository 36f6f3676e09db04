// Package config loads runtime configuration: database path, RNG
// seed, round cap, API settings, and the scenario grid. Values come
// from an optional bazaar.yaml, BAZAAR_* environment variables, or
// defaults, in that order of precedence.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config is the complete runtime configuration.
type Config struct {
	DBPath    string     `mapstructure:"db_path"`
	Seed      int64      `mapstructure:"seed"`
	MaxRounds int        `mapstructure:"max_rounds"`
	API       APIConfig  `mapstructure:"api"`
	Scenarios []Scenario `mapstructure:"scenarios"`
}

// APIConfig controls the HTTP API.
type APIConfig struct {
	Port int `mapstructure:"port"`
	// AdminKey is the bearer token for POST endpoints. Empty disables
	// them.
	AdminKey string `mapstructure:"admin_key"`
}

// Scenario derives a buyer budget and seller floor from the product's
// market price.
type Scenario struct {
	Name        string  `mapstructure:"name"`
	BudgetRatio float64 `mapstructure:"budget_ratio"`
	FloorRatio  float64 `mapstructure:"floor_ratio"`
}

// SetDefaults registers default values so config works without a file.
func SetDefaults() {
	viper.SetDefault("db_path", "data/bazaar.db")
	viper.SetDefault("seed", int64(42))
	viper.SetDefault("max_rounds", 10)
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.admin_key", "")
	viper.SetDefault("scenarios", defaultScenarioMaps())
}

// DefaultScenarios is the standard grid: three overlapping feasible
// ranges of increasing difficulty plus one with no overlap at all.
func DefaultScenarios() []Scenario {
	return []Scenario{
		{Name: "easy", BudgetRatio: 1.2, FloorRatio: 0.8},
		{Name: "medium", BudgetRatio: 1.0, FloorRatio: 0.85},
		{Name: "hard", BudgetRatio: 0.9, FloorRatio: 0.82},
		{Name: "no_overlap", BudgetRatio: 0.85, FloorRatio: 0.95},
	}
}

func defaultScenarioMaps() []map[string]any {
	var out []map[string]any
	for _, s := range DefaultScenarios() {
		out = append(out, map[string]any{
			"name":         s.Name,
			"budget_ratio": s.BudgetRatio,
			"floor_ratio":  s.FloorRatio,
		})
	}
	return out
}

// Load reads configuration from file, environment, and defaults.
func Load() (Config, error) {
	SetDefaults()

	viper.SetConfigName("bazaar")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/bazaar")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("BAZAAR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Missing config file is fine; defaults and env cover everything.
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
