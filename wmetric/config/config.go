package config

import (
	"fmt"
	"strings"

	internal "github.com/ZanzyTHEbar/wavemetric/wmetric"

	"github.com/spf13/viper"
)

// Config stores all configuration of the library.
// The values are read by viper from a config file or environment variables.
type Config struct {
	Engine EngineConfig `mapstructure:"engine"`
}

// EngineConfig stores distance-engine tuning knobs.
type EngineConfig struct {
	// MaxWorkers bounds the goroutines fanned out per anti-diagonal.
	MaxWorkers int `mapstructure:"maxWorkers"`
	// PairParallelism is the number of pairs processed concurrently;
	// 1 keeps the host loop over pairs sequential.
	PairParallelism int `mapstructure:"pairParallelism"`
	// ParallelThreshold is the diagonal width below which cells are
	// computed inline instead of fanned out.
	ParallelThreshold int `mapstructure:"parallelThreshold"`
	// Normalize divides distances by reference length by default.
	Normalize bool `mapstructure:"normalize"`
}

var AppConfig Config

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	if configPath != "" {
		viper.SetConfigFile(configPath)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath(internal.DefaultConfigPath)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Set default values
	viper.SetDefault("engine.maxWorkers", internal.DefaultMaxWorkers)
	viper.SetDefault("engine.pairParallelism", internal.DefaultPairParallelism)
	viper.SetDefault("engine.parallelThreshold", internal.DefaultParallelThreshold)
	viper.SetDefault("engine.normalize", false)

	viper.AutomaticEnv()                                   // Read in environment variables that match
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // engine.maxWorkers becomes ENGINE_MAXWORKERS
	viper.SetEnvPrefix(strings.ToUpper(internal.DefaultAppName))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; defaults will be used.
		} else {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	err := viper.Unmarshal(&AppConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	return &AppConfig, nil
}
