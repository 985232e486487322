package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Log      Logger         `mapstructure:"logger"`
	API      API            `mapstructure:"api"`
	Candle   CandleStore    `mapstructure:"candle"`
	Strategy StrategyConfig `mapstructure:"strategy"`
	Cache    Cache          `mapstructure:"cache"`
}

type Logger struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

type API struct {
	Port              int     `mapstructure:"port"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	RequestBurst      int     `mapstructure:"request_burst"`
}

// CandleStore points at the directory holding CSV candle files,
// partitioned by market type (futures/, spot/).
type CandleStore struct {
	Dir string `mapstructure:"dir"`
}

// StrategyConfig covers both the upstream strategy-source service and the
// limits applied to strategy execution in-process.
type StrategyConfig struct {
	BaseURL            string        `mapstructure:"base_url"`
	APIKey             string        `mapstructure:"api_key"`
	Timeout            time.Duration `mapstructure:"timeout"`
	MaxRequestPerMin   int           `mapstructure:"max_request_per_min"`
	ExecutionTimeout   time.Duration `mapstructure:"execution_timeout"`
	MaxConcurrent      int64         `mapstructure:"max_concurrent"`
	MaxCallStackSize   int           `mapstructure:"max_call_stack_size"`
	SourcePreviewBytes int           `mapstructure:"source_preview_bytes"`
}

type Cache struct {
	DefaultExpiration time.Duration `mapstructure:"default_expiration"`
	CleanupInterval   time.Duration `mapstructure:"cleanup_interval"`
}

func Load() (*Config, error) {
	// .env is optional, for local development.
	_ = godotenv.Load()

	viper.SetConfigType("yaml")
	viper.SetConfigName("config")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		fmt.Println("No config file loaded:", err)
	}

	setDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.encoding", "json")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.requests_per_second", 5)
	viper.SetDefault("api.request_burst", 10)
	viper.SetDefault("candle.dir", "./data/candles")
	viper.SetDefault("strategy.timeout", 30*time.Second)
	viper.SetDefault("strategy.max_request_per_min", 60)
	viper.SetDefault("strategy.execution_timeout", 30*time.Second)
	viper.SetDefault("strategy.max_concurrent", 4)
	viper.SetDefault("strategy.max_call_stack_size", 2048)
	viper.SetDefault("strategy.source_preview_bytes", 300)
	viper.SetDefault("cache.default_expiration", 10*time.Minute)
	viper.SetDefault("cache.cleanup_interval", 15*time.Minute)
}
