package infra

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AppName is used for OS-standard config and log directories.
const AppName = "futures-go"

// Config holds the full application configuration. It is loaded from
// yaml and then overridden with environment variables so secrets never
// have to live in the file.
type Config struct {
	App struct {
		Name    string `yaml:"name"`
		Version string `yaml:"version"`
	} `yaml:"app"`

	Trading struct {
		Mode string `yaml:"mode"` // PAPER, TESTNET, REAL
	} `yaml:"trading"`

	API struct {
		Binance struct {
			RestURL   string `yaml:"rest_url"`
			APIKey    string `yaml:"api_key"`
			APISecret string `yaml:"api_secret"`
		} `yaml:"binance"`
	} `yaml:"api"`

	Logging struct {
		Level string `yaml:"level"`
		Dir   string `yaml:"dir"`
		File  bool   `yaml:"file"`
	} `yaml:"logging"`
}

// DefaultConfig returns the configuration used when no config file
// exists: testnet trading, info-level console logging.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.App.Name = AppName
	cfg.App.Version = "dev"
	cfg.Trading.Mode = "TESTNET"
	cfg.Logging.Level = "INFO"
	return cfg
}

// LoadConfig reads and parses the configuration file. A missing file is
// not an error; the defaults plus environment overrides apply instead.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	overrideWithEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// overrideWithEnv lets the environment win over the file for anything
// sensitive or deployment-specific.
func overrideWithEnv(cfg *Config) {
	if v := os.Getenv("BINANCE_API_KEY"); v != "" {
		cfg.API.Binance.APIKey = v
	}
	if v := os.Getenv("BINANCE_API_SECRET"); v != "" {
		cfg.API.Binance.APISecret = v
	}
	if v := os.Getenv("BINANCE_REST_URL"); v != "" {
		cfg.API.Binance.RestURL = v
	}
	if v := os.Getenv("TRADING_MODE"); v != "" {
		cfg.Trading.Mode = strings.ToUpper(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = strings.ToUpper(v)
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	switch c.Trading.Mode {
	case "PAPER", "TESTNET", "REAL":
	default:
		return fmt.Errorf("invalid trading mode: %s (want PAPER, TESTNET or REAL)", c.Trading.Mode)
	}

	if u := c.API.Binance.RestURL; u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("invalid Binance REST URL: %s", u)
	}

	switch c.Logging.Level {
	case "", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}
