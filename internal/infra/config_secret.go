package infra

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SecretConfig matches the structure of secrets/testnet.yaml and
// secrets/real.yaml. Keeping keys out of the main config file means the
// config can be committed while the secrets stay local.
type SecretConfig struct {
	API struct {
		Binance struct {
			APIKey    string `yaml:"api_key"`
			APISecret string `yaml:"api_secret"`
		} `yaml:"binance"`
	} `yaml:"api"`
}

// LoadSecretConfig loads API keys from a separate yaml file.
func LoadSecretConfig(path string) (*SecretConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret config: %w", err)
	}

	var cfg SecretConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse secret config: %w", err)
	}

	return &cfg, nil
}

// ApplySecrets copies keys from a secrets file into the config without
// overwriting values already provided by the environment.
func (c *Config) ApplySecrets(sec *SecretConfig) {
	if c.API.Binance.APIKey == "" {
		c.API.Binance.APIKey = sec.API.Binance.APIKey
	}
	if c.API.Binance.APISecret == "" {
		c.API.Binance.APISecret = sec.API.Binance.APISecret
	}
}
