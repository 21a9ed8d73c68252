package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Bank represents an upstream bank statement API configuration
type Bank struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	BaseURL     string `yaml:"base_url"`
	APITokenEnv string `yaml:"api_token_env"`
}

// BanksConfig holds all configured bank gateways
type BanksConfig struct {
	Banks []Bank `yaml:"banks"`

	// Lookup map for fast access
	byID map[string]*Bank
}

// LoadBanksConfig loads bank gateway configuration from a YAML file
func LoadBanksConfig(path string) (*BanksConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read banks config file: %w", err)
	}

	var config BanksConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse banks config: %w", err)
	}

	// Build lookup map
	config.byID = make(map[string]*Bank, len(config.Banks))
	for i := range config.Banks {
		bank := &config.Banks[i]
		config.byID[bank.ID] = bank
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the banks configuration
func (c *BanksConfig) Validate() error {
	if len(c.Banks) == 0 {
		return fmt.Errorf("at least one bank must be configured")
	}

	seen := make(map[string]bool)
	for _, bank := range c.Banks {
		if bank.ID == "" {
			return fmt.Errorf("bank id is required")
		}
		if bank.Name == "" {
			return fmt.Errorf("bank name is required for %s", bank.ID)
		}
		if bank.BaseURL == "" {
			return fmt.Errorf("base_url is required for bank %s", bank.ID)
		}
		if bank.APITokenEnv == "" {
			return fmt.Errorf("api_token_env is required for bank %s", bank.ID)
		}
		if seen[bank.ID] {
			return fmt.Errorf("duplicate bank id %s", bank.ID)
		}
		seen[bank.ID] = true
	}

	return nil
}

// GetBank returns the configuration for a given bank ID
func (c *BanksConfig) GetBank(id string) (*Bank, bool) {
	bank, ok := c.byID[id]
	return bank, ok
}

// APIToken resolves the bearer token for a bank from its environment variable
func (b *Bank) APIToken() string {
	return os.Getenv(b.APITokenEnv)
}

// BankIDs returns all configured bank identifiers
func (c *BanksConfig) BankIDs() []string {
	ids := make([]string, 0, len(c.Banks))
	for _, bank := range c.Banks {
		ids = append(ids, bank.ID)
	}
	return ids
}

// IsSupported checks if a bank ID is configured
func (c *BanksConfig) IsSupported(id string) bool {
	_, ok := c.byID[id]
	return ok
}
