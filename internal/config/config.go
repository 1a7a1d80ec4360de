package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Brand is one tenant's static registration: where its catalog comes from and
// which storefront domain product URLs are built against. Credentials are
// looked up through the named env vars, never stored in the file.
type Brand struct {
	ID             string `yaml:"id"`
	Domain         string `yaml:"domain"`
	File           string `yaml:"file"`
	AccessTokenEnv string `yaml:"access_token_env"`
	ShopDomainEnv  string `yaml:"shop_domain_env"`
}

// Limits are the retrieval tunables. Description truncation differs between
// the tabular and API ingestion paths, so both are configurable.
type Limits struct {
	DirectResults       int `yaml:"direct_results"`
	FallbackResults     int `yaml:"fallback_results"`
	TabularDescription  int `yaml:"tabular_description_chars"`
	APIDescription      int `yaml:"api_description_chars"`
	HistoryForPrompt    int `yaml:"history_for_prompt"`
	SessionTTLMinutes   int `yaml:"session_ttl_minutes"`
	SessionSweepMinutes int `yaml:"session_sweep_minutes"`
}

type Config struct {
	Brands []Brand `yaml:"brands"`
	Limits Limits  `yaml:"limits"`
}

func defaults() Config {
	return Config{
		Limits: Limits{
			DirectResults:       4,
			FallbackResults:     5,
			TabularDescription:  1500,
			APIDescription:      1000,
			HistoryForPrompt:    4,
			SessionTTLMinutes:   120,
			SessionSweepMinutes: 10,
		},
	}
}

// Load reads the YAML registry at path and fills unset limits with defaults.
func Load(path string) (Config, error) {
	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Brands = file.Brands
	if file.Limits.DirectResults > 0 {
		cfg.Limits.DirectResults = file.Limits.DirectResults
	}
	if file.Limits.FallbackResults > 0 {
		cfg.Limits.FallbackResults = file.Limits.FallbackResults
	}
	if file.Limits.TabularDescription > 0 {
		cfg.Limits.TabularDescription = file.Limits.TabularDescription
	}
	if file.Limits.APIDescription > 0 {
		cfg.Limits.APIDescription = file.Limits.APIDescription
	}
	if file.Limits.HistoryForPrompt > 0 {
		cfg.Limits.HistoryForPrompt = file.Limits.HistoryForPrompt
	}
	if file.Limits.SessionTTLMinutes > 0 {
		cfg.Limits.SessionTTLMinutes = file.Limits.SessionTTLMinutes
	}
	if file.Limits.SessionSweepMinutes > 0 {
		cfg.Limits.SessionSweepMinutes = file.Limits.SessionSweepMinutes
	}
	return cfg, nil
}

func (l Limits) SessionTTL() time.Duration {
	return time.Duration(l.SessionTTLMinutes) * time.Minute
}

func (l Limits) SessionSweep() time.Duration {
	return time.Duration(l.SessionSweepMinutes) * time.Minute
}

// Credentials resolves a brand's API access through its env var indirection.
// Empty values mean the brand runs from its tabular export instead.
func (b Brand) Credentials() (token, shopDomain string) {
	if b.AccessTokenEnv != "" {
		token = os.Getenv(b.AccessTokenEnv)
	}
	if b.ShopDomainEnv != "" {
		shopDomain = os.Getenv(b.ShopDomainEnv)
	}
	return token, shopDomain
}
