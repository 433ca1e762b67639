package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultMaxDepth    = 1000
	DefaultCycleBudget = 100
	DefaultFallback    = "text"
)

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

type GeneratorConfig struct {
	// Strict makes an unresolvable XSD type fatal instead of falling back
	// to FallbackType with a warning.
	Strict bool `yaml:"strict"`
	// AsIs disables identifier normalization.
	AsIs         bool   `yaml:"as_is"`
	MaxDepth     int    `yaml:"max_depth"`
	CycleBudget  int    `yaml:"cycle_budget"`
	FallbackType string `yaml:"fallback_type"`
}

type Config struct {
	Database  DatabaseConfig  `yaml:"database"`
	Generator GeneratorConfig `yaml:"generator"`
}

func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			SSLMode: "disable",
		},
		Generator: GeneratorConfig{
			MaxDepth:     DefaultMaxDepth,
			CycleBudget:  DefaultCycleBudget,
			FallbackType: DefaultFallback,
		},
	}
}

func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if config.Database.Host == "" {
		config.Database.Host = "localhost"
	}
	if config.Database.Port == 0 {
		config.Database.Port = 5432
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = "disable"
	}
	if config.Generator.MaxDepth <= 0 {
		config.Generator.MaxDepth = DefaultMaxDepth
	}
	if config.Generator.CycleBudget <= 0 {
		config.Generator.CycleBudget = DefaultCycleBudget
	}
	if strings.TrimSpace(config.Generator.FallbackType) == "" {
		config.Generator.FallbackType = DefaultFallback
	}

	return config, nil
}

func (c *Config) GetConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Username,
		c.Database.Password,
		c.Database.Database,
		c.Database.SSLMode,
	)
}
