package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type HyperConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Plugins PluginsConfig `yaml:"plugins"`
	Policy  PolicyConfig  `yaml:"policy"`
}

type Config = HyperConfig

type ServerConfig struct {
	Name     string `yaml:"name"`
	Version  string `yaml:"version"`
	LogLevel string `yaml:"log_level"`
	SafeMode bool   `yaml:"safe_mode"`
}

type PolicyConfig struct {
	AllowPlugins []string `yaml:"allow_plugins"`
	DenyPlugins  []string `yaml:"deny_plugins"`
	AllowTools   []string `yaml:"allow_tools"`
	DenyTools    []string `yaml:"deny_tools"`
	ConfirmTools []string `yaml:"confirm_tools"`
}

type PluginsConfig struct {
	RSTime  RSTimeConfig  `yaml:"rstime"`
	Wrapper WrapperConfig `yaml:"wrapper"`
}

type RSTimeConfig struct {
	Enabled             bool `yaml:"enabled"`
	FetchTimeoutSeconds int  `yaml:"fetch_timeout_seconds"`
}

type WrapperConfig struct {
	Enabled bool `yaml:"enabled"`
}

func DefaultConfig() *HyperConfig {
	return &HyperConfig{
		Server: ServerConfig{
			Name:     "hyper-mcp",
			Version:  "v0.1.0",
			LogLevel: "info",
			SafeMode: false,
		},
		Plugins: PluginsConfig{
			RSTime: RSTimeConfig{
				Enabled:             true,
				FetchTimeoutSeconds: 15,
			},
			Wrapper: WrapperConfig{
				Enabled: true,
			},
		},
	}
}

func LoadConfig(path string) (*HyperConfig, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *HyperConfig) {
	if cfg.Server.Name == "" {
		cfg.Server.Name = "hyper-mcp"
	}
	if cfg.Server.Version == "" {
		cfg.Server.Version = "v0.1.0"
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = "info"
	}
	if cfg.Plugins.RSTime.FetchTimeoutSeconds <= 0 {
		cfg.Plugins.RSTime.FetchTimeoutSeconds = 15
	}
}
