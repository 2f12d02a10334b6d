package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Evolution EvolutionConfig `toml:"evolution"`
	Clock     ClockConfig     `toml:"clock"`
	Storage   StorageConfig   `toml:"storage"`
	AI        AIConfig        `toml:"ai"`
}

type ServerConfig struct {
	ListenAddr string `toml:"listen_addr"`
	Metrics    bool   `toml:"metrics"`
}

type EvolutionConfig struct {
	APIURL   string `toml:"api_url"`
	APIKey   string `toml:"api_key"`
	Instance string `toml:"instance"`
}

type ClockConfig struct {
	// Timezone is the fixed reference timezone for day boundaries and
	// reply timestamps, independent of where the service runs.
	Timezone string `toml:"timezone"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type AIConfig struct {
	Enabled bool   `toml:"enabled"`
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			ListenAddr: ":3000",
			Metrics:    true,
		},
		Clock: ClockConfig{
			Timezone: "America/Sao_Paulo",
		},
		AI: AIConfig{
			Enabled: false,
			Model:   "gpt-4o-mini",
		},
	}
}

func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pontobot"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			applyEnvOverrides(&cfg)
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("EVOLUTION_API_URL"); v != "" {
		cfg.Evolution.APIURL = v
	}
	if v := os.Getenv("EVOLUTION_API_KEY"); v != "" {
		cfg.Evolution.APIKey = v
	}
	if v := os.Getenv("EVOLUTION_INSTANCE_NAME"); v != "" {
		cfg.Evolution.Instance = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.ListenAddr = ":" + v
	}
	if v := os.Getenv("PONTOBOT_TIMEZONE"); v != "" {
		cfg.Clock.Timezone = v
	}
	if v := os.Getenv("PONTOBOT_DB_PATH"); v != "" {
		cfg.Storage.Path = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
}

func EnsureConfigDir() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
