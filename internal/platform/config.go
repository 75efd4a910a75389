package platform

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvConfig is the environment-driven configuration of a jotter store.
type EnvConfig struct {
	Path        string `env:"JOTTER_PATH" envDefault:"."`
	Adapter     string `env:"JOTTER_ADAPTER" envDefault:"fs"`
	StorageKey  string `env:"JOTTER_STORAGE_KEY" envDefault:"notes"`
	Format      string `env:"JOTTER_FORMAT" envDefault:"json"`
	SystemDir   string `env:"JOTTER_SYSTEM_DIR" envDefault:".jotter"`
	ReadOnly    bool   `env:"JOTTER_READ_ONLY"`
	EventBuffer int    `env:"JOTTER_EVENT_BUFFER" envDefault:"100"`
}

// LoadEnvConfig loads configuration from environment variables.
func LoadEnvConfig() (EnvConfig, error) {
	var cfg EnvConfig
	if err := env.Parse(&cfg); err != nil {
		return EnvConfig{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Options translates the configuration into functional options.
func (c EnvConfig) Options() []Option {
	return []Option{
		WithAdapter(c.Adapter),
		WithStorageKey(c.StorageKey),
		WithFormat(c.Format),
		WithSystemDir(c.SystemDir),
		WithReadOnly(c.ReadOnly),
		WithEventBuffer(c.EventBuffer),
	}
}
