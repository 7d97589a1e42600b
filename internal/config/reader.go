package config

import (
	"fmt"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/adanyl0v/taskboard/internal/backend"
)

type Reader interface {
	Read() (*Config, error)
}

type EnvReader struct{}

func NewEnvReader() EnvReader {
	return EnvReader{}
}

func (EnvReader) Read() (*Config, error) {
	cfg := new(Config)
	err := cleanenv.ReadEnv(cfg)
	if err != nil {
		return nil, err
	}

	err = cfg.validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !slices.Contains([]string{EnvDev, EnvProd, EnvLocal}, c.Env) {
		return fmt.Errorf("unknown env: %s", c.Env)
	}
	if !slices.Contains([]string{backend.DriverPostgres, backend.DriverSQLite, backend.DriverMemory}, c.Backend.Driver) {
		return fmt.Errorf("unknown backend driver: %s", c.Backend.Driver)
	}
	return nil
}
