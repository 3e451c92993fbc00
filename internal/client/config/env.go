package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

const (
	envPrefix  = "TCGX_"
	dotEnvFile = ".env"
)

// parseEnv overlays cfg with TCGX_* variables. Variables from a .env file in
// the working directory are loaded first; they never override variables
// already set in the process environment. When environ is non-nil it is
// used instead of the process environment and .env is not read.
func parseEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: envPrefix}

	if environ != nil {
		opts.Environment = environ
	} else if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}
