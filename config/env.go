package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvPrefix namespaces every environment override
const EnvPrefix = "PANIC_BURGER_"

// LookupFunc resolves an environment key
type LookupFunc func(key string) (string, bool)

// LoadEnv reads optional .env files into the process environment, then applies overrides
// Missing .env files are not an error
func LoadEnv(cfg *Config, files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return ApplyEnv(cfg, os.LookupEnv)
}

// ApplyEnv overlays PANIC_BURGER_* values onto cfg and revalidates
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	var errs []error

	setInt := func(key string, dst *int) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, key, v, err))
				return
			}
			*dst = n
		}
	}
	setBool := func(key string, dst *bool) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, key, v, err))
				return
			}
			*dst = b
		}
	}
	setString := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = v
		}
	}

	setInt("START_TIME", &cfg.Round.StartTime)
	setInt("INSTRUCTIONS_TIMEOUT", &cfg.Round.InstructionsTimeoutTicks)
	setString("LOG_LEVEL", &cfg.LogLevel)
	setString("FEED_ADDR", &cfg.FeedAddr)
	setBool("MUTED", &cfg.Muted)
	setBool("SENSORLESS", &cfg.Sensorless)

	if v, ok := lookup(EnvPrefix + "SEED"); ok && v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: %sSEED=%q: %v", ErrInvalid, EnvPrefix, v, err))
		} else {
			cfg.Seed = seed
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return cfg.Validate()
}
