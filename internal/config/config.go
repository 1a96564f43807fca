// Package config provides configuration for the pgnview commands and
// server.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/lgbarn/pgnview-go/internal/errors"
)

// EnvPrefix prefixes every environment variable read by LoadEnv.
const EnvPrefix = "PGNVIEW_"

// Config holds all program configuration, grouped by concern.
type Config struct {
	Storage *StorageConfig
	Server  *ServerConfig
	Log     *LogConfig
	Output  *OutputConfig

	// Workers is the number of goroutines used to replay batches.
	Workers int
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Storage: NewStorageConfig(),
		Server:  NewServerConfig(),
		Log:     NewLogConfig(),
		Output:  NewOutputConfig(),
		Workers: runtime.NumCPU(),
	}
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", c.Workers, errors.ErrInvalidConfig)
	}
	for _, v := range []interface{ Validate() error }{c.Storage, c.Server, c.Log, c.Output} {
		if err := v.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// LoadEnv overrides fields from PGNVIEW_* variables found by lookup.
// Pass os.LookupEnv in production.
func (c *Config) LoadEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	num := func(name string, dst *int) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, errors.ErrInvalidConfig)
		}
		*dst = n
		return nil
	}
	flag := func(name string, dst *bool) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, errors.ErrInvalidConfig)
		}
		*dst = b
		return nil
	}

	str("DATA_DIR", &c.Storage.DataDir)
	str("LISTEN_ADDR", &c.Server.ListenAddr)
	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)

	for _, err := range []error{
		flag("COMPRESS", &c.Storage.Compress),
		num("CACHE_SIZE", &c.Storage.CacheSize),
		flag("METRICS", &c.Server.MetricsEnabled),
		flag("SEED_SAMPLE", &c.Server.SeedSample),
		num("WORKERS", &c.Workers),
	} {
		if err != nil {
			return err
		}
	}
	return nil
}
