package config

import (
	"fmt"
	"net"

	"github.com/lgbarn/pgnview-go/internal/errors"
)

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// ListenAddr is the host:port the API listens on.
	ListenAddr string

	// MetricsEnabled exposes Prometheus metrics on /metrics.
	MetricsEnabled bool

	// SeedSample adds the Immortal Game to an empty library at startup.
	SeedSample bool
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		ListenAddr:     ":8080",
		MetricsEnabled: true,
		SeedSample:     true,
	}
}

// Validate checks that the listen address has a port.
func (s *ServerConfig) Validate() error {
	if _, _, err := net.SplitHostPort(s.ListenAddr); err != nil {
		return fmt.Errorf("listen address %q: %v: %w", s.ListenAddr, err, errors.ErrInvalidConfig)
	}
	return nil
}
