package config

import (
	"fmt"

	"github.com/lgbarn/pgnview-go/internal/errors"
)

// StorageConfig holds settings for the game library.
type StorageConfig struct {
	// DataDir is where game records are kept. Empty keeps games in
	// memory only.
	DataDir string

	// Compress stores records zstd-compressed.
	Compress bool

	// CacheSize is the number of replay timelines kept in memory.
	CacheSize int
}

// NewStorageConfig creates a StorageConfig with default values.
func NewStorageConfig() *StorageConfig {
	return &StorageConfig{
		CacheSize: 128,
	}
}

// Validate checks that the storage configuration is valid.
func (s *StorageConfig) Validate() error {
	if s.CacheSize < 1 {
		return fmt.Errorf("cache size must be at least 1, got %d: %w", s.CacheSize, errors.ErrInvalidConfig)
	}
	return nil
}

// InMemory reports whether games are kept in memory only.
func (s *StorageConfig) InMemory() bool {
	return s.DataDir == ""
}
