package config

import (
	"fmt"

	"github.com/lgbarn/pgnview-go/internal/errors"
)

// OutputConfig holds settings related to output formatting.
type OutputConfig struct {
	// JSON enables JSON output instead of text.
	JSON bool

	// MaxLineLength is the movetext width of text output.
	MaxLineLength int
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		MaxLineLength: 80,
	}
}

// Validate checks that the line length leaves room for a move.
func (o *OutputConfig) Validate() error {
	if o.MaxLineLength < 20 {
		return fmt.Errorf("max line length must be at least 20, got %d: %w", o.MaxLineLength, errors.ErrInvalidConfig)
	}
	return nil
}
