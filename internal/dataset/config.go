package dataset

import (
	"fmt"
	"io"

	"github.com/salespress/salespress/internal/common"
)

// GeneratorConfig holds the configuration for the synthetic data generator.
type GeneratorConfig struct {
	// Progress receives a progress bar while generating; nil disables it.
	Progress io.Writer
	Records  int
	Seed     int64
	Year     int
}

// DefaultGeneratorConfig returns a GeneratorConfig with sensible defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Records: 100,
		Seed:    42,
		Year:    2024,
	}
}

// Validate checks if the configuration is valid.
func (c GeneratorConfig) Validate() error {
	if c.Records <= 0 {
		return fmt.Errorf("%w: record count must be positive, got %d", common.ErrInvalidConfig, c.Records)
	}
	if c.Year < 1 {
		return fmt.Errorf("%w: year must be positive, got %d", common.ErrInvalidConfig, c.Year)
	}
	return nil
}
