package config

import (
	"fmt"
	"os"
	"slices"
)

var (
	logFormats    = []string{"console", "json"}
	logLevels     = []string{"debug", "info", "warn", "error"}
	outputFormats = []string{"plain", "table", "json", "markdown"}
)

// OutputFormats lists the accepted values for output.format.
func OutputFormats() []string {
	return slices.Clone(outputFormats)
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if !slices.Contains(outputFormats, c.Output.Format) {
		return fmt.Errorf("output.format must be one of %v, got %q", outputFormats, c.Output.Format)
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.Database == "" {
		return fmt.Errorf("paths.database must be set")
	}
	if info, err := os.Stat(c.Paths.Database); err == nil && info.IsDir() {
		return fmt.Errorf("paths.database %q is a directory", c.Paths.Database)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !slices.Contains(logFormats, c.Logging.Format) {
		return fmt.Errorf("logging.format must be one of %v, got %q", logFormats, c.Logging.Format)
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of %v, got %q", logLevels, c.Logging.Level)
	}
	return nil
}
