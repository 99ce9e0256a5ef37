package config

import "fmt"

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Top <= 0 {
		return fmt.Errorf("top must be a positive integer, got %d", c.Top)
	}
	switch c.OutputFormat {
	case "", "auto", "text", "markdown", "md", "json":
		return nil
	default:
		return fmt.Errorf("unknown output format %q (expected auto|text|markdown|json)", c.OutputFormat)
	}
}
