// Package config provides configuration management for the filestats
// CLI.
//
// Configuration is assembled from four layers, lowest priority first:
// built-in defaults, a filestats.yaml file, FILESTATS_* environment
// variables and explicitly set command-line flags. Invocation-scoped
// values (the input path and the --json export path) never live in
// configuration; they belong to the single run.
package config

// Config holds all CLI configuration options.
type Config struct {
	Top           int    `koanf:"top"`
	CaseSensitive bool   `koanf:"case_sensitive"`
	OutputFormat  string `koanf:"output"`
	Verbose       bool   `koanf:"verbose"`
}

// Default configuration values.
const (
	DefaultTop    = 20
	DefaultOutput = "auto" // Auto-detect: TTY=text, non-TTY=markdown
)
