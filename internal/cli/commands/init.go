package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/filestats/internal/cli/output"
)

const starterConfig = `# filestats configuration.
# Every key can also be set via FILESTATS_* environment variables or
# the matching command-line flag; flags win over this file.

# Number of top frequent words to display/export.
top: 20

# Word frequency counting mode.
case_sensitive: false

# Console output format: auto | text | markdown | json.
# auto picks text on a terminal and markdown when piped.
output: auto

# Verbose (debug) logging on stderr.
verbose: false
`

const starterGitignore = `# filestats exports
*.report.json
`

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Write a starter filestats.yaml",
		Long: `Initialize a directory with a starter filestats.yaml configuration
file and a .gitignore for report exports.`,
		Example: `  # Initialize in current directory
  filestats init

  # Initialize in a new directory
  filestats init my-project

  # Force overwrite existing config
  filestats init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	configPath := filepath.Join(dir, "filestats.yaml")
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("filestats.yaml already exists. Use --force to overwrite")
	}

	if err := os.WriteFile(configPath, []byte(starterConfig), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", configPath, err)
	}
	r.StatusLine("filestats.yaml", "success", "")

	gitignorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitignorePath); os.IsNotExist(err) {
		if err := os.WriteFile(gitignorePath, []byte(starterGitignore), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", gitignorePath, err)
		}
		r.StatusLine(".gitignore", "success", "")
	}

	r.Println("")
	r.Success("filestats configuration initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Adjust filestats.yaml to taste")
	r.Println("  2. Run 'filestats <input.txt>' to analyze a file")
	r.Println("  3. Add --json report.json for a structured export")

	return nil
}
