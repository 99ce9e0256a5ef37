// Package cli provides the command-line interface for filestats.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/filestats/internal/cli/commands"
	"github.com/leapstack-labs/filestats/internal/cli/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// Exit codes returned by Execute.
const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitRuntime = 2
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "filestats <input.txt>",
		Short: "File Stats - Text file analysis",
		Long: `filestats analyzes a single text file and reports its line count,
word count, byte size and most frequent words. Results can optionally
be exported as a JSON document with --json.`,
		Example: `  # Analyze a file, show the top 20 words
  filestats book.txt

  # Top 5 words, case-sensitive, exported to JSON
  filestats book.txt --top 5 --case-sensitive --json report.json`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.LoadConfig(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				// Everything the loader rejects comes from the
				// invocation or its configuration.
				return commands.WrapUsage(err)
			}

			// Build the logger and store it in context for commands.
			var logger *slog.Logger
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(cmd.ErrOrStderr(), "Using config file: %s\n", configFile)
				}
			} else {
				logger = slog.New(slog.DiscardHandler)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), config.LoggerKey(), logger))

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch len(args) {
			case 0:
				return commands.Usagef("missing input file")
			case 1:
				return commands.RunAnalyze(cmd, args[0])
			default:
				return commands.Usagef("unexpected argument: %s", args[1])
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set version template
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	// Flag parse failures (unknown flag, non-numeric --top) are usage
	// errors, not runtime failures.
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return commands.WrapUsage(err)
	})

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./filestats.yaml)")
	rootCmd.PersistentFlags().Int("top", config.DefaultTop, "Show top N most frequent words")
	rootCmd.PersistentFlags().String("json", "", "Export results to a JSON file")
	rootCmd.PersistentFlags().Bool("case-sensitive", false, "Word frequency is case-sensitive")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format (auto|text|markdown|json)")

	// Register completion for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "text", "markdown", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewAnalyzeCommand())
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(NewCompletionCommand())

	return rootCmd
}

// Execute runs the root command and returns the process exit code:
// 0 on success, 1 for usage errors, 2 for runtime failures.
func Execute() int {
	rootCmd := NewRootCmd()
	cmd, err := rootCmd.ExecuteC()
	if err == nil {
		return ExitOK
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)

	var usageErr *commands.UsageError
	if errors.As(err, &usageErr) {
		if cmd == nil {
			cmd = rootCmd
		}
		_ = cmd.Usage()
		return ExitUsage
	}
	return ExitRuntime
}

// NewCompletionCommand creates the completion command.
func NewCompletionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for filestats.

To load completions:

Bash:
  $ source <(filestats completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ filestats completion bash > /etc/bash_completion.d/filestats
  # macOS:
  $ filestats completion bash > $(brew --prefix)/etc/bash_completion.d/filestats

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ filestats completion zsh > "${fpath[1]}/_filestats"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ filestats completion fish | source

  # To load completions for each session, execute once:
  $ filestats completion fish > ~/.config/fish/completions/filestats.fish

PowerShell:
  PS> filestats completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> filestats completion powershell > filestats.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}
	return cmd
}
