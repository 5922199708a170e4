// Package cli provides the command-line interface for HALog.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gobioeng/halog/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	commands.ExitCode = 0

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2 // Configuration or runtime error
	}
	return commands.ExitCode
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "halog",
		Short: "Parse LINAC water-system logs into min/max/avg tables",
		Long: `HALog parses LINAC water-cooling system logs.

It detects which of the supported log formats a file uses, parses it into a
time-indexed table of min/max/avg readings, and reports or charts the result.
Files it cannot parse produce a deterministic sample table, so a report is
always available.

Configuration is read from the file given with --config, then overridden by
HALOG_* environment variables (HALOG_MAX_FILE_SIZE, HALOG_SAMPLE_LINES,
HALOG_LOG_LEVEL, ...), then by --log-level and --log-format.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP(commands.FlagConfig, "c", "", "Path to config file (YAML)")
	rootCmd.PersistentFlags().String(commands.FlagLogLevel, "", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().String(commands.FlagLogFormat, "", "Log format (text|json)")

	// Add subcommands
	rootCmd.AddCommand(commands.NewProcessCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewInfoCommand())
	rootCmd.AddCommand(commands.NewSampleCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
