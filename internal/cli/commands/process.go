package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gobioeng/halog/pkg/metrics"
	"github.com/gobioeng/halog/pkg/output"
	"github.com/gobioeng/halog/pkg/processor"
)

// ProcessOptions holds command-line options for the process command.
type ProcessOptions struct {
	Output         string
	Progress       bool
	SkipValidation bool
	MetricsFile    string
	Width          int
	Height         int
	Verbose        bool
	Quiet          bool
}

// NewProcessCommand creates the process command.
func NewProcessCommand() *cobra.Command {
	opts := &ProcessOptions{}

	cmd := &cobra.Command{
		Use:   "process <log-file>",
		Short: "Parse a water-system log into a min/max/avg table",
		Long: `Process a LINAC water-system log file.

The file is validated, its format is detected from the first lines, and it
is parsed into a table of min/max/avg values per timestamp.

Supported formats:
  - timestamp_stats: 2025-01-01 00:00:00 pump_pressure 15 40.10 50.20 45.15
  - simple_csv:      header row with a time/date column and a value/measure column
  - detailed_log:    [2025-01-01 00:00:00] pump_pressure: 45.2

Files in an unknown format, or with no usable records, produce a
deterministic sample table instead so that a report is always available.

Exit codes:
  0 - Table produced (parsed or sample)
  1 - File failed validation
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json|yaml|csv|chart)")
	cmd.Flags().BoolVar(&opts.Progress, "progress", false, "Print progress percentages to stderr")
	cmd.Flags().BoolVar(&opts.SkipValidation, "skip-validation", false, "Skip extension and size checks")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	cmd.Flags().IntVar(&opts.Width, "width", output.DefaultChartWidth, "Chart width in columns")
	cmd.Flags().IntVar(&opts.Height, "height", output.DefaultChartHeight, "Chart height in rows")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Include every row in text output")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no details")

	return cmd
}

func runProcess(cmd *cobra.Command, args []string, opts *ProcessOptions) error {
	logFile := args[0]
	ctx := commandContext(cmd)

	s, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	formatter, err := output.NewFormatter(opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		Width:   opts.Width,
		Height:  opts.Height,
	})
	if err != nil {
		return err
	}

	if !opts.SkipValidation {
		if ok, reason := s.validator().Validate(logFile); !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Validation failed: %s\n", reason)
			ExitCode = 1
			return nil
		}
	}

	var rec *metrics.Recorder
	if opts.MetricsFile != "" {
		rec = metrics.NewRecorder()
	}

	var progress func(int)
	if opts.Progress {
		progress = func(p int) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Progress: %d%%\n", p)
		}
	}

	result, procErr := s.processor(rec).ProcessFile(ctx, logFile, progress)

	// Metrics are written for failed runs too
	if err := rec.WriteTextfile(opts.MetricsFile); err != nil {
		s.logger.Warn("could not write metrics", "error", err)
	}

	if procErr != nil {
		if errors.Is(procErr, processor.ErrFileNotFound) {
			return fmt.Errorf("log file not found: %s", logFile)
		}
		return procErr
	}

	report := output.NewReport(result, s.configPath)
	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	ExitCode = 0
	return nil
}
