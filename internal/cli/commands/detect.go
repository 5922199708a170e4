package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gobioeng/halog/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Output      string
	SampleSize  int
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Detect the format of a log file",
		Long: `Sample the first lines of a log file and report which format it uses.

Rules are checked in priority order and the first rule that matches any
sampled line wins:
  1. timestamp_stats  <date> <time> <parameter> <count> <min> <max> <avg>
  2. simple_csv       a line with at least three comma-separated fields
  3. detailed_log     [<timestamp>] <parameter>: <value>

Anything else is reported as unknown. Unreadable files are also unknown.

Optionally generates a starter config file with --write-config.

Example:
  halog detect water.log
  halog detect --sample 20 water.log
  halog detect -w halog.yaml water.log`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", 0, "Number of lines to sample (default from config)")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	logFile := args[0]
	ctx := commandContext(cmd)

	s, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check file exists
	if _, err := os.Stat(logFile); os.IsNotExist(err) {
		return fmt.Errorf("log file not found: %s", logFile)
	}

	d := s.detector(opts.SampleSize)
	result := d.DetectFromFile(ctx, logFile)
	if result.ReadErr != nil {
		s.logger.Warn("could not sample file", "path", logFile, "error", result.ReadErr)
	}

	// Write config file if requested
	if opts.WriteConfig != "" {
		if err := writeStarterConfig(cmd.OutOrStdout(), result, logFile, opts.WriteConfig); err != nil {
			return err
		}
	}

	switch opts.Output {
	case "json":
		return outputDetectJSON(cmd.OutOrStdout(), result, logFile)
	case "text", "":
		return outputDetectText(cmd.OutOrStdout(), result, logFile)
	default:
		return fmt.Errorf("invalid output format %q (must be text or json)", opts.Output)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, logFile string) error {
	fmt.Fprintln(w, "=== Log Format Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", logFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", len(result.SampledLines))
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "Detected Format: unknown")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Processing this file will produce sample data.")
		fmt.Fprintln(w, "Expected one of:")
		for _, rule := range detector.DefaultRules() {
			fmt.Fprintf(w, "  %-16s %s\n", rule.Format, rule.Examples[0])
		}
		return nil
	}

	fmt.Fprintf(w, "Detected Format: %s\n", result.Format)
	fmt.Fprintf(w, "Rule: %s\n", result.Rule.PatternStr)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Matched line %d:\n  %s\n", result.MatchIndex+1, result.MatchedLine())
	return nil
}

// JSONDetection represents the detect command's JSON output.
type JSONDetection struct {
	File         string   `json:"file"`
	Format       string   `json:"format"`
	Rule         string   `json:"rule,omitempty"`
	SampledLines int      `json:"sampled_lines"`
	MatchLine    int      `json:"match_line,omitempty"`
	MatchedText  string   `json:"matched_text,omitempty"`
	Sample       []string `json:"sample"`
	ReadError    string   `json:"read_error,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, logFile string) error {
	out := JSONDetection{
		File:         logFile,
		Format:       result.Format.String(),
		SampledLines: len(result.SampledLines),
		Sample:       result.SampledLines,
	}
	if out.Sample == nil {
		out.Sample = []string{}
	}
	if result.HasMatch() {
		out.Rule = result.Rule.PatternStr
		out.MatchLine = result.MatchIndex + 1
		out.MatchedText = result.MatchedLine()
	}
	if result.ReadErr != nil {
		out.ReadError = result.ReadErr.Error()
	}

	return writeJSON(w, out)
}

// writeStarterConfig generates a starter config file for the detected format.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, logFile, configPath string) error {
	// Check if file already exists
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	content := generateStarterConfig(logFile, result)

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig creates a YAML config template. The file's own
// extension is added to the allow-list when it is not already there.
func generateStarterConfig(logFile string, result *detector.DetectionResult) string {
	absLogFile := logFile
	if abs, err := filepath.Abs(logFile); err == nil {
		absLogFile = abs
	}

	extensions := "[.log, .txt, .csv, .dat]"
	switch ext := filepath.Ext(logFile); ext {
	case "", ".log", ".txt", ".csv", ".dat":
	default:
		extensions = fmt.Sprintf("[.log, .txt, .csv, .dat, %s]", ext)
	}

	return fmt.Sprintf(`# HALog Configuration
# Generated by: halog detect
# Source file: %s
# Detected format: %s

validation:
  allowed_extensions: %s
  max_file_size: 524288000  # 500 MiB
  probe_bytes: 100

detection:
  sample_lines: %d

processing:
  progress_interval: 1000

logging:
  level: info   # debug|info|warn|error
  format: text  # text|json
`, absLogFile, result.Format, extensions, max(len(result.SampledLines), detector.DefaultSampleSize))
}
