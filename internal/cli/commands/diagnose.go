package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gobioeng/halog/pkg/config"
	"github.com/gobioeng/halog/pkg/detector"
	"github.com/gobioeng/halog/pkg/logging"
	"github.com/gobioeng/halog/pkg/processor"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose bool
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose [log-file]",
		Short: "Diagnose configuration and log file issues",
		Long: `Diagnose common configuration and log file issues.

Without a log file, only the configuration (--config, HALOG_* environment
variables) is checked. With a log file, diagnose also checks:
- File validation (extension, size, readability)
- Format detection against the sampled lines
- Whether processing yields parsed data or falls back to sample data

Example:
  halog diagnose
  halog --config halog.yaml diagnose water.log
  halog diagnose -v water.log  # verbose output`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logFile := ""
			if len(args) == 1 {
				logFile = args[0]
			}
			return runDiagnose(cmd, logFile, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")

	return cmd
}

func runDiagnose(cmd *cobra.Command, logFile string, opts *DiagnoseOptions) error {
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()
	configPath := flagString(cmd, FlagConfig)
	results := []DiagnosticResult{}

	// 1. Check config file existence
	if configPath != "" {
		result := checkConfigExists(configPath)
		results = append(results, result)
		if result.Status == "error" {
			return finishDiagnostics(w, results, opts)
		}
	}

	// 2. Parse config file and environment overrides
	cfg, result := checkConfigParseable(ctx, configPath)
	results = append(results, result)
	if result.Status == "error" || logFile == "" {
		return finishDiagnostics(w, results, opts)
	}

	s := &settings{configPath: configPath, cfg: cfg, logger: logging.Discard()}

	// 3. Validate the log file
	result = checkLogFile(s, logFile)
	results = append(results, result)
	if result.Status == "error" {
		return finishDiagnostics(w, results, opts)
	}

	// 4. Detect the format
	results = append(results, checkDetection(ctx, s, logFile, opts))

	// 5. Process it
	results = append(results, checkProcessing(ctx, s, logFile, opts))

	return finishDiagnostics(w, results, opts)
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Use 'halog detect <log-file> --write-config halog.yaml' to generate a starter config",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = "warning"
		result.Message = "Config file is empty, defaults will be used"
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfigParseable(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to load config: %v", err)
		switch {
		case strings.Contains(err.Error(), "yaml"):
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		case strings.Contains(err.Error(), config.EnvPrefix+"_"):
			result.Suggests = []string{
				"Check the " + config.EnvPrefix + "_* environment variables",
			}
		}
		return nil, result
	}

	result.Status = "ok"
	if path == "" {
		result.Message = "No config file given, using defaults"
	} else {
		result.Message = "Config file parsed successfully"
	}
	result.Details = []string{
		fmt.Sprintf("Allowed extensions: %s", strings.Join(cfg.Validation.AllowedExtensions, ", ")),
		fmt.Sprintf("Max file size: %d bytes", cfg.Validation.MaxFileSize),
		fmt.Sprintf("Sample lines: %d", cfg.Detection.SampleLines),
		fmt.Sprintf("Log level: %s (%s)", cfg.Logging.Level, cfg.Logging.Format),
	}
	return cfg, result
}

func checkLogFile(s *settings, logFile string) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Log File: %s", logFile),
	}

	ok, reason := s.validator().Validate(logFile)
	if !ok {
		result.Status = "error"
		result.Message = reason
		result.Suggests = []string{
			"Check the file path, extension and permissions",
			"Use 'halog info " + logFile + "' to inspect the file",
		}
		return result
	}

	result.Status = "ok"
	result.Message = reason
	if meta, found := s.validator().Info(logFile); found {
		result.Details = []string{
			fmt.Sprintf("Size: %s", meta.SizeHuman),
			fmt.Sprintf("MIME type: %s", meta.MIMEType),
		}
	}
	return result
}

func checkDetection(ctx context.Context, s *settings, logFile string, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Format Detection",
	}

	det := s.detector(0).DetectFromFile(ctx, logFile)
	if det.ReadErr != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot read file: %v", det.ReadErr)
		return result
	}

	if !det.HasMatch() {
		result.Status = "warning"
		result.Message = fmt.Sprintf("No known format in the first %d line(s)", len(det.SampledLines))
		if len(det.SampledLines) > 0 {
			result.Details = []string{
				"First sampled line:",
				truncate(det.SampledLines[0], 80),
			}
		}
		for _, rule := range detector.DefaultRules() {
			result.Suggests = append(result.Suggests,
				fmt.Sprintf("%s lines look like: %s", rule.Format, rule.Examples[0]))
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Detected format: %s", det.Format)
	if opts.Verbose {
		result.Details = []string{
			fmt.Sprintf("Matched line %d:", det.MatchIndex+1),
			truncate(det.MatchedLine(), 80),
		}
	}
	return result
}

func checkProcessing(ctx context.Context, s *settings, logFile string, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Processing",
	}

	res, err := s.processor(nil).ProcessFile(ctx, logFile, nil)
	if err != nil {
		result.Status = "error"
		result.Message = err.Error()
		return result
	}

	if res.Fallback {
		result.Status = "warning"
		result.Message = fmt.Sprintf("File could not be parsed (%s), sample data would be used", res.FallbackReason)
		switch res.FallbackReason {
		case processor.ReasonMissingColumns:
			result.Suggests = []string{"CSV headers need a time/date column and a value/measure column"}
		case processor.ReasonNoRecords:
			result.Suggests = []string{"No line in the file matched the detected format"}
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Parsed %d record(s) from %d line(s)", res.Records, res.LinesRead)
	if opts.Verbose {
		sum := res.Table.Summary()
		result.Details = []string{
			fmt.Sprintf("Columns: %s", strings.Join(res.Table.Columns(), ", ")),
			fmt.Sprintf("Date range: %s to %s",
				sum.Start.Format("2006-01-02 15:04:05"), sum.End.Format("2006-01-02 15:04:05")),
		}
	}
	return result
}

// finishDiagnostics prints the results and sets the exit code: 1 when any
// check failed.
func finishDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) error {
	if printDiagnostics(w, results, opts) > 0 {
		ExitCode = 1
	} else {
		ExitCode = 0
	}
	return nil
}

// printDiagnostics writes the report and returns the number of errors.
func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) int {
	fmt.Fprintln(w, "=== HALog Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		// Status icon
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	// Summary
	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before processing.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nUsable, but see the warnings above.")
	} else {
		fmt.Fprintln(w, "\nEverything looks good!")
	}
	return errCount
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
