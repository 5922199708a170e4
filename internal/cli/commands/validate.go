package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/gobioeng/halog/pkg/filecheck"
)

// ValidateOptions holds command-line options for the validate command.
type ValidateOptions struct {
	Output string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <log-file>...",
		Short: "Check that log files can be processed",
		Long: `Validate one or more log files without processing them.

Checks, in order:
  - The path exists
  - It is a regular file
  - The extension is allowed (.log, .txt, .csv, .dat by default, any case)
  - The size is within the limit (500 MiB by default)
  - The first bytes can be read

Arguments may be glob patterns.

Exit codes:
  0 - All files are valid
  1 - At least one file is invalid
  2 - Configuration or runtime error`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")

	return cmd
}

// ValidationResult is the outcome for one file.
type ValidationResult struct {
	File   string `json:"file"`
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

func runValidate(cmd *cobra.Command, args []string, opts *ValidateOptions) error {
	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("invalid output format %q (must be text or json)", opts.Output)
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	files, err := filecheck.ExpandPaths(args)
	if err != nil {
		return err
	}

	v := s.validator()
	results := make([]ValidationResult, 0, len(files))
	allValid := true
	for _, f := range files {
		ok, reason := v.Validate(f)
		results = append(results, ValidationResult{File: f, Valid: ok, Reason: reason})
		if !ok {
			allValid = false
			s.logger.Debug("file rejected", "path", f, "reason", reason)
		}
	}

	if opts.Output == "json" {
		err = writeJSON(cmd.OutOrStdout(), results)
	} else {
		err = outputValidateText(cmd.OutOrStdout(), results)
	}
	if err != nil {
		return err
	}

	if allValid {
		ExitCode = 0
	} else {
		ExitCode = 1
	}
	return nil
}

func outputValidateText(w io.Writer, results []ValidationResult) error {
	invalid := 0
	for _, r := range results {
		status := "OK  "
		if !r.Valid {
			status = "FAIL"
			invalid++
		}
		if _, err := fmt.Fprintf(w, "[%s] %s: %s\n", status, r.File, r.Reason); err != nil {
			return err
		}
	}

	if len(results) > 1 {
		fmt.Fprintf(w, "\n%d file(s) checked, %d invalid\n", len(results), invalid)
	}
	return nil
}
