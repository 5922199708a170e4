// Package commands implements the halog subcommands.
package commands

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gobioeng/halog/pkg/config"
	"github.com/gobioeng/halog/pkg/detector"
	"github.com/gobioeng/halog/pkg/filecheck"
	"github.com/gobioeng/halog/pkg/logging"
	"github.com/gobioeng/halog/pkg/metrics"
	"github.com/gobioeng/halog/pkg/parser"
	"github.com/gobioeng/halog/pkg/processor"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// Persistent flag names, defined on the root command.
const (
	FlagConfig    = "config"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// settings is the resolved configuration and logger for one invocation.
type settings struct {
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// flagString returns a flag's value, or "" when the command was built
// without it (as in tests that run a subcommand on its own).
func flagString(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

// loadSettings loads the configuration named by --config and builds the
// logger. --log-level and --log-format override the file and environment.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	path := flagString(cmd, FlagConfig)

	cfg, err := config.Load(commandContext(cmd), path)
	if err != nil {
		return nil, err
	}

	if level := flagString(cmd, FlagLogLevel); level != "" {
		cfg.Logging.Level = strings.ToLower(level)
	}
	if format := flagString(cmd, FlagLogFormat); format != "" {
		cfg.Logging.Format = strings.ToLower(format)
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	logger := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	})

	return &settings{configPath: path, cfg: cfg, logger: logger}, nil
}

func (s *settings) validator() *filecheck.Validator {
	return filecheck.New(
		filecheck.WithExtensions(s.cfg.Validation.AllowedExtensions),
		filecheck.WithMaxSize(s.cfg.Validation.MaxFileSize),
		filecheck.WithProbeBytes(s.cfg.Validation.ProbeBytes),
	)
}

func (s *settings) detector(sampleLines int) *detector.Detector {
	if sampleLines <= 0 {
		sampleLines = s.cfg.Detection.SampleLines
	}
	return detector.New(detector.WithSampleSize(sampleLines))
}

func (s *settings) processor(rec *metrics.Recorder) *processor.Processor {
	return processor.New(
		processor.WithDetector(s.detector(0)),
		processor.WithParserOptions(parser.WithProgressInterval(s.cfg.Processing.ProgressInterval)),
		processor.WithLogger(s.logger),
		processor.WithMetrics(rec),
	)
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
