package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/gobioeng/halog/pkg/detector"
	"github.com/gobioeng/halog/pkg/filecheck"
	"github.com/gobioeng/halog/pkg/parser"
)

// Default values for configuration.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "HALOG"

// Environment override keys. With EnvPrefix they become e.g. HALOG_MAX_FILE_SIZE.
const (
	EnvMaxFileSize      = "max_file_size"
	EnvSampleLines      = "sample_lines"
	EnvProgressInterval = "progress_interval"
	EnvLogLevel         = "log_level"
	EnvLogFormat        = "log_format"
)

// DefaultConfig returns a configuration with the built-in limits.
func DefaultConfig() *Config {
	exts := make([]string, len(filecheck.DefaultExtensions))
	copy(exts, filecheck.DefaultExtensions)

	return &Config{
		Validation: ValidationConfig{
			AllowedExtensions: exts,
			MaxFileSize:       filecheck.DefaultMaxFileSize,
			ProbeBytes:        filecheck.DefaultProbeBytes,
		},
		Detection: DetectionConfig{
			SampleLines: detector.DefaultSampleSize,
		},
		Processing: ProcessingConfig{
			ProgressInterval: parser.DefaultProgressInterval,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// applyEnvironmentOverrides applies HALOG_* environment variables on top of
// the file values.
func (c *Config) applyEnvironmentOverrides() error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if v.IsSet(EnvMaxFileSize) {
		n, err := strconv.ParseInt(strings.TrimSpace(v.GetString(EnvMaxFileSize)), 10, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", envName(EnvMaxFileSize), err)
		}
		c.Validation.MaxFileSize = n
	}

	if v.IsSet(EnvSampleLines) {
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(EnvSampleLines)))
		if err != nil {
			return fmt.Errorf("%s: %w", envName(EnvSampleLines), err)
		}
		c.Detection.SampleLines = n
	}

	if v.IsSet(EnvProgressInterval) {
		n, err := strconv.Atoi(strings.TrimSpace(v.GetString(EnvProgressInterval)))
		if err != nil {
			return fmt.Errorf("%s: %w", envName(EnvProgressInterval), err)
		}
		c.Processing.ProgressInterval = n
	}

	if level := v.GetString(EnvLogLevel); level != "" {
		c.Logging.Level = strings.ToLower(level)
	}

	if format := v.GetString(EnvLogFormat); format != "" {
		c.Logging.Format = strings.ToLower(format)
	}

	return nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(key)
}
