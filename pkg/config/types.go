// Package config handles halog configuration loading and validation.
package config

// Config is the root configuration structure.
type Config struct {
	Validation ValidationConfig `yaml:"validation"`
	Detection  DetectionConfig  `yaml:"detection"`
	Processing ProcessingConfig `yaml:"processing"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ValidationConfig controls the checks run before a file is processed.
type ValidationConfig struct {
	// AllowedExtensions lists accepted extensions, compared case-insensitively.
	AllowedExtensions []string `yaml:"allowed_extensions" validate:"required,min=1,dive,required"`

	// MaxFileSize is the largest accepted file in bytes, inclusive.
	MaxFileSize int64 `yaml:"max_file_size" validate:"gt=0"`

	// ProbeBytes is how many bytes the readability probe reads.
	ProbeBytes int `yaml:"probe_bytes" validate:"gt=0"`
}

// DetectionConfig controls format sniffing.
type DetectionConfig struct {
	// SampleLines is how many leading lines are inspected.
	SampleLines int `yaml:"sample_lines" validate:"gte=1,lte=1000"`
}

// ProcessingConfig controls parsing.
type ProcessingConfig struct {
	// ProgressInterval is the number of lines between progress reports.
	ProgressInterval int `yaml:"progress_interval" validate:"gte=1"`
}

// LoggingConfig controls diagnostic logging on stderr.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}
