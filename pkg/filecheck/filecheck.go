// Package filecheck validates candidate log files before they are processed
// and reports their metadata.
package filecheck

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

const (
	// DefaultMaxFileSize is the largest accepted file, inclusive.
	DefaultMaxFileSize int64 = 500 * 1024 * 1024

	// DefaultProbeBytes is how much of the file the readability probe reads.
	DefaultProbeBytes = 100

	// ReasonValid is returned for files that pass every check.
	ReasonValid = "File is valid"
)

// DefaultExtensions are the accepted file extensions.
var DefaultExtensions = []string{".log", ".txt", ".csv", ".dat"}

// Metadata is a snapshot of a file's attributes. It is not kept in sync
// with the file after it is taken.
type Metadata struct {
	Name      string    `json:"name" yaml:"name"`
	Path      string    `json:"path" yaml:"path"`
	Size      int64     `json:"size" yaml:"size"`
	SizeMB    float64   `json:"size_mb" yaml:"size_mb"`
	SizeHuman string    `json:"size_human" yaml:"size_human"`
	Modified  time.Time `json:"modified" yaml:"modified"`
	Extension string    `json:"extension" yaml:"extension"`
	MIMEType  string    `json:"mime_type" yaml:"mime_type"`
}

// Validator checks files against an extension allow-list and a size ceiling.
type Validator struct {
	extensions map[string]bool
	maxSize    int64
	probeBytes int
}

// Option configures a Validator.
type Option func(*Validator)

// WithExtensions replaces the extension allow-list. Extensions may be given
// with or without the leading dot, in any case.
func WithExtensions(exts []string) Option {
	return func(v *Validator) {
		if len(exts) == 0 {
			return
		}
		v.extensions = make(map[string]bool, len(exts))
		for _, ext := range exts {
			v.extensions[normalizeExt(ext)] = true
		}
	}
}

// WithMaxSize sets the size ceiling in bytes.
func WithMaxSize(n int64) Option {
	return func(v *Validator) {
		if n > 0 {
			v.maxSize = n
		}
	}
}

// WithProbeBytes sets how many bytes the readability probe reads.
func WithProbeBytes(n int) Option {
	return func(v *Validator) {
		if n > 0 {
			v.probeBytes = n
		}
	}
}

// New creates a Validator with the default limits, modified by opts.
func New(opts ...Option) *Validator {
	v := &Validator{
		maxSize:    DefaultMaxFileSize,
		probeBytes: DefaultProbeBytes,
	}
	WithExtensions(DefaultExtensions)(v)
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the checks in order and stops at the first failure.
// It never returns an error; the reason string explains the outcome.
func (v *Validator) Validate(path string) (bool, string) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, fmt.Sprintf("File does not exist: %s", path)
		}
		return false, fmt.Sprintf("Cannot access file: %v", err)
	}

	if !info.Mode().IsRegular() {
		return false, fmt.Sprintf("Path is not a file: %s", path)
	}

	ext := normalizeExt(filepath.Ext(path))
	if !v.extensions[ext] {
		return false, fmt.Sprintf("Unsupported file extension: %q (allowed: %s)", ext, strings.Join(v.Extensions(), ", "))
	}

	if info.Size() > v.maxSize {
		return false, fmt.Sprintf("File too large: %s (%s bytes, max: %s)",
			humanize.IBytes(uint64(info.Size())), humanize.Comma(info.Size()), humanize.IBytes(uint64(v.maxSize)))
	}

	if err := v.probe(path); err != nil {
		return false, fmt.Sprintf("File not readable: %v", err)
	}

	return true, ReasonValid
}

// probe reads a small prefix. Content and encoding are not inspected; only
// a failed read counts.
func (v *Validator) probe(path string) error {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return err
	}
	defer f.Close()

	buf := make([]byte, v.probeBytes)
	if _, err := f.Read(buf); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Extensions returns the allow-list, sorted.
func (v *Validator) Extensions() []string {
	exts := make([]string, 0, len(v.extensions))
	for ext := range v.extensions {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// MaxSize returns the size ceiling in bytes.
func (v *Validator) MaxSize() int64 {
	return v.maxSize
}

// Info returns metadata for path. ok is false when the path does not exist
// or cannot be stat'ed.
func (v *Validator) Info(path string) (*Metadata, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	meta := &Metadata{
		Name:      info.Name(),
		Path:      path,
		Size:      info.Size(),
		SizeMB:    math.Round(float64(info.Size())/(1024*1024)*100) / 100,
		SizeHuman: humanize.IBytes(uint64(info.Size())),
		Modified:  info.ModTime(),
		Extension: normalizeExt(filepath.Ext(path)),
	}

	if info.Mode().IsRegular() {
		if mt, err := mimetype.DetectFile(path); err == nil {
			meta.MIMEType = mt.String()
		}
	}
	if meta.MIMEType == "" {
		meta.MIMEType = "application/octet-stream"
	}

	return meta, true
}

var defaultValidator = New()

// Validate checks path with the default limits.
func Validate(path string) (bool, string) {
	return defaultValidator.Validate(path)
}

// Info returns metadata for path.
func Info(path string) (*Metadata, bool) {
	return defaultValidator.Info(path)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
