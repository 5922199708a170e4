// Package detector classifies water-system log files by sampling their first lines.
package detector

import (
	"bufio"
	"context"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultSampleSize is the number of leading lines inspected.
const DefaultSampleSize = 5

// DetectionResult holds the result of sniffing a log file.
type DetectionResult struct {
	Format       Format   // Winning format, FormatUnknown if none
	Rule         *Rule    // Winning rule, nil for FormatUnknown
	SampledLines []string // Trimmed lines that were inspected
	MatchIndex   int      // Index into SampledLines of the first matching line, -1 if none

	// ReadErr records why the file could not be sampled. It is informational
	// only; a read failure always classifies as FormatUnknown.
	ReadErr error
}

// Detector sniffs log file formats.
type Detector struct {
	rules      []*Rule
	sampleSize int
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample (default 5).
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// New creates a new Detector with the default rules.
func New(opts ...Option) *Detector {
	d := &Detector{
		rules:      DefaultRules(),
		sampleSize: DefaultSampleSize,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples a file and classifies it. It never fails: any
// error opening or reading the file yields FormatUnknown.
func (d *Detector) DetectFromFile(_ context.Context, path string) *DetectionResult {
	lines, err := d.sampleFile(path)
	if err != nil {
		return &DetectionResult{
			Format:     FormatUnknown,
			MatchIndex: -1,
			ReadErr:    err,
		}
	}
	return d.DetectFromLines(lines)
}

// Detect is a shorthand for DetectFromFile(...).Format.
func (d *Detector) Detect(ctx context.Context, path string) Format {
	return d.DetectFromFile(ctx, path).Format
}

// DetectFromLines classifies already-sampled lines. Each rule is checked
// against every line before the next rule is tried.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	result := &DetectionResult{
		Format:       FormatUnknown,
		SampledLines: lines,
		MatchIndex:   -1,
	}

	for _, rule := range d.rules {
		for i, line := range lines {
			if rule.Match(strings.TrimSpace(line)) {
				result.Format = rule.Format
				result.Rule = rule
				result.MatchIndex = i
				return result
			}
		}
	}

	return result
}

// sampleFile reads up to sampleSize lines, stopping early at EOF.
// Blank and comment lines count toward the sample.
func (d *Detector) sampleFile(path string) ([]string, error) {
	// #nosec G304 - path is provided by user via CLI
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	decoded := transform.NewReader(file, unicode.UTF8BOM.NewDecoder())
	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for len(lines) < d.sampleSize && scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return lines, nil
}

// HasMatch returns true if a known format was detected.
func (r *DetectionResult) HasMatch() bool {
	return r.Format != FormatUnknown
}

// MatchedLine returns the sampled line that decided the format, or "".
func (r *DetectionResult) MatchedLine() string {
	if r.MatchIndex < 0 || r.MatchIndex >= len(r.SampledLines) {
		return ""
	}
	return r.SampledLines[r.MatchIndex]
}
