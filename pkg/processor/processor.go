// Package processor runs the full pipeline for one log file: format
// detection, parsing, and the fallback to sample data.
package processor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/gobioeng/halog/pkg/detector"
	"github.com/gobioeng/halog/pkg/logging"
	"github.com/gobioeng/halog/pkg/metrics"
	"github.com/gobioeng/halog/pkg/parser"
	"github.com/gobioeng/halog/pkg/sample"
	"github.com/gobioeng/halog/pkg/table"
)

// Progress checkpoints outside the per-line range.
const (
	ProgressDetected = 10
	ProgressDone     = 100
)

// Fallback reasons, also used as metric labels.
const (
	ReasonUnknownFormat  = "unknown_format"
	ReasonNoRecords      = "no_records"
	ReasonMissingColumns = "missing_columns"
	ReasonContentError   = "content_error"
)

// ErrFileNotFound is returned when the input path does not exist.
var ErrFileNotFound = errors.New("file not found")

// ProcessingError is a failure that is surfaced to the caller instead of
// being replaced by sample data.
type ProcessingError struct {
	Path   string
	Format detector.Format
	Err    error
}

func (e *ProcessingError) Error() string {
	if e.Format == "" || e.Format == detector.FormatUnknown {
		return fmt.Sprintf("processing %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("processing %s as %s: %v", e.Path, e.Format, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// Result is the outcome of a successful run. When Fallback is set, Table
// holds sample data and FallbackReason says why; callers render both cases
// the same way.
type Result struct {
	RunID          string          `json:"run_id" yaml:"run_id"`
	Path           string          `json:"path" yaml:"path"`
	Format         detector.Format `json:"format" yaml:"format"`
	Table          *table.Table    `json:"-" yaml:"-"`
	Fallback       bool            `json:"fallback" yaml:"fallback"`
	FallbackReason string          `json:"fallback_reason,omitempty" yaml:"fallback_reason,omitempty"`
	LinesRead      int             `json:"lines_read" yaml:"lines_read"`
	Records        int             `json:"records" yaml:"records"`
	Duration       time.Duration   `json:"duration" yaml:"duration"`
}

// Processor turns log files into result tables.
type Processor struct {
	detector   *detector.Detector
	parserOpts []parser.Option
	logger     *slog.Logger
	metrics    *metrics.Recorder
}

// Option configures a Processor.
type Option func(*Processor)

// WithDetector sets the format detector.
func WithDetector(d *detector.Detector) Option {
	return func(p *Processor) {
		if d != nil {
			p.detector = d
		}
	}
}

// WithParserOptions sets options passed to every parser.
func WithParserOptions(opts ...parser.Option) Option {
	return func(p *Processor) {
		p.parserOpts = append(p.parserOpts, opts...)
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithMetrics sets the metrics recorder. nil disables metrics.
func WithMetrics(m *metrics.Recorder) Option {
	return func(p *Processor) {
		p.metrics = m
	}
}

// New creates a Processor.
func New(opts ...Option) *Processor {
	p := &Processor{
		detector: detector.New(),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ProcessFile detects the format of path, parses it, and returns the result
// table. Content problems degrade to sample data; a missing file, a read
// failure after detection, or a cancelled context return a *ProcessingError.
//
// progress may be nil. On success it ends at 100.
func (p *Processor) ProcessFile(ctx context.Context, path string, progress parser.ProgressFunc) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:  uuid.NewString(),
		Path:   path,
		Format: detector.FormatUnknown,
	}
	log := p.logger.With("run_id", res.RunID, "path", path)

	if err := ctx.Err(); err != nil {
		return nil, p.fail(log, res, start, err)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = ErrFileNotFound
		}
		return nil, p.fail(log, res, start, err)
	}

	detection := p.detector.DetectFromFile(ctx, path)
	res.Format = detection.Format
	progress.Report(ProgressDetected)
	if detection.ReadErr != nil {
		log.Debug("detection read failed", "error", detection.ReadErr)
	}
	log.Debug("format detected", "format", res.Format, "match_index", detection.MatchIndex)

	prs := parser.ForFormat(res.Format, p.parserOpts...)
	if prs == nil {
		return p.fallback(log, res, start, ReasonUnknownFormat, nil, progress), nil
	}

	parsed, err := prs.Parse(ctx, path, progress)
	if parsed != nil {
		res.LinesRead = parsed.LinesRead
		res.Records = parsed.Records
		p.metrics.RecordLines(string(res.Format), parsed.LinesRead)
	}
	if err != nil {
		var readErr *parser.ReadError
		if errors.As(err, &readErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, p.fail(log, res, start, err)
		}
		return p.fallback(log, res, start, fallbackReason(err), err, progress), nil
	}

	res.Table = parsed.Table
	res.Duration = time.Since(start)
	progress.Report(ProgressDone)

	p.metrics.RecordRows(res.Table.Len())
	p.metrics.RecordFile(string(res.Format), metrics.OutcomeParsed, res.Duration)
	log.Debug("file parsed", "format", res.Format, "rows", res.Table.Len(), "records", res.Records, "lines", res.LinesRead)

	return res, nil
}

func (p *Processor) fallback(log *slog.Logger, res *Result, start time.Time, reason string, cause error, progress parser.ProgressFunc) *Result {
	res.Table = sample.Generate()
	res.Fallback = true
	res.FallbackReason = reason
	res.Duration = time.Since(start)
	progress.Report(ProgressDone)

	p.metrics.RecordFallback(reason)
	p.metrics.RecordRows(res.Table.Len())
	p.metrics.RecordFile(string(res.Format), metrics.OutcomeFallback, res.Duration)

	attrs := []any{"format", res.Format, "reason", reason}
	if cause != nil {
		attrs = append(attrs, "error", cause)
	}
	log.Warn("using sample data", attrs...)

	return res
}

func (p *Processor) fail(log *slog.Logger, res *Result, start time.Time, err error) error {
	p.metrics.RecordFile(string(res.Format), metrics.OutcomeError, time.Since(start))
	log.Error("processing failed", "format", res.Format, "error", err)
	return &ProcessingError{Path: res.Path, Format: res.Format, Err: err}
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, parser.ErrNoRecords):
		return ReasonNoRecords
	case errors.Is(err, parser.ErrMissingColumns):
		return ReasonMissingColumns
	default:
		return ReasonContentError
	}
}

var defaultProcessor = New()

// ProcessFile processes path with the default settings.
func ProcessFile(ctx context.Context, path string, progress parser.ProgressFunc) (*Result, error) {
	return defaultProcessor.ProcessFile(ctx, path, progress)
}
