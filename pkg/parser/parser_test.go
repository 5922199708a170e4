package parser

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gobioeng/halog/pkg/detector"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTimestampStatsParser_Parse(t *testing.T) {
	path := writeFile(t, "stats.log", "2025-01-01 00:00:00 pump_pressure 15 40.10 50.20 45.15\n")

	parsed, err := NewTimestampStatsParser().Parse(context.Background(), path, nil)
	require.NoError(t, err)
	require.Equal(t, 1, parsed.Table.Len())

	row := parsed.Table.Rows[0]
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), row.Timestamp)
	assert.Equal(t, 40.10, row.Min)
	assert.Equal(t, 50.20, row.Max)
	assert.Equal(t, 45.15, row.Avg)
}

func TestTimestampStatsParser_KeepsDuplicateTimestamps(t *testing.T) {
	content := `2025-01-01 00:00:00 pump_pressure 15 40.10 50.20 45.15
2025-01-01 00:00:00 flow_rate 15 12.00 14.00 13.00

not a stats line
2025-01-01 01:00:00 pump_pressure 10 41.00 49.00 45.00
`
	path := writeFile(t, "stats.log", content)

	parsed, err := NewTimestampStatsParser().Parse(context.Background(), path, nil)
	require.NoError(t, err)

	require.Equal(t, 3, parsed.Table.Len())
	assert.Equal(t, parsed.Table.Rows[0].Timestamp, parsed.Table.Rows[1].Timestamp)
	assert.Equal(t, 13.00, parsed.Table.Rows[1].Avg)
	assert.Equal(t, 5, parsed.LinesRead)
	assert.Equal(t, 3, parsed.Records)
}

func TestTimestampStatsParser_ParseLine(t *testing.T) {
	p := NewTimestampStatsParser()

	tests := []struct {
		name   string
		line   string
		wantOK bool
		count  int
	}{
		{"valid", "2025-01-01 00:00:00 pump_pressure 15 40.10 50.20 45.15", true, 15},
		{"extra whitespace", "  2025-01-01   00:00:00  flow 3  1.0  2.0  1.5  ", true, 3},
		{"trailing text", "2025-01-01 00:00:00 flow 3 1.0 2.0 1.5 extra", true, 3},
		{"integer stats", "2025-01-01 00:00:00 flow 3 1 2 1", false, 0},
		{"impossible date", "2025-13-45 00:00:00 flow 3 1.0 2.0 1.5", false, 0},
		{"count beyond int range", "2025-01-01 00:00:00 flow 123456789012345678901234 1.0 2.0 1.5", true, math.MaxInt},
		{"blank", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, ok := p.ParseLine(tt.line)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, tt.count, rec.Count)
			}
		})
	}
}

func TestTimestampStatsParser_NoRecords(t *testing.T) {
	path := writeFile(t, "stats.log", "nothing to see\nhere\n")

	_, err := NewTimestampStatsParser().Parse(context.Background(), path, nil)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestTimestampStatsParser_ReadError(t *testing.T) {
	_, err := NewTimestampStatsParser().Parse(context.Background(), filepath.Join(t.TempDir(), "missing.log"), nil)

	var readErr *ReadError
	require.True(t, errors.As(err, &readErr), "expected *ReadError, got %v", err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestTimestampStatsParser_Progress(t *testing.T) {
	content := ""
	for i := 0; i < 10; i++ {
		content += "2025-01-01 00:00:00 pump_pressure 15 40.10 50.20 45.15\n"
	}
	path := writeFile(t, "stats.log", content)

	var got []int
	_, err := NewTimestampStatsParser(WithProgressInterval(5)).Parse(context.Background(), path, func(p int) {
		got = append(got, p)
	})
	require.NoError(t, err)

	assert.Equal(t, []int{10, 50}, got)
}

func TestDetailedLogParser_GroupsAcrossParameters(t *testing.T) {
	content := `[2025-01-01 00:00:00] pump_pressure: 10.0
[2025-01-01 00:00:00] flow_rate: 20.0
`
	path := writeFile(t, "detail.log", content)

	parsed, err := NewDetailedLogParser().Parse(context.Background(), path, nil)
	require.NoError(t, err)
	require.Equal(t, 1, parsed.Table.Len())

	row := parsed.Table.Rows[0]
	assert.Equal(t, 10.0, row.Min)
	assert.Equal(t, 20.0, row.Max)
	assert.Equal(t, 15.0, row.Avg)
	assert.Equal(t, 2, parsed.Records)
}

func TestDetailedLogParser_SkipsBadLines(t *testing.T) {
	content := `[2025-01-01 00:00:00] pump_pressure: 10.0
[not a time] pump_pressure: 11.0
[2025-01-01 01:00:00] pump_pressure: ...

[2025-01-01 01:00:00] sensor:a: 30.5
`
	path := writeFile(t, "detail.log", content)

	parsed, err := NewDetailedLogParser().Parse(context.Background(), path, nil)
	require.NoError(t, err)

	require.Equal(t, 2, parsed.Table.Len())
	assert.Equal(t, 10.0, parsed.Table.Rows[0].Avg)
	assert.Equal(t, 30.5, parsed.Table.Rows[1].Avg)
}

func TestDetailedLogParser_ParseLine(t *testing.T) {
	p := NewDetailedLogParser()

	pt, ok := p.ParseLine("[2025-01-01 00:00:00] coolant:temp: 21.5")
	require.True(t, ok)
	assert.Equal(t, "coolant:temp", pt.Parameter)
	assert.Equal(t, 21.5, pt.Value)

	_, ok = p.ParseLine("no brackets: 1.0")
	assert.False(t, ok)
}

func TestDetailedLogParser_ParseLine_TrailingAnnotation(t *testing.T) {
	p := NewDetailedLogParser()

	pt, ok := p.ParseLine("[2025-01-01 00:00:00] pump_pressure: 45.2 (min: 40.0)")
	require.True(t, ok)
	assert.Equal(t, "pump_pressure", pt.Parameter)
	assert.Equal(t, 45.2, pt.Value)

	pt, ok = p.ParseLine("[2025-01-01 00:00:00] coolant:temp: 21.5 (max: 23.0, avg: 22.1)")
	require.True(t, ok)
	assert.Equal(t, "coolant:temp", pt.Parameter)
	assert.Equal(t, 21.5, pt.Value)
}

func TestDetailedLogParser_FirstOccurrenceOrder(t *testing.T) {
	content := `[2025-01-01 02:00:00] a: 1.0
[2025-01-01 01:00:00] a: 2.0
[2025-01-01 02:00:00] b: 3.0
`
	path := writeFile(t, "detail.log", content)

	parsed, err := NewDetailedLogParser().Parse(context.Background(), path, nil)
	require.NoError(t, err)

	require.Equal(t, 2, parsed.Table.Len())
	assert.Equal(t, 2, parsed.Table.Rows[0].Timestamp.Hour())
	assert.Equal(t, 2.0, parsed.Table.Rows[0].Avg)
	assert.Equal(t, 1, parsed.Table.Rows[1].Timestamp.Hour())
}

func TestDetailedLogParser_NoRecords(t *testing.T) {
	path := writeFile(t, "detail.log", "[x] y: z\n")

	_, err := NewDetailedLogParser().Parse(context.Background(), path, nil)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestDetailedLogParser_ReadError(t *testing.T) {
	_, err := NewDetailedLogParser().Parse(context.Background(), t.TempDir(), nil)

	var readErr *ReadError
	assert.True(t, errors.As(err, &readErr), "expected *ReadError, got %v", err)
}

func TestCSVParser_Parse(t *testing.T) {
	content := `Date,Value
2025-01-01,1.0
2025-01-01,3.0
`
	path := writeFile(t, "data.csv", content)

	var got []int
	parsed, err := NewCSVParser().Parse(context.Background(), path, func(p int) { got = append(got, p) })
	require.NoError(t, err)
	require.Equal(t, 1, parsed.Table.Len())

	row := parsed.Table.Rows[0]
	assert.Equal(t, 1.0, row.Min)
	assert.Equal(t, 3.0, row.Max)
	assert.Equal(t, 2.0, row.Avg)
	assert.Equal(t, []int{50}, got)
}

func TestCSVParser_ContentErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"missing value column", "timestamp,parameter,reading\n2025-01-01 00:00:00,p,1.0\n", ErrMissingColumns},
		{"missing time column", "parameter,value\np,1.0\n", ErrMissingColumns},
		{"header only", "timestamp,value\n", ErrNoRecords},
		{"empty file", "", ErrNoRecords},
		{"non-numeric value", "timestamp,value\n2025-01-01 00:00:00,abc\n", nil},
		{"bad date", "timestamp,value\nyesterday,1.0\n", nil},
		{"ragged row", "timestamp,value\n2025-01-01 00:00:00\n", nil},
		{"NaN value", "timestamp,value\n2025-01-01 00:00:00,NaN\n2025-01-01 00:00:00,1.0\n", ErrNonFinite},
		{"infinite value", "timestamp,value\n2025-01-01 00:00:00,1.0\n2025-01-01 00:00:00,-Inf\n", ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "data.csv", tt.content)

			_, err := NewCSVParser().Parse(context.Background(), path, nil)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}

			var readErr *ReadError
			assert.False(t, errors.As(err, &readErr), "content errors must not be read errors")
		})
	}
}

func TestColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		wantTS  int
		wantVal int
		wantErr bool
	}{
		{"basic", []string{"Date", "Value"}, 0, 1, false},
		{"case insensitive", []string{"TIMESTAMP", "param", "MEASUREMENT"}, 0, 2, false},
		{"first match wins", []string{"time", "date", "value", "measure"}, 0, 2, false},
		{"value after claimed time", []string{"value_time", "value"}, 0, 1, false},
		{"none", []string{"a", "b"}, -1, -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, val, err := Columns(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMissingColumns)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTS, ts)
			assert.Equal(t, tt.wantVal, val)
		})
	}
}

func TestForFormat(t *testing.T) {
	assert.Equal(t, detector.FormatTimestampStats, ForFormat(detector.FormatTimestampStats).Format())
	assert.Equal(t, detector.FormatSimpleCSV, ForFormat(detector.FormatSimpleCSV).Format())
	assert.Equal(t, detector.FormatDetailedLog, ForFormat(detector.FormatDetailedLog).Format())
	assert.Nil(t, ForFormat(detector.FormatUnknown))
}

func TestParse_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeFile(t, "stats.log", "2025-01-01 00:00:00 pump_pressure 15 40.10 50.20 45.15\n")
	_, err := NewTimestampStatsParser().Parse(ctx, path, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, SplitLines(""))
	assert.Equal(t, []string{"a", "b"}, SplitLines("a\r\nb\n"))
	assert.Equal(t, []string{"a", "", "b"}, SplitLines("a\n\nb"))
}

func TestReadFile_ReplacesInvalidUTF8(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"with byte order mark", "\xef\xbb\xbfok\xff\n"},
		{"without byte order mark", "ok\xff\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "bad.log", tt.content)

			content, err := ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, "ok\uFFFD\n", content)
		})
	}
}
