package detector

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDetector_DetectFromLines_TimestampStats(t *testing.T) {
	lines := []string{
		"2025-01-01 00:00:00 pump_pressure 15 40.10 50.20 45.15",
		"2025-01-01 01:00:00 pump_pressure 12 41.00 49.80 45.02",
	}

	d := New()
	result := d.DetectFromLines(lines)

	if result.Format != FormatTimestampStats {
		t.Fatalf("Expected %s, got %s", FormatTimestampStats, result.Format)
	}
	if result.MatchIndex != 0 {
		t.Errorf("Expected match index 0, got %d", result.MatchIndex)
	}
}

func TestDetector_DetectFromLines_TimestampStatsMultipleSpaces(t *testing.T) {
	lines := []string{"2025-01-01  00:00:00   flow_rate  3   12.10  13.90  12.95"}

	result := New().DetectFromLines(lines)

	if result.Format != FormatTimestampStats {
		t.Errorf("Expected %s, got %s", FormatTimestampStats, result.Format)
	}
}

func TestDetector_DetectFromLines_SimpleCSV(t *testing.T) {
	lines := []string{
		"timestamp,parameter,value",
		"2025-01-01 00:00:00,pump_pressure,45.2",
	}

	result := New().DetectFromLines(lines)

	if result.Format != FormatSimpleCSV {
		t.Errorf("Expected %s, got %s", FormatSimpleCSV, result.Format)
	}
}

func TestDetector_DetectFromLines_TwoColumnsIsNotCSV(t *testing.T) {
	lines := []string{
		"Date,Value",
		"2025-01-01,1.0",
	}

	result := New().DetectFromLines(lines)

	if result.Format != FormatUnknown {
		t.Errorf("Expected %s, got %s", FormatUnknown, result.Format)
	}
}

func TestDetector_DetectFromLines_DetailedLog(t *testing.T) {
	lines := []string{
		"[2025-01-01 00:00:00] pump_pressure: 45.2",
		"[2025-01-01 00:00:00] flow_rate: 12.5",
	}

	result := New().DetectFromLines(lines)

	if result.Format != FormatDetailedLog {
		t.Errorf("Expected %s, got %s", FormatDetailedLog, result.Format)
	}
}

func TestDetector_DetectFromLines_Unknown(t *testing.T) {
	lines := []string{
		"No structure here",
		"Just some text",
	}

	result := New().DetectFromLines(lines)

	if result.HasMatch() {
		t.Errorf("Expected no match, got %s", result.Format)
	}
	if result.MatchIndex != -1 {
		t.Errorf("Expected match index -1, got %d", result.MatchIndex)
	}
	if result.MatchedLine() != "" {
		t.Errorf("Expected empty matched line, got %q", result.MatchedLine())
	}
}

func TestDetector_DetectFromLines_Empty(t *testing.T) {
	result := New().DetectFromLines(nil)

	if result.Format != FormatUnknown {
		t.Errorf("Expected %s for empty input, got %s", FormatUnknown, result.Format)
	}
}

func TestDetector_Priority(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  Format
	}{
		{
			name:  "csv line before bracket line",
			lines: []string{"a,b,c", "[x] y: 1"},
			want:  FormatSimpleCSV,
		},
		{
			name:  "bracket line before csv line",
			lines: []string{"[x] y: 1", "a,b,c"},
			want:  FormatSimpleCSV,
		},
		{
			name:  "stats line last still wins",
			lines: []string{"a,b,c", "[x] y: 1", "2025-01-01 00:00:00 p 1 1.0 2.0 1.5"},
			want:  FormatTimestampStats,
		},
		{
			name:  "bracket line containing commas",
			lines: []string{"[2025-01-01] a, b, c: 1"},
			want:  FormatSimpleCSV,
		},
	}

	d := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.DetectFromLines(tt.lines).Format
			if got != tt.want {
				t.Errorf("DetectFromLines() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetector_MatchedLine(t *testing.T) {
	lines := []string{"# header", "", "[t] p: 1"}

	result := New().DetectFromLines(lines)

	if result.MatchedLine() != "[t] p: 1" {
		t.Errorf("MatchedLine() = %q, want %q", result.MatchedLine(), "[t] p: 1")
	}
}

func TestDetector_WithSampleSize(t *testing.T) {
	d := New(WithSampleSize(10))
	if d.sampleSize != 10 {
		t.Errorf("Expected sample size 10, got %d", d.sampleSize)
	}
}

func TestDetector_WithSampleSize_Invalid(t *testing.T) {
	d := New(WithSampleSize(-1))
	if d.sampleSize != DefaultSampleSize {
		t.Errorf("Expected default sample size %d, got %d", DefaultSampleSize, d.sampleSize)
	}
}

func TestDetector_DetectFromFile(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "water.log")
	content := `# HALog Sample LINAC Water System Log File
# Format: YYYY-MM-DD HH:MM:SS parameter count min max avg
#
2025-01-01 00:00:00 pump_pressure 15 40.10 50.20 45.15
`
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	result := New().DetectFromFile(context.Background(), tmpFile)

	if result.ReadErr != nil {
		t.Fatalf("Unexpected read error: %v", result.ReadErr)
	}
	if result.Format != FormatTimestampStats {
		t.Errorf("Expected %s, got %s", FormatTimestampStats, result.Format)
	}
	if len(result.SampledLines) != 4 {
		t.Errorf("Expected 4 sampled lines, got %d", len(result.SampledLines))
	}
}

func TestDetector_DetectFromFile_OnlyFirstLinesSampled(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "late.log")
	content := "one\ntwo\nthree\nfour\nfive\n[2025-01-01 00:00:00] p: 1\n"
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	result := New().DetectFromFile(context.Background(), tmpFile)

	if result.Format != FormatUnknown {
		t.Errorf("Expected %s, got %s", FormatUnknown, result.Format)
	}
	if len(result.SampledLines) != DefaultSampleSize {
		t.Errorf("Expected %d sampled lines, got %d", DefaultSampleSize, len(result.SampledLines))
	}
}

func TestDetector_DetectFromFile_InvalidUTF8(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "binary.log")
	content := []byte("[2025-01-01 00:00:00] pump\xff\xfe: 45.2\n")
	if err := os.WriteFile(tmpFile, content, 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	result := New().DetectFromFile(context.Background(), tmpFile)

	if result.Format != FormatDetailedLog {
		t.Errorf("Expected %s, got %s", FormatDetailedLog, result.Format)
	}
}

func TestDetector_DetectFromFile_InvalidUTF8AfterBOM(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "bom.log")
	content := []byte("\xef\xbb\xbf[2025-01-01 00:00:00] pump\xff: 45.2\n")
	if err := os.WriteFile(tmpFile, content, 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}

	result := New().DetectFromFile(context.Background(), tmpFile)

	if result.Format != FormatDetailedLog {
		t.Errorf("Expected %s, got %s", FormatDetailedLog, result.Format)
	}
	want := "[2025-01-01 00:00:00] pump\uFFFD: 45.2"
	if len(result.SampledLines) != 1 || result.SampledLines[0] != want {
		t.Errorf("SampledLines = %q, want [%q]", result.SampledLines, want)
	}
}

func TestDetector_DetectFromFile_NotFound(t *testing.T) {
	result := New().DetectFromFile(context.Background(), "/nonexistent/file.log")

	if result.Format != FormatUnknown {
		t.Errorf("Expected %s for missing file, got %s", FormatUnknown, result.Format)
	}
	if result.ReadErr == nil {
		t.Error("Expected ReadErr to be recorded")
	}
}

func TestDetector_Detect_Directory(t *testing.T) {
	if got := New().Detect(context.Background(), t.TempDir()); got != FormatUnknown {
		t.Errorf("Detect(dir) = %s, want %s", got, FormatUnknown)
	}
}

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()

	want := []Format{FormatTimestampStats, FormatSimpleCSV, FormatDetailedLog}
	if len(rules) != len(want) {
		t.Fatalf("Expected %d rules, got %d", len(want), len(rules))
	}

	for i, r := range rules {
		if r.Format != want[i] {
			t.Errorf("rules[%d] = %s, want %s", i, r.Format, want[i])
		}
		if r.Match == nil {
			t.Errorf("Rule %s has nil matcher", r.Format)
		}
		for _, ex := range r.Examples {
			if !r.Match(ex) {
				t.Errorf("Rule %s does not match its own example %q", r.Format, ex)
			}
		}
	}
}
