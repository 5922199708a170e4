package filecheck

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// sparseFile creates a file of the given size without writing its content.
func sparseFile(t *testing.T, name string, size int64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	require.NoError(t, os.Truncate(path, size))
	return path
}

func TestValidate_Valid(t *testing.T) {
	path := writeFile(t, t.TempDir(), "water.log", "2025-01-01 00:00:00 pump 1 1.0 2.0 1.5\n")

	ok, reason := Validate(path)
	assert.True(t, ok)
	assert.Equal(t, ReasonValid, reason)
}

func TestValidate_Failures(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "logs.log")
	require.NoError(t, os.Mkdir(sub, 0755))
	pdf := writeFile(t, dir, "report.pdf", "%PDF")

	tests := []struct {
		name       string
		path       string
		wantReason string
	}{
		{"missing", filepath.Join(dir, "nope.log"), "File does not exist"},
		{"directory", sub, "Path is not a file"},
		{"extension", pdf, "Unsupported file extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Validate(tt.path)
			assert.False(t, ok)
			assert.True(t, strings.HasPrefix(reason, tt.wantReason), "reason = %q", reason)
		})
	}
}

func TestValidate_ExtensionCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"A.LOG", "b.Txt", "c.CSV", "d.dat"} {
		path := writeFile(t, dir, name, "x")
		ok, reason := Validate(path)
		assert.True(t, ok, "%s: %s", name, reason)
	}
}

func TestValidate_SizeBoundary(t *testing.T) {
	exact := sparseFile(t, "exact.log", DefaultMaxFileSize)
	ok, reason := Validate(exact)
	assert.True(t, ok, reason)

	over := sparseFile(t, "over.log", DefaultMaxFileSize+1)
	ok, reason = Validate(over)
	assert.False(t, ok)
	assert.Contains(t, reason, "File too large")
	assert.Contains(t, reason, "524,288,001 bytes")
}

func TestValidate_EmptyFileIsReadable(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.log", "")

	ok, _ := Validate(path)
	assert.True(t, ok)
}

func TestValidate_InvalidEncodingIsTolerated(t *testing.T) {
	path := writeFile(t, t.TempDir(), "binary.dat", "\xff\xfe\x00\x01bad bytes")

	ok, _ := Validate(path)
	assert.True(t, ok)
}

func TestValidator_Options(t *testing.T) {
	v := New(WithExtensions([]string{"JSON", ".ndjson"}), WithMaxSize(10), WithProbeBytes(4))

	assert.Equal(t, []string{".json", ".ndjson"}, v.Extensions())
	assert.Equal(t, int64(10), v.MaxSize())

	dir := t.TempDir()
	ok, _ := v.Validate(writeFile(t, dir, "a.json", "{}"))
	assert.True(t, ok)

	ok, reason := v.Validate(writeFile(t, dir, "b.json", "0123456789A"))
	assert.False(t, ok)
	assert.Contains(t, reason, "File too large")

	ok, _ = v.Validate(writeFile(t, dir, "c.log", "x"))
	assert.False(t, ok)
}

func TestValidator_IgnoresInvalidOptions(t *testing.T) {
	v := New(WithExtensions(nil), WithMaxSize(0), WithProbeBytes(-1))

	assert.Equal(t, []string{".csv", ".dat", ".log", ".txt"}, v.Extensions())
	assert.Equal(t, DefaultMaxFileSize, v.MaxSize())
}

func TestInfo(t *testing.T) {
	path := writeFile(t, t.TempDir(), "Water.LOG", "hello world\n")

	meta, ok := Info(path)
	require.True(t, ok)

	assert.Equal(t, "Water.LOG", meta.Name)
	assert.Equal(t, int64(12), meta.Size)
	assert.Equal(t, 0.0, meta.SizeMB)
	assert.Equal(t, "12 B", meta.SizeHuman)
	assert.Equal(t, ".log", meta.Extension)
	assert.True(t, strings.HasPrefix(meta.MIMEType, "text/plain"), "mime = %q", meta.MIMEType)
	assert.False(t, meta.Modified.IsZero())
}

func TestInfo_SizeMB(t *testing.T) {
	path := sparseFile(t, "big.dat", 3*1024*1024/2)

	meta, ok := Info(path)
	require.True(t, ok)
	assert.Equal(t, 1.5, meta.SizeMB)
}

func TestInfo_Missing(t *testing.T) {
	meta, ok := Info(filepath.Join(t.TempDir(), "missing.log"))
	assert.False(t, ok)
	assert.Nil(t, meta)
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.log", "x")
	b := writeFile(t, dir, "b.log", "x")
	c := writeFile(t, dir, "c.txt", "x")
	missing := filepath.Join(dir, "missing.log")

	got, err := ExpandPaths([]string{c, filepath.Join(dir, "*.log"), a, missing})
	require.NoError(t, err)
	assert.Equal(t, []string{c, a, b, missing}, got)
}

func TestExpandPaths_BadPattern(t *testing.T) {
	_, err := ExpandPaths([]string{"[unclosed"})
	assert.Error(t, err)
}
