package parser

import (
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ReadFile reads a whole file as text. Invalid UTF-8 is replaced with
// U+FFFD and a leading byte order mark is dropped, so decoding never fails.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return "", err
	}
	defer f.Close()

	decoded := transform.NewReader(f, unicode.UTF8BOM.NewDecoder())
	data, err := io.ReadAll(decoded)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ReadLines reads a file and splits it into lines without their terminators.
// A trailing newline does not produce an extra empty line.
func ReadLines(path string) ([]string, error) {
	content, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return SplitLines(content), nil
}

// SplitLines splits text on \n, dropping any \r before it.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}

	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
