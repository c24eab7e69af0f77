package nav

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Line is one non-blank line of a command script.
type Line struct {
	Number int    // 1-based line number in the source
	Text   string // Line content without the trailing newline
}

// ReadScript reads a newline-delimited command script.
// Blank and whitespace-only lines are skipped; a trailing '\r' is trimmed.
// Lines are not parsed here so callers can report errors by line number.
func ReadScript(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	n := 0
	for scanner.Scan() {
		n++
		text := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		lines = append(lines, Line{Number: n, Text: text})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return lines, nil
}

// LoadScript reads a command script from disk.
func LoadScript(path string) ([]Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script %s: %w", path, err)
	}
	defer f.Close()

	lines, err := ReadScript(f)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return lines, nil
}

// Texts returns the raw text of each line.
func Texts(lines []Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
