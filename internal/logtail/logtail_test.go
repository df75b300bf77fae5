package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	// Create a temporary log file
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

	// Write 10 lines of content
	var content strings.Builder
	var expectedAll []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		expectedAll = append(expectedAll, line)
	}

	if err := os.WriteFile(logPath, []byte(content.String()), 0644); err != nil {
		t.Fatalf("failed to create test log file: %v", err)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{
			name:     "read all (0)",
			maxLines: 0,
			expected: expectedAll,
		},
		{
			name:     "read all (negative)",
			maxLines: -1,
			expected: expectedAll,
		},
		{
			name:     "read partial (5)",
			maxLines: 5,
			expected: expectedAll[5:],
		},
		{
			name:     "read exactly all (10)",
			maxLines: 10,
			expected: expectedAll,
		},
		{
			name:     "read more than exists (20)",
			maxLines: 20,
			expected: expectedAll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(logPath, tt.maxLines)
			if err != nil {
				t.Fatalf("Read() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Read() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v, want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Entry
	}{
		{
			name:     "empty line",
			input:    "",
			expected: Entry{},
		},
		{
			name:     "warn line",
			input:    "2025-03-14T15:09:26Z [WARN] persist board-pins: quota exceeded",
			expected: Entry{Time: "2025-03-14T15:09:26Z", Level: "WARN", Message: "persist board-pins: quota exceeded"},
		},
		{
			name:     "empty message",
			input:    "2025-03-14T15:09:26Z [INFO]",
			expected: Entry{Time: "2025-03-14T15:09:26Z", Level: "INFO"},
		},
		{
			name:     "brackets inside message",
			input:    "2025-03-14T15:09:26Z [DEBUG] moved [3] pins",
			expected: Entry{Time: "2025-03-14T15:09:26Z", Level: "DEBUG", Message: "moved [3] pins"},
		},
		{
			name:     "foreign format",
			input:    "panic: runtime error",
			expected: Entry{Message: "panic: runtime error"},
		},
		{
			name:     "unterminated level",
			input:    "2025-03-14T15:09:26Z [WARN oops",
			expected: Entry{Message: "2025-03-14T15:09:26Z [WARN oops"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input); got != tt.expected {
				t.Errorf("Parse() = %+v, want %+v", got, tt.expected)
			}
		})
	}
}

func TestParseLines(t *testing.T) {
	got := ParseLines([]string{
		"2025-03-14T15:09:26Z [INFO] started",
		"stray output",
	})
	if len(got) != 2 || got[0].Level != "INFO" || got[1].Message != "stray output" {
		t.Fatalf("ParseLines() = %+v", got)
	}
}
