package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed line of the application log.
type Entry struct {
	Time    string
	Level   string
	Message string
}

// Parse splits a line written by the logging package
// ("<RFC3339> [LEVEL] message"). Lines in any other shape come back with
// only Message set.
func Parse(line string) Entry {
	ts, rest, ok := strings.Cut(line, " ")
	if !ok || !strings.HasPrefix(rest, "[") {
		return Entry{Message: line}
	}
	level, msg, ok := strings.Cut(rest[1:], "] ")
	if !ok {
		level, ok = strings.CutSuffix(rest[1:], "]")
		if !ok {
			return Entry{Message: line}
		}
	}
	if level == "" || strings.ContainsAny(level, " []") {
		return Entry{Message: line}
	}
	return Entry{Time: ts, Level: level, Message: msg}
}

// ParseLines parses every line.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, len(lines))
	for i, line := range lines {
		out[i] = Parse(line)
	}
	return out
}
