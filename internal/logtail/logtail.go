package logtail

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-logfmt/logfmt"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error. maxLines <= 0 returns every line.
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

// Entry is one decoded logfmt record.
type Entry struct {
	Time    string
	Level   string
	Message string
	// Fields holds the remaining key/value pairs in key order.
	Fields []Field
	// Raw is the original line.
	Raw string
}

// Field is one extra key/value pair of an Entry.
type Field struct {
	Key   string
	Value string
}

// Parse decodes a logfmt line. Lines that are not logfmt come back with only
// Message and Raw set, so plain text still displays.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	dec := logfmt.NewDecoder(strings.NewReader(line))
	if !dec.ScanRecord() {
		entry.Message = strings.TrimSpace(line)
		return entry
	}
	structured := false
	for dec.ScanKeyval() {
		key, value := string(dec.Key()), string(dec.Value())
		switch key {
		case "time", "ts":
			entry.Time = value
			structured = true
		case "level", "lvl":
			entry.Level = strings.ToLower(value)
			structured = true
		case "msg", "message":
			entry.Message = value
			structured = true
		case "prefix":
		default:
			entry.Fields = append(entry.Fields, Field{Key: key, Value: value})
		}
	}
	if dec.Err() != nil || !structured {
		return Entry{Raw: line, Message: strings.TrimSpace(line)}
	}
	sort.SliceStable(entry.Fields, func(i, j int) bool { return entry.Fields[i].Key < entry.Fields[j].Key })
	return entry
}

// ParseLines decodes every non-blank line.
func ParseLines(lines []string) []Entry {
	out := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		out = append(out, Parse(line))
	}
	return out
}

// FieldString renders the extra fields back as logfmt.
func (e Entry) FieldString() string {
	if len(e.Fields) == 0 {
		return ""
	}
	var buf bytes.Buffer
	enc := logfmt.NewEncoder(&buf)
	for _, f := range e.Fields {
		if err := enc.EncodeKeyval(f.Key, f.Value); err != nil {
			continue
		}
	}
	return buf.String()
}
