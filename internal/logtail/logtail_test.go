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
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "test.log")

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

func TestReadMissingFile(t *testing.T) {
	got, err := Read(filepath.Join(t.TempDir(), "absent.log"), 10)
	if err != nil || got != nil {
		t.Fatalf("Read() = %v, %v; want nil, nil", got, err)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Entry
		fields string
	}{
		{
			name:  "logfmt record",
			input: `time="2025-10-08 21:01:05" level=warn prefix=ledgerdeck msg="list fetch failed" resource=vendors error="connection refused"`,
			want: Entry{
				Time:    "2025-10-08 21:01:05",
				Level:   "warn",
				Message: "list fetch failed",
				Fields:  []Field{{"error", "connection refused"}, {"resource", "vendors"}},
			},
			fields: `error="connection refused" resource=vendors`,
		},
		{
			name:  "upper-case level",
			input: `level=INFO msg=starting`,
			want:  Entry{Level: "info", Message: "starting"},
		},
		{
			name:  "plain text",
			input: "  panic: something broke  ",
			want:  Entry{Message: "panic: something broke"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			tt.want.Raw = tt.input
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %#v, want %#v", got, tt.want)
			}
			if fs := got.FieldString(); fs != tt.fields {
				t.Errorf("FieldString() = %q, want %q", fs, tt.fields)
			}
		})
	}
}

func TestParseLines(t *testing.T) {
	entries := ParseLines([]string{"level=info msg=one", "", "   ", "level=error msg=two"})
	if len(entries) != 2 {
		t.Fatalf("ParseLines() returned %d entries, want 2", len(entries))
	}
	if entries[1].Level != "error" || entries[1].Message != "two" {
		t.Errorf("entries[1] = %#v", entries[1])
	}
}
