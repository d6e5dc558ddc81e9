package undolog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRecordString(t *testing.T) {
	r := Record{Action: "move", Source: "/home/u/a.txt", Dest: "/home/u/Organized/Documents/a.txt"}
	want := "MOVE|/home/u/a.txt|/home/u/Organized/Documents/a.txt"
	if got := r.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    Record
		wantErr bool
	}{
		{
			name: "valid",
			line: "MOVE|/a/b.txt|/a/Organized/b.txt",
			want: Record{Action: "MOVE", Source: "/a/b.txt", Dest: "/a/Organized/b.txt"},
		},
		{
			name: "trailing newline stripped",
			line: "COPY|/a/b.txt|/a/c.txt\n",
			want: Record{Action: "COPY", Source: "/a/b.txt", Dest: "/a/c.txt"},
		},
		{name: "too few fields", line: "MOVE|/a/b.txt", wantErr: true},
		{name: "too many fields", line: "MOVE|/a|b.txt|/c", wantErr: true},
		{name: "empty", line: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRecord(tt.line)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedRecord) {
					t.Fatalf("ParseRecord(%q) error = %v, want ErrMalformedRecord", tt.line, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRecord(%q) error = %v", tt.line, err)
			}
			if got != tt.want {
				t.Errorf("ParseRecord(%q) = %+v, want %+v", tt.line, got, tt.want)
			}
		})
	}
}

func TestNewRejectsEmptyPath(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("New(\"\") error = nil")
	}
}

func TestAppendAndLines(t *testing.T) {
	log, err := New(filepath.Join(t.TempDir(), "state", "undo.log"))
	if err != nil {
		t.Fatal(err)
	}

	if log.Exists() {
		t.Fatal("Exists() = true before first append")
	}

	records := []Record{
		{Action: "MOVE", Source: "/src/one.txt", Dest: "/dst/one.txt"},
		{Action: "MOVE", Source: "/src/two.txt", Dest: "/dst/two.txt"},
		{Action: "COPY", Source: "/src/three.txt", Dest: "/dst/three.txt"},
	}
	for _, r := range records {
		if err := log.Append(r); err != nil {
			t.Fatalf("Append(%v) error = %v", r, err)
		}
	}

	if !log.Exists() {
		t.Fatal("Exists() = false after append")
	}

	lines, err := log.Lines()
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	if len(lines) != len(records) {
		t.Fatalf("Lines() returned %d lines, want %d", len(lines), len(records))
	}
	for i, line := range lines {
		if line != records[i].String() {
			t.Errorf("line %d = %q, want %q", i, line, records[i].String())
		}
	}
}

func TestLinesMissingFile(t *testing.T) {
	log, err := New(filepath.Join(t.TempDir(), "missing.log"))
	if err != nil {
		t.Fatal(err)
	}

	lines, err := log.Lines()
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	if lines != nil {
		t.Errorf("Lines() = %v, want nil", lines)
	}
}

func TestLinesSkipsBlankLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "undo.log")
	content := "MOVE|/a|/b\n\n  \nMOVE|/c|/d\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	log, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	lines, err := log.Lines()
	if err != nil {
		t.Fatalf("Lines() error = %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("Lines() returned %d lines, want 2: %v", len(lines), lines)
	}
}

func TestClear(t *testing.T) {
	log, err := New(filepath.Join(t.TempDir(), "undo.log"))
	if err != nil {
		t.Fatal(err)
	}

	// Clearing a missing log is a no-op.
	if err := log.Clear(); err != nil {
		t.Fatalf("Clear() on missing file error = %v", err)
	}

	if err := log.Append(Record{Action: "MOVE", Source: "/a", Dest: "/b"}); err != nil {
		t.Fatal(err)
	}
	if err := log.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if log.Exists() {
		t.Error("Exists() = true after Clear")
	}
}
