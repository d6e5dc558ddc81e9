// Package undolog maintains the append-only record of successful
// transfers that makes a run reversible. The log is a plain-text file
// with one pipe-delimited record per line:
//
//	ACTION|ABSOLUTE_SOURCE_PATH|ABSOLUTE_DEST_PATH
//
// Each append is a single write-and-sync so a crash mid-run loses at
// most the last record. The engine assumes single-writer access: one
// run or one undo pass at a time.
package undolog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrMalformedRecord indicates a log line with the wrong field count.
var ErrMalformedRecord = errors.New("malformed undo record")

// Record is one line of the undo log.
type Record struct {
	// Action is the uppercase transfer action ("MOVE" or "COPY").
	Action string

	// Source is the absolute original path of the file.
	Source string

	// Dest is the absolute path the file was transferred to.
	Dest string
}

// String renders the record in wire format, without the trailing newline.
func (r Record) String() string {
	return fmt.Sprintf("%s|%s|%s", strings.ToUpper(r.Action), r.Source, r.Dest)
}

// ParseRecord parses one log line. Lines with a field count other than
// three are rejected with ErrMalformedRecord.
func ParseRecord(line string) (Record, error) {
	parts := strings.Split(strings.TrimRight(line, "\r\n"), "|")
	if len(parts) != 3 {
		return Record{}, fmt.Errorf("%w: %q", ErrMalformedRecord, line)
	}
	return Record{Action: parts[0], Source: parts[1], Dest: parts[2]}, nil
}

// Log is an undo log bound to a file path. The zero value is not
// usable; construct with New.
type Log struct {
	path string
}

// New creates a Log at the given path. The file is not created until
// the first append.
func New(path string) (*Log, error) {
	if path == "" {
		return nil, errors.New("undo log path cannot be empty")
	}
	return &Log{path: path}, nil
}

// Path returns the log file location.
func (l *Log) Path() string {
	return l.path
}

// Exists reports whether the log file is present on disk.
func (l *Log) Exists() bool {
	_, err := os.Stat(l.path)
	return err == nil
}

// Append writes one record followed by a newline and syncs the file.
func (l *Log) Append(r Record) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating undo log directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening undo log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(r.String() + "\n"); err != nil {
		return fmt.Errorf("writing undo record: %w", err)
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing undo log: %w", err)
	}
	return nil
}

// Lines returns the raw log lines in append order. A missing log file
// yields an empty slice, not an error.
func (l *Log) Lines() ([]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading undo log: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading undo log: %w", err)
	}
	return lines, nil
}

// Clear removes the log file. A missing file is not an error.
func (l *Log) Clear() error {
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing undo log: %w", err)
	}
	return nil
}
