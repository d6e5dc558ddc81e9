// Package types provides core data types for the tidy file organizer.
// It defines the closed sets of organizing modes, transfer actions, and
// conflict policies, along with the statistics records returned by runs
// and undo passes.
package types

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
)

// Size constants for binary (IEC) units.
const (
	KiB int64 = 1024
	MiB int64 = 1024 * KiB
)

// Mode selects the policy used to compute a file's destination sub-path.
type Mode int

const (
	// ModeType groups files by extension category (Images, Documents, ...).
	ModeType Mode = iota
	// ModeName places each file in a folder named after its stem.
	ModeName
	// ModeDate groups files into Year/MM-MonthName folders by mtime.
	ModeDate
	// ModeDay groups files into Year/MM/DD folders by mtime.
	ModeDay
	// ModeSize groups files into small/medium/large buckets.
	ModeSize
	// ModeFirstLetter groups files by the first letter of their stem.
	ModeFirstLetter
)

// Mode string constants.
const (
	modeType        = "type"
	modeName        = "name"
	modeDate        = "date"
	modeDay         = "day"
	modeSize        = "size"
	modeFirstLetter = "first_letter"
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeType:
		return modeType
	case ModeName:
		return modeName
	case ModeDate:
		return modeDate
	case ModeDay:
		return modeDay
	case ModeSize:
		return modeSize
	case ModeFirstLetter:
		return modeFirstLetter
	default:
		return modeType
	}
}

// ErrInvalidMode indicates that the mode string could not be parsed.
var ErrInvalidMode = errors.New("invalid organizing mode")

// ParseMode parses a string into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case modeType:
		return ModeType, nil
	case modeName:
		return ModeName, nil
	case modeDate:
		return ModeDate, nil
	case modeDay:
		return ModeDay, nil
	case modeSize:
		return ModeSize, nil
	case modeFirstLetter, "first-letter", "letter":
		return ModeFirstLetter, nil
	default:
		return ModeType, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// Modes returns all valid mode names, for help text and completion.
func Modes() []string {
	return []string{modeType, modeName, modeDate, modeDay, modeSize, modeFirstLetter}
}

// Action specifies how a file is transferred to its destination.
type Action int

const (
	// ActionMove relocates the file, removing the source.
	ActionMove Action = iota
	// ActionCopy duplicates the file, preserving metadata where possible.
	ActionCopy
)

// String returns the string representation of the action.
func (a Action) String() string {
	if a == ActionCopy {
		return "copy"
	}
	return "move"
}

// ErrInvalidAction indicates that the action string could not be parsed.
var ErrInvalidAction = errors.New("invalid transfer action")

// ParseAction parses a string into an Action.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "move":
		return ActionMove, nil
	case "copy":
		return ActionCopy, nil
	default:
		return ActionMove, fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
}

// ConflictPolicy decides what happens when a destination path already exists.
type ConflictPolicy int

const (
	// ConflictSkip leaves both the source and the existing destination alone.
	ConflictSkip ConflictPolicy = iota
	// ConflictOverwrite removes the existing destination before transfer.
	ConflictOverwrite
	// ConflictRename probes "name (1).ext", "name (2).ext", ... for a free path.
	ConflictRename
)

// String returns the string representation of the conflict policy.
func (p ConflictPolicy) String() string {
	switch p {
	case ConflictOverwrite:
		return "overwrite"
	case ConflictRename:
		return "rename"
	default:
		return "skip"
	}
}

// ErrInvalidConflictPolicy indicates that the policy string could not be parsed.
var ErrInvalidConflictPolicy = errors.New("invalid conflict policy")

// ParseConflictPolicy parses a string into a ConflictPolicy.
func ParseConflictPolicy(s string) (ConflictPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skip":
		return ConflictSkip, nil
	case "overwrite":
		return ConflictOverwrite, nil
	case "rename":
		return ConflictRename, nil
	default:
		return ConflictSkip, fmt.Errorf("%w: %q", ErrInvalidConflictPolicy, s)
	}
}

// Outcome classifies the result of processing a single file.
type Outcome int

const (
	// OutcomeSuccess means the file was transferred.
	OutcomeSuccess Outcome = iota
	// OutcomeFailure means the transfer was attempted and failed.
	OutcomeFailure
	// OutcomeSkip means the file was intentionally left in place.
	OutcomeSkip
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeFailure:
		return "failure"
	case OutcomeSkip:
		return "skip"
	default:
		return "success"
	}
}

// RunProgress is invoked after each processed file during a run.
// Index is 1-based; total is the number of files discovered.
type RunProgress func(index, total int, path string, outcome Outcome)

// UndoProgress is invoked after each undo log line is processed.
// Index is 1-based and follows the reverse processing order.
type UndoProgress func(index, total int)

// RunStatistics aggregates the counters for one organize run.
// Processed always equals Succeeded+Failed+Skipped and may be less
// than Total when the run was cancelled.
type RunStatistics struct {
	// Total is the number of candidate files discovered.
	Total int `json:"total"`

	// Processed is the number of files the run actually considered.
	Processed int `json:"processed"`

	// Succeeded is the number of completed transfers.
	Succeeded int `json:"succeeded"`

	// Failed is the number of files whose transfer failed.
	Failed int `json:"failed"`

	// Skipped is the number of files intentionally left in place.
	Skipped int `json:"skipped"`

	// BytesMoved is the total size of successfully transferred files.
	BytesMoved int64 `json:"bytes_moved"`

	// Err holds the validation or configuration error that prevented
	// the run from starting, if any.
	Err string `json:"error,omitempty"`
}

// Cancelled reports whether the run stopped before considering every file.
func (s RunStatistics) Cancelled() bool {
	return s.Err == "" && s.Processed < s.Total
}

// HumanBytes returns BytesMoved formatted with binary units.
func (s RunStatistics) HumanBytes() string {
	return humanize.IBytes(uint64(s.BytesMoved))
}

// UndoStatistics aggregates the counters for one undo pass.
type UndoStatistics struct {
	// Total is the number of undo log lines read.
	Total int `json:"total"`

	// Succeeded is the number of files restored to their original path.
	Succeeded int `json:"succeeded"`

	// Failed counts malformed lines, missing destinations, and restore errors.
	Failed int `json:"failed"`
}
