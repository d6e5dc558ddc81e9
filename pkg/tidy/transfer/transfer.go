// Package transfer performs individual file moves and copies, recording
// each successful real transfer in the undo log.
package transfer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jamesainslie/tidy/pkg/tidy/logging"
	"github.com/jamesainslie/tidy/pkg/tidy/types"
	"github.com/jamesainslie/tidy/pkg/tidy/undolog"
)

// Executor transfers files and appends undo records. One Executor
// serves one run; it is not safe for concurrent use.
type Executor struct {
	log    *undolog.Log
	logger *logging.Logger
}

// NewExecutor creates an Executor appending to the given undo log.
// A nil log disables undo recording (used by dry-run-only callers).
func NewExecutor(log *undolog.Log, logger *logging.Logger) *Executor {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Executor{log: log, logger: logger}
}

// Transfer moves or copies src to dst, creating dst's parent directories
// first. In dry-run mode it only reports intent and touches nothing. On
// a successful real transfer an undo record is appended; on failure no
// record is written and the error is returned for per-file accounting.
func (e *Executor) Transfer(src, dst string, action types.Action, dryRun bool) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	if dryRun {
		e.logger.Info("dry-run", "action", action.String(), "from", src, "to", dst)
		return nil
	}

	switch action {
	case types.ActionMove:
		if err := moveFile(src, dst); err != nil {
			return fmt.Errorf("move %s: %w", src, err)
		}
	case types.ActionCopy:
		if err := copyFile(src, dst); err != nil {
			return fmt.Errorf("copy %s: %w", src, err)
		}
	default:
		return fmt.Errorf("%w: %d", types.ErrInvalidAction, action)
	}

	e.logger.Info("transferred", "action", action.String(), "from", src, "to", dst)
	e.appendUndo(action, src, dst)
	return nil
}

// appendUndo records a completed transfer. Append failures are logged
// and do not fail the transfer, matching the best-effort nature of the
// undo facility.
func (e *Executor) appendUndo(action types.Action, src, dst string) {
	if e.log == nil {
		return
	}

	absSrc, err := filepath.Abs(src)
	if err != nil {
		absSrc = src
	}
	absDst, err := filepath.Abs(dst)
	if err != nil {
		absDst = dst
	}

	rec := undolog.Record{Action: action.String(), Source: absSrc, Dest: absDst}
	if err := e.log.Append(rec); err != nil {
		e.logger.Error("could not write undo record", "record", rec.String(), "error", err)
	}
}

// Move relocates src to dst without undo recording. The undo engine
// uses it to restore files to their original locations.
func Move(src, dst string) error {
	return moveFile(src, dst)
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// rename crosses filesystems.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("removing source after copy: %w", err)
	}
	return nil
}

// copyFile copies src to dst, preserving the mode and modification time.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	// Best effort metadata preservation.
	_ = os.Chmod(dst, info.Mode().Perm())
	_ = os.Chtimes(dst, info.ModTime(), info.ModTime())
	return nil
}
