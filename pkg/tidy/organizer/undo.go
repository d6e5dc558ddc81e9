package organizer

import (
	"os"
	"path/filepath"

	"github.com/jamesainslie/tidy/pkg/tidy/logging"
	"github.com/jamesainslie/tidy/pkg/tidy/transfer"
	"github.com/jamesainslie/tidy/pkg/tidy/types"
	"github.com/jamesainslie/tidy/pkg/tidy/undolog"
)

// Undo reverses the transfers recorded in the log, most recent first.
// Later transfers may have created the directories or numbered siblings
// that earlier destinations depend on, so the reverse order matters.
// Malformed lines and missing destinations count as failures without
// stopping the pass. The log is cleared afterward regardless of partial
// failure.
func Undo(log *undolog.Log, onProgress types.UndoProgress, logger *logging.Logger) types.UndoStatistics {
	if logger == nil {
		logger = logging.Discard()
	}

	if !log.Exists() {
		logger.Info("no undo log found, nothing to revert")
		if onProgress != nil {
			onProgress(0, 0)
		}
		return types.UndoStatistics{}
	}

	lines, err := log.Lines()
	if err != nil {
		logger.Error("could not read undo log", "error", err)
		return types.UndoStatistics{}
	}

	stats := types.UndoStatistics{Total: len(lines)}

	for i := len(lines) - 1; i >= 0; i-- {
		if revertLine(lines[i], logger) {
			stats.Succeeded++
		} else {
			stats.Failed++
		}
		if onProgress != nil {
			onProgress(len(lines)-i, stats.Total)
		}
	}

	if err := log.Clear(); err != nil {
		logger.Error("could not clear undo log", "error", err)
	} else {
		logger.Info("undo log cleared")
	}

	logger.Info("undo finished",
		"total", stats.Total, "succeeded", stats.Succeeded, "failed", stats.Failed)
	return stats
}

// revertLine restores one recorded transfer. It returns false for
// malformed lines, missing destinations, or restore errors.
func revertLine(line string, logger *logging.Logger) bool {
	rec, err := undolog.ParseRecord(line)
	if err != nil {
		logger.Warn("invalid undo log line", "line", line)
		return false
	}

	if _, err := os.Stat(rec.Dest); err != nil {
		logger.Warn("undo skip, file not found", "path", rec.Dest)
		return false
	}

	if err := os.MkdirAll(filepath.Dir(rec.Source), 0o755); err != nil {
		logger.Error("undo failed, could not recreate directory", "path", rec.Source, "error", err)
		return false
	}
	if err := transfer.Move(rec.Dest, rec.Source); err != nil {
		logger.Error("undo failed", "from", rec.Dest, "to", rec.Source, "error", err)
		return false
	}

	logger.Info("undo", "from", rec.Dest, "to", rec.Source)
	return true
}
