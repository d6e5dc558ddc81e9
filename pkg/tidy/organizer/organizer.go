// Package organizer drives one organizing run end to end: path
// validation, file enumeration, per-file classification, conflict
// resolution, and transfer, with cooperative cancellation between files.
// It also hosts the undo engine that reverses a completed run.
package organizer

import (
	"context"
	"errors"
	"os"

	"github.com/google/uuid"
	"github.com/jamesainslie/tidy/pkg/tidy/category"
	"github.com/jamesainslie/tidy/pkg/tidy/classify"
	"github.com/jamesainslie/tidy/pkg/tidy/conflict"
	"github.com/jamesainslie/tidy/pkg/tidy/logging"
	"github.com/jamesainslie/tidy/pkg/tidy/transfer"
	"github.com/jamesainslie/tidy/pkg/tidy/types"
	"github.com/jamesainslie/tidy/pkg/tidy/undolog"
	"github.com/jamesainslie/tidy/pkg/tidy/walker"
)

// Run executes one organizing pass described by p. Validation and
// configuration failures produce a zero-count result carrying an error
// message and perform no I/O. Per-file failures are counted and the run
// continues; cancellation via ctx is honored between files, never
// mid-transfer.
func Run(ctx context.Context, p Params) types.RunStatistics {
	logger := p.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	runID := uuid.NewString()
	logger = logger.With("run", runID)

	if err := validatePaths(p.Source, p.Dest); err != nil {
		logger.Error("run rejected", "error", err)
		return types.RunStatistics{Err: err.Error()}
	}

	categories := p.Categories
	if categories == nil {
		categories = category.Defaults()
	}
	var index category.Index
	if p.Mode == types.ModeType {
		index, _ = category.BuildIndex(categories, logger)
	}

	classifier, err := classify.ForMode(p.Mode, index, p.SkipUnknown)
	if err != nil {
		logger.Error("run rejected", "error", err)
		return types.RunStatistics{Err: err.Error()}
	}

	var log *undolog.Log
	if p.UndoLogPath != "" {
		log, err = undolog.New(p.UndoLogPath)
		if err != nil {
			logger.Error("run rejected", "error", err)
			return types.RunStatistics{Err: err.Error()}
		}
		// A new run owns the log exclusively; stale records from prior
		// runs must not survive into this run's undo pass.
		if !p.DryRun {
			if err := log.Clear(); err != nil {
				logger.Warn("could not clear undo log", "error", err)
			}
		}
	}
	executor := transfer.NewExecutor(log, logger)

	files, err := walker.List(p.Source, p.Recursive, p.Dest, logger)
	if err != nil {
		logger.Error("file enumeration failed", "error", err)
		return types.RunStatistics{Err: err.Error()}
	}

	stats := types.RunStatistics{Total: len(files)}
	if stats.Total == 0 {
		logger.Info("no files found to organize", "source", p.Source)
		return stats
	}

	logger.Info("run started",
		"source", p.Source, "dest", p.Dest,
		"mode", p.Mode.String(), "action", p.Action.String(),
		"conflict", p.OnConflict.String(),
		"files", stats.Total, "dry_run", p.DryRun)

	for i, file := range files {
		if ctx.Err() != nil {
			logger.Info("cancellation requested, stopping",
				"processed", stats.Processed, "total", stats.Total)
			break
		}

		outcome := processFile(file, p, classifier, executor, &stats, logger)

		stats.Processed++
		switch outcome {
		case types.OutcomeSuccess:
			stats.Succeeded++
		case types.OutcomeFailure:
			stats.Failed++
		case types.OutcomeSkip:
			stats.Skipped++
		}

		if p.OnProgress != nil {
			p.OnProgress(i+1, stats.Total, file, outcome)
		}
	}

	logger.Info("run finished",
		"processed", stats.Processed, "succeeded", stats.Succeeded,
		"failed", stats.Failed, "skipped", stats.Skipped,
		"bytes", stats.BytesMoved)
	return stats
}

// processFile classifies, conflict-resolves, and transfers one file.
func processFile(file string, p Params, classifier classify.Classifier, executor *transfer.Executor, stats *types.RunStatistics, logger *logging.Logger) types.Outcome {
	dest, err := classifier.Destination(file, p.Dest)
	if err != nil {
		if errors.Is(err, classify.ErrSkip) {
			logger.Info("skipped", "file", file, "reason", err)
			return types.OutcomeSkip
		}
		logger.Error("classification failed", "file", file, "error", err)
		return types.OutcomeFailure
	}

	finalDest, skip, err := conflict.Resolve(dest, p.OnConflict, logger)
	if err != nil {
		logger.Error("conflict resolution failed", "file", file, "error", err)
		return types.OutcomeFailure
	}
	if skip {
		return types.OutcomeSkip
	}

	var size int64
	if info, statErr := os.Stat(file); statErr == nil {
		size = info.Size()
	}

	if err := executor.Transfer(file, finalDest, p.Action, p.DryRun); err != nil {
		logger.Error("transfer failed", "file", file, "error", err)
		return types.OutcomeFailure
	}

	stats.BytesMoved += size
	return types.OutcomeSuccess
}
