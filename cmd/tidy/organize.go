package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jamesainslie/tidy/pkg/tidy/category"
	"github.com/jamesainslie/tidy/pkg/tidy/config"
	"github.com/jamesainslie/tidy/pkg/tidy/logging"
	"github.com/jamesainslie/tidy/pkg/tidy/organizer"
	"github.com/jamesainslie/tidy/pkg/tidy/output"
	"github.com/jamesainslie/tidy/pkg/tidy/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errRunFailed marks a run that finished with a structured error result.
var errRunFailed = errors.New("run did not complete")

// runOrganize is the root command handler.
func runOrganize(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := bootstrapLogging(cfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	params, sourcePath, destPath, err := buildRunParams(cfg, args)
	if err != nil {
		return err
	}

	// Cooperative cancellation on Ctrl-C: the file in flight finishes,
	// remaining files are left untouched.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !getQuiet() && viper.GetString("output") == "pretty" {
		params.OnProgress = func(index, total int, path string, outcome types.Outcome) {
			printInfo("[%d/%d] %-7s %s", index, total, outcome.String(), path)
		}
	}

	stats := organizer.Run(ctx, params)

	report := &output.Report{
		Source: sourcePath,
		Dest:   destPath,
		Mode:   params.Mode.String(),
		Action: params.Action.String(),
		DryRun: params.DryRun,
		Run:    &stats,
	}
	if err := renderReport(report); err != nil {
		return err
	}

	if stats.Err != "" {
		return fmt.Errorf("%w: %s", errRunFailed, stats.Err)
	}
	return nil
}

// buildRunParams assembles the immutable parameter bundle for one run
// from flags, config, and the category store.
func buildRunParams(cfg *config.Config, args []string) (organizer.Params, string, string, error) {
	sourcePath := "."
	if len(args) > 0 {
		sourcePath = args[0]
	}

	expanded, err := config.ExpandPath(sourcePath)
	if err != nil {
		return organizer.Params{}, "", "", fmt.Errorf("failed to expand path: %w", err)
	}
	absSource, err := filepath.Abs(expanded)
	if err != nil {
		return organizer.Params{}, "", "", fmt.Errorf("failed to resolve path: %w", err)
	}

	destPath := viper.GetString("dest")
	if destPath == "" {
		destPath = filepath.Join(absSource, viper.GetString("dest_name"))
	} else {
		if destPath, err = config.ExpandPath(destPath); err != nil {
			return organizer.Params{}, "", "", fmt.Errorf("failed to expand destination: %w", err)
		}
		if destPath, err = filepath.Abs(destPath); err != nil {
			return organizer.Params{}, "", "", fmt.Errorf("failed to resolve destination: %w", err)
		}
	}

	mode, err := types.ParseMode(viper.GetString("mode"))
	if err != nil {
		return organizer.Params{}, "", "", err
	}
	action, err := types.ParseAction(viper.GetString("action"))
	if err != nil {
		return organizer.Params{}, "", "", err
	}
	policy, err := types.ParseConflictPolicy(viper.GetString("on_conflict"))
	if err != nil {
		return organizer.Params{}, "", "", err
	}

	var categories category.Map
	if mode == types.ModeType {
		store, err := category.NewStore(cfg.Categories.Path, logging.Get("category"))
		if err != nil {
			return organizer.Params{}, "", "", err
		}
		categories = store.Load()
	}

	params := organizer.Params{
		Source:      absSource,
		Dest:        destPath,
		Mode:        mode,
		Action:      action,
		OnConflict:  policy,
		Recursive:   viper.GetBool("recursive"),
		DryRun:      viper.GetBool("dry_run"),
		SkipUnknown: viper.GetBool("skip_unknown"),
		Categories:  categories,
		UndoLogPath: cfg.UndoLog.Path,
		Logger:      logging.Get("organizer"),
	}
	return params, absSource, destPath, nil
}

// renderReport formats the report with the selected formatter and
// prints it, honoring quiet mode for non-JSON formats.
func renderReport(report *output.Report) error {
	format := viper.GetString("output")
	if getQuiet() && format == "pretty" {
		return nil
	}

	formatter, err := output.Get(format)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, report); err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	fmt.Print(buf.String())
	return nil
}
