package main

import (
	"fmt"

	"github.com/jamesainslie/tidy/pkg/tidy/config"
	"github.com/jamesainslie/tidy/pkg/tidy/logging"
	"github.com/jamesainslie/tidy/pkg/tidy/organizer"
	"github.com/jamesainslie/tidy/pkg/tidy/output"
	"github.com/jamesainslie/tidy/pkg/tidy/undolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Revert the last organize run",
	Long: `Undo reads the undo log and moves every recorded file back to its
original location, most recent transfer first. The log is cleared
afterward, so a run can be reverted exactly once.`,
	Args: cobra.NoArgs,
	RunE: runUndo,
}

func init() {
	rootCmd.AddCommand(undoCmd)
}

// runUndo reverts the transfers recorded in the undo log.
func runUndo(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := bootstrapLogging(cfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	log, err := undolog.New(cfg.UndoLog.Path)
	if err != nil {
		return err
	}

	var onProgress func(index, total int)
	if !getQuiet() && viper.GetString("output") == "pretty" {
		onProgress = func(index, total int) {
			printInfo("[%d/%d] reverting", index, total)
		}
	}

	stats := organizer.Undo(log, onProgress, logging.Get("undo"))

	return renderReport(&output.Report{Undo: &stats})
}
