package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jamesainslie/tidy/pkg/tidy/config"
	"github.com/jamesainslie/tidy/pkg/tidy/logging"
	"github.com/jamesainslie/tidy/pkg/tidy/organizer"
	"github.com/jamesainslie/tidy/pkg/tidy/output"
	"github.com/spf13/cobra"
)

// watchDebounce is how long the source must stay quiet before a run.
// Batch file drops (downloads, unpacking) settle within this window.
const watchDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch [source]",
	Short: "Organize a folder continuously as files arrive",
	Long: `Watch monitors the source directory and re-runs the organizer whenever
its contents change, after a short settle delay. All organize flags
apply. Stop with Ctrl-C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().AddFlagSet(rootCmd.Flags())
	rootCmd.AddCommand(watchCmd)
}

// runWatch organizes once, then re-runs on filesystem events.
func runWatch(_ *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := bootstrapLogging(cfg); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger := logging.Get("watch")

	params, sourcePath, destPath, err := buildRunParams(cfg, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	runOnce := func() {
		stats := organizer.Run(ctx, params)
		if stats.Err != "" {
			printError("%s", stats.Err)
			return
		}
		if stats.Total > 0 {
			_ = renderReport(&output.Report{
				Source: sourcePath,
				Dest:   destPath,
				Mode:   params.Mode.String(),
				Action: params.Action.String(),
				DryRun: params.DryRun,
				Run:    &stats,
			})
		}
	}

	// Initial pass picks up whatever is already there.
	runOnce()

	if err := watcher.Add(sourcePath); err != nil {
		return fmt.Errorf("failed to watch %s: %w", sourcePath, err)
	}
	printInfo("Watching %s (Ctrl-C to stop)", sourcePath)

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			logger.Info("watch stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Ignore activity inside the destination; the run itself
			// writes there.
			if strings.HasPrefix(event.Name, destPath) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("change detected", "path", event.Name, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-pending:
			runOnce()
		}
	}
}
