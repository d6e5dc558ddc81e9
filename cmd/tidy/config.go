package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/jamesainslie/tidy/pkg/tidy/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `Manage tidy configuration settings.

Configuration is loaded from:
  1. $XDG_CONFIG_HOME/tidy/config.yaml (if set)
  2. ~/.config/tidy/config.yaml

Environment variables can override config file settings using the TIDY_ prefix:
  TIDY_MODE=date
  TIDY_ON_CONFLICT=skip`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings from all sources.`,
	RunE:  runConfigShow,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long: `Open the configuration file in your default editor.

The editor is determined by:
  1. $VISUAL environment variable
  2. $EDITOR environment variable
  3. Falls back to 'vi'

If the config file doesn't exist, a default one will be created first.`,
	RunE: runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long:  `Create a default configuration file if one doesn't exist.`,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path to the configuration file.`,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

// runConfigShow displays the current configuration.
func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	printInfo("mode:         %s", cfg.Mode)
	printInfo("action:       %s", cfg.Action)
	printInfo("on_conflict:  %s", cfg.OnConflict)
	printInfo("dest_name:    %s", cfg.DestName)
	printInfo("recursive:    %t", cfg.Recursive)
	printInfo("skip_unknown: %t", cfg.SkipUnknown)
	printInfo("categories:   %s", cfg.Categories.Path)
	printInfo("undo_log:     %s", cfg.UndoLog.Path)
	printInfo("log level:    %s", cfg.Logging.Level)
	return nil
}

// runConfigEdit opens the config file in the user's editor.
func runConfigEdit(_ *cobra.Command, _ []string) error {
	if err := config.WriteDefault(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	configPath := filepath.Join(configDir, "config.yaml")

	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	c := exec.Command(editor, configPath)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}

// runConfigInit creates a default config file.
func runConfigInit(_ *cobra.Command, _ []string) error {
	if err := config.WriteDefault(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	configDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	printInfo("Config file: %s", filepath.Join(configDir, "config.yaml"))
	return nil
}

// runConfigPath prints the configuration file path.
func runConfigPath(_ *cobra.Command, _ []string) error {
	configDir, err := config.ConfigDir()
	if err != nil {
		return err
	}
	fmt.Println(filepath.Join(configDir, "config.yaml"))
	return nil
}
