package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/tidy/pkg/tidy/config"
	"github.com/jamesainslie/tidy/pkg/tidy/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "tidy [source]",
		Short: "Organize files into folders by type, name, date, or size",
		Long: `Tidy moves or copies the files in a directory into a destination tree
according to a classification policy. Every successful transfer is
recorded so the whole run can be reverted with 'tidy undo'.

Examples:
  tidy ~/Downloads                   # Organize by extension category
  tidy -m date ~/Pictures            # Organize into Year/Month folders
  tidy -m size -a copy ~/Videos      # Copy into size buckets
  tidy --dry-run ~/Downloads         # Preview without touching anything
  tidy undo                          # Revert the last run
  tidy categories list               # Show extension categories`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runOrganize,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.config/tidy/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "pretty", "output format (pretty, plain, json)")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "minimal output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug output")

	// Organize flags
	rootCmd.Flags().StringP("mode", "m", "", "organizing mode (type, name, date, day, size, first_letter)")
	rootCmd.Flags().StringP("action", "a", "", "transfer action (move, copy)")
	rootCmd.Flags().StringP("on-conflict", "c", "", "conflict policy (skip, overwrite, rename)")
	rootCmd.Flags().String("dest", "", "destination root (default: <source>/Organized)")
	rootCmd.Flags().BoolP("recursive", "r", false, "descend into subdirectories")
	rootCmd.Flags().BoolP("dry-run", "d", false, "report intended transfers without touching files")
	rootCmd.Flags().Bool("skip-unknown", false, "in type mode, leave uncategorized files in place")

	// Bind flags to viper
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("mode", rootCmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("action", rootCmd.Flags().Lookup("action"))
	_ = viper.BindPFlag("on_conflict", rootCmd.Flags().Lookup("on-conflict"))
	_ = viper.BindPFlag("dest", rootCmd.Flags().Lookup("dest"))
	_ = viper.BindPFlag("recursive", rootCmd.Flags().Lookup("recursive"))
	_ = viper.BindPFlag("dry_run", rootCmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("skip_unknown", rootCmd.Flags().Lookup("skip-unknown"))
}

// initConfig reads in config file and environment variables.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, "tidy"))
		}

		homeDir, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(homeDir, ".config", "tidy"))
		}
	}

	viper.SetEnvPrefix("TIDY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("mode", config.DefaultMode)
	viper.SetDefault("action", config.DefaultAction)
	viper.SetDefault("on_conflict", config.DefaultConflictPolicy)
	viper.SetDefault("dest_name", config.DefaultDestName)
	viper.SetDefault("categories.path", config.DefaultCategoriesPath())
	viper.SetDefault("undo_log.path", config.DefaultUndoLogPath())

	_ = viper.ReadInConfig()
}

// bootstrapLogging initializes the logging system from configuration,
// honoring the verbose flag for console output.
func bootstrapLogging(cfg *config.Config) error {
	logCfg := logging.Config{
		Level:        cfg.Logging.Level,
		Path:         cfg.Logging.Path,
		Components:   cfg.Logging.Components,
		ConsoleLevel: cfg.Logging.ConsoleLevel,
	}
	if getVerbose() {
		logCfg.Level = "debug"
		logCfg.ConsoleLevel = "debug"
	}
	return logging.Init(logCfg)
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError("%v", err)
	}
	_ = logging.Close()
	return err
}

// getVerbose returns true if verbose mode is enabled.
func getVerbose() bool {
	return viper.GetBool("verbose")
}

// getQuiet returns true if quiet mode is enabled.
func getQuiet() bool {
	return viper.GetBool("quiet")
}

// printInfo prints a message if quiet mode is not enabled.
func printInfo(format string, args ...interface{}) {
	if !getQuiet() {
		fmt.Printf(format+"\n", args...)
	}
}

// printError prints an error message to stderr.
func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
