// Package cmd contains all CLI commands for newsforge
package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/alt-project/newsforge/config"
)

var (
	cfgFile string
	verbose bool
	mock    bool
	cfg     *config.Config
	logger  *slog.Logger
	version = "dev"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "newsforge",
	Short: "Content-automation pipelines for article rewrites and trend reports",
	Long: `newsforge runs two content-automation pipelines.

The watch pipeline observes an input directory for markdown/text files
containing [Title](URL) article lists, fetches and cleans each linked
article, asks the model for a styled rewrite, and archives the consumed
input file.

The trends pipeline scrapes a trending-topics aggregator, asks the model
for a traffic-potential analysis, and writes the raw list plus a linked
markdown report.

Example usage:
  newsforge watch                      # watch local_inputs/ for article lists
  newsforge trends                     # one-shot trend scrape and analysis
  newsforge trends --cron "0 * * * *"  # hourly trend runs
  newsforge watch --mock               # no model calls, placeholder output`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string for the CLI
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .newsforge.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&mock, "mock", false, "mock mode: replace model calls with placeholder output")
}

// initConfig loads configuration and sets up the process-wide logger.
func initConfig() error {
	var err error

	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Flags beat config file and environment.
	if mock {
		cfg.LLM.MockMode = true
	}

	level := parseLevel(cfg.Logging.Level)
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Logging.Format == "text" {
		logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	logger = logger.With("service", "newsforge", "version", version)

	if !cfg.LLM.MockMode && cfg.LLM.APIKey == "" {
		logger.Warn("no API key configured; model calls will fail unless mock mode is enabled")
	}

	return nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
