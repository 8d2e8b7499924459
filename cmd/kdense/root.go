package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/clusterlab/kdense"
)

var (
	flagLogLevel string
	flagLogJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "kdense",
	Short: "Density-reseeded k-means clustering over low-dimensional datasets",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "emit JSON-formatted logs")

	rootCmd.AddCommand(clusterCmd, plotCmd, captureCmd)
}

func newLogger() *kdense.Logger {
	var level slog.Level
	switch flagLogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if flagLogJSON {
		return kdense.NewJSONLogger(level)
	}
	return kdense.NewTextLogger(level)
}
