package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/philipparndt/findflaw/internal/config"
	"github.com/philipparndt/findflaw/internal/logging"
	"github.com/philipparndt/findflaw/version"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	configDir string
	logLevel  string
	logsDir   string

	cfg     *config.Config
	log     = zerolog.Nop()
	logFile *os.File
)

var rootCmd = &cobra.Command{
	Use:   "findflaw",
	Short: "Annotate flaws on 3D models with labelled lines",
	Long: `FindFlaw opens STL and OpenSCAD models and lets you mark flaws on them
with labelled line markers. Line sets are stored next to the model as
<model>.lines.json and can be archived in a database.`,
	Version:           version.GetFullVersion(),
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logFile != nil {
			logFile.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", ".", "directory containing "+config.FileName)
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logsDir, "log-dir", "", "directory for session log files")
}

// setup loads the configuration and builds the logger for every command
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configDir)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if cmd.Flags().Changed("log-dir") {
		loaded.LogsDir = logsDir
	}
	cfg = loaded

	var files []io.Writer
	if cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.Create(logging.LogFilePath(cfg.LogsDir, "findflaw", time.Now()))
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		logFile = f
		files = append(files, f)
	}
	log = logging.Setup(cfg.LogLevel, os.Stderr, files...)

	if cfg.File != "" {
		log.Debug().Str("file", cfg.File).Msg("config loaded")
	}
	return nil
}

// skipSetup is used by commands that need neither config nor logging
func skipSetup(cmd *cobra.Command, args []string) error {
	return nil
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
