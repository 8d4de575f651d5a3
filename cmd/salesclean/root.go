package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/salesclean/internal/config"
	"github.com/JonMunkholm/salesclean/internal/core"
	"github.com/JonMunkholm/salesclean/internal/logging"
	"github.com/JonMunkholm/salesclean/internal/metrics"
	"github.com/JonMunkholm/salesclean/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "salesclean",
	Short: "Clean the raw sales export",
	Long: `salesclean reads ` + core.DefaultInputPath + `, normalizes column names,
trims prodname and category, drops rows whose price or qty is missing,
unparsable or negative, and writes ` + core.DefaultOutputPath + `.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return runBatch(ctx, cfg, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI and reports a fatal error on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", userError(err))
	}
	return err
}

// loadConfig reads .env, the environment and sets up logging to logOut.
func loadConfig(logOut io.Writer) (*config.Config, error) {
	// Overload so values in .env win over the inherited environment
	envErr := godotenv.Overload()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format, logOut)

	if envErr != nil {
		slog.Debug("no .env file found, using environment variables")
	}
	slog.Debug("configuration loaded", "config", cfg.String())
	return cfg, nil
}

// runBatch cleans the fixed input into the fixed output. The two notices go
// to notices; everything else is logged.
func runBatch(ctx context.Context, cfg *config.Config, notices io.Writer) error {
	cleaner := core.NewCleaner(core.CSVLoader{}, core.CSVWriter{}, notices, core.Options{
		LegacyMissingText: cfg.Clean.LegacyMissingText,
	})

	res, err := cleaner.Run(ctx, core.DefaultInputPath, core.DefaultOutputPath)
	metrics.ObserveRun(res, err)
	if err != nil {
		return err
	}

	slog.Info("clean complete",
		"run_id", res.RunID,
		"rows_in", res.Stats.RowsIn,
		"rows_out", res.Stats.RowsOut,
		"dropped_missing", res.Stats.Dropped[core.DropMissing],
		"dropped_negative", res.Stats.Dropped[core.DropNegative],
		"duration", res.Duration,
	)

	archiveBatch(ctx, cfg.Database, res)
	return nil
}

// archiveBatch records res when an archive is configured. The output file is
// already written, so failures are only logged.
func archiveBatch(ctx context.Context, dbCfg config.DatabaseConfig, res *core.Result) {
	if !dbCfg.Enabled() {
		return
	}

	logger := logging.FromContext(logging.WithRunID(ctx, res.RunID))
	st, err := store.Open(ctx, dbCfg)
	if err != nil {
		metrics.ArchiveErrors.Inc()
		logger.Warn("archive unavailable", "error", err)
		return
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		metrics.ArchiveErrors.Inc()
		logger.Warn("archive schema failed", "error", err)
		return
	}
	if err := st.Archive(ctx, res); err != nil {
		metrics.ArchiveErrors.Inc()
		logger.Warn("archive failed", "error", err)
		return
	}
	logger.Info("run archived", "rows", res.Stats.RowsOut)
}

// userError renders err for the terminal, with a support code when one
// applies.
func userError(err error) string {
	if core.IsUserFacing(err) {
		return core.FormatUserError(err) + " (" + err.Error() + ")"
	}
	return err.Error()
}
