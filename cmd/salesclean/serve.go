package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/salesclean/internal/config"
	"github.com/JonMunkholm/salesclean/internal/store"
	"github.com/JonMunkholm/salesclean/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the cleaner over HTTP",
	Long: `serve starts an HTTP service. POST a CSV to /api/clean, as the raw body or
as the "file" field of a multipart form, and the cleaned CSV comes back.
When DATABASE_URL is set every run is archived and listed under /api/runs.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd.OutOrStdout())
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		return serve(ctx, cfg)
	},
}

func serve(ctx context.Context, cfg *config.Config) error {
	slog.Info("configuration loaded",
		"addr", cfg.Server.Addr(),
		"archive", cfg.Database.Enabled(),
		"clean_max_concurrent", cfg.Clean.MaxConcurrent,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	var archive web.Archive
	if cfg.Database.Enabled() {
		st, err := store.Open(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.EnsureSchema(ctx); err != nil {
			return err
		}
		archive = st
		slog.Info("run archive ready")
	}

	server := web.NewServer(cfg, archive, version)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(server.ListenAndServe)

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	slog.Info("server stopped")
	return nil
}
