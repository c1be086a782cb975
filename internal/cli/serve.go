package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vedantadhau820-alt/IdentityOS/internal/wire"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	var (
		addr          string
		installAssets bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web app and JSON API",
		Long: `Serve the tracker web app, its JSON API under /api and, when enabled,
Prometheus metrics on /metrics. The offline asset cache is installed and
activated on startup unless --install-assets=false.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if level.Level() > slog.LevelInfo {
				level.Set(slog.LevelInfo)
			}
			logger := wire.Logger()
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if addr == "" {
				addr = wire.Config().Addr()
			}

			if installAssets {
				prepareAssets(ctx, logger)
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           wire.Server().Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()
			fmt.Printf("✓ Serving on http://%s\n", addr)

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server failed: %w", err)
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config.toml)")
	cmd.Flags().BoolVar(&installAssets, "install-assets", true, "Install and activate the asset cache on startup")
	return cmd
}

// prepareAssets fills the cache for the current version. Failures leave the
// server running against the asset origin.
func prepareAssets(ctx context.Context, logger *slog.Logger) {
	svc := wire.AssetService()
	if _, err := svc.InstallAssets(ctx); err != nil {
		logger.Warn("asset install failed", "error", err)
		return
	}
	if _, err := svc.ActivateAssets(ctx); err != nil {
		logger.Warn("asset activation failed", "error", err)
	}
}
