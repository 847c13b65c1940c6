package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/joestump/jobs-portal/internal/auth"
	"github.com/joestump/jobs-portal/internal/build"
	"github.com/joestump/jobs-portal/internal/config"
	"github.com/joestump/jobs-portal/internal/db"
	"github.com/joestump/jobs-portal/internal/handler"
	"github.com/joestump/jobs-portal/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			var (
				sessionManager *scs.SessionManager
				storage        auth.RequestStorage = auth.CookieStorage{}
			)
			if cfg.NeedsDB() {
				database, err := db.New(cmd.Context(), cfg.DB.Driver, cfg.DB.DSN)
				if err != nil {
					return err
				}
				defer func() { _ = database.Close() }()

				if err := db.Migrate(database, cfg.DB.Driver); err != nil {
					return err
				}

				sessionManager = auth.NewSessionManager(database, cfg.DB.Driver, cfg.SessionLifetime, !cfg.InsecureCookies)
				storage = auth.NewSessionStorage(sessionManager)
			}

			router := handler.NewRouter(handler.Deps{
				Logger:         logger,
				SessionManager: sessionManager,
				AuthMiddleware: auth.NewMiddleware(storage, logger, cfg.Guard.ServerRenderHeader),
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, logger, &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}, cfg.Guard.Storage)
		},
	}
}

// run serves until ctx is cancelled, then drains in-flight requests.
func run(ctx context.Context, logger *zap.Logger, srv *http.Server, storage string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("addr", srv.Addr),
			zap.String("token_storage", storage),
			zap.String("build", build.String()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
