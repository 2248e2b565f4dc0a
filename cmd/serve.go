package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Kunxl-4568/VirtualKitchen/config"
	"github.com/Kunxl-4568/VirtualKitchen/controllers"
	"github.com/Kunxl-4568/VirtualKitchen/database"
	"github.com/Kunxl-4568/VirtualKitchen/metrics"
	"github.com/Kunxl-4568/VirtualKitchen/middleware"
	"github.com/Kunxl-4568/VirtualKitchen/routes"
	"github.com/Kunxl-4568/VirtualKitchen/storage"
)

const (
	housekeepingInterval = 10 * time.Minute
	limiterIdle          = 30 * time.Minute
	shutdownTimeout      = 15 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup()
		if err != nil {
			return err
		}
		defer a.close()
		return serve(cmd.Context(), a)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newStore(ctx context.Context, cfg *config.Config) (storage.Store, string, error) {
	if cfg.StorageDriver == "s3" {
		store, err := storage.NewS3(ctx, storage.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
		return store, "", err
	}
	store, err := storage.NewLocal(cfg.StoragePath, cfg.PublicURL)
	if err != nil {
		return nil, "", err
	}
	return store, store.Root, nil
}

func serve(ctx context.Context, a *app) error {
	gin.SetMode(a.cfg.GinMode)

	if err := database.Migrate(a.db); err != nil {
		return err
	}

	store, storageRoot, err := newStore(ctx, a.cfg)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(a.cfg.AuthRateLimit, a.cfg.AuthRateBurst, a.log)
	h := controllers.New(a.db, store, middleware.NewTokens(a.cfg.JWTSecret, a.cfg.TokenTTL), metrics.New(), a.log)
	router := routes.NewRouter(h, routes.Options{
		AllowedOrigins: a.cfg.AllowedOrigins,
		StorageRoot:    storageRoot,
		AuthLimiter:    limiter,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go housekeeping(ctx, a, limiter)

	srv := &http.Server{
		Addr:              a.cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("server listening", zap.String("addr", srv.Addr), zap.String("storage", a.cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// housekeeping prunes expired token revocations and idle rate limiters.
func housekeeping(ctx context.Context, a *app, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(housekeepingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			limiter.Cleanup(limiterIdle)
			n, err := middleware.PruneRevoked(a.db, now)
			if err != nil {
				a.log.Warn("prune revoked tokens", zap.Error(err))
				continue
			}
			if n > 0 {
				a.log.Debug("pruned revoked tokens", zap.Int64("count", n))
			}
		}
	}
}
