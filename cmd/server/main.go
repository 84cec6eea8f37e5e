package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jengzang/checkin-backend-go/internal/app"
	"github.com/jengzang/checkin-backend-go/internal/config"
	"github.com/jengzang/checkin-backend-go/internal/logger"
)

func main() {
	// 加载配置
	cfg := config.Load()

	zl, err := logger.New(cfg.Log.Level, cfg.Log.Format, "checkin-backend")
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer func() { _ = zl.Sync() }()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zl); err != nil {
		zl.Fatal("server exited with error", zap.Error(err))
	}
	zl.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, zl *zap.Logger) error {
	application, err := app.New(ctx, cfg, zl, app.Options{})
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			zl.Warn("failed to release resources", zap.Error(err))
		}
	}()

	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           application.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		zl.Info("Server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		zl.Info("shutting down", zap.Duration("timeout", cfg.ShutdownTimeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if application.Limiter != nil {
		g.Go(func() error {
			application.Limiter.Run(gctx)
			return nil
		})
	}

	return g.Wait()
}
