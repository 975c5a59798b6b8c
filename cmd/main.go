package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/RochKDev/warranty-manager/config"
	"github.com/RochKDev/warranty-manager/db"
	authdomain "github.com/RochKDev/warranty-manager/internal/auth/domain"
	userrepo "github.com/RochKDev/warranty-manager/internal/auth/repository/postgres"
	lockout "github.com/RochKDev/warranty-manager/internal/auth/repository/redis"
	"github.com/RochKDev/warranty-manager/internal/image/repository/objectstore"
	"github.com/RochKDev/warranty-manager/internal/logging"
	purchaserepo "github.com/RochKDev/warranty-manager/internal/purchase/repository/postgres"
	"github.com/RochKDev/warranty-manager/internal/server"
)

func main() {
	cfg := config.Load()
	logger := logging.Setup(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL, cfg.DBMaxConns)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, dbPool); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
	}

	var attempts authdomain.LoginAttemptStore
	if cfg.RedisURL != "" {
		rdb, err := lockout.Connect(ctx, cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer rdb.Close()
		attempts = lockout.NewLockoutStore(rdb, time.Duration(cfg.LoginWindowMinutes)*time.Minute)
	} else {
		slog.Warn("REDIS_URL not set, login lockout disabled")
	}

	s3Client, err := objectstore.NewClient(ctx, objectstore.Options{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		slog.Error("failed to configure object storage", "error", err)
		os.Exit(1)
	}
	blobs := objectstore.NewStore(s3Client, cfg.S3Bucket)
	if err := blobs.EnsureBucket(ctx); err != nil {
		slog.Error("failed to prepare bucket", "bucket", cfg.S3Bucket, "error", err)
		os.Exit(1)
	}

	srv := server.New(server.Deps{
		Config:    cfg,
		Logger:    logger,
		Users:     userrepo.NewPostgresRepository(dbPool),
		Attempts:  attempts,
		Purchases: purchaserepo.NewPurchaseRepository(dbPool),
		Products:  purchaserepo.NewProductRepository(dbPool),
		Blobs:     blobs,
		Ready:     dbPool.Ping,
	})

	go func() {
		addr := ":" + cfg.Port
		slog.Info("warranty manager starting", "addr", addr, "env", cfg.Env)
		if err := srv.Listen(addr); err != nil {
			slog.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
}
