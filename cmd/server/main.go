package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rodneymanor/screenshot-api/internal/domain/port"
	"github.com/rodneymanor/screenshot-api/internal/infra/config"
	"github.com/rodneymanor/screenshot-api/internal/infra/ffmpeg"
	"github.com/rodneymanor/screenshot-api/internal/infra/httpapi"
	"github.com/rodneymanor/screenshot-api/internal/infra/metrics"
	miniostore "github.com/rodneymanor/screenshot-api/internal/infra/minio"
	"github.com/rodneymanor/screenshot-api/internal/infra/postgres"
	"github.com/rodneymanor/screenshot-api/internal/infra/tracing"
	"github.com/rodneymanor/screenshot-api/internal/infra/workspace"
	"github.com/rodneymanor/screenshot-api/internal/usecase"
	"github.com/rodneymanor/screenshot-api/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	fatalOnErr(err, "load config")

	log, err := logger.New(cfg.LogLevel)
	fatalOnErr(err, "init logger")
	defer log.Sync()

	log.Info("starting screenshot-api")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing (non-fatal if the collector is unavailable)
	tp, err := tracing.InitTracer(ctx, cfg.JaegerEndpoint)
	if err != nil {
		log.Warn("tracing init failed, continuing without tracing", zap.Error(err))
	} else {
		defer tp.Shutdown(ctx)
	}

	// Work-directory root: wiped on every start, jobs do not survive
	// restarts.
	ws := workspace.New(cfg.WorkRoot)
	fatalOnErr(ws.Init(), "init work root")

	// Optional job audit trail
	var repo port.JobRepository = postgres.NopRepository{}
	if cfg.DatabaseURL != "" {
		pool, perr := pgxpool.New(ctx, cfg.DatabaseURL)
		fatalOnErr(perr, "connect to postgres")
		defer pool.Close()

		if merr := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); merr != nil {
			log.Warn("migration warning", zap.Error(merr))
		}
		repo = postgres.NewJobRepository(pool)
	}

	// Optional archive retention
	var store port.ArchiveStore
	if cfg.MinIOEndpoint != "" {
		archives, serr := miniostore.NewArchiveStore(miniostore.Config{
			Endpoint:  cfg.MinIOEndpoint,
			AccessKey: cfg.MinIOAccessKey,
			SecretKey: cfg.MinIOSecretKey,
			UseSSL:    cfg.MinIOUseSSL,
			Bucket:    cfg.MinIOArchiveBucket,
		})
		fatalOnErr(serr, "create archive store")
		fatalOnErr(archives.EnsureBucket(ctx), "ensure archive bucket")
		store = archives
	}

	toolTimeout := time.Duration(cfg.ToolTimeout) * time.Second
	prober := ffmpeg.NewProber(cfg.FFprobeBin, toolTimeout, log)
	extractor := ffmpeg.NewExtractor(cfg.FFmpegBin, toolTimeout, log)
	archiver := ffmpeg.NewZipArchiver()

	uc := usecase.NewCreateScreenshotsUseCase(ws, prober, extractor, archiver, repo, store, log)

	metricsSrv := metrics.StartMetricsServer(ctx, cfg.MetricsPort, log)

	e := httpapi.NewServer(uc, ws, httpapi.ServerConfig{
		BodyLimit:          cfg.BodyLimit,
		DefaultScreenshots: cfg.DefaultScreenshots,
		DefaultQuality:     cfg.DefaultQuality,
	}, log)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		log.Info("http server starting", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Error("http server error", zap.Error(err))
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", zap.String("signal", sig.String()))
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", zap.Error(err))
	}
	metricsSrv.Shutdown(shutdownCtx)

	log.Info("screenshot-api stopped")
}

func fatalOnErr(err error, msg string) {
	if err != nil {
		panic(msg + ": " + err.Error())
	}
}
