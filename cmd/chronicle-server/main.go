// Package main is the entry point for the Chronicle server.
// Chronicle is the backend of a personal journaling application: dated
// entries with images, lock/encryption, and derived statistics.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"

	"github.com/prn-tf/chronicle/internal/auth"
	"github.com/prn-tf/chronicle/internal/cache/memory"
	redcache "github.com/prn-tf/chronicle/internal/cache/redis"
	"github.com/prn-tf/chronicle/internal/config"
	"github.com/prn-tf/chronicle/internal/handler"
	"github.com/prn-tf/chronicle/internal/lock"
	"github.com/prn-tf/chronicle/internal/metrics"
	"github.com/prn-tf/chronicle/internal/repository"
	"github.com/prn-tf/chronicle/internal/repository/postgres"
	"github.com/prn-tf/chronicle/internal/repository/sqlite"
	"github.com/prn-tf/chronicle/internal/search"
	"github.com/prn-tf/chronicle/internal/service"
	"github.com/prn-tf/chronicle/internal/storage"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	configPath := flag.String("config", "", "path to configuration file")
	flag.Parse()

	cfg := config.MustLoad(*configPath)
	logger := newLogger(cfg.Logging)

	logger.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("starting chronicle server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Repositories
	var (
		entryRepo   repository.EntryRepository
		profileRepo repository.ProfileRepository
		closeDB     func() error
	)
	if cfg.Database.IsEmbedded() {
		db, err := sqlite.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to open sqlite database")
		}
		entryRepo = sqlite.NewEntryRepository(db)
		profileRepo = sqlite.NewProfileRepository(db)
		closeDB = db.Close
	} else {
		db, err := postgres.NewDB(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to postgres")
		}
		entryRepo = postgres.NewEntryRepository(db)
		profileRepo = postgres.NewProfileRepository(db)
		closeDB = db.Close
	}
	defer func() {
		if err := closeDB(); err != nil {
			logger.Warn().Err(err).Msg("failed to close database")
		}
	}()

	// Cache and per-entry edit locks. Redis serves both when enabled;
	// otherwise in-process implementations keep single-node deployments
	// working without extra infrastructure.
	var (
		entryCache repository.Cache
		locker     lock.Locker
	)
	if cfg.Redis.Enabled {
		redisClient, err := redcache.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect to redis")
		}
		defer redisClient.Close()
		entryCache = redisClient
		locker = lock.NewRedisLocker(redisClient)
	} else {
		memCache := memory.NewCache()
		defer memCache.Stop()
		entryCache = memCache
		locker = lock.NewMemoryLocker()
	}

	if cfg.Cache.Enabled {
		entryRepo = repository.NewCachedEntryRepository(entryRepo, entryCache, cfg.Cache.TTL, logger)
	}

	// Image store
	var imageStore storage.ImageStore
	if cfg.Images.Backend == "s3" {
		store, err := storage.NewS3Store(ctx, cfg.Images.S3, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize s3 image store")
		}
		imageStore = store
	} else {
		store, err := storage.NewFilesystemStore(cfg.Images.DataDir, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize filesystem image store")
		}
		imageStore = store
	}

	// Services
	entryService := service.NewEntryService(entryRepo, locker, cfg.Auth.LockSalt, logger)
	statsService := service.NewStatsService(entryRepo, search.NewSorter(language.English), logger)
	profileService := service.NewProfileService(profileRepo, logger)
	imageService := service.NewImageService(imageStore, cfg.Images.MaxUploadSize, logger)

	// HTTP surface
	authMiddleware := auth.NewMiddleware(cfg.Auth.JWTSecret, logger)
	router := handler.NewRouter(handler.RouterConfig{
		EntryHandler:   handler.NewEntryHandler(entryService, logger),
		StatsHandler:   handler.NewStatsHandler(statsService, logger),
		ProfileHandler: handler.NewProfileHandler(profileService, logger),
		ImageHandler:   handler.NewImageHandler(imageService, cfg.Images.MaxUploadSize, logger),
		AuthMiddleware: authMiddleware.Authenticate,
		Logger:         logger,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	var metricsSrv *metrics.Server
	if cfg.Metrics.Enabled {
		metricsSrv = metrics.NewServer(cfg.Metrics.Port, logger)
		go func() {
			if err := metricsSrv.Start(); err != nil {
				logger.Error().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http server shutdown failed")
	}
	if metricsSrv != nil {
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("metrics server shutdown failed")
		}
	}

	logger.Info().Msg("shutdown complete")
}

// newLogger builds the root logger from configuration.
func newLogger(cfg config.LoggingConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.TimeFieldFormat = cfg.TimeFormat

	logger := log.Logger.Level(level)
	if cfg.Format == "console" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	return logger
}
