// @title        Campus Market API
// @version      1.0
// @description  校園二手市集後端 API 文件
// @host         localhost:8080
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campus-market/internal/api"
	"campus-market/internal/cache"
	"campus-market/internal/config"
	"campus-market/internal/database"
	"campus-market/internal/events"
	"campus-market/internal/logging"
	"campus-market/internal/middleware"
	"campus-market/internal/router"
	"campus-market/internal/service"
	"campus-market/internal/upload"
	"campus-market/internal/worker"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"
)

const (
	eventQueueSize  = 64
	publishTimeout  = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	rollbackFn      = database.RollbackAll
	newPublisher    = buildPublisher
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	shutdownServer  = func(ctx context.Context, e *echo.Echo) error { return e.Shutdown(ctx) }
	newWorkerPool   = worker.NewPool
	exitFunc        = os.Exit
	osArgs          = os.Args[1:]
)

// buildPublisher 未設定 KAFKA_BROKERS 時只寫 log
func buildPublisher(cfg *config.Config) events.Publisher {
	brokers := events.ParseBrokers(cfg.KafkaBrokers)
	if len(brokers) == 0 {
		return events.LogPublisher{}
	}
	return events.NewKafkaPublisher(events.NewKafkaWriter(brokers, cfg.KafkaTopic))
}

func run(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.AppEnv, os.Stdout)

	db, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %w", err)
	}
	defer rdb.Close()

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %w", err)
	}

	pub := newPublisher(cfg)
	defer pub.Close()

	// worker pool 先停止，確保排隊中的事件送出後才關閉 publisher
	wp := newWorkerPool(cfg.WorkerCount, eventQueueSize)
	defer wp.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Validator = api.NewValidator()
	e.HTTPErrorHandler = api.HTTPErrorHandler
	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.Recover())

	router.Setup(e, router.Deps{
		DB:               db,
		Cache:            rdb,
		Listings:         cache.NewListingCache(rdb, cfg.CacheTTL),
		Images:           upload.NewStore(cfg.UploadDir, cfg.MaxUploadBytes),
		Tokens:           service.NewTokens(cfg.JWTSecret, cfg.JWTTTL),
		Emitter:          events.NewDispatcher(pub, wp, publishTimeout),
		Env:              cfg.AppEnv,
		UploadDir:        cfg.UploadDir,
		MaxUploadBytes:   cfg.MaxUploadBytes,
		AuthRateLimit:    cfg.AuthRateLimit,
		RequireAvailable: cfg.RequireAvailableProduct,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.AppEnv).Msg("server starting")
		errCh <- startServer(e, cfg.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("伺服器啟動失敗: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownServer(sctx, e); err != nil {
			return fmt.Errorf("伺服器關閉失敗: %w", err)
		}
		return nil
	}
}

// rollback 退回所有 migration，不啟動伺服器
func rollback() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("設定載入失敗: %w", err)
	}
	logging.New(cfg.LogLevel, cfg.AppEnv, os.Stdout)
	if err := rollbackFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("Migration 回滾失敗: %w", err)
	}
	log.Info().Msg("all migrations rolled back")
	return nil
}

func main() {
	fs := flag.NewFlagSet("service", flag.ContinueOnError)
	down := fs.Bool("rollback", false, "roll back all migrations and exit")
	if err := fs.Parse(osArgs); err != nil {
		exitFunc(2)
		return
	}

	if *down {
		if err := rollback(); err != nil {
			log.Error().Err(err).Msg("rollback failed")
			exitFunc(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx); err != nil {
		log.Error().Err(err).Msg("service exited")
		exitFunc(1)
	}
}
