package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/studfix/studfix-server/internal/app"
	"github.com/studfix/studfix-server/internal/cache"
	"github.com/studfix/studfix-server/internal/config"
	httpapi "github.com/studfix/studfix-server/internal/controller/http"
	"github.com/studfix/studfix-server/internal/repository"
	"github.com/studfix/studfix-server/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}

	// Применяем миграции при старте
	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	// Кеш статистики опционален: без REDIS_ADDR работаем напрямую из БД
	var statsCache service.StatsCache
	if cfg.RedisAddr != "" {
		redisCache, err := cache.New(ctx, cfg.RedisAddr, cfg.CacheTTL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer redisCache.Close()
		statsCache = redisCache
		logger.Info("Stats cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	studentRepo := repository.NewStudentRepository(pool)
	lessonRepo := repository.NewLessonRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	resolver := service.NewResolver(studentRepo, lessonRepo, paymentRepo)
	studentService := service.NewStudentService(studentRepo, statsCache, logger)
	lessonService := service.NewLessonService(lessonRepo, studentRepo, statsCache, logger)
	paymentService := service.NewPaymentService(paymentRepo, lessonRepo, statsCache, logger)
	statsService := service.NewStatsService(studentRepo, lessonRepo, paymentRepo, resolver, statsCache, logger)
	importService := service.NewImportService(studentService, lessonService, paymentService, logger)

	handler := httpapi.NewHandler(studentService, lessonService, paymentService, statsService, importService, resolver, logger)
	router := httpapi.NewRouter(handler, logger)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		logger.Info("Starting HTTP server",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("environment", cfg.Environment))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
	}
}
