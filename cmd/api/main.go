package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"neuroscent/internal/config"
	"neuroscent/internal/db"
	apihttp "neuroscent/internal/http"
	"neuroscent/internal/repository"
	"neuroscent/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("ensure schema", zap.Error(err))
	}

	userRepo := repository.NewPgUserRepository(pool)
	perfumeRepo := repository.NewPgPerfumeRepository(pool)
	resultRepo := repository.NewPgResultRepository(pool)

	var (
		quizLimiter  service.QuizRateLimiter
		tokenStore   service.RefreshTokenStore
		catalogCache *service.RedisCatalogCache
		redisClient  *redis.Client
	)
	catalog := service.CatalogProvider(service.NewRepoCatalogProvider(perfumeRepo))
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			quizLimiter = service.NewRedisQuizRateLimiter(
				redisClient,
				time.Duration(cfg.QuizRateWindowSeconds)*time.Second,
				cfg.QuizRateMax,
			)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
			catalogCache = service.NewRedisCatalogCache(
				redisClient,
				catalog,
				time.Duration(cfg.CatalogCacheTTLSeconds)*time.Second,
				logger,
			)
			catalog = catalogCache
		}
		cancel()
	}
	if quizLimiter == nil {
		quizLimiter = service.NewQuizRateLimiter(
			time.Duration(cfg.QuizRateWindowSeconds)*time.Second,
			cfg.QuizRateMax,
		)
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	adminSvc := service.NewAdminService(logger, cfg.AdminEmail, cfg.AdminPasswordHash)
	if !adminSvc.Configured() {
		logger.Warn("admin credentials not configured")
	}

	matchingSvc := service.NewMatchingService(logger, catalog)
	quizSvc := service.NewQuizService(logger, userRepo, resultRepo, perfumeRepo, matchingSvc, quizLimiter, cfg.TopMatchCount)

	invalidateCatalog := func(*gin.Context) {}
	if catalogCache != nil {
		invalidateCatalog = func(c *gin.Context) { catalogCache.Invalidate(c.Request.Context()) }
	}

	quizHandler := apihttp.NewQuizHandler(logger, quizSvc)
	perfumeHandler := apihttp.NewPerfumeHandler(logger, perfumeRepo, invalidateCatalog)
	adminHandler := apihttp.NewAdminHandler(logger, adminSvc, jwtSvc)
	router := apihttp.NewRouter(logger, quizHandler, perfumeHandler, adminHandler, jwtSvc, func(ctx context.Context) error {
		return db.Ping(ctx, pool)
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
