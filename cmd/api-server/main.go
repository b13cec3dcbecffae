package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"reviewhub/database"
	"reviewhub/internal/api/auth"
	"reviewhub/internal/api/handler"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
	"reviewhub/internal/cache"
	"reviewhub/internal/config"
	"reviewhub/internal/mail"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	// Cache is optional; without redis every title read hits the store.
	var titleCache *cache.TitleCache
	if cfg.RedisURL != "" {
		titleCache, err = cache.NewTitleCache(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL)
		if err != nil {
			log.Fatalf("could not connect to redis: %v", err)
		}
		defer titleCache.Close()
	}

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	genreRepo := repository.NewGenreRepository(db)
	titleRepo := repository.NewTitleRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	signer := auth.NewJWTSigner(cfg.JWTSecret, cfg.TokenTTL)
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		UseTLS:   cfg.SMTPUseTLS,
	})

	authService := service.NewAuthService(userRepo, mailer, signer)
	reviewService := service.NewReviewService(reviewRepo, titleRepo)
	commentService := service.NewCommentService(commentRepo, reviewRepo)
	catalogService := service.NewCatalogService(categoryRepo, genreRepo, titleCache)
	titleService := service.NewTitleService(titleRepo, categoryRepo, genreRepo, reviewService, titleCache, nil)
	userService := service.NewUserService(userRepo)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	requireAuth := middleware.Authenticate(signer, userRepo)

	api := r.Group("/api/v1")
	api.Use(middleware.Identify(signer, userRepo))

	handler.NewAuthHandler(authService).RegisterRoutes(api)
	handler.NewCatalogHandler(catalogService).RegisterRoutes(api, requireAuth)
	handler.NewTitleHandler(titleService).RegisterRoutes(api, requireAuth)
	handler.NewReviewHandler(reviewService).RegisterRoutes(api, requireAuth)
	handler.NewCommentHandler(commentService).RegisterRoutes(api, requireAuth)
	handler.NewUserHandler(userService).RegisterRoutes(api, requireAuth)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting API server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelDebug
	switch cfg.LogLevel {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
