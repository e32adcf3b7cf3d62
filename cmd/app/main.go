package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"coursehub/internal/application/usecase"
	"coursehub/internal/config"
	"coursehub/internal/domain"
	"coursehub/internal/infrastructure/repository"
	"coursehub/internal/infrastructure/security"
	"coursehub/internal/infrastructure/storage"
	"coursehub/internal/middleware"
	handlers "coursehub/internal/transport/http"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	// TranslateError turns driver unique-violations into gorm.ErrDuplicatedKey,
	// which the repositories map to ErrEmailTaken / ErrAlreadyEnrolled.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Course{},
		&domain.Topic{},
		&domain.Enrollment{},
	); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Connected to Redis at", cfg.RedisAddr)

	if cfg.S3Endpoint == "" || cfg.S3AccessKey == "" {
		log.Fatal("S3 storage is not configured; course media cannot be stored")
	}
	media := storage.NewMediaStore(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3PublicBucket, cfg.S3PrivateBucket, cfg.S3PublicURL,
	)
	log.Println("Connected to S3 storage at", cfg.S3Endpoint)

	userRepo := repository.NewUserRepository(db)
	catalogRepo := repository.NewCatalogRepository(db, rdb)
	enrollmentRepo := repository.NewEnrollmentRepository(db)

	hasher := security.NewPasswordHasher()
	tokenManager := security.NewTokenManager(cfg.JWTSecret)

	authUseCase := usecase.NewAuthUseCase(userRepo, hasher, tokenManager)
	catalogUseCase := usecase.NewCatalogUseCase(userRepo, catalogRepo, enrollmentRepo, media)
	enrollmentUseCase := usecase.NewEnrollmentUseCase(catalogRepo, enrollmentRepo, media, usecase.DefaultProcessingDelay)

	authHandler := handlers.NewAuthHandler(authUseCase)
	courseHandler := handlers.NewCourseHandler(catalogUseCase)
	categoryHandler := handlers.NewCategoryHandler(catalogUseCase)
	enrollmentHandler := handlers.NewEnrollmentHandler(enrollmentUseCase)

	rateLimiter := middleware.NewRateLimiter(rdb)

	var origins []string
	if cfg.AllowedOrigins != "" {
		origins = strings.Split(cfg.AllowedOrigins, ",")
	}

	router := handlers.NewRouter(
		authHandler, courseHandler, categoryHandler, enrollmentHandler,
		rateLimiter, tokenManager, origins,
	)

	srv := &http.Server{
		Addr:    cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server running on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Forced to shutdown: %v", err)
	}
}
