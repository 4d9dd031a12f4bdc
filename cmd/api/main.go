package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-jobboard-backend/config"
	_ "go-jobboard-backend/docs" // Important for Swagger
	v1 "go-jobboard-backend/internal/delivery/http/v1"
	"go-jobboard-backend/internal/repository/postgres"
	"go-jobboard-backend/internal/usecase"
	"go-jobboard-backend/pkg/aiclient"
	"go-jobboard-backend/pkg/auth"
	"go-jobboard-backend/pkg/database"
	"go-jobboard-backend/pkg/logger"
	"go-jobboard-backend/pkg/redis"
	"go-jobboard-backend/pkg/storage"
	"go-jobboard-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Job Board Backend API
// @version         1.0
// @description     Candidate-facing backend for the job board platform.
// @host            localhost:8080
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job board backend", "port", cfg.Port)

	// 3. Setup Databases. The restricted pool serves reads and
	// policy-guarded writes; the elevated pool serves writes that must
	// bypass row-level policies (applications, saved jobs, resumes).
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	adminPool := dbPool
	if cfg.AdminDBUrl != cfg.DBUrl {
		adminPool, err = database.NewPostgresConnection(cfg.AdminDBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database (elevated)", "error", err)
			os.Exit(1)
		}
		defer adminPool.Close()
	}

	// 4. Setup Redis (optional; rate limiting falls back to in-memory)
	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redis.NewClient(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
		if err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// 5. Setup Object Storage
	blobs, err := storage.NewS3Store(context.Background(), storage.Config{
		Provider:        storage.Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		Endpoint:        cfg.S3Endpoint,
		PublicBaseURL:   cfg.S3PublicBaseURL,
	})
	if err != nil {
		logger.Log.Error("Failed to initialize object storage", "error", err)
		os.Exit(1)
	}

	// 6. Setup AI Service Client
	aiClient := aiclient.New(cfg.AIServiceURL)

	// 7. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(adminPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	savedJobRepo := postgres.NewSavedJobRepository(adminPool)
	applicationRepo := postgres.NewApplicationRepository(adminPool)

	// 8. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	authUC := usecase.NewAuthUsecase(userRepo, tokens)
	profileUC := usecase.NewProfileUsecase(profileRepo, userRepo, blobs, validate)
	jobUC := usecase.NewJobUsecase(jobRepo)
	savedJobUC := usecase.NewSavedJobUsecase(savedJobRepo, jobRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo)
	resumeUC := usecase.NewResumeUsecase(profileRepo, userRepo, blobs, aiClient)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ProfileUC:     profileUC,
		JobUC:         jobUC,
		SavedJobUC:    savedJobUC,
		ApplicationUC: applicationUC,
		ResumeUC:      resumeUC,
		UserRepo:      userRepo,
		Tokens:        tokens,
		AIClient:      aiClient,
		Redis:         redisClient,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
