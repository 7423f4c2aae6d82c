package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"recruitment-platform/config"
	"recruitment-platform/internal/delivery/http/middleware"
	v1 "recruitment-platform/internal/delivery/http/v1"
	"recruitment-platform/internal/repository/postgres"
	"recruitment-platform/internal/usecase"
	"recruitment-platform/pkg/auth"
	"recruitment-platform/pkg/database"
	"recruitment-platform/pkg/email"
	"recruitment-platform/pkg/logger"
	"recruitment-platform/pkg/redis"
	"recruitment-platform/pkg/storage"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting recruitment platform", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	grantRepo := postgres.NewRoleGrantRepository(dbPool)
	recruiterProfileRepo := postgres.NewRecruiterProfileRepository(dbPool)
	seekerProfileRepo := postgres.NewJobSeekerProfileRepository(dbPool)
	skillRepo := postgres.NewSkillRepository(dbPool)
	jobRepo := postgres.NewJobPostingRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	notificationRepo := postgres.NewNotificationRepository(dbPool)
	reportRepo := postgres.NewReportRepository(dbPool)

	// 5. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - welcome emails will be skipped")
	}

	// 6. Setup Object Storage
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer startupCancel()

	objectStore, err := storage.NewObjectStore(startupCtx, cfg)
	if err != nil {
		logger.Log.Error("Failed to configure object storage", "error", err)
		os.Exit(1)
	}
	if err := objectStore.Ping(startupCtx); err != nil {
		logger.Log.Warn("Object storage not reachable - resume uploads will fail", "error", err)
	}

	// 7. Setup Redis (rate limiting)
	redisClient, err := redis.NewClient(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		logger.Log.Warn("Redis unavailable - rate limiting falls back to in-memory", "error", err)
	}

	// 8. Setup UseCases
	notifier := usecase.NewNotifier(notificationRepo, userRepo, logger.Log)
	authUC := usecase.NewAuthUsecase(userRepo, grantRepo, notifier, emailService, cfg.FrontendURL, logger.Log)
	jobUC := usecase.NewJobUsecase(jobRepo, recruiterProfileRepo, seekerProfileRepo, notifier)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, resumeRepo, notifier)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, applicationRepo, notifier)
	seekerProfileUC := usecase.NewJobSeekerProfileUsecase(seekerProfileRepo, skillRepo)
	recruiterProfileUC := usecase.NewRecruiterProfileUsecase(recruiterProfileRepo)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, seekerProfileRepo, objectStore, notifier)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)
	reportUC := usecase.NewReportUsecase(reportRepo, recruiterProfileRepo)

	// 9. Setup Token Manager
	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:             authUC,
		JobUC:              jobUC,
		ApplicationUC:      applicationUC,
		InterviewUC:        interviewUC,
		SeekerProfileUC:    seekerProfileUC,
		RecruiterProfileUC: recruiterProfileUC,
		ResumeUC:           resumeUC,
		NotificationUC:     notificationUC,
		ReportUC:           reportUC,
		Tokens:             tokens,
		RateLimiter:        middleware.NewRateLimiter(redisClient),
		Config:             cfg,
	})

	// 11. Start Server
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
