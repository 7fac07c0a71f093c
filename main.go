package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	api "taskforge-backend/cmd/api"
	authdomain "taskforge-backend/internal/auth/domain"
	authRepo "taskforge-backend/internal/auth/repository"
	authUsecase "taskforge-backend/internal/auth/usecase"
	discussiondomain "taskforge-backend/internal/discussion/domain"
	discussionRepo "taskforge-backend/internal/discussion/repository"
	discussionUsecase "taskforge-backend/internal/discussion/usecase"
	"taskforge-backend/internal/notification"
	profiledomain "taskforge-backend/internal/profile/domain"
	profileRepo "taskforge-backend/internal/profile/repository"
	profileUsecase "taskforge-backend/internal/profile/usecase"
	projectdomain "taskforge-backend/internal/project/domain"
	projectRepo "taskforge-backend/internal/project/repository"
	projectUsecase "taskforge-backend/internal/project/usecase"
	tododomain "taskforge-backend/internal/todo/domain"
	todoRepo "taskforge-backend/internal/todo/repository"
	todoUsecase "taskforge-backend/internal/todo/usecase"
	"taskforge-backend/pkg/config"
	"taskforge-backend/pkg/database"
	"taskforge-backend/pkg/fcm"
	"taskforge-backend/pkg/mailer"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.FCMToken{},
		&profiledomain.Profile{},
		&projectdomain.Project{},
		&tododomain.Todo{},
		&discussiondomain.PersonalDiscussion{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	fcmTokenRepository := authRepo.NewFCMTokenRepository(db)
	profileRepository := profileRepo.NewProfileRepository(db)
	projectRepository := projectRepo.NewProjectRepository(db)
	todoRepository := todoRepo.NewTodoRepository(db)
	discussionRepository := discussionRepo.NewDiscussionRepository(db)

	// Initialize FCM client (optional, notifications work without it)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
			fcmClient = nil
		}
	}

	// Initialize notification service. With a Pub/Sub topic configured,
	// fan-out goes through the queue and a consumer delivers in the
	// background; otherwise delivery is synchronous.
	notificationService := notification.NewService(userRepository, fcmTokenRepository, projectRepository, fcmClient)

	consumerCtx, stopConsumer := context.WithCancel(context.Background())
	defer stopConsumer()
	if cfg.GoogleProjectID != "" && cfg.PubSubTopic != "" {
		if err := notificationService.EnableAsyncQueue(consumerCtx, cfg.GoogleProjectID, cfg.PubSubTopic, cfg.FirebaseCredentials); err != nil {
			log.Printf("[WARN] Failed to initialize notification queue, falling back to synchronous delivery: %v", err)
		} else {
			go notificationService.Run(consumerCtx)
		}
	}

	// Initialize use cases (dependency injection)
	smtpMailer := mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	authUc := authUsecase.NewAuthUsecase(userRepository, fcmTokenRepository, profileRepository, projectRepository, smtpMailer, cfg)
	profileUc := profileUsecase.NewProfileUsecase(profileRepository, userRepository)
	projectUc := projectUsecase.NewProjectUsecase(projectRepository, userRepository)
	todoUc := todoUsecase.NewTodoUsecase(todoRepository)
	discussionUc := discussionUsecase.NewDiscussionUsecase(discussionRepository, userRepository)

	// Initialize HTTP handler
	handler := api.NewHandler(cfg, authUc, fcmTokenRepository, profileUc, projectUc, todoUc, discussionUc, notificationService)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.Engine(),
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopConsumer()
	if err := notificationService.Close(); err != nil {
		log.Printf("[WARN] Failed to close notification queue: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
	log.Println("Server exited")
}
