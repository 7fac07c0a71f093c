package api

import (
	authdelivery "taskforge-backend/internal/auth/delivery"
	authRepo "taskforge-backend/internal/auth/repository"
	authUsecase "taskforge-backend/internal/auth/usecase"
	discussionDelivery "taskforge-backend/internal/discussion/delivery"
	discussionUsecasePkg "taskforge-backend/internal/discussion/usecase"
	"taskforge-backend/internal/notification"
	notificationDelivery "taskforge-backend/internal/notification/delivery"
	profileDelivery "taskforge-backend/internal/profile/delivery"
	profileUsecasePkg "taskforge-backend/internal/profile/usecase"
	projectDelivery "taskforge-backend/internal/project/delivery"
	projectUsecasePkg "taskforge-backend/internal/project/usecase"
	todoDelivery "taskforge-backend/internal/todo/delivery"
	todoUsecasePkg "taskforge-backend/internal/todo/usecase"
	"taskforge-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	config *config.Config

	authHandler         *authdelivery.AuthHandler
	profileHandler      *profileDelivery.ProfileHandler
	projectHandler      *projectDelivery.ProjectHandler
	todoHandler         *todoDelivery.TodoHandler
	discussionHandler   *discussionDelivery.DiscussionHandler
	notificationHandler *notificationDelivery.NotificationHandler
}

func NewHandler(
	cfg *config.Config,
	authUc authUsecase.AuthUsecase,
	fcmRepo authRepo.FCMTokenRepository,
	profileUc profileUsecasePkg.ProfileUsecase,
	projectUc projectUsecasePkg.ProjectUsecase,
	todoUc todoUsecasePkg.TodoUsecase,
	discussionUc discussionUsecasePkg.DiscussionUsecase,
	notificationService *notification.Service,
) *Handler {
	return &Handler{
		config:              cfg,
		authHandler:         authdelivery.NewAuthHandler(authUc, fcmRepo),
		profileHandler:      profileDelivery.NewProfileHandler(profileUc),
		projectHandler:      projectDelivery.NewProjectHandler(projectUc),
		todoHandler:         todoDelivery.NewTodoHandler(todoUc),
		discussionHandler:   discussionDelivery.NewDiscussionHandler(discussionUc),
		notificationHandler: notificationDelivery.NewNotificationHandler(notificationService),
	}
}

// Engine builds the configured gin engine without binding a port, so
// tests can drive it directly.
func (h *Handler) Engine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)
	return r
}

func (h *Handler) Start(addr string) error {
	return h.Engine().Run(addr)
}
