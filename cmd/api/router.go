package api

import (
	"net/http"

	"taskforge-backend/internal/auth/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authRequired := delivery.AuthMiddleware([]byte(h.config.JWTSecret))

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// User account routes
		users := api.Group("/users")
		{
			users.POST("", h.authHandler.Register)
			users.PATCH("", authRequired, h.authHandler.UpdateAvatar)
			users.POST("/email", authRequired, h.authHandler.LookupByEmail)
			users.DELETE("", authRequired, h.authHandler.DeleteAccount)

			// Notification inbox and fan-out
			notifications := users.Group("/notifications")
			notifications.Use(authRequired)
			{
				notifications.POST("", h.notificationHandler.NotifySelf)
				notifications.POST("/:id", h.notificationHandler.NotifyUser)
				notifications.PATCH("/:id", h.notificationHandler.ToggleRead)
				notifications.DELETE("/:id", h.notificationHandler.Delete)
				notifications.PUT("/project/:project_id", h.notificationHandler.NotifyProject)
			}
		}

		// Session and password recovery routes
		auth := api.Group("/auth")
		{
			auth.POST("", h.authHandler.Login)
			auth.GET("", authRequired, h.authHandler.Me)
			auth.POST("/forgot-password", h.authHandler.ForgotPassword)
			auth.GET("/reset/:token", h.authHandler.ValidateResetToken)
			auth.PUT("/updatePasswordViaEmail/:token", h.authHandler.ResetPassword)
		}

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(authRequired)
		{
			fcm.POST("/register", h.authHandler.RegisterFCMToken)
			fcm.DELETE("/:token", h.authHandler.UnregisterFCMToken)
		}

		// Profile routes (protected)
		profile := api.Group("/profile")
		profile.Use(authRequired)
		{
			profile.GET("", h.profileHandler.ListAll)
			profile.GET("/me", h.profileHandler.Me)
			profile.POST("", h.profileHandler.Update)
			profile.GET("/:id", h.profileHandler.GetByUserID)
		}

		// Project routes including the embedded issue family (protected)
		project := api.Group("/project")
		project.Use(authRequired)
		{
			project.POST("", h.projectHandler.Create)
			project.GET("", h.projectHandler.List)
			project.POST("/:project_id", h.projectHandler.Join)
			project.PUT("/:project_id/:user_id", h.projectHandler.AddMember)
			project.DELETE("/:project_id", h.projectHandler.Delete)

			project.POST("/issue/:project_id", h.projectHandler.CreateIssue)
			project.GET("/issue/:project_id", h.projectHandler.ListIssues)
			project.GET("/issue/:project_id/:issue_id", h.projectHandler.GetIssue)
			project.PATCH("/issue/:project_id/:issue_id", h.projectHandler.ToggleIssueStatus)
			project.DELETE("/issue/:project_id/:issue_id", h.projectHandler.DeleteIssue)
			project.POST("/:project_id/:issue_id", h.projectHandler.PostIssueMessage)
		}

		// Standalone issue family, same store (protected)
		issues := api.Group("/issues")
		issues.Use(authRequired)
		{
			issues.POST("/:project_id", h.projectHandler.CreateStandaloneIssue)
			issues.GET("/:project_id", h.projectHandler.ListStandaloneIssues)
			issues.PATCH("/:issue_id", h.projectHandler.SetIssueStatus)
		}

		// Personal todo routes (protected)
		todos := api.Group("/todos")
		todos.Use(authRequired)
		{
			todos.POST("", h.todoHandler.Create)
			todos.GET("", h.todoHandler.List)
			todos.GET("/:todo_id", h.todoHandler.Get)
			todos.GET("/filter/:filter", h.todoHandler.Filter)
			todos.PATCH("/:todo_id", h.todoHandler.UpdateStatus)
			todos.DELETE("/:todo_id", h.todoHandler.Delete)
		}

		// Personal discussion routes (protected)
		discussion := api.Group("/discussion")
		discussion.Use(authRequired)
		{
			discussion.POST("/:id", h.discussionHandler.FindOrCreate)
			discussion.POST("/message/:id", h.discussionHandler.PostMessage)
		}
	}
}
