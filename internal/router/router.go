package router

import (
	"log/slog"
	"net/http"

	"lostlink/internal/handlers"
	"lostlink/internal/media"
	"lostlink/internal/middleware"
	"lostlink/internal/services"
	"lostlink/internal/store"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, s store.Store, m media.Store, logger *slog.Logger) {
	// Services
	counters := services.NewCounters(s)
	cascade := services.NewCascade(s, m, counters, logger)
	notifier := services.NewNotifier(s)

	// Handlers
	authHandler := handlers.NewAuthHandler(s)
	postHandler := handlers.NewPostHandler(s, m, cascade, counters)
	commentHandler := handlers.NewCommentHandler(s, counters, notifier)
	userHandler := handlers.NewUserHandler(s, m, cascade)
	notificationHandler := handlers.NewNotificationHandler(s)
	adminHandler := handlers.NewAdminHandler(s, cascade)

	// Global middleware
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.LoadUser(s))

	// Liveness and scrape endpoints
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "LostLink API is running..."})
	})
	r.GET("/metrics", middleware.MetricsHandler())

	// Auth routes
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	// Post routes. Listing and reading work without a token; the resolved
	// user, when present, widens visibility.
	postGroup := r.Group("/api/post")
	{
		postGroup.GET("", postHandler.List)
		postGroup.GET("/:id", postHandler.Get)

		authed := postGroup.Group("")
		authed.Use(middleware.AuthRequired())
		{
			authed.POST("", postHandler.Create)
			authed.GET("/user/:userId", postHandler.ListByUser)
			authed.PUT("/:id", postHandler.Update)
			authed.DELETE("/:id", postHandler.Delete)

			authed.POST("/:id/comment", commentHandler.Add)
			authed.GET("/:id/comment", commentHandler.List)
			authed.DELETE("/:id/comment/:commentId", commentHandler.Delete)
		}
	}

	// User routes
	userGroup := r.Group("/api/user")
	userGroup.Use(middleware.AuthRequired())
	{
		userGroup.GET("/stats", userHandler.Stats)
		userGroup.GET("/users/:id", userHandler.Get)
		userGroup.PUT("/edit/:id", userHandler.Update)
		userGroup.DELETE("/users/:id", userHandler.Delete)
	}

	// Notification routes
	notificationGroup := r.Group("/api/notification")
	notificationGroup.Use(middleware.AuthRequired())
	{
		notificationGroup.GET("/user/:userId", notificationHandler.ListByUser)
		notificationGroup.PUT("/user/:userId/viewed", notificationHandler.MarkAllViewed)
		notificationGroup.PUT("/:id/view", notificationHandler.MarkViewed)
		notificationGroup.DELETE("/:id", notificationHandler.Delete)
	}

	// Admin routes. Each handler re-checks the admin flag on the resolved
	// record, so a stale token cannot keep admin access.
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AuthRequired())
	{
		adminGroup.GET("/users", adminHandler.Users)
		adminGroup.GET("/stats", adminHandler.Stats)
		adminGroup.DELETE("/users/:id", adminHandler.DeleteUser)
		adminGroup.DELETE("/cleanup", adminHandler.Cleanup)
	}
}
