package main

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/gin-gonic/gin"

	"github.com/sanjida-777/Social-Media-v2/internal/auth"
	"github.com/sanjida-777/Social-Media-v2/internal/config"
	"github.com/sanjida-777/Social-Media-v2/internal/database"
	"github.com/sanjida-777/Social-Media-v2/internal/handler"

	// Swagger imports
	_ "github.com/sanjida-777/Social-Media-v2/docs" // This is important for swag to find the generated docs

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func init() {
	config.LoadConfig()
}

// @title           Social Media v2 API
// @version         2.0
// @description     This is the API for the Social Media v2 service, including the personalized feed ranking and relationship scoring engine.
// @host            localhost:8080
// @BasePath        /api/v1
// @securityDefinitions.apiKey BearerAuth
// @in header
// @name Authorization
func main() {
	logger, err := newLogger(config.AppConfig.Debug)
	if err != nil {
		panic(fmt.Sprintf("failed to build logger: %v", err))
	}
	defer logger.Sync() //nolint:errcheck

	// Connect to the database
	database.Connect(config.AppConfig.DatabaseURL)

	// Wire the scoring engine and interaction recorder
	handler.Init(logger)

	router := gin.Default()

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	// API v1 routes
	apiV1 := router.Group("/api/v1")
	{
		// Auth routes
		authRoutes := apiV1.Group("/auth")
		{
			authRoutes.POST("/register", handler.RegisterUser)
			authRoutes.POST("/login", handler.LoginUser)
		}

		// User routes (protected)
		userRoutes := apiV1.Group("/users")
		userRoutes.Use(auth.AuthMiddleware())
		{
			userRoutes.GET("", handler.SearchUsers) // Must be before /:id
			userRoutes.GET("/me", handler.GetMe)
			userRoutes.GET("/me/friends", handler.GetFriends)
			userRoutes.GET("/:id", handler.GetUserByID)
			userRoutes.GET("/:id/followers", handler.GetFollowers)
			userRoutes.GET("/:id/following", handler.GetFollowing)

			// Friendship routes
			userRoutes.POST("/:id/request", handler.SendFriendRequest)
			userRoutes.POST("/:id/accept", handler.AcceptFriendRequest)
			userRoutes.POST("/:id/decline", handler.DeclineFriendRequest)
			userRoutes.POST("/:id/remove", handler.RemoveFriend)

			// Follow routes
			userRoutes.POST("/:id/follow", handler.FollowUser)
			userRoutes.POST("/:id/unfollow", handler.UnfollowUser)
		}

		// Feed routes (protected)
		feedRoutes := apiV1.Group("/feed")
		feedRoutes.Use(auth.AuthMiddleware())
		{
			feedRoutes.GET("", handler.GetFeed)
		}

		// Post routes
		postRoutes := apiV1.Group("/posts")
		{
			// Public reads with optional viewer context
			postRoutes.GET("/:id", auth.OptionalAuthMiddleware(), handler.GetPost)
			postRoutes.GET("/:id/comments", handler.GetComments)

			// Protected writes
			protected := postRoutes.Group("")
			protected.Use(auth.AuthMiddleware())
			{
				protected.POST("", handler.CreatePost)
				protected.DELETE("/:id", handler.DeletePost)
				protected.POST("/:id/like", handler.LikePost)
				protected.POST("/:id/unlike", handler.UnlikePost)
				protected.POST("/:id/comments", handler.CreateComment)
			}
		}

		// Chat routes (protected)
		chatRoutes := apiV1.Group("/chats")
		chatRoutes.Use(auth.AuthMiddleware())
		{
			chatRoutes.POST("", handler.CreateChat)
			chatRoutes.GET("", handler.GetChats)
			chatRoutes.POST("/:id/messages", handler.SendMessage)
			chatRoutes.GET("/:id/messages", handler.GetMessages)
			chatRoutes.GET("/:id/stream", handler.StreamChat)
		}

		// Notification routes (protected)
		notificationRoutes := apiV1.Group("/notifications")
		notificationRoutes.Use(auth.AuthMiddleware())
		{
			notificationRoutes.GET("", handler.GetNotifications)
			notificationRoutes.POST("/:id/read", handler.MarkNotificationRead)
			notificationRoutes.POST("/read-all", handler.MarkAllNotificationsRead)
		}
	}

	addr := config.AppConfig.ListenAddr
	fmt.Printf("Server is running on %s\n", addr)
	fmt.Printf("Swagger UI is available at http://localhost%s/swagger/index.html\n", addr)
	logger.Fatal("server stopped", zap.Error(router.Run(addr)))
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
