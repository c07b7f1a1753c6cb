package router

import (
	"time"

	"github.com/delesray/forum/internal/config"
	"github.com/delesray/forum/internal/database/repository"
	"github.com/delesray/forum/internal/handlers"
	"github.com/delesray/forum/internal/middleware"
	"github.com/delesray/forum/internal/services"
	"github.com/delesray/forum/internal/services/auth"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// SetupRouter wires repositories, services and handlers into a gin engine.
// The returned func stops background work started for the engine.
func SetupRouter(db *gorm.DB, cfg *config.Config, events services.EventPublisher) (*gin.Engine, func()) {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	permissionRepo := repository.NewCategoryPermissionRepository(db)
	topicRepo := repository.NewTopicRepository(db)
	replyRepo := repository.NewReplyRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	// Services
	authService := auth.NewAuthService(userRepo, cfg.Auth)
	accessService := services.NewAccessService(topicRepo, categoryRepo, permissionRepo)
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo, topicRepo, accessService, events)
	permissionService := services.NewCategoryPermissionService(permissionRepo, userRepo, categoryRepo, events)
	topicService := services.NewTopicService(topicRepo, categoryRepo, userRepo, replyRepo, accessService, events)
	replyService := services.NewReplyService(replyRepo, topicRepo, accessService, events)
	voteService := services.NewVoteService(voteRepo, replyRepo, topicRepo, accessService, events)
	messageService := services.NewMessageService(messageRepo, userRepo, events)

	// Middleware with services
	bearer := middleware.NewBearerTokenMiddleware(authService)
	authLimiter := middleware.NewRateLimiter(rate.Limit(cfg.AuthRateLimit), cfg.AuthRateBurst, 5*time.Minute)
	go authLimiter.Run()

	// Handlers
	healthHandler := handlers.NewHealthHandler(db)
	userHandler := handlers.NewUserHandler(userService, authService)
	categoryHandler := handlers.NewCategoryHandler(categoryService, cfg.Paging)
	topicHandler := handlers.NewTopicHandler(topicService, cfg.Paging)
	replyHandler := handlers.NewReplyHandler(replyService)
	voteHandler := handlers.NewVoteHandler(voteService)
	messageHandler := handlers.NewMessageHandler(messageService)
	adminHandler := handlers.NewAdminHandler(categoryService, permissionService, topicService)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/health", healthHandler.Health)
	logrus.Info("Swagger UI endpoint registered at /swagger/index.html")

	requireAuth := bearer.RequireAuth()
	optionalAuth := bearer.OptionalAuth()

	users := r.Group("/users")
	{
		users.POST("/register", authLimiter.Middleware(), userHandler.Register)
		users.POST("/login", authLimiter.Middleware(), userHandler.Login)
		users.GET("", userHandler.GetAll)
		users.GET("/:id", userHandler.GetByID)

		users.PUT("", requireAuth, userHandler.Update)
		users.PATCH("/password", requireAuth, userHandler.ChangePassword)
		users.DELETE("", requireAuth, userHandler.Delete)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", categoryHandler.GetAll)
		categories.GET("/:id", optionalAuth, categoryHandler.GetByID)
	}

	topics := r.Group("/topics")
	{
		topics.GET("", optionalAuth, topicHandler.List)
		topics.GET("/:id", optionalAuth, topicHandler.Get)

		protected := topics.Group("")
		protected.Use(requireAuth)
		{
			protected.POST("", topicHandler.Create)
			protected.PATCH("/:id/bestReply", topicHandler.SetBestReply)
			protected.PATCH("/:id/locking", topicHandler.ToggleLocking)

			protected.POST("/:id/replies", replyHandler.Create)
			protected.PUT("/:id/replies/:reply_id", replyHandler.Update)
			protected.DELETE("/:id/replies/:reply_id", replyHandler.Delete)

			protected.GET("/:id/replies/:reply_id/votes", voteHandler.Count)
			protected.PUT("/:id/replies/:reply_id/votes", voteHandler.AddOrSwitch)
			protected.DELETE("/:id/replies/:reply_id/votes", voteHandler.Remove)
		}
	}

	messages := r.Group("/messages")
	messages.Use(requireAuth)
	{
		messages.POST("/:receiver_id", messageHandler.Send)
		messages.GET("/users", messageHandler.Conversations)
		messages.GET("/:user_id", messageHandler.Conversation)
		messages.PATCH("/:message_id/text", messageHandler.UpdateText)
	}

	admin := r.Group("/admin")
	admin.Use(requireAuth, middleware.RequireAdmin())
	{
		admin.POST("/categories", adminHandler.CreateCategory)
		admin.PATCH("/categories/:id/privacy", adminHandler.TogglePrivacy)
		admin.PATCH("/categories/:id/locking", adminHandler.ToggleCategoryLocking)
		admin.GET("/categories/:id/users", adminHandler.PrivilegedUsers)
		admin.GET("/categories/:id/users/export", adminHandler.ExportPrivilegedUsers)

		admin.POST("/users/:user_id/categories/:category_id", adminHandler.GrantAccess)
		admin.DELETE("/users/:user_id/categories/:category_id", adminHandler.RevokeAccess)
		admin.PATCH("/users/:user_id/categories/:category_id/access", adminHandler.ToggleWriteAccess)

		admin.PATCH("/topics/:id/locking", adminHandler.ToggleTopicLocking)
	}

	return r, authLimiter.Stop
}
