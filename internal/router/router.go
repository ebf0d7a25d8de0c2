package router

import (
	"log"

	"github.com/circlio/backend/internal/cache"
	"github.com/circlio/backend/internal/chat"
	"github.com/circlio/backend/internal/handlers"
	"github.com/circlio/backend/internal/messaging"
	"github.com/circlio/backend/internal/middleware"
	"github.com/circlio/backend/internal/models"
	"github.com/circlio/backend/internal/repositories"
	"github.com/circlio/backend/internal/services"
	"github.com/circlio/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, cfg *config.Config, db *gorm.DB, rdb *redis.Client, nc *nats.Conn) {
	// AutoMigrate models
	err := db.AutoMigrate(
		&models.User{},
		&models.Blog{},
		&models.Comment{},
		&models.Conversation{},
		&models.ConversationParticipant{},
		&models.Message{},
		&models.Notification{},
		&models.SocialCircle{},
		&models.ProfileUpload{},
		&models.ProfileUploadLike{},
		&models.LivestreamMessage{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("Auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(db)
	blogRepo := repositories.NewPostgresBlogRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	convRepo := repositories.NewPostgresConversationRepository(db)
	messageRepo := repositories.NewPostgresMessageRepository(db)
	notificationRepo := repositories.NewPostgresNotificationRepository(db)
	circleRepo := repositories.NewPostgresSocialCircleRepository(db)
	uploadRepo := repositories.NewPostgresUploadRepository(db)
	livestreamRepo := repositories.NewPostgresLivestreamRepository(db)

	// --- Notification pipeline ---
	var publisher messaging.Publisher
	if nc != nil {
		publisher = messaging.NewNatsPublisher(nc)
		subscriber := messaging.NewSubscriber(nc, notificationRepo)
		if err := subscriber.Start(); err != nil {
			log.Fatalf("Failed to start notification subscriber: %v", err)
		}
	}

	// --- Services ---
	likeService := services.NewLikeService(uploadRepo, userRepo, publisher)
	conversationService := services.NewConversationService(convRepo, messageRepo, userRepo, publisher)

	// --- Unprotected routes ---
	public := e.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(public.Group("/auth"))
	log.Println("Auth routes configured.")

	var blogCache *cache.BlogCache
	if rdb != nil {
		blogCache = cache.NewBlogCache(rdb)
	}
	blogHandler := handlers.NewBlogHandler(blogRepo, blogCache)
	blogHandler.RegisterPublicRoutes(public)

	commentHandler := handlers.NewCommentHandler(commentRepo, blogRepo)
	commentHandler.RegisterPublicRoutes(public)
	log.Println("Public blog and comment routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	blogHandler.RegisterProtectedRoutes(api)
	commentHandler.RegisterProtectedRoutes(api)

	conversationHandler := handlers.NewConversationHandler(conversationService)
	conversationHandler.RegisterConversationRoutes(api)
	log.Println("Conversation routes configured.")

	uploadHandler := handlers.NewUploadHandler(uploadRepo, likeService)
	uploadHandler.RegisterUploadRoutes(api)
	log.Println("Upload and like routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	circleHandler := handlers.NewSocialCircleHandler(circleRepo)
	circleHandler.RegisterSocialCircleRoutes(api)
	log.Println("Social circle routes configured.")

	// --- Livestream chat ---
	if rdb != nil {
		hub := chat.NewHub(rdb, livestreamRepo)
		go hub.Run()
		go hub.SubscribeToRedis()

		chatHandler := chat.NewHandler(hub, userRepo)
		chatHandler.RegisterChatRoutes(api)
		log.Println("Livestream chat routes configured.")
	}

	log.Println("All routes configured.")
}
