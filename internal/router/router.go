package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/arif404/devconnector/backend/internal/handlers"
	"github.com/arif404/devconnector/backend/internal/middleware"
	"github.com/arif404/devconnector/backend/internal/models"
	"github.com/arif404/devconnector/backend/internal/repositories"
	"github.com/arif404/devconnector/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Logger())
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies.
// firebaseAuthClient may be nil, in which case Firebase sign-in is disabled.
func SetupRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client) {
	if err := pgdb.AutoMigrate(&models.User{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	userRepo := repositories.NewPostgresUserRepository(pgdb)
	postRepo := repositories.NewMongoPostRepository(mgClient.Database(cfg.MongoDBName))

	// Unprotected routes for authentication
	authGroup := e.Group("/api/auth")
	authHandler := handlers.NewAuthHandler(userRepo, firebaseAuthClient, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)

	// Post reads are public; everything else requires an authenticated caller.
	// AUTH_DRIVER=firebase verifies Firebase ID tokens on every request
	// instead of locally issued JWTs.
	public := e.Group("/api")
	protected := e.Group("/api")
	if cfg.AuthDriver == "firebase" {
		if firebaseAuthClient == nil {
			log.Fatal("AUTH_DRIVER=firebase requires FIREBASE_CREDENTIALS_PATH")
		}
		protected.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient, userRepo))
	} else {
		protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	}

	postHandler := handlers.NewPostHandler(postRepo, userRepo)
	postHandler.RegisterPostRoutes(public, protected)

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(protected)

	log.Println("All routes configured")
}
