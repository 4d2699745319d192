package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/sonsdetaville/sounds-api/docs"
	"github.com/sonsdetaville/sounds-api/internal/api/handler"
	"github.com/sonsdetaville/sounds-api/internal/api/middleware"
	"github.com/sonsdetaville/sounds-api/internal/core/service"
	mongodb "github.com/sonsdetaville/sounds-api/internal/infrastructure/db/mongo"
	redisdb "github.com/sonsdetaville/sounds-api/internal/infrastructure/db/redis"
	"github.com/sonsdetaville/sounds-api/internal/notify"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, hub *notify.Hub, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("soundshare"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	soundRepo := mongodb.NewSoundRepository(db)
	commentRepo := mongodb.NewCommentRepository(db)
	categoryRepo := redisdb.NewCachedCategoryRepository(mongodb.NewCategoryRepository(db), rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, 0, log)
	userService := service.NewUserService(userRepo, soundRepo, commentRepo, log)
	soundService := service.NewSoundService(soundRepo, commentRepo, categoryRepo, userRepo, log)
	commentService := service.NewCommentService(commentRepo, soundRepo, userRepo, hub, log)
	categoryService := service.NewCategoryService(categoryRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	soundHandler := handler.NewSoundHandler(soundService)
	commentHandler := handler.NewCommentHandler(commentService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	wsHandler := handler.NewWSHandler(hub, jwtSecret, log)
	healthHandler := handler.NewHealthHandler(db, rdb)

	auth := middleware.Auth(jwtSecret)

	// --- Auth ---
	e.POST("/auth/login", authHandler.Login)

	// --- Users ---
	e.POST("/users", userHandler.Register)
	e.OPTIONS("/users", userHandler.Options)
	e.GET("/users", userHandler.List, auth)
	e.GET("/users/:username", userHandler.Get, auth)
	e.PATCH("/users/:username", userHandler.Update, auth)
	e.DELETE("/users/:username", userHandler.Delete, auth)

	// --- Sounds ---
	e.OPTIONS("/sounds", soundHandler.Options)
	e.GET("/sounds", soundHandler.List, auth)
	e.POST("/sounds", soundHandler.Create, auth)
	e.GET("/sounds/data/:id", soundHandler.Data, auth)
	e.GET("/sounds/:id", soundHandler.Get, auth)
	e.PATCH("/sounds/:id", soundHandler.Update, auth)
	e.DELETE("/sounds/:id", soundHandler.Delete, auth)

	// --- Comments ---
	e.OPTIONS("/comments", commentHandler.Options)
	e.GET("/comments", commentHandler.List, auth)
	e.POST("/comments", commentHandler.Create, auth)
	e.PATCH("/comments/:id", commentHandler.Update, auth)
	e.DELETE("/comments/:id", commentHandler.Delete, auth)

	// --- Categories ---
	e.OPTIONS("/categories", categoryHandler.Options)
	e.GET("/categories", categoryHandler.List, auth)
	e.POST("/categories", categoryHandler.Create, auth)
	e.GET("/categories/:name", categoryHandler.Get, auth)
	e.DELETE("/categories/:name", categoryHandler.Delete, auth)

	// --- Notifications ---
	e.GET("/ws", wsHandler.Connect)

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)        // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/docs/*", echoswagger.WrapHandler)

	return e
}
