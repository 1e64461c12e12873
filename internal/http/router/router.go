package router

import (
	"github.com/gin-gonic/gin"

	"github.com/rit1708/Digital-menu/internal/config"
	"github.com/rit1708/Digital-menu/internal/http/handlers"
	"github.com/rit1708/Digital-menu/internal/http/middleware"
)

// SetupRouter собирает все маршруты приложения.
// Identity навешивается глобально и никогда не отклоняет запрос; защищённые
// группы дополнительно требуют RequireAuth.
func SetupRouter(
	cfg *config.Config,
	sessions middleware.SessionResolver,
	authHandler *handlers.AuthHandler,
	restaurantHandler *handlers.RestaurantHandler,
	categoryHandler *handlers.CategoryHandler,
	dishHandler *handlers.DishHandler,
	menuHandler *handlers.MenuHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.Identity(sessions))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// Выдача и проверка кодов ограничены по частоте: письма и перебор кодов.
	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod))
	{
		authGroup.POST("/send-code", authHandler.SendCode)
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	protectedAuth := api.Group("/auth")
	protectedAuth.Use(middleware.RequireAuth())
	{
		protectedAuth.GET("/me", authHandler.Me)
		protectedAuth.POST("/logout", authHandler.Logout)
	}

	// Публичное меню по ссылке / QR-коду.
	api.GET("/menu/:id", menuHandler.Get)
	api.GET("/menu/:id/live", menuHandler.Live)

	// Защищённые маршруты владельца.
	protected := api.Group("/")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/restaurants", restaurantHandler.Create)
		protected.GET("/restaurants", restaurantHandler.List)
		protected.GET("/restaurants/:id", restaurantHandler.Get)
		protected.PUT("/restaurants/:id", restaurantHandler.Update)
		protected.DELETE("/restaurants/:id", restaurantHandler.Delete)

		protected.POST("/restaurants/:id/categories", categoryHandler.Create)
		protected.GET("/restaurants/:id/categories", categoryHandler.List)
		protected.PUT("/categories/:id", categoryHandler.Update)
		protected.DELETE("/categories/:id", categoryHandler.Delete)

		protected.POST("/restaurants/:id/dishes", dishHandler.Create)
		protected.GET("/restaurants/:id/dishes", dishHandler.List)
		protected.GET("/dishes/:id", dishHandler.Get)
		protected.PUT("/dishes/:id", dishHandler.Update)
		protected.DELETE("/dishes/:id", dishHandler.Delete)
	}

	return r
}
