package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/warehouse-api/internal/config"
	"github.com/sangkips/warehouse-api/internal/presentation/http/handler"
	"github.com/sangkips/warehouse-api/internal/presentation/http/middleware"
	"github.com/sangkips/warehouse-api/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Receiving *handler.ReceivingHandler
	Warehouse *handler.WarehouseHandler
	Stock     *handler.StockHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager  *utils.JWTManager
	Cfg         *config.Config
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes, limited per client IP
		public := v1.Group("")
		public.Use(deps.RateLimiter.Middleware())
		registerAuthRoutes(public, h)

		// Protected routes, limited per user
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(deps.RateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/auth/me", h.Auth.Me)

	// Warehouses
	protected.GET("/warehouses", h.Warehouse.List)
	protected.POST("/warehouses/select", h.Warehouse.Select)

	registerReceivingRoutes(protected, h)
	registerStockRoutes(protected, h)
}

func registerReceivingRoutes(protected *gin.RouterGroup, h *Handlers) {
	receiving := protected.Group("/receiving")
	{
		receiving.GET("", h.Receiving.Load)
		receiving.GET("/state", h.Receiving.State)
		receiving.GET("/catalog", h.Receiving.Catalog)
		receiving.GET("/export", h.Receiving.Export)
		receiving.POST("/new", h.Receiving.OpenNew)
		receiving.POST("/:id/edit", h.Receiving.OpenEdit)
		receiving.DELETE("/banner", h.Receiving.DismissBanner)
		receiving.DELETE("/:id", h.Receiving.Delete)

		draft := receiving.Group("/draft")
		draft.PATCH("", h.Receiving.UpdateDraft)
		draft.POST("/items", h.Receiving.AddItem)
		draft.PATCH("/items/:index", h.Receiving.UpdateItem)
		draft.DELETE("/items/:index", h.Receiving.RemoveItem)
		draft.POST("/returns", h.Receiving.AddReturnItem)
		draft.DELETE("/returns/:index", h.Receiving.RemoveReturnItem)
		draft.POST("/submit", h.Receiving.Submit)
		draft.POST("/cancel", h.Receiving.Cancel)
	}
}

func registerStockRoutes(protected *gin.RouterGroup, h *Handlers) {
	stocks := protected.Group("/stocks")
	{
		stocks.GET("", h.Stock.List)
		stocks.POST("", h.Stock.Create)
		stocks.PUT("/:id", h.Stock.Adjust)
		stocks.DELETE("/:id", h.Stock.Delete)
	}
}
